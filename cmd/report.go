package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Show totals across all sprints",
	Long:  "Show aggregate statistics over every entry regardless of sprint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return reportRun()
	},
}

func init() {
	rootCmd.AddCommand(reportCmd)
}

func reportRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	s := t.OverallSummary()
	if s.EntryCount == 0 {
		ui.Info("No entries logged yet.")
		return nil
	}

	table := ui.Table([]string{"", ""})
	table.Append([]string{"Sprints", strconv.Itoa(s.SprintCount)})
	table.Append([]string{"Entries", strconv.Itoa(s.EntryCount)})
	table.Append([]string{"Total hours", fmt.Sprintf("%.2f", s.TotalTime)})
	table.Append([]string{"Active days", strconv.Itoa(s.ActiveDays)})
	table.Append([]string{"Avg per active day", fmt.Sprintf("%.2fh", s.AverageTimePerDay)})

	return table.Render()
}
