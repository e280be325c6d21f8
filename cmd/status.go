package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tst/internal/output"
	"tst/internal/tracker"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the current sprint dashboard",
	Long: `Show the current sprint's progress: hours logged today and over the
sprint, working days remaining, and progress toward the 80-hour goal.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return statusRun()
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func statusRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	current := t.CurrentSprint()
	if current == nil {
		ui.Info("No sprint selected. Use 'tst sprint new <name> --start <date>' to get started.")
		return nil
	}

	summary := t.CurrentSprintSummary()
	today := t.Today()

	fmt.Fprintf(ui.Out, "%s  %s to %s\n", output.Cyan(current.Name), current.StartDate, current.EndDate)
	if t.IsCurrentSprintOver() {
		ui.Warning("Sprint is over; use 'tst entry add --past' to log late entries")
	}
	fmt.Fprintln(ui.Out)

	fmt.Fprintf(ui.Out, "  %s %s\n", output.ProgressBar(summary.Progress, 30),
		output.ProgressColor(summary.Progress))
	fmt.Fprintln(ui.Out)

	table := ui.Table([]string{"", ""})
	table.Append([]string{"Today (" + today + ")",
		output.HoursColor(t.TotalTimeForDate(today), tracker.HoursPerDay)})
	table.Append([]string{"Remaining today",
		fmt.Sprintf("%.2fh", t.RemainingTimeForDate(today))})
	table.Append([]string{"Sprint total",
		output.HoursColor(summary.TotalTime, tracker.HoursPerSprint)})
	table.Append([]string{"Sprint remaining",
		fmt.Sprintf("%.2fh", t.CurrentSprintRemainingTime())})
	table.Append([]string{"Entries", strconv.Itoa(summary.EntryCount)})
	table.Append([]string{"Active days", strconv.Itoa(summary.ActiveDays)})
	table.Append([]string{"Avg per active day", fmt.Sprintf("%.2fh", summary.AverageTimePerDay)})
	table.Append([]string{"Working days left", strconv.Itoa(summary.DaysRemaining)})

	return table.Render()
}
