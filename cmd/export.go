package cmd

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tst/internal/tracker"
)

var (
	exportFormat string
	exportType   string
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export data as JSON, CSV, or Markdown",
	Long:  "Export sprints or entries in various formats.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return exportRun()
	},
}

func init() {
	exportCmd.Flags().StringVar(&exportFormat, "format", "json", "Output format: json, csv, markdown")
	exportCmd.Flags().StringVar(&exportType, "type", "entries", "Data type: sprints, entries")
	rootCmd.AddCommand(exportCmd)
}

func exportRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	switch exportType {
	case "sprints":
		return exportSprints(t)
	case "entries":
		return exportEntries(t)
	default:
		return fmt.Errorf("unknown export type: %s (use: sprints, entries)", exportType)
	}
}

func exportSprints(t *tracker.Tracker) error {
	sprints := t.Sprints()

	switch exportFormat {
	case "json":
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(sprints)
	case "csv":
		w := csv.NewWriter(ui.Out)
		w.Write([]string{"ID", "Name", "Start", "End"})
		for _, sp := range sprints {
			w.Write([]string{strconv.FormatInt(sp.ID, 10), sp.Name, sp.StartDate, sp.EndDate})
		}
		w.Flush()
		return w.Error()
	case "markdown":
		fmt.Fprintln(ui.Out, "# Sprints")
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, "| ID | Name | Start | End |")
		fmt.Fprintln(ui.Out, "|----|------|-------|-----|")
		for _, sp := range sprints {
			fmt.Fprintf(ui.Out, "| %d | %s | %s | %s |\n", sp.ID, sp.Name, sp.StartDate, sp.EndDate)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
}

func exportEntries(t *tracker.Tracker) error {
	entries := t.Entries()

	switch exportFormat {
	case "json":
		enc := json.NewEncoder(ui.Out)
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	case "csv":
		w := csv.NewWriter(ui.Out)
		w.Write([]string{"ID", "Date", "Jira", "Hours", "WorkDone", "SprintID"})
		for _, e := range entries {
			w.Write([]string{
				strconv.FormatInt(e.ID, 10),
				e.Date,
				e.JiraID,
				strconv.FormatFloat(e.TimeSpent, 'f', -1, 64),
				e.WorkDone,
				strconv.FormatInt(e.SprintID, 10),
			})
		}
		w.Flush()
		return w.Error()
	case "markdown":
		fmt.Fprintln(ui.Out, "# Entries")
		fmt.Fprintln(ui.Out)
		fmt.Fprintln(ui.Out, "| Date | Jira | Hours | Work done |")
		fmt.Fprintln(ui.Out, "|------|------|-------|-----------|")
		for _, e := range entries {
			fmt.Fprintf(ui.Out, "| %s | %s | %.2f | %s |\n", e.Date, e.JiraID, e.TimeSpent, e.WorkDone)
		}
		return nil
	default:
		return fmt.Errorf("unknown format: %s", exportFormat)
	}
}
