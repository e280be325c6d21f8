package cmd

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"tst/internal/models"
	"tst/internal/output"
	"tst/internal/tracker"
)

var (
	entryDate     string
	entryPast     bool
	entryListDate string
	entryListAll  bool
	entrySprintID int64
)

var entryCmd = &cobra.Command{
	Use:   "entry",
	Short: "Manage time entries",
	Long:  "Log, list, and delete time entries against the current sprint.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return entryListRun()
	},
}

var entryAddCmd = &cobra.Command{
	Use:   "add <jira-id> <hours> <work-done...>",
	Short: "Log hours against the current sprint",
	Long: `Log hours spent on a task.

The date defaults to today and must be a working day (Mon-Fri) within the
current sprint's period. Hours are positive, typically in 0.25 steps.
Once the sprint's end date has passed, --past is required to acknowledge
logging into a finished sprint.`,
	Args: cobra.MinimumNArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		return entryAddRun(args[0], args[1], strings.Join(args[2:], " "))
	},
}

var entryListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List entries",
	Long:    "List entries of the current sprint. Use --date, --sprint, or --all to widen.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return entryListRun()
	},
}

var entryRmCmd = &cobra.Command{
	Use:   "rm <entry-id>",
	Short: "Delete an entry",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return entryRmRun(args[0])
	},
}

func init() {
	entryAddCmd.Flags().StringVar(&entryDate, "date", "", "Entry date, YYYY-MM-DD (default: today)")
	entryAddCmd.Flags().BoolVar(&entryPast, "past", false, "Acknowledge logging into a sprint that is over")

	entryListCmd.Flags().StringVar(&entryListDate, "date", "", "Only entries on this date")
	entryListCmd.Flags().Int64Var(&entrySprintID, "sprint", 0, "Only entries of this sprint id")
	entryListCmd.Flags().BoolVar(&entryListAll, "all", false, "All entries across sprints")

	entryCmd.AddCommand(entryAddCmd)
	entryCmd.AddCommand(entryListCmd)
	entryCmd.AddCommand(entryRmCmd)
	rootCmd.AddCommand(entryCmd)
}

func entryAddRun(jiraID, hoursArg, workDone string) error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	hours, err := strconv.ParseFloat(hoursArg, 64)
	if err != nil {
		return fmt.Errorf("invalid hours value: %s", hoursArg)
	}

	date := entryDate
	if date == "" {
		date = t.Today()
	}

	// Logging into a finished sprint needs an explicit acknowledgement.
	if t.IsCurrentSprintOver() && !entryPast {
		sp := t.CurrentSprint()
		return fmt.Errorf("sprint %q ended on %s; re-run with --past to log into it", sp.Name, sp.EndDate)
	}

	entry, err := t.AddEntry(date, jiraID, hours, workDone, entryPast)
	if err != nil {
		return err
	}

	ui.Success("Logged %s on %s for %s", output.Green(fmt.Sprintf("%.2fh", entry.TimeSpent)),
		entry.Date, output.Cyan(entry.JiraID))

	remaining := t.RemainingTimeForDate(entry.Date)
	if remaining > 0 {
		ui.Info("%.2fh left toward the %.0fh goal for %s", remaining, tracker.HoursPerDay, entry.Date)
	} else {
		ui.Info("Daily goal reached for %s", entry.Date)
	}
	return nil
}

func entryListRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	var entries []models.Entry
	switch {
	case entryListDate != "":
		entries = t.EntriesForDate(entryListDate)
	case entrySprintID != 0:
		entries = t.EntriesForSprint(entrySprintID)
	case entryListAll:
		entries = t.Entries()
	default:
		current := t.CurrentSprint()
		if current == nil {
			ui.Info("No sprint selected. Use --all, --date, or --sprint to list entries anyway.")
			return nil
		}
		entries = t.EntriesForSprint(current.ID)
	}

	if len(entries) == 0 {
		ui.Info("No entries found.")
		return nil
	}

	table := ui.Table([]string{"ID", "Date", "Jira", "Hours", "Work done"})
	total := 0.0
	for _, e := range entries {
		total += e.TimeSpent
		table.Append([]string{
			strconv.FormatInt(e.ID, 10),
			e.Date,
			output.Cyan(e.JiraID),
			fmt.Sprintf("%.2f", e.TimeSpent),
			e.WorkDone,
		})
	}
	if err := table.Render(); err != nil {
		return err
	}

	fmt.Fprintln(ui.Out)
	ui.Info("%d entries, %.2fh total", len(entries), total)
	return nil
}

func entryRmRun(idArg string) error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid entry id: %s", idArg)
	}

	removed, err := t.DeleteEntry(id)
	if err != nil {
		return err
	}
	if !removed {
		ui.Warning("No entry with id %d", id)
		return nil
	}

	ui.Success("Entry %d deleted", id)
	return nil
}
