package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"tst/internal/output"
	"tst/internal/tracker"
)

var (
	sprintStart string
	sprintEnd   string
)

var sprintCmd = &cobra.Command{
	Use:   "sprint",
	Short: "Manage sprints",
	Long:  "Create, list, and select the 10-working-day sprints time is tracked against.",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintListRun()
	},
}

var sprintNewCmd = &cobra.Command{
	Use:   "new <name>",
	Short: "Create a sprint and select it",
	Long: `Create a sprint and make it the current one.

Without --end, the end date is calculated as exactly 10 working days from
--start inclusive, which then must fall on a Monday-Friday.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintNewRun(args[0])
	},
}

var sprintListCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List sprints",
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintListRun()
	},
}

var sprintUseCmd = &cobra.Command{
	Use:   "use <sprint-id>",
	Short: "Select the current sprint",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintUseRun(args[0])
	},
}

var sprintRepairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Recompute every sprint's canonical end date",
	Long: `Recompute the canonical 10-working-day end date of every sprint and
overwrite any that differ. Idempotent; also runs automatically on load.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return sprintRepairRun()
	},
}

func init() {
	sprintNewCmd.Flags().StringVar(&sprintStart, "start", "", "Start date, YYYY-MM-DD (required)")
	sprintNewCmd.Flags().StringVar(&sprintEnd, "end", "", "End date, YYYY-MM-DD (default: auto-calculated)")
	_ = sprintNewCmd.MarkFlagRequired("start")

	sprintCmd.AddCommand(sprintNewCmd)
	sprintCmd.AddCommand(sprintListCmd)
	sprintCmd.AddCommand(sprintUseCmd)
	sprintCmd.AddCommand(sprintRepairCmd)
	rootCmd.AddCommand(sprintCmd)
}

func sprintNewRun(name string) error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	sp, err := t.CreateSprint(name, sprintStart, sprintEnd)
	if err != nil {
		return err
	}

	ui.Success("Sprint %s created: %s to %s (%d working days, %.0fh goal)",
		output.Cyan(sp.Name), sp.StartDate, sp.EndDate,
		tracker.WorkingDaysPerSprint, tracker.HoursPerSprint)
	ui.Info("Sprint #%d is now current", sp.ID)
	return nil
}

func sprintListRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	sprints := t.Sprints()
	if len(sprints) == 0 {
		ui.Info("No sprints yet. Use 'tst sprint new <name> --start <date>' to get started.")
		return nil
	}

	current := t.CurrentSprint()

	table := ui.Table([]string{"ID", "Name", "Start", "End", "Hours", ""})
	for _, sp := range sprints {
		marker := ""
		name := sp.Name
		if current != nil && current.ID == sp.ID {
			marker = output.Green("current")
			name = output.Cyan(name)
		}

		logged := 0.0
		for _, e := range t.EntriesForSprint(sp.ID) {
			logged += e.TimeSpent
		}

		table.Append([]string{
			strconv.FormatInt(sp.ID, 10),
			name,
			sp.StartDate,
			sp.EndDate,
			output.HoursColor(logged, tracker.HoursPerSprint),
			marker,
		})
	}

	return table.Render()
}

func sprintUseRun(idArg string) error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	id, err := strconv.ParseInt(idArg, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid sprint id: %s", idArg)
	}

	ok, err := t.SetCurrentSprint(id)
	if err != nil {
		return err
	}
	if !ok {
		ui.Warning("No sprint with id %d", id)
		return nil
	}

	sp := t.CurrentSprint()
	ui.Success("Sprint %s is now current (%s to %s)", output.Cyan(sp.Name), sp.StartDate, sp.EndDate)
	return nil
}

func sprintRepairRun() error {
	t, err := getTracker()
	if err != nil {
		return err
	}

	// getTracker already ran the pass once on load; running it again shows
	// that the data is now clean.
	corrected, err := t.RecalculateAllSprintEndDates()
	if err != nil {
		return err
	}

	if corrected == 0 {
		ui.Success("All sprint end dates are canonical")
	} else {
		ui.Success("Repaired end dates of %d sprint(s)", corrected)
	}
	return nil
}
