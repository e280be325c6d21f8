package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

var (
	clearAll bool
	clearYes bool
)

var clearCmd = &cobra.Command{
	Use:   "clear",
	Short: "Delete all entries (or everything with --all)",
	Long: `Delete every time entry. With --all, also delete every sprint and
drop the current-sprint selection. Requires --yes.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return clearRun()
	},
}

func init() {
	clearCmd.Flags().BoolVar(&clearAll, "all", false, "Also delete sprints and the current selection")
	clearCmd.Flags().BoolVar(&clearYes, "yes", false, "Confirm the deletion")
	rootCmd.AddCommand(clearCmd)
}

func clearRun() error {
	if !clearYes {
		return fmt.Errorf("refusing to delete without --yes")
	}

	t, err := getTracker()
	if err != nil {
		return err
	}

	if clearAll {
		if err := t.ClearAllData(); err != nil {
			return err
		}
		ui.Success("All sprints and entries deleted")
		return nil
	}

	if err := t.ClearAllEntries(); err != nil {
		return err
	}
	ui.Success("All entries deleted")
	return nil
}
