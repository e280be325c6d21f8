package cmd

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"tst/internal/output"
	"tst/internal/store"
	"tst/internal/tracker"
)

// Package-level shared dependencies, initialized in cobra.OnInitialize.
var (
	ui        *output.UI
	dataStore *store.Store
	track     *tracker.Tracker

	verbose bool

	buildVersion = "dev"
	buildCommit  = "none"
	buildDate    = "unknown"
)

var rootCmd = &cobra.Command{
	Use:   "tst",
	Short: "Sprint time tracker for testing work",
	Long: `tst logs hours spent on testing tasks within fixed 10-working-day
sprints. Each sprint carries an 80-hour goal (8 hours per working day);
weekends never count and never accept entries.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	DisableAutoGenTag: true,
}

// Execute is the main entry point called from main.go.
func Execute(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	cobra.OnInitialize(initConfig, initDeps)

	rootCmd.RunE = func(cmd *cobra.Command, args []string) error {
		return statusRun()
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().String("config", "", "Config file (default ~/.config/tst/config.yaml)")
}

func initConfig() {
	// If --config is explicitly set, use that file
	if cfgFile, _ := rootCmd.PersistentFlags().GetString("config"); cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: cannot find home directory: %v\n", err)
			os.Exit(1)
		}

		configDir := filepath.Join(home, ".config", "tst")
		viper.AddConfigPath(configDir)
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
	}

	viper.SetEnvPrefix("TST")
	viper.AutomaticEnv()

	// Defaults via viper.SetDefault()
	home, _ := os.UserHomeDir()
	defaultConfigDir := filepath.Join(home, ".config", "tst")

	viper.SetDefault("state_dir", defaultConfigDir)
	viper.SetDefault("db_path", filepath.Join(defaultConfigDir, "tst.db"))

	// Read config file if it exists (optional)
	_ = viper.ReadInConfig()
}

func initDeps() {
	ui = output.New()
	ui.Verbose = verbose

	// Store and tracker are initialized lazily — only when commands
	// actually need them. This allows config/version to run without a db.
}

// getStore returns the shared store, initializing it on first call.
func getStore() (*store.Store, error) {
	if dataStore != nil {
		return dataStore, nil
	}

	dbPath := viper.GetString("db_path")
	kv, err := store.NewSQLiteKV(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := kv.Migrate(); err != nil {
		_ = kv.Close()
		return nil, fmt.Errorf("migrate database: %w", err)
	}

	dataStore = store.New(kv)
	return dataStore, nil
}

// getTracker returns the shared tracker, loading all persisted state on
// first call and running the end-date repair pass over it.
func getTracker() (*tracker.Tracker, error) {
	if track != nil {
		return track, nil
	}

	s, err := getStore()
	if err != nil {
		return nil, err
	}

	t, err := tracker.New(s)
	if err != nil {
		return nil, fmt.Errorf("load tracker state: %w", err)
	}

	corrected, err := t.RecalculateAllSprintEndDates()
	if err != nil {
		return nil, fmt.Errorf("repair sprint end dates: %w", err)
	}
	if corrected > 0 {
		ui.VerboseLog("repaired end dates of %d sprint(s)", corrected)
	}

	track = t
	return track, nil
}
