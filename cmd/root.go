package cmd

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"tripsee/internal/account"
	"tripsee/internal/db"
	"tripsee/internal/search"
	"tripsee/internal/ui"
)

type rootOptions struct {
	dbPath     string
	configFile string
	config     *Config
}

// New builds the tripsee command tree. Running it without a subcommand opens
// the interactive planner.
func New(version string) *cobra.Command {
	opts := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "tripsee",
		Short:         "Plan trips day by day in the terminal.",
		Version:       version,
		Args:          cobra.NoArgs,
		// Execute prints errors once.
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config, err := LoadConfig(opts.configFile, opts.dbPath)
			if err != nil {
				return err
			}
			opts.config = config
			return nil
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			cmd.SilenceUsage = true
			return runTUI(cmd.Context(), opts.config)
		},
	}

	cmd.PersistentFlags().StringVar(&opts.dbPath, "db", "", "path to SQLite database file (default: ~/.tripsee/tripsee.db)")
	cmd.PersistentFlags().StringVar(&opts.configFile, "config", "", "config file (default: ~/.tripsee/config.yaml)")

	addTrips(cmd, opts)
	addItinerary(cmd, opts)
	addExport(cmd, opts)
	addSearch(cmd)
	return cmd
}

func openDatabase(config *Config) (*sql.DB, error) {
	database, err := db.Open(config.DBPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return database, nil
}

func runTUI(ctx context.Context, config *Config) error {
	if config.Debug {
		f, err := tea.LogToFile(filepath.Join(config.ConfigDir, "debug.log"), "tripsee")
		if err != nil {
			return fmt.Errorf("failed to open debug log: %w", err)
		}
		defer f.Close()
	} else {
		log.SetOutput(io.Discard)
	}

	database, err := openDatabase(config)
	if err != nil {
		return err
	}
	defer database.Close()

	settings, err := loadOnboardingSettings(config.ConfigDir)
	if err != nil {
		return fmt.Errorf("failed to load onboarding settings: %w", err)
	}
	if shouldRunOnboarding(settings) {
		users, err := db.CountUsers(ctx, database)
		if err != nil {
			return err
		}
		if users == 0 {
			service := account.NewService(db.UserStore{DB: database}, config.RegisterLatency)
			settings, err = runOnboarding(config.ConfigDir, service)
			if err != nil {
				return fmt.Errorf("failed to run onboarding: %w", err)
			}
			log.Printf("onboarding finished: registered=%t", !settings.Skipped)
		}
	}

	catalog, err := search.NewCatalog(config.SearchLatency)
	if err != nil {
		return err
	}

	log.Printf("starting ui db=%s", config.DBPath)
	p := tea.NewProgram(ui.New(database, catalog, config.ExportDir), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("error running app: %w", err)
	}
	return nil
}

// Execute runs the command tree and exits non-zero on failure.
func Execute(version string) {
	if err := New(version).Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}
