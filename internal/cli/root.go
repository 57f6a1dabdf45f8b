// Package cli is the thin command-line surface over the ledger service.
// Commands parse input, call the service and print results; all domain
// logic lives below.
package cli

import (
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"fintrack/internal/config"
	"fintrack/internal/log"
	"fintrack/internal/services"
	"fintrack/internal/storage"
)

var (
	flagDBPath string
	flagYear   int
	flagMonth  int
)

var rootCmd = &cobra.Command{
	Use:          "fintrack",
	Short:        "Personal finance tracker",
	Long:         "Track transactions, set category budgets and get spending insights.",
	SilenceUsage: true,
}

// Execute is the entry point called from main.go.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	now := time.Now()
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "", "SQLite database path (overrides SQLITE_DB_PATH)")
	rootCmd.PersistentFlags().IntVar(&flagYear, "year", now.Year(), "Year for month-scoped commands")
	rootCmd.PersistentFlags().IntVar(&flagMonth, "month", int(now.Month()), "Month (1-12) for month-scoped commands")
}

// setup loads .env and config, installs the logger and opens the
// repository. The returned cleanup closes the database.
func setup() (*services.LedgerService, *config.Config, func(), error) {
	// .env is optional; ignore a missing file.
	_ = godotenv.Load()

	cfg := config.Load()
	if flagDBPath != "" {
		cfg.SQLiteDBPath = flagDBPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, nil, err
	}

	level, _ := cfg.SlogLevel()
	log.SetDefault(log.New(log.Config{Level: level, Component: log.ComponentCLI}))

	repo, err := storage.NewSQLiteRepository(cfg.SQLiteDBPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("open ledger database: %w", err)
	}

	return services.NewLedgerService(repo), cfg, func() { repo.Close() }, nil
}

func monthArgs() (int, int, error) {
	if flagMonth < 1 || flagMonth > 12 {
		return 0, 0, fmt.Errorf("invalid month %d: must be 1-12", flagMonth)
	}
	return flagYear, flagMonth, nil
}
