// Package root contains the root command for the application
package root

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"fjacquet/expense-cli/internal/activity"
	"fjacquet/expense-cli/internal/config"
	"fjacquet/expense-cli/internal/currencyutils"
	"fjacquet/expense-cli/internal/export"
	"fjacquet/expense-cli/internal/ledger"
	"fjacquet/expense-cli/internal/report"
	"fjacquet/expense-cli/internal/suggest"
	"fjacquet/expense-cli/internal/taskstore"
)

var (
	// Log is the shared logger instance for commands
	Log = logrus.New()

	// Cfg holds the resolved application configuration
	Cfg *config.Config

	// LedgerFile overrides the configured ledger path when set
	LedgerFile string

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "expense-cli",
		Short: "A CLI tool to track expenses, budgets and monthly reports.",
		Long: `expense-cli records expenses in a JSON ledger, tracks monthly
budgets and produces reports, comparisons and CSV exports. It also
bundles a small task tracker and a GitHub activity viewer.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to expense-cli!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv()

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
			Log = config.ConfigureLoggingFromConfig(cfg)

			// Set the configured logger for all packages
			ledger.SetLogger(Log)
			report.SetLogger(Log)
			export.SetLogger(Log)
			suggest.SetLogger(Log)
			taskstore.SetLogger(Log)
			activity.SetLogger(Log)
			currencyutils.SetLogger(Log)
		},
	}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&LedgerFile, "ledger", "l", "", "Ledger file (overrides configuration)")
}

// OpenLedger builds the ledger handle from flags and configuration.
func OpenLedger() *ledger.Ledger {
	path := LedgerFile
	if path == "" {
		path = Cfg.Ledger.File
	}

	var opts []ledger.Option
	if !Cfg.Ledger.BackupEnabled {
		opts = append(opts, ledger.WithoutBackup())
	}
	return ledger.New(path, opts...)
}

// OpenTaskStore builds the task store handle from configuration.
func OpenTaskStore() *taskstore.Store {
	return taskstore.New(Cfg.Tasks.File)
}

// Now returns the reference time used for month resolution.
func Now() time.Time {
	return time.Now()
}
