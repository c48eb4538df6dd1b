// Package root contains the root command for the application
package root

import (
	"concilia/internal/categorizer"
	"concilia/internal/common"
	"concilia/internal/config"
	"concilia/internal/ledger"
	"concilia/internal/logging"

	"github.com/spf13/cobra"
)

// CommonFlags represents the flags that are common to multiple commands
type CommonFlags struct {
	Input     string
	Output    string
	AccountID int64
}

var (
	// Log is the shared logger instance for commands
	Log logging.Logger = logging.Default()

	// Cfg is the resolved application configuration
	Cfg *config.Config

	// Cmd is the root command
	Cmd = &cobra.Command{
		Use:   "concilia",
		Short: "A CLI tool to import bank statement reports and reconcile ledger transactions.",
		Long: `concilia is a CLI tool that parses bank statement reports of varying
layouts into ledger transactions and reconciles them against the bank
movements derived from the ledger.`,
		Run: func(cmd *cobra.Command, args []string) {
			Log.Info("Welcome to concilia!")
			Log.Info("Use --help to see available commands")
		},
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			config.LoadEnv(Log)

			cfg, err := config.InitializeConfig()
			if err != nil {
				Log.Fatalf("Error loading configuration: %v", err)
			}
			Cfg = cfg
			Log = logging.NewLogrusAdapterFromLogger(config.ConfigureLoggingFromConfig(cfg))

			common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
		},
	}

	// SharedFlags holds common flags accessible to all commands
	SharedFlags = CommonFlags{}
)

// Init initializes the root command and all flags
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().Int64VarP(&SharedFlags.AccountID, "account", "a", 0, "Bank account id")
}

// NewStore opens the configured ledger file store.
func NewStore() ledger.Store {
	return ledger.NewFileStore(Cfg.Ledger.File, Log)
}

// NewSuggester builds the category suggester selected by configuration,
// or nil when categorization is disabled.
func NewSuggester() categorizer.Suggester {
	if !Cfg.Categorization.Enabled {
		return nil
	}
	store := categorizer.NewCategoryStore(Cfg.Categorization.CategoriesFile)
	if Cfg.AI.Enabled {
		categories, err := store.LoadCategories()
		var names []string
		if err == nil {
			for _, c := range categories {
				names = append(names, c.Name)
			}
		}
		return categorizer.NewGeminiSuggester(Cfg.AI.APIKey, Cfg.AI.Model, names, Log)
	}
	return categorizer.NewKeywordSuggester(store, Log)
}
