// Package root contains the root command and the shared wiring every
// subcommand builds on.
package root

import (
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"finflow/internal/common"
	"finflow/internal/config"
	"finflow/internal/database"
	"finflow/internal/logging"
	"finflow/internal/merchants"
	"finflow/internal/textextract"
)

// CommonFlags are the flags shared by multiple commands.
type CommonFlags struct {
	Input   string
	Output  string
	User    string
	Account string
}

var (
	// Log is the shared logger instance for commands.
	Log = logrus.New()

	// Cfg is the loaded configuration, populated in PersistentPreRunE.
	Cfg *config.Config

	// SharedFlags are accessible to all commands.
	SharedFlags = CommonFlags{}

	// Cmd is the root command.
	Cmd = &cobra.Command{
		Use:   "finflow",
		Short: "Parse bank statements, categorize transactions and reconcile transfers.",
		Long: `finflow ingests bank-statement PDFs (Chase, HDFC, DCB, Zolve), extracts
and persists transactions, categorizes them with user rules and merchant
patterns, and pairs internal transfers between accounts.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			Log.Info("Welcome to finflow!")
			Log.Info("Use --help to see available commands")
			return nil
		},
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config.LoadEnv()
			cfg, err := config.Load()
			if err != nil {
				return err
			}
			Cfg = cfg
			Log = config.ConfigureLogging(cfg)
			common.SetLogger(logging.NewLogrusAdapterFromLogger(Log))
			if cfg.CSV.Delimiter != "" {
				common.SetDelimiter([]rune(cfg.CSV.Delimiter)[0])
			}
			return nil
		},
	}
)

// Init registers the persistent flags on the root command.
func Init() {
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Input, "input", "i", "", "Input PDF file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Output, "output", "o", "", "Output file")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.User, "user", "u", "demo", "User id to operate on")
	Cmd.PersistentFlags().StringVarP(&SharedFlags.Account, "account", "a", "", "Account name")
}

// Logger returns the shared logger behind the logging interface.
func Logger() logging.Logger {
	return logging.NewLogrusAdapterFromLogger(Log)
}

// OpenDatabase opens the configured database, applies the schema and seeds
// the system category catalog.
func OpenDatabase() (*database.DB, error) {
	db, err := database.Open(Cfg.Database.Path)
	if err != nil {
		return nil, err
	}
	if err := db.Init(); err != nil {
		return nil, err
	}
	if err := db.Seed(); err != nil {
		return nil, err
	}
	return db, nil
}

// UserStore opens the database and returns a store bound to the --user
// flag, creating the user row on first use.
func UserStore() (*database.DB, *database.UserStore, error) {
	db, err := OpenDatabase()
	if err != nil {
		return nil, nil, err
	}
	userID := SharedFlags.User
	if err := db.EnsureUser(userID, userID+"@local", userID, "USD"); err != nil {
		return nil, nil, err
	}
	return db, db.ForUser(userID), nil
}

// Extractor builds the PDF text extractor from configuration.
func Extractor() *textextract.CommandExtractor {
	return textextract.NewCommandExtractor(textextract.Options{
		MinTextLength: Cfg.Extraction.MinTextLength,
		OCREnabled:    Cfg.Extraction.OCREnabled,
		PdftotextBin:  Cfg.Extraction.PdftotextBin,
		TesseractBin:  Cfg.Extraction.TesseractBin,
	}, Logger())
}

// ExtractionTimeout returns the configured per-statement extraction deadline.
func ExtractionTimeout() time.Duration {
	return time.Duration(Cfg.Extraction.TimeoutSeconds) * time.Second
}

// Matcher loads the merchant pattern table, honoring a configured override
// file.
func Matcher() (*merchants.Matcher, error) {
	return merchants.Load(Cfg.Merchants.PatternsFile, Logger())
}
