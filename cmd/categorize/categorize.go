// Package categorize handles the categorization commands.
package categorize

import (
	"fmt"

	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/categorizer"
)

var transactionID string

// Cmd represents the categorize command.
var Cmd = &cobra.Command{
	Use:   "categorize",
	Short: "Categorize the user's transactions",
	Long: `Run the categorization engine over every uncategorized transaction, or a
single one with --tx. Manually categorized transactions are never touched.`,
	RunE: categorizeFunc,
}

func init() {
	Cmd.Flags().StringVar(&transactionID, "tx", "", "Categorize only this transaction id")
}

func categorizeFunc(cmd *cobra.Command, args []string) error {
	db, store, err := root.UserStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	matcher, err := root.Matcher()
	if err != nil {
		return err
	}
	engine := categorizer.NewEngine(store, db, matcher, root.Logger())

	if transactionID != "" {
		assigned, err := engine.CategorizeTransaction(transactionID)
		if err != nil {
			return err
		}
		if assigned {
			fmt.Println("Transaction categorized")
		} else {
			fmt.Println("No rule or pattern matched")
		}
		return nil
	}

	report, err := engine.CategorizeAll()
	if err != nil {
		return err
	}
	fmt.Printf("Total:       %d\n", report.Total)
	fmt.Printf("Categorized: %d\n", report.Categorized)
	if len(report.Failed) > 0 {
		fmt.Printf("Failed:      %d\n", len(report.Failed))
	}
	return nil
}
