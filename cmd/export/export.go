// Package export handles the CSV export command.
package export

import (
	"fmt"

	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/common"
	"finflow/internal/models"
)

// Cmd represents the export command.
var Cmd = &cobra.Command{
	Use:   "export",
	Short: "Export the user's transactions to CSV",
	Long: `Write the user's transactions to a CSV file, optionally limited to one
account with --account.`,
	RunE: exportFunc,
}

func exportFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Output == "" {
		return fmt.Errorf("missing required flag: --output")
	}

	db, store, err := root.UserStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	var accountID *string
	if root.SharedFlags.Account != "" {
		account, err := store.EnsureAccount(root.SharedFlags.Account, "USD", "")
		if err != nil {
			return err
		}
		accountID = &account
	}

	transactions, err := store.ListTransactions(accountID)
	if err != nil {
		return err
	}
	if transactions == nil {
		transactions = []models.Transaction{}
	}

	if err := common.WriteTransactionsToCSV(transactions, root.SharedFlags.Output); err != nil {
		return err
	}
	fmt.Printf("Exported %d transactions to %s\n", len(transactions), root.SharedFlags.Output)
	return nil
}
