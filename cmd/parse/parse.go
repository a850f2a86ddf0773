// Package parse handles the statement parsing command.
package parse

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/factory"
)

var institution string

// Cmd represents the parse command.
var Cmd = &cobra.Command{
	Use:   "parse",
	Short: "Parse a statement PDF without persisting anything",
	Long: `Parse a statement PDF with the given institution's parser and print the
recovered transactions, statement metadata and any parse errors.`,
	RunE: parseFunc,
}

func init() {
	Cmd.Flags().StringVar(&institution, "institution", "", "Institution name (Chase, HDFC, DCB, Zolve)")
	_ = Cmd.MarkFlagRequired("institution")
}

func parseFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("missing required flag: --input")
	}

	pdf, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	registry := factory.NewRegistry(root.Extractor(), root.Logger())

	ctx, cancel := context.WithTimeout(cmd.Context(), root.ExtractionTimeout())
	defer cancel()

	result := registry.ParseStatement(ctx, pdf, institution)

	if result.AccountNumber != "" {
		fmt.Printf("Account:         %s\n", result.AccountNumber)
	}
	if result.PeriodStart != nil && result.PeriodEnd != nil {
		fmt.Printf("Period:          %s - %s\n",
			result.PeriodStart.Format("2006-01-02"), result.PeriodEnd.Format("2006-01-02"))
	}
	if result.OpeningBalance != nil {
		fmt.Printf("Opening balance: %s\n", result.OpeningBalance.StringFixed(2))
	}
	if result.ClosingBalance != nil {
		fmt.Printf("Closing balance: %s\n", result.ClosingBalance.StringFixed(2))
	}
	fmt.Printf("Transactions:    %d\n\n", len(result.Transactions))

	for _, tx := range result.Transactions {
		fmt.Printf("%s  %-6s %12s  %s\n",
			tx.Date.Format("2006-01-02"), tx.Direction, tx.Amount.StringFixed(2), tx.Description)
	}

	for _, e := range result.Errors {
		fmt.Fprintf(os.Stderr, "error: %s\n", e)
	}
	if result.Failed() {
		return fmt.Errorf("statement parsing failed")
	}
	return nil
}
