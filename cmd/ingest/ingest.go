// Package ingest handles the statement ingestion command.
package ingest

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/categorizer"
	"finflow/internal/factory"
	"finflow/internal/ingest"
)

var (
	institution string
	currency    string
)

// Cmd represents the ingest command.
var Cmd = &cobra.Command{
	Use:   "ingest",
	Short: "Parse a statement PDF and persist its transactions",
	Long: `Parse a statement PDF, persist the transactions into the named account
(created on first use) and categorize the new rows. A statement with fatal
parse errors is rejected without persisting anything.`,
	RunE: ingestFunc,
}

func init() {
	Cmd.Flags().StringVar(&institution, "institution", "", "Institution name (Chase, HDFC, DCB, Zolve)")
	Cmd.Flags().StringVar(&currency, "currency", "USD", "Account currency for new accounts")
	_ = Cmd.MarkFlagRequired("institution")
}

func ingestFunc(cmd *cobra.Command, args []string) error {
	if root.SharedFlags.Input == "" {
		return fmt.Errorf("missing required flag: --input")
	}
	if root.SharedFlags.Account == "" {
		return fmt.Errorf("missing required flag: --account")
	}

	pdf, err := os.ReadFile(root.SharedFlags.Input)
	if err != nil {
		return fmt.Errorf("reading input file: %w", err)
	}

	db, store, err := root.UserStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	accountID, err := store.EnsureAccount(root.SharedFlags.Account, currency, institution)
	if err != nil {
		return err
	}

	matcher, err := root.Matcher()
	if err != nil {
		return err
	}
	engine := categorizer.NewEngine(store, db, matcher, root.Logger())
	registry := factory.NewRegistry(root.Extractor(), root.Logger())
	service := ingest.NewService(registry, store, engine, root.Logger())

	ctx, cancel := context.WithTimeout(cmd.Context(), root.ExtractionTimeout())
	defer cancel()

	result, err := service.IngestStatement(ctx, accountID, pdf, institution)
	for _, line := range result.Skipped {
		fmt.Fprintf(os.Stderr, "skipped: %s\n", line)
	}
	if err != nil {
		return err
	}

	fmt.Printf("Parsed:      %d\n", result.Parsed)
	fmt.Printf("Inserted:    %d\n", result.Inserted)
	fmt.Printf("Categorized: %d\n", result.Categorized)
	return nil
}
