// Package flows handles the flow-rule processing command.
package flows

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/flowrules"
)

// Cmd represents the flows command.
var Cmd = &cobra.Command{
	Use:   "flows",
	Short: "Apply flow rules and pair internal transfers",
	Long: `Evaluate the user's flow rules against every transaction, apply the
highest-confidence match per transaction, then pair the legs of internal
transfers across accounts.`,
	RunE: flowsFunc,
}

func flowsFunc(cmd *cobra.Command, args []string) error {
	db, store, err := root.UserStore()
	if err != nil {
		return err
	}
	defer func() { _ = db.Close() }()

	pairing := flowrules.GreedyPairing{}
	if root.Cfg.Flows.PairingTolerance > 0 {
		pairing.Tolerance = decimal.NewFromFloat(root.Cfg.Flows.PairingTolerance)
	}
	engine := flowrules.NewEngine(store, pairing, root.Logger())
	if root.Cfg.Flows.TimeWindowHours > 0 {
		engine.SetTimeWindow(root.Cfg.Flows.TimeWindowHours)
	}

	report, err := engine.ProcessAll()
	if err != nil {
		return err
	}
	fmt.Printf("Processed: %d\n", report.Processed)
	fmt.Printf("Transfers: %d\n", report.Transfers)
	fmt.Printf("Paired:    %d\n", report.Paired)
	if len(report.Failed) > 0 {
		fmt.Printf("Failed:    %d\n", len(report.Failed))
	}
	return nil
}
