// Package learn handles the correction-learning command.
package learn

import (
	"fmt"

	"github.com/spf13/cobra"

	"finflow/cmd/root"
	"finflow/internal/categorizer"
)

// Cmd represents the learn command.
var Cmd = &cobra.Command{
	Use:   "learn",
	Short: "Synthesize category rules from the user's manual corrections",
	Long: `Mine the user's recent category corrections for recurring description
keywords and turn them into categorization rules.`,
	RunE: learnFunc,
}

func learnFunc(cmd *cobra.Command, args []string) error {
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

	created, err := engine.LearnFromCorrections()
	if err != nil {
		return err
	}
	fmt.Printf("Rules created: %d\n", created)
	return nil
}
