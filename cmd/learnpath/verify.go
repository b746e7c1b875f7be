// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learnpath/internal/engine"
	"github.com/pdiddy/learnpath/internal/store"
)

var verifyCmd = &cobra.Command{
	Use:   "verify [run-id]",
	Short: "Recompute the verification report for a stored run",
	Long: `Verify reloads a saved run from the run store, recomputes its
verification report against the current thresholds, and overwrites the
stored report. Reports are replaced whole; they are never merged.`,
	Args: cobra.ExactArgs(1),
	RunE: runVerify,
}

func runVerify(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st, err := store.Open(cfg.Store)
	if err != nil {
		return err
	}
	defer st.Close()

	e := engine.New(cfg, st, os.Stderr)
	outcome, err := e.Reverify(context.Background(), args[0])
	if err != nil {
		return err
	}

	if done, err := emit(cmd, outcome.Report); done {
		return err
	}
	printReport(outcome.Report)
	return nil
}

func init() {
	addOutputFlags(verifyCmd)

	rootCmd.AddCommand(verifyCmd)
}
