// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learnpath/internal/store"
)

var resultsCmd = &cobra.Command{
	Use:   "results",
	Short: "List and inspect stored research runs",
}

var resultsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored runs, newest first",
	RunE:  runResultsList,
}

func runResultsList(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	limit, _ := cmd.Flags().GetInt("limit")
	runs, err := st.ListRuns(context.Background(), limit)
	if err != nil {
		return err
	}

	if done, err := emit(cmd, runs); done {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("No stored runs.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %-12s  %s\n",
		"ID", "Created", "Topic", "Level", "Status")
	for _, r := range runs {
		fmt.Fprintf(os.Stdout, "%-36s  %-20s  %-30s  %-12s  %s\n",
			r.ID, r.CreatedAt.Local().Format(time.DateTime),
			truncate(r.Topic, 30), r.Level, r.Status)
	}
	return nil
}

var resultsShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show one stored run in full",
	Args:  cobra.ExactArgs(1),
	RunE:  runResultsShow,
}

func runResultsShow(cmd *cobra.Command, args []string) error {
	st, err := openStore()
	if err != nil {
		return err
	}
	defer st.Close()

	outcome, err := st.GetRun(context.Background(), args[0])
	if err != nil {
		return err
	}

	if done, err := emit(cmd, outcome); done {
		return err
	}
	printOutcome(outcome)
	return nil
}

func openStore() (*store.Store, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}
	return store.Open(cfg.Store)
}

func init() {
	resultsListCmd.Flags().Int("limit", 50, "maximum runs to list")
	addOutputFlags(resultsListCmd)
	addOutputFlags(resultsShowCmd)

	resultsCmd.AddCommand(resultsListCmd)
	resultsCmd.AddCommand(resultsShowCmd)
	rootCmd.AddCommand(resultsCmd)
}
