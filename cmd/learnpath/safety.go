// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"net/http"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/internal/safety"
)

var safetyCmd = &cobra.Command{
	Use:   "safety",
	Short: "Screen a request without running research",
	Long: `Safety runs only the screening pipeline: hard-block keywords, the AI
nuanced check (when an API key is configured), disclaimer categories, and
age restrictions. Useful for previewing whether a request would be
allowed and under what conditions.`,
	RunE: runSafety,
}

func runSafety(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var classifier classify.Classifier
	aiClient := &http.Client{Timeout: cfg.Research.Timeout}
	if c := classify.NewClaudeClassifier(cfg.Classifier, aiClient, os.Stderr); c != nil {
		classifier = c
	}

	decision := safety.NewPipeline(classifier, os.Stderr).Screen(context.Background(), req)

	if done, err := emit(cmd, decision); done {
		return err
	}
	printDecision(decision)
	if decision.Allowed {
		cmd.Println("Allowed.")
	}
	return nil
}

func init() {
	addRequestFlags(safetyCmd)
	addOutputFlags(safetyCmd)

	rootCmd.AddCommand(safetyCmd)
}
