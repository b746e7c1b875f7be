// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/learnpath/internal/engine"
	"github.com/pdiddy/learnpath/internal/store"
	"github.com/pdiddy/learnpath/pkg/types"
)

var researchCmd = &cobra.Command{
	Use:   "research",
	Short: "Research learning resources for a topic",
	Long: `Research screens the request, resolves all seven source types
concurrently, and verifies the assembled result set. Individual source
failures degrade to warnings; only total video exhaustion fails the run.

With --save the run is persisted to the local run store for later
inspection with 'learnpath results' and recomputation with
'learnpath verify'.`,
	RunE: runResearch,
}

func runResearch(cmd *cobra.Command, args []string) error {
	req, err := requestFromFlags(cmd)
	if err != nil {
		return err
	}

	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	var st *store.Store
	if save, _ := cmd.Flags().GetBool("save"); save {
		st, err = store.Open(cfg.Store)
		if err != nil {
			return err
		}
		defer st.Close()
	}

	e := engine.New(cfg, st, os.Stderr)
	outcome, err := e.Run(context.Background(), req)
	if err != nil {
		return err
	}

	if done, err := emit(cmd, outcome); done {
		return err
	}
	printOutcome(outcome)
	return nil
}

// requestFromFlags builds the Request shared by research and safety.
func requestFromFlags(cmd *cobra.Command) (types.Request, error) {
	topic, _ := cmd.Flags().GetString("topic")
	description, _ := cmd.Flags().GetString("description")
	level, _ := cmd.Flags().GetString("level")
	preferred, _ := cmd.Flags().GetStringSlice("preferred-sources")
	age, _ := cmd.Flags().GetInt("age")

	req := types.Request{
		Topic:            topic,
		Description:      description,
		Level:            types.Level(level),
		PreferredSources: preferred,
		Age:              age,
	}
	if req.Topic == "" {
		return req, fmt.Errorf("--topic is required")
	}
	if !types.ValidLevel(req.Level) {
		return req, fmt.Errorf("unknown level %q: use beginner, intermediate, or advanced", level)
	}
	return req, nil
}

func addRequestFlags(cmd *cobra.Command) {
	cmd.Flags().String("topic", "", "topic to research (required)")
	cmd.Flags().String("description", "", "optional free-text narrowing of the topic")
	cmd.Flags().String("level", "beginner", "target skill level (beginner, intermediate, advanced)")
	cmd.Flags().StringSlice("preferred-sources", nil, "providers or channels to boost")
	cmd.Flags().Int("age", 0, "requester age for age-restricted topics (0 = unknown)")
}

func init() {
	addRequestFlags(researchCmd)
	addOutputFlags(researchCmd)
	researchCmd.Flags().Bool("save", false, "persist the run to the local run store")

	rootCmd.AddCommand(researchCmd)
}
