// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/learnpath/pkg/types"
)

// addOutputFlags registers the shared output format flags.
func addOutputFlags(cmd *cobra.Command) {
	cmd.Flags().Bool("json", false, "output as JSON")
	cmd.Flags().Bool("yaml", false, "output as YAML")
}

// emit writes v as JSON or YAML per flags and reports whether it did.
func emit(cmd *cobra.Command, v any) (bool, error) {
	if jsonOut, _ := cmd.Flags().GetBool("json"); jsonOut {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return true, enc.Encode(v)
	}
	if yamlOut, _ := cmd.Flags().GetBool("yaml"); yamlOut {
		data, err := yaml.Marshal(v)
		if err != nil {
			return true, err
		}
		_, err = os.Stdout.Write(data)
		return true, err
	}
	return false, nil
}

// printOutcome renders a run outcome as human-readable text.
func printOutcome(o *types.Outcome) {
	if o.RunID != "" {
		fmt.Printf("Run %s\n\n", o.RunID)
	}

	printDecision(o.Safety)
	if !o.Safety.Allowed {
		return
	}

	if o.Result != nil {
		printResult(o.Result)
	}
	if o.Report != nil {
		printReport(o.Report)
	}
}

func printDecision(d types.SafetyDecision) {
	if !d.Allowed {
		fmt.Printf("Blocked: %s\n", d.Reason)
		if len(d.Alternatives) > 0 {
			fmt.Println("\nLegal learning paths you might consider instead:")
			for _, alt := range d.Alternatives {
				fmt.Printf("  - %s\n", alt)
			}
		}
		return
	}

	for _, w := range d.Warnings {
		fmt.Printf("Note: %s\n", w)
	}
	if d.RequiresAgeVerification {
		fmt.Printf("Age-restricted topic (%d+): results assume the requester is of age.\n", d.MinimumAge)
	}
	if d.RequiresDisclaimer || d.RequiresAgeVerification || len(d.Warnings) > 0 {
		fmt.Println()
	}
}

func printResult(r *types.ResearchResult) {
	for _, st := range types.AllSourceTypes {
		sr, ok := r.Sources[st]
		if !ok {
			continue
		}
		fmt.Printf("%s (%d)\n", strings.ToUpper(string(st[0]))+string(st[1:]), len(sr.Candidates))
		if sr.Warning != "" {
			fmt.Printf("  warning: %s\n", sr.Warning)
		}
		for _, c := range sr.Candidates {
			fmt.Printf("  %.2f  %-60s  %s\n", c.Score, truncate(c.Title, 60), c.URL)
		}
	}

	fmt.Printf("\nCoverage (overall %.0f%%):\n", r.OverallCoverage)
	for _, stage := range types.AllStages {
		fmt.Printf("  %-22s %3.0f%%\n", stage, r.Coverage[stage])
	}

	if len(r.Gaps) > 0 {
		fmt.Println("\nGaps:")
		for _, g := range r.Gaps {
			fmt.Printf("  [%-6s] %-18s %s (opportunity %.0f)\n", g.Severity, g.Type, g.Description, g.OpportunityScore)
		}
	}
}

func printReport(rep *types.VerificationReport) {
	fmt.Printf("\nVerification: %s (confidence %.2f)\n", rep.Status, rep.Confidence)
	fmt.Printf("  coverage %.2f, quality %.2f, sequence valid: %v\n",
		rep.CoverageScore, rep.QualityScore, rep.SequenceValid)
	if rep.SequenceReason != "" {
		fmt.Printf("  sequence: %s\n", rep.SequenceReason)
	}
	for _, topic := range rep.MissingTopics {
		fmt.Printf("  missing: %s\n", topic)
	}
	for _, issue := range rep.QualityIssues {
		fmt.Printf("  issue: %s\n", issue)
	}
	if !rep.Ready {
		fmt.Println("  results withheld pending better coverage or quality")
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}
