// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package sources implements the single-tier web-query resolvers for the
// non-video source types. Each resolver queries one public index, maps
// fields heuristically into candidates, and hands every candidate through
// the relevance scorer and educational filter. Resolvers are peers behind
// one interface; the orchestrator treats them uniformly.
package sources

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"sort"

	"github.com/pdiddy/learnpath/internal/relevance"
	"github.com/pdiddy/learnpath/pkg/types"
)

// Resolver resolves candidates for a single source type.
type Resolver interface {
	SourceType() types.SourceType
	Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error)
}

// getJSON performs a GET and decodes a JSON response body.
func getJSON(ctx context.Context, client *http.Client, cfg types.HTTPConfig, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", cfg.UserAgent)

	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing response: %w", err)
	}
	return nil
}

// scoreAndRank scores every candidate, drops the ones failing the
// educational filter, and returns the top max by score.
func scoreAndRank(candidates []types.Candidate, req types.Request, max int) []types.Candidate {
	var kept []types.Candidate
	for _, c := range candidates {
		score, educational := relevance.Score(c, req.Topic, req.Level)
		if !educational {
			continue
		}
		c.Score = score
		c.Verified = true
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })

	if max <= 0 {
		max = 10
	}
	if len(kept) > max {
		kept = kept[:max]
	}
	return kept
}
