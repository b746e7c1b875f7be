// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"fmt"
	"io"
	"sort"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/internal/relevance"
	"github.com/pdiddy/learnpath/pkg/types"
)

// queryVariants are the phrase templates the hybrid tier fans out to the
// feed index. %s is the topic.
var queryVariants = []string{
	"%s tutorial",
	"%s course",
	"%s explained",
	"learn %s",
}

// HybridTier is the first tier: several phrase-variant feed queries,
// deduplicated by video id, then ranked by a single batch call to the AI
// classification service. When the service is absent or fails the tier
// falls back to local relevance scoring rather than failing: the chain
// must never block on the AI service.
type HybridTier struct {
	Feed       *FeedClient
	Classifier classify.Classifier
	Cfg        types.VideoConfig
	Log        io.Writer
}

// Name returns the tier identifier.
func (t *HybridTier) Name() string { return "hybrid" }

// Resolve runs the feed fan-out and AI ranking for one request.
func (t *HybridTier) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	log := t.Log
	if log == nil {
		log = io.Discard
	}

	seen := make(map[string]bool)
	var pool []types.Candidate
	var queryErrs int
	for _, variant := range queryVariants {
		found, err := t.Feed.Search(ctx, fmt.Sprintf(variant, req.Topic))
		if err != nil {
			queryErrs++
			fmt.Fprintf(log, "warning: hybrid feed query %q failed: %v\n", variant, err)
			continue
		}
		for _, c := range found {
			if seen[c.Signals.ProviderID] {
				continue
			}
			seen[c.Signals.ProviderID] = true
			pool = append(pool, c)
		}
	}
	if len(pool) == 0 {
		if queryErrs == len(queryVariants) {
			return nil, fmt.Errorf("all %d feed queries failed", queryErrs)
		}
		return nil, nil
	}

	ranked, ok := t.rankWithAI(ctx, req, pool)
	if !ok {
		ranked = t.rankLocally(req, pool)
	}

	sort.SliceStable(ranked, func(i, j int) bool { return ranked[i].Score > ranked[j].Score })

	max := t.Cfg.MaxResults
	if max <= 0 {
		max = 20
	}
	if len(ranked) > max {
		ranked = ranked[:max]
	}
	return ranked, nil
}

// rankWithAI submits the deduplicated pool for a batch judgment and keeps
// candidates at or above the combined-metric threshold. ok is false when
// the service is unavailable and the caller must score locally; an empty
// kept list with ok=true means the service rejected everything, which is
// a real (empty) tier outcome, not a fallback trigger.
func (t *HybridTier) rankWithAI(ctx context.Context, req types.Request, pool []types.Candidate) (kept []types.Candidate, ok bool) {
	if t.Classifier == nil {
		return nil, false
	}

	log := t.Log
	if log == nil {
		log = io.Discard
	}

	summaries := make([]classify.CandidateSummary, 0, len(pool))
	byID := make(map[string]types.Candidate, len(pool))
	for _, c := range pool {
		summaries = append(summaries, classify.CandidateSummary{
			ID:          c.Signals.ProviderID,
			Title:       c.Title,
			Description: truncate(c.Signals.Description, 300),
		})
		byID[c.Signals.ProviderID] = c
	}

	judgments, err := t.Classifier.JudgeCandidates(ctx, req.Topic, req.Level, summaries)
	if err != nil {
		fmt.Fprintf(log, "warning: AI candidate ranking unavailable, scoring locally: %v\n", err)
		return nil, false
	}

	threshold := t.Cfg.HybridKeepThreshold
	if threshold <= 0 {
		threshold = 0.5
	}

	for _, j := range judgments {
		c, found := byID[j.ID]
		if !found || j.Combined < threshold {
			continue
		}
		c.Score = clamp01(j.Combined)
		c.Verified = j.Educational
		kept = append(kept, c)
	}
	return kept, true
}

// rankLocally applies the relevance scorer to the pool, dropping
// candidates that fail the educational filter.
func (t *HybridTier) rankLocally(req types.Request, pool []types.Candidate) []types.Candidate {
	var kept []types.Candidate
	for _, c := range pool {
		score, educational := relevance.Score(c, req.Topic, req.Level)
		if !educational {
			continue
		}
		c.Score = score
		c.Verified = true
		kept = append(kept, c)
	}
	return kept
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}

func clamp01(f float64) float64 {
	if f < 0 {
		return 0
	}
	if f > 1 {
		return 1
	}
	return f
}
