// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package video resolves ranked video candidates for a topic through an
// ordered chain of fallback tiers. Tiers are full substitutes for one
// another, not complements: the first tier that produces any candidates
// wins and later tiers are never invoked. Tiers run sequentially so that
// paid or rate-limited upstreams are not called speculatively.
package video

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/pkg/types"
)

// ErrSourceExhausted reports that every tier either failed or returned
// zero candidates. It is the one failure the chain refuses to paper over
// with fabricated results.
var ErrSourceExhausted = errors.New("video resolution: all tiers exhausted")

// Tier is one fallback strategy. A tier owns its own failure handling
// downstream of its upstream calls; an error return means the chain
// should fall through to the next tier.
type Tier interface {
	Name() string
	Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error)
}

// Chain iterates tiers in order until one yields candidates. Adding,
// removing, or reordering tiers is a data change on Tiers, not a code
// change.
type Chain struct {
	Tiers []Tier
	Log   io.Writer
}

// NewChain assembles the standard four-tier chain: hybrid feed+AI,
// credentialed API, plain feed fallback, and the curated terminal tier.
// classifier may be nil when the AI service is not configured.
func NewChain(cfg types.VideoConfig, classifier classify.Classifier, client *http.Client, log io.Writer) *Chain {
	feed := &FeedClient{Client: client, HTTP: cfg.HTTPConfig}
	return &Chain{
		Tiers: []Tier{
			&HybridTier{Feed: feed, Classifier: classifier, Cfg: cfg, Log: log},
			&APITier{Cfg: cfg, Client: client, Log: log},
			&FeedTier{Feed: feed, Cfg: cfg},
			&CuratedTier{Log: log},
		},
		Log: log,
	}
}

// Resolve runs the chain for one request. It fails only with
// ErrSourceExhausted, and only when every tier came up empty.
func (c *Chain) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	log := c.Log
	if log == nil {
		log = io.Discard
	}

	for _, t := range c.Tiers {
		candidates, err := t.Resolve(ctx, req)
		if err != nil {
			fmt.Fprintf(log, "warning: video tier %s failed: %v\n", t.Name(), err)
			continue
		}
		if len(candidates) > 0 {
			return candidates, nil
		}
	}
	return nil, ErrSourceExhausted
}

// CuratedTier is the terminal tier. It returns an explicit empty result
// with a logged warning: the system never synthesizes placeholder
// resources to mask a total search failure.
type CuratedTier struct {
	Log io.Writer
}

// Name returns the tier identifier.
func (t *CuratedTier) Name() string { return "curated" }

// Resolve logs the exhaustion warning and returns no candidates.
func (t *CuratedTier) Resolve(_ context.Context, req types.Request) ([]types.Candidate, error) {
	log := t.Log
	if log == nil {
		log = io.Discard
	}
	fmt.Fprintf(log, "warning: no video source produced results for %q; returning empty rather than fabricated candidates\n", req.Topic)
	return nil, nil
}
