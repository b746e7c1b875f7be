// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package research fans a learning request out to every source resolver,
// aggregates the results, and derives per-stage coverage and gaps. The
// resolvers run concurrently with no shared mutable state: each owns its
// buffer and results merge only after all resolvers settle.
package research

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/internal/sources"
	"github.com/pdiddy/learnpath/internal/video"
	"github.com/pdiddy/learnpath/pkg/types"
)

// videoResolver adapts the tiered chain to the Resolver interface so the
// orchestrator treats all seven sources uniformly.
type videoResolver struct {
	chain *video.Chain
}

func (v *videoResolver) SourceType() types.SourceType { return types.SourceVideo }

func (v *videoResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	return v.chain.Resolve(ctx, req)
}

// Orchestrator runs the multi-source fan-out.
type Orchestrator struct {
	Resolvers []sources.Resolver
	Cfg       types.ResearchConfig
	Log       io.Writer
}

// NewOrchestrator wires the standard seven resolvers: the video chain and
// the six single-tier web resolvers.
func NewOrchestrator(cfg types.Config, classifier classify.Classifier, log io.Writer) *Orchestrator {
	client := &http.Client{Timeout: cfg.Research.Timeout}
	videoClient := &http.Client{Timeout: cfg.Video.Timeout}
	return &Orchestrator{
		Resolvers: []sources.Resolver{
			&videoResolver{chain: video.NewChain(cfg.Video, classifier, videoClient, log)},
			&sources.AcademicResolver{Client: client, Cfg: cfg.Research},
			&sources.BookResolver{Client: client, Cfg: cfg.Research},
			&sources.CertificationResolver{Client: client, Cfg: cfg.Research},
			&sources.GovernmentResolver{Client: client, Cfg: cfg.Research},
			&sources.ArticleResolver{Client: client, Cfg: cfg.Research},
			&sources.PodcastResolver{Client: client, Cfg: cfg.Research},
		},
		Cfg: cfg.Research,
		Log: log,
	}
}

// Research resolves all sources for one request and assembles the
// aggregate. A failing resolver degrades to an empty SourceResult with a
// warning; the single hard failure is video exhaustion, which is the one
// case the orchestrator refuses to mask with an empty result set.
func (o *Orchestrator) Research(ctx context.Context, req types.Request) (*types.ResearchResult, error) {
	log := o.Log
	if log == nil {
		log = io.Discard
	}

	type resolved struct {
		sourceType types.SourceType
		candidates []types.Candidate
		err        error
	}

	ch := make(chan resolved, len(o.Resolvers))
	var wg sync.WaitGroup
	for _, r := range o.Resolvers {
		wg.Add(1)
		go func(r sources.Resolver) {
			defer wg.Done()
			candidates, err := r.Resolve(ctx, req)
			ch <- resolved{sourceType: r.SourceType(), candidates: candidates, err: err}
		}(r)
	}

	go func() {
		wg.Wait()
		close(ch)
	}()

	result := &types.ResearchResult{
		Request: req,
		Sources: make(map[types.SourceType]types.SourceResult, len(o.Resolvers)),
	}

	var videoExhausted error
	for res := range ch {
		sr := types.SourceResult{SourceType: res.sourceType, Candidates: res.candidates}
		if res.err != nil {
			if res.sourceType == types.SourceVideo && errors.Is(res.err, video.ErrSourceExhausted) {
				videoExhausted = res.err
			}
			sr.Candidates = nil
			sr.Warning = res.err.Error()
			result.Warnings = append(result.Warnings, fmt.Sprintf("%s: %v", res.sourceType, res.err))
			fmt.Fprintf(log, "warning: %s resolver degraded: %v\n", res.sourceType, res.err)
		}
		result.Sources[res.sourceType] = sr
	}

	if videoExhausted != nil {
		return nil, videoExhausted
	}

	result.Coverage, result.OverallCoverage = computeCoverage(result.Sources)
	result.Gaps = deriveGaps(req, result)
	return result, nil
}
