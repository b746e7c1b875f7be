// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package engine composes the screening pipeline, the multi-source
// orchestrator, and the verification gate into the end-to-end research
// flow shared by the CLI and the HTTP API.
package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/internal/research"
	"github.com/pdiddy/learnpath/internal/safety"
	"github.com/pdiddy/learnpath/internal/store"
	"github.com/pdiddy/learnpath/internal/verify"
	"github.com/pdiddy/learnpath/pkg/types"
)

// ErrRunNotVerifiable reports a stored run whose report cannot be
// recomputed because screening blocked it before research ran.
var ErrRunNotVerifiable = errors.New("run has no research result to verify")

// Engine runs research requests end to end. Store may be nil; outcomes
// are then not persisted.
type Engine struct {
	Safety       *safety.Pipeline
	Orchestrator *research.Orchestrator
	Gate         *verify.Gate
	Store        *store.Store
	Log          io.Writer
}

// New wires an engine from configuration. The AI classifier is shared by
// all three components and is absent when no API key is configured; each
// component degrades on its own terms.
func New(cfg types.Config, st *store.Store, log io.Writer) *Engine {
	var classifier classify.Classifier
	aiClient := &http.Client{Timeout: cfg.Research.Timeout}
	if c := classify.NewClaudeClassifier(cfg.Classifier, aiClient, log); c != nil {
		classifier = c
	}

	return &Engine{
		Safety:       safety.NewPipeline(classifier, log),
		Orchestrator: research.NewOrchestrator(cfg, classifier, log),
		Gate:         verify.NewGate(classifier, cfg.Verify, log),
		Store:        st,
		Log:          log,
	}
}

// Run screens, researches, and verifies one request. A blocked request
// yields an outcome carrying only the screening decision. The returned
// error is reserved for total video exhaustion; everything else degrades
// into the outcome itself.
func (e *Engine) Run(ctx context.Context, req types.Request) (*types.Outcome, error) {
	outcome := &types.Outcome{
		RunID:     uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Request:   req,
	}

	outcome.Safety = e.Safety.Screen(ctx, req)
	if !outcome.Safety.Allowed {
		e.save(ctx, outcome)
		return outcome, nil
	}

	result, err := e.Orchestrator.Research(ctx, req)
	if err != nil {
		return nil, fmt.Errorf("researching %q: %w", req.Topic, err)
	}
	outcome.Result = result

	report := e.Gate.Verify(ctx, result, req)
	outcome.Report = &report

	e.save(ctx, outcome)
	return outcome, nil
}

// Reverify recomputes the verification report for a stored run and
// overwrites the stored one.
func (e *Engine) Reverify(ctx context.Context, runID string) (*types.Outcome, error) {
	if e.Store == nil {
		return nil, errors.New("no run store configured")
	}
	outcome, err := e.Store.GetRun(ctx, runID)
	if err != nil {
		return nil, err
	}
	if !outcome.Safety.Allowed || outcome.Result == nil {
		return nil, ErrRunNotVerifiable
	}

	report := e.Gate.Verify(ctx, outcome.Result, outcome.Request)
	outcome.Report = &report
	if err := e.Store.UpdateReport(ctx, runID, &report); err != nil {
		return nil, err
	}
	return outcome, nil
}

// save persists an outcome when a store is configured. Persistence
// failures degrade to a warning; the outcome is still returned.
func (e *Engine) save(ctx context.Context, o *types.Outcome) {
	if e.Store == nil {
		return
	}
	if err := e.Store.SaveRun(ctx, o); err != nil && e.Log != nil {
		fmt.Fprintf(e.Log, "warning: run not persisted: %v\n", err)
	}
}
