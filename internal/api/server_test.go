// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pdiddy/learnpath/internal/engine"
	"github.com/pdiddy/learnpath/internal/research"
	"github.com/pdiddy/learnpath/internal/safety"
	"github.com/pdiddy/learnpath/internal/sources"
	"github.com/pdiddy/learnpath/internal/store"
	"github.com/pdiddy/learnpath/internal/verify"
	"github.com/pdiddy/learnpath/pkg/types"
)

type stubResolver struct {
	st         types.SourceType
	candidates []types.Candidate
}

func (s *stubResolver) SourceType() types.SourceType { return s.st }

func (s *stubResolver) Resolve(_ context.Context, _ types.Request) ([]types.Candidate, error) {
	return s.candidates, nil
}

func testServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.Open(types.StoreConfig{DBPath: filepath.Join(t.TempDir(), "runs.db")})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { st.Close() })

	videos := make([]types.Candidate, 5)
	for i := range videos {
		videos[i] = types.Candidate{
			SourceType: types.SourceVideo,
			Title:      "Juggling Basics",
			Origin:     string(rune('a' + i)),
			Signals:    types.Signals{Description: "lesson", Views: 300_000, EngagementKnown: true},
			Score:      0.8,
		}
	}
	resolvers := []sources.Resolver{&stubResolver{st: types.SourceVideo, candidates: videos}}
	for _, src := range types.AllSourceTypes[1:] {
		resolvers = append(resolvers, &stubResolver{st: src})
	}

	cfg := types.DefaultConfig()
	e := &engine.Engine{
		Safety:       safety.NewPipeline(nil, nil),
		Orchestrator: &research.Orchestrator{Resolvers: resolvers, Cfg: cfg.Research},
		Gate:         verify.NewGate(nil, cfg.Verify, nil),
		Store:        st,
	}
	return NewServer(e, cfg.Serve)
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthz(t *testing.T) {
	rec := doJSON(t, testServer(t).Handler(), http.MethodGet, "/healthz", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
}

func TestResearchEndpoint(t *testing.T) {
	h := testServer(t).Handler()
	rec := doJSON(t, h, http.MethodPost, "/api/research", `{"topic":"juggling","level":"beginner"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	var outcome types.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatal(err)
	}
	if outcome.RunID == "" || !outcome.Safety.Allowed {
		t.Errorf("outcome = %+v, want allowed run with id", outcome)
	}
	if outcome.Report == nil {
		t.Error("outcome missing verification report")
	}

	// The run is immediately retrievable.
	rec = doJSON(t, h, http.MethodGet, "/api/runs/"+outcome.RunID, "")
	if rec.Code != http.StatusOK {
		t.Errorf("GET run status = %d", rec.Code)
	}
}

func TestResearchEndpointValidation(t *testing.T) {
	h := testServer(t).Handler()
	tests := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"bad json", `{"topic"`},
		{"bad level", `{"topic":"go","level":"wizard"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, h, http.MethodPost, "/api/research", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestSafetyEndpointBlocks(t *testing.T) {
	h := testServer(t).Handler()
	rec := doJSON(t, h, http.MethodPost, "/api/safety", `{"topic":"how to steal cars quickly"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}
	var d types.SafetyDecision
	if err := json.Unmarshal(rec.Body.Bytes(), &d); err != nil {
		t.Fatal(err)
	}
	if d.Allowed {
		t.Error("Allowed = true, want screening block")
	}
}

func TestListRuns(t *testing.T) {
	h := testServer(t).Handler()

	rec := doJSON(t, h, http.MethodGet, "/api/runs", "")
	if rec.Code != http.StatusOK || strings.TrimSpace(rec.Body.String()) != "[]" {
		t.Fatalf("empty list = %d %q, want 200 []", rec.Code, rec.Body.String())
	}

	doJSON(t, h, http.MethodPost, "/api/research", `{"topic":"juggling"}`)
	rec = doJSON(t, h, http.MethodGet, "/api/runs", "")

	var runs []store.RunSummary
	if err := json.Unmarshal(rec.Body.Bytes(), &runs); err != nil {
		t.Fatal(err)
	}
	if len(runs) != 1 || runs[0].Topic != "juggling" {
		t.Errorf("runs = %+v, want the stored run", runs)
	}
}

func TestGetRunNotFound(t *testing.T) {
	rec := doJSON(t, testServer(t).Handler(), http.MethodGet, "/api/runs/nope", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", rec.Code)
	}
}

func TestReverifyEndpoint(t *testing.T) {
	h := testServer(t).Handler()

	rec := doJSON(t, h, http.MethodPost, "/api/research", `{"topic":"juggling"}`)
	var outcome types.Outcome
	if err := json.Unmarshal(rec.Body.Bytes(), &outcome); err != nil {
		t.Fatal(err)
	}

	rec = doJSON(t, h, http.MethodPost, "/api/runs/"+outcome.RunID+"/verify", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body = %s", rec.Code, rec.Body.String())
	}

	// Blocked runs cannot be reverified.
	blocked := doJSON(t, h, http.MethodPost, "/api/research", `{"topic":"how to steal cars quickly"}`)
	if err := json.Unmarshal(blocked.Body.Bytes(), &outcome); err != nil {
		t.Fatal(err)
	}
	rec = doJSON(t, h, http.MethodPost, "/api/runs/"+outcome.RunID+"/verify", "")
	if rec.Code != http.StatusConflict {
		t.Errorf("status = %d, want 409 for blocked run", rec.Code)
	}
}
