// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/pdiddy/learnpath/pkg/types"
)

// mockTier counts its invocations and returns fixed output.
type mockTier struct {
	name       string
	candidates []types.Candidate
	err        error
	calls      int
}

func (m *mockTier) Name() string { return m.name }

func (m *mockTier) Resolve(_ context.Context, _ types.Request) ([]types.Candidate, error) {
	m.calls++
	return m.candidates, m.err
}

func cand(title string, score float64) types.Candidate {
	return types.Candidate{SourceType: types.SourceVideo, Title: title, Score: score}
}

func TestChainFirstTierWins(t *testing.T) {
	t1 := &mockTier{name: "one", candidates: []types.Candidate{cand("a", 0.8)}}
	t2 := &mockTier{name: "two", candidates: []types.Candidate{cand("b", 0.9)}}
	chain := &Chain{Tiers: []Tier{t1, t2}}

	got, err := chain.Resolve(context.Background(), types.Request{Topic: "go"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "a" {
		t.Errorf("Resolve() = %v, want tier one's candidates", got)
	}
	// Later tiers must never be invoked once a tier produced results.
	if t1.calls != 1 || t2.calls != 0 {
		t.Errorf("calls = (%d, %d), want (1, 0)", t1.calls, t2.calls)
	}
}

func TestChainFallsThroughErrorsAndEmpties(t *testing.T) {
	t1 := &mockTier{name: "one", err: errors.New("upstream down")}
	t2 := &mockTier{name: "two"} // empty, no error
	t3 := &mockTier{name: "three", candidates: []types.Candidate{cand("c", 0.6)}}
	var log bytes.Buffer
	chain := &Chain{Tiers: []Tier{t1, t2, t3}, Log: &log}

	got, err := chain.Resolve(context.Background(), types.Request{Topic: "go"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0].Title != "c" {
		t.Errorf("Resolve() = %v, want tier three's candidates", got)
	}
	if t1.calls != 1 || t2.calls != 1 || t3.calls != 1 {
		t.Errorf("calls = (%d, %d, %d), want (1, 1, 1)", t1.calls, t2.calls, t3.calls)
	}
	if !bytes.Contains(log.Bytes(), []byte("tier one failed")) {
		t.Errorf("log = %q, want tier failure warning", log.String())
	}
}

func TestChainExhaustion(t *testing.T) {
	t1 := &mockTier{name: "one", err: errors.New("down")}
	t2 := &mockTier{name: "two"}
	chain := &Chain{Tiers: []Tier{t1, t2}}

	_, err := chain.Resolve(context.Background(), types.Request{Topic: "go"})
	if !errors.Is(err, ErrSourceExhausted) {
		t.Errorf("Resolve() error = %v, want ErrSourceExhausted", err)
	}
}

func TestCuratedTierNeverFabricates(t *testing.T) {
	var log bytes.Buffer
	tier := &CuratedTier{Log: &log}

	got, err := tier.Resolve(context.Background(), types.Request{Topic: "bee mating cycle"})
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 0 {
		t.Errorf("curated tier returned %d candidates, want 0", len(got))
	}
	if !bytes.Contains(log.Bytes(), []byte("bee mating cycle")) {
		t.Errorf("log = %q, want warning naming the topic", log.String())
	}
}

func TestParseISODuration(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{"PT15M33S", "15m33s", false},
		{"PT1H2M3S", "1h2m3s", false},
		{"PT45S", "45s", false},
		{"PT2H", "2h0m0s", false},
		{"P1DT2H", "", true},
		{"15m", "", true},
		{"PT", "0s", false},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := parseISODuration(tt.in)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("parseISODuration(%q) = %v, want error", tt.in, got)
				}
				return
			}
			if err != nil {
				t.Fatalf("parseISODuration(%q) error = %v", tt.in, err)
			}
			if got.String() != tt.want {
				t.Errorf("parseISODuration(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestMatchesPreferred(t *testing.T) {
	tests := []struct {
		origin    string
		preferred []string
		want      bool
	}{
		{"freeCodeCamp.org", []string{"freecodecamp"}, true},
		{"3Blue1Brown", []string{"freecodecamp", "3blue1brown"}, true},
		{"Random Channel", []string{"freecodecamp"}, false},
		{"", []string{"freecodecamp"}, false},
		{"Some Channel", nil, false},
	}
	for i, tt := range tests {
		if got := matchesPreferred(tt.origin, tt.preferred); got != tt.want {
			t.Errorf("case %d: matchesPreferred(%q, %v) = %v, want %v", i, tt.origin, tt.preferred, got, tt.want)
		}
	}
}
