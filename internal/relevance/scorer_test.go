// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package relevance

import (
	"math"
	"testing"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

func video(title, desc string) types.Candidate {
	return types.Candidate{
		SourceType: types.SourceVideo,
		Title:      title,
		Signals:    types.Signals{Description: desc},
	}
}

func TestScoreBounds(t *testing.T) {
	// Everything that can add score at once, and everything that can
	// subtract, must both stay inside [0,1].
	best := types.Candidate{
		Title: "Neural Networks Tutorial for Beginner Students - Introduction",
		Signals: types.Signals{
			Description:     "a complete neural networks course",
			Views:           1_000_000,
			Likes:           100_000,
			EngagementKnown: true,
			PublishedAt:     time.Now().AddDate(0, -1, 0),
			Category:        "Education",
		},
	}
	worst := video("xqzw", "")

	for _, c := range []types.Candidate{best, worst} {
		score, _ := Score(c, "neural networks", types.LevelBeginner)
		if score < 0 || score > 1 {
			t.Errorf("Score(%q) = %f, want within [0,1]", c.Title, score)
		}
	}
}

func TestScoreIdempotent(t *testing.T) {
	c := video("Learn Neural Networks", "an introduction")
	s1, e1 := Score(c, "neural networks", types.LevelBeginner)
	s2, e2 := Score(c, "neural networks", types.LevelBeginner)
	if s1 != s2 || e1 != e2 {
		t.Errorf("repeated scoring diverged: (%f,%v) vs (%f,%v)", s1, e1, s2, e2)
	}
}

func TestScoreTitleMatch(t *testing.T) {
	tests := []struct {
		name    string
		title   string
		wantMin float64
		wantMax float64
	}{
		{"exact phrase", "Neural Networks Explained Simply", 0.70, 0.85},
		{"full term coverage", "Networks that are Neural: a primer", 0.55, 0.60},
		{"partial coverage", "Neural architectures overview", 0.35, 0.45},
		{"irrelevant title penalized", "Woodworking for fun", 0.0, 0.05},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			score, _ := Score(video(tt.title, ""), "neural networks", types.LevelBeginner)
			if score < tt.wantMin || score > tt.wantMax {
				t.Errorf("score = %f, want in [%f,%f]", score, tt.wantMin, tt.wantMax)
			}
		})
	}
}

func TestScoreLevelAndDescriptionBonuses(t *testing.T) {
	base, _ := Score(video("neural networks", ""), "neural networks", types.LevelBeginner)
	withLevel, _ := Score(video("neural networks for beginner coders", ""), "neural networks", types.LevelBeginner)
	if withLevel <= base {
		t.Errorf("level-term title %f should outscore plain title %f", withLevel, base)
	}

	withDesc, _ := Score(video("neural networks", "all about neural networks"), "neural networks", types.LevelBeginner)
	if got, want := withDesc-base, 0.15; math.Abs(got-want) > 1e-9 {
		t.Errorf("description phrase bonus = %f, want %f", got, want)
	}
}

func TestNonEducationalExcluded(t *testing.T) {
	tests := []struct {
		title string
	}{
		{"Cat Videos Compilation"},
		{"Neural Networks reaction"},
		{"my daily vlog: neural networks edition"},
		{"neural networks gameplay"},
	}
	for _, tt := range tests {
		t.Run(tt.title, func(t *testing.T) {
			_, edu := Score(video(tt.title, ""), "neural networks", types.LevelBeginner)
			if edu {
				t.Errorf("isEducational(%q) = true, want false", tt.title)
			}
		})
	}
}

func TestDurationFilter(t *testing.T) {
	short := types.Candidate{
		Title:   "neural networks",
		Signals: types.Signals{Duration: 45 * time.Second, DurationKnown: true},
	}
	if _, edu := Score(short, "neural networks", types.LevelBeginner); edu {
		t.Error("sub-2-minute video without marker should be rejected")
	}

	// The same duration with an educational marker survives.
	short.Title = "neural networks tutorial"
	if _, edu := Score(short, "neural networks", types.LevelBeginner); !edu {
		t.Error("educational marker should override the duration filter")
	}

	// Unknown duration is not treated as zero.
	unknown := video("neural networks", "")
	if _, edu := Score(unknown, "neural networks", types.LevelBeginner); !edu {
		t.Error("unknown duration must not trip the duration filter")
	}
}

func TestEngagementAndRecencyBonuses(t *testing.T) {
	c := video("neural networks", "")
	base, _ := Score(c, "neural networks", types.LevelBeginner)

	c.Signals.EngagementKnown = true
	c.Signals.Views = 600_000
	c.Signals.Likes = 30_000
	c.Signals.PublishedAt = time.Now().AddDate(0, -6, 0)
	boosted, _ := Score(c, "neural networks", types.LevelBeginner)

	// +0.05 views>100k, +0.05 views>500k, +0.05 like ratio, +0.05 recency.
	if got, want := boosted-base, 0.20; math.Abs(got-want) > 1e-9 {
		t.Errorf("engagement+recency bonus = %f, want %f", got, want)
	}
}
