// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package relevance scores candidates against a learning request and
// filters out non-educational content. Scoring is a pure function of its
// inputs: no I/O, no hidden state, identical inputs always produce
// identical output.
package relevance

import (
	"math"
	"strings"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

// educationalMarkers are title terms that signal instructional content.
var educationalMarkers = []string{
	"tutorial", "guide", "explained", "course", "learn", "introduction",
}

// nonEducationalMarkers hard-exclude a candidate regardless of score.
var nonEducationalMarkers = []string{
	"music video", "vlog", "prank", "compilation", "meme", "shorts",
	"challenge", "gameplay", "reaction", "unboxing",
}

const (
	baseScore = 0.3

	minDuration = 2 * time.Minute
	maxDuration = 120 * time.Minute

	// recencyWindow is how far back a publication date still earns the
	// recency bonus.
	recencyWindow = 24 * 30 * 24 * time.Hour
)

// Score rates a candidate's relevance to topic at the given level and
// reports whether the candidate is educational content at all. The score
// is always in [0,1]. The two outputs are independent: a low-scored but
// valid candidate survives for ranking, while clearly non-educational
// content is excluded no matter how well its title matches.
func Score(c types.Candidate, topic string, level types.Level) (float64, bool) {
	title := strings.ToLower(c.Title)
	desc := strings.ToLower(c.Signals.Description)
	phrase := strings.ToLower(strings.TrimSpace(topic))
	terms := topicTerms(phrase)

	score := baseScore

	// Title match: an exact phrase hit dominates; otherwise term coverage
	// decides, and a title with no topic terms at all is penalized rather
	// than merely unrewarded.
	exact := phrase != "" && strings.Contains(title, phrase)
	coverage := termCoverage(title, terms)
	switch {
	case exact:
		score += 0.4
	case coverage >= 0.7:
		score += 0.25
	case coverage > 0:
		score += 0.1
	default:
		score -= 0.3
	}

	hasMarker := containsAny(title, educationalMarkers)
	if hasMarker {
		score += 0.1
	}

	if level != "" && strings.Contains(title, string(level)) {
		score += 0.1
	}

	if phrase != "" && strings.Contains(desc, phrase) {
		score += 0.15
	} else if termCoverage(desc, terms) >= 0.5 {
		score += 0.08
	}

	if c.Signals.EngagementKnown {
		if c.Signals.Views > 100_000 {
			score += 0.05
		}
		if c.Signals.Views > 500_000 {
			score += 0.05
		}
		if c.Signals.Views > 0 && float64(c.Signals.Likes)/float64(c.Signals.Views) > 0.02 {
			score += 0.05
		}
	}

	if !c.Signals.PublishedAt.IsZero() && time.Since(c.Signals.PublishedAt) <= recencyWindow {
		score += 0.05
	}

	if strings.EqualFold(c.Signals.Category, "education") {
		score += 0.1
	}

	score = math.Max(0, math.Min(1, score))

	return score, isEducational(title, desc, c.Signals, exact, coverage, hasMarker)
}

// isEducational applies the hard filter. Denylisted markers always
// reject; implausible durations reject unless an educational marker
// vouches for the title; otherwise either a marker or a passing topic
// match accepts.
func isEducational(title, desc string, sig types.Signals, exact bool, coverage float64, hasMarker bool) bool {
	if containsAny(title, nonEducationalMarkers) || containsAny(desc, nonEducationalMarkers) {
		return false
	}
	if sig.DurationKnown && (sig.Duration < minDuration || sig.Duration > maxDuration) && !hasMarker {
		return false
	}
	return hasMarker || exact || coverage >= 0.7
}

// topicTerms splits the topic into matchable terms, skipping short words
// that would match incidentally.
func topicTerms(topic string) []string {
	var terms []string
	for _, f := range strings.Fields(topic) {
		if len(f) > 3 {
			terms = append(terms, f)
		}
	}
	return terms
}

// termCoverage returns the fraction of terms present in text.
func termCoverage(text string, terms []string) float64 {
	if len(terms) == 0 {
		return 0
	}
	hits := 0
	for _, t := range terms {
		if strings.Contains(text, t) {
			hits++
		}
	}
	return float64(hits) / float64(len(terms))
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
