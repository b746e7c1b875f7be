// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package classify wraps the external AI classification service behind a
// single interface. The service is a black box that may be absent, slow,
// or return malformed JSON, so every call site must supply an explicit
// default to use when a call fails. That makes the fail-open policy an
// auditable contract at each boundary instead of scattered catch-and-log.
package classify

import (
	"context"
	"fmt"
	"strings"

	"github.com/pdiddy/learnpath/pkg/types"
)

// RequestJudgment is the service's nuanced safety/intent verdict for a
// learning request.
type RequestJudgment struct {
	Safe bool `json:"safe" yaml:"safe"`

	// AllowWithDisclaimer permits an unsafe-flagged request to proceed
	// behind a disclaimer instead of being blocked.
	AllowWithDisclaimer bool `json:"allow_with_disclaimer" yaml:"allow_with_disclaimer"`

	// DisclaimerType names the disclaimer category the service chose.
	DisclaimerType string `json:"disclaimer_type" yaml:"disclaimer_type"`

	// EducationalValue in [0,1] rates genuine learning intent.
	EducationalValue float64 `json:"educational_value" yaml:"educational_value"`

	Reason string `json:"reason" yaml:"reason"`
}

// CandidateSummary is the slice of a candidate sent for batch judgment.
type CandidateSummary struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

// CandidateJudgment is the service's verdict for one batched candidate.
type CandidateJudgment struct {
	ID          string  `json:"id" yaml:"id"`
	Relevance   float64 `json:"relevance" yaml:"relevance"`
	Educational bool    `json:"educational" yaml:"educational"`
	LevelMatch  bool    `json:"level_match" yaml:"level_match"`

	// Combined is the service's single ranking metric in [0,1].
	Combined float64 `json:"combined" yaml:"combined"`
}

// CoverageJudgment is the service's assessment of whether an assembled
// result set covers the requested topic.
type CoverageJudgment struct {
	// Score in [0,1]: how completely the resources cover the topic.
	Score float64 `json:"score" yaml:"score"`

	// MissingTopics lists subtopics not addressed by any resource.
	MissingTopics []string `json:"missing_topics" yaml:"missing_topics"`
}

// Classifier is the AI classification service. Implementations must
// return a *ClassificationError (never panic) on any failure so call
// sites can apply their declared defaults.
type Classifier interface {
	// JudgeRequest rates the safety and educational intent of a request.
	JudgeRequest(ctx context.Context, req types.Request) (RequestJudgment, error)

	// JudgeCandidates rates a batch of candidates for relevance,
	// educational value, and level match in a single call.
	JudgeCandidates(ctx context.Context, topic string, level types.Level, items []CandidateSummary) ([]CandidateJudgment, error)

	// JudgeCoverage rates how completely the given resource titles and
	// descriptions cover the requested topic.
	JudgeCoverage(ctx context.Context, req types.Request, titles, descriptions []string) (CoverageJudgment, error)
}

// ClassificationError wraps any failure of the classification service.
// It is never propagated past a call site: the site's documented default
// applies instead.
type ClassificationError struct {
	Op  string
	Err error
}

func (e *ClassificationError) Error() string {
	return fmt.Sprintf("classification service: %s: %v", e.Op, e.Err)
}

func (e *ClassificationError) Unwrap() error { return e.Err }

// extractJSON returns the JSON object or array embedded in a model
// response, tolerating surrounding prose and Markdown code fences.
func extractJSON(text string) (string, error) {
	text = strings.TrimSpace(text)
	if after, ok := strings.CutPrefix(text, "```json"); ok {
		text = after
	} else if after, ok := strings.CutPrefix(text, "```"); ok {
		text = after
	}
	text = strings.TrimSuffix(strings.TrimSpace(text), "```")
	text = strings.TrimSpace(text)

	start := strings.IndexAny(text, "{[")
	if start < 0 {
		return "", fmt.Errorf("no JSON found in response")
	}
	var end int
	if text[start] == '{' {
		end = strings.LastIndex(text, "}")
	} else {
		end = strings.LastIndex(text, "]")
	}
	if end < start {
		return "", fmt.Errorf("unterminated JSON in response")
	}
	return text[start : end+1], nil
}
