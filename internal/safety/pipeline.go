// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package safety screens learning requests before any resolution work
// happens. The pipeline runs four stages in a fixed order and
// short-circuits on the first terminal outcome: hard-block keywords, the
// AI nuanced check, disclaimer categories, and age restrictions. A
// blocked decision is terminal for the request; it is never retried.
package safety

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/pkg/types"
)

// Pipeline evaluates requests. Classifier may be nil; the nuanced stage
// then fails open, because a request must never be blocked solely
// because the classification service is unreachable.
type Pipeline struct {
	Classifier classify.Classifier
	Log        io.Writer
}

// NewPipeline returns a screening pipeline.
func NewPipeline(classifier classify.Classifier, log io.Writer) *Pipeline {
	return &Pipeline{Classifier: classifier, Log: log}
}

// Screen runs the four screening stages for one request and returns the
// terminal decision.
func (p *Pipeline) Screen(ctx context.Context, req types.Request) types.SafetyDecision {
	text := strings.ToLower(req.Text())

	// Stage 1: hard-block keywords terminate immediately.
	if d, blocked := checkHardBlock(text); blocked {
		return d
	}

	// Stage 2: AI nuanced check; may terminate or attach a disclaimer.
	d, terminal := p.checkNuanced(ctx, req)
	if terminal {
		return d
	}

	// Stage 3: disclaimer categories, independent of stage 2's verdict.
	// Stage 2's disclaimer stands unless a table rule matches.
	if rule, ok := matchDisclaimer(text); ok {
		d.RequiresDisclaimer = true
		d.DisclaimerType = rule.Type
		d.DisclaimerSeverity = rule.Severity
		d.RequiresAcceptance = rule.RequiresAcceptance
		d.Warnings = append(d.Warnings, rule.Warning)
	}

	// Stage 4: age restrictions.
	if rule, ok := matchAge(text); ok {
		if req.Age > 0 && req.Age < rule.MinAge {
			return types.SafetyDecision{
				Allowed:     false,
				Reason:      fmt.Sprintf("this topic requires a minimum age of %d", rule.MinAge),
				AgeCategory: rule.Category,
				MinimumAge:  rule.MinAge,
			}
		}
		d.AgeCategory = rule.Category
		d.MinimumAge = rule.MinAge
		if req.Age == 0 {
			d.RequiresAgeVerification = true
			d.Warnings = append(d.Warnings,
				fmt.Sprintf("this topic is age-restricted (%d+); age verification is required", rule.MinAge))
		}
	}

	d.Allowed = true
	return d
}

// checkHardBlock matches the request text against the hard-block tables.
func checkHardBlock(text string) (types.SafetyDecision, bool) {
	for category, keywords := range hardBlockKeywords {
		for _, kw := range keywords {
			if !strings.Contains(text, kw) {
				continue
			}
			return types.SafetyDecision{
				Allowed:      false,
				Category:     category,
				Reason:       blockedMessages[category],
				Alternatives: legalAlternatives[kw],
			}, true
		}
	}
	return types.SafetyDecision{}, false
}

// checkNuanced submits the request for an AI intent judgment. A service
// failure is treated as safe (fail open). terminal is true only when the
// service flagged the request unsafe with no disclaimer path.
func (p *Pipeline) checkNuanced(ctx context.Context, req types.Request) (d types.SafetyDecision, terminal bool) {
	if p.Classifier == nil {
		return d, false
	}

	j, err := p.Classifier.JudgeRequest(ctx, req)
	if err != nil {
		if p.Log != nil {
			fmt.Fprintf(p.Log, "warning: AI safety check unavailable, continuing without it: %v\n", err)
		}
		return d, false
	}

	if j.Safe {
		return d, false
	}
	if !j.AllowWithDisclaimer {
		return types.SafetyDecision{Allowed: false, Reason: j.Reason}, true
	}

	d.RequiresDisclaimer = true
	d.DisclaimerType = types.DisclaimerType(j.DisclaimerType)
	d.DisclaimerSeverity = types.SeverityMedium
	if j.Reason != "" {
		d.Warnings = append(d.Warnings, j.Reason)
	}
	return d, false
}

func matchDisclaimer(text string) (disclaimerRule, bool) {
	for _, rule := range disclaimerRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule, true
			}
		}
	}
	return disclaimerRule{}, false
}

func matchAge(text string) (ageRule, bool) {
	for _, rule := range ageRules {
		for _, kw := range rule.Keywords {
			if strings.Contains(text, kw) {
				return rule, true
			}
		}
	}
	return ageRule{}, false
}
