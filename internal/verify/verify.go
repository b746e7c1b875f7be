// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package verify decides whether an assembled research result is fit to
// show the user. The gate is a quality signal, not a correctness gate:
// every check fails open, and an unexpected failure anywhere yields the
// verification_failed status with delivery still permitted.
package verify

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/pdiddy/learnpath/internal/classify"
	"github.com/pdiddy/learnpath/pkg/types"
)

// Defaults applied when the coverage check's AI service is unavailable.
const (
	defaultCoverageScore = 0.8
	failureConfidence    = 0.5
)

// beginnerMarkers and advancedMarkers drive the sequence check. They are
// scanned against lowercased titles.
var beginnerMarkers = []string{
	"introduction", "intro", "beginner", "basics", "fundamentals",
	"getting started", "101", "learn", "first steps",
}

var advancedMarkers = []string{
	"advanced", "expert", "deep dive", "optimization", "internals",
	"mastery", "in depth",
}

// Gate verifies research results. Classifier may be nil; the coverage
// check then uses its optimistic default.
type Gate struct {
	Classifier classify.Classifier
	Cfg        types.VerifyConfig
	Log        io.Writer
}

// NewGate returns a verification gate.
func NewGate(classifier classify.Classifier, cfg types.VerifyConfig, log io.Writer) *Gate {
	return &Gate{Classifier: classifier, Cfg: cfg, Log: log}
}

// Verify runs the three checks and aggregates them into a report. It
// never returns an error: any panic or unexpected condition degrades to
// the verification_failed status with ready=true.
func (g *Gate) Verify(ctx context.Context, result *types.ResearchResult, req types.Request) (report types.VerificationReport) {
	defer func() {
		if r := recover(); r != nil {
			if g.Log != nil {
				fmt.Fprintf(g.Log, "warning: verification failed unexpectedly: %v\n", r)
			}
			report = types.VerificationReport{
				CoverageScore: defaultCoverageScore,
				QualityScore:  failureConfidence,
				SequenceValid: true,
				Confidence:    failureConfidence,
				Status:        types.StatusVerificationFailed,
				Ready:         true,
			}
		}
	}()

	videos := result.Videos()

	coverageScore, missing := g.checkCoverage(ctx, req, videos)
	qualityScore, issues := g.checkQuality(videos)
	seqValid, seqReason := g.checkSequence(videos)

	report = types.VerificationReport{
		CoverageScore:  coverageScore,
		QualityScore:   qualityScore,
		MissingTopics:  missing,
		QualityIssues:  issues,
		SequenceValid:  seqValid,
		SequenceReason: seqReason,
		Confidence:     (coverageScore + qualityScore) / 2,
	}

	maxGaps := g.Cfg.MaxGapsBeforeWarn
	if maxGaps <= 0 {
		maxGaps = 3
	}

	// Decision order is fixed: the first failing gate names the status.
	switch {
	case coverageScore < g.Cfg.MinCoverageScore:
		report.Status = types.StatusInsufficientCov
		report.Ready = false
	case qualityScore < g.Cfg.MinQualityScore:
		report.Status = types.StatusLowQuality
		report.Ready = false
	case !seqValid:
		report.Status = types.StatusPoorSequence
		report.Ready = false
	case len(missing) > maxGaps:
		report.Status = types.StatusHasGaps
		report.Ready = true
	default:
		report.Status = types.StatusVerified
		report.Ready = true
	}
	return report
}

// checkCoverage asks the AI service whether the resolved videos cover
// the topic. Default on any failure: the optimistic 0.8 with no gaps.
func (g *Gate) checkCoverage(ctx context.Context, req types.Request, videos []types.Candidate) (float64, []string) {
	if g.Classifier == nil || len(videos) == 0 {
		return defaultCoverageScore, nil
	}

	titles := make([]string, 0, len(videos))
	descriptions := make([]string, 0, len(videos))
	for _, v := range videos {
		titles = append(titles, v.Title)
		descriptions = append(descriptions, v.Signals.Description)
	}

	j, err := g.Classifier.JudgeCoverage(ctx, req, titles, descriptions)
	if err != nil {
		if g.Log != nil {
			fmt.Fprintf(g.Log, "warning: AI coverage check unavailable, assuming adequate coverage: %v\n", err)
		}
		return defaultCoverageScore, nil
	}
	if j.Score < 0 || j.Score > 1 {
		return defaultCoverageScore, nil
	}
	return j.Score, j.MissingTopics
}

// checkQuality is a local heuristic with no external dependency. Four
// capped partial scores: engagement, description presence, origin
// diversity, and a sane candidate count.
func (g *Gate) checkQuality(videos []types.Candidate) (float64, []string) {
	if len(videos) == 0 {
		return 0, []string{"no videos to assess"}
	}

	var issues []string
	var score float64

	// Engagement: average views over known-engagement candidates.
	var views, known int64
	for _, v := range videos {
		if v.Signals.EngagementKnown {
			views += v.Signals.Views
			known++
		}
	}
	switch {
	case known == 0:
		score += 0.15 // unknown is neutral, not damning
	case views/known >= g.Cfg.GreatAvgViews:
		score += 0.3
	case views/known >= g.Cfg.GoodAvgViews:
		score += 0.2
	default:
		score += 0.1
		issues = append(issues, "low average view counts")
	}

	// Description presence.
	withDesc := 0
	for _, v := range videos {
		if strings.TrimSpace(v.Signals.Description) != "" {
			withDesc++
		}
	}
	if float64(withDesc)/float64(len(videos)) >= g.Cfg.MinDescriptionFraction {
		score += 0.25
	} else {
		score += 0.1
		issues = append(issues, "many videos lack descriptions")
	}

	// Origin diversity.
	origins := make(map[string]bool)
	for _, v := range videos {
		origins[strings.ToLower(v.Origin)] = true
	}
	if float64(len(origins))/float64(len(videos)) >= g.Cfg.MinOriginDiversity {
		score += 0.25
	} else {
		score += 0.1
		issues = append(issues, "low channel diversity")
	}

	// Sane count band.
	switch {
	case len(videos) >= g.Cfg.IdealMinVideos && len(videos) <= g.Cfg.IdealMaxVideos:
		score += 0.2
	case len(videos) < g.Cfg.IdealMinVideos:
		score += 0.1
		issues = append(issues, "too few videos")
	default:
		score += 0.1
		issues = append(issues, "too many videos")
	}

	return score, issues
}

// checkSequence scans ordered titles for pedagogical ordering problems:
// advanced material before the last beginner item, or a larger set with
// no introductory content at all.
func (g *Gate) checkSequence(videos []types.Candidate) (bool, string) {
	if len(videos) == 0 {
		return true, ""
	}

	firstAdvanced, lastBeginner := -1, -1
	for i, v := range videos {
		title := strings.ToLower(v.Title)
		if containsAny(title, beginnerMarkers) {
			lastBeginner = i
		}
		if firstAdvanced == -1 && containsAny(title, advancedMarkers) {
			firstAdvanced = i
		}
	}

	if lastBeginner == -1 && len(videos) > 5 {
		return false, "no introductory content found"
	}
	if firstAdvanced != -1 && lastBeginner != -1 && firstAdvanced < lastBeginner {
		return false, "advanced content ordered before introductory content"
	}
	return true, ""
}

func containsAny(text string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(text, m) {
			return true
		}
	}
	return false
}
