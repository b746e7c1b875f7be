// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package research

import (
	"fmt"
	"strings"

	"github.com/pdiddy/learnpath/pkg/types"
)

// regulatedDomains are topic keywords whose learners need official
// government guidance; missing government sources for these topics is a
// high-severity gap.
var regulatedDomains = []string{
	"medical", "medicine", "health", "nursing", "pharmacy",
	"legal", "law", "paralegal",
	"financial", "finance", "accounting", "tax", "insurance",
	"construction", "electrical", "plumbing", "welding",
	"food", "culinary",
	"aviation", "real estate", "childcare",
}

// severityWeights feed the opportunity score.
var severityWeights = map[types.Severity]float64{
	types.SeverityHigh:   40,
	types.SeverityMedium: 25,
	types.SeverityLow:    10,
}

// gapTypeWeights rank how actionable each gap type is.
var gapTypeWeights = map[types.GapType]float64{
	types.GapAcademicCourse:  10,
	types.GapGovernmentGuide: 10,
	types.GapCertification:   8,
	types.GapPracticalGuide:  6,
	types.GapAdvancedContent: 4,
}

// coverageThresholds: practicalApplication below 50 and advancedMastery
// below 40 are stage gaps.
const (
	practicalGapThreshold = 50
	advancedGapThreshold  = 40
)

// deriveGaps applies the rule table to an assembled result. Rules are
// deterministic presence tests, not statistics.
func deriveGaps(req types.Request, result *types.ResearchResult) []types.Gap {
	count := func(st types.SourceType) int {
		return len(result.Sources[st].Candidates)
	}

	var gaps []types.Gap
	add := func(t types.GapType, sev types.Severity, desc string) {
		gaps = append(gaps, types.Gap{
			Type:             t,
			Severity:         sev,
			Description:      desc,
			OpportunityScore: opportunityScore(t, sev, result.OverallCoverage),
		})
	}

	if count(types.SourceCourse) == 0 {
		add(types.GapAcademicCourse, types.SeverityHigh,
			fmt.Sprintf("no structured academic courses found for %q", req.Topic))
	}
	if count(types.SourceCertification) == 0 {
		add(types.GapCertification, types.SeverityMedium,
			fmt.Sprintf("no certifications found for %q", req.Topic))
	}
	if isRegulatedDomain(req) && count(types.SourceGovernment) == 0 {
		add(types.GapGovernmentGuide, types.SeverityHigh,
			fmt.Sprintf("%q is a regulated domain but no official government guidance was found", req.Topic))
	}
	if result.Coverage[types.StagePractical] < practicalGapThreshold {
		add(types.GapPracticalGuide, types.SeverityHigh,
			"practical application stage is under-covered; hands-on material is missing")
	}
	if result.Coverage[types.StageAdvanced] < advancedGapThreshold {
		add(types.GapAdvancedContent, types.SeverityMedium,
			"advanced mastery stage is under-covered; expert-level material is missing")
	}
	return gaps
}

// isRegulatedDomain reports whether the request text names a regulated
// domain.
func isRegulatedDomain(req types.Request) bool {
	text := strings.ToLower(req.Text())
	for _, kw := range regulatedDomains {
		if strings.Contains(text, kw) {
			return true
		}
	}
	return false
}

// opportunityScore combines the gap's severity, the inverse of overall
// coverage, and the gap-type weight into a 0-100 ranking.
func opportunityScore(t types.GapType, sev types.Severity, overall float64) float64 {
	score := severityWeights[sev] + (100-overall)/2 + gapTypeWeights[t]
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}
