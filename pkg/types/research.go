// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// Stage is one of the four learning stages coverage is computed for.
type Stage string

const (
	StageFundamentals Stage = "fundamentals"
	StageReinforce    Stage = "reinforcement"
	StagePractical    Stage = "practical_application"
	StageAdvanced     Stage = "advanced_mastery"
)

// AllStages lists the learning stages in pedagogical order.
var AllStages = []Stage{StageFundamentals, StageReinforce, StagePractical, StageAdvanced}

// SourceResult is the ordered candidate list one resolver produced for its
// source type. A failed resolver yields an empty result with Warning set;
// the failure never propagates past the orchestrator.
type SourceResult struct {
	SourceType SourceType  `json:"source_type" yaml:"source_type"`
	Candidates []Candidate `json:"candidates" yaml:"candidates"`

	// Warning describes a resolver failure that degraded this result.
	Warning string `json:"warning,omitempty" yaml:"warning,omitempty"`
}

// Severity grades how badly a gap hurts the result set.
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// GapType names the kind of resource or stage a result set is missing.
type GapType string

const (
	GapAcademicCourse  GapType = "academic_course"
	GapCertification   GapType = "certification"
	GapGovernmentGuide GapType = "government_guide"
	GapPracticalGuide  GapType = "practical_guide"
	GapAdvancedContent GapType = "advanced_content"
)

// Gap is a deficiency the orchestrator identified in an assembled result
// set. Gaps are derived data: they are recomputed from the result, never
// persisted independently by the core.
type Gap struct {
	Type        GapType  `json:"type" yaml:"type"`
	Severity    Severity `json:"severity" yaml:"severity"`
	Description string   `json:"description" yaml:"description"`

	// OpportunityScore in [0,100] ranks how valuable filling this gap
	// would be, combining severity, coverage shortfall, and gap type.
	OpportunityScore float64 `json:"opportunity_score" yaml:"opportunity_score"`
}

// ResearchResult is the aggregate produced by one research run. It is
// owned by the orchestrator while being assembled and read-only once
// returned.
type ResearchResult struct {
	Request Request `json:"request" yaml:"request"`

	// Sources maps each source type to the candidates resolved for it.
	Sources map[SourceType]SourceResult `json:"sources" yaml:"sources"`

	// Coverage estimates, per learning stage, what percentage of the
	// stage the discovered resources address (0-100).
	Coverage map[Stage]float64 `json:"coverage" yaml:"coverage"`

	// OverallCoverage is the mean of the per-stage coverage values.
	OverallCoverage float64 `json:"overall_coverage" yaml:"overall_coverage"`

	Gaps []Gap `json:"gaps" yaml:"gaps"`

	// Warnings lists resolver-level degradations, in no particular order.
	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}

// TotalCandidates returns the number of candidates across all sources.
func (r *ResearchResult) TotalCandidates() int {
	n := 0
	for _, sr := range r.Sources {
		n += len(sr.Candidates)
	}
	return n
}

// Videos returns the resolved video candidates, or nil when none.
func (r *ResearchResult) Videos() []Candidate {
	return r.Sources[SourceVideo].Candidates
}
