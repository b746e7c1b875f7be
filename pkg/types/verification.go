// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// VerificationStatus is the gate's judgment of an assembled result set.
type VerificationStatus string

const (
	StatusVerified           VerificationStatus = "verified"
	StatusHasGaps            VerificationStatus = "has_gaps"
	StatusInsufficientCov    VerificationStatus = "insufficient_coverage"
	StatusLowQuality         VerificationStatus = "low_quality"
	StatusPoorSequence       VerificationStatus = "poor_sequence"
	StatusVerificationFailed VerificationStatus = "verification_failed"
)

// VerificationReport is computed once per ResearchResult. Recomputing a
// report overwrites the previous one; reports are never merged.
type VerificationReport struct {
	// CoverageScore in [0,1] estimates how completely the resources cover
	// the requested topic.
	CoverageScore float64 `json:"coverage_score" yaml:"coverage_score"`

	// QualityScore in [0,1] is the heuristic quality estimate.
	QualityScore float64 `json:"quality_score" yaml:"quality_score"`

	// MissingTopics lists subtopics the coverage check found absent.
	MissingTopics []string `json:"missing_topics,omitempty" yaml:"missing_topics,omitempty"`

	// QualityIssues lists human-readable quality complaints.
	QualityIssues []string `json:"quality_issues,omitempty" yaml:"quality_issues,omitempty"`

	SequenceValid  bool   `json:"sequence_valid" yaml:"sequence_valid"`
	SequenceReason string `json:"sequence_reason,omitempty" yaml:"sequence_reason,omitempty"`

	// Confidence is the mean of CoverageScore and QualityScore.
	Confidence float64 `json:"confidence" yaml:"confidence"`

	Status VerificationStatus `json:"status" yaml:"status"`

	// Ready reports whether the result set may be shown to the user.
	Ready bool `json:"ready" yaml:"ready"`
}
