// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// SafetyCategory is a hard-block content category.
type SafetyCategory string

const (
	CategoryIllegal      SafetyCategory = "illegal_activities"
	CategoryHarmful      SafetyCategory = "directly_harmful"
	CategoryExploitation SafetyCategory = "exploitation"
	CategoryHate         SafetyCategory = "hate_extremism"
)

// DisclaimerType classifies a topic that requires a warning before
// resources are shown.
type DisclaimerType string

const (
	DisclaimerMedical       DisclaimerType = "medical"
	DisclaimerLegal         DisclaimerType = "legal"
	DisclaimerFinancial     DisclaimerType = "financial"
	DisclaimerSafetyCrit    DisclaimerType = "safety_critical"
	DisclaimerControversial DisclaimerType = "controversial_educational"
)

// AgeCategory is an age-restricted topic category.
type AgeCategory string

const (
	AgeAlcohol  AgeCategory = "alcohol"
	AgeGambling AgeCategory = "gambling"
	AgeFirearms AgeCategory = "firearms"
	AgeMature   AgeCategory = "mature_content"
)

// SafetyDecision is the terminal outcome of screening one request. A
// decision is computed exactly once per request and never retried.
type SafetyDecision struct {
	Allowed bool   `json:"allowed" yaml:"allowed"`
	Reason  string `json:"reason,omitempty" yaml:"reason,omitempty"`

	// Category is set when a hard-block category matched.
	Category SafetyCategory `json:"category,omitempty" yaml:"category,omitempty"`

	// Alternatives suggests legal, educational alternatives when the
	// request was blocked and a suggestion is known for the matched
	// keyword.
	Alternatives []string `json:"alternatives,omitempty" yaml:"alternatives,omitempty"`

	RequiresDisclaimer bool           `json:"requires_disclaimer" yaml:"requires_disclaimer"`
	DisclaimerType     DisclaimerType `json:"disclaimer_type,omitempty" yaml:"disclaimer_type,omitempty"`
	DisclaimerSeverity Severity       `json:"disclaimer_severity,omitempty" yaml:"disclaimer_severity,omitempty"`

	// RequiresAcceptance forces explicit user acknowledgment of the
	// disclaimer before resources are shown.
	RequiresAcceptance bool `json:"requires_acceptance" yaml:"requires_acceptance"`

	// RequiresAgeVerification is set when the topic is age-restricted and
	// the requester's age is unknown.
	RequiresAgeVerification bool `json:"requires_age_verification" yaml:"requires_age_verification"`

	// AgeCategory and MinimumAge describe the matched age restriction.
	AgeCategory AgeCategory `json:"age_category,omitempty" yaml:"age_category,omitempty"`
	MinimumAge  int         `json:"minimum_age,omitempty" yaml:"minimum_age,omitempty"`

	Warnings []string `json:"warnings,omitempty" yaml:"warnings,omitempty"`
}
