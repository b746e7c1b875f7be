// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package types defines the plain data model shared across the resolution
// pipeline: requests, candidates, research results, safety decisions, and
// verification reports. Values here carry no behavior beyond small
// accessors and are safe to serialize for external consumers.
package types

// Level is the learner's target skill level.
type Level string

const (
	LevelBeginner     Level = "beginner"
	LevelIntermediate Level = "intermediate"
	LevelAdvanced     Level = "advanced"
)

// ValidLevel reports whether l is one of the three supported levels.
func ValidLevel(l Level) bool {
	return l == LevelBeginner || l == LevelIntermediate || l == LevelAdvanced
}

// Request is a free-text learning request. It is immutable once submitted:
// every pipeline stage receives it by value and none may alter it.
type Request struct {
	// Topic is the subject the user wants to learn (e.g. "neural networks").
	Topic string `json:"topic" yaml:"topic"`

	// Description optionally narrows the topic in the user's own words.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Level is the target skill level. Defaults to beginner when empty.
	Level Level `json:"level" yaml:"level"`

	// PreferredSources lists providers or channels the user favors.
	// Matching candidates receive a score boost during video resolution.
	PreferredSources []string `json:"preferred_sources,omitempty" yaml:"preferred_sources,omitempty"`

	// Age is the requester's age in years, or 0 when unknown. Used only by
	// the age-restriction screening stage.
	Age int `json:"age,omitempty" yaml:"age,omitempty"`
}

// Text returns the lowercasable free text of the request (topic plus
// description) used by substring-based screening stages.
func (r Request) Text() string {
	if r.Description == "" {
		return r.Topic
	}
	return r.Topic + " " + r.Description
}
