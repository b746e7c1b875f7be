// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// SourceType identifies which kind of resource a candidate is.
type SourceType string

const (
	SourceVideo         SourceType = "video"
	SourceBook          SourceType = "book"
	SourceCourse        SourceType = "course"
	SourceCertification SourceType = "certification"
	SourceGovernment    SourceType = "government"
	SourceArticle       SourceType = "article"
	SourcePodcast       SourceType = "podcast"
)

// AllSourceTypes lists every source type in presentation order.
var AllSourceTypes = []SourceType{
	SourceVideo, SourceCourse, SourceBook, SourceCertification,
	SourceGovernment, SourceArticle, SourcePodcast,
}

// Signals holds the raw per-candidate signals a resolver was able to
// extract. Engagement and duration are optional: resolvers that cannot
// observe them leave the Known flags false rather than reporting zeros.
type Signals struct {
	// Description is the resource's own description or abstract.
	Description string `json:"description,omitempty" yaml:"description,omitempty"`

	// Duration is the playback length for video candidates.
	Duration      time.Duration `json:"duration,omitempty" yaml:"duration,omitempty"`
	DurationKnown bool          `json:"duration_known" yaml:"duration_known"`

	// Views and Likes are engagement counters from the providing API.
	Views           int64 `json:"views,omitempty" yaml:"views,omitempty"`
	Likes           int64 `json:"likes,omitempty" yaml:"likes,omitempty"`
	EngagementKnown bool  `json:"engagement_known" yaml:"engagement_known"`

	// PublishedAt is the publication date, zero when unknown.
	PublishedAt time.Time `json:"published_at,omitempty" yaml:"published_at,omitempty"`

	// Category is the provider's own classification label, when present
	// (e.g. the video API's "Education" category).
	Category string `json:"category,omitempty" yaml:"category,omitempty"`

	// ProviderID is the provider-side identifier (video id, ISBN, slug).
	ProviderID string `json:"provider_id,omitempty" yaml:"provider_id,omitempty"`
}

// Candidate is a single discovered resource. A candidate is created by a
// source resolver, scored exactly once by the relevance scorer, and never
// mutated afterwards; re-scoring produces a new Candidate value.
type Candidate struct {
	SourceType SourceType `json:"source_type" yaml:"source_type"`
	Title      string     `json:"title" yaml:"title"`

	// Origin is the provider, channel, or publisher responsible for the
	// resource.
	Origin string `json:"origin" yaml:"origin"`

	URL     string  `json:"url" yaml:"url"`
	Signals Signals `json:"signals" yaml:"signals"`

	// Score is the relevance score in [0,1]. Zero until scored.
	Score float64 `json:"score" yaml:"score"`

	// Verified is set when the candidate passed the educational filter.
	Verified bool `json:"verified" yaml:"verified"`
}
