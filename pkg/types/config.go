// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

import "time"

// HTTPConfig holds shared HTTP settings used by components that make
// network requests. Every external call is bounded by Timeout; a timeout
// is handled like any other upstream failure.
type HTTPConfig struct {
	// Timeout is the per-request HTTP timeout.
	Timeout time.Duration `json:"timeout" yaml:"timeout" mapstructure:"timeout"`

	// UserAgent is the User-Agent header sent with HTTP requests
	// (e.g. "learnpath/0.1").
	UserAgent string `json:"user_agent" yaml:"user_agent" mapstructure:"user_agent"`
}

// AIConfig holds settings for components that call the AI classification
// service. The service is optional everywhere: call sites fail open or
// fall back locally when it is absent.
type AIConfig struct {
	// Model is the AI model identifier.
	Model string `json:"model" yaml:"model" mapstructure:"model"`

	// APIKey authenticates against the AI API. Empty disables the service.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// MaxRetries is the retry budget for rate-limited calls (default 3).
	MaxRetries int `json:"max_retries" yaml:"max_retries" mapstructure:"max_retries"`
}

// VideoConfig holds settings for the video resolution chain.
type VideoConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxResults is the maximum number of video candidates per tier
	// (default 20).
	MaxResults int `json:"max_results" yaml:"max_results" mapstructure:"max_results"`

	// APIKey is the credentialed video search API key. Empty skips the
	// primary API tier.
	APIKey string `json:"api_key,omitempty" yaml:"api_key,omitempty" mapstructure:"api_key"`

	// HybridKeepThreshold is the minimum combined AI metric for a hybrid
	// tier candidate to survive (default 0.5).
	HybridKeepThreshold float64 `json:"hybrid_keep_threshold" yaml:"hybrid_keep_threshold" mapstructure:"hybrid_keep_threshold"`

	// PreferredBoost is added to a candidate's score when its origin
	// matches a caller-supplied preferred source (default 0.15).
	PreferredBoost float64 `json:"preferred_boost" yaml:"preferred_boost" mapstructure:"preferred_boost"`
}

// ResearchConfig holds settings for the multi-source orchestrator.
type ResearchConfig struct {
	HTTPConfig `yaml:",inline" mapstructure:",squash"`

	// MaxPerSource caps candidates kept per source type (default 10).
	MaxPerSource int `json:"max_per_source" yaml:"max_per_source" mapstructure:"max_per_source"`
}

// VerifyConfig holds the quality-verification thresholds. These are
// policy choices, not derived invariants, so they are configurable with
// the historical constants as defaults.
type VerifyConfig struct {
	// MinCoverageScore below which the result set is insufficient (0.6).
	MinCoverageScore float64 `json:"min_coverage_score" yaml:"min_coverage_score" mapstructure:"min_coverage_score"`

	// MinQualityScore below which the result set is low quality (0.6).
	MinQualityScore float64 `json:"min_quality_score" yaml:"min_quality_score" mapstructure:"min_quality_score"`

	// MaxGapsBeforeWarn is the gap count above which a verified set is
	// downgraded to has_gaps (default 3).
	MaxGapsBeforeWarn int `json:"max_gaps_before_warn" yaml:"max_gaps_before_warn" mapstructure:"max_gaps_before_warn"`

	// IdealMinVideos and IdealMaxVideos bound the sane candidate count
	// (defaults 5 and 30).
	IdealMinVideos int `json:"ideal_min_videos" yaml:"ideal_min_videos" mapstructure:"ideal_min_videos"`
	IdealMaxVideos int `json:"ideal_max_videos" yaml:"ideal_max_videos" mapstructure:"ideal_max_videos"`

	// GoodAvgViews and GreatAvgViews are the view-count thresholds for
	// partial and full engagement credit (defaults 50k and 200k).
	GoodAvgViews  int64 `json:"good_avg_views" yaml:"good_avg_views" mapstructure:"good_avg_views"`
	GreatAvgViews int64 `json:"great_avg_views" yaml:"great_avg_views" mapstructure:"great_avg_views"`

	// MinDescriptionFraction is the fraction of candidates that should
	// carry descriptions (default 0.5).
	MinDescriptionFraction float64 `json:"min_description_fraction" yaml:"min_description_fraction" mapstructure:"min_description_fraction"`

	// MinOriginDiversity is the minimum unique-origin ratio (default 0.3).
	MinOriginDiversity float64 `json:"min_origin_diversity" yaml:"min_origin_diversity" mapstructure:"min_origin_diversity"`
}

// StoreConfig holds settings for the local run store.
type StoreConfig struct {
	// DBPath is the sqlite database path (default "learnpath.db").
	DBPath string `json:"db_path" yaml:"db_path" mapstructure:"db_path"`
}

// ServeConfig holds settings for the HTTP API surface.
type ServeConfig struct {
	// Addr is the listen address (default ":8080").
	Addr string `json:"addr" yaml:"addr" mapstructure:"addr"`

	// AllowedOrigins configures CORS for browser consumers.
	AllowedOrigins []string `json:"allowed_origins,omitempty" yaml:"allowed_origins,omitempty" mapstructure:"allowed_origins"`
}

// Config is the full configuration, created once at process start and
// passed explicitly into each component's constructor. No component reads
// process-wide state.
type Config struct {
	Video      VideoConfig    `json:"video" yaml:"video" mapstructure:"video"`
	Research   ResearchConfig `json:"research" yaml:"research" mapstructure:"research"`
	Classifier AIConfig       `json:"classifier" yaml:"classifier" mapstructure:"classifier"`
	Verify     VerifyConfig   `json:"verify" yaml:"verify" mapstructure:"verify"`
	Store      StoreConfig    `json:"store" yaml:"store" mapstructure:"store"`
	Serve      ServeConfig    `json:"serve" yaml:"serve" mapstructure:"serve"`
}

// DefaultConfig returns the configuration defaults.
func DefaultConfig() Config {
	httpCfg := HTTPConfig{
		Timeout:   15 * time.Second,
		UserAgent: "learnpath/0.1",
	}
	return Config{
		Video: VideoConfig{
			HTTPConfig:          httpCfg,
			MaxResults:          20,
			HybridKeepThreshold: 0.5,
			PreferredBoost:      0.15,
		},
		Research: ResearchConfig{
			HTTPConfig:   httpCfg,
			MaxPerSource: 10,
		},
		Classifier: AIConfig{
			Model:      "claude-sonnet-4-5-20250929",
			MaxRetries: 3,
		},
		Verify: VerifyConfig{
			MinCoverageScore:       0.6,
			MinQualityScore:        0.6,
			MaxGapsBeforeWarn:      3,
			IdealMinVideos:         5,
			IdealMaxVideos:         30,
			GoodAvgViews:           50_000,
			GreatAvgViews:          200_000,
			MinDescriptionFraction: 0.5,
			MinOriginDiversity:     0.3,
		},
		Store: StoreConfig{DBPath: "learnpath.db"},
		Serve: ServeConfig{Addr: ":8080"},
	}
}
