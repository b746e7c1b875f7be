// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/learnpath/internal/httputil"
	"github.com/pdiddy/learnpath/internal/relevance"
	"github.com/pdiddy/learnpath/pkg/types"
)

// Credentialed video API endpoints (YouTube Data API v3). Declared as
// vars so tests can substitute an httptest server.
var (
	videoSearchBase = "https://www.googleapis.com/youtube/v3/search"
	videoDetailBase = "https://www.googleapis.com/youtube/v3/videos"
)

// educationCategoryID is the video API's category id for Education.
const educationCategoryID = "27"

// APITier is the second tier: a level-biased query against the
// credentialed video search API, a detail fetch for the returned ids, and
// local relevance scoring with the educational filter applied.
type APITier struct {
	Cfg    types.VideoConfig
	Client *http.Client
	Log    io.Writer
}

// Name returns the tier identifier.
func (t *APITier) Name() string { return "api" }

type apiSearchResponse struct {
	Items []struct {
		ID struct {
			VideoID string `json:"videoId"`
		} `json:"id"`
	} `json:"items"`
}

type apiDetailResponse struct {
	Items []struct {
		ID      string `json:"id"`
		Snippet struct {
			Title       string `json:"title"`
			Description string `json:"description"`
			ChannelName string `json:"channelTitle"`
			PublishedAt string `json:"publishedAt"`
			CategoryID  string `json:"categoryId"`
		} `json:"snippet"`
		ContentDetails struct {
			Duration string `json:"duration"`
		} `json:"contentDetails"`
		Statistics struct {
			ViewCount string `json:"viewCount"`
			LikeCount string `json:"likeCount"`
		} `json:"statistics"`
	} `json:"items"`
}

// Resolve queries the credentialed API and returns scored, filtered,
// ranked candidates.
func (t *APITier) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	if t.Cfg.APIKey == "" {
		return nil, fmt.Errorf("no video API key configured")
	}

	ids, err := t.search(ctx, req)
	if err != nil {
		return nil, err
	}
	if len(ids) == 0 {
		return nil, nil
	}

	candidates, err := t.details(ctx, ids)
	if err != nil {
		return nil, err
	}

	boost := t.Cfg.PreferredBoost
	if boost <= 0 {
		boost = 0.15
	}

	var kept []types.Candidate
	for _, c := range candidates {
		score, educational := relevance.Score(c, req.Topic, req.Level)
		if !educational {
			continue
		}
		if matchesPreferred(c.Origin, req.PreferredSources) {
			score = clamp01(score + boost)
		}
		c.Score = score
		c.Verified = true
		kept = append(kept, c)
	}

	sort.SliceStable(kept, func(i, j int) bool { return kept[i].Score > kept[j].Score })
	return kept, nil
}

// levelQuery biases the free-text query toward the requested level.
func levelQuery(topic string, level types.Level) string {
	switch level {
	case types.LevelAdvanced:
		return "advanced " + topic + " course"
	case types.LevelIntermediate:
		return topic + " tutorial"
	default:
		return topic + " tutorial for beginners"
	}
}

func (t *APITier) search(ctx context.Context, req types.Request) ([]string, error) {
	maxResults := t.Cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}
	if maxResults > 50 {
		maxResults = 50
	}

	params := url.Values{
		"part":       {"snippet"},
		"q":          {levelQuery(req.Topic, req.Level)},
		"type":       {"video"},
		"order":      {"relevance"},
		"maxResults": {strconv.Itoa(maxResults)},
		"key":        {t.Cfg.APIKey},
	}

	var sr apiSearchResponse
	if err := t.get(ctx, videoSearchBase+"?"+params.Encode(), &sr); err != nil {
		return nil, fmt.Errorf("video search: %w", err)
	}

	var ids []string
	for _, item := range sr.Items {
		if item.ID.VideoID != "" {
			ids = append(ids, item.ID.VideoID)
		}
	}
	return ids, nil
}

func (t *APITier) details(ctx context.Context, ids []string) ([]types.Candidate, error) {
	params := url.Values{
		"part": {"snippet,contentDetails,statistics"},
		"id":   {strings.Join(ids, ",")},
		"key":  {t.Cfg.APIKey},
	}

	var dr apiDetailResponse
	if err := t.get(ctx, videoDetailBase+"?"+params.Encode(), &dr); err != nil {
		return nil, fmt.Errorf("video details: %w", err)
	}

	var candidates []types.Candidate
	for _, item := range dr.Items {
		c := types.Candidate{
			SourceType: types.SourceVideo,
			Title:      item.Snippet.Title,
			Origin:     item.Snippet.ChannelName,
			URL:        "https://www.youtube.com/watch?v=" + item.ID,
			Signals: types.Signals{
				Description: item.Snippet.Description,
				ProviderID:  item.ID,
			},
		}
		if d, err := parseISODuration(item.ContentDetails.Duration); err == nil {
			c.Signals.Duration = d
			c.Signals.DurationKnown = true
		}
		if v, err := strconv.ParseInt(item.Statistics.ViewCount, 10, 64); err == nil {
			c.Signals.Views = v
			c.Signals.EngagementKnown = true
			if l, err := strconv.ParseInt(item.Statistics.LikeCount, 10, 64); err == nil {
				c.Signals.Likes = l
			}
		}
		if ts, err := time.Parse(time.RFC3339, item.Snippet.PublishedAt); err == nil {
			c.Signals.PublishedAt = ts
		}
		if item.Snippet.CategoryID == educationCategoryID {
			c.Signals.Category = "education"
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

func (t *APITier) get(ctx context.Context, reqURL string, out any) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", t.Cfg.UserAgent)

	client := t.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, 0, t.Log)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("video API returned HTTP %d", resp.StatusCode)
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("parsing video API response: %w", err)
	}
	return nil
}

// matchesPreferred reports whether origin matches any caller-supplied
// preferred source, case-insensitively in either direction.
func matchesPreferred(origin string, preferred []string) bool {
	o := strings.ToLower(origin)
	if o == "" {
		return false
	}
	for _, p := range preferred {
		p = strings.ToLower(strings.TrimSpace(p))
		if p == "" {
			continue
		}
		if strings.Contains(o, p) || strings.Contains(p, o) {
			return true
		}
	}
	return false
}

// parseISODuration parses the API's ISO 8601 durations (e.g. "PT1H2M3S").
func parseISODuration(s string) (time.Duration, error) {
	rest, ok := strings.CutPrefix(s, "PT")
	if !ok {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}

	var total time.Duration
	num := ""
	for _, r := range rest {
		if r >= '0' && r <= '9' {
			num += string(r)
			continue
		}
		n, err := strconv.Atoi(num)
		if err != nil {
			return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
		}
		switch r {
		case 'H':
			total += time.Duration(n) * time.Hour
		case 'M':
			total += time.Duration(n) * time.Minute
		case 'S':
			total += time.Duration(n) * time.Second
		default:
			return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
		}
		num = ""
	}
	if num != "" {
		return 0, fmt.Errorf("invalid ISO 8601 duration %q", s)
	}
	return total, nil
}
