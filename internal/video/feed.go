// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package video

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

// feedSearchBase is the unauthenticated video index search endpoint
// (Invidious-compatible). Declared as a var so tests can substitute an
// httptest server.
var feedSearchBase = "https://inv.nadeko.net/api/v1/search"

// FeedClient queries the feed-based video index. The index requires no
// credential and guarantees only id, title, author, publication date, and
// description; duration and engagement are never reported, so candidates
// built from the feed carry those signals as unknown.
type FeedClient struct {
	Client *http.Client
	HTTP   types.HTTPConfig
}

// feedItem is one entry in the index's search response.
type feedItem struct {
	Type        string `json:"type"`
	VideoID     string `json:"videoId"`
	Title       string `json:"title"`
	Author      string `json:"author"`
	Published   int64  `json:"published"`
	Description string `json:"description"`
}

// Search runs one free-text query against the feed index.
func (f *FeedClient) Search(ctx context.Context, query string) ([]types.Candidate, error) {
	params := url.Values{
		"q":    {query},
		"type": {"video"},
	}
	reqURL := feedSearchBase + "?" + params.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", f.HTTP.UserAgent)

	client := f.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("feed index request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("feed index returned HTTP %d", resp.StatusCode)
	}

	var items []feedItem
	if err := json.NewDecoder(resp.Body).Decode(&items); err != nil {
		return nil, fmt.Errorf("parsing feed response: %w", err)
	}

	var candidates []types.Candidate
	for _, it := range items {
		if it.Type != "" && it.Type != "video" {
			continue
		}
		if it.VideoID == "" || it.Title == "" {
			continue
		}
		c := types.Candidate{
			SourceType: types.SourceVideo,
			Title:      it.Title,
			Origin:     it.Author,
			URL:        "https://www.youtube.com/watch?v=" + it.VideoID,
			Signals: types.Signals{
				Description: it.Description,
				ProviderID:  it.VideoID,
			},
		}
		if it.Published > 0 {
			c.Signals.PublishedAt = time.Unix(it.Published, 0).UTC()
		}
		candidates = append(candidates, c)
	}
	return candidates, nil
}

// feedProvisionalScore is the flat score assigned by the feed fallback
// tier, which has no scoring signal beyond having matched the query.
const feedProvisionalScore = 0.55

// FeedTier is the third tier: a single feed query with no AI or API
// dependency. Results carry a flat provisional score.
type FeedTier struct {
	Feed *FeedClient
	Cfg  types.VideoConfig
}

// Name returns the tier identifier.
func (t *FeedTier) Name() string { return "feed" }

// Resolve issues one "{topic} tutorial" query against the feed index.
func (t *FeedTier) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	candidates, err := t.Feed.Search(ctx, req.Topic+" tutorial")
	if err != nil {
		return nil, err
	}

	max := t.Cfg.MaxResults
	if max <= 0 {
		max = 20
	}
	if len(candidates) > max {
		candidates = candidates[:max]
	}

	scored := make([]types.Candidate, 0, len(candidates))
	for _, c := range candidates {
		c.Score = feedProvisionalScore
		scored = append(scored, c)
	}
	return scored, nil
}
