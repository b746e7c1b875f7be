// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

// podcastSearchBase is the podcast directory search endpoint. Var for tests.
var podcastSearchBase = "https://itunes.apple.com/search"

// PodcastResolver finds podcasts for a topic.
type PodcastResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *PodcastResolver) SourceType() types.SourceType { return types.SourcePodcast }

type podcastSearchResponse struct {
	Results []struct {
		CollectionName    string `json:"collectionName"`
		ArtistName        string `json:"artistName"`
		CollectionViewURL string `json:"collectionViewUrl"`
		ReleaseDate       string `json:"releaseDate"`
		PrimaryGenreName  string `json:"primaryGenreName"`
	} `json:"results"`
}

// Resolve queries the podcast directory and scores the matches.
func (r *PodcastResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"media": {"podcast"},
		"term":  {req.Topic},
		"limit": {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
	}

	var pr podcastSearchResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, podcastSearchBase+"?"+params.Encode(), &pr); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, res := range pr.Results {
		if res.CollectionName == "" || res.CollectionViewURL == "" {
			continue
		}
		c := types.Candidate{
			SourceType: types.SourcePodcast,
			Title:      res.CollectionName,
			Origin:     res.ArtistName,
			URL:        res.CollectionViewURL,
			Signals:    types.Signals{Category: res.PrimaryGenreName},
		}
		if ts, err := time.Parse(time.RFC3339, res.ReleaseDate); err == nil {
			c.Signals.PublishedAt = ts
		}
		candidates = append(candidates, c)
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}
