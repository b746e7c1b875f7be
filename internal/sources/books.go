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

// bookSearchBase is the Open Library search endpoint. Var for tests.
var bookSearchBase = "https://openlibrary.org/search.json"

// BookResolver finds books for a topic via the Open Library index.
type BookResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *BookResolver) SourceType() types.SourceType { return types.SourceBook }

type bookSearchResponse struct {
	Docs []struct {
		Title            string   `json:"title"`
		AuthorName       []string `json:"author_name"`
		FirstPublishYear int      `json:"first_publish_year"`
		Key              string   `json:"key"`
	} `json:"docs"`
}

// Resolve queries the book index and scores the matches.
func (r *BookResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"q":     {req.Topic},
		"limit": {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
	}

	var br bookSearchResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, bookSearchBase+"?"+params.Encode(), &br); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, d := range br.Docs {
		if d.Title == "" || d.Key == "" {
			continue
		}
		c := types.Candidate{
			SourceType: types.SourceBook,
			Title:      d.Title,
			URL:        "https://openlibrary.org" + d.Key,
			Signals:    types.Signals{ProviderID: d.Key},
		}
		if len(d.AuthorName) > 0 {
			c.Origin = d.AuthorName[0]
		}
		if d.FirstPublishYear > 0 {
			c.Signals.PublishedAt = time.Date(d.FirstPublishYear, 1, 1, 0, 0, 0, 0, time.UTC)
		}
		candidates = append(candidates, c)
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}
