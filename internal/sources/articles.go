// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

// articleSearchBase is the encyclopedia search API endpoint. Var for tests.
var articleSearchBase = "https://en.wikipedia.org/w/api.php"

// ArticleResolver finds reference articles for a topic.
type ArticleResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *ArticleResolver) SourceType() types.SourceType { return types.SourceArticle }

type articleSearchResponse struct {
	Query struct {
		Search []struct {
			Title     string `json:"title"`
			Snippet   string `json:"snippet"`
			Timestamp string `json:"timestamp"`
		} `json:"search"`
	} `json:"query"`
}

// Resolve queries the article index and scores the matches.
func (r *ArticleResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"action":   {"query"},
		"list":     {"search"},
		"srsearch": {req.Topic},
		"srlimit":  {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
		"format":   {"json"},
	}

	var ar articleSearchResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, articleSearchBase+"?"+params.Encode(), &ar); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, s := range ar.Query.Search {
		if s.Title == "" {
			continue
		}
		c := types.Candidate{
			SourceType: types.SourceArticle,
			Title:      s.Title,
			Origin:     "Wikipedia",
			URL:        "https://en.wikipedia.org/wiki/" + url.PathEscape(strings.ReplaceAll(s.Title, " ", "_")),
			Signals:    types.Signals{Description: stripTags(s.Snippet)},
		}
		if ts, err := time.Parse(time.RFC3339, s.Timestamp); err == nil {
			c.Signals.PublishedAt = ts
		}
		candidates = append(candidates, c)
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}

// stripTags removes the highlight markup the search API embeds in
// snippets. Good enough for scoring; not a general HTML parser.
func stripTags(s string) string {
	var b strings.Builder
	inTag := false
	for _, r := range s {
		switch {
		case r == '<':
			inTag = true
		case r == '>':
			inTag = false
		case !inTag:
			b.WriteRune(r)
		}
	}
	return b.String()
}
