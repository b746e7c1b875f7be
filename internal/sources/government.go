// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/pdiddy/learnpath/pkg/types"
)

// govSearchBase is the public government data catalog search endpoint
// (CKAN package_search). Var for tests.
var govSearchBase = "https://catalog.data.gov/api/3/action/package_search"

// GovernmentResolver finds official government guides and datasets.
type GovernmentResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *GovernmentResolver) SourceType() types.SourceType { return types.SourceGovernment }

type govSearchResponse struct {
	Result struct {
		Results []struct {
			Name         string `json:"name"`
			Title        string `json:"title"`
			Notes        string `json:"notes"`
			Organization struct {
				Title string `json:"title"`
			} `json:"organization"`
		} `json:"results"`
	} `json:"result"`
}

// Resolve queries the catalog and scores the matches.
func (r *GovernmentResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"q":    {req.Topic},
		"rows": {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
	}

	var gr govSearchResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, govSearchBase+"?"+params.Encode(), &gr); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, res := range gr.Result.Results {
		if res.Title == "" || res.Name == "" {
			continue
		}
		candidates = append(candidates, types.Candidate{
			SourceType: types.SourceGovernment,
			Title:      res.Title,
			Origin:     res.Organization.Title,
			URL:        "https://catalog.data.gov/dataset/" + res.Name,
			Signals: types.Signals{
				Description: res.Notes,
				ProviderID:  res.Name,
			},
		})
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}
