// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/pdiddy/learnpath/pkg/types"
)

// courseCatalogBase is the public course catalog search endpoint.
// Declared as a var so tests can substitute an httptest server.
var courseCatalogBase = "https://api.coursera.org/api/courses.v1"

// AcademicResolver finds structured academic courses for a topic.
type AcademicResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *AcademicResolver) SourceType() types.SourceType { return types.SourceCourse }

type courseCatalogResponse struct {
	Elements []struct {
		Name string `json:"name"`
		Slug string `json:"slug"`
	} `json:"elements"`
}

// Resolve queries the course catalog and scores the matches.
func (r *AcademicResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"q":     {"search"},
		"query": {req.Topic},
		"limit": {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
	}

	var cr courseCatalogResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, courseCatalogBase+"?"+params.Encode(), &cr); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, e := range cr.Elements {
		if e.Name == "" || e.Slug == "" {
			continue
		}
		candidates = append(candidates, types.Candidate{
			SourceType: types.SourceCourse,
			Title:      e.Name,
			Origin:     "Coursera",
			URL:        "https://www.coursera.org/learn/" + e.Slug,
			Signals:    types.Signals{ProviderID: e.Slug, Category: "education"},
		})
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}

// CertificationResolver finds professional certifications for a topic.
// The catalog has no certification facet, so the resolver biases the
// query and keeps entries whose names read as certifications.
type CertificationResolver struct {
	Client *http.Client
	Cfg    types.ResearchConfig
}

// SourceType returns the resolver's source type.
func (r *CertificationResolver) SourceType() types.SourceType { return types.SourceCertification }

// certificationTerms mark a catalog entry as a certification program.
var certificationTerms = []string{"certificate", "certification", "certified", "professional"}

// Resolve queries the catalog with a certification-biased query.
func (r *CertificationResolver) Resolve(ctx context.Context, req types.Request) ([]types.Candidate, error) {
	params := url.Values{
		"q":     {"search"},
		"query": {req.Topic + " professional certificate"},
		"limit": {strconv.Itoa(catalogLimit(r.Cfg.MaxPerSource))},
	}

	var cr courseCatalogResponse
	if err := getJSON(ctx, r.Client, r.Cfg.HTTPConfig, courseCatalogBase+"?"+params.Encode(), &cr); err != nil {
		return nil, err
	}

	var candidates []types.Candidate
	for _, e := range cr.Elements {
		if e.Name == "" || e.Slug == "" || !containsAnyFold(e.Name, certificationTerms) {
			continue
		}
		candidates = append(candidates, types.Candidate{
			SourceType: types.SourceCertification,
			Title:      e.Name,
			Origin:     "Coursera",
			URL:        "https://www.coursera.org/learn/" + e.Slug,
			Signals:    types.Signals{ProviderID: e.Slug, Category: "education"},
		})
	}
	return scoreAndRank(candidates, req, r.Cfg.MaxPerSource), nil
}

// catalogLimit over-fetches so the educational filter has slack to drop
// entries without starving the result.
func catalogLimit(max int) int {
	if max <= 0 {
		max = 10
	}
	return max * 2
}

func containsAnyFold(s string, terms []string) bool {
	s = strings.ToLower(s)
	for _, t := range terms {
		if strings.Contains(s, t) {
			return true
		}
	}
	return false
}
