// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/pdiddy/learnpath/pkg/types"
)

func testCfg() types.ResearchConfig {
	return types.ResearchConfig{
		HTTPConfig:   types.HTTPConfig{Timeout: 10 * time.Second, UserAgent: "test/0.1"},
		MaxPerSource: 10,
	}
}

func req(topic string) types.Request {
	return types.Request{Topic: topic, Level: types.LevelBeginner}
}

func TestAcademicResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("query"); got != "machine learning" {
			t.Errorf("query param = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"elements": []map[string]string{
			{"name": "Machine Learning", "slug": "machine-learning"},
			{"name": "Underwater Basket Weaving", "slug": "ubw"},
			{"name": "no slug", "slug": ""},
		}})
	}))
	defer ts.Close()
	old := courseCatalogBase
	courseCatalogBase = ts.URL
	defer func() { courseCatalogBase = old }()

	r := &AcademicResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("machine learning"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	// The unrelated course fails the educational filter for this topic.
	if len(got) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(got))
	}
	c := got[0]
	if c.SourceType != types.SourceCourse || c.URL != "https://www.coursera.org/learn/machine-learning" {
		t.Errorf("candidate = %+v", c)
	}
	if c.Score <= 0 || c.Score > 1 || !c.Verified {
		t.Errorf("scoring not applied: score=%f verified=%v", c.Score, c.Verified)
	}
}

func TestCertificationResolverFiltersNonCertifications(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"elements": []map[string]string{
			{"name": "Cloud Security Professional Certificate", "slug": "cloud-security-cert"},
			{"name": "Cloud Security Basics", "slug": "cloud-security-basics"},
		}})
	}))
	defer ts.Close()
	old := courseCatalogBase
	courseCatalogBase = ts.URL
	defer func() { courseCatalogBase = old }()

	r := &CertificationResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("cloud security"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0].Signals.ProviderID != "cloud-security-cert" {
		t.Errorf("candidates = %+v, want only the certificate entry", got)
	}
	if got[0].SourceType != types.SourceCertification {
		t.Errorf("source type = %s", got[0].SourceType)
	}
}

func TestBookResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"docs": []map[string]any{
			{"title": "Neural Networks and Deep Learning", "author_name": []string{"M. Nielsen"}, "first_publish_year": 2015, "key": "/works/OL1W"},
			{"title": "", "key": "/works/OL2W"},
		}})
	}))
	defer ts.Close()
	old := bookSearchBase
	bookSearchBase = ts.URL
	defer func() { bookSearchBase = old }()

	r := &BookResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("neural networks"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(got))
	}
	if got[0].Origin != "M. Nielsen" || got[0].URL != "https://openlibrary.org/works/OL1W" {
		t.Errorf("candidate = %+v", got[0])
	}
	if got[0].Signals.PublishedAt.Year() != 2015 {
		t.Errorf("publish year = %d, want 2015", got[0].Signals.PublishedAt.Year())
	}
}

func TestGovernmentResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"result": map[string]any{"results": []map[string]any{
			{
				"name":         "food-safety-guide",
				"title":        "Food Safety Guide",
				"notes":        "official food safety guidance",
				"organization": map[string]string{"title": "FDA"},
			},
		}}})
	}))
	defer ts.Close()
	old := govSearchBase
	govSearchBase = ts.URL
	defer func() { govSearchBase = old }()

	r := &GovernmentResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("food safety"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0].Origin != "FDA" {
		t.Fatalf("candidates = %+v", got)
	}
	if got[0].URL != "https://catalog.data.gov/dataset/food-safety-guide" {
		t.Errorf("url = %s", got[0].URL)
	}
}

func TestArticleResolverStripsSnippetMarkup(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"query": map[string]any{"search": []map[string]string{
			{
				"title":     "Neural networks introduction",
				"snippet":   `An <span class="searchmatch">introduction</span> to neural networks`,
				"timestamp": "2025-06-01T00:00:00Z",
			},
		}}})
	}))
	defer ts.Close()
	old := articleSearchBase
	articleSearchBase = ts.URL
	defer func() { articleSearchBase = old }()

	r := &ArticleResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("neural networks"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("len(candidates) = %d, want 1", len(got))
	}
	if got[0].Signals.Description != "An introduction to neural networks" {
		t.Errorf("description = %q, markup not stripped", got[0].Signals.Description)
	}
	if got[0].URL != "https://en.wikipedia.org/wiki/Neural_networks_introduction" {
		t.Errorf("url = %s", got[0].URL)
	}
}

func TestPodcastResolver(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if got := r.URL.Query().Get("media"); got != "podcast" {
			t.Errorf("media param = %q", got)
		}
		json.NewEncoder(w).Encode(map[string]any{"results": []map[string]string{
			{
				"collectionName":    "Learn Machine Learning",
				"artistName":        "Some Host",
				"collectionViewUrl": "https://podcasts.example/ml",
				"releaseDate":       "2025-03-01T00:00:00Z",
				"primaryGenreName":  "Education",
			},
		}})
	}))
	defer ts.Close()
	old := podcastSearchBase
	podcastSearchBase = ts.URL
	defer func() { podcastSearchBase = old }()

	r := &PodcastResolver{Client: ts.Client(), Cfg: testCfg()}
	got, err := r.Resolve(context.Background(), req("machine learning"))
	if err != nil {
		t.Fatalf("Resolve() error = %v", err)
	}
	if len(got) != 1 || got[0].Origin != "Some Host" {
		t.Fatalf("candidates = %+v", got)
	}
}

func TestResolverErrorSurfacesUpward(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()
	old := bookSearchBase
	bookSearchBase = ts.URL
	defer func() { bookSearchBase = old }()

	r := &BookResolver{Client: ts.Client(), Cfg: testCfg()}
	if _, err := r.Resolve(context.Background(), req("anything")); err == nil {
		t.Error("Resolve() = nil error, want HTTP failure; the orchestrator degrades it")
	}
}
