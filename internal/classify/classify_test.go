// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/pdiddy/learnpath/pkg/types"
)

func TestExtractJSON(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{
			name:  "bare object",
			input: `{"safe": true}`,
			want:  `{"safe": true}`,
		},
		{
			name:  "fenced json block",
			input: "```json\n{\"safe\": true}\n```",
			want:  `{"safe": true}`,
		},
		{
			name:  "plain fence",
			input: "```\n[1, 2]\n```",
			want:  `[1, 2]`,
		},
		{
			name:  "surrounding prose",
			input: "Here is my judgment:\n{\"score\": 0.5}\nHope that helps.",
			want:  `{"score": 0.5}`,
		},
		{
			name:  "array with prose",
			input: "Results: [{\"id\": \"a\"}]",
			want:  `[{"id": "a"}]`,
		},
		{
			name:    "no json",
			input:   "I cannot answer that.",
			wantErr: true,
		},
		{
			name:    "unterminated object",
			input:   `{"safe": tr`,
			wantErr: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := extractJSON(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("extractJSON() error = %v, wantErr %v", err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("extractJSON() = %q, want %q", got, tt.want)
			}
		})
	}
}

// claudeServer fakes the Messages API with a fixed text reply.
func claudeServer(t *testing.T, reply string, gotHeaders *http.Header) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if gotHeaders != nil {
			*gotHeaders = r.Header.Clone()
		}
		resp := claudeResponse{Content: []claudeContent{{Type: "text", Text: reply}}}
		json.NewEncoder(w).Encode(resp)
	}))
}

func testClassifier(t *testing.T, srv *httptest.Server) *ClaudeClassifier {
	t.Helper()
	old := claudeAPIURL
	claudeAPIURL = srv.URL
	t.Cleanup(func() {
		claudeAPIURL = old
		srv.Close()
	})
	return &ClaudeClassifier{
		Cfg:    types.AIConfig{Model: "test-model", APIKey: "secret"},
		Client: srv.Client(),
	}
}

func TestJudgeRequest(t *testing.T) {
	reply := "```json\n" + `{"safe": false, "allow_with_disclaimer": true, "disclaimer_type": "medical", "educational_value": 0.7, "reason": "Self-education in medicine."}` + "\n```"
	var headers http.Header
	c := testClassifier(t, claudeServer(t, reply, &headers))

	j, err := c.JudgeRequest(context.Background(), types.Request{Topic: "first aid", Level: types.LevelBeginner})
	if err != nil {
		t.Fatalf("JudgeRequest() error = %v", err)
	}
	if j.Safe || !j.AllowWithDisclaimer || j.DisclaimerType != "medical" {
		t.Errorf("judgment = %+v, want disclaimer path", j)
	}

	if headers.Get("x-api-key") != "secret" {
		t.Error("x-api-key header not sent")
	}
	if headers.Get("anthropic-version") == "" {
		t.Error("anthropic-version header not sent")
	}
}

func TestJudgeCandidates(t *testing.T) {
	reply := `[
		{"id": "a", "relevance": 0.9, "educational": true, "level_match": true, "combined": 0.85},
		{"id": "b", "relevance": 0.2, "educational": false, "level_match": false, "combined": 0.1}
	]`
	c := testClassifier(t, claudeServer(t, reply, nil))

	items := []CandidateSummary{
		{ID: "a", Title: "Go Tutorial"},
		{ID: "b", Title: "Cat Compilation"},
	}
	js, err := c.JudgeCandidates(context.Background(), "go", types.LevelBeginner, items)
	if err != nil {
		t.Fatalf("JudgeCandidates() error = %v", err)
	}
	if len(js) != 2 || js[0].Combined != 0.85 || js[1].Educational {
		t.Errorf("judgments = %+v", js)
	}
}

func TestJudgeCandidatesEmptyBatch(t *testing.T) {
	c := &ClaudeClassifier{Cfg: types.AIConfig{APIKey: "secret"}}
	js, err := c.JudgeCandidates(context.Background(), "go", types.LevelBeginner, nil)
	if err != nil || js != nil {
		t.Errorf("empty batch = (%v, %v), want no call and no result", js, err)
	}
}

func TestJudgeCoverage(t *testing.T) {
	reply := `{"score": 0.6, "missing_topics": ["generics", "reflection"]}`
	c := testClassifier(t, claudeServer(t, reply, nil))

	j, err := c.JudgeCoverage(context.Background(), types.Request{Topic: "go"},
		[]string{"Go Basics", "Go Concurrency"}, []string{"", ""})
	if err != nil {
		t.Fatalf("JudgeCoverage() error = %v", err)
	}
	if j.Score != 0.6 || len(j.MissingTopics) != 2 {
		t.Errorf("judgment = %+v", j)
	}
}

func TestJudgeRequestMalformedReply(t *testing.T) {
	c := testClassifier(t, claudeServer(t, "I will not answer in JSON.", nil))

	_, err := c.JudgeRequest(context.Background(), types.Request{Topic: "go"})
	var cerr *ClassificationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ClassificationError", err)
	}
	if cerr.Op != "judge request" {
		t.Errorf("Op = %q", cerr.Op)
	}
}

func TestJudgeRequestServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	c := testClassifier(t, srv)

	_, err := c.JudgeRequest(context.Background(), types.Request{Topic: "go"})
	var cerr *ClassificationError
	if !errors.As(err, &cerr) {
		t.Fatalf("error = %v, want *ClassificationError", err)
	}
}

func TestNewClaudeClassifierWithoutKey(t *testing.T) {
	if c := NewClaudeClassifier(types.AIConfig{}, nil, nil); c != nil {
		t.Error("NewClaudeClassifier() without key should be nil")
	}
}
