// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package classify

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"text/template"

	"github.com/pdiddy/learnpath/internal/httputil"
	"github.com/pdiddy/learnpath/pkg/types"
)

// claudeAPIURL is the Claude Messages API endpoint. Package-level var for
// test substitution.
var claudeAPIURL = "https://api.anthropic.com/v1/messages"

// requestPromptTmpl asks for a safety/intent judgment of one request.
var requestPromptTmpl = template.Must(template.New("request").Parse(`You are a content safety reviewer for an educational resource finder. Judge the following learning request.

Topic: {{.Topic}}
Description: {{.Description}}
Level: {{.Level}}

Decide:
- safe: whether helping someone learn this topic is safe and lawful
- allow_with_disclaimer: if not plainly safe, whether it may still proceed behind a disclaimer (e.g. medical or legal self-education)
- disclaimer_type: one of "medical", "legal", "financial", "safety_critical", "controversial_educational", or "" when no disclaimer applies
- educational_value: a float between 0.0 and 1.0 rating genuine learning intent
- reason: one short sentence

Respond with a single JSON object with exactly those fields and no other text.

Example response:
{"safe": true, "allow_with_disclaimer": false, "disclaimer_type": "", "educational_value": 0.9, "reason": "Standard technical topic."}
`))

// candidatesPromptTmpl asks for a batch relevance judgment.
var candidatesPromptTmpl = template.Must(template.New("candidates").Parse(`You are ranking video search results for someone learning "{{.Topic}}" at the {{.Level}} level. For each item below, judge:
- relevance: float 0.0-1.0, how relevant the item is to the topic
- educational: whether the item is instructional content (not entertainment)
- level_match: whether the item suits a {{.Level}} learner
- combined: float 0.0-1.0, your single overall ranking metric

Items:
{{range .Items}}- id: {{.ID}}
  title: {{.Title}}
  description: {{.Description}}
{{end}}
Respond with a JSON array only. Each element must have fields: id, relevance, educational, level_match, combined. Include every item exactly once and no other text.
`))

// coveragePromptTmpl asks whether a resource set covers the topic.
var coveragePromptTmpl = template.Must(template.New("coverage").Parse(`You are auditing a set of learning resources gathered for the topic "{{.Topic}}"{{if .Description}} ({{.Description}}){{end}} at the {{.Level}} level.

Resources:
{{range .Resources}}- {{.}}
{{end}}
Judge:
- score: float 0.0-1.0, how completely these resources cover the topic for that level
- missing_topics: an array of short strings naming important subtopics none of the resources address (empty array if none)

Respond with a single JSON object with exactly those fields and no other text.

Example response:
{"score": 0.8, "missing_topics": ["backpropagation"]}
`))

// ClaudeClassifier implements Classifier against the Claude Messages API.
type ClaudeClassifier struct {
	Cfg    types.AIConfig
	Client *http.Client

	// Log receives warnings about retried or degraded calls.
	Log io.Writer
}

// NewClaudeClassifier returns a classifier using cfg, or nil when no API
// key is configured. Call sites treat a nil classifier as an unavailable
// service and apply their defaults.
func NewClaudeClassifier(cfg types.AIConfig, client *http.Client, log io.Writer) *ClaudeClassifier {
	if cfg.APIKey == "" {
		return nil
	}
	return &ClaudeClassifier{Cfg: cfg, Client: client, Log: log}
}

type claudeRequest struct {
	Model     string          `json:"model"`
	MaxTokens int             `json:"max_tokens"`
	Messages  []claudeMessage `json:"messages"`
}

type claudeMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type claudeResponse struct {
	Content []claudeContent `json:"content"`
}

type claudeContent struct {
	Type string `json:"type"`
	Text string `json:"text"`
}

// JudgeRequest implements Classifier.
func (c *ClaudeClassifier) JudgeRequest(ctx context.Context, req types.Request) (RequestJudgment, error) {
	var buf bytes.Buffer
	if err := requestPromptTmpl.Execute(&buf, req); err != nil {
		return RequestJudgment{}, &ClassificationError{Op: "judge request", Err: err}
	}

	raw, err := c.complete(ctx, buf.String())
	if err != nil {
		return RequestJudgment{}, &ClassificationError{Op: "judge request", Err: err}
	}

	var j RequestJudgment
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return RequestJudgment{}, &ClassificationError{Op: "judge request", Err: fmt.Errorf("parsing judgment: %w", err)}
	}
	return j, nil
}

// JudgeCandidates implements Classifier.
func (c *ClaudeClassifier) JudgeCandidates(ctx context.Context, topic string, level types.Level, items []CandidateSummary) ([]CandidateJudgment, error) {
	if len(items) == 0 {
		return nil, nil
	}

	var buf bytes.Buffer
	data := struct {
		Topic string
		Level types.Level
		Items []CandidateSummary
	}{topic, level, items}
	if err := candidatesPromptTmpl.Execute(&buf, data); err != nil {
		return nil, &ClassificationError{Op: "judge candidates", Err: err}
	}

	raw, err := c.complete(ctx, buf.String())
	if err != nil {
		return nil, &ClassificationError{Op: "judge candidates", Err: err}
	}

	var js []CandidateJudgment
	if err := json.Unmarshal([]byte(raw), &js); err != nil {
		return nil, &ClassificationError{Op: "judge candidates", Err: fmt.Errorf("parsing judgments: %w", err)}
	}
	return js, nil
}

// JudgeCoverage implements Classifier.
func (c *ClaudeClassifier) JudgeCoverage(ctx context.Context, req types.Request, titles, descriptions []string) (CoverageJudgment, error) {
	resources := make([]string, 0, len(titles))
	for i, t := range titles {
		line := t
		if i < len(descriptions) && descriptions[i] != "" {
			d := descriptions[i]
			if len(d) > 200 {
				d = d[:200]
			}
			line += " — " + d
		}
		resources = append(resources, line)
	}

	var buf bytes.Buffer
	data := struct {
		Topic       string
		Description string
		Level       types.Level
		Resources   []string
	}{req.Topic, req.Description, req.Level, resources}
	if err := coveragePromptTmpl.Execute(&buf, data); err != nil {
		return CoverageJudgment{}, &ClassificationError{Op: "judge coverage", Err: err}
	}

	raw, err := c.complete(ctx, buf.String())
	if err != nil {
		return CoverageJudgment{}, &ClassificationError{Op: "judge coverage", Err: err}
	}

	var j CoverageJudgment
	if err := json.Unmarshal([]byte(raw), &j); err != nil {
		return CoverageJudgment{}, &ClassificationError{Op: "judge coverage", Err: fmt.Errorf("parsing judgment: %w", err)}
	}
	return j, nil
}

// complete sends one user message and returns the JSON payload embedded
// in the model's reply.
func (c *ClaudeClassifier) complete(ctx context.Context, prompt string) (string, error) {
	reqBody := claudeRequest{
		Model:     c.Cfg.Model,
		MaxTokens: 2048,
		Messages:  []claudeMessage{{Role: "user", Content: prompt}},
	}

	bodyBytes, err := json.Marshal(reqBody)
	if err != nil {
		return "", fmt.Errorf("marshaling request: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, claudeAPIURL, bytes.NewReader(bodyBytes))
	if err != nil {
		return "", fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("x-api-key", c.Cfg.APIKey)
	req.Header.Set("anthropic-version", "2023-06-01")

	client := c.Client
	if client == nil {
		client = http.DefaultClient
	}

	resp, err := httputil.DoWithRetry(ctx, client, req, c.Cfg.MaxRetries, c.Log)
	if err != nil {
		return "", fmt.Errorf("calling AI API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return "", fmt.Errorf("AI API returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}

	var cResp claudeResponse
	if err := json.NewDecoder(resp.Body).Decode(&cResp); err != nil {
		return "", fmt.Errorf("decoding AI response: %w", err)
	}

	var text string
	for _, block := range cResp.Content {
		if block.Type == "text" {
			text += block.Text
		}
	}
	return extractJSON(text)
}
