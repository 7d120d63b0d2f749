// Package oneai adapts the One AI skills-pipeline API to the standardized
// uniai feature schema. Every text feature is one pipeline call with a single
// skill step; speech-to-text runs as an asynchronous task that is launched
// and then polled.
package oneai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"strings"

	"github.com/uniai-go/uniai"
	"github.com/uniai-go/uniai/language"
)

// Name is the registry name of this provider.
const Name = "oneai"

const defaultBaseURL = "https://api.oneai.com/api/v0/pipeline"

// Client calls the One AI pipeline API. Create one with New.
type Client struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL overrides the pipeline endpoint, mainly for tests.
func WithBaseURL(url string) Option {
	return func(c *Client) { c.baseURL = strings.TrimSuffix(url, "/") }
}

// WithHTTPClient replaces the HTTP client used for all calls.
func WithHTTPClient(httpc *http.Client) Option {
	return func(c *Client) { c.httpc = httpc }
}

// New returns a Client authenticating with apiKey.
func New(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:  apiKey,
		baseURL: defaultBaseURL,
		httpc:   http.DefaultClient,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements uniai.Provider.
func (c *Client) Name() string { return Name }

var (
	_ uniai.Provider          = (*Client)(nil)
	_ uniai.SentimentAnalyzer = (*Client)(nil)
	_ uniai.KeywordExtractor  = (*Client)(nil)
	_ uniai.EntityRecognizer  = (*Client)(nil)
	_ uniai.Anonymizer        = (*Client)(nil)
	_ uniai.Summarizer        = (*Client)(nil)
	_ uniai.LanguageDetector  = (*Client)(nil)
	_ uniai.Transcriber       = (*Client)(nil)
)

// pipelineStep is one skill invocation in a pipeline request.
type pipelineStep struct {
	Skill  string         `json:"skill"`
	Params map[string]any `json:"params,omitempty"`
}

type pipelineRequest struct {
	Input        string         `json:"input"`
	InputType    string         `json:"input_type,omitempty"`
	ContentType  string         `json:"content_type,omitempty"`
	Steps        []pipelineStep `json:"steps"`
	Multilingual bool           `json:"multilingual,omitempty"`
}

// label is one annotation produced by a skill. Value is either a string (a
// sentiment polarity, an entity, a language name) or a number (a keyword
// weight) depending on the skill.
type label struct {
	Name         string          `json:"name"`
	SpanText     string          `json:"span_text"`
	Value        json.RawMessage `json:"value"`
	Speaker      string          `json:"speaker"`
	Timestamp    float64         `json:"timestamp"`
	TimestampEnd float64         `json:"timestamp_end"`
}

func (l label) valueString() string {
	var s string
	if err := json.Unmarshal(l.Value, &s); err != nil {
		return ""
	}
	return s
}

func (l label) valueFloat() float64 {
	var f float64
	if err := json.Unmarshal(l.Value, &f); err != nil {
		return 0
	}
	return f
}

type pipelineOutput struct {
	Text   string  `json:"text"`
	Labels []label `json:"labels"`
}

type pipelineResponse struct {
	Output  []pipelineOutput `json:"output"`
	Message string           `json:"message"`
}

// do posts a request and decodes the vendor envelope, mapping non-200
// statuses to uniai.ProviderErr with the vendor's message.
func (c *Client) do(ctx context.Context, method, url string, body []byte, out any) (json.RawMessage, error) {
	req, err := http.NewRequestWithContext(ctx, method, url, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("building oneai request: %w", err)
	}
	req.Header.Set("api-key", c.apiKey)
	req.Header.Set("accept", "application/json")
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpc.Do(req)
	if err != nil {
		return nil, uniai.ProviderErr{Provider: Name, Message: "request failed", Cause: err}
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, uniai.ProviderErr{Provider: Name, Message: "reading response", Cause: err}
	}
	if resp.StatusCode != http.StatusOK {
		var envelope struct {
			Message string `json:"message"`
		}
		_ = json.Unmarshal(raw, &envelope)
		return raw, uniai.ProviderErr{Provider: Name, StatusCode: resp.StatusCode, Message: envelope.Message}
	}
	if out != nil {
		if err := json.Unmarshal(raw, out); err != nil {
			return raw, uniai.ProviderErr{Provider: Name, Message: "decoding response", Cause: err}
		}
	}
	return raw, nil
}

// runSkill executes a single-skill pipeline over text and returns the first
// output block.
func (c *Client) runSkill(ctx context.Context, skill, text string, multilingual bool) (json.RawMessage, pipelineOutput, error) {
	body, err := json.Marshal(pipelineRequest{
		Input:        text,
		Steps:        []pipelineStep{{Skill: skill}},
		Multilingual: multilingual,
	})
	if err != nil {
		return nil, pipelineOutput{}, fmt.Errorf("encoding oneai request: %w", err)
	}
	var pr pipelineResponse
	raw, err := c.do(ctx, http.MethodPost, c.baseURL, body, &pr)
	if err != nil {
		return raw, pipelineOutput{}, err
	}
	if len(pr.Output) == 0 {
		return raw, pipelineOutput{}, uniai.ProviderErr{Provider: Name, Message: "empty pipeline output"}
	}
	return raw, pr.Output[0], nil
}

// Anonymization implements uniai.Anonymizer via the anonymize skill. The
// language argument is unused: the skill operates on the text directly.
func (c *Client) Anonymization(ctx context.Context, _, text string) (uniai.Response[uniai.Anonymization], error) {
	raw, out, err := c.runSkill(ctx, "anonymize", text, false)
	if err != nil {
		return uniai.Response[uniai.Anonymization]{}, err
	}
	return uniai.Response[uniai.Anonymization]{
		Raw:          raw,
		Standardized: uniai.Anonymization{Result: out.Text},
	}, nil
}

// KeywordExtraction implements uniai.KeywordExtractor via the keywords skill.
func (c *Client) KeywordExtraction(ctx context.Context, _, text string) (uniai.Response[uniai.KeywordExtraction], error) {
	raw, out, err := c.runSkill(ctx, "keywords", text, false)
	if err != nil {
		return uniai.Response[uniai.KeywordExtraction]{}, err
	}
	items := make([]uniai.Keyword, 0, len(out.Labels))
	for _, l := range out.Labels {
		items = append(items, uniai.Keyword{
			Keyword:    l.SpanText,
			Importance: roundTo(l.valueFloat(), 2),
		})
	}
	return uniai.Response[uniai.KeywordExtraction]{
		Raw:          raw,
		Standardized: uniai.KeywordExtraction{Items: items},
	}, nil
}

// NamedEntityRecognition implements uniai.EntityRecognizer via the names
// skill. The vendor's GEO category is normalized to LOCATION.
func (c *Client) NamedEntityRecognition(ctx context.Context, _, text string) (uniai.Response[uniai.NamedEntityRecognition], error) {
	raw, out, err := c.runSkill(ctx, "names", text, false)
	if err != nil {
		return uniai.Response[uniai.NamedEntityRecognition]{}, err
	}
	items := make([]uniai.NamedEntity, 0, len(out.Labels))
	for _, l := range out.Labels {
		category := l.Name
		if category == "GEO" {
			category = "LOCATION"
		}
		items = append(items, uniai.NamedEntity{
			Entity:   l.valueString(),
			Category: category,
		})
	}
	return uniai.Response[uniai.NamedEntityRecognition]{
		Raw:          raw,
		Standardized: uniai.NamedEntityRecognition{Items: items},
	}, nil
}

// SentimentAnalysis implements uniai.SentimentAnalyzer via the sentiments
// skill. The general sentiment is the sign of the net polarity count over all
// spans.
func (c *Client) SentimentAnalysis(ctx context.Context, _, text string) (uniai.Response[uniai.SentimentAnalysis], error) {
	raw, out, err := c.runSkill(ctx, "sentiments", text, false)
	if err != nil {
		return uniai.Response[uniai.SentimentAnalysis]{}, err
	}
	items := make([]uniai.SentimentSegment, 0, len(out.Labels))
	net := 0
	for _, l := range out.Labels {
		sentiment := uniai.SentimentPositive
		if l.valueString() == "NEG" {
			sentiment = uniai.SentimentNegative
			net--
		} else {
			net++
		}
		items = append(items, uniai.SentimentSegment{
			Segment:   l.SpanText,
			Sentiment: sentiment,
		})
	}
	general := uniai.SentimentNeutral
	switch {
	case net < 0:
		general = uniai.SentimentNegative
	case net > 0:
		general = uniai.SentimentPositive
	}
	return uniai.Response[uniai.SentimentAnalysis]{
		Raw: raw,
		Standardized: uniai.SentimentAnalysis{
			GeneralSentiment: general,
			Items:            items,
		},
	}, nil
}

// Summarize implements uniai.Summarizer via the summarize skill. The sentence
// budget is not supported by the vendor and is ignored.
func (c *Client) Summarize(ctx context.Context, _, text string, _ int) (uniai.Response[uniai.Summarize], error) {
	raw, out, err := c.runSkill(ctx, "summarize", text, false)
	if err != nil {
		return uniai.Response[uniai.Summarize]{}, err
	}
	return uniai.Response[uniai.Summarize]{
		Raw:          raw,
		Standardized: uniai.Summarize{Result: out.Text},
	}, nil
}

// LanguageDetection implements uniai.LanguageDetector via the detect-language
// skill. The vendor reports display names; tags are recovered with a reverse
// name lookup and may be the Unknown sentinel for exotic names.
func (c *Client) LanguageDetection(ctx context.Context, text string) (uniai.Response[uniai.LanguageDetection], error) {
	raw, out, err := c.runSkill(ctx, "detect-language", text, true)
	if err != nil {
		return uniai.Response[uniai.LanguageDetection]{}, err
	}
	items := make([]uniai.DetectedLanguage, 0, len(out.Labels))
	for _, l := range out.Labels {
		name := l.valueString()
		items = append(items, uniai.DetectedLanguage{
			Language:    language.CodeFromName(name),
			DisplayName: name,
		})
	}
	return uniai.Response[uniai.LanguageDetection]{
		Raw:          raw,
		Standardized: uniai.LanguageDetection{Items: items},
	}, nil
}

func roundTo(f float64, decimals int) float64 {
	shift := 1.0
	for i := 0; i < decimals; i++ {
		shift *= 10
	}
	return math.Round(f*shift) / shift
}
