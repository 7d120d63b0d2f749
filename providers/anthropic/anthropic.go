// Package anthropic adapts Anthropic's Messages API to the standardized
// uniai text features, expressing each feature as an instruction prompt.
package anthropic

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	a "github.com/anthropics/anthropic-sdk-go"
	"github.com/anthropics/anthropic-sdk-go/option"

	"github.com/uniai-go/uniai"
	"github.com/uniai-go/uniai/language"
)

// Name is the registry name of this provider.
const Name = "anthropic"

const (
	defaultModel     = "claude-3-5-haiku-latest"
	defaultMaxTokens = 2048
)

// MessageService is the slice of the Anthropic client this adapter needs.
type MessageService interface {
	New(ctx context.Context, body a.MessageNewParams, opts ...option.RequestOption) (*a.Message, error)
}

var _ MessageService = (*a.MessageService)(nil)

// Client implements uniai text features over Anthropic messages.
type Client struct {
	svc   MessageService
	model string
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New returns a Client over the given message service, typically
// client.Messages.
func New(svc MessageService, opts ...Option) *Client {
	c := &Client{svc: svc, model: defaultModel}
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
	_ uniai.Summarizer        = (*Client)(nil)
)

// complete sends one system+user exchange and returns the concatenated text
// reply, the raw payload, and token usage.
func (c *Client) complete(ctx context.Context, instructions, text string) (string, json.RawMessage, *uniai.Usage, error) {
	resp, err := c.svc.New(ctx, a.MessageNewParams{
		Model:     a.Model(c.model),
		MaxTokens: defaultMaxTokens,
		System:    []a.TextBlockParam{{Text: instructions}},
		Messages:  []a.MessageParam{a.NewUserMessage(a.NewTextBlock(text))},
	})
	if err != nil {
		return "", nil, nil, uniai.ProviderErr{Provider: Name, Message: "message request failed", Cause: err}
	}

	var reply strings.Builder
	for _, part := range resp.Content {
		if part.Type == "text" {
			reply.WriteString(part.Text)
		}
	}
	usage := &uniai.Usage{
		PromptTokens:     int(resp.Usage.InputTokens),
		CompletionTokens: int(resp.Usage.OutputTokens),
	}
	return reply.String(), json.RawMessage(resp.RawJSON()), usage, nil
}

func languageClause(lang string) string {
	if lang == "" {
		return ""
	}
	if name := language.DisplayNameFromCode(lang); name != lang {
		return fmt.Sprintf(" The text is in %s.", name)
	}
	return fmt.Sprintf(" The text language tag is %q.", lang)
}

func stripFences(s string) string {
	s = strings.TrimSpace(s)
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}

// SentimentAnalysis implements uniai.SentimentAnalyzer.
func (c *Client) SentimentAnalysis(ctx context.Context, lang, text string) (uniai.Response[uniai.SentimentAnalysis], error) {
	instructions := "Analyze the sentiment of the user's text." + languageClause(lang) +
		` Reply with JSON only, shaped as {"general_sentiment":"Positive|Negative|Neutral",` +
		`"items":[{"segment":"...","sentiment":"Positive|Negative|Neutral"}]} with one item per sentence.`
	reply, raw, usage, err := c.complete(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.SentimentAnalysis]{}, err
	}
	var out uniai.SentimentAnalysis
	if err := json.Unmarshal([]byte(stripFences(reply)), &out); err != nil {
		return uniai.Response[uniai.SentimentAnalysis]{}, uniai.ProviderErr{Provider: Name, Message: "unparseable sentiment reply", Cause: err}
	}
	return uniai.Response[uniai.SentimentAnalysis]{Raw: raw, Standardized: out, Usage: usage}, nil
}

// Summarize implements uniai.Summarizer.
func (c *Client) Summarize(ctx context.Context, lang, text string, outputSentences int) (uniai.Response[uniai.Summarize], error) {
	instructions := "Summarize the user's text."
	if outputSentences > 0 {
		instructions = fmt.Sprintf("Summarize the user's text in at most %d sentences.", outputSentences)
	}
	instructions += languageClause(lang) + " Reply with the summary only."
	reply, raw, usage, err := c.complete(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.Summarize]{}, err
	}
	return uniai.Response[uniai.Summarize]{
		Raw:          raw,
		Standardized: uniai.Summarize{Result: strings.TrimSpace(reply)},
		Usage:        usage,
	}, nil
}
