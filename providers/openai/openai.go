// Package openai adapts OpenAI chat completions to the standardized uniai
// text features. Features are expressed as instruction prompts whose replies
// are parsed back into the standardized schema.
package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"
	"github.com/pkoukk/tiktoken-go"

	"github.com/uniai-go/uniai"
	"github.com/uniai-go/uniai/language"
)

// Name is the registry name of this provider.
const Name = "openai"

const (
	defaultModel = "gpt-4o-mini"

	// defaultMaxPromptTokens caps the input before any request is sent, so
	// over-length texts fail fast instead of burning a vendor round trip.
	defaultMaxPromptTokens = 100_000
)

// CompletionService is the slice of the OpenAI client this adapter needs.
type CompletionService interface {
	New(ctx context.Context, body oai.ChatCompletionNewParams, opts ...option.RequestOption) (*oai.ChatCompletion, error)
}

var _ CompletionService = (*oai.ChatCompletionService)(nil)

// Client implements uniai text features over OpenAI chat completions.
type Client struct {
	svc             CompletionService
	model           string
	maxPromptTokens int
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// WithMaxPromptTokens overrides the input token budget.
func WithMaxPromptTokens(n int) Option {
	return func(c *Client) { c.maxPromptTokens = n }
}

// New returns a Client over the given completion service, typically
// client.Chat.Completions.
func New(svc CompletionService, opts ...Option) *Client {
	c := &Client{
		svc:             svc,
		model:           defaultModel,
		maxPromptTokens: defaultMaxPromptTokens,
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
	_ uniai.Anonymizer        = (*Client)(nil)
	_ uniai.Summarizer        = (*Client)(nil)
)

// checkBudget counts prompt tokens with the model's tokenizer and rejects
// inputs over the budget. Unknown models fall back to the cl100k_base
// encoding; if no tokenizer is available at all the check is skipped.
func (c *Client) checkBudget(text string) error {
	enc, err := tiktoken.EncodingForModel(c.model)
	if err != nil {
		enc, err = tiktoken.GetEncoding("cl100k_base")
		if err != nil {
			return nil
		}
	}
	if n := len(enc.Encode(text, nil, nil)); n > c.maxPromptTokens {
		return uniai.ProviderErr{
			Provider: Name,
			Message:  fmt.Sprintf("input of %d tokens exceeds the %d token budget", n, c.maxPromptTokens),
		}
	}
	return nil
}

// complete sends one system+user exchange and returns the reply text, the raw
// payload, and token usage.
func (c *Client) complete(ctx context.Context, instructions, text string) (string, json.RawMessage, *uniai.Usage, error) {
	if err := c.checkBudget(text); err != nil {
		return "", nil, nil, err
	}
	resp, err := c.svc.New(ctx, oai.ChatCompletionNewParams{
		Model: c.model,
		Messages: []oai.ChatCompletionMessageParamUnion{
			oai.SystemMessage(instructions),
			oai.UserMessage(text),
		},
	})
	if err != nil {
		return "", nil, nil, uniai.ProviderErr{Provider: Name, Message: "chat completion failed", Cause: err}
	}
	if len(resp.Choices) == 0 {
		return "", nil, nil, uniai.ProviderErr{Provider: Name, Message: "no choices in completion"}
	}
	usage := &uniai.Usage{
		PromptTokens:     int(resp.Usage.PromptTokens),
		CompletionTokens: int(resp.Usage.CompletionTokens),
	}
	return resp.Choices[0].Message.Content, json.RawMessage(resp.RawJSON()), usage, nil
}

// languageClause phrases the negotiated language for an instruction prompt.
func languageClause(lang string) string {
	if lang == "" {
		return ""
	}
	if name := language.DisplayNameFromCode(lang); name != lang {
		return fmt.Sprintf(" The text is in %s.", name)
	}
	return fmt.Sprintf(" The text language tag is %q.", lang)
}

// stripFences removes a Markdown code fence around a model reply, if any.
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

// KeywordExtraction implements uniai.KeywordExtractor.
func (c *Client) KeywordExtraction(ctx context.Context, lang, text string) (uniai.Response[uniai.KeywordExtraction], error) {
	instructions := "Extract the most important keywords from the user's text." + languageClause(lang) +
		` Reply with JSON only, shaped as {"items":[{"keyword":"...","importance":0.0}]} ` +
		`where importance is between 0 and 1.`
	reply, raw, usage, err := c.complete(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.KeywordExtraction]{}, err
	}
	var out uniai.KeywordExtraction
	if err := json.Unmarshal([]byte(stripFences(reply)), &out); err != nil {
		return uniai.Response[uniai.KeywordExtraction]{}, uniai.ProviderErr{Provider: Name, Message: "unparseable keywords reply", Cause: err}
	}
	return uniai.Response[uniai.KeywordExtraction]{Raw: raw, Standardized: out, Usage: usage}, nil
}

// Anonymization implements uniai.Anonymizer.
func (c *Client) Anonymization(ctx context.Context, lang, text string) (uniai.Response[uniai.Anonymization], error) {
	instructions := "Replace every piece of personally identifiable information in the user's text " +
		"with a placeholder of its category in angle brackets, e.g. <NAME> or <EMAIL>." +
		languageClause(lang) + " Reply with the redacted text only."
	reply, raw, usage, err := c.complete(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.Anonymization]{}, err
	}
	return uniai.Response[uniai.Anonymization]{
		Raw:          raw,
		Standardized: uniai.Anonymization{Result: strings.TrimSpace(reply)},
		Usage:        usage,
	}, nil
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
