// Package google adapts the Gemini API to the standardized uniai features:
// summarization and language detection.
package google

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"google.golang.org/genai"

	"github.com/uniai-go/uniai"
	"github.com/uniai-go/uniai/language"
)

// Name is the registry name of this provider.
const Name = "google"

const defaultModel = "gemini-2.0-flash"

// Client implements uniai features over Gemini content generation.
type Client struct {
	client *genai.Client
	model  string
}

// Option configures a Client.
type Option func(*Client)

// WithModel overrides the default model.
func WithModel(model string) Option {
	return func(c *Client) { c.model = model }
}

// New returns a Client over a configured genai client.
func New(client *genai.Client, opts ...Option) *Client {
	c := &Client{client: client, model: defaultModel}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Name implements uniai.Provider.
func (c *Client) Name() string { return Name }

var (
	_ uniai.Provider         = (*Client)(nil)
	_ uniai.Summarizer       = (*Client)(nil)
	_ uniai.LanguageDetector = (*Client)(nil)
)

// generate runs one generation and returns the reply text, raw payload, and
// token usage.
func (c *Client) generate(ctx context.Context, instructions, text string) (string, json.RawMessage, *uniai.Usage, error) {
	resp, err := c.client.Models.GenerateContent(ctx, c.model, genai.Text(text), &genai.GenerateContentConfig{
		SystemInstruction: genai.NewContentFromText(instructions, genai.RoleUser),
	})
	if err != nil {
		return "", nil, nil, uniai.ProviderErr{Provider: Name, Message: "content generation failed", Cause: err}
	}
	raw, err := json.Marshal(resp)
	if err != nil {
		return "", nil, nil, fmt.Errorf("encoding raw response: %w", err)
	}
	var usage *uniai.Usage
	if resp.UsageMetadata != nil {
		usage = &uniai.Usage{
			PromptTokens:     int(resp.UsageMetadata.PromptTokenCount),
			CompletionTokens: int(resp.UsageMetadata.CandidatesTokenCount),
		}
	}
	return resp.Text(), raw, usage, nil
}

// Summarize implements uniai.Summarizer.
func (c *Client) Summarize(ctx context.Context, lang, text string, outputSentences int) (uniai.Response[uniai.Summarize], error) {
	instructions := "Summarize the user's text."
	if outputSentences > 0 {
		instructions = fmt.Sprintf("Summarize the user's text in at most %d sentences.", outputSentences)
	}
	if lang != "" {
		if name := language.DisplayNameFromCode(lang); name != lang {
			instructions += fmt.Sprintf(" The text is in %s.", name)
		}
	}
	instructions += " Reply with the summary only."

	reply, raw, usage, err := c.generate(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.Summarize]{}, err
	}
	return uniai.Response[uniai.Summarize]{
		Raw:          raw,
		Standardized: uniai.Summarize{Result: strings.TrimSpace(reply)},
		Usage:        usage,
	}, nil
}

// LanguageDetection implements uniai.LanguageDetector. The model reports the
// English name of the language; the standardized tag is recovered with a
// reverse name lookup.
func (c *Client) LanguageDetection(ctx context.Context, text string) (uniai.Response[uniai.LanguageDetection], error) {
	instructions := "Identify the language of the user's text. " +
		"Reply with only the English name of the language, e.g. French."
	reply, raw, usage, err := c.generate(ctx, instructions, text)
	if err != nil {
		return uniai.Response[uniai.LanguageDetection]{}, err
	}
	name := strings.TrimSpace(reply)
	return uniai.Response[uniai.LanguageDetection]{
		Raw: raw,
		Standardized: uniai.LanguageDetection{
			Items: []uniai.DetectedLanguage{{
				Language:    language.CodeFromName(name),
				DisplayName: name,
			}},
		},
		Usage: usage,
	}, nil
}
