package openai

import (
	"context"
	"errors"
	"strings"
	"testing"

	oai "github.com/openai/openai-go/v3"
	"github.com/openai/openai-go/v3/option"

	"github.com/uniai-go/uniai"
)

// mockCompletionService returns canned replies and records the last request.
type mockCompletionService struct {
	reply   string
	err     error
	lastReq oai.ChatCompletionNewParams
	calls   int
}

func (m *mockCompletionService) New(ctx context.Context, body oai.ChatCompletionNewParams, opts ...option.RequestOption) (*oai.ChatCompletion, error) {
	m.calls++
	m.lastReq = body
	if m.err != nil {
		return nil, m.err
	}
	return &oai.ChatCompletion{
		Choices: []oai.ChatCompletionChoice{
			{Message: oai.ChatCompletionMessage{Content: m.reply}},
		},
		Usage: oai.CompletionUsage{
			PromptTokens:     42,
			CompletionTokens: 7,
		},
	}, nil
}

func TestSentimentAnalysis(t *testing.T) {
	tests := []struct {
		name  string
		reply string
	}{
		{
			name:  "bare json",
			reply: `{"general_sentiment":"Positive","items":[{"segment":"Great stuff.","sentiment":"Positive"}]}`,
		},
		{
			name: "fenced json",
			reply: "```json\n" +
				`{"general_sentiment":"Positive","items":[{"segment":"Great stuff.","sentiment":"Positive"}]}` +
				"\n```",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &mockCompletionService{reply: tt.reply}
			client := New(svc)

			resp, err := client.SentimentAnalysis(context.Background(), "en", "Great stuff.")
			if err != nil {
				t.Fatalf("SentimentAnalysis() error = %v", err)
			}
			if resp.Standardized.GeneralSentiment != uniai.SentimentPositive {
				t.Errorf("GeneralSentiment = %q", resp.Standardized.GeneralSentiment)
			}
			if len(resp.Standardized.Items) != 1 || resp.Standardized.Items[0].Sentiment != uniai.SentimentPositive {
				t.Errorf("Items = %v", resp.Standardized.Items)
			}
			if resp.Usage == nil || resp.Usage.PromptTokens != 42 || resp.Usage.CompletionTokens != 7 {
				t.Errorf("Usage = %+v", resp.Usage)
			}
		})
	}
}

func TestSentimentAnalysisUnparseableReply(t *testing.T) {
	svc := &mockCompletionService{reply: "I'd rather not answer in JSON."}
	client := New(svc)

	_, err := client.SentimentAnalysis(context.Background(), "en", "text")
	var providerErr uniai.ProviderErr
	if !errors.As(err, &providerErr) {
		t.Fatalf("error = %v, want ProviderErr", err)
	}
}

func TestKeywordExtraction(t *testing.T) {
	svc := &mockCompletionService{reply: `{"items":[{"keyword":"negotiation","importance":0.91}]}`}
	client := New(svc)

	resp, err := client.KeywordExtraction(context.Background(), "fr", "du texte")
	if err != nil {
		t.Fatalf("KeywordExtraction() error = %v", err)
	}
	if len(resp.Standardized.Items) != 1 || resp.Standardized.Items[0].Keyword != "negotiation" {
		t.Errorf("Items = %v", resp.Standardized.Items)
	}

	// The negotiated tag is phrased as a display name in the instructions.
	system := svc.lastReq.Messages[0].OfSystem.Content.OfString.Value
	if !strings.Contains(system, "French") {
		t.Errorf("system prompt = %q, want it to mention French", system)
	}
}

func TestAnonymization(t *testing.T) {
	svc := &mockCompletionService{reply: "  <NAME> lives in <CITY>.\n"}
	client := New(svc)

	resp, err := client.Anonymization(context.Background(), "en", "Ada lives in Lisbon.")
	if err != nil {
		t.Fatalf("Anonymization() error = %v", err)
	}
	if resp.Standardized.Result != "<NAME> lives in <CITY>." {
		t.Errorf("Result = %q", resp.Standardized.Result)
	}
}

func TestSummarize(t *testing.T) {
	svc := &mockCompletionService{reply: "A short summary."}
	client := New(svc, WithModel("gpt-4o"))

	resp, err := client.Summarize(context.Background(), "", "a very long text", 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if resp.Standardized.Result != "A short summary." {
		t.Errorf("Result = %q", resp.Standardized.Result)
	}
	if svc.lastReq.Model != "gpt-4o" {
		t.Errorf("Model = %q, want gpt-4o", svc.lastReq.Model)
	}
	system := svc.lastReq.Messages[0].OfSystem.Content.OfString.Value
	if !strings.Contains(system, "at most 2 sentences") {
		t.Errorf("system prompt = %q, want a sentence budget", system)
	}
}

func TestCompletionFailure(t *testing.T) {
	svc := &mockCompletionService{err: errors.New("boom")}
	client := New(svc)

	_, err := client.Summarize(context.Background(), "en", "text", 0)
	var providerErr uniai.ProviderErr
	if !errors.As(err, &providerErr) {
		t.Fatalf("error = %v, want ProviderErr", err)
	}
	if !strings.Contains(providerErr.Error(), "chat completion failed") {
		t.Errorf("error = %v", providerErr)
	}
}

func TestStripFences(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{`{"a":1}`, `{"a":1}`},
		{"```json\n{\"a\":1}\n```", `{"a":1}`},
		{"```\n{\"a\":1}\n```", `{"a":1}`},
		{"  {\"a\":1}  ", `{"a":1}`},
	}
	for _, tt := range tests {
		if got := stripFences(tt.in); got != tt.want {
			t.Errorf("stripFences(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
