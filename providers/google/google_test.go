package google

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"google.golang.org/genai"

	"github.com/uniai-go/uniai"
)

// newTestClient wires a Client to a local server returning body for every
// generation call.
func newTestClient(t *testing.T, statusCode int, body string, opts ...Option) *Client {
	t.Helper()
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	gc, err := genai.NewClient(context.Background(), &genai.ClientConfig{
		APIKey: "fake-api-key",
		HTTPOptions: genai.HTTPOptions{
			BaseURL: server.URL,
		},
	})
	if err != nil {
		t.Fatalf("creating genai client: %v", err)
	}
	return New(gc, opts...)
}

func generationBody(text string) string {
	return `{
		"candidates": [{
			"content": {
				"role": "model",
				"parts": [{"text": ` + mustJSON(text) + `}]
			}
		}],
		"usageMetadata": {
			"promptTokenCount": 11,
			"candidatesTokenCount": 4
		}
	}`
}

func mustJSON(s string) string {
	b, err := json.Marshal(s)
	if err != nil {
		panic(err)
	}
	return string(b)
}

func TestSummarize(t *testing.T) {
	client := newTestClient(t, http.StatusOK, generationBody("A brief summary."))

	resp, err := client.Summarize(context.Background(), "en", "a very long text", 2)
	if err != nil {
		t.Fatalf("Summarize() error = %v", err)
	}
	if resp.Standardized.Result != "A brief summary." {
		t.Errorf("Result = %q", resp.Standardized.Result)
	}
	if resp.Usage == nil || resp.Usage.PromptTokens != 11 || resp.Usage.CompletionTokens != 4 {
		t.Errorf("Usage = %+v", resp.Usage)
	}
	if len(resp.Raw) == 0 {
		t.Errorf("Raw is empty")
	}
}

func TestLanguageDetection(t *testing.T) {
	tests := []struct {
		name     string
		reply    string
		wantTag  string
		wantName string
	}{
		{name: "known language", reply: "French\n", wantTag: "fr", wantName: "French"},
		{name: "unrecognized name", reply: "Galactic Basic", wantTag: "Unknown", wantName: "Galactic Basic"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := newTestClient(t, http.StatusOK, generationBody(tt.reply))

			resp, err := client.LanguageDetection(context.Background(), "Bonjour tout le monde")
			if err != nil {
				t.Fatalf("LanguageDetection() error = %v", err)
			}
			items := resp.Standardized.Items
			if len(items) != 1 {
				t.Fatalf("Items = %v, want one entry", items)
			}
			if items[0].Language != tt.wantTag {
				t.Errorf("Language = %q, want %q", items[0].Language, tt.wantTag)
			}
			if items[0].DisplayName != tt.wantName {
				t.Errorf("DisplayName = %q, want %q", items[0].DisplayName, tt.wantName)
			}
		})
	}
}

func TestGenerationFailure(t *testing.T) {
	client := newTestClient(t, http.StatusTooManyRequests, `{
		"error": {
			"code": 429,
			"message": "You exceeded your current quota.",
			"status": "RESOURCE_EXHAUSTED"
		}
	}`)

	_, err := client.Summarize(context.Background(), "en", "text", 0)
	var providerErr uniai.ProviderErr
	if !errors.As(err, &providerErr) {
		t.Fatalf("error = %v, want ProviderErr", err)
	}
	if providerErr.Cause == nil {
		t.Errorf("ProviderErr.Cause is nil, want the vendor error")
	}
}
