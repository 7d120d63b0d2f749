package uniai

import (
	"context"
	"slices"
	"testing"
)

// stubSentiment implements only sentiment analysis.
type stubSentiment struct {
	name string
	resp Response[SentimentAnalysis]
	err  error

	gotLanguage string
	gotText     string
}

func (s *stubSentiment) Name() string { return s.name }

func (s *stubSentiment) SentimentAnalysis(ctx context.Context, language, text string) (Response[SentimentAnalysis], error) {
	s.gotLanguage = language
	s.gotText = text
	return s.resp, s.err
}

// stubSummarizer implements only summarization.
type stubSummarizer struct {
	name string
}

func (s *stubSummarizer) Name() string { return s.name }

func (s *stubSummarizer) Summarize(ctx context.Context, language, text string, outputSentences int) (Response[Summarize], error) {
	return Response[Summarize]{}, nil
}

func TestRegistryRegister(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(&stubSentiment{name: "alpha"}); err != nil {
		t.Fatalf("Register() error = %v", err)
	}
	if err := r.Register(&stubSentiment{name: "alpha"}); err == nil {
		t.Errorf("Register() duplicate name: expected error")
	}
	if err := r.Register(&stubSentiment{}); err == nil {
		t.Errorf("Register() empty name: expected error")
	}

	p, ok := r.Get("alpha")
	if !ok || p.Name() != "alpha" {
		t.Errorf("Get(alpha) = %v, %v", p, ok)
	}
	if _, ok := r.Get("missing"); ok {
		t.Errorf("Get(missing) unexpectedly found a provider")
	}
}

func TestRegistryCapabilityLookup(t *testing.T) {
	r := NewRegistry()
	for _, p := range []Provider{
		&stubSentiment{name: "beta"},
		&stubSentiment{name: "alpha"},
		&stubSummarizer{name: "gamma"},
	} {
		if err := r.Register(p); err != nil {
			t.Fatalf("Register(%s) error = %v", p.Name(), err)
		}
	}

	got := r.Providers(FeatureText, SubfeatureSentimentAnalysis)
	if !slices.Equal(got, []string{"alpha", "beta"}) {
		t.Errorf("Providers(sentiment) = %v, want [alpha beta]", got)
	}

	got = r.Providers(FeatureText, SubfeatureSummarize)
	if !slices.Equal(got, []string{"gamma"}) {
		t.Errorf("Providers(summarize) = %v, want [gamma]", got)
	}

	if got := r.Providers(FeatureAudio, SubfeatureSpeechToTextAsync); len(got) != 0 {
		t.Errorf("Providers(speech_to_text_async) = %v, want empty", got)
	}

	// Untyped lookup serves the language package's ProviderLister.
	got = r.SupportedProviders("text", "sentiment_analysis")
	if !slices.Equal(got, []string{"alpha", "beta"}) {
		t.Errorf("SupportedProviders(sentiment) = %v, want [alpha beta]", got)
	}
}
