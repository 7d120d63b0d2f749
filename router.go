package uniai

import (
	"context"

	"github.com/uniai-go/uniai/language"
)

// LanguageResolver negotiates a requested language tag against a provider's
// declared constraints. *language.Resolver is the canonical implementation.
type LanguageResolver interface {
	Resolve(ctx context.Context, requested, providerName, feature, subfeature string) (string, error)
	AutoDetectable(providerName, feature, subfeature string) (bool, error)
}

var _ LanguageResolver = (*language.Resolver)(nil)

// Router dispatches feature calls to registered providers, negotiating the
// caller's language against the target provider's constraints first. A
// request whose language the provider cannot serve is rejected with
// UnsupportedLanguageErr before any vendor call is made.
type Router struct {
	registry *Registry
	resolver LanguageResolver
}

// NewRouter returns a Router dispatching over the given registry with the
// given language resolver.
func NewRouter(registry *Registry, resolver LanguageResolver) *Router {
	return &Router{registry: registry, resolver: resolver}
}

// negotiate maps the caller's language to the tag passed to the provider. An
// empty caller language is only acceptable when the provider auto-detects;
// the provider then receives an empty language. A negotiated empty result
// means the provider cannot serve the request.
func (rt *Router) negotiate(ctx context.Context, providerName string, feature Feature, subfeature Subfeature, lang string) (string, error) {
	if lang == "" {
		autodetect, err := rt.resolver.AutoDetectable(providerName, string(feature), string(subfeature))
		if err != nil {
			return "", err
		}
		if !autodetect {
			return "", ErrLanguageRequired
		}
		return "", nil
	}
	resolved, err := rt.resolver.Resolve(ctx, lang, providerName, string(feature), string(subfeature))
	if err != nil {
		return "", err
	}
	if resolved == "" {
		return "", UnsupportedLanguageErr{Provider: providerName, Language: lang}
	}
	return resolved, nil
}

// capability fetches the named provider and asserts the requested capability.
func capability[T any](rt *Router, providerName string, feature Feature, subfeature Subfeature) (T, error) {
	var zero T
	p, ok := rt.registry.Get(providerName)
	if !ok {
		return zero, UnknownProviderErr(providerName)
	}
	impl, ok := p.(T)
	if !ok {
		return zero, FeatureNotSupportedErr{Provider: providerName, Feature: feature, Subfeature: subfeature}
	}
	return impl, nil
}

// SentimentAnalysis negotiates lang against providerName's constraints and
// dispatches text/sentiment_analysis.
func (rt *Router) SentimentAnalysis(ctx context.Context, providerName, lang, text string) (Response[SentimentAnalysis], error) {
	impl, err := capability[SentimentAnalyzer](rt, providerName, FeatureText, SubfeatureSentimentAnalysis)
	if err != nil {
		return Response[SentimentAnalysis]{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureText, SubfeatureSentimentAnalysis, lang)
	if err != nil {
		return Response[SentimentAnalysis]{}, err
	}
	return impl.SentimentAnalysis(ctx, resolved, text)
}

// KeywordExtraction negotiates lang and dispatches text/keyword_extraction.
func (rt *Router) KeywordExtraction(ctx context.Context, providerName, lang, text string) (Response[KeywordExtraction], error) {
	impl, err := capability[KeywordExtractor](rt, providerName, FeatureText, SubfeatureKeywordExtraction)
	if err != nil {
		return Response[KeywordExtraction]{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureText, SubfeatureKeywordExtraction, lang)
	if err != nil {
		return Response[KeywordExtraction]{}, err
	}
	return impl.KeywordExtraction(ctx, resolved, text)
}

// NamedEntityRecognition negotiates lang and dispatches
// text/named_entity_recognition.
func (rt *Router) NamedEntityRecognition(ctx context.Context, providerName, lang, text string) (Response[NamedEntityRecognition], error) {
	impl, err := capability[EntityRecognizer](rt, providerName, FeatureText, SubfeatureNamedEntityRecognition)
	if err != nil {
		return Response[NamedEntityRecognition]{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureText, SubfeatureNamedEntityRecognition, lang)
	if err != nil {
		return Response[NamedEntityRecognition]{}, err
	}
	return impl.NamedEntityRecognition(ctx, resolved, text)
}

// Anonymization negotiates lang and dispatches text/anonymization.
func (rt *Router) Anonymization(ctx context.Context, providerName, lang, text string) (Response[Anonymization], error) {
	impl, err := capability[Anonymizer](rt, providerName, FeatureText, SubfeatureAnonymization)
	if err != nil {
		return Response[Anonymization]{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureText, SubfeatureAnonymization, lang)
	if err != nil {
		return Response[Anonymization]{}, err
	}
	return impl.Anonymization(ctx, resolved, text)
}

// Summarize negotiates lang and dispatches text/summarize.
func (rt *Router) Summarize(ctx context.Context, providerName, lang, text string, outputSentences int) (Response[Summarize], error) {
	impl, err := capability[Summarizer](rt, providerName, FeatureText, SubfeatureSummarize)
	if err != nil {
		return Response[Summarize]{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureText, SubfeatureSummarize, lang)
	if err != nil {
		return Response[Summarize]{}, err
	}
	return impl.Summarize(ctx, resolved, text, outputSentences)
}

// LanguageDetection dispatches translation/language_detection. No language is
// negotiated: detection takes none by definition.
func (rt *Router) LanguageDetection(ctx context.Context, providerName, text string) (Response[LanguageDetection], error) {
	impl, err := capability[LanguageDetector](rt, providerName, FeatureTranslation, SubfeatureLanguageDetection)
	if err != nil {
		return Response[LanguageDetection]{}, err
	}
	return impl.LanguageDetection(ctx, text)
}

// LaunchTranscription negotiates req.Language when present and launches an
// asynchronous audio/speech_to_text_async job.
func (rt *Router) LaunchTranscription(ctx context.Context, providerName string, req TranscriptionRequest) (TranscriptionJob, error) {
	impl, err := capability[Transcriber](rt, providerName, FeatureAudio, SubfeatureSpeechToTextAsync)
	if err != nil {
		return TranscriptionJob{}, err
	}
	resolved, err := rt.negotiate(ctx, providerName, FeatureAudio, SubfeatureSpeechToTextAsync, req.Language)
	if err != nil {
		return TranscriptionJob{}, err
	}
	req.Language = resolved
	return impl.LaunchTranscription(ctx, req)
}

// TranscriptionResult polls an asynchronous speech-to-text job.
func (rt *Router) TranscriptionResult(ctx context.Context, providerName, providerJobID string) (AsyncResponse[SpeechToText], error) {
	impl, err := capability[Transcriber](rt, providerName, FeatureAudio, SubfeatureSpeechToTextAsync)
	if err != nil {
		return AsyncResponse[SpeechToText]{}, err
	}
	return impl.TranscriptionResult(ctx, providerJobID)
}
