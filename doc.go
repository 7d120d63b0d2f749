// Package uniai provides a unified interface for consuming AI features from
// multiple third-party providers.
//
// The package normalizes the heterogeneous request and response shapes of
// cloud NLP vendors and skills-pipeline vendors into one standardized schema
// per feature: sentiment analysis, keyword extraction, named entity
// recognition, anonymization, summarization, language detection, and
// speech-to-text.
//
// # Core Concepts
//
// Provider: anything registered with a Registry under a name. A provider
// advertises capabilities by implementing one or more of the per-subfeature
// interfaces (SentimentAnalyzer, KeywordExtractor, EntityRecognizer,
// Anonymizer, Summarizer, LanguageDetector, Transcriber).
//
// Response: every feature call returns a Response[T] pairing the provider's
// raw payload with the standardized value for that feature:
//
//	type Response[T any] struct {
//		Raw          json.RawMessage
//		Standardized T
//		Usage        *Usage
//	}
//
// Router: resolves the caller's language tag against the target provider's
// declared language constraints before dispatching, rejecting requests the
// provider cannot serve:
//
//	router := uniai.NewRouter(registry, resolver)
//	resp, err := router.SentimentAnalysis(ctx, "oneai", "fr", text)
//
// Language negotiation itself lives in the language subpackage; per-provider
// constraint data lives in provinfo. Concrete adapters live under providers.
//
// Transport policy, credential loading, and vendor field-mapping completeness
// are deliberately out of scope; adapters receive configured clients.
package uniai
