package uniai

import "context"

// Provider is the minimal contract for anything registered with a Registry.
// Capabilities beyond the name are advertised by implementing the
// per-subfeature interfaces below; the Registry discovers them with type
// assertions.
type Provider interface {
	Name() string
}

// SentimentAnalyzer analyzes the overall and per-segment sentiment of text.
// language may be empty when the provider auto-detects the input language.
type SentimentAnalyzer interface {
	SentimentAnalysis(ctx context.Context, language, text string) (Response[SentimentAnalysis], error)
}

// KeywordExtractor extracts weighted keywords from text.
type KeywordExtractor interface {
	KeywordExtraction(ctx context.Context, language, text string) (Response[KeywordExtraction], error)
}

// EntityRecognizer performs named entity recognition on text.
type EntityRecognizer interface {
	NamedEntityRecognition(ctx context.Context, language, text string) (Response[NamedEntityRecognition], error)
}

// Anonymizer redacts personally identifiable information from text.
type Anonymizer interface {
	Anonymization(ctx context.Context, language, text string) (Response[Anonymization], error)
}

// Summarizer produces a summary of text in at most outputSentences sentences.
// Providers that cannot honor the sentence budget may approximate it.
type Summarizer interface {
	Summarize(ctx context.Context, language, text string, outputSentences int) (Response[Summarize], error)
}

// LanguageDetector identifies the language(s) of text.
type LanguageDetector interface {
	LanguageDetection(ctx context.Context, text string) (Response[LanguageDetection], error)
}

// TranscriptionRequest describes an asynchronous speech-to-text job.
type TranscriptionRequest struct {
	// FileURL locates the audio to transcribe.
	FileURL string
	// Language may be empty when the provider auto-detects it.
	Language string
	// Speakers hints the expected speaker count for diarization; zero means
	// let the provider decide.
	Speakers int
	// ProfanityFilter masks profanity in the transcript when supported.
	ProfanityFilter bool
}

// Transcriber runs speech-to-text as an asynchronous job: launch, then poll.
type Transcriber interface {
	LaunchTranscription(ctx context.Context, req TranscriptionRequest) (TranscriptionJob, error)
	TranscriptionResult(ctx context.Context, providerJobID string) (AsyncResponse[SpeechToText], error)
}
