package uniai

import "encoding/json"

// Feature identifies a top-level feature family a provider may implement.
type Feature string

const (
	FeatureText        Feature = "text"
	FeatureTranslation Feature = "translation"
	FeatureAudio       Feature = "audio"
)

// Subfeature identifies a concrete operation within a Feature.
type Subfeature string

const (
	SubfeatureSentimentAnalysis      Subfeature = "sentiment_analysis"
	SubfeatureKeywordExtraction      Subfeature = "keyword_extraction"
	SubfeatureNamedEntityRecognition Subfeature = "named_entity_recognition"
	SubfeatureAnonymization          Subfeature = "anonymization"
	SubfeatureSummarize              Subfeature = "summarize"
	SubfeatureLanguageDetection      Subfeature = "language_detection"
	SubfeatureSpeechToTextAsync      Subfeature = "speech_to_text_async"
)

// Response pairs a provider's raw payload with the standardized value for a
// feature. Raw is kept verbatim so callers can reach vendor fields the
// standardized schema does not carry.
type Response[T any] struct {
	// Raw is the provider's original response body, unmodified.
	Raw json.RawMessage

	// Standardized is the normalized value for the feature.
	Standardized T

	// Usage reports token consumption when the provider exposes it. Nil for
	// providers that do not meter by tokens.
	Usage *Usage
}

// Usage reports token consumption for a single provider call.
type Usage struct {
	PromptTokens     int
	CompletionTokens int
}

// Sentiment is the standardized polarity label.
type Sentiment string

const (
	SentimentPositive Sentiment = "Positive"
	SentimentNegative Sentiment = "Negative"
	SentimentNeutral  Sentiment = "Neutral"
)

// SentimentSegment is the sentiment of one span of the analyzed text.
type SentimentSegment struct {
	Segment   string    `json:"segment"`
	Sentiment Sentiment `json:"sentiment"`
	Rate      float64   `json:"sentiment_rate,omitempty"`
}

// SentimentAnalysis is the standardized sentiment analysis result.
type SentimentAnalysis struct {
	GeneralSentiment Sentiment          `json:"general_sentiment"`
	GeneralRate      float64            `json:"general_sentiment_rate,omitempty"`
	Items            []SentimentSegment `json:"items"`
}

// Keyword is one extracted keyword with its weight.
type Keyword struct {
	Keyword    string  `json:"keyword"`
	Importance float64 `json:"importance"`
}

// KeywordExtraction is the standardized keyword extraction result.
type KeywordExtraction struct {
	Items []Keyword `json:"items"`
}

// NamedEntity is one recognized entity.
type NamedEntity struct {
	Entity     string  `json:"entity"`
	Category   string  `json:"category"`
	Importance float64 `json:"importance,omitempty"`
}

// NamedEntityRecognition is the standardized entity recognition result.
type NamedEntityRecognition struct {
	Items []NamedEntity `json:"items"`
}

// Anonymization is the standardized anonymization result: the input text with
// sensitive spans replaced.
type Anonymization struct {
	Result string `json:"result"`
}

// Summarize is the standardized summarization result.
type Summarize struct {
	Result string `json:"result"`
}

// DetectedLanguage is one candidate language for the analyzed text.
type DetectedLanguage struct {
	// Language is the standardized tag, e.g. "fr" or "zh-Hant".
	Language string `json:"language"`

	// DisplayName is a human-readable language name.
	DisplayName string `json:"display_name"`

	Confidence float64 `json:"confidence,omitempty"`
}

// LanguageDetection is the standardized language detection result.
type LanguageDetection struct {
	Items []DetectedLanguage `json:"items"`
}

// SpeechDiarizationEntry attributes one transcript segment to a speaker.
type SpeechDiarizationEntry struct {
	Segment   string  `json:"segment"`
	Speaker   int     `json:"speaker"`
	StartTime float64 `json:"start_time"`
	EndTime   float64 `json:"end_time"`
}

// SpeechDiarization is the speaker breakdown of a transcript.
type SpeechDiarization struct {
	TotalSpeakers int                      `json:"total_speakers"`
	Entries       []SpeechDiarizationEntry `json:"entries"`
}

// SpeechToText is the standardized transcription result.
type SpeechToText struct {
	Text        string            `json:"text"`
	Diarization SpeechDiarization `json:"diarization"`
}

// JobStatus is the state of an asynchronous provider job.
type JobStatus string

const (
	JobPending   JobStatus = "pending"
	JobSucceeded JobStatus = "succeeded"
	JobFailed    JobStatus = "failed"
)

// TranscriptionJob identifies a launched speech-to-text job.
type TranscriptionJob struct {
	ProviderJobID string `json:"provider_job_id"`
}

// AsyncResponse is the result of polling an asynchronous job. Response is
// only meaningful when Status is JobSucceeded.
type AsyncResponse[T any] struct {
	Status        JobStatus `json:"status"`
	ProviderJobID string    `json:"provider_job_id"`
	Response[T]
}
