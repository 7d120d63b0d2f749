package uniai

import (
	"errors"
	"fmt"
)

// ProviderErr is returned when a provider call fails at the vendor side. It
// carries the provider name, the vendor's message, and the HTTP status code
// when one is available.
type ProviderErr struct {
	// Provider is the name of the provider that failed.
	Provider string
	// StatusCode is the vendor's HTTP status code, or zero when the failure
	// did not come from an HTTP response.
	StatusCode int
	// Message is the vendor's error message.
	Message string
	// Cause is the underlying error, if any.
	Cause error
}

func (p ProviderErr) Error() string {
	if p.StatusCode != 0 {
		return fmt.Sprintf("provider %s: %s (status %d)", p.Provider, p.Message, p.StatusCode)
	}
	return fmt.Sprintf("provider %s: %s", p.Provider, p.Message)
}

// Unwrap returns the underlying cause of the provider failure.
func (p ProviderErr) Unwrap() error {
	return p.Cause
}

// FeatureNotSupportedErr is returned when a provider is asked for a
// (feature, subfeature) pair it does not implement.
type FeatureNotSupportedErr struct {
	Provider   string
	Feature    Feature
	Subfeature Subfeature
}

func (f FeatureNotSupportedErr) Error() string {
	return fmt.Sprintf("provider %s does not support %s/%s", f.Provider, f.Feature, f.Subfeature)
}

// UnknownProviderErr is returned when a provider name is not registered.
type UnknownProviderErr string

func (u UnknownProviderErr) Error() string {
	return fmt.Sprintf("unknown provider: %s", string(u))
}

// UnsupportedLanguageErr is returned when language negotiation finds no
// acceptable tag among a provider's declared languages. This is a normal
// domain-level rejection, not a negotiation failure.
type UnsupportedLanguageErr struct {
	// Provider is the provider whose constraints rejected the tag.
	Provider string
	// Language is the tag the caller requested.
	Language string
}

func (u UnsupportedLanguageErr) Error() string {
	return fmt.Sprintf("provider %s does not support selected language: %q", u.Provider, u.Language)
}

// ErrLanguageRequired is returned when a provider cannot auto-detect the
// input language and the caller supplied none.
var ErrLanguageRequired = errors.New("provider does not auto-detect languages, a language is required")
