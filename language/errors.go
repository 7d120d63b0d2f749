package language

import "fmt"

// MalformedTagErr is returned when a requested language tag does not conform
// to the lang[-extlang][-Script][-Region] grammar. It is a caller error:
// the request is never retried and no constraint lookup is performed.
// The string value is the offending tag.
type MalformedTagErr string

func (m MalformedTagErr) Error() string {
	return fmt.Sprintf("invalid language format for: %q", string(m))
}

// MatchingUnavailableErr is returned when the closest-match collaborator kept
// failing transiently and the bounded retry budget ran out. The requested tag
// may well be supported; the caller can retry the whole operation later.
type MatchingUnavailableErr struct {
	// Attempts is the number of match attempts made before giving up.
	Attempts int
	// Cause is the last transient error observed.
	Cause error
}

func (m MatchingUnavailableErr) Error() string {
	return fmt.Sprintf("language matching unavailable after %d attempts: %v", m.Attempts, m.Cause)
}

// Unwrap returns the last transient matcher error.
func (m MatchingUnavailableErr) Unwrap() error {
	return m.Cause
}

// TransientMatchErr marks a matcher failure as transient: the negotiator
// swallows it and retries the match. Matcher implementations wrap internal
// instability in this type; any other error aborts negotiation immediately.
type TransientMatchErr struct {
	Cause error
}

func (t TransientMatchErr) Error() string {
	return fmt.Sprintf("transient match failure: %v", t.Cause)
}

// Unwrap returns the underlying matcher error.
func (t TransientMatchErr) Unwrap() error {
	return t.Cause
}
