package language

import (
	xlang "golang.org/x/text/language"
)

// Matcher is the closest-supported-match collaborator. ClosestMatch returns
// the member of supported nearest to requested under locale-distance
// semantics, or "" when nothing is acceptably close. Implementations that can
// fail transiently wrap such failures in TransientMatchErr; the Resolver
// retries those and treats any other error as fatal.
type Matcher interface {
	ClosestMatch(requested string, supported []string) (string, error)
}

// MatcherFunc adapts a function to the Matcher interface.
type MatcherFunc func(requested string, supported []string) (string, error)

func (f MatcherFunc) ClosestMatch(requested string, supported []string) (string, error) {
	return f(requested, supported)
}

// localeMatcher is the default Matcher, backed by x/text's locale matching.
// It is deterministic and never fails transiently.
type localeMatcher struct{}

var _ Matcher = localeMatcher{}

func (localeMatcher) ClosestMatch(requested string, supported []string) (string, error) {
	// An exact entry always wins, whatever the matcher would think of it.
	for _, s := range supported {
		if s == requested {
			return s, nil
		}
	}

	desired, err := xlang.Parse(requested)
	if err != nil {
		// Well-formed but unknown subtags cannot be matched against anything.
		return "", nil
	}

	candidates := make([]xlang.Tag, 0, len(supported))
	indices := make([]int, 0, len(supported))
	for i, s := range supported {
		if s == AutoDetect {
			continue
		}
		t, err := xlang.Parse(s)
		if err != nil {
			continue
		}
		candidates = append(candidates, t)
		indices = append(indices, i)
	}
	if len(candidates) == 0 {
		return "", nil
	}

	_, i, conf := xlang.NewMatcher(candidates).Match(desired)
	if conf > xlang.No {
		// Return the provider's own spelling, not the canonicalized tag.
		return supported[indices[i]], nil
	}

	// The matcher scores script mismatches harshly enough to reject
	// same-language candidates (zh-Hant against a bare zh). Fall back to the
	// first candidate sharing the raw base language; whether it is faithful
	// enough is the negotiator's call.
	db, _, _ := desired.Raw()
	for j, t := range candidates {
		if cb, _, _ := t.Raw(); cb == db {
			return supported[indices[j]], nil
		}
	}
	return "", nil
}
