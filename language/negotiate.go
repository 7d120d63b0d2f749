package language

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/cenkalti/backoff/v5"
)

const (
	// Defaults for retrying the closest-match collaborator when it fails
	// transiently. The retry budget is deliberately small: matcher
	// instability clears within a few attempts or not at all.
	defaultMatchMaxTries        = 5
	defaultMatchInitialInterval = 50 * time.Millisecond
	defaultMatchMaxInterval     = time.Second
)

// ConstraintLoader is the collaborator that returns the ordered list of
// language tags a provider declares as supported for a (feature, subfeature)
// pair. The list may include the AutoDetect sentinel.
type ConstraintLoader interface {
	LoadConstraints(providerName, feature, subfeature string) ([]string, error)
}

// Resolver negotiates a requested language tag against provider constraints.
// Each Resolve call is independent and side-effect-free; a Resolver is safe
// for concurrent use.
type Resolver struct {
	loader   ConstraintLoader
	matcher  Matcher
	maxTries uint
}

// ResolverOption configures a Resolver.
type ResolverOption func(*Resolver)

// WithMatcher replaces the default locale matcher.
func WithMatcher(m Matcher) ResolverOption {
	return func(r *Resolver) { r.matcher = m }
}

// WithMaxTries sets how many times a transiently failing match is attempted
// before Resolve gives up with MatchingUnavailableErr. Values below 1 are
// ignored.
func WithMaxTries(n uint) ResolverOption {
	return func(r *Resolver) {
		if n >= 1 {
			r.maxTries = n
		}
	}
}

// NewResolver returns a Resolver using loader for provider constraints and,
// unless overridden, the x/text-backed locale matcher with a bounded retry
// budget for transient matcher failures.
func NewResolver(loader ConstraintLoader, opts ...ResolverOption) *Resolver {
	r := &Resolver{
		loader:   loader,
		matcher:  localeMatcher{},
		maxTries: defaultMatchMaxTries,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve determines the closest tag the given provider supports for the
// requested one.
//
// The requested tag must conform to the lang[-extlang][-Script][-Region]
// grammar; otherwise Resolve fails immediately with MalformedTagErr and the
// constraint loader is never consulted.
//
// A compound request (one carrying script or region subtags) only resolves to
// a candidate that is a faithful match: either the request's explicit script
// makes a same-language candidate acceptable, or the candidate agrees on both
// language and region. A simple request takes the closest match as found.
//
// The returned tag is always a member of the provider's constraint list. An
// empty tag with a nil error means no supported language is acceptable; it is
// a normal outcome, not an error. Transient matcher failures are retried with
// backoff up to the configured budget, after which Resolve fails with
// MatchingUnavailableErr.
func (r *Resolver) Resolve(ctx context.Context, requested, providerName, feature, subfeature string) (string, error) {
	if !IsValidFormat(requested) {
		return "", MalformedTagErr(requested)
	}

	supported, err := r.loader.LoadConstraints(providerName, feature, subfeature)
	if err != nil {
		return "", fmt.Errorf("loading language constraints for %s: %w", providerName, err)
	}

	match, err := r.closestMatch(ctx, requested, supported)
	if err != nil {
		return "", err
	}
	if match == "" {
		return "", nil
	}

	if strings.ContainsRune(requested, '-') {
		if hasScriptConstraint(requested, match) {
			return match, nil
		}
		if sameLanguageAndRegion(requested, match) {
			return match, nil
		}
		// The fuzzy matcher found a candidate, but it is not faithful enough
		// for a compound request (e.g. pt-BR must not resolve to pt-PT).
		return "", nil
	}
	return match, nil
}

// closestMatch invokes the matcher, retrying transient failures with backoff
// up to the configured number of tries.
func (r *Resolver) closestMatch(ctx context.Context, requested string, supported []string) (string, error) {
	attempts := 0
	operation := func() (string, error) {
		attempts++
		match, err := r.matcher.ClosestMatch(requested, supported)
		if err != nil {
			var transient TransientMatchErr
			if errors.As(err, &transient) {
				return "", err
			}
			return "", backoff.Permanent(err)
		}
		return match, nil
	}

	expo := backoff.NewExponentialBackOff()
	expo.InitialInterval = defaultMatchInitialInterval
	expo.MaxInterval = defaultMatchMaxInterval

	match, err := backoff.Retry(ctx, operation,
		backoff.WithBackOff(expo),
		backoff.WithMaxTries(r.maxTries),
	)
	if err != nil {
		var permanent *backoff.PermanentError
		if errors.As(err, &permanent) {
			return "", permanent.Err
		}
		var transient TransientMatchErr
		if errors.As(err, &transient) {
			return "", MatchingUnavailableErr{Attempts: attempts, Cause: err}
		}
		return "", err
	}
	return match, nil
}

// AutoDetectable reports whether the provider declares the AutoDetect
// sentinel for the given (feature, subfeature) pair, i.e. whether it can be
// called without a language at all.
func (r *Resolver) AutoDetectable(providerName, feature, subfeature string) (bool, error) {
	supported, err := r.loader.LoadConstraints(providerName, feature, subfeature)
	if err != nil {
		return false, fmt.Errorf("loading language constraints for %s: %w", providerName, err)
	}
	return slices.Contains(supported, AutoDetect), nil
}
