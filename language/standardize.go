package language

import (
	"errors"
	"fmt"
	"sort"
)

// ProviderLister answers capability lookups: which registered providers
// implement a given (feature, subfeature) pair. It backs the provider-list
// fallback of StandardizedLanguages.
type ProviderLister interface {
	SupportedProviders(feature, subfeature string) []string
}

// StandardizedLanguages returns the deduplicated, sorted union of the
// user-facing language tags supported by the given providers for
// (feature, subfeature). Constraint lists are expanded with ExpandForUser so
// the result contains the forms callers actually request.
//
// When providers is nil, the set of providers is discovered through lister.
// An explicitly empty, non-nil slice yields an empty result.
func StandardizedLanguages(loader ConstraintLoader, lister ProviderLister, feature, subfeature string, providers []string) ([]string, error) {
	if providers == nil {
		if lister == nil {
			return nil, errors.New("no providers given and no provider lister configured")
		}
		providers = lister.SupportedProviders(feature, subfeature)
	}

	seen := make(map[string]struct{})
	var languages []string
	for _, provider := range providers {
		constraints, err := loader.LoadConstraints(provider, feature, subfeature)
		if err != nil {
			return nil, fmt.Errorf("loading language constraints for %s: %w", provider, err)
		}
		for _, tag := range ExpandForUser(constraints) {
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			languages = append(languages, tag)
		}
	}
	sort.Strings(languages)
	return languages, nil
}
