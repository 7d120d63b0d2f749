package uniai

import (
	"fmt"
	"sort"
	"sync"
)

// Registry is an in-process provider registry with capability lookup. The
// zero value is not usable; create one with NewRegistry.
//
// Registration is expected at program start; lookups are safe for concurrent
// use afterwards.
type Registry struct {
	mu        sync.RWMutex
	providers map[string]Provider
}

// NewRegistry returns an empty Registry.
func NewRegistry() *Registry {
	return &Registry{providers: make(map[string]Provider)}
}

// Register adds a provider under its name. Registering a duplicate name is an
// error: provider names are the identifiers the rest of the system routes by.
func (r *Registry) Register(p Provider) error {
	if p == nil || p.Name() == "" {
		return fmt.Errorf("provider must have a non-empty name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.providers[p.Name()]; ok {
		return fmt.Errorf("provider %q already registered", p.Name())
	}
	r.providers[p.Name()] = p
	return nil
}

// Get returns the provider registered under name.
func (r *Registry) Get(name string) (Provider, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.providers[name]
	return p, ok
}

// Providers returns the sorted names of all registered providers implementing
// the given (feature, subfeature) pair.
func (r *Registry) Providers(feature Feature, subfeature Subfeature) []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var names []string
	for name, p := range r.providers {
		if supports(p, feature, subfeature) {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}

// SupportedProviders is Providers with untyped identifiers. It satisfies the
// language package's ProviderLister, which deals in opaque strings.
func (r *Registry) SupportedProviders(feature, subfeature string) []string {
	return r.Providers(Feature(feature), Subfeature(subfeature))
}

func supports(p Provider, feature Feature, subfeature Subfeature) bool {
	switch feature {
	case FeatureText:
		switch subfeature {
		case SubfeatureSentimentAnalysis:
			_, ok := p.(SentimentAnalyzer)
			return ok
		case SubfeatureKeywordExtraction:
			_, ok := p.(KeywordExtractor)
			return ok
		case SubfeatureNamedEntityRecognition:
			_, ok := p.(EntityRecognizer)
			return ok
		case SubfeatureAnonymization:
			_, ok := p.(Anonymizer)
			return ok
		case SubfeatureSummarize:
			_, ok := p.(Summarizer)
			return ok
		}
	case FeatureTranslation:
		if subfeature == SubfeatureLanguageDetection {
			_, ok := p.(LanguageDetector)
			return ok
		}
	case FeatureAudio:
		if subfeature == SubfeatureSpeechToTextAsync {
			_, ok := p.(Transcriber)
			return ok
		}
	}
	return false
}
