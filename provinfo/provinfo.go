// Package provinfo holds the per-provider capability documents: which
// languages each provider declares for each (feature, subfeature) pair, and
// whether it can be called without a language at all. Documents for the
// built-in providers are embedded; additional documents can be added at
// runtime. Every document is validated against a JSON schema derived from the
// Info type before it is accepted.
//
// Loader implements the language package's ConstraintLoader, appending the
// auto-detect sentinel for subfeatures that allow a null language.
package provinfo

import (
	"embed"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/google/jsonschema-go/jsonschema"

	"github.com/uniai-go/uniai/language"
)

//go:embed info/*.json
var infoFS embed.FS

// Constraints is the language surface a provider declares for one subfeature.
type Constraints struct {
	// Languages are the tags the provider accepts, in the provider's own
	// spelling.
	Languages []string `json:"languages"`

	// AllowNullLanguage means the provider infers the input language itself;
	// the auto-detect sentinel is appended to the constraint list.
	AllowNullLanguage bool `json:"allow_null_language,omitempty"`
}

// SubfeatureInfo is the declared capability for one (feature, subfeature).
type SubfeatureInfo struct {
	Constraints Constraints `json:"constraints"`
}

// Info is one provider's capability document.
type Info struct {
	// Provider is the registry name the document belongs to.
	Provider string `json:"provider"`

	// Features maps feature -> subfeature -> declared capability.
	Features map[string]map[string]SubfeatureInfo `json:"features,omitempty"`
}

var (
	schemaOnce sync.Once
	schema     *jsonschema.Resolved
	schemaErr  error
)

// infoSchema derives and resolves the validation schema for Info documents
// once.
func infoSchema() (*jsonschema.Resolved, error) {
	schemaOnce.Do(func() {
		s, err := jsonschema.For[Info](&jsonschema.ForOptions{})
		if err != nil {
			schemaErr = fmt.Errorf("deriving provider info schema: %w", err)
			return
		}
		schema, schemaErr = s.Resolve(nil)
	})
	return schema, schemaErr
}

// Loader serves provider constraint lookups from validated capability
// documents. Create one with NewLoader; it is safe for concurrent reads after
// all Add calls are done.
type Loader struct {
	mu    sync.RWMutex
	infos map[string]Info
}

var _ language.ConstraintLoader = (*Loader)(nil)

// NewLoader parses and validates all embedded capability documents.
func NewLoader() (*Loader, error) {
	l := &Loader{infos: make(map[string]Info)}
	entries, err := infoFS.ReadDir("info")
	if err != nil {
		return nil, fmt.Errorf("reading embedded provider info: %w", err)
	}
	for _, entry := range entries {
		doc, err := infoFS.ReadFile("info/" + entry.Name())
		if err != nil {
			return nil, fmt.Errorf("reading %s: %w", entry.Name(), err)
		}
		if err := l.Add(doc); err != nil {
			return nil, fmt.Errorf("%s: %w", entry.Name(), err)
		}
	}
	return l, nil
}

// Add validates doc against the Info schema and makes its provider available
// for constraint lookups. A document for an already-known provider replaces
// the previous one.
func (l *Loader) Add(doc []byte) error {
	resolved, err := infoSchema()
	if err != nil {
		return err
	}
	var raw any
	if err := json.Unmarshal(doc, &raw); err != nil {
		return fmt.Errorf("parsing provider info: %w", err)
	}
	if err := resolved.Validate(raw); err != nil {
		return fmt.Errorf("invalid provider info: %w", err)
	}
	var info Info
	if err := json.Unmarshal(doc, &info); err != nil {
		return fmt.Errorf("parsing provider info: %w", err)
	}
	if info.Provider == "" {
		return fmt.Errorf("provider info missing provider name")
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	l.infos[info.Provider] = info
	return nil
}

// Info returns the capability document for a provider.
func (l *Loader) Info(providerName string) (Info, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	info, ok := l.infos[providerName]
	return info, ok
}

// Providers returns the names of all providers with a capability document.
func (l *Loader) Providers() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()
	names := make([]string, 0, len(l.infos))
	for name := range l.infos {
		names = append(names, name)
	}
	return names
}

// LoadConstraints returns the languages providerName declares for
// (feature, subfeature), with the auto-detect sentinel appended when the
// provider accepts a null language. An unknown provider is an error; a known
// provider with nothing declared for the pair yields an empty list.
func (l *Loader) LoadConstraints(providerName, feature, subfeature string) ([]string, error) {
	l.mu.RLock()
	info, ok := l.infos[providerName]
	l.mu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("no provider info for %q", providerName)
	}
	sub, ok := info.Features[feature][subfeature]
	if !ok {
		return nil, nil
	}
	languages := make([]string, 0, len(sub.Constraints.Languages)+1)
	languages = append(languages, sub.Constraints.Languages...)
	if sub.Constraints.AllowNullLanguage {
		languages = append(languages, language.AutoDetect)
	}
	return languages, nil
}
