// Package language negotiates caller-supplied language tags against the
// language constraints a provider declares for a (feature, subfeature) pair.
//
// The central type is Resolver: given a requested tag such as "pt-BR" and a
// provider's supported list, it picks the closest acceptable supported tag
// under locale-distance semantics, or reports that none is acceptable.
// Compound tags (those carrying script or region subtags) are only resolved
// to candidates that are faithful matches: a request for "pt-BR" is not
// silently served with "pt-PT".
//
// The package also carries the supporting conversions used by listing and
// display code: ISO 639-3 to 639-1 canonicalization, display-name rendering,
// and best-effort reverse lookup from a display name to a tag.
package language
