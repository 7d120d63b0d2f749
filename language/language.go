package language

import (
	"fmt"
	"regexp"
	"strings"
	"sync"

	xlang "golang.org/x/text/language"
	"golang.org/x/text/language/display"
)

const (
	// AutoDetect is the sentinel constraint value meaning the provider infers
	// the input language itself rather than being told.
	AutoDetect = "auto-detect"

	// AutoDetectName is the display name for the AutoDetect sentinel.
	AutoDetectName = "Auto detection"

	// Unknown is the sentinel returned by CodeFromName when no tag could be
	// found for a display name.
	Unknown = "Unknown"
)

// tagPattern is the structural grammar for a language tag:
// lang[-extlang][-Script][-Region]. Validity is structural only; a tag that
// matches need not denote a real language.
var tagPattern = regexp.MustCompile(`^[a-z]{2,3}(-[a-z]{2,3})?(-[A-Z][a-z]{3})?(-([A-Z]{2,3}|\d{3}))?$`)

// IsValidFormat reports whether tag conforms to the structural grammar
// lang[-extlang][-Script][-Region].
func IsValidFormat(tag string) bool {
	return tagPattern.MatchString(tag)
}

// ToTwoLetterCode converts an ISO 639-3 language code to its ISO 639-1
// equivalent when a canonical mapping exists. Codes that are already two
// letters, codes with no two-letter equivalent, and anything unrecognized are
// returned unchanged (modulo canonicalization of the language subtag when the
// code carries further subtags). It never fails.
func ToTwoLetterCode(code string) string {
	if code == "" {
		return ""
	}
	if i := strings.IndexByte(code, '-'); i >= 0 {
		if i == 3 {
			if t, err := xlang.Parse(code); err == nil {
				return t.String()
			}
		}
		return code
	}
	if len(code) != 3 {
		return code
	}
	if b, err := xlang.ParseBase(code); err == nil {
		return b.String()
	}
	return code
}

// CodeFromName is a best-effort reverse lookup from a human-readable language
// name (e.g. "French") to its canonical tag ("fr"). It returns the Unknown
// sentinel rather than an error when the name cannot be matched; callers use
// this for display and listing, where a lookup miss is not exceptional.
func CodeFromName(name string) string {
	name = strings.ToLower(strings.TrimSpace(name))
	if name == "" {
		return Unknown
	}
	if code, ok := nameIndex()[name]; ok {
		return code
	}
	return Unknown
}

var (
	nameIndexOnce sync.Once
	nameIndexMap  map[string]string
)

// nameIndex maps lowercased English language names to canonical tags. The
// index is built once by walking the ISO 639 code space and keeping every
// code the registry knows a name for. First writer wins, and the two-letter
// space is walked in full before the three-letter one: bibliographic
// three-letter aliases ("chi", "dut") share their English name with a
// canonical two-letter tag, which must be the one the index keeps.
func nameIndex() map[string]string {
	nameIndexOnce.Do(func() {
		m := make(map[string]string)
		names := display.English.Languages()
		add := func(code string) {
			b, err := xlang.ParseBase(code)
			if err != nil {
				return
			}
			name := names.Name(b)
			if name == "" {
				return
			}
			key := strings.ToLower(name)
			if _, ok := m[key]; !ok {
				m[key] = b.String()
			}
		}
		for c0 := byte('a'); c0 <= 'z'; c0++ {
			for c1 := byte('a'); c1 <= 'z'; c1++ {
				add(string([]byte{c0, c1}))
			}
		}
		for c0 := byte('a'); c0 <= 'z'; c0++ {
			for c1 := byte('a'); c1 <= 'z'; c1++ {
				for c2 := byte('a'); c2 <= 'z'; c2++ {
					add(string([]byte{c0, c1, c2}))
				}
			}
		}
		nameIndexMap = m
	})
	return nameIndexMap
}

// DisplayNameFromCode renders a tag as a human-readable English name, e.g.
// "fr-BE" as "French (Belgium)". The AutoDetect sentinel renders as
// AutoDetectName. Tags whose language is unknown but whose region is known
// render as "Region: <region>"; tags with an unknown region render as the
// bare language name; a tag with no renderable parts is echoed back.
func DisplayNameFromCode(code string) string {
	if code == "" {
		return ""
	}
	if code == AutoDetect {
		return AutoDetectName
	}
	t, _ := xlang.Parse(code)
	b, _, r := t.Raw()

	var langName string
	if b.String() != "und" {
		langName = display.English.Languages().Name(b)
	}
	var regionName string
	if r.String() != "ZZ" {
		regionName = display.English.Regions().Name(r)
	}
	if regionName == "" {
		// An unknown language subtag can make Parse drop the rest of the
		// tag; recover the region directly from the last subtag.
		if i := strings.LastIndexByte(code, '-'); i >= 0 {
			if reg, err := xlang.ParseRegion(code[i+1:]); err == nil {
				regionName = display.English.Regions().Name(reg)
			}
		}
	}

	switch {
	case langName == "" && regionName != "":
		return "Region: " + regionName
	case langName == "":
		return code
	case regionName == "":
		return langName
	default:
		return fmt.Sprintf("%s (%s)", langName, regionName)
	}
}

// ExpandForUser extends a provider constraint list with the forms a caller is
// likely to ask for: the bare language code of every compound tag whose
// language is known, and the two-letter canonicalization of every tag. The
// AutoDetect sentinel passes through untouched. The result may contain
// duplicates; callers dedupe when aggregating.
func ExpandForUser(constraints []string) []string {
	expanded := make([]string, 0, len(constraints))
	for _, c := range constraints {
		if c == AutoDetect {
			expanded = append(expanded, c)
			continue
		}
		if i := strings.IndexByte(c, '-'); i >= 0 {
			base := c[:i]
			if _, err := xlang.ParseBase(base); err == nil {
				expanded = append(expanded, ToTwoLetterCode(base))
			}
		}
		expanded = append(expanded, ToTwoLetterCode(c))
	}
	return expanded
}

// rawParts parses tag and returns its subtags as written, without likely
// subtag inference. Parse is best-effort: a tag with unknown subtags still
// yields what could be parsed.
func rawParts(tag string) (xlang.Base, xlang.Script, xlang.Region) {
	t, _ := xlang.Parse(tag)
	return t.Raw()
}

// hasScriptConstraint reports whether requested carries an explicit script
// subtag and shares its base language with selected. Script-sensitive
// languages (e.g. zh-Hant vs zh-Hans) vary meaningfully by script rather than
// region, so a bare-language candidate is an acceptable match.
func hasScriptConstraint(requested, selected string) bool {
	rb, rs, _ := rawParts(requested)
	sb, _, _ := rawParts(selected)
	return rs.String() != "Zzzz" && rb == sb
}

// sameLanguageAndRegion reports whether requested and selected agree exactly
// on both base language and region subtag. Absence counts: a tag with a
// region never matches one without.
func sameLanguageAndRegion(requested, selected string) bool {
	rb, _, rr := rawParts(requested)
	sb, _, sr := rawParts(selected)
	return rb == sb && rr == sr
}
