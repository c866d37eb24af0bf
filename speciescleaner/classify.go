package speciescleaner

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"
)

// ParseResult is the outcome of classifying one species field. Empty string
// means "absent". Trinomial is only ever set together with Binomial, and
// always extends it by one word. Suffix carries whatever non-taxonomic
// remainder was found (specimen codes, qualifiers, unparseable text),
// original tokens joined by single spaces.
type ParseResult struct {
	Binomial  string `json:"binomial,omitempty"`
	Trinomial string `json:"trinomial,omitempty"`
	Suffix    string `json:"suffix,omitempty"`
}

// Valid reports whether a canonical binomial could be extracted.
func (r ParseResult) Valid() bool {
	return r.Binomial != ""
}

// Patterns are evaluated in a fixed order; the first one that fires decides
// the outcome for the epithet token.
var (
	// "sp" / "sp." — unidentified species marker.
	rePlaceholderSp = regexp.MustCompile(`(?i)^sp\.?$`)
	// "sp._13YB", "sp_BOLD" — marker with a glued specimen code.
	rePlaceholderGlued = regexp.MustCompile(`(?i)^sp[._]`)
	// Longest leading run of lowercase ASCII letters: the canonical epithet.
	reEpithetRun = regexp.MustCompile(`^[a-z]+`)
	// A whole token of lowercase ASCII letters: subspecies shape.
	reSubspecies = regexp.MustCompile(`^[a-z]+$`)
)

// Identification qualifiers that mark the epithet position as uncertain.
var uncertainQualifiers = map[string]struct{}{
	"aff.": {},
	"cf.":  {},
}

// Classify reduces a raw species field to its canonical binomial
// ("Genus species") or trinomial ("Genus species subspecies"), extracting any
// non-taxonomic remainder into Suffix. genus is optional context: it is used
// to strip a doubled genus prefix and to supply the genus when the field has
// no capitalized leading token. The function is pure and never fails; inputs
// that cannot be parsed degrade to a result whose Suffix holds the trimmed
// field verbatim.
func Classify(species, genus string) ParseResult {
	s := strings.TrimSpace(species)
	if s == "" {
		return ParseResult{}
	}
	genus = strings.TrimSpace(genus)
	if genus != "" {
		s = stripDoubledGenus(s, genus)
	}

	parts := strings.Fields(s)
	if len(parts) == 0 {
		return ParseResult{}
	}

	var genusPart string
	var remaining []string
	first, _ := utf8.DecodeRuneInString(parts[0])
	switch {
	case unicode.IsUpper(first):
		genusPart = parts[0]
		remaining = parts[1:]
	case genus != "":
		genusPart = genus
		remaining = parts
	default:
		// No capitalized leading token and no genus context.
		return ParseResult{Suffix: s}
	}

	if len(remaining) == 0 {
		// Genus only, no epithet.
		return ParseResult{Suffix: s}
	}

	epithet := remaining[0]
	if rePlaceholderSp.MatchString(epithet) || rePlaceholderGlued.MatchString(epithet) {
		return ParseResult{Suffix: s}
	}
	if _, ok := uncertainQualifiers[strings.ToLower(epithet)]; ok {
		return ParseResult{Suffix: s}
	}

	canonical := reEpithetRun.FindString(epithet)
	if canonical == "" {
		// Does not start with a lowercase letter; not an epithet shape.
		return ParseResult{Suffix: s}
	}
	tail := epithet[len(canonical):]
	binomial := genusPart + " " + canonical

	if len(remaining) > 1 {
		next := remaining[1]
		if reSubspecies.MatchString(next) {
			res := ParseResult{
				Binomial:  binomial,
				Trinomial: binomial + " " + next,
			}
			if len(remaining) > 2 {
				res.Suffix = strings.Join(remaining[2:], " ")
			}
			return res
		}
		// Not a subspecies shape: everything after the epithet is suffix,
		// with any glued tail from the epithet token prepended.
		suffix := strings.Join(remaining[1:], " ")
		if tail != "" {
			suffix = tail + " " + suffix
		}
		return ParseResult{Binomial: binomial, Suffix: suffix}
	}

	return ParseResult{Binomial: binomial, Suffix: tail}
}

// stripDoubledGenus removes one leading "<genus> " when the field starts with
// the genus token twice in a row, e.g. "Onthophagus Onthophagus incensus".
// The match is case-sensitive and exact per token; a single genus prefix is
// left alone.
func stripDoubledGenus(s, genus string) string {
	rest, ok := cutLeadingToken(s, genus)
	if !ok {
		return s
	}
	if _, ok := cutLeadingToken(rest, genus); !ok {
		return s
	}
	return rest
}

// cutLeadingToken strips an exact leading token plus the whitespace run after
// it. It fails when the token is not followed by at least one whitespace
// character, so "GenusX ..." never matches token "Genus".
func cutLeadingToken(s, tok string) (string, bool) {
	if !strings.HasPrefix(s, tok) {
		return s, false
	}
	rest := s[len(tok):]
	trimmed := strings.TrimLeftFunc(rest, unicode.IsSpace)
	if trimmed == rest || trimmed == "" {
		return s, false
	}
	return trimmed, true
}
