package identity

import "strings"

// Generational suffixes stripped from the end of a display name, matched
// with or without a trailing period.
var nameSuffixes = map[string]struct{}{
	"jr":  {},
	"sr":  {},
	"ii":  {},
	"iii": {},
	"iv":  {},
}

// Leading particles stripped before tokenization ("St." in "St. Brown
// Jr." style listings, stray possessives from scraped exports).
var namePrefixes = map[string]struct{}{
	"mr":  {},
	"mrs": {},
	"st":  {},
}

// Normalize maps a raw display name to its canonical token string: suffix
// and prefix particles stripped on word boundaries, punctuation removed,
// case folded, whitespace runs collapsed to single underscores. Total: any
// input produces an output, degenerate input produces the empty string.
//
// Suffix/prefix stripping has to happen on the word-boundary form before
// punctuation removal, otherwise "O'Brien"-style particles lose the
// boundary they are detected on.
func Normalize(raw string) string {
	fields := strings.Fields(strings.ToLower(raw))

	for len(fields) > 0 {
		last := strings.TrimSuffix(fields[len(fields)-1], ".")
		if _, ok := nameSuffixes[last]; !ok {
			break
		}
		fields = fields[:len(fields)-1]
	}
	for len(fields) > 0 {
		first := strings.TrimSuffix(fields[0], ".")
		if _, ok := namePrefixes[first]; !ok {
			break
		}
		fields = fields[1:]
	}

	tokens := make([]string, 0, len(fields))
	for _, field := range fields {
		cleaned := stripPunctuation(field)
		if cleaned == "" {
			continue
		}
		tokens = append(tokens, cleaned)
	}

	return strings.Join(tokens, "_")
}

func stripPunctuation(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	for _, r := range s {
		switch r {
		case '\'', '’', '.', '-', ',':
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// BuildKey combines a normalized name with team and position into the
// composite identity key. Team and position pass through unmodified; the
// validation rules guarantee their casing upstream. Two records with
// different keys are always different entities, no matter how similar.
func BuildKey(name, team, position string) string {
	return Normalize(name) + "_" + team + "_" + position
}
