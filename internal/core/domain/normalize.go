package domain

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// Normalize produces the normalized form of a raw query: NFKC, lowercased,
// whitespace runs collapsed to one space and trimmed.
func Normalize(raw string) string {
	s := Lower(norm.NFKC.String(raw))
	return strings.Join(strings.Fields(s), " ")
}

// Lower lowercases s with language neutral rules. Index keys and
// normalized queries both go through here so prefix matching agrees.
func Lower(s string) string {
	// Casers carry state and must not be shared across goroutines.
	return cases.Lower(language.Und).String(s)
}
