package hexcount

import (
	"strings"
	"unicode"
)

// Normalize collapses every run of commas, line breaks and whitespace into a
// single space and trims both ends. Two tokens that were separated by any
// separator stay separated by exactly one space.
func Normalize(text string) string {
	return strings.Join(strings.FieldsFunc(text, isSeparator), " ")
}

func isSeparator(r rune) bool {
	switch r {
	case ',', '\uFEFF':
		return true
	case '\u0085':
		// NEL is not part of the usual regex \s class.
		return false
	}
	return unicode.IsSpace(r)
}
