// Package hexcount estimates how many hex bytes a span of source-like text encodes.
//
// The estimate runs in four passes over the text:
//
//  1. comments are replaced by a single space, string literals are kept verbatim
//  2. commas, line breaks and whitespace runs collapse to one space
//  3. an unbroken even-length run of hex digits counts as len/2 bytes
//  4. otherwise every 0xAA, \xAA, AA or A token bounded by non-word characters counts as one byte
//
// Everything in this package is a pure function of its input and safe for
// concurrent use.
package hexcount

// CountPath identifies which pass produced the final count.
type CountPath string

const (
	PathEmpty      CountPath = "empty"
	PathContiguous CountPath = "contiguous"
	PathTokens     CountPath = "tokens"
)

// Analysis is the result of one counting pass along with the intermediate state.
type Analysis struct {
	Normalized string    `json:"normalized"`
	Path       CountPath `json:"path"`
	Contiguous bool      `json:"contiguous"`
	Tokens     []Token   `json:"tokens,omitempty"`
	Count      int       `json:"count"`
}

// Count returns the estimated number of hex bytes in text. It never fails;
// empty or noise-only input yields 0.
func Count(text string) int {
	return Analyze(text).Count
}

// Analyze runs the full pipeline and returns the count together with the
// normalized text and the matched tokens.
func Analyze(text string) Analysis {
	normalized := Normalize(StripComments(text))

	a := Analysis{Normalized: normalized}
	switch {
	case normalized == "":
		a.Path = PathEmpty
	case IsContiguousHex(normalized):
		a.Path = PathContiguous
		a.Contiguous = true
		a.Count = len(normalized) / 2
	default:
		a.Path = PathTokens
		a.Tokens = Tokenize(normalized)
		a.Count = len(a.Tokens)
	}
	return a
}

// IsContiguousHex reports whether s is a non-empty, even-length run made only
// of hex digits. Odd-length runs are left to the tokenizer.
func IsContiguousHex(s string) bool {
	if s == "" || len(s)%2 != 0 {
		return false
	}
	for i := 0; i < len(s); i++ {
		if !isHexDigit(s[i]) {
			return false
		}
	}
	return true
}

func isHexDigit(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'f') || ('A' <= c && c <= 'F')
}

// isWordByte matches the ASCII word class [A-Za-z0-9_].
func isWordByte(c byte) bool {
	return ('0' <= c && c <= '9') || ('a' <= c && c <= 'z') || ('A' <= c && c <= 'Z') || c == '_'
}
