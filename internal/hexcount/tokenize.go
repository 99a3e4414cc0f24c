package hexcount

import (
	"fmt"
	"strings"
)

// Prefix is the optional marker in front of a byte token.
type Prefix int

const (
	PrefixNone   Prefix = iota
	Prefix0x            // 0xAA
	PrefixEscape        // \xAA
)

// prefixOrder is the order alternatives are tried at each position.
var prefixOrder = [...]Prefix{Prefix0x, PrefixEscape, PrefixNone}

// String returns the literal prefix text.
func (p Prefix) String() string {
	switch p {
	case Prefix0x:
		return "0x"
	case PrefixEscape:
		return `\x`
	default:
		return ""
	}
}

// MarshalText implements encoding.TextMarshaler.
func (p Prefix) MarshalText() ([]byte, error) {
	return []byte(p.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (p *Prefix) UnmarshalText(text []byte) error {
	switch string(text) {
	case "0x":
		*p = Prefix0x
	case `\x`:
		*p = PrefixEscape
	case "":
		*p = PrefixNone
	default:
		return fmt.Errorf("unknown prefix %q", text)
	}
	return nil
}

// maxTokenDigits caps a byte token at two hex digits.
const maxTokenDigits = 2

// Token is one matched byte token in normalized text.
type Token struct {
	Offset int    `json:"offset"`
	Prefix Prefix `json:"prefix,omitempty"`
	Digits string `json:"digits"`
}

// String returns the token as it appeared in the text.
func (t Token) String() string {
	return t.Prefix.String() + t.Digits
}

// Tokenize returns the non-overlapping byte tokens in s, left to right.
//
// A token is an optional 0x or \x prefix followed by one or two hex digits.
// It must not be followed by a word character, and when it starts with a word
// character it must not be preceded by one. Longer runs such as 0xAAA or ABC
// therefore produce no token.
func Tokenize(s string) []Token {
	var tokens []Token
	for i := 0; i < len(s); {
		tok, ok := matchAt(s, i)
		if !ok {
			i++
			continue
		}
		tokens = append(tokens, tok)
		i += len(tok.Prefix.String()) + len(tok.Digits)
	}
	return tokens
}

func matchAt(s string, i int) (Token, bool) {
	if isWordByte(s[i]) && i > 0 && isWordByte(s[i-1]) {
		return Token{}, false
	}

	for _, p := range prefixOrder {
		lit := p.String()
		if !strings.HasPrefix(s[i:], lit) {
			continue
		}
		start := i + len(lit)
		n := hexRun(s, start, maxTokenDigits)
		if n == 0 {
			continue
		}
		// Shortening to one digit cannot help: the second digit is itself a word byte.
		end := start + n
		if end < len(s) && isWordByte(s[end]) {
			continue
		}
		return Token{Offset: i, Prefix: p, Digits: s[start:end]}, true
	}
	return Token{}, false
}

func hexRun(s string, start, limit int) int {
	n := 0
	for start+n < len(s) && n < limit && isHexDigit(s[start+n]) {
		n++
	}
	return n
}
