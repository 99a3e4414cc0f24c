package hexcount

import "strings"

// StripComments replaces each // line comment and /* block comment */ with a
// single space and copies quoted regions ("...", '...', `...`) through
// untouched, so hex tokens inside string literals stay visible.
//
// The scan is a single left-to-right pass; none of the three forms nest or are
// recognized inside one another. Unterminated quotes and block comments run to
// the end of the input.
func StripComments(text string) string {
	var sb strings.Builder
	sb.Grow(len(text))

	for i := 0; i < len(text); {
		c := text[i]
		switch {
		case c == '"' || c == '\'' || c == '`':
			end := quotedEnd(text, i)
			sb.WriteString(text[i:end])
			i = end
		case c == '/' && i+1 < len(text) && text[i+1] == '*':
			i = blockCommentEnd(text, i+2)
			sb.WriteByte(' ')
		case c == '/' && i+1 < len(text) && text[i+1] == '/':
			i = lineCommentEnd(text, i+2)
			sb.WriteByte(' ')
		default:
			sb.WriteByte(c)
			i++
		}
	}

	return sb.String()
}

// quotedEnd returns the index just past the quote closing the region opened at
// start. A backslash escapes whatever follows it.
func quotedEnd(text string, start int) int {
	quote := text[start]
	for i := start + 1; i < len(text); i++ {
		switch text[i] {
		case '\\':
			i++
		case quote:
			return i + 1
		}
	}
	return len(text)
}

func blockCommentEnd(text string, from int) int {
	idx := strings.Index(text[from:], "*/")
	if idx < 0 {
		return len(text)
	}
	return from + idx + 2
}

// lineCommentEnd stops before the line terminator so it survives as a separator.
func lineCommentEnd(text string, from int) int {
	idx := strings.IndexFunc(text[from:], isLineTerminator)
	if idx < 0 {
		return len(text)
	}
	return from + idx
}

func isLineTerminator(r rune) bool {
	return r == '\n' || r == '\r' || r == '\u2028' || r == '\u2029'
}
