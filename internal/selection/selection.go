// Package selection picks the part of a document that counts as "selected".
package selection

import (
	"fmt"
	"strconv"
	"strings"
)

// Kind is the unit a selection is expressed in.
type Kind int

const (
	// KindAll selects the whole document.
	KindAll Kind = iota
	// KindLines selects a 1-based inclusive line range.
	KindLines
	// KindBytes selects a 0-based half-open byte range.
	KindBytes
)

// Open marks a range that runs to the end of the document.
const Open = -1

func (k Kind) String() string {
	switch k {
	case KindLines:
		return "lines"
	case KindBytes:
		return "bytes"
	default:
		return "all"
	}
}

// Selection describes a region of a document.
type Selection struct {
	Kind  Kind
	Start int
	End   int
}

// All returns a selection covering the whole document.
func All() Selection {
	return Selection{Kind: KindAll, End: Open}
}

// Lines returns the inclusive line range [start, end]. Use Open for end to
// select through the last line.
func Lines(start, end int) Selection {
	return Selection{Kind: KindLines, Start: start, End: end}
}

// Bytes returns the half-open byte range [start, end).
func Bytes(start, end int) Selection {
	return Selection{Kind: KindBytes, Start: start, End: end}
}

// Parse reads a "START:END" range of the given kind. Either side may be left
// out: ":10" starts at the beginning, "5:" runs to the end. A line range may
// also be a single line number.
func Parse(kind Kind, spec string) (Selection, error) {
	if kind == KindAll {
		return All(), nil
	}

	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Selection{}, fmt.Errorf("empty %s range", kind)
	}

	startStr, endStr, hasColon := strings.Cut(spec, ":")
	if !hasColon {
		if kind != KindLines {
			return Selection{}, fmt.Errorf("invalid %s range %q: expected START:END", kind, spec)
		}
		endStr = startStr
	}

	first := 0
	if kind == KindLines {
		first = 1
	}

	start, err := parseBound(startStr, first)
	if err != nil {
		return Selection{}, fmt.Errorf("invalid %s range %q: %w", kind, spec, err)
	}
	end, err := parseBound(endStr, Open)
	if err != nil {
		return Selection{}, fmt.Errorf("invalid %s range %q: %w", kind, spec, err)
	}

	if start < first {
		return Selection{}, fmt.Errorf("invalid %s range %q: start must be at least %d", kind, spec, first)
	}
	if end != Open && end < start {
		return Selection{}, fmt.Errorf("invalid %s range %q: end is before start", kind, spec)
	}

	return Selection{Kind: kind, Start: start, End: end}, nil
}

func parseBound(s string, missing int) (int, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return missing, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%q is not a number", s)
	}
	if n < 0 {
		return 0, fmt.Errorf("%d is negative", n)
	}
	return n, nil
}

// IsEmpty reports whether the selection can never contain text.
func (s Selection) IsEmpty() bool {
	return s.Kind == KindBytes && s.End != Open && s.End <= s.Start
}

// String renders the selection in the form accepted by Parse.
func (s Selection) String() string {
	if s.Kind == KindAll {
		return "all"
	}
	end := ""
	if s.End != Open {
		end = strconv.Itoa(s.End)
	}
	return fmt.Sprintf("%s %d:%s", s.Kind, s.Start, end)
}

// Extract returns the selected text. Ranges are clamped to the content; a
// range entirely past the end selects nothing.
func (s Selection) Extract(content []byte) string {
	switch s.Kind {
	case KindBytes:
		return extractBytes(content, s.Start, s.End)
	case KindLines:
		return extractLines(content, s.Start, s.End)
	default:
		return string(content)
	}
}

func extractBytes(content []byte, start, end int) string {
	if start >= len(content) {
		return ""
	}
	if end == Open || end > len(content) {
		end = len(content)
	}
	if end <= start {
		return ""
	}
	return string(content[start:end])
}

func extractLines(content []byte, start, end int) string {
	lines := strings.Split(string(content), "\n")
	if start < 1 {
		start = 1
	}
	if start > len(lines) {
		return ""
	}
	if end == Open || end > len(lines) {
		end = len(lines)
	}
	return strings.Join(lines[start-1:end], "\n")
}
