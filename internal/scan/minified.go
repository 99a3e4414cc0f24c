package scan

import (
	"bytes"
	"strings"
)

// MinifiedThresholds contains the thresholds for minified file detection.
type MinifiedThresholds struct {
	MaxAvgLineLength          int
	MaxSingleLineSize         int
	MinWhitespaceRatio        float64
	MinSizeForWhitespaceCheck int
}

// DefaultMinifiedThresholds returns the default detection thresholds.
func DefaultMinifiedThresholds() MinifiedThresholds {
	return MinifiedThresholds{
		MaxAvgLineLength:          500,
		MaxSingleLineSize:         10 * 1024,
		MinWhitespaceRatio:        0.05,
		MinSizeForWhitespaceCheck: 1024,
	}
}

// minifiedSuffixes are bundle outputs that are never worth scanning.
var minifiedSuffixes = []string{".min.js", ".min.css", ".bundle.js"}

// IsMinified reports whether content looks like minified or generated output.
// Such files pack thousands of unrelated tokens on one line and would flood a
// scan report with noise.
func IsMinified(content []byte, path string) bool {
	return isMinifiedWithThresholds(content, path, DefaultMinifiedThresholds())
}

func isMinifiedWithThresholds(content []byte, path string, t MinifiedThresholds) bool {
	if len(content) == 0 {
		return false
	}

	pathLower := strings.ToLower(path)
	for _, suffix := range minifiedSuffixes {
		if strings.HasSuffix(pathLower, suffix) {
			return true
		}
	}

	lineCount := bytes.Count(content, []byte("\n"))
	if lineCount == 0 {
		lineCount = 1
	}

	if len(content)/lineCount > t.MaxAvgLineLength {
		return true
	}

	if lineCount == 1 && len(content) > t.MaxSingleLineSize {
		return true
	}

	if len(content) >= t.MinSizeForWhitespaceCheck {
		whitespace := bytes.Count(content, []byte(" ")) +
			bytes.Count(content, []byte("\t")) +
			bytes.Count(content, []byte("\n"))
		if float64(whitespace)/float64(len(content)) < t.MinWhitespaceRatio {
			return true
		}
	}

	return false
}
