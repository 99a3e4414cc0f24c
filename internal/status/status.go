// Package status renders a hex byte count the way the editor status bar shows
// it, e.g. "Bytes: 3 (0x03)".
package status

import (
	"fmt"
	"strings"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/hexcount"
)

// Tooltip is the hover text attached to a visible status.
const Tooltip = "Selected Hex Bytes Count"

// Status is what the status bar displays for one selection.
// A hidden status carries no text.
type Status struct {
	Visible bool   `json:"visible"`
	Count   int    `json:"count"`
	Hex     string `json:"hex,omitempty"`
	Text    string `json:"text,omitempty"`
	Tooltip string `json:"tooltip,omitempty"`
}

// Hidden is the status shown when nothing is selected.
var Hidden = Status{}

// Formatter turns counts into display strings.
type Formatter struct {
	Label     string
	HexWidth  int
	Uppercase bool
}

// DefaultFormatter returns the formatter matching the stock display.
func DefaultFormatter() Formatter {
	return Formatter{Label: "Bytes", HexWidth: 2}
}

// NewFormatter creates a formatter from display settings.
func NewFormatter(cfg config.DisplayConfig) Formatter {
	f := Formatter{
		Label:     cfg.Label,
		HexWidth:  cfg.HexWidth,
		Uppercase: cfg.Uppercase,
	}
	if f.Label == "" {
		f.Label = "Bytes"
	}
	if f.HexWidth < 1 {
		f.HexWidth = 2
	}
	return f
}

// Hex renders count in hex with the 0x prefix, zero-padded to HexWidth digits.
func (f Formatter) Hex(count int) string {
	digits := fmt.Sprintf("%0*x", f.HexWidth, count)
	if f.Uppercase {
		digits = strings.ToUpper(digits)
	}
	return "0x" + digits
}

// Format renders count as "<Label>: <decimal> (<hex>)".
func (f Formatter) Format(count int) string {
	return fmt.Sprintf("%s: %d (%s)", f.Label, count, f.Hex(count))
}

// ForCount builds a visible status for an already computed count.
func (f Formatter) ForCount(count int) Status {
	return Status{
		Visible: true,
		Count:   count,
		Hex:     f.Hex(count),
		Text:    f.Format(count),
		Tooltip: Tooltip,
	}
}

// ForSelection counts the selected text and builds its status. An empty
// selection hides the display; any other text is shown, even when it counts 0.
func (f Formatter) ForSelection(text string) Status {
	if text == "" {
		return Hidden
	}
	return f.ForCount(hexcount.Count(text))
}
