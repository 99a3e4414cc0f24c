package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"
)

// OutputFormatter writes command results to the console
type OutputFormatter struct {
	out    io.Writer
	errOut io.Writer
}

// NewOutputFormatter creates an OutputFormatter writing to out and errOut
func NewOutputFormatter(out, errOut io.Writer) *OutputFormatter {
	return &OutputFormatter{
		out:    out,
		errOut: errOut,
	}
}

// Success prints a success message with an [OK] prefix
func (o *OutputFormatter) Success(format string, args ...interface{}) {
	fmt.Fprintf(o.out, "[OK] %s\n", fmt.Sprintf(format, args...))
}

// Line prints one line of plain output
func (o *OutputFormatter) Line(format string, args ...interface{}) {
	fmt.Fprintf(o.out, "%s\n", fmt.Sprintf(format, args...))
}

// Warn prints a warning message with a warning prefix
func (o *OutputFormatter) Warn(format string, args ...interface{}) {
	fmt.Fprintf(o.errOut, "[WARN] %s\n", fmt.Sprintf(format, args...))
}

// JSON outputs data as indented JSON
func (o *OutputFormatter) JSON(data interface{}) error {
	encoder := json.NewEncoder(o.out)
	encoder.SetIndent("", "  ")
	return encoder.Encode(data)
}

// Table prints rows under a header line and a dashed separator
func (o *OutputFormatter) Table(headers []string, rows [][]string) {
	w := tabwriter.NewWriter(o.out, 0, 0, 2, ' ', 0)

	if len(headers) > 0 {
		fmt.Fprintln(w, strings.Join(headers, "\t"))
		separators := make([]string, len(headers))
		for i, h := range headers {
			separators[i] = strings.Repeat("-", len(h))
		}
		fmt.Fprintln(w, strings.Join(separators, "\t"))
	}

	for _, row := range rows {
		fmt.Fprintln(w, strings.Join(row, "\t"))
	}

	w.Flush()
}
