package cli

import (
	"io"
	"os"
	"strconv"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/hexcount"
	"github.com/hexcount-dev/hexcount/internal/selection"
	"github.com/hexcount-dev/hexcount/internal/status"
	"github.com/spf13/cobra"
)

var (
	countText   string
	countLines  string
	countBytes  string
	countDetail bool
)

var countCmd = &cobra.Command{
	Use:   "count [FILE|-]",
	Short: "Count the hex bytes in a file, stdin or --text",
	Long: `Count the hex bytes in the selected text and print the status line,
e.g. "Bytes: 3 (0x03)". Nothing is printed when the selection is empty.

Input is FILE, stdin when FILE is '-' or omitted, or the --text value.
--lines and --bytes narrow the input to a range, standing in for an editor
selection.

Examples:
  hxc count --text '0x01, 0x02, 0x03'
  hxc count --lines 10:24 crypto/sbox.c
  pbpaste | hxc count --detail`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(GetProjectRoot())
		if err != nil {
			return err
		}

		opts := countOptions{
			Lines:   countLines,
			Bytes:   countBytes,
			Detail:  countDetail,
			JSON:    IsJSONOutput(),
			Display: cfg.Display,
		}
		if len(args) == 1 {
			opts.File = args[0]
		}
		if cmd.Flags().Changed("text") {
			opts.Text = &countText
		}

		return runCount(opts, cmd.InOrStdin(), cmd.OutOrStdout())
	},
}

func init() {
	countCmd.Flags().StringVar(&countText, "text", "", "Count this text instead of reading a file")
	countCmd.Flags().StringVar(&countLines, "lines", "", "Select a 1-based inclusive line range START:END")
	countCmd.Flags().StringVar(&countBytes, "bytes", "", "Select a 0-based half-open byte range START:END")
	countCmd.Flags().BoolVar(&countDetail, "detail", false, "Show the normalized text and every matched token")
	countCmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	rootCmd.AddCommand(countCmd)
}

// countOptions holds everything runCount needs, so it can run without cobra.
type countOptions struct {
	File    string
	Text    *string
	Lines   string
	Bytes   string
	Detail  bool
	JSON    bool
	Display config.DisplayConfig
}

// CountOutput is the JSON shape of `hxc count --json`.
type CountOutput struct {
	Selection string             `json:"selection"`
	Status    status.Status      `json:"status"`
	Analysis  *hexcount.Analysis `json:"analysis,omitempty"`
}

func runCount(opts countOptions, stdin io.Reader, out io.Writer) error {
	sel, err := countSelection(opts)
	if err != nil {
		return err
	}

	content, err := countInput(opts, stdin)
	if err != nil {
		return err
	}

	text := sel.Extract(content)
	st := status.NewFormatter(opts.Display).ForSelection(text)

	var analysis *hexcount.Analysis
	if opts.Detail {
		a := hexcount.Analyze(text)
		analysis = &a
	}

	o := NewOutputFormatter(out, os.Stderr)
	if opts.JSON {
		return o.JSON(CountOutput{Selection: sel.String(), Status: st, Analysis: analysis})
	}

	if st.Visible {
		o.Line("%s", st.Text)
	}
	if analysis != nil && st.Visible {
		printAnalysis(o, *analysis)
	}
	return nil
}

func countSelection(opts countOptions) (selection.Selection, error) {
	switch {
	case opts.Lines != "":
		sel, err := selection.Parse(selection.KindLines, opts.Lines)
		if err != nil {
			return selection.Selection{}, ErrInvalidRange("lines", err)
		}
		return sel, nil
	case opts.Bytes != "":
		sel, err := selection.Parse(selection.KindBytes, opts.Bytes)
		if err != nil {
			return selection.Selection{}, ErrInvalidRange("bytes", err)
		}
		return sel, nil
	default:
		return selection.All(), nil
	}
}

func countInput(opts countOptions, stdin io.Reader) ([]byte, error) {
	if opts.Text != nil {
		if opts.File != "" {
			return nil, ErrConflictingInput()
		}
		return []byte(*opts.Text), nil
	}

	if opts.File == "" || opts.File == "-" {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, ErrInputNotFound("stdin", err)
		}
		return data, nil
	}

	data, err := os.ReadFile(opts.File)
	if err != nil {
		return nil, ErrInputNotFound(opts.File, err)
	}
	return data, nil
}

func printAnalysis(o *OutputFormatter, a hexcount.Analysis) {
	o.Line("")
	o.Line("Normalized: %s", a.Normalized)
	o.Line("Path:       %s", a.Path)
	if len(a.Tokens) == 0 {
		return
	}

	o.Line("")
	rows := make([][]string, 0, len(a.Tokens))
	for _, tok := range a.Tokens {
		rows = append(rows, []string{strconv.Itoa(tok.Offset), tok.String(), tok.Digits})
	}
	o.Table([]string{"OFFSET", "TOKEN", "DIGITS"}, rows)
}

// describeSelection is used in watch output headers.
func describeSelection(sel selection.Selection) string {
	if sel.Kind == selection.KindAll {
		return "whole file"
	}
	return sel.String()
}
