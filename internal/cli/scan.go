package cli

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/scan"
	"github.com/spf13/cobra"
)

var scanMinBytes int

var scanCmd = &cobra.Command{
	Use:   "scan [PATH]",
	Short: "Find byte-array literals and count their bytes",
	Long: `Scan a file or a directory tree for byte-array literals (initializer
lists, array literals, Python lists and tuples) and count the hex bytes in
each one. Files in languages without a parser count as a single literal.

PATH defaults to the project root. Directory scans honour .gitignore,
.hexcountignore and the scan include/exclude patterns.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(GetProjectRoot())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("min-bytes") {
			cfg.Scan.MinBytes = scanMinBytes
		}

		path := GetProjectRoot()
		if len(args) == 1 {
			path = args[0]
		}

		logger := newLogger(cmd.ErrOrStderr(), "warn")
		return runScan(cmd.Context(), cfg.Scan, path, IsJSONOutput(), cmd.OutOrStdout(), logger)
	},
}

func init() {
	scanCmd.Flags().IntVar(&scanMinBytes, "min-bytes", 1, "Only report literals holding at least this many bytes")
	rootCmd.AddCommand(scanCmd)
}

func runScan(ctx context.Context, cfg config.ScanConfig, path string, jsonOut bool, out io.Writer, logger *slog.Logger) error {
	if ctx == nil {
		ctx = context.Background()
	}

	report, err := scan.NewScanner(cfg, logger).ScanPath(ctx, path)
	if err != nil {
		return ErrScanFailed(err)
	}

	o := NewOutputFormatter(out, os.Stderr)
	if jsonOut {
		return o.JSON(report)
	}

	if len(report.Literals) == 0 {
		o.Line("No literals found in %d files", report.Files)
		return nil
	}

	rows := make([][]string, 0, len(report.Literals))
	for _, lit := range report.Literals {
		rows = append(rows, []string{
			lit.File,
			lineSpan(lit.StartLine, lit.EndLine),
			lit.Kind,
			strconv.Itoa(lit.Bytes),
			lit.Preview,
		})
	}
	o.Table([]string{"FILE", "LINES", "KIND", "BYTES", "PREVIEW"}, rows)
	o.Line("")
	o.Line("%d literals, %d bytes in %d files", len(report.Literals), report.TotalBytes, report.Files)
	return nil
}

func lineSpan(start, end int) string {
	if start == end {
		return strconv.Itoa(start)
	}
	return fmt.Sprintf("%d-%d", start, end)
}
