package cli

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/spf13/cobra"
)

var (
	Version     = "0.3.0"
	BuildCommit = "unknown"
	BuildDate   = "unknown"

	jsonOutput  bool
	verbose     bool
	projectRoot string
)

var rootCmd = &cobra.Command{
	Use:   "hxc",
	Short: "hexcount - count the hex bytes in a selection of source text",
	Long: `hexcount estimates how many bytes a span of source-like text encodes,
the way an editor status bar shows it: "Bytes: 3 (0x03)".

It understands 0xAA, \xAA and bare AA tokens, contiguous hex strings, and
skips anything inside comments. Counts can be taken from files, stdin,
a watched file, whole source trees, or a local HTTP service.`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func Execute() error {
	rootCmd.Version = Version
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&jsonOutput, "json", false, "Output in JSON format")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose output")
	rootCmd.PersistentFlags().StringVarP(&projectRoot, "project", "p", "", "Project root directory (default: current directory)")
	cobra.OnInitialize(initProjectRoot)
}

func initProjectRoot() {
	if projectRoot == "" {
		var err error
		projectRoot, err = os.Getwd()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: failed to get current directory: %v\n", err)
			os.Exit(1)
		}
	}
}

func GetProjectRoot() string {
	return projectRoot
}

func IsJSONOutput() bool {
	return jsonOutput
}

func IsVerbose() bool {
	return verbose
}

// newLogger returns a text logger on w. --verbose forces debug level,
// otherwise level is one of debug, info, warn or error.
func newLogger(w io.Writer, level string) *slog.Logger {
	lvl := slog.LevelInfo
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	case "error":
		lvl = slog.LevelError
	}
	if verbose {
		lvl = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: lvl}))
}

// loadConfig resolves and validates the configuration for root.
func loadConfig(root string) (*config.Config, error) {
	cfg, err := config.NewLoader(root).Load()
	if err != nil {
		return nil, ErrConfigInvalid(err)
	}
	if err := config.ValidateOrError(cfg); err != nil {
		return nil, ErrConfigInvalid(err)
	}
	return cfg, nil
}
