package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os/signal"

	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/hexcount-dev/hexcount/internal/selection"
	"github.com/hexcount-dev/hexcount/internal/status"
	"github.com/hexcount-dev/hexcount/internal/watch"
	"github.com/spf13/cobra"
)

var (
	watchLines string
	watchBytes string
)

var watchCmd = &cobra.Command{
	Use:   "watch FILE",
	Short: "Print the count again every time FILE changes",
	Long: `Watch FILE and print a status line whenever it settles after a change.
A removed or empty selection prints "(hidden)". Runs until interrupted.

With --json every update is printed as one JSON object per line.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(GetProjectRoot())
		if err != nil {
			return err
		}

		sel, err := countSelection(countOptions{Lines: watchLines, Bytes: watchBytes})
		if err != nil {
			return err
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
		defer stop()

		logger := newLogger(cmd.ErrOrStderr(), "info")
		return runWatch(ctx, cfg, args[0], sel, IsJSONOutput(), cmd.OutOrStdout(), logger)
	},
}

func init() {
	watchCmd.Flags().StringVar(&watchLines, "lines", "", "Select a 1-based inclusive line range START:END")
	watchCmd.Flags().StringVar(&watchBytes, "bytes", "", "Select a 0-based half-open byte range START:END")
	watchCmd.MarkFlagsMutuallyExclusive("lines", "bytes")
	rootCmd.AddCommand(watchCmd)
}

// runWatch prints updates until ctx is cancelled.
func runWatch(ctx context.Context, cfg *config.Config, path string, sel selection.Selection, jsonOut bool, out io.Writer, logger *slog.Logger) error {
	w, err := watch.New(path, sel, status.NewFormatter(cfg.Display), cfg.Watcher, logger)
	if err != nil {
		return ErrWatchFailed(err)
	}
	defer w.Stop()

	if err := w.Start(ctx); err != nil {
		return ErrWatchFailed(err)
	}
	logger.Info("watching", "path", w.Path(), "selection", describeSelection(sel))

	enc := json.NewEncoder(out)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-w.Done():
			return nil
		case update := <-w.Updates():
			if jsonOut {
				if err := enc.Encode(update); err != nil {
					return err
				}
				continue
			}
			fmt.Fprintln(out, watchLine(update))
		}
	}
}

func watchLine(u watch.Update) string {
	stamp := u.Timestamp.Format("15:04:05")
	switch {
	case u.Removed:
		return stamp + "  (removed)"
	case !u.Status.Visible:
		return stamp + "  (hidden)"
	default:
		return stamp + "  " + u.Status.Text
	}
}
