package cli

import (
	"context"
	"log/slog"
	"os/signal"

	"github.com/hexcount-dev/hexcount/internal/api"
	"github.com/hexcount-dev/hexcount/internal/config"
	"github.com/spf13/cobra"
)

var servePort int

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the local HTTP counting service",
	Long: `Run the HTTP service on server.host:server.port until SIGINT or SIGTERM.

Endpoints:
  GET  /health    liveness
  POST /count     {"text": "...", "detail": false}
  POST /scan      {"filename": "...", "content": "..."}
  GET  /config    effective configuration
  GET  /metrics   Prometheus metrics`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(GetProjectRoot())
		if err != nil {
			return err
		}
		if cmd.Flags().Changed("port") {
			cfg.Server.Port = servePort
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), shutdownSignals()...)
		defer stop()

		return runServe(ctx, cfg, newLogger(cmd.ErrOrStderr(), cfg.Server.LogLevel))
	},
}

func init() {
	serveCmd.Flags().IntVar(&servePort, "port", 0, "Override server.port")
	rootCmd.AddCommand(serveCmd)
}

func runServe(ctx context.Context, cfg *config.Config, logger *slog.Logger) error {
	if err := api.NewServer(cfg, logger).Start(ctx); err != nil {
		return ErrServeFailed(err)
	}
	logger.Info("server stopped")
	return nil
}
