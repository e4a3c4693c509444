package cmd

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/nijaru/video-api/config"
	"github.com/nijaru/video-api/handlers/api"
	"github.com/nijaru/video-api/logger"
	"github.com/nijaru/video-api/models"
	"github.com/nijaru/video-api/services/video"
	"github.com/nijaru/video-api/validation"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Start the video API server.

The server will:
  - Load configuration from --config, $CONFIG_FILE and the environment
  - Open the configured store and apply pending migrations
  - Serve /api/videos, /api/swagger.json, /api/docs, /health and /metrics

Environment variables:
  SERVER_PORT   - Port to listen on (default: 8080)
  DB_DRIVER     - sqlite or postgres (default: sqlite)
  DB_PATH       - SQLite database file (default: ./data/videos.db)
  DATABASE_URL  - PostgreSQL connection URL
  LOG_LEVEL     - debug, info, warn, error
  LOG_FORMAT    - text or json
  LOG_DIR       - Directory for a rotating app.log
  DEBUG         - true forces debug-level logging`,
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return errors.Wrap(err, "failed to load configuration")
	}

	log, err := logger.New(loggerConfig(cfg))
	if err != nil {
		return errors.Wrap(err, "failed to initialize logger")
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	repo, err := openStore(ctx, cfg, log)
	if err != nil {
		return err
	}
	defer func() {
		if err := repo.Close(); err != nil {
			log.WithError(err).Error("Failed to close store")
		}
	}()

	svc := video.NewService(repo, validation.NewValidator(models.VideoFields), log)

	server, err := api.NewServer(cfg,
		api.WithLogger(log),
		api.WithVideoService(svc),
		api.WithStore(repo),
	)
	if err != nil {
		return err
	}

	serverErr := make(chan error, 1)
	go func() {
		if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serverErr <- err
		}
		close(serverErr)
	}()

	select {
	case err := <-serverErr:
		if err != nil {
			return errors.Wrap(err, "server failed")
		}
		return nil
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		return errors.Wrap(err, "server shutdown failed")
	}

	log.Info("Server stopped")
	return nil
}

// loggerConfig maps the log settings; debug mode forces the debug level.
func loggerConfig(cfg *config.Config) logger.Config {
	level := cfg.Log.Level
	if cfg.Debug {
		level = "debug"
	}
	return logger.Config{
		Level:  level,
		Format: cfg.Log.Format,
		Dir:    cfg.Log.Dir,
	}
}
