package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/jpalmerr/glowcast"
	"github.com/jpalmerr/glowcast/config"
	"github.com/lmittmann/tint"
	"github.com/spf13/cobra"
)

const (
	shutdownTimeout = 10 * time.Second
)

// newLogger creates a logger for CLI use. The text format uses tint for
// colorized development output; json is the default for running as a
// service.
func newLogger(format string, level slog.Level) *slog.Logger {
	if format == "text" {
		return slog.New(tint.NewHandler(os.Stderr, &tint.Options{
			Level:      level,
			TimeFormat: time.Kitchen,
		}))
	}
	return slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: level,
	}))
}

// parseLogLevel maps the --log-level flag to a slog level.
func parseLogLevel(s string) (slog.Level, error) {
	switch s {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q (use debug, info, warn, or error)", s)
	}
}

// runCmd starts the glowcast display loop.
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start the weather display loop",
	Long: `Start the glowcast weather display loop.

The loop will:
  - Load configuration from the specified YAML file
  - Wait until the weather host is reachable
  - Poll the station on the configured interval and drive the strip
  - Serve the status page if a port is configured

Environment variables referenced in the config are resolved from the
process environment; a .env file in the working directory is loaded
first if present.

The loop runs until interrupted (Ctrl+C) or receives SIGTERM.

Example:
  glowcast run -c config.yaml
  glowcast run --config /etc/glowcast/config.yaml --log-format text`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)

	runCmd.Flags().StringP("config", "c", "", "path to config file (required)")
	runCmd.Flags().String("log-format", "json", "log format: json or text")
	runCmd.Flags().String("log-level", "info", "log level: debug, info, warn, or error")
	_ = runCmd.MarkFlagRequired("config")
}

func runRun(cmd *cobra.Command, args []string) error {
	// .env is optional; real environment variables take precedence
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to load .env: %w", err)
	}

	levelFlag, _ := cmd.Flags().GetString("log-level")
	level, err := parseLogLevel(levelFlag)
	if err != nil {
		return err
	}
	format, _ := cmd.Flags().GetString("log-format")
	if format != "json" && format != "text" {
		return fmt.Errorf("unknown log format %q (use json or text)", format)
	}
	logger := newLogger(format, level)

	configFile, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(configFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger.Info("config loaded",
		"station", cfg.Station.Name,
		"driver", cfg.Strip.Driver,
		"pixels", cfg.Strip.Pixels,
		"poll_interval", cfg.PollInterval.Duration().String(),
	)

	ledStrip, err := config.BuildStrip(cfg.Strip)
	if err != nil {
		return fmt.Errorf("failed to build strip: %w", err)
	}
	defer func() {
		if err := ledStrip.Close(); err != nil {
			logger.Warn("failed to close strip", "error", err.Error())
		}
	}()

	opts, err := config.BuildOptions(cfg, ledStrip)
	if err != nil {
		return fmt.Errorf("failed to build options: %w", err)
	}
	opts = append(opts, glowcast.WithLogger(logger))

	gc, err := glowcast.New(opts...)
	if err != nil {
		return fmt.Errorf("failed to create glowcast: %w", err)
	}

	// set up context with signal handling - cancel on SIGINT/SIGTERM
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// start the loop - blocks until context cancelled
	errChan := make(chan error, 1)
	go func() {
		errChan <- gc.Start(ctx)
	}()

	// wait for the loop to finish
	select {
	case err := <-errChan:
		if err != nil {
			return fmt.Errorf("glowcast error: %w", err)
		}
		logger.Info("shutdown complete")
		return nil

	case <-ctx.Done():
		// signal received, wait for graceful shutdown with timeout
		select {
		case err := <-errChan:
			if err != nil {
				return fmt.Errorf("glowcast error: %w", err)
			}
			logger.Info("shutdown complete")
			return nil
		case <-time.After(shutdownTimeout):
			logger.Warn("shutdown timed out",
				"timeout", shutdownTimeout.String(),
				"action", "forcing exit",
			)
			return nil
		}
	}
}
