// Package main implements the entry point for the Priority Sorter API server,
// which classifies tasks on an Eisenhower Matrix.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/phrazzld/priority-sorter/internal/config"
	"github.com/phrazzld/priority-sorter/internal/platform/logger"
	"github.com/urfave/cli/v3"
)

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		slog.Error("fatal", "error", err)
		os.Exit(1)
	}
}

// newRootCommand returns the top-level CLI command.
func newRootCommand() *cli.Command {
	return &cli.Command{
		Name:  "priority-sorter",
		Usage: "Serve the Eisenhower Matrix task API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "config",
				Aliases: []string{"c"},
				Usage:   "Path to config file (defaults to ./config.* when present)",
			},
			&cli.StringFlag{
				Name:  "host",
				Usage: "Host to listen on",
			},
			&cli.IntFlag{
				Name:  "port",
				Usage: "Port to listen on",
			},
			&cli.StringFlag{
				Name:  "log-level",
				Usage: "Log level (debug, info, warn, error)",
			},
		},
		Action: runServer,
	}
}

func runServer(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	log, err := logger.Setup(cfg.Server)
	if err != nil {
		return fmt.Errorf("failed to set up logger: %w", err)
	}

	log.Info("Server configuration loaded",
		"addr", cfg.Server.Addr(),
		"log_level", cfg.Server.LogLevel,
		"cors_origins", cfg.CORS.AllowedOrigins)

	app, err := newApplication(cfg, log)
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}

	return app.startHTTPServer(ctx)
}

// loadConfig loads configuration from file and environment, then applies
// any CLI flags on top.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load(cmd.String("config"))
	if err != nil {
		return nil, fmt.Errorf("failed to load configuration: %w", err)
	}

	// CLI flags override config
	if cmd.IsSet("host") {
		cfg.Server.Host = cmd.String("host")
	}
	if cmd.IsSet("port") {
		cfg.Server.Port = int(cmd.Int("port"))
	}
	if cmd.IsSet("log-level") {
		cfg.Server.LogLevel = cmd.String("log-level")
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
