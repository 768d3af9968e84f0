// Package main is the entry point for tilegrid.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/go-logr/logr"
	"github.com/go-logr/stdr"
	"github.com/joho/godotenv"

	"github.com/samdwyer/tilegrid/internal/game"
	"github.com/samdwyer/tilegrid/internal/telemetry"
	"github.com/samdwyer/tilegrid/internal/ui"
	"github.com/samdwyer/tilegrid/internal/ui/window"
)

func main() {
	// Load .env file for local development
	if err := godotenv.Load(); err != nil {
		// Not fatal - env vars might be set directly
		log.Printf("Note: .env file not loaded: %v", err)
	}

	cfg, err := game.LoadConfig(os.Args[1:], os.Getenv)
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	// The terminal frontend owns the screen, so its logs and status lines
	// go to the log file or nowhere.
	out, closeOut, err := openOutput(cfg)
	if err != nil {
		log.Fatalf("Failed to open log file: %v", err)
	}
	defer closeOut()

	stdr.SetVerbosity(cfg.Verbosity)
	logger := stdr.New(log.New(out, "", log.LstdFlags)).WithName("tilegrid")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if cfg.Telemetry {
		setupOTelEnv()
		shutdown, err := telemetry.Setup(ctx, logger)
		if err != nil {
			logger.Error(err, "telemetry setup failed; running without traces")
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Error(err, "telemetry shutdown")
				}
			}()
		}
	}

	status := out
	if cfg.Frontend == game.FrontendWindow {
		status = os.Stdout
	}

	s, err := game.New(ctx, cfg, logger.WithName("session"), status)
	if err != nil {
		log.Fatalf("Failed to initialize session: %v", err)
	}
	defer s.Close()

	if err := run(ctx, cfg, s, logger); err != nil && ctx.Err() == nil {
		logger.Error(err, "frontend stopped")
		fmt.Fprintf(os.Stderr, "tilegrid: %v\n", err)
	}
}

// run presents the session on the configured frontend.
func run(ctx context.Context, cfg game.Config, s *game.Session, logger logr.Logger) error {
	if cfg.Frontend == game.FrontendTerminal {
		screen, err := ui.NewScreen()
		if err != nil {
			return fmt.Errorf("open terminal: %w", err)
		}
		defer screen.Close()
		return ui.Run(ctx, screen, s, logger.WithName("terminal"))
	}

	return window.Run(ctx, s, window.Options{
		Title:  "tilegrid",
		Width:  cfg.BufferWidth,
		Height: cfg.BufferHeight,
	}, logger.WithName("window"))
}

// openOutput returns where logs go: the log file when set, stderr for the
// window frontend, and a discard writer for the terminal frontend.
func openOutput(cfg game.Config) (io.Writer, func(), error) {
	if cfg.LogFile != "" {
		f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		return f, func() { f.Close() }, nil
	}
	if cfg.Frontend == game.FrontendTerminal {
		return io.Discard, func() {}, nil
	}
	return os.Stderr, func() {}, nil
}

// setupOTelEnv points the OTLP exporter at a local collector unless the
// environment already names one.
func setupOTelEnv() {
	if os.Getenv("OTEL_EXPORTER_OTLP_ENDPOINT") == "" {
		os.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "http://localhost:4318")
	}
}
