// Command citadel runs the server: one TCP listener, one core loop, one
// tick-driven world.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/google/uuid"
	"github.com/mattn/go-isatty"

	"github.com/talgya/citadel/internal/config"
	"github.com/talgya/citadel/internal/engine"
	"github.com/talgya/citadel/internal/ids"
	"github.com/talgya/citadel/internal/session"
	"github.com/talgya/citadel/internal/telemetry"
)

func main() {
	opts := &slog.HandlerOptions{Level: slog.LevelInfo}
	if isatty.IsTerminal(os.Stdout.Fd()) {
		opts.AddSource = true
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, opts)))

	runID := uuid.New()
	slog.Info("citadel starting", "run_id", runID)

	cfg := config.FromEnv(config.Default())
	if err := cfg.Validate(); err != nil {
		slog.Error("invalid configuration", "error", err)
		os.Exit(1)
	}

	// ── Telemetry ─────────────────────────────────────────────────────
	os.MkdirAll(filepath.Dir(cfg.TelemetryDBPath), 0755)
	telemetrySink, err := telemetry.Open(cfg.TelemetryDBPath)
	if err != nil {
		slog.Error("failed to open telemetry sink", "error", err)
		os.Exit(1)
	}
	defer telemetrySink.Close()
	slog.Info("telemetry sink opened", "path", cfg.TelemetryDBPath)

	// ── Listener ──────────────────────────────────────────────────────
	idReg := ids.NewRegistry()
	addr := fmt.Sprintf("%s:%d", cfg.Address, cfg.Port)
	listener, err := session.Listen(addr, idReg.Clients, 1024)
	if err != nil {
		slog.Error("failed to start listener", "error", err)
		os.Exit(1)
	}
	slog.Info("listening", "addr", listener.Addr().String())

	// ── Core loop ─────────────────────────────────────────────────────
	eng := engine.New(cfg, listener, telemetrySink, idReg)

	ctx, cancel := context.WithCancel(context.Background())
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("received signal, shutting down", "signal", sig)
		cancel()
	}()

	go listener.Serve(ctx)

	slog.Info("core loop running",
		"width", cfg.Width, "height", cfg.Height,
		"teams", cfg.Teams, "frequency", cfg.Frequency)
	eng.Run(ctx)

	listener.Close()
	slog.Info("citadel stopped")
}
