package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/gdamore/tcell/v2"

	"kashko/internal/audio"
	"kashko/internal/clock"
	"kashko/internal/config"
	"kashko/internal/service"
	"kashko/internal/ui"
)

func main() {
	var (
		mute    bool
		logPath string
		debug   bool
	)
	flag.BoolVar(&mute, "mute", false, "Disable sound cues")
	flag.StringVar(&logPath, "log", "", "Write logs to this file (default: discard)")
	flag.BoolVar(&debug, "debug", false, "Log at debug level")
	flag.Parse()

	if err := run(mute, logPath, debug); err != nil {
		fmt.Fprintf(os.Stderr, "kashko: %v\n", err)
		os.Exit(1)
	}
}

func run(mute bool, logPath string, debug bool) error {
	logger, closeLog, err := newLogger(logPath, debug)
	if err != nil {
		return err
	}
	defer closeLog()

	cfg := config.Default()
	if err := cfg.Validate(); err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	clk := clock.RealClock{}
	svc := service.NewGameService(cfg, clk, logger)
	go func() {
		if err := svc.Run(ctx); err != nil {
			logger.Error("game service", "err", err)
		}
	}()

	var sounds ui.Sounds
	if !mute {
		sm := audio.NewSoundManager()
		if err := sm.Initialize(); err != nil {
			// Non-fatal, the game runs without sound.
			logger.Warn("audio unavailable", "err", err)
		} else {
			defer sm.Cleanup()
			sounds = sm
		}
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("init terminal: %w", err)
	}

	logger.Info("kashko started", "tick_period", cfg.TickPeriod, "upgrades", len(cfg.Catalog))
	err = ui.New(screen, svc, sounds, clk, logger).Run(ctx)
	screen.Fini()

	cancel()
	<-svc.Done()
	logger.Info("kashko stopped")
	return err
}

// newLogger writes to path, or nowhere when path is empty; the terminal
// itself belongs to the UI.
func newLogger(path string, debug bool) (*slog.Logger, func(), error) {
	level := slog.LevelInfo
	if debug {
		level = slog.LevelDebug
	}
	var (
		w       io.Writer = io.Discard
		closeFn           = func() {}
	)
	if path != "" {
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("open log: %w", err)
		}
		w = f
		closeFn = func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level})), closeFn, nil
}
