package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"golang.org/x/term"

	"github.com/vovakirdan/maze-chase/internal/audio"
	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/transport/websocket"
)

// newLogger writes to --log-file, or to fallback when no file is given.
// The returned close function is always safe to call.
func newLogger(fallback io.Writer, prefix string) (*log.Logger, func(), error) {
	w, closeFn := fallback, func() {}
	if flagLogFile != "" {
		f, err := os.OpenFile(flagLogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
		if err != nil {
			return nil, closeFn, fmt.Errorf("cannot open log file: %w", err)
		}
		w, closeFn = f, func() { f.Close() }
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          prefix,
	})
	if flagVerbose {
		logger.SetLevel(log.DebugLevel)
	}
	return logger, closeFn, nil
}

// runtimeConfig sizes the game to the current terminal.
func runtimeConfig() core.RuntimeConfig {
	width, height := 80, 36 // Defaults
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		width, height = w, h
	}
	return core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}
}

// newAudio opens the speaker. Failure means silence, not an error.
func newAudio(volume float64, logger *log.Logger) *audio.Player {
	p := audio.NewPlayer(volume)
	if err := p.Init(); err != nil {
		logger.Warn("audio disabled", "err", err)
		return nil
	}
	return p
}

// startSpectators serves the websocket hub on addr until ctx is done.
func startSpectators(ctx context.Context, addr string, logger *log.Logger) (*websocket.Hub, error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("cannot listen for spectators: %w", err)
	}

	hub := websocket.NewHub(logger)
	go hub.Run(ctx)

	srv := &http.Server{
		Handler:           hub.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("spectator server error", "err", err)
		}
	}()
	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		//nolint:errcheck // Best-effort shutdown
		srv.Shutdown(shutdownCtx)
	}()

	logger.Info("spectators can watch", "url", fmt.Sprintf("ws://%s/ws?session=<slot>", ln.Addr()))
	return hub, nil
}
