package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-chase/internal/core"
	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
	"github.com/vovakirdan/maze-chase/internal/registry"
	"github.com/vovakirdan/maze-chase/internal/storage"
	"github.com/vovakirdan/maze-chase/internal/transport/mcp"
)

var flagMCPSlot string

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Serve the game as MCP tools on stdio",
	Long: `Run a Model Context Protocol server on stdin/stdout so an agent can
play. Game time only advances when the agent calls advance or turn.

Tools: state, turn, advance, pause, continue, new_game, save, load.

Examples:
  mazechase mcp
  mazechase mcp --seed 7 --slot agent`,
	Args: cobra.NoArgs,
	RunE: runMCP,
}

func init() {
	mcpCmd.Flags().StringVar(&flagMCPSlot, "slot", "mcp", "Save slot name in the database")
}

func runMCP(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	// stdout carries the protocol; logs go to stderr.
	logger, closeLog, err := newLogger(os.Stderr, "mazechase-mcp")
	if err != nil {
		return err
	}
	defer closeLog()

	svc := registry.Services{Logger: logger}
	store, err := storage.Open(flagDBPath)
	if err != nil {
		logger.Warn("playing without saves", "err", err)
	} else {
		defer store.Close()
		svc.SaveSlot = store.Slot(flagMCPSlot)
		if hs, err := store.HighScore(mazechase.GameID); err == nil {
			svc.HighScore = hs
		}
	}

	seed := flagSeed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	game := mazechase.New(svc)
	game.Reset(core.RuntimeConfig{ScreenW: 80, ScreenH: 36, TickRate: flagFPS, Seed: seed})

	server := mcp.NewServer(game, logger)
	logger.Info("MCP stdio server ready", "slot", flagMCPSlot, "seed", seed)
	if err := server.ServeStdio(ctx, os.Stdin, os.Stdout); err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("MCP server error: %w", err)
	}
	return nil
}
