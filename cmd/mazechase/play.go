package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/platform/tui"
	"github.com/vovakirdan/maze-chase/internal/registry"
	"github.com/vovakirdan/maze-chase/internal/storage"
)

var (
	flagSlot     string
	flagSaveFile string
	flagContinue bool
	flagMute     bool
	flagVolume   float64
	flagSpectate string
)

const controlsHelp = `Controls:
  Arrows/WASD          - Steer
  7 9 1 3 (Home PgUp End PgDn) - Diagonal steer (vertical first)
  P                    - Pause
  F5 / F9              - Save / load game
  N                    - New game
  Enter                - Next level
  R                    - Restart (after game over)
  M                    - Mute
  Esc/B                - Back (when paused or game over)
  Q/Ctrl+C             - Quit`

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a game",
	Long: `Start playing straight away.

` + controlsHelp + `

Difficulty options:
  easy   - Start at lowest difficulty, progresses to max
  normal - Start at 30% difficulty, progresses to max
  hard   - Start at 70% difficulty, progresses to max
  fixed  - No progression, stays at config's initial level

Examples:
  mazechase play
  mazechase play --difficulty easy
  mazechase play --continue
  mazechase play --save-file ./game.sav
  mazechase play --spectate :8080`,
	Args: cobra.NoArgs,
	RunE: runPlay,
}

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start the menu",
	Long:  "Start the interactive menu: new game, continue a saved game, or view high scores.\n\n" + controlsHelp,
	Args:  cobra.NoArgs,
	RunE:  runMenu,
}

func init() {
	for _, c := range []*cobra.Command{playCmd, menuCmd, rootCmd} {
		f := c.Flags()
		f.StringVar(&flagSlot, "slot", "default", "Save slot name in the database")
		f.StringVar(&flagSaveFile, "save-file", "", "Save to this file instead of the database")
		f.BoolVar(&flagMute, "mute", false, "Disable sound")
		f.Float64Var(&flagVolume, "volume", 0.5, "Sound volume (0-1)")
		f.StringVar(&flagSpectate, "spectate", "", "Serve websocket spectators on this address (e.g. :8080)")
	}
	playCmd.Flags().BoolVar(&flagContinue, "continue", false, "Resume the saved game")
}

// localEnv opens everything a local game is wired to. The returned
// cleanup closes it all.
func localEnv(ctx context.Context) (tui.Env, func(), error) {
	logger, closeLog, err := newLogger(io.Discard, "mazechase")
	if err != nil {
		return tui.Env{}, func() {}, err
	}
	env := tui.Env{GameID: mazechase.GameID, Logger: logger}
	cleanups := []func(){closeLog}
	cleanup := func() {
		for i := len(cleanups) - 1; i >= 0; i-- {
			cleanups[i]()
		}
	}

	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open database: %v\n", err)
	} else {
		env.Store = store
		cleanups = append(cleanups, func() { store.Close() })
	}

	if flagSaveFile != "" {
		f, err := persist.OpenFile(flagSaveFile)
		if err != nil {
			cleanup()
			return tui.Env{}, func() {}, fmt.Errorf("cannot open save file: %w", err)
		}
		env.SaveFile = f
		cleanups = append(cleanups, func() { f.Close() })
	}

	if !flagMute {
		if p := newAudio(flagVolume, logger); p != nil {
			env.Audio = p
			cleanups = append(cleanups, p.Close)
		}
	}

	if flagSpectate != "" {
		hub, err := startSpectators(ctx, flagSpectate, logger)
		if err != nil {
			cleanup()
			return tui.Env{}, func() {}, err
		}
		env.Hub = hub
	}

	return env, cleanup, nil
}

func runPlay(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	env, cleanup, err := localEnv(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if flagContinue && !env.HasSave(flagSlot) {
		return fmt.Errorf("no saved game in slot %q", flagSlot)
	}

	game, err := registry.Create(mazechase.GameID, env.Services(flagSlot))
	if err != nil {
		return fmt.Errorf("cannot create game: %w", err)
	}

	if err := tui.Run(game, env, runtimeConfig(), flagContinue); err != nil {
		return fmt.Errorf("error running game: %w", err)
	}
	return nil
}

func runMenu(cmd *cobra.Command, _ []string) error {
	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
	defer stop()

	env, cleanup, err := localEnv(ctx)
	if err != nil {
		return err
	}
	defer cleanup()

	if err := tui.RunSession(env, runtimeConfig(), flagSlot); err != nil {
		return fmt.Errorf("error running menu: %w", err)
	}
	return nil
}
