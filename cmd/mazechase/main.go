// mazechase is a maze-chase arcade game for the terminal.
//
// Usage:
//
//	mazechase                  - Start the menu (same as "mazechase menu")
//	mazechase play             - Start a game straight away
//	mazechase menu             - Menu with new game, continue and high scores
//	mazechase serve            - Start SSH server for remote play
//	mazechase scores           - Show high scores
//	mazechase saves            - List, inspect or delete saved games
//	mazechase mcp              - Serve the game as MCP tools on stdio
//
// Global flags:
//
//	--fps <rate>          - Set tick rate (default: 60)
//	--seed <value>        - Set RNG seed for reproducible gameplay
//	--db <path>           - Set database path (default: ~/.mazechase/mazechase.db)
//	--config <path>       - Load a custom game config YAML
//	--difficulty <preset> - easy, normal, hard or fixed
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-chase/internal/games/mazechase"
)

var (
	// Global flags
	flagFPS        int
	flagSeed       int64
	flagDBPath     string
	flagConfig     string
	flagDifficulty string
	flagLogFile    string
	flagVerbose    bool
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "mazechase",
	Short: "Maze Chase - eat the dots, dodge the ghosts",
	Long: `Maze Chase is a terminal maze game. Steer through the maze, eat every
dot and stay away from the four ghosts. Power cells turn the tables for a
while: eat ghosts in a row for doubling bonuses.

Available commands:
  play     - Start a game directly
  menu     - Menu with new game, continue and high scores
  serve    - Start SSH server for remote play
  scores   - View high scores
  saves    - Manage saved games
  mcp      - Serve the game as MCP tools

Examples:
  mazechase
  mazechase play --difficulty hard
  mazechase play --continue
  mazechase serve --ssh :2222 --spectate :8080
  mazechase scores`,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if flagFPS <= 0 {
			return fmt.Errorf("--fps must be positive, got %d", flagFPS)
		}
		mazechase.SetConfigPath(flagConfig)
		mazechase.SetDifficultyPreset(flagDifficulty)
		return nil
	},
	RunE: runMenu,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.mazechase/mazechase.db", "Path to scores and saves database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to custom game config YAML")
	rootCmd.PersistentFlags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard, fixed")
	rootCmd.PersistentFlags().StringVar(&flagLogFile, "log-file", "", "Write logs to this file")
	rootCmd.PersistentFlags().BoolVarP(&flagVerbose, "verbose", "v", false, "Enable debug logging")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(scoresCmd)
	rootCmd.AddCommand(savesCmd)
	rootCmd.AddCommand(mcpCmd)
}
