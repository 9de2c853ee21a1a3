package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/maze-chase/internal/persist"
	"github.com/vovakirdan/maze-chase/internal/storage"
)

var savesCmd = &cobra.Command{
	Use:   "saves",
	Short: "Manage saved games",
	Long: `List, inspect and delete the saved games kept in the database.

Examples:
  mazechase saves list
  mazechase saves show default
  mazechase saves delete ssh:alice`,
}

var savesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List save slots",
	Args:  cobra.NoArgs,
	RunE:  runSavesList,
}

var savesShowCmd = &cobra.Command{
	Use:   "show <slot>",
	Short: "Show what a save slot holds",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesShow,
}

var savesDeleteCmd = &cobra.Command{
	Use:   "delete <slot>",
	Short: "Delete a save slot",
	Args:  cobra.ExactArgs(1),
	RunE:  runSavesDelete,
}

func init() {
	savesCmd.AddCommand(savesListCmd, savesShowCmd, savesDeleteCmd)
}

func runSavesList(cmd *cobra.Command, _ []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	slots, err := store.ListSlots()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(slots) == 0 {
		fmt.Fprintln(out, "No saved games.")
		return nil
	}

	codec := persist.NewCodec()
	fmt.Fprintf(out, "  %-20s  %-6s  %-8s  %s\n", "Slot", "Valid", "Score", "Updated")
	fmt.Fprintf(out, "  %-20s  %-6s  %-8s  %s\n", "----", "-----", "-----", "-------")
	for _, info := range slots {
		valid, score := "no", "-"
		if st, err := codec.Load(store.Slot(info.Name)); err == nil {
			valid, score = "yes", fmt.Sprint(st.Score)
		}
		fmt.Fprintf(out, "  %-20s  %-6s  %-8s  %s\n", info.Name, valid, score, info.UpdatedAt.Format("2006-01-02 15:04"))
	}
	return nil
}

func runSavesShow(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	st, err := persist.NewCodec().Load(store.Slot(args[0]))
	if errors.Is(err, persist.ErrInvalidSignature) {
		return fmt.Errorf("slot %q holds no saved game", args[0])
	}
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Slot:       %s\n", args[0])
	fmt.Fprintf(out, "Level:      %d\n", st.Level)
	fmt.Fprintf(out, "Score:      %d (high %d)\n", st.Score, st.HighScore)
	fmt.Fprintf(out, "Lives:      %d\n", st.Lives)
	fmt.Fprintf(out, "Dots left:  %d\n", st.Remaining)
	fmt.Fprintf(out, "Game time:  %s\n", st.Elapsed)
	fmt.Fprintf(out, "Player:     (%d,%d) facing %s\n", st.Player.X, st.Player.Y, st.Player.Facing)
	for i, g := range st.Ghosts {
		fmt.Fprintf(out, "Ghost %d:    (%d,%d) facing %s\n", i+1, g.X, g.Y, g.Facing)
	}
	if st.PowerActive {
		fmt.Fprintf(out, "Power mode: since %s, %d ghosts left\n", st.PowerSince, st.Alive)
	}
	return nil
}

func runSavesDelete(cmd *cobra.Command, args []string) error {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		return fmt.Errorf("error opening database: %w", err)
	}
	defer store.Close()

	if err := store.DeleteSlot(args[0]); errors.Is(err, storage.ErrNoSlot) {
		return fmt.Errorf("no save slot %q", args[0])
	} else if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s\n", args[0])
	return nil
}
