package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
	"github.com/velmoga/sinkhole/internal/storage"
)

var (
	flagProgressSlot  string
	flagProgressReset bool
)

var progressCmd = &cobra.Command{
	Use:   "progress",
	Short: "Show or reset saved campaign progress",
	Long: `Shows the saved campaign position and recent level completions.

Examples:
  sinkhole progress
  sinkhole progress --slot alice
  sinkhole progress --reset`,
	Run: runProgress,
}

func init() {
	progressCmd.Flags().StringVar(&flagProgressSlot, "slot", "", "Progress slot name (default: shared slot)")
	progressCmd.Flags().BoolVar(&flagProgressReset, "reset", false, "Reset saved progress for the slot")
}

func runProgress(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	slot := store.WithSlot(flagProgressSlot)

	if flagProgressReset {
		if err := slot.ClearProgress(); err != nil {
			fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
			os.Exit(1)
		}
		fmt.Println("Progress reset.")
		return
	}

	catalog := levels.Default()
	index, ok, err := slot.LevelIndex()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading progress: %v\n", err)
		os.Exit(1)
	}

	switch {
	case !ok:
		fmt.Println("No saved progress. The campaign starts at level 1.")
	case index >= len(catalog):
		fmt.Printf("Campaign complete (%d/%d levels).\n", len(catalog), len(catalog))
	default:
		lvl := catalog[index]
		fmt.Printf("Next level: %d/%d - %s (%s)\n", index+1, len(catalog), lvl.Name, lvl.ID)
	}

	completions, err := slot.Completions(10)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error reading completions: %v\n", err)
		os.Exit(1)
	}
	if len(completions) > 0 {
		fmt.Println("\nRecent completions:")
		for _, c := range completions {
			fmt.Printf("  %-16s swallowed %-3d %s\n",
				c.LevelID, c.Swallowed, c.CompletedAt.Format("2006-01-02 15:04"))
		}
	}
}
