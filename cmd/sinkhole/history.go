package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/velmoga/sinkhole/internal/platform/tui"
	"github.com/velmoga/sinkhole/internal/storage"
)

var flagHistorySlot string

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse completed levels in an interactive table",
	Long: `Opens an interactive table of finished levels for a progress slot,
with the endless-mode best run shown in the header.

Examples:
  sinkhole history
  sinkhole history --slot alice`,
	Run: runHistory,
}

func init() {
	historyCmd.Flags().StringVar(&flagHistorySlot, "slot", "", "Progress slot name (default: shared slot)")
}

func runHistory(_ *cobra.Command, _ []string) {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	defer store.Close()

	width, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		width, height = 80, 24
	}

	if err := tui.RunHistory(store.WithSlot(flagHistorySlot), width, height); err != nil {
		fmt.Fprintf(os.Stderr, "Error running history view: %v\n", err)
		os.Exit(1)
	}
}
