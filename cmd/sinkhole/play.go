package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/velmoga/sinkhole/internal/core"
	"github.com/velmoga/sinkhole/internal/games/sinkhole"
	"github.com/velmoga/sinkhole/internal/platform/tui"
	"github.com/velmoga/sinkhole/internal/registry"
	"github.com/velmoga/sinkhole/internal/storage"
)

var (
	flagConfig     string
	flagDifficulty string
	flagEndless    bool
	flagLevel      int
	flagLevelsDir  string
	flagSlot       string
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play the game",
	Long: `Start the campaign in the terminal. Progress is saved between
sessions; restarting the command resumes at the level you left off.

Controls:
  WASD/Arrows - Move the hole
  P/Esc       - Pause
  R           - Restart (after finishing the campaign)
  Q/Ctrl+C    - Quit

Difficulty options:
  easy   - Generous swallow range, faster growth
  normal - Default tuning
  hard   - Tight swallow range, slower growth

Examples:
  sinkhole play
  sinkhole play --endless
  sinkhole play --level 3
  sinkhole play --difficulty hard
  sinkhole play --levels-dir ./my-levels
  sinkhole play --config ./my-tuning.yaml`,
	Args: cobra.NoArgs,
	Run:  runPlay,
}

func init() {
	playCmd.Flags().StringVar(&flagConfig, "config", "", "Path to custom tuning config YAML")
	playCmd.Flags().StringVar(&flagDifficulty, "difficulty", "", "Difficulty preset: easy, normal, hard")
	playCmd.Flags().BoolVar(&flagEndless, "endless", false, "Cycle the catalog forever instead of finishing")
	playCmd.Flags().IntVar(&flagLevel, "level", 0, "Start at a specific level (1-based, ignores saved progress)")
	playCmd.Flags().StringVar(&flagLevelsDir, "levels-dir", "", "Load levels from a directory instead of the built-in campaign")
	playCmd.Flags().StringVar(&flagSlot, "slot", "", "Progress slot name (default: shared slot)")
}

func runPlay(_ *cobra.Command, _ []string) {
	gameID := "sinkhole"
	if flagEndless {
		gameID = "sinkhole_endless"
	}

	// Get terminal size
	width, height := 80, 24 // Defaults
	if w, h, termErr := term.GetSize(int(os.Stdout.Fd())); termErr == nil {
		width = w
		height = h
	}

	cfg := core.RuntimeConfig{
		ScreenW:  width,
		ScreenH:  height,
		TickRate: flagFPS,
		Seed:     flagSeed,
	}

	// Configure the game before creation
	sinkhole.SetConfigPath(flagConfig)
	sinkhole.SetDifficultyPreset(flagDifficulty)
	sinkhole.SetLevelsDir(flagLevelsDir)
	if flagLevel > 0 {
		sinkhole.SetStartLevel(flagLevel)
	}

	// Open progress storage
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		// Continue without storage - game still works
		store = nil
	}
	if store != nil {
		sinkhole.SetProgressStore(store.WithSlot(flagSlot))
	}

	game, err := registry.Create(gameID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating game: %v\n", err)
		os.Exit(1)
	}

	runErr := tui.Run(game, store, cfg)

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
