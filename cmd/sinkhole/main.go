// sinkhole is a hole-swallows-everything arcade game played in the terminal
// or the browser.
//
// Usage:
//
//	sinkhole play            - Play the campaign in the terminal
//	sinkhole levels          - List the level catalog
//	sinkhole progress        - Show or reset saved campaign progress
//	sinkhole history         - Browse completed levels interactively
//	sinkhole serve           - Host the game over SSH or HTTP
//
// Global flags:
//
//	--fps <rate>    - Set tick rate (default: 60)
//	--seed <value>  - Set RNG seed for reproducible gameplay
//	--db <path>     - Set database path (default: ~/.sinkhole/sinkhole.db)
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	// Import the game to register its modes
	_ "github.com/velmoga/sinkhole/internal/games/sinkhole"
)

var (
	// Global flags
	flagFPS    int
	flagSeed   int64
	flagDBPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "sinkhole",
	Short: "Sinkhole - steer a hole that swallows a whole town",
	Long: `Sinkhole is an arcade game: you steer a hole in the ground, swallow
objects smaller than yourself, and grow with every meal until nothing
on the level is safe.

Available commands:
  play      - Play the campaign (or endless mode) in the terminal
  levels    - Show the level catalog
  progress  - Show or reset saved campaign progress
  history   - Browse completed levels interactively
  serve     - Host the game over SSH or HTTP

Examples:
  sinkhole play
  sinkhole play --endless
  sinkhole play --level 3 --difficulty hard
  sinkhole levels
  sinkhole serve --ssh :2222
  sinkhole serve --http :8080`,
}

func init() {
	// Global persistent flags
	rootCmd.PersistentFlags().IntVar(&flagFPS, "fps", 60, "Tick rate (frames per second)")
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", "~/.sinkhole/sinkhole.db", "Path to progress database")

	// Add subcommands
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(levelsCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(serveCmd)
}
