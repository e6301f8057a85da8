package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/velmoga/sinkhole/internal/games/sinkhole/levels"
)

var flagListLevelsDir string

var levelsCmd = &cobra.Command{
	Use:   "levels",
	Short: "List the level catalog",
	Long: `Shows every level in the catalog with its victory condition.

By default the built-in campaign is listed; --levels-dir lists a custom
level directory instead.`,
	Run: runLevels,
}

func init() {
	levelsCmd.Flags().StringVar(&flagListLevelsDir, "levels-dir", "", "List levels from a directory instead of the built-in campaign")
}

func runLevels(_ *cobra.Command, _ []string) {
	var catalog []levels.Level
	if flagListLevelsDir != "" {
		loaded, err := levels.NewLoader(flagListLevelsDir).LoadAll()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error loading levels: %v\n", err)
			os.Exit(1)
		}
		catalog = loaded
	} else {
		catalog = levels.Default()
	}

	if len(catalog) == 0 {
		fmt.Println("No levels found.")
		return
	}

	fmt.Printf("Levels (%d):\n\n", len(catalog))
	for i, lvl := range catalog {
		fmt.Printf("  %2d. %-16s %s\n", i+1, lvl.ID, lvl.Name)
		fmt.Printf("      objects: %-3d start size: %.2f  goal: %s\n",
			len(lvl.Objects), lvl.Hole.Radius, describeVictory(lvl))
	}
	fmt.Println()
	fmt.Println("Run 'sinkhole play --level <n>' to jump to a level.")
}

func describeVictory(lvl levels.Level) string {
	switch lvl.Victory.Kind {
	case levels.VictoryAllObjects:
		return "swallow every object"
	case levels.VictoryHoleSize:
		return fmt.Sprintf("grow to size %.2f", lvl.Victory.TargetRadius)
	case levels.VictoryRequiredObjects:
		req := lvl.RequiredIDs()
		return fmt.Sprintf("swallow %d marked target(s)", len(req))
	default:
		return "unknown"
	}
}
