package levels

import (
	"embed"
	"fmt"
	"sort"
	"strings"
)

//go:embed defaults/*.yaml
var defaultsFS embed.FS

// Default returns the built-in campaign catalog, sorted by level ID.
// The embedded files are authored content; a parse failure here is a
// packaging bug, so it panics rather than returning a half catalog.
func Default() []Level {
	entries, err := defaultsFS.ReadDir("defaults")
	if err != nil {
		panic(fmt.Sprintf("levels: embedded catalog unreadable: %v", err))
	}

	var out []Level
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".yaml") {
			continue
		}
		data, err := defaultsFS.ReadFile("defaults/" + e.Name())
		if err != nil {
			panic(fmt.Sprintf("levels: embedded level %s unreadable: %v", e.Name(), err))
		}
		lvl, err := Parse(data)
		if err != nil {
			panic(fmt.Sprintf("levels: embedded level %s invalid: %v", e.Name(), err))
		}
		out = append(out, lvl)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].ID < out[j].ID
	})

	return out
}
