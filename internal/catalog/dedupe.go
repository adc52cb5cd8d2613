package catalog

import (
	"fmt"
	"sort"

	"github.com/icemuppet/cinema/internal/scanner"
	"github.com/icemuppet/cinema/pkg/scene"
)

// DedupeEpisodes collapses multiple files for the same (series, season,
// episode) down to the largest one, breaking size ties on the
// lexicographically smaller path. Files whose names don't parse to an episode
// pass through untouched. The operation is idempotent.
func DedupeEpisodes(entries []scanner.Entry) []scanner.Entry {
	best := map[string]scanner.Entry{}
	var order []string
	var passthrough []scanner.Entry

	for _, e := range entries {
		id, err := scene.Parse(e.Name, e.Category)
		if err != nil || !id.HasEpisode() {
			passthrough = append(passthrough, e)
			continue
		}
		key := fmt.Sprintf("%s|%d|%d", id.Clean, id.Season, id.Episode)
		cur, ok := best[key]
		if !ok {
			best[key] = e
			order = append(order, key)
			continue
		}
		if e.Size > cur.Size || (e.Size == cur.Size && e.Path < cur.Path) {
			best[key] = e
		}
	}

	out := make([]scanner.Entry, 0, len(order)+len(passthrough))
	for _, key := range order {
		out = append(out, best[key])
	}
	out = append(out, passthrough...)
	sort.Slice(out, func(i, j int) bool { return out[i].Path < out[j].Path })
	return out
}
