// Package catalog assembles scanned files and resolved metadata into the
// per-category views the rest of the system consumes.
package catalog

import (
	"sort"

	"github.com/icemuppet/cinema/internal/metadata"
	"github.com/icemuppet/cinema/internal/scanner"
	"github.com/icemuppet/cinema/pkg/scene"
)

// Item is one catalog entry: the file on disk, what its name parsed to, and
// whatever metadata resolution produced. Record is nil when resolution failed
// or was skipped; the item is still listed.
type Item struct {
	Entry    scanner.Entry
	Identity scene.Identity
	Record   *metadata.Record
}

// DisplayTitle prefers the resolved canonical title, then the parsed title,
// then the raw on-disk name.
func (it Item) DisplayTitle() string {
	if it.Record != nil && it.Record.Title != "" {
		return it.Record.Title
	}
	if it.Identity.Title != "" {
		return it.Identity.Title
	}
	return it.Entry.Name
}

// Year prefers the resolved release year over the parsed one.
func (it Item) Year() int {
	if it.Record != nil && it.Record.Year != 0 {
		return it.Record.Year
	}
	return it.Identity.Year
}

// ShowGroup collects one series' episodes under a shared identity.
type ShowGroup struct {
	Clean    string // normalized series key
	Title    string // display title for the series
	Record   *metadata.Record
	Episodes []Item
}

// Catalog is the complete output of one scan-and-resolve pass.
type Catalog struct {
	Movies      []Item // movie-like categories, keyed by Entry.Category
	Shows       []ShowGroup
	Unresolved  int // entries whose metadata lookup failed
	Unparseable int // entries that yielded no usable identity
}

// GroupShows buckets episode items by their normalized series title, sorting
// episodes by (season, episode) and groups by title.
func GroupShows(items []Item) []ShowGroup {
	byClean := map[string]*ShowGroup{}
	var order []string
	for _, it := range items {
		key := it.Identity.Clean
		title := it.Identity.Title
		if key == "" {
			// Unparseable names get their own group, labeled by the raw
			// entry name, so they never pool under one blank series.
			key = it.Entry.Path
			title = it.Entry.Name
		}
		g, ok := byClean[key]
		if !ok {
			g = &ShowGroup{Clean: it.Identity.Clean, Title: title}
			byClean[key] = g
			order = append(order, key)
		}
		if g.Record == nil && it.Record != nil {
			g.Record = it.Record
			g.Title = it.Record.Title
		}
		g.Episodes = append(g.Episodes, it)
	}

	groups := make([]ShowGroup, 0, len(order))
	for _, key := range order {
		g := byClean[key]
		sort.Slice(g.Episodes, func(i, j int) bool {
			a, b := g.Episodes[i].Identity, g.Episodes[j].Identity
			if a.Season != b.Season {
				return a.Season < b.Season
			}
			return a.Episode < b.Episode
		})
		groups = append(groups, *g)
	}
	sort.Slice(groups, func(i, j int) bool { return groups[i].Title < groups[j].Title })
	return groups
}
