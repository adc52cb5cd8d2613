// Package library persists scan results (items, episodes) across runs.
package library

import (
	"time"

	"github.com/icemuppet/cinema/pkg/scene"
)

// Item is one persisted catalog row: a movie-like title or a series. Items
// are keyed by (category, key) where key is the normalized identity, so a
// rescan updates rows in place while first_seen survives.
type Item struct {
	ID         int64
	Category   scene.Category
	Key        string
	Title      string
	Year       int
	TMDBID     *int64 // nil when metadata resolution failed
	PosterPath string
	Path       string
	SizeBytes  int64
	ModTime    time.Time
	Archived   bool
	FirstSeen  time.Time
	LastSeen   time.Time
}

// Episode is one persisted episode row belonging to a series item.
type Episode struct {
	ID        int64
	ItemID    int64
	Season    int
	Episode   int
	Title     string
	Path      string
	SizeBytes int64
	ModTime   time.Time
	Archived  bool
	FirstSeen time.Time
	LastSeen  time.Time
}

// CategoryStat summarizes one category's footprint. Archived counts items and
// episodes sitting under the archive folder; they are included in the totals.
type CategoryStat struct {
	Category   scene.Category
	Items      int
	Episodes   int
	Archived   int
	TotalBytes int64
}
