// Package metadata resolves parsed identities against TMDB and caches the
// results per category on disk.
package metadata

import (
	"fmt"

	"github.com/icemuppet/cinema/pkg/scene"
)

// Partition names one of the on-disk cache stores. Movies, standup and
// documentary share the movie partition; shows and episodes each get their
// own to avoid key collisions between a movie and a same-named show.
type Partition string

const (
	PartitionMovies   Partition = "movies"
	PartitionShows    Partition = "shows"
	PartitionEpisodes Partition = "episodes"
)

// Partitions lists all cache partitions.
func Partitions() []Partition {
	return []Partition{PartitionMovies, PartitionShows, PartitionEpisodes}
}

// Record is a snapshot of the provider response for one resolved identity.
// Records are owned by the Store; callers always receive copies.
type Record struct {
	TMDBID        int64    `json:"tmdb_id"`
	Title         string   `json:"title"`
	Year          int      `json:"year,omitempty"`
	Overview      string   `json:"overview,omitempty"`
	Genres        []string `json:"genres,omitempty"`
	PosterPath    string   `json:"poster_path,omitempty"`
	BackdropPath  string   `json:"backdrop_path,omitempty"`
	Runtime       int      `json:"runtime,omitempty"`
	VoteAverage   float64  `json:"vote_average,omitempty"`
	Certification string   `json:"certification,omitempty"`
	Tagline       string   `json:"tagline,omitempty"`
	Cast          []string `json:"cast,omitempty"`

	// Episodes only
	EpisodeTitle string `json:"episode_title,omitempty"`
}

// Clone returns a deep copy of the record.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	out := *r
	if r.Genres != nil {
		out.Genres = append([]string(nil), r.Genres...)
	}
	if r.Cast != nil {
		out.Cast = append([]string(nil), r.Cast...)
	}
	return &out
}

// PartitionFor maps a category to its cache partition.
func PartitionFor(cat scene.Category) Partition {
	if cat.MovieLike() {
		return PartitionMovies
	}
	return PartitionShows
}

// Key derives the cache key for a parsed identity in the given category.
// Movie-like: "clean" or "clean|year". Shows: "clean" at the show level.
func Key(id *scene.Identity, cat scene.Category) string {
	if cat.MovieLike() && id.Year > 0 {
		return fmt.Sprintf("%s|%d", id.Clean, id.Year)
	}
	return id.Clean
}

// EpisodeKey derives the cache key for one episode of a show.
func EpisodeKey(cleanTitle string, season, episode int) string {
	return fmt.Sprintf("%s|S%02d|E%02d", cleanTitle, season, episode)
}
