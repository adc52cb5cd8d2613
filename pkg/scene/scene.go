// Package scene parses scene-style media file and folder names into
// structured identities suitable for metadata lookup and cache keying.
package scene

import "errors"

// ErrAmbiguous is returned when no title token can be isolated from a name.
var ErrAmbiguous = errors.New("ambiguous name: no title token")

// Category identifies which library root an entry came from.
type Category string

const (
	CategoryMovies      Category = "movies"
	CategoryShows       Category = "shows"
	CategoryStandup     Category = "standup"
	CategoryDocumentary Category = "documentary"
)

// MovieLike reports whether the category resolves against movie metadata.
// Standup specials and documentaries are indexed as movies by the provider.
func (c Category) MovieLike() bool {
	return c == CategoryMovies || c == CategoryStandup || c == CategoryDocumentary
}

// Categories lists all known categories in display order.
func Categories() []Category {
	return []Category{CategoryMovies, CategoryShows, CategoryStandup, CategoryDocumentary}
}

// Identity is the parsed, normalized identity of a library entry.
type Identity struct {
	Title string // display title, separator-normalized, original casing
	Clean string // CleanTitle(Title); basis for cache keys
	Year  int    // 0 when no plausible year token was found

	// Shows only
	Season       int
	Episode      int
	EpisodeTitle string // tail tokens before the first known tag, may be empty
}

// HasEpisode reports whether a season/episode marker was parsed.
func (id *Identity) HasEpisode() bool {
	return id.Season > 0 || id.Episode > 0
}
