package metadata

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/icemuppet/cinema/pkg/scene"
	"github.com/icemuppet/cinema/pkg/tmdb"
)

//go:generate mockgen -destination mocks/provider.go -package mocks . Provider

// Provider is the external metadata API surface the resolver depends on.
type Provider interface {
	SearchMovies(ctx context.Context, query string, year int) ([]tmdb.MovieResult, error)
	SearchTV(ctx context.Context, query string) ([]tmdb.TVResult, error)
	MovieDetails(ctx context.Context, id int64) (*tmdb.Movie, error)
	TVDetails(ctx context.Context, id int64) (*tmdb.TV, error)
	EpisodeDetails(ctx context.Context, id int64, season, episode int) (*tmdb.Episode, error)
}

// Resolver resolves parsed identities to metadata records, cache-first.
// A nil provider means no credentials are configured; every cache miss then
// fails with ErrProviderUnavailable before any network call.
type Resolver struct {
	provider Provider
	cache    Cache
	log      *slog.Logger
}

// NewResolver creates a resolver. provider may be nil when no credentials
// are configured.
func NewResolver(provider Provider, cache Cache, log *slog.Logger) *Resolver {
	return &Resolver{
		provider: provider,
		cache:    cache,
		log:      log,
	}
}

// Resolve returns the metadata record for an identity, serving from cache
// when possible. Repeated calls for an unchanged identity issue no provider
// queries after the first success.
func (r *Resolver) Resolve(ctx context.Context, id *scene.Identity, cat scene.Category) (*Record, error) {
	part := PartitionFor(cat)
	key := Key(id, cat)

	if rec, ok := r.cache.Get(part, key); ok {
		return rec, nil
	}
	if r.provider == nil {
		return nil, ErrProviderUnavailable
	}

	var rec *Record
	var err error
	if cat.MovieLike() {
		rec, err = r.resolveMovie(ctx, id, cat)
	} else {
		rec, err = r.resolveShow(ctx, id)
	}
	if err != nil {
		return nil, err
	}

	r.cache.Put(part, key, rec)
	return rec.Clone(), nil
}

// resolveMovie evaluates the movie query plan in order, stopping at the
// first query with an accepted candidate.
func (r *Resolver) resolveMovie(ctx context.Context, id *scene.Identity, cat scene.Category) (*Record, error) {
	plan := movieQueryPlan(id, cat)

	var attempted []string
	failures := 0
	for _, q := range plan {
		attempted = append(attempted, q.Label())

		results, err := r.provider.SearchMovies(ctx, q.Text, q.Year)
		if err != nil {
			failures++
			if r.log != nil {
				r.log.Warn("movie search failed", "query", q.Text, "year", q.Year, "error", err)
			}
			continue
		}

		if best := pickBestMovie(q.Text, id.Year, results); best != nil {
			if r.log != nil {
				r.log.Debug("movie matched", "query", q.Text, "title", best.Title, "tmdb_id", best.ID)
			}
			return r.movieRecord(ctx, best), nil
		}
	}

	if failures == len(plan) {
		return nil, fmt.Errorf("%w: all %d queries failed", ErrProviderUnavailable, failures)
	}
	return nil, fmt.Errorf("%w: attempted %s", ErrNotFound, strings.Join(attempted, ", "))
}

// pickBestMovie scores candidates against the query title and returns the
// highest-scoring accepted one. Ties keep the earlier candidate, preserving
// provider ranking.
func pickBestMovie(queryTitle string, queryYear int, results []tmdb.MovieResult) *tmdb.MovieResult {
	var best *tmdb.MovieResult
	bestScore := 0.0

	for i := range results {
		if i == maxCandidates {
			break
		}
		cand := &results[i]
		title := cand.Title
		if title == "" {
			title = cand.OriginalTitle
		}
		score, ok := candidateScore(queryTitle, queryYear, title, yearFromDate(cand.ReleaseDate), cand.PosterPath != "")
		if !ok {
			continue
		}
		if best == nil || score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

// movieRecord builds a record from the accepted search result, enriching it
// with details when the lookup succeeds. Detail failure is not fatal; the
// search snapshot alone is still a valid record.
func (r *Resolver) movieRecord(ctx context.Context, res *tmdb.MovieResult) *Record {
	rec := &Record{
		TMDBID:     res.ID,
		Title:      res.Title,
		Year:       yearFromDate(res.ReleaseDate),
		Overview:   res.Overview,
		PosterPath: res.PosterPath,
	}

	det, err := r.provider.MovieDetails(ctx, res.ID)
	if err != nil {
		if r.log != nil {
			r.log.Warn("movie details failed", "tmdb_id", res.ID, "error", err)
		}
		return rec
	}

	rec.Genres = genreNames(det.Genres)
	rec.Runtime = det.Runtime
	rec.VoteAverage = det.VoteAverage
	rec.Certification = det.USCertification()
	rec.Tagline = det.Tagline
	rec.BackdropPath = det.BackdropPath
	rec.Cast = det.Cast(5)
	return rec
}

// resolveShow evaluates the show title variants in order.
func (r *Resolver) resolveShow(ctx context.Context, id *scene.Identity) (*Record, error) {
	plan := showQueryPlan(id)

	var attempted []string
	failures := 0
	for _, query := range plan {
		attempted = append(attempted, strconv.Quote(query))

		results, err := r.provider.SearchTV(ctx, query)
		if err != nil {
			failures++
			if r.log != nil {
				r.log.Warn("tv search failed", "query", query, "error", err)
			}
			continue
		}

		if best := pickBestTV(query, id.Year, results); best != nil {
			if r.log != nil {
				r.log.Debug("show matched", "query", query, "name", best.Name, "tmdb_id", best.ID)
			}
			return r.showRecord(ctx, best), nil
		}
	}

	if failures == len(plan) {
		return nil, fmt.Errorf("%w: all %d queries failed", ErrProviderUnavailable, failures)
	}
	return nil, fmt.Errorf("%w: attempted %s", ErrNotFound, strings.Join(attempted, ", "))
}

func pickBestTV(queryTitle string, queryYear int, results []tmdb.TVResult) *tmdb.TVResult {
	var best *tmdb.TVResult
	bestScore := 0.0

	for i := range results {
		if i == maxCandidates {
			break
		}
		cand := &results[i]
		name := cand.Name
		if name == "" {
			name = cand.OriginalName
		}
		score, ok := candidateScore(queryTitle, queryYear, name, yearFromDate(cand.FirstAirDate), cand.PosterPath != "")
		if !ok {
			continue
		}
		if best == nil || score > bestScore {
			best = cand
			bestScore = score
		}
	}
	return best
}

func (r *Resolver) showRecord(ctx context.Context, res *tmdb.TVResult) *Record {
	rec := &Record{
		TMDBID:     res.ID,
		Title:      res.Name,
		Year:       yearFromDate(res.FirstAirDate),
		Overview:   res.Overview,
		PosterPath: res.PosterPath,
	}

	det, err := r.provider.TVDetails(ctx, res.ID)
	if err != nil {
		if r.log != nil {
			r.log.Warn("tv details failed", "tmdb_id", res.ID, "error", err)
		}
		return rec
	}

	rec.Genres = genreNames(det.Genres)
	rec.VoteAverage = det.VoteAverage
	rec.Tagline = det.Tagline
	rec.BackdropPath = det.BackdropPath
	rec.Cast = det.Cast(5)
	return rec
}

// ResolveEpisode resolves the title of one episode, cache-first, keyed by
// the show's clean title plus season/episode. A provider miss is cached as a
// negative entry so unaired or unlisted episodes are not re-queried every
// run; the caller keeps the filename-derived title as the visible fallback.
func (r *Resolver) ResolveEpisode(ctx context.Context, cleanTitle string, tmdbID int64, season, episode int) (*Record, error) {
	key := EpisodeKey(cleanTitle, season, episode)

	if rec, ok := r.cache.Get(PartitionEpisodes, key); ok {
		if rec.EpisodeTitle == "" {
			return nil, ErrNotFound
		}
		return rec, nil
	}
	if r.provider == nil {
		return nil, ErrProviderUnavailable
	}

	ep, err := r.provider.EpisodeDetails(ctx, tmdbID, season, episode)
	if err != nil {
		if errors.Is(err, tmdb.ErrNotFound) {
			r.cache.Put(PartitionEpisodes, key, &Record{TMDBID: tmdbID})
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrProviderUnavailable, err)
	}

	rec := &Record{
		TMDBID:       tmdbID,
		EpisodeTitle: ep.Name,
		Overview:     ep.Overview,
	}
	r.cache.Put(PartitionEpisodes, key, rec)
	if ep.Name == "" {
		return nil, ErrNotFound
	}
	return rec, nil
}

func yearFromDate(date string) int {
	if len(date) < 4 {
		return 0
	}
	y, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0
	}
	return y
}

func genreNames(genres []tmdb.Genre) []string {
	var names []string
	for _, g := range genres {
		if g.Name != "" {
			names = append(names, g.Name)
		}
	}
	return names
}
