package catalog

import (
	"context"
	"errors"
	"log/slog"
	"sync"

	"golang.org/x/sync/errgroup"

	"github.com/icemuppet/cinema/internal/metadata"
	"github.com/icemuppet/cinema/internal/scanner"
	"github.com/icemuppet/cinema/pkg/scene"
)

// resolver is the metadata surface the builder needs; satisfied by
// *metadata.Resolver.
type resolver interface {
	Resolve(ctx context.Context, id *scene.Identity, cat scene.Category) (*metadata.Record, error)
	ResolveEpisode(ctx context.Context, cleanTitle string, tmdbID int64, season, episode int) (*metadata.Record, error)
}

// Builder turns scanned entries into a catalog, resolving metadata with
// bounded concurrency.
type Builder struct {
	resolver    resolver
	log         *slog.Logger
	concurrency int
}

// NewBuilder configures a builder. A concurrency of zero or less falls back
// to serial resolution.
func NewBuilder(r resolver, concurrency int, log *slog.Logger) *Builder {
	if concurrency < 1 {
		concurrency = 1
	}
	return &Builder{resolver: r, log: log, concurrency: concurrency}
}

// Build parses, dedupes and resolves the entries for one category and
// appends them to the catalog. Resolution failures never abort the build;
// the affected items are kept with a nil record.
func (b *Builder) Build(ctx context.Context, cat *Catalog, entries []scanner.Entry, category scene.Category) error {
	if !category.MovieLike() {
		entries = DedupeEpisodes(entries)
	}

	items := make([]Item, len(entries))
	var mu sync.Mutex

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.concurrency)
	for i, e := range entries {
		i, e := i, e
		g.Go(func() error {
			item := b.buildItem(gctx, e)
			mu.Lock()
			items[i] = item
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}

	for _, it := range items {
		if it.Identity.Clean == "" {
			cat.Unparseable++
		}
		if it.Record == nil {
			cat.Unresolved++
		}
	}

	if category.MovieLike() {
		cat.Movies = append(cat.Movies, items...)
	} else {
		cat.Shows = append(cat.Shows, GroupShows(items)...)
	}
	return nil
}

func (b *Builder) buildItem(ctx context.Context, e scanner.Entry) Item {
	item := Item{Entry: e}

	id, err := scene.Parse(e.Name, e.Category)
	if err != nil {
		if b.log != nil {
			b.log.Warn("unparseable name", "name", e.Name, "error", err)
		}
		return item
	}
	item.Identity = *id

	rec, err := b.resolver.Resolve(ctx, id, e.Category)
	if err != nil {
		b.logResolveErr(e.Name, err)
		return item
	}
	item.Record = rec

	if id.HasEpisode() && id.EpisodeTitle == "" {
		ep, err := b.resolver.ResolveEpisode(ctx, id.Clean, rec.TMDBID, id.Season, id.Episode)
		if err == nil && ep.EpisodeTitle != "" {
			item.Identity.EpisodeTitle = ep.EpisodeTitle
		}
	}
	return item
}

func (b *Builder) logResolveErr(name string, err error) {
	if b.log == nil {
		return
	}
	switch {
	case errors.Is(err, metadata.ErrProviderUnavailable):
		b.log.Debug("metadata provider unavailable", "name", name)
	case errors.Is(err, metadata.ErrNotFound):
		b.log.Info("no metadata match", "name", name)
	default:
		b.log.Warn("metadata lookup failed", "name", name, "error", err)
	}
}
