package main

import (
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gofrs/flock"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/icemuppet/cinema/internal/catalog"
	"github.com/icemuppet/cinema/internal/config"
	"github.com/icemuppet/cinema/internal/library"
	"github.com/icemuppet/cinema/internal/metadata"
	"github.com/icemuppet/cinema/internal/migrations"
	"github.com/icemuppet/cinema/internal/scanner"
	"github.com/icemuppet/cinema/pkg/scene"
	"github.com/icemuppet/cinema/pkg/tmdb"
)

var scanCmd = &cobra.Command{
	Use:   "scan",
	Short: "Scan libraries, resolve metadata, and update the catalog",
	RunE:  runScan,
}

func init() {
	rootCmd.AddCommand(scanCmd)
}

func runScan(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger(cfg.Log.Level)
	if cerr := cfg.Validate(); cerr != nil {
		for _, msg := range cerr.Errors {
			log.Warn("config", "issue", msg)
		}
	}
	roots := cfg.Libraries.Roots()
	if len(roots) == 0 {
		return fmt.Errorf("no library roots configured")
	}

	if err := os.MkdirAll(cfg.Cache.Dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Database.Path), 0o755); err != nil {
		return fmt.Errorf("create db dir: %w", err)
	}

	// One scan at a time; concurrent runs would interleave cache flushes.
	lock := flock.New(filepath.Join(cfg.Cache.Dir, "cinema.lock"))
	ok, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire lock: %w", err)
	}
	if !ok {
		return fmt.Errorf("another scan is already running")
	}
	defer func() { _ = lock.Unlock() }()

	// Pruned series rows cascade to their episodes; foreign keys must be on
	// for every connection.
	db, err := sql.Open("sqlite", cfg.Database.Path+"?_pragma=foreign_keys(1)")
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	if _, err := db.Exec(migrations.InitialSQL); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	store := library.NewStore(db)

	cache, err := metadata.NewStore(cfg.Cache.Dir, log.With("component", "cache"))
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}

	creds := tmdb.Credentials{APIKey: cfg.TMDB.APIKey, BearerToken: cfg.TMDB.BearerToken}
	var provider metadata.Provider
	if creds.Configured() {
		provider = tmdb.New(creds,
			tmdb.WithLogger(log.With("component", "tmdb")),
			tmdb.WithHTTPClient(&http.Client{Timeout: time.Duration(cfg.Resolve.Timeout)}),
		)
	} else {
		log.Warn("no TMDB credentials configured, items will carry filename data only")
	}

	resolver := metadata.NewResolver(provider, cache, log.With("component", "resolver"))
	builder := catalog.NewBuilder(resolver, cfg.Resolve.Concurrency, log.With("component", "catalog"))

	ctx := cmd.Context()
	started := time.Now()

	var cat catalog.Catalog
	scanned := make([]scene.Category, 0, len(roots))
	for _, category := range scene.Categories() {
		root, ok := roots[category]
		if !ok {
			continue
		}
		entries, err := scanner.Scan(root, category, log.With("component", "scanner"))
		if err != nil {
			return err
		}
		log.Info("scanned", "category", category, "entries", len(entries))
		if err := builder.Build(ctx, &cat, entries, category); err != nil {
			return err
		}
		scanned = append(scanned, category)
	}

	if err := persist(store, &cat, scanned, started); err != nil {
		return err
	}
	if err := cache.Flush(); err != nil {
		return fmt.Errorf("flush cache: %w", err)
	}

	log.Info("scan complete",
		"elapsed", time.Since(started).Round(time.Millisecond),
		"unresolved", cat.Unresolved,
		"unparseable", cat.Unparseable,
	)
	printArrivals(&cat, cfg.Arrivals)
	return printStats(store)
}

// printArrivals shows what just landed, like the original new-arrivals page.
func printArrivals(cat *catalog.Catalog, limits config.ArrivalsConfig) {
	movies := catalog.SelectNewest(cat.Movies, limits.Movies)
	if len(movies) > 0 {
		rows := make([][]string, 0, len(movies))
		for _, it := range movies {
			rows = append(rows, []string{
				formatTitle(it.DisplayTitle(), it.Year()),
				humanize.Bytes(uint64(it.Entry.Size)),
				humanize.Time(it.Entry.ModTime),
			})
		}
		fmt.Println("Newest arrivals")
		fmt.Println(renderTable(
			[]string{"Title", "Size", "Added"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
	}

	shows := catalog.SelectNewestShows(cat.Shows, limits.Shows, limits.EpisodesPerShow)
	if len(shows) > 0 {
		var rows [][]string
		for _, a := range shows {
			for _, ep := range a.Episodes {
				label := a.Show.Title
				if ep.Identity.HasEpisode() {
					label = fmt.Sprintf("%s S%02dE%02d", a.Show.Title, ep.Identity.Season, ep.Identity.Episode)
					if ep.Identity.EpisodeTitle != "" {
						label += " " + ep.Identity.EpisodeTitle
					}
				}
				rows = append(rows, []string{label, humanize.Bytes(uint64(ep.Entry.Size)), humanize.Time(ep.Entry.ModTime)})
			}
			if a.HasMore {
				rows = append(rows, []string{fmt.Sprintf("%s ...", a.Show.Title), "", ""})
			}
		}
		fmt.Println("Newest episodes")
		fmt.Println(renderTable(
			[]string{"Episode", "Size", "Added"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
	}
}

// persist writes the catalog into the library database and prunes rows for
// files that vanished since the last run.
func persist(store *library.Store, cat *catalog.Catalog, scanned []scene.Category, started time.Time) error {
	tx, err := store.Begin()
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	for _, it := range cat.Movies {
		row := &library.Item{
			Category:  it.Entry.Category,
			Key:       itemKey(it),
			Title:     it.DisplayTitle(),
			Year:      it.Year(),
			Path:      it.Entry.Path,
			SizeBytes: it.Entry.Size,
			ModTime:   it.Entry.ModTime,
			Archived:  it.Entry.Archived,
		}
		if it.Record != nil {
			row.TMDBID = &it.Record.TMDBID
			row.PosterPath = it.Record.PosterPath
		}
		if err := tx.UpsertItem(row); err != nil {
			return err
		}
	}

	for _, g := range cat.Shows {
		// Unparseable files group under an empty key; they are counted but
		// never persisted as a series.
		if g.Clean == "" || len(g.Episodes) == 0 {
			continue
		}
		row := &library.Item{
			Category: scene.CategoryShows,
			Key:      g.Clean,
			Title:    g.Title,
			Path:     filepath.Dir(g.Episodes[0].Entry.Path),
			ModTime:  newestModTime(g.Episodes),
			Archived: allArchived(g.Episodes),
		}
		if g.Record != nil {
			row.TMDBID = &g.Record.TMDBID
			row.PosterPath = g.Record.PosterPath
			row.Year = g.Record.Year
		}
		if err := tx.UpsertItem(row); err != nil {
			return err
		}
		for _, ep := range g.Episodes {
			erow := &library.Episode{
				ItemID:    row.ID,
				Season:    ep.Identity.Season,
				Episode:   ep.Identity.Episode,
				Title:     ep.Identity.EpisodeTitle,
				Path:      ep.Entry.Path,
				SizeBytes: ep.Entry.Size,
				ModTime:   ep.Entry.ModTime,
				Archived:  ep.Entry.Archived,
			}
			if err := tx.UpsertEpisode(erow); err != nil {
				return err
			}
		}
	}

	for _, category := range scanned {
		if _, err := tx.PruneVanished(string(category), started); err != nil {
			return err
		}
	}
	return tx.Commit()
}

// itemKey falls back to the lowercased raw name when parsing yielded no
// usable identity, so the row is still stable across runs.
func itemKey(it catalog.Item) string {
	if it.Identity.Clean != "" {
		return metadata.Key(&it.Identity, it.Entry.Category)
	}
	return strings.ToLower(it.Entry.Name)
}

func newestModTime(items []catalog.Item) time.Time {
	var newest time.Time
	for _, it := range items {
		if it.Entry.ModTime.After(newest) {
			newest = it.Entry.ModTime
		}
	}
	return newest
}

func allArchived(items []catalog.Item) bool {
	for _, it := range items {
		if !it.Entry.Archived {
			return false
		}
	}
	return true
}

func printStats(store *library.Store) error {
	stats, err := store.CategoryStats()
	if err != nil {
		return err
	}

	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			string(st.Category),
			strconv.Itoa(st.Items),
			strconv.Itoa(st.Episodes),
			strconv.Itoa(st.Archived),
			humanize.Bytes(uint64(st.TotalBytes)),
		})
	}
	fmt.Println(renderTable(
		[]string{"Category", "Items", "Episodes", "Archived", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	return nil
}
