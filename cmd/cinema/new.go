package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/icemuppet/cinema/internal/library"
	"github.com/icemuppet/cinema/pkg/scene"
)

var newCmd = &cobra.Command{
	Use:   "new",
	Short: "Show the newest arrivals per category",
	RunE:  runNew,
}

func init() {
	rootCmd.AddCommand(newCmd)
}

type arrivalJSON struct {
	Category string    `json:"category"`
	Title    string    `json:"title"`
	Year     int       `json:"year,omitempty"`
	Season   int       `json:"season,omitempty"`
	Episode  int       `json:"episode,omitempty"`
	Path     string    `json:"path"`
	Size     int64     `json:"size_bytes"`
	ModTime  time.Time `json:"mod_time"`
}

func runNew(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()
	store := library.NewStore(db)

	out := []arrivalJSON{}

	for _, category := range scene.Categories() {
		if !category.MovieLike() {
			continue
		}
		items, err := store.NewestItems(string(category), cfg.Arrivals.Movies)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			continue
		}

		if jsonOutput {
			for _, it := range items {
				out = append(out, arrivalJSON{
					Category: string(category), Title: it.Title, Year: it.Year,
					Path: it.Path, Size: it.SizeBytes, ModTime: it.ModTime,
				})
			}
			continue
		}

		fmt.Printf("%s\n", category)
		rows := make([][]string, 0, len(items))
		for _, it := range items {
			rows = append(rows, []string{
				formatTitle(it.Title, it.Year),
				humanize.Bytes(uint64(it.SizeBytes)),
				humanize.Time(it.ModTime),
			})
		}
		fmt.Println(renderTable(
			[]string{"Title", "Size", "Added"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
	}

	episodes, err := store.NewestEpisodes(cfg.Arrivals.Shows * cfg.Arrivals.EpisodesPerShow * 4)
	if err != nil {
		return err
	}
	arrivals := groupArrivals(episodes, cfg.Arrivals.Shows, cfg.Arrivals.EpisodesPerShow)

	if jsonOutput {
		for _, sa := range arrivals {
			for _, ep := range sa.episodes {
				out = append(out, arrivalJSON{
					Category: string(scene.CategoryShows), Title: sa.title,
					Season: ep.Season, Episode: ep.Episode.Episode,
					Path: ep.Path, Size: ep.SizeBytes, ModTime: ep.ModTime,
				})
			}
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	if len(arrivals) > 0 {
		fmt.Printf("%s\n", scene.CategoryShows)
		var rows [][]string
		for _, sa := range arrivals {
			for _, ep := range sa.episodes {
				label := fmt.Sprintf("%s S%02dE%02d", sa.title, ep.Season, ep.Episode.Episode)
				if ep.Title != "" {
					label += " " + ep.Title
				}
				rows = append(rows, []string{label, humanize.Bytes(uint64(ep.SizeBytes)), humanize.Time(ep.ModTime)})
			}
			if sa.more {
				rows = append(rows, []string{fmt.Sprintf("%s ...", sa.title), "", ""})
			}
		}
		fmt.Println(renderTable(
			[]string{"Episode", "Size", "Added"},
			rows,
			[]columnAlignment{alignLeft, alignRight, alignRight},
		))
	}
	return nil
}

type showArrival struct {
	title    string
	episodes []*library.NewEpisode
	more     bool
}

// groupArrivals buckets a newest-first episode stream per show, keeping show
// order by each show's freshest episode and truncating per show.
func groupArrivals(episodes []*library.NewEpisode, maxShows, perShow int) []*showArrival {
	byShow := map[int64]*showArrival{}
	var order []*showArrival
	for _, ep := range episodes {
		sa, ok := byShow[ep.ItemID]
		if !ok {
			if len(order) == maxShows {
				continue
			}
			sa = &showArrival{title: ep.ShowTitle}
			byShow[ep.ItemID] = sa
			order = append(order, sa)
		}
		if len(sa.episodes) == perShow {
			sa.more = true
			continue
		}
		sa.episodes = append(sa.episodes, ep)
	}
	return order
}

func formatTitle(title string, year int) string {
	if year > 0 {
		return fmt.Sprintf("%s (%d)", title, year)
	}
	return title
}
