package main

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strconv"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
	_ "modernc.org/sqlite"

	"github.com/icemuppet/cinema/internal/library"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Per-category catalog totals",
	RunE:  runStatus,
}

func init() {
	rootCmd.AddCommand(statusCmd)
}

func runStatus(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	db, err := sql.Open("sqlite", cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("open db: %w", err)
	}
	defer db.Close()

	stats, err := library.NewStore(db).CategoryStats()
	if err != nil {
		return err
	}

	if jsonOutput {
		type statJSON struct {
			Category   string `json:"category"`
			Items      int    `json:"items"`
			Episodes   int    `json:"episodes,omitempty"`
			Archived   int    `json:"archived,omitempty"`
			TotalBytes int64  `json:"total_bytes"`
		}
		out := make([]statJSON, 0, len(stats))
		for _, st := range stats {
			out = append(out, statJSON{string(st.Category), st.Items, st.Episodes, st.Archived, st.TotalBytes})
		}
		return json.NewEncoder(os.Stdout).Encode(out)
	}

	var totalItems int
	var totalBytes int64
	rows := make([][]string, 0, len(stats))
	for _, st := range stats {
		rows = append(rows, []string{
			string(st.Category),
			strconv.Itoa(st.Items),
			strconv.Itoa(st.Episodes),
			strconv.Itoa(st.Archived),
			humanize.Bytes(uint64(st.TotalBytes)),
		})
		totalItems += st.Items
		totalBytes += st.TotalBytes
	}
	fmt.Println(renderTable(
		[]string{"Category", "Items", "Episodes", "Archived", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignRight, alignRight, alignRight, alignRight},
	))
	fmt.Printf("%d items, %s total\n", totalItems, humanize.Bytes(uint64(totalBytes)))
	return nil
}
