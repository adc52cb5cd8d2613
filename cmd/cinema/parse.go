package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/icemuppet/cinema/pkg/scene"
)

var parseCategory string

var parseCmd = &cobra.Command{
	Use:   "parse [flags] <name>",
	Short: "Interpret a filename (local, no network needed)",
	Long: `Interpret a scene-style file or folder name.

Examples:
  cinema parse "Heat.1995.1080p.BluRay.x264-GROUP"
  cinema parse --category shows "South.Park.S27E03.1080p.WEB.h264"
  cinema parse --json "Andrew.Santino.Cheeseburger.720p"`,
	Args: cobra.ExactArgs(1),
	RunE: runParse,
}

func init() {
	parseCmd.Flags().StringVar(&parseCategory, "category", "movies", "Category context (movies, shows, standup, documentary)")
	rootCmd.AddCommand(parseCmd)
}

type parseResultJSON struct {
	Title        string `json:"title"`
	Clean        string `json:"clean"`
	Year         int    `json:"year,omitempty"`
	Season       int    `json:"season,omitempty"`
	Episode      int    `json:"episode,omitempty"`
	EpisodeTitle string `json:"episode_title,omitempty"`
}

func runParse(cmd *cobra.Command, args []string) error {
	category := scene.Category(parseCategory)
	valid := false
	for _, c := range scene.Categories() {
		if c == category {
			valid = true
		}
	}
	if !valid {
		return fmt.Errorf("unknown category %q", parseCategory)
	}

	id, err := scene.Parse(args[0], category)
	if err != nil {
		return err
	}

	if jsonOutput {
		return json.NewEncoder(os.Stdout).Encode(parseResultJSON{
			Title:        id.Title,
			Clean:        id.Clean,
			Year:         id.Year,
			Season:       id.Season,
			Episode:      id.Episode,
			EpisodeTitle: id.EpisodeTitle,
		})
	}

	fmt.Printf("Title:   %s\n", id.Title)
	fmt.Printf("Clean:   %s\n", id.Clean)
	if id.Year > 0 {
		fmt.Printf("Year:    %d\n", id.Year)
	}
	if id.HasEpisode() {
		fmt.Printf("Episode: S%02dE%02d\n", id.Season, id.Episode)
		if id.EpisodeTitle != "" {
			fmt.Printf("Name:    %s\n", id.EpisodeTitle)
		}
	}
	return nil
}
