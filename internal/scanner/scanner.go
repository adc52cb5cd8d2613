// Package scanner discovers video files under category roots.
package scanner

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/icemuppet/cinema/pkg/scene"
)

// ArchivedDirName is the reserved folder name whose contents are flagged
// archived. The folder is still indexed; downstream consumers decide how to
// surface archived items.
const ArchivedDirName = "0-ARCHIVED"

// videoExts is the fixed set of recognized video container suffixes.
var videoExts = map[string]bool{
	".mkv": true, ".mp4": true, ".mov": true, ".m4v": true,
	".avi": true, ".wmv": true, ".ts": true, ".m2ts": true, ".webm": true,
}

// IsVideo reports whether a filename has a recognized video extension.
func IsVideo(name string) bool {
	return videoExts[strings.ToLower(filepath.Ext(name))]
}

// TrimVideoExt removes a recognized video extension from a filename.
func TrimVideoExt(name string) string {
	if IsVideo(name) {
		return strings.TrimSuffix(name, filepath.Ext(name))
	}
	return name
}

// Entry is a filesystem-discovered candidate. Entries are ephemeral and
// recreated on every scan.
type Entry struct {
	Path     string // absolute path of the video file
	Name     string // display name: folder name or file base without extension
	Category scene.Category
	Size     int64
	ModTime  time.Time
	Archived bool
}

// Scan walks a category root and returns its raw entries. An unreadable root
// is the only fatal condition; unreadable children are skipped with a log.
func Scan(root string, cat scene.Category, log *slog.Logger) ([]Entry, error) {
	dirents, err := os.ReadDir(root)
	if err != nil {
		return nil, fmt.Errorf("scan %s root: %w", cat, err)
	}

	var entries []Entry
	entries = append(entries, scanLevel(root, dirents, cat, false, log)...)

	// The reserved archive folder is indexed separately with the flag set.
	archRoot := filepath.Join(root, ArchivedDirName)
	if archents, err := os.ReadDir(archRoot); err == nil {
		entries = append(entries, scanLevel(archRoot, archents, cat, true, log)...)
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].Path < entries[j].Path })
	return entries, nil
}

func scanLevel(dir string, dirents []os.DirEntry, cat scene.Category, archived bool, log *slog.Logger) []Entry {
	var entries []Entry
	for _, de := range dirents {
		name := de.Name()
		if strings.HasPrefix(name, ".") || name == ArchivedDirName {
			continue
		}
		path := filepath.Join(dir, name)

		if de.IsDir() {
			if cat == scene.CategoryShows {
				entries = append(entries, scanShowFolder(path, cat, archived, log)...)
			} else if e, ok := entryFromFolder(path, name, cat, archived, log); ok {
				entries = append(entries, e)
			}
			continue
		}

		if !IsVideo(name) {
			continue
		}
		if e, ok := entryFromFile(path, TrimVideoExt(name), cat, archived, log); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

// entryFromFolder treats a folder as one item backed by the largest video at
// its top level, mirroring how movie rips are usually laid out.
func entryFromFolder(dir, name string, cat scene.Category, archived bool, log *slog.Logger) (Entry, bool) {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if log != nil {
			log.Warn("skipping unreadable folder", "path", dir, "error", err)
		}
		return Entry{}, false
	}

	var best Entry
	found := false
	for _, de := range dirents {
		if de.IsDir() || !IsVideo(de.Name()) {
			continue
		}
		info, err := de.Info()
		if err != nil {
			continue
		}
		if !found || info.Size() > best.Size {
			best = Entry{
				Path:     filepath.Join(dir, de.Name()),
				Name:     name,
				Category: cat,
				Size:     info.Size(),
				ModTime:  info.ModTime(),
				Archived: archived,
			}
			found = true
		}
	}
	return best, found
}

// scanShowFolder yields every video file in a show folder as its own entry;
// each file names its own episode.
func scanShowFolder(dir string, cat scene.Category, archived bool, log *slog.Logger) []Entry {
	dirents, err := os.ReadDir(dir)
	if err != nil {
		if log != nil {
			log.Warn("skipping unreadable folder", "path", dir, "error", err)
		}
		return nil
	}

	var entries []Entry
	for _, de := range dirents {
		name := de.Name()
		if de.IsDir() || strings.HasPrefix(name, ".") || !IsVideo(name) {
			continue
		}
		if e, ok := entryFromFile(filepath.Join(dir, name), TrimVideoExt(name), cat, archived, log); ok {
			entries = append(entries, e)
		}
	}
	return entries
}

func entryFromFile(path, name string, cat scene.Category, archived bool, log *slog.Logger) (Entry, bool) {
	info, err := os.Stat(path)
	if err != nil {
		if log != nil {
			log.Warn("skipping unreadable file", "path", path, "error", err)
		}
		return Entry{}, false
	}
	return Entry{
		Path:     path,
		Name:     name,
		Category: cat,
		Size:     info.Size(),
		ModTime:  info.ModTime(),
		Archived: archived,
	}, true
}
