package library

import (
	"fmt"
	"time"
)

const episodeColumns = "id, item_id, season, episode, title, path, size_bytes, mod_time, archived, first_seen, last_seen"

func scanEpisode(row interface{ Scan(...any) error }, e *Episode) error {
	return row.Scan(&e.ID, &e.ItemID, &e.Season, &e.Episode, &e.Title, &e.Path,
		&e.SizeBytes, &e.ModTime, &e.Archived, &e.FirstSeen, &e.LastSeen)
}

func upsertEpisode(q querier, e *Episode) error {
	now := time.Now()
	err := q.QueryRow(`
		INSERT INTO episodes (item_id, season, episode, title, path, size_bytes, mod_time, archived, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (item_id, season, episode) DO UPDATE SET
			title = excluded.title,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			mod_time = excluded.mod_time,
			archived = excluded.archived,
			last_seen = excluded.last_seen
		RETURNING id, first_seen`,
		e.ItemID, e.Season, e.Episode, e.Title, e.Path, e.SizeBytes, e.ModTime, e.Archived, now, now,
	).Scan(&e.ID, &e.FirstSeen)
	if err != nil {
		return fmt.Errorf("upsert episode S%02dE%02d: %w", e.Season, e.Episode, mapSQLiteError(err))
	}
	e.LastSeen = now
	return nil
}

// UpsertEpisode inserts an episode or refreshes the existing
// (item, season, episode) row. Sets ID, FirstSeen, and LastSeen.
func (s *Store) UpsertEpisode(e *Episode) error { return upsertEpisode(s.db, e) }

// UpsertEpisode inserts or refreshes an episode within a transaction.
func (t *Tx) UpsertEpisode(e *Episode) error { return upsertEpisode(t.tx, e) }

func listEpisodes(q querier, itemID int64) ([]*Episode, error) {
	rows, err := q.Query(
		"SELECT "+episodeColumns+" FROM episodes WHERE item_id = ? ORDER BY season, episode",
		itemID,
	)
	if err != nil {
		return nil, fmt.Errorf("list episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Episode
	for rows.Next() {
		e := &Episode{}
		if err := scanEpisode(rows, e); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		results = append(results, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return results, nil
}

// ListEpisodes returns a series' episodes in (season, episode) order.
func (s *Store) ListEpisodes(itemID int64) ([]*Episode, error) { return listEpisodes(s.db, itemID) }

// ListEpisodes returns a series' episodes within a transaction.
func (t *Tx) ListEpisodes(itemID int64) ([]*Episode, error) { return listEpisodes(t.tx, itemID) }

// NewEpisode is an episode row joined with its show's title, used for
// arrival listings.
type NewEpisode struct {
	Episode
	ShowTitle string
}

// NewestEpisodes returns up to limit non-archived episodes across all shows
// ordered by file modification time, newest first.
func (s *Store) NewestEpisodes(limit int) ([]*NewEpisode, error) {
	rows, err := s.db.Query(`
		SELECT e.id, e.item_id, e.season, e.episode, e.title, e.path, e.size_bytes,
		       e.mod_time, e.archived, e.first_seen, e.last_seen, i.title
		FROM episodes e
		JOIN items i ON e.item_id = i.id
		WHERE e.archived = 0
		ORDER BY e.mod_time DESC, e.path
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("newest episodes: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*NewEpisode
	for rows.Next() {
		ne := &NewEpisode{}
		if err := rows.Scan(&ne.ID, &ne.ItemID, &ne.Season, &ne.Episode.Episode, &ne.Title, &ne.Path,
			&ne.SizeBytes, &ne.ModTime, &ne.Archived, &ne.FirstSeen, &ne.LastSeen, &ne.ShowTitle); err != nil {
			return nil, fmt.Errorf("scan episode: %w", err)
		}
		results = append(results, ne)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episodes: %w", err)
	}
	return results, nil
}
