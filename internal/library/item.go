package library

import (
	"database/sql"
	"fmt"
	"strings"
	"time"
)

// mapSQLiteError converts SQLite errors to custom error types.
func mapSQLiteError(err error) error {
	if err == nil {
		return nil
	}
	if err == sql.ErrNoRows {
		return ErrNotFound
	}
	// modernc.org/sqlite wraps errors; check error message for constraint violations
	errStr := err.Error()
	if strings.Contains(errStr, "UNIQUE constraint failed") ||
		strings.Contains(errStr, "PRIMARY KEY constraint failed") {
		return ErrDuplicate
	}
	if strings.Contains(errStr, "FOREIGN KEY constraint failed") ||
		strings.Contains(errStr, "CHECK constraint failed") {
		return ErrConstraint
	}
	return err
}

const itemColumns = "id, category, key, title, year, tmdb_id, poster_path, path, size_bytes, mod_time, archived, first_seen, last_seen"

func scanItem(row interface{ Scan(...any) error }, it *Item) error {
	return row.Scan(&it.ID, &it.Category, &it.Key, &it.Title, &it.Year, &it.TMDBID,
		&it.PosterPath, &it.Path, &it.SizeBytes, &it.ModTime, &it.Archived, &it.FirstSeen, &it.LastSeen)
}

func upsertItem(q querier, it *Item) error {
	now := time.Now()
	err := q.QueryRow(`
		INSERT INTO items (category, key, title, year, tmdb_id, poster_path, path, size_bytes, mod_time, archived, first_seen, last_seen)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT (category, key) DO UPDATE SET
			title = excluded.title,
			year = excluded.year,
			tmdb_id = excluded.tmdb_id,
			poster_path = excluded.poster_path,
			path = excluded.path,
			size_bytes = excluded.size_bytes,
			mod_time = excluded.mod_time,
			archived = excluded.archived,
			last_seen = excluded.last_seen
		RETURNING id, first_seen`,
		it.Category, it.Key, it.Title, it.Year, it.TMDBID, it.PosterPath,
		it.Path, it.SizeBytes, it.ModTime, it.Archived, now, now,
	).Scan(&it.ID, &it.FirstSeen)
	if err != nil {
		return fmt.Errorf("upsert item %q: %w", it.Key, mapSQLiteError(err))
	}
	it.LastSeen = now
	return nil
}

// UpsertItem inserts an item or refreshes the existing (category, key) row.
// Sets ID, FirstSeen, and LastSeen on the struct; FirstSeen keeps the value
// from the row's first insert.
func (s *Store) UpsertItem(it *Item) error { return upsertItem(s.db, it) }

// UpsertItem inserts or refreshes an item within a transaction.
func (t *Tx) UpsertItem(it *Item) error { return upsertItem(t.tx, it) }

func getItem(q querier, id int64) (*Item, error) {
	it := &Item{}
	err := scanItem(q.QueryRow("SELECT "+itemColumns+" FROM items WHERE id = ?", id), it)
	if err != nil {
		return nil, fmt.Errorf("get item %d: %w", id, mapSQLiteError(err))
	}
	return it, nil
}

// GetItem retrieves an item by ID. Returns ErrNotFound if it does not exist.
func (s *Store) GetItem(id int64) (*Item, error) { return getItem(s.db, id) }

// GetItem retrieves an item by ID within a transaction.
func (t *Tx) GetItem(id int64) (*Item, error) { return getItem(t.tx, id) }

func listItems(q querier, f ItemFilter) ([]*Item, int, error) {
	var conditions []string
	var args []any

	if f.Category != nil {
		conditions = append(conditions, "category = ?")
		args = append(args, *f.Category)
	}
	if f.Key != nil {
		conditions = append(conditions, "key = ?")
		args = append(args, *f.Key)
	}
	if f.Archived != nil {
		conditions = append(conditions, "archived = ?")
		args = append(args, *f.Archived)
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := q.QueryRow("SELECT COUNT(*) FROM items "+whereClause, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("count items: %w", err)
	}

	query := "SELECT " + itemColumns + " FROM items " + whereClause + " ORDER BY title, year"
	if f.Limit > 0 {
		query += fmt.Sprintf(" LIMIT %d OFFSET %d", f.Limit, f.Offset)
	}

	rows, err := q.Query(query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it := &Item{}
		if err := scanItem(rows, it); err != nil {
			return nil, 0, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate items: %w", err)
	}

	return results, total, nil
}

// ListItems returns items matching the filter with pagination.
// Returns (results, totalCount, error).
func (s *Store) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(s.db, f) }

// ListItems returns items matching the filter within a transaction.
func (t *Tx) ListItems(f ItemFilter) ([]*Item, int, error) { return listItems(t.tx, f) }

// NewestItems returns up to limit non-archived items in one category ordered
// by file modification time, newest first.
func (s *Store) NewestItems(cat string, limit int) ([]*Item, error) {
	rows, err := s.db.Query(
		"SELECT "+itemColumns+" FROM items WHERE category = ? AND archived = 0 ORDER BY mod_time DESC, path LIMIT ?",
		cat, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("newest items: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []*Item
	for rows.Next() {
		it := &Item{}
		if err := scanItem(rows, it); err != nil {
			return nil, fmt.Errorf("scan item: %w", err)
		}
		results = append(results, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return results, nil
}

func pruneVanished(q querier, cat string, before time.Time) (int64, error) {
	result, err := q.Exec("DELETE FROM items WHERE category = ? AND last_seen < ?", cat, before)
	if err != nil {
		return 0, fmt.Errorf("prune items: %w", mapSQLiteError(err))
	}
	n, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("rows affected: %w", err)
	}
	return n, nil
}

// PruneVanished deletes items in a category not seen since the given time,
// reconciling the database with files removed from disk. Episode rows cascade.
func (s *Store) PruneVanished(cat string, before time.Time) (int64, error) {
	return pruneVanished(s.db, cat, before)
}

// PruneVanished deletes stale items within a transaction.
func (t *Tx) PruneVanished(cat string, before time.Time) (int64, error) {
	return pruneVanished(t.tx, cat, before)
}

// CategoryStats reports item counts, episode counts, and total bytes per
// category. Categories with no rows are absent from the result.
func (s *Store) CategoryStats() ([]CategoryStat, error) {
	rows, err := s.db.Query(`
		SELECT category, COUNT(*), COALESCE(SUM(archived), 0), COALESCE(SUM(size_bytes), 0)
		FROM items GROUP BY category ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("category stats: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var stats []CategoryStat
	index := map[string]int{}
	for rows.Next() {
		var st CategoryStat
		if err := rows.Scan(&st.Category, &st.Items, &st.Archived, &st.TotalBytes); err != nil {
			return nil, fmt.Errorf("scan stats: %w", err)
		}
		index[string(st.Category)] = len(stats)
		stats = append(stats, st)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate stats: %w", err)
	}

	// Episodes live in their own table; fold their counts and sizes in.
	eprows, err := s.db.Query(`
		SELECT i.category, COUNT(*), COALESCE(SUM(e.archived), 0), COALESCE(SUM(e.size_bytes), 0)
		FROM episodes e JOIN items i ON e.item_id = i.id
		GROUP BY i.category`)
	if err != nil {
		return nil, fmt.Errorf("episode stats: %w", err)
	}
	defer func() { _ = eprows.Close() }()

	for eprows.Next() {
		var cat string
		var count, archived int
		var bytes int64
		if err := eprows.Scan(&cat, &count, &archived, &bytes); err != nil {
			return nil, fmt.Errorf("scan episode stats: %w", err)
		}
		if i, ok := index[cat]; ok {
			stats[i].Episodes = count
			stats[i].Archived += archived
			stats[i].TotalBytes += bytes
		}
	}
	if err := eprows.Err(); err != nil {
		return nil, fmt.Errorf("iterate episode stats: %w", err)
	}
	return stats, nil
}
