// Package store persists imported activity items and generated drafts in
// the SQLite database.
package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// Store wraps the SQLite connection with the queries the commands need.
type Store struct {
	db *sql.DB
}

// New returns a Store over an already-migrated database.
func New(db *sql.DB) *Store {
	return &Store{db: db}
}

// SaveItems upserts items keyed by (source, external_id). Re-importing the
// same export is safe: existing rows are refreshed in place and counted as
// updates rather than inserts.
func (s *Store) SaveItems(ctx context.Context, items []Item) (ImportStats, error) {
	var stats ImportStats

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return stats, fmt.Errorf("begin import: %w", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		if item.Source == "" || item.ExternalID == "" {
			return stats, errors.New("item missing source or external id")
		}

		tags, err := json.Marshal(item.Tags)
		if err != nil {
			return stats, fmt.Errorf("encode tags for %s/%s: %w", item.Source, item.ExternalID, err)
		}
		if item.Tags == nil {
			tags = []byte("[]")
		}

		var exists bool
		err = tx.QueryRowContext(ctx,
			`SELECT EXISTS (SELECT 1 FROM items WHERE source = ? AND external_id = ?)`,
			item.Source, item.ExternalID).Scan(&exists)
		if err != nil {
			return stats, fmt.Errorf("check %s/%s: %w", item.Source, item.ExternalID, err)
		}

		importedAt := item.ImportedAt
		if importedAt.IsZero() {
			importedAt = time.Now().UTC()
		}

		_, err = tx.ExecContext(ctx, `
			INSERT INTO items (source, external_id, title, url, content, tags, posted_at, imported_at)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			ON CONFLICT (source, external_id) DO UPDATE SET
				title = excluded.title,
				url = excluded.url,
				content = excluded.content,
				tags = excluded.tags,
				posted_at = excluded.posted_at,
				imported_at = excluded.imported_at`,
			item.Source, item.ExternalID, item.Title, item.URL, item.Content,
			string(tags), formatTime(item.PostedAt), formatTime(importedAt))
		if err != nil {
			return stats, fmt.Errorf("save %s/%s: %w", item.Source, item.ExternalID, err)
		}

		if exists {
			stats.Updated++
		} else {
			stats.Inserted++
		}
	}

	if err := tx.Commit(); err != nil {
		return stats, fmt.Errorf("commit import: %w", err)
	}
	return stats, nil
}

// ListRange returns items posted within [start, end), oldest first.
// An empty source matches everything.
func (s *Store) ListRange(ctx context.Context, start, end time.Time, source Source) ([]Item, error) {
	query := `
		SELECT id, source, external_id, title, url, content, tags, posted_at, imported_at
		FROM items
		WHERE posted_at >= ? AND posted_at < ?`
	args := []any{formatTime(start), formatTime(end)}
	if source != "" {
		query += ` AND source = ?`
		args = append(args, source)
	}
	query += ` ORDER BY posted_at`

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// ListRecent returns the newest items across all sources, newest first.
func (s *Store) ListRecent(ctx context.Context, limit int) ([]Item, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, source, external_id, title, url, content, tags, posted_at, imported_at
		FROM items
		ORDER BY posted_at DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var items []Item
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

// Summarize aggregates item and draft counts for the status command.
func (s *Store) Summarize(ctx context.Context) (*Summary, error) {
	summary := &Summary{BySource: make(map[Source]int)}

	rows, err := s.db.QueryContext(ctx,
		`SELECT source, COUNT(*) FROM items GROUP BY source`)
	if err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var source Source
		var count int
		if err := rows.Scan(&source, &count); err != nil {
			return nil, fmt.Errorf("count items: %w", err)
		}
		summary.BySource[source] = count
		summary.TotalItems += count
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("count items: %w", err)
	}

	var earliest, latest sql.NullString
	err = s.db.QueryRowContext(ctx,
		`SELECT MIN(posted_at), MAX(posted_at) FROM items`).Scan(&earliest, &latest)
	if err != nil {
		return nil, fmt.Errorf("item range: %w", err)
	}
	if earliest.Valid {
		if summary.Earliest, err = parseTime(earliest.String); err != nil {
			return nil, err
		}
	}
	if latest.Valid {
		if summary.Latest, err = parseTime(latest.String); err != nil {
			return nil, err
		}
	}

	if err := s.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM drafts`).Scan(&summary.Drafts); err != nil {
		return nil, fmt.Errorf("count drafts: %w", err)
	}
	return summary, nil
}

// RecordDraft remembers that a skeleton was written for the given week,
// replacing any earlier record for the same week.
func (s *Store) RecordDraft(ctx context.Context, year, week int, path string, itemCount int) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO drafts (year, week, path, item_count, created_at)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT (year, week) DO UPDATE SET
			path = excluded.path,
			item_count = excluded.item_count,
			created_at = excluded.created_at`,
		year, week, path, itemCount, formatTime(time.Now().UTC()))
	if err != nil {
		return fmt.Errorf("record draft %d-W%02d: %w", year, week, err)
	}
	return nil
}

// FindDraft returns the recorded draft for a week, or nil if none exists.
func (s *Store) FindDraft(ctx context.Context, year, week int) (*Draft, error) {
	var d Draft
	var created string
	err := s.db.QueryRowContext(ctx, `
		SELECT id, year, week, path, item_count, created_at
		FROM drafts WHERE year = ? AND week = ?`, year, week).
		Scan(&d.ID, &d.Year, &d.Week, &d.Path, &d.ItemCount, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("find draft %d-W%02d: %w", year, week, err)
	}
	if d.CreatedAt, err = parseTime(created); err != nil {
		return nil, err
	}
	return &d, nil
}

// ListDrafts returns all recorded drafts, newest week first.
func (s *Store) ListDrafts(ctx context.Context) ([]Draft, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, year, week, path, item_count, created_at
		FROM drafts ORDER BY year DESC, week DESC`)
	if err != nil {
		return nil, fmt.Errorf("list drafts: %w", err)
	}
	defer rows.Close()

	var drafts []Draft
	for rows.Next() {
		var d Draft
		var created string
		if err := rows.Scan(&d.ID, &d.Year, &d.Week, &d.Path, &d.ItemCount, &created); err != nil {
			return nil, fmt.Errorf("list drafts: %w", err)
		}
		if d.CreatedAt, err = parseTime(created); err != nil {
			return nil, err
		}
		drafts = append(drafts, d)
	}
	return drafts, rows.Err()
}

func scanItem(rows *sql.Rows) (Item, error) {
	var item Item
	var tags, posted, imported string
	err := rows.Scan(&item.ID, &item.Source, &item.ExternalID, &item.Title,
		&item.URL, &item.Content, &tags, &posted, &imported)
	if err != nil {
		return item, fmt.Errorf("scan item: %w", err)
	}
	if err := json.Unmarshal([]byte(tags), &item.Tags); err != nil {
		return item, fmt.Errorf("decode tags for item %d: %w", item.ID, err)
	}
	if item.PostedAt, err = parseTime(posted); err != nil {
		return item, err
	}
	if item.ImportedAt, err = parseTime(imported); err != nil {
		return item, err
	}
	return item, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func parseTime(s string) (time.Time, error) {
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("stored timestamp %q: %w", s, err)
	}
	return t, nil
}
