package database

// Known returns the schema migrations this binary carries, in version order.
// New schema changes append a new version; existing entries never change
// once released, because the tracking table records the statement text.
func Known() []Migration {
	return []Migration{
		{
			Version: 1,
			Name:    "create items",
			SQL: `
CREATE TABLE items (
    id          INTEGER PRIMARY KEY AUTOINCREMENT,
    source      TEXT NOT NULL,
    external_id TEXT NOT NULL,
    title       TEXT NOT NULL DEFAULT '',
    url         TEXT NOT NULL DEFAULT '',
    content     TEXT NOT NULL DEFAULT '',
    tags        TEXT NOT NULL DEFAULT '[]',
    posted_at   TEXT NOT NULL,
    imported_at TEXT NOT NULL,
    UNIQUE(source, external_id)
)`,
		},
		{
			Version: 2,
			Name:    "index items posted_at",
			SQL:     `CREATE INDEX idx_items_posted ON items(posted_at)`,
		},
		{
			Version: 3,
			Name:    "create drafts",
			SQL: `
CREATE TABLE drafts (
    id         INTEGER PRIMARY KEY AUTOINCREMENT,
    year       INTEGER NOT NULL,
    week       INTEGER NOT NULL,
    path       TEXT NOT NULL,
    item_count INTEGER NOT NULL DEFAULT 0,
    created_at TEXT NOT NULL,
    UNIQUE(year, week)
)`,
		},
	}
}
