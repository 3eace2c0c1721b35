package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastgate/weeknotes/internal/database"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := database.Open(filepath.Join(t.TempDir(), "test.db"), time.Second)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	_, err = database.Migrate(context.Background(), db, database.Known())
	require.NoError(t, err)
	return New(db)
}

func ts(day string) time.Time {
	t, err := time.Parse("2006-01-02T15:04:05Z", day)
	if err != nil {
		panic(err)
	}
	return t
}

func sampleItems() []Item {
	return []Item{
		{
			Source:     SourceMastodon,
			ExternalID: "111",
			Content:    "Shipped the import pipeline today.",
			URL:        "https://example.social/@me/111",
			Tags:       []string{"golang"},
			PostedAt:   ts("2026-08-18T09:30:00Z"),
		},
		{
			Source:     SourceLinkding,
			ExternalID: "7",
			Title:      "SQLite WAL mode",
			URL:        "https://sqlite.org/wal.html",
			Tags:       []string{"sqlite", "reference"},
			PostedAt:   ts("2026-08-19T14:00:00Z"),
		},
		{
			Source:     SourceMastodon,
			ExternalID: "112",
			Content:    "Week over, notes written.",
			URL:        "https://example.social/@me/112",
			PostedAt:   ts("2026-08-23T18:00:00Z"),
		},
	}
}

func TestSaveItemsInsertsAndDeduplicates(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	stats, err := s.SaveItems(ctx, sampleItems())
	require.NoError(t, err)
	assert.Equal(t, 3, stats.Inserted)
	assert.Zero(t, stats.Updated)

	// Re-import refreshes in place.
	again := sampleItems()
	again[0].Content = "Shipped the import pipeline today (edited)."
	stats, err = s.SaveItems(ctx, again)
	require.NoError(t, err)
	assert.Zero(t, stats.Inserted)
	assert.Equal(t, 3, stats.Updated)

	items, err := s.ListRange(ctx, ts("2026-08-18T00:00:00Z"), ts("2026-08-19T00:00:00Z"), "")
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Shipped the import pipeline today (edited).", items[0].Content)
}

func TestSaveItemsRejectsMissingIdentity(t *testing.T) {
	s := newTestStore(t)

	_, err := s.SaveItems(context.Background(), []Item{{Source: SourceMastodon}})
	require.Error(t, err)
}

func TestListRangeFiltersWindowAndSource(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SaveItems(ctx, sampleItems())
	require.NoError(t, err)

	// Monday through Sunday of the week holding the first two items.
	start, end := ts("2026-08-17T00:00:00Z"), ts("2026-08-24T00:00:00Z")

	all, err := s.ListRange(ctx, start, end, "")
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, "111", all[0].ExternalID, "oldest first")
	assert.Equal(t, []string{"golang"}, all[0].Tags)

	bookmarks, err := s.ListRange(ctx, start, end, SourceLinkding)
	require.NoError(t, err)
	require.Len(t, bookmarks, 1)
	assert.Equal(t, "SQLite WAL mode", bookmarks[0].Title)

	empty, err := s.ListRange(ctx, ts("2026-08-24T00:00:00Z"), ts("2026-08-31T00:00:00Z"), "")
	require.NoError(t, err)
	assert.Empty(t, empty)
}

func TestListRecent(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()
	_, err := s.SaveItems(ctx, sampleItems())
	require.NoError(t, err)

	items, err := s.ListRecent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "112", items[0].ExternalID, "newest first")
}

func TestSummarize(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	empty, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Zero(t, empty.TotalItems)
	assert.True(t, empty.Earliest.IsZero())

	_, err = s.SaveItems(ctx, sampleItems())
	require.NoError(t, err)
	require.NoError(t, s.RecordDraft(ctx, 2026, 34, "content/posts/2026/2026-08-23-w34.md", 3))

	summary, err := s.Summarize(ctx)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.TotalItems)
	assert.Equal(t, 2, summary.BySource[SourceMastodon])
	assert.Equal(t, 1, summary.BySource[SourceLinkding])
	assert.Equal(t, 1, summary.Drafts)
	assert.Equal(t, ts("2026-08-18T09:30:00Z"), summary.Earliest)
	assert.Equal(t, ts("2026-08-23T18:00:00Z"), summary.Latest)
}

func TestDraftRecords(t *testing.T) {
	s := newTestStore(t)
	ctx := context.Background()

	missing, err := s.FindDraft(ctx, 2026, 34)
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, s.RecordDraft(ctx, 2026, 34, "content/posts/2026/2026-08-23-w34.md", 3))
	require.NoError(t, s.RecordDraft(ctx, 2026, 35, "content/posts/2026/2026-08-30-w35.md", 1))

	// Same week replaces the record.
	require.NoError(t, s.RecordDraft(ctx, 2026, 34, "content/posts/2026/2026-08-23-w34.md", 5))

	found, err := s.FindDraft(ctx, 2026, 34)
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, 5, found.ItemCount)

	drafts, err := s.ListDrafts(ctx)
	require.NoError(t, err)
	require.Len(t, drafts, 2)
	assert.Equal(t, 35, drafts[0].Week, "newest week first")
}
