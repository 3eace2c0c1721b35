package draft

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/eastgate/weeknotes/internal/store"
	"github.com/eastgate/weeknotes/internal/week"
)

func testWeek(t *testing.T) week.Info {
	t.Helper()
	date, err := week.ParseDate("2026-08-26", time.UTC)
	require.NoError(t, err)
	return week.For(date, "Weeknotes", "content/posts")
}

func testItems() []store.Item {
	return []store.Item{
		{
			Source:     store.SourceMastodon,
			ExternalID: "111",
			Content:    "Shipped the import pipeline\ntoday.",
			URL:        "https://example.social/@me/111",
			Tags:       []string{"golang"},
		},
		{
			Source:     store.SourceLinkding,
			ExternalID: "7",
			Title:      "SQLite WAL mode",
			URL:        "https://sqlite.org/wal.html",
			Content:    "Write-ahead logging notes",
			Tags:       []string{"sqlite", "golang"},
		},
	}
}

func TestCompose(t *testing.T) {
	out, err := Compose(Input{Week: testWeek(t), Author: "jo", Items: testItems()})
	require.NoError(t, err)

	// Jekyll frontmatter fenced at the top.
	require.True(t, strings.HasPrefix(out, "---\n"))
	assert.Contains(t, out, "layout: post")
	assert.Contains(t, out, "title: 'Weeknotes: 2026 Week 35'")
	assert.Contains(t, out, "date: \"2026-08-30\"")
	assert.Contains(t, out, "author: jo")

	// Tags deduplicated across sources.
	assert.Equal(t, 1, strings.Count(out, "- golang"))
	assert.Contains(t, out, "- sqlite")

	// Week range from Monday to Sunday.
	assert.Contains(t, out, "Weeknotes for 2026-08-24 to 2026-08-30.")

	// Item sections, with multi-line post text flattened.
	assert.Contains(t, out, "- Shipped the import pipeline today. ([post](https://example.social/@me/111))")
	assert.Contains(t, out, "- [SQLite WAL mode](https://sqlite.org/wal.html): Write-ahead logging notes")

	// No placeholder left behind.
	assert.NotContains(t, out, "{{")
}

func TestComposeEmptyWeek(t *testing.T) {
	out, err := Compose(Input{Week: testWeek(t)})
	require.NoError(t, err)

	assert.Contains(t, out, "*No Mastodon activity found for this period.*")
	assert.Contains(t, out, "*No bookmarks found for this period.*")
	assert.NotContains(t, out, "author:")
}

func TestComposeSingleSource(t *testing.T) {
	items := testItems()[:1] // mastodon only
	out, err := Compose(Input{Week: testWeek(t), Items: items})
	require.NoError(t, err)

	assert.Contains(t, out, "([post](https://example.social/@me/111))")
	assert.Contains(t, out, "*No bookmarks found for this period.*")
}

func TestComposeBookmarkWithoutTitle(t *testing.T) {
	items := []store.Item{{
		Source:     store.SourceLinkding,
		ExternalID: "9",
		URL:        "https://go.dev/blog/",
	}}
	out, err := Compose(Input{Week: testWeek(t), Items: items})
	require.NoError(t, err)
	assert.Contains(t, out, "- [https://go.dev/blog/](https://go.dev/blog/)")
}
