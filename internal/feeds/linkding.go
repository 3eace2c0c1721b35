package feeds

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/eastgate/weeknotes/internal/store"
)

// linkdingBookmark mirrors a bookmark object as returned by the Linkding
// REST API.
type linkdingBookmark struct {
	ID          int64     `json:"id"`
	URL         string    `json:"url"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	TagNames    []string  `json:"tag_names"`
	DateAdded   time.Time `json:"date_added"`
}

// ParseLinkding reads an exported set of Linkding bookmarks. Both the API's
// paginated shape ({"results": [...]}) and a bare bookmark array are
// accepted.
func ParseLinkding(r io.Reader) ([]store.Item, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("linkding export: %w", err)
	}

	var bookmarks []linkdingBookmark
	if bytes.HasPrefix(bytes.TrimLeft(data, " \t\r\n"), []byte("{")) {
		var page struct {
			Results []linkdingBookmark `json:"results"`
		}
		if err := json.Unmarshal(data, &page); err != nil {
			return nil, fmt.Errorf("linkding export: %w", err)
		}
		bookmarks = page.Results
	} else if err := json.Unmarshal(data, &bookmarks); err != nil {
		return nil, fmt.Errorf("linkding export: %w", err)
	}

	items := make([]store.Item, 0, len(bookmarks))
	for i, b := range bookmarks {
		if b.ID == 0 {
			return nil, fmt.Errorf("linkding export: bookmark %d has no id", i)
		}
		items = append(items, store.Item{
			Source:     store.SourceLinkding,
			ExternalID: fmt.Sprintf("%d", b.ID),
			Title:      b.Title,
			URL:        b.URL,
			Content:    b.Description,
			Tags:       b.TagNames,
			PostedAt:   b.DateAdded.UTC(),
		})
	}
	return items, nil
}
