// Package feeds parses locally exported activity data into store items.
// Exports are JSON files produced by the Mastodon and Linkding APIs; no
// network access happens here.
package feeds

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/eastgate/weeknotes/internal/store"
)

// mastodonStatus mirrors the fields of a Mastodon API status object that
// weeknotes care about.
type mastodonStatus struct {
	ID        string    `json:"id"`
	CreatedAt time.Time `json:"created_at"`
	Content   string    `json:"content"`
	URL       string    `json:"url"`
	Tags      []struct {
		Name string `json:"name"`
	} `json:"tags"`
}

// ParseMastodon reads an exported array of Mastodon statuses. HTML in the
// status content is flattened to plain text.
func ParseMastodon(r io.Reader) ([]store.Item, error) {
	var statuses []mastodonStatus
	if err := json.NewDecoder(r).Decode(&statuses); err != nil {
		return nil, fmt.Errorf("mastodon export: %w", err)
	}

	items := make([]store.Item, 0, len(statuses))
	for i, s := range statuses {
		if s.ID == "" {
			return nil, fmt.Errorf("mastodon export: status %d has no id", i)
		}
		tags := make([]string, 0, len(s.Tags))
		for _, t := range s.Tags {
			tags = append(tags, t.Name)
		}
		items = append(items, store.Item{
			Source:     store.SourceMastodon,
			ExternalID: s.ID,
			URL:        s.URL,
			Content:    stripHTML(s.Content),
			Tags:       tags,
			PostedAt:   s.CreatedAt.UTC(),
		})
	}
	return items, nil
}
