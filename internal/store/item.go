package store

import "time"

// Source identifies where an item was collected from.
type Source string

const (
	SourceMastodon Source = "mastodon"
	SourceLinkding Source = "linkding"
)

// Item is one piece of weekly activity: a Mastodon post or a Linkding
// bookmark. The (Source, ExternalID) pair is the identity used for
// deduplication across repeated imports.
type Item struct {
	ID         int64     `json:"id"`
	Source     Source    `json:"source"`
	ExternalID string    `json:"external_id"`
	Title      string    `json:"title,omitempty"`
	URL        string    `json:"url,omitempty"`
	Content    string    `json:"content,omitempty"`
	Tags       []string  `json:"tags,omitempty"`
	PostedAt   time.Time `json:"posted_at"`
	ImportedAt time.Time `json:"imported_at"`
}

// Draft records a generated weeknotes skeleton so repeated runs for the
// same week are detected.
type Draft struct {
	ID        int64     `json:"id"`
	Year      int       `json:"year"`
	Week      int       `json:"week"`
	Path      string    `json:"path"`
	ItemCount int       `json:"item_count"`
	CreatedAt time.Time `json:"created_at"`
}

// ImportStats summarizes one SaveItems call.
type ImportStats struct {
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Summary is the aggregate view behind the status command.
type Summary struct {
	TotalItems int            `json:"total_items"`
	BySource   map[Source]int `json:"by_source"`
	Drafts     int            `json:"drafts"`
	Earliest   time.Time      `json:"earliest,omitempty"`
	Latest     time.Time      `json:"latest,omitempty"`
}
