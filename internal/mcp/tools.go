package mcp

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/database"
	"github.com/eastgate/weeknotes/internal/draft"
	"github.com/eastgate/weeknotes/internal/store"
	"github.com/eastgate/weeknotes/internal/week"
)

// --- Shared types ---

// ItemSummary is a simplified item for output.
type ItemSummary struct {
	Source   string   `json:"source"             jsonschema:"item source (mastodon or linkding)"`
	Title    string   `json:"title,omitempty"    jsonschema:"bookmark title"`
	URL      string   `json:"url,omitempty"      jsonschema:"link to the original"`
	Content  string   `json:"content,omitempty"  jsonschema:"post text or bookmark description"`
	Tags     []string `json:"tags,omitempty"     jsonschema:"item tags"`
	PostedAt string   `json:"posted_at"          jsonschema:"when the item was posted"`
}

// weekFor resolves a date string (or today) into week info using the
// configured timezone and draft settings.
func weekFor(cfg *config.Config, date string) (week.Info, error) {
	loc, err := week.LoadLocation(cfg.Week.Timezone)
	if err != nil {
		return week.Info{}, err
	}

	day := time.Now().In(loc)
	if date != "" {
		if day, err = week.ParseDate(date, loc); err != nil {
			return week.Info{}, err
		}
	}
	return week.For(day, cfg.Draft.TitlePrefix, cfg.Draft.OutputDir), nil
}

func toItemSummaries(items []store.Item) []ItemSummary {
	summaries := make([]ItemSummary, 0, len(items))
	for _, item := range items {
		summaries = append(summaries, ItemSummary{
			Source:   string(item.Source),
			Title:    item.Title,
			URL:      item.URL,
			Content:  item.Content,
			Tags:     item.Tags,
			PostedAt: item.PostedAt.Format(time.RFC3339),
		})
	}
	return summaries
}

// --- week_info tool ---

// WeekInfoInput is the input for the week_info tool.
type WeekInfoInput struct {
	Date string `json:"date,omitempty" jsonschema:"date in YYYY-MM-DD format (default today)"`
}

// WeekInfoOutput is the output for the week_info tool.
type WeekInfoOutput struct {
	Date     string `json:"date"     jsonschema:"the anchoring date"`
	Year     int    `json:"year"     jsonschema:"calendar year of the date"`
	Week     int    `json:"week"     jsonschema:"ISO week number"`
	Start    string `json:"start"    jsonschema:"Monday of the week"`
	End      string `json:"end"      jsonschema:"Sunday of the week"`
	Title    string `json:"title"    jsonschema:"post title"`
	Filename string `json:"filename" jsonschema:"target post filename"`
}

func handleWeekInfo(cfg *config.Config) mcp.ToolHandlerFor[WeekInfoInput, WeekInfoOutput] {
	return func(_ context.Context, _ *mcp.CallToolRequest, input WeekInfoInput) (*mcp.CallToolResult, WeekInfoOutput, error) {
		info, err := weekFor(cfg, input.Date)
		if err != nil {
			return nil, WeekInfoOutput{}, err
		}

		out := WeekInfoOutput{
			Date:     info.Date.Format(week.DateLayout),
			Year:     info.Year,
			Week:     info.Week,
			Start:    info.Start.Format(week.DateLayout),
			End:      info.End.AddDate(0, 0, -1).Format(week.DateLayout),
			Title:    info.Title,
			Filename: info.Filename,
		}
		return nil, out, nil
	}
}

// --- query_items tool ---

// QueryItemsInput is the input for the query_items tool.
type QueryItemsInput struct {
	Date   string `json:"date,omitempty"   jsonschema:"any date inside the wanted week, YYYY-MM-DD (default today)"`
	Source string `json:"source,omitempty" jsonschema:"filter by source: mastodon or linkding"`
}

// QueryItemsOutput is the output for the query_items tool.
type QueryItemsOutput struct {
	Week  int           `json:"week"            jsonschema:"ISO week number of the window"`
	Start string        `json:"start"           jsonschema:"window start (inclusive)"`
	End   string        `json:"end"             jsonschema:"window end (exclusive)"`
	Count int           `json:"count"           jsonschema:"number of items found"`
	Items []ItemSummary `json:"items,omitempty" jsonschema:"matching items, oldest first"`
}

func handleQueryItems(st *store.Store, cfg *config.Config) mcp.ToolHandlerFor[QueryItemsInput, QueryItemsOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input QueryItemsInput) (*mcp.CallToolResult, QueryItemsOutput, error) {
		if input.Source != "" && input.Source != string(store.SourceMastodon) && input.Source != string(store.SourceLinkding) {
			return nil, QueryItemsOutput{}, fmt.Errorf("unknown source %q", input.Source)
		}

		info, err := weekFor(cfg, input.Date)
		if err != nil {
			return nil, QueryItemsOutput{}, err
		}

		items, err := st.ListRange(ctx, info.Start, info.End, store.Source(input.Source))
		if err != nil {
			return nil, QueryItemsOutput{}, fmt.Errorf("listing items: %w", err)
		}

		out := QueryItemsOutput{
			Week:  info.Week,
			Start: info.Start.Format(week.DateLayout),
			End:   info.End.Format(week.DateLayout),
			Count: len(items),
			Items: toItemSummaries(items),
		}
		return nil, out, nil
	}
}

// --- status tool ---

// StatusInput is the input for the status tool (no parameters needed).
type StatusInput struct{}

// StatusOutput is the output for the status tool.
type StatusOutput struct {
	DatabasePath      string         `json:"database_path"      jsonschema:"path to the SQLite database"`
	SchemaVersion     int64          `json:"schema_version"     jsonschema:"current schema version"`
	PendingMigrations int            `json:"pending_migrations" jsonschema:"number of unapplied migrations"`
	TotalItems        int            `json:"total_items"        jsonschema:"total imported items"`
	BySource          map[string]int `json:"by_source"          jsonschema:"item counts per source"`
	Drafts            int            `json:"drafts"             jsonschema:"number of recorded drafts"`
}

func handleStatus(db *sql.DB, st *store.Store, cfg *config.Config) mcp.ToolHandlerFor[StatusInput, StatusOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ StatusInput) (*mcp.CallToolResult, StatusOutput, error) {
		schema, err := database.Inspect(ctx, db, database.Known())
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("inspecting schema: %w", err)
		}

		summary, err := st.Summarize(ctx)
		if err != nil {
			return nil, StatusOutput{}, fmt.Errorf("summarizing store: %w", err)
		}

		bySource := make(map[string]int, len(summary.BySource))
		for source, count := range summary.BySource {
			bySource[string(source)] = count
		}

		out := StatusOutput{
			DatabasePath:      cfg.Database.Path,
			SchemaVersion:     schema.Current,
			PendingMigrations: len(schema.Pending),
			TotalItems:        summary.TotalItems,
			BySource:          bySource,
			Drafts:            summary.Drafts,
		}
		return nil, out, nil
	}
}

// --- draft tool ---

// DraftInput is the input for the draft tool.
type DraftInput struct {
	Date string `json:"date,omitempty" jsonschema:"any date inside the wanted week, YYYY-MM-DD (default today)"`
}

// DraftOutput is the output for the draft tool.
type DraftOutput struct {
	Title     string `json:"title"     jsonschema:"post title"`
	Filename  string `json:"filename"  jsonschema:"suggested post filename"`
	ItemCount int    `json:"item_count" jsonschema:"number of items in the skeleton"`
	Content   string `json:"content"   jsonschema:"the composed markdown skeleton"`
}

func handleDraft(st *store.Store, cfg *config.Config) mcp.ToolHandlerFor[DraftInput, DraftOutput] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input DraftInput) (*mcp.CallToolResult, DraftOutput, error) {
		info, err := weekFor(cfg, input.Date)
		if err != nil {
			return nil, DraftOutput{}, err
		}

		items, err := st.ListRange(ctx, info.Start, info.End, "")
		if err != nil {
			return nil, DraftOutput{}, fmt.Errorf("listing items: %w", err)
		}

		content, err := draft.Compose(draft.Input{
			Week:   info,
			Author: cfg.Draft.Author,
			Items:  items,
		})
		if err != nil {
			return nil, DraftOutput{}, fmt.Errorf("composing draft: %w", err)
		}

		out := DraftOutput{
			Title:     info.Title,
			Filename:  info.Filename,
			ItemCount: len(items),
			Content:   content,
		}
		return nil, out, nil
	}
}
