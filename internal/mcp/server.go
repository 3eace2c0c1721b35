// Package mcp provides a Model Context Protocol server for weeknotes.
// It exposes the journal as read-oriented MCP tools that any MCP-capable
// agent can use.
package mcp

import (
	"database/sql"

	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/eastgate/weeknotes/internal/config"
	"github.com/eastgate/weeknotes/internal/store"
)

// NewServer creates an MCP server with all weeknotes tools registered.
func NewServer(version string, db *sql.DB, st *store.Store, cfg *config.Config) *mcp.Server {
	server := mcp.NewServer(&mcp.Implementation{
		Name:    "weeknotes",
		Version: version,
	}, nil)
	registerTools(server, db, st, cfg)
	return server
}

// boolPtr returns a pointer to a bool value.
func boolPtr(b bool) *bool {
	return &b
}

// readOnlyAnnotations returns annotations for read-only tools.
func readOnlyAnnotations() *mcp.ToolAnnotations {
	return &mcp.ToolAnnotations{
		ReadOnlyHint:   true,
		IdempotentHint: true,
		OpenWorldHint:  boolPtr(false),
	}
}

// registerTools adds all weeknotes tools to the server. Every tool is
// read-only: imports and draft writes stay on the CLI.
func registerTools(server *mcp.Server, db *sql.DB, st *store.Store, cfg *config.Config) {
	mcp.AddTool(server, &mcp.Tool{
		Name:        "week_info",
		Description: "Compute weeknotes metadata for a date: ISO week number, Monday-Sunday window, post title, and target filename. Defaults to today.",
		Annotations: readOnlyAnnotations(),
	}, handleWeekInfo(cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "query_items",
		Description: "List imported activity items (Mastodon posts and Linkding bookmarks) for a week or date range, optionally filtered by source.",
		Annotations: readOnlyAnnotations(),
	}, handleQueryItems(st, cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "status",
		Description: "Show journal state: database path, schema version, pending migrations, and item/draft counts.",
		Annotations: readOnlyAnnotations(),
	}, handleStatus(db, st, cfg))

	mcp.AddTool(server, &mcp.Tool{
		Name:        "draft",
		Description: "Compose the weeknotes skeleton for a week from stored items and return it as markdown. Nothing is written to disk.",
		Annotations: readOnlyAnnotations(),
	}, handleDraft(st, cfg))
}
