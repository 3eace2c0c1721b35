// Package main provides the entry point for the weeknotes CLI.
package main

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/spf13/cobra"

	weeknotesmcp "github.com/eastgate/weeknotes/internal/mcp"
)

// newServeCmd creates the serve command for running as an MCP server.
func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run as MCP server (stdio transport)",
		Long: `Run weeknotes as a Model Context Protocol (MCP) server over stdio.

This exposes the journal as read-only MCP tools that any MCP-capable
agent environment can use (Claude Code, Cursor, Windsurf, Gemini CLI, etc).

Configure in your agent's MCP settings:
  {
    "mcpServers": {
      "weeknotes": {
        "command": "weeknotes",
        "args": ["serve"]
      }
    }
  }

Available tools: week_info, query_items, status, draft`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			sess, err := openSession(cmd)
			if err != nil {
				newPrinter(cmd).Error(err)
				return err
			}
			defer sess.Close()

			server := weeknotesmcp.NewServer(buildVersion(), sess.db, sess.store, sess.cfg)
			return server.Run(cmd.Context(), &mcp.StdioTransport{})
		},
	}
}
