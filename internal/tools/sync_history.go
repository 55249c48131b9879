package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/journal"
)

// SyncHistoryTool handles the wiki_sync_history MCP tool.
// It is only registered when the journal subsystem is available.
type SyncHistoryTool struct {
	jnl *journal.Store
}

// NewSyncHistoryTool creates a SyncHistoryTool backed by the given journal.
func NewSyncHistoryTool(jnl *journal.Store) *SyncHistoryTool {
	return &SyncHistoryTool{jnl: jnl}
}

// Definition returns the MCP tool definition for registration.
func (t *SyncHistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_sync_history",
		mcp.WithDescription(
			"Show recent documentation-sync activity recorded in the local "+
				"journal: context initializations, file mappings, and "+
				"architectural links, newest first.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum events to return. Defaults to 20."),
		),
	)
}

// Handle processes the wiki_sync_history tool call.
func (t *SyncHistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.jnl == nil {
		return mcp.NewToolResultError("the sync journal is disabled"), nil
	}

	events, err := t.jnl.Recent(req.GetInt("limit", 20))
	if err != nil {
		return nil, fmt.Errorf("reading sync history: %w", err)
	}
	if len(events) == 0 {
		return mcp.NewToolResultText("# Sync History\n\nNo activity recorded yet."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Sync History (%d events)\n\n", len(events))
	for _, e := range events {
		fmt.Fprintf(&b, "- [%s] **%s**", e.CreatedAt, e.Kind)
		if e.Root != "" {
			fmt.Fprintf(&b, " `%s`", e.Root)
		}
		if e.Detail != "" {
			fmt.Fprintf(&b, ": %s", e.Detail)
		}
		b.WriteString("\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}
