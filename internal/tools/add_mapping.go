package tools

import (
	"context"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// AddMappingTool handles the wiki_add_file_mapping MCP tool.
// It records that a source file is documented by a wiki page.
type AddMappingTool struct {
	mgr *wikicontext.Manager
	jnl *journal.Store
}

// NewAddMappingTool creates an AddMappingTool. The journal may be nil when
// that subsystem is disabled.
func NewAddMappingTool(mgr *wikicontext.Manager, jnl *journal.Store) *AddMappingTool {
	return &AddMappingTool{mgr: mgr, jnl: jnl}
}

// Definition returns the MCP tool definition for registration.
func (t *AddMappingTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_add_file_mapping",
		mcp.WithDescription(
			"Record that a file is documented by a Wiki.js page. Re-mapping an "+
				"already tracked file updates it in place. Requires an initialized "+
				"repository context.",
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the current directory. Stored relative to the repository root."),
		),
		mcp.WithNumber("page_id",
			mcp.Required(),
			mcp.Description("Wiki.js page id documenting this file."),
		),
		mcp.WithString("hash",
			mcp.Description("Content digest at sync time (lowercase hex SHA-256). Computed from the file when omitted."),
		),
	)
}

// Handle processes the wiki_add_file_mapping tool call.
func (t *AddMappingTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("'file_path' is required"), nil
	}
	pageID := req.GetInt("page_id", 0)
	if pageID <= 0 {
		return mcp.NewToolResultError("'page_id' must be a positive Wiki.js page id"), nil
	}

	rel, err := t.mgr.AddFileMapping(filePath, pageID, req.GetString("hash", ""))
	if err != nil {
		if errors.Is(err, wikicontext.ErrNoRepositoryContext) {
			return mcp.NewToolResultError(
				fmt.Sprintf("%v. Run wiki_init_repository first.", err),
			), nil
		}
		return nil, fmt.Errorf("adding file mapping: %w", err)
	}

	mapping := t.mgr.GetFileMapping(rel)
	hashNote := "recorded"
	if mapping != nil && mapping.Hash == "" {
		hashNote = "empty (file unreadable at sync time)"
	}

	recordEvent(t.jnl, journal.KindFileMapping, "", fmt.Sprintf("%s -> page %d", rel, pageID))

	return mcp.NewToolResultText(fmt.Sprintf(
		"# File Mapping Saved\n\n"+
			"**File:** `%s`\n"+
			"**Page id:** %d\n"+
			"**Digest:** %s\n\n"+
			"Use `wiki_has_file_changed` later to check whether a re-sync is needed.",
		rel, pageID, hashNote,
	)), nil
}
