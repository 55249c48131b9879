package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// HasChangedTool handles the wiki_has_file_changed MCP tool.
// It compares a file's current digest with the one recorded at last sync.
type HasChangedTool struct {
	mgr *wikicontext.Manager
}

// NewHasChangedTool creates a HasChangedTool with the given context manager.
func NewHasChangedTool(mgr *wikicontext.Manager) *HasChangedTool {
	return &HasChangedTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *HasChangedTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_has_file_changed",
		mcp.WithDescription(
			"Check whether a file changed since its last recorded sync. "+
				"Untracked files and files outside any initialized repository "+
				"context always report as changed.",
		),
		mcp.WithString("file_path",
			mcp.Required(),
			mcp.Description("File path, absolute or relative to the current directory."),
		),
	)
}

// Handle processes the wiki_has_file_changed tool call.
func (t *HasChangedTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	filePath := req.GetString("file_path", "")
	if filePath == "" {
		return mcp.NewToolResultError("'file_path' is required"), nil
	}

	changed := t.mgr.HasFileChanged(filePath)
	mapping := t.mgr.GetFileMapping(filePath)

	var b strings.Builder
	fmt.Fprintf(&b, "# Change Check\n\n**File:** `%s`\n**Changed:** %s\n", filePath, yesNo(changed))

	switch {
	case mapping == nil:
		b.WriteString("\nThe file is not tracked. Map it with `wiki_add_file_mapping` after syncing.\n")
	case changed:
		fmt.Fprintf(&b, "\nLast synced to page %d at %s. Re-sync the page, then update the mapping.\n",
			mapping.PageID, mapping.LastUpdated)
	default:
		fmt.Fprintf(&b, "\nUp to date with page %d (synced %s).\n", mapping.PageID, mapping.LastUpdated)
	}

	return mcp.NewToolResultText(b.String()), nil
}
