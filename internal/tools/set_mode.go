package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// SetModeTool handles the wiki_set_context_mode MCP tool.
type SetModeTool struct {
	mgr *wikicontext.Manager
}

// NewSetModeTool creates a SetModeTool with the given context manager.
func NewSetModeTool(mgr *wikicontext.Manager) *SetModeTool {
	return &SetModeTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *SetModeTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_set_context_mode",
		mcp.WithDescription(
			"Set the active context granularity for this server process. "+
				"The mode is not persisted: a restarted server starts back at 'repository'.",
		),
		mcp.WithString("mode",
			mcp.Required(),
			mcp.Description("Context granularity to use for subsequent wiki_get_context calls."),
			mcp.Enum("repository", "workspace", "architectural"),
		),
	)
}

// Handle processes the wiki_set_context_mode tool call.
func (t *SetModeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := req.GetString("mode", "")
	if mode == "" {
		return mcp.NewToolResultError("'mode' is required"), nil
	}
	if err := t.mgr.SetMode(wikicontext.ContextLevel(mode)); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	return mcp.NewToolResultText(fmt.Sprintf(
		"Context mode set to **%s** for this session. Use `wiki_get_context` to fetch it.",
		mode,
	)), nil
}
