package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// GetContextTool handles the wiki_get_context MCP tool.
// It projects persisted state into a compact, token-budgeted summary.
type GetContextTool struct {
	mgr *wikicontext.Manager
}

// NewGetContextTool creates a GetContextTool with the given context manager.
func NewGetContextTool(mgr *wikicontext.Manager) *GetContextTool {
	return &GetContextTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *GetContextTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_get_context",
		mcp.WithDescription(
			"Get the current documentation context. Without arguments the "+
				"active mode is used. Pass 'mode' to project one granularity, or "+
				"'request_text' to infer and adopt the granularity from the "+
				"wording of the user's request.",
		),
		mcp.WithString("mode",
			mcp.Description("Granularity to project for this call. Overrides request_text inference."),
			mcp.Enum("repository", "workspace", "architectural"),
		),
		mcp.WithString("request_text",
			mcp.Description("The user's request wording. Architectural keywords beat workspace keywords; neutral text falls back to filesystem detection."),
		),
	)
}

// Handle processes the wiki_get_context tool call.
func (t *GetContextTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	mode := req.GetString("mode", "")
	requestText := req.GetString("request_text", "")

	var level wikicontext.ContextLevel
	switch {
	case mode != "":
		level = wikicontext.ContextLevel(mode)
		if err := wikicontext.ValidateLevel(level); err != nil {
			return mcp.NewToolResultError(err.Error()), nil
		}
	case requestText != "":
		level = t.mgr.AutoDetectMode(requestText)
	default:
		level = t.mgr.Mode()
	}

	view := t.mgr.ContextForClaude(level)
	response := renderContextView(view)
	if requestText != "" && mode == "" {
		response += fmt.Sprintf("\n*Granularity %q chosen from the request wording.*\n", level)
	}

	return mcp.NewToolResultText(response), nil
}
