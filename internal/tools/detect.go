package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// DetectTool handles the wiki_detect_context MCP tool.
// It classifies the filesystem around the server's anchor directory.
type DetectTool struct {
	mgr *wikicontext.Manager
}

// NewDetectTool creates a DetectTool with the given context manager.
func NewDetectTool(mgr *wikicontext.Manager) *DetectTool {
	return &DetectTool{mgr: mgr}
}

// Definition returns the MCP tool definition for registration.
func (t *DetectTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_detect_context",
		mcp.WithDescription(
			"Detect the documentation context of the current directory: git root, "+
				"workspace root, monorepo layout, and nearby repositories. "+
				"Run this first to see which granularity fits.",
		),
	)
}

// Handle processes the wiki_detect_context tool call.
func (t *DetectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	info := t.mgr.DetectContext()

	var b strings.Builder
	b.WriteString("# Context Detection\n\n")
	fmt.Fprintf(&b, "**Current dir:** `%s`\n", info.CurrentDir)
	fmt.Fprintf(&b, "**Git root:** %s\n", orNone(info.GitRoot))
	fmt.Fprintf(&b, "**Workspace root:** %s\n", orNone(info.WorkspaceRoot))
	fmt.Fprintf(&b, "**Monorepo:** %s\n", yesNo(info.IsMonorepo))
	fmt.Fprintf(&b, "**Repository context:** %s\n", initializedLabel(info.HasRepoContext))
	fmt.Fprintf(&b, "**Workspace context:** %s\n", initializedLabel(info.HasWorkspaceContext))

	if len(info.DetectedRepos) > 0 {
		fmt.Fprintf(&b, "\n## Detected Repositories (%d)\n\n", len(info.DetectedRepos))
		for _, repo := range info.DetectedRepos {
			fmt.Fprintf(&b, "- `%s`\n", repo)
		}
	}

	fmt.Fprintf(&b, "\n## Suggested Level\n\n**%s**\n\n", info.SuggestedLevel)
	switch info.SuggestedLevel {
	case wikicontext.LevelWorkspace:
		b.WriteString("Multiple repositories share this workspace. Use `wiki_init_workspace` if no workspace context exists yet.\n")
	default:
		b.WriteString("Use `wiki_init_repository` if no repository context exists yet.\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func initializedLabel(has bool) string {
	if has {
		return "initialized"
	}
	return "not initialized"
}
