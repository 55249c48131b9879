package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// InitRepositoryTool handles the wiki_init_repository MCP tool.
// It writes a fresh .wikijs-state.json at the repository root.
type InitRepositoryTool struct {
	mgr *wikicontext.Manager
	jnl *journal.Store
}

// NewInitRepositoryTool creates an InitRepositoryTool. The journal may be
// nil when that subsystem is disabled.
func NewInitRepositoryTool(mgr *wikicontext.Manager, jnl *journal.Store) *InitRepositoryTool {
	return &InitRepositoryTool{mgr: mgr, jnl: jnl}
}

// Definition returns the MCP tool definition for registration.
func (t *InitRepositoryTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_init_repository",
		mcp.WithDescription(
			"Initialize repository-level documentation context. Creates "+
				".wikijs-state.json at the repository root. Re-running replaces "+
				"the existing context, including all tracked file mappings.",
		),
		mcp.WithString("root",
			mcp.Description("Repository root directory. Defaults to the detected git root, then the current directory."),
		),
		mcp.WithString("wiki_space",
			mcp.Description("Wiki.js namespace for this repository's pages. Defaults to the repository directory name."),
		),
		mcp.WithString("parent_workspace",
			mcp.Description("Name of the workspace this repository belongs to, if any."),
		),
	)
}

// Handle processes the wiki_init_repository tool call.
func (t *InitRepositoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	rc, err := t.mgr.InitRepository(wikicontext.InitRepositoryOptions{
		Root:            req.GetString("root", ""),
		WikiSpace:       req.GetString("wiki_space", ""),
		ParentWorkspace: req.GetString("parent_workspace", ""),
	})
	if err != nil {
		return nil, fmt.Errorf("initializing repository context: %w", err)
	}

	recordEvent(t.jnl, journal.KindRepoInit, rc.RepoRoot, fmt.Sprintf("wiki space %q", rc.WikiSpace))

	response := fmt.Sprintf(
		"# Repository Context Initialized\n\n"+
			"**Repository:** %s\n"+
			"**Root:** `%s`\n"+
			"**Wiki space:** %s\n\n"+
			"State file: `%s`\n\n"+
			"## Next Step\n\n"+
			"Track documented files with `wiki_add_file_mapping` as pages are synced.",
		rc.RepoName, rc.RepoRoot, rc.WikiSpace, wikicontext.RepoStatePath(rc.RepoRoot),
	)
	if rc.ParentWorkspace != "" {
		response += fmt.Sprintf("\n\nPart of workspace: **%s**", rc.ParentWorkspace)
	}

	return mcp.NewToolResultText(response), nil
}
