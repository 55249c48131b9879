package tools

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// InitWorkspaceTool handles the wiki_init_workspace MCP tool.
// It writes a fresh .wikijs-workspace.json at the workspace root.
type InitWorkspaceTool struct {
	mgr *wikicontext.Manager
	jnl *journal.Store
}

// NewInitWorkspaceTool creates an InitWorkspaceTool. The journal may be nil
// when that subsystem is disabled.
func NewInitWorkspaceTool(mgr *wikicontext.Manager, jnl *journal.Store) *InitWorkspaceTool {
	return &InitWorkspaceTool{mgr: mgr, jnl: jnl}
}

// Definition returns the MCP tool definition for registration.
func (t *InitWorkspaceTool) Definition() mcp.Tool {
	return mcp.NewTool("wiki_init_workspace",
		mcp.WithDescription(
			"Initialize workspace-level documentation context for coordinating "+
				"several repositories. Creates .wikijs-workspace.json at the "+
				"workspace root. When no repository list is given, nearby git "+
				"repositories are enumerated automatically.",
		),
		mcp.WithString("root",
			mcp.Description("Workspace root directory. Defaults to the detected workspace root, then the current directory."),
		),
		mcp.WithString("name",
			mcp.Description("Workspace name. Defaults to the root directory name."),
		),
		mcp.WithString("repositories",
			mcp.Description(`Explicit repository list as a JSON array, e.g. [{"name":"api","path":"/ws/api","wiki_space":"api-docs"}]. Omit to auto-detect.`),
		),
	)
}

// Handle processes the wiki_init_workspace tool call.
func (t *InitWorkspaceTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var specs []wikicontext.WorkspaceRepoSpec
	if raw := req.GetString("repositories", ""); raw != "" {
		var parsed []struct {
			Name      string `json:"name"`
			Path      string `json:"path"`
			WikiSpace string `json:"wiki_space"`
		}
		if err := json.Unmarshal([]byte(raw), &parsed); err != nil {
			return mcp.NewToolResultError(
				fmt.Sprintf("'repositories' must be a JSON array of {name, path, wiki_space} objects: %v", err),
			), nil
		}
		for _, p := range parsed {
			if p.Path == "" {
				return mcp.NewToolResultError("every entry in 'repositories' needs a 'path'"), nil
			}
			specs = append(specs, wikicontext.WorkspaceRepoSpec{
				Name:      p.Name,
				Path:      p.Path,
				WikiSpace: p.WikiSpace,
			})
		}
	}

	wc, err := t.mgr.InitWorkspace(wikicontext.InitWorkspaceOptions{
		Root:         req.GetString("root", ""),
		Name:         req.GetString("name", ""),
		Repositories: specs,
	})
	if err != nil {
		return nil, fmt.Errorf("initializing workspace context: %w", err)
	}

	recordEvent(t.jnl, journal.KindWorkspaceInit, wc.WorkspaceRoot,
		fmt.Sprintf("%d repositories", len(wc.Repositories)))

	var b strings.Builder
	fmt.Fprintf(&b, "# Workspace Context Initialized\n\n")
	fmt.Fprintf(&b, "**Workspace:** %s\n", wc.WorkspaceName)
	fmt.Fprintf(&b, "**Root:** `%s`\n", wc.WorkspaceRoot)
	fmt.Fprintf(&b, "**Architecture space:** %s\n", wc.SystemArchitecture.WikiSpace)
	fmt.Fprintf(&b, "\n## Repositories (%d)\n\n", len(wc.Repositories))
	if len(wc.Repositories) == 0 {
		b.WriteString("None detected. Pass an explicit `repositories` list, or re-run from a directory containing git repositories.\n")
	}
	for name, repo := range wc.Repositories {
		fmt.Fprintf(&b, "- **%s** (space: %s) `%s`\n", name, repo.WikiSpace, repo.Path)
	}
	b.WriteString("\n## Next Step\n\nRecord cross-repository relationships with `wiki_add_architectural_link`.")

	return mcp.NewToolResultText(b.String()), nil
}
