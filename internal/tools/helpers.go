package tools

import (
	"fmt"
	"strings"

	"github.com/redairforce/wikijs-mcp/internal/journal"
	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// orNone substitutes "none" for empty detection results.
func orNone(path string) string {
	if path == "" {
		return "none"
	}
	return path
}

// yesNo renders a boolean.
func yesNo(v bool) string {
	if v {
		return "yes"
	}
	return "no"
}

// recordEvent writes a journal entry when the journal is available. A nil
// journal means the subsystem is disabled; a write failure never fails the
// tool call that triggered it.
func recordEvent(j *journal.Store, kind, root, detail string) {
	if j == nil {
		return
	}
	_, _ = j.Record(kind, root, detail)
}

// renderContextView formats a projection for a tool response. One renderer
// serves every granularity; absent blocks are simply skipped.
func renderContextView(view wikicontext.ContextView) string {
	var b strings.Builder

	fmt.Fprintf(&b, "# Documentation Context (%s)\n\n", view.Level)
	if view.Placeholder {
		b.WriteString("No context has been initialized at this level yet.\n\n")
	}

	if view.Repository != nil && !view.Placeholder {
		fmt.Fprintf(&b, "**Repository:** %s\n", view.Repository.RepoName)
		fmt.Fprintf(&b, "**Wiki space:** %s\n", view.Repository.WikiSpace)
		fmt.Fprintf(&b, "**Files tracked:** %d\n", view.Repository.TotalFiles)
		fmt.Fprintf(&b, "**Sync operations:** %d\n", view.Repository.TotalPages)
		if len(view.Repository.RecentFiles) > 0 {
			b.WriteString("\n## Recent Files\n\n")
			for _, f := range view.Repository.RecentFiles {
				fmt.Fprintf(&b, "- `%s` (page %d)\n", f.Path, f.PageID)
			}
		}
		if len(view.Repository.KeyPages) > 0 {
			b.WriteString("\n## Key Pages\n\n")
			for _, p := range view.Repository.KeyPages {
				fmt.Fprintf(&b, "- %s (page %d, %s)\n", p.Path, p.PageID, p.Importance)
			}
		}
	}

	if view.Workspace != nil && !view.Placeholder {
		fmt.Fprintf(&b, "**Workspace:** %s\n", view.Workspace.WorkspaceName)
		fmt.Fprintf(&b, "**Repositories:** %d\n", view.Workspace.RepositoryCount)
		for _, repo := range view.Workspace.Repositories {
			fmt.Fprintf(&b, "\n- **%s** (space: %s)\n  `%s`\n", repo.Name, repo.WikiSpace, repo.Path)
			for _, p := range repo.KeyPages {
				fmt.Fprintf(&b, "  - %s (page %d)\n", p.Path, p.PageID)
			}
		}
	}

	if view.Architecture != nil && !view.Placeholder {
		fmt.Fprintf(&b, "\n## Architecture (space: %s)\n\n", view.Architecture.WikiSpace)
		for _, d := range view.Architecture.NetworkDiagrams {
			fmt.Fprintf(&b, "- Diagram: %s (page %d)\n", d.Path, d.PageID)
		}
		if len(view.Architecture.CrossRepoMappings) > 0 {
			b.WriteString("\nCross-repo links:\n")
			for _, l := range view.Architecture.CrossRepoMappings {
				fmt.Fprintf(&b, "- %s/%s %s %s/%s: %s\n",
					l.From.Repo, l.From.Component, l.Relationship, l.To.Repo, l.To.Component, l.Description)
			}
		} else {
			b.WriteString("\nNo cross-repo links recorded yet.\n")
		}
	}

	fmt.Fprintf(&b, "\n*Estimated size: ~%d tokens*\n", view.EstimatedTokens)
	return b.String()
}
