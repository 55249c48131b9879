package wikicontext

import (
	"encoding/json"
	"sort"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Projection truncation bounds, chosen so a view stays well under a
// thousand tokens even with long paths.
const (
	maxRecentFiles       = 5
	maxKeyPages          = 5
	maxWorkspaceKeyPages = 3
	maxCrossRepoLinks    = 5
)

// placeholderTokens is the fixed token estimate reported for placeholder
// views. Deliberately nonzero so downstream budget arithmetic never sees a
// zero-cost context.
const placeholderTokens = 25

// ContextView is the bounded payload produced for one granularity, plus a
// rough size in tokens: serialized length over four, rounded up.
type ContextView struct {
	Level           ContextLevel      `json:"level"`
	Placeholder     bool              `json:"placeholder,omitempty"`
	Repository      *RepositoryView   `json:"repository,omitempty"`
	Workspace       *WorkspaceView    `json:"workspace,omitempty"`
	Architecture    *ArchitectureView `json:"architecture,omitempty"`
	EstimatedTokens int               `json:"estimatedTokens"`
}

// RepositoryView summarizes one repository's sync state.
type RepositoryView struct {
	RepoName    string       `json:"repoName"`
	WikiSpace   string       `json:"wikiSpace"`
	TotalFiles  int          `json:"totalFiles"`
	TotalPages  int          `json:"totalPages"`
	RecentFiles []RecentFile `json:"recentFiles"`
	KeyPages    []KeyPage    `json:"keyPages"`
}

// RecentFile is one tracked file in a repository view.
type RecentFile struct {
	Path        string `json:"path"`
	PageID      int    `json:"pageId"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// WorkspaceView summarizes a workspace and its registered repositories.
type WorkspaceView struct {
	WorkspaceName   string              `json:"workspaceName"`
	RepositoryCount int                 `json:"repositoryCount"`
	Repositories    []RepositorySummary `json:"repositories"`
}

// RepositorySummary is one repository inside a workspace view.
type RepositorySummary struct {
	Name      string    `json:"name"`
	Path      string    `json:"path"`
	WikiSpace string    `json:"wikiSpace"`
	KeyPages  []KeyPage `json:"keyPages"`
}

// ArchitectureView carries the cross-repository documentation block.
type ArchitectureView struct {
	WikiSpace         string              `json:"wikiSpace"`
	NetworkDiagrams   []NetworkDiagram    `json:"networkDiagrams"`
	CrossRepoMappings []ArchitecturalLink `json:"crossRepoMappings"`
}

// ProjectRepository builds the repository-level view. A nil context yields
// a placeholder with zero counters and the fixed token estimate.
func ProjectRepository(rc *RepositoryContext) ContextView {
	if rc == nil {
		return placeholderView(LevelRepository)
	}
	view := ContextView{
		Level: LevelRepository,
		Repository: &RepositoryView{
			RepoName:    rc.RepoName,
			WikiSpace:   rc.WikiSpace,
			TotalFiles:  rc.QuickContext.TotalFiles,
			TotalPages:  rc.QuickContext.TotalPages,
			RecentFiles: lastRecentFiles(rc.QuickContext.RecentFiles, maxRecentFiles),
			KeyPages:    firstKeyPages(rc.QuickContext.KeyPages, maxKeyPages),
		},
	}
	view.EstimatedTokens = estimateTokens(view)
	return view
}

// ProjectWorkspace builds the workspace-level view, each repository
// summary capped at three key pages. Repositories are listed in name order
// so the output is stable across runs.
func ProjectWorkspace(wc *WorkspaceContext) ContextView {
	if wc == nil {
		return placeholderView(LevelWorkspace)
	}
	view := ContextView{
		Level:     LevelWorkspace,
		Workspace: workspaceView(wc),
	}
	view.EstimatedTokens = estimateTokens(view)
	return view
}

// ProjectArchitectural builds the workspace view plus the architecture
// block, cross-repo mappings capped at the first five.
func ProjectArchitectural(wc *WorkspaceContext) ContextView {
	if wc == nil {
		return placeholderView(LevelArchitectural)
	}

	links := wc.SystemArchitecture.CrossRepoMappings
	if len(links) > maxCrossRepoLinks {
		links = links[:maxCrossRepoLinks]
	}
	capped := make([]ArchitecturalLink, len(links))
	copy(capped, links)

	diagrams := make([]NetworkDiagram, len(wc.SystemArchitecture.NetworkDiagrams))
	copy(diagrams, wc.SystemArchitecture.NetworkDiagrams)

	view := ContextView{
		Level:     LevelArchitectural,
		Workspace: workspaceView(wc),
		Architecture: &ArchitectureView{
			WikiSpace:         wc.SystemArchitecture.WikiSpace,
			NetworkDiagrams:   diagrams,
			CrossRepoMappings: capped,
		},
	}
	view.EstimatedTokens = estimateTokens(view)
	return view
}

// placeholderView stands in when nothing is persisted at the requested
// level: zero counters, empty collections, fixed token estimate. Callers
// always get a context back.
func placeholderView(level ContextLevel) ContextView {
	view := ContextView{
		Level:           level,
		Placeholder:     true,
		EstimatedTokens: placeholderTokens,
	}
	switch level {
	case LevelWorkspace:
		view.Workspace = &WorkspaceView{Repositories: []RepositorySummary{}}
	case LevelArchitectural:
		view.Workspace = &WorkspaceView{Repositories: []RepositorySummary{}}
		view.Architecture = &ArchitectureView{
			NetworkDiagrams:   []NetworkDiagram{},
			CrossRepoMappings: []ArchitecturalLink{},
		}
	default:
		view.Repository = &RepositoryView{
			RecentFiles: []RecentFile{},
			KeyPages:    []KeyPage{},
		}
	}
	return view
}

func workspaceView(wc *WorkspaceContext) *WorkspaceView {
	names := make([]string, 0, len(wc.Repositories))
	for name := range wc.Repositories {
		names = append(names, name)
	}
	sort.Strings(names)

	summaries := make([]RepositorySummary, 0, len(names))
	for _, name := range names {
		repo := wc.Repositories[name]
		summaries = append(summaries, RepositorySummary{
			Name:      name,
			Path:      repo.Path,
			WikiSpace: repo.WikiSpace,
			KeyPages:  firstKeyPages(repo.KeyPages, maxWorkspaceKeyPages),
		})
	}
	return &WorkspaceView{
		WorkspaceName:   wc.WorkspaceName,
		RepositoryCount: len(wc.Repositories),
		Repositories:    summaries,
	}
}

// lastRecentFiles takes the final limit entries of the insertion-ordered
// map. Re-mapping an existing path keeps its original slot, so "recent"
// means recently added, not recently touched.
func lastRecentFiles(files *orderedmap.OrderedMap[string, FileMapping], limit int) []RecentFile {
	out := []RecentFile{}
	if files == nil {
		return out
	}
	skip := files.Len() - limit
	for pair := files.Oldest(); pair != nil; pair = pair.Next() {
		if skip > 0 {
			skip--
			continue
		}
		out = append(out, RecentFile{
			Path:        pair.Key,
			PageID:      pair.Value.PageID,
			LastUpdated: pair.Value.LastUpdated,
		})
	}
	return out
}

// firstKeyPages copies the leading limit entries.
func firstKeyPages(pages []KeyPage, limit int) []KeyPage {
	if len(pages) > limit {
		pages = pages[:limit]
	}
	out := make([]KeyPage, len(pages))
	copy(out, pages)
	return out
}

// estimateTokens sizes the serialized view at four characters per token,
// rounded up. Computed before EstimatedTokens itself is filled in.
func estimateTokens(view ContextView) int {
	data, err := json.Marshal(view)
	if err != nil {
		return placeholderTokens
	}
	return (len(data) + 3) / 4
}
