// Package wikicontext implements context detection and multi-level context
// management for the Wiki.js sync server.
//
// It discovers the shape of the filesystem around an anchor directory
// (lone repository, multi-repo workspace, monorepo), persists what has
// already been documented at two granularities, and projects compact,
// token-budgeted views of that state for a calling agent.
package wikicontext

import (
	"fmt"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// ContextLevel is the granularity of context handed to a calling agent.
type ContextLevel string

const (
	LevelRepository    ContextLevel = "repository"
	LevelWorkspace     ContextLevel = "workspace"
	LevelArchitectural ContextLevel = "architectural"
)

// validLevels is the set of accepted context granularities.
var validLevels = map[ContextLevel]bool{
	LevelRepository:    true,
	LevelWorkspace:     true,
	LevelArchitectural: true,
}

// ValidateLevel checks that level is one of the known granularities.
func ValidateLevel(level ContextLevel) error {
	if !validLevels[level] {
		return fmt.Errorf("invalid context level %q (valid: repository, workspace, architectural)", level)
	}
	return nil
}

// Importance ranks a key page inside a repository's quick context.
type Importance string

const (
	ImportanceHigh   Importance = "high"
	ImportanceMedium Importance = "medium"
	ImportanceLow    Importance = "low"
)

// ContextInfo is the result of one detection pass. It is recomputed from
// the filesystem on every call and never persisted.
type ContextInfo struct {
	CurrentDir          string       `json:"currentDir"`
	GitRoot             string       `json:"gitRoot,omitempty"`
	WorkspaceRoot       string       `json:"workspaceRoot,omitempty"`
	IsMonorepo          bool         `json:"isMonorepo"`
	DetectedRepos       []string     `json:"detectedRepos"`
	SuggestedLevel      ContextLevel `json:"suggestedLevel"`
	HasRepoContext      bool         `json:"hasRepoContext"`
	HasWorkspaceContext bool         `json:"hasWorkspaceContext"`
}

// FileMapping ties a tracked file to its wiki page and the content digest
// recorded at the last sync. An empty hash means the file could not be read
// when it was mapped; change detection treats it as never synced.
type FileMapping struct {
	PageID      int    `json:"pageId"`
	Hash        string `json:"hash"`
	LastUpdated string `json:"lastUpdated,omitempty"`
}

// KeyPage is a high-value wiki page surfaced first in projections.
type KeyPage struct {
	Path       string     `json:"path"`
	PageID     int        `json:"pageId"`
	Importance Importance `json:"importance"`
}

// QuickContext is the compact per-repository sync summary.
//
// RecentFiles preserves insertion order; re-mapping an already tracked path
// updates the entry in place without moving it. TotalFiles always equals
// the map size. TotalPages counts sync operations performed rather than
// distinct pages, so it grows on every mapping call, updates included.
type QuickContext struct {
	TotalFiles  int                                         `json:"totalFiles"`
	TotalPages  int                                         `json:"totalPages"`
	RecentFiles *orderedmap.OrderedMap[string, FileMapping] `json:"recentFiles"`
	KeyPages    []KeyPage                                   `json:"keyPages"`
}

// RepositoryContext is the persisted repository-level state, stored at
// <repoRoot>/.wikijs-state.json.
type RepositoryContext struct {
	RepoRoot        string       `json:"repoRoot"`
	RepoName        string       `json:"repoName"`
	WikiSpace       string       `json:"wikiSpace"`
	ContextLevel    ContextLevel `json:"contextLevel"`
	LastSync        string       `json:"lastSync"`
	ParentWorkspace string       `json:"parentWorkspace,omitempty"`
	QuickContext    QuickContext `json:"quickContext"`
}

// WorkspaceRepo describes one repository registered in a workspace.
type WorkspaceRepo struct {
	Path      string    `json:"path"`
	WikiSpace string    `json:"wikiSpace"`
	LastSync  string    `json:"lastSync,omitempty"`
	KeyPages  []KeyPage `json:"keyPages"`
}

// NetworkDiagram is a diagram page tracked at the architecture level.
type NetworkDiagram struct {
	Path   string `json:"path"`
	PageID int    `json:"pageId"`
}

// LinkEndpoint names a component on one side of an architectural link.
type LinkEndpoint struct {
	Repo      string `json:"repo"`
	Component string `json:"component"`
	PageID    int    `json:"pageId,omitempty"`
}

// ArchitecturalLink is a recorded directional relationship between
// components in two repositories, e.g. "calls", "depends-on", "validates".
// Links are append-only: each gets a fresh id at creation and is never
// mutated in place.
type ArchitecturalLink struct {
	ID           string       `json:"id"`
	Description  string       `json:"description"`
	From         LinkEndpoint `json:"from"`
	To           LinkEndpoint `json:"to"`
	WikiPageID   int          `json:"wikiPageId,omitempty"`
	Relationship string       `json:"relationship"`
}

// SystemArchitecture groups the cross-repository documentation state.
type SystemArchitecture struct {
	WikiSpace         string              `json:"wikiSpace"`
	NetworkDiagrams   []NetworkDiagram    `json:"networkDiagrams"`
	CrossRepoMappings []ArchitecturalLink `json:"crossRepoMappings"`
}

// WorkspaceContext is the persisted workspace-level state, stored at
// <workspaceRoot>/.wikijs-workspace.json.
type WorkspaceContext struct {
	WorkspaceName      string                   `json:"workspaceName"`
	ContextLevel       ContextLevel             `json:"contextLevel"`
	WorkspaceRoot      string                   `json:"workspaceRoot"`
	LastSync           string                   `json:"lastSync"`
	Repositories       map[string]WorkspaceRepo `json:"repositories"`
	SystemArchitecture SystemArchitecture       `json:"systemArchitecture"`
}
