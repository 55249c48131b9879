package wikicontext

import (
	"errors"
	"fmt"
	"path/filepath"

	"github.com/google/uuid"
	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Sentinel errors for mutating operations that need an initialized context.
// Callers match them with errors.Is to turn the condition into guidance.
var (
	ErrNoRepositoryContext = errors.New("no repository context found")
	ErrNoWorkspaceContext  = errors.New("no workspace context found")
)

// Manager orchestrates the Detector and the Store: it initializes contexts,
// owns the process-local active granularity, tracks file-to-page mappings,
// and records cross-repository links. State files are reloaded on every
// operation; nothing is cached between calls.
type Manager struct {
	detector *Detector
	store    Store
	mode     ContextLevel
}

// NewManager creates a Manager. The active granularity starts at
// Repository until SetMode or AutoDetectMode changes it.
func NewManager(detector *Detector, store Store) *Manager {
	return &Manager{
		detector: detector,
		store:    store,
		mode:     LevelRepository,
	}
}

// Mode returns the active context granularity.
func (m *Manager) Mode() ContextLevel {
	return m.mode
}

// SetMode sets the active granularity for this process. The mode is an
// explicit field, never persisted: a new process starts over at Repository.
func (m *Manager) SetMode(level ContextLevel) error {
	if err := ValidateLevel(level); err != nil {
		return err
	}
	m.mode = level
	return nil
}

// AutoDetectMode picks and adopts the active granularity. Request wording
// carrying a workspace or architectural signal wins; otherwise the
// filesystem-derived suggestion is used.
func (m *Manager) AutoDetectMode(requestText string) ContextLevel {
	if requestText != "" {
		if inferred := InferLevelFromRequest(requestText); inferred != LevelRepository {
			m.mode = inferred
			return m.mode
		}
	}
	m.mode = m.detector.Detect().SuggestedLevel
	return m.mode
}

// DetectContext runs a full detection pass from the anchor directory.
func (m *Manager) DetectContext() ContextInfo {
	return m.detector.Detect()
}

// InitRepositoryOptions control InitRepository. Zero values select the
// detected defaults.
type InitRepositoryOptions struct {
	Root            string
	WikiSpace       string
	ParentWorkspace string
}

// InitRepository creates and persists a fresh repository context. Root
// falls back to the detected git root, then the anchor directory; the wiki
// space defaults to the root directory's base name. Calling it again
// replaces whatever was there, including all tracked mappings.
func (m *Manager) InitRepository(opts InitRepositoryOptions) (*RepositoryContext, error) {
	root := m.repoRootOr(opts.Root)
	name := filepath.Base(root)
	space := opts.WikiSpace
	if space == "" {
		space = name
	}

	rc := &RepositoryContext{
		RepoRoot:        root,
		RepoName:        name,
		WikiSpace:       space,
		ContextLevel:    LevelRepository,
		LastSync:        nowStamp(),
		ParentWorkspace: opts.ParentWorkspace,
		QuickContext: QuickContext{
			RecentFiles: orderedmap.New[string, FileMapping](),
			KeyPages:    []KeyPage{},
		},
	}
	if err := m.store.SaveRepository(root, rc); err != nil {
		return nil, fmt.Errorf("saving repository context: %w", err)
	}
	return rc, nil
}

// WorkspaceRepoSpec names one repository for InitWorkspace.
type WorkspaceRepoSpec struct {
	Name      string
	Path      string
	WikiSpace string
}

// InitWorkspaceOptions control InitWorkspace. An empty Repositories slice
// lets the detector enumerate them.
type InitWorkspaceOptions struct {
	Root         string
	Name         string
	Repositories []WorkspaceRepoSpec
}

// InitWorkspace creates and persists a fresh workspace context. An
// explicit repository list is taken as given; otherwise the detector's
// enumeration fills it in, defaulting each wiki space to the repository
// directory's name.
func (m *Manager) InitWorkspace(opts InitWorkspaceOptions) (*WorkspaceContext, error) {
	root := m.workspaceRootOr(opts.Root)
	name := opts.Name
	if name == "" {
		name = filepath.Base(root)
	}

	repos := make(map[string]WorkspaceRepo)
	if len(opts.Repositories) > 0 {
		for _, spec := range opts.Repositories {
			repoName := spec.Name
			if repoName == "" {
				repoName = filepath.Base(spec.Path)
			}
			space := spec.WikiSpace
			if space == "" {
				space = repoName
			}
			repos[repoName] = WorkspaceRepo{
				Path:      spec.Path,
				WikiSpace: space,
				KeyPages:  []KeyPage{},
			}
		}
	} else {
		for _, path := range m.detector.findRepositories(root) {
			repoName := filepath.Base(path)
			repos[repoName] = WorkspaceRepo{
				Path:      path,
				WikiSpace: repoName,
				KeyPages:  []KeyPage{},
			}
		}
	}

	wc := &WorkspaceContext{
		WorkspaceName: name,
		ContextLevel:  LevelWorkspace,
		WorkspaceRoot: root,
		LastSync:      nowStamp(),
		Repositories:  repos,
		SystemArchitecture: SystemArchitecture{
			WikiSpace:         name + "-architecture",
			NetworkDiagrams:   []NetworkDiagram{},
			CrossRepoMappings: []ArchitecturalLink{},
		},
	}
	if err := m.store.SaveWorkspace(root, wc); err != nil {
		return nil, fmt.Errorf("saving workspace context: %w", err)
	}
	return wc, nil
}

// LoadRepositoryContext loads the repository document. An empty root means
// the detected git root, falling back to the anchor directory.
func (m *Manager) LoadRepositoryContext(root string) *RepositoryContext {
	return m.store.LoadRepository(m.repoRootOr(root))
}

// LoadWorkspaceContext loads the workspace document. An empty root means
// the detected workspace root, falling back to the anchor directory.
func (m *Manager) LoadWorkspaceContext(root string) *WorkspaceContext {
	return m.store.LoadWorkspace(m.workspaceRootOr(root))
}

// AddFileMapping upserts the mapping for path and persists the whole
// document. An empty hash is computed from the file's current content.
// totalPages grows on every call, updates included: it counts sync
// operations performed, not distinct pages. Returns the repo-relative path
// the mapping was stored under.
func (m *Manager) AddFileMapping(path string, pageID int, hash string) (string, error) {
	root := m.repoRootOr("")
	rc := m.store.LoadRepository(root)
	if rc == nil {
		return "", fmt.Errorf("%w at %s", ErrNoRepositoryContext, root)
	}

	abs := m.resolve(path)
	rel := m.relativeTo(rc.RepoRoot, abs, path)
	if hash == "" {
		hash = HashFile(abs)
	}

	now := nowStamp()
	rc.QuickContext.RecentFiles.Set(rel, FileMapping{
		PageID:      pageID,
		Hash:        hash,
		LastUpdated: now,
	})
	rc.QuickContext.TotalFiles = rc.QuickContext.RecentFiles.Len()
	rc.QuickContext.TotalPages++
	rc.LastSync = now

	if err := m.store.SaveRepository(root, rc); err != nil {
		return "", fmt.Errorf("saving repository context: %w", err)
	}
	return rel, nil
}

// AddArchitecturalLink assigns the link a fresh unique id, appends it to
// the workspace's cross-repository mappings, and persists. Links are never
// mutated in place and ids are never reused.
func (m *Manager) AddArchitecturalLink(link ArchitecturalLink) (*ArchitecturalLink, error) {
	root := m.workspaceRootOr("")
	wc := m.store.LoadWorkspace(root)
	if wc == nil {
		return nil, fmt.Errorf("%w at %s", ErrNoWorkspaceContext, root)
	}

	link.ID = uuid.NewString()
	wc.SystemArchitecture.CrossRepoMappings = append(wc.SystemArchitecture.CrossRepoMappings, link)
	wc.LastSync = nowStamp()

	if err := m.store.SaveWorkspace(root, wc); err != nil {
		return nil, fmt.Errorf("saving workspace context: %w", err)
	}
	return &link, nil
}

// HasFileChanged reports whether path needs a re-sync. Missing context and
// untracked paths both count as changed; otherwise the stored digest is
// compared literally with the file's current digest, so two empty hashes
// compare equal.
func (m *Manager) HasFileChanged(path string) bool {
	mapping := m.GetFileMapping(path)
	if mapping == nil {
		return true
	}
	return HashFile(m.resolve(path)) != mapping.Hash
}

// GetFileMapping returns the stored mapping for path, nil when the path is
// untracked or no repository context exists.
func (m *Manager) GetFileMapping(path string) *FileMapping {
	rc := m.store.LoadRepository(m.repoRootOr(""))
	if rc == nil {
		return nil
	}
	rel := m.relativeTo(rc.RepoRoot, m.resolve(path), path)
	mapping, ok := rc.QuickContext.RecentFiles.Get(rel)
	if !ok {
		return nil
	}
	return &mapping
}

// ContextForClaude builds the compact projection handed to the calling
// agent. An empty level projects the active mode. Missing state never
// fails: the projection degrades to a placeholder.
func (m *Manager) ContextForClaude(level ContextLevel) ContextView {
	if level == "" {
		level = m.mode
	}
	switch level {
	case LevelWorkspace:
		return ProjectWorkspace(m.LoadWorkspaceContext(""))
	case LevelArchitectural:
		return ProjectArchitectural(m.LoadWorkspaceContext(""))
	default:
		return ProjectRepository(m.LoadRepositoryContext(""))
	}
}

// repoRootOr resolves the repository root: explicit override, detected git
// root, anchor directory, in that order.
func (m *Manager) repoRootOr(explicit string) string {
	if explicit != "" {
		return m.resolve(explicit)
	}
	if root := FindGitRoot(m.detector.Anchor()); root != "" {
		return root
	}
	return m.detector.Anchor()
}

// workspaceRootOr resolves the workspace root the same way.
func (m *Manager) workspaceRootOr(explicit string) string {
	if explicit != "" {
		return m.resolve(explicit)
	}
	if root := m.detector.findWorkspaceRoot(); root != "" {
		return root
	}
	return m.detector.Anchor()
}

// resolve makes path absolute against the anchor directory rather than the
// process working directory.
func (m *Manager) resolve(path string) string {
	if filepath.IsAbs(path) {
		return filepath.Clean(path)
	}
	return filepath.Join(m.detector.Anchor(), path)
}

// relativeTo rewrites abs relative to root, falling back to the cleaned
// original argument when the path cannot be expressed that way.
func (m *Manager) relativeTo(root, abs, original string) string {
	rel, err := filepath.Rel(root, abs)
	if err != nil {
		return filepath.Clean(original)
	}
	return rel
}
