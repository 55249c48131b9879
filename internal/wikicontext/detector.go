package wikicontext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// State file names. The repository file doubles as the has-repo-context
// marker; the workspace file is also the highest-priority workspace root
// marker, so an initialized workspace keeps detecting as its own root.
const (
	RepoStateFile      = ".wikijs-state.json"
	WorkspaceStateFile = ".wikijs-workspace.json"
)

// Search depth bounds. Repository enumeration descends three levels below
// the search root; the nested-git and package-manifest sub-searches used
// for classification are capped at two.
const (
	repoSearchDepth     = 3
	nestedGitDepth      = 2
	manifestSearchDepth = 2
)

// toolManifests mark a directory as the root of a multi-package workspace.
// Any one of them is sufficient on its own.
var toolManifests = []string{
	"go.work",
	"pnpm-workspace.yaml",
	"lerna.json",
	"nx.json",
	"turbo.json",
}

// packageManifests are the per-package build manifests counted during
// monorepo detection.
var packageManifests = []string{
	"package.json",
	"go.mod",
	"Cargo.toml",
	"pyproject.toml",
}

// DefaultExcludes returns the directory names pruned while walking:
// dependency caches and build output, which can be both enormous and full
// of vendored .git entries.
func DefaultExcludes() []string {
	return []string{
		"node_modules",
		"vendor",
		"dist",
		"build",
		"target",
		"__pycache__",
	}
}

// Detector classifies the filesystem around a fixed anchor directory. Its
// only state is the anchor and the exclusion set; every Detect call
// re-derives everything from the filesystem, so results follow external
// changes with no caching or invalidation.
type Detector struct {
	anchor   string
	excludes map[string]bool
}

// NewDetector creates a Detector anchored at dir, resolved to an absolute
// path with symlinks followed when possible. A nil excludes slice selects
// DefaultExcludes; an explicit empty slice disables pruning by name.
func NewDetector(dir string, excludes []string) (*Detector, error) {
	abs, err := filepath.Abs(dir)
	if err != nil {
		return nil, fmt.Errorf("resolving anchor %q: %w", dir, err)
	}
	if resolved, err := filepath.EvalSymlinks(abs); err == nil {
		abs = resolved
	}

	if excludes == nil {
		excludes = DefaultExcludes()
	}
	set := make(map[string]bool, len(excludes))
	for _, name := range excludes {
		set[name] = true
	}
	return &Detector{anchor: abs, excludes: set}, nil
}

// Anchor returns the resolved directory the detector was constructed with.
func (d *Detector) Anchor() string { return d.anchor }

// Detect classifies the current location. It never fails: filesystem
// errors during the walks are treated as "absent" and the classification
// degrades toward the repository-level default.
func (d *Detector) Detect() ContextInfo {
	info := ContextInfo{CurrentDir: d.anchor}
	info.GitRoot = FindGitRoot(d.anchor)
	info.WorkspaceRoot = d.findWorkspaceRoot()
	info.IsMonorepo = d.isMonorepo(info.GitRoot)

	searchRoot := info.WorkspaceRoot
	if searchRoot == "" {
		searchRoot = d.anchor
	}
	info.DetectedRepos = d.findRepositories(searchRoot)

	info.SuggestedLevel = suggestLevel(info)
	if info.GitRoot != "" {
		info.HasRepoContext = fileExists(filepath.Join(info.GitRoot, RepoStateFile))
	}
	if info.WorkspaceRoot != "" {
		info.HasWorkspaceContext = fileExists(filepath.Join(info.WorkspaceRoot, WorkspaceStateFile))
	}
	return info
}

// FindGitRoot walks upward from dir and returns the nearest directory, dir
// included, containing a .git entry (file or directory, so worktrees and
// submodules count). Empty string when no ancestor has one.
func FindGitRoot(dir string) string {
	current := dir
	for {
		if entryExists(filepath.Join(current, ".git")) {
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// findWorkspaceRoot walks upward from the anchor checking an ordered
// marker list at each level. The first directory satisfying any marker
// wins; within a directory the markers short-circuit in priority order:
//
//  1. the workspace state file (an initialized workspace marks itself)
//  2. a package.json declaring "workspaces"
//  3. a multi-package tool manifest
//  4. a .git directory with more than one git repository nested below it
func (d *Detector) findWorkspaceRoot() string {
	current := d.anchor
	for {
		switch {
		case fileExists(filepath.Join(current, WorkspaceStateFile)):
			return current
		case declaresWorkspaces(filepath.Join(current, "package.json")):
			return current
		case hasToolManifest(current):
			return current
		case dirExists(filepath.Join(current, ".git")) && d.countNestedRepos(current, 0) > 1:
			return current
		}
		parent := filepath.Dir(current)
		if parent == current {
			return ""
		}
		current = parent
	}
}

// isMonorepo reports whether the git root is laid out as a monorepo: a
// tool manifest at the root, a root package.json declaring workspaces, or
// more than one package manifest within two levels of the root.
func (d *Detector) isMonorepo(gitRoot string) bool {
	if gitRoot == "" {
		return false
	}
	if hasToolManifest(gitRoot) {
		return true
	}
	if declaresWorkspaces(filepath.Join(gitRoot, "package.json")) {
		return true
	}
	return d.countPackageManifests(gitRoot, 0) > 1
}

// findRepositories collects every directory holding a .git entry, from
// root down to repoSearchDepth. The root itself is checked regardless of
// its name. Descent prunes dot-directories and the exclusion set but keeps
// going inside detected repositories, so nested repos are found too.
func (d *Detector) findRepositories(root string) []string {
	var repos []string
	d.searchRepos(root, 0, &repos)
	return repos
}

func (d *Detector) searchRepos(dir string, depth int, repos *[]string) {
	if entryExists(filepath.Join(dir, ".git")) {
		*repos = append(*repos, dir)
	}
	if depth >= repoSearchDepth {
		return
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() || d.pruned(entry.Name()) {
			continue
		}
		d.searchRepos(filepath.Join(dir, entry.Name()), depth+1, repos)
	}
}

// countNestedRepos counts git repositories strictly below dir, bounded to
// nestedGitDepth levels.
func (d *Detector) countNestedRepos(dir string, depth int) int {
	if depth >= nestedGitDepth {
		return 0
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return 0
	}
	count := 0
	for _, entry := range entries {
		if !entry.IsDir() || d.pruned(entry.Name()) {
			continue
		}
		sub := filepath.Join(dir, entry.Name())
		if entryExists(filepath.Join(sub, ".git")) {
			count++
		}
		count += d.countNestedRepos(sub, depth+1)
	}
	return count
}

// countPackageManifests counts package manifest files at dir and up to
// manifestSearchDepth levels below it.
func (d *Detector) countPackageManifests(dir string, depth int) int {
	count := 0
	for _, name := range packageManifests {
		if fileExists(filepath.Join(dir, name)) {
			count++
		}
	}
	if depth >= manifestSearchDepth {
		return count
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		return count
	}
	for _, entry := range entries {
		if !entry.IsDir() || d.pruned(entry.Name()) {
			continue
		}
		count += d.countPackageManifests(filepath.Join(dir, entry.Name()), depth+1)
	}
	return count
}

// suggestLevel derives the suggested granularity from the other ContextInfo
// fields, evaluated in priority order.
func suggestLevel(info ContextInfo) ContextLevel {
	switch {
	case info.WorkspaceRoot != "" && len(info.DetectedRepos) > 1:
		return LevelWorkspace
	case info.IsMonorepo:
		return LevelWorkspace
	case info.GitRoot != "":
		return LevelRepository
	default:
		return LevelRepository
	}
}

// InferLevelFromRequest maps free-text request wording to a context level.
// Architectural keywords take precedence over workspace keywords; text with
// no signal maps to Repository. The check is purely lexical and never
// consults the filesystem.
func InferLevelFromRequest(text string) ContextLevel {
	lower := strings.ToLower(text)
	switch {
	case containsAny(lower, "architecture", "cross-repo", "microservice", "diagram", "integration"):
		return LevelArchitectural
	case containsAny(lower, "workspace", "multi-repo", "coordinate"):
		return LevelWorkspace
	default:
		return LevelRepository
	}
}

// containsAny checks if text contains any of the given substrings.
func containsAny(text string, subs ...string) bool {
	for _, s := range subs {
		if strings.Contains(text, s) {
			return true
		}
	}
	return false
}

// declaresWorkspaces reports whether the package.json at path has a
// top-level "workspaces" key. Unreadable or malformed files are treated
// as not declaring one.
func declaresWorkspaces(path string) bool {
	data, err := os.ReadFile(path)
	if err != nil {
		return false
	}
	var manifest map[string]json.RawMessage
	if err := json.Unmarshal(data, &manifest); err != nil {
		return false
	}
	_, ok := manifest["workspaces"]
	return ok
}

func hasToolManifest(dir string) bool {
	for _, name := range toolManifests {
		if fileExists(filepath.Join(dir, name)) {
			return true
		}
	}
	return false
}

func (d *Detector) pruned(name string) bool {
	return strings.HasPrefix(name, ".") || d.excludes[name]
}

// entryExists reports whether path exists at all, file or directory.
func entryExists(path string) bool {
	_, err := os.Lstat(path)
	return err == nil
}

func fileExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && !fi.IsDir()
}

func dirExists(path string) bool {
	fi, err := os.Stat(path)
	return err == nil && fi.IsDir()
}
