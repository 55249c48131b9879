package wikicontext

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	orderedmap "github.com/wk8/go-ordered-map/v2"
)

// Store persists the two context documents. Load methods return nil for
// missing or unparseable files; they never fail. Mutating callers that need
// a document surface the nil as a "no context" error instead.
type Store interface {
	LoadRepository(root string) *RepositoryContext
	SaveRepository(root string, rc *RepositoryContext) error
	LoadWorkspace(root string) *WorkspaceContext
	SaveWorkspace(root string, wc *WorkspaceContext) error
}

// FileStore reads and writes the JSON state files at their well-known
// paths under the repository and workspace roots.
type FileStore struct{}

// NewFileStore creates a FileStore.
func NewFileStore() *FileStore {
	return &FileStore{}
}

// RepoStatePath returns the repository state file path under root.
func RepoStatePath(root string) string {
	return filepath.Join(root, RepoStateFile)
}

// WorkspaceStatePath returns the workspace state file path under root.
func WorkspaceStatePath(root string) string {
	return filepath.Join(root, WorkspaceStateFile)
}

// LoadRepository reads the repository context at root. Missing and corrupt
// files both yield nil: a document this subsystem cannot parse is treated
// the same as one that was never written.
func (s *FileStore) LoadRepository(root string) *RepositoryContext {
	data, err := os.ReadFile(RepoStatePath(root))
	if err != nil {
		return nil
	}
	var rc RepositoryContext
	if err := json.Unmarshal(data, &rc); err != nil {
		return nil
	}
	if rc.QuickContext.RecentFiles == nil {
		rc.QuickContext.RecentFiles = orderedmap.New[string, FileMapping]()
	}
	return &rc
}

// SaveRepository writes the whole repository document.
func (s *FileStore) SaveRepository(root string, rc *RepositoryContext) error {
	return writeJSON(RepoStatePath(root), rc)
}

// LoadWorkspace reads the workspace context at root, under the same
// missing-or-corrupt contract as LoadRepository.
func (s *FileStore) LoadWorkspace(root string) *WorkspaceContext {
	data, err := os.ReadFile(WorkspaceStatePath(root))
	if err != nil {
		return nil
	}
	var wc WorkspaceContext
	if err := json.Unmarshal(data, &wc); err != nil {
		return nil
	}
	if wc.Repositories == nil {
		wc.Repositories = make(map[string]WorkspaceRepo)
	}
	return &wc
}

// SaveWorkspace writes the whole workspace document.
func (s *FileStore) SaveWorkspace(root string, wc *WorkspaceContext) error {
	return writeJSON(WorkspaceStatePath(root), wc)
}

// writeJSON replaces path with the document serialized at two-space
// indentation, via a same-directory temp file and rename so readers never
// observe a partial write. Concurrent writers still race whole documents;
// the later rename wins.
func writeJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("marshaling %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	tmpName := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("writing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Chmod(0o644); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("setting permissions: %w", err)
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("syncing %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replacing %s: %w", filepath.Base(path), err)
	}
	return nil
}
