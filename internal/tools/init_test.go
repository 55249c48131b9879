package tools

import (
	"context"
	"path/filepath"
	"testing"
)

// --- InitRepositoryTool ---

func TestInitRepositoryTool_Defaults(t *testing.T) {
	repo := tempRepo(t)
	mgr := newTestManager(t, repo)
	tool := NewInitRepositoryTool(mgr, nil)

	result, err := tool.Handle(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}

	text := getResultText(result)
	if !containsStr(text, "Repository Context Initialized") {
		t.Errorf("unexpected response:\n%s", text)
	}
	if !containsStr(text, filepath.Base(repo)) {
		t.Errorf("response missing defaulted wiki space:\n%s", text)
	}

	rc := mgr.LoadRepositoryContext("")
	if rc == nil {
		t.Fatal("state file not written")
	}
	if rc.WikiSpace != "svc" {
		t.Errorf("WikiSpace = %q, want directory name", rc.WikiSpace)
	}
}

func TestInitRepositoryTool_ExplicitSpace(t *testing.T) {
	repo := tempRepo(t)
	mgr := newTestManager(t, repo)
	tool := NewInitRepositoryTool(mgr, nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"wiki_space":       "platform-docs",
		"parent_workspace": "platform",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}

	rc := mgr.LoadRepositoryContext("")
	if rc.WikiSpace != "platform-docs" {
		t.Errorf("WikiSpace = %q", rc.WikiSpace)
	}
	if rc.ParentWorkspace != "platform" {
		t.Errorf("ParentWorkspace = %q", rc.ParentWorkspace)
	}
}

func TestInitRepositoryTool_Reinit(t *testing.T) {
	repo := tempRepo(t)
	mgr := newTestManager(t, repo)
	tool := NewInitRepositoryTool(mgr, nil)

	if _, err := tool.Handle(context.Background(), callRequest(nil)); err != nil {
		t.Fatalf("first init: %v", err)
	}
	writeTestFile(t, filepath.Join(repo, "doc.md"), "x")
	if _, err := mgr.AddFileMapping("doc.md", 3, ""); err != nil {
		t.Fatalf("AddFileMapping: %v", err)
	}

	if _, err := tool.Handle(context.Background(), callRequest(nil)); err != nil {
		t.Fatalf("re-init: %v", err)
	}
	rc := mgr.LoadRepositoryContext("")
	if rc.QuickContext.TotalFiles != 0 {
		t.Errorf("re-init kept mappings: %+v", rc.QuickContext)
	}
}

// --- InitWorkspaceTool ---

func TestInitWorkspaceTool_ExplicitRepositories(t *testing.T) {
	repo := tempRepo(t)
	ws := filepath.Dir(repo)
	mgr := newTestManager(t, ws)
	tool := NewInitWorkspaceTool(mgr, nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"name":         "platform",
		"repositories": `[{"name":"api","path":"/ws/api","wiki_space":"api-docs"},{"path":"/ws/web"}]`,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}

	wc := mgr.LoadWorkspaceContext("")
	if wc == nil {
		t.Fatal("workspace state not written")
	}
	if wc.WorkspaceName != "platform" {
		t.Errorf("WorkspaceName = %q", wc.WorkspaceName)
	}
	if len(wc.Repositories) != 2 {
		t.Fatalf("Repositories = %+v, want 2", wc.Repositories)
	}
	if wc.Repositories["api"].WikiSpace != "api-docs" {
		t.Errorf("api WikiSpace = %q", wc.Repositories["api"].WikiSpace)
	}
	if wc.Repositories["web"].WikiSpace != "web" {
		t.Errorf("web WikiSpace = %q, want defaulted from path", wc.Repositories["web"].WikiSpace)
	}
	if wc.SystemArchitecture.WikiSpace != "platform-architecture" {
		t.Errorf("architecture space = %q", wc.SystemArchitecture.WikiSpace)
	}
}

func TestInitWorkspaceTool_BadRepositoriesJSON(t *testing.T) {
	tool := NewInitWorkspaceTool(newTestManager(t, tempRepo(t)), nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"repositories": "not json {{{",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for malformed repositories JSON")
	}
	if !containsStr(getResultText(result), "JSON array") {
		t.Errorf("error should explain the expected shape: %s", getResultText(result))
	}
}

func TestInitWorkspaceTool_EntryWithoutPath(t *testing.T) {
	tool := NewInitWorkspaceTool(newTestManager(t, tempRepo(t)), nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"repositories": `[{"name":"api"}]`,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for entry without path")
	}
}

func TestInitWorkspaceTool_AutoDetects(t *testing.T) {
	repo := tempRepo(t)
	ws := filepath.Dir(repo)
	// A second repository beside the first makes ws enumerable.
	writeTestFile(t, filepath.Join(ws, "other", ".git", "HEAD"), "ref: refs/heads/main\n")

	mgr := newTestManager(t, ws)
	tool := NewInitWorkspaceTool(mgr, nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"root": ws,
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}

	wc := mgr.LoadWorkspaceContext(ws)
	if _, ok := wc.Repositories["svc"]; !ok {
		t.Errorf("auto-detect missed svc: %+v", wc.Repositories)
	}
	if _, ok := wc.Repositories["other"]; !ok {
		t.Errorf("auto-detect missed other: %+v", wc.Repositories)
	}
}
