package tools

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/redairforce/wikijs-mcp/internal/wikicontext"
)

// --- AddMappingTool ---

func TestAddMappingTool_Success(t *testing.T) {
	repo := tempRepo(t)
	mgr := newTestManager(t, repo)
	if _, err := mgr.InitRepository(wikicontext.InitRepositoryOptions{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	writeTestFile(t, filepath.Join(repo, "docs", "api.md"), "content")

	tool := NewAddMappingTool(mgr, nil)
	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"file_path": "docs/api.md",
		"page_id":   float64(12),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if isErrorResult(result) {
		t.Fatalf("unexpected error result: %s", getResultText(result))
	}

	text := getResultText(result)
	if !containsStr(text, "File Mapping Saved") {
		t.Errorf("unexpected response:\n%s", text)
	}
	if m := mgr.GetFileMapping("docs/api.md"); m == nil || m.PageID != 12 {
		t.Errorf("mapping = %+v, want pageId 12", m)
	}
}

func TestAddMappingTool_MissingArgs(t *testing.T) {
	tool := NewAddMappingTool(newTestManager(t, tempRepo(t)), nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"page_id": float64(12),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing file_path")
	}

	result, err = tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"file_path": "docs/api.md",
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing page_id")
	}
}

func TestAddMappingTool_NoContext(t *testing.T) {
	tool := NewAddMappingTool(newTestManager(t, tempRepo(t)), nil)

	result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
		"file_path": "docs/api.md",
		"page_id":   float64(12),
	}))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result without repository context")
	}
	if !containsStr(getResultText(result), "wiki_init_repository") {
		t.Errorf("error should point at init: %s", getResultText(result))
	}
}

// --- HasChangedTool ---

func TestHasChangedTool_TruthTable(t *testing.T) {
	repo := tempRepo(t)
	mgr := newTestManager(t, repo)
	if _, err := mgr.InitRepository(wikicontext.InitRepositoryOptions{}); err != nil {
		t.Fatalf("init: %v", err)
	}
	writeTestFile(t, filepath.Join(repo, "readme.md"), "v1")

	tool := NewHasChangedTool(mgr)
	check := func(t *testing.T, wantChanged bool) string {
		t.Helper()
		result, err := tool.Handle(context.Background(), callRequest(map[string]interface{}{
			"file_path": "readme.md",
		}))
		if err != nil {
			t.Fatalf("Handle: %v", err)
		}
		text := getResultText(result)
		want := "**Changed:** yes"
		if !wantChanged {
			want = "**Changed:** no"
		}
		if !containsStr(text, want) {
			t.Errorf("want %q in:\n%s", want, text)
		}
		return text
	}

	// Untracked.
	text := check(t, true)
	if !containsStr(text, "not tracked") {
		t.Errorf("untracked hint missing:\n%s", text)
	}

	if _, err := mgr.AddFileMapping("readme.md", 7, ""); err != nil {
		t.Fatalf("AddFileMapping: %v", err)
	}
	check(t, false)

	writeTestFile(t, filepath.Join(repo, "readme.md"), "v2")
	text = check(t, true)
	if !containsStr(text, "page 7") {
		t.Errorf("stored mapping missing from response:\n%s", text)
	}
}

func TestHasChangedTool_MissingPath(t *testing.T) {
	tool := NewHasChangedTool(newTestManager(t, tempRepo(t)))

	result, err := tool.Handle(context.Background(), callRequest(nil))
	if err != nil {
		t.Fatalf("Handle: %v", err)
	}
	if !isErrorResult(result) {
		t.Fatal("expected error result for missing file_path")
	}
}
