package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

// --- Load ---

func TestLoad_MissingFileYieldsDefaults(t *testing.T) {
	s, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(s.ExcludeDirs) != 0 {
		t.Errorf("ExcludeDirs = %v, want empty", s.ExcludeDirs)
	}
	if s.JournalPath != "" {
		t.Errorf("JournalPath = %q, want empty", s.JournalPath)
	}
	if s.DisableJournal {
		t.Error("DisableJournal = true, want false")
	}
}

func TestLoad_ReadsTOML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	content := `
exclude_dirs = ["node_modules", "bazel-out"]
journal_path = "/tmp/wikijs-journal.db"
disable_journal = false
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !reflect.DeepEqual(s.ExcludeDirs, []string{"node_modules", "bazel-out"}) {
		t.Errorf("ExcludeDirs = %v", s.ExcludeDirs)
	}
	if s.JournalPath != "/tmp/wikijs-journal.db" {
		t.Errorf("JournalPath = %q", s.JournalPath)
	}
}

func TestLoad_MalformedFileIsAnError(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte("exclude_dirs = [not toml"), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	if _, err := Load(path); err == nil {
		t.Fatal("expected error for malformed TOML")
	}
}

// --- Environment overrides ---

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(`journal_path = "/from/file.db"`), 0o644); err != nil {
		t.Fatalf("write: %v", err)
	}

	t.Setenv("WIKIJS_MCP_JOURNAL_PATH", "/from/env.db")
	t.Setenv("WIKIJS_MCP_EXCLUDE_DIRS", "node_modules , target,,dist")
	t.Setenv("WIKIJS_MCP_DISABLE_JOURNAL", "true")

	s, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if s.JournalPath != "/from/env.db" {
		t.Errorf("JournalPath = %q, want env value", s.JournalPath)
	}
	if !reflect.DeepEqual(s.ExcludeDirs, []string{"node_modules", "target", "dist"}) {
		t.Errorf("ExcludeDirs = %v, want trimmed list", s.ExcludeDirs)
	}
	if !s.DisableJournal {
		t.Error("DisableJournal = false, want true from env")
	}
}

func TestLoad_EnvAloneWithoutFile(t *testing.T) {
	t.Setenv("WIKIJS_MCP_DISABLE_JOURNAL", "1")

	s, err := Load(filepath.Join(t.TempDir(), "config.toml"))
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if !s.DisableJournal {
		t.Error("DisableJournal = false, want true from env without a file")
	}
}

// --- Path helpers ---

func TestDefaultPath_UnderHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skipf("no home dir: %v", err)
	}
	want := filepath.Join(home, ".wikijs-mcp", "config.toml")
	if got := DefaultPath(); got != want {
		t.Errorf("DefaultPath = %q, want %q", got, want)
	}
}
