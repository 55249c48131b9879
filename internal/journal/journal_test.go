package journal_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/redairforce/wikijs-mcp/internal/journal"
)

// newTestStore creates a Store backed by a temp directory for isolation.
func newTestStore(t *testing.T) *journal.Store {
	t.Helper()
	s, err := journal.New(journal.Config{
		Path: filepath.Join(t.TempDir(), "journal.db"),
	})
	if err != nil {
		t.Fatalf("failed to create journal: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

// ─── New / Initialization ────────────────────────────────────────────────────

func TestNew_CreatesDBFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "journal.db")

	s, err := journal.New(journal.Config{Path: path})
	if err != nil {
		t.Fatalf("New() error: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); err != nil {
		t.Fatalf("database file not created: %v", err)
	}
}

func TestNew_IdempotentReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "journal.db")

	s1, err := journal.New(journal.Config{Path: path})
	if err != nil {
		t.Fatalf("first open: %v", err)
	}
	if _, err := s1.Record(journal.KindRepoInit, "/repo", "initialized"); err != nil {
		t.Fatalf("record: %v", err)
	}
	s1.Close()

	s2, err := journal.New(journal.Config{Path: path})
	if err != nil {
		t.Fatalf("second open: %v", err)
	}
	defer s2.Close()

	events, err := s2.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 1 {
		t.Fatalf("events after reopen = %d, want 1", len(events))
	}
}

// ─── Record / Recent ─────────────────────────────────────────────────────────

func TestRecord_ReturnsIncreasingIDs(t *testing.T) {
	s := newTestStore(t)

	first, err := s.Record(journal.KindRepoInit, "/repo", "initialized")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	second, err := s.Record(journal.KindFileMapping, "/repo", "docs/api.md -> page 12")
	if err != nil {
		t.Fatalf("record: %v", err)
	}
	if second <= first {
		t.Errorf("ids not increasing: %d then %d", first, second)
	}
}

func TestRecent_NewestFirst(t *testing.T) {
	s := newTestStore(t)

	for _, detail := range []string{"one", "two", "three"} {
		if _, err := s.Record(journal.KindFileMapping, "/repo", detail); err != nil {
			t.Fatalf("record %q: %v", detail, err)
		}
	}

	events, err := s.Recent(10)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 3 {
		t.Fatalf("events = %d, want 3", len(events))
	}
	if events[0].Detail != "three" || events[2].Detail != "one" {
		t.Errorf("order = [%s %s %s], want newest first", events[0].Detail, events[1].Detail, events[2].Detail)
	}
	if events[0].CreatedAt == "" {
		t.Error("CreatedAt not populated")
	}
}

func TestRecent_RespectsLimit(t *testing.T) {
	s := newTestStore(t)

	for i := 0; i < 8; i++ {
		if _, err := s.Record(journal.KindArchLink, "/ws", "link"); err != nil {
			t.Fatalf("record: %v", err)
		}
	}

	events, err := s.Recent(5)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 5 {
		t.Errorf("events = %d, want 5", len(events))
	}
}

func TestRecent_DefaultLimit(t *testing.T) {
	s := newTestStore(t)

	events, err := s.Recent(0)
	if err != nil {
		t.Fatalf("Recent: %v", err)
	}
	if len(events) != 0 {
		t.Errorf("events = %d on empty journal, want 0", len(events))
	}
}
