// Package config loads server settings from an optional TOML file with
// WIKIJS_MCP_* environment overrides layered on top.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
)

// Settings holds the tunable server configuration. The zero value selects
// every built-in default.
type Settings struct {
	// ExcludeDirs are directory names pruned during repository
	// enumeration. Empty selects the built-in cache/build set.
	ExcludeDirs []string `toml:"exclude_dirs"`

	// JournalPath is the SQLite sync-journal file. Empty selects
	// ~/.wikijs-mcp/journal.db.
	JournalPath string `toml:"journal_path"`

	// DisableJournal turns the sync journal off entirely.
	DisableJournal bool `toml:"disable_journal"`
}

// DefaultPath returns the settings file location under the user's home
// directory.
func DefaultPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".wikijs-mcp", "config.toml")
	}
	return filepath.Join(home, ".wikijs-mcp", "config.toml")
}

// Load reads settings from the TOML file at path, then applies environment
// overrides. A missing file yields defaults; a present but malformed file
// is an error so a typo does not silently reset the configuration.
func Load(path string) (*Settings, error) {
	var s Settings
	if _, err := os.Stat(path); err == nil {
		if _, err := toml.DecodeFile(path, &s); err != nil {
			return nil, fmt.Errorf("parsing %s: %w", path, err)
		}
	}
	applyEnv(&s)
	return &s, nil
}

// applyEnv layers WIKIJS_MCP_* variables over file values.
func applyEnv(s *Settings) {
	if v := os.Getenv("WIKIJS_MCP_EXCLUDE_DIRS"); v != "" {
		s.ExcludeDirs = splitList(v)
	}
	if v := os.Getenv("WIKIJS_MCP_JOURNAL_PATH"); v != "" {
		s.JournalPath = v
	}
	if v := os.Getenv("WIKIJS_MCP_DISABLE_JOURNAL"); v == "1" || strings.EqualFold(v, "true") {
		s.DisableJournal = true
	}
}

// splitList splits a comma-separated value, trimming whitespace and
// dropping empty items.
func splitList(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
