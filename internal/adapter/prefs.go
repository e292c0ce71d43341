package adapter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds state remembered between sessions.
// They are stored in ~/.config/logbook/prefs.toml.
type Prefs struct {
	LastCategory     string `toml:"last_category"`
	CollapseComments bool   `toml:"collapse_comments"`
}

// DefaultPrefsPath returns the default preferences file path.
func DefaultPrefsPath() string {
	return filepath.Join(DefaultConfigDir(), "prefs.toml")
}

// LoadPrefs reads preferences, falling back to defaults when the file is
// missing or unreadable.
func LoadPrefs(path string) Prefs {
	var p Prefs
	data, err := os.ReadFile(ExpandPath(path))
	if err != nil {
		return p
	}
	if err := toml.Unmarshal(data, &p); err != nil {
		return Prefs{}
	}
	return p
}

// SavePrefs writes preferences, creating directories as needed.
func SavePrefs(path string, p Prefs) error {
	if path == "" {
		return errors.New("prefs path required")
	}
	resolved := ExpandPath(path)
	if err := os.MkdirAll(filepath.Dir(resolved), 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}
	data, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}
	tmp := resolved + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}
	return os.Rename(tmp, resolved)
}
