// Package prefs handles linkcheck user preferences persistence.
// Preferences are stored in ~/.config/linkcheck/prefs.toml.
package prefs

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
)

// Prefs holds user preferences for linkcheck.
type Prefs struct {
	// DarkMode is nil until the user toggles the theme once.
	DarkMode *bool `toml:"dark_mode,omitempty"`
	// LastView is the last address written by the results table.
	LastView string `toml:"last_view,omitempty"`
}

const defaultPrefsPath = "~/.config/linkcheck/prefs.toml"

// DefaultPath returns the default preferences file path.
func DefaultPath() string {
	return defaultPrefsPath
}

// Load reads preferences from the given path. A missing file yields zero
// prefs and no error. An unreadable or malformed file yields zero prefs and
// the error, so callers can report it and carry on with defaults.
func Load(path string) (Prefs, error) {
	resolved, err := resolvePath(path)
	if err != nil {
		return Prefs{}, fmt.Errorf("resolve path: %w", err)
	}

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return Prefs{}, nil
		}
		return Prefs{}, fmt.Errorf("open prefs: %w", err)
	}
	defer func() { _ = file.Close() }()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Prefs{}, fmt.Errorf("read prefs: %w", err)
	}

	var prefs Prefs
	if err := toml.Unmarshal(bytes, &prefs); err != nil {
		return Prefs{}, fmt.Errorf("parse prefs %s: %w", resolved, err)
	}
	prefs.LastView = strings.TrimSpace(prefs.LastView)

	return prefs, nil
}

// Save writes preferences to the given path, creating directories as needed.
func Save(path string, p Prefs) error {
	resolved, err := resolvePath(path)
	if err != nil {
		return fmt.Errorf("resolve path: %w", err)
	}

	dir := filepath.Dir(resolved)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create prefs dir: %w", err)
	}

	bytes, err := toml.Marshal(p)
	if err != nil {
		return fmt.Errorf("marshal prefs: %w", err)
	}

	if err := os.WriteFile(resolved, bytes, 0o644); err != nil {
		return fmt.Errorf("write prefs: %w", err)
	}

	return nil
}

// ResolveDarkMode returns the saved choice, or asks platform when none was
// saved. A nil platform means light.
func (p Prefs) ResolveDarkMode(platform func() bool) bool {
	if p.DarkMode != nil {
		return *p.DarkMode
	}
	if platform == nil {
		return false
	}
	return platform()
}

// WithDarkMode returns a copy with the dark mode choice recorded.
func (p Prefs) WithDarkMode(dark bool) Prefs {
	p.DarkMode = &dark
	return p
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultPrefsPath)
	}
	return expandPath(path)
}

func expandPath(path string) (string, error) {
	trimmed := strings.TrimSpace(path)
	if trimmed == "" {
		return "", fmt.Errorf("path is empty")
	}
	if strings.HasPrefix(trimmed, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		trimmed = filepath.Join(home, strings.TrimPrefix(trimmed, "~"))
	}
	return filepath.Abs(trimmed)
}
