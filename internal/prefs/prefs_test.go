package prefs

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.DarkMode != nil {
		t.Fatalf("DarkMode = %v, want nil", *p.DarkMode)
	}
	if p.LastView != "" {
		t.Fatalf("LastView = %q, want empty", p.LastView)
	}
}

func TestLoad_ReadsExistingFile(t *testing.T) {
	home := t.TempDir()
	t.Setenv("HOME", home)

	prefsDir := filepath.Join(home, ".config", "linkcheck")
	if err := os.MkdirAll(prefsDir, 0o755); err != nil {
		t.Fatalf("MkdirAll: %v", err)
	}

	prefsFile := filepath.Join(prefsDir, "prefs.toml")
	body := "dark_mode = true\nlast_view = \" /?sortColumn=url&sortDir=desc \"\n"
	if err := os.WriteFile(prefsFile, []byte(body), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load("")
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if p.DarkMode == nil || !*p.DarkMode {
		t.Fatalf("DarkMode = %v, want true", p.DarkMode)
	}
	if p.LastView != "/?sortColumn=url&sortDir=desc" {
		t.Fatalf("LastView = %q, want %q", p.LastView, "/?sortColumn=url&sortDir=desc")
	}
}

func TestSave_CreatesFileAndDirs(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "subdir", "prefs.toml")

	p := Prefs{LastView: "/?filter_status=broken"}.WithDarkMode(false)
	if err := Save(prefsFile, p); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	loaded, err := Load(prefsFile)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if loaded.DarkMode == nil || *loaded.DarkMode {
		t.Fatalf("DarkMode = %v, want false", loaded.DarkMode)
	}
	if loaded.LastView != p.LastView {
		t.Fatalf("LastView = %q, want %q", loaded.LastView, p.LastView)
	}
}

func TestSave_OmitsUnsetDarkMode(t *testing.T) {
	prefsFile := filepath.Join(t.TempDir(), "prefs.toml")
	if err := Save(prefsFile, Prefs{LastView: "/"}); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}

	data, err := os.ReadFile(prefsFile)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if strings.Contains(string(data), "dark_mode") {
		t.Fatalf("prefs file = %q, want no dark_mode key", data)
	}
}

func TestLoad_InvalidTOMLReturnsErrorAndDefaults(t *testing.T) {
	tmp := t.TempDir()
	prefsFile := filepath.Join(tmp, "prefs.toml")
	if err := os.WriteFile(prefsFile, []byte("not valid toml {{{\n"), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	p, err := Load(prefsFile)
	if err == nil || !strings.Contains(err.Error(), "parse prefs") {
		t.Fatalf("Load error = %v, want parse prefs error", err)
	}
	if p.DarkMode != nil || p.LastView != "" {
		t.Fatalf("Load = %+v, want zero prefs", p)
	}
}

func TestLoad_DirectoryIsAnError(t *testing.T) {
	p, err := Load(t.TempDir())
	if err == nil {
		t.Fatal("Load on a directory returned nil error")
	}
	if p.DarkMode != nil || p.LastView != "" {
		t.Fatalf("Load = %+v, want zero prefs", p)
	}
}

func TestResolveDarkMode(t *testing.T) {
	dark := func() bool { return true }
	light := func() bool { return false }

	if got := (Prefs{}).ResolveDarkMode(dark); !got {
		t.Fatalf("ResolveDarkMode(unset, dark platform) = false, want true")
	}
	if got := (Prefs{}).ResolveDarkMode(nil); got {
		t.Fatalf("ResolveDarkMode(unset, nil platform) = true, want false")
	}
	if got := (Prefs{}).WithDarkMode(false).ResolveDarkMode(dark); got {
		t.Fatalf("ResolveDarkMode(saved light, dark platform) = true, want false")
	}
	if got := (Prefs{}).WithDarkMode(true).ResolveDarkMode(light); !got {
		t.Fatalf("ResolveDarkMode(saved dark, light platform) = false, want true")
	}
}
