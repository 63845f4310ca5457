package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	dir := t.TempDir()
	path := filepath.Join(dir, "config.toml")
	body = strings.ReplaceAll(body, "$DIR", filepath.ToSlash(dir))
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestSetupWiresDependencies(t *testing.T) {
	t.Setenv("LINKCHECK_API_URL", "")
	t.Setenv("API_URL", "")
	path := writeConfig(t, `
api_url = "http://backend.test:9000/"
request_timeout_seconds = 5
page_size = 20
log_file = "$DIR/logs/linkcheck.log"
`)

	env, err := Setup(Options{ConfigPath: path, Verbose: true})
	if err != nil {
		t.Fatalf("Setup: %v", err)
	}
	defer env.Close()

	if got := env.Client.BaseURL(); got != "http://backend.test:9000" {
		t.Fatalf("BaseURL = %q, want %q", got, "http://backend.test:9000")
	}
	if env.Config.RequestTimeout != 5*time.Second {
		t.Fatalf("RequestTimeout = %v, want 5s", env.Config.RequestTimeout)
	}
	if env.Controller.Store() != env.Store {
		t.Fatal("controller does not share the env store")
	}
	if env.Controller.Busy() {
		t.Fatal("new controller is busy")
	}
	if _, err := os.Stat(filepath.Dir(env.Config.LogFile)); err != nil {
		t.Fatalf("log dir not created: %v", err)
	}
}

func TestSetupRejectsBadConfig(t *testing.T) {
	t.Setenv("LINKCHECK_API_URL", "")
	t.Setenv("API_URL", "")
	path := writeConfig(t, `api_url = "ftp://backend.test"`)

	if _, err := Setup(Options{ConfigPath: path}); err == nil {
		t.Fatal("Setup succeeded with a non-http api_url")
	} else if !strings.Contains(err.Error(), "load config") {
		t.Fatalf("error = %v, want load config context", err)
	}
}

func TestEnvCloseNil(t *testing.T) {
	var env *Env
	env.Close()
}
