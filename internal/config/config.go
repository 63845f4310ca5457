package config

import (
	"errors"
	"fmt"
	"io"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	toml "github.com/pelletier/go-toml/v2"

	"github.com/five82/linkcheck/internal/table"
)

// Config holds the settings linkcheck reads at startup.
type Config struct {
	APIURL         string
	RequestTimeout time.Duration
	PageSize       int
	LogFile        string
	LogLevel       string
}

const (
	defaultConfigPath     = "~/.config/linkcheck/config.toml"
	defaultAPIURL         = "http://localhost:8080"
	defaultRequestTimeout = 60 * time.Second
	defaultPageSize       = table.DefaultPageSize
	defaultLogFile        = "~/.local/share/linkcheck/linkcheck.log"
	defaultLogLevel       = "info"
)

// Environment variables that override api_url, first match wins.
var apiURLEnv = []string{"LINKCHECK_API_URL", "API_URL"}

// Default returns the configuration used when no file exists.
func Default() Config {
	return Config{
		APIURL:         defaultAPIURL,
		RequestTimeout: defaultRequestTimeout,
		PageSize:       defaultPageSize,
		LogFile:        mustExpand(defaultLogFile),
		LogLevel:       defaultLogLevel,
	}
}

// Load reads .env files, then the TOML config at path (or the default
// location), falling back to defaults when the file is missing. Environment
// overrides are applied last.
func Load(path string) (Config, error) {
	if err := loadEnvFiles(); err != nil {
		return Config{}, err
	}

	resolved, err := resolvePath(path)
	if err != nil {
		return Config{}, err
	}

	cfg := Default()

	file, err := os.Open(resolved)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return applyEnv(cfg)
		}
		return Config{}, fmt.Errorf("open config: %w", err)
	}
	defer file.Close()

	bytes, err := io.ReadAll(file)
	if err != nil {
		return Config{}, fmt.Errorf("read config: %w", err)
	}

	var raw struct {
		APIURL                string `toml:"api_url"`
		RequestTimeoutSeconds int    `toml:"request_timeout_seconds"`
		PageSize              int    `toml:"page_size"`
		LogFile               string `toml:"log_file"`
		LogLevel              string `toml:"log_level"`
	}
	if err := toml.Unmarshal(bytes, &raw); err != nil {
		return Config{}, fmt.Errorf("parse config: %w", err)
	}

	if v := strings.TrimSpace(raw.APIURL); v != "" {
		cfg.APIURL = v
	}

	switch {
	case raw.RequestTimeoutSeconds < 0:
		return Config{}, fmt.Errorf("request_timeout_seconds must not be negative: %d", raw.RequestTimeoutSeconds)
	case raw.RequestTimeoutSeconds > 0:
		cfg.RequestTimeout = time.Duration(raw.RequestTimeoutSeconds) * time.Second
	}

	if raw.PageSize != 0 {
		if !table.ValidPageSize(raw.PageSize) {
			return Config{}, fmt.Errorf("page_size must be one of %v: %d", table.PageSizes, raw.PageSize)
		}
		cfg.PageSize = raw.PageSize
	}

	if v := strings.TrimSpace(raw.LogFile); v != "" {
		cfg.LogFile = mustExpand(v)
	}
	if v := strings.TrimSpace(raw.LogLevel); v != "" {
		cfg.LogLevel = strings.ToLower(v)
	}

	return applyEnv(cfg)
}

func applyEnv(cfg Config) (Config, error) {
	for _, key := range apiURLEnv {
		if v := strings.TrimSpace(os.Getenv(key)); v != "" {
			cfg.APIURL = v
			break
		}
	}
	if err := validateAPIURL(cfg.APIURL); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func validateAPIURL(raw string) error {
	u, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("parse api_url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return fmt.Errorf("api_url must be http or https: %q", raw)
	}
	if u.Host == "" {
		return fmt.Errorf("api_url missing host: %q", raw)
	}
	return nil
}

// loadEnvFiles loads .env.local then .env from the working directory.
// Variables already set are left alone, so .env.local wins over .env and the
// real environment wins over both.
func loadEnvFiles() error {
	for _, name := range []string{".env.local", ".env"} {
		if err := godotenv.Load(name); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("load %s: %w", name, err)
		}
	}
	return nil
}

// DefaultPrefsPath returns where UI preferences live unless overridden.
func DefaultPrefsPath() string {
	return mustExpand("~/.config/linkcheck/prefs.toml")
}

func resolvePath(path string) (string, error) {
	if strings.TrimSpace(path) == "" {
		return expandPath(defaultConfigPath)
	}
	return expandPath(path)
}

func mustExpand(path string) string {
	expanded, err := expandPath(path)
	if err != nil {
		return path
	}
	return expanded
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
