// Package config loads linkcheck's startup configuration.
//
// # Configuration Discovery
//
// The Load function follows this resolution order:
//
//  1. .env.local and .env in the working directory are loaded into the
//     environment (existing variables win)
//  2. If a path is explicitly provided, use it
//  3. Otherwise, use ~/.config/linkcheck/config.toml (default)
//  4. If the config file doesn't exist, fall back to defaults
//  5. If the file exists but fields are missing/empty, use defaults
//  6. LINKCHECK_API_URL, then API_URL, override api_url
//
// # Default Values
//
//   - Config file: ~/.config/linkcheck/config.toml
//   - API endpoint: http://localhost:8080
//   - Request timeout: 60 seconds
//   - Page size: 10
//   - Log file: ~/.local/share/linkcheck/linkcheck.log
//   - Log level: info
//   - Preferences: ~/.config/linkcheck/prefs.toml
//
// # TOML Format
//
//	api_url = "http://localhost:8080"
//	request_timeout_seconds = 60
//	page_size = 20
//	log_file = "~/.local/share/linkcheck/linkcheck.log"
//	log_level = "debug"
//
// # Validation
//
// api_url must be an http or https URL with a host. page_size must be one of
// 10, 20, 30, 40 or 50. A negative timeout is rejected; zero means default.
// Paths starting with ~ are expanded against the user's home directory.
package config
