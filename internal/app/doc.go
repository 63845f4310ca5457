// Package app is the composition root for linkcheck.
//
// Setup loads the configuration (TOML file, .env files, environment), opens
// the zap log file, and wires the backend client, the result store and the
// submission controller. Run hands that set to the TUI together with the saved
// preferences; the check command in internal/cli uses the same Setup.
//
// Startup only fails on configuration, logger or client construction errors.
// An unreachable backend is reported by the UI's health probe in the header
// and by the error of the first check; it never blocks the UI from starting.
package app
