// Package logtail reads the end of linkcheck's log file.
//
// The TUI owns the terminal, so everything it logs goes to a JSON file
// written by zap. Tail returns the last lines of that file without loading it
// whole, Parse decodes a line into an Entry, and Format renders an entry on a
// single line for the logs command. Lines that are not JSON pass through as
// plain messages.
package logtail
