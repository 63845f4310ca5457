// Package cli defines the linkcheck command tree.
//
// The root command starts the interactive TUI. The check subcommand runs one
// crawl through the same submission controller and table engine and prints a
// single page as a go-pretty table or as JSON, together with the view address
// that reopens the same filters and sort in the TUI. The logs subcommand
// prints the end of the log file the TUI writes to.
package cli
