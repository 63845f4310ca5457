package ui

import (
	"github.com/five82/linkcheck/internal/table"
)

const rootPath = "/"

// addressBar is the TUI's stand-in for a browser location: a path plus query
// string shown in the header and rewritten in place as the view changes.
type addressBar struct {
	path    string
	current string
}

func newAddressBar(initial string) *addressBar {
	path, query := table.SplitAddress(initial)
	if path == "" {
		path = rootPath
	}
	return &addressBar{path: path, current: table.JoinAddress(path, query)}
}

// Path implements table.Location.
func (a *addressBar) Path() string {
	return a.path
}

// Replace implements table.Location.
func (a *addressBar) Replace(address string) {
	a.current = address
}

// String returns the current address.
func (a *addressBar) String() string {
	return a.current
}

// Query returns the current raw query.
func (a *addressBar) Query() string {
	_, query := table.SplitAddress(a.current)
	return query
}
