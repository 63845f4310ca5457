// Package ui provides the terminal user interface for linkcheck.
//
// # Architecture Overview
//
// The UI is a Bubble Tea program. Model owns one table.Table and its
// table.ViewState, the check form inputs and an address bar that stands in
// for a browser location. Every filter or sort change is written back into
// the address by a table.Synchronizer, and the address is saved to the
// preferences file on exit so the next session reopens the same view.
//
// # Package Structure
//
//   - app.go: Model, Update routing by focus, commands and Run
//   - header.go: status bar, address bar and command bar
//   - form.go: URL and depth fields with validation messages
//   - results.go: column header, page rows, detail line, pager, filter bar
//   - columns_panel.go: column order and visibility overlay
//   - help.go: keyboard shortcut overlay
//   - keys.go: key bindings
//   - theme.go, style_helpers.go: dark and light palettes
//
// # Event Flow
//
//  1. New seeds the view state from the initial address and installs the
//     synchronizer.
//  2. Enter on the form runs submit.Controller.Prepare; a valid request is
//     executed in a command and lands in state.Store.
//  3. A one second tick pulls the store. A new generation replaces the table
//     rows and returns to the first page.
//  4. Keys mutate the view state; the next View call recomputes the page.
//
// # Key Bindings
//
//   - u: Edit URL and depth; enter checks, esc returns to the table
//   - /: Filter; tab cycles columns, space toggles options, X clears
//   - s, o, 1-5: Sort column, direction, or sort by visible column
//   - [ ]: Previous and next page; z cycles the page size
//   - c: Arrange columns
//   - T: Toggle dark mode
//   - q or Ctrl+C: Exit
package ui
