package ui

import "github.com/charmbracelet/bubbles/key"

// keyMap defines all keyboard bindings for the application.
type keyMap struct {
	// Global
	Quit        key.Binding
	Help        key.Binding
	ToggleTheme key.Binding
	Tab         key.Binding
	Escape      key.Binding
	Confirm     key.Binding

	// Form
	EditURL key.Binding

	// Navigation
	Up       key.Binding
	Down     key.Binding
	Top      key.Binding
	Bottom   key.Binding
	NextPage key.Binding
	PrevPage key.Binding
	PageSize key.Binding

	// Filtering
	Filter       key.Binding
	NextFilter   key.Binding
	ToggleOption key.Binding
	ClearFilters key.Binding

	// Sorting
	SortColumn    key.Binding
	SortDirection key.Binding
	SortByIndex   key.Binding

	// Columns
	Columns    key.Binding
	MoveLeft   key.Binding
	MoveRight  key.Binding
	ToggleShow key.Binding
}

// DefaultKeyMap returns the default key bindings.
func DefaultKeyMap() keyMap {
	return keyMap{
		// Global
		Quit: key.NewBinding(
			key.WithKeys("ctrl+c", "q"),
			key.WithHelp("q", "Quit"),
		),
		Help: key.NewBinding(
			key.WithKeys("?"),
			key.WithHelp("?", "Toggle help"),
		),
		ToggleTheme: key.NewBinding(
			key.WithKeys("T"),
			key.WithHelp("T", "Dark/light theme"),
		),
		Tab: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next field"),
		),
		Escape: key.NewBinding(
			key.WithKeys("esc"),
			key.WithHelp("esc", "Back to table"),
		),
		Confirm: key.NewBinding(
			key.WithKeys("enter"),
			key.WithHelp("enter", "Check links"),
		),

		// Form
		EditURL: key.NewBinding(
			key.WithKeys("u", "i"),
			key.WithHelp("u", "Edit URL and depth"),
		),

		// Navigation
		Up: key.NewBinding(
			key.WithKeys("k", "up"),
			key.WithHelp("k/up", "Move up"),
		),
		Down: key.NewBinding(
			key.WithKeys("j", "down"),
			key.WithHelp("j/down", "Move down"),
		),
		Top: key.NewBinding(
			key.WithKeys("g", "home"),
			key.WithHelp("g", "First row"),
		),
		Bottom: key.NewBinding(
			key.WithKeys("G", "end"),
			key.WithHelp("G", "Last row"),
		),
		NextPage: key.NewBinding(
			key.WithKeys("]", "right", "pgdown"),
			key.WithHelp("]", "Next page"),
		),
		PrevPage: key.NewBinding(
			key.WithKeys("[", "left", "pgup"),
			key.WithHelp("[", "Previous page"),
		),
		PageSize: key.NewBinding(
			key.WithKeys("z"),
			key.WithHelp("z", "Cycle page size"),
		),

		// Filtering
		Filter: key.NewBinding(
			key.WithKeys("/", "f"),
			key.WithHelp("/", "Filter"),
		),
		NextFilter: key.NewBinding(
			key.WithKeys("tab"),
			key.WithHelp("tab", "Next filter column"),
		),
		ToggleOption: key.NewBinding(
			key.WithKeys(" ", "x"),
			key.WithHelp("space", "Toggle option"),
		),
		ClearFilters: key.NewBinding(
			key.WithKeys("X"),
			key.WithHelp("X", "Clear all filters"),
		),

		// Sorting
		SortColumn: key.NewBinding(
			key.WithKeys("s"),
			key.WithHelp("s", "Cycle sort column"),
		),
		SortDirection: key.NewBinding(
			key.WithKeys("o"),
			key.WithHelp("o", "Asc/desc/none"),
		),
		SortByIndex: key.NewBinding(
			key.WithKeys("1", "2", "3", "4", "5"),
			key.WithHelp("1-5", "Sort by visible column"),
		),

		// Columns
		Columns: key.NewBinding(
			key.WithKeys("c"),
			key.WithHelp("c", "Arrange columns"),
		),
		MoveLeft: key.NewBinding(
			key.WithKeys("K", "shift+up"),
			key.WithHelp("K", "Move column left"),
		),
		MoveRight: key.NewBinding(
			key.WithKeys("J", "shift+down"),
			key.WithHelp("J", "Move column right"),
		),
		ToggleShow: key.NewBinding(
			key.WithKeys(" ", "v"),
			key.WithHelp("space", "Show/hide column"),
		),
	}
}

// ShortHelp returns key bindings for the short help view.
func (k keyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.EditURL, k.Filter, k.SortDirection, k.NextPage, k.Help, k.Quit}
}

// FullHelp returns key bindings for the full help view.
func (k keyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		// Check
		{k.EditURL, k.Tab, k.Confirm, k.Escape},
		// Table
		{k.Up, k.Down, k.Top, k.Bottom, k.NextPage, k.PrevPage, k.PageSize},
		// Filter
		{k.Filter, k.NextFilter, k.ToggleOption, k.ClearFilters},
		// Sort
		{k.SortColumn, k.SortDirection, k.SortByIndex},
		// Columns
		{k.Columns, k.MoveLeft, k.MoveRight, k.ToggleShow},
		// General
		{k.ToggleTheme, k.Help, k.Quit},
	}
}

// helpSectionTitles names the FullHelp groups, in order.
var helpSectionTitles = []string{"Check", "Table", "Filter", "Sort", "Columns", "General"}
