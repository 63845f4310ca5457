package ui

import (
	"context"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/prefs"
	"github.com/five82/linkcheck/internal/submit"
	"github.com/five82/linkcheck/internal/table"
)

type stubChecker struct {
	results []linkcheck.LinkResult
	err     error
}

func (s stubChecker) CheckLinks(context.Context, linkcheck.CheckRequest) ([]linkcheck.LinkResult, error) {
	return s.results, s.err
}

func newTestModel(t *testing.T, opts Options) Model {
	t.Helper()
	if opts.PrefsPath == "" {
		opts.PrefsPath = filepath.Join(t.TempDir(), "prefs.toml")
	}
	m := New(opts)
	updated, _ := m.Update(tea.WindowSizeMsg{Width: 140, Height: 40})
	return updated.(Model)
}

func keyMsg(k string) tea.KeyMsg {
	switch k {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "esc":
		return tea.KeyMsg{Type: tea.KeyEsc}
	case "tab":
		return tea.KeyMsg{Type: tea.KeyTab}
	case " ":
		return tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(k)}
	}
}

func press(t *testing.T, m Model, keys ...string) Model {
	t.Helper()
	for _, k := range keys {
		updated, _ := m.Update(keyMsg(k))
		m = updated.(Model)
	}
	return m
}

// runCmd executes one command and feeds its messages back into the model.
// Commands returned from those updates are dropped.
func runCmd(t *testing.T, m Model, cmd tea.Cmd) Model {
	t.Helper()
	if cmd == nil {
		return m
	}
	msg := cmd()
	if batch, ok := msg.(tea.BatchMsg); ok {
		for _, c := range batch {
			m = runCmd(t, m, c)
		}
		return m
	}
	updated, _ := m.Update(msg)
	return updated.(Model)
}

func sampleResults() []linkcheck.LinkResult {
	return []linkcheck.LinkResult{
		{URL: "https://example.com/", StatusCode: 200, IsWorking: true, ResponseTime: "120ms", Depth: 0},
		{URL: "https://example.com/missing", ParentURL: "https://example.com/", StatusCode: 404, ResponseTime: "80ms", Depth: 1, Error: "not found"},
		{URL: "https://example.com/about", ParentURL: "https://example.com/", StatusCode: 200, IsWorking: true, ResponseTime: "2.5s", Depth: 1},
	}
}

func TestNewSeedsViewFromAddress(t *testing.T) {
	m := newTestModel(t, Options{InitialView: "/?filter_status=broken&sortColumn=url&sortDir=desc"})

	st := m.table.State()
	sorting := st.Sorting()
	if len(sorting) != 1 || sorting[0].ID != table.IDURL || !sorting[0].Desc {
		t.Fatalf("sorting = %+v, want url desc", sorting)
	}
	if v, ok := st.Filters().Get(table.IDIsWorking); !ok || v.String() != "broken" {
		t.Fatalf("status filter = %+v (ok=%v), want broken", v, ok)
	}
	if got, want := m.address.String(), "/?filter_status=broken&sortColumn=url&sortDir=desc"; got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}
}

func TestNewFallsBackToSavedView(t *testing.T) {
	m := newTestModel(t, Options{Prefs: prefs.Prefs{LastView: "/?sortColumn=response_time&sortDir=asc"}})

	sorting := m.table.State().Sorting()
	if len(sorting) != 1 || sorting[0].ID != table.IDResponseTimeMS || sorting[0].Desc {
		t.Fatalf("sorting = %+v, want response time asc", sorting)
	}
}

func TestNewWritesDefaultSortToAddress(t *testing.T) {
	m := newTestModel(t, Options{})

	if got, want := m.address.String(), "/?sortColumn=status&sortDir=asc"; got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}
	if m.focus != focusURL {
		t.Fatalf("focus = %v, want URL field without an initial URL", m.focus)
	}
}

func TestSubmitInvalidURLShowsFieldError(t *testing.T) {
	checker := stubChecker{results: sampleResults()}
	m := newTestModel(t, Options{Controller: submit.New(checker, nil, nil, 0)})

	m = press(t, m, "notaurl", "enter")

	if got := m.fieldErrors[submit.FieldURL]; got != "Please enter a valid URL" {
		t.Fatalf("url error = %q, want validation message", got)
	}
	if m.focus != focusURL {
		t.Fatalf("focus = %v, want URL field", m.focus)
	}
	if m.controller.Busy() {
		t.Fatal("controller busy after rejected submission")
	}
	if m.table.Len() != 0 {
		t.Fatalf("table rows = %d, want 0", m.table.Len())
	}
}

func TestSubmitInstallsResults(t *testing.T) {
	checker := stubChecker{results: sampleResults()}
	m := newTestModel(t, Options{
		Controller: submit.New(checker, nil, nil, 0),
		InitialURL: "https://example.com",
	})

	updated, cmd := m.Update(keyMsg("enter"))
	m = runCmd(t, updated.(Model), cmd)

	if m.table.Len() != 3 {
		t.Fatalf("table rows = %d, want 3", m.table.Len())
	}
	if !m.snapshot.HasResults {
		t.Fatal("snapshot has no results after a successful check")
	}
	view := m.table.View()
	if view.Rows[0].URL != "https://example.com/missing" {
		t.Fatalf("first row = %q, want the broken link first", view.Rows[0].URL)
	}
	if m.controller.Busy() {
		t.Fatal("controller still busy after the check finished")
	}
}

func TestFailedCheckKeepsResults(t *testing.T) {
	store := submit.New(stubChecker{results: sampleResults()}, nil, nil, 0).Store()
	store.Update(linkcheck.CheckRequest{URL: "https://example.com", Depth: 1}, sampleResults(), nil)

	failing := submit.New(stubChecker{err: &linkcheck.APIError{Path: "/check-links", StatusCode: 500, Message: "boom"}}, store, nil, 0)
	m := newTestModel(t, Options{Controller: failing, InitialURL: "https://example.com"})

	updated, cmd := m.Update(keyMsg("enter"))
	m = runCmd(t, updated.(Model), cmd)

	if m.table.Len() != 3 {
		t.Fatalf("table rows = %d, want previous 3 kept", m.table.Len())
	}
	if m.snapshot.LastError == nil {
		t.Fatal("LastError = nil, want the backend error")
	}
	if m.notice != "check failed" {
		t.Fatalf("notice = %q, want %q", m.notice, "check failed")
	}
}

func TestTextFilterUpdatesAddress(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	m = press(t, m, "/", "e", "x")

	if m.focus != focusFilter {
		t.Fatalf("focus = %v, want filter", m.focus)
	}
	if got, want := m.address.String(), "/?filter_url=ex&sortColumn=status&sortDir=asc"; got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}

	m = press(t, m, "enter")
	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table after enter", m.focus)
	}
	if _, ok := m.table.State().Filters().Get(table.IDURL); !ok {
		t.Fatal("url filter dropped when leaving the filter bar")
	}
}

func TestMultiSelectFilterToggle(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	// url -> parent_url -> status
	m = press(t, m, "/", "tab", "tab")
	if got := m.table.State().ActiveFilter(); got != table.ColumnStatus {
		t.Fatalf("active filter = %q, want status", got)
	}

	m = press(t, m, " ")
	if got := m.table.State().Selection(table.ColumnStatus); len(got) != 1 || got[0] != table.StatusWorking {
		t.Fatalf("selection = %v, want [working]", got)
	}
	if !strings.Contains(m.address.String(), "filter_status=working") {
		t.Fatalf("address = %q, want status filter", m.address.String())
	}

	m = press(t, m, "X")
	if m.table.State().Filters().Len() != 0 {
		t.Fatal("filters remain after clear")
	}
	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table after clear", m.focus)
	}
}

func TestSortKeys(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	m = press(t, m, "o")
	sorting := m.table.State().Sorting()
	if len(sorting) != 1 || sorting[0].ID != table.IDIsWorking || !sorting[0].Desc {
		t.Fatalf("sorting = %+v, want status desc", sorting)
	}

	// First visible column is URL.
	m = press(t, m, "1")
	sorting = m.table.State().Sorting()
	if len(sorting) != 1 || sorting[0].ID != table.IDURL || sorting[0].Desc {
		t.Fatalf("sorting = %+v, want url asc", sorting)
	}
	if got, want := m.address.String(), "/?sortColumn=url&sortDir=asc"; got != want {
		t.Fatalf("address = %q, want %q", got, want)
	}
}

func TestColumnsPanelReorderAndHide(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	m = press(t, m, "c", "J", "v", "esc")

	st := m.table.State()
	order := st.ColumnOrder()
	if order[0] != table.ColumnParentURL || order[1] != table.ColumnURL {
		t.Fatalf("order = %v, want parent_url before url", order)
	}
	if !st.Hidden(table.ColumnURL) {
		t.Fatal("url column still visible")
	}
	for _, col := range st.VisibleColumns() {
		if col == table.ColumnURL {
			t.Fatal("hidden column listed as visible")
		}
	}
	if m.focus != focusTable {
		t.Fatalf("focus = %v, want table", m.focus)
	}
}

func TestPageSizeCycles(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	m = press(t, m, "z")
	if got := m.table.State().Page().Size; got != 20 {
		t.Fatalf("page size = %d, want 20", got)
	}
	if got := nextPageSize(50); got != 10 {
		t.Fatalf("nextPageSize(50) = %d, want 10", got)
	}
}

func TestThemeToggleSavesPrefs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path, InitialURL: "https://example.com"})

	m = press(t, m, "T")
	if !m.dark || !m.theme.Dark {
		t.Fatal("theme not switched to dark")
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if saved.DarkMode == nil || !*saved.DarkMode {
		t.Fatalf("DarkMode = %v, want true", saved.DarkMode)
	}
}

func TestQuitSavesLastView(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs.toml")
	m := newTestModel(t, Options{PrefsPath: path, InitialURL: "https://example.com"})
	m = press(t, m, "o")

	_, cmd := m.Update(keyMsg("q"))
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Fatal("quit command did not produce QuitMsg")
	}

	saved, err := prefs.Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if got, want := saved.LastView, "/?sortColumn=status&sortDir=desc"; got != want {
		t.Fatalf("LastView = %q, want %q", got, want)
	}
}

func TestHelpOverlay(t *testing.T) {
	m := newTestModel(t, Options{InitialURL: "https://example.com"})

	m = press(t, m, "?")
	if !strings.Contains(m.View(), "Keyboard Shortcuts") {
		t.Fatal("help overlay not rendered")
	}
	m = press(t, m, "j")
	if m.showHelp {
		t.Fatal("help still open after a key press")
	}
}

func TestViewRendersResults(t *testing.T) {
	checker := stubChecker{results: sampleResults()}
	m := newTestModel(t, Options{
		Controller: submit.New(checker, nil, nil, 0),
		InitialURL: "https://example.com",
		BackendURL: "http://localhost:8080",
	})
	updated, cmd := m.Update(keyMsg("enter"))
	m = runCmd(t, updated.(Model), cmd)

	out := m.View()
	for _, want := range []string{"linkcheck", "localhost:8080", "Status Code", "Broken", "404 (Not Found)", "Rows 1-3 of 3"} {
		if !strings.Contains(out, want) {
			t.Fatalf("view missing %q", want)
		}
	}
}
