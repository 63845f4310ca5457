package ui

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/paginator"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linkcheck/internal/linkcheck"
	"github.com/five82/linkcheck/internal/logging"
	"github.com/five82/linkcheck/internal/prefs"
	"github.com/five82/linkcheck/internal/state"
	"github.com/five82/linkcheck/internal/submit"
	"github.com/five82/linkcheck/internal/table"
)

// focus is the part of the screen receiving keys.
type focus int

const (
	focusTable focus = iota
	focusURL
	focusDepth
	focusFilter
	focusColumns
)

// HealthChecker probes the backend once at startup.
type HealthChecker interface {
	Health(ctx context.Context) error
}

// Options configures the UI.
type Options struct {
	Context    context.Context
	Controller *submit.Controller
	Health     HealthChecker
	BackendURL string
	Logger     logging.Logger
	PageSize   int
	PrefsPath  string
	Prefs      prefs.Prefs
	DarkMode   bool

	// InitialView seeds the address. Empty falls back to Prefs.LastView.
	InitialView string
	// InitialURL and InitialDepth prefill the form. Empty depth means the
	// default.
	InitialURL    string
	InitialDepth  string
	SubmitOnStart bool
}

// Model is the root application state for Bubble Tea.
type Model struct {
	// Configuration
	ctx        context.Context
	controller *submit.Controller
	health     HealthChecker
	logger     logging.Logger
	backendURL string
	prefsPath  string
	prefs      prefs.Prefs

	// View state
	table   *table.Table
	address *addressBar
	sync    *table.Synchronizer

	// UI state
	theme    Theme
	dark     bool
	keys     keyMap
	width    int
	height   int
	ready    bool
	focus    focus
	showHelp bool

	// Form state
	urlInput      textinput.Model
	depthInput    textinput.Model
	fieldErrors   submit.FieldErrors
	spinner       spinner.Model
	submitOnStart bool

	// Table state
	pager        paginator.Model
	filterInput  textinput.Model
	filterCursor int
	columnCursor int
	selectedRow  int

	// Data state
	snapshot      state.Snapshot
	generation    int
	backendErr    error
	backendProbed bool
	notice        string
}

// New creates a new Bubble Tea model.
func New(opts Options) Model {
	ctx := opts.Context
	if ctx == nil {
		ctx = context.Background()
	}

	logger := logging.OrNop(opts.Logger).With(logging.Component("ui"))

	controller := opts.Controller
	if controller == nil {
		controller = submit.New(nil, nil, logger, 0)
	}

	prefsPath := opts.PrefsPath
	if prefsPath == "" {
		prefsPath = prefs.DefaultPath()
	}

	initialView := strings.TrimSpace(opts.InitialView)
	if initialView == "" {
		initialView = opts.Prefs.LastView
	}
	address := newAddressBar(initialView)

	vs := table.NewViewState()
	vs.ApplySeed(table.DecodeQuery(address.Query()))
	if table.ValidPageSize(opts.PageSize) {
		vs.SetPageSize(opts.PageSize)
	}
	sync := table.NewSynchronizer(address, vs)
	vs.OnChange(sync.Notify)
	sync.Sync()

	urlInput := textinput.New()
	urlInput.Prompt = ""
	urlInput.Placeholder = "https://example.com"
	urlInput.CharLimit = 2048
	urlInput.SetValue(opts.InitialURL)

	depthInput := textinput.New()
	depthInput.Prompt = ""
	depthInput.Placeholder = strconv.Itoa(submit.DefaultDepth)
	depthInput.CharLimit = 2
	depthInput.Width = 2
	depth := strings.TrimSpace(opts.InitialDepth)
	if depth == "" {
		depth = strconv.Itoa(submit.DefaultDepth)
	}
	depthInput.SetValue(depth)

	filterInput := textinput.New()
	filterInput.Prompt = ""
	filterInput.Placeholder = "type to filter"
	filterInput.CharLimit = 512

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	pager := paginator.New()
	pager.Type = paginator.Arabic
	pager.ArabicFormat = "Page %d of %d"

	m := Model{
		ctx:           ctx,
		controller:    controller,
		health:        opts.Health,
		logger:        logger,
		backendURL:    opts.BackendURL,
		prefsPath:     prefsPath,
		prefs:         opts.Prefs,
		table:         table.NewTable(vs),
		address:       address,
		sync:          sync,
		keys:          DefaultKeyMap(),
		urlInput:      urlInput,
		depthInput:    depthInput,
		filterInput:   filterInput,
		spinner:       sp,
		pager:         pager,
		submitOnStart: opts.SubmitOnStart && strings.TrimSpace(opts.InitialURL) != "",
	}
	m.applyTheme(opts.DarkMode)
	m.refreshSnapshot()

	if strings.TrimSpace(opts.InitialURL) == "" {
		m.setFocus(focusURL)
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	cmds := []tea.Cmd{
		textinput.Blink,
		tickCmd(DefaultUIInterval),
	}
	if m.health != nil {
		cmds = append(cmds, healthCmd(m.ctx, m.health))
	}
	if m.submitOnStart {
		cmds = append(cmds, func() tea.Msg { return submitRequestMsg{} })
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.resizeInputs()
		return m, nil

	case tickMsg:
		m.refreshSnapshot()
		return m, tickCmd(DefaultUIInterval)

	case healthMsg:
		m.backendProbed = true
		m.backendErr = msg.err
		if msg.err != nil {
			m.logger.Warn("backend health check failed", logging.String("api_url", m.backendURL), logging.Err(msg.err))
		}
		return m, nil

	case submitRequestMsg:
		return m.submit()

	case checkDoneMsg:
		m.refreshSnapshot()
		if msg.err != nil {
			m.notice = "check failed"
			return m, nil
		}
		m.notice = ""
		cmd := m.setFocus(focusTable)
		return m, cmd

	case spinner.TickMsg:
		if !m.controller.Busy() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	return m.updateFocusedInput(msg)
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Loading..."
	}
	if m.showHelp {
		return m.renderHelp()
	}
	if m.focus == focusColumns {
		return m.renderColumnsPanel()
	}
	return m.renderMain()
}

// handleKey routes keyboard input by focus.
func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.String() == "ctrl+c" {
		return m, m.quit()
	}

	if m.showHelp {
		// Any key closes help
		m.showHelp = false
		return m, nil
	}

	switch m.focus {
	case focusURL, focusDepth:
		return m.handleFormKey(msg)
	case focusFilter:
		return m.handleFilterKey(msg)
	case focusColumns:
		return m.handleColumnsKey(msg)
	}
	return m.handleTableKey(msg)
}

// handleTableKey processes keys while the results table has focus.
func (m Model) handleTableKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.table.State()

	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, m.quit()

	case key.Matches(msg, m.keys.Help):
		m.showHelp = true

	case key.Matches(msg, m.keys.ToggleTheme):
		m.toggleTheme()

	case key.Matches(msg, m.keys.EditURL):
		cmd := m.setFocus(focusURL)
		return m, cmd

	case key.Matches(msg, m.keys.Confirm):
		return m.submit()

	case key.Matches(msg, m.keys.Up):
		if m.selectedRow > 0 {
			m.selectedRow--
		}

	case key.Matches(msg, m.keys.Down):
		m.selectedRow++

	case key.Matches(msg, m.keys.Top):
		m.selectedRow = 0

	case key.Matches(msg, m.keys.Bottom):
		m.selectedRow = len(m.table.View().Rows) - 1

	case key.Matches(msg, m.keys.NextPage):
		m.table.NextPage()
		m.selectedRow = 0

	case key.Matches(msg, m.keys.PrevPage):
		m.table.PreviousPage()
		m.selectedRow = 0

	case key.Matches(msg, m.keys.PageSize):
		st.SetPageSize(nextPageSize(st.Page().Size))

	case key.Matches(msg, m.keys.Filter):
		cmd := m.openFilter()
		return m, cmd

	case key.Matches(msg, m.keys.ClearFilters):
		st.ClearAllFilters()

	case key.Matches(msg, m.keys.SortColumn):
		st.SetSortColumn(nextColumn(table.DefaultColumnOrder, st.SortColumn()))

	case key.Matches(msg, m.keys.SortDirection):
		st.ToggleSortDirection()

	case key.Matches(msg, m.keys.SortByIndex):
		cols := st.VisibleColumns()
		if idx := int(msg.String()[0] - '1'); idx >= 0 && idx < len(cols) {
			st.ToggleSort(cols[idx])
		}

	case key.Matches(msg, m.keys.Columns):
		m.columnCursor = 0
		m.focus = focusColumns
	}

	m.clampSelection()
	return m, nil
}

// handleFormKey processes keys while the URL or depth field has focus.
func (m Model) handleFormKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		cmd := m.setFocus(focusTable)
		return m, cmd
	case "tab", "shift+tab":
		if m.focus == focusURL {
			cmd := m.setFocus(focusDepth)
			return m, cmd
		}
		cmd := m.setFocus(focusURL)
		return m, cmd
	case "enter":
		return m.submit()
	}

	var cmd tea.Cmd
	if m.focus == focusURL {
		before := m.urlInput.Value()
		m.urlInput, cmd = m.urlInput.Update(msg)
		if m.urlInput.Value() != before {
			delete(m.fieldErrors, submit.FieldURL)
		}
		return m, cmd
	}

	before := m.depthInput.Value()
	m.depthInput, cmd = m.depthInput.Update(msg)
	if m.depthInput.Value() != before {
		delete(m.fieldErrors, submit.FieldDepth)
	}
	return m, cmd
}

// handleFilterKey processes keys while the filter bar has focus.
func (m Model) handleFilterKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.table.State()
	col := st.ActiveFilter()

	switch msg.String() {
	case "esc":
		cmd := m.setFocus(focusTable)
		return m, cmd
	case "tab":
		next := nextColumn(table.FilterColumns, col)
		st.SetActiveFilterColumn(next)
		cmd := m.prepareFilterInput(next)
		return m, cmd
	case "shift+tab":
		prev := prevColumn(table.FilterColumns, col)
		st.SetActiveFilterColumn(prev)
		cmd := m.prepareFilterInput(prev)
		return m, cmd
	}

	if col.MultiSelect() {
		options := m.filterOptions(col)
		switch {
		case key.Matches(msg, m.keys.Up):
			if m.filterCursor > 0 {
				m.filterCursor--
			}
		case key.Matches(msg, m.keys.Down):
			if m.filterCursor < len(options)-1 {
				m.filterCursor++
			}
		case key.Matches(msg, m.keys.ToggleOption), msg.String() == "enter":
			if m.filterCursor < len(options) {
				st.ToggleMultiSelectValue(col, options[m.filterCursor].Value)
				m.selectedRow = 0
			}
		case key.Matches(msg, m.keys.ClearFilters):
			st.ClearAllFilters()
			cmd := m.setFocus(focusTable)
			return m, cmd
		}
		return m, nil
	}

	if msg.String() == "enter" {
		cmd := m.setFocus(focusTable)
		return m, cmd
	}

	var cmd tea.Cmd
	m.filterInput, cmd = m.filterInput.Update(msg)
	st.SetTextFilter(col, m.filterInput.Value())
	m.selectedRow = 0
	return m, cmd
}

// handleColumnsKey processes keys while the column arranger is open.
func (m Model) handleColumnsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	st := m.table.State()
	order := st.ColumnOrder()

	switch {
	case msg.String() == "esc", msg.String() == "enter", key.Matches(msg, m.keys.Columns):
		m.focus = focusTable
	case key.Matches(msg, m.keys.MoveLeft):
		if m.columnCursor > 0 {
			st.ReorderColumns(m.columnCursor, m.columnCursor-1)
			m.columnCursor--
		}
	case key.Matches(msg, m.keys.MoveRight):
		if m.columnCursor < len(order)-1 {
			st.ReorderColumns(m.columnCursor, m.columnCursor+1)
			m.columnCursor++
		}
	case key.Matches(msg, m.keys.Up):
		if m.columnCursor > 0 {
			m.columnCursor--
		}
	case key.Matches(msg, m.keys.Down):
		if m.columnCursor < len(order)-1 {
			m.columnCursor++
		}
	case key.Matches(msg, m.keys.ToggleShow):
		st.ToggleColumnVisibility(order[m.columnCursor])
	}
	return m, nil
}

// submit validates the form and starts a check.
func (m Model) submit() (tea.Model, tea.Cmd) {
	if m.controller.Busy() {
		m.notice = "a check is already running"
		return m, nil
	}

	values := submit.FormValues{URL: m.urlInput.Value(), Depth: m.depthInput.Value()}
	req, err := m.controller.Prepare(values)
	if err != nil {
		var fieldErrs submit.FieldErrors
		if errors.As(err, &fieldErrs) {
			m.fieldErrors = fieldErrs
			if _, ok := fieldErrs[submit.FieldURL]; ok {
				cmd := m.setFocus(focusURL)
				return m, cmd
			}
			cmd := m.setFocus(focusDepth)
			return m, cmd
		}
		m.notice = err.Error()
		return m, nil
	}

	m.fieldErrors = nil
	m.notice = ""
	return m, tea.Batch(m.spinner.Tick, checkCmd(m.ctx, m.controller, req))
}

// openFilter focuses the filter bar on the active filter column, defaulting
// to URL.
func (m *Model) openFilter() tea.Cmd {
	st := m.table.State()
	col := st.ActiveFilter()
	if col == "" {
		col = table.ColumnURL
		st.SetActiveFilterColumn(col)
	}
	m.focus = focusFilter
	return m.prepareFilterInput(col)
}

func (m *Model) prepareFilterInput(col table.Column) tea.Cmd {
	m.filterCursor = 0
	if col.MultiSelect() {
		m.filterInput.Blur()
		return nil
	}
	current, _ := m.table.State().Filters().Get(col.ID())
	m.filterInput.SetValue(current.Text)
	m.filterInput.CursorEnd()
	return m.filterInput.Focus()
}

func (m Model) filterOptions(col table.Column) []table.Option {
	switch col {
	case table.ColumnStatus:
		return table.StatusOptions
	case table.ColumnStatusCode:
		return m.table.StatusCodeOptions()
	default:
		return nil
	}
}

// setFocus moves keyboard focus, blurring every text input but the target.
func (m *Model) setFocus(f focus) tea.Cmd {
	m.focus = f
	m.urlInput.Blur()
	m.depthInput.Blur()
	m.filterInput.Blur()

	switch f {
	case focusURL:
		return m.urlInput.Focus()
	case focusDepth:
		return m.depthInput.Focus()
	case focusFilter:
		return m.prepareFilterInput(m.table.State().ActiveFilter())
	}
	return nil
}

func (m Model) updateFocusedInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	switch m.focus {
	case focusURL:
		m.urlInput, cmd = m.urlInput.Update(msg)
	case focusDepth:
		m.depthInput, cmd = m.depthInput.Update(msg)
	case focusFilter:
		m.filterInput, cmd = m.filterInput.Update(msg)
	}
	return m, cmd
}

// refreshSnapshot pulls the store and installs a new result set when one
// arrived.
func (m *Model) refreshSnapshot() {
	snap := m.controller.Store().Snapshot()
	if snap.Generation != m.generation {
		m.table.SetRows(snap.Results)
		m.generation = snap.Generation
		m.selectedRow = 0
	}
	m.snapshot = snap
}

func (m *Model) clampSelection() {
	rows := len(m.table.View().Rows)
	if m.selectedRow >= rows {
		m.selectedRow = rows - 1
	}
	if m.selectedRow < 0 {
		m.selectedRow = 0
	}
}

// toggleTheme flips dark mode and saves the choice.
func (m *Model) toggleTheme() {
	m.applyTheme(!m.dark)
	m.prefs = m.prefs.WithDarkMode(m.dark)
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", logging.String("path", m.prefsPath), logging.Err(err))
	}
}

func (m *Model) applyTheme(dark bool) {
	m.dark = dark
	m.theme = GetTheme(dark)

	text := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Text))
	placeholder := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Faint))
	cursor := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
	for _, input := range []*textinput.Model{&m.urlInput, &m.depthInput, &m.filterInput} {
		input.TextStyle = text
		input.PlaceholderStyle = placeholder
		input.Cursor.Style = cursor
	}
	m.spinner.Style = lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Accent))
}

func (m *Model) resizeInputs() {
	m.urlInput.Width = max(20, m.width-40)
	m.filterInput.Width = max(16, m.width/3)
}

// quit records the current address and exits.
func (m Model) quit() tea.Cmd {
	m.prefs.LastView = m.address.String()
	if err := prefs.Save(m.prefsPath, m.prefs); err != nil {
		m.logger.Warn("save prefs failed", logging.String("path", m.prefsPath), logging.Err(err))
	}
	return tea.Quit
}

func nextPageSize(current int) int {
	for i, size := range table.PageSizes {
		if size == current {
			return table.PageSizes[(i+1)%len(table.PageSizes)]
		}
	}
	return table.DefaultPageSize
}

func nextColumn(cols []table.Column, current table.Column) table.Column {
	for i, c := range cols {
		if c == current {
			return cols[(i+1)%len(cols)]
		}
	}
	return cols[0]
}

func prevColumn(cols []table.Column, current table.Column) table.Column {
	for i, c := range cols {
		if c == current {
			return cols[(i-1+len(cols))%len(cols)]
		}
	}
	return cols[len(cols)-1]
}

// Messages

type tickMsg time.Time

type healthMsg struct{ err error }

type submitRequestMsg struct{}

type checkDoneMsg struct{ err error }

// Commands

func tickCmd(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

func healthCmd(ctx context.Context, checker HealthChecker) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(ctx, HealthTimeout)
		defer cancel()
		return healthMsg{err: checker.Health(ctx)}
	}
}

func checkCmd(ctx context.Context, controller *submit.Controller, req linkcheck.CheckRequest) tea.Cmd {
	return func() tea.Msg {
		_, err := controller.Execute(ctx, req)
		return checkDoneMsg{err: err}
	}
}

// Run starts the Bubble Tea program.
func Run(opts Options) error {
	m := New(opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(m.ctx))
	_, err := p.Run()
	return err
}
