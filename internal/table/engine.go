package table

import (
	"cmp"
	"slices"
	"strings"

	"github.com/five82/linkcheck/internal/linkcheck"
)

// SortEntry sorts by one column.
type SortEntry struct {
	ID   ColumnID
	Desc bool
}

// Direction returns "asc" or "desc".
func (s SortEntry) Direction() string {
	if s.Desc {
		return "desc"
	}
	return "asc"
}

// PageState is a zero-based page index and a page size.
type PageState struct {
	Index int
	Size  int
}

// View is the row set the renderer draws.
type View struct {
	Rows          []EnhancedLinkResult
	TotalFiltered int
	PageCount     int
	PageIndex     int
	PageSize      int
}

// FirstRow returns the 1-based number of the first row on the page, or 0 when
// the page is empty.
func (v View) FirstRow() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.PageIndex*v.PageSize + 1
}

// LastRow returns the 1-based number of the last row on the page.
func (v View) LastRow() int {
	if len(v.Rows) == 0 {
		return 0
	}
	return v.PageIndex*v.PageSize + len(v.Rows)
}

// ComputeView runs the full pipeline: enhance, filter, sort, paginate. raw is
// never modified.
func ComputeView(raw []linkcheck.LinkResult, filters FilterSpec, sorting []SortEntry, page PageState) View {
	return computeEnhanced(Enhance(raw), filters, sorting, page)
}

func computeEnhanced(rows []EnhancedLinkResult, filters FilterSpec, sorting []SortEntry, page PageState) View {
	filtered := applyFilters(rows, filters)
	sortRows(filtered, sorting)

	size := page.Size
	if size <= 0 {
		size = DefaultPageSize
	}
	total := len(filtered)
	pageCount := PageCount(total, size)
	index := clampPage(page.Index, pageCount)

	start := min(index*size, total)
	end := min(start+size, total)

	return View{
		Rows:          filtered[start:end:end],
		TotalFiltered: total,
		PageCount:     pageCount,
		PageIndex:     index,
		PageSize:      size,
	}
}

// PageCount returns how many pages total rows fill.
func PageCount(total, size int) int {
	if size <= 0 || total <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

func clampPage(index, pageCount int) int {
	if index >= pageCount {
		index = pageCount - 1
	}
	if index < 0 {
		index = 0
	}
	return index
}

func applyFilters(rows []EnhancedLinkResult, filters FilterSpec) []EnhancedLinkResult {
	out := make([]EnhancedLinkResult, 0, len(rows))
	for _, row := range rows {
		if filters.Match(row) {
			out = append(out, row)
		}
	}
	return out
}

// sortRows applies the first sort entry. The engine keeps single-column sort,
// so later entries are ignored. Ties keep their prior order.
func sortRows(rows []EnhancedLinkResult, sorting []SortEntry) {
	if len(sorting) == 0 {
		return
	}
	entry := sorting[0]
	slices.SortStableFunc(rows, func(a, b EnhancedLinkResult) int {
		c := compareField(a, b, entry.ID)
		if entry.Desc {
			return -c
		}
		return c
	})
}

func compareField(a, b EnhancedLinkResult, id ColumnID) int {
	switch id {
	case IDURL:
		return compareText(a.URL, b.URL)
	case IDParentURL:
		return compareText(a.ParentURL, b.ParentURL)
	case IDIsWorking:
		return compareBool(a.IsWorking, b.IsWorking)
	case IDStatusCode:
		return cmp.Compare(a.StatusCode, b.StatusCode)
	case IDResponseTimeMS:
		return cmp.Compare(a.ResponseTimeMS, b.ResponseTimeMS)
	default:
		return 0
	}
}

func compareText(a, b string) int {
	return strings.Compare(strings.ToLower(a), strings.ToLower(b))
}

// compareBool orders false before true.
func compareBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case !a:
		return -1
	default:
		return 1
	}
}

// Table binds one result set to a ViewState. The result set is enhanced once
// when it is installed and replaced wholesale by the next SetRows.
type Table struct {
	state *ViewState
	raw   []linkcheck.LinkResult
	rows  []EnhancedLinkResult
	codes []Option
}

// NewTable wraps state. A nil state gets a fresh default ViewState.
func NewTable(state *ViewState) *Table {
	if state == nil {
		state = NewViewState()
	}
	return &Table{state: state}
}

// State returns the bound view state.
func (t *Table) State() *ViewState {
	return t.state
}

// SetRows installs a new result set.
func (t *Table) SetRows(raw []linkcheck.LinkResult) {
	t.raw = slices.Clone(raw)
	t.rows = Enhance(t.raw)
	t.codes = AvailableStatusCodes(t.raw)
	t.state.resetPage()
	t.syncRowCount()
}

// Len returns the size of the unfiltered result set.
func (t *Table) Len() int {
	return len(t.rows)
}

// StatusCodeOptions returns the codes present in the current result set.
func (t *Table) StatusCodeOptions() []Option {
	return slices.Clone(t.codes)
}

// View recomputes the visible page.
func (t *Table) View() View {
	t.syncRowCount()
	return computeEnhanced(t.rows, t.state.filters, t.state.sorting, t.state.Page())
}

// NextPage advances unless already on the last page.
func (t *Table) NextPage() {
	t.syncRowCount()
	t.state.NextPage()
}

// PreviousPage steps back unless already on the first page.
func (t *Table) PreviousPage() {
	t.syncRowCount()
	t.state.PreviousPage()
}

func (t *Table) syncRowCount() {
	count := 0
	for _, row := range t.rows {
		if t.state.filters.Match(row) {
			count++
		}
	}
	t.state.setRowCount(count)
}
