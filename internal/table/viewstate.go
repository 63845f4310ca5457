package table

import (
	"slices"
)

// Change flags which part of the view state a mutation touched.
type Change uint8

const (
	ChangeFilters Change = 1 << iota
	ChangeSort
	ChangeColumns
	ChangePage
)

// Has reports whether c includes flag.
func (c Change) Has(flag Change) bool {
	return c&flag != 0
}

// DefaultPageSize is the page size a fresh view starts with.
const DefaultPageSize = 10

// PageSizes are the page sizes a view accepts.
var PageSizes = []int{10, 20, 30, 40, 50}

// ValidPageSize reports whether n is one of PageSizes.
func ValidPageSize(n int) bool {
	return slices.Contains(PageSizes, n)
}

// ViewState is the presentation state of one results table. It is mutated
// only through its methods and reports every change to a single subscriber.
// It is not safe for concurrent use; the UI owns it from one goroutine.
type ViewState struct {
	activeFilter Column
	filters      FilterSpec
	selections   map[Column][]string

	sortColumn Column
	sorting    []SortEntry

	order  []Column
	hidden map[Column]bool

	pageIndex int
	pageSize  int
	rowCount  int

	onChange func(Change)
}

// NewViewState returns the mount-time defaults: no filters, sorted by working
// status ascending, default column order, first page of ten rows.
func NewViewState() *ViewState {
	return &ViewState{
		selections: make(map[Column][]string),
		sortColumn: ColumnStatus,
		sorting:    []SortEntry{{ID: IDIsWorking}},
		order:      slices.Clone(DefaultColumnOrder),
		hidden:     make(map[Column]bool),
		pageSize:   DefaultPageSize,
	}
}

// OnChange installs the subscriber, replacing any previous one. Pass nil to
// unsubscribe.
func (s *ViewState) OnChange(fn func(Change)) {
	s.onChange = fn
}

func (s *ViewState) emit(c Change) {
	if c == 0 || s.onChange == nil {
		return
	}
	s.onChange(c)
}

// ActiveFilter returns the column the filter picker is on, or "" for none.
func (s *ViewState) ActiveFilter() Column {
	return s.activeFilter
}

// Filters returns a copy of the active filters.
func (s *ViewState) Filters() FilterSpec {
	return s.filters.Clone()
}

// Selection returns the values currently ticked for a multi-select column.
func (s *ViewState) Selection(col Column) []string {
	return slices.Clone(s.selections[col])
}

// SortColumn returns the column the sort control targets.
func (s *ViewState) SortColumn() Column {
	return s.sortColumn
}

// Sorting returns a copy of the active sort entries.
func (s *ViewState) Sorting() []SortEntry {
	return slices.Clone(s.sorting)
}

// ColumnOrder returns the current left-to-right column order.
func (s *ViewState) ColumnOrder() []Column {
	return slices.Clone(s.order)
}

// Hidden reports whether col is hidden.
func (s *ViewState) Hidden(col Column) bool {
	return s.hidden[col]
}

// VisibleColumns returns the column order with hidden columns removed.
func (s *ViewState) VisibleColumns() []Column {
	out := make([]Column, 0, len(s.order))
	for _, col := range s.order {
		if !s.hidden[col] {
			out = append(out, col)
		}
	}
	return out
}

// Page returns the pagination window.
func (s *ViewState) Page() PageState {
	return PageState{Index: s.pageIndex, Size: s.pageSize}
}

// PageCount returns the number of pages for the last known filtered row count.
func (s *ViewState) PageCount() int {
	return PageCount(s.rowCount, s.pageSize)
}

// SetActiveFilterColumn points the filter picker at col ("" for none). The
// selections of every other multi-select column are dropped; filters already
// applied stay in place. A multi-select column picks its selection back up
// from its applied filter.
func (s *ViewState) SetActiveFilterColumn(col Column) {
	if col != "" && !col.Filterable() {
		return
	}
	s.activeFilter = col
	for _, other := range []Column{ColumnStatus, ColumnStatusCode} {
		if other != col {
			delete(s.selections, other)
		}
	}
	if col.MultiSelect() {
		if v, ok := s.filters.Get(col.ID()); ok && v.Multi {
			s.selections[col] = v.Values
		}
	}
	s.emit(ChangeFilters)
}

// SetTextFilter upserts the free-text filter for col, or removes it when value
// is empty.
func (s *ViewState) SetTextFilter(col Column, value string) {
	if !col.Filterable() || col.MultiSelect() {
		return
	}
	current, _ := s.filters.Get(col.ID())
	if current.Text == value && !current.Multi {
		return
	}
	s.filters.Set(col.ID(), TextFilter(value))
	s.resetPage()
	s.emit(ChangeFilters | ChangePage)
}

// ToggleMultiSelectValue adds value to, or removes it from, the selection of
// a multi-select column. The column's filter follows the selection and is
// removed when the selection empties.
func (s *ViewState) ToggleMultiSelectValue(col Column, value string) {
	if !col.MultiSelect() || value == "" {
		return
	}
	sel := s.selections[col]
	if i := slices.Index(sel, value); i >= 0 {
		sel = slices.Delete(slices.Clone(sel), i, i+1)
	} else {
		sel = append(slices.Clone(sel), value)
	}
	s.SetSelection(col, sel)
}

// SetSelection replaces the selection of a multi-select column.
func (s *ViewState) SetSelection(col Column, values []string) {
	if !col.MultiSelect() {
		return
	}
	if len(values) == 0 {
		delete(s.selections, col)
	} else {
		s.selections[col] = slices.Clone(values)
	}
	s.filters.Set(col.ID(), SetFilter(values...))
	s.resetPage()
	s.emit(ChangeFilters | ChangePage)
}

// SetSortColumn points the sort control at col without changing the sort.
func (s *ViewState) SetSortColumn(col Column) {
	if !col.Valid() || col == s.sortColumn {
		return
	}
	s.sortColumn = col
	s.emit(ChangeSort)
}

// ToggleSortDirection cycles the sort on the sort column: ascending, then
// descending, then unsorted. Sorting a different column starts ascending and
// drops the previous sort.
func (s *ViewState) ToggleSortDirection() {
	id := s.sortColumn.ID()
	if id == "" {
		return
	}
	switch {
	case len(s.sorting) > 0 && s.sorting[0].ID == id && s.sorting[0].Desc:
		s.sorting = nil
	case len(s.sorting) > 0 && s.sorting[0].ID == id:
		s.sorting = []SortEntry{{ID: id, Desc: true}}
	default:
		s.sorting = []SortEntry{{ID: id}}
	}
	s.resetPage()
	s.emit(ChangeSort | ChangePage)
}

// ToggleSort is a header click: it targets col and cycles its direction.
func (s *ViewState) ToggleSort(col Column) {
	if !col.Valid() {
		return
	}
	s.sortColumn = col
	s.ToggleSortDirection()
}

// ReorderColumns moves the column at src to dst. An out-of-range index,
// including a negative dst for a cancelled move, leaves the order unchanged.
func (s *ViewState) ReorderColumns(src, dst int) {
	n := len(s.order)
	if src < 0 || src >= n || dst < 0 || dst >= n || src == dst {
		return
	}
	col := s.order[src]
	order := slices.Delete(slices.Clone(s.order), src, src+1)
	s.order = slices.Insert(order, dst, col)
	s.emit(ChangeColumns)
}

// ToggleColumnVisibility shows or hides col.
func (s *ViewState) ToggleColumnVisibility(col Column) {
	if !col.Valid() {
		return
	}
	if s.hidden[col] {
		delete(s.hidden, col)
	} else {
		s.hidden[col] = true
	}
	s.emit(ChangeColumns)
}

// ClearAllFilters drops every filter and selection and resets the filter
// picker. Sort and columns are untouched.
func (s *ViewState) ClearAllFilters() {
	s.filters.Clear()
	clear(s.selections)
	s.activeFilter = ""
	s.resetPage()
	s.emit(ChangeFilters | ChangePage)
}

// SetPageSize switches to one of PageSizes, keeping the current top row on
// screen. Other sizes are ignored.
func (s *ViewState) SetPageSize(n int) {
	if !ValidPageSize(n) || n == s.pageSize {
		return
	}
	top := s.pageIndex * s.pageSize
	s.pageSize = n
	s.pageIndex = top / n
	s.clampPage()
	s.emit(ChangePage)
}

// NextPage advances one page unless already on the last.
func (s *ViewState) NextPage() {
	if s.pageIndex+1 >= s.PageCount() {
		return
	}
	s.pageIndex++
	s.emit(ChangePage)
}

// PreviousPage steps back one page unless already on the first.
func (s *ViewState) PreviousPage() {
	if s.pageIndex == 0 {
		return
	}
	s.pageIndex--
	s.emit(ChangePage)
}

// setRowCount records the filtered row count and clamps the page index when
// the rows no longer reach the current page.
func (s *ViewState) setRowCount(n int) {
	s.rowCount = n
	if s.clampPage() {
		s.emit(ChangePage)
	}
}

func (s *ViewState) clampPage() bool {
	index := clampPage(s.pageIndex, s.PageCount())
	if index == s.pageIndex {
		return false
	}
	s.pageIndex = index
	return true
}

// resetPage returns to the first page after the row set is filtered or
// resorted.
func (s *ViewState) resetPage() {
	s.pageIndex = 0
}
