package table

import (
	"slices"
	"strconv"
	"strings"
)

// FilterValue is either a single text value (url, parent_url) or a set of
// values (status, status_code). Multi is fixed by the column, not by the
// number of values.
type FilterValue struct {
	Text   string
	Values []string
	Multi  bool
}

// TextFilter builds a single-value filter.
func TextFilter(text string) FilterValue {
	return FilterValue{Text: text}
}

// SetFilter builds a multi-value filter.
func SetFilter(values ...string) FilterValue {
	return FilterValue{Values: slices.Clone(values), Multi: true}
}

// Empty reports whether the filter constrains nothing.
func (v FilterValue) Empty() bool {
	if v.Multi {
		return len(v.Values) == 0
	}
	return v.Text == ""
}

// String renders the value the way the address query string carries it.
func (v FilterValue) String() string {
	if v.Multi {
		return strings.Join(v.Values, ",")
	}
	return v.Text
}

func (v FilterValue) clone() FilterValue {
	v.Values = slices.Clone(v.Values)
	return v
}

// Matches evaluates one row against one column filter. A nil or empty filter
// passes every row.
func Matches(row EnhancedLinkResult, id ColumnID, value *FilterValue) bool {
	if value == nil || value.Empty() {
		return true
	}

	if value.Multi {
		if id == IDIsWorking {
			return slices.Contains(value.Values, WorkingLabel(row.IsWorking))
		}
		return slices.Contains(value.Values, fieldText(row, id))
	}

	return strings.Contains(strings.ToLower(fieldText(row, id)), strings.ToLower(value.Text))
}

// fieldText stringifies the field a column reads.
func fieldText(row EnhancedLinkResult, id ColumnID) string {
	switch id {
	case IDURL:
		return row.URL
	case IDParentURL:
		return row.ParentURL
	case IDIsWorking:
		return strconv.FormatBool(row.IsWorking)
	case IDStatusCode:
		return row.StatusCodeText()
	case IDResponseTimeMS:
		return strconv.FormatFloat(row.ResponseTimeMS, 'f', -1, 64)
	default:
		return ""
	}
}

// FilterEntry is one active column filter.
type FilterEntry struct {
	ID    ColumnID
	Value FilterValue
}

// FilterSpec holds at most one entry per column, in insertion order. Entries
// are ANDed; order does not affect the result.
type FilterSpec struct {
	entries []FilterEntry
}

// Len returns the number of active filters.
func (s FilterSpec) Len() int {
	return len(s.entries)
}

// Entries returns a copy of the active filters in insertion order.
func (s FilterSpec) Entries() []FilterEntry {
	out := make([]FilterEntry, len(s.entries))
	for i, e := range s.entries {
		out[i] = FilterEntry{ID: e.ID, Value: e.Value.clone()}
	}
	return out
}

// Get returns the filter for id, if any.
func (s FilterSpec) Get(id ColumnID) (FilterValue, bool) {
	for _, e := range s.entries {
		if e.ID == id {
			return e.Value.clone(), true
		}
	}
	return FilterValue{}, false
}

// Set upserts the filter for id, keeping its position when it already exists.
// An empty value removes the entry.
func (s *FilterSpec) Set(id ColumnID, value FilterValue) {
	if value.Empty() {
		s.Remove(id)
		return
	}
	value = value.clone()
	for i, e := range s.entries {
		if e.ID == id {
			s.entries[i].Value = value
			return
		}
	}
	s.entries = append(s.entries, FilterEntry{ID: id, Value: value})
}

// Remove drops the filter for id.
func (s *FilterSpec) Remove(id ColumnID) {
	s.entries = slices.DeleteFunc(s.entries, func(e FilterEntry) bool { return e.ID == id })
}

// Clear drops every filter.
func (s *FilterSpec) Clear() {
	s.entries = nil
}

// Match reports whether row satisfies every active filter.
func (s FilterSpec) Match(row EnhancedLinkResult) bool {
	for i := range s.entries {
		if !Matches(row, s.entries[i].ID, &s.entries[i].Value) {
			return false
		}
	}
	return true
}

// Clone returns an independent copy.
func (s FilterSpec) Clone() FilterSpec {
	return FilterSpec{entries: s.Entries()}
}
