package table

import (
	"net/url"
	"strings"
)

// Query parameter names.
const (
	paramFilter       = "filter"
	paramFilterValue  = "filterValue"
	paramSortColumn   = "sortColumn"
	paramSortDir      = "sortDir"
	filterParamPrefix = "filter_"
)

type param struct {
	key   string
	value string
}

// EncodeQuery serialises filters and sorting into a query string without the
// leading "?". Filters keep their insertion order and come before the sort.
// Nothing active yields "".
func EncodeQuery(filters FilterSpec, sorting []SortEntry) string {
	params := make([]param, 0, filters.Len()+2)
	for _, e := range filters.entries {
		value := e.Value.String()
		if value == "" {
			continue
		}
		params = setParam(params, filterParamPrefix+DisplayName(e.ID), value)
	}
	if len(sorting) > 0 {
		params = setParam(params, paramSortColumn, DisplayName(sorting[0].ID))
		params = setParam(params, paramSortDir, sorting[0].Direction())
	}

	var b strings.Builder
	for i, p := range params {
		if i > 0 {
			b.WriteByte('&')
		}
		b.WriteString(url.QueryEscape(p.key))
		b.WriteByte('=')
		b.WriteString(url.QueryEscape(p.value))
	}
	return b.String()
}

// setParam replaces an existing key in place or appends it.
func setParam(params []param, key, value string) []param {
	for i := range params {
		if params[i].key == key {
			params[i].value = value
			return params
		}
	}
	return append(params, param{key: key, value: value})
}

// parseQuery splits a raw query into ordered pairs. Malformed escapes are
// kept verbatim. For a repeated key the first occurrence wins.
func parseQuery(raw string) []param {
	raw = strings.TrimPrefix(raw, "?")
	var params []param
	for _, part := range strings.Split(raw, "&") {
		if part == "" {
			continue
		}
		key, value, _ := strings.Cut(part, "=")
		key = unescape(key)
		if key == "" || hasParam(params, key) {
			continue
		}
		params = append(params, param{key: key, value: unescape(value)})
	}
	return params
}

func hasParam(params []param, key string) bool {
	for _, p := range params {
		if p.key == key {
			return true
		}
	}
	return false
}

func unescape(s string) string {
	if u, err := url.QueryUnescape(s); err == nil {
		return u
	}
	return s
}

// Seed is the view state carried by an address at mount.
type Seed struct {
	Filter      string
	FilterValue string
	SortColumn  string
	SortDir     string
	Filters     []SeedFilter
}

// SeedFilter is one filter_{name} parameter.
type SeedFilter struct {
	Name  string
	Value string
}

// DecodeQuery reads a query string, with or without the leading "?".
func DecodeQuery(raw string) Seed {
	var seed Seed
	for _, p := range parseQuery(raw) {
		switch {
		case p.key == paramFilter:
			seed.Filter = p.value
		case p.key == paramFilterValue:
			seed.FilterValue = p.value
		case p.key == paramSortColumn:
			seed.SortColumn = p.value
		case p.key == paramSortDir:
			seed.SortDir = p.value
		case strings.HasPrefix(p.key, filterParamPrefix):
			seed.Filters = append(seed.Filters, SeedFilter{
				Name:  strings.TrimPrefix(p.key, filterParamPrefix),
				Value: p.value,
			})
		}
	}
	return seed
}

// ApplySeed overwrites the view state with what seed carries. The sort is
// taken only when both column and direction are present; an unknown column
// sorts by working status. Filters naming unknown columns are skipped.
// Subscribers are not notified.
func (s *ViewState) ApplySeed(seed Seed) {
	if col := Column(seed.SortColumn); col.Valid() {
		s.sortColumn = col
	}
	if seed.SortColumn != "" && seed.SortDir != "" {
		id := Column(seed.SortColumn).ID()
		if id == "" {
			id = IDIsWorking
		}
		s.sorting = []SortEntry{{ID: id, Desc: seed.SortDir == "desc"}}
	}

	for _, f := range seed.Filters {
		col := Column(f.Name)
		if !col.Filterable() {
			continue
		}
		if col.MultiSelect() {
			s.filters.Set(col.ID(), SetFilter(splitValues(f.Value)...))
			continue
		}
		s.filters.Set(col.ID(), TextFilter(f.Value))
	}

	if col := Column(seed.Filter); col.Filterable() {
		s.activeFilter = col
		if v, ok := s.filters.Get(col.ID()); ok && v.Multi {
			s.selections[col] = v.Values
		}
	}
	s.pageIndex = 0
}

func splitValues(raw string) []string {
	var out []string
	for _, v := range strings.Split(raw, ",") {
		if v = strings.TrimSpace(v); v != "" {
			out = append(out, v)
		}
	}
	return out
}

// SplitAddress separates an address into its path and raw query. An address
// without a path gets "/".
func SplitAddress(address string) (path, query string) {
	path, query, _ = strings.Cut(address, "?")
	if path == "" {
		path = "/"
	}
	return path, query
}

// JoinAddress is the inverse of SplitAddress. An empty query yields the bare
// path.
func JoinAddress(path, query string) string {
	if path == "" {
		path = "/"
	}
	if query == "" {
		return path
	}
	return path + "?" + query
}

// Location is where the current address lives. Replace swaps the address in
// place without any navigation.
type Location interface {
	Path() string
	Replace(address string)
}

// Synchronizer writes the view state's filters and sort into a Location.
type Synchronizer struct {
	loc   Location
	state *ViewState
}

// NewSynchronizer binds a view state to a location.
func NewSynchronizer(loc Location, state *ViewState) *Synchronizer {
	return &Synchronizer{loc: loc, state: state}
}

// Sync rebuilds the whole query from the current state and replaces the
// address.
func (q *Synchronizer) Sync() {
	if q == nil || q.loc == nil || q.state == nil {
		return
	}
	query := EncodeQuery(q.state.filters, q.state.sorting)
	q.loc.Replace(JoinAddress(q.loc.Path(), query))
}

// Notify syncs when c touches filters or sort.
func (q *Synchronizer) Notify(c Change) {
	if c.Has(ChangeFilters) || c.Has(ChangeSort) {
		q.Sync()
	}
}
