package table

// Column is a public column name. These names appear in the address query
// string and in the column order.
type Column string

const (
	ColumnURL          Column = "url"
	ColumnParentURL    Column = "parent_url"
	ColumnStatus       Column = "status"
	ColumnStatusCode   Column = "status_code"
	ColumnResponseTime Column = "response_time"
)

// ColumnID identifies the row field a column reads. Filters and sorting are
// keyed by ColumnID.
type ColumnID string

const (
	IDURL            ColumnID = "url"
	IDParentURL      ColumnID = "parent_url"
	IDIsWorking      ColumnID = "is_working"
	IDStatusCode     ColumnID = "status_code"
	IDResponseTimeMS ColumnID = "responseTimeMs"
)

// DefaultColumnOrder is the initial left-to-right order.
var DefaultColumnOrder = []Column{
	ColumnURL,
	ColumnParentURL,
	ColumnStatus,
	ColumnStatusCode,
	ColumnResponseTime,
}

var columnIDs = map[Column]ColumnID{
	ColumnURL:          IDURL,
	ColumnParentURL:    IDParentURL,
	ColumnStatus:       IDIsWorking,
	ColumnStatusCode:   IDStatusCode,
	ColumnResponseTime: IDResponseTimeMS,
}

var columnHeaders = map[Column]string{
	ColumnURL:          "URL",
	ColumnParentURL:    "Parent URL",
	ColumnStatus:       "Status",
	ColumnStatusCode:   "Status Code",
	ColumnResponseTime: "Response Time",
}

// ID returns the field the column reads, or "" for unknown names.
func (c Column) ID() ColumnID {
	return columnIDs[c]
}

// Valid reports whether c is one of the five known columns.
func (c Column) Valid() bool {
	_, ok := columnIDs[c]
	return ok
}

// Header returns the human column title.
func (c Column) Header() string {
	if h, ok := columnHeaders[c]; ok {
		return h
	}
	return string(c)
}

// Filterable reports whether the column can carry a filter. Response time
// can only be sorted.
func (c Column) Filterable() bool {
	return c.Valid() && c != ColumnResponseTime
}

// MultiSelect reports whether the column filters by a set of values rather
// than free text.
func (c Column) MultiSelect() bool {
	return c == ColumnStatus || c == ColumnStatusCode
}

// DisplayName maps a field id back to its public column name. Unknown ids are
// returned verbatim.
func DisplayName(id ColumnID) string {
	for col, cid := range columnIDs {
		if cid == id {
			return string(col)
		}
	}
	return string(id)
}

// FilterColumns lists the filterable columns in the order the filter picker
// cycles through them.
var FilterColumns = []Column{ColumnURL, ColumnParentURL, ColumnStatus, ColumnStatusCode}

// Working-status filter labels.
const (
	StatusWorking = "working"
	StatusBroken  = "broken"
)

// StatusOptions are the choices for the working-status filter.
var StatusOptions = []Option{
	{Value: StatusWorking, Label: "Working"},
	{Value: StatusBroken, Label: "Broken"},
}

// Option is one choice in a multi-select filter.
type Option struct {
	Value string
	Label string
}
