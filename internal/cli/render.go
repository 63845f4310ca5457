package cli

import (
	"encoding/json"
	"fmt"
	"io"

	prettytable "github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"

	"github.com/five82/linkcheck/internal/table"
)

const urlColumnMax = 60

// writeTable renders one page of results as a box table.
func writeTable(w io.Writer, r report) {
	t := prettytable.NewWriter()
	t.SetOutputMirror(w)
	style := prettytable.StyleLight
	style.Format.Footer = text.FormatDefault
	t.SetStyle(style)

	t.AppendHeader(prettytable.Row{"#", "URL", "Parent URL", "Status", "Status Code", "Response Time", "Error"})
	t.SetColumnConfigs([]prettytable.ColumnConfig{
		{Number: 1, Align: text.AlignRight},
		{Number: 2, WidthMax: urlColumnMax, WidthMaxEnforcer: text.Trim},
		{Number: 3, WidthMax: urlColumnMax, WidthMaxEnforcer: text.Trim},
		{Number: 6, Align: text.AlignRight},
		{Number: 7, WidthMax: 40, WidthMaxEnforcer: text.Trim},
	})

	first := (r.Page-1)*r.PageSize + 1
	for i, row := range r.Rows {
		code := "—"
		if row.HasStatusCode() {
			code = table.StatusCodeLabel(row.StatusCodeText())
		}
		parent := row.ParentURL
		if parent == "" {
			parent = "—"
		}
		status := "Working"
		if !row.IsWorking {
			status = "Broken"
		}
		t.AppendRow(prettytable.Row{first + i, row.URL, parent, status, code, row.FormattedResponseTime, row.Error})
	}

	t.AppendFooter(prettytable.Row{"", fmt.Sprintf("%d links, %d broken", r.Total, r.Broken)})
	if r.PageCount > 0 {
		t.SetCaption("Page %d of %d, rows %d-%d of %d. View: %s",
			r.Page, r.PageCount, first, first+len(r.Rows)-1, r.Filtered, r.View)
	} else {
		t.SetCaption("No links match. View: %s", r.View)
	}

	t.Render()
}

// writeJSON prints the report as indented JSON.
func writeJSON(w io.Writer, r report) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(r); err != nil {
		return fmt.Errorf("encode report: %w", err)
	}
	return nil
}
