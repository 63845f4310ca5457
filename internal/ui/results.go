package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linkcheck/internal/table"
)

const emptyCell = "—"

// columnWidths sizes the visible columns to fill width. Status columns get
// fixed widths; URL columns share the rest.
func columnWidths(cols []table.Column, width int) map[table.Column]int {
	widths := make(map[table.Column]int, len(cols))
	remaining := width - 2 - (len(cols) - 1) // gutter and separators
	var flexible []table.Column

	for _, col := range cols {
		switch col {
		case table.ColumnStatus:
			widths[col] = widthStatus
		case table.ColumnStatusCode:
			widths[col] = widthStatusCode
			if width < LayoutCompactWidth {
				widths[col] = 6
			}
		case table.ColumnResponseTime:
			widths[col] = widthResponseTime
		default:
			flexible = append(flexible, col)
			continue
		}
		remaining -= widths[col]
	}

	switch len(flexible) {
	case 0:
	case 1:
		widths[flexible[0]] = max(minURLWidth, remaining)
	default:
		// URL gets the larger share; parent URL is context.
		first := remaining * 3 / 5
		if width < LayoutParentWidth {
			first = remaining * 2 / 3
		}
		widths[flexible[0]] = max(minURLWidth, first)
		widths[flexible[1]] = max(minURLWidth, remaining-first)
	}
	return widths
}

// cellText returns the plain text of one cell.
func cellText(row table.EnhancedLinkResult, col table.Column, width int) string {
	switch col {
	case table.ColumnURL:
		return truncateMiddle(row.URL, width)
	case table.ColumnParentURL:
		if row.ParentURL == "" {
			return emptyCell
		}
		return truncateMiddle(row.ParentURL, width)
	case table.ColumnStatus:
		if row.IsWorking {
			return "● Working"
		}
		return "● Broken"
	case table.ColumnStatusCode:
		if !row.HasStatusCode() {
			return emptyCell
		}
		if width < 10 {
			return row.StatusCodeText()
		}
		return table.StatusCodeLabel(row.StatusCodeText())
	case table.ColumnResponseTime:
		return row.FormattedResponseTime
	default:
		return ""
	}
}

// cellStyle returns the foreground for one cell.
func (m Model) cellStyle(row table.EnhancedLinkResult, col table.Column, styles Styles) lipgloss.Style {
	switch col {
	case table.ColumnStatus:
		return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.WorkingColor(row.IsWorking)))
	case table.ColumnStatusCode:
		if !row.HasStatusCode() {
			return styles.FaintText
		}
		if row.IsWorking {
			return styles.Text
		}
		return styles.DangerText
	case table.ColumnResponseTime:
		bucket := table.ResponseTimeBucket(row.ResponseTimeMS)
		return lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.BucketColor(bucket)))
	case table.ColumnParentURL:
		if row.ParentURL == "" {
			return styles.FaintText
		}
		return styles.MutedText
	default:
		return styles.Text
	}
}

// renderResults renders the column header, the current page, the selected
// row's detail line and the pagination footer.
func (m Model) renderResults(height int) string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	st := m.table.State()
	view := m.table.View()
	cols := st.VisibleColumns()

	lines := make([]string, 0, height+3)

	if len(cols) == 0 {
		lines = append(lines, bg.FillLine(" "+bg.Render("All columns hidden. Press c to show some.", styles.MutedText), m.width))
		return lipgloss.JoinVertical(lipgloss.Left, lines...)
	}

	widths := columnWidths(cols, m.width)
	lines = append(lines, m.renderColumnHeader(cols, widths))

	body := m.renderBody(view, cols, widths, height, styles, bg)
	lines = append(lines, body...)
	lines = append(lines, m.renderDetail(view, styles, bg))
	lines = append(lines, m.renderPager(view, styles, bg))

	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

// renderColumnHeader renders header cells with their shortcut number, sort
// arrow and filter marker.
func (m Model) renderColumnHeader(cols []table.Column, widths map[table.Column]int) string {
	styles := m.theme.Styles()
	st := m.table.State()
	sorting := st.Sorting()
	filters := st.Filters()

	cells := make([]string, 0, len(cols))
	for i, col := range cols {
		label := fmt.Sprintf("%d %s", i+1, col.Header())
		if len(sorting) > 0 && sorting[0].ID == col.ID() {
			if sorting[0].Desc {
				label += " ↓"
			} else {
				label += " ↑"
			}
		}
		if _, ok := filters.Get(col.ID()); ok {
			label += " •"
		}
		cells = append(cells, padRight(label, widths[col]))
	}

	return styles.ColumnHeader.Width(m.width).MaxWidth(m.width).Render(" " + strings.Join(cells, " "))
}

// renderBody renders the page rows, scrolling so the selection stays visible
// when the page is taller than the terminal.
func (m Model) renderBody(view table.View, cols []table.Column, widths map[table.Column]int, height int, styles Styles, bg BgStyle) []string {
	lines := make([]string, 0, height)

	if len(view.Rows) == 0 {
		msg := "No results. Enter a URL and press enter to check it."
		switch {
		case m.controller.Busy():
			msg = "Checking links..."
		case m.table.Len() > 0:
			msg = "No links match the current filters. Press X to clear them."
		}
		lines = append(lines, bg.FillLine(" "+bg.Render(msg, styles.MutedText), m.width))
		for len(lines) < height {
			lines = append(lines, bg.FillLine("", m.width))
		}
		return lines
	}

	start := 0
	if m.selectedRow >= height {
		start = m.selectedRow - height + 1
	}
	end := min(start+height, len(view.Rows))

	for i := start; i < end; i++ {
		row := view.Rows[i]
		selected := i == m.selectedRow && m.focus == focusTable

		cells := make([]string, 0, len(cols))
		for _, col := range cols {
			text := padRight(cellText(row, col, widths[col]), widths[col])
			if selected {
				cells = append(cells, text)
				continue
			}
			cells = append(cells, bg.Render(text, m.cellStyle(row, col, styles)))
		}

		if selected {
			lines = append(lines, styles.Selected.Width(m.width).MaxWidth(m.width).Render(" "+strings.Join(cells, " ")))
			continue
		}
		lines = append(lines, bg.FillLine(bg.Space()+bg.Join(cells, " "), m.width))
	}

	for len(lines) < height {
		lines = append(lines, bg.FillLine("", m.width))
	}
	return lines
}

// renderDetail shows the error and crawl metadata of the selected row.
func (m Model) renderDetail(view table.View, styles Styles, bg BgStyle) string {
	if m.selectedRow >= len(view.Rows) || m.selectedRow < 0 {
		return bg.FillLine("", m.width)
	}
	row := view.Rows[m.selectedRow]

	var parts []string
	if row.Error != "" {
		parts = append(parts,
			bg.Render("Error:", styles.DangerText)+bg.Space()+
				bg.Render(truncate(row.Error, max(20, m.width/2)), styles.DangerText))
	}
	parts = append(parts,
		bg.Render("Depth:", styles.FaintText)+bg.Space()+bg.Render(fmt.Sprintf("%d", row.Depth), styles.MutedText))
	if checked := row.ParsedLastChecked(); !checked.IsZero() {
		parts = append(parts,
			bg.Render("Checked:", styles.FaintText)+bg.Space()+bg.Render(checked.Local().Format("15:04:05"), styles.MutedText))
	}
	if m.width >= LayoutParentWidth {
		parts = append(parts, bg.Render(truncateMiddle(row.URL, m.width/3), styles.FaintText))
	}

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}

// renderPager renders the page position, visible row range and page size.
func (m Model) renderPager(view table.View, styles Styles, bg BgStyle) string {
	pager := m.pager
	pager.PerPage = view.PageSize
	pager.SetTotalPages(view.TotalFiltered)
	pager.Page = view.PageIndex

	parts := []string{}
	if view.PageCount > 0 {
		parts = append(parts, bg.Render(pager.View(), styles.Text))
	}

	rangeText := fmt.Sprintf("Rows %d-%d of %d", view.FirstRow(), view.LastRow(), view.TotalFiltered)
	if view.TotalFiltered != m.table.Len() {
		rangeText += fmt.Sprintf(" (%d total)", m.table.Len())
	}
	parts = append(parts,
		bg.Render(rangeText, styles.MutedText),
		bg.Render("Show:", styles.FaintText)+bg.Space()+bg.Render(fmt.Sprintf("%d", view.PageSize), styles.AccentText),
	)

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}

// renderFilterBar shows the active filters and, when focused, the filter
// editor for the active column.
func (m Model) renderFilterBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)
	st := m.table.State()

	var parts []string

	if m.focus == focusFilter {
		col := st.ActiveFilter()
		parts = append(parts, bg.Render("Filter "+col.Header()+":", styles.AccentText.Bold(true)))
		if col.MultiSelect() {
			parts = append(parts, m.renderChecklist(col, styles, bg))
		} else {
			parts = append(parts, m.filterInput.View())
		}
	} else {
		parts = append(parts, bg.Render("Filters", styles.FaintText))
	}

	entries := st.Filters().Entries()
	if len(entries) == 0 && m.focus != focusFilter {
		parts = append(parts, bg.Render("none (/ to add)", styles.FaintText))
	}
	for _, e := range entries {
		tag := fmt.Sprintf("%s: %s", table.DisplayName(e.ID), truncate(e.Value.String(), 24))
		parts = append(parts, styles.Tag.Render(tag))
	}

	if sorting := st.Sorting(); len(sorting) > 0 {
		parts = append(parts,
			bg.Render("Sort", styles.FaintText)+bg.Space()+
				bg.Render(table.DisplayName(sorting[0].ID)+" "+sorting[0].Direction(), styles.MutedText))
	} else {
		parts = append(parts, bg.Render("Unsorted", styles.FaintText))
	}

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}

// renderChecklist renders the options of a multi-select filter inline.
func (m Model) renderChecklist(col table.Column, styles Styles, bg BgStyle) string {
	options := m.filterOptions(col)
	if len(options) == 0 {
		return bg.Render("no values", styles.FaintText)
	}

	selected := m.table.State().Selection(col)
	items := make([]string, 0, len(options))
	for i, opt := range options {
		box := "[ ]"
		for _, v := range selected {
			if v == opt.Value {
				box = "[x]"
				break
			}
		}
		text := box + " " + opt.Label
		style := styles.Text
		if i == m.filterCursor {
			style = styles.Selected
			items = append(items, style.Render(text))
			continue
		}
		items = append(items, bg.Render(text, style))
	}
	return bg.Join(items, "  ")
}
