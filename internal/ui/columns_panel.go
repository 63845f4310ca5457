package ui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// renderColumnsPanel renders the column arranger overlay: order, visibility
// and the row under the cursor.
func (m Model) renderColumnsPanel() string {
	styles := m.theme.Styles()
	st := m.table.State()

	var b strings.Builder
	b.WriteString(styles.Text.Bold(true).Render("Columns"))
	b.WriteString("\n")
	b.WriteString(styles.FaintText.Render(strings.Repeat("─", 30)))
	b.WriteString("\n\n")

	for i, col := range st.ColumnOrder() {
		box := "[x]"
		style := styles.Text
		if st.Hidden(col) {
			box = "[ ]"
			style = styles.FaintText
		}
		line := box + " " + col.Header()
		if i == m.columnCursor {
			b.WriteString(styles.Selected.Width(30).Render(line))
		} else {
			b.WriteString(style.Render(line))
		}
		b.WriteString("\n")
	}

	b.WriteString("\n")
	keyStyle := lipgloss.NewStyle().Foreground(lipgloss.Color(m.theme.Warning))
	for _, binding := range m.keys.FullHelp()[4][1:] {
		h := binding.Help()
		b.WriteString(keyStyle.Render(h.Key) + " " + styles.MutedText.Render(h.Desc) + "\n")
	}
	b.WriteString(keyStyle.Render("esc") + " " + styles.MutedText.Render("Done"))

	modal := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color(m.theme.Accent)).
		Padding(1, 2).
		Width(40)

	return lipgloss.Place(
		m.width,
		m.height,
		lipgloss.Center,
		lipgloss.Center,
		modal.Render(b.String()),
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color(m.theme.Background)),
	)
}
