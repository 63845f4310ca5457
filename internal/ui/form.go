package ui

import (
	"strings"

	"github.com/five82/linkcheck/internal/submit"
)

// renderForm renders the URL and depth fields with any validation messages.
func (m Model) renderForm() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	label := func(text string, focused bool, field string) string {
		style := styles.MutedText
		if focused {
			style = styles.AccentText.Bold(true)
		}
		if _, bad := m.fieldErrors[field]; bad {
			style = styles.DangerText
		}
		return bg.Render(text, style)
	}

	parts := []string{
		label("URL", m.focus == focusURL, submit.FieldURL) + bg.Space() + m.urlInput.View(),
		label("Depth", m.focus == focusDepth, submit.FieldDepth) + bg.Space() + m.depthInput.View(),
	}

	action := "u to edit"
	if m.focus == focusURL || m.focus == focusDepth {
		action = "enter to check"
	}
	if m.controller.Busy() {
		action = "checking..."
	}
	parts = append(parts, bg.Render(action, styles.FaintText))

	if msgs := m.fieldErrorMessages(); msgs != "" {
		parts = append(parts, bg.Render(msgs, styles.DangerText))
	}

	return bg.FillLine(" "+bg.Join(parts, "  "), m.width)
}

// fieldErrorMessages joins validation messages in form order.
func (m Model) fieldErrorMessages() string {
	var msgs []string
	for _, field := range []string{submit.FieldURL, submit.FieldDepth} {
		if msg, ok := m.fieldErrors[field]; ok {
			msgs = append(msgs, msg)
		}
	}
	return strings.Join(msgs, "; ")
}
