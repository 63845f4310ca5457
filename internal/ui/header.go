package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderHeader renders the status bar with all information.
func (m Model) renderHeader() string {
	// Header uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	return styles.Header.Width(m.width).Render(m.buildStatusContent(styles, bg))
}

// buildStatusContent builds the status bar content string.
func (m Model) buildStatusContent(styles Styles, bg BgStyle) string {
	compact := m.width < LayoutCompactWidth

	var parts []string

	// Logo
	parts = append(parts, bg.Render("linkcheck", styles.Logo))

	// Backend status indicator
	parts = append(parts, m.formatBackendStatus(compact, styles, bg))

	// In-flight check
	if m.controller.Busy() {
		parts = append(parts,
			bg.Render(m.spinner.View(), styles.AccentText)+bg.Space()+
				bg.Render("Checking...", styles.WarningText.Bold(true)),
		)
	}

	// Result counts
	if m.snapshot.HasResults {
		broken := m.snapshot.Broken()
		brokenStyle := styles.MutedText
		if broken > 0 {
			brokenStyle = styles.DangerText
		}
		parts = append(parts,
			bg.Render("Links:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", len(m.snapshot.Results)), styles.Text)+
				bg.Spaces(2)+bg.Render("•", styles.FaintText)+bg.Spaces(2)+
				bg.Render("Broken:", styles.MutedText)+bg.Space()+
				bg.Render(fmt.Sprintf("%d", broken), brokenStyle),
		)
		if !compact {
			parts = append(parts,
				bg.Render("Depth:", styles.MutedText)+bg.Space()+
					bg.Render(fmt.Sprintf("%d", m.snapshot.Request.Depth), styles.Text),
			)
		}
	}

	// Timestamp with relative time
	if timeStr := m.formatTimestamp(); timeStr != "" {
		parts = append(parts, bg.Render(timeStr, styles.MutedText))
	}

	// Error indicator
	if m.snapshot.LastError != nil {
		maxErr := 80
		if compact {
			maxErr = 40
		}
		label := "ERROR"
		if m.snapshot.IsOffline() {
			label = classifyConnectionError(m.snapshot.LastError)
		}
		parts = append(parts,
			bg.Render(label, styles.DangerText.Bold(true))+bg.Space()+
				bg.Render(truncate(m.snapshot.LastError.Error(), maxErr), styles.DangerText),
		)
	}

	// Transient notice
	if m.notice != "" {
		parts = append(parts,
			bg.Render("!", styles.WarningText.Bold(true))+bg.Space()+
				bg.Render(m.notice, styles.WarningText),
		)
	}

	return bg.Join(parts, "  ")
}

// formatBackendStatus shows the backend address and its startup probe result.
func (m Model) formatBackendStatus(compact bool, styles Styles, bg BgStyle) string {
	host := stripScheme(m.backendURL)
	if compact {
		host = truncateMiddle(host, 24)
	}

	dot := bg.Render("●", styles.MutedText)
	switch {
	case !m.backendProbed:
	case m.backendErr != nil:
		dot = bg.Render("● "+classifyConnectionError(m.backendErr), styles.DangerText)
	default:
		dot = bg.Render("●", styles.SuccessText)
	}
	if host == "" {
		return dot
	}
	return dot + bg.Space() + bg.Render(host, styles.MutedText)
}

// formatTimestamp formats the last update time with relative indicator.
func (m Model) formatTimestamp() string {
	last := m.snapshot.LastUpdated
	if last.IsZero() {
		return ""
	}

	timeSince := time.Since(last)
	timeStr := last.Format("15:04:05")

	if timeSince < time.Minute {
		timeStr += " (now)"
	} else if timeSince < time.Hour {
		timeStr += fmt.Sprintf(" (%dm ago)", int(timeSince.Minutes()))
	} else if timeSince < 24*time.Hour {
		timeStr += fmt.Sprintf(" (%dh ago)", int(timeSince.Hours()))
	}

	return timeStr
}

// classifyConnectionError returns a short description of the connection error.
func classifyConnectionError(err error) string {
	if err == nil {
		return ""
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "connection refused"):
		return "OFFLINE"
	case strings.Contains(msg, "no such host"):
		return "HOST NOT FOUND"
	case strings.Contains(msg, "deadline exceeded"), strings.Contains(msg, "timeout"):
		return "TIMEOUT"
	default:
		return "ERROR"
	}
}

// renderAddressBar shows the shareable view address the table keeps in sync.
func (m Model) renderAddressBar() string {
	styles := m.theme.Styles().WithBackground(m.theme.Background)
	bg := NewBgStyle(m.theme.Background)

	address := truncateMiddle(m.address.String(), max(10, m.width-12))
	content := bg.Render("view", styles.FaintText) + bg.Space() + bg.Render(address, styles.InfoText)
	return bg.FillLine(" "+content, m.width)
}

// renderCommandBar renders the key hints for the focused area.
func (m Model) renderCommandBar() string {
	// Command bar uses Surface background
	styles := m.theme.Styles().WithBackground(m.theme.Surface)
	bg := NewBgStyle(m.theme.Surface)

	type cmd struct{ key, desc string }
	var commands []cmd

	switch m.focus {
	case focusURL, focusDepth:
		commands = []cmd{
			{"Enter", "Check"},
			{"Tab", "Next field"},
			{"Esc", "Table"},
		}
	case focusFilter:
		if m.table.State().ActiveFilter().MultiSelect() {
			commands = []cmd{
				{"j/k", "Navigate"},
				{"Space", "Toggle"},
				{"Tab", "Column"},
				{"X", "Clear"},
				{"Esc", "Done"},
			}
		} else {
			commands = []cmd{
				{"Type", "Filter"},
				{"Tab", "Column"},
				{"Enter", "Done"},
			}
		}
	default:
		for _, b := range m.keys.ShortHelp() {
			h := b.Help()
			commands = append(commands, cmd{h.Key, h.Desc})
		}
	}

	colon := bg.Sep(":")
	sep := bg.Spaces(2)

	segments := make([]string, 0, len(commands)+1)
	for _, c := range commands {
		segments = append(segments,
			bg.Render(c.key, styles.AccentText)+colon+bg.Render(c.desc, styles.MutedText))
	}

	// Add theme indicator
	segments = append(segments,
		bg.Render("T", styles.AccentText)+colon+bg.Render(m.theme.Name, styles.FaintText))

	return styles.Footer.Width(m.width).Render(strings.Join(segments, sep))
}

// renderMain stacks the header, form, results and command bar.
func (m Model) renderMain() string {
	sections := []string{
		m.renderHeader(),
		m.renderAddressBar(),
		m.renderForm(),
		m.renderFilterBar(),
		m.renderResults(m.tableHeight()),
		m.renderCommandBar(),
	}
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

// tableHeight is the number of body rows left for the table.
func (m Model) tableHeight() int {
	return max(1, m.height-chromeRows)
}
