package ui

import (
	"github.com/charmbracelet/lipgloss"

	"github.com/five82/linkcheck/internal/table"
)

// Theme defines colors and styles for the UI.
type Theme struct {
	Name string
	Dark bool

	// Base colors
	Background string // Outermost background
	Surface    string // Header and footer bars
	SurfaceAlt string // Table header, panels
	FocusBg    string // Focused input

	// Table colors
	SelectionBg   string // Selected row background
	SelectionText string // Selected row text

	// Border colors
	Border      string
	BorderMuted string
	BorderFocus string

	// Text colors
	Text    string
	Muted   string
	Faint   string
	Accent  string
	Success string
	Warning string
	Danger  string
	Info    string
}

// Styles returns Lipgloss styles for this theme.
func (t Theme) Styles() Styles {
	return Styles{
		Background: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Background)),

		Surface: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)),

		SurfaceAlt: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)),

		Text: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Text)),

		MutedText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Muted)),

		FaintText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Faint)),

		AccentText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)),

		SuccessText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Success)).
			Bold(true),

		WarningText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Warning)),

		DangerText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Danger)).
			Bold(true),

		InfoText: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Info)),

		Header: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Text)).
			Padding(0, 1),

		Footer: lipgloss.NewStyle().
			Background(lipgloss.Color(t.Surface)).
			Foreground(lipgloss.Color(t.Muted)).
			Padding(0, 1),

		Logo: lipgloss.NewStyle().
			Foreground(lipgloss.Color(t.Accent)).
			Bold(true),

		Selected: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SelectionBg)).
			Foreground(lipgloss.Color(t.SelectionText)),

		ColumnHeader: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Text)).
			Bold(true),

		Tag: lipgloss.NewStyle().
			Background(lipgloss.Color(t.SurfaceAlt)).
			Foreground(lipgloss.Color(t.Accent)).
			Padding(0, 1),
	}
}

// Styles contains pre-built Lipgloss styles for the theme.
type Styles struct {
	// Base
	Background lipgloss.Style
	Surface    lipgloss.Style
	SurfaceAlt lipgloss.Style

	// Text
	Text        lipgloss.Style
	MutedText   lipgloss.Style
	FaintText   lipgloss.Style
	AccentText  lipgloss.Style
	SuccessText lipgloss.Style
	WarningText lipgloss.Style
	DangerText  lipgloss.Style
	InfoText    lipgloss.Style

	// Components
	Header       lipgloss.Style
	Footer       lipgloss.Style
	Logo         lipgloss.Style
	Selected     lipgloss.Style
	ColumnHeader lipgloss.Style
	Tag          lipgloss.Style
}

// WithBackground returns a copy of Styles with all text styles having the specified background.
// This ensures styled text has explicit backgrounds instead of transparent/inherit.
func (s Styles) WithBackground(bgColor string) Styles {
	bg := lipgloss.Color(bgColor)

	s.Background = s.Background.Background(bg)
	s.Surface = s.Surface.Background(bg)
	s.SurfaceAlt = s.SurfaceAlt.Background(bg)
	s.Text = s.Text.Background(bg)
	s.MutedText = s.MutedText.Background(bg)
	s.FaintText = s.FaintText.Background(bg)
	s.AccentText = s.AccentText.Background(bg)
	s.SuccessText = s.SuccessText.Background(bg)
	s.WarningText = s.WarningText.Background(bg)
	s.DangerText = s.DangerText.Background(bg)
	s.InfoText = s.InfoText.Background(bg)
	s.Header = s.Header.Background(bg)
	s.Footer = s.Footer.Background(bg)
	s.Logo = s.Logo.Background(bg)
	return s
}

// BucketColor returns the foreground color for a response-time bucket.
func (t Theme) BucketColor(b table.Bucket) string {
	switch b {
	case table.BucketFast:
		return t.Success
	case table.BucketMedium:
		return t.Warning
	case table.BucketSlow:
		return t.Danger
	default:
		return t.Muted
	}
}

// WorkingColor returns the color for a link's working status.
func (t Theme) WorkingColor(working bool) string {
	if working {
		return t.Success
	}
	return t.Danger
}

// GetTheme returns the dark or light theme.
func GetTheme(dark bool) Theme {
	if dark {
		return darkTheme()
	}
	return lightTheme()
}

func darkTheme() Theme {
	// Tailwind CSS Slate/Sky palette: https://tailwindcss.com/docs/colors
	return Theme{
		Name: "Dark",
		Dark: true,

		Background: "#020617", // slate-950
		Surface:    "#0f172a", // slate-900
		SurfaceAlt: "#1e293b", // slate-800
		FocusBg:    "#283548",

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#334155", // slate-700
		BorderMuted: "#1e293b", // slate-800
		BorderFocus: "#38bdf8", // sky-400

		Text:    "#f1f5f9", // slate-100
		Muted:   "#94a3b8", // slate-400
		Faint:   "#64748b", // slate-500
		Accent:  "#38bdf8", // sky-400
		Success: "#22c55e", // green-500
		Warning: "#f59e0b", // amber-500
		Danger:  "#ef4444", // red-500
		Info:    "#06b6d4", // cyan-500
	}
}

func lightTheme() Theme {
	// Same palette, inverted for light terminals.
	return Theme{
		Name: "Light",

		Background: "#ffffff",
		Surface:    "#f1f5f9", // slate-100
		SurfaceAlt: "#e2e8f0", // slate-200
		FocusBg:    "#e0f2fe", // sky-100

		SelectionBg:   "#0284c7", // sky-600
		SelectionText: "#f8fafc", // slate-50

		Border:      "#cbd5e1", // slate-300
		BorderMuted: "#e2e8f0", // slate-200
		BorderFocus: "#0284c7", // sky-600

		Text:    "#0f172a", // slate-900
		Muted:   "#475569", // slate-600
		Faint:   "#94a3b8", // slate-400
		Accent:  "#0369a1", // sky-700
		Success: "#15803d", // green-700
		Warning: "#b45309", // amber-700
		Danger:  "#b91c1c", // red-700
		Info:    "#0e7490", // cyan-700
	}
}
