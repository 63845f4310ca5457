package ui

import "strings"

// truncate shortens a string to the given limit, adding ellipsis if needed.
func truncate(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}
	return string(runes[:limit-3]) + "..."
}

// truncateMiddle shortens a string by removing characters from the middle so
// both the host and the last path segment of a URL stay visible.
func truncateMiddle(value string, limit int) string {
	value = strings.TrimSpace(value)
	if limit <= 0 || value == "" {
		return value
	}
	runes := []rune(value)
	if len(runes) <= limit {
		return value
	}
	if limit <= 3 {
		return string(runes[:limit])
	}

	ellipsis := []rune("…")
	keep := limit - len(ellipsis)
	prefix := (keep + 1) / 2
	suffix := keep - prefix
	return string(runes[:prefix]) + string(ellipsis) + string(runes[len(runes)-suffix:])
}

// padRight pads a string with spaces to the given width, truncating first
// when it is too long.
func padRight(s string, width int) string {
	if width <= 0 {
		return ""
	}
	if len([]rune(s)) > width {
		s = truncate(s, width)
	}
	return s + strings.Repeat(" ", width-len([]rune(s)))
}

// stripScheme drops http:// and https:// for compact display.
func stripScheme(u string) string {
	if rest, ok := strings.CutPrefix(u, "https://"); ok {
		return rest
	}
	if rest, ok := strings.CutPrefix(u, "http://"); ok {
		return rest
	}
	return u
}
