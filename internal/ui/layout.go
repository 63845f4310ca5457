package ui

import "time"

// Terminal width thresholds for responsive layouts.
const (
	// LayoutCompactWidth is the threshold below which compact mode is used.
	LayoutCompactWidth = 100

	// LayoutParentWidth is the minimum width to show the parent URL column
	// at a useful size.
	LayoutParentWidth = 120
)

// Fixed column widths. URL columns share what is left.
const (
	widthStatus       = 10
	widthStatusCode   = 28
	widthResponseTime = 14
	minURLWidth       = 16
)

// Rows of chrome around the results table: header, address, form, filter
// bar, column header, detail line, footer.
const chromeRows = 8

// Timing constants.
const (
	// DefaultUIInterval is how often relative timestamps are redrawn.
	DefaultUIInterval = time.Second

	// HealthTimeout bounds the startup backend probe.
	HealthTimeout = 3 * time.Second
)
