package table

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/five82/linkcheck/internal/linkcheck"
)

// EnhancedLinkResult is a LinkResult plus the display fields derived once per
// result set.
type EnhancedLinkResult struct {
	linkcheck.LinkResult
	FormattedResponseTime string
	ResponseTimeMS        float64
}

// Bucket classifies a response time for colouring.
type Bucket int

const (
	BucketNeutral Bucket = iota
	BucketFast
	BucketMedium
	BucketSlow
)

func (b Bucket) String() string {
	switch b {
	case BucketFast:
		return "fast"
	case BucketMedium:
		return "medium"
	case BucketSlow:
		return "slow"
	default:
		return "neutral"
	}
}

const notAvailable = "N/A"

// FormatResponseTime turns a raw response_time into display text and
// milliseconds. Go duration text ("1.5s", "850µs") keeps its text and is
// measured in milliseconds. It never fails: anything unparsable comes back
// verbatim with zero milliseconds.
func FormatResponseTime(raw string) (string, float64) {
	if raw == "" {
		return notAvailable, 0
	}

	if prefix, ok := strings.CutSuffix(raw, "ms"); ok {
		ms, err := parseFloat(prefix)
		if err != nil {
			return raw, durationMS(raw)
		}
		return raw, ms
	}

	ms, err := parseFloat(raw)
	if err != nil {
		return raw, durationMS(raw)
	}
	if ms < 1000 {
		return fmt.Sprintf("%.2fms", ms), ms
	}
	return fmt.Sprintf("%.2fs", ms/1000), ms
}

// durationMS reads Go duration text such as "1.5s" or "850µs" as
// milliseconds, or zero when raw is not a duration.
func durationMS(raw string) float64 {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}

// parseFloat rejects NaN and infinities, which strconv would otherwise accept.
func parseFloat(s string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("not a finite number: %q", s)
	}
	return v, nil
}

// ResponseTimeBucket maps milliseconds to a speed bucket. Zero means the time
// is unknown.
func ResponseTimeBucket(ms float64) Bucket {
	switch {
	case ms == 0:
		return BucketNeutral
	case ms < 300:
		return BucketFast
	case ms < 1000:
		return BucketMedium
	default:
		return BucketSlow
	}
}

var statusCodeDescriptions = map[string]string{
	"200": "OK",
	"201": "Created",
	"301": "Moved Permanently",
	"302": "Found",
	"304": "Not Modified",
	"400": "Bad Request",
	"401": "Unauthorized",
	"403": "Forbidden",
	"404": "Not Found",
	"500": "Internal Server Error",
}

// StatusCodeLabel appends a short description to well-known codes.
func StatusCodeLabel(code string) string {
	if desc, ok := statusCodeDescriptions[code]; ok {
		return code + " (" + desc + ")"
	}
	return code
}

// Enhance derives display fields for every row. The input is not modified.
func Enhance(rows []linkcheck.LinkResult) []EnhancedLinkResult {
	out := make([]EnhancedLinkResult, len(rows))
	for i, row := range rows {
		formatted, ms := FormatResponseTime(row.ResponseTime.String())
		out[i] = EnhancedLinkResult{
			LinkResult:            row,
			FormattedResponseTime: formatted,
			ResponseTimeMS:        ms,
		}
	}
	return out
}

// AvailableStatusCodes lists the distinct status codes present in rows,
// numerically ascending, as filter options.
func AvailableStatusCodes(rows []linkcheck.LinkResult) []Option {
	seen := make(map[int]struct{})
	codes := make([]int, 0)
	for _, row := range rows {
		if !row.HasStatusCode() {
			continue
		}
		if _, ok := seen[row.StatusCode]; ok {
			continue
		}
		seen[row.StatusCode] = struct{}{}
		codes = append(codes, row.StatusCode)
	}
	sort.Ints(codes)

	options := make([]Option, 0, len(codes))
	for _, code := range codes {
		value := strconv.Itoa(code)
		options = append(options, Option{Value: value, Label: StatusCodeLabel(value)})
	}
	return options
}

// WorkingLabel returns the working-status label for a row.
func WorkingLabel(isWorking bool) string {
	if isWorking {
		return StatusWorking
	}
	return StatusBroken
}
