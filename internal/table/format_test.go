package table

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/five82/linkcheck/internal/linkcheck"
)

func TestFormatResponseTime(t *testing.T) {
	tests := []struct {
		name      string
		raw       string
		formatted string
		ms        float64
	}{
		{name: "empty", raw: "", formatted: "N/A", ms: 0},
		{name: "ms suffix kept verbatim", raw: "123.4ms", formatted: "123.4ms", ms: 123.4},
		{name: "ms suffix integer", raw: "80ms", formatted: "80ms", ms: 80},
		{name: "bare below a second", raw: "120", formatted: "120.00ms", ms: 120},
		{name: "bare fractional", raw: "999.999", formatted: "1000.00ms", ms: 999.999},
		{name: "bare exactly a second", raw: "1000", formatted: "1.00s", ms: 1000},
		{name: "bare above a second", raw: "2500", formatted: "2.50s", ms: 2500},
		{name: "zero", raw: "0", formatted: "0.00ms", ms: 0},
		{name: "garbage", raw: "fast", formatted: "fast", ms: 0},
		{name: "garbage with ms suffix", raw: "quickms", formatted: "quickms", ms: 0},
		{name: "trailing junk", raw: "12abc", formatted: "12abc", ms: 0},
		{name: "not a number", raw: "NaN", formatted: "NaN", ms: 0},
		{name: "infinite", raw: "Inf", formatted: "Inf", ms: 0},
		{name: "duration seconds", raw: "1.5s", formatted: "1.5s", ms: 1500},
		{name: "duration micros", raw: "850µs", formatted: "850µs", ms: 0.85},
		{name: "duration compound", raw: "1m2.5s", formatted: "1m2.5s", ms: 62500},
		{name: "duration with ms suffix", raw: "1s20ms", formatted: "1s20ms", ms: 1020},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			formatted, ms := FormatResponseTime(tt.raw)
			assert.Equal(t, tt.formatted, formatted)
			assert.InDelta(t, tt.ms, ms, 1e-9)
		})
	}
}

func TestResponseTimeBucket(t *testing.T) {
	tests := []struct {
		ms   float64
		want Bucket
	}{
		{0, BucketNeutral},
		{0.5, BucketFast},
		{299, BucketFast},
		{300, BucketMedium},
		{999, BucketMedium},
		{1000, BucketSlow},
		{100000, BucketSlow},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ResponseTimeBucket(tt.ms), "bucket for %v", tt.ms)
	}
	assert.Equal(t, "medium", BucketMedium.String())
	assert.Equal(t, "neutral", Bucket(42).String())
}

func TestStatusCodeLabel(t *testing.T) {
	assert.Equal(t, "200 (OK)", StatusCodeLabel("200"))
	assert.Equal(t, "301 (Moved Permanently)", StatusCodeLabel("301"))
	assert.Equal(t, "404 (Not Found)", StatusCodeLabel("404"))
	assert.Equal(t, "500 (Internal Server Error)", StatusCodeLabel("500"))
	assert.Equal(t, "418", StatusCodeLabel("418"))
	assert.Equal(t, "", StatusCodeLabel(""))
}

func TestEnhanceDoesNotModifyInput(t *testing.T) {
	raw := []linkcheck.LinkResult{
		{URL: "https://example.com/a", ResponseTime: "120"},
		{URL: "https://example.com/b", ResponseTime: "2500"},
		{URL: "https://example.com/c"},
	}

	rows := Enhance(raw)
	require.Len(t, rows, 3)
	assert.Equal(t, "120.00ms", rows[0].FormattedResponseTime)
	assert.Equal(t, "2.50s", rows[1].FormattedResponseTime)
	assert.Equal(t, "N/A", rows[2].FormattedResponseTime)
	assert.Equal(t, linkcheck.ResponseTime("120"), raw[0].ResponseTime)
}

func TestAvailableStatusCodes(t *testing.T) {
	raw := []linkcheck.LinkResult{
		{URL: "a", StatusCode: 404},
		{URL: "b", StatusCode: 200},
		{URL: "c"},
		{URL: "d", StatusCode: 200},
		{URL: "e", StatusCode: 1000},
		{URL: "f", StatusCode: 301},
	}

	got := AvailableStatusCodes(raw)
	assert.Equal(t, []Option{
		{Value: "200", Label: "200 (OK)"},
		{Value: "301", Label: "301 (Moved Permanently)"},
		{Value: "404", Label: "404 (Not Found)"},
		{Value: "1000", Label: "1000"},
	}, got)

	assert.Empty(t, AvailableStatusCodes(nil))
}
