package linkcheck

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"
)

// CheckRequest is the body of POST /api/check-links.
type CheckRequest struct {
	URL   string `json:"url"`
	Depth int    `json:"depth"`
}

// LinkResult mirrors one element of the /api/check-links response array.
// Everything except URL is optional on the wire.
type LinkResult struct {
	URL          string       `json:"url"`
	ParentURL    string       `json:"parent_url,omitempty"`
	StatusCode   int          `json:"status_code,omitempty"`
	IsWorking    bool         `json:"is_working"`
	Error        string       `json:"error,omitempty"`
	Depth        int          `json:"depth,omitempty"`
	ResponseTime ResponseTime `json:"response_time,omitempty"`
	LastChecked  string       `json:"last_checked,omitempty"`
}

// ResponseTime holds the backend's response_time field verbatim. The backend
// has shipped both strings ("123.4ms") and bare numbers, so numbers are kept
// as their decimal text and interpreted later by the formatter.
type ResponseTime string

// UnmarshalJSON accepts a JSON string, number or null.
func (r *ResponseTime) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		*r = ""
		return nil
	}
	if trimmed[0] == '"' {
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return fmt.Errorf("decode response_time: %w", err)
		}
		*r = ResponseTime(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(trimmed, &n); err != nil {
		return fmt.Errorf("decode response_time: %w", err)
	}
	*r = ResponseTime(n.String())
	return nil
}

// String returns the raw text.
func (r ResponseTime) String() string {
	return string(r)
}

// HasStatusCode reports whether the backend supplied a status code.
func (l LinkResult) HasStatusCode() bool {
	return l.StatusCode != 0
}

// StatusCodeText returns the status code as text, or "" when absent.
func (l LinkResult) StatusCodeText() string {
	if !l.HasStatusCode() {
		return ""
	}
	return strconv.Itoa(l.StatusCode)
}

// ParsedLastChecked returns the last_checked timestamp, or zero when missing
// or unparsable.
func (l LinkResult) ParsedLastChecked() time.Time {
	return parseTime(l.LastChecked)
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	if t, err := time.Parse(time.RFC3339Nano, value); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t
	}
	return time.Time{}
}
