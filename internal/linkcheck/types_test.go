package linkcheck

import (
	"encoding/json"
	"testing"
)

func TestResponseTimeUnmarshal(t *testing.T) {
	cases := []struct {
		name string
		in   string
		want ResponseTime
	}{
		{"string", `{"url":"u","response_time":"123.4ms"}`, "123.4ms"},
		{"integer", `{"url":"u","response_time":120}`, "120"},
		{"float", `{"url":"u","response_time":12.5}`, "12.5"},
		{"null", `{"url":"u","response_time":null}`, ""},
		{"missing", `{"url":"u"}`, ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var got LinkResult
			if err := json.Unmarshal([]byte(tc.in), &got); err != nil {
				t.Fatalf("Unmarshal returned error: %v", err)
			}
			if got.ResponseTime != tc.want {
				t.Fatalf("ResponseTime = %q, want %q", got.ResponseTime, tc.want)
			}
		})
	}
}

func TestResponseTimeUnmarshal_RejectsObjects(t *testing.T) {
	var got LinkResult
	if err := json.Unmarshal([]byte(`{"url":"u","response_time":{}}`), &got); err == nil {
		t.Fatalf("Unmarshal returned nil error, want decode error")
	}
}

func TestStatusCodeText(t *testing.T) {
	if got := (LinkResult{}).StatusCodeText(); got != "" {
		t.Fatalf("StatusCodeText without code = %q, want empty", got)
	}
	if got := (LinkResult{StatusCode: 404}).StatusCodeText(); got != "404" {
		t.Fatalf("StatusCodeText = %q, want 404", got)
	}
}

func TestParsedLastChecked(t *testing.T) {
	r := LinkResult{LastChecked: "2025-03-01T10:11:12.123456789Z"}
	if got := r.ParsedLastChecked(); got.IsZero() || got.Year() != 2025 {
		t.Fatalf("ParsedLastChecked = %v, want 2025 timestamp", got)
	}
	r.LastChecked = "yesterday"
	if !r.ParsedLastChecked().IsZero() {
		t.Fatalf("ParsedLastChecked should be zero for garbage")
	}
}
