package ui

import "testing"

func TestTruncate(t *testing.T) {
	cases := []struct {
		name  string
		in    string
		limit int
		want  string
	}{
		{"fits", "hello", 10, "hello"},
		{"trimmed", "  hello  ", 5, "hello"},
		{"ellipsis", "hello world", 8, "hello..."},
		{"tiny", "hello", 2, "he"},
		{"no_limit", "hello", 0, "hello"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := truncate(tc.in, tc.limit); got != tc.want {
				t.Fatalf("truncate(%q, %d) = %q, want %q", tc.in, tc.limit, got, tc.want)
			}
		})
	}
}

func TestTruncateMiddleKeepsBothEnds(t *testing.T) {
	got := truncateMiddle("https://example.com/a/very/long/path/page.html", 20)
	if len([]rune(got)) != 20 {
		t.Fatalf("len = %d, want 20 (%q)", len([]rune(got)), got)
	}
	if got[:10] != "https://ex" {
		t.Fatalf("prefix lost: %q", got)
	}
	if want := "page.html"; got[len(got)-len(want):] != want {
		t.Fatalf("suffix lost: %q", got)
	}
}

func TestPadRight(t *testing.T) {
	if got := padRight("ab", 4); got != "ab  " {
		t.Fatalf("padRight = %q, want %q", got, "ab  ")
	}
	if got := padRight("abcdefgh", 6); got != "abc..." {
		t.Fatalf("padRight long = %q, want %q", got, "abc...")
	}
	if got := padRight(" abc ", 6); len(got) != 6 {
		t.Fatalf("padRight trimmed = %q, want width 6", got)
	}
}

func TestStripScheme(t *testing.T) {
	cases := map[string]string{
		"https://example.com":   "example.com",
		"http://localhost:8080": "localhost:8080",
		"ftp://host":            "ftp://host",
	}
	for in, want := range cases {
		if got := stripScheme(in); got != want {
			t.Fatalf("stripScheme(%q) = %q, want %q", in, got, want)
		}
	}
}
