package submit

import (
	"errors"
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/five82/linkcheck/internal/linkcheck"
)

// Depth bounds for a crawl.
const (
	MinDepth     = 0
	MaxDepth     = 4
	DefaultDepth = 1
)

// Form field names used as FieldErrors keys.
const (
	FieldURL   = "url"
	FieldDepth = "depth"
)

const (
	msgInvalidURL    = "Please enter a valid URL"
	msgDepthInteger  = "Depth must be a whole number"
	msgDepthOutRange = "Depth must be between 0 and 4"
)

// ErrInvalid matches any FieldErrors with errors.Is.
var ErrInvalid = errors.New("invalid submission")

// FormValues is the raw form input. Depth stays text so a half-typed value
// can be reported instead of silently coerced.
type FormValues struct {
	URL   string
	Depth string
}

// Values builds FormValues from typed input.
func Values(rawURL string, depth int) FormValues {
	return FormValues{URL: rawURL, Depth: strconv.Itoa(depth)}
}

// FieldErrors maps a form field to its message.
type FieldErrors map[string]string

func (f FieldErrors) Error() string {
	keys := make([]string, 0, len(f))
	for k := range f {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, k+": "+f[k])
	}
	return strings.Join(parts, "; ")
}

// Is lets errors.Is(err, ErrInvalid) match.
func (f FieldErrors) Is(target error) bool {
	return target == ErrInvalid
}

// Validate checks the form and builds the request. It returns nil error only
// when every field is valid.
func Validate(v FormValues) (linkcheck.CheckRequest, error) {
	errs := FieldErrors{}

	target := strings.TrimSpace(v.URL)
	if !validURL(target) {
		errs[FieldURL] = msgInvalidURL
	}

	depth := DefaultDepth
	if raw := strings.TrimSpace(v.Depth); raw != "" {
		n, err := strconv.Atoi(raw)
		switch {
		case err != nil:
			errs[FieldDepth] = msgDepthInteger
		case n < MinDepth || n > MaxDepth:
			errs[FieldDepth] = msgDepthOutRange
		default:
			depth = n
		}
	}

	if len(errs) > 0 {
		return linkcheck.CheckRequest{}, errs
	}
	return linkcheck.CheckRequest{URL: target, Depth: depth}, nil
}

func validURL(raw string) bool {
	if raw == "" {
		return false
	}
	u, err := url.Parse(raw)
	if err != nil {
		return false
	}
	return u.IsAbs() && u.Host != "" && u.Hostname() != ""
}
