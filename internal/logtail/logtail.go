package logtail

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/five82/linkcheck/internal/logging"
)

// zapTimeLayout matches zapcore.ISO8601TimeEncoder.
const zapTimeLayout = "2006-01-02T15:04:05.000Z0700"

// Tail returns at most maxLines from the end of the file at path. A missing
// file yields no lines and no error.
func Tail(path string, maxLines int) ([]string, error) {
	if maxLines <= 0 {
		return nil, nil
	}
	file, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open log: %w", err)
	}
	defer file.Close()

	ring := make([]string, maxLines)
	scanner := bufio.NewScanner(file)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	count := 0
	idx := 0
	for scanner.Scan() {
		ring[idx] = scanner.Text()
		idx = (idx + 1) % maxLines
		if count < maxLines {
			count++
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("read log: %w", err)
	}

	lines := make([]string, count)
	if count == maxLines {
		for i := 0; i < count; i++ {
			lines[i] = ring[(idx+i)%maxLines]
		}
	} else {
		copy(lines, ring[:count])
	}
	return lines, nil
}

// Entry is one decoded log line.
type Entry struct {
	Time    time.Time
	Level   string
	Caller  string
	Message string
	Fields  map[string]any
}

// Parse decodes one zap JSON line. A line that is not JSON becomes an entry
// whose message is the raw text.
func Parse(line string) Entry {
	var raw map[string]any
	if err := json.Unmarshal([]byte(line), &raw); err != nil {
		return Entry{Message: line}
	}

	e := Entry{Fields: make(map[string]any)}
	for k, v := range raw {
		s, _ := v.(string)
		switch k {
		case "ts":
			if t, err := time.Parse(zapTimeLayout, s); err == nil {
				e.Time = t
			}
		case "level":
			e.Level = s
		case "caller":
			e.Caller = s
		case "msg":
			e.Message = s
		case "stacktrace":
		default:
			e.Fields[k] = v
		}
	}
	return e
}

// AtLeast reports whether the entry's level is at or above minLevel. Entries
// without a level always pass.
func (e Entry) AtLeast(minLevel string) bool {
	if e.Level == "" || minLevel == "" {
		return true
	}
	return logging.ParseLevel(e.Level) >= logging.ParseLevel(minLevel)
}

// Format renders an entry as "15:04:05 LEVEL message key=value", with fields
// sorted by key.
func Format(e Entry) string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		fmt.Fprintf(&b, "%-5s ", strings.ToUpper(e.Level))
	}
	b.WriteString(e.Message)

	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}
