package logtail

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"
)

// Entry is one structured log line.
type Entry struct {
	Time    time.Time
	Level   string
	Message string
	Caller  string
	Fields  map[string]any
	Raw     string
}

// reserved keys written by the logging package's encoder.
var reserved = map[string]struct{}{
	"ts": {}, "level": {}, "msg": {}, "caller": {}, "logger": {}, "stacktrace": {},
}

var timeLayouts = []string{
	"2006-01-02T15:04:05.000Z0700",
	time.RFC3339Nano,
}

// Parse decodes a JSON log line. Lines that are not JSON objects come back
// with only Raw and Message set.
func Parse(line string) Entry {
	entry := Entry{Raw: line}
	var obj map[string]any
	if err := json.Unmarshal([]byte(line), &obj); err != nil {
		entry.Message = line
		return entry
	}

	if ts, ok := obj["ts"].(string); ok {
		for _, layout := range timeLayouts {
			if t, err := time.Parse(layout, ts); err == nil {
				entry.Time = t
				break
			}
		}
	}
	entry.Level = strings.ToUpper(stringField(obj, "level"))
	entry.Message = stringField(obj, "msg")
	entry.Caller = stringField(obj, "caller")

	for k, v := range obj {
		if _, skip := reserved[k]; skip {
			continue
		}
		if entry.Fields == nil {
			entry.Fields = make(map[string]any)
		}
		entry.Fields[k] = v
	}
	return entry
}

// ParseLines parses each line in order.
func ParseLines(lines []string) []Entry {
	entries := make([]Entry, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		entries = append(entries, Parse(line))
	}
	return entries
}

// Format renders an entry as "15:04:05 LEVEL message key=value ...", with
// fields sorted by key.
func (e Entry) Format() string {
	var b strings.Builder
	if !e.Time.IsZero() {
		b.WriteString(e.Time.Local().Format("15:04:05"))
		b.WriteByte(' ')
	}
	if e.Level != "" {
		b.WriteString(e.Level)
		b.WriteByte(' ')
	}
	b.WriteString(e.Message)
	b.WriteString(e.FieldText())
	return b.String()
}

// FieldText renders the extra fields as " key=value ..." sorted by key, or
// "" when there are none.
func (e Entry) FieldText() string {
	keys := make([]string, 0, len(e.Fields))
	for k := range e.Fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	var b strings.Builder
	for _, k := range keys {
		fmt.Fprintf(&b, " %s=%v", k, e.Fields[k])
	}
	return b.String()
}

func stringField(obj map[string]any, key string) string {
	if v, ok := obj[key].(string); ok {
		return v
	}
	return ""
}
