package logger

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"strings"
)

// FixedFormatWriter turns zerolog JSON records into fixed-width columns.
//
// Output format:
//
//	2026-10-19 12:00:00.000 [INF] [monitor   ] Monitor started interval=1.5 delta=true
//	2026-10-19 12:00:01.200 [ERR] [collector ] Command failed cmd=sensors err="exit status 1"
type FixedFormatWriter struct {
	w io.Writer
}

// NewFixedFormatWriter creates a new FixedFormatWriter that wraps the given writer.
func NewFixedFormatWriter(w io.Writer) *FixedFormatWriter {
	return &FixedFormatWriter{w: w}
}

var levelTags = map[string]string{
	"trace": "TRC",
	"debug": "DBG",
	"info":  "INF",
	"warn":  "WRN",
	"error": "ERR",
	"fatal": "FTL",
	"panic": "PNC",
}

const componentWidth = 10

const timestampWidth = len("2006-01-02 15:04:05.000")

func (f *FixedFormatWriter) Write(p []byte) (int, error) {
	var fields map[string]interface{}
	if err := json.Unmarshal(p, &fields); err != nil {
		return f.w.Write(p)
	}

	ts := formatTimestamp(popString(fields, "time"))
	lvl := levelTags[popString(fields, "level")]
	if lvl == "" {
		lvl = "???"
	}
	comp := popString(fields, "component")
	if len(comp) > componentWidth {
		comp = comp[:componentWidth]
	}
	message := popString(fields, "message")
	delete(fields, "caller")

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s [%s] [%-*s] %s", ts, lvl, componentWidth, comp, message)
	if extra := formatExtra(fields); extra != "" {
		sb.WriteByte(' ')
		sb.WriteString(extra)
	}
	sb.WriteByte('\n')

	_, err := io.WriteString(f.w, sb.String())
	// zerolog expects the original length back
	return len(p), err
}

func popString(fields map[string]interface{}, key string) string {
	v, ok := fields[key]
	if !ok {
		return ""
	}
	delete(fields, key)
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprintf("%v", v)
}

// formatTimestamp converts an RFC3339 timestamp to "2006-01-02 15:04:05.000".
func formatTimestamp(ts string) string {
	if len(ts) < len("2006-01-02T15:04:05") {
		return strings.Repeat(" ", timestampWidth)
	}

	result := strings.Replace(ts, "T", " ", 1)

	// strip zone: Z, +09:00, -05:00
	if idx := strings.IndexAny(result[11:], "Z+-"); idx >= 0 {
		result = result[:11+idx]
	}

	dot := strings.LastIndex(result, ".")
	if dot == -1 {
		result += ".000"
	} else if frac := result[dot+1:]; len(frac) > 3 {
		result = result[:dot+4]
	} else if len(frac) < 3 {
		result += strings.Repeat("0", 3-len(frac))
	}

	if len(result) < timestampWidth {
		result += strings.Repeat(" ", timestampWidth-len(result))
	}
	return result[:timestampWidth]
}

// formatExtra renders the remaining fields as sorted key=value pairs.
func formatExtra(fields map[string]interface{}) string {
	if len(fields) == 0 {
		return ""
	}

	keys := make([]string, 0, len(fields))
	for k := range fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		s := fmt.Sprintf("%v", fields[k])
		if strings.ContainsAny(s, " \t\n\"") {
			parts = append(parts, fmt.Sprintf("%s=%q", k, s))
		} else {
			parts = append(parts, k+"="+s)
		}
	}
	return strings.Join(parts, " ")
}
