package types

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
	"time"
)

// The backend is schemaless: ids arrive as strings or numbers, amounts as
// numbers or numeric strings, references as ids or populated documents.
// The readers below take whatever JSON value is present and never fail;
// a value they cannot interpret reads as the zero value.

// fieldsOf returns the members of a JSON object, or nil for any other value.
func fieldsOf(b []byte) map[string]json.RawMessage {
	if !isObject(b) {
		return nil
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(b, &fields); err != nil {
		return nil
	}
	return fields
}

// rawOf copies raw, dropping absent and null values.
func rawOf(raw []byte) json.RawMessage {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil
	}
	return append(json.RawMessage(nil), trimmed...)
}

// parseNumber reads a JSON number or a numeric string. null is not a number.
func parseNumber(raw json.RawMessage) (float64, bool) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return 0, false
	}
	var f float64
	if err := json.Unmarshal(trimmed, &f); err == nil {
		return f, true
	}
	var s string
	if err := json.Unmarshal(trimmed, &s); err != nil {
		return 0, false
	}
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return 0, false
	}
	return f, true
}

func floatOf(raw json.RawMessage) float64 {
	f, _ := parseNumber(raw)
	return f
}

func intOf(raw json.RawMessage) int {
	return int(floatOf(raw))
}

func boolOf(raw json.RawMessage) bool {
	switch string(bytes.TrimSpace(raw)) {
	case "true", `"true"`:
		return true
	}
	return false
}

// textOf renders a scalar as text. A populated document is reduced to its
// name, falling back to its identifier.
func textOf(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return ""
	}
	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return ""
		}
		return s
	case '{':
		f := fieldsOf(trimmed)
		return firstText(f["name"], f["_id"], f["id"])
	case '[', 'n':
		return ""
	default:
		// number or boolean literal
		return string(trimmed)
	}
}

// firstText returns the first non-empty textOf among raws.
func firstText(raws ...json.RawMessage) string {
	for _, r := range raws {
		if s := textOf(r); s != "" {
			return s
		}
	}
	return ""
}

// stringsOf reads an array of scalars; a lone scalar becomes one element.
func stringsOf(raw json.RawMessage) []string {
	if !isArray(raw) {
		if s := textOf(raw); s != "" {
			return []string{s}
		}
		return nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s := textOf(it); s != "" {
			out = append(out, s)
		}
	}
	return out
}

// timeOf reads an RFC 3339 string or unix milliseconds. Anything else,
// including "", is the zero time.
func timeOf(raw json.RawMessage) time.Time {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return time.Time{}
	}
	if trimmed[0] == '"' {
		s := textOf(trimmed)
		if s == "" {
			return time.Time{}
		}
		if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
			return t
		}
		if t, err := time.Parse(time.DateOnly, s); err == nil {
			return t
		}
		return time.Time{}
	}
	if ms, ok := parseNumber(trimmed); ok {
		return time.UnixMilli(int64(ms)).UTC()
	}
	return time.Time{}
}
