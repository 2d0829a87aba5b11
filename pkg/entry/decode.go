package entry

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrMalformed reports a payload that is not the expected JSON shape.
var ErrMalformed = errors.New("entry: malformed payload")

// Rejected describes a manifest element that failed validation.
type Rejected struct {
	Position int
	Reason   string
}

// DecodeManifest parses a manifest. Both the prep tool's object form
// ({"days": [...]}) and a bare array are accepted. Elements without an integer
// day and a non-empty title are returned as rejects rather than failing the
// whole manifest; ordering and duplicates are left to the caller.
func DecodeManifest(data []byte) ([]IndexRecord, []Rejected, error) {
	elems, err := manifestElements(data)
	if err != nil {
		return nil, nil, err
	}

	records := make([]IndexRecord, 0, len(elems))
	var rejected []Rejected
	for i, raw := range elems {
		fields, err := object(raw)
		if err != nil {
			rejected = append(rejected, Rejected{Position: i, Reason: "not an object"})
			continue
		}
		day, ok := intField(fields, "day", "id")
		if !ok || day < 1 {
			rejected = append(rejected, Rejected{Position: i, Reason: "missing or non-integer day"})
			continue
		}
		title, _ := stringField(fields, "title")
		if strings.TrimSpace(title) == "" {
			rejected = append(rejected, Rejected{Position: i, Reason: fmt.Sprintf("day %d has no title", day)})
			continue
		}
		rec := IndexRecord{Day: day, Title: strings.TrimSpace(title)}
		rec.File, _ = stringField(fields, "file")
		rec.Complete, _ = boolField(fields, "is_complete")
		rec.Missing = stringsField(fields, "missing_sections")
		records = append(records, rec)
	}
	return records, rejected, nil
}

// DecodeRecord parses a single day's record. The record must carry an integer
// day and a string body under "html" (or "body").
func DecodeRecord(data []byte) (*Entry, error) {
	fields, err := object(data)
	if err != nil {
		return nil, err
	}
	day, ok := intField(fields, "day", "id")
	if !ok || day < 1 {
		return nil, fmt.Errorf("%w: missing or non-integer day", ErrMalformed)
	}
	body, ok := stringField(fields, "html", "body")
	if !ok {
		return nil, fmt.Errorf("%w: day %d has no html or body", ErrMalformed, day)
	}

	e := &Entry{Day: day, Body: body}
	e.Title, _ = stringField(fields, "title")
	e.ScriptureRef, _ = stringField(fields, "scripture_ref")
	e.ScriptureText, _ = stringField(fields, "scripture_text")
	e.Devotional, _ = stringField(fields, "devotional")
	e.Prayer, _ = stringField(fields, "prayer")
	e.BibleReading, _ = stringField(fields, "bible_reading")
	e.HasLinks, _ = boolField(fields, "has_links")
	e.HasHighlights, _ = boolField(fields, "has_highlights")
	return e, nil
}

func manifestElements(data []byte) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil, fmt.Errorf("%w: empty manifest", ErrMalformed)
	}

	var elems []json.RawMessage
	switch trimmed[0] {
	case '[':
		if err := json.Unmarshal(trimmed, &elems); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
		}
		return elems, nil
	case '{':
		fields, err := object(trimmed)
		if err != nil {
			return nil, err
		}
		for _, key := range []string{"days", "entries"} {
			raw, ok := fields[key]
			if !ok {
				continue
			}
			if err := json.Unmarshal(raw, &elems); err != nil {
				return nil, fmt.Errorf("%w: %q is not an array", ErrMalformed, key)
			}
			return elems, nil
		}
		return nil, fmt.Errorf("%w: manifest has no days", ErrMalformed)
	default:
		return nil, fmt.Errorf("%w: manifest is neither an object nor an array", ErrMalformed)
	}
}

func object(data []byte) (map[string]json.RawMessage, error) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformed, err)
	}
	if fields == nil {
		return nil, fmt.Errorf("%w: null object", ErrMalformed)
	}
	return fields, nil
}

// intField returns the first key holding an integral JSON number.
func intField(fields map[string]json.RawMessage, keys ...string) (int, bool) {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] == '"' {
			return 0, false
		}
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		var n json.Number
		if err := dec.Decode(&n); err != nil {
			return 0, false
		}
		v, err := n.Int64()
		if err != nil {
			return 0, false
		}
		return int(v), true
	}
	return 0, false
}

func stringField(fields map[string]json.RawMessage, keys ...string) (string, bool) {
	for _, key := range keys {
		raw, ok := fields[key]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		return s, true
	}
	return "", false
}

func boolField(fields map[string]json.RawMessage, key string) (bool, bool) {
	raw, ok := fields[key]
	if !ok {
		return false, false
	}
	var b bool
	if err := json.Unmarshal(raw, &b); err != nil {
		return false, false
	}
	return b, true
}

func stringsField(fields map[string]json.RawMessage, key string) []string {
	raw, ok := fields[key]
	if !ok {
		return nil
	}
	var out []string
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil
	}
	return out
}
