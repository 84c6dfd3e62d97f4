// Package ingest reads the line-delimited event stream: per-line record
// validation plus a chunk-buffering, optionally paced reader.
package ingest

import (
	"encoding/json"
	"fmt"

	"github.com/ppiankov/sentistream/internal/model"
)

// Rejection reports why a line was dropped. Rejections are values, not
// errors: line-level problems never escalate and never abort the run.
type Rejection struct {
	Line   int
	Reason string
}

func (r *Rejection) String() string {
	return fmt.Sprintf("line %d: %s", r.Line, r.Reason)
}

// Validator parses raw lines into records.
type Validator struct{}

// NewValidator creates a new validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate parses one raw line. On success it returns a complete Record;
// on failure it returns a Rejection and the zero Record. Partial records
// are never emitted.
func (v *Validator) Validate(raw string, line int) (model.Record, *Rejection) {
	var obj map[string]any
	if err := json.Unmarshal([]byte(raw), &obj); err != nil {
		return model.Record{}, &Rejection{Line: line, Reason: "invalid JSON"}
	}

	text, ok := obj["text"].(string)
	if !ok || text == "" {
		return model.Record{}, &Rejection{Line: line, Reason: "missing or empty 'text'"}
	}

	timestamp, ok := obj["timestamp"].(string)
	if !ok || timestamp == "" {
		return model.Record{}, &Rejection{Line: line, Reason: "missing or empty 'timestamp'"}
	}

	rec := model.Record{
		Text:      text,
		Timestamp: timestamp,
		Line:      line,
	}

	for key, val := range obj {
		if key == "text" || key == "timestamp" {
			continue
		}
		if rec.Extra == nil {
			rec.Extra = make(map[string]string)
		}
		rec.Extra[key] = stringify(val)
	}

	return rec, nil
}

// stringify renders a passthrough JSON value as a flat column value.
func stringify(val any) string {
	switch v := val.(type) {
	case string:
		return v
	case nil:
		return ""
	case float64, bool:
		return fmt.Sprintf("%v", v)
	default:
		// Nested objects/arrays round-trip as JSON.
		data, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(data)
	}
}
