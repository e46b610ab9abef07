package format

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
)

// Envelope is the stable shape for structured command output.
type Envelope struct {
	Data any `json:"data"`
}

// Texter provides a human rendering for --format text.
type Texter interface {
	Text() string
}

// Write writes output in the requested format.
//
// Supported formats:
// - json (default)
// - text
func Write(w io.Writer, v any, format string, pretty bool) error {
	switch format {
	case "", "json":
		return WriteJSON(w, v, pretty)
	case "text":
		return WriteText(w, v)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// WriteJSON writes strict JSON output for CLI commands.
//
// NOTE: We intentionally keep output strict JSON only. If you need to
// communicate how to fetch more data, use a `meta` object or `_hint` fields.
func WriteJSON(w io.Writer, v any, pretty bool) error {
	var b []byte
	var err error
	if pretty {
		b, err = json.MarshalIndent(v, "", "  ")
	} else {
		b, err = json.Marshal(v)
	}
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, string(b))
	return err
}

// WriteText writes the payload's human rendering. Payloads without one
// fall back to pretty JSON so scripted callers still get something
// parseable.
func WriteText(w io.Writer, v any) error {
	if t, ok := v.(Texter); ok {
		s := strings.TrimRight(t.Text(), "\n")
		if s == "" {
			return nil
		}
		_, err := fmt.Fprintln(w, s)
		return err
	}
	return WriteJSON(w, v, true)
}

// Text returns the envelope payload's rendering, unwrapping to the
// inner data's Texter when present.
func (e Envelope) Text() string {
	if t, ok := e.Data.(Texter); ok {
		return t.Text()
	}
	b, err := json.MarshalIndent(e.Data, "", "  ")
	if err != nil {
		return fmt.Sprintf("%v", e.Data)
	}
	return string(b)
}
