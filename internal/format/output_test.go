package format

import (
	"bytes"
	"encoding/json"
	"testing"
)

type textPayload struct {
	ID string `json:"id"`
}

func (p textPayload) Text() string { return "task " + p.ID }

func TestWriteJSONEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: textPayload{ID: "EFF-001"}}, "json", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != `{"data":{"id":"EFF-001"}}`+"\n" {
		t.Errorf("expected compact envelope; got %q", got)
	}

	buf.Reset()
	if err := Write(&buf, Envelope{Data: textPayload{ID: "EFF-001"}}, "json", true); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var env map[string]any
	if err := json.Unmarshal(buf.Bytes(), &env); err != nil {
		t.Fatalf("pretty output not valid JSON: %v", err)
	}
	if _, ok := env["data"]; !ok {
		t.Errorf("expected data key; got %v", env)
	}
}

func TestWriteTextUnwrapsEnvelope(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: textPayload{ID: "EFF-001"}}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != "task EFF-001\n" {
		t.Errorf("expected text rendering; got %q", got)
	}
}

func TestWriteTextFallsBackToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, map[string]int{"n": 3}, "text", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	var v map[string]int
	if err := json.Unmarshal(buf.Bytes(), &v); err != nil {
		t.Fatalf("fallback output not valid JSON: %v", err)
	}
	if v["n"] != 3 {
		t.Errorf("expected payload preserved; got %v", v)
	}
}

func TestWriteUnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, "x", "yaml", false); err == nil {
		t.Fatal("expected error for unknown format")
	}
}

func TestWriteDefaultsToJSON(t *testing.T) {
	var buf bytes.Buffer
	if err := Write(&buf, Envelope{Data: 1}, "", false); err != nil {
		t.Fatalf("Write: %v", err)
	}
	if got := buf.String(); got != `{"data":1}`+"\n" {
		t.Errorf("expected JSON default; got %q", got)
	}
}
