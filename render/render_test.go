package render

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/hearthy-oss/hearthproxy/schema"
)

func buildPingValue(t *testing.T) *schema.MessageValue {
	t.Helper()
	r := schema.NewRegistry()
	r.Define("Ping", []schema.FieldSpec{
		{Number: 1, Name: "id", Type: "int32"},
	})
	if err := r.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
	typ, _ := r.Lookup("Ping")
	v := schema.NewValue(typ)
	v.Set("id", int64(7))
	return v
}

func TestGetRendererDefaultsToText(t *testing.T) {
	r := GetRenderer(Format(99))
	if _, ok := r.(textRenderer); !ok {
		t.Fatalf("expected textRenderer for unknown format, got %T", r)
	}
}

func TestTextRendererIncludesTypeName(t *testing.T) {
	v := buildPingValue(t)
	var buf bytes.Buffer
	if err := GetRenderer(FormatText).Render(&buf, v); err != nil {
		t.Fatalf("Render: %v", err)
	}
	if !strings.Contains(buf.String(), "Ping") {
		t.Errorf("output = %q, want it to mention Ping", buf.String())
	}
}

func TestJSONRendererProducesValidJSON(t *testing.T) {
	v := buildPingValue(t)
	var buf bytes.Buffer
	if err := GetRenderer(FormatJSON).Render(&buf, v); err != nil {
		t.Fatalf("Render: %v", err)
	}

	var decoded struct {
		Type   string         `json:"type"`
		Fields map[string]any `json:"fields"`
	}
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v, raw=%q", err, buf.String())
	}
	if decoded.Type != "Ping" {
		t.Errorf("Type = %q, want Ping", decoded.Type)
	}
	if id, ok := decoded.Fields["id"].(float64); !ok || id != 7 {
		t.Errorf("Fields[id] = %v, want 7", decoded.Fields["id"])
	}
}
