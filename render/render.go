// Package render turns a decoded Aurora packet into human-readable
// output for the CLI. It mirrors the teacher's codec package: a small
// Renderer interface with a couple of interchangeable implementations
// selected by a type tag, rather than one format hardwired into the
// caller.
package render

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/hearthy-oss/hearthproxy/schema"
)

// Format identifies which Renderer GetRenderer returns.
type Format byte

const (
	FormatText Format = iota
	FormatJSON
)

// Renderer writes one decoded packet to w.
type Renderer interface {
	Render(w io.Writer, packet *schema.MessageValue) error
}

// GetRenderer is a factory function returning the Renderer for format,
// defaulting to FormatText for anything unrecognized.
func GetRenderer(format Format) Renderer {
	if format == FormatJSON {
		return jsonRenderer{}
	}
	return textRenderer{}
}

type jsonRenderer struct{}

func (jsonRenderer) Render(w io.Writer, packet *schema.MessageValue) error {
	enc := json.NewEncoder(w)
	return enc.Encode(struct {
		Type   string         `json:"type"`
		Fields map[string]any `json:"fields"`
	}{
		Type:   packet.Type.Name,
		Fields: packet.Map(),
	})
}

type textRenderer struct{}

func (textRenderer) Render(w io.Writer, packet *schema.MessageValue) error {
	_, err := fmt.Fprintf(w, "%s %v\n", packet.Type.Name, packet.Map())
	return err
}
