// Package schema implements the self-describing message-type registry:
// compact field tables in, decode/encode of protobuf-shaped buffers out.
//
// Grounded on hearthy.protocol.mstruct (MStruct, MInteger, MBasicFixed,
// MBytes, MString) and hearthy.protocol.type_builder (the two-pass
// Builder that resolves field type names, including forward references
// to message types registered later in the same batch).
package schema

import (
	"fmt"

	"github.com/hearthy-oss/hearthproxy/herr"
)

// Kind is the resolved, structural shape of a field's value.
type Kind int

const (
	KindVarint Kind = iota
	KindFixed
	KindBytes
	KindString
	KindMessage
)

// TypeRef is the tagged union describing how a single field is encoded.
type TypeRef struct {
	Kind   Kind
	Width  int  // 32 or 64, for Varint and Fixed
	Signed bool // for Varint and Fixed
	Float  bool // for Fixed

	MessageName string      // for Kind == KindMessage, before Build
	Message     *MessageType // for Kind == KindMessage, after Build
}

// FieldDef is one entry of a message type's field table.
type FieldDef struct {
	Number   uint32
	Name     string
	Type     TypeRef
	Repeated bool
}

// MessageType is a named, ordered field table. Field numbers are unique
// within a type (enforced at registration).
type MessageType struct {
	Name   string
	Fields map[uint32]FieldDef
	// Order preserves registration order for deterministic encoding,
	// matching the source's dict-of-insertion-order _mfields_.
	Order []uint32
	byName map[string]uint32
}

func newMessageType(name string) *MessageType {
	return &MessageType{
		Name:   name,
		Fields: make(map[uint32]FieldDef),
		byName: make(map[string]uint32),
	}
}

// FieldByName looks up a field definition by its Go-side name.
func (t *MessageType) FieldByName(name string) (FieldDef, bool) {
	num, ok := t.byName[name]
	if !ok {
		return FieldDef{}, false
	}
	return t.Fields[num], true
}

// FieldSpec is the declarative, transliteration-friendly shape used to
// register a message type: (field number, field name, type name). Type
// names follow the source's string DSL: a basic scalar name ("int32",
// "uint32", "int64", "uint64", "fixed32", "fixed64", "float", "bool",
// "enum", "bytes", "string"), another registered message type's name, or
// either suffixed with "[]" to mark the field repeated.
type FieldSpec struct {
	Number uint32
	Name   string
	Type   string
}

var basicTypes = map[string]TypeRef{
	"enum":    {Kind: KindVarint, Width: 64, Signed: true},
	"bool":    {Kind: KindVarint, Width: 64, Signed: true},
	"int":     {Kind: KindVarint, Width: 32, Signed: true},
	"int32":   {Kind: KindVarint, Width: 32, Signed: true},
	"uint32":  {Kind: KindVarint, Width: 32, Signed: false},
	"int64":   {Kind: KindVarint, Width: 64, Signed: true},
	"uint64":  {Kind: KindVarint, Width: 64, Signed: false},
	"fixed32": {Kind: KindFixed, Width: 32, Signed: false},
	"fixed64": {Kind: KindFixed, Width: 64, Signed: false},
	"float":   {Kind: KindFixed, Width: 32, Float: true},
	"bytes":   {Kind: KindBytes},
	"string":  {Kind: KindString},
}

// Registry holds message types across a two-pass registration batch:
// Define allocates a handle with an empty field table (so later types
// in the same batch can refer to it by name), Build resolves every
// field's type name against the now-complete set of handles.
type Registry struct {
	types   map[string]*MessageType
	pending []pendingType
	built   bool
}

type pendingType struct {
	name   string
	fields []FieldSpec
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*MessageType)}
}

// Define allocates a named message type handle and queues its field
// table for resolution at Build time. Calling Define after Build panics:
// the registry is meant to be populated once at startup and is
// read-only afterward.
func (r *Registry) Define(name string, fields []FieldSpec) *MessageType {
	if r.built {
		panic("schema: Define called after Build; registry is process-wide and read-only once built")
	}
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("schema: duplicate message type %q", name))
	}
	t := newMessageType(name)
	r.types[name] = t
	r.pending = append(r.pending, pendingType{name: name, fields: fields})
	return t
}

// Lookup returns a previously defined message type by name.
func (r *Registry) Lookup(name string) (*MessageType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Build resolves every queued type's field table, including forward
// references to message types defined later in the same batch. It must
// be called exactly once, after all Define calls.
func (r *Registry) Build() error {
	if r.built {
		return nil
	}
	for _, p := range r.pending {
		t := r.types[p.name]
		for _, f := range p.fields {
			typeName := f.Type
			repeated := false
			if len(typeName) > 2 && typeName[len(typeName)-2:] == "[]" {
				repeated = true
				typeName = typeName[:len(typeName)-2]
			}

			var ref TypeRef
			if basic, ok := basicTypes[typeName]; ok {
				ref = basic
			} else {
				msgType, ok := r.types[typeName]
				if !ok {
					return herr.New(herr.Malformed, "no type handler for %q referenced by %s.%s", typeName, p.name, f.Name)
				}
				ref = TypeRef{Kind: KindMessage, MessageName: typeName, Message: msgType}
			}

			if _, dup := t.Fields[f.Number]; dup {
				return herr.New(herr.Malformed, "duplicate field number %d in type %s", f.Number, p.name)
			}

			def := FieldDef{Number: f.Number, Name: f.Name, Type: ref, Repeated: repeated}
			t.Fields[f.Number] = def
			t.byName[f.Name] = f.Number
			t.Order = append(t.Order, f.Number)
		}
	}
	r.built = true
	return nil
}
