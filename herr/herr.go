// Package herr defines the error taxonomy shared by the wire codec, the
// frame splitters, and the RPC broker.
//
// The original Python source (hearthy.exceptions) kept a flat list of
// exception classes and let callers type-switch on them. Go has no
// exceptions, so each error here carries a Kind that callers can branch
// on with errors.As, while the message itself stays human-readable.
package herr

import "fmt"

// Kind categorizes an error the way the source's exception classes did.
type Kind int

const (
	_ Kind = iota
	Malformed
	UnknownField
	Duplicated
	BadEncoding
	BufferFull
	Misaligned
	UnknownPacketType
	ProtocolViolation
	NotImplemented
	UnsupportedWireType
)

func (k Kind) String() string {
	switch k {
	case Malformed:
		return "malformed"
	case UnknownField:
		return "unknown_field"
	case Duplicated:
		return "duplicated"
	case BadEncoding:
		return "bad_encoding"
	case BufferFull:
		return "buffer_full"
	case Misaligned:
		return "misaligned"
	case UnknownPacketType:
		return "unknown_packet_type"
	case ProtocolViolation:
		return "protocol_violation"
	case NotImplemented:
		return "not_implemented"
	case UnsupportedWireType:
		return "unsupported_wire_type"
	default:
		return "unknown"
	}
}

// Error is the concrete error type returned by wire, schema, frame and
// broker operations.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// New builds an Error of the given kind with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Is reports whether err carries the given Kind.
func Is(err error, kind Kind) bool {
	e, ok := err.(*Error)
	return ok && e.Kind == kind
}
