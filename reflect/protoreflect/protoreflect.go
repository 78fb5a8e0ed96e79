// Package protoreflect defines the descriptor contract that protovalue
// and dynamicpb are built against: the kinds a Value can hold, the
// runtime type system derived from those kinds, and the minimal
// descriptor interfaces (MessageDescriptor, FieldDescriptor,
// OneofDescriptor, EnumDescriptor) that a dynamic message needs to walk
// its own schema.
//
// This is a deliberately small slice of a full protobuf reflection API:
// no FileDescriptor, no services, no extension machinery, no descriptor
// options. Those all belong to descriptor *construction* and registries,
// which are out of this package's scope; protodesc supplies just enough
// of a builder to stand descriptors up for tests and callers.
package protoreflect

// Name is an unqualified declaration name, e.g. "Price".
type Name string

// FullName is a fully-qualified, dot-separated declaration name, e.g.
// "example.Order.Price".
type FullName string

// FieldNumber identifies a field within a message.
type FieldNumber = int32

// EnumNumber is the numeric value of an enum constant.
type EnumNumber int32

// Kind enumerates the eleven scalar, enum, and message variants a Value
// can hold: the wire-level numeric kinds (Uint32/Int32/Uint64/Int64,
// fixed-width Float32/Float64, varint Bool), length-delimited String and
// Bytes, and the two kinds that carry a descriptor for their identity,
// Enum and Message.
type Kind int8

const (
	InvalidKind Kind = iota
	BoolKind
	Uint32Kind
	Int32Kind
	Uint64Kind
	Int64Kind
	Float32Kind
	Float64Kind
	StringKind
	BytesKind
	EnumKind
	MessageKind
)

func (k Kind) String() string {
	switch k {
	case BoolKind:
		return "bool"
	case Uint32Kind:
		return "uint32"
	case Int32Kind:
		return "int32"
	case Uint64Kind:
		return "uint64"
	case Int64Kind:
		return "int64"
	case Float32Kind:
		return "float32"
	case Float64Kind:
		return "float64"
	case StringKind:
		return "string"
	case BytesKind:
		return "bytes"
	case EnumKind:
		return "enum"
	case MessageKind:
		return "message"
	default:
		return "invalid"
	}
}

// IsValidMapKey reports whether k is one of the six kinds the wire
// format permits as a map key: Uint32, Int32, Uint64, Int64, Bool,
// String. Floating-point, bytes, enum, and message kinds are excluded
// because Go maps require comparable, well-defined-equality keys (and
// protobuf itself disallows float/bytes/message map keys for the same
// reason).
func (k Kind) IsValidMapKey() bool {
	switch k {
	case Uint32Kind, Int32Kind, Uint64Kind, Int64Kind, BoolKind, StringKind:
		return true
	default:
		return false
	}
}
