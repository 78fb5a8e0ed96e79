package protovalue

import "github.com/protodyn/protodyn/reflect/protoreflect"

// DefaultScalar returns the zero value for every kind except MessageKind,
// which it cannot construct on its own (protovalue has no way to
// allocate a dynamicpb.Message without importing dynamicpb, which would
// create an import cycle). Callers that may encounter a MessageKind
// RuntimeType — dynamicpb's own slot types — construct that case
// themselves and fall back to DefaultScalar for every other kind.
func DefaultScalar(t protoreflect.RuntimeType) Value {
	switch t.Kind() {
	case protoreflect.BoolKind:
		return Bool(false)
	case protoreflect.Uint32Kind:
		return Uint32(0)
	case protoreflect.Int32Kind:
		return Int32(0)
	case protoreflect.Uint64Kind:
		return Uint64(0)
	case protoreflect.Int64Kind:
		return Int64(0)
	case protoreflect.Float32Kind:
		return Float32(0)
	case protoreflect.Float64Kind:
		return Float64(0)
	case protoreflect.StringKind:
		return String("")
	case protoreflect.BytesKind:
		return Bytes(nil)
	case protoreflect.EnumKind:
		return Enum(t.Enum(), 0)
	default:
		panic("protodyn: DefaultScalar called with a MessageKind RuntimeType")
	}
}
