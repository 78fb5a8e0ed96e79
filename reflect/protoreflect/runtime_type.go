package protoreflect

import "fmt"

// RuntimeType is a descriptor-derived, immutable type tag: the Kind plus,
// for Enum and Message kinds, the descriptor that gives the kind its
// identity. Two RuntimeTypes compare equal only when their Kind and
// (if applicable) underlying descriptor identity match, so a Value can
// never be mistaken for holding a different enum or message type that
// happens to share a Kind.
type RuntimeType struct {
	kind Kind
	enum EnumDescriptor
	msg  MessageDescriptor
}

// Package-level singletons for the nine kinds that carry no descriptor.
var (
	Bool    = RuntimeType{kind: BoolKind}
	Uint32  = RuntimeType{kind: Uint32Kind}
	Int32   = RuntimeType{kind: Int32Kind}
	Uint64  = RuntimeType{kind: Uint64Kind}
	Int64   = RuntimeType{kind: Int64Kind}
	Float32 = RuntimeType{kind: Float32Kind}
	Float64 = RuntimeType{kind: Float64Kind}
	String  = RuntimeType{kind: StringKind}
	Bytes   = RuntimeType{kind: BytesKind}
)

// OfEnum returns the RuntimeType for values of the given enum.
func OfEnum(d EnumDescriptor) RuntimeType {
	if d == nil {
		panic("protodyn: OfEnum called with nil EnumDescriptor")
	}
	return RuntimeType{kind: EnumKind, enum: d}
}

// OfMessage returns the RuntimeType for values of the given message.
func OfMessage(d MessageDescriptor) RuntimeType {
	if d == nil {
		panic("protodyn: OfMessage called with nil MessageDescriptor")
	}
	return RuntimeType{kind: MessageKind, msg: d}
}

// Kind reports which of the eleven Value variants this type denotes.
func (t RuntimeType) Kind() Kind { return t.kind }

// Enum returns the enum descriptor for an EnumKind type. It panics for
// any other kind.
func (t RuntimeType) Enum() EnumDescriptor {
	if t.kind != EnumKind {
		panic(fmt.Sprintf("protodyn: Enum() called on non-enum RuntimeType %v", t))
	}
	return t.enum
}

// Message returns the message descriptor for a MessageKind type. It
// panics for any other kind.
func (t RuntimeType) Message() MessageDescriptor {
	if t.kind != MessageKind {
		panic(fmt.Sprintf("protodyn: Message() called on non-message RuntimeType %v", t))
	}
	return t.msg
}

// IsValidMapKey reports whether t may be used as a map key kind.
func (t RuntimeType) IsValidMapKey() bool { return t.kind.IsValidMapKey() }

// Equal reports whether t and u denote the same runtime type: same kind,
// and for Enum/Message kinds, the same descriptor identity.
func (t RuntimeType) Equal(u RuntimeType) bool {
	if t.kind != u.kind {
		return false
	}
	switch t.kind {
	case EnumKind:
		return t.enum == u.enum
	case MessageKind:
		return t.msg == u.msg
	default:
		return true
	}
}

func (t RuntimeType) String() string {
	switch t.kind {
	case EnumKind:
		return fmt.Sprintf("enum<%s>", t.enum.FullName())
	case MessageKind:
		return fmt.Sprintf("message<%s>", t.msg.FullName())
	default:
		return t.kind.String()
	}
}

// FieldShape distinguishes the three slot kinds a message field may be
// realized as: a singular Optional cell, a Repeated vector, or a Map
// container.
type FieldShape int8

const (
	SingularShape FieldShape = iota
	RepeatedShape
	MapShape
)

// RuntimeFieldType describes the full shape of a field slot: whether it
// is singular, repeated, or a map, and the RuntimeType(s) it holds.
type RuntimeFieldType struct {
	shape FieldShape
	elem  RuntimeType // Singular/Repeated element type, or map value type
	key   RuntimeType // map key type; zero value unless shape == MapShape
}

// Singular constructs the field type for an Optional cell holding t.
func Singular(t RuntimeType) RuntimeFieldType {
	return RuntimeFieldType{shape: SingularShape, elem: t}
}

// Repeated constructs the field type for a Repeated vector of t.
func Repeated(t RuntimeType) RuntimeFieldType {
	return RuntimeFieldType{shape: RepeatedShape, elem: t}
}

// MapOf constructs the field type for a Map container from key to value.
// It panics if key is not one of the six permitted map key kinds.
func MapOf(key, value RuntimeType) RuntimeFieldType {
	if !key.IsValidMapKey() {
		panic(fmt.Sprintf("protodyn: invalid map key type %v", key))
	}
	return RuntimeFieldType{shape: MapShape, key: key, elem: value}
}

func (t RuntimeFieldType) Shape() FieldShape { return t.shape }
func (t RuntimeFieldType) IsSingular() bool  { return t.shape == SingularShape }
func (t RuntimeFieldType) IsRepeated() bool  { return t.shape == RepeatedShape }
func (t RuntimeFieldType) IsMap() bool       { return t.shape == MapShape }

// Elem returns the Optional/Repeated element type, or the Map value type.
func (t RuntimeFieldType) Elem() RuntimeType { return t.elem }

// MapKey returns the Map key type. It panics if the shape is not MapShape.
func (t RuntimeFieldType) MapKey() RuntimeType {
	if t.shape != MapShape {
		panic("protodyn: MapKey() called on a non-map field type")
	}
	return t.key
}

// MapValue returns the Map value type. It panics if the shape is not
// MapShape.
func (t RuntimeFieldType) MapValue() RuntimeType {
	if t.shape != MapShape {
		panic("protodyn: MapValue() called on a non-map field type")
	}
	return t.elem
}
