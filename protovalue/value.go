// Package protovalue implements Value, the type-erased box that holds a
// single protobuf scalar, enum, or nested message value. It owns the
// variant's wire encode/decode, size computation, and equality.
package protovalue

import (
	"math"

	"github.com/protodyn/protodyn/internal/protoerrors"
	"github.com/protodyn/protodyn/reflect/protoreflect"
	"github.com/protodyn/protodyn/wire"
)

// Value is a type-erased holder for one of the eleven Value variants.
// It is a plain struct value: copying a Value copies its scalar payload
// (and, for Message, the interface header — nested messages are owned
// polymorphically through that interface, never duplicated).
type Value struct {
	typ protoreflect.RuntimeType
	num uint64 // Bool, Uint32, Int32, Uint64, Int64, Float32, Float64 (bit pattern), Enum
	str string
	bin []byte
	msg protoreflect.Message
}

// Type reports the RuntimeType this Value carries.
func (v Value) Type() protoreflect.RuntimeType { return v.typ }

func (v Value) wireType() wire.Type {
	switch v.typ.Kind() {
	case protoreflect.BoolKind, protoreflect.Uint32Kind, protoreflect.Int32Kind,
		protoreflect.Uint64Kind, protoreflect.Int64Kind, protoreflect.EnumKind:
		return wire.VarintType
	case protoreflect.Float32Kind:
		return wire.Fixed32Type
	case protoreflect.Float64Kind:
		return wire.Fixed64Type
	default: // String, Bytes, Message
		return wire.BytesType
	}
}

// Constructors. Each seeds a Value of a specific kind.

func Bool(b bool) Value {
	var n uint64
	if b {
		n = 1
	}
	return Value{typ: protoreflect.Bool, num: n}
}

func Uint32(x uint32) Value { return Value{typ: protoreflect.Uint32, num: uint64(x)} }

// Int32 sign-extends x to 64 bits at construction time, so that encoding
// is always a plain varint write of num: the int32 wire type uses plain
// (sign-extended) varint encoding, not zigzag, so a negative value like
// -7 costs the full 10-byte varint rather than the 1-byte zigzag form
// sint32 would give it.
func Int32(x int32) Value { return Value{typ: protoreflect.Int32, num: uint64(int64(x))} }

func Uint64(x uint64) Value { return Value{typ: protoreflect.Uint64, num: x} }
func Int64(x int64) Value   { return Value{typ: protoreflect.Int64, num: uint64(x)} }

func Float32(f float32) Value {
	return Value{typ: protoreflect.Float32, num: uint64(math.Float32bits(f))}
}
func Float64(f float64) Value {
	return Value{typ: protoreflect.Float64, num: math.Float64bits(f)}
}

func String(s string) Value { return Value{typ: protoreflect.String, str: s} }
func Bytes(b []byte) Value  { return Value{typ: protoreflect.Bytes, bin: b} }

// Enum constructs a Value of the given enum descriptor's type carrying n.
// Enum numbers are wire-compatible with int32: negative values are
// legal and sign-extend like Int32.
func Enum(d protoreflect.EnumDescriptor, n protoreflect.EnumNumber) Value {
	return Value{typ: protoreflect.OfEnum(d), num: uint64(int64(int32(n)))}
}

// Message wraps a nested message. The RuntimeType is taken from msg's own
// descriptor.
func Message(msg protoreflect.Message) Value {
	return Value{typ: protoreflect.OfMessage(msg.Descriptor()), msg: msg}
}

// Typed accessors. Each panics if called against the wrong Kind: a type
// mismatch here means the caller (or the descriptor driving it) is
// wrong, not that the data is malformed, so it is a precondition
// violation rather than a recoverable error.

func (v Value) checkKind(k protoreflect.Kind) {
	if v.typ.Kind() != k {
		panic(protoerrors.New("value of kind %v accessed as %v", v.typ.Kind(), k).Error())
	}
}

func (v Value) Bool() bool {
	v.checkKind(protoreflect.BoolKind)
	return v.num != 0
}
func (v Value) Uint32() uint32 {
	v.checkKind(protoreflect.Uint32Kind)
	return uint32(v.num)
}
func (v Value) Int32() int32 {
	v.checkKind(protoreflect.Int32Kind)
	return int32(v.num)
}
func (v Value) Uint64() uint64 {
	v.checkKind(protoreflect.Uint64Kind)
	return v.num
}
func (v Value) Int64() int64 {
	v.checkKind(protoreflect.Int64Kind)
	return int64(v.num)
}
func (v Value) Float32() float32 {
	v.checkKind(protoreflect.Float32Kind)
	return math.Float32frombits(uint32(v.num))
}
func (v Value) Float64() float64 {
	v.checkKind(protoreflect.Float64Kind)
	return math.Float64frombits(v.num)
}
func (v Value) String() string {
	v.checkKind(protoreflect.StringKind)
	return v.str
}
func (v Value) Bytes() []byte {
	v.checkKind(protoreflect.BytesKind)
	return v.bin
}
func (v Value) EnumNumber() protoreflect.EnumNumber {
	v.checkKind(protoreflect.EnumKind)
	return protoreflect.EnumNumber(int32(v.num))
}
func (v Value) Message() protoreflect.Message {
	v.checkKind(protoreflect.MessageKind)
	return v.msg
}

// As attempts to downcast v to the requested Go type V. It reports
// (zero, false) without modifying v on a type mismatch; Go methods
// cannot be generic, so this has to live as a package-level function
// rather than a Value method.
func As[V any](v Value) (V, bool) {
	var zero V
	switch any(zero).(type) {
	case bool:
		if v.typ.Kind() == protoreflect.BoolKind {
			return any(v.Bool()).(V), true
		}
	case uint32:
		if v.typ.Kind() == protoreflect.Uint32Kind {
			return any(v.Uint32()).(V), true
		}
	case int32:
		if v.typ.Kind() == protoreflect.Int32Kind {
			return any(v.Int32()).(V), true
		}
	case uint64:
		if v.typ.Kind() == protoreflect.Uint64Kind {
			return any(v.Uint64()).(V), true
		}
	case int64:
		if v.typ.Kind() == protoreflect.Int64Kind {
			return any(v.Int64()).(V), true
		}
	case float32:
		if v.typ.Kind() == protoreflect.Float32Kind {
			return any(v.Float32()).(V), true
		}
	case float64:
		if v.typ.Kind() == protoreflect.Float64Kind {
			return any(v.Float64()).(V), true
		}
	case string:
		if v.typ.Kind() == protoreflect.StringKind {
			return any(v.String()).(V), true
		}
	case []byte:
		if v.typ.Kind() == protoreflect.BytesKind {
			return any(v.Bytes()).(V), true
		}
	}
	return zero, false
}

// Equal reports whether v and u hold the same type and payload.
// Floating-point comparison is bitwise (via the stored bit pattern), so
// two identically-bit-patterned NaNs compare equal, unlike IEEE 754 "=="
// semantics under which NaN never equals anything, even itself.
func (v Value) Equal(u Value) bool {
	if !v.typ.Equal(u.typ) {
		return false
	}
	switch v.typ.Kind() {
	case protoreflect.StringKind:
		return v.str == u.str
	case protoreflect.BytesKind:
		return string(v.bin) == string(u.bin)
	case protoreflect.MessageKind:
		return messagesEqual(v.msg, u.msg)
	default: // Bool, Uint32, Int32, Uint64, Int64, Float32, Float64, Enum
		return v.num == u.num
	}
}

// messagesEqual compares two nested messages field by field through the
// protoreflect.Message.Equal method, rather than by re-encoding both and
// comparing bytes. Map field encode order is unspecified, and a Go
// map's own range order is randomized per iteration, so two wire
// encodings of the very same message value can legitimately differ
// byte for byte; only a reflective, order-independent comparison gives
// a stable equality relation.
func messagesEqual(a, b protoreflect.Message) bool {
	if a == nil || b == nil {
		return a == nil && b == nil
	}
	return a.Equal(b)
}
