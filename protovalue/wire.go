package protovalue

import (
	"github.com/protodyn/protodyn/internal/protoerrors"
	"github.com/protodyn/protodyn/reflect/protoreflect"
	"github.com/protodyn/protodyn/wire"
)

// ComputeSize returns the wire size of the payload without the field tag,
// except for String and Bytes (which include their own length-delimiter
// prefix) and Message (whose nested size is itself cached by this call).
func (v Value) ComputeSize() uint32 {
	switch v.typ.Kind() {
	case protoreflect.BoolKind, protoreflect.Uint32Kind, protoreflect.Int32Kind,
		protoreflect.Uint64Kind, protoreflect.Int64Kind, protoreflect.EnumKind:
		return uint32(wire.SizeVarint(v.num))
	case protoreflect.Float32Kind:
		return 4
	case protoreflect.Float64Kind:
		return 8
	case protoreflect.StringKind:
		n := len(v.str)
		return uint32(wire.SizeVarint(uint64(n))) + uint32(n)
	case protoreflect.BytesKind:
		n := len(v.bin)
		return uint32(wire.SizeVarint(uint64(n))) + uint32(n)
	case protoreflect.MessageKind:
		n := v.msg.ComputeSize()
		return uint32(wire.SizeVarint(uint64(n))) + n
	default:
		panic("protodyn: ComputeSize on invalid RuntimeType")
	}
}

// WriteTo emits the tag for field plus this value's payload. For a
// Message variant, it relies on the nested message's cached size set by
// the most recent ComputeSize call rather than recomputing it: the
// length prefix must match the bytes about to follow, and recomputing
// here would double the cost of every nested message in a large tree.
// Callers must call ComputeSize immediately before WriteTo, all the way
// down the recursion.
func (v Value) WriteTo(w *wire.Writer, field wire.FieldNumber) error {
	w.WriteTag(field, v.wireType())
	switch v.typ.Kind() {
	case protoreflect.BoolKind, protoreflect.Uint32Kind, protoreflect.Int32Kind,
		protoreflect.Uint64Kind, protoreflect.Int64Kind, protoreflect.EnumKind:
		w.WriteVarint(v.num)
	case protoreflect.Float32Kind:
		w.WriteFixed32(uint32(v.num))
	case protoreflect.Float64Kind:
		w.WriteFixed64(v.num)
	case protoreflect.StringKind:
		w.WriteString(v.str)
	case protoreflect.BytesKind:
		w.WriteBytes(v.bin)
	case protoreflect.MessageKind:
		w.WriteVarint(uint64(v.msg.CachedSize()))
		return v.msg.WriteTo(w)
	default:
		panic("protodyn: WriteTo on invalid RuntimeType")
	}
	return nil
}

// WritePacked emits this value's payload with no tag and no length
// prefix of its own, for use inside a repeated field's packed encoding.
// It returns an error for kinds that cannot appear in a packed run
// (String, Bytes, Message).
func (v Value) WritePacked(w *wire.Writer) error {
	switch v.typ.Kind() {
	case protoreflect.BoolKind, protoreflect.Uint32Kind, protoreflect.Int32Kind,
		protoreflect.Uint64Kind, protoreflect.Int64Kind, protoreflect.EnumKind:
		w.WriteVarint(v.num)
		return nil
	case protoreflect.Float32Kind:
		w.WriteFixed32(uint32(v.num))
		return nil
	case protoreflect.Float64Kind:
		w.WriteFixed64(v.num)
		return nil
	default:
		return protoerrors.New("value of kind %v cannot be packed", v.typ.Kind())
	}
}

// MergeFrom decodes one wire value from r into v, in place, preserving
// v's variant tag and mutating only its payload. The tag itself (field
// number and wire type) has already been consumed by the caller, which
// is why this takes no wire.Type: v's own Kind already pins the decode
// path.
func (v *Value) MergeFrom(r *wire.Reader) error {
	switch v.typ.Kind() {
	case protoreflect.BoolKind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = n
	case protoreflect.Uint32Kind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = uint64(uint32(n))
	case protoreflect.Int32Kind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = uint64(int64(int32(n)))
	case protoreflect.Uint64Kind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = n
	case protoreflect.Int64Kind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = n
	case protoreflect.EnumKind:
		n, err := r.ReadVarint()
		if err != nil {
			return err
		}
		v.num = uint64(int64(int32(n)))
	case protoreflect.Float32Kind:
		n, err := r.ReadFixed32()
		if err != nil {
			return err
		}
		v.num = uint64(n)
	case protoreflect.Float64Kind:
		n, err := r.ReadFixed64()
		if err != nil {
			return err
		}
		v.num = n
	case protoreflect.StringKind:
		s, err := r.ReadString()
		if err != nil {
			return err
		}
		v.str = s
	case protoreflect.BytesKind:
		b, err := r.ReadBytes()
		if err != nil {
			return err
		}
		v.bin = append([]byte(nil), b...)
	case protoreflect.MessageKind:
		length, err := r.ReadVarint()
		if err != nil {
			return err
		}
		old, err := r.PushLimit(length)
		if err != nil {
			return err
		}
		defer r.PopLimit(old)
		if err := v.msg.MergeFrom(r); err != nil {
			return err
		}
	default:
		panic("protodyn: MergeFrom on invalid RuntimeType")
	}
	return nil
}
