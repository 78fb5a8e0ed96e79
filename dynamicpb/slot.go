// Package dynamicpb implements Message: a protocol buffer message whose
// field array is built from a protoreflect.MessageDescriptor at runtime
// rather than from generated Go struct tags.
//
// Field slots come in three shapes (Optional cell, Repeated vector, Map
// container), each owning its own wire-size, encode, and decode logic
// rather than sharing one generic container: a singular field has no
// length to track, a repeated field may additionally be packed, and a
// map field's wire representation is an implicit two-field submessage
// per entry. Collapsing all three into one generic value would just
// push that same per-shape branching into the caller instead.
package dynamicpb

import (
	"fmt"

	"github.com/protodyn/protodyn/protovalue"
	"github.com/protodyn/protodyn/reflect/protoreflect"
	"github.com/protodyn/protodyn/wire"
)

// fieldSlot is the common shape every Optional/Repeated/Map slot
// implements so DynamicMessage can drive encode/decode/size/clear
// uniformly, dispatching to the concrete behavior only where the
// reflective accessor API needs the specific shape.
type fieldSlot interface {
	clear()
	isPopulated() bool
	computeSize(field wire.FieldNumber) uint32
	writeTo(w *wire.Writer, field wire.FieldNumber) error
	mergeFrom(r *wire.Reader, wt wire.Type) error
	equal(other fieldSlot) bool
}

// defaultValue returns the zero value for t, constructing a fresh
// dynamic message for MessageKind (the one case protovalue.DefaultScalar
// cannot produce on its own, since protovalue cannot import dynamicpb).
func defaultValue(t protoreflect.RuntimeType) protovalue.Value {
	if t.Kind() == protoreflect.MessageKind {
		return protovalue.Message(New(t.Message()))
	}
	return protovalue.DefaultScalar(t)
}

func typecheck(t protoreflect.RuntimeType, v protovalue.Value, fieldName protoreflect.FullName) {
	if !v.Type().Equal(t) {
		panic(fmt.Sprintf("protodyn: %s: assigning value of type %v to field of type %v", fieldName, v.Type(), t))
	}
}

// isPackable reports whether t's kind may appear in a packed repeated
// field: any scalar numeric kind, but not String, Bytes, or Message.
func isPackable(t protoreflect.RuntimeType) bool {
	switch t.Kind() {
	case protoreflect.BoolKind, protoreflect.Uint32Kind, protoreflect.Int32Kind,
		protoreflect.Uint64Kind, protoreflect.Int64Kind,
		protoreflect.Float32Kind, protoreflect.Float64Kind, protoreflect.EnumKind:
		return true
	default:
		return false
	}
}

// optionalField is a single-slot holder for a singular field: at most
// one Value, present or absent.
type optionalField struct {
	elem  protoreflect.RuntimeType
	value *protovalue.Value
	name  protoreflect.FullName
}

func newOptionalField(elem protoreflect.RuntimeType, name protoreflect.FullName) *optionalField {
	return &optionalField{elem: elem, name: name}
}

func (f *optionalField) get() (protovalue.Value, bool) {
	if f.value == nil {
		return protovalue.Value{}, false
	}
	return *f.value, true
}

func (f *optionalField) set(v protovalue.Value) {
	typecheck(f.elem, v, f.name)
	vv := v
	f.value = &vv
}

// mutableOrDefault installs the type's default value if empty, and
// returns a pointer the caller may mutate in place.
func (f *optionalField) mutableOrDefault() *protovalue.Value {
	if f.value == nil {
		d := defaultValue(f.elem)
		f.value = &d
	}
	return f.value
}

func (f *optionalField) clear()            { f.value = nil }
func (f *optionalField) isPopulated() bool { return f.value != nil }

func (f *optionalField) equal(other fieldSlot) bool {
	o, ok := other.(*optionalField)
	if !ok {
		return false
	}
	if (f.value == nil) != (o.value == nil) {
		return false
	}
	if f.value == nil {
		return true
	}
	return f.value.Equal(*o.value)
}

func (f *optionalField) computeSize(field wire.FieldNumber) uint32 {
	if f.value == nil {
		return 0
	}
	return uint32(wire.TagSize(field)) + f.value.ComputeSize()
}

func (f *optionalField) writeTo(w *wire.Writer, field wire.FieldNumber) error {
	if f.value == nil {
		return nil
	}
	return f.value.WriteTo(w, field)
}

func (f *optionalField) mergeFrom(r *wire.Reader, _ wire.Type) error {
	v := defaultValue(f.elem)
	if err := v.MergeFrom(r); err != nil {
		return err
	}
	f.value = &v
	return nil
}

// repeatedField is an ordered sequence of same-typed values.
type repeatedField struct {
	elem   protoreflect.RuntimeType
	values []protovalue.Value
	packed bool
	name   protoreflect.FullName
}

func newRepeatedField(elem protoreflect.RuntimeType, packed bool, name protoreflect.FullName) *repeatedField {
	return &repeatedField{elem: elem, packed: packed, name: name}
}

func (f *repeatedField) len() int                     { return len(f.values) }
func (f *repeatedField) get(i int) protovalue.Value    { return f.values[i] }
func (f *repeatedField) isPopulated() bool             { return len(f.values) > 0 }

func (f *repeatedField) set(i int, v protovalue.Value) {
	typecheck(f.elem, v, f.name)
	f.values[i] = v
}

func (f *repeatedField) push(v protovalue.Value) {
	typecheck(f.elem, v, f.name)
	f.values = append(f.values, v)
}

func (f *repeatedField) clear() { f.values = f.values[:0] }

func (f *repeatedField) equal(other fieldSlot) bool {
	o, ok := other.(*repeatedField)
	if !ok || len(f.values) != len(o.values) {
		return false
	}
	for i, v := range f.values {
		if !v.Equal(o.values[i]) {
			return false
		}
	}
	return true
}

// usesPacked reports whether this field should be (en/de)coded in packed
// form: marked [packed] by the descriptor and of a packable element kind.
func (f *repeatedField) usesPacked() bool {
	return f.packed && isPackable(f.elem)
}

func (f *repeatedField) computeSize(field wire.FieldNumber) uint32 {
	if len(f.values) == 0 {
		return 0
	}
	if f.usesPacked() {
		var payload uint32
		for _, v := range f.values {
			payload += v.ComputeSize()
		}
		return uint32(wire.TagSize(field)) + uint32(wire.SizeVarint(uint64(payload))) + payload
	}
	var total uint32
	for _, v := range f.values {
		total += uint32(wire.TagSize(field)) + v.ComputeSize()
	}
	return total
}

func (f *repeatedField) writeTo(w *wire.Writer, field wire.FieldNumber) error {
	if len(f.values) == 0 {
		return nil
	}
	if f.usesPacked() {
		var payload uint32
		for _, v := range f.values {
			payload += v.ComputeSize()
		}
		w.WriteTag(field, wire.BytesType)
		w.WriteVarint(uint64(payload))
		for _, v := range f.values {
			if err := v.WritePacked(w); err != nil {
				return err
			}
		}
		return nil
	}
	for _, v := range f.values {
		if err := v.WriteTo(w, field); err != nil {
			return err
		}
	}
	return nil
}

// mergeFrom accepts both packed and unpacked wire forms on decode
// regardless of how the descriptor marks the field for encoding: a
// length-delimited tag on a packable element type is always read as a
// packed run, and a tag matching the element's own wire type is always
// read as one unpacked element, so decoders stay compatible across a
// field's [packed] setting changing between producer and consumer.
func (f *repeatedField) mergeFrom(r *wire.Reader, wt wire.Type) error {
	if wt == wire.BytesType && isPackable(f.elem) {
		length, err := r.ReadVarint()
		if err != nil {
			return err
		}
		old, err := r.PushLimit(length)
		if err != nil {
			return err
		}
		defer r.PopLimit(old)
		for !r.Eof() {
			v := defaultValue(f.elem)
			if err := v.MergeFrom(r); err != nil {
				return err
			}
			f.values = append(f.values, v)
		}
		return nil
	}
	v := defaultValue(f.elem)
	if err := v.MergeFrom(r); err != nil {
		return err
	}
	f.values = append(f.values, v)
	return nil
}
