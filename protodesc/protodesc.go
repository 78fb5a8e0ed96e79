// Package protodesc provides a minimal struct-literal descriptor builder
// so tests and callers can stand up protoreflect descriptors without a
// .proto toolchain: list the fields and oneofs as plain Go struct values,
// call Build, and use the result with dynamicpb.
//
// Trimmed to exactly struct-literal construction: no file-level
// resolution, no placeholder cross-referencing between cyclic message
// types, no options, no reserved-range bookkeeping. A message-typed
// field takes an already built MessageDescriptor (via
// protoreflect.OfMessage), and Build creates every field descriptor at
// call time, so mutually-recursive message types (A has a field of type
// B, B has a field of type A) cannot be built.
package protodesc

import (
	"fmt"

	"github.com/protodyn/protodyn/reflect/protoreflect"
)

// Message is a struct-literal constructor for a protoreflect.MessageDescriptor.
type Message struct {
	Name   protoreflect.FullName
	Fields []*Field
	Oneofs []*Oneof
}

// Field is a struct-literal constructor for a protoreflect.FieldDescriptor.
type Field struct {
	Name   protoreflect.FullName
	Number protoreflect.FieldNumber

	// Exactly one of these three describes the slot shape. Leave Map
	// nil and Repeated false for a singular field.
	Type     protoreflect.RuntimeType // singular or repeated element type
	Repeated bool
	Map      *MapType

	// Packed marks a repeated, packable field for packed encoding.
	// Ignored for non-repeated or unpackable fields (string, bytes,
	// message).
	Packed bool

	// Oneof, if non-nil, must be one of the Message's Oneofs entries by
	// pointer identity; Build wires the bidirectional Fields()/
	// ContainingOneof() relationship.
	Oneof *Oneof
}

// MapType describes a map field's key and value types.
type MapType struct {
	Key   protoreflect.RuntimeType
	Value protoreflect.RuntimeType
}

// Oneof is a struct-literal constructor for a protoreflect.OneofDescriptor.
type Oneof struct {
	Name protoreflect.FullName
}

// Build validates m and returns the protoreflect.MessageDescriptor it
// describes. The caller must not mutate m (or the Field/Oneof values it
// points to) afterward.
func Build(m *Message) (protoreflect.MessageDescriptor, error) {
	d := &messageDescriptor{src: m}

	oneofIndex := make(map[*Oneof]int, len(m.Oneofs))
	for i, o := range m.Oneofs {
		oneofIndex[o] = i
	}

	d.fields = make([]protoreflect.FieldDescriptor, len(m.Fields))
	d.oneofs = make([]protoreflect.OneofDescriptor, len(m.Oneofs))

	oneofFields := make([][]protoreflect.FieldDescriptor, len(m.Oneofs))

	seen := make(map[protoreflect.FieldNumber]bool, len(m.Fields))
	for i, f := range m.Fields {
		if f.Number <= 0 {
			return nil, fmt.Errorf("protodesc: field %q has invalid number %d", f.Name, f.Number)
		}
		if seen[f.Number] {
			return nil, fmt.Errorf("protodesc: duplicate field number %d", f.Number)
		}
		seen[f.Number] = true

		if f.Map != nil && !f.Map.Key.IsValidMapKey() {
			return nil, fmt.Errorf("protodesc: field %q has invalid map key type %v", f.Name, f.Map.Key)
		}

		var oneofIdx = -1
		if f.Oneof != nil {
			idx, ok := oneofIndex[f.Oneof]
			if !ok {
				return nil, fmt.Errorf("protodesc: field %q references a oneof not in this message", f.Name)
			}
			oneofIdx = idx
		}

		fd := &fieldDescriptor{
			name:   f.Name,
			number: f.Number,
			index:  i,
			parent: d,
			packed: f.Packed,
		}
		switch {
		case f.Map != nil:
			fd.rft = protoreflect.MapOf(f.Map.Key, f.Map.Value)
		case f.Repeated:
			fd.rft = protoreflect.Repeated(f.Type)
		default:
			fd.rft = protoreflect.Singular(f.Type)
		}
		d.fields[i] = fd

		if oneofIdx >= 0 {
			oneofFields[oneofIdx] = append(oneofFields[oneofIdx], fd)
		}
	}

	for i, o := range m.Oneofs {
		od := &oneofDescriptor{name: o.Name, fields: oneofFields[i]}
		d.oneofs[i] = od
		for _, fd := range oneofFields[i] {
			fd.(*fieldDescriptor).oneof = od
		}
	}

	return d, nil
}

type messageDescriptor struct {
	src    *Message
	fields []protoreflect.FieldDescriptor
	oneofs []protoreflect.OneofDescriptor
}

func (d *messageDescriptor) FullName() protoreflect.FullName      { return d.src.Name }
func (d *messageDescriptor) Fields() []protoreflect.FieldDescriptor { return d.fields }
func (d *messageDescriptor) Oneofs() []protoreflect.OneofDescriptor { return d.oneofs }

type fieldDescriptor struct {
	name   protoreflect.FullName
	number protoreflect.FieldNumber
	index  int
	rft    protoreflect.RuntimeFieldType
	packed bool
	parent *messageDescriptor
	oneof  *oneofDescriptor
}

func (f *fieldDescriptor) FullName() protoreflect.FullName              { return f.name }
func (f *fieldDescriptor) Number() protoreflect.FieldNumber             { return f.number }
func (f *fieldDescriptor) Index() int                                   { return f.index }
func (f *fieldDescriptor) RuntimeFieldType() protoreflect.RuntimeFieldType { return f.rft }
func (f *fieldDescriptor) IsPacked() bool                               { return f.packed }
func (f *fieldDescriptor) ContainingMessage() protoreflect.MessageDescriptor {
	return f.parent
}
func (f *fieldDescriptor) ContainingOneof() protoreflect.OneofDescriptor {
	if f.oneof == nil {
		return nil
	}
	return f.oneof
}

type oneofDescriptor struct {
	name   protoreflect.FullName
	fields []protoreflect.FieldDescriptor
}

func (o *oneofDescriptor) FullName() protoreflect.FullName            { return o.name }
func (o *oneofDescriptor) Fields() []protoreflect.FieldDescriptor { return o.fields }

// Enum is a struct-literal constructor for a protoreflect.EnumDescriptor.
// Dynamic messages need only an enum's identity (to compare RuntimeTypes)
// and name, not its declared value list.
type Enum struct {
	Name protoreflect.FullName
}

// BuildEnum returns the protoreflect.EnumDescriptor e describes.
func BuildEnum(e *Enum) protoreflect.EnumDescriptor {
	return &enumDescriptor{name: e.Name}
}

type enumDescriptor struct{ name protoreflect.FullName }

func (e *enumDescriptor) FullName() protoreflect.FullName { return e.name }
