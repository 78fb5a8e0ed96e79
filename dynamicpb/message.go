package dynamicpb

import (
	"fmt"

	"github.com/protodyn/protodyn/protovalue"
	"github.com/protodyn/protodyn/reflect/protoreflect"
	"github.com/protodyn/protodyn/wire"
)

// Message is a protocol buffer message whose shape comes entirely from a
// protoreflect.MessageDescriptor supplied at construction time: there is
// no generated Go struct backing it. It implements protoreflect.Message,
// so dynamic messages nest inside each other and inside protovalue.Value
// without special-casing.
//
// The field array is built lazily: a freshly constructed Message (via
// New) holds no slots at all until its first field accessor call (the
// read-only Has and Get included), MergeFrom, ComputeSize, WriteTo,
// Clear or Equal, which then builds the slots for every field at once.
// A nested message that is never reached this way allocates no slots.
type Message struct {
	desc     protoreflect.MessageDescriptor
	fields   []fieldSlot // one per desc.Fields() entry, same index
	byNumber map[wire.FieldNumber]int
	unknown  UnknownFields
	size     uint32
}

// New returns an empty dynamic message of the shape desc describes.
func New(desc protoreflect.MessageDescriptor) *Message {
	return &Message{desc: desc}
}

// Descriptor returns this message's schema.
func (m *Message) Descriptor() protoreflect.MessageDescriptor { return m.desc }

// New returns a newly allocated, empty message of the same type.
func (m *Message) New() protoreflect.Message { return New(m.desc) }

func (m *Message) initFields() {
	if m.fields != nil {
		return
	}
	fields := m.desc.Fields()
	m.fields = make([]fieldSlot, len(fields))
	m.byNumber = make(map[wire.FieldNumber]int, len(fields))
	for i, fd := range fields {
		m.fields[i] = newSlotForField(fd)
		m.byNumber[wire.FieldNumber(fd.Number())] = i
	}
}

func newSlotForField(fd protoreflect.FieldDescriptor) fieldSlot {
	rft := fd.RuntimeFieldType()
	switch rft.Shape() {
	case protoreflect.MapShape:
		return newMapField(rft.MapKey(), rft.MapValue(), fd.FullName())
	case protoreflect.RepeatedShape:
		return newRepeatedField(rft.Elem(), fd.IsPacked(), fd.FullName())
	default:
		return newOptionalField(rft.Elem(), fd.FullName())
	}
}

// checkField validates that fd belongs to this message's descriptor and
// returns its slot index, initializing the field array on first use.
func (m *Message) checkField(fd protoreflect.FieldDescriptor) int {
	if fd.ContainingMessage() != m.desc {
		panic(fmt.Sprintf("protodyn: field %s does not belong to message %s", fd.FullName(), m.desc.FullName()))
	}
	m.initFields()
	return fd.Index()
}

// clearOneofSiblings clears every other member of fd's oneof, if any:
// a oneof's members share wire storage for "which one is set", so
// setting one must clear the others to keep Has() consistent with the
// oneof's at-most-one-member invariant.
func (m *Message) clearOneofSiblings(fd protoreflect.FieldDescriptor) {
	oneof := fd.ContainingOneof()
	if oneof == nil {
		return
	}
	for _, sibling := range oneof.Fields() {
		if sibling == fd {
			continue
		}
		m.fields[sibling.Index()].clear()
	}
}

// Has reports whether fd is populated: for a singular field, whether it
// has been explicitly set; for repeated/map fields, whether it holds any
// elements.
func (m *Message) Has(fd protoreflect.FieldDescriptor) bool {
	idx := m.checkField(fd)
	return m.fields[idx].isPopulated()
}

// Get returns fd's current value. For a singular field that has never
// been set, it returns the type's default rather than panicking,
// matching ordinary protobuf getter semantics. It does not read Repeated
// or Map fields: for those it panics, and MutableRepeated/MutableMap
// give the view over the slot.
func (m *Message) Get(fd protoreflect.FieldDescriptor) protovalue.Value {
	idx := m.checkField(fd)
	rft := fd.RuntimeFieldType()
	switch slot := m.fields[idx].(type) {
	case *optionalField:
		if v, ok := slot.get(); ok {
			return v
		}
		return defaultValue(rft.Elem())
	default:
		panic(fmt.Sprintf("protodyn: Get called on non-singular field %s; use Repeated/Map accessors", fd.FullName()))
	}
}

// SetField installs v as fd's singular value, clearing any oneof
// siblings. It panics if fd is not a singular field or v.Type() does
// not match fd's declared type.
func (m *Message) SetField(fd protoreflect.FieldDescriptor, v protovalue.Value) {
	idx := m.checkField(fd)
	slot, ok := m.fields[idx].(*optionalField)
	if !ok {
		panic(fmt.Sprintf("protodyn: SetField called on non-singular field %s", fd.FullName()))
	}
	slot.set(v)
	m.clearOneofSiblings(fd)
}

// MutableSingular returns a pointer to fd's current value, installing
// the type's default first if the field is unset, and clears any oneof
// siblings (mirroring real protobuf mutable-singular accessors: asking
// to mutate a field makes it the active oneof member even before the
// caller changes anything).
func (m *Message) MutableSingular(fd protoreflect.FieldDescriptor) *protovalue.Value {
	idx := m.checkField(fd)
	slot, ok := m.fields[idx].(*optionalField)
	if !ok {
		panic(fmt.Sprintf("protodyn: MutableSingular called on non-singular field %s", fd.FullName()))
	}
	v := slot.mutableOrDefault()
	m.clearOneofSiblings(fd)
	return v
}

// ClearField resets fd to unset/empty, without touching sibling fields.
func (m *Message) ClearField(fd protoreflect.FieldDescriptor) {
	idx := m.checkField(fd)
	m.fields[idx].clear()
}

// RepeatedValue is a live view over a Repeated field's backing slot.
type RepeatedValue struct{ slot *repeatedField }

func (r RepeatedValue) Len() int                  { return r.slot.len() }
func (r RepeatedValue) Get(i int) protovalue.Value { return r.slot.get(i) }
func (r RepeatedValue) Set(i int, v protovalue.Value) { r.slot.set(i, v) }
func (r RepeatedValue) Append(v protovalue.Value)  { r.slot.push(v) }

// MutableRepeated returns a RepeatedValue view over fd's backing vector.
// It panics if fd is not a repeated field.
func (m *Message) MutableRepeated(fd protoreflect.FieldDescriptor) RepeatedValue {
	idx := m.checkField(fd)
	slot, ok := m.fields[idx].(*repeatedField)
	if !ok {
		panic(fmt.Sprintf("protodyn: MutableRepeated called on non-repeated field %s", fd.FullName()))
	}
	return RepeatedValue{slot: slot}
}

// MapValue is a live view over a Map field's backing container.
type MapValue struct{ slot *mapField }

func (mv MapValue) Len() int                             { return mv.slot.len() }
func (mv MapValue) Get(key protovalue.Value) (protovalue.Value, bool) { return mv.slot.get(key) }
func (mv MapValue) GetOrDefault(key protovalue.Value) protovalue.Value {
	return mv.slot.getOrDefault(key)
}
func (mv MapValue) Set(key, value protovalue.Value) { mv.slot.set(key, value) }
func (mv MapValue) Delete(key protovalue.Value)      { mv.slot.delete(key) }
func (mv MapValue) Keys() []protovalue.Value          { return mv.slot.keys() }

// MutableMap returns a MapValue view over fd's backing container. It
// panics if fd is not a map field.
func (m *Message) MutableMap(fd protoreflect.FieldDescriptor) MapValue {
	idx := m.checkField(fd)
	slot, ok := m.fields[idx].(*mapField)
	if !ok {
		panic(fmt.Sprintf("protodyn: MutableMap called on non-map field %s", fd.FullName()))
	}
	return MapValue{slot: slot}
}

// Clear resets every field (and any unknown-field bytes) to empty,
// without deallocating the slot array itself, so a message that gets
// cleared and reused in a hot decode loop doesn't re-pay the initial
// slot-array allocation on every iteration.
func (m *Message) Clear() {
	m.initFields()
	for _, f := range m.fields {
		f.clear()
	}
	m.unknown = UnknownFields{}
	m.size = 0
}

// ComputeSize computes and caches this message's encoded size,
// including any preserved unknown-field bytes, and returns it.
func (m *Message) ComputeSize() uint32 {
	m.initFields()
	var total uint32
	for i, f := range m.fields {
		total += f.computeSize(wire.FieldNumber(m.desc.Fields()[i].Number()))
	}
	total += m.unknown.size()
	m.size = total
	return total
}

// CachedSize returns the size computed by the most recent ComputeSize
// call.
func (m *Message) CachedSize() uint32 { return m.size }

// WriteTo encodes every populated field, in descriptor field order,
// followed by any preserved unknown-field bytes in their original
// insertion order, so a decode-then-reencode round trip reproduces
// fields this descriptor doesn't recognize exactly as received instead
// of silently dropping them.
func (m *Message) WriteTo(w *wire.Writer) error {
	m.initFields()
	for i, f := range m.fields {
		if err := f.writeTo(w, wire.FieldNumber(m.desc.Fields()[i].Number())); err != nil {
			return err
		}
	}
	return m.unknown.writeTo(w)
}

// fieldByNumber finds the FieldDescriptor (and its slot index) for a
// decoded wire field number, or (-1, nil) if the descriptor declares no
// such field.
func (m *Message) fieldByNumber(n wire.FieldNumber) (int, protoreflect.FieldDescriptor) {
	idx, ok := m.byNumber[n]
	if !ok {
		return -1, nil
	}
	return idx, m.desc.Fields()[idx]
}

// MergeFrom decodes wire-format bytes from r, merging them onto this
// message's existing field values. Any field number the descriptor does
// not declare is preserved verbatim in m's UnknownFields rather than
// dropped.
func (m *Message) MergeFrom(r *wire.Reader) error {
	m.initFields()
	for !r.Eof() {
		fn, wt, err := r.ReadTag()
		if err != nil {
			return err
		}
		idx, fd := m.fieldByNumber(fn)
		if fd == nil {
			raw, err := r.SkipField(wt)
			if err != nil {
				return err
			}
			m.unknown.add(fn, wt, raw)
			continue
		}
		if err := m.fields[idx].mergeFrom(r, wt); err != nil {
			return err
		}
		if fd.ContainingOneof() != nil {
			m.clearOneofSiblings(fd)
		}
	}
	return nil
}

// UnknownFields returns this message's preserved unknown-field bytes.
func (m *Message) UnknownFields() *UnknownFields { return &m.unknown }

// Equal reports whether m and other are messages of the same type with
// the same populated fields, compared field by field through each
// slot's own equal method rather than by wire bytes: a map field has no
// defined encode order, so re-encoding m twice can produce two
// different byte strings for the exact same content, making a byte
// comparison unsound.
func (m *Message) Equal(other protoreflect.Message) bool {
	o, ok := other.(*Message)
	if !ok || m.desc.FullName() != o.desc.FullName() {
		return false
	}
	m.initFields()
	o.initFields()
	for i, f := range m.fields {
		if !f.equal(o.fields[i]) {
			return false
		}
	}
	return m.unknown.equal(&o.unknown)
}

// Marshal encodes msg to wire format in one call.
func Marshal(msg protoreflect.Message) ([]byte, error) {
	msg.ComputeSize()
	w := wire.NewWriter()
	if err := msg.WriteTo(w); err != nil {
		return nil, err
	}
	return w.Bytes(), nil
}

// Unmarshal decodes wire-format bytes into msg, merging onto its
// existing field values (a freshly New'd message merges onto a clean
// slate, so this is also the common "decode into empty" case).
func Unmarshal(data []byte, msg protoreflect.Message) error {
	return msg.MergeFrom(wire.NewReader(data))
}
