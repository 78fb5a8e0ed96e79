package dynamicpb

import (
	"github.com/protodyn/protodyn/protovalue"
	"github.com/protodyn/protodyn/reflect/protoreflect"
	"github.com/protodyn/protodyn/wire"
)

// Map entries are wire-compatible with an implicit two-field message:
// field 1 holds the key, field 2 holds the value. This is how protobuf
// has always encoded maps on the wire, so that a map field decodes
// correctly even into a reader that doesn't know it's a map (it just
// sees a repeated submessage with two fields).
const (
	mapKeyFieldNumber   wire.FieldNumber = 1
	mapValueFieldNumber wire.FieldNumber = 2
)

// mapField is a Map container keyed by one of the six permitted map key
// kinds, realized as a single Go-native-keyed map (with a Value stored
// by its native Go comparable type, not boxed separately per key kind)
// so the implementation stays uniform across key kinds instead of
// needing a specialized container per kind.
type mapField struct {
	keyType   protoreflect.RuntimeType
	valueType protoreflect.RuntimeType
	entries   map[interface{}]protovalue.Value
	name      protoreflect.FullName
}

func newMapField(keyType, valueType protoreflect.RuntimeType, name protoreflect.FullName) *mapField {
	return &mapField{keyType: keyType, valueType: valueType, name: name}
}

// goKey converts a key Value (already typechecked against f.keyType) to
// its Go-comparable form so it can index f.entries.
func goKey(v protovalue.Value) interface{} {
	switch v.Type().Kind() {
	case protoreflect.Uint32Kind:
		return v.Uint32()
	case protoreflect.Int32Kind:
		return v.Int32()
	case protoreflect.Uint64Kind:
		return v.Uint64()
	case protoreflect.Int64Kind:
		return v.Int64()
	case protoreflect.BoolKind:
		return v.Bool()
	case protoreflect.StringKind:
		return v.String()
	default:
		panic("protodyn: invalid map key kind")
	}
}

// valueFromGoKey reconstructs a key Value of type t from its Go-native
// form, the inverse of goKey.
func valueFromGoKey(t protoreflect.RuntimeType, k interface{}) protovalue.Value {
	switch t.Kind() {
	case protoreflect.Uint32Kind:
		return protovalue.Uint32(k.(uint32))
	case protoreflect.Int32Kind:
		return protovalue.Int32(k.(int32))
	case protoreflect.Uint64Kind:
		return protovalue.Uint64(k.(uint64))
	case protoreflect.Int64Kind:
		return protovalue.Int64(k.(int64))
	case protoreflect.BoolKind:
		return protovalue.Bool(k.(bool))
	case protoreflect.StringKind:
		return protovalue.String(k.(string))
	default:
		panic("protodyn: invalid map key kind")
	}
}

func (f *mapField) len() int { return len(f.entries) }

func (f *mapField) get(key protovalue.Value) (protovalue.Value, bool) {
	typecheck(f.keyType, key, f.name)
	v, ok := f.entries[goKey(key)]
	return v, ok
}

// getOrDefault returns the value for key, or the value type's default if
// absent, matching protobuf map-get semantics (a missing key reads as
// the zero value, it does not panic or return an error).
func (f *mapField) getOrDefault(key protovalue.Value) protovalue.Value {
	if v, ok := f.get(key); ok {
		return v
	}
	return defaultValue(f.valueType)
}

func (f *mapField) set(key, value protovalue.Value) {
	typecheck(f.keyType, key, f.name)
	typecheck(f.valueType, value, f.name)
	if f.entries == nil {
		f.entries = make(map[interface{}]protovalue.Value)
	}
	f.entries[goKey(key)] = value
}

func (f *mapField) delete(key protovalue.Value) {
	typecheck(f.keyType, key, f.name)
	delete(f.entries, goKey(key))
}

func (f *mapField) keys() []protovalue.Value {
	keys := make([]protovalue.Value, 0, len(f.entries))
	for k := range f.entries {
		keys = append(keys, valueFromGoKey(f.keyType, k))
	}
	return keys
}

func (f *mapField) clear()            { f.entries = nil }
func (f *mapField) isPopulated() bool { return len(f.entries) > 0 }

// equal compares two map fields by key set and per-key value, never by
// iteration order: Go's range over a map visits entries in randomized
// order, so comparing entries pairwise in iteration order would make
// equality depend on runtime hash seeding rather than content.
func (f *mapField) equal(other fieldSlot) bool {
	o, ok := other.(*mapField)
	if !ok || len(f.entries) != len(o.entries) {
		return false
	}
	for k, v := range f.entries {
		ov, ok := o.entries[k]
		if !ok || !v.Equal(ov) {
			return false
		}
	}
	return true
}

// entrySize returns the size of one map entry's submessage payload
// (tag+key plus tag+value), not including the container field's own tag
// or the entry's own length prefix.
func entrySize(key, value protovalue.Value) uint32 {
	return uint32(wire.TagSize(mapKeyFieldNumber)) + key.ComputeSize() +
		uint32(wire.TagSize(mapValueFieldNumber)) + value.ComputeSize()
}

func (f *mapField) computeSize(field wire.FieldNumber) uint32 {
	var total uint32
	for k, v := range f.entries {
		key := valueFromGoKey(f.keyType, k)
		payload := entrySize(key, v)
		total += uint32(wire.TagSize(field)) + uint32(wire.SizeVarint(uint64(payload))) + payload
	}
	return total
}

func (f *mapField) writeTo(w *wire.Writer, field wire.FieldNumber) error {
	for k, v := range f.entries {
		key := valueFromGoKey(f.keyType, k)
		payload := entrySize(key, v)
		w.WriteTag(field, wire.BytesType)
		w.WriteVarint(uint64(payload))
		if err := key.WriteTo(w, mapKeyFieldNumber); err != nil {
			return err
		}
		if err := v.WriteTo(w, mapValueFieldNumber); err != nil {
			return err
		}
	}
	return nil
}

// mergeFrom decodes one map entry submessage, merging its key/value pair
// into the map (a later entry for the same key overwrites an earlier
// one, matching ordinary proto map merge semantics).
func (f *mapField) mergeFrom(r *wire.Reader, _ wire.Type) error {
	length, err := r.ReadVarint()
	if err != nil {
		return err
	}
	old, err := r.PushLimit(length)
	if err != nil {
		return err
	}
	defer r.PopLimit(old)

	key := defaultValue(f.keyType)
	value := defaultValue(f.valueType)
	for !r.Eof() {
		fn, wt, err := r.ReadTag()
		if err != nil {
			return err
		}
		switch fn {
		case mapKeyFieldNumber:
			if err := key.MergeFrom(r); err != nil {
				return err
			}
		case mapValueFieldNumber:
			if err := value.MergeFrom(r); err != nil {
				return err
			}
		default:
			if _, err := r.SkipField(wt); err != nil {
				return err
			}
		}
	}
	f.set(key, value)
	return nil
}
