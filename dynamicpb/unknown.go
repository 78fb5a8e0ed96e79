package dynamicpb

import "github.com/protodyn/protodyn/wire"

// UnknownFields preserves the raw wire bytes of fields a message's
// descriptor does not declare, in the order they were first encountered,
// so a decode-then-re-encode round trip is lossless even when the
// descriptor used to decode is older or narrower than the one that
// produced the bytes.
type UnknownFields struct {
	entries []unknownEntry
}

type unknownEntry struct {
	field    wire.FieldNumber
	wireType wire.Type
	raw      []byte // payload only, excluding the tag; already a complete framed value
}

// add records one unknown field's raw payload.
func (u *UnknownFields) add(field wire.FieldNumber, wireType wire.Type, raw []byte) {
	u.entries = append(u.entries, unknownEntry{field: field, wireType: wireType, raw: raw})
}

// Len reports how many unknown-field entries are preserved.
func (u *UnknownFields) Len() int { return len(u.entries) }

func (u *UnknownFields) size() uint32 {
	var total uint32
	for _, e := range u.entries {
		total += uint32(wire.TagSize(e.field)) + uint32(len(e.raw))
	}
	return total
}

// equal reports whether u and o preserve the same unknown-field entries
// in the same order. Unlike a map field's entries, unknown-field order
// is itself part of what must round-trip, so this compares positionally
// rather than by any kind of set membership.
func (u *UnknownFields) equal(o *UnknownFields) bool {
	if len(u.entries) != len(o.entries) {
		return false
	}
	for i, e := range u.entries {
		oe := o.entries[i]
		if e.field != oe.field || e.wireType != oe.wireType || string(e.raw) != string(oe.raw) {
			return false
		}
	}
	return true
}

func (u *UnknownFields) writeTo(w *wire.Writer) error {
	for _, e := range u.entries {
		w.WriteTag(e.field, e.wireType)
		w.WriteRaw(e.raw)
	}
	return nil
}
