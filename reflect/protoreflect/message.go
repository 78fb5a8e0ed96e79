package protoreflect

import "github.com/protodyn/protodyn/wire"

// Message is the minimal contract a nested message value must satisfy so
// that a protovalue.Value of MessageKind can decode, encode, size and
// recurse into it without protovalue needing to import dynamicpb (which
// would create an import cycle, since dynamicpb depends on protovalue).
//
// dynamicpb.Message implements this interface; it is this module's only
// implementation, since there is no generated-code message type competing
// for the same method set.
type Message interface {
	// Descriptor returns this message's schema.
	Descriptor() MessageDescriptor

	// New returns a newly allocated, empty message of the same type.
	New() Message

	// MergeFrom decodes wire-format bytes from r into this message,
	// merging them onto any existing field values.
	MergeFrom(r *wire.Reader) error

	// WriteTo encodes this message's fields to w. ComputeSize must have
	// been called immediately beforehand; WriteTo relies on the cached
	// size it leaves behind for nested-message length prefixes.
	WriteTo(w *wire.Writer) error

	// ComputeSize computes and caches this message's encoded size and
	// returns it.
	ComputeSize() uint32

	// CachedSize returns the size computed by the most recent
	// ComputeSize call. Its value is only meaningful immediately after
	// that call; any mutation in between invalidates it.
	CachedSize() uint32

	// Clear resets every field to its default, without deallocating the
	// underlying slot array.
	Clear()

	// Equal reports whether this message and other hold the same set of
	// populated fields with equal values, field by field. Implementations
	// must not rely on wire-byte comparison: map fields have no defined
	// encode order, so two equal messages can legitimately serialize to
	// different bytes.
	Equal(other Message) bool
}
