package protoreflect

// MessageDescriptor describes a message's shape: its fields and oneofs.
// It carries only what a dynamic message needs to walk a schema at
// runtime; no nested message/enum declarations, no extension ranges,
// no options.
type MessageDescriptor interface {
	// FullName is the fully-qualified message name.
	FullName() FullName

	// Fields is the ordered list of field declarations. A
	// dynamicpb.Message materializes exactly one slot per entry, in
	// this order, so a field's Index doubles as its slot position.
	Fields() []FieldDescriptor

	// Oneofs is the list of oneof declarations nested in this message.
	Oneofs() []OneofDescriptor
}

// FieldDescriptor describes a single field within a message.
type FieldDescriptor interface {
	// FullName is the fully-qualified field name.
	FullName() FullName

	// Number is the field's wire-format field number.
	Number() FieldNumber

	// Index is this field's position within its MessageDescriptor's
	// Fields() list; it is also the slot's position in the message's
	// slot array.
	Index() int

	// RuntimeFieldType describes the slot shape and value type(s).
	RuntimeFieldType() RuntimeFieldType

	// IsPacked reports whether a repeated, packable field should be
	// serialized using the packed encoding (one length-delimited run of
	// elements instead of one tag per element). It has no effect for
	// non-repeated or unpackable fields (string, bytes, message).
	IsPacked() bool

	// ContainingMessage returns the MessageDescriptor this field is
	// declared within, used by checkField to reject a field descriptor
	// from some other message.
	ContainingMessage() MessageDescriptor

	// ContainingOneof returns the oneof this field belongs to, or nil
	// if the field is not part of a oneof.
	ContainingOneof() OneofDescriptor
}

// OneofDescriptor describes a oneof declaration: a set of fields of
// which at most one may be populated at a time.
type OneofDescriptor interface {
	FullName() FullName

	// Fields lists the member fields of this oneof.
	Fields() []FieldDescriptor
}

// EnumDescriptor identifies an enum type. A dynamic message core treats
// enum values purely as identity plus an int32 number: it does not need
// the declared value list to encode, decode, or compare them.
type EnumDescriptor interface {
	FullName() FullName
}
