// Package wire implements the protocol buffer binary wire format: varint,
// fixed32, fixed64 and length-delimited encoding and decoding over a byte
// slice, plus the tag framing that ties a value to a field number.
//
// It is the InputStream/OutputStream contract that protovalue and
// dynamicpb are built on, adapted from the protobuf3 package's
// Buffer.EncodeVarint/DecodeVarint family of routines.
package wire

// FieldNumber identifies a field within a message, as it appears in a
// wire tag. Field 0 is reserved by the protobuf wire format and never
// valid.
type FieldNumber int32

// Type is the wire type portion of a tag: how the following bytes are
// framed, independent of what protobuf source-level type they hold.
type Type int8

const (
	VarintType  Type = 0
	Fixed64Type Type = 1
	BytesType   Type = 2
	// StartGroupType and EndGroupType (3, 4) are part of the wire format
	// but groups are not part of this module's data model; encountering
	// one is treated as an unsupported wire type.
	StartGroupType Type = 3
	EndGroupType   Type = 4
	Fixed32Type    Type = 5
)

func (t Type) String() string {
	switch t {
	case VarintType:
		return "varint"
	case Fixed64Type:
		return "fixed64"
	case BytesType:
		return "bytes"
	case StartGroupType:
		return "start_group"
	case EndGroupType:
		return "end_group"
	case Fixed32Type:
		return "fixed32"
	default:
		return "unknown"
	}
}

// SizeVarint returns the number of bytes x would take to encode as a
// varint.
func SizeVarint(x uint64) int {
	n := 1
	for x >= 1<<7 {
		x >>= 7
		n++
	}
	return n
}

// TagSize returns the number of bytes the tag for field would take to
// encode. Like every real protobuf implementation, this ignores the
// wire type: shifting a field number left by 3 bits and adding at most
// 7 does not change the varint's byte length for any field number that
// occurs in practice.
func TagSize(field FieldNumber) int {
	return SizeVarint(uint64(field) << 3)
}

func tagValue(field FieldNumber, wireType Type) uint64 {
	return uint64(field)<<3 | uint64(wireType)
}
