package protodesc

import (
	"testing"

	"github.com/protodyn/protodyn/reflect/protoreflect"
)

func TestBuildSimpleMessage(t *testing.T) {
	d, err := Build(&Message{
		Name: "example.Order",
		Fields: []*Field{
			{Name: "example.Order.price", Number: 1, Type: protoreflect.Int32},
			{Name: "example.Order.tags", Number: 2, Type: protoreflect.String, Repeated: true},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	if d.FullName() != "example.Order" {
		t.Fatalf("FullName = %q", d.FullName())
	}
	fields := d.Fields()
	if len(fields) != 2 {
		t.Fatalf("len(Fields()) = %d, want 2", len(fields))
	}
	if fields[0].Number() != 1 || fields[0].RuntimeFieldType().IsRepeated() {
		t.Fatalf("field 0 = %+v", fields[0])
	}
	if !fields[1].RuntimeFieldType().IsRepeated() {
		t.Fatal("field 1 should be repeated")
	}
	if fields[0].ContainingMessage() != d {
		t.Fatal("ContainingMessage should be the built descriptor")
	}
}

func TestBuildOneof(t *testing.T) {
	choice := &Oneof{Name: "example.Shape.choice"}
	d, err := Build(&Message{
		Name:   "example.Shape",
		Oneofs: []*Oneof{choice},
		Fields: []*Field{
			{Name: "example.Shape.circle", Number: 1, Type: protoreflect.Float64, Oneof: choice},
			{Name: "example.Shape.square", Number: 2, Type: protoreflect.Float64, Oneof: choice},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	fields := d.Fields()
	oneof := fields[0].ContainingOneof()
	if oneof == nil {
		t.Fatal("expected field 0 to belong to a oneof")
	}
	if fields[1].ContainingOneof() != oneof {
		t.Fatal("expected field 1 to belong to the same oneof")
	}
	if len(oneof.Fields()) != 2 {
		t.Fatalf("len(oneof.Fields()) = %d, want 2", len(oneof.Fields()))
	}
}

func TestBuildMapField(t *testing.T) {
	d, err := Build(&Message{
		Name: "example.Catalog",
		Fields: []*Field{
			{Name: "example.Catalog.prices", Number: 1, Map: &MapType{Key: protoreflect.String, Value: protoreflect.Int32}},
		},
	})
	if err != nil {
		t.Fatal(err)
	}
	rft := d.Fields()[0].RuntimeFieldType()
	if !rft.IsMap() {
		t.Fatal("expected a map field")
	}
	if !rft.MapKey().Equal(protoreflect.String) || !rft.MapValue().Equal(protoreflect.Int32) {
		t.Fatalf("unexpected map key/value types: %+v", rft)
	}
}

func TestBuildRejectsInvalidMapKey(t *testing.T) {
	_, err := Build(&Message{
		Name: "example.Bad",
		Fields: []*Field{
			{Name: "example.Bad.m", Number: 1, Map: &MapType{Key: protoreflect.Float64, Value: protoreflect.Int32}},
		},
	})
	if err == nil {
		t.Fatal("expected error building a map with a float key")
	}
}

func TestBuildRejectsDuplicateFieldNumber(t *testing.T) {
	_, err := Build(&Message{
		Name: "example.Bad",
		Fields: []*Field{
			{Name: "example.Bad.a", Number: 1, Type: protoreflect.Int32},
			{Name: "example.Bad.b", Number: 1, Type: protoreflect.String},
		},
	})
	if err == nil {
		t.Fatal("expected error building a message with duplicate field numbers")
	}
}
