package wire

import (
	"bytes"
	"testing"
)

func TestVarintRoundTrip(t *testing.T) {
	tests := []struct {
		name string
		in   uint64
		want []byte
	}{
		{"zero", 0, []byte{0x00}},
		{"one byte", 127, []byte{0x7f}},
		{"two bytes", 300, []byte{0xac, 0x02}},
		{"sign-extended -7 as uint64", ^uint64(6), []byte{0xf9, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0xff, 0x01}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			w := NewWriter()
			w.WriteVarint(tc.in)
			if !bytes.Equal(w.Bytes(), tc.want) {
				t.Fatalf("WriteVarint(%d) = % x, want % x", tc.in, w.Bytes(), tc.want)
			}
			r := NewReader(tc.want)
			got, err := r.ReadVarint()
			if err != nil {
				t.Fatalf("ReadVarint: %v", err)
			}
			if got != tc.in {
				t.Fatalf("ReadVarint(% x) = %d, want %d", tc.want, got, tc.in)
			}
			if !r.Eof() {
				t.Fatalf("ReadVarint left %d unconsumed bytes", r.end-r.off)
			}
		})
	}
}

func TestReadVarintTruncated(t *testing.T) {
	r := NewReader([]byte{0x80})
	if _, err := r.ReadVarint(); err == nil {
		t.Fatal("expected error decoding truncated varint")
	}
}

func TestFixed32RoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteFixed32(0x01020304)
	r := NewReader(w.Bytes())
	got, err := r.ReadFixed32()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x01020304 {
		t.Fatalf("got %#x, want %#x", got, 0x01020304)
	}
}

func TestFixed64RoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteFixed64(0x0102030405060708)
	r := NewReader(w.Bytes())
	got, err := r.ReadFixed64()
	if err != nil {
		t.Fatal(err)
	}
	if got != 0x0102030405060708 {
		t.Fatalf("got %#x, want %#x", got, 0x0102030405060708)
	}
}

func TestTagRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteTag(5, BytesType)
	r := NewReader(w.Bytes())
	field, wt, err := r.ReadTag()
	if err != nil {
		t.Fatal(err)
	}
	if field != 5 || wt != BytesType {
		t.Fatalf("got (%d, %v), want (5, bytes)", field, wt)
	}
}

func TestStringRoundTrip(t *testing.T) {
	w := NewWriter()
	w.WriteString("hello")
	r := NewReader(w.Bytes())
	got, err := r.ReadString()
	if err != nil {
		t.Fatal(err)
	}
	if got != "hello" {
		t.Fatalf("got %q, want %q", got, "hello")
	}
}

func TestReadStringInvalidUTF8(t *testing.T) {
	w := NewWriter()
	w.WriteBytes([]byte{0xff, 0xfe})
	r := NewReader(w.Bytes())
	if _, err := r.ReadString(); err == nil {
		t.Fatal("expected invalid UTF-8 error")
	}
}

func TestPushPopLimit(t *testing.T) {
	// Two length-delimited blobs back to back; PushLimit bounds reads to
	// the first so a caller can't run past its boundary into the second.
	w := NewWriter()
	w.WriteBytes([]byte("first"))
	w.WriteBytes([]byte("second"))

	r := NewReader(w.Bytes())
	n, err := r.ReadVarint()
	if err != nil {
		t.Fatal(err)
	}
	old, err := r.PushLimit(n)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(r.buf[r.off:r.end], []byte("first")) {
		t.Fatalf("limited region = %q, want %q", r.buf[r.off:r.end], "first")
	}
	r.off = r.end // consume "first"
	if !r.Eof() {
		t.Fatal("expected Eof within pushed limit")
	}
	r.PopLimit(old)
	if r.Eof() {
		t.Fatal("expected more data after PopLimit restores outer limit")
	}
	got, err := r.ReadBytes()
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "second" {
		t.Fatalf("got %q, want %q", got, "second")
	}
}

func TestPushLimitExceedsInput(t *testing.T) {
	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.PushLimit(100); err == nil {
		t.Fatal("expected error pushing a limit beyond remaining input")
	}
}

func TestSkipField(t *testing.T) {
	w := NewWriter()
	w.WriteVarint(42)
	raw := append([]byte(nil), w.Bytes()...)

	r := NewReader(w.Bytes())
	got, err := r.SkipField(VarintType)
	if err != nil {
		t.Fatal(err)
	}
	if !bytes.Equal(got, raw) {
		t.Fatalf("SkipField raw = % x, want % x", got, raw)
	}
	if !r.Eof() {
		t.Fatal("expected all bytes consumed")
	}
}

func TestTagSizeIgnoresWireType(t *testing.T) {
	if TagSize(1) != 1 {
		t.Fatalf("TagSize(1) = %d, want 1", TagSize(1))
	}
	if TagSize(16) != 2 {
		t.Fatalf("TagSize(16) = %d, want 2", TagSize(16))
	}
	for _, wt := range []Type{VarintType, Fixed32Type} {
		w := NewWriter()
		w.WriteTag(16, wt)
		if len(w.Bytes()) != TagSize(16) {
			t.Fatalf("WriteTag(16, %v) wrote %d bytes, TagSize(16) = %d", wt, len(w.Bytes()), TagSize(16))
		}
	}
}
