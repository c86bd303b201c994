package byteio

import "testing"

func TestWriterReaderRoundTrip(t *testing.T) {
	w := NewWriter(0)
	w.U8(7)
	w.U16(1234)
	w.U32(123456)
	w.U64(123456789012)
	w.U8String("hi")
	w.U16String("hello world")
	w.U32Bytes([]byte{1, 2, 3, 4})

	r := NewReader(w.Buf())
	if v, err := r.U8(); err != nil || v != 7 {
		t.Fatalf("U8: got %d, %v", v, err)
	}
	if v, err := r.U16(); err != nil || v != 1234 {
		t.Fatalf("U16: got %d, %v", v, err)
	}
	if v, err := r.U32(); err != nil || v != 123456 {
		t.Fatalf("U32: got %d, %v", v, err)
	}
	if v, err := r.U64(); err != nil || v != 123456789012 {
		t.Fatalf("U64: got %d, %v", v, err)
	}
	if s, err := r.U8String(); err != nil || s != "hi" {
		t.Fatalf("U8String: got %q, %v", s, err)
	}
	if s, err := r.U16String(); err != nil || s != "hello world" {
		t.Fatalf("U16String: got %q, %v", s, err)
	}
	if b, err := r.U32Bytes(); err != nil || string(b) != "\x01\x02\x03\x04" {
		t.Fatalf("U32Bytes: got %v, %v", b, err)
	}
}

func TestReaderShortRead(t *testing.T) {
	r := NewReader([]byte{1, 2})
	if _, err := r.U32(); err == nil {
		t.Fatal("expected error on short read")
	}
}

func TestReadWriteU64At(t *testing.T) {
	buf := make([]byte, 16)
	if err := WriteU64At(buf, 4, 0xdeadbeef); err != nil {
		t.Fatal(err)
	}
	v, err := ReadU64At(buf, 4)
	if err != nil {
		t.Fatal(err)
	}
	if v != 0xdeadbeef {
		t.Fatalf("got %x", v)
	}
	if _, err := ReadU64At(buf, 12); err == nil {
		t.Fatal("expected out-of-range error")
	}
}

func TestSeek(t *testing.T) {
	r := NewReader([]byte{1, 2, 3, 4})
	if err := r.Seek(2); err != nil {
		t.Fatal(err)
	}
	if r.Pos() != 2 {
		t.Fatalf("got pos %d", r.Pos())
	}
	if err := r.Seek(10); err == nil {
		t.Fatal("expected out-of-range seek error")
	}
}
