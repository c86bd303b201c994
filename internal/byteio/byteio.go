// Package byteio provides little-endian fixed-width read/write helpers over
// raw byte buffers and streams. All multi-byte integers in the bundle format
// (see pkg/bundle) are little-endian; this package is the single place that
// encodes that choice.
package byteio

import (
	"encoding/binary"
	"fmt"
	"io"
)

// Writer appends little-endian fixed-width values to an in-memory buffer.
// It never returns an error; append-to-slice cannot fail short of OOM.
type Writer struct {
	buf []byte
}

// NewWriter returns a Writer with the given initial capacity hint.
func NewWriter(capHint int) *Writer {
	return &Writer{buf: make([]byte, 0, capHint)}
}

func (w *Writer) U8(v uint8)   { w.buf = append(w.buf, v) }
func (w *Writer) U16(v uint16) { w.buf = binary.LittleEndian.AppendUint16(w.buf, v) }
func (w *Writer) U32(v uint32) { w.buf = binary.LittleEndian.AppendUint32(w.buf, v) }
func (w *Writer) U64(v uint64) { w.buf = binary.LittleEndian.AppendUint64(w.buf, v) }

// Bytes appends a raw byte slice verbatim, with no length prefix.
func (w *Writer) Bytes(b []byte) { w.buf = append(w.buf, b...) }

// U8String writes a u8 length prefix followed by the string's bytes.
// No length check is made: for a string over 255 bytes the prefix holds
// only the low 8 bits of the length while every byte is still written, so
// callers must keep such strings within 255 bytes.
func (w *Writer) U8String(s string) {
	w.U8(uint8(len(s)))
	w.buf = append(w.buf, s...)
}

// U16String writes a u16 length prefix followed by the string's bytes.
func (w *Writer) U16String(s string) {
	w.U16(uint16(len(s)))
	w.buf = append(w.buf, s...)
}

// U32Bytes writes a u32 length prefix followed by the raw bytes.
func (w *Writer) U32Bytes(b []byte) {
	w.U32(uint32(len(b)))
	w.buf = append(w.buf, b...)
}

// Buf returns the accumulated buffer.
func (w *Writer) Buf() []byte { return w.buf }

// Len returns the number of bytes written so far.
func (w *Writer) Len() int { return len(w.buf) }

// Reader sequentially decodes little-endian fixed-width values from a byte
// slice, tracking its own cursor. All methods return an error on short
// reads rather than panicking, so a truncated or corrupt record can be
// rejected by the caller (see spec.md §7 query-time data errors).
type Reader struct {
	buf []byte
	pos int
}

// NewReader wraps buf for sequential little-endian decoding starting at
// offset 0.
func NewReader(buf []byte) *Reader {
	return &Reader{buf: buf}
}

func (r *Reader) remaining() int { return len(r.buf) - r.pos }

func (r *Reader) need(n int) error {
	if r.remaining() < n {
		return fmt.Errorf("byteio: need %d bytes, have %d", n, r.remaining())
	}
	return nil
}

func (r *Reader) U8() (uint8, error) {
	if err := r.need(1); err != nil {
		return 0, err
	}
	v := r.buf[r.pos]
	r.pos++
	return v, nil
}

func (r *Reader) U16() (uint16, error) {
	if err := r.need(2); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint16(r.buf[r.pos:])
	r.pos += 2
	return v, nil
}

func (r *Reader) U32() (uint32, error) {
	if err := r.need(4); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint32(r.buf[r.pos:])
	r.pos += 4
	return v, nil
}

func (r *Reader) U64() (uint64, error) {
	if err := r.need(8); err != nil {
		return 0, err
	}
	v := binary.LittleEndian.Uint64(r.buf[r.pos:])
	r.pos += 8
	return v, nil
}

// Bytes reads n raw bytes.
func (r *Reader) Bytes(n int) ([]byte, error) {
	if err := r.need(n); err != nil {
		return nil, err
	}
	b := r.buf[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// U8String reads a u8-length-prefixed string.
func (r *Reader) U8String() (string, error) {
	n, err := r.U8()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// U16String reads a u16-length-prefixed string.
func (r *Reader) U16String() (string, error) {
	n, err := r.U16()
	if err != nil {
		return "", err
	}
	b, err := r.Bytes(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// U32Bytes reads a u32-length-prefixed byte slice.
func (r *Reader) U32Bytes() ([]byte, error) {
	n, err := r.U32()
	if err != nil {
		return nil, err
	}
	return r.Bytes(int(n))
}

// Pos returns the current cursor position.
func (r *Reader) Pos() int { return r.pos }

// Seek moves the cursor to an absolute position within the buffer.
func (r *Reader) Seek(pos int) error {
	if pos < 0 || pos > len(r.buf) {
		return fmt.Errorf("byteio: seek %d out of range [0,%d]", pos, len(r.buf))
	}
	r.pos = pos
	return nil
}

// ReadU64At reads a single little-endian u64 from a fixed mmap-backed slice
// at a byte offset, without constructing a Reader. Used by pkg/dictreader
// for the dense offsets.bin array.
func ReadU64At(buf []byte, offset int) (uint64, error) {
	if offset < 0 || offset+8 > len(buf) {
		return 0, fmt.Errorf("byteio: offset %d out of range for buffer of length %d", offset, len(buf))
	}
	return binary.LittleEndian.Uint64(buf[offset:]), nil
}

// WriteU64At overwrites 8 bytes at offset with a little-endian u64.
func WriteU64At(buf []byte, offset int, v uint64) error {
	if offset < 0 || offset+8 > len(buf) {
		return fmt.Errorf("byteio: offset %d out of range for buffer of length %d", offset, len(buf))
	}
	binary.LittleEndian.PutUint64(buf[offset:], v)
	return nil
}

// CopyFull reads exactly len(dst) bytes from r, matching io.ReadFull's
// contract.
func CopyFull(r io.Reader, dst []byte) error {
	_, err := io.ReadFull(r, dst)
	return err
}
