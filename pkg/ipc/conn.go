package ipc

import (
	"encoding/binary"
	"fmt"
	"io"

	"github.com/vmihailenco/msgpack/v5"
)

// Conn frames msgpack messages over a byte stream: a little-endian u32
// length prefix followed by that many bytes of msgpack payload. Both
// directions use the same framing.
type Conn struct {
	r io.Reader
	w io.Writer
}

// NewConn wraps r/w for framed msgpack I/O.
func NewConn(r io.Reader, w io.Writer) *Conn {
	return &Conn{r: r, w: w}
}

const maxFrameSize = 64 << 20

// ReadFrame reads one length-prefixed frame and unmarshals it into v.
func (c *Conn) ReadFrame(v interface{}) error {
	var lenBuf [4]byte
	if _, err := io.ReadFull(c.r, lenBuf[:]); err != nil {
		return err
	}
	n := binary.LittleEndian.Uint32(lenBuf[:])
	if n > maxFrameSize {
		return fmt.Errorf("ipc: frame of %d bytes exceeds max %d", n, maxFrameSize)
	}
	payload := make([]byte, n)
	if _, err := io.ReadFull(c.r, payload); err != nil {
		return fmt.Errorf("ipc: reading frame body: %w", err)
	}
	return msgpack.Unmarshal(payload, v)
}

// WriteFrame marshals v and writes it as one length-prefixed frame.
func (c *Conn) WriteFrame(v interface{}) error {
	payload, err := msgpack.Marshal(v)
	if err != nil {
		return fmt.Errorf("ipc: marshaling frame: %w", err)
	}
	var lenBuf [4]byte
	binary.LittleEndian.PutUint32(lenBuf[:], uint32(len(payload)))
	if _, err := c.w.Write(lenBuf[:]); err != nil {
		return err
	}
	_, err = c.w.Write(payload)
	return err
}
