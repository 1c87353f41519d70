package uart

import (
	"io"
	"os"
)

// Transport is the byte level link to the board. ReadByte and WriteByte
// return ErrWouldBlock when the operation can't complete right now.
type Transport interface {
	ReadByte() (byte, error)
	WriteByte(byte) error
	Flush() error
}

type drainer interface {
	Drain() error
}

type flusher interface {
	Flush() error
}

// StreamTransport adapts an io.ReadWriter (e.g. a serial port configured
// with a read timeout) to Transport.
type StreamTransport struct {
	rw  io.ReadWriter
	buf [1]byte
}

// NewStreamTransport wraps rw.
func NewStreamTransport(rw io.ReadWriter) *StreamTransport {
	return &StreamTransport{rw: rw}
}

// ReadByte implements Transport. An empty read or a timeout is reported
// as ErrWouldBlock.
func (t *StreamTransport) ReadByte() (byte, error) {
	n, err := t.rw.Read(t.buf[:])
	if n > 0 {
		return t.buf[0], nil
	}
	if err == nil || os.IsTimeout(err) {
		return 0, ErrWouldBlock
	}
	return 0, err
}

// WriteByte implements Transport.
func (t *StreamTransport) WriteByte(b byte) error {
	t.buf[0] = b
	n, err := t.rw.Write(t.buf[:])
	if err != nil {
		if os.IsTimeout(err) {
			return ErrWouldBlock
		}
		return err
	}
	if n == 0 {
		return ErrWouldBlock
	}
	return nil
}

// Flush implements Transport. It waits for the output to be transmitted
// when the underlying stream supports it.
func (t *StreamTransport) Flush() error {
	switch s := t.rw.(type) {
	case drainer:
		return s.Drain()
	case flusher:
		return s.Flush()
	}
	return nil
}
