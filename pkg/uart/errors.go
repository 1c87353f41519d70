package uart

import (
	"errors"
	"fmt"
)

var (
	// ErrWouldBlock is returned by a Transport when no byte is available yet
	// or the byte can't be accepted yet. It's not a failure.
	ErrWouldBlock = errors.New("would block")
	// ErrSendCommand indicates a command frame could not be transmitted.
	ErrSendCommand = errors.New("send command failed")
	// ErrRead indicates the transport failed reading.
	ErrRead = errors.New("read failed")
	// ErrDecode indicates a byte outside the protocol alphabet was received.
	ErrDecode = errors.New("unexpected byte")
	// ErrParseResponse indicates the echoed command is not followed by
	// the parameter start marker.
	ErrParseResponse = errors.New("parse response error")
	// ErrIllFormedResponse indicates an invalid byte inside the parameter list.
	ErrIllFormedResponse = errors.New("ill-formed response")
	// ErrTimeout indicates the device didn't reply after all resends.
	ErrTimeout = errors.New("timeout")
	// ErrResponseOverflow indicates the parameter list exceeds the response buffer.
	ErrResponseOverflow = errors.New("response exceeds buffer capacity")
	// ErrInvalidCommand indicates the command name can't be framed.
	ErrInvalidCommand = errors.New("invalid command name")
	// ErrInvalidGrammar indicates unusable framing bytes.
	ErrInvalidGrammar = errors.New("invalid grammar")
)

// TransportError wraps a failure reported by the Transport.
type TransportError struct {
	Op  string
	Err error
}

// Error implements error.
func (e *TransportError) Error() string {
	return fmt.Sprintf("uart %s: %v", e.Op, e.Err)
}

// Unwrap returns the transport failure.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is reports ErrSendCommand for write side failures and ErrRead for read
// side failures.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrSendCommand:
		return e.Op != "read"
	case ErrRead:
		return e.Op == "read"
	}
	return false
}

// UnexpectedByteError reports a byte that doesn't belong to any token class.
type UnexpectedByteError struct {
	Byte byte
}

// Error implements error.
func (e *UnexpectedByteError) Error() string {
	return fmt.Sprintf("unexpected byte 0x%02x", e.Byte)
}

// Is implements errors.Is.
func (e *UnexpectedByteError) Is(target error) bool {
	return target == ErrDecode
}

// TimeoutError reports a query abandoned after all resends.
type TimeoutError struct {
	Command  string
	Attempts int
}

// Error implements error.
func (e *TimeoutError) Error() string {
	return fmt.Sprintf("no reply to %s after %d attempts", e.Command, e.Attempts)
}

// Is implements errors.Is.
func (e *TimeoutError) Is(target error) bool {
	return target == ErrTimeout
}
