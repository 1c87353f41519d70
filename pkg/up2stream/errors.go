package up2stream

import (
	"errors"

	"github.com/robotalks/up2stream/pkg/uart"
)

var (
	// ErrOutOfRange indicates a value outside the range the board accepts.
	ErrOutOfRange = errors.New("out of range")
	// ErrInvalidValue indicates a value that can't be parsed or sent.
	ErrInvalidValue = errors.New("invalid value")
	// ErrCannotConvert indicates a Switch that has no boolean meaning.
	ErrCannotConvert = errors.New("cannot convert")
	// ErrNotSupportedForSource indicates the operation isn't available for
	// the current input source.
	ErrNotSupportedForSource = errors.New("not supported for current source")
	// ErrIllFormedResponse is uart.ErrIllFormedResponse, also used for
	// replies with the wrong shape.
	ErrIllFormedResponse = uart.ErrIllFormedResponse
)
