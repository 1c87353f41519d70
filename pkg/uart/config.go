package uart

import "fmt"

// Grammar defines the framing bytes of the protocol.
type Grammar struct {
	Terminator         byte
	ParameterStart     byte
	ParameterDelimiter byte
}

// DefaultGrammar returns the framing used by current firmware: ';' terminated,
// no trailing newline.
func DefaultGrammar() Grammar {
	return Grammar{
		Terminator:         ';',
		ParameterStart:     ':',
		ParameterDelimiter: ',',
	}
}

// Validate checks the framing bytes are distinct ASCII bytes which can't be
// mistaken for characters. Control bytes are allowed, e.g. '\n' as
// terminator.
func (g Grammar) Validate() error {
	bs := []byte{g.Terminator, g.ParameterStart, g.ParameterDelimiter}
	for i, b := range bs {
		if b == 0 || b >= 0x80 || isCharacter(b) {
			return fmt.Errorf("%w: 0x%02x is not a punctuation byte", ErrInvalidGrammar, b)
		}
		for _, other := range bs[i+1:] {
			if b == other {
				return fmt.Errorf("%w: 0x%02x used twice", ErrInvalidGrammar, b)
			}
		}
	}
	return nil
}

// Config configures an Engine.
type Config struct {
	Grammar Grammar

	// BufferSize is the capacity of the response buffer.
	BufferSize int
	// MaxResends is the number of times a query frame is sent again
	// when no reply materializes.
	MaxResends int
	// MaxIdlePolls is the number of consecutive would-block reads tolerated
	// before the echo is matched. Once exceeded the attempt counts as
	// unanswered.
	MaxIdlePolls int
	// MaxStallPolls is the number of consecutive would-block reads tolerated
	// after the echo is matched. 0 means wait forever.
	MaxStallPolls int
}

// Defaults.
const (
	DefaultBufferSize    = 1024
	DefaultMaxResends    = 3
	DefaultMaxIdlePolls  = 1
	DefaultMaxStallPolls = 20
)

// DefaultConfig returns the configuration for a serial port with a read
// timeout, where every would-block read already represents a timeout.
func DefaultConfig() Config {
	return Config{
		Grammar:       DefaultGrammar(),
		BufferSize:    DefaultBufferSize,
		MaxResends:    DefaultMaxResends,
		MaxIdlePolls:  DefaultMaxIdlePolls,
		MaxStallPolls: DefaultMaxStallPolls,
	}
}

// Validate checks the configuration.
func (c Config) Validate() error {
	if err := c.Grammar.Validate(); err != nil {
		return err
	}
	if c.BufferSize <= 0 {
		return fmt.Errorf("buffer size must be positive, got %d", c.BufferSize)
	}
	if c.MaxResends < 0 {
		return fmt.Errorf("max resends must not be negative, got %d", c.MaxResends)
	}
	if c.MaxIdlePolls <= 0 {
		return fmt.Errorf("max idle polls must be positive, got %d", c.MaxIdlePolls)
	}
	if c.MaxStallPolls < 0 {
		return fmt.Errorf("max stall polls must not be negative, got %d", c.MaxStallPolls)
	}
	return nil
}
