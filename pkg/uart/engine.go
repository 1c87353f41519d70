package uart

import (
	"fmt"

	"github.com/golang/glog"
)

// Engine sends commands and queries over a Transport it exclusively owns.
// It's not safe for concurrent use.
type Engine struct {
	transport Transport
	config    Config
	buf       []byte
}

// New creates an Engine with DefaultConfig.
func New(t Transport) *Engine {
	e, err := NewWithConfig(t, DefaultConfig())
	if err != nil {
		panic(err)
	}
	return e
}

// NewWithConfig creates an Engine.
func NewWithConfig(t Transport, conf Config) (*Engine, error) {
	if err := conf.Validate(); err != nil {
		return nil, err
	}
	return &Engine{
		transport: t,
		config:    conf,
		buf:       make([]byte, 0, conf.BufferSize),
	}, nil
}

// Config returns the configuration in use.
func (e *Engine) Config() Config {
	return e.config
}

// Transport returns the owned transport.
func (e *Engine) Transport() Transport {
	return e.transport
}

// SendCommand transmits <command>[:<parameter>]; and flushes. No reply is
// expected.
func (e *Engine) SendCommand(command string, parameter []byte) error {
	if err := e.checkCommand(command); err != nil {
		return err
	}
	return e.send(command, parameter)
}

// SendQuery transmits <command>; and returns the parameter list of the
// reply with delimiters kept literally. The returned slice is only valid
// until the next call on the Engine.
func (e *Engine) SendQuery(command string) ([]byte, error) {
	if err := e.checkCommand(command); err != nil {
		return nil, err
	}
	p := NewParser(command, e.buf)
	for attempt := 0; ; attempt++ {
		if attempt > 0 {
			glog.V(1).Infof("no reply to %s, resend %d/%d", command, attempt, e.config.MaxResends)
		}
		if err := e.send(command, nil); err != nil {
			return nil, err
		}
		answered, err := e.receive(p)
		if err != nil {
			return nil, err
		}
		if answered {
			glog.V(2).Infof("RCV %q", p.Parameters())
			if err := e.drain(); err != nil {
				return nil, err
			}
			return p.Parameters(), nil
		}
		if attempt >= e.config.MaxResends {
			glog.Warningf("no reply to %s after %d attempts", command, attempt+1)
			return nil, &TimeoutError{Command: command, Attempts: attempt + 1}
		}
	}
}

// Query is SendQuery returning a copy of the parameter list.
func (e *Engine) Query(command string) (string, error) {
	params, err := e.SendQuery(command)
	if err != nil {
		return "", err
	}
	return string(params), nil
}

// receive runs the parser over incoming bytes. It reports false when the
// attempt went unanswered.
func (e *Engine) receive(p *Parser) (bool, error) {
	p.Reset()
	var idle, stall int
	for {
		b, err := e.transport.ReadByte()
		tok, err := e.config.Grammar.classify(b, err)
		if err != nil {
			return false, err
		}
		res, err := p.parse(tok)
		if err != nil {
			return false, err
		}
		switch res {
		case ParseDone:
			return true, nil
		case ParseIdle:
			if idle++; idle >= e.config.MaxIdlePolls {
				return false, nil
			}
		case ParseStall:
			if stall++; e.config.MaxStallPolls > 0 && stall >= e.config.MaxStallPolls {
				glog.V(1).Infof("reply to %s stalled in %s", p.command, p.state)
				return false, nil
			}
		default:
			idle, stall = 0, 0
		}
	}
}

// drain discards the bytes following a terminator up to the next
// would-block, e.g. the reply to a resent frame. At most BufferSize bytes
// are read.
func (e *Engine) drain() error {
	for n := 0; n < e.config.BufferSize; n++ {
		b, err := e.transport.ReadByte()
		tok, err := e.config.Grammar.classify(b, err)
		if err != nil {
			return err
		}
		if tok.kind == tokenBlock {
			if n > 0 {
				glog.V(2).Infof("discarded %d trailing bytes", n)
			}
			return nil
		}
	}
	glog.V(1).Infof("stop discarding after %d trailing bytes", e.config.BufferSize)
	return nil
}

func (e *Engine) send(command string, parameter []byte) error {
	if glog.V(2) {
		if len(parameter) > 0 {
			glog.Infof("SND %q", command+string(e.config.Grammar.ParameterStart)+string(parameter))
		} else {
			glog.Infof("SND %q", command)
		}
	}
	for i := 0; i < len(command); i++ {
		if err := e.write(command[i]); err != nil {
			return err
		}
	}
	if len(parameter) > 0 {
		if err := e.write(e.config.Grammar.ParameterStart); err != nil {
			return err
		}
		for _, b := range parameter {
			if err := e.write(b); err != nil {
				return err
			}
		}
	}
	if err := e.write(e.config.Grammar.Terminator); err != nil {
		return err
	}
	if err := e.transport.Flush(); err != nil {
		return &TransportError{Op: "flush", Err: err}
	}
	return nil
}

// write retries a byte the transport can't take yet, at most
// MaxStallPolls times when that's set.
func (e *Engine) write(b byte) error {
	for blocked := 0; ; {
		err := e.transport.WriteByte(b)
		if err == nil {
			return nil
		}
		if err != ErrWouldBlock {
			return &TransportError{Op: "write", Err: err}
		}
		if blocked++; e.config.MaxStallPolls > 0 && blocked >= e.config.MaxStallPolls {
			return &TransportError{Op: "write", Err: err}
		}
	}
}

func (e *Engine) checkCommand(command string) error {
	if command == "" {
		return fmt.Errorf("%w: empty", ErrInvalidCommand)
	}
	for i := 0; i < len(command); i++ {
		if !isCharacter(command[i]) {
			return fmt.Errorf("%w: %q", ErrInvalidCommand, command)
		}
	}
	return nil
}
