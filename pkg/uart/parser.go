package uart

import "fmt"

// Parser validates the reply to one query, one token at a time.
type Parser struct {
	command []byte
	// partial[i] is the length of the longest proper prefix of
	// command[:i+1] which is also its suffix.
	partial []int

	state parseState
	index int
	buf   []byte
}

type parseState int

const (
	stateAwaitEcho     parseState = iota // scanning noise for the command echo
	stateEchoConfirmed                   // echo matched, waiting for parameter start
	stateParameters                      // accumulating the parameter list
	stateDone                            // terminator received
)

var parseStateNames = [...]string{
	stateAwaitEcho:     "await-echo",
	stateEchoConfirmed: "echo-confirmed",
	stateParameters:    "parameters",
	stateDone:          "done",
}

func (s parseState) String() string {
	return parseStateNames[s]
}

// ParseResult indicates the outcome of one parsing step.
type ParseResult int

const (
	// ParseContinue means more tokens are needed.
	ParseContinue ParseResult = iota
	// ParseIdle means no byte was available before the echo started.
	ParseIdle
	// ParseStall means no byte was available in the middle of a frame.
	ParseStall
	// ParseDone means the parameter list is complete.
	ParseDone
)

// NewParser creates a Parser expecting the echo of command. The parameter
// list is accumulated into buf[:0] and never grows beyond cap(buf).
func NewParser(command string, buf []byte) *Parser {
	p := &Parser{
		command: []byte(command),
		partial: make([]int, len(command)),
		buf:     buf[:0],
	}
	for i, k := 1, 0; i < len(p.command); i++ {
		for k > 0 && p.command[i] != p.command[k] {
			k = p.partial[k-1]
		}
		if p.command[i] == p.command[k] {
			k++
		}
		p.partial[i] = k
	}
	return p
}

// Reset restarts parsing with an empty parameter list.
func (p *Parser) Reset() {
	p.state, p.index, p.buf = stateAwaitEcho, 0, p.buf[:0]
}

// Parameters returns the parameter list accumulated so far.
func (p *Parser) Parameters() []byte {
	return p.buf
}

// Echoed indicates the command echo has been matched.
func (p *Parser) Echoed() bool {
	return p.state != stateAwaitEcho
}

func (p *Parser) parse(tok token) (ParseResult, error) {
	switch p.state {
	case stateAwaitEcho:
		switch tok.kind {
		case tokenBlock:
			return ParseIdle, nil
		case tokenCharacter:
			p.matchEcho(tok.b)
		default:
			p.index = 0
		}
	case stateEchoConfirmed:
		switch tok.kind {
		case tokenBlock:
			return ParseStall, nil
		case tokenParameterStart:
			p.state = stateParameters
		default:
			return ParseContinue, fmt.Errorf("%w: %s echoed then got %s 0x%02x",
				ErrParseResponse, p.command, tok.kind, tok.b)
		}
	case stateParameters:
		switch tok.kind {
		case tokenBlock:
			return ParseStall, nil
		case tokenCharacter, tokenDelimiter:
			if len(p.buf) == cap(p.buf) {
				return ParseContinue, fmt.Errorf("%w: more than %d bytes", ErrResponseOverflow, cap(p.buf))
			}
			p.buf = append(p.buf, tok.b)
		case tokenTerminator:
			p.state = stateDone
			return ParseDone, nil
		default:
			return ParseContinue, fmt.Errorf("%w: %s 0x%02x in parameters of %s",
				ErrIllFormedResponse, tok.kind, tok.b, p.command)
		}
	case stateDone:
		return ParseDone, nil
	}
	return ParseContinue, nil
}

func (p *Parser) matchEcho(b byte) {
	for p.index > 0 && p.command[p.index] != b {
		p.index = p.partial[p.index-1]
	}
	if p.command[p.index] == b {
		p.index++
	}
	if p.index == len(p.command) {
		p.state = stateEchoConfirmed
	}
}
