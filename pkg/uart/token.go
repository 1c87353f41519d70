package uart

type tokenKind int

const (
	tokenCharacter tokenKind = iota
	tokenControl
	tokenTerminator
	tokenParameterStart
	tokenDelimiter
	tokenBlock
)

var tokenNames = [...]string{
	tokenCharacter:      "character",
	tokenControl:        "control",
	tokenTerminator:     "terminator",
	tokenParameterStart: "parameter-start",
	tokenDelimiter:      "delimiter",
	tokenBlock:          "block",
}

func (k tokenKind) String() string {
	return tokenNames[k]
}

type token struct {
	kind tokenKind
	b    byte
}

func isCharacter(b byte) bool {
	return b >= '0' && b <= '9' ||
		b >= 'a' && b <= 'z' ||
		b >= 'A' && b <= 'Z' ||
		b == '-' || b == '+'
}

func isControl(b byte) bool {
	return b < 0x20 || b == 0x7f
}

// classify maps the outcome of one transport read to a token.
func (g Grammar) classify(b byte, err error) (token, error) {
	if err != nil {
		if err == ErrWouldBlock {
			return token{kind: tokenBlock}, nil
		}
		return token{}, &TransportError{Op: "read", Err: err}
	}
	switch {
	case b == g.Terminator:
		return token{kind: tokenTerminator, b: b}, nil
	case b == g.ParameterStart:
		return token{kind: tokenParameterStart, b: b}, nil
	case b == g.ParameterDelimiter:
		return token{kind: tokenDelimiter, b: b}, nil
	case isCharacter(b):
		return token{kind: tokenCharacter, b: b}, nil
	case isControl(b):
		return token{kind: tokenControl, b: b}, nil
	}
	return token{}, &UnexpectedByteError{Byte: b}
}
