package uart

import (
	"errors"
	"fmt"
	"os"
	"testing"

	"github.com/stretchr/testify/require"
)

func tokensOf(g Grammar, s string) (toks []token) {
	for i := 0; i < len(s); i++ {
		if s[i] == '_' {
			toks = append(toks, token{kind: tokenBlock})
			continue
		}
		tok, err := g.classify(s[i], nil)
		if err != nil {
			panic(err)
		}
		toks = append(toks, tok)
	}
	return
}

func TestParser(t *testing.T) {
	testCases := []struct {
		name    string
		command string
		in      string // '_' is a would-block read
		results []ParseResult
		state   parseState
		params  string
	}{
		{
			name:    "complete",
			command: "VOL",
			in:      "VOL:5;",
			results: []ParseResult{ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseDone},
			state:   stateDone,
			params:  "5",
		},
		{
			name:    "idle before echo",
			command: "VOL",
			in:      "_V_",
			results: []ParseResult{ParseIdle, ParseContinue, ParseIdle},
			state:   stateAwaitEcho,
		},
		{
			name:    "stall after echo",
			command: "VOL",
			in:      "VOL_:_",
			results: []ParseResult{ParseContinue, ParseContinue, ParseContinue, ParseStall, ParseContinue, ParseStall},
			state:   stateParameters,
		},
		{
			name:    "noise resets match",
			command: "VOL",
			in:      "VO\nVOL",
			results: []ParseResult{ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue},
			state:   stateEchoConfirmed,
		},
		{
			name:    "delimiters kept",
			command: "STA",
			in:      "STA:a,b,,c",
			results: []ParseResult{ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue, ParseContinue},
			state:   stateParameters,
			params:  "a,b,,c",
		},
		{
			name:    "done is sticky",
			command: "A",
			in:      "A:;x",
			results: []ParseResult{ParseContinue, ParseContinue, ParseDone, ParseDone},
			state:   stateDone,
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			p := NewParser(tc.command, make([]byte, 0, 16))
			for n, tok := range tokensOf(DefaultGrammar(), tc.in) {
				res, err := p.parse(tok)
				require.NoErrorf(t, err, "token[%d]", n)
				require.Equalf(t, tc.results[n], res, "token[%d] result mismatch", n)
			}
			require.Equal(t, tc.state, p.state)
			require.Equal(t, tc.params, string(p.Parameters()))
		})
	}
}

func TestParserReset(t *testing.T) {
	p := NewParser("VOL", make([]byte, 0, 8))
	for _, tok := range tokensOf(DefaultGrammar(), "VOL:42") {
		_, err := p.parse(tok)
		require.NoError(t, err)
	}
	require.True(t, p.Echoed())
	p.Reset()
	require.False(t, p.Echoed())
	require.Empty(t, p.Parameters())
	require.Equal(t, stateAwaitEcho, p.state)
}

func TestParserPartialMatchTable(t *testing.T) {
	testCases := []struct {
		command string
		partial []int
	}{
		{"VOL", []int{0, 0, 0}},
		{"WWW", []int{0, 1, 2}},
		{"ABAB", []int{0, 0, 1, 2}},
		{"AAB", []int{0, 1, 0}},
	}
	for _, tc := range testCases {
		t.Run(tc.command, func(t *testing.T) {
			require.Equal(t, tc.partial, NewParser(tc.command, nil).partial)
		})
	}
}

func TestClassify(t *testing.T) {
	g := DefaultGrammar()
	testCases := []struct {
		in   byte
		kind tokenKind
	}{
		{'a', tokenCharacter},
		{'Z', tokenCharacter},
		{'7', tokenCharacter},
		{'-', tokenCharacter},
		{'+', tokenCharacter},
		{'\n', tokenControl},
		{'\r', tokenControl},
		{0, tokenControl},
		{0x7f, tokenControl},
		{';', tokenTerminator},
		{':', tokenParameterStart},
		{',', tokenDelimiter},
	}
	for _, tc := range testCases {
		t.Run(fmt.Sprintf("%q", tc.in), func(t *testing.T) {
			tok, err := g.classify(tc.in, nil)
			require.NoError(t, err)
			require.Equal(t, tc.kind, tok.kind)
			require.Equal(t, tc.in, tok.b)
		})
	}

	for _, b := range []byte{' ', '.', '!', '=', 0x80, 0xff} {
		_, err := g.classify(b, nil)
		var unexpected *UnexpectedByteError
		require.Truef(t, errors.As(err, &unexpected), "0x%02x: %v", b, err)
		require.Equal(t, b, unexpected.Byte)
		require.True(t, errors.Is(err, ErrDecode))
	}

	tok, err := g.classify(0, ErrWouldBlock)
	require.NoError(t, err)
	require.Equal(t, tokenBlock, tok.kind)

	_, err = g.classify(0, os.ErrClosed)
	require.True(t, errors.Is(err, ErrRead))
	require.True(t, errors.Is(err, os.ErrClosed))
	require.False(t, errors.Is(err, ErrSendCommand))
}

func TestGrammarValidate(t *testing.T) {
	require.NoError(t, DefaultGrammar().Validate())
	require.NoError(t, Grammar{Terminator: '\n', ParameterStart: '=', ParameterDelimiter: '/'}.Validate())
	require.NoError(t, Grammar{Terminator: ';', ParameterStart: ':', ParameterDelimiter: '.'}.Validate())
	for _, g := range []Grammar{
		{Terminator: ';', ParameterStart: ';', ParameterDelimiter: ','},
		{Terminator: ';', ParameterStart: ':', ParameterDelimiter: 'x'},
		{Terminator: 0, ParameterStart: ':', ParameterDelimiter: ','},
		{Terminator: 0xa0, ParameterStart: ':', ParameterDelimiter: ','},
	} {
		require.Truef(t, errors.Is(g.Validate(), ErrInvalidGrammar), "%+v", g)
	}
}
