package uart

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

type stepKind int

const (
	stepWrite stepKind = iota
	stepRead
	stepBlock
	stepFlush
	stepReadErr
	stepWriteErr
	stepFlushErr
)

func (k stepKind) String() string {
	return [...]string{"write", "read", "block", "flush", "read-err", "write-err", "flush-err"}[k]
}

type step struct {
	kind stepKind
	b    byte
	err  error
}

// scriptTransport replays a fixed sequence of transport operations and
// fails the test on any deviation.
type scriptTransport struct {
	t     *testing.T
	steps []step
	pos   int
}

type scriptBuilder struct {
	steps []step
}

func script() *scriptBuilder {
	return &scriptBuilder{}
}

func (b *scriptBuilder) write(s string) *scriptBuilder {
	for i := 0; i < len(s); i++ {
		b.steps = append(b.steps, step{kind: stepWrite, b: s[i]})
	}
	return b
}

func (b *scriptBuilder) flush() *scriptBuilder {
	b.steps = append(b.steps, step{kind: stepFlush})
	return b
}

// send is a complete frame followed by the flush.
func (b *scriptBuilder) send(s string) *scriptBuilder {
	return b.write(s).flush()
}

func (b *scriptBuilder) read(s string) *scriptBuilder {
	for i := 0; i < len(s); i++ {
		b.steps = append(b.steps, step{kind: stepRead, b: s[i]})
	}
	return b
}

func (b *scriptBuilder) block(n int) *scriptBuilder {
	for i := 0; i < n; i++ {
		b.steps = append(b.steps, step{kind: stepBlock})
	}
	return b
}

func (b *scriptBuilder) readErr(err error) *scriptBuilder {
	b.steps = append(b.steps, step{kind: stepReadErr, err: err})
	return b
}

func (b *scriptBuilder) writeErr(err error) *scriptBuilder {
	b.steps = append(b.steps, step{kind: stepWriteErr, err: err})
	return b
}

func (b *scriptBuilder) flushErr(err error) *scriptBuilder {
	b.steps = append(b.steps, step{kind: stepFlushErr, err: err})
	return b
}

func (b *scriptBuilder) transport(t *testing.T) *scriptTransport {
	return &scriptTransport{t: t, steps: b.steps}
}

func (s *scriptTransport) next(op string) step {
	require.Truef(s.t, s.pos < len(s.steps), "unexpected %s after end of script", op)
	st := s.steps[s.pos]
	s.pos++
	return st
}

func (s *scriptTransport) ReadByte() (byte, error) {
	st := s.next("read")
	switch st.kind {
	case stepRead:
		return st.b, nil
	case stepBlock:
		return 0, ErrWouldBlock
	case stepReadErr:
		return 0, st.err
	}
	require.FailNowf(s.t, "script mismatch", "step[%d]: read, expected %s", s.pos-1, st.kind)
	return 0, nil
}

func (s *scriptTransport) WriteByte(b byte) error {
	st := s.next("write")
	switch st.kind {
	case stepWrite:
		require.Equalf(s.t, string(st.b), string(b), "step[%d] write mismatch", s.pos-1)
		return nil
	case stepWriteErr:
		return st.err
	}
	require.FailNowf(s.t, "script mismatch", "step[%d]: write %q, expected %s", s.pos-1, b, st.kind)
	return nil
}

func (s *scriptTransport) Flush() error {
	st := s.next("flush")
	switch st.kind {
	case stepFlush:
		return nil
	case stepFlushErr:
		return st.err
	}
	require.FailNowf(s.t, "script mismatch", "step[%d]: flush, expected %s", s.pos-1, st.kind)
	return nil
}

func (s *scriptTransport) done() {
	require.Equalf(s.t, len(s.steps), s.pos, "script not consumed: %s", s.remaining())
}

func (s *scriptTransport) remaining() string {
	var out []byte
	for _, st := range s.steps[s.pos:] {
		switch st.kind {
		case stepWrite, stepRead:
			out = append(out, st.b)
		default:
			out = append(out, fmt.Sprintf("<%s>", st.kind)...)
		}
	}
	return string(out)
}

var errBroken = errors.New("broken line")

// command returns the command name of the first scripted frame.
func (s *scriptTransport) command() string {
	var name []byte
	for _, st := range s.steps {
		if st.kind != stepWrite || !isCharacter(st.b) {
			break
		}
		name = append(name, st.b)
	}
	return string(name)
}
