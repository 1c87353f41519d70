// Package uarttest provides an in-memory board for testing code built on
// package uart.
package uarttest

import (
	"strings"
	"sync"

	"github.com/robotalks/up2stream/pkg/uart"
)

// Board emulates the firmware side of the link. Queries with an entry in
// Replies are answered, everything else stays silent. It implements
// uart.Transport.
type Board struct {
	// Replies maps command names to the parameter list returned for queries.
	Replies map[string]string
	// Noise is sent ahead of every reply.
	Noise string
	// OnCommand is called for every frame carrying a parameter.
	OnCommand func(b *Board, name, parameter string)

	lock    sync.Mutex
	frame   []byte
	pending []byte
	sent    []string
	flushes int
}

// NewBoard creates a Board with the given replies.
func NewBoard(replies map[string]string) *Board {
	if replies == nil {
		replies = make(map[string]string)
	}
	return &Board{Replies: replies}
}

// Echo makes every parameterized command update the reply of the
// same name, like the firmware does for settings.
func (b *Board) Echo() *Board {
	b.OnCommand = func(b *Board, name, parameter string) {
		b.Replies[name] = parameter
	}
	return b
}

// ReadByte implements uart.Transport.
func (b *Board) ReadByte() (byte, error) {
	b.lock.Lock()
	defer b.lock.Unlock()
	if len(b.pending) == 0 {
		return 0, uart.ErrWouldBlock
	}
	c := b.pending[0]
	b.pending = b.pending[1:]
	return c, nil
}

// WriteByte implements uart.Transport.
func (b *Board) WriteByte(c byte) error {
	b.lock.Lock()
	if c != ';' {
		b.frame = append(b.frame, c)
		b.lock.Unlock()
		return nil
	}
	frame := string(b.frame)
	b.frame = b.frame[:0]
	b.sent = append(b.sent, frame+";")
	b.lock.Unlock()

	if pos := strings.IndexByte(frame, ':'); pos >= 0 {
		if fn := b.OnCommand; fn != nil {
			fn(b, frame[:pos], frame[pos+1:])
		}
		return nil
	}
	b.lock.Lock()
	if reply, ok := b.Replies[frame]; ok {
		b.pending = append(b.pending, b.Noise+frame+":"+reply+";"...)
	}
	b.lock.Unlock()
	return nil
}

// Flush implements uart.Transport.
func (b *Board) Flush() error {
	b.lock.Lock()
	b.flushes++
	b.lock.Unlock()
	return nil
}

// Sent returns the frames received so far and forgets them.
func (b *Board) Sent() []string {
	b.lock.Lock()
	defer b.lock.Unlock()
	sent := b.sent
	b.sent = nil
	return sent
}

// Flushes returns the number of Flush calls.
func (b *Board) Flushes() int {
	b.lock.Lock()
	defer b.lock.Unlock()
	return b.flushes
}
