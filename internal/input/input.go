// Package input turns the raw byte stream of a terminal session into key
// and pointer events.
package input

import (
	"bufio"
)

// Kind identifies the type of an Event.
type Kind int

const (
	KindKey Kind = iota
	KindPointerDown
	KindPointerMove
	KindPointerUp
)

// Key identifies a non-printable key. Printable keys arrive as KeyRune.
type Key int

const (
	KeyRune Key = iota
	KeyEnter
	KeyEscape
	KeyBackspace
	KeyCtrlC
	KeyUp
	KeyDown
	KeyRight
	KeyLeft
)

// Mouse buttons as reported by SGR mouse mode.
const (
	ButtonLeft   = 0
	ButtonMiddle = 1
	ButtonRight  = 2
	ButtonNone   = 3 // Motion with no button held
)

// Event is a single key press or pointer action.
// Col and Row are 1-based terminal positions for pointer events.
type Event struct {
	Kind   Kind
	Key    Key
	Rune   rune
	Button int
	Col    int
	Row    int
}

// Stream delivers input bytes via a channel and keeps any partially
// received escape sequence between reads.
type Stream struct {
	ch      chan byte
	pending []byte
	closed  bool
}

// StartStream spawns a goroutine that reads from r and sends bytes to the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := &Stream{
		ch: make(chan byte, 256),
	}
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

// Closed reports whether the underlying reader has ended.
func (s *Stream) Closed() bool {
	return s.closed
}

// ReadEvents drains all available bytes from the stream (non-blocking) and
// returns the complete events among them. An incomplete escape sequence is
// held until the next call; a lone ESC still alone on the next call with no
// new bytes is reported as the Escape key.
func ReadEvents(s *Stream) []Event {
	received := 0

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			s.pending = append(s.pending, b)
			received++
		default:
			break drain
		}
	}

	events, rest := Parse(s.pending)

	if received == 0 && len(rest) == 1 && rest[0] == '\x1b' {
		events = append(events, Event{Kind: KindKey, Key: KeyEscape})
		rest = rest[:0]
	}

	if len(rest) > maxEscapeLen {
		rest = rest[:0]
	}
	s.pending = append(s.pending[:0], rest...)
	return events
}

// ResetInput discards any pending bytes in the stream.
func ResetInput(s *Stream) {
	for {
		select {
		case _, ok := <-s.ch:
			if !ok {
				s.closed = true
				s.pending = s.pending[:0]
				return
			}
		default:
			s.pending = s.pending[:0]
			return
		}
	}
}
