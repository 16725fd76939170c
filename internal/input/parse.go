package input

import (
	"unicode/utf8"
)

// SGR mouse flag bits in the button parameter.
const (
	mouseMotionFlag = 32
	mouseWheelFlag  = 64
)

// Limits on escape sequences. A sequence still open after maxEscapeLen
// bytes is dropped as malformed; numeric parameters stop growing at
// maxParam.
const (
	maxEscapeLen = 32
	maxParam     = 1 << 16
)

// Parse decodes as many complete events as buf holds. rest is the trailing
// incomplete escape sequence (or partial UTF-8 rune), if any.
func Parse(buf []byte) (events []Event, rest []byte) {
	for i := 0; i < len(buf); {
		b := buf[i]

		if b == '\x1b' {
			ev, n, complete := parseEscape(buf[i:])
			if !complete {
				return events, buf[i:]
			}
			if ev != nil {
				events = append(events, *ev)
			}
			i += n
			continue
		}

		if b >= utf8.RuneSelf {
			if !utf8.FullRune(buf[i:]) {
				return events, buf[i:]
			}
			r, size := utf8.DecodeRune(buf[i:])
			events = append(events, Event{Kind: KindKey, Key: KeyRune, Rune: r})
			i += size
			continue
		}

		events = append(events, keyEvent(b))
		i++
	}
	return events, nil
}

// keyEvent maps a single ASCII byte to a key event.
func keyEvent(b byte) Event {
	switch b {
	case '\r', '\n':
		return Event{Kind: KindKey, Key: KeyEnter}
	case '\x03':
		return Event{Kind: KindKey, Key: KeyCtrlC}
	case '\b', '\x7f':
		return Event{Kind: KindKey, Key: KeyBackspace}
	}
	return Event{Kind: KindKey, Key: KeyRune, Rune: rune(b)}
}

// parseEscape decodes the escape sequence at the start of buf. It returns
// the event (nil for sequences that are recognized but ignored), the number
// of bytes consumed and whether the sequence was complete.
func parseEscape(buf []byte) (*Event, int, bool) {
	if len(buf) < 2 {
		return nil, 0, false
	}
	if buf[1] != '[' {
		// ESC followed by something else: Escape key, the next byte is parsed on its own.
		return &Event{Kind: KindKey, Key: KeyEscape}, 1, true
	}
	if len(buf) < 3 {
		return nil, 0, false
	}

	switch buf[2] {
	case 'A':
		return &Event{Kind: KindKey, Key: KeyUp}, 3, true
	case 'B':
		return &Event{Kind: KindKey, Key: KeyDown}, 3, true
	case 'C':
		return &Event{Kind: KindKey, Key: KeyRight}, 3, true
	case 'D':
		return &Event{Kind: KindKey, Key: KeyLeft}, 3, true
	case '<':
		return parseSGRMouse(buf)
	}

	// Other CSI sequence: skip through its final byte (0x40-0x7e).
	for i := 2; i < len(buf); i++ {
		if buf[i] >= 0x40 && buf[i] <= 0x7e {
			return nil, i + 1, true
		}
		if i+1 >= maxEscapeLen {
			return nil, i + 1, true
		}
	}
	return nil, 0, false
}

// parseSGRMouse decodes ESC [ < button ; col ; row (M|m).
func parseSGRMouse(buf []byte) (*Event, int, bool) {
	var params [3]int
	idx := 0
	for i := 3; i < len(buf); i++ {
		c := buf[i]
		switch {
		case c >= '0' && c <= '9':
			if params[idx] < maxParam {
				params[idx] = params[idx]*10 + int(c-'0')
			}
		case c == ';':
			idx++
			if idx >= len(params) {
				return nil, i + 1, true
			}
		case c == 'M' || c == 'm':
			if idx != 2 {
				return nil, i + 1, true
			}
			return mouseEvent(params[0], params[1], params[2], c == 'm'), i + 1, true
		default:
			// Malformed: drop what we have.
			return nil, i + 1, true
		}
		if i+1 >= maxEscapeLen {
			return nil, i + 1, true
		}
	}
	return nil, 0, false
}

func mouseEvent(code, col, row int, release bool) *Event {
	if code&mouseWheelFlag != 0 {
		return nil
	}
	ev := &Event{Button: code & 3, Col: col, Row: row}
	switch {
	case release:
		ev.Kind = KindPointerUp
	case code&mouseMotionFlag != 0:
		ev.Kind = KindPointerMove
	default:
		ev.Kind = KindPointerDown
	}
	return ev
}
