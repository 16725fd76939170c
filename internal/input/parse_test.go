package input

import (
	"bufio"
	"reflect"
	"strings"
	"testing"
	"time"
)

func TestParseKeys(t *testing.T) {
	events, rest := Parse([]byte("ra?\r\x03\x7f\x1b[A\x1b[D"))
	if len(rest) != 0 {
		t.Fatalf("unexpected rest %q", rest)
	}
	want := []Event{
		{Kind: KindKey, Key: KeyRune, Rune: 'r'},
		{Kind: KindKey, Key: KeyRune, Rune: 'a'},
		{Kind: KindKey, Key: KeyRune, Rune: '?'},
		{Kind: KindKey, Key: KeyEnter},
		{Kind: KindKey, Key: KeyCtrlC},
		{Kind: KindKey, Key: KeyBackspace},
		{Kind: KindKey, Key: KeyUp},
		{Kind: KindKey, Key: KeyLeft},
	}
	if !reflect.DeepEqual(events, want) {
		t.Errorf("got %+v\nwant %+v", events, want)
	}
}

func TestParseMouse(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want []Event
	}{
		{
			"left press",
			"\x1b[<0;12;7M",
			[]Event{{Kind: KindPointerDown, Button: ButtonLeft, Col: 12, Row: 7}},
		},
		{
			"drag",
			"\x1b[<32;13;8M",
			[]Event{{Kind: KindPointerMove, Button: ButtonLeft, Col: 13, Row: 8}},
		},
		{
			"hover",
			"\x1b[<35;100;40M",
			[]Event{{Kind: KindPointerMove, Button: ButtonNone, Col: 100, Row: 40}},
		},
		{
			"release",
			"\x1b[<0;13;8m",
			[]Event{{Kind: KindPointerUp, Button: ButtonLeft, Col: 13, Row: 8}},
		},
		{
			"wheel ignored",
			"\x1b[<64;5;5M",
			nil,
		},
		{
			"press drag release",
			"\x1b[<0;1;1M\x1b[<32;2;1M\x1b[<0;2;1m",
			[]Event{
				{Kind: KindPointerDown, Col: 1, Row: 1},
				{Kind: KindPointerMove, Col: 2, Row: 1},
				{Kind: KindPointerUp, Col: 2, Row: 1},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, rest := Parse([]byte(tt.in))
			if len(rest) != 0 {
				t.Fatalf("unexpected rest %q", rest)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("got %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseSplitSequence(t *testing.T) {
	full := "\x1b[<0;12;7M"
	for cut := 1; cut < len(full); cut++ {
		events, rest := Parse([]byte("x" + full[:cut]))
		if len(events) != 1 || events[0].Rune != 'x' {
			t.Fatalf("cut %d: events %+v", cut, events)
		}
		if string(rest) != full[:cut] {
			t.Fatalf("cut %d: rest %q", cut, rest)
		}

		events, rest = Parse(append(rest, full[cut:]...))
		if len(rest) != 0 || len(events) != 1 || events[0].Kind != KindPointerDown {
			t.Errorf("cut %d: resumed parse gave %+v rest %q", cut, events, rest)
		}
	}
}

func TestParseUnknownCSISkipped(t *testing.T) {
	events, rest := Parse([]byte("\x1b[200~q"))
	if len(rest) != 0 {
		t.Fatalf("unexpected rest %q", rest)
	}
	if len(events) != 1 || events[0].Rune != 'q' {
		t.Errorf("got %+v", events)
	}
}

func TestParseUTF8(t *testing.T) {
	events, rest := Parse([]byte("é"[:1]))
	if len(events) != 0 || len(rest) != 1 {
		t.Fatalf("partial rune: events %+v rest %q", events, rest)
	}
	events, _ = Parse([]byte("é"))
	if len(events) != 1 || events[0].Rune != 'é' {
		t.Errorf("got %+v", events)
	}
}

func TestReadEventsLoneEscape(t *testing.T) {
	s := StartStream(bufio.NewReader(strings.NewReader("\x1b")))

	// Wait for the reader goroutine to deliver the byte and close.
	deadline := time.Now().Add(time.Second)
	var events []Event
	for time.Now().Before(deadline) {
		events = append(events, ReadEvents(s)...)
		if s.Closed() && len(events) > 0 {
			break
		}
		time.Sleep(time.Millisecond)
	}

	if len(events) != 1 || events[0].Key != KeyEscape {
		t.Errorf("got %+v, want a single Escape", events)
	}
}

func TestParseRunawaySequenceDropped(t *testing.T) {
	tests := []struct {
		name string
		in   string
	}{
		{"mouse", "\x1b[<" + strings.Repeat("9", 100)},
		{"csi", "\x1b[" + strings.Repeat("1", 100)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			events, rest := Parse([]byte(tt.in))
			if len(rest) != 0 {
				t.Fatalf("rest %d bytes, want the open sequence dropped", len(rest))
			}
			if want := len(tt.in) - maxEscapeLen; len(events) != want {
				t.Fatalf("got %d events, want %d", len(events), want)
			}
			for _, ev := range events {
				if ev.Kind != KindKey || ev.Key != KeyRune {
					t.Fatalf("unexpected event %+v", ev)
				}
			}
		})
	}
}

func TestParseHugeParameterClamped(t *testing.T) {
	events, rest := Parse([]byte("\x1b[<0;99999999999999999999;5M"))
	if len(rest) != 0 || len(events) != 1 {
		t.Fatalf("events %+v rest %q", events, rest)
	}
	if col := events[0].Col; col <= 0 || col > 10*maxParam {
		t.Errorf("Col = %d, want a clamped positive value", col)
	}
	if events[0].Row != 5 {
		t.Errorf("Row = %d, want 5", events[0].Row)
	}
}

func TestReadEventsBoundsPending(t *testing.T) {
	flood := "\x1b[<" + strings.Repeat("9", 64*1024)
	s := StartStream(bufio.NewReader(strings.NewReader(flood)))

	deadline := time.Now().Add(5 * time.Second)
	for !s.Closed() && time.Now().Before(deadline) {
		for _, ev := range ReadEvents(s) {
			if ev.Kind != KindKey {
				t.Fatalf("flood produced %+v", ev)
			}
		}
		if len(s.pending) > maxEscapeLen {
			t.Fatalf("pending grew to %d bytes", len(s.pending))
		}
	}
	if !s.Closed() {
		t.Fatal("stream did not drain in time")
	}
}
