package client

import (
	"time"

	"github.com/tomz197/geobuilder/internal/board"
	"github.com/tomz197/geobuilder/internal/geom"
)

// Screen represents what a client is currently showing.
type Screen int

const (
	ScreenBoard    Screen = iota // The board with toolbar and info panel
	ScreenAbout                  // About dialog over the board
	ScreenShutdown               // Server is shutting down
)

// ClientState holds per-session state. Each client has its own instance,
// including its own board.
type ClientState struct {
	Board         *board.Board
	Screen        Screen
	Running       bool          // Client loop running
	cursor        geom.Point    // Last pointer position in logical space
	hasCursor     bool          // Whether cursor is over the board
	dirty         bool          // Frame needs redrawing
	delta         time.Duration // Frame delta time
	shutdownTimer float64       // Countdown before auto-disconnect on shutdown
	isInactive    bool          // Whether the client is in inactive warning state
	prevScreen    Screen        // Screen drawn in the previous frame
	wasInactive   bool          // Inactive state drawn in the previous frame
}

// NewClientState creates a new initialized client state.
func NewClientState(b *board.Board) *ClientState {
	return &ClientState{
		Board:   b,
		Screen:  ScreenBoard,
		Running: true,
		dirty:   true,
	}
}
