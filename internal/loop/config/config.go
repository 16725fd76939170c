// Package config centralizes the tunable parameters of the board and its
// terminal sessions.
package config

import "time"

// View resolution - the visible board in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 160 // Logical board width
	ViewHeight = 96  // Logical board height (in sub-pixels, so 48 terminal rows)
)

// Max render resolution - terminals larger than this get a centered,
// bordered render area instead of a stretched board.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 48
)

// Board
const (
	MaxPoints        = 4    // Two circles, two designating points each
	DefaultHitRadius = 10.0 // Logical units around a point that grab it
	PointRadius      = 1.5  // Drawn radius of placed points and intersections
)

// Shutdown
const (
	ShutdownDisplaySeconds = 5.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90 * time.Second
	InactivityDisconnectUser = 120 * time.Second
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)
