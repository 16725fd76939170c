package draw

import (
	"strconv"

	"github.com/tomz197/geobuilder/internal/geom"
)

// Point is a 2D coordinate in logical space.
type Point = geom.Point

// Block characters for drawing.
const (
	BlockFull      = '█'
	BlockEmpty     = ' '
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// Color is an ANSI 256 color stored off by one so the zero value means
// "no pixel".
type Color uint16

// NoColor marks an unset pixel.
const NoColor Color = 0

// ANSI returns the Color for a 256-color palette code.
func ANSI(code int) Color {
	return Color(code&0xff) + 1
}

// Code returns the 256-color palette code, or -1 for NoColor.
func (c Color) Code() int {
	return int(c) - 1
}

func (c Color) appendFg(b []byte) []byte {
	b = append(b, "\033[38;5;"...)
	b = strconv.AppendInt(b, int64(c.Code()), 10)
	return append(b, 'm')
}

func (c Color) appendBg(b []byte) []byte {
	b = append(b, "\033[48;5;"...)
	b = strconv.AppendInt(b, int64(c.Code()), 10)
	return append(b, 'm')
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
