// Package draw renders to ANSI terminals: a half-block pixel canvas for the
// board and a chunked writer for text overlays.
package draw

import (
	"fmt"
	"io"
)

// Point is a position in logical view coordinates.
type Point struct {
	X, Y float64
}

// Shades runs from empty to solid.
var Shades = []rune{' ', '░', '▒', '▓', '█'}

// ShadeLevel returns a shade character for a value between 0.0 (empty) and 1.0 (solid).
func ShadeLevel(intensity float64) rune {
	if intensity <= 0 {
		return Shades[0]
	}
	if intensity >= 1 {
		return Shades[len(Shades)-1]
	}
	idx := int(intensity * float64(len(Shades)-1))
	return Shades[idx]
}

// Block characters.
const (
	BlockFull      = '█'
	BlockLight     = '░'
	BlockUpperHalf = '▀'
	BlockLowerHalf = '▄'
)

// ANSI colors.
const (
	ColorReset       = "\033[0m"
	ColorBold        = "\033[1m"
	ColorDim         = "\033[2m"
	ColorRed         = "\033[31m"
	ColorGreen       = "\033[32m"
	ColorYellow      = "\033[33m"
	ColorBrightCyan  = "\033[96m"
	ColorBrightRed   = "\033[91m"
	ColorBrightGreen = "\033[92m"
)

// Bar renders a fixed-width meter filled to fraction, e.g. "████░░░░".
func Bar(fraction float64, width int) string {
	if width <= 0 {
		return ""
	}
	if fraction < 0 {
		fraction = 0
	}
	if fraction > 1 {
		fraction = 1
	}
	filled := int(fraction*float64(width) + 0.5)
	out := make([]rune, width)
	for i := range out {
		if i < filled {
			out[i] = BlockFull
		} else {
			out[i] = BlockLight
		}
	}
	return string(out)
}

// ClearScreen clears the terminal and moves cursor to top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
