package object

import (
	"fmt"

	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/match"
)

// PieceCard shows a piece's hotkey, name and cost with a bar filling up as
// the side saves toward it.
type PieceCard struct {
	X, Y   int
	Width  int
	Type   match.PieceType
	Points float64
}

// Draw renders the card as a two-line window.
func (c PieceCard) Draw(ctx DrawContext) error {
	cost := float64(c.Type.Stats().Cost)
	progress := c.Points / cost
	affordable := c.Points >= cost

	color := draw.ColorDim
	if affordable {
		color = draw.ColorYellow
	}
	return Window{
		X:     c.X,
		Y:     c.Y,
		Width: c.Width,
		Lines: []string{
			fmt.Sprintf(" %d - %s (%d pts)", int(c.Type)+4, c.Type, c.Type.Stats().Cost),
			" " + color + draw.Bar(progress, c.Width-2) + draw.ColorReset,
		},
	}.Draw(ctx)
}

// CardHeight is the number of rows a PieceCard occupies.
const CardHeight = 4

// Cards returns one card per piece type, stacked from (x, y).
func Cards(x, y, width int, points float64) []Object {
	out := make([]Object, 0, match.PieceTypeCount)
	for i, t := range match.AllPieceTypes() {
		out = append(out, PieceCard{X: x, Y: y + i*CardHeight, Width: width, Type: t, Points: points})
	}
	return out
}

// HelpWindow lists the controls.
func HelpWindow(centerX, centerY int) Window {
	lines := []string{
		"",
		"  Select lane: 1, 2, 3 (or A / D)",
		"  Spawn in the selected lane:",
		"    4 - Pawn (100)     7 - Rook (300)",
		"    5 - Knight (200)   8 - Queen (500)",
		"    6 - Bishop (250)",
		"  Toggle hitboxes: B",
		"  Quit: Q",
		"",
		"  Objective: destroy the enemy King!",
	}
	width := 40
	return Window{
		X:     centerX - width/2 - 1,
		Y:     centerY - (len(lines)+2)/2,
		Width: width,
		Title: "CONTROLS (H to hide)",
		Lines: lines,
	}
}
