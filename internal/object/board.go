package object

import (
	"fmt"
	"strings"

	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/match"
	"github.com/tomz197/lanebattle/internal/physics"
)

// Lanes draws the three lane corridors. The selected lane gets solid edges.
type Lanes struct {
	Selected int
}

// Draw draws lane edges between the two spawn lines and numbers each lane.
func (l Lanes) Draw(ctx DrawContext) error {
	for lane := 1; lane <= match.LaneCount; lane++ {
		cx := match.LaneX(lane)
		for _, x := range []float64{cx - match.LaneWidth/2, cx + match.LaneWidth/2} {
			p1 := ctx.Board.Project(x, match.ComputerSpawnZ)
			p2 := ctx.Board.Project(x, match.HumanSpawnZ)
			if lane == l.Selected {
				ctx.Canvas.DrawLine(p1, p2)
			} else {
				ctx.Canvas.DrawDashedLine(p1, p2, 2)
			}
		}
		label := fmt.Sprintf("%d", lane)
		if lane == l.Selected {
			label = draw.ColorBold + draw.ColorYellow + label + draw.ColorReset
		}
		p := ctx.Board.Project(cx, match.HumanSpawnZ+1.5)
		col, row := ctx.Canvas.LogicalToTerminal(p.X, p.Y)
		ctx.Writer.WriteAt(col, row, label)
	}
	return nil
}

// KingSprite draws a king's footprint with a health bar.
type KingSprite struct {
	King match.King
	Seat match.Seat
}

const kingBarWidth = 16

// Draw fills the king's box and labels it with its remaining health.
func (k KingSprite) Draw(ctx DrawContext) error {
	lo, hi := ctx.Board.ProjectBox(k.King.Box)
	ctx.Canvas.DrawRect(lo, hi, true)

	fraction := 0.0
	if k.King.MaxHealth > 0 {
		fraction = float64(k.King.Health) / float64(k.King.MaxHealth)
	}
	label := fmt.Sprintf("KING %s %4d", draw.Bar(fraction, kingBarWidth), k.King.Health)

	// Computer's bar sits above its king, the human's below.
	y := lo.Y - 2
	if k.Seat == match.SeatHuman {
		y = hi.Y + 2
	}
	col, row := ctx.Canvas.LogicalToTerminal((lo.X+hi.X)/2, y)
	col -= draw.VisibleWidth(label) / 2
	ctx.Writer.WriteAt(col, row, seatColor(k.Seat)+label+draw.ColorReset)
	return nil
}

// PieceSprite draws a unit as its letter followed by a health shade.
type PieceSprite struct {
	Piece match.Piece
	Seat  match.Seat
}

var pieceGlyphs = [match.PieceTypeCount]string{"P", "N", "B", "R", "Q"}

// Glyph returns the letter of a piece type: upper case for the human side,
// lower case for the computer.
func Glyph(t match.PieceType, seat match.Seat) string {
	if !t.Valid() {
		return "?"
	}
	g := pieceGlyphs[t]
	if seat == match.SeatComputer {
		g = strings.ToLower(g)
	}
	return g
}

// Draw writes the glyph at the piece's position and, when enabled,
// outlines its hitbox.
func (p PieceSprite) Draw(ctx DrawContext) error {
	if ctx.ShowHitboxes {
		lo, hi := ctx.Board.ProjectBox(physics.FootBox(p.Piece.Position, p.Piece.Size))
		ctx.Canvas.DrawRect(lo, hi, false)
	}

	fraction := 0.0
	if p.Piece.MaxHealth > 0 {
		fraction = float64(p.Piece.Health) / float64(p.Piece.MaxHealth)
	}
	pos := ctx.Board.Project(p.Piece.Position.X, p.Piece.Position.Z)
	col, row := ctx.Canvas.LogicalToTerminal(pos.X, pos.Y)
	ctx.Writer.WriteAt(col, row, seatColor(p.Seat)+Glyph(p.Piece.Type, p.Seat)+string(draw.ShadeLevel(fraction))+draw.ColorReset)
	return nil
}
