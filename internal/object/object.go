// Package object holds the drawables of the battlefield view: lanes,
// kings, pieces and the panels around them.
package object

import (
	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/match"
	"github.com/tomz197/lanebattle/internal/physics"
)

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Canvas       *draw.Canvas      // half-block canvas for shapes
	Writer       *draw.ChunkWriter // text overlays, written after the canvas
	Board        Board
	ShowHitboxes bool
}

// Object is anything that can draw itself into a frame.
type Object interface {
	Draw(ctx DrawContext) error
}

// Board maps board coordinates (X across lanes, Z between the kings) onto
// a rectangle of the logical view. The computer's king is at the top.
type Board struct {
	Left, Top, Width, Height float64
	MinX, MaxX, MinZ, MaxZ   float64
}

// Project converts a board position to logical view coordinates.
func (b Board) Project(x, z float64) draw.Point {
	return draw.Point{
		X: b.Left + (x-b.MinX)/(b.MaxX-b.MinX)*b.Width,
		Y: b.Top + (z-b.MinZ)/(b.MaxZ-b.MinZ)*b.Height,
	}
}

// ProjectBox returns the view rectangle covered by a box seen from above.
func (b Board) ProjectBox(box physics.Box) (lo, hi draw.Point) {
	return b.Project(box.Min.X, box.Min.Z), b.Project(box.Max.X, box.Max.Z)
}

// FromSnapshot builds the battlefield drawables for a snapshot, back to front.
func FromSnapshot(snap *match.Snapshot) []Object {
	objs := make([]Object, 0, 3+snap.Human.Population+snap.Computer.Population)
	objs = append(objs,
		Lanes{Selected: snap.SelectedLane},
		KingSprite{King: snap.Computer.King, Seat: match.SeatComputer},
		KingSprite{King: snap.Human.King, Seat: match.SeatHuman},
	)
	for _, seat := range []match.Seat{match.SeatHuman, match.SeatComputer} {
		side := snap.Side(seat)
		for i := range side.Pieces {
			if side.Pieces[i].Active {
				objs = append(objs, PieceSprite{Piece: side.Pieces[i], Seat: seat})
			}
		}
	}
	return objs
}

// seatColor is the text color of a side.
func seatColor(seat match.Seat) string {
	if seat == match.SeatHuman {
		return draw.ColorBrightGreen
	}
	return draw.ColorBrightRed
}
