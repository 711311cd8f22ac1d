package match

import (
	"fmt"

	"github.com/tomz197/lanebattle/internal/physics"
)

// PieceType identifies one of the five chess-piece units.
type PieceType int

const (
	PiecePawn PieceType = iota
	PieceKnight
	PieceBishop
	PieceRook
	PieceQueen
)

// PieceTypeCount is the number of spawnable piece types.
const PieceTypeCount = 5

// PieceStats is the fixed {cost, health, damage} triple of a piece type.
type PieceStats struct {
	Cost   int
	Health int
	Damage int
}

var pieceStats = [PieceTypeCount]PieceStats{
	PiecePawn:   {Cost: 100, Health: 100, Damage: 10},
	PieceKnight: {Cost: 200, Health: 150, Damage: 20},
	PieceBishop: {Cost: 250, Health: 120, Damage: 25},
	PieceRook:   {Cost: 300, Health: 200, Damage: 15},
	PieceQueen:  {Cost: 500, Health: 350, Damage: 40},
}

var pieceNames = [PieceTypeCount]string{"Pawn", "Knight", "Bishop", "Rook", "Queen"}

// AllPieceTypes lists piece types in table order.
func AllPieceTypes() []PieceType {
	return []PieceType{PiecePawn, PieceKnight, PieceBishop, PieceRook, PieceQueen}
}

// Valid reports whether t names a row of the stats table.
func (t PieceType) Valid() bool {
	return t >= 0 && t < PieceTypeCount
}

// Stats returns the fixed stats of the piece type.
func (t PieceType) Stats() PieceStats {
	if !t.Valid() {
		return PieceStats{}
	}
	return pieceStats[t]
}

func (t PieceType) String() string {
	if !t.Valid() {
		return "unknown"
	}
	return pieceNames[t]
}

// MarshalText encodes the piece type by name for snapshots.
func (t PieceType) MarshalText() ([]byte, error) {
	if !t.Valid() {
		return nil, fmt.Errorf("invalid piece type %d", int(t))
	}
	return []byte(pieceNames[t]), nil
}

// Piece is one slot of a side's unit pool. Only active slots are live units;
// the other fields of an inactive slot are stale and must be ignored.
type Piece struct {
	Type        PieceType    `json:"type"`
	Position    physics.Vec3 `json:"position"`
	Size        physics.Vec3 `json:"size"`
	Health      int          `json:"health"`
	MaxHealth   int          `json:"maxHealth"`
	Damage      int          `json:"damage"`
	Cost        int          `json:"cost"`
	Speed       float64      `json:"speed"`
	AttackTimer float64      `json:"attackTimer"`
	Active      bool         `json:"active"`
	Lane        int          `json:"lane"`
}

// Hitbox returns the piece's bounding box at its current position.
func (p *Piece) Hitbox() physics.Box {
	return physics.FootBox(p.Position, p.Size)
}

// charge accumulates engagement time and reports whether an attack lands
// this frame. The timer restarts from zero after each attack.
func (p *Piece) charge(dt, interval float64) bool {
	p.AttackTimer += dt
	if p.AttackTimer >= interval {
		p.AttackTimer = 0
		return true
	}
	return false
}
