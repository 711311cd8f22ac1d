package match

import "github.com/tomz197/lanebattle/internal/physics"

// Board geometry.
const (
	MaxPieces   = 18 // slot pool size and population cap per side
	LaneCount   = 3
	LaneWidth   = 4.0
	LaneSpacing = 6.0
	PieceHeight = 2.5
	KingHeight  = 4.0

	HumanKingZ     = 20.0
	ComputerKingZ  = -20.0
	HumanSpawnZ    = 18.0
	ComputerSpawnZ = -18.0

	kingDepth = 2.0 // half-depth of a king's collision box
)

// PieceSize is the hitbox extent shared by every piece.
var PieceSize = physics.Vec3{X: 1.2, Y: PieceHeight, Z: 1.2}

// LaneX returns the X coordinate of a lane's centre line (lanes are 1-based).
func LaneX(lane int) float64 {
	return float64(lane-2) * LaneSpacing
}

// ValidLane reports whether lane is one of the board's lanes.
func ValidLane(lane int) bool {
	return lane >= 1 && lane <= LaneCount
}

// Seat identifies one of the two sides of a match.
type Seat int

const (
	SeatHuman Seat = iota
	SeatComputer
)

// Opponent returns the other seat.
// Valid reports whether s names one of the two seats.
func (s Seat) Valid() bool {
	return s == SeatHuman || s == SeatComputer
}

func (s Seat) Opponent() Seat {
	return 1 - s
}

func (s Seat) String() string {
	switch s {
	case SeatHuman:
		return "human"
	case SeatComputer:
		return "computer"
	default:
		return "unknown"
	}
}

// King is a side's stationary objective.
type King struct {
	Position  physics.Vec3 `json:"position"`
	Health    int          `json:"health"`
	MaxHealth int          `json:"maxHealth"`
	Box       physics.Box  `json:"box"`
}

// takeDamage lowers health, never below zero.
func (k *King) takeDamage(dmg int) {
	k.Health -= dmg
	if k.Health < 0 {
		k.Health = 0
	}
}

// Side holds one party's economy, king and unit pool.
type Side struct {
	Seat       Seat                `json:"seat"`
	IsAI       bool                `json:"isAI"`
	Points     float64             `json:"points"`
	Population int                 `json:"population"`
	King       King                `json:"king"`
	Pieces     [MaxPieces]Piece    `json:"pieces"`
	Captured   [PieceTypeCount]int `json:"captured"` // enemy pieces destroyed, by type
}

func newSide(seat Seat, r Rules) Side {
	kingZ, isAI := HumanKingZ, false
	if seat == SeatComputer {
		kingZ, isAI = ComputerKingZ, true
	}
	return Side{
		Seat:   seat,
		IsAI:   isAI,
		Points: r.StartingPoints,
		King: King{
			Position:  physics.Vec3{Z: kingZ},
			Health:    r.KingHealth,
			MaxHealth: r.KingHealth,
			Box: physics.Box{
				Min: physics.Vec3{X: -LaneSpacing * 1.5, Y: 0, Z: kingZ - kingDepth},
				Max: physics.Vec3{X: LaneSpacing * 1.5, Y: KingHeight, Z: kingZ + kingDepth},
			},
		},
	}
}

// Direction is the sign of Z movement for this side's pieces: the computer
// marches toward +Z and the human toward -Z.
func (s *Side) Direction() float64 {
	if s.IsAI {
		return 1
	}
	return -1
}

// SpawnZ is the depth at which this side's pieces enter the board.
func (s *Side) SpawnZ() float64 {
	if s.IsAI {
		return ComputerSpawnZ
	}
	return HumanSpawnZ
}

// CanAfford reports whether the side has enough points for t.
func (s *Side) CanAfford(t PieceType) bool {
	return t.Valid() && s.Points >= float64(t.Stats().Cost)
}

// Affordable lists the piece types the side can currently pay for.
func (s *Side) Affordable() []PieceType {
	var out []PieceType
	for _, t := range AllPieceTypes() {
		if s.CanAfford(t) {
			out = append(out, t)
		}
	}
	return out
}

// ActivePieces returns copies of the live pieces in slot order.
func (s *Side) ActivePieces() []Piece {
	out := make([]Piece, 0, s.Population)
	for i := range s.Pieces {
		if s.Pieces[i].Active {
			out = append(out, s.Pieces[i])
		}
	}
	return out
}

// freeSlot returns the index of the first inactive slot, or -1.
func (s *Side) freeSlot() int {
	for i := range s.Pieces {
		if !s.Pieces[i].Active {
			return i
		}
	}
	return -1
}
