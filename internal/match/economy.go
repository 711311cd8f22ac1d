package match

import "github.com/tomz197/lanebattle/internal/physics"

// TrySpawn buys a piece of type t for the given seat and places it at the
// start of lane. It reports false without changing anything when the side
// is at its population cap, cannot afford the piece, names an invalid lane
// or type, or has no free slot. Unknown seats never spawn.
func (m *Match) TrySpawn(seat Seat, t PieceType, lane int) bool {
	if !seat.Valid() {
		return false
	}
	s := &m.sides[seat]
	if s.Population >= MaxPieces {
		return false
	}
	if !t.Valid() || !s.CanAfford(t) || !ValidLane(lane) {
		return false
	}
	slot := s.freeSlot()
	if slot < 0 {
		return false
	}

	stats := t.Stats()
	s.Points -= float64(stats.Cost)
	s.Population++
	s.Pieces[slot] = Piece{
		Type:      t,
		Position:  physics.Vec3{X: LaneX(lane), Y: 0, Z: s.SpawnZ()},
		Size:      PieceSize,
		Health:    stats.Health,
		MaxHealth: stats.Health,
		Damage:    stats.Damage,
		Cost:      stats.Cost,
		Speed:     m.rules.PieceSpeed,
		Active:    true,
		Lane:      lane,
	}
	return true
}
