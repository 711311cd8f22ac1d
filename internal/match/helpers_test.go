package match

import (
	"testing"

	"github.com/stretchr/testify/require"
)

// scriptedRand replays fixed values and records the bounds it was asked for.
type scriptedRand struct {
	values []int
	bounds []int
}

func (r *scriptedRand) Intn(n int) int {
	r.bounds = append(r.bounds, n)
	if len(r.values) == 0 {
		return 0
	}
	v := r.values[0]
	r.values = r.values[1:]
	return v % n
}

func newTestMatch(opts ...Option) *Match {
	return New(append([]Option{WithRand(&scriptedRand{})}, opts...)...)
}

// place spawns a piece for seat, paying for it, and moves it to depth z.
func place(t *testing.T, m *Match, seat Seat, pt PieceType, lane int, z float64) *Piece {
	t.Helper()
	s := &m.sides[seat]
	s.Points += float64(pt.Stats().Cost)
	slot := s.freeSlot()
	require.GreaterOrEqual(t, slot, 0, "no free slot")
	require.True(t, m.TrySpawn(seat, pt, lane))
	p := &s.Pieces[slot]
	p.Position.Z = z
	return p
}
