package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTrySpawnSuccess(t *testing.T) {
	m := newTestMatch()

	require.True(t, m.TrySpawn(SeatHuman, PiecePawn, 2))

	s := m.Side(SeatHuman)
	assert.Equal(t, 400.0, s.Points)
	assert.Equal(t, 1, s.Population)

	p := s.Pieces[0]
	assert.True(t, p.Active)
	assert.Equal(t, PiecePawn, p.Type)
	assert.Equal(t, 100, p.Health)
	assert.Equal(t, 100, p.MaxHealth)
	assert.Equal(t, 10, p.Damage)
	assert.Equal(t, 2.5, p.Speed)
	assert.Equal(t, 0.0, p.AttackTimer)
	assert.Equal(t, 2, p.Lane)
	assert.Equal(t, 0.0, p.Position.X)
	assert.Equal(t, HumanSpawnZ, p.Position.Z)
	assert.Equal(t, PieceSize, p.Size)
}

func TestTrySpawnEveryTypeMatchesStats(t *testing.T) {
	for _, pt := range AllPieceTypes() {
		t.Run(pt.String(), func(t *testing.T) {
			m := newTestMatch()
			m.sides[SeatComputer].Points = 1000

			require.True(t, m.TrySpawn(SeatComputer, pt, 3))

			s := m.Side(SeatComputer)
			stats := pt.Stats()
			assert.Equal(t, 1000-float64(stats.Cost), s.Points)
			assert.Equal(t, 1, s.Population)
			assert.Equal(t, stats.Health, s.Pieces[0].Health)
			assert.Equal(t, stats.Damage, s.Pieces[0].Damage)
			assert.Equal(t, 6.0, s.Pieces[0].Position.X)
			assert.Equal(t, ComputerSpawnZ, s.Pieces[0].Position.Z)
		})
	}
}

func TestTrySpawnRejectsWhenUnaffordable(t *testing.T) {
	for _, pt := range AllPieceTypes() {
		t.Run(pt.String(), func(t *testing.T) {
			m := newTestMatch()
			m.sides[SeatHuman].Points = float64(pt.Stats().Cost) - 0.5
			before := m.Side(SeatHuman)

			assert.False(t, m.TrySpawn(SeatHuman, pt, 1))
			assert.Equal(t, before, m.Side(SeatHuman))
		})
	}
}

func TestTrySpawnRejectsAtCapacity(t *testing.T) {
	m := newTestMatch()
	m.sides[SeatHuman].Points = 100 * MaxPieces
	for i := 0; i < MaxPieces; i++ {
		require.True(t, m.TrySpawn(SeatHuman, PiecePawn, i%LaneCount+1))
	}
	m.sides[SeatHuman].Points = 10000
	before := m.Side(SeatHuman)

	for _, pt := range AllPieceTypes() {
		assert.False(t, m.TrySpawn(SeatHuman, pt, 2))
	}
	assert.Equal(t, before, m.Side(SeatHuman))
	assert.Equal(t, MaxPieces, m.Side(SeatHuman).Population)
}

func TestTrySpawnRejectsInvalidInput(t *testing.T) {
	m := newTestMatch()
	before := m.Side(SeatHuman)

	assert.False(t, m.TrySpawn(SeatHuman, PiecePawn, 0))
	assert.False(t, m.TrySpawn(SeatHuman, PiecePawn, 4))
	assert.False(t, m.TrySpawn(SeatHuman, PieceType(-1), 1))
	assert.False(t, m.TrySpawn(SeatHuman, PieceTypeCount, 1))
	assert.Equal(t, before, m.Side(SeatHuman))
}

func TestTrySpawnReusesFirstFreeSlot(t *testing.T) {
	m := newTestMatch()
	m.sides[SeatHuman].Points = 1000
	require.True(t, m.TrySpawn(SeatHuman, PiecePawn, 1))
	require.True(t, m.TrySpawn(SeatHuman, PiecePawn, 2))
	require.True(t, m.TrySpawn(SeatHuman, PiecePawn, 3))

	m.sides[SeatHuman].Pieces[1].Active = false
	m.sides[SeatHuman].Population--

	require.True(t, m.TrySpawn(SeatHuman, PieceRook, 3))
	s := m.Side(SeatHuman)
	assert.Equal(t, PieceRook, s.Pieces[1].Type)
	assert.Equal(t, 3, s.Pieces[1].Lane)
	assert.False(t, s.Pieces[3].Active)
	assert.Equal(t, 3, s.Population)
}

func TestUnknownSeatIsRejected(t *testing.T) {
	m := newTestMatch()
	bad := Seat(2)

	assert.False(t, bad.Valid())
	assert.False(t, m.TrySpawn(bad, PiecePawn, 1))
	assert.False(t, m.TrySpawn(Seat(-1), PiecePawn, 1))
	assert.Equal(t, Side{}, m.Side(bad))

	timer, ok := m.AITimer(bad)
	assert.False(t, ok)
	assert.Zero(t, timer)

	p := &Policy{}
	assert.False(t, p.Step(m, bad, 10))
	assert.Zero(t, p.Timer())

	human, computer := m.Side(SeatHuman), m.Side(SeatComputer)
	assert.Zero(t, human.Population)
	assert.Zero(t, computer.Population)
}
