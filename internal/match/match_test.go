package match

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewInitialState(t *testing.T) {
	id := uuid.New()
	m := newTestMatch(WithID(id))

	assert.Equal(t, id, m.ID())
	assert.Equal(t, OutcomeUndecided, m.Outcome())
	assert.False(t, m.Finished())
	assert.Equal(t, 0, m.SelectedLane())

	for _, seat := range []Seat{SeatHuman, SeatComputer} {
		s := m.Side(seat)
		assert.Equal(t, 500.0, s.Points, seat.String())
		assert.Equal(t, 0, s.Population)
		assert.Equal(t, 2000, s.King.Health)
		assert.Empty(t, s.ActivePieces())
	}
	assert.True(t, m.Side(SeatComputer).IsAI)
	assert.False(t, m.Side(SeatHuman).IsAI)
	assert.Equal(t, 20.0, m.Side(SeatHuman).King.Position.Z)
	assert.Equal(t, -20.0, m.Side(SeatComputer).King.Position.Z)

	_, ok := m.AITimer(SeatHuman)
	assert.False(t, ok)
	_, ok = m.AITimer(SeatComputer)
	assert.True(t, ok)
}

func TestNewGeneratesID(t *testing.T) {
	assert.NotEqual(t, newTestMatch().ID(), newTestMatch().ID())
}

func TestUpdateAppliesIncome(t *testing.T) {
	m := newTestMatch()
	m.Update(0.5, nil)

	assert.Equal(t, 501.0, m.Side(SeatHuman).Points)
	assert.Equal(t, 502.0, m.Side(SeatComputer).Points)
	assert.Equal(t, 0.5, m.Elapsed())
	assert.Equal(t, 1, m.Frame())
}

func TestUpdateSpawnNeedsSelectedLane(t *testing.T) {
	m := newTestMatch()

	m.Update(0, []Command{Spawn(PiecePawn)})
	assert.Equal(t, 0, m.Side(SeatHuman).Population)

	m.Update(0, []Command{SelectLane(4), SelectLane(0), Spawn(PiecePawn)})
	assert.Equal(t, 0, m.SelectedLane())
	assert.Equal(t, 0, m.Side(SeatHuman).Population)

	m.Update(0, []Command{SelectLane(3), Spawn(PieceBishop)})
	assert.Equal(t, 3, m.SelectedLane())
	s := m.Side(SeatHuman)
	require.Equal(t, 1, s.Population)
	assert.Equal(t, PieceBishop, s.Pieces[0].Type)
	assert.Equal(t, 3, s.Pieces[0].Lane)
	assert.Equal(t, 250.0, s.Points)
}

func TestUpdateMovesPieces(t *testing.T) {
	m := newTestMatch()
	m.Update(0.1, []Command{SelectLane(1), Spawn(PiecePawn)})

	p := m.Side(SeatHuman).Pieces[0]
	assert.InDelta(t, HumanSpawnZ-0.25, p.Position.Z, 1e-9)
}

func TestUpdateIgnoresNegativeDelta(t *testing.T) {
	m := newTestMatch()
	m.Update(-1, []Command{SelectLane(2), Spawn(PiecePawn)})

	assert.Equal(t, 0, m.SelectedLane())
	assert.Equal(t, 500.0, m.Side(SeatHuman).Points)
	assert.Equal(t, 0, m.Frame())
}

func TestUpdateFrozenAfterOutcome(t *testing.T) {
	m := newTestMatch()
	m.sides[SeatComputer].King.Health = 0
	require.Equal(t, OutcomeHumanWon, m.CheckOutcome())

	before := m.Snapshot()
	m.Update(1, []Command{SelectLane(2), Spawn(PiecePawn)})
	assert.Equal(t, before, m.Snapshot())
}

func TestKingDestroyedByTwoPiecesInOnePass(t *testing.T) {
	m := newTestMatch()
	pawn := place(t, m, SeatComputer, PiecePawn, 1, 17.5)
	bishop := place(t, m, SeatComputer, PieceBishop, 3, 17.5)
	pawn.AttackTimer, bishop.AttackTimer = 0.99, 0.99
	m.sides[SeatHuman].King.Health = 35

	m.Update(0.02, nil)
	assert.Equal(t, 0, m.Side(SeatHuman).King.Health)
	assert.Equal(t, OutcomeComputerWon, m.Outcome())
	assert.True(t, m.Finished())
}

func TestSimultaneousKingDeathsFavourHuman(t *testing.T) {
	m := newTestMatch()
	mine := place(t, m, SeatHuman, PieceQueen, 2, -17.5)
	theirs := place(t, m, SeatComputer, PieceQueen, 2, 17.5)
	mine.AttackTimer, theirs.AttackTimer = 0.99, 0.99
	m.sides[SeatHuman].King.Health = 40
	m.sides[SeatComputer].King.Health = 40

	m.Update(0.02, nil)
	assert.Equal(t, 0, m.Side(SeatHuman).King.Health)
	assert.Equal(t, 0, m.Side(SeatComputer).King.Health)
	assert.Equal(t, OutcomeHumanWon, m.Outcome(), "computer king's fall takes precedence")

	m.sides[SeatComputer].King.Health = 5
	assert.Equal(t, OutcomeHumanWon, m.CheckOutcome())
}

func TestCheckOutcomeIsIdempotent(t *testing.T) {
	m := newTestMatch()
	assert.Equal(t, OutcomeUndecided, m.CheckOutcome())

	m.sides[SeatComputer].King.Health = 0
	assert.Equal(t, OutcomeHumanWon, m.CheckOutcome())

	m.sides[SeatHuman].King.Health = 0
	for i := 0; i < 3; i++ {
		assert.Equal(t, OutcomeHumanWon, m.CheckOutcome())
	}
	winner, ok := m.Outcome().Winner()
	assert.True(t, ok)
	assert.Equal(t, SeatHuman, winner)
}

func TestReset(t *testing.T) {
	m := newTestMatch()
	m.Update(0.5, []Command{SelectLane(2), Spawn(PieceQueen)})
	m.sides[SeatHuman].King.Health = 0
	m.CheckOutcome()
	id := m.ID()

	m.Reset()
	assert.Equal(t, id, m.ID())
	assert.Equal(t, OutcomeUndecided, m.Outcome())
	assert.Equal(t, 0, m.SelectedLane())
	assert.Equal(t, 0.0, m.Elapsed())
	assert.Equal(t, 500.0, m.Side(SeatHuman).Points)
	assert.Equal(t, 2000, m.Side(SeatHuman).King.Health)
	assert.Equal(t, 0, m.Side(SeatHuman).Population)
	human := m.Side(SeatHuman)
	assert.Empty(t, human.ActivePieces())
	timer, _ := m.AITimer(SeatComputer)
	assert.Equal(t, 0.0, timer)
}

func TestWithRules(t *testing.T) {
	r := DefaultRules()
	r.StartingPoints = 1000
	r.KingHealth = 50
	m := newTestMatch(WithRules(r))

	assert.Equal(t, 1000.0, m.Side(SeatHuman).Points)
	assert.Equal(t, 50, m.Side(SeatComputer).King.MaxHealth)
	assert.Equal(t, r, m.Rules())
}

func TestSnapshotIsDetached(t *testing.T) {
	m := newTestMatch()
	snap := m.Snapshot()

	m.Update(0.1, []Command{SelectLane(1), Spawn(PiecePawn)})
	assert.Equal(t, 0, snap.Human.Population)
	assert.False(t, snap.Human.Pieces[0].Active)
	assert.Equal(t, m.ID().String(), snap.MatchID)
	assert.Equal(t, 1, m.Snapshot().Side(SeatHuman).Population)
}

func TestAutopilotMatchesAreDeterministic(t *testing.T) {
	run := func() (Outcome, int) {
		m := New(WithSeed(42), WithAutopilot())
		for i := 0; i < 60*60*20 && !m.Finished(); i++ {
			m.Update(1.0/60, nil)
		}
		return m.Outcome(), m.Frame()
	}
	o1, f1 := run()
	o2, f2 := run()
	assert.Equal(t, o1, o2)
	assert.Equal(t, f1, f2)
}

func TestRulesJSONUsesConfigKeys(t *testing.T) {
	data, err := json.Marshal(DefaultRules())
	require.NoError(t, err)

	var got map[string]float64
	require.NoError(t, json.Unmarshal(data, &got))
	assert.Equal(t, 500.0, got["startingPoints"])
	assert.Equal(t, 2000.0, got["kingHealth"])
	assert.Equal(t, 1.25, got["killBounty"])
	assert.Equal(t, 1.5, got["aiJitter"])
	assert.NotContains(t, got, "StartingPoints")
}
