// Package match is the gameplay simulation: spawning economy, combat and
// movement, the computer opponent and the win check. It is deterministic
// given its random source and is driven one frame at a time by Update.
package match

import (
	"math/rand"
	"time"

	"github.com/google/uuid"
)

// CommandKind selects what a human Command does.
type CommandKind int

const (
	CommandSelectLane CommandKind = iota
	CommandSpawn
)

// Command is one human action applied at the start of a frame.
type Command struct {
	Kind  CommandKind
	Lane  int
	Piece PieceType
}

// SelectLane chooses the lane used by later Spawn commands.
func SelectLane(lane int) Command {
	return Command{Kind: CommandSelectLane, Lane: lane}
}

// Spawn buys a piece in the selected lane.
func Spawn(t PieceType) Command {
	return Command{Kind: CommandSpawn, Piece: t}
}

// Match is a single game between the human seat and the computer seat.
// It is not safe for concurrent use; renderers should read Snapshots.
type Match struct {
	id    uuid.UUID
	rules Rules
	rng   RandomSource

	sides        [2]Side
	ai           [2]*Policy
	autopilot    bool
	selectedLane int
	outcome      Outcome
	elapsed      float64
	frame        int
}

// Option configures a Match.
type Option func(*Match)

// WithRules overrides DefaultRules.
func WithRules(r Rules) Option {
	return func(m *Match) { m.rules = r }
}

// WithRand sets the random source used by the computer opponent.
func WithRand(r RandomSource) Option {
	return func(m *Match) { m.rng = r }
}

// WithSeed seeds a private random source.
func WithSeed(seed int64) Option {
	return func(m *Match) { m.rng = rand.New(rand.NewSource(seed)) }
}

// WithAutopilot lets the AI policy drive the human seat too.
func WithAutopilot() Option {
	return func(m *Match) { m.autopilot = true }
}

// WithID fixes the match identifier.
func WithID(id uuid.UUID) Option {
	return func(m *Match) { m.id = id }
}

// New creates a match in its initial state.
func New(opts ...Option) *Match {
	m := &Match{rules: DefaultRules()}
	for _, opt := range opts {
		opt(m)
	}
	if m.id == uuid.Nil {
		m.id = uuid.New()
	}
	if m.rng == nil {
		m.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	m.Reset()
	return m
}

// Reset restores the initial state: starting points, full kings, empty
// unit pools, no lane selected and an undecided outcome.
func (m *Match) Reset() {
	m.sides[SeatHuman] = newSide(SeatHuman, m.rules)
	m.sides[SeatComputer] = newSide(SeatComputer, m.rules)
	m.ai[SeatComputer] = &Policy{}
	m.ai[SeatHuman] = nil
	if m.autopilot {
		m.ai[SeatHuman] = &Policy{}
	}
	m.selectedLane = 0
	m.outcome = OutcomeUndecided
	m.elapsed = 0
	m.frame = 0
}

// Update advances the match by dt seconds after applying cmds. It does
// nothing once the match is decided or when dt is negative.
func (m *Match) Update(dt float64, cmds []Command) {
	if m.outcome != OutcomeUndecided || dt < 0 {
		return
	}

	m.apply(cmds)
	for _, seat := range []Seat{SeatHuman, SeatComputer} {
		if p := m.ai[seat]; p != nil {
			p.Step(m, seat, dt)
		}
	}

	m.sides[SeatHuman].Points += m.rules.HumanIncome * dt
	m.sides[SeatComputer].Points += m.rules.ComputerIncome * dt

	m.resolve(dt)
	m.CheckOutcome()

	m.elapsed += dt
	m.frame++
}

func (m *Match) apply(cmds []Command) {
	for _, c := range cmds {
		switch c.Kind {
		case CommandSelectLane:
			if ValidLane(c.Lane) {
				m.selectedLane = c.Lane
			}
		case CommandSpawn:
			if m.selectedLane != 0 {
				m.TrySpawn(SeatHuman, c.Piece, m.selectedLane)
			}
		}
	}
}

// ID returns the match identifier.
func (m *Match) ID() uuid.UUID { return m.id }

// Rules returns the rule set in effect.
func (m *Match) Rules() Rules { return m.rules }

// Side returns a copy of the given seat's state, the zero Side for an
// unknown seat.
func (m *Match) Side(seat Seat) Side {
	if !seat.Valid() {
		return Side{}
	}
	return m.sides[seat]
}

// Outcome returns the current result.
func (m *Match) Outcome() Outcome { return m.outcome }

// Finished reports whether a winner has been decided.
func (m *Match) Finished() bool { return m.outcome != OutcomeUndecided }

// SelectedLane returns the human's selected lane, 0 when none.
func (m *Match) SelectedLane() int { return m.selectedLane }

// Elapsed returns simulated seconds since the last Reset.
func (m *Match) Elapsed() float64 { return m.elapsed }

// Frame returns the number of updates since the last Reset.
func (m *Match) Frame() int { return m.frame }

// AITimer returns the policy timer of an AI-driven seat.
func (m *Match) AITimer(seat Seat) (float64, bool) {
	if !seat.Valid() {
		return 0, false
	}
	if p := m.ai[seat]; p != nil {
		return p.Timer(), true
	}
	return 0, false
}
