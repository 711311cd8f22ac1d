package match

// Outcome is the terminal result of a match.
type Outcome int

const (
	OutcomeUndecided Outcome = iota
	OutcomeHumanWon
	OutcomeComputerWon
)

func (o Outcome) String() string {
	switch o {
	case OutcomeHumanWon:
		return "human_won"
	case OutcomeComputerWon:
		return "computer_won"
	default:
		return "undecided"
	}
}

// MarshalText encodes the outcome by name for snapshots.
func (o Outcome) MarshalText() ([]byte, error) {
	return []byte(o.String()), nil
}

// Winner returns the winning seat; ok is false while undecided.
func (o Outcome) Winner() (seat Seat, ok bool) {
	switch o {
	case OutcomeHumanWon:
		return SeatHuman, true
	case OutcomeComputerWon:
		return SeatComputer, true
	}
	return 0, false
}

// CheckOutcome records a winner once a king has fallen. When both kings
// fall on the same frame the computer's king counts, so the human wins.
// The first decision is final; later calls never change it.
func (m *Match) CheckOutcome() Outcome {
	if m.outcome != OutcomeUndecided {
		return m.outcome
	}
	switch {
	case m.sides[SeatComputer].King.Health <= 0:
		m.outcome = OutcomeHumanWon
	case m.sides[SeatHuman].King.Health <= 0:
		m.outcome = OutcomeComputerWon
	}
	return m.outcome
}
