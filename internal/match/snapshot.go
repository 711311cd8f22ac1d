package match

// Snapshot is an immutable copy of a match for renderers and spectators.
type Snapshot struct {
	MatchID      string  `json:"matchId"`
	Human        Side    `json:"human"`
	Computer     Side    `json:"computer"`
	SelectedLane int     `json:"selectedLane"`
	Outcome      Outcome `json:"outcome"`
	Elapsed      float64 `json:"elapsed"`
	Frame        int     `json:"frame"`
}

// Snapshot copies the current state. Side holds its pieces in a fixed
// array, so the copy shares nothing with the match.
func (m *Match) Snapshot() *Snapshot {
	return &Snapshot{
		MatchID:      m.id.String(),
		Human:        m.sides[SeatHuman],
		Computer:     m.sides[SeatComputer],
		SelectedLane: m.selectedLane,
		Outcome:      m.outcome,
		Elapsed:      m.elapsed,
		Frame:        m.frame,
	}
}

// Side returns the snapshot's copy of a seat.
func (s *Snapshot) Side(seat Seat) *Side {
	if seat == SeatComputer {
		return &s.Computer
	}
	return &s.Human
}

// Finished reports whether the snapshot was taken after the match ended.
func (s *Snapshot) Finished() bool {
	return s.Outcome != OutcomeUndecided
}
