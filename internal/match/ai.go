package match

import "math"

// RandomSource supplies uniform integers in [0, n). *rand.Rand satisfies it.
type RandomSource interface {
	Intn(n int) int
}

// Policy is the computer opponent's spawn decision rule. Its only state is
// the countdown timer.
type Policy struct {
	timer float64
}

// Timer returns the seconds accumulated since the policy last acted.
func (p *Policy) Timer() float64 {
	return p.timer
}

// Step advances the timer by dt and, once it exceeds the interval, restarts
// it at a random offset and tries to spawn a random affordable piece in a
// random lane. It reports whether a piece was spawned.
func (p *Policy) Step(m *Match, seat Seat, dt float64) bool {
	if !seat.Valid() {
		return false
	}
	p.timer += dt
	if p.timer <= m.rules.AIInterval {
		return false
	}
	steps := int(math.Round(m.rules.AIJitter * 100))
	p.timer = float64(m.rng.Intn(steps+1)) / 100

	side := &m.sides[seat]
	affordable := side.Affordable()
	if len(affordable) == 0 {
		return false
	}
	lane := m.rng.Intn(LaneCount) + 1
	t := affordable[m.rng.Intn(len(affordable))]
	return m.TrySpawn(seat, t, lane)
}
