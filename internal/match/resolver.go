package match

import "github.com/tomz197/lanebattle/internal/physics"

// resolve advances combat and movement by dt: human pieces first, then
// computer pieces, each in slot order.
func (m *Match) resolve(dt float64) {
	for _, seat := range []Seat{SeatHuman, SeatComputer} {
		own := &m.sides[seat]
		opp := &m.sides[seat.Opponent()]
		for i := range own.Pieces {
			if own.Pieces[i].Active {
				m.resolvePiece(own, opp, i, dt)
			}
		}
	}
}

func (m *Match) resolvePiece(own, opp *Side, i int, dt float64) {
	p := &own.Pieces[i]
	hitbox := p.Hitbox()
	blocked := false

	if physics.BoxesOverlap(hitbox, opp.King.Box) {
		blocked = true
		if p.charge(dt, m.rules.AttackInterval) {
			opp.King.takeDamage(p.Damage)
			p.Health -= m.rules.KingRetaliation
		}
	} else if target := opp.engagedWith(p, hitbox); target != nil {
		blocked = true
		if p.charge(dt, m.rules.AttackInterval) {
			target.Health -= p.Damage
		}
	}

	if !blocked {
		blocked = own.blockedByAlly(i, m.rules.AllyGap)
	}
	if !blocked {
		p.Position.Z += own.Direction() * p.Speed * dt
	}

	if p.Health <= 0 {
		m.capture(own, opp, i)
	}
}

// engagedWith returns the first active piece of s in p's lane whose hitbox
// overlaps hitbox, or nil.
func (s *Side) engagedWith(p *Piece, hitbox physics.Box) *Piece {
	for j := range s.Pieces {
		q := &s.Pieces[j]
		if !q.Active || q.Lane != p.Lane {
			continue
		}
		if physics.BoxesOverlap(hitbox, q.Hitbox()) {
			return q
		}
	}
	return nil
}

// blockedByAlly reports whether another active piece of s in the same lane
// sits ahead of slot i, along s's direction of travel, closer than gap.
func (s *Side) blockedByAlly(i int, gap float64) bool {
	p := &s.Pieces[i]
	dir := s.Direction()
	for j := range s.Pieces {
		q := &s.Pieces[j]
		if j == i || !q.Active || q.Lane != p.Lane {
			continue
		}
		ahead := (q.Position.Z-p.Position.Z)*dir > 0
		if ahead && physics.Within(p.Position, q.Position, gap) {
			return true
		}
	}
	return false
}

// capture removes a destroyed piece and pays the bounty to the opponent.
func (m *Match) capture(own, opp *Side, i int) {
	p := &own.Pieces[i]
	p.Active = false
	own.Population--
	opp.Points += float64(p.Cost) * m.rules.KillBounty
	opp.Captured[p.Type]++
}
