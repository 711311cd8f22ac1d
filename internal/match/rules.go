package match

// Rules holds the tunable numbers of a match. DefaultRules reproduces the
// standard game; the server can override them from configuration.
type Rules struct {
	StartingPoints  float64 `json:"startingPoints"`
	KingHealth      int     `json:"kingHealth"`
	HumanIncome     float64 `json:"humanIncome"`     // points per second
	ComputerIncome  float64 `json:"computerIncome"`  // points per second
	KingRetaliation int     `json:"kingRetaliation"` // damage a piece takes each time it hits a king
	AttackInterval  float64 `json:"attackInterval"`  // seconds of engagement per attack
	KillBounty      float64 `json:"killBounty"`      // multiplier on the cost of a destroyed piece
	PieceSpeed      float64 `json:"pieceSpeed"`
	AllyGap         float64 `json:"allyGap"`    // spacing kept behind a same-lane ally
	AIInterval      float64 `json:"aiInterval"` // AI acts once its timer exceeds this
	AIJitter        float64 `json:"aiJitter"`   // AI timer restarts uniformly in [0, AIJitter]
}

// DefaultRules returns the standard rule set.
func DefaultRules() Rules {
	return Rules{
		StartingPoints:  500,
		KingHealth:      2000,
		HumanIncome:     2,
		ComputerIncome:  4,
		KingRetaliation: 9,
		AttackInterval:  1.0,
		KillBounty:      1.25,
		PieceSpeed:      2.5,
		AllyGap:         2.0,
		AIInterval:      2.5,
		AIJitter:        1.5,
	}
}
