// Package config centralizes the presentation and timing constants of the
// terminal front-end.
package config

import "time"

// View resolution - the visible viewport in logical units.
// Actual rendering scales to fit terminal size.
const (
	ViewWidth  = 120 // Logical viewport width
	ViewHeight = 80  // Logical viewport height (in sub-pixels, so 40 terminal rows)
)

// Max render resolution. Larger terminals get a centred, framed area.
const (
	MaxTermWidth  = 160
	MaxTermHeight = 50
)

// Board placement inside the view, in logical units. The board spans the
// match's lanes across and both kings top to bottom.
const (
	BoardLeft   = 36.0
	BoardTop    = 6.0
	BoardWidth  = 48.0
	BoardHeight = 70.0

	BoardMinX = -12.0
	BoardMaxX = 12.0
	BoardMinZ = -23.0
	BoardMaxZ = 23.0
)

// Player
const (
	MaxUsernameLength = 16 // Maximum display length for player usernames
)

// Match over
const (
	EndingDelaySeconds = 1.0 // Seconds before the ending screen accepts ENTER
)

// Shutdown
const (
	ShutdownDisplaySeconds = 10.0 // Seconds to show shutdown message before auto-disconnect
)

// Inactivity
const (
	InactivityWarnUser       = 90  // Seconds
	InactivityDisconnectUser = 120 // Seconds
)

// Client rendering
const (
	ClientTargetFPS       = 60
	ClientTargetFrameTime = time.Second / ClientTargetFPS
)

// Server tick rate
const (
	ServerTickRate = 60
	ServerTickTime = time.Second / ServerTickRate
	MaxTickDelta   = 0.1 // Seconds; longer stalls are simulated as this much
)
