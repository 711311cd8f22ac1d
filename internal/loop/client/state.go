package client

import (
	"time"

	"github.com/tomz197/lanebattle/internal/input"
	"github.com/tomz197/lanebattle/internal/match"
)

// GameState represents the current screen for a client.
type GameState int

const (
	GameStateStart    GameState = iota // Title screen
	GameStatePlaying                   // Match in progress
	GameStateEnding                    // Victory or defeat
	GameStateShutdown                  // Server is shutting down
)

func (g GameState) String() string {
	switch g {
	case GameStateStart:
		return "title"
	case GameStatePlaying:
		return "playing"
	case GameStateEnding:
		return "ending"
	case GameStateShutdown:
		return "shutdown"
	default:
		return "unknown"
	}
}

// ClientState holds per-connection presentation state. The match itself
// lives on the server.
type ClientState struct {
	Input        input.Input
	GameState    GameState
	Outcome      match.Outcome
	ShowHitboxes bool
	ShowHelp     bool
	Running      bool

	delta         time.Duration
	shutdownTimer float64
	endingTimer   float64
	staleMatchID  string // snapshot of the previous match, ignored until the new one appears
	isInactive    bool
	prevGameState GameState
	wasInactive   bool
}

// NewClientState creates a client state on the title screen.
func NewClientState() *ClientState {
	return &ClientState{
		GameState:     GameStateStart,
		Running:       true,
		prevGameState: -1,
	}
}
