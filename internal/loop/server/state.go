package server

import (
	"sync/atomic"

	"github.com/tomz197/lanebattle/internal/match"
)

// ClientHandle is a client's connection to the server. The match and the
// pending command queue belong to the server goroutine; clients read the
// published snapshot.
type ClientHandle struct {
	ID       int
	Username string
	EventsCh chan ClientEvent

	match    *match.Match
	pending  []match.Command
	reported bool
	snapshot atomic.Pointer[match.Snapshot]
}

// ClientCommands carries one batch of commands from a client.
type ClientCommands struct {
	ClientID int
	Commands []match.Command
}

// ClientEvent is sent from the server to a client.
type ClientEvent struct {
	Type    ClientEventType
	MatchID string
	Outcome match.Outcome
}

// ClientEventType identifies the type of client event.
type ClientEventType int

const (
	EventMatchOver ClientEventType = iota
	EventServerShutdown
)

func (t ClientEventType) String() string {
	switch t {
	case EventMatchOver:
		return "match_over"
	case EventServerShutdown:
		return "server_shutdown"
	default:
		return "unknown"
	}
}

// notify delivers an event without blocking the tick loop.
func (h *ClientHandle) notify(ev ClientEvent) bool {
	select {
	case h.EventsCh <- ev:
		return true
	default:
		return false
	}
}
