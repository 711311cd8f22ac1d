// Package server hosts one match per connected client and advances all of
// them from a single ticking goroutine.
package server

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/loop/config"
	"github.com/tomz197/lanebattle/internal/match"
)

// GameServer is the interface clients use to communicate with the game server.
type GameServer interface {
	RegisterClient(username string) *ClientHandle
	UnregisterClient(clientID int)
	SendCommands(clientID int, cmds []match.Command)
	StartMatch(clientID int)
	GetSnapshot(clientID int) *match.Snapshot
}

// Options configures a Server.
type Options struct {
	Rules     match.Rules
	Autopilot bool  // the AI also plays the human seat
	Seed      int64 // 0 picks a time-based seed
	Logger    *log.Logger
}

// Server owns every client's match and publishes snapshots of them.
type Server struct {
	opts         Options
	log          *log.Logger
	rng          *rand.Rand
	clients      map[int]*ClientHandle
	nextClientID int
	commandCh    chan ClientCommands
	registerCh   chan *ClientHandle
	unregisterCh chan int
	startCh      chan int
	mu           sync.RWMutex
	tick         atomic.Int64
}

var _ GameServer = (*Server)(nil)

// NewServer creates a game server. Zero-valued options fall back to the
// default rules and a discarding logger.
func NewServer(opts Options) *Server {
	if opts.Rules == (match.Rules{}) {
		opts.Rules = match.DefaultRules()
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	seed := opts.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &Server{
		opts:         opts,
		log:          logging.Component(logger, "server"),
		rng:          rand.New(rand.NewSource(seed)),
		clients:      make(map[int]*ClientHandle),
		nextClientID: 1,
		commandCh:    make(chan ClientCommands, 256),
		registerCh:   make(chan *ClientHandle, 16),
		unregisterCh: make(chan int, 16),
		startCh:      make(chan int, 16),
	}
}

// Run ticks the server until ctx is cancelled.
func (s *Server) Run(ctx context.Context) {
	s.log.Info("game server started", "tickRate", config.ServerTickRate)
	lastTime := time.Now()

	for {
		select {
		case <-ctx.Done():
			s.log.Info("game server stopped", "ticks", s.tick.Load())
			return
		default:
		}

		frameStart := time.Now()
		dt := frameStart.Sub(lastTime).Seconds()
		lastTime = frameStart
		if dt > config.MaxTickDelta {
			dt = config.MaxTickDelta
		}

		s.step(dt)

		elapsed := time.Since(frameStart)
		if elapsed < config.ServerTickTime {
			time.Sleep(config.ServerTickTime - elapsed)
		}
	}
}

// step runs one server tick of dt seconds.
func (s *Server) step(dt float64) {
	s.processRegistrations()
	s.processStarts()
	s.collectCommands()
	s.updateMatches(dt)
	s.tick.Add(1)
}

// Shutdown notifies every client and waits, up to timeout, for them to
// disconnect. The caller should cancel the server context afterwards.
func (s *Server) Shutdown(timeout time.Duration) {
	s.mu.RLock()
	for _, h := range s.clients {
		h.notify(ClientEvent{Type: EventServerShutdown})
	}
	remaining := len(s.clients)
	s.mu.RUnlock()
	s.log.Info("shutdown requested", "clients", remaining, "timeout", timeout)

	deadline := time.After(timeout)
	ticker := time.NewTicker(200 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case <-deadline:
			s.log.Warn("shutdown timed out", "clients", s.ClientCount())
			return
		case <-ticker.C:
			if s.ClientCount() == 0 {
				return
			}
		}
	}
}

// ClientCount returns the number of registered clients.
func (s *Server) ClientCount() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.clients)
}

// RegisterClient registers a new client and returns its handle.
func (s *Server) RegisterClient(username string) *ClientHandle {
	s.mu.Lock()
	id := s.nextClientID
	s.nextClientID++
	s.mu.Unlock()

	h := &ClientHandle{
		ID:       id,
		Username: username,
		EventsCh: make(chan ClientEvent, 16),
	}
	s.registerCh <- h
	return h
}

// UnregisterClient removes a client and drops its match.
func (s *Server) UnregisterClient(clientID int) {
	s.unregisterCh <- clientID
}

// StartMatch begins a fresh match for the client, replacing any previous one.
func (s *Server) StartMatch(clientID int) {
	s.startCh <- clientID
}

// SendCommands queues commands for the client's next tick. Commands are
// dropped when the queue is full.
func (s *Server) SendCommands(clientID int, cmds []match.Command) {
	if len(cmds) == 0 {
		return
	}
	select {
	case s.commandCh <- ClientCommands{ClientID: clientID, Commands: cmds}:
	default:
		s.log.Debug("command queue full", "client", clientID, "dropped", len(cmds))
	}
}

// GetSnapshot returns the latest snapshot of the client's match, or nil
// before its first match has ticked.
func (s *Server) GetSnapshot(clientID int) *match.Snapshot {
	s.mu.RLock()
	h, ok := s.clients[clientID]
	s.mu.RUnlock()
	if !ok {
		return nil
	}
	return h.snapshot.Load()
}

func (s *Server) processRegistrations() {
	for {
		select {
		case h := <-s.registerCh:
			s.mu.Lock()
			s.clients[h.ID] = h
			s.mu.Unlock()
			s.log.Info("client registered", "client", h.ID, "user", h.Username)
		case id := <-s.unregisterCh:
			s.mu.Lock()
			if h, ok := s.clients[id]; ok {
				close(h.EventsCh)
				delete(s.clients, id)
				s.log.Info("client unregistered", "client", id, "user", h.Username)
			}
			s.mu.Unlock()
		default:
			return
		}
	}
}

func (s *Server) processStarts() {
	for {
		select {
		case id := <-s.startCh:
			s.mu.RLock()
			h, ok := s.clients[id]
			s.mu.RUnlock()
			if !ok {
				continue
			}
			h.match = s.newMatch()
			h.pending = h.pending[:0]
			h.reported = false
			h.snapshot.Store(h.match.Snapshot())
			s.log.Info("match started", "client", id, "match", h.match.ID())
		default:
			return
		}
	}
}

func (s *Server) newMatch() *match.Match {
	opts := []match.Option{
		match.WithRules(s.opts.Rules),
		match.WithSeed(s.rng.Int63()),
	}
	if s.opts.Autopilot {
		opts = append(opts, match.WithAutopilot())
	}
	return match.New(opts...)
}

func (s *Server) collectCommands() {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for {
		select {
		case cc := <-s.commandCh:
			if h, ok := s.clients[cc.ClientID]; ok && h.match != nil && !h.reported {
				h.pending = append(h.pending, cc.Commands...)
			}
		default:
			return
		}
	}
}

func (s *Server) updateMatches(dt float64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	for _, h := range s.clients {
		if h.match == nil || h.reported {
			continue
		}
		h.match.Update(dt, h.pending)
		h.pending = h.pending[:0]
		h.snapshot.Store(h.match.Snapshot())

		if h.match.Finished() {
			h.reported = true
			outcome := h.match.Outcome()
			s.log.Info("match over",
				"client", h.ID,
				"match", h.match.ID(),
				"outcome", outcome,
				"elapsed", h.match.Elapsed(),
			)
			h.notify(ClientEvent{Type: EventMatchOver, MatchID: h.match.ID().String(), Outcome: outcome})
		}
	}
}
