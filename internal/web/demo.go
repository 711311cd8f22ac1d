// Package web serves the landing page and lets browsers watch a
// computer-vs-computer demo match.
package web

import (
	"context"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/loop/server"
	"github.com/tomz197/lanebattle/internal/match"
)

// SnapshotSource provides the latest state of a match.
type SnapshotSource interface {
	Snapshot() *match.Snapshot
}

// DemoOptions configures a Demo.
type DemoOptions struct {
	Rules        match.Rules
	Seed         int64
	RestartDelay time.Duration // pause on a finished match before the next one
	Logger       *log.Logger
}

// Demo keeps an autopilot match running on its own game server, starting a
// new one shortly after each match ends.
type Demo struct {
	srv    *server.Server
	handle *server.ClientHandle
	delay  time.Duration
	log    *log.Logger
}

// NewDemo creates a demo. Nothing runs until Run is called.
func NewDemo(opts DemoOptions) *Demo {
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}
	delay := opts.RestartDelay
	if delay <= 0 {
		delay = 5 * time.Second
	}
	srv := server.NewServer(server.Options{
		Rules:     opts.Rules,
		Autopilot: true,
		Seed:      opts.Seed,
		Logger:    logger,
	})
	return &Demo{
		srv:    srv,
		handle: srv.RegisterClient("demo"),
		delay:  delay,
		log:    logging.Component(logger, "demo"),
	}
}

var _ SnapshotSource = (*Demo)(nil)

// Snapshot returns the demo match's latest snapshot, nil before the first
// tick.
func (d *Demo) Snapshot() *match.Snapshot {
	return d.srv.GetSnapshot(d.handle.ID)
}

// Run plays demo matches until ctx is cancelled.
func (d *Demo) Run(ctx context.Context) {
	go d.srv.Run(ctx)
	d.srv.StartMatch(d.handle.ID)

	var restart <-chan time.Time
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-d.handle.EventsCh:
			if !ok {
				return
			}
			if ev.Type == server.EventMatchOver {
				d.log.Info("demo match over", "match", ev.MatchID, "outcome", ev.Outcome)
				restart = time.After(d.delay)
			}
		case <-restart:
			restart = nil
			d.srv.StartMatch(d.handle.ID)
		}
	}
}
