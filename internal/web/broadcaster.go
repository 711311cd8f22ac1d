package web

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/gorilla/websocket"
	"github.com/tomz197/lanebattle/internal/logging"
)

const writeWait = 2 * time.Second

// Broadcaster pushes snapshots of a match to every registered websocket
// connection on a fixed interval.
type Broadcaster struct {
	source     SnapshotSource
	interval   time.Duration
	log        *log.Logger
	mu         sync.RWMutex
	clients    map[*websocket.Conn]*sync.Mutex // per-conn write locks
	register   chan *websocket.Conn
	unregister chan *websocket.Conn
	done       chan struct{}
}

// NewBroadcaster creates a broadcaster reading from source.
func NewBroadcaster(source SnapshotSource, interval time.Duration, logger *log.Logger) *Broadcaster {
	if logger == nil {
		logger = logging.Discard()
	}
	if interval <= 0 {
		interval = 100 * time.Millisecond
	}
	return &Broadcaster{
		source:     source,
		interval:   interval,
		log:        logging.Component(logger, "ws"),
		clients:    make(map[*websocket.Conn]*sync.Mutex),
		register:   make(chan *websocket.Conn, 16),
		unregister: make(chan *websocket.Conn, 16),
		done:       make(chan struct{}),
	}
}

// Register adds a connection. It receives the current snapshot right away.
func (b *Broadcaster) Register(conn *websocket.Conn) {
	select {
	case b.register <- conn:
	case <-b.done:
		conn.Close()
	}
}

// Unregister removes and closes a connection.
func (b *Broadcaster) Unregister(conn *websocket.Conn) {
	select {
	case b.unregister <- conn:
	case <-b.done:
	}
}

// ClientCount returns the number of connected spectators.
func (b *Broadcaster) ClientCount() int {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.clients)
}

// Run broadcasts until ctx is cancelled, then closes every connection.
func (b *Broadcaster) Run(ctx context.Context) {
	ticker := time.NewTicker(b.interval)
	defer ticker.Stop()
	defer b.closeAll()

	lastFrame, lastMatch := -1, ""
	for {
		select {
		case <-ctx.Done():
			return
		case conn := <-b.register:
			b.mu.Lock()
			b.clients[conn] = &sync.Mutex{}
			b.mu.Unlock()
			b.log.Debug("spectator joined", "remote", conn.RemoteAddr())
			if data, ok := b.encode(); ok {
				b.send(conn, data)
			}
		case conn := <-b.unregister:
			b.drop(conn)
		case <-ticker.C:
			snap := b.source.Snapshot()
			if snap == nil || (snap.Frame == lastFrame && snap.MatchID == lastMatch) {
				continue
			}
			lastFrame, lastMatch = snap.Frame, snap.MatchID
			data, err := json.Marshal(snap)
			if err != nil {
				b.log.Error("snapshot marshal error", "err", err)
				continue
			}
			b.mu.RLock()
			conns := make([]*websocket.Conn, 0, len(b.clients))
			for conn := range b.clients {
				conns = append(conns, conn)
			}
			b.mu.RUnlock()
			for _, conn := range conns {
				b.send(conn, data)
			}
		}
	}
}

func (b *Broadcaster) encode() ([]byte, bool) {
	snap := b.source.Snapshot()
	if snap == nil {
		return nil, false
	}
	data, err := json.Marshal(snap)
	if err != nil {
		b.log.Error("snapshot marshal error", "err", err)
		return nil, false
	}
	return data, true
}

// send writes one message, dropping the connection on failure.
func (b *Broadcaster) send(conn *websocket.Conn, data []byte) {
	b.mu.RLock()
	mu, ok := b.clients[conn]
	b.mu.RUnlock()
	if !ok {
		return
	}
	mu.Lock()
	_ = conn.SetWriteDeadline(time.Now().Add(writeWait))
	err := conn.WriteMessage(websocket.TextMessage, data)
	mu.Unlock()
	if err != nil {
		b.log.Debug("broadcast error", "remote", conn.RemoteAddr(), "err", err)
		b.drop(conn)
	}
}

func (b *Broadcaster) drop(conn *websocket.Conn) {
	b.mu.Lock()
	_, ok := b.clients[conn]
	delete(b.clients, conn)
	b.mu.Unlock()
	if ok {
		conn.Close()
	}
}

func (b *Broadcaster) closeAll() {
	close(b.done)
	b.mu.Lock()
	defer b.mu.Unlock()
	for conn := range b.clients {
		conn.Close()
		delete(b.clients, conn)
	}
}
