package client

import (
	"bufio"
	"bytes"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tomz197/lanebattle/internal/input"
	"github.com/tomz197/lanebattle/internal/loop/config"
	"github.com/tomz197/lanebattle/internal/loop/server"
	"github.com/tomz197/lanebattle/internal/match"
)

// fakeServer records what a client asks for and serves a fixed snapshot.
type fakeServer struct {
	mu           sync.Mutex
	handle       *server.ClientHandle
	snap         *match.Snapshot
	sent         [][]match.Command
	starts       int
	unregistered []int
}

func (f *fakeServer) RegisterClient(username string) *server.ClientHandle {
	f.handle = &server.ClientHandle{ID: 7, Username: username, EventsCh: make(chan server.ClientEvent, 4)}
	return f.handle
}

func (f *fakeServer) UnregisterClient(clientID int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unregistered = append(f.unregistered, clientID)
}

func (f *fakeServer) SendCommands(_ int, cmds []match.Command) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.sent = append(f.sent, cmds)
}

func (f *fakeServer) StartMatch(int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.starts++
}

func (f *fakeServer) GetSnapshot(int) *match.Snapshot {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.snap
}

func (f *fakeServer) setSnapshot(s *match.Snapshot) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.snap = s
}

func newTestClient(t *testing.T, fs *fakeServer) (*Client, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{
		Username:     "tester",
		TermSizeFunc: func() (int, int, error) { return 140, 45, nil },
	})
	return c, &out
}

func press(c *Client, actions ...input.Action) {
	c.state.Input = input.Input{Actions: actions, Pressed: []byte{0}}
}

func TestClampTermSize(t *testing.T) {
	w, h, col, row := clampTermSize(200, 60)
	assert.Equal(t, config.MaxTermWidth, w)
	assert.Equal(t, config.MaxTermHeight, h)
	assert.Equal(t, (200-config.MaxTermWidth)/2, col)
	assert.Equal(t, (60-config.MaxTermHeight)/2, row)

	w, h, col, row = clampTermSize(80, 24)
	assert.Equal(t, 80, w)
	assert.Equal(t, 24, h)
	assert.Zero(t, col)
	assert.Zero(t, row)
}

func TestStepLane(t *testing.T) {
	assert.Equal(t, 2, stepLane(0, true))
	assert.Equal(t, 2, stepLane(0, false))
	assert.Equal(t, 3, stepLane(2, true))
	assert.Equal(t, 3, stepLane(3, true))
	assert.Equal(t, 1, stepLane(2, false))
	assert.Equal(t, 1, stepLane(1, false))
}

func TestSelectedLaneFollowsQueuedCommands(t *testing.T) {
	snap := &match.Snapshot{SelectedLane: 1}
	assert.Equal(t, 1, selectedLane(snap, nil))
	assert.Equal(t, 3, selectedLane(snap, []match.Command{match.SelectLane(3), match.Spawn(match.PiecePawn)}))
	assert.Equal(t, 0, selectedLane(nil, nil))
}

func TestNewClientTruncatesUsername(t *testing.T) {
	fs := &fakeServer{}
	var out bytes.Buffer
	c := NewClient(fs, bufio.NewReader(strings.NewReader("")), &out, ClientOptions{
		Username:     strings.Repeat("x", config.MaxUsernameLength+5),
		TermSizeFunc: func() (int, int, error) { return 100, 40, nil },
	})
	assert.Len(t, c.username, config.MaxUsernameLength)
	assert.Equal(t, c.username, fs.handle.Username)
	assert.Equal(t, GameStateStart, c.state.GameState)
}

func TestConfirmStartsMatch(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)

	old := match.New(match.WithSeed(1)).Snapshot()
	fs.setSnapshot(old)

	press(c, input.ActionConfirm)
	c.updateStartState()

	assert.Equal(t, GameStatePlaying, c.state.GameState)
	assert.Equal(t, 1, fs.starts)
	// The previous match's snapshot is not shown as the new match.
	assert.Nil(t, c.currentSnapshot())

	fresh := match.New(match.WithSeed(2)).Snapshot()
	fs.setSnapshot(fresh)
	assert.Same(t, fresh, c.currentSnapshot())
}

func TestPlayingTranslatesActionsToCommands(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	c.state.GameState = GameStatePlaying
	fs.setSnapshot(match.New(match.WithSeed(1)).Snapshot())

	press(c, input.ActionLane3, input.ActionSpawnKnight, input.ActionLaneLeft, input.ActionToggleHitboxes, input.ActionToggleHelp)
	c.updatePlayingState()

	require.Len(t, fs.sent, 1)
	assert.Equal(t, []match.Command{
		match.SelectLane(3),
		match.Spawn(match.PieceKnight),
		match.SelectLane(2),
	}, fs.sent[0])
	assert.True(t, c.state.ShowHitboxes)
	assert.True(t, c.state.ShowHelp)
	assert.Equal(t, GameStatePlaying, c.state.GameState)
}

func TestPlayingWithoutSnapshotSendsNothing(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	c.state.GameState = GameStatePlaying

	press(c, input.ActionLane1)
	c.updatePlayingState()
	assert.Empty(t, fs.sent)
}

func TestFinishedSnapshotEndsMatch(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	c.state.GameState = GameStatePlaying

	snap := match.New(match.WithSeed(1)).Snapshot()
	snap.Outcome = match.OutcomeHumanWon
	fs.setSnapshot(snap)

	press(c)
	c.updatePlayingState()
	assert.Equal(t, GameStateEnding, c.state.GameState)
	assert.Equal(t, match.OutcomeHumanWon, c.state.Outcome)
}

func TestMatchOverEventIgnoresStaleMatch(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	c.state.GameState = GameStatePlaying
	c.state.staleMatchID = "old"

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventMatchOver, MatchID: "old", Outcome: match.OutcomeComputerWon}
	c.processServerEvents()
	assert.Equal(t, GameStatePlaying, c.state.GameState)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventMatchOver, MatchID: "new", Outcome: match.OutcomeComputerWon}
	c.processServerEvents()
	assert.Equal(t, GameStateEnding, c.state.GameState)
	assert.Equal(t, match.OutcomeComputerWon, c.state.Outcome)
}

func TestEndingWaitsBeforeReturningToTitle(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	c.endMatch(match.OutcomeHumanWon)

	press(c, input.ActionConfirm)
	c.state.delta = 100 * time.Millisecond
	c.updateEndingState()
	assert.Equal(t, GameStateEnding, c.state.GameState)

	c.state.endingTimer = 0
	c.updateEndingState()
	assert.Equal(t, GameStateStart, c.state.GameState)
}

func TestShutdownEventCountsDown(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)

	fs.handle.EventsCh <- server.ClientEvent{Type: server.EventServerShutdown}
	c.processServerEvents()
	require.Equal(t, GameStateShutdown, c.state.GameState)

	c.state.delta = time.Duration(config.ShutdownDisplaySeconds+1) * time.Second
	c.updateShutdownState()
	assert.False(t, c.state.Running)
}

func TestClosedEventsStopClient(t *testing.T) {
	fs := &fakeServer{}
	c, _ := newTestClient(t, fs)
	close(fs.handle.EventsCh)
	c.processServerEvents()
	assert.False(t, c.state.Running)
}

func TestDrawFrameScreens(t *testing.T) {
	fs := &fakeServer{}
	c, out := newTestClient(t, fs)

	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "Controls")

	c.state.GameState = GameStatePlaying
	m := match.New(match.WithSeed(1))
	m.Update(0, []match.Command{match.SelectLane(2), match.Spawn(match.PiecePawn)})
	fs.setSnapshot(m.Snapshot())
	out.Reset()
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "KING")
	assert.Contains(t, out.String(), "Points")
	assert.Contains(t, out.String(), "Pawn")

	c.endMatch(match.OutcomeHumanWon)
	out.Reset()
	require.NoError(t, c.drawFrame())
	assert.Contains(t, out.String(), "The enemy King has fallen!")
}
