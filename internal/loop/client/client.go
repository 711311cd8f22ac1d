package client

import (
	"bufio"
	"io"
	"time"

	"github.com/charmbracelet/log"
	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/input"
	"github.com/tomz197/lanebattle/internal/logging"
	"github.com/tomz197/lanebattle/internal/loop/config"
	"github.com/tomz197/lanebattle/internal/loop/server"
	"github.com/tomz197/lanebattle/internal/match"
	"github.com/tomz197/lanebattle/internal/object"
)

// Client handles rendering and input for a single connection.
type Client struct {
	server       server.GameServer
	handle       *server.ClientHandle
	state        *ClientState
	canvas       *draw.Canvas
	chunkWriter  *draw.ChunkWriter
	board        object.Board
	writer       io.Writer
	inputStream  *input.Stream
	lastInput    time.Time
	username     string
	termSizeFunc draw.TermSizeFunc
	log          *log.Logger
}

// ClientOptions configures the client.
type ClientOptions struct {
	TermSizeFunc draw.TermSizeFunc
	Username     string
	Logger       *log.Logger
}

// NewClient creates a new client connected to the given server.
func NewClient(gs server.GameServer, r *bufio.Reader, w io.Writer, opts ClientOptions) *Client {
	termSizeFunc := opts.TermSizeFunc
	if termSizeFunc == nil {
		termSizeFunc = draw.DefaultTermSizeFunc
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.Discard()
	}

	termWidth, termHeight, _ := termSizeFunc()
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)
	canvas := draw.NewScaledCanvas(renderWidth, renderHeight, config.ViewWidth, config.ViewHeight)
	canvas.SetOffset(offsetCol, offsetRow)
	chunkWriter := draw.NewChunkWriter(w, offsetCol, offsetRow)
	chunkWriter.TrackDirty(canvas)

	username := opts.Username
	if len(username) > config.MaxUsernameLength {
		username = username[:config.MaxUsernameLength]
	}
	handle := gs.RegisterClient(username)

	return &Client{
		server:      gs,
		handle:      handle,
		state:       NewClientState(),
		canvas:      canvas,
		chunkWriter: chunkWriter,
		board: object.Board{
			Left: config.BoardLeft, Top: config.BoardTop,
			Width: config.BoardWidth, Height: config.BoardHeight,
			MinX: config.BoardMinX, MaxX: config.BoardMaxX,
			MinZ: config.BoardMinZ, MaxZ: config.BoardMaxZ,
		},
		writer:       w,
		lastInput:    time.Now(),
		inputStream:  input.StartStream(r),
		username:     username,
		termSizeFunc: termSizeFunc,
		log:          logger.With("client", handle.ID, "user", username),
	}
}

// Run starts the client loop. Blocks until the client quits, idles out or
// the server goes away.
func (c *Client) Run() error {
	draw.HideCursor(c.writer)
	defer draw.ShowCursor(c.writer)
	draw.ClearScreen(c.writer)

	lastTime := time.Now()

	for c.state.Running {
		frameStart := time.Now()
		c.state.delta = frameStart.Sub(lastTime)
		lastTime = frameStart

		c.frame()

		if err := c.drawFrame(); err != nil {
			c.server.UnregisterClient(c.handle.ID)
			return err
		}

		elapsed := time.Since(frameStart)
		if elapsed < config.ClientTargetFrameTime {
			time.Sleep(config.ClientTargetFrameTime - elapsed)
		}
	}

	c.server.UnregisterClient(c.handle.ID)
	draw.ClearScreen(c.writer)
	return nil
}

// frame runs the update half of one client frame.
func (c *Client) frame() {
	c.processInput()
	c.processServerEvents()
	c.updateScreen()

	switch c.state.GameState {
	case GameStateStart:
		c.updateStartState()
	case GameStatePlaying:
		c.updatePlayingState()
	case GameStateEnding:
		c.updateEndingState()
	case GameStateShutdown:
		c.updateShutdownState()
	}
}

// processInput reads input and tracks inactivity.
func (c *Client) processInput() {
	c.state.Input = input.ReadInput(c.inputStream)

	if len(c.state.Input.Pressed) > 0 {
		c.lastInput = time.Now()
		c.state.isInactive = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityDisconnectUser {
		c.log.Info("disconnecting inactive client")
		c.state.Running = false
	} else if time.Since(c.lastInput).Seconds() > config.InactivityWarnUser {
		c.state.isInactive = true
	}

	if c.state.Input.Quit || c.inputStream.Closed() {
		c.state.Running = false
	}
}

// processServerEvents handles events from the server.
func (c *Client) processServerEvents() {
	for {
		select {
		case event, ok := <-c.handle.EventsCh:
			if !ok {
				c.state.Running = false
				return
			}
			switch event.Type {
			case server.EventMatchOver:
				if c.state.GameState == GameStatePlaying && event.MatchID != c.state.staleMatchID {
					c.endMatch(event.Outcome)
				}
			case server.EventServerShutdown:
				c.state.GameState = GameStateShutdown
				c.state.shutdownTimer = config.ShutdownDisplaySeconds
			}
		default:
			return
		}
	}
}

// updateScreen handles terminal resize, clamping to max render resolution.
func (c *Client) updateScreen() {
	termWidth, termHeight, err := c.termSizeFunc()
	if err != nil {
		return
	}
	renderWidth, renderHeight, offsetCol, offsetRow := clampTermSize(termWidth, termHeight)

	if renderWidth != c.canvas.TerminalWidth() || renderHeight != c.canvas.TerminalHeight() ||
		offsetCol != c.canvas.OffsetCol() || offsetRow != c.canvas.OffsetRow() {
		draw.ClearScreen(c.writer)
		c.canvas.ForceRedraw()
	}

	c.canvas.Resize(renderWidth, renderHeight)
	c.canvas.SetOffset(offsetCol, offsetRow)
	c.chunkWriter.SetOffset(offsetCol, offsetRow)
}

// clampTermSize clamps terminal dimensions to the max render resolution and computes
// the centering offset for the render area.
func clampTermSize(termWidth, termHeight int) (renderWidth, renderHeight, offsetCol, offsetRow int) {
	renderWidth = min(termWidth, config.MaxTermWidth)
	renderHeight = min(termHeight, config.MaxTermHeight)
	offsetCol = (termWidth - renderWidth) / 2
	offsetRow = (termHeight - renderHeight) / 2
	return
}

func (c *Client) updateStartState() {
	if c.state.Input.Has(input.ActionConfirm) {
		c.startGame()
	}
}

// startGame asks the server for a fresh match and switches to gameplay.
func (c *Client) startGame() {
	input.ResetKeyInput(c.inputStream)

	c.state.staleMatchID = ""
	if snap := c.server.GetSnapshot(c.handle.ID); snap != nil {
		c.state.staleMatchID = snap.MatchID
	}
	c.server.StartMatch(c.handle.ID)
	c.state.Outcome = match.OutcomeUndecided
	c.state.ShowHelp = false
	c.state.GameState = GameStatePlaying
}

// currentSnapshot returns the snapshot of the match being played, or nil
// while the server has not started it yet.
func (c *Client) currentSnapshot() *match.Snapshot {
	snap := c.server.GetSnapshot(c.handle.ID)
	if snap == nil || snap.MatchID == c.state.staleMatchID {
		return nil
	}
	return snap
}

func (c *Client) updatePlayingState() {
	snap := c.currentSnapshot()

	var cmds []match.Command
	for _, a := range c.state.Input.Actions {
		switch a {
		case input.ActionToggleHitboxes:
			c.state.ShowHitboxes = !c.state.ShowHitboxes
		case input.ActionToggleHelp:
			c.state.ShowHelp = !c.state.ShowHelp
		case input.ActionLaneLeft, input.ActionLaneRight:
			cmds = append(cmds, match.SelectLane(stepLane(selectedLane(snap, cmds), a == input.ActionLaneRight)))
		default:
			if lane, ok := a.Lane(); ok {
				cmds = append(cmds, match.SelectLane(lane))
			} else if idx, ok := a.PieceIndex(); ok {
				cmds = append(cmds, match.Spawn(match.PieceType(idx)))
			}
		}
	}
	if snap != nil {
		c.server.SendCommands(c.handle.ID, cmds)
		if snap.Finished() {
			c.endMatch(snap.Outcome)
		}
	}
}

// selectedLane is the lane in effect after the commands queued this frame.
func selectedLane(snap *match.Snapshot, queued []match.Command) int {
	lane := 0
	if snap != nil {
		lane = snap.SelectedLane
	}
	for _, cmd := range queued {
		if cmd.Kind == match.CommandSelectLane {
			lane = cmd.Lane
		}
	}
	return lane
}

// stepLane moves one lane left or right, starting from the middle when no
// lane is selected.
func stepLane(lane int, right bool) int {
	if lane == 0 {
		return 2
	}
	if right {
		return min(lane+1, match.LaneCount)
	}
	return max(lane-1, 1)
}

func (c *Client) endMatch(outcome match.Outcome) {
	c.state.Outcome = outcome
	c.state.endingTimer = config.EndingDelaySeconds
	c.state.GameState = GameStateEnding
	c.log.Info("match finished", "outcome", outcome)
}

func (c *Client) updateEndingState() {
	if c.state.endingTimer > 0 {
		c.state.endingTimer -= c.state.delta.Seconds()
		return
	}
	if c.state.Input.Has(input.ActionConfirm) {
		input.ResetKeyInput(c.inputStream)
		c.state.GameState = GameStateStart
	}
}

func (c *Client) updateShutdownState() {
	c.state.shutdownTimer -= c.state.delta.Seconds()
	if c.state.shutdownTimer <= 0 {
		c.state.Running = false
	}
}
