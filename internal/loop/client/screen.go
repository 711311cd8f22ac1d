package client

import (
	"fmt"
	"time"

	"github.com/tomz197/lanebattle/internal/draw"
	"github.com/tomz197/lanebattle/internal/loop/config"
	"github.com/tomz197/lanebattle/internal/match"
	"github.com/tomz197/lanebattle/internal/object"
)

// panelWidth is the inner width of the side panels.
const panelWidth = 26

var titleArt = []string{
	`  _      _   _  _ ___   ___   _ _____ _____ _    ___ `,
	` | |    /_\ | \| | __| | _ ) /_\_   _|_   _| |  | __|`,
	` | |__ / _ \| .  | _|  | _ \/ _ \| |   | | | |__| _| `,
	` |____/_/ \_\_|\_|___| |___/_/ \_\_|   |_| |____|___|`,
}

var victoryArt = []string{
	` __   _____ ___ _____ ___  _____   __`,
	` \ \ / /_ _/ __|_   _/ _ \| _ \ \ / /`,
	`  \ V / | | (__  | || (_) |   /\ V / `,
	`   \_/ |___\___| |_| \___/|_|_\ |_|  `,
}

var defeatArt = []string{
	`  ___  ___ ___ ___   _ _____ `,
	` |   \| __| __| __| /_\_   _|`,
	` | |) | _|| _|| _| / _ \| |  `,
	` |___/|___|_| |___/_/ \_\_|  `,
}

// drawFrame draws the current frame.
func (c *Client) drawFrame() error {
	// On screen or inactivity transitions, do a full terminal clear so UI
	// elements from the previous screen don't persist.
	if c.state.GameState != c.state.prevGameState || c.state.isInactive != c.state.wasInactive {
		c.chunkWriter.WriteString("\033[H\033[2J")
		c.canvas.ForceRedraw()
		c.state.prevGameState = c.state.GameState
		c.state.wasInactive = c.state.isInactive
	}

	c.canvas.Clear()
	ctx := object.DrawContext{
		Canvas:       c.canvas,
		Writer:       c.chunkWriter,
		Board:        c.board,
		ShowHitboxes: c.state.ShowHitboxes,
	}

	snap := c.currentSnapshot()
	if (c.state.GameState == GameStatePlaying || c.state.GameState == GameStateEnding) &&
		snap != nil && !c.state.isInactive {
		for _, obj := range object.FromSnapshot(snap) {
			if err := obj.Draw(ctx); err != nil {
				return err
			}
		}
	}
	c.drawUI(ctx, snap)

	c.canvas.Render(c.chunkWriter)
	c.canvas.RenderBorder(c.chunkWriter)
	return c.chunkWriter.Flush()
}

// drawUI draws the screen-specific text overlay.
func (c *Client) drawUI(ctx object.DrawContext, snap *match.Snapshot) {
	termWidth := c.canvas.TerminalWidth()
	termHeight := c.canvas.TerminalHeight()
	centerX := termWidth / 2
	centerY := termHeight / 2

	if c.state.GameState == GameStateShutdown {
		c.drawShutdownScreen(centerX, centerY)
		return
	}
	if c.state.isInactive {
		c.drawInactivityScreen(centerX, centerY)
		return
	}

	switch c.state.GameState {
	case GameStateStart:
		c.drawStartScreen(centerX, centerY)
	case GameStatePlaying:
		if snap == nil {
			c.writeCentered(centerX, centerY, "Setting up the board...")
			return
		}
		c.drawPlayingHUD(ctx, termWidth, termHeight, snap)
		if c.state.ShowHelp {
			_ = object.HelpWindow(centerX, centerY).Draw(ctx)
		}
	case GameStateEnding:
		if snap != nil {
			c.drawPlayingHUD(ctx, termWidth, termHeight, snap)
		}
		c.drawEndingScreen(ctx, centerX, centerY, snap)
	}
}

func (c *Client) writeCentered(centerX, row int, s string) {
	c.chunkWriter.WriteAt(centerX-draw.VisibleWidth(s)/2, row, s)
}

func (c *Client) writeArt(centerX, startRow int, art []string) {
	width := 0
	for _, line := range art {
		width = max(width, len(line))
	}
	for i, line := range art {
		c.chunkWriter.WriteAt(centerX-width/2, startRow+i, line)
	}
}

// blinkOn toggles a few times per second for prompts.
func blinkOn() bool {
	return time.Now().UnixMilli()/600%2 == 0
}

func (c *Client) drawInactivityScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-2, "INACTIVITY WARNING")
	c.writeCentered(centerX, centerY, fmt.Sprintf(
		"You have been inactive for too long. You will be disconnected in %d seconds.",
		int(config.InactivityDisconnectUser-time.Since(c.lastInput).Seconds()),
	))
	c.writeCentered(centerX, centerY+2, "Press any key to continue")
}

func (c *Client) drawStartScreen(centerX, centerY int) {
	top := centerY - 8
	c.writeArt(centerX, top, titleArt)
	c.writeCentered(centerX, top+len(titleArt)+1, "~ Chess pieces march down three lanes. Topple the enemy King. ~")

	controlsY := top + len(titleArt) + 3
	c.writeCentered(centerX, controlsY, "Controls")
	controls := []string{
		"1 2 3 / A D  . . .  Select lane",
		"4 5 6 7 8  . .  Spawn P N B R Q",
		"B  . . . . . . . Toggle hitboxes",
		"H  . . . . . . . . . Toggle help",
		"Q  . . . . . . . . . . . . .Quit",
	}
	for i, line := range controls {
		c.writeCentered(centerX, controlsY+1+i, line)
	}

	if blinkOn() {
		c.writeCentered(centerX, controlsY+len(controls)+2, ">>  Press ENTER or SPACE to Start  <<")
	}
	if c.username != "" {
		c.writeCentered(centerX, controlsY+len(controls)+4, fmt.Sprintf("Commander %s", c.username))
	}
}

// drawPlayingHUD draws the side panels: the human's economy and piece cards
// on the left, the computer's status on the right. Values are fixed width
// so shrinking numbers leave no residue.
func (c *Client) drawPlayingHUD(ctx object.DrawContext, termWidth, termHeight int, snap *match.Snapshot) {
	human := snap.Side(match.SeatHuman)
	computer := snap.Side(match.SeatComputer)

	laneText := "-"
	laneColor := draw.ColorDim
	if snap.SelectedLane > 0 {
		laneText = fmt.Sprintf("%d", snap.SelectedLane)
		laneColor = draw.ColorBrightGreen
	}
	hitboxes := "off"
	if c.state.ShowHitboxes {
		hitboxes = "on "
	}

	hud := object.Window{
		X: 2, Y: 1, Width: panelWidth, Title: "YOU",
		Lines: []string{
			fmt.Sprintf(" Points: %s%-6d%s", draw.ColorYellow, int(human.Points), draw.ColorReset),
			fmt.Sprintf(" Population: %2d/%d", human.Population, match.MaxPieces),
			fmt.Sprintf(" Selected Lane: %s%s%s", laneColor, laneText, draw.ColorReset),
			fmt.Sprintf(" Hitboxes [B]: %s", hitboxes),
			" Help [H]",
		},
	}
	_ = hud.Draw(ctx)

	for _, card := range object.Cards(2, 1+hud.Height(), panelWidth, human.Points) {
		_ = card.Draw(ctx)
	}

	right := termWidth - panelWidth - 2
	enemy := object.Window{
		X: right, Y: 1, Width: panelWidth, Title: "COMPUTER",
		Lines: []string{
			fmt.Sprintf(" Points: %-6d", int(computer.Points)),
			fmt.Sprintf(" Population: %2d/%d", computer.Population, match.MaxPieces),
			fmt.Sprintf(" King: %4d/%d", computer.King.Health, computer.King.MaxHealth),
		},
	}
	_ = enemy.Draw(ctx)

	captured := object.Window{
		X: right, Y: 1 + enemy.Height(), Width: panelWidth, Title: "CAPTURED",
		Lines: []string{
			" You  " + capturedLine(human.Captured, match.SeatComputer),
			" CPU  " + capturedLine(computer.Captured, match.SeatHuman),
		},
	}
	_ = captured.Draw(ctx)

	c.chunkWriter.WriteAt(2, termHeight, fmt.Sprintf("%s  %-5.0fs", c.username, snap.Elapsed))
}

// capturedLine formats a kill tally using the glyphs of the captured side.
func capturedLine(captured [match.PieceTypeCount]int, of match.Seat) string {
	s := ""
	for _, t := range match.AllPieceTypes() {
		s += fmt.Sprintf("%s%-2d ", object.Glyph(t, of), captured[t])
	}
	return s
}

func (c *Client) drawEndingScreen(ctx object.DrawContext, centerX, centerY int, snap *match.Snapshot) {
	art, color, line := defeatArt, draw.ColorBrightRed, "Your King has fallen."
	if c.state.Outcome == match.OutcomeHumanWon {
		art, color, line = victoryArt, draw.ColorBrightGreen, "The enemy King has fallen!"
	}

	lines := []string{""}
	for _, l := range art {
		lines = append(lines, "  "+color+l+draw.ColorReset)
	}
	lines = append(lines, "", "  "+line)
	if snap != nil {
		lines = append(lines, fmt.Sprintf("  Match time: %.0fs", snap.Elapsed))
	}
	lines = append(lines, "")
	if c.state.endingTimer <= 0 && blinkOn() {
		lines = append(lines, "  >> Press ENTER to return to title <<")
	} else {
		lines = append(lines, "")
	}

	width := 42
	_ = object.Window{
		X:     centerX - width/2 - 1,
		Y:     centerY - (len(lines)+2)/2,
		Width: width,
		Lines: lines,
	}.Draw(ctx)
}

func (c *Client) drawShutdownScreen(centerX, centerY int) {
	c.writeCentered(centerX, centerY-3, "SERVER SHUTTING DOWN")
	c.writeCentered(centerX, centerY-1, "The server is restarting for maintenance.")
	c.writeCentered(centerX, centerY, "Please reconnect in a moment.")
	c.writeCentered(centerX, centerY+2, fmt.Sprintf("Disconnecting in %d seconds...", int(c.state.shutdownTimer)+1))
	c.writeCentered(centerX, centerY+4, "Press Q to disconnect now")
}
