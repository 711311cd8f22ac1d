package object

import (
	"strings"

	"github.com/tomz197/lanebattle/internal/draw"
)

// Text is a line of text at a 1-based canvas cell.
type Text struct {
	X     int
	Y     int
	Value string
}

// Draw writes the text, clamping its position to the canvas origin.
func (t Text) Draw(ctx DrawContext) error {
	if t.Value == "" {
		return nil
	}
	ctx.Writer.WriteAt(max(t.X, 1), max(t.Y, 1), t.Value)
	return nil
}

// Centered returns a Text horizontally centred on centerX.
func Centered(centerX, y int, value string) Text {
	return Text{X: centerX - draw.VisibleWidth(value)/2, Y: y, Value: value}
}

// Window is a framed box of text lines.
type Window struct {
	X, Y  int // top-left corner, 1-based
	Width int // inner width
	Title string
	Lines []string
}

// Draw frames the window and writes its lines padded to the inner width,
// so it covers whatever was drawn beneath it.
func (w Window) Draw(ctx DrawContext) error {
	cw := ctx.Writer
	top := "┌" + strings.Repeat("─", w.Width) + "┐"
	if w.Title != "" && len(w.Title)+2 <= w.Width {
		top = "┌ " + w.Title + " " + strings.Repeat("─", w.Width-len(w.Title)-2) + "┐"
	}
	cw.WriteAt(w.X, w.Y, top)
	for i, line := range w.Lines {
		pad := w.Width - draw.VisibleWidth(line)
		if pad < 0 {
			pad = 0
		}
		cw.WriteAt(w.X, w.Y+1+i, "│"+line+strings.Repeat(" ", pad)+"│")
	}
	cw.WriteAt(w.X, w.Y+1+len(w.Lines), "└"+strings.Repeat("─", w.Width)+"┘")
	return nil
}

// Height returns the number of rows the window occupies.
func (w Window) Height() int {
	return len(w.Lines) + 2
}
