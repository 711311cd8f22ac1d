package draw

import (
	"io"
	"math"
	"sort"
	"strconv"
)

// cellUnknown marks a terminal cell whose on-screen content is not known,
// forcing it to be rewritten on the next Render.
const cellUnknown = 0xFF

// Canvas is a pixel buffer with 2x vertical resolution using half-block
// characters. Drawing happens in logical coordinates that are scaled to the
// terminal size. Render only emits cells that changed since the last frame.
type Canvas struct {
	termWidth      int
	termHeight     int
	subPixelHeight int
	pixels         []bool // [y*termWidth + x]
	shown          []byte // per terminal cell: bit0 top, bit1 bottom, or cellUnknown

	logicalWidth  float64
	logicalHeight float64 // in sub-pixels
	scaleX        float64
	scaleY        float64

	// 0-based terminal offsets used to centre the render area.
	offsetCol int
	offsetRow int

	renderBuf       []byte
	scaledBuf       []Point
	intersectionBuf []float64
}

// NewScaledCanvas creates a canvas mapping logicalWidth x logicalHeight onto
// a termWidth x termHeight character area.
func NewScaledCanvas(termWidth, termHeight int, logicalWidth, logicalHeight float64) *Canvas {
	c := &Canvas{
		logicalWidth:  logicalWidth,
		logicalHeight: logicalHeight,
	}
	c.Resize(termWidth, termHeight)
	return c
}

// Resize updates the canvas for new terminal dimensions while keeping logical size.
func (c *Canvas) Resize(termWidth, termHeight int) {
	if termWidth < 0 {
		termWidth = 0
	}
	if termHeight < 0 {
		termHeight = 0
	}
	if termWidth != c.termWidth || termHeight != c.termHeight || c.pixels == nil {
		c.termWidth = termWidth
		c.termHeight = termHeight
		c.subPixelHeight = termHeight * 2
		c.pixels = make([]bool, c.subPixelHeight*termWidth)
		c.shown = make([]byte, termWidth*termHeight)
		c.ForceRedraw()
	}
	c.scaleX = float64(termWidth) / c.logicalWidth
	c.scaleY = float64(c.subPixelHeight) / c.logicalHeight
}

// SetOffset sets the 0-based column and row offset of the render area.
func (c *Canvas) SetOffset(col, row int) {
	c.offsetCol = col
	c.offsetRow = row
}

// OffsetCol returns the column offset used for centering.
func (c *Canvas) OffsetCol() int { return c.offsetCol }

// OffsetRow returns the row offset used for centering.
func (c *Canvas) OffsetRow() int { return c.offsetRow }

// TerminalWidth returns the render area's column count.
func (c *Canvas) TerminalWidth() int { return c.termWidth }

// TerminalHeight returns the render area's row count.
func (c *Canvas) TerminalHeight() int { return c.termHeight }

// Clear resets all pixels. What is on screen is untouched until Render.
func (c *Canvas) Clear() {
	clear(c.pixels)
}

// ForceRedraw makes the next Render rewrite every cell, e.g. after the
// terminal was cleared.
func (c *Canvas) ForceRedraw() {
	for i := range c.shown {
		c.shown[i] = cellUnknown
	}
}

// MarkTextDirty records that text was written over n cells starting at the
// 1-based canvas position (col, row), so the next Render repaints them.
func (c *Canvas) MarkTextDirty(col, row, n int) {
	y := row - 1
	if y < 0 || y >= c.termHeight {
		return
	}
	for x := col - 1; x < col-1+n; x++ {
		if x >= 0 && x < c.termWidth {
			c.shown[y*c.termWidth+x] = cellUnknown
		}
	}
}

func (c *Canvas) setPixel(x, y int) {
	if x >= 0 && x < c.termWidth && y >= 0 && y < c.subPixelHeight {
		c.pixels[y*c.termWidth+x] = true
	}
}

// SetFloat sets the pixel at a logical position.
func (c *Canvas) SetFloat(x, y float64) {
	c.setPixel(int(math.Round(x*c.scaleX)), int(math.Round(y*c.scaleY)))
}

// DrawLine draws a line between logical points using Bresenham's algorithm.
func (c *Canvas) DrawLine(p1, p2 Point) {
	x1 := int(math.Round(p1.X * c.scaleX))
	y1 := int(math.Round(p1.Y * c.scaleY))
	x2 := int(math.Round(p2.X * c.scaleX))
	y2 := int(math.Round(p2.Y * c.scaleY))

	dx := abs(x2 - x1)
	dy := abs(y2 - y1)
	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}
	err := dx - dy

	for {
		c.setPixel(x1, y1)
		if x1 == x2 && y1 == y2 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x1 += sx
		}
		if e2 < dx {
			err += dx
			y1 += sy
		}
	}
}

// DrawDashedLine draws a line with every other segment of the given logical
// length left out.
func (c *Canvas) DrawDashedLine(p1, p2 Point, dash float64) {
	length := math.Hypot(p2.X-p1.X, p2.Y-p1.Y)
	if length == 0 || dash <= 0 {
		c.DrawLine(p1, p2)
		return
	}
	ux, uy := (p2.X-p1.X)/length, (p2.Y-p1.Y)/length
	for d := 0.0; d < length; d += 2 * dash {
		end := math.Min(d+dash, length)
		c.DrawLine(
			Point{X: p1.X + ux*d, Y: p1.Y + uy*d},
			Point{X: p1.X + ux*end, Y: p1.Y + uy*end},
		)
	}
}

// DrawRect draws an axis-aligned rectangle between two logical corners.
func (c *Canvas) DrawRect(min, max Point, filled bool) {
	c.DrawPolygon([]Point{
		{X: min.X, Y: min.Y},
		{X: max.X, Y: min.Y},
		{X: max.X, Y: max.Y},
		{X: min.X, Y: max.Y},
	}, filled)
}

// DrawPolygon draws a polygon outline, filling the interior when filled is set.
func (c *Canvas) DrawPolygon(points []Point, filled bool) {
	if len(points) < 3 {
		return
	}
	if filled {
		c.fillPolygon(points)
	}
	n := len(points)
	for i := 0; i < n; i++ {
		c.DrawLine(points[i], points[(i+1)%n])
	}
}

// fillPolygon fills a polygon with a scanline pass in pixel space.
func (c *Canvas) fillPolygon(points []Point) {
	if cap(c.scaledBuf) < len(points) {
		c.scaledBuf = make([]Point, len(points))
	}
	scaled := c.scaledBuf[:len(points)]
	for i, p := range points {
		scaled[i] = Point{X: p.X * c.scaleX, Y: p.Y * c.scaleY}
	}

	minY, maxY := scaled[0].Y, scaled[0].Y
	for _, p := range scaled {
		minY = math.Min(minY, p.Y)
		maxY = math.Max(maxY, p.Y)
	}

	for y := int(math.Floor(minY)); y <= int(math.Ceil(maxY)); y++ {
		scanY := float64(y) + 0.5
		xs := c.intersectionBuf[:0]
		n := len(scaled)
		for i := 0; i < n; i++ {
			p1, p2 := scaled[i], scaled[(i+1)%n]
			if (p1.Y <= scanY && p2.Y > scanY) || (p2.Y <= scanY && p1.Y > scanY) {
				t := (scanY - p1.Y) / (p2.Y - p1.Y)
				xs = append(xs, p1.X+t*(p2.X-p1.X))
			}
		}
		c.intersectionBuf = xs
		sort.Float64s(xs)

		for i := 0; i+1 < len(xs); i += 2 {
			for x := int(math.Ceil(xs[i])); x <= int(math.Floor(xs[i+1])); x++ {
				c.setPixel(x, y)
			}
		}
	}
}

// maxChunkSize keeps individual writes near a typical MTU for smooth SSH output.
const maxChunkSize = 1400

// Render writes every cell whose half-block content differs from what is
// on screen.
func (c *Canvas) Render(w io.Writer) {
	buf := c.renderBuf[:0]
	for row := 0; row < c.termHeight; row++ {
		top := row * 2 * c.termWidth
		bottom := top + c.termWidth
		for col := 0; col < c.termWidth; col++ {
			var cell byte
			if c.pixels[top+col] {
				cell |= 1
			}
			if c.pixels[bottom+col] {
				cell |= 2
			}
			idx := row*c.termWidth + col
			if c.shown[idx] == cell {
				continue
			}
			c.shown[idx] = cell

			buf = append(buf, "\033["...)
			buf = strconv.AppendInt(buf, int64(row+1+c.offsetRow), 10)
			buf = append(buf, ';')
			buf = strconv.AppendInt(buf, int64(col+1+c.offsetCol), 10)
			buf = append(buf, 'H')
			buf = appendCell(buf, cell)
		}
	}
	c.renderBuf = buf

	for len(buf) > 0 {
		chunk := buf
		if len(chunk) > maxChunkSize {
			chunk = buf[:maxChunkSize]
		}
		_, _ = w.Write(chunk)
		buf = buf[len(chunk):]
	}
}

func appendCell(buf []byte, cell byte) []byte {
	switch cell {
	case 3:
		return append(buf, string(BlockFull)...)
	case 1:
		return append(buf, string(BlockUpperHalf)...)
	case 2:
		return append(buf, string(BlockLowerHalf)...)
	default:
		return append(buf, ' ')
	}
}

// RenderBorder frames the render area when the terminal is larger than the
// maximum render size on either axis.
func (c *Canvas) RenderBorder(cw *ChunkWriter) {
	hasH := c.offsetCol >= 1
	hasV := c.offsetRow >= 1

	left := c.offsetCol
	right := c.offsetCol + c.termWidth + 1
	top := c.offsetRow
	bottom := c.offsetRow + c.termHeight + 1
	line := repeatRune('─', c.termWidth)

	if hasV {
		if hasH {
			cw.WriteAbs(left, top, "┌"+line+"┐")
			cw.WriteAbs(left, bottom, "└"+line+"┘")
		} else {
			cw.WriteAbs(c.offsetCol+1, top, line)
			cw.WriteAbs(c.offsetCol+1, bottom, line)
		}
	}
	if hasH {
		for row := c.offsetRow + 1; row <= c.offsetRow+c.termHeight; row++ {
			cw.WriteAbs(left, row, "│")
			cw.WriteAbs(right, row, "│")
		}
	}
}

// LogicalToTerminal converts a logical position to a 1-based canvas cell (col, row).
func (c *Canvas) LogicalToTerminal(x, y float64) (col, row int) {
	px := int(math.Round(x * c.scaleX))
	py := int(math.Round(y * c.scaleY))
	return px + 1, py/2 + 1
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	out := make([]rune, n)
	for i := range out {
		out[i] = r
	}
	return string(out)
}
