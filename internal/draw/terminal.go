package draw

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// ChunkWriter accumulates a frame of terminal output and flushes it in
// MTU-sized chunks. Positions given to WriteAt are 1-based canvas
// coordinates; the configured offset is added automatically.
//
// Text placed with WriteAt goes to an overlay that is flushed after
// everything else, so it always ends up on top of the canvas.
type ChunkWriter struct {
	buf     strings.Builder
	overlay strings.Builder
	bufw    *bufio.Writer
	numBuf  [20]byte
	offCol  int
	offRow  int
	canvas  *Canvas
	dirty   []textSpan
}

// textSpan is a run of canvas cells covered by overlay text.
type textSpan struct {
	col, row, n int
}

// NewChunkWriter creates a ChunkWriter that writes to w.
func NewChunkWriter(w io.Writer, offsetCol, offsetRow int) *ChunkWriter {
	return &ChunkWriter{
		bufw:   bufio.NewWriterSize(w, 8192),
		offCol: offsetCol,
		offRow: offsetRow,
	}
}

// SetOffset updates the cursor offset (e.g. after terminal resize).
func (cw *ChunkWriter) SetOffset(offsetCol, offsetRow int) {
	cw.offCol = offsetCol
	cw.offRow = offsetRow
}

// TrackDirty makes Flush mark the cells covered by overlay text on c, so
// the canvas repaints them on a later frame once the text is gone.
func (cw *ChunkWriter) TrackDirty(c *Canvas) {
	cw.canvas = c
}

func (cw *ChunkWriter) moveAbs(b *strings.Builder, col, row int) {
	b.WriteString("\033[")
	b.Write(strconv.AppendInt(cw.numBuf[:0], int64(row), 10))
	b.WriteByte(';')
	b.Write(strconv.AppendInt(cw.numBuf[:0], int64(col), 10))
	b.WriteByte('H')
}

// MoveCursor positions the cursor at a 1-based canvas cell.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.moveAbs(&cw.buf, col+cw.offCol, row+cw.offRow)
}

// WriteAt writes s at a 1-based canvas cell on the overlay.
func (cw *ChunkWriter) WriteAt(col, row int, s string) {
	cw.moveAbs(&cw.overlay, col+cw.offCol, row+cw.offRow)
	cw.overlay.WriteString(s)
	if cw.canvas != nil {
		cw.dirty = append(cw.dirty, textSpan{col: col, row: row, n: VisibleWidth(s)})
	}
}

// WriteAbs writes s at an absolute terminal position, ignoring the offset.
func (cw *ChunkWriter) WriteAbs(col, row int, s string) {
	cw.moveAbs(&cw.buf, col, row)
	cw.buf.WriteString(s)
}

// Write implements io.Writer for Canvas.Render.
func (cw *ChunkWriter) Write(p []byte) (int, error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

// Len reports the number of buffered bytes.
func (cw *ChunkWriter) Len() int {
	return cw.buf.Len() + cw.overlay.Len()
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the buffered frame to the underlying writer and resets it.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String() + cw.overlay.String()
	cw.buf.Reset()
	cw.overlay.Reset()
	for _, d := range cw.dirty {
		cw.canvas.MarkTextDirty(d.col, d.row, d.n)
	}
	cw.dirty = cw.dirty[:0]
	for len(data) > 0 {
		chunk := data
		if len(chunk) > maxChunkSize {
			chunk = data[:maxChunkSize]
		}
		if _, err := cw.bufw.WriteString(chunk); err != nil {
			return err
		}
		data = data[len(chunk):]
	}
	return cw.bufw.Flush()
}

// VisibleWidth counts the runes of s that occupy a cell, skipping ANSI
// escape sequences.
func VisibleWidth(s string) int {
	n := 0
	for i := 0; i < len(s); {
		if s[i] == '\033' {
			i++
			if i < len(s) && s[i] == '[' {
				for i++; i < len(s) && (s[i] < 0x40 || s[i] > 0x7e); i++ {
				}
				i++
			}
			continue
		}
		_, size := utf8.DecodeRuneInString(s[i:])
		i += size
		n++
	}
	return n
}

// TermSizeFunc returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns terminal size from os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}
