package draw

import (
	"bufio"
	"fmt"
	"image/color"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode/utf8"

	"golang.org/x/term"
)

// maxChunkSize is the maximum bytes written at once. Matches a typical MTU
// so frames stream smoothly over SSH.
const maxChunkSize = 1400

// ChunkWriter accumulates terminal output and writes it in chunks. Use
// MoveCursor and WriteString to accumulate, then Flush.
type ChunkWriter struct {
	buf    strings.Builder
	bufw   *bufio.Writer
	numBuf [20]byte // Scratch buffer for allocation-free integer formatting
	offCol int
	offRow int
}

// NewChunkWriter creates a ChunkWriter for w. offsetCol and offsetRow are
// added to every MoveCursor coordinate.
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

// MoveCursor appends a cursor position sequence. col and row are 1-based
// canvas coordinates; the offset is applied automatically.
func (cw *ChunkWriter) MoveCursor(col, row int) {
	cw.buf.WriteString("\033[")
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(row+cw.offRow), 10))
	cw.buf.WriteByte(';')
	cw.buf.Write(strconv.AppendInt(cw.numBuf[:0], int64(col+cw.offCol), 10))
	cw.buf.WriteByte('H')
}

// Write implements io.Writer for use with Canvas.Render.
func (cw *ChunkWriter) Write(p []byte) (n int, err error) {
	return cw.buf.Write(p)
}

// WriteString appends a string to the buffer.
func (cw *ChunkWriter) WriteString(s string) {
	cw.buf.WriteString(s)
}

var _ io.Writer = (*ChunkWriter)(nil)

// Flush writes the accumulated buffer to the underlying writer in chunks,
// then resets the buffer.
func (cw *ChunkWriter) Flush() error {
	data := cw.buf.String()
	cw.buf.Reset()
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

// TermSizeFunc returns the terminal dimensions.
type TermSizeFunc func() (width, height int, err error)

// DefaultTermSizeFunc returns the size of the terminal on os.Stdout.
var DefaultTermSizeFunc TermSizeFunc = func() (int, int, error) {
	return term.GetSize(int(os.Stdout.Fd()))
}

// ClearScreen clears the terminal and moves the cursor to the top-left.
func ClearScreen(w io.Writer) {
	fmt.Fprint(w, "\033[H\033[2J")
}

// HideCursor hides the terminal cursor.
func HideCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25l")
}

// ShowCursor shows the terminal cursor.
func ShowCursor(w io.Writer) {
	fmt.Fprint(w, "\033[?25h")
}

// EnableMouse turns on button-press reporting in SGR format.
func EnableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1000h\033[?1006h")
}

// DisableMouse reverts EnableMouse.
func DisableMouse(w io.Writer) {
	fmt.Fprint(w, "\033[?1006l\033[?1000l")
}

// label is text queued for the overlay pass.
type label struct {
	at    Point
	text  string
	align Align
	color uint32
}

// Terminal is a Surface backed by a Canvas. Shapes go to the canvas; text
// is queued and written on top after the canvas is rendered.
type Terminal struct {
	canvas *Canvas
	out    *ChunkWriter
	labels []label
}

var _ Surface = (*Terminal)(nil)

// NewTerminal creates a terminal surface writing to w. The canvas covers
// termWidth x termHeight cells and maps logicalWidth x logicalHeight onto them.
func NewTerminal(w io.Writer, termWidth, termHeight int, logicalWidth, logicalHeight float64) *Terminal {
	return &Terminal{
		canvas: NewScaledCanvas(termWidth, termHeight, logicalWidth, logicalHeight),
		out:    NewChunkWriter(w, 0, 0),
	}
}

// Canvas exposes the underlying canvas (for coordinate conversion).
func (t *Terminal) Canvas() *Canvas {
	return t.canvas
}

// Resize fits the canvas to a terminal of the given size, clamped to
// maxCols x maxRows and centred within it.
func (t *Terminal) Resize(termWidth, termHeight, maxCols, maxRows int) {
	renderWidth := min(termWidth, maxCols)
	renderHeight := min(termHeight, maxRows)
	offsetCol := (termWidth - renderWidth) / 2
	offsetRow := (termHeight - renderHeight) / 2

	t.canvas.Resize(renderWidth, renderHeight)
	t.canvas.SetOffset(offsetCol, offsetRow)
	t.out.SetOffset(offsetCol, offsetRow)
}

// Begin starts a new frame.
func (t *Terminal) Begin() {
	t.canvas.Clear()
	t.labels = t.labels[:0]
}

// Circle implements Surface.
func (t *Terminal) Circle(center Point, radius float64, c color.Color) {
	t.canvas.DrawCircle(center, radius, c)
}

// Polygon implements Surface.
func (t *Terminal) Polygon(points []Point, c color.Color) {
	t.canvas.DrawPolygon(points, false, c)
}

// FillRect implements Surface.
func (t *Terminal) FillRect(x, y, w, h float64, c color.Color) {
	t.canvas.FillRect(x, y, w, h, c)
}

// Text implements Surface.
func (t *Terminal) Text(at Point, s string, align Align, c color.Color) {
	t.labels = append(t.labels, label{at: at, text: s, align: align, color: pack(c)})
}

// LineHeight is one terminal row in logical units.
func (t *Terminal) LineHeight() float64 {
	return t.canvas.LogicalHeight() / float64(max(t.canvas.TerminalHeight(), 1))
}

// Present clears the terminal and writes the frame: canvas, border, labels.
func (t *Terminal) Present() error {
	t.out.WriteString("\033[H\033[2J")
	t.canvas.Render(t.out)
	t.canvas.RenderBorder(t.out)

	for _, l := range t.labels {
		col, row := t.canvas.LogicalToTerminal(l.at.X, l.at.Y)
		if l.align == AlignCenter {
			col -= utf8.RuneCountInString(l.text) / 2
		}
		col = max(col, 1)
		v := l.color
		t.out.MoveCursor(col, row)
		t.out.WriteString("\033[38;2;" + strconv.Itoa(int(v>>16&0xff)) + ";" +
			strconv.Itoa(int(v>>8&0xff)) + ";" + strconv.Itoa(int(v&0xff)) + "m")
		t.out.WriteString(l.text)
		t.out.WriteString("\033[0m")
	}

	return t.out.Flush()
}
