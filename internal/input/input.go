// Package input defines the per-frame input state and a terminal parser
// that produces it from a raw byte stream.
package input

import (
	"bufio"
	"bytes"
	"strconv"
	"time"
)

// keyHoldDuration is how long a key is considered "held" after its last
// press. Terminals only report key repeats, never releases.
const keyHoldDuration = 60 * time.Millisecond

// MouseButton identifies a clicked button.
type MouseButton int

const (
	MouseLeft MouseButton = iota
	MouseMiddle
	MouseRight
)

// Click is a mouse press in logical screen coordinates.
type Click struct {
	X, Y   float64
	Button MouseButton
}

// Input is the current frame's input state. Held keys drive the ship;
// edge keys fire once per press.
type Input struct {
	// Held
	Up    bool
	Down  bool
	Left  bool
	Right bool
	Space bool

	// Edge-triggered
	Pause   bool
	Resume  bool
	Restart bool
	Quit    bool

	Click   *Click
	Pressed []byte // Raw bytes seen this frame (terminal only)
}

// rawClick is a mouse report in 1-based terminal cells, before mapping to
// logical coordinates.
type rawClick struct {
	col, row int
	button   MouseButton
}

// keyState tracks the last time each held key was seen.
type keyState struct {
	up    time.Time
	down  time.Time
	left  time.Time
	right time.Time
	space time.Time
}

// CellMapper converts a 1-based terminal cell into logical coordinates.
type CellMapper func(col, row int) (x, y float64)

// maxPending bounds an unterminated escape sequence carried between reads.
const maxPending = 32

// Stream delivers input bytes via a channel and tracks key state for
// combinations.
type Stream struct {
	ch      chan byte
	state   keyState
	pending []byte // Start of an escape sequence split across reads
	now     func() time.Time
	closed  bool
}

// StartStream spawns a goroutine that reads from r and feeds the stream.
func StartStream(r *bufio.Reader) *Stream {
	s := newStream()
	go func() {
		for {
			b, err := r.ReadByte()
			if err != nil {
				close(s.ch)
				return
			}
			s.ch <- b
		}
	}()
	return s
}

func newStream() *Stream {
	return &Stream{
		ch:  make(chan byte, 256),
		now: time.Now,
	}
}

// Closed reports whether the underlying reader has ended and every byte
// has been consumed.
func (s *Stream) Closed() bool {
	return s.closed
}

// Read drains all available bytes (non-blocking) and returns the frame's
// input. Mouse reports are mapped through cells; nil drops them.
func (s *Stream) Read(cells CellMapper) Input {
	now := s.now()
	buf := s.pending
	s.pending = nil

drain:
	for {
		select {
		case b, ok := <-s.ch:
			if !ok {
				s.closed = true
				break drain
			}
			buf = append(buf, b)
		default:
			break drain
		}
	}

	in, click, n := parse(&s.state, buf, now)
	if rest := buf[n:]; len(rest) > 0 && len(rest) <= maxPending && !s.closed {
		s.pending = bytes.Clone(rest)
	}
	if click != nil && cells != nil {
		x, y := cells(click.col, click.row)
		in.Click = &Click{X: x, Y: y, Button: click.button}
	}
	return in
}

// parse applies buf to state and builds the frame input. Held keys count as
// pressed if seen within keyHoldDuration of now. It returns how many bytes
// were consumed; the rest is an escape sequence cut off at the end of buf.
func parse(state *keyState, buf []byte, now time.Time) (Input, *rawClick, int) {
	in := Input{Pressed: buf}
	var click *rawClick

	i := 0
	for i < len(buf) {
		if buf[i] != '\x1b' {
			applyByte(state, &in, buf[i], now)
			i++
			continue
		}
		n := parseEscape(state, &in, &click, buf[i:], now)
		if n == 0 {
			break
		}
		i += n
	}

	in.Up = now.Sub(state.up) < keyHoldDuration
	in.Down = now.Sub(state.down) < keyHoldDuration
	in.Left = now.Sub(state.left) < keyHoldDuration
	in.Right = now.Sub(state.right) < keyHoldDuration
	in.Space = now.Sub(state.space) < keyHoldDuration

	return in, click, i
}

// parseEscape handles buf starting with ESC and returns the bytes consumed,
// or 0 if buf ends inside a sequence. ESC alone, or followed by a byte that
// cannot start a sequence, is the Esc key.
func parseEscape(state *keyState, in *Input, click **rawClick, buf []byte, now time.Time) int {
	if len(buf) == 1 {
		in.Pause = true
		return 1
	}

	switch buf[1] {
	case '[': // CSI
		return parseCSI(state, click, buf, now)
	case 'O': // SS3, application cursor mode
		if len(buf) < 3 {
			return 0
		}
		applyArrow(state, buf[2], now)
		return 3
	default:
		in.Pause = true
		return 1
	}
}

// parseCSI consumes "ESC [ params final". Arrows (with any modifier) and
// SGR mouse reports are used; every other sequence is dropped.
func parseCSI(state *keyState, click **rawClick, buf []byte, now time.Time) int {
	for j := 2; j < len(buf); j++ {
		b := buf[j]
		switch {
		case b >= 0x40 && b <= 0x7e:
			params := buf[2:j]
			if len(params) > 0 && params[0] == '<' && (b == 'M' || b == 'm') {
				if c := parseSGRMouse(params[1:], b); c != nil {
					*click = c
				}
			} else {
				applyArrow(state, b, now)
			}
			return j + 1
		case b < 0x20 || b > 0x3f:
			return j // Malformed, drop what was read so far
		}
	}
	return 0
}

func applyArrow(state *keyState, final byte, now time.Time) {
	switch final {
	case 'A':
		state.up = now
	case 'B':
		state.down = now
	case 'C':
		state.right = now
	case 'D':
		state.left = now
	}
}

// applyByte updates held-key timestamps and edge flags for a single byte.
func applyByte(state *keyState, in *Input, b byte, now time.Time) {
	switch b {
	case 'w', 'W':
		state.up = now
	case 's', 'S':
		state.down = now
	case 'a', 'A':
		state.left = now
	case 'd', 'D':
		state.right = now
	case ' ':
		state.space = now
	case 'p', 'P':
		in.Pause = true
	case 'r', 'R':
		in.Resume = true
		in.Restart = true
	case '\n', '\r':
		in.Restart = true
	case 'q', 'Q', '\x03':
		in.Quit = true
	}
}

// parseSGRMouse parses the "b;x;y" parameters of an SGR mouse report with
// its final byte. It returns the click for a press, or nil for releases,
// motion, wheel and malformed reports.
func parseSGRMouse(params []byte, final byte) *rawClick {
	parts := bytes.Split(params, []byte{';'})
	if len(parts) != 3 {
		return nil
	}
	code, err1 := strconv.Atoi(string(parts[0]))
	col, err2 := strconv.Atoi(string(parts[1]))
	row, err3 := strconv.Atoi(string(parts[2]))
	if err1 != nil || err2 != nil || err3 != nil {
		return nil
	}
	if final == 'm' || code&32 != 0 || code&64 != 0 {
		return nil
	}
	return &rawClick{col: col, row: row, button: MouseButton(code & 3)}
}
