package loop

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/score"
)

// RunOptions configures a terminal session.
type RunOptions struct {
	Game         Options
	TermSizeFunc draw.TermSizeFunc

	// DisconnectIdle warns idle players and ends the session after
	// config.InactivityDisconnect without input.
	DisconnectIdle bool
}

// Run plays one game on a terminal with the standard Input → Update → Draw
// cycle until the player quits, the input ends or ctx is cancelled. On
// cancellation a shutdown notice is shown for config.ShutdownDisplay first.
func Run(ctx context.Context, r *bufio.Reader, w io.Writer, board *score.Board, opts RunOptions) error {
	termSize := opts.TermSizeFunc
	if termSize == nil {
		termSize = draw.DefaultTermSizeFunc
	}
	termWidth, termHeight, err := termSize()
	if err != nil {
		return fmt.Errorf("terminal size: %w", err)
	}

	game := NewGame(board, opts.Game)
	stream := input.StartStream(r)
	term := draw.NewTerminal(w, termWidth, termHeight, game.screen.Width, game.screen.Height)
	term.Resize(termWidth, termHeight, config.MaxRenderCols, config.MaxRenderRows)

	draw.HideCursor(w)
	draw.EnableMouse(w)
	defer draw.ShowCursor(w)
	defer draw.DisableMouse(w)
	draw.ClearScreen(w)
	defer draw.ClearScreen(w)

	lastTime := time.Now()
	lastInput := lastTime
	var shutdownAt time.Time

	for game.Running() {
		frameStart := time.Now()
		delta := frameStart.Sub(lastTime)
		lastTime = frameStart

		if shutdownAt.IsZero() && ctx.Err() != nil {
			shutdownAt = frameStart
		}

		// ===== INPUT PHASE =====
		in := stream.Read(term.Canvas().TerminalToLogical)
		if stream.Closed() {
			return nil
		}
		if len(in.Pressed) > 0 {
			lastInput = frameStart
		}
		idle := frameStart.Sub(lastInput)

		// ===== UPDATE PHASE =====
		if tw, th, err := termSize(); err == nil {
			term.Resize(tw, th, config.MaxRenderCols, config.MaxRenderRows)
		}

		warn := opts.DisconnectIdle && idle > config.InactivityWarn
		switch {
		case !shutdownAt.IsZero():
			if in.Quit || frameStart.Sub(shutdownAt) > config.ShutdownDisplay {
				return nil
			}
		case opts.DisconnectIdle && idle > config.InactivityDisconnect:
			log.Info("disconnecting idle session", "idle", idle.Round(time.Second))
			return nil
		case warn:
			// Frozen until the player presses something
		default:
			game.Step(delta, in)
		}

		// ===== DRAW PHASE =====
		term.Begin()
		game.Draw(term)
		switch {
		case !shutdownAt.IsZero():
			drawNotice(term, game, "SERVER SHUTTING DOWN",
				"The server is restarting for maintenance.",
				fmt.Sprintf("Disconnecting in %d seconds...", secondsLeft(config.ShutdownDisplay-frameStart.Sub(shutdownAt))),
				"Press Q to disconnect now")
		case warn:
			drawNotice(term, game, "INACTIVITY WARNING",
				"You have been inactive for too long.",
				fmt.Sprintf("You will be disconnected in %d seconds.", secondsLeft(config.InactivityDisconnect-idle)),
				"Press any key to continue")
		}
		if err := term.Present(); err != nil {
			return fmt.Errorf("write frame: %w", err)
		}

		// ===== FRAME TIMING =====
		elapsed := time.Since(frameStart)
		if elapsed < config.TargetFrameTime {
			time.Sleep(config.TargetFrameTime - elapsed)
		}
	}

	return nil
}

// drawNotice shows a boxed message in the middle of the screen.
func drawNotice(s draw.Surface, g *Game, title string, lines ...string) {
	lh := draw.LineHeight(s)
	cx, cy := g.screen.Width/2, g.screen.Height/2
	h := float64(len(lines)+3) * lh

	s.FillRect(cx-320, cy-h/2, 640, h, draw.Overlay)
	y := cy - h/2 + lh
	s.Text(physics.V(cx, y), title, draw.AlignCenter, draw.Red)
	y += lh * 1.5
	for _, line := range lines {
		s.Text(physics.V(cx, y), line, draw.AlignCenter, draw.White)
		y += lh
	}
}

func secondsLeft(d time.Duration) int {
	return max(int(d.Seconds()), 0) + 1
}
