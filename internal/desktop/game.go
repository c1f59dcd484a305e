// Package desktop runs the game in a native window with Ebiten.
package desktop

import (
	"time"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/loop"
	"github.com/tomz197/rockfall/internal/score"
)

// Game adapts a loop.Game to ebiten.Game.
type Game struct {
	game     *loop.Game
	surface  *Surface
	settings *SettingsManager
}

var _ ebiten.Game = (*Game)(nil)

// NewGame wraps a fresh session.
func NewGame(board *score.Board, settings *SettingsManager) *Game {
	return &Game{
		game:     loop.NewGame(board, loop.Options{}),
		surface:  NewSurface(),
		settings: settings,
	}
}

// Update advances one fixed tick. F11 toggles fullscreen.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		g.toggleFullscreen()
	}

	g.game.Step(time.Second/time.Duration(ebiten.TPS()), readInput())
	if !g.game.Running() {
		return ebiten.Termination
	}
	return nil
}

func (g *Game) toggleFullscreen() {
	on := !ebiten.IsFullscreen()
	ebiten.SetFullscreen(on)
	g.settings.SetFullscreen(on)
	if err := g.settings.Save(); err != nil {
		log.Warn("failed to save settings", "err", err)
	}
}

// Draw renders the session.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(draw.Black)
	g.surface.Target(screen)
	g.game.Draw(g.surface)
}

// Layout returns the game's logical screen size. Ebiten scales it to the
// window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.ScreenWidth, config.ScreenHeight
}

// Run opens the window and blocks until the player quits or closes it.
func Run(board *score.Board, settings *SettingsManager) error {
	s := settings.Settings()
	ebiten.SetWindowSize(int(config.ScreenWidth*s.WindowScale), int(config.ScreenHeight*s.WindowScale))
	ebiten.SetWindowTitle("Rockfall")
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetFullscreen(s.Fullscreen)
	ebiten.SetTPS(config.TargetFPS)

	// RunGame reports ebiten.Termination as nil
	return ebiten.RunGame(NewGame(board, settings))
}
