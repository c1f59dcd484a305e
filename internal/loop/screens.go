package loop

import (
	"fmt"
	"strings"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
)

// menuItem identifies a pause menu entry.
type menuItem int

const (
	menuNone menuItem = iota
	menuResume
	menuQuit
)

// button is a clickable menu line.
type button struct {
	item   menuItem
	label  string
	center physics.Vec
	halfW  float64
	halfH  float64
}

func (b button) contains(p physics.Vec) bool {
	return p.X >= b.center.X-b.halfW && p.X <= b.center.X+b.halfW &&
		p.Y >= b.center.Y-b.halfH && p.Y <= b.center.Y+b.halfH
}

// pauseMenu is laid out once per screen size. Hit rectangles are fixed in
// logical units so every frontend tests clicks the same way.
type pauseMenu struct {
	titleAt physics.Vec
	panel   [4]float64 // x, y, w, h
	buttons []button
}

func newPauseMenu(s object.Screen) pauseMenu {
	cx := s.Width / 2
	top := s.Height/3 - 50
	bottom := s.Height/2 + 60 + 50
	return pauseMenu{
		titleAt: physics.V(cx, s.Height/3),
		panel:   [4]float64{cx - 200, top, 400, bottom - top},
		buttons: []button{
			{item: menuResume, label: "R - Resume", center: physics.V(cx, s.Height/2), halfW: 120, halfH: 25},
			{item: menuQuit, label: "Q - Quit", center: physics.V(cx, s.Height/2+60), halfW: 120, halfH: 25},
		},
	}
}

// hit returns the item under p.
func (m pauseMenu) hit(p physics.Vec) menuItem {
	for _, b := range m.buttons {
		if b.contains(p) {
			return b.item
		}
	}
	return menuNone
}

func (m pauseMenu) draw(s draw.Surface) {
	x, y, w, h := m.panel[0], m.panel[1], m.panel[2], m.panel[3]
	s.FillRect(x, y, w, h, draw.Overlay)
	s.Polygon([]draw.Point{{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h}, {X: x, Y: y + h}}, draw.Gray)

	s.Text(m.titleAt, "Paused", draw.AlignCenter, draw.White)
	for _, b := range m.buttons {
		s.Text(b.center, b.label, draw.AlignCenter, draw.White)
	}
}

// drawHUD shows the score, best score, active power-up and key hints.
func (g *Game) drawHUD(s draw.Surface) {
	lh := draw.LineHeight(s)

	s.Text(physics.V(16, 8), fmt.Sprintf("Score: %d", g.Score), draw.AlignLeft, draw.White)
	s.Text(physics.V(16, 8+lh), fmt.Sprintf("Best: %d", max(g.best, g.Score)), draw.AlignLeft, draw.Gray)

	if p := g.Player; p.ActiveKind != object.PowerUpNone && p.ActiveColor != nil {
		label := fmt.Sprintf("%s %.1fs", powerUpLabel(p.ActiveKind), p.PowerUpTimer)
		s.Text(physics.V(g.screen.Width/2, 8), label, draw.AlignCenter, p.ActiveColor)
	}

	s.Text(physics.V(16, g.screen.Height-lh-4), "P - Pause  Q - Quit", draw.AlignLeft, draw.Gray)
}

func powerUpLabel(k object.PowerUpKind) string {
	return strings.ToUpper(strings.ReplaceAll(k.String(), "_", " "))
}

// ASCII art title (figlet "small" font)
var gameOverArt = []string{
	`   ___   _   __  __ ___    _____   _____ ___  `,
	`  / __| /_\ |  \/  | __|  / _ \ \ / / __| _ \ `,
	` | (_ |/ _ \| |\/| | _|  | (_) \ V /| _||   / `,
	`  \___/_/ \_\_|  |_|___|  \___/ \_/ |___|_|_\ `,
}

// drawGameOver shows the final score and the high-score list.
func (g *Game) drawGameOver(s draw.Surface) {
	lh := draw.LineHeight(s)
	cx := g.screen.Width / 2

	lines := len(gameOverArt) + 4 + len(g.HighScores) + 2
	y := g.screen.Height/2 - float64(lines)*lh/2

	s.FillRect(cx-260, y-lh, 520, float64(lines+2)*lh, draw.Overlay)

	for _, line := range gameOverArt {
		s.Text(physics.V(cx, y), line, draw.AlignCenter, draw.Red)
		y += lh
	}
	y += lh

	s.Text(physics.V(cx, y), fmt.Sprintf("Score: %d", g.Score), draw.AlignCenter, draw.White)
	y += 2 * lh

	s.Text(physics.V(cx, y), "High scores", draw.AlignCenter, draw.Gray)
	y += lh
	marked := false
	for i, v := range g.HighScores {
		c := draw.White
		if !marked && v == g.Score && g.Score > 0 {
			c = draw.Green
			marked = true
		}
		s.Text(physics.V(cx, y), fmt.Sprintf("%d. %6d", i+1, v), draw.AlignCenter, c)
		y += lh
	}
	y += lh

	s.Text(physics.V(cx, y), "R / Enter - Restart    Q - Quit", draw.AlignCenter, draw.Gray)
}
