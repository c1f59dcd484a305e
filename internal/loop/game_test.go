package loop

import (
	"image/color"
	"math/rand"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/score"
)

const frame = 16 * time.Millisecond

func newTestGame(t *testing.T) (*Game, *score.Board) {
	t.Helper()
	board := score.NewBoard(score.NewMemoryStore(), 5)
	return NewGame(board, Options{Rand: rand.New(rand.NewSource(7))}), board
}

func addAsteroid(g *Game, pos physics.Vec, radius float64) *object.Asteroid {
	a := object.NewAsteroid(pos, physics.Vec{}, radius, g.World.Rand)
	g.World.Add(a)
	return a
}

func addShot(g *Game, pos physics.Vec) *object.Shot {
	s := object.NewShot(pos, physics.Vec{})
	g.World.Add(s)
	return s
}

func TestNewGame(t *testing.T) {
	g, _ := newTestGame(t)
	if g.Mode != ModePlaying || !g.Running() || g.Score != 0 {
		t.Errorf("mode %v running %v score %d", g.Mode, g.Running(), g.Score)
	}
	if g.Player.Position != physics.V(640, 360) {
		t.Errorf("player at %v", g.Player.Position)
	}
	if g.World.Len() != 2 {
		t.Errorf("world has %d entities, want player and field", g.World.Len())
	}
}

func TestShotSplitsAsteroid(t *testing.T) {
	g, _ := newTestGame(t)
	a := addAsteroid(g, physics.V(100, 100), 40)
	s := addShot(g, physics.V(100, 100))

	g.Step(frame, input.Input{})

	if g.Score != 1 {
		t.Errorf("score = %d, want 1", g.Score)
	}
	if g.World.Alive(a) || g.World.Alive(s) {
		t.Error("shot and asteroid should both be destroyed")
	}
	kids := g.World.Asteroids()
	if len(kids) != 2 {
		t.Fatalf("got %d asteroids, want 2 fragments", len(kids))
	}
	for _, k := range kids {
		if k.Radius != 20 {
			t.Errorf("fragment radius = %v", k.Radius)
		}
	}
}

func TestOneShotConsumesOneAsteroid(t *testing.T) {
	g, _ := newTestGame(t)
	addAsteroid(g, physics.V(100, 100), 20)
	addAsteroid(g, physics.V(110, 100), 20)
	addShot(g, physics.V(105, 100))

	g.Step(frame, input.Input{})

	if g.Score != 1 {
		t.Errorf("score = %d, want 1", g.Score)
	}
	if n := len(g.World.Asteroids()); n != 1 {
		t.Errorf("%d asteroids left, want 1", n)
	}
}

func TestOneAsteroidConsumesOneShot(t *testing.T) {
	g, _ := newTestGame(t)
	addAsteroid(g, physics.V(100, 100), 20)
	addShot(g, physics.V(95, 100))
	addShot(g, physics.V(105, 100))

	g.Step(frame, input.Input{})

	if g.Score != 1 {
		t.Errorf("score = %d, want 1", g.Score)
	}
	if n := len(g.World.Shots()); n != 1 {
		t.Errorf("%d shots left, want 1", n)
	}
}

func TestPlayerHitEndsGame(t *testing.T) {
	g, board := newTestGame(t)
	g.Score = 7
	addAsteroid(g, g.Player.Position, 20)

	g.Step(frame, input.Input{})

	if g.Mode != ModeGameOver {
		t.Fatalf("mode = %v, want game over", g.Mode)
	}
	if !slices.Equal(g.HighScores, []int{7}) {
		t.Errorf("high scores = %v", g.HighScores)
	}
	if got := board.Load(); !slices.Equal(got, []int{7}) {
		t.Errorf("board = %v", got)
	}

	// Frozen: further ticks change nothing
	before := g.World.Len()
	g.Step(time.Second, input.Input{Space: true})
	if g.Mode != ModeGameOver || g.World.Len() != before {
		t.Error("game over should freeze the world")
	}
}

func TestShieldSplitsWithoutScore(t *testing.T) {
	g, _ := newTestGame(t)
	object.NewPowerUp(object.Shield, physics.Vec{}).ApplyEffect(g.Player)
	a := addAsteroid(g, g.Player.Position, 40)

	g.Step(frame, input.Input{})

	if g.Mode != ModePlaying {
		t.Fatalf("shielded player died")
	}
	if g.Score != 0 {
		t.Errorf("score = %d, want 0", g.Score)
	}
	if g.World.Alive(a) || len(g.World.Asteroids()) != 2 {
		t.Errorf("asteroid not split: %d asteroids", len(g.World.Asteroids()))
	}
}

func TestPowerUpPickup(t *testing.T) {
	g, _ := newTestGame(t)
	u := object.NewPowerUp(object.RapidFire, g.Player.Position.Add(physics.V(25, 0)))
	g.World.Add(u)

	g.Step(frame, input.Input{})

	if g.World.Alive(u) || len(g.World.PowerUps()) != 0 {
		t.Error("power-up should be consumed")
	}
	if g.Player.CooldownMultiplier != 0.5 || g.Player.ActiveKind != object.RapidFire {
		t.Errorf("effect not applied: %+v", g.Player)
	}
}

func TestPauseFreezesWorld(t *testing.T) {
	g, _ := newTestGame(t)
	a := object.NewAsteroid(physics.V(100, 100), physics.V(100, 0), 40, g.World.Rand)
	g.World.Add(a)

	g.Step(frame, input.Input{Pause: true})
	if g.Mode != ModePaused {
		t.Fatalf("mode = %v, want paused", g.Mode)
	}
	pos := a.Position
	g.Step(time.Second, input.Input{Up: true})
	if a.Position != pos {
		t.Error("asteroid moved while paused")
	}

	g.Step(frame, input.Input{Pause: true})
	if g.Mode != ModePlaying {
		t.Errorf("pause key should toggle back, mode = %v", g.Mode)
	}

	g.Step(frame, input.Input{Pause: true})
	g.Step(frame, input.Input{Resume: true, Restart: true})
	if g.Mode != ModePlaying {
		t.Errorf("resume key should unpause, mode = %v", g.Mode)
	}
}

func TestPauseMenuClicks(t *testing.T) {
	g, _ := newTestGame(t)
	g.Step(frame, input.Input{Pause: true})

	g.Step(frame, input.Input{Click: &input.Click{X: 10, Y: 10}})
	if g.Mode != ModePaused {
		t.Error("click outside the menu should do nothing")
	}

	g.Step(frame, input.Input{Click: &input.Click{X: 640, Y: 360}})
	if g.Mode != ModePlaying {
		t.Fatalf("clicking resume left mode %v", g.Mode)
	}

	g.Step(frame, input.Input{Pause: true})
	g.Step(frame, input.Input{Click: &input.Click{X: 600, Y: 420}})
	if g.Running() {
		t.Error("clicking quit should stop the game")
	}
}

func TestQuitFromAnyMode(t *testing.T) {
	for _, mode := range []Mode{ModePlaying, ModePaused, ModeGameOver} {
		g, _ := newTestGame(t)
		g.Mode = mode
		g.Step(frame, input.Input{Quit: true})
		if g.Running() {
			t.Errorf("quit ignored in %v", mode)
		}
	}
}

func TestRestartAfterGameOver(t *testing.T) {
	g, board := newTestGame(t)
	g.Score = 3
	addAsteroid(g, g.Player.Position, 20)
	g.Step(frame, input.Input{})

	g.Step(frame, input.Input{Restart: true})
	if g.Mode != ModePlaying || g.Score != 0 || g.World.Len() != 2 {
		t.Errorf("after restart: mode %v score %d entities %d", g.Mode, g.Score, g.World.Len())
	}
	if g.best != 3 || board.Best() != 3 {
		t.Errorf("best = %d", g.best)
	}
}

func TestFieldSpawnsDuringPlay(t *testing.T) {
	g, _ := newTestGame(t)
	for range 60 {
		g.Step(frame, input.Input{})
	}
	if len(g.World.Asteroids()) == 0 {
		t.Error("no asteroids after a second of play")
	}
}

// textSurface records the text drawn on it.
type textSurface struct {
	texts []string
}

func (s *textSurface) Circle(draw.Point, float64, color.Color)    {}
func (s *textSurface) Polygon([]draw.Point, color.Color)          {}
func (s *textSurface) FillRect(_, _, _, _ float64, _ color.Color) {}
func (s *textSurface) Text(_ draw.Point, text string, _ draw.Align, _ color.Color) {
	s.texts = append(s.texts, text)
}

func (s *textSurface) has(sub string) bool {
	for _, t := range s.texts {
		if strings.Contains(t, sub) {
			return true
		}
	}
	return false
}

func TestDrawOverlays(t *testing.T) {
	g, _ := newTestGame(t)

	s := &textSurface{}
	g.Draw(s)
	if !s.has("Score: 0") || s.has("Paused") {
		t.Errorf("playing HUD: %q", s.texts)
	}

	object.NewPowerUp(object.SpreadShot, physics.Vec{}).ApplyEffect(g.Player)
	s = &textSurface{}
	g.Draw(s)
	if !s.has("SPREAD SHOT") {
		t.Errorf("active power-up not shown: %q", s.texts)
	}

	g.Step(frame, input.Input{Pause: true})
	s = &textSurface{}
	g.Draw(s)
	if !s.has("Paused") || !s.has("R - Resume") || !s.has("Q - Quit") {
		t.Errorf("pause menu: %q", s.texts)
	}

	g.Mode = ModeGameOver
	g.Score = 12
	g.HighScores = []int{20, 12}
	s = &textSurface{}
	g.Draw(s)
	if !s.has("Score: 12") || !s.has("High scores") || !s.has("20") {
		t.Errorf("game over screen: %q", s.texts)
	}
}
