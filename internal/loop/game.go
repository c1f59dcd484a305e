// Package loop runs a game session: the entity registry, collision
// resolution, the playing/paused/game-over state machine and the terminal
// frame loop.
package loop

import (
	"math/rand"
	"time"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
	"github.com/tomz197/rockfall/internal/physics"
	"github.com/tomz197/rockfall/internal/score"
)

// Mode is the current game phase.
type Mode int

const (
	ModePlaying  Mode = iota // Active gameplay
	ModePaused               // Frozen, pause menu shown
	ModeGameOver             // Ship destroyed, waiting for restart or quit
)

func (m Mode) String() string {
	switch m {
	case ModePlaying:
		return "playing"
	case ModePaused:
		return "paused"
	case ModeGameOver:
		return "game over"
	default:
		return "unknown"
	}
}

// Options configures a Game.
type Options struct {
	// Rand drives every random choice. Nil seeds one from the clock.
	Rand *rand.Rand
	// Screen is the playfield. Zero uses object.DefaultScreen.
	Screen object.Screen
}

// Game is one play session. It is not safe for concurrent use; each
// session owns its own Game and only the score board is shared.
type Game struct {
	World  *World
	Player *object.Player
	Mode   Mode
	Score  int

	// HighScores is the list shown on the game-over screen.
	HighScores []int

	board     *score.Board
	rng       *rand.Rand
	screen    object.Screen
	grid      *physics.SpatialGrid
	menu      pauseMenu
	best      int // Top persisted score when the round started
	playerHit bool
	running   bool
}

// NewGame starts a session. A nil board keeps scores in memory only.
func NewGame(board *score.Board, opts Options) *Game {
	if board == nil {
		board = score.NewBoard(score.NewMemoryStore(), config.HighScoreLimit)
	}
	rng := opts.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	screen := opts.Screen
	if screen == (object.Screen{}) {
		screen = object.DefaultScreen()
	}

	g := &Game{
		board:   board,
		rng:     rng,
		screen:  screen,
		grid:    physics.NewSpatialGrid(screen.Width, screen.Height, config.CollisionCellSize),
		menu:    newPauseMenu(screen),
		running: true,
	}
	g.Reset()
	return g
}

// Reset starts a fresh round: empty world, ship in the centre, new field.
func (g *Game) Reset() {
	g.World = NewWorld(g.screen, g.rng)
	g.Player = object.NewPlayer(g.screen.Center())
	g.World.Add(g.Player)
	g.World.Add(object.NewAsteroidField())

	g.Mode = ModePlaying
	g.Score = 0
	g.HighScores = nil
	g.playerHit = false
	g.best = g.board.Best()
}

// Running reports whether the session should continue.
func (g *Game) Running() bool {
	return g.running
}

// Board returns the shared score board.
func (g *Game) Board() *score.Board {
	return g.board
}

// Step advances the session by one frame of input and time.
func (g *Game) Step(delta time.Duration, in input.Input) {
	if in.Quit {
		g.running = false
		return
	}

	switch g.Mode {
	case ModePlaying:
		if in.Pause {
			g.Mode = ModePaused
			return
		}
		g.tick(delta, in)

	case ModePaused:
		if in.Pause || in.Resume {
			g.Mode = ModePlaying
			return
		}
		if in.Click != nil && in.Click.Button == input.MouseLeft {
			switch g.menu.hit(physics.V(in.Click.X, in.Click.Y)) {
			case menuResume:
				g.Mode = ModePlaying
			case menuQuit:
				g.running = false
			}
		}

	case ModeGameOver:
		if in.Restart {
			g.Reset()
		}
	}
}

// tick runs one simulation step: collisions, updates, spawns, removals,
// then the game-over check.
func (g *Game) tick(delta time.Duration, in input.Input) {
	g.checkCollisions()
	g.World.Update(g.World.Context(delta, in))

	if g.playerHit {
		g.gameOver()
	}
}

// gameOver freezes the round and records the score.
func (g *Game) gameOver() {
	g.Mode = ModeGameOver
	g.playerHit = false
	g.HighScores = g.board.Record(g.Score)
	log.Info("game over", "score", g.Score, "best", g.HighScores[0])
}

// Draw renders the world and the overlay for the current mode.
func (g *Game) Draw(s draw.Surface) {
	g.World.Draw(object.DrawContext{Surface: s})

	switch g.Mode {
	case ModePlaying:
		g.drawHUD(s)
	case ModePaused:
		g.drawHUD(s)
		g.menu.draw(s)
	case ModeGameOver:
		g.drawGameOver(s)
	}
}
