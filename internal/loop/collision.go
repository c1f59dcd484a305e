package loop

import (
	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/object"
)

// checkCollisions resolves every contact for one tick. Asteroids are the
// outer loop: each is tested against the player, then against nearby
// shots. The first live shot that touches an asteroid consumes it. Then
// the player collects any power-ups it touches.
//
// Nothing is added or removed from the collections here; kills and
// spawns are applied by World.Update afterwards.
func (g *Game) checkCollisions() {
	w := g.World
	shots := w.Shots()

	g.grid.Clear()
	for i, s := range shots {
		g.grid.Insert(s.Position, i)
	}

	for _, a := range w.Asteroids() {
		if !w.Alive(a) {
			continue
		}

		if a.CollidesWith(g.Player) {
			if g.Player.ShieldActive {
				w.SplitAsteroid(a)
				continue
			}
			g.playerHit = true
		}

		g.grid.QueryAround(a.Position, func(i int) bool {
			s := shots[i]
			if !w.Alive(s) || !a.CollidesWith(s) {
				return false
			}
			w.Kill(s)
			w.SplitAsteroid(a)
			g.Score += config.ScorePerHit
			g.maybeDropPowerUp(a)
			return true
		})
	}

	for _, u := range w.PowerUps() {
		if w.Alive(u) && g.Player.CollidesWith(u) {
			u.ApplyEffect(g.Player)
			w.Kill(u)
		}
	}
}

// maybeDropPowerUp leaves a random pickup where a was destroyed.
func (g *Game) maybeDropPowerUp(a *object.Asteroid) {
	rng := g.World.Rand
	if rng.Float64() >= config.PowerUpDropChance {
		return
	}
	kind := object.RandomPowerUpKind(rng)
	log.Debug("power-up dropped", "kind", kind, "x", a.Position.X, "y", a.Position.Y)
	g.World.Spawn(object.NewPowerUp(kind, a.Position))
}
