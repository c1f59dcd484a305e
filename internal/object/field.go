package object

import (
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/physics"
)

// edge is one side of the playfield: where spawns land along it and which
// way points inwards.
type edge struct {
	normal physics.Vec
	at     func(s Screen, t float64) physics.Vec
}

var edges = [...]edge{
	{ // Left
		normal: physics.V(1, 0),
		at:     func(s Screen, t float64) physics.Vec { return physics.V(0, t*s.Height) },
	},
	{ // Right
		normal: physics.V(-1, 0),
		at:     func(s Screen, t float64) physics.Vec { return physics.V(s.Width, t*s.Height) },
	},
	{ // Top
		normal: physics.V(0, 1),
		at:     func(s Screen, t float64) physics.Vec { return physics.V(t*s.Width, 0) },
	},
	{ // Bottom
		normal: physics.V(0, -1),
		at:     func(s Screen, t float64) physics.Vec { return physics.V(t*s.Width, s.Height) },
	},
}

// AsteroidField periodically spawns asteroids on the screen edges. It owns
// no asteroids; they are handed to the spawner.
type AsteroidField struct {
	timer float64
}

// NewAsteroidField creates a field with an empty spawn timer.
func NewAsteroidField() *AsteroidField {
	return &AsteroidField{}
}

// Update accumulates time and spawns one asteroid each time the timer
// exceeds AsteroidSpawnRate.
func (f *AsteroidField) Update(ctx UpdateContext) bool {
	f.timer += ctx.Delta.Seconds()
	if f.timer > config.AsteroidSpawnRate {
		f.timer = 0
		f.spawn(ctx)
	}
	return false
}

// spawn places an asteroid at a uniform point on a random edge, heading
// inwards with a little skew.
func (f *AsteroidField) spawn(ctx UpdateContext) {
	if ctx.Spawner == nil {
		return
	}
	rng := ctx.Rand

	e := edges[rng.Intn(len(edges))]
	speed := config.AsteroidMinSpeed + rng.Intn(config.AsteroidMaxSpeed-config.AsteroidMinSpeed+1)
	skew := rng.Intn(2*config.AsteroidSpawnSkew+1) - config.AsteroidSpawnSkew
	vel := e.normal.Scale(float64(speed)).Rotate(float64(skew))
	pos := e.at(ctx.Screen, rng.Float64())
	kind := 1 + rng.Intn(config.AsteroidKinds)

	ctx.Spawner.Spawn(NewAsteroid(pos, vel, float64(config.AsteroidMinRadius*kind), rng))
}

// Draw is a no-op; the field is not visible.
func (f *AsteroidField) Draw(_ DrawContext) {}
