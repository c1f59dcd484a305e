package object

import (
	"math"
	"math/rand"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
)

// Split tuning.
const (
	splitMinAngle   = 20.0
	splitMaxAngle   = 50.0
	splitSpeedBoost = 1.2
)

// Asteroid is a destructible space rock. It drifts in a straight line and
// wraps around the playfield.
type Asteroid struct {
	Shape
	Angle    float64   // Outline rotation in radians (cosmetic)
	Spin     float64   // Outline rotation speed in radians/sec
	Vertices []float64 // Vertex distances from center, as a fraction of Radius

	points []draw.Point
}

// NewAsteroid creates an asteroid with an irregular outline drawn from rng.
func NewAsteroid(pos, vel physics.Vec, radius float64, rng *rand.Rand) *Asteroid {
	// 8-12 vertices, each within ±30% of the radius
	numVerts := 8 + rng.Intn(5)
	vertices := make([]float64, numVerts)
	for i := range vertices {
		vertices[i] = 0.7 + rng.Float64()*0.6
	}

	return &Asteroid{
		Shape:    Shape{Position: pos, Velocity: vel, Radius: radius},
		Angle:    rng.Float64() * 2 * math.Pi,
		Spin:     (rng.Float64() - 0.5) * 2.0,
		Vertices: vertices,
	}
}

// Update moves the asteroid and wraps it around the screen edges.
func (a *Asteroid) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	a.step(dt)
	a.Position = ctx.Screen.Wrap(a.Position)
	a.Angle += a.Spin * dt
	return false
}

// Split returns the fragments this asteroid breaks into. Asteroids at or
// below the minimum radius yield none. Otherwise two fragments share the
// parent's position, each AsteroidMinRadius smaller, their velocities
// deflected by the same random angle in opposite senses and sped up.
// Removing the parent is the caller's job.
func (a *Asteroid) Split(rng *rand.Rand) []*Asteroid {
	if a.Radius <= config.AsteroidMinRadius {
		return nil
	}

	angle := splitMinAngle + rng.Float64()*(splitMaxAngle-splitMinAngle)
	radius := a.Radius - config.AsteroidMinRadius

	return []*Asteroid{
		NewAsteroid(a.Position, a.Velocity.Rotate(angle).Scale(splitSpeedBoost), radius, rng),
		NewAsteroid(a.Position, a.Velocity.Rotate(-angle).Scale(splitSpeedBoost), radius, rng),
	}
}

// Draw renders the asteroid as an irregular polygon.
func (a *Asteroid) Draw(ctx DrawContext) {
	n := len(a.Vertices)
	if n < 3 {
		ctx.Surface.Circle(a.Position, a.Radius, draw.White)
		return
	}

	if cap(a.points) < n {
		a.points = make([]draw.Point, n)
	}
	a.points = a.points[:n]

	for i, dist := range a.Vertices {
		vertAngle := a.Angle + float64(i)*2*math.Pi/float64(n)
		a.points[i] = draw.Point{
			X: a.Position.X + math.Cos(vertAngle)*dist*a.Radius,
			Y: a.Position.Y + math.Sin(vertAngle)*dist*a.Radius,
		}
	}
	ctx.Surface.Polygon(a.points, draw.White)
}
