package object

import (
	"image/color"
	"math"
	"math/rand"
	"sync"

	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
)

// particlePool is a sync.Pool for reusing Particle objects to reduce allocations.
var particlePool = sync.Pool{
	New: func() any {
		return &Particle{}
	},
}

// Particle is a short-lived visual effect. It never collides.
type Particle struct {
	Position    physics.Vec
	Velocity    physics.Vec
	Lifetime    float64 // Seconds remaining
	MaxLifetime float64 // Initial lifetime (for fade calculation)
	Drag        float64 // Velocity decay per 1/60 s (1.0 = no drag)
	Color       color.Color
}

// NewParticle creates a single particle from the pool.
func NewParticle(pos, vel physics.Vec, lifetime float64, c color.Color) *Particle {
	p := particlePool.Get().(*Particle)
	p.Position = pos
	p.Velocity = vel
	p.Lifetime = lifetime
	p.MaxLifetime = lifetime
	p.Drag = 0.95
	p.Color = c
	return p
}

// Release returns the particle to the pool for reuse.
// Should be called when the particle is removed from the game.
func (p *Particle) Release() {
	particlePool.Put(p)
}

// SpawnExplosion creates count particles bursting out of pos.
func SpawnExplosion(pos physics.Vec, count int, speed, lifetime float64, spawner Spawner, rng *rand.Rand) {
	if spawner == nil || rng == nil {
		return
	}

	for range count {
		angle := rng.Float64() * 360
		spd := speed * (0.5 + rng.Float64())
		life := lifetime * (0.5 + rng.Float64()*0.5)
		vel := physics.V(spd, 0).Rotate(angle)
		spawner.Spawn(NewParticle(pos, vel, life, draw.White))
	}
}

// SpawnThrust emits one or two particles out of the back of a ship facing
// rotation degrees.
func SpawnThrust(pos physics.Vec, rotation float64, spawner Spawner, rng *rand.Rand) {
	if spawner == nil || rng == nil {
		return
	}

	count := 1 + rng.Intn(2)
	for range count {
		dir := physics.Forward(rotation + 180 + (rng.Float64()-0.5)*30)
		speed := 60.0 + rng.Float64()*40.0
		lifetime := 0.1 + rng.Float64()*0.15

		p := NewParticle(pos, dir.Scale(speed), lifetime, draw.Orange)
		p.Drag = 0.85
		spawner.Spawn(p)
	}
}

// Update moves the particle and checks lifetime.
func (p *Particle) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()

	p.Lifetime -= dt
	if p.Lifetime <= 0 {
		return true
	}

	p.Velocity = p.Velocity.Scale(math.Pow(p.Drag, dt*60)) // Normalise drag to ~60fps
	p.Position = p.Position.Add(p.Velocity.Scale(dt))

	// Particles do not wrap; they die off screen
	return !ctx.Screen.Contains(p.Position, 0)
}

// Draw renders the particle as a dot, dimming over its second half of life.
func (p *Particle) Draw(ctx DrawContext) {
	if p.MaxLifetime <= 0 {
		return
	}
	frac := p.Lifetime / p.MaxLifetime
	if frac < 0.25 {
		return
	}
	c := p.Color
	if frac < 0.5 {
		c = draw.Gray
	}
	ctx.Surface.Circle(p.Position, 1, c)
}
