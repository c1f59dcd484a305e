package object

import (
	"image/color"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
)

// Player is the player-controlled ship. Rotation is in degrees; rotation 0
// faces down the screen.
type Player struct {
	Shape
	Rotation float64

	// Timed power-up state. At most one effect is active.
	CooldownMultiplier float64
	ActiveKind         PowerUpKind
	ActiveColor        color.Color
	PowerUpTimer       float64
	ShieldActive       bool
	SpreadShotActive   bool

	shootTimer float64
	hull       []draw.Point
}

// NewPlayer creates the ship at pos with no effect active.
func NewPlayer(pos physics.Vec) *Player {
	return &Player{
		Shape:              Shape{Position: pos, Radius: config.PlayerRadius},
		CooldownMultiplier: 1.0,
	}
}

// ShootTimer returns the seconds until the next shot is allowed.
func (p *Player) ShootTimer() float64 {
	return p.shootTimer
}

// Forward returns the ship's unit heading.
func (p *Player) Forward() physics.Vec {
	return physics.Forward(p.Rotation)
}

// Rotate turns the ship by PlayerTurnSpeed * dt degrees.
func (p *Player) Rotate(dt float64) {
	p.Rotation += config.PlayerTurnSpeed * dt
}

// Move pushes the ship along its heading. Negative dt reverses.
func (p *Player) Move(dt float64) {
	p.Position = p.Position.Add(p.Forward().Scale(config.PlayerSpeed * dt))
}

// Shoot fires if the cooldown has elapsed: one shot straight ahead, or
// three fanned out when spread shot is active. Returns whether it fired.
func (p *Player) Shoot(spawner Spawner) bool {
	if p.shootTimer > 0 || spawner == nil {
		return false
	}

	offsets := []float64{0}
	if p.SpreadShotActive {
		offsets = []float64{-config.SpreadShotAngle, 0, config.SpreadShotAngle}
	}
	for _, off := range offsets {
		vel := physics.Forward(p.Rotation + off).Scale(config.PlayerShootSpeed)
		spawner.Spawn(NewShot(p.Position, vel))
	}

	p.shootTimer = config.PlayerShootCooldown * p.CooldownMultiplier
	return true
}

// Update applies held controls, counts down the cooldown, wraps the ship
// and expires the active power-up.
func (p *Player) Update(ctx UpdateContext) bool {
	dt := ctx.Delta.Seconds()
	in := ctx.Input

	if in.Up {
		p.Move(dt)
		if ctx.Rand != nil {
			SpawnThrust(p.Position.Sub(p.Forward().Scale(p.Radius)), p.Rotation, ctx.Spawner, ctx.Rand)
		}
	}
	if in.Down {
		p.Move(-dt)
	}
	if in.Left {
		p.Rotate(-dt)
	}
	if in.Right {
		p.Rotate(dt)
	}
	if in.Space {
		p.Shoot(ctx.Spawner)
	}

	p.shootTimer -= dt
	p.Position = ctx.Screen.Wrap(p.Position)

	if p.PowerUpTimer > 0 {
		p.PowerUpTimer -= dt
		if p.PowerUpTimer <= 0 {
			log.Debug("power-up expired", "kind", p.ActiveKind)
			p.clearEffect()
		}
	}
	return false
}

// clearEffect reverts any active power-up.
func (p *Player) clearEffect() {
	p.CooldownMultiplier = 1.0
	p.ShieldActive = false
	p.SpreadShotActive = false
	p.ActiveKind = PowerUpNone
	p.ActiveColor = nil
	p.PowerUpTimer = 0
}

// Triangle returns the hull vertices: nose then the two rear corners.
func (p *Player) Triangle() [3]draw.Point {
	forward := p.Forward()
	right := physics.Forward(p.Rotation + 90).Scale(p.Radius / 1.5)
	back := p.Position.Sub(forward.Scale(p.Radius))
	return [3]draw.Point{
		p.Position.Add(forward.Scale(p.Radius)),
		back.Sub(right),
		back.Add(right),
	}
}

// Draw renders the hull in the active power-up colour and, while shielded,
// a ring around it that blinks during the last second.
func (p *Player) Draw(ctx DrawContext) {
	var c color.Color = draw.White
	if p.ActiveColor != nil {
		c = p.ActiveColor
	}

	tri := p.Triangle()
	p.hull = append(p.hull[:0], tri[:]...)
	ctx.Surface.Polygon(p.hull, c)

	if p.ShieldActive {
		remaining := p.PowerUpTimer
		if remaining > 1 {
			remaining = 0
		}
		if ShouldRenderBlink(remaining, 8.0) {
			ctx.Surface.Circle(p.Position, p.Radius+config.ShieldRingPadding, draw.Blue)
		}
	}
}
