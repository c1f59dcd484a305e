package object

import (
	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
)

// Shot is a bullet fired by the player. It flies straight and is removed
// once it leaves the playfield.
type Shot struct {
	Shape
}

// NewShot creates a shot at pos travelling with vel.
func NewShot(pos, vel physics.Vec) *Shot {
	return &Shot{Shape: Shape{Position: pos, Velocity: vel, Radius: config.ShotRadius}}
}

// Update moves the shot. It asks for removal when its centre is more than
// its own radius outside the screen on any axis.
func (s *Shot) Update(ctx UpdateContext) bool {
	s.step(ctx.Delta.Seconds())
	return !ctx.Screen.Contains(s.Position, s.Radius)
}

// Draw renders the shot as a small circle.
func (s *Shot) Draw(ctx DrawContext) {
	ctx.Surface.Circle(s.Position, s.Radius, draw.White)
}
