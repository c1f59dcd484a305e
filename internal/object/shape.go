package object

import "github.com/tomz197/rockfall/internal/physics"

// Shape is the circular body shared by every collidable entity.
type Shape struct {
	Position physics.Vec
	Velocity physics.Vec
	Radius   float64
}

// Center implements physics.Circle.
func (s Shape) Center() physics.Vec {
	return s.Position
}

// CollisionRadius implements physics.Circle.
func (s Shape) CollisionRadius() float64 {
	return s.Radius
}

// CollidesWith reports whether s touches or overlaps other.
func (s Shape) CollidesWith(other physics.Circle) bool {
	return physics.CheckCollision(s, other)
}

// step advances the position by velocity over dt seconds.
func (s *Shape) step(dt float64) {
	s.Position = s.Position.Add(s.Velocity.Scale(dt))
}
