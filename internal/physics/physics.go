// Package physics provides vectors, collision tests and a broad-phase grid.
package physics

// Circle is anything with a centre and a collision radius.
type Circle interface {
	Center() Vec
	CollisionRadius() float64
}

// DistanceSquared calculates the squared distance between two points.
// Use this when comparing distances to avoid the sqrt cost.
func DistanceSquared(x1, y1, x2, y2 float64) float64 {
	dx := x2 - x1
	dy := y2 - y1
	return dx*dx + dy*dy
}

// CirclesOverlap reports whether two circles touch or overlap.
func CirclesOverlap(x1, y1, r1, x2, y2, r2 float64) bool {
	minDist := r1 + r2
	return DistanceSquared(x1, y1, x2, y2) <= minDist*minDist
}

// CheckCollision reports whether the distance between the centres of a and
// b is at most the sum of their radii.
func CheckCollision(a, b Circle) bool {
	ca, cb := a.Center(), b.Center()
	return CirclesOverlap(ca.X, ca.Y, a.CollisionRadius(), cb.X, cb.Y, b.CollisionRadius())
}
