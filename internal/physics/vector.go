package physics

import "math"

// Vec is a 2D vector in logical screen units (y grows downwards).
type Vec struct {
	X, Y float64
}

// V is shorthand for constructing a Vec.
func V(x, y float64) Vec {
	return Vec{X: x, Y: y}
}

// Add returns v + o.
func (v Vec) Add(o Vec) Vec {
	return Vec{X: v.X + o.X, Y: v.Y + o.Y}
}

// Sub returns v - o.
func (v Vec) Sub(o Vec) Vec {
	return Vec{X: v.X - o.X, Y: v.Y - o.Y}
}

// Scale returns v * k.
func (v Vec) Scale(k float64) Vec {
	return Vec{X: v.X * k, Y: v.Y * k}
}

// Len returns the Euclidean length of v.
func (v Vec) Len() float64 {
	return math.Hypot(v.X, v.Y)
}

// Rotate returns v rotated by deg degrees. Positive angles turn from +X
// towards +Y, which is clockwise on screen.
func (v Vec) Rotate(deg float64) Vec {
	rad := deg * math.Pi / 180
	sin, cos := math.Sincos(rad)
	return Vec{
		X: v.X*cos - v.Y*sin,
		Y: v.X*sin + v.Y*cos,
	}
}

// Angle returns the signed angle in degrees from v to o, in (-180, 180].
func (v Vec) Angle(o Vec) float64 {
	a := math.Atan2(o.Y, o.X) - math.Atan2(v.Y, v.X)
	for a > math.Pi {
		a -= 2 * math.Pi
	}
	for a <= -math.Pi {
		a += 2 * math.Pi
	}
	return a * 180 / math.Pi
}

// Forward returns the unit heading for a rotation in degrees. Rotation 0
// points down the screen (+Y).
func Forward(rotation float64) Vec {
	return Vec{X: 0, Y: 1}.Rotate(rotation)
}
