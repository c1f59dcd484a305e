// Package draw provides the rendering capability used by game entities and
// a terminal implementation of it.
package draw

import (
	"image/color"

	"github.com/tomz197/rockfall/internal/physics"
)

// Point is a position in logical screen units.
type Point = physics.Vec

// Align controls how Text is anchored at its position.
type Align int

const (
	AlignLeft   Align = iota // Position is the top-left of the text
	AlignCenter              // Position is the centre of the text line
)

// Surface is the set of primitives entities and overlays draw with.
// All coordinates are logical screen units.
type Surface interface {
	Circle(center Point, radius float64, c color.Color)
	Polygon(points []Point, c color.Color)
	FillRect(x, y, w, h float64, c color.Color)
	Text(at Point, s string, align Align, c color.Color)
}

// defaultLineHeight is used for surfaces that don't report their own.
const defaultLineHeight = 20.0

// LineHeight returns the logical height of one line of text on s. Surfaces
// report it through a LineHeight() float64 method.
func LineHeight(s Surface) float64 {
	if lm, ok := s.(interface{ LineHeight() float64 }); ok {
		return lm.LineHeight()
	}
	return defaultLineHeight
}

// Palette shared by entities and screens.
var (
	White   = color.RGBA{R: 255, G: 255, B: 255, A: 255}
	Gray    = color.RGBA{R: 140, G: 140, B: 140, A: 255}
	Black   = color.RGBA{A: 255}
	Blue    = color.RGBA{B: 255, A: 255}
	Green   = color.RGBA{G: 255, A: 255}
	Orange  = color.RGBA{R: 255, G: 165, A: 255}
	Red     = color.RGBA{R: 255, G: 60, B: 60, A: 255}
	Overlay = color.RGBA{A: 160} // Translucent backdrop behind menus
)

// CirclePoints approximates a circle with n points written into dst, which
// is grown when needed. Used by backends without a native circle primitive.
func CirclePoints(dst []Point, center Point, radius float64, n int) []Point {
	if n < 3 {
		n = 3
	}
	if cap(dst) < n {
		dst = make([]Point, n)
	}
	dst = dst[:n]
	step := 360.0 / float64(n)
	for i := range dst {
		dst[i] = center.Add(physics.V(radius, 0).Rotate(step * float64(i)))
	}
	return dst
}
