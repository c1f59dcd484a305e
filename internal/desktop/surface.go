package desktop

import (
	"image"
	"image/color"
	"unicode/utf8"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
)

// Debug font metrics in pixels.
const (
	glyphWidth  = 6
	glyphHeight = 16
	strokeWidth = 2
)

// Surface draws onto an Ebiten image. The image is expected to be in
// logical units (Layout returns the logical screen size).
type Surface struct {
	dst     *ebiten.Image
	scratch *ebiten.Image // Text is printed here, then tinted onto dst
}

var _ draw.Surface = (*Surface)(nil)

// NewSurface creates a surface with its own text scratch buffer.
func NewSurface() *Surface {
	return &Surface{
		scratch: ebiten.NewImage(config.ScreenWidth, glyphHeight),
	}
}

// Target sets the image drawn on for the current frame.
func (s *Surface) Target(dst *ebiten.Image) {
	s.dst = dst
}

// LineHeight is one debug font line.
func (s *Surface) LineHeight() float64 {
	return glyphHeight
}

// Circle implements draw.Surface.
func (s *Surface) Circle(center draw.Point, radius float64, c color.Color) {
	if radius < 1.5 {
		vector.DrawFilledCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), c, true)
		return
	}
	vector.StrokeCircle(s.dst, float32(center.X), float32(center.Y), float32(radius), strokeWidth, c, true)
}

// Polygon implements draw.Surface.
func (s *Surface) Polygon(points []draw.Point, c color.Color) {
	for i, p := range points {
		q := points[(i+1)%len(points)]
		vector.StrokeLine(s.dst, float32(p.X), float32(p.Y), float32(q.X), float32(q.Y), strokeWidth, c, true)
	}
}

// FillRect implements draw.Surface.
func (s *Surface) FillRect(x, y, w, h float64, c color.Color) {
	vector.DrawFilledRect(s.dst, float32(x), float32(y), float32(w), float32(h), c, false)
}

// Text implements draw.Surface. The debug font only prints white, so the
// line is printed to a scratch image and drawn tinted.
func (s *Surface) Text(at draw.Point, str string, align draw.Align, c color.Color) {
	width := min(utf8.RuneCountInString(str)*glyphWidth, s.scratch.Bounds().Dx())
	if width == 0 {
		return
	}
	x := at.X
	if align == draw.AlignCenter {
		x -= float64(width) / 2
	}

	s.scratch.Clear()
	ebitenutil.DebugPrintAt(s.scratch, str, 0, 0)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(x, at.Y-glyphHeight/2)
	op.ColorScale.ScaleWithColor(c)
	s.dst.DrawImage(s.scratch.SubImage(image.Rect(0, 0, width, glyphHeight)).(*ebiten.Image), op)
}
