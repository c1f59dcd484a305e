package desktop

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/tomz197/rockfall/internal/input"
)

// keySource abstracts Ebiten's keyboard queries.
type keySource struct {
	pressed     func(ebiten.Key) bool
	justPressed func(ebiten.Key) bool
}

var ebitenKeys = keySource{
	pressed:     ebiten.IsKeyPressed,
	justPressed: inpututil.IsKeyJustPressed,
}

func (k keySource) anyPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if k.pressed(key) {
			return true
		}
	}
	return false
}

func (k keySource) anyJustPressed(keys ...ebiten.Key) bool {
	for _, key := range keys {
		if k.justPressed(key) {
			return true
		}
	}
	return false
}

// readKeys maps the keyboard onto the frame input.
func readKeys(k keySource) input.Input {
	return input.Input{
		Up:    k.anyPressed(ebiten.KeyW, ebiten.KeyArrowUp),
		Down:  k.anyPressed(ebiten.KeyS, ebiten.KeyArrowDown),
		Left:  k.anyPressed(ebiten.KeyA, ebiten.KeyArrowLeft),
		Right: k.anyPressed(ebiten.KeyD, ebiten.KeyArrowRight),
		Space: k.anyPressed(ebiten.KeySpace),

		Pause:   k.anyJustPressed(ebiten.KeyP, ebiten.KeyEscape),
		Resume:  k.anyJustPressed(ebiten.KeyR),
		Restart: k.anyJustPressed(ebiten.KeyR, ebiten.KeyEnter, ebiten.KeyNumpadEnter),
		Quit:    k.anyJustPressed(ebiten.KeyQ),
	}
}

// readInput polls keyboard and mouse for this tick.
func readInput() input.Input {
	in := readKeys(ebitenKeys)

	for _, b := range []struct {
		eb ebiten.MouseButton
		in input.MouseButton
	}{
		{ebiten.MouseButtonLeft, input.MouseLeft},
		{ebiten.MouseButtonMiddle, input.MouseMiddle},
		{ebiten.MouseButtonRight, input.MouseRight},
	} {
		if inpututil.IsMouseButtonJustPressed(b.eb) {
			x, y := ebiten.CursorPosition()
			in.Click = &input.Click{X: float64(x), Y: float64(y), Button: b.in}
			break
		}
	}
	return in
}
