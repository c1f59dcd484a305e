// Package object contains the game entities: the player ship, asteroids,
// shots, power-ups, the asteroid field and cosmetic particles.
package object

import (
	"math/rand"
	"time"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/physics"
)

// ID identifies an entity in the world registry. Zero means unregistered.
type ID uint64

// Spawner allows objects to spawn new objects during update. Spawned
// objects join the world after the current iteration finishes.
type Spawner interface {
	Spawn(obj Object)
}

// UpdateContext provides all the information an object needs during update.
type UpdateContext struct {
	Delta   time.Duration
	Input   input.Input
	Screen  Screen
	Spawner Spawner
	Rand    *rand.Rand
}

// DrawContext provides drawing resources for objects.
type DrawContext struct {
	Surface draw.Surface
}

// Screen is the playfield rectangle in logical units.
type Screen struct {
	Width  float64
	Height float64
}

// DefaultScreen returns the standard playfield.
func DefaultScreen() Screen {
	return Screen{Width: config.ScreenWidth, Height: config.ScreenHeight}
}

// Center returns the middle of the playfield.
func (s Screen) Center() physics.Vec {
	return physics.V(s.Width/2, s.Height/2)
}

// Wrap moves a position that left the playfield to the opposite edge. Each
// axis wraps independently: beyond the far edge resets to 0, below 0 resets
// to the far edge.
func (s Screen) Wrap(p physics.Vec) physics.Vec {
	if p.X > s.Width {
		p.X = 0
	} else if p.X < 0 {
		p.X = s.Width
	}
	if p.Y > s.Height {
		p.Y = 0
	} else if p.Y < 0 {
		p.Y = s.Height
	}
	return p
}

// Contains reports whether p lies inside the playfield grown by margin on
// every side.
func (s Screen) Contains(p physics.Vec, margin float64) bool {
	return p.X >= -margin && p.X <= s.Width+margin &&
		p.Y >= -margin && p.Y <= s.Height+margin
}

// Object is a drawable and updatable game entity.
type Object interface {
	// Update advances the object by ctx.Delta. Returns true if the object
	// should be removed.
	Update(ctx UpdateContext) (remove bool)

	// Draw renders the object onto ctx.Surface.
	Draw(ctx DrawContext)
}

// Releasable is implemented by pooled objects that can be returned to a pool.
type Releasable interface {
	// Release returns the object to its pool for reuse.
	Release()
}

// ReleaseObject releases an object back to its pool if it implements Releasable.
func ReleaseObject(obj Object) {
	if r, ok := obj.(Releasable); ok {
		r.Release()
	}
}

// ShouldRenderBlink returns true if an object with a running countdown
// should be rendered this frame (for blinking effect). Returns true always
// if remainingTime <= 0.
func ShouldRenderBlink(remainingTime float64, frequency float64) bool {
	if remainingTime <= 0 {
		return true
	}
	phase := int(remainingTime * frequency)
	return phase%2 != 0
}
