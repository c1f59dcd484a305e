package object

import (
	"fmt"
	"image/color"
	"math"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/tomz197/rockfall/internal/config"
	"github.com/tomz197/rockfall/internal/draw"
	"github.com/tomz197/rockfall/internal/physics"
)

// PowerUpKind is the closed set of pickups.
type PowerUpKind int

const (
	PowerUpNone PowerUpKind = iota
	RapidFire
	Shield
	SpreadShot
)

// PowerUpKinds lists every droppable kind.
var PowerUpKinds = []PowerUpKind{RapidFire, Shield, SpreadShot}

type powerUpAttrs struct {
	name     string
	radius   float64
	color    color.RGBA
	duration float64 // Seconds
}

var powerUpTable = map[PowerUpKind]powerUpAttrs{
	RapidFire:  {name: "rapid_fire", radius: 10, color: draw.Green, duration: config.PowerUpDuration},
	Shield:     {name: "shield", radius: 12, color: draw.Blue, duration: config.PowerUpDuration},
	SpreadShot: {name: "spread_shot", radius: 12, color: draw.Orange, duration: config.PowerUpDuration},
}

func (k PowerUpKind) String() string {
	if k == PowerUpNone {
		return "none"
	}
	if a, ok := powerUpTable[k]; ok {
		return a.name
	}
	return fmt.Sprintf("PowerUpKind(%d)", int(k))
}

// attrs returns the fixed attributes of k. Unknown kinds are a programming
// error.
func (k PowerUpKind) attrs() powerUpAttrs {
	a, ok := powerUpTable[k]
	if !ok {
		panic(fmt.Sprintf("object: unknown power-up kind %v", k))
	}
	return a
}

// RandomPowerUpKind picks a kind uniformly.
func RandomPowerUpKind(rng *rand.Rand) PowerUpKind {
	return PowerUpKinds[rng.Intn(len(PowerUpKinds))]
}

// PowerUp is a stationary pickup that grants the player a timed effect.
type PowerUp struct {
	Shape
	Kind     PowerUpKind
	Color    color.RGBA
	Duration float64

	age float64
}

// NewPowerUp creates a pickup of kind at pos. Panics on an unknown kind.
func NewPowerUp(kind PowerUpKind, pos physics.Vec) *PowerUp {
	a := kind.attrs()
	return &PowerUp{
		Shape:    Shape{Position: pos, Radius: a.radius},
		Kind:     kind,
		Color:    a.color,
		Duration: a.duration,
	}
}

// ApplyEffect grants the effect to p, replacing whatever was active.
func (u *PowerUp) ApplyEffect(p *Player) {
	p.clearEffect()

	switch u.Kind {
	case RapidFire:
		p.CooldownMultiplier = config.RapidFireFactor
	case Shield:
		p.ShieldActive = true
	case SpreadShot:
		p.SpreadShotActive = true
	default:
		panic(fmt.Sprintf("object: no effect implemented for power-up kind %v", u.Kind))
	}

	p.ActiveKind = u.Kind
	p.ActiveColor = u.Color
	p.PowerUpTimer = u.Duration
	log.Debug("power-up applied", "kind", u.Kind, "duration", u.Duration)
}

// Update only advances the pulse animation; pickups never move.
func (u *PowerUp) Update(ctx UpdateContext) bool {
	u.age += ctx.Delta.Seconds()
	return false
}

// Draw renders a filled-looking disc with a pulsing outer ring.
func (u *PowerUp) Draw(ctx DrawContext) {
	ctx.Surface.Circle(u.Position, u.Radius, u.Color)
	ctx.Surface.Circle(u.Position, u.Radius/2, u.Color)
	pulse := 1.3 + 0.2*math.Sin(u.age*2*math.Pi)
	ctx.Surface.Circle(u.Position, u.Radius*pulse, draw.Gray)
}
