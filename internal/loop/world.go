package loop

import (
	"math/rand"
	"time"

	"github.com/tomz197/rockfall/internal/input"
	"github.com/tomz197/rockfall/internal/object"
)

// World is the entity registry for one game. Every live entity has an ID
// and sits in the kind collections it belongs to; removal from them is
// destruction.
//
// Additions during a tick are queued (Spawn) and removals are marked
// (Kill), so the collections never change while they are iterated.
// FlushSpawned and Compact apply both at the end of the tick.
type World struct {
	Screen object.Screen
	Rand   *rand.Rand

	nextID object.ID
	ids    map[object.Object]object.ID
	killed map[object.ID]bool

	updatable []object.Object
	drawable  []object.Object
	asteroids []*object.Asteroid
	shots     []*object.Shot
	powerUps  []*object.PowerUp
	particles []*object.Particle

	toSpawn []object.Object
}

// NewWorld creates an empty world.
func NewWorld(screen object.Screen, rng *rand.Rand) *World {
	return &World{
		Screen: screen,
		Rand:   rng,
		ids:    make(map[object.Object]object.ID),
		killed: make(map[object.ID]bool),
	}
}

// Add registers obj immediately and returns its ID. Use Spawn while
// iterating.
func (w *World) Add(obj object.Object) object.ID {
	if id, ok := w.ids[obj]; ok {
		return id
	}
	w.nextID++
	id := w.nextID
	w.ids[obj] = id

	w.updatable = append(w.updatable, obj)
	switch o := obj.(type) {
	case *object.AsteroidField:
		return id // Not drawable
	case *object.Asteroid:
		w.asteroids = append(w.asteroids, o)
	case *object.Shot:
		w.shots = append(w.shots, o)
	case *object.PowerUp:
		w.powerUps = append(w.powerUps, o)
	case *object.Particle:
		w.particles = append(w.particles, o)
	}
	w.drawable = append(w.drawable, obj)
	return id
}

// Spawn queues an object to be added after the current update cycle.
// Implements object.Spawner interface.
func (w *World) Spawn(obj object.Object) {
	w.toSpawn = append(w.toSpawn, obj)
}

// FlushSpawned adds all queued objects to the world and clears the queue.
func (w *World) FlushSpawned() {
	for _, obj := range w.toSpawn {
		w.Add(obj)
	}
	clear(w.toSpawn)
	w.toSpawn = w.toSpawn[:0]
}

// Kill marks obj for removal at the next Compact. Unknown objects are
// ignored.
func (w *World) Kill(obj object.Object) {
	if id, ok := w.ids[obj]; ok {
		w.killed[id] = true
	}
}

// Alive reports whether obj is registered and not marked for removal.
func (w *World) Alive(obj object.Object) bool {
	id, ok := w.ids[obj]
	return ok && !w.killed[id]
}

// ID returns obj's ID, or 0 if it is not registered.
func (w *World) ID(obj object.Object) object.ID {
	return w.ids[obj]
}

// SplitAsteroid destroys a and queues its fragments and some debris.
func (w *World) SplitAsteroid(a *object.Asteroid) []*object.Asteroid {
	w.Kill(a)
	object.SpawnExplosion(a.Position, int(a.Radius/5), 80, 0.5, w, w.Rand)

	kids := a.Split(w.Rand)
	for _, k := range kids {
		w.Spawn(k)
	}
	return kids
}

// Context builds the update context for one tick.
func (w *World) Context(delta time.Duration, in input.Input) object.UpdateContext {
	return object.UpdateContext{
		Delta:   delta,
		Input:   in,
		Screen:  w.Screen,
		Spawner: w,
		Rand:    w.Rand,
	}
}

// Update advances every live updatable, then flushes spawns and compacts
// removals.
func (w *World) Update(ctx object.UpdateContext) {
	for _, obj := range w.updatable {
		if !w.Alive(obj) {
			continue
		}
		if obj.Update(ctx) {
			w.Kill(obj)
		}
	}
	w.FlushSpawned()
	w.Compact()
}

// Draw renders every live drawable in insertion order.
func (w *World) Draw(ctx object.DrawContext) {
	for _, obj := range w.drawable {
		if w.Alive(obj) {
			obj.Draw(ctx)
		}
	}
}

// Compact drops killed entities from every collection and returns pooled
// ones to their pools.
func (w *World) Compact() {
	if len(w.killed) == 0 {
		return
	}

	w.drawable = keepAlive(w, w.drawable)
	w.asteroids = keepAlive(w, w.asteroids)
	w.shots = keepAlive(w, w.shots)
	w.powerUps = keepAlive(w, w.powerUps)
	w.particles = keepAlive(w, w.particles)

	// updatable holds every entity, so it is the one that releases
	kept := w.updatable[:0] // reuse backing array
	for _, obj := range w.updatable {
		if id := w.ids[obj]; w.killed[id] {
			delete(w.ids, obj)
			object.ReleaseObject(obj)
			continue
		}
		kept = append(kept, obj)
	}
	clear(w.updatable[len(kept):])
	w.updatable = kept

	clear(w.killed)
}

// keepAlive compacts objs in place, dropping killed entries.
func keepAlive[T object.Object](w *World, objs []T) []T {
	kept := objs[:0]
	for _, obj := range objs {
		if w.Alive(obj) {
			kept = append(kept, obj)
		}
	}
	clear(objs[len(kept):])
	return kept
}

// Asteroids returns the asteroid collection. The slice is stable until
// the next FlushSpawned or Compact.
func (w *World) Asteroids() []*object.Asteroid { return w.asteroids }

// Shots returns the shot collection.
func (w *World) Shots() []*object.Shot { return w.shots }

// PowerUps returns the power-up collection.
func (w *World) PowerUps() []*object.PowerUp { return w.powerUps }

// Particles returns the particle collection.
func (w *World) Particles() []*object.Particle { return w.particles }

// Len returns the number of registered entities.
func (w *World) Len() int { return len(w.updatable) }
