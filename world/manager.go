// Package world keeps host visual elements in step with rigid bodies of a physics engine.
//
// A Manager owns one engine instance framed by three invisible walls, a registry of
// objects (element + body under a shared id) and an optional periodic loop. Each tick
// advances the engine by a fixed step, copies body transforms onto elements and collects
// objects whose element was detached by the host.
//
// A Manager is not safe for concurrent use. All calls must happen on the goroutine of the
// Scheduler it was built with, which is also where ticks run.
package world

import (
	"fmt"
	"math"

	"go.uber.org/zap"

	"github.com/lixenwraith/heavy-boxes/clock"
	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/physics"
	"github.com/lixenwraith/heavy-boxes/surface"
)

// Manager drives a simulation whose bodies are mirrored by elements of a container
type Manager struct {
	container surface.Element
	scheduler clock.Scheduler
	engine    physics.Engine
	boundary  Boundary

	// Registry of live objects keyed by id
	objects map[int]*Object
	lastID  int

	// Active run loop, nil while stopped
	loop clock.Handle

	// Rotation property, empty when the host supports none
	transform string

	opts options
	log  *zap.Logger
}

// New builds the world for container: measures it, frames it with walls and probes
// which style property carries rotations
func New(container surface.Element, scheduler clock.Scheduler, opts ...Option) *Manager {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	w, h := container.Dimensions()
	m := &Manager{
		container: container,
		scheduler: scheduler,
		objects:   make(map[int]*Object),
		opts:      o,
		log:       o.log,
	}

	m.engine = o.engine(physics.WorldDef{
		Lower:      o.lower,
		Upper:      o.upper,
		Gravity:    o.gravity,
		AllowSleep: true,
	})

	m.boundary = boundaryFor(V2W(w), V2W(h))
	for _, wall := range m.boundary.walls() {
		m.engine.CreateBody(wall.bodyDef())
	}

	if p, ok := probeTransform(container); ok {
		m.transform = p
	} else {
		m.log.Info("host has no rotation property, rotations disabled")
	}

	m.log.Debug("world created",
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.String("transform", m.transform))
	return m
}

// ObjectCount returns the number of live objects
func (m *Manager) ObjectCount() int {
	return len(m.objects)
}

// Object returns a copy of the live object registered under id
func (m *Manager) Object(id int) (Object, bool) {
	obj, ok := m.objects[id]
	if !ok {
		return Object{}, false
	}
	return *obj, true
}

// Boundary returns the wall layout in world units
func (m *Manager) Boundary() Boundary {
	return m.boundary
}

// TransformProperty returns the probed rotation property, ok is false when unsupported
func (m *Manager) TransformProperty() (string, bool) {
	return m.transform, m.transform != ""
}

// Running reports whether the loop is active
func (m *Manager) Running() bool {
	return m.loop != nil
}

// Run starts the simulation loop, no-op when already running
func (m *Manager) Run() {
	if m.loop != nil {
		return
	}
	m.loop = m.scheduler.Every(m.opts.interval, m.Tick)
}

// Stop cancels the simulation loop, no-op when stopped
func (m *Manager) Stop() {
	if m.loop == nil {
		return
	}
	m.loop.Cancel()
	m.loop = nil
}

// Tick advances the engine by one fixed step and synchronizes elements
func (m *Manager) Tick() {
	m.engine.Step(constant.TimeStep, constant.SolverIterations)
	m.sync()
}

// AddBox drops a box element with the given content at left/top
func (m *Manager) AddBox(left, top float64, content string, velocity physics.Vec2) int {
	return m.AddElement(physics.ShapeBox, left, top, content, velocity)
}

// AddBall drops a ball element with the given content at left/top
func (m *Manager) AddBall(left, top float64, content string, velocity physics.Vec2) int {
	return m.AddElement(physics.ShapeCircle, left, top, content, velocity)
}

// AddElement creates an element and its body and returns the new object id
// A zero-sized element yields a degenerate shape; nothing guards against it
func (m *Manager) AddElement(shape physics.ShapeKind, left, top float64, content string, velocity physics.Vec2) int {
	m.lastID++
	id := m.lastID

	el := m.container.Append(fmt.Sprintf("%s%d", constant.ElementPrefix, id), content)
	el.Move(left, top)

	// Freeze the measured size so the element always reflects its body
	w, h := el.Dimensions()
	el.Pin(w, h)

	cx := V2W(left + w/2)
	cy := V2W(top + h/2)

	var body physics.Body
	if shape == physics.ShapeCircle {
		body = m.createBall(cx, cy, V2W(w/2))
	} else {
		body = m.createBox(cx, cy, V2W(w/2), V2W(h/2), false)
	}
	body.SetTag(id)

	if m.opts.scaleVelocity {
		velocity = physics.Vec2{X: V2W(velocity.X), Y: V2W(velocity.Y)}
	}
	body.SetLinearVelocity(velocity)

	m.objects[id] = &Object{ID: id, Element: el, Body: body}

	v := body.LinearVelocity()
	m.log.Debug("object added",
		zap.Int("id", id),
		zap.Stringer("shape", shape),
		zap.Float64("width", w),
		zap.Float64("height", h),
		zap.Float64("vx", v.X),
		zap.Float64("vy", v.Y))
	if m.opts.hooks.OnAdd != nil {
		m.opts.hooks.OnAdd(id, shape)
	}
	return id
}

// createBox adds a box body; fixed boxes are static
func (m *Manager) createBox(x, y, halfWidth, halfHeight float64, fixed bool) physics.Body {
	def := physics.BodyDef{
		Shape:      physics.ShapeBox,
		Position:   physics.Vec2{X: x, Y: y},
		HalfWidth:  halfWidth,
		HalfHeight: halfHeight,
		Friction:   constant.DefaultFriction,
	}
	if !fixed {
		def.Density = constant.BoxDensity
	}
	return m.engine.CreateBody(def)
}

// createBall adds a ball body; the radius comes from the element width alone
func (m *Manager) createBall(x, y, radius float64) physics.Body {
	return m.engine.CreateBody(physics.BodyDef{
		Shape:       physics.ShapeCircle,
		Position:    physics.Vec2{X: x, Y: y},
		Radius:      radius,
		Density:     constant.BallDensity,
		Restitution: constant.BallRestitution,
		Friction:    constant.BallFriction,
	})
}

// sync mirrors awake bodies onto their elements and collects detached objects
func (m *Manager) sync() {
	for _, b := range m.engine.Bodies() {
		id, ok := b.Tag()
		if !ok {
			continue
		}

		obj, ok := m.objects[id]
		if !ok || obj.stale(b) {
			m.engine.DestroyBody(b)
			m.collect(id, obj, b)
			continue
		}

		if !b.Sleeping() {
			m.updateElement(b, obj.Element)
		}
	}
}

// collect drops the registry entry for id if it still belongs to b
func (m *Manager) collect(id int, obj *Object, b physics.Body) {
	if obj == nil || obj.Body != b {
		return
	}
	delete(m.objects, id)

	m.log.Debug("object collected", zap.Int("id", id))
	if m.opts.hooks.OnCollect != nil {
		m.opts.hooks.OnCollect(id)
	}
}

// updateElement writes body center and rotation onto the element
// Bodies track centers while elements are placed by their top-left corner
func (m *Manager) updateElement(b physics.Body, el surface.Element) {
	p := b.Position()
	w, h := el.Dimensions()
	el.Move(W2V(p.X)-w/2, W2V(p.Y)-h/2)

	if m.transform == "" {
		return
	}
	deg := math.Mod(b.Angle()*(180.0/math.Pi), 360)
	el.SetProperty(m.transform, rotateValue(deg))
}
