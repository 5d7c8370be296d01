package physics

import (
	"github.com/jakecoffman/cp"

	"github.com/lixenwraith/heavy-boxes/constant"
)

type chipmunkEngine struct {
	def    WorldDef
	space  *cp.Space
	bodies []*chipmunkBody // Creation order, includes frozen bodies
}

type chipmunkBody struct {
	body   *cp.Body
	shape  *cp.Shape
	static bool
	frozen bool // Removed from the space after leaving the world bounds
	tag    int
	tagged bool
}

// NewChipmunk creates an engine backed by the Chipmunk2D port
func NewChipmunk(def WorldDef) Engine {
	space := cp.NewSpace()
	space.SetGravity(cp.Vector{X: def.Gravity.X, Y: def.Gravity.Y})
	if def.AllowSleep {
		space.SleepTimeThreshold = constant.SleepTime
	}
	return &chipmunkEngine{def: def, space: space}
}

func (e *chipmunkEngine) CreateBody(def BodyDef) Body {
	def.Radius = max(def.Radius, minExtent)
	def.HalfWidth = max(def.HalfWidth, minExtent)
	def.HalfHeight = max(def.HalfHeight, minExtent)

	var body *cp.Body
	if def.Static() {
		body = cp.NewStaticBody()
	} else {
		mass := def.Density * def.Area()
		var moment float64
		if def.Shape == ShapeCircle {
			moment = cp.MomentForCircle(mass, 0, def.Radius, cp.Vector{})
		} else {
			moment = cp.MomentForBox(mass, 2*def.HalfWidth, 2*def.HalfHeight)
		}
		body = cp.NewBody(mass, moment)
	}
	body.SetPosition(cp.Vector{X: def.Position.X, Y: def.Position.Y})
	e.space.AddBody(body)

	var shape *cp.Shape
	switch def.Shape {
	case ShapeCircle:
		shape = cp.NewCircle(body, def.Radius, cp.Vector{})
	default:
		shape = cp.NewBox(body, 2*def.HalfWidth, 2*def.HalfHeight, 0)
	}
	shape.SetElasticity(def.Restitution)
	shape.SetFriction(def.Friction)
	e.space.AddShape(shape)

	b := &chipmunkBody{body: body, shape: shape, static: def.Static()}
	body.UserData = b
	e.bodies = append(e.bodies, b)
	return b
}

func (e *chipmunkEngine) DestroyBody(b Body) {
	cb, ok := b.(*chipmunkBody)
	if !ok {
		return
	}
	for i, candidate := range e.bodies {
		if candidate == cb {
			e.bodies = append(e.bodies[:i], e.bodies[i+1:]...)
			break
		}
	}
	if !cb.frozen {
		e.detach(cb)
	}
}

func (e *chipmunkEngine) detach(cb *chipmunkBody) {
	e.space.RemoveShape(cb.shape)
	e.space.RemoveBody(cb.body)
}

func (e *chipmunkEngine) Step(dt float64, iterations int) {
	e.space.Iterations = uint(max(iterations, 1))
	e.space.Step(dt)

	for _, cb := range e.bodies {
		if cb.static || cb.frozen {
			continue
		}
		if outside(e.def, cb.Position()) {
			e.detach(cb)
			cb.frozen = true
		}
	}
}

func (e *chipmunkEngine) Bodies() []Body {
	bodies := make([]Body, len(e.bodies))
	for i, cb := range e.bodies {
		bodies[i] = cb
	}
	return bodies
}

func (b *chipmunkBody) Position() Vec2 {
	p := b.body.Position()
	return Vec2{X: p.X, Y: p.Y}
}

func (b *chipmunkBody) Angle() float64 {
	return b.body.Angle()
}

// Sleeping treats frozen bodies as asleep; static bodies never move
func (b *chipmunkBody) Sleeping() bool {
	return b.frozen || b.static || b.body.IsSleeping()
}

func (b *chipmunkBody) SetLinearVelocity(v Vec2) {
	if b.static {
		return
	}
	b.body.SetVelocity(v.X, v.Y)
}

func (b *chipmunkBody) LinearVelocity() Vec2 {
	v := b.body.Velocity()
	return Vec2{X: v.X, Y: v.Y}
}

func (b *chipmunkBody) SetTag(id int) {
	b.tag, b.tagged = id, true
}

func (b *chipmunkBody) Tag() (int, bool) {
	return b.tag, b.tagged
}
