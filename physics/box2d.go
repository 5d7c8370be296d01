package physics

import (
	"github.com/ByteArena/box2d"
)

// minExtent keeps polygon mass computation away from zero-area shapes
const minExtent = 0.005

type box2DEngine struct {
	def   WorldDef
	world *box2d.B2World
}

type box2DBody struct {
	body   *box2d.B2Body
	tag    int
	tagged bool
}

// NewBox2D creates an engine backed by the box2d port
func NewBox2D(def WorldDef) Engine {
	w := box2d.MakeB2World(box2d.MakeB2Vec2(def.Gravity.X, def.Gravity.Y))
	w.SetAllowSleeping(def.AllowSleep)
	return &box2DEngine{def: def, world: &w}
}

func (e *box2DEngine) CreateBody(def BodyDef) Body {
	bd := box2d.MakeB2BodyDef()
	if def.Static() {
		bd.Type = box2d.B2BodyType.B2_staticBody
	} else {
		bd.Type = box2d.B2BodyType.B2_dynamicBody
	}
	bd.Position.Set(def.Position.X, def.Position.Y)
	body := e.world.CreateBody(&bd)

	fd := box2d.MakeB2FixtureDef()
	switch def.Shape {
	case ShapeCircle:
		circle := box2d.MakeB2CircleShape()
		circle.M_radius = max(def.Radius, minExtent)
		fd.Shape = &circle
	default:
		poly := box2d.MakeB2PolygonShape()
		poly.SetAsBox(max(def.HalfWidth, minExtent), max(def.HalfHeight, minExtent))
		fd.Shape = &poly
	}
	fd.Density = max(def.Density, 0)
	fd.Restitution = def.Restitution
	fd.Friction = def.Friction
	body.CreateFixtureFromDef(&fd)

	b := &box2DBody{body: body}
	body.SetUserData(b)
	return b
}

func (e *box2DEngine) DestroyBody(b Body) {
	bb, ok := b.(*box2DBody)
	if !ok || bb.body == nil {
		return
	}
	e.world.DestroyBody(bb.body)
	bb.body = nil
}

func (e *box2DEngine) Step(dt float64, iterations int) {
	e.world.Step(dt, iterations, iterations)

	// Freeze bodies that left the world region
	for b := e.world.GetBodyList(); b != nil; b = b.GetNext() {
		if b.GetType() != box2d.B2BodyType.B2_dynamicBody || !b.IsActive() {
			continue
		}
		p := b.GetPosition()
		if outside(e.def, Vec2{X: p.X, Y: p.Y}) {
			b.SetActive(false)
		}
	}
}

func (e *box2DEngine) Bodies() []Body {
	bodies := make([]Body, 0, e.world.GetBodyCount())
	for b := e.world.GetBodyList(); b != nil; b = b.GetNext() {
		if bb, ok := b.GetUserData().(*box2DBody); ok {
			bodies = append(bodies, bb)
		}
	}
	return bodies
}

func (b *box2DBody) Position() Vec2 {
	p := b.body.GetPosition()
	return Vec2{X: p.X, Y: p.Y}
}

func (b *box2DBody) Angle() float64 {
	return b.body.GetAngle()
}

// Sleeping treats frozen (inactive) bodies as asleep
func (b *box2DBody) Sleeping() bool {
	return !b.body.IsAwake() || !b.body.IsActive()
}

func (b *box2DBody) SetLinearVelocity(v Vec2) {
	b.body.SetLinearVelocity(box2d.MakeB2Vec2(v.X, v.Y))
}

func (b *box2DBody) LinearVelocity() Vec2 {
	v := b.body.GetLinearVelocity()
	return Vec2{X: v.X, Y: v.Y}
}

func (b *box2DBody) SetTag(id int) {
	b.tag, b.tagged = id, true
}

func (b *box2DBody) Tag() (int, bool) {
	return b.tag, b.tagged
}
