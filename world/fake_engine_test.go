package world

import (
	"slices"

	"github.com/lixenwraith/heavy-boxes/physics"
)

// MockEngine records calls and lets tests pose bodies directly
type MockEngine struct {
	def       physics.WorldDef
	bodies    []*MockBody
	destroyed []*MockBody
	steps     int
	lastDt    float64
	lastIter  int
}

// MockBody is a posable body
type MockBody struct {
	def      physics.BodyDef
	pos      physics.Vec2
	angle    float64
	sleeping bool
	velocity physics.Vec2
	tag      int
	tagged   bool
}

func newMockFactory() (*MockEngine, physics.Factory) {
	e := &MockEngine{}
	return e, func(def physics.WorldDef) physics.Engine {
		e.def = def
		return e
	}
}

func (e *MockEngine) CreateBody(def physics.BodyDef) physics.Body {
	b := &MockBody{def: def, pos: def.Position}
	e.bodies = append(e.bodies, b)
	return b
}

func (e *MockEngine) DestroyBody(b physics.Body) {
	mb := b.(*MockBody)
	e.bodies = slices.DeleteFunc(e.bodies, func(x *MockBody) bool { return x == mb })
	e.destroyed = append(e.destroyed, mb)
}

func (e *MockEngine) Step(dt float64, iterations int) {
	e.steps++
	e.lastDt, e.lastIter = dt, iterations
}

func (e *MockEngine) Bodies() []physics.Body {
	out := make([]physics.Body, len(e.bodies))
	for i, b := range e.bodies {
		out[i] = b
	}
	return out
}

// tagged returns the body tagged with id, nil if absent
func (e *MockEngine) tagged(id int) *MockBody {
	for _, b := range e.bodies {
		if b.tagged && b.tag == id {
			return b
		}
	}
	return nil
}

func (b *MockBody) Position() physics.Vec2           { return b.pos }
func (b *MockBody) Angle() float64                   { return b.angle }
func (b *MockBody) Sleeping() bool                   { return b.sleeping }
func (b *MockBody) SetLinearVelocity(v physics.Vec2) { b.velocity = v }
func (b *MockBody) LinearVelocity() physics.Vec2     { return b.velocity }
func (b *MockBody) SetTag(id int)                    { b.tag, b.tagged = id, true }
func (b *MockBody) Tag() (int, bool)                 { return b.tag, b.tagged }
