package physics

import (
	"errors"
	"math"
	"testing"
)

const eps = 1e-9

var testWorld = WorldDef{
	Lower:      Vec2{X: -10, Y: -10},
	Upper:      Vec2{X: 10, Y: 10},
	Gravity:    Vec2{X: 0, Y: 1},
	AllowSleep: true,
}

// engines lists every backend so behavioral tests run against both
func engines() map[string]Factory {
	return map[string]Factory{
		"box2d":    NewBox2D,
		"chipmunk": NewChipmunk,
	}
}

func dynamicBox(x, y float64) BodyDef {
	return BodyDef{Shape: ShapeBox, Position: Vec2{X: x, Y: y}, HalfWidth: 0.2, HalfHeight: 0.1, Density: 1, Friction: 0.2}
}

func TestLookup(t *testing.T) {
	for _, name := range []string{"box2d", "chipmunk"} {
		if _, err := Lookup(name); err != nil {
			t.Errorf("Lookup(%q) failed: %v", name, err)
		}
	}

	if _, err := Lookup("havok"); !errors.Is(err, ErrUnknownEngine) {
		t.Errorf("Expected ErrUnknownEngine, got %v", err)
	}
}

func TestBodyDefArea(t *testing.T) {
	box := BodyDef{Shape: ShapeBox, HalfWidth: 0.5, HalfHeight: 0.25}
	if got := box.Area(); math.Abs(got-0.5) > eps {
		t.Errorf("Box area = %v, want 0.5", got)
	}
	ball := BodyDef{Shape: ShapeCircle, Radius: 1}
	if got := ball.Area(); math.Abs(got-math.Pi) > eps {
		t.Errorf("Ball area = %v, want π", got)
	}
	if !box.Static() {
		t.Error("Zero density should be static")
	}
}

func TestDynamicBodyFalls(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			e := factory(testWorld)
			b := e.CreateBody(dynamicBox(1, 1))

			for i := 0; i < 30; i++ {
				e.Step(1.0/60.0, 1)
			}

			if p := b.Position(); p.Y <= 1 {
				t.Errorf("Body did not fall under gravity, y=%v", p.Y)
			}
			if b.Sleeping() {
				t.Error("Falling body reported sleeping")
			}
		})
	}
}

func TestStaticBodyStays(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			e := factory(testWorld)
			def := dynamicBox(2, 3)
			def.Density = 0
			b := e.CreateBody(def)

			for i := 0; i < 30; i++ {
				e.Step(1.0/60.0, 1)
			}

			p := b.Position()
			if math.Abs(p.X-2) > eps || math.Abs(p.Y-3) > eps {
				t.Errorf("Static body moved to %+v", p)
			}
		})
	}
}

func TestZeroGravityRest(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			def := testWorld
			def.Gravity = Vec2{}
			e := factory(def)
			b := e.CreateBody(dynamicBox(0.7, 0.6))

			e.Step(1.0/60.0, 1)

			p := b.Position()
			if math.Abs(p.X-0.7) > 1e-6 || math.Abs(p.Y-0.6) > 1e-6 {
				t.Errorf("Resting body drifted to %+v", p)
			}
			if math.Abs(b.Angle()) > 1e-6 {
				t.Errorf("Resting body rotated to %v", b.Angle())
			}
		})
	}
}

func TestLinearVelocityMovesBody(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			def := testWorld
			def.Gravity = Vec2{}
			e := factory(def)
			b := e.CreateBody(dynamicBox(0, 0))
			b.SetLinearVelocity(Vec2{X: 1})

			if v := b.LinearVelocity(); math.Abs(v.X-1) > eps {
				t.Fatalf("Velocity not applied: %+v", v)
			}

			for i := 0; i < 60; i++ {
				e.Step(1.0/60.0, 1)
			}

			if p := b.Position(); p.X < 0.5 {
				t.Errorf("Body should have travelled about 1 unit, x=%v", p.X)
			}
		})
	}
}

func TestTagsAndEnumeration(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			e := factory(testWorld)
			wall := dynamicBox(0, 5)
			wall.Density = 0
			e.CreateBody(wall)
			b := e.CreateBody(dynamicBox(1, 1))
			b.SetTag(7)

			bodies := e.Bodies()
			if len(bodies) != 2 {
				t.Fatalf("Expected 2 bodies, got %d", len(bodies))
			}

			tagged := 0
			for _, body := range bodies {
				if id, ok := body.Tag(); ok {
					tagged++
					if id != 7 {
						t.Errorf("Tag = %d, want 7", id)
					}
				}
			}
			if tagged != 1 {
				t.Errorf("Expected 1 tagged body, got %d", tagged)
			}
		})
	}
}

func TestDestroyBody(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			e := factory(testWorld)
			a := e.CreateBody(dynamicBox(1, 1))
			e.CreateBody(dynamicBox(3, 1))

			e.DestroyBody(a)

			if n := len(e.Bodies()); n != 1 {
				t.Errorf("Expected 1 body after destroy, got %d", n)
			}

			// Stepping after destruction must not touch the removed body
			e.Step(1.0/60.0, 1)
		})
	}
}

func TestBodyLeavingBoundsFreezes(t *testing.T) {
	for name, factory := range engines() {
		t.Run(name, func(t *testing.T) {
			def := testWorld
			def.Gravity = Vec2{}
			e := factory(def)
			b := e.CreateBody(dynamicBox(9.9, 0))
			b.SetLinearVelocity(Vec2{X: 60})

			e.Step(1.0/60.0, 1)

			if !b.Sleeping() {
				t.Fatal("Body outside bounds should be frozen")
			}
			frozenAt := b.Position()

			e.Step(1.0/60.0, 1)

			if p := b.Position(); math.Abs(p.X-frozenAt.X) > eps {
				t.Errorf("Frozen body kept moving: %v -> %v", frozenAt.X, p.X)
			}
			if n := len(e.Bodies()); n != 1 {
				t.Errorf("Frozen body must stay enumerable, got %d bodies", n)
			}
		})
	}
}
