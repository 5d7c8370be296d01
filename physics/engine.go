// Package physics adapts rigid-body engines to the small contract the world manager consumes.
//
// Two backends are provided: NewBox2D (default) and NewChipmunk. Both treat a body with
// zero density as static, track an optional integer tag per body, and freeze bodies whose
// center leaves the world bounds.
package physics

import (
	"errors"
	"fmt"
	"math"
	"sort"
)

// ErrUnknownEngine is returned by Lookup for an unregistered engine name
var ErrUnknownEngine = errors.New("unknown physics engine")

// Vec2 is a 2D vector in world units
type Vec2 struct {
	X, Y float64
}

// ShapeKind selects the collision shape of a body
type ShapeKind uint8

const (
	ShapeBox ShapeKind = iota
	ShapeCircle
)

func (k ShapeKind) String() string {
	switch k {
	case ShapeBox:
		return "box"
	case ShapeCircle:
		return "ball"
	default:
		return fmt.Sprintf("ShapeKind(%d)", uint8(k))
	}
}

// WorldDef describes a simulated universe
type WorldDef struct {
	Lower, Upper Vec2 // Axis-aligned bounds; bodies leaving them are frozen
	Gravity      Vec2
	AllowSleep   bool
}

// BodyDef describes a single-shape body
// Density 0 creates a static body
type BodyDef struct {
	Shape       ShapeKind
	Position    Vec2
	HalfWidth   float64 // ShapeBox
	HalfHeight  float64 // ShapeBox
	Radius      float64 // ShapeCircle
	Density     float64
	Restitution float64
	Friction    float64
}

// Static reports whether the definition yields a non-dynamic body
func (d BodyDef) Static() bool {
	return d.Density <= 0
}

// Area returns the shape area in world units²
func (d BodyDef) Area() float64 {
	if d.Shape == ShapeCircle {
		return math.Pi * d.Radius * d.Radius
	}
	return 4 * d.HalfWidth * d.HalfHeight
}

// Body is an engine body handle
type Body interface {
	// Position returns the center of the body's shape
	Position() Vec2
	// Angle returns the rotation in radians
	Angle() float64
	// Sleeping reports whether the body is at rest and excluded from integration
	Sleeping() bool
	SetLinearVelocity(v Vec2)
	LinearVelocity() Vec2
	// SetTag stores an owner id on the body
	SetTag(id int)
	// Tag returns the owner id, ok is false for untagged bodies
	Tag() (id int, ok bool)
}

// Engine is a rigid-body simulator
// Implementations are not safe for concurrent use
type Engine interface {
	CreateBody(def BodyDef) Body
	DestroyBody(b Body)
	// Step advances the simulation by dt seconds
	Step(dt float64, iterations int)
	// Bodies returns a snapshot of all bodies in engine order, safe to mutate the world while iterating
	Bodies() []Body
}

// Factory builds an engine for a world definition
type Factory func(def WorldDef) Engine

var factories = map[string]Factory{
	"box2d":    NewBox2D,
	"chipmunk": NewChipmunk,
}

// Lookup returns the factory registered under name
func Lookup(name string) (Factory, error) {
	f, ok := factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q (known: %v)", ErrUnknownEngine, name, Names())
	}
	return f, nil
}

// Names lists registered engine names in sorted order
func Names() []string {
	names := make([]string, 0, len(factories))
	for name := range factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// outside reports whether p lies outside the bounds of def
// A zero-sized bounds box disables freezing
func outside(def WorldDef, p Vec2) bool {
	if def.Lower == def.Upper {
		return false
	}
	return p.X < def.Lower.X || p.X > def.Upper.X || p.Y < def.Lower.Y || p.Y > def.Upper.Y
}
