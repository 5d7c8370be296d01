package world

import (
	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/physics"
)

// Wall is a static boundary box in world units
type Wall struct {
	Center     physics.Vec2
	HalfExtent physics.Vec2
}

// Boundary frames the container with invisible walls
// Walls sit just outside the visible area so bodies rest fully inside it
type Boundary struct {
	Floor, Left, Right Wall
}

// boundaryFor computes walls for a container of width × height world units
func boundaryFor(width, height float64) Boundary {
	thick := V2W(constant.WallThickness)
	return Boundary{
		Floor: Wall{
			Center:     physics.Vec2{X: width / 2, Y: height + thick},
			HalfExtent: physics.Vec2{X: width / 2, Y: thick},
		},
		Left: Wall{
			Center:     physics.Vec2{X: -thick, Y: height / 2},
			HalfExtent: physics.Vec2{X: thick, Y: height / 2},
		},
		Right: Wall{
			Center:     physics.Vec2{X: width + thick, Y: height / 2},
			HalfExtent: physics.Vec2{X: thick, Y: height / 2},
		},
	}
}

// CoverBounds returns world bounds for a container of width × height visual units
// The result spans the default region, the container with its walls and one container
// height of headroom above it
func CoverBounds(width, height float64) (lower, upper physics.Vec2) {
	w, h := V2W(width), V2W(height)
	reach := 2 * V2W(constant.WallThickness)

	lower = physics.Vec2{
		X: min(-constant.WorldBound, -reach),
		Y: min(-constant.WorldBound, -h),
	}
	upper = physics.Vec2{
		X: max(constant.WorldBound, w+reach),
		Y: max(constant.WorldBound, h+reach),
	}
	return lower, upper
}

// walls returns the walls in creation order
func (b Boundary) walls() []Wall {
	return []Wall{b.Floor, b.Left, b.Right}
}

// bodyDef returns a static box definition for the wall
func (w Wall) bodyDef() physics.BodyDef {
	return physics.BodyDef{
		Shape:       physics.ShapeBox,
		Position:    w.Center,
		HalfWidth:   w.HalfExtent.X,
		HalfHeight:  w.HalfExtent.Y,
		Restitution: constant.WallRestitution,
		Friction:    constant.DefaultFriction,
	}
}
