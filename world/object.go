package world

import (
	"github.com/lixenwraith/heavy-boxes/physics"
	"github.com/lixenwraith/heavy-boxes/surface"
)

// Object pairs one visual element with one physics body under a shared id
type Object struct {
	ID      int
	Element surface.Element // Owned by the host, may be detached at any time
	Body    physics.Body    // Owned and destroyed by the manager
}

// stale reports whether the object must be collected
func (o *Object) stale(b physics.Body) bool {
	return o.Element == nil || !o.Element.Attached() || o.Body != b
}
