package world

import (
	"strconv"

	"github.com/lixenwraith/heavy-boxes/surface"
)

// transformCandidates are the rotation-capable property names in probe order
var transformCandidates = []string{
	"transform",
	"WebkitTransform",
	"MozTransform",
	"msTransform",
	"OTransform",
}

// probeTransform returns the first candidate the host supports, ok is false when none is
func probeTransform(el surface.Element) (property string, ok bool) {
	for _, p := range transformCandidates {
		if el.Supports(p) {
			return p, true
		}
	}
	return "", false
}

// rotateValue formats a rotation in degrees as a transform value
func rotateValue(deg float64) string {
	return "rotate(" + strconv.FormatFloat(deg, 'f', -1, 64) + "deg)"
}
