package world

import "github.com/lixenwraith/heavy-boxes/constant"

// V2W converts visual units to world units
func V2W(view float64) float64 {
	return view / constant.ScaleFactor
}

// W2V converts world units to visual units
func W2V(world float64) float64 {
	return world * constant.ScaleFactor
}
