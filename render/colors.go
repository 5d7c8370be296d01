package render

import (
	"github.com/gdamore/tcell/v2"
)

// RGB color definitions for the scene
var (
	RgbBoxBorder = tcell.NewRGBColor(122, 162, 247) // Tokyo Night blue
	RgbBoxText   = tcell.NewRGBColor(192, 202, 245) // Light foreground
	RgbTilt      = tcell.NewRGBColor(255, 165, 0)   // Orange

	RgbStatusText       = tcell.NewRGBColor(255, 255, 255) // White
	RgbStatusBackground = tcell.NewRGBColor(26, 27, 38)    // Tokyo Night background
)
