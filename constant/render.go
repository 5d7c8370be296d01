package constant

// Terminal Cell Geometry
const (
	// CellWidth is the width of one terminal cell in visual units
	CellWidth = 8.0

	// CellHeight is the height of one terminal cell in visual units
	CellHeight = 16.0

	// StatusBarHeight is the number of terminal rows reserved below the world
	StatusBarHeight = 1
)

// Element Naming
const (
	// ElementPrefix prefixes every element id created for a managed object
	ElementPrefix = "box-"
)
