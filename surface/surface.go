// Package surface models the host's visual element tree.
//
// Elements are positioned absolutely in visual units relative to their container. The
// world manager only ever talks to the Element interface; hosts resolve elements by id
// through Surface. Tree is the in-memory host used by the terminal demo and by tests.
package surface

// Element is a mutable visual element owned by the host
type Element interface {
	ID() string

	// Append creates an absolutely positioned, overflow-hidden child with the given content
	Append(id, content string) Element

	// Move sets the top-left corner relative to the parent
	Move(left, top float64)

	// Pin fixes width and height so later moves cannot reflow the element
	Pin(width, height float64)

	// Dimensions returns the rendered width and height
	Dimensions() (width, height float64)

	// Attached reports whether the element still has a parent
	Attached() bool

	// Supports reports whether the host recognizes a named style property
	Supports(property string) bool

	// SetProperty writes an arbitrary named style property
	SetProperty(property, value string)

	// Remove detaches the element from its parent
	Remove()
}

// Surface resolves elements by identifier
type Surface interface {
	Element(id string) (Element, bool)
}
