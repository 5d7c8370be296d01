package surface

import (
	"fmt"
	"maps"
	"slices"
)

// Tree is an in-memory element tree rooted at a fixed-size container
// Not safe for concurrent use; mutate and paint from the same goroutine
type Tree struct {
	root      *Node
	nodes     map[string]*Node
	measurer  Measurer
	supported map[string]bool
}

// Node is one element of a Tree
type Node struct {
	tree     *Tree
	id       string
	content  string
	parent   *Node
	children []*Node

	left, top     float64
	width, height float64
	pinned        bool

	position string // "absolute" for appended children
	overflow string // "hidden" for appended children
	props    map[string]string
}

// NewTree creates a tree whose root container measures width × height visual units
// Only the listed style properties are reported as supported by elements
func NewTree(rootID string, width, height float64, m Measurer, supported ...string) *Tree {
	t := &Tree{
		nodes:     make(map[string]*Node),
		measurer:  m,
		supported: make(map[string]bool, len(supported)),
	}
	for _, p := range supported {
		t.supported[p] = true
	}
	t.root = &Node{tree: t, id: rootID, width: width, height: height, pinned: true, props: map[string]string{}}
	t.nodes[rootID] = t.root
	return t
}

// Root returns the container element
func (t *Tree) Root() *Node {
	return t.root
}

var (
	_ Surface = (*Tree)(nil)
	_ Element = (*Node)(nil)
)

// Element resolves an attached or detached element by id
func (t *Tree) Element(id string) (Element, bool) {
	n, ok := t.nodes[id]
	if !ok {
		return nil, false
	}
	return n, true
}

// Node resolves the concrete node for id
func (t *Tree) Node(id string) (*Node, bool) {
	n, ok := t.nodes[id]
	return n, ok
}

// Resize changes the root container's dimensions
func (t *Tree) Resize(width, height float64) {
	t.root.width, t.root.height = width, height
}

// Len returns the number of elements attached below the root
func (t *Tree) Len() int {
	return len(t.root.children)
}

func (n *Node) ID() string {
	return n.id
}

// Content returns the element's inner content
func (n *Node) Content() string {
	return n.content
}

// Append creates a child node, replacing any detached node registered under the same id
func (n *Node) Append(id, content string) Element {
	if existing, ok := n.tree.nodes[id]; ok && existing.Attached() {
		panic(fmt.Sprintf("surface: duplicate element id %q", id))
	}
	child := &Node{
		tree:     n.tree,
		id:       id,
		content:  content,
		parent:   n,
		position: "absolute",
		overflow: "hidden",
		props:    map[string]string{},
	}
	n.children = append(n.children, child)
	n.tree.nodes[id] = child
	return child
}

func (n *Node) Move(left, top float64) {
	n.left, n.top = left, top
}

// Position returns the top-left corner relative to the parent
func (n *Node) Position() (left, top float64) {
	return n.left, n.top
}

func (n *Node) Pin(width, height float64) {
	n.width, n.height = width, height
	n.pinned = true
}

func (n *Node) Dimensions() (float64, float64) {
	if n.pinned || n.tree.measurer == nil {
		return n.width, n.height
	}
	return n.tree.measurer.Measure(n.content)
}

// Attached is true for the root and for nodes still linked to a parent
func (n *Node) Attached() bool {
	return n == n.tree.root || n.parent != nil
}

func (n *Node) Supports(property string) bool {
	return n.tree.supported[property]
}

// SetProperty stores any named property, supported or not, as a browser style object would
func (n *Node) SetProperty(property, value string) {
	n.props[property] = value
}

// Property returns a previously written named property
func (n *Node) Property(property string) (string, bool) {
	v, ok := n.props[property]
	return v, ok
}

// Properties returns the names of all written properties in sorted order
func (n *Node) Properties() []string {
	return slices.Sorted(maps.Keys(n.props))
}

// Style returns the position and overflow modes
func (n *Node) Style() (position, overflow string) {
	return n.position, n.overflow
}

// Children returns attached children in insertion order
func (n *Node) Children() []*Node {
	return n.children
}

// Remove detaches the node from its parent, the node stays resolvable by id
func (n *Node) Remove() {
	p := n.parent
	if p == nil {
		return
	}
	for i, c := range p.children {
		if c == n {
			p.children = append(p.children[:i], p.children[i+1:]...)
			break
		}
	}
	n.parent = nil
}
