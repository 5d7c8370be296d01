package render

import (
	"math"
	"strconv"
	"strings"

	"github.com/gdamore/tcell/v2"
	"github.com/mattn/go-runewidth"

	"github.com/lixenwraith/heavy-boxes/constant"
	"github.com/lixenwraith/heavy-boxes/surface"
)

// Box drawing runes
const (
	cornerTopLeft     = '┌'
	cornerTopRight    = '┐'
	cornerBottomLeft  = '└'
	cornerBottomRight = '┘'
	edgeHorizontal    = '─'
	edgeVertical      = '│'
)

// TerminalRenderer paints the elements of a surface tree onto a terminal screen
// Rows below the play area hold the status line
type TerminalRenderer struct {
	screen tcell.Screen
	tree   *surface.Tree

	cellWidth  float64
	cellHeight float64

	// Style property carrying rotations, empty to ignore rotations
	rotation string
	status   func() string

	boxStyle    tcell.Style
	textStyle   tcell.Style
	tiltStyle   tcell.Style
	statusStyle tcell.Style
}

// NewTerminalRenderer creates a renderer mapping cellWidth × cellHeight visual units to one cell
func NewTerminalRenderer(screen tcell.Screen, tree *surface.Tree, cellWidth, cellHeight float64) *TerminalRenderer {
	if cellWidth <= 0 {
		cellWidth = constant.CellWidth
	}
	if cellHeight <= 0 {
		cellHeight = constant.CellHeight
	}
	return &TerminalRenderer{
		screen:      screen,
		tree:        tree,
		cellWidth:   cellWidth,
		cellHeight:  cellHeight,
		boxStyle:    tcell.StyleDefault.Foreground(RgbBoxBorder),
		textStyle:   tcell.StyleDefault.Foreground(RgbBoxText),
		tiltStyle:   tcell.StyleDefault.Foreground(RgbTilt).Bold(true),
		statusStyle: tcell.StyleDefault.Foreground(RgbStatusText).Background(RgbStatusBackground),
	}
}

// SetRotationProperty selects the style property read for rotations
func (r *TerminalRenderer) SetRotationProperty(property string) {
	r.rotation = property
}

// SetStatus installs the status line provider
func (r *TerminalRenderer) SetStatus(fn func() string) {
	r.status = fn
}

// CellSize returns the visual units covered by one cell
func (r *TerminalRenderer) CellSize() (width, height float64) {
	return r.cellWidth, r.cellHeight
}

// ToCell converts a visual position to the cell containing it
func (r *TerminalRenderer) ToCell(left, top float64) (x, y int) {
	return int(math.Floor(left / r.cellWidth)), int(math.Floor(top / r.cellHeight))
}

// RenderFrame clears the screen, paints every element then the status line and shows the result
func (r *TerminalRenderer) RenderFrame() {
	r.screen.Clear()

	width, height := r.screen.Size()
	playHeight := max(height-constant.StatusBarHeight, 0)

	for _, n := range r.tree.Root().Children() {
		r.drawNode(n, width, playHeight)
	}
	if playHeight < height {
		r.drawStatus(width, playHeight)
	}

	r.screen.Show()
}

// drawNode paints one element as a bordered box, clipped to the play area
func (r *TerminalRenderer) drawNode(n *surface.Node, width, height int) {
	left, top := n.Position()
	w, h := n.Dimensions()

	x0, y0 := r.ToCell(left, top)
	cols := max(int(math.Round(w/r.cellWidth)), 2)
	rows := max(int(math.Round(h/r.cellHeight)), 2)
	x1, y1 := x0+cols-1, y0+rows-1

	put := func(x, y int, ch rune, style tcell.Style) {
		if x < 0 || y < 0 || x >= width || y >= height {
			return
		}
		r.screen.SetContent(x, y, ch, nil, style)
	}

	for x := x0 + 1; x < x1; x++ {
		put(x, y0, edgeHorizontal, r.boxStyle)
		put(x, y1, edgeHorizontal, r.boxStyle)
	}
	for y := y0 + 1; y < y1; y++ {
		put(x0, y, edgeVertical, r.boxStyle)
		put(x1, y, edgeVertical, r.boxStyle)
	}
	put(x0, y0, cornerTopLeft, r.boxStyle)
	put(x1, y0, cornerTopRight, r.boxStyle)
	put(x0, y1, cornerBottomLeft, r.boxStyle)
	put(x1, y1, cornerBottomRight, r.boxStyle)

	if r.rotation != "" {
		if v, ok := n.Property(r.rotation); ok {
			if glyph, tilted := Tilt(v); tilted {
				put(x0, y0, glyph, r.tiltStyle)
			}
		}
	}

	// Content inside the border, wide runes occupy two cells
	for i, line := range surface.Lines(n.Content()) {
		y := y0 + 1 + i
		if y >= y1 {
			break
		}
		x := x0 + 1
		for _, ch := range line {
			cw := runewidth.RuneWidth(ch)
			if cw == 0 {
				continue
			}
			if x+cw-1 >= x1 {
				break
			}
			put(x, y, ch, r.textStyle)
			x += cw
		}
	}
}

// drawStatus fills the status row and writes the provider text
func (r *TerminalRenderer) drawStatus(width, row int) {
	for x := 0; x < width; x++ {
		r.screen.SetContent(x, row, ' ', nil, r.statusStyle)
	}
	if r.status == nil {
		return
	}
	x := 0
	for _, ch := range r.status() {
		cw := runewidth.RuneWidth(ch)
		if cw == 0 {
			continue
		}
		if x+cw > width {
			break
		}
		r.screen.SetContent(x, row, ch, nil, r.statusStyle)
		x += cw
	}
}

// Tilt maps a "rotate(<deg>deg)" value to a glyph showing the slope of the top edge
// Angles within 22.5° of level report false
func Tilt(value string) (rune, bool) {
	s, ok := strings.CutPrefix(strings.TrimSpace(value), "rotate(")
	if !ok {
		return 0, false
	}
	s, ok = strings.CutSuffix(s, "deg)")
	if !ok {
		return 0, false
	}
	deg, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}

	// A box looks the same every half turn
	deg = math.Mod(deg, 180)
	if deg < 0 {
		deg += 180
	}

	switch {
	case deg < 22.5 || deg >= 157.5:
		return 0, false
	case deg < 67.5:
		return '╲', true
	case deg < 112.5:
		return '│', true
	default:
		return '╱', true
	}
}

// TreeSize returns the visual size of the play area for a screen of cols × rows cells
func TreeSize(cols, rows int, cellWidth, cellHeight float64) (width, height float64) {
	rows = max(rows-constant.StatusBarHeight, 0)
	return float64(cols) * cellWidth, float64(rows) * cellHeight
}
