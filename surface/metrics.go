package surface

import (
	"strings"

	"github.com/mattn/go-runewidth"
)

// Measurer computes the rendered size of element content in visual units
type Measurer interface {
	Measure(content string) (width, height float64)
}

// MeasureFunc adapts a function to Measurer
type MeasureFunc func(content string) (width, height float64)

func (f MeasureFunc) Measure(content string) (float64, float64) {
	return f(content)
}

// TextMetrics measures content as terminal text: display columns by lines,
// framed by a one-cell border on every side
type TextMetrics struct {
	CellWidth  float64
	CellHeight float64
}

// Measure returns the framed size of content
func (m TextMetrics) Measure(content string) (float64, float64) {
	lines := Lines(content)
	cols := 0
	for _, line := range lines {
		cols = max(cols, runewidth.StringWidth(line))
	}
	return float64(cols+2) * m.CellWidth, float64(len(lines)+2) * m.CellHeight
}

// Lines splits content into display lines, an empty content has one empty line
func Lines(content string) []string {
	content = strings.TrimRight(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
	return strings.Split(content, "\n")
}
