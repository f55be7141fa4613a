package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
)

// Line is a one pixel wide straight line between two points (both
// inclusive).
//
// Lines are only drawn in horizontal orientation: DrawColumn does nothing.
type Line[T display.Color] struct {
	display.Node
	color T

	// End points, relative to the top left of the bounding box. Moving the
	// line moves both.
	from, to image.Point
}

// NewLine returns a line from (x0, y0) to (x1, y1).
func NewLine[T display.Color](x0, y0, x1, y1 int, color T) *Line[T] {
	l := &Line[T]{color: color}
	l.SetEnds(x0, y0, x1, y1)
	return l
}

// SetEnds changes the end points of the line.
func (l *Line[T]) SetEnds(x0, y0, x1, y1 int) {
	r := image.Rect(x0, y0, x1, y1) // canonicalized
	r.Max = r.Max.Add(image.Pt(1, 1))
	l.SetBounds(r)
	l.from = image.Pt(x0, y0).Sub(r.Min)
	l.to = image.Pt(x1, y1).Sub(r.Min)
}

// SetColor changes the line color.
func (l *Line[T]) SetColor(color T) {
	l.color = color
}

func (l *Line[T]) DrawRow(buf []T, y int) {
	b := l.Bounds()
	row := y - b.Min.Y
	if row < 0 || y >= b.Max.Y {
		return
	}
	// Bresenham, only plotting the points on this row.
	x0, y0 := l.from.X, l.from.Y
	dx, dy := abs(l.to.X-x0), -abs(l.to.Y-y0)
	sx, sy := sign(l.to.X-x0), sign(l.to.Y-y0)
	e := dx + dy
	for {
		if y0 == row {
			set(buf, b.Min.X+x0, l.color)
		}
		if x0 == l.to.X && y0 == l.to.Y {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x0 += sx
		}
		if e2 <= dx {
			e += dx
			y0 += sy
		}
	}
}

// DrawColumn is not implemented for lines.
func (l *Line[T]) DrawColumn(buf []T, x int) {
}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}

func sign(n int) int {
	switch {
	case n < 0:
		return -1
	case n > 0:
		return 1
	}
	return 0
}
