package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
)

// Circle is a circle around a center pixel, filled or as an outline.
type Circle[T display.Color] struct {
	display.Node
	color  T
	filled bool
}

// NewCircle returns a circle with the given center and radius. The circle is
// 2*radius+1 pixels wide.
func NewCircle[T display.Color](cx, cy, radius int, color T, filled bool) *Circle[T] {
	c := &Circle[T]{color: color, filled: filled}
	c.SetBounds(image.Rect(cx-radius, cy-radius, cx+radius+1, cy+radius+1))
	return c
}

// SetColor changes the circle color.
func (c *Circle[T]) SetColor(color T) {
	c.color = color
}

func (c *Circle[T]) DrawRow(buf []T, y int) {
	drawCircleLine(buf, c.Bounds(), y, c.color, c.filled)
}

func (c *Circle[T]) DrawColumn(buf []T, x int) {
	drawCircleLine(buf, transpose(c.Bounds()), x, c.color, c.filled)
}

func drawCircleLine[T display.Color](buf []T, r image.Rectangle, y int, c T, filled bool) {
	radius := r.Dx() / 2
	cx, cy := r.Min.X+radius, r.Min.Y+radius
	dy := abs(y - cy)
	if dy > radius {
		return
	}
	outer := isqrt(radius*radius - dy*dy)
	if filled || dy == radius {
		fill(buf, cx-outer, cx+outer+1, c)
		return
	}
	// Only the pixels between the outer circle and the circle one pixel
	// smaller, but at least one.
	inner := isqrt((radius-1)*(radius-1) - dy*dy)
	width := max(outer-inner, 1)
	fill(buf, cx-outer, cx-outer+width, c)
	fill(buf, cx+outer-width+1, cx+outer+1, c)
}

// isqrt returns floor(sqrt(n)) for n >= 0.
func isqrt(n int) int {
	if n < 2 {
		return n
	}
	x := n
	y := (x + 1) / 2
	for y < x {
		x = y
		y = (x + n/x) / 2
	}
	return x
}
