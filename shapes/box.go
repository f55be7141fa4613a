package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
)

// Box is a rectangle, either filled or as a one pixel wide outline.
type Box[T display.Color] struct {
	display.Node
	color  T
	filled bool
}

// NewBox returns a box with its top left corner at (x, y).
func NewBox[T display.Color](x, y, width, height int, color T, filled bool) *Box[T] {
	b := &Box[T]{color: color, filled: filled}
	b.SetBounds(image.Rect(x, y, x+width, y+height))
	return b
}

// Color returns the box color.
func (b *Box[T]) Color() T {
	return b.color
}

// SetColor changes the box color.
func (b *Box[T]) SetColor(color T) {
	b.color = color
}

// SetFilled switches between a filled box and an outline.
func (b *Box[T]) SetFilled(filled bool) {
	b.filled = filled
}

func (b *Box[T]) DrawRow(buf []T, y int) {
	drawBoxLine(buf, b.Bounds(), y, b.color, b.filled)
}

func (b *Box[T]) DrawColumn(buf []T, x int) {
	drawBoxLine(buf, transpose(b.Bounds()), x, b.color, b.filled)
}

// drawBoxLine draws row y of the box r.
func drawBoxLine[T display.Color](buf []T, r image.Rectangle, y int, c T, filled bool) {
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	if filled || y == r.Min.Y || y == r.Max.Y-1 {
		fill(buf, r.Min.X, r.Max.X, c)
		return
	}
	set(buf, r.Min.X, c)
	set(buf, r.Max.X-1, c)
}
