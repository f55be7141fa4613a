// Package shapes contains simple objects that can be shown on a display:
// boxes, lines, circles, bitmaps and text.
//
// Changing a shape that is on screen must be done with the line lock held,
// for example inside Compositor.Modify.
package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
)

// span returns the part of [lo, hi) that fits in a buffer of length n.
func span(lo, hi, n int) (int, int) {
	return max(lo, 0), min(hi, n)
}

// fill sets buf[lo:hi] to c, clipped to the buffer.
func fill[T display.Color](buf []T, lo, hi int, c T) {
	lo, hi = span(lo, hi, len(buf))
	for i := lo; i < hi; i++ {
		buf[i] = c
	}
}

// set sets buf[i] to c if i is inside the buffer.
func set[T display.Color](buf []T, i int, c T) {
	if i >= 0 && i < len(buf) {
		buf[i] = c
	}
}

// transpose swaps the X and Y axes of a rectangle.
func transpose(r image.Rectangle) image.Rectangle {
	return image.Rect(r.Min.Y, r.Min.X, r.Max.Y, r.Max.X)
}
