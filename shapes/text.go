package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// Text is a single line of text in a fixed width bitmap font.
type Text[T display.Color] struct {
	display.Node
	face        *basicfont.Face
	text        string
	glyphs      []image.Point // mask offset of each glyph, or -1 if missing
	fg, bg      T
	transparent bool
	scale       int
}

// NewText returns a text object with its top left corner at (x, y), using the
// 7x13 font. The background is drawn in bg.
func NewText[T display.Color](x, y int, text string, fg, bg T) *Text[T] {
	t := &Text[T]{
		face:  basicfont.Face7x13,
		fg:    fg,
		bg:    bg,
		scale: 1,
	}
	t.SetBounds(image.Rect(x, y, x, y))
	t.SetText(text)
	return t
}

// Text returns the current text.
func (t *Text[T]) Text() string {
	return t.text
}

// SetText changes the text. The bounding box grows or shrinks to fit, keeping
// the top left corner.
func (t *Text[T]) SetText(text string) {
	t.text = text
	t.glyphs = t.glyphs[:0]
	dot := fixed.P(0, t.face.Ascent)
	for _, r := range text {
		_, mask, maskp, _, _ := t.face.Glyph(dot, r)
		if mask == nil {
			maskp = image.Pt(-1, -1)
		}
		t.glyphs = append(t.glyphs, maskp)
	}
	t.resize()
}

// SetColors changes the foreground and background colors.
func (t *Text[T]) SetColors(fg, bg T) {
	t.fg, t.bg = fg, bg
}

// SetTransparent sets whether the background is left alone instead of drawn
// in the background color.
func (t *Text[T]) SetTransparent(transparent bool) {
	t.transparent = transparent
}

// SetScale sets the size of each font pixel, in screen pixels.
func (t *Text[T]) SetScale(scale int) {
	t.scale = max(scale, 1)
	t.resize()
}

// TextSize returns the size of the given text in pixels at scale 1.
func TextSize(text string) (width, height int) {
	n := 0
	for range text {
		n++
	}
	face := basicfont.Face7x13
	return n * face.Advance, face.Height
}

func (t *Text[T]) resize() {
	corner := t.Bounds().Min
	width := len(t.glyphs) * t.face.Advance * t.scale
	height := t.face.Height * t.scale
	t.SetBounds(image.Rectangle{Min: corner, Max: corner.Add(image.Pt(width, height))})
}

// on returns whether font pixel (fx, fy) of the text is set.
func (t *Text[T]) on(fx, fy int) bool {
	i := fx / t.face.Advance
	gx := fx % t.face.Advance
	if i >= len(t.glyphs) || gx >= t.face.Width || fy >= t.face.Ascent+t.face.Descent {
		return false
	}
	p := t.glyphs[i]
	if p.Y < 0 {
		return false
	}
	if alpha, ok := t.face.Mask.(*image.Alpha); ok {
		return alpha.AlphaAt(p.X+gx, p.Y+fy).A >= 0x80
	}
	_, _, _, a := t.face.Mask.At(p.X+gx, p.Y+fy).RGBA()
	return a >= 0x8000
}

func (t *Text[T]) DrawRow(buf []T, y int) {
	r := t.Bounds()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	fy := (y - r.Min.Y) / t.scale
	lo, hi := span(r.Min.X, r.Max.X, len(buf))
	for x := lo; x < hi; x++ {
		if t.on((x-r.Min.X)/t.scale, fy) {
			buf[x] = t.fg
		} else if !t.transparent {
			buf[x] = t.bg
		}
	}
}

func (t *Text[T]) DrawColumn(buf []T, x int) {
	r := t.Bounds()
	if x < r.Min.X || x >= r.Max.X {
		return
	}
	fx := (x - r.Min.X) / t.scale
	lo, hi := span(r.Min.Y, r.Max.Y, len(buf))
	for y := lo; y < hi; y++ {
		if t.on(fx, (y-r.Min.Y)/t.scale) {
			buf[y] = t.fg
		} else if !t.transparent {
			buf[y] = t.bg
		}
	}
}
