package shapes

import (
	"image"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

// Bitmap is an image stored in the pixel format of the display.
type Bitmap[T display.Color] struct {
	display.Node
	pixels      []T
	stride      int
	transparent T
	hasKey      bool
	mirror      bool
}

// NewBitmap returns a bitmap at (x, y) with the given pixels, in row-major
// order. It panics if there are fewer than width*height pixels.
func NewBitmap[T display.Color](x, y, width, height int, pixels []T) *Bitmap[T] {
	if len(pixels) < width*height {
		panic("shapes: bitmap too small")
	}
	b := &Bitmap[T]{pixels: pixels, stride: width}
	b.SetBounds(image.Rect(x, y, x+width, y+height))
	return b
}

// FromImage converts an image to a bitmap at (x, y).
func FromImage[T display.Color](x, y int, img image.Image) *Bitmap[T] {
	r := img.Bounds()
	pixels := make([]T, 0, r.Dx()*r.Dy())
	for py := r.Min.Y; py < r.Max.Y; py++ {
		for px := r.Min.X; px < r.Max.X; px++ {
			cr, cg, cb, _ := img.At(px, py).RGBA()
			pixels = append(pixels, pixel.NewColor[T](uint8(cr>>8), uint8(cg>>8), uint8(cb>>8)))
		}
	}
	return NewBitmap(x, y, r.Dx(), r.Dy(), pixels)
}

// SetTransparent sets the color that is not drawn.
func (b *Bitmap[T]) SetTransparent(color T) {
	b.transparent = color
	b.hasKey = true
}

// ClearTransparent makes every pixel drawn again.
func (b *Bitmap[T]) ClearTransparent() {
	b.hasKey = false
}

// SetMirror flips the bitmap horizontally.
func (b *Bitmap[T]) SetMirror(mirror bool) {
	b.mirror = mirror
}

func (b *Bitmap[T]) DrawRow(buf []T, y int) {
	r := b.Bounds()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	row := b.pixels[(y-r.Min.Y)*b.stride:]
	lo, hi := span(r.Min.X, r.Max.X, len(buf))
	for x := lo; x < hi; x++ {
		i := x - r.Min.X
		if b.mirror {
			i = b.stride - 1 - i
		}
		c := row[i]
		if b.hasKey && c == b.transparent {
			continue
		}
		buf[x] = c
	}
}

func (b *Bitmap[T]) DrawColumn(buf []T, x int) {
	r := b.Bounds()
	if x < r.Min.X || x >= r.Max.X {
		return
	}
	i := x - r.Min.X
	if b.mirror {
		i = b.stride - 1 - i
	}
	lo, hi := span(r.Min.Y, r.Max.Y, len(buf))
	for y := lo; y < hi; y++ {
		c := b.pixels[(y-r.Min.Y)*b.stride+i]
		if b.hasKey && c == b.transparent {
			continue
		}
		buf[y] = c
	}
}

// NoTransparentIndex disables the transparent palette index.
const NoTransparentIndex = -1

// Paletted is an image with one byte per pixel that indexes a palette.
type Paletted[T display.Color] struct {
	display.Node
	pixels      []uint8
	palette     []T
	stride      int
	transparent int
	mirror      bool
}

// NewPaletted returns a paletted bitmap at (x, y). Pixels that index past the
// end of the palette are not drawn.
func NewPaletted[T display.Color](x, y, width, height int, pixels []uint8, palette []T) *Paletted[T] {
	if len(pixels) < width*height {
		panic("shapes: bitmap too small")
	}
	p := &Paletted[T]{pixels: pixels, palette: palette, stride: width, transparent: NoTransparentIndex}
	p.SetBounds(image.Rect(x, y, x+width, y+height))
	return p
}

// SetTransparent sets the palette index that is not drawn, or
// NoTransparentIndex.
func (p *Paletted[T]) SetTransparent(index int) {
	p.transparent = index
}

// SetPalette replaces the palette.
func (p *Paletted[T]) SetPalette(palette []T) {
	p.palette = palette
}

// SetMirror flips the bitmap horizontally.
func (p *Paletted[T]) SetMirror(mirror bool) {
	p.mirror = mirror
}

func (p *Paletted[T]) pixel(px, py int) (T, bool) {
	if p.mirror {
		px = p.stride - 1 - px
	}
	index := int(p.pixels[py*p.stride+px])
	if index == p.transparent || index >= len(p.palette) {
		var zero T
		return zero, false
	}
	return p.palette[index], true
}

func (p *Paletted[T]) DrawRow(buf []T, y int) {
	r := p.Bounds()
	if y < r.Min.Y || y >= r.Max.Y {
		return
	}
	lo, hi := span(r.Min.X, r.Max.X, len(buf))
	for x := lo; x < hi; x++ {
		if c, ok := p.pixel(x-r.Min.X, y-r.Min.Y); ok {
			buf[x] = c
		}
	}
}

func (p *Paletted[T]) DrawColumn(buf []T, x int) {
	r := p.Bounds()
	if x < r.Min.X || x >= r.Max.X {
		return
	}
	lo, hi := span(r.Min.Y, r.Max.Y, len(buf))
	for y := lo; y < hi; y++ {
		if c, ok := p.pixel(x-r.Min.X, y-r.Min.Y); ok {
			buf[y] = c
		}
	}
}
