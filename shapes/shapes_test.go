package shapes

import (
	"image"
	"image/color"
	"reflect"
	"testing"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

type testColor = pixel.RGB565BE

var (
	black = pixel.NewColor[testColor](0, 0, 0)
	white = pixel.NewColor[testColor](255, 255, 255)
	red   = pixel.NewColor[testColor](255, 0, 0)
)

// render draws obj into a width x height screen, row by row, and returns it as
// strings with 'X' for white, 'r' for red and '.' for anything else.
func render(obj display.Object[testColor], width, height int) []string {
	var lines []string
	buf := make([]testColor, width)
	for y := 0; y < height; y++ {
		clear(buf)
		obj.DrawRow(buf, y)
		lines = append(lines, toString(buf))
	}
	return lines
}

// renderColumns is like render, but draws column by column.
func renderColumns(obj display.Object[testColor], width, height int) []string {
	grid := make([][]testColor, height)
	for y := range grid {
		grid[y] = make([]testColor, width)
	}
	buf := make([]testColor, height)
	for x := 0; x < width; x++ {
		clear(buf)
		obj.DrawColumn(buf, x)
		for y := range buf {
			grid[y][x] = buf[y]
		}
	}
	var lines []string
	for _, row := range grid {
		lines = append(lines, toString(row))
	}
	return lines
}

func toString(buf []testColor) string {
	s := make([]byte, len(buf))
	for i, c := range buf {
		switch c {
		case white:
			s[i] = 'X'
		case red:
			s[i] = 'r'
		default:
			s[i] = '.'
		}
	}
	return string(s)
}

func checkImage(t *testing.T, name string, got, expected []string) {
	t.Helper()
	if !reflect.DeepEqual(got, expected) {
		t.Errorf("%s: unexpected image", name)
		for i := range got {
			t.Logf("  %s", got[i])
		}
	}
}

func TestShapes(t *testing.T) {
	for _, tc := range []struct {
		name     string
		obj      display.Object[testColor]
		vertical bool // DrawColumn gives the same result
		image    []string
	}{
		{"filled box", NewBox(1, 1, 3, 2, white, true), true, []string{
			".....",
			".XXX.",
			".XXX.",
			".....",
		}},
		{"box outline", NewBox(0, 0, 5, 4, white, false), true, []string{
			"XXXXX",
			"X...X",
			"X...X",
			"XXXXX",
		}},
		{"clipped box", NewBox(-2, -1, 4, 3, white, false), true, []string{
			".X...",
			"XX...",
			".....",
			".....",
		}},
		{"box past the edge", NewBox(3, 2, 5, 5, white, true), true, []string{
			".....",
			".....",
			"...XX",
			"...XX",
		}},
		{"filled circle", NewCircle(2, 2, 2, white, true), true, []string{
			"..X..",
			".XXX.",
			"XXXXX",
			".XXX.",
			"..X..",
		}},
		{"circle outline", NewCircle(2, 2, 2, white, false), true, []string{
			"..X..",
			".X.X.",
			"X...X",
			".X.X.",
			"..X..",
		}},
		{"line", NewLine(0, 0, 4, 2, white), false, []string{
			"X....",
			".XX..",
			"...XX",
		}},
		{"horizontal line", NewLine(1, 1, 3, 1, white), false, []string{
			".....",
			".XXX.",
			".....",
		}},
		{"vertical line", NewLine(2, 0, 2, 2, white), false, []string{
			"..X..",
			"..X..",
			"..X..",
		}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			width, height := len(tc.image[0]), len(tc.image)
			checkImage(t, "rows", render(tc.obj, width, height), tc.image)
			if tc.vertical {
				checkImage(t, "columns", renderColumns(tc.obj, width, height), tc.image)
			}
		})
	}
}

func TestLineNoColumns(t *testing.T) {
	l := NewLine(0, 0, 2, 2, white)
	checkImage(t, "columns", renderColumns(l, 3, 3), []string{"...", "...", "..."})
	if b := l.Bounds(); b != image.Rect(0, 0, 3, 3) {
		t.Errorf("unexpected bounds: %v", b)
	}

	// Reversed end points cover the same bounding box and both ends.
	l.SetEnds(4, 2, 0, 0)
	got := render(l, 5, 3)
	if got[0][0] != 'X' || got[2][4] != 'X' {
		t.Errorf("end points not drawn: %v", got)
	}
}

func TestLargeCircle(t *testing.T) {
	// Every row of an outline must have at least one pixel on each side, or
	// the outline has gaps.
	c := NewCircle(20, 20, 20, white, false)
	for y, row := range render(c, 41, 41) {
		n := 0
		for _, ch := range row {
			if ch == 'X' {
				n++
			}
		}
		if y == 0 || y == 40 {
			if n != 1 {
				t.Errorf("row %d: expected 1 pixel, got %d", y, n)
			}
		} else if n < 2 {
			t.Errorf("row %d: expected at least 2 pixels, got %d", y, n)
		}
	}
}

func TestBitmap(t *testing.T) {
	pixels := []testColor{
		white, red, black,
		red, white, red,
	}
	b := NewBitmap(1, 0, 3, 2, pixels)
	checkImage(t, "plain", render(b, 5, 2), []string{".Xr..", ".rXr."})
	checkImage(t, "plain columns", renderColumns(b, 5, 2), []string{".Xr..", ".rXr."})

	b.SetTransparent(red)
	buf := []testColor{white, white, white, white, white}
	b.DrawRow(buf, 1)
	if got := toString(buf); got != "XXXXX" {
		t.Errorf("transparent pixels were drawn: %s", got)
	}

	b.ClearTransparent()
	b.SetMirror(true)
	checkImage(t, "mirrored", render(b, 5, 2), []string{"..rX.", ".rXr."})
	checkImage(t, "mirrored columns", renderColumns(b, 5, 2), []string{"..rX.", ".rXr."})
}

func TestFromImage(t *testing.T) {
	img := image.NewRGBA(image.Rect(0, 0, 2, 2))
	img.Set(0, 0, color.White)
	img.Set(1, 1, color.RGBA{R: 255, A: 255})
	b := FromImage[testColor](2, 1, img)
	if bounds := b.Bounds(); bounds != image.Rect(2, 1, 4, 3) {
		t.Errorf("unexpected bounds: %v", bounds)
	}
	checkImage(t, "image", render(b, 5, 3), []string{".....", "..X..", "...r."})
}

func TestPaletted(t *testing.T) {
	p := NewPaletted(0, 0, 4, 1, []uint8{0, 1, 2, 7}, []testColor{black, white, red})
	buf := []testColor{red, red, red, red}
	p.DrawRow(buf, 0)
	// Index 7 is past the palette, so it's not drawn.
	if got := toString(buf); got != ".Xrr" {
		t.Errorf("unexpected row: %s", got)
	}

	p.SetTransparent(0)
	buf = []testColor{white, white, white, white}
	p.DrawRow(buf, 0)
	if got := toString(buf); got != "XXrX" {
		t.Errorf("unexpected row with transparency: %s", got)
	}

	p.SetTransparent(NoTransparentIndex)
	p.SetMirror(true)
	checkImage(t, "mirrored", render(p, 4, 1), []string{".rX."})
	checkImage(t, "mirrored columns", renderColumns(p, 4, 1), []string{".rX."})
}

func countPixels(lines []string, ch rune) int {
	n := 0
	for _, line := range lines {
		for _, c := range line {
			if c == ch {
				n++
			}
		}
	}
	return n
}

func TestText(t *testing.T) {
	text := NewText(0, 0, "Hi", white, red)
	if b := text.Bounds(); b != image.Rect(0, 0, 14, 13) {
		t.Fatalf("unexpected bounds: %v", b)
	}
	if w, h := TextSize("Hi"); w != 14 || h != 13 {
		t.Errorf("unexpected text size %dx%d", w, h)
	}
	img := render(text, 14, 13)
	on := countPixels(img, 'X')
	if on == 0 {
		t.Fatal("no text drawn")
	}
	if on+countPixels(img, 'r') != 14*13 {
		t.Errorf("background not drawn")
	}
	checkImage(t, "columns", renderColumns(text, 14, 13), img)

	// Spaces have no foreground pixels.
	text.SetText("  ")
	if n := countPixels(render(text, 14, 13), 'X'); n != 0 {
		t.Errorf("space has %d pixels", n)
	}

	// A transparent background leaves the buffer alone.
	text.SetText("Hi")
	text.SetTransparent(true)
	if n := countPixels(render(text, 14, 13), 'r'); n != 0 {
		t.Errorf("transparent text drew %d background pixels", n)
	}

	// Scaling makes each pixel 2x2.
	text.SetScale(2)
	if b := text.Bounds(); b != image.Rect(0, 0, 28, 26) {
		t.Fatalf("unexpected scaled bounds: %v", b)
	}
	if n := countPixels(render(text, 28, 26), 'X'); n != 4*on {
		t.Errorf("expected %d pixels at scale 2, got %d", 4*on, n)
	}

	// Changing the text keeps the position.
	text.SetScale(1)
	text.SetBounds(text.Bounds().Add(image.Pt(5, 6)))
	text.SetText("abc")
	if b := text.Bounds(); b != image.Rect(5, 6, 26, 19) {
		t.Errorf("unexpected bounds after SetText: %v", b)
	}
}
