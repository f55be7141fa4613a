// Package ui contains touch widgets built from the shapes package, and a few
// screens that are useful on any board.
package ui

import (
	"image"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/lcdui/shapes"
	"github.com/aykevl/tinygl/pixel"
)

// Callback is called when a widget is activated. The two values and the tag
// are the ones passed to SetCallback, so that one function can serve several
// widgets.
type Callback func(obj, param any, tag uint32)

type callback struct {
	fn    Callback
	obj   any
	param any
	tag   uint32
}

func (c *callback) call() {
	if c.fn != nil {
		c.fn(c.obj, c.param, c.tag)
	}
}

// Button is a rectangle with a centered label. It is highlighted while
// pressed, and the callback is called when the touch is released inside the
// button.
type Button[T display.Color] struct {
	display.Node
	box      *shapes.Box[T]
	label    *shapes.Text[T]
	color    T
	pressed  bool
	callback callback
}

// NewButton returns an active button. The outline and label use color.
func NewButton[T display.Color](x, y, width, height int, label string, color T) *Button[T] {
	var black T
	b := &Button[T]{
		box:   shapes.NewBox(0, 0, width, height, color, false),
		label: shapes.NewText(0, 0, label, color, black),
		color: color,
	}
	b.label.SetTransparent(true)
	b.SetBounds(image.Rect(x, y, x+width, y+height))
	b.SetActive(true)
	return b
}

// SetCallback sets the function that is called when the button is released.
func (b *Button[T]) SetCallback(fn Callback, obj, param any, tag uint32) {
	b.callback = callback{fn, obj, param, tag}
}

// SetLabel changes the label text.
func (b *Button[T]) SetLabel(label string) {
	b.label.SetText(label)
}

// Label returns the label text.
func (b *Button[T]) Label() string {
	return b.label.Text()
}

// Pressed returns whether the button is currently pressed.
func (b *Button[T]) Pressed() bool {
	return b.pressed
}

func (b *Button[T]) setPressed(pressed bool) {
	b.pressed = pressed
	b.box.SetFilled(pressed)
	if pressed {
		b.label.SetColors(pixel.NewColor[T](0, 0, 0), b.color)
	} else {
		b.label.SetColors(b.color, b.color)
	}
}

func (b *Button[T]) Action(action display.Action, x, y int) {
	switch action {
	case display.ActionTouch, display.ActionMoveIn:
		b.setPressed(true)
	case display.ActionUntouch:
		if b.pressed {
			b.callback.call()
		}
		b.setPressed(false)
	case display.ActionMoveOut:
		b.setPressed(false)
	}
}

// layout moves the parts to the current position of the button.
func (b *Button[T]) layout() {
	r := b.Bounds()
	b.box.SetBounds(r)
	w, h := b.label.Width(), b.label.Height()
	p := r.Min.Add(image.Pt((r.Dx()-w)/2, (r.Dy()-h)/2))
	b.label.SetBounds(image.Rectangle{Min: p, Max: p.Add(image.Pt(w, h))})
}

func (b *Button[T]) DrawRow(buf []T, y int) {
	b.layout()
	b.box.DrawRow(buf, y)
	b.label.DrawRow(buf, y)
}

func (b *Button[T]) DrawColumn(buf []T, x int) {
	b.layout()
	b.box.DrawColumn(buf, x)
	b.label.DrawColumn(buf, x)
}
