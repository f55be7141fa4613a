package ui

import (
	"image"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/lcdui/shapes"
)

// Checkbox is a square box followed by a label. Touching it toggles the
// checked state, and releasing it calls the callback.
type Checkbox[T display.Color] struct {
	display.Node
	box      *shapes.Box[T]
	mark     *shapes.Box[T]
	label    *shapes.Text[T]
	checked  bool
	pressed  bool
	callback callback
}

// checkboxSize is the size of the square, which matches the font height.
const checkboxSize = 13

// NewCheckbox returns an active, unchecked checkbox at (x, y).
func NewCheckbox[T display.Color](x, y int, label string, color T) *Checkbox[T] {
	var black T
	c := &Checkbox[T]{
		box:   shapes.NewBox(0, 0, checkboxSize, checkboxSize, color, false),
		mark:  shapes.NewBox(0, 0, checkboxSize-6, checkboxSize-6, color, true),
		label: shapes.NewText(0, 0, label, color, black),
	}
	c.label.SetTransparent(true)
	width := checkboxSize + 4 + c.label.Width()
	c.SetBounds(image.Rect(x, y, x+width, y+checkboxSize))
	c.SetActive(true)
	return c
}

// SetCallback sets the function that is called when the box is toggled.
func (c *Checkbox[T]) SetCallback(fn Callback, obj, param any, tag uint32) {
	c.callback = callback{fn, obj, param, tag}
}

// Checked returns whether the box is checked.
func (c *Checkbox[T]) Checked() bool {
	return c.checked
}

// SetChecked changes the checked state without calling the callback.
func (c *Checkbox[T]) SetChecked(checked bool) {
	c.checked = checked
}

// Action toggles the box on touch. The callback is called when the touch is
// released on the checkbox.
func (c *Checkbox[T]) Action(action display.Action, x, y int) {
	switch action {
	case display.ActionTouch:
		c.checked = !c.checked
		c.pressed = true
	case display.ActionMoveOut:
		c.pressed = false
	case display.ActionUntouch:
		if c.pressed {
			c.pressed = false
			c.callback.call()
		}
	}
}

func (c *Checkbox[T]) layout() {
	p := c.Bounds().Min
	c.box.SetBounds(image.Rectangle{Min: p, Max: p.Add(image.Pt(checkboxSize, checkboxSize))})
	c.mark.SetBounds(c.box.Bounds().Inset(3))
	lp := p.Add(image.Pt(checkboxSize+4, 0))
	c.label.SetBounds(image.Rectangle{Min: lp, Max: lp.Add(image.Pt(c.label.Width(), c.label.Height()))})
}

func (c *Checkbox[T]) DrawRow(buf []T, y int) {
	c.layout()
	c.box.DrawRow(buf, y)
	if c.checked {
		c.mark.DrawRow(buf, y)
	}
	c.label.DrawRow(buf, y)
}

func (c *Checkbox[T]) DrawColumn(buf []T, x int) {
	c.layout()
	c.box.DrawColumn(buf, x)
	if c.checked {
		c.mark.DrawColumn(buf, x)
	}
	c.label.DrawColumn(buf, x)
}
