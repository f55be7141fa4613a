package ui

import (
	"context"
	"image"
	"strings"
	"time"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/lcdui/shapes"
)

const msgBoxPadding = 6

// MsgBox is a message of one or more lines with an optional header, centered
// on the screen. The boxes are shown at the requested depth and the text one
// above it.
type MsgBox[T display.Color] struct {
	c     *display.Compositor[T]
	boxes []display.Object[T]
	texts []display.Object[T]
	shown bool
}

// NewMsgBox creates a message box for the given compositor, which must have
// been set up already so that the screen size is known. Lines in text are
// separated by newlines. The header may be empty.
func NewMsgBox[T display.Color](c *display.Compositor[T], header, text string, fg, bg T) *MsgBox[T] {
	lines := strings.Split(text, "\n")
	_, lineHeight := shapes.TextSize("")
	width := 0
	for _, line := range append(lines, header) {
		w, _ := shapes.TextSize(line)
		width = max(width, w)
	}
	width += 2 * msgBoxPadding
	height := len(lines)*lineHeight + 2*msgBoxPadding
	headerHeight := 0
	if header != "" {
		headerHeight = lineHeight + msgBoxPadding
		height += headerHeight
	}

	screenWidth, screenHeight := c.Size()
	x := (screenWidth - width) / 2
	y := (screenHeight - height) / 2

	m := &MsgBox[T]{c: c}
	m.boxes = append(m.boxes,
		shapes.NewBox(x, y, width, height, bg, true),
		shapes.NewBox(x, y, width, height, fg, false))
	if header != "" {
		bar := shapes.NewBox(x, y, width, headerHeight, fg, true)
		m.boxes = append(m.boxes, bar)
		w, _ := shapes.TextSize(header)
		title := shapes.NewText(x+(width-w)/2, y+msgBoxPadding/2, header, bg, fg)
		title.SetTransparent(true)
		m.texts = append(m.texts, title)
	}
	ty := y + headerHeight + msgBoxPadding
	for _, line := range lines {
		w, _ := shapes.TextSize(line)
		t := shapes.NewText(x+(width-w)/2, ty, line, fg, bg)
		t.SetTransparent(true)
		m.texts = append(m.texts, t)
		ty += lineHeight
	}
	return m
}

// Show shows the message box at the given depth.
func (m *MsgBox[T]) Show(depth uint32) error {
	if m.shown {
		return display.ErrAlreadyListed
	}
	var shown []display.Object[T]
	show := func(obj display.Object[T], depth uint32) error {
		if err := m.c.Show(obj, depth); err != nil {
			// Undo the part that was shown, so that Show can be retried.
			for _, obj := range shown {
				m.c.Hide(obj)
			}
			return err
		}
		shown = append(shown, obj)
		return nil
	}
	for _, obj := range m.boxes {
		if err := show(obj, depth); err != nil {
			return err
		}
	}
	for _, obj := range m.texts {
		if err := show(obj, depth+1); err != nil {
			return err
		}
	}
	m.shown = true
	m.c.RequestRedraw()
	return nil
}

// Hide removes the message box from the screen.
func (m *MsgBox[T]) Hide() error {
	if !m.shown {
		return display.ErrNotListed
	}
	for _, obj := range m.texts {
		m.c.Hide(obj)
	}
	for _, obj := range m.boxes {
		m.c.Hide(obj)
	}
	m.shown = false
	m.c.RequestRedraw()
	return nil
}

// Run shows the message box for the given duration, or until the context is
// done.
func (m *MsgBox[T]) Run(ctx context.Context, depth uint32, duration time.Duration) error {
	if err := m.Show(depth); err != nil {
		return err
	}
	timer := time.NewTimer(duration)
	defer timer.Stop()
	var err error
	select {
	case <-timer.C:
	case <-ctx.Done():
		err = ctx.Err()
	}
	m.Hide()
	return err
}

// Bounds returns the area covered by the message box.
func (m *MsgBox[T]) Bounds() image.Rectangle {
	return m.boxes[0].(*shapes.Box[T]).Bounds()
}
