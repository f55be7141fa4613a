package ui

import (
	"math"
	"strconv"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/lcdui/shapes"
)

// Depths used by the screens in this package, above anything an application
// normally uses.
const (
	calibrationDepth = math.MaxUint32 - 3
	statusDepth      = math.MaxUint32
)

// StatusMode selects what a StatusLine shows.
type StatusMode uint8

const (
	StatusFPS   StatusMode = iota // frame rate of the compositor
	StatusTouch                   // current touch position
)

// StatusLine is a line of text at the top left of the screen, above every
// other object, that shows the frame rate or the touch position.
type StatusLine[T display.Color] struct {
	c    *display.Compositor[T]
	text *shapes.Text[T]
	mode StatusMode
}

// NewStatusLine returns a status line. Call Show to make it visible and Update
// to refresh it.
func NewStatusLine[T display.Color](c *display.Compositor[T], mode StatusMode, fg, bg T) *StatusLine[T] {
	return &StatusLine[T]{
		c:    c,
		text: shapes.NewText(0, 0, "", fg, bg),
		mode: mode,
	}
}

// Show shows the status line.
func (s *StatusLine[T]) Show() error {
	s.Update()
	return s.c.Show(s.text, statusDepth)
}

// Hide hides the status line.
func (s *StatusLine[T]) Hide() error {
	return s.c.Hide(s.text)
}

// SetMode changes what is shown. It takes effect on the next Update.
func (s *StatusLine[T]) SetMode(mode StatusMode) {
	s.mode = mode
}

// Text returns the text that is currently shown.
func (s *StatusLine[T]) Text() string {
	var text string
	s.c.Modify(func() {
		text = s.text.Text()
	})
	return text
}

// Update refreshes the text, and requests a redraw if it changed.
func (s *StatusLine[T]) Update() {
	var text string
	switch s.mode {
	case StatusFPS:
		fps := s.c.FPS()
		text = "FPS: " + strconv.Itoa(int(fps/10)) + "." + strconv.Itoa(int(fps%10))
	case StatusTouch:
		if x, y, ok := s.c.Touch(); ok {
			text = "X: " + strconv.Itoa(x) + " Y: " + strconv.Itoa(y)
		} else {
			text = "X: - Y: -"
		}
	}
	changed := false
	s.c.Modify(func() {
		if s.text.Text() != text {
			s.text.SetText(text)
			changed = true
		}
	})
	if changed {
		s.c.RequestRedraw()
	}
}
