package ui

import (
	"context"
	"image"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

type testColor = pixel.RGB565BE

var (
	white = pixel.NewColor[testColor](255, 255, 255)
	black = pixel.NewColor[testColor](0, 0, 0)
)

// testPanel completes every transfer immediately.
type testPanel struct {
	width, height int16
	frames        int
	rows          [][]testColor
}

func (p *testPanel) Configure() error                         { return nil }
func (p *testPanel) Size() (int16, int16)                     { return p.width, p.height }
func (p *testPanel) SetOrientation(display.Orientation) error { return nil }
func (p *testPanel) SetWindow(x0, y0, x1, y1 int16) error     { p.rows = nil; return nil }
func (p *testPanel) TransferComplete() bool                   { return true }
func (p *testPanel) StopTransfer() error                      { p.frames++; return nil }
func (p *testPanel) StartLine(buf []testColor) error {
	p.rows = append(p.rows, append([]testColor(nil), buf...))
	return nil
}

type sample struct {
	touched bool
	x, y    int
}

// testSensor replays a list of samples. A released sample is used once by
// Touched, a touched sample once by ReadRaw. After the last sample it stays
// released.
type testSensor struct {
	samples []sample
}

func (s *testSensor) Configure() error { return nil }

func (s *testSensor) Touched() bool {
	if len(s.samples) == 0 {
		return false
	}
	if !s.samples[0].touched {
		s.samples = s.samples[1:]
		return false
	}
	return true
}

func (s *testSensor) ReadRaw() (int, int, bool) {
	if len(s.samples) == 0 {
		return 0, 0, false
	}
	cur := s.samples[0]
	s.samples = s.samples[1:]
	return cur.x, cur.y, cur.touched
}

func newCompositor(t *testing.T, panel *testPanel, sensor display.TouchSensor) *display.Compositor[testColor] {
	t.Helper()
	config := display.Config{
		FrameTimeout: time.Millisecond,
		Logger:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	c := display.New[testColor](panel, sensor, nil, config)
	if err := c.Setup(context.Background()); err != nil {
		t.Fatal(err)
	}
	return c
}

// touch makes the compositor see one sample.
func touch(t *testing.T, c *display.Compositor[testColor], sensor *testSensor, touched bool, x, y int) {
	t.Helper()
	sensor.samples = []sample{{touched, x, y}}
	if touched {
		// Keep it pressed for Touched calls after the sample was read.
		sensor.samples = append(sensor.samples, sample{touched, x, y})
	}
	if err := c.Loop(context.Background()); err != nil {
		t.Fatal(err)
	}
}

func TestButton(t *testing.T) {
	panel := &testPanel{width: 100, height: 50}
	sensor := &testSensor{}
	c := newCompositor(t, panel, sensor)

	var calls []uint32
	b := NewButton(10, 10, 40, 20, "OK", white)
	b.SetCallback(func(obj, param any, tag uint32) {
		if obj != b || param != "param" {
			t.Errorf("unexpected callback arguments: %v, %v", obj, param)
		}
		calls = append(calls, tag)
	}, b, "param", 42)
	c.Show(b, 1)

	touch(t, c, sensor, true, 20, 20)
	if !b.Pressed() {
		t.Error("button not pressed after touch")
	}
	touch(t, c, sensor, false, 0, 0)
	if b.Pressed() {
		t.Error("button still pressed after release")
	}
	if len(calls) != 1 || calls[0] != 42 {
		t.Errorf("expected one callback with tag 42, got %v", calls)
	}

	// Sliding off the button and releasing outside doesn't activate it.
	touch(t, c, sensor, true, 20, 20)
	touch(t, c, sensor, true, 80, 40)
	if b.Pressed() {
		t.Error("button still pressed after moving out")
	}
	touch(t, c, sensor, false, 0, 0)
	if len(calls) != 1 {
		t.Errorf("callback called after release outside the button")
	}

	// Sliding back in does.
	touch(t, c, sensor, true, 80, 40)
	touch(t, c, sensor, true, 30, 15)
	if !b.Pressed() {
		t.Error("button not pressed after moving in")
	}
	touch(t, c, sensor, false, 0, 0)
	if len(calls) != 2 {
		t.Errorf("expected 2 callbacks, got %d", len(calls))
	}
}

func TestButtonDraw(t *testing.T) {
	b := NewButton(2, 1, 30, 17, "X", white)
	buf := make([]testColor, 40)

	// Top edge of the outline.
	b.DrawRow(buf, 1)
	for x := range buf {
		if inside := x >= 2 && x < 32; (buf[x] == white) != inside {
			t.Fatalf("top row: unexpected pixel at %d", x)
		}
	}

	// The label is centered inside.
	label := b.label.Bounds()
	if expected := image.Rect(13, 3, 20, 16); label != expected {
		t.Errorf("label at %v, expected %v", label, expected)
	}

	// Pressing fills the box, with the label in black.
	b.Action(display.ActionTouch, 5, 5)
	clear(buf)
	b.DrawRow(buf, 9)
	whites, blacks := 0, 0
	for x := 2; x < 32; x++ {
		switch buf[x] {
		case white:
			whites++
		case black:
			blacks++
		}
	}
	if blacks == 0 || whites == 0 || whites+blacks != 30 {
		t.Errorf("unexpected pressed row: %d white, %d black", whites, blacks)
	}
}

func TestCheckbox(t *testing.T) {
	panel := &testPanel{width: 100, height: 50}
	sensor := &testSensor{}
	c := newCompositor(t, panel, sensor)

	toggles := 0
	cb := NewCheckbox(5, 5, "Sound", white)
	cb.SetCallback(func(obj, param any, tag uint32) { toggles++ }, nil, nil, 0)
	c.Show(cb, 1)

	touch(t, c, sensor, true, 8, 8)
	if !cb.Checked() {
		t.Error("not checked after touch")
	}
	if toggles != 0 {
		t.Errorf("callback called on press")
	}
	touch(t, c, sensor, false, 0, 0)
	if !cb.Checked() {
		t.Error("release changed the state")
	}
	if toggles != 1 {
		t.Errorf("expected 1 callback after release, got %d", toggles)
	}
	// Touching the label toggles too.
	touch(t, c, sensor, true, 30, 10)
	if cb.Checked() {
		t.Error("still checked after second touch")
	}
	touch(t, c, sensor, false, 0, 0)
	if toggles != 2 {
		t.Errorf("expected 2 callbacks, got %d", toggles)
	}

	// Sliding off before releasing toggles without a callback.
	touch(t, c, sensor, true, 8, 8)
	touch(t, c, sensor, true, 80, 40)
	touch(t, c, sensor, false, 0, 0)
	if !cb.Checked() {
		t.Error("not checked after third touch")
	}
	if toggles != 2 {
		t.Errorf("expected no callback after sliding off, got %d", toggles)
	}

	cb.SetChecked(true)
	buf := make([]testColor, 100)
	cb.DrawRow(buf, 11) // middle of the box
	// Outline, gap, mark, gap, outline.
	if buf[5] != white || buf[6] != black || buf[9] != white || buf[16] != black || buf[17] != white {
		t.Errorf("unexpected checked row: %v", buf[5:18])
	}
}

func TestMsgBoxShowFailure(t *testing.T) {
	panel := &testPanel{width: 240, height: 160}
	c := newCompositor(t, panel, nil)

	m := NewMsgBox(c, "", "Hello", white, black)
	// One of the texts is already on screen, so Show fails after the boxes
	// were shown.
	c.Show(m.texts[0], 1)
	if err := m.Show(10); err != display.ErrAlreadyListed {
		t.Fatalf("expected ErrAlreadyListed, got %v", err)
	}
	if n := c.Registry().Len(); n != 1 {
		t.Errorf("expected the boxes to be hidden again, got %d objects", n)
	}

	c.Hide(m.texts[0])
	if err := m.Show(10); err != nil {
		t.Fatalf("show after failure: %v", err)
	}
	if err := m.Hide(); err != nil {
		t.Errorf("hide: %v", err)
	}
	if n := c.Registry().Len(); n != 0 {
		t.Errorf("%d objects left after Hide", n)
	}
}

func TestMsgBox(t *testing.T) {
	panel := &testPanel{width: 240, height: 160}
	c := newCompositor(t, panel, nil)

	m := NewMsgBox(c, "Error", "Something went\nwrong", white, black)
	if err := m.Show(10); err != nil {
		t.Fatal(err)
	}
	objects := c.Registry().Objects()
	if len(objects) != 6 {
		t.Fatalf("expected 3 boxes and 3 texts, got %d objects", len(objects))
	}
	for i, obj := range objects {
		depth := uint32(10)
		if i >= 3 {
			depth = 11
		}
		if got := obj.(interface{ Depth() uint32 }).Depth(); got != depth {
			t.Errorf("object %d: expected depth %d, got %d", i, depth, got)
		}
	}
	if err := m.Show(10); err != display.ErrAlreadyListed {
		t.Errorf("expected ErrAlreadyListed, got %v", err)
	}

	// Centered on screen.
	b := m.Bounds()
	if left, right := b.Min.X, 240-b.Max.X; left-right > 1 || right-left > 1 {
		t.Errorf("not centered horizontally: %v", b)
	}
	if top, bottom := b.Min.Y, 160-b.Max.Y; top-bottom > 1 || bottom-top > 1 {
		t.Errorf("not centered vertically: %v", b)
	}

	m.Hide()
	if n := c.Registry().Len(); n != 0 {
		t.Errorf("%d objects left after Hide", n)
	}

	if err := m.Run(context.Background(), 5, time.Millisecond); err != nil {
		t.Errorf("run: %v", err)
	}
	if n := c.Registry().Len(); n != 0 {
		t.Errorf("%d objects left after Run", n)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Run(ctx, 5, time.Hour); err != context.Canceled {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestCalibrate(t *testing.T) {
	panel := &testPanel{width: 240, height: 320}
	sensor := &testSensor{}
	c := newCompositor(t, panel, sensor)

	sensor.samples = []sample{
		{false, 0, 0},
		{true, 3690, 3510},
		{true, 3710, 3490},
		{false, 0, 0},
		{false, 0, 0},
		{true, 300, 400},
		{false, 0, 0},
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	cal, err := Calibrate(ctx, c, white, black)
	if err != nil {
		t.Fatal(err)
	}
	if cal != c.Calibration() {
		t.Errorf("calibration not installed")
	}
	for _, p := range []struct{ rawX, rawY, x, y int }{
		{3700, 3500, 10, 10},
		{300, 400, 229, 309},
	} {
		x, y := cal.Apply(p.rawX, p.rawY)
		if x < p.x-1 || x > p.x+1 || y < p.y-1 || y > p.y+1 {
			t.Errorf("raw (%d, %d) mapped to (%d, %d), expected (%d, %d)", p.rawX, p.rawY, x, y, p.x, p.y)
		}
	}
	if n := c.Registry().Len(); n != 0 {
		t.Errorf("%d objects left after calibration", n)
	}

	// Without touches, calibration gives up when the context is done.
	ctx, cancel = context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()
	if _, err := Calibrate(ctx, c, white, black); err != context.DeadlineExceeded {
		t.Errorf("expected context.DeadlineExceeded, got %v", err)
	}
}

func TestStatusLine(t *testing.T) {
	panel := &testPanel{width: 100, height: 50}
	c := newCompositor(t, panel, &testSensor{})
	s := NewStatusLine(c, StatusTouch, white, black)
	if err := s.Show(); err != nil {
		t.Fatal(err)
	}
	if got := s.Text(); got != "X: - Y: -" {
		t.Errorf("unexpected touch status %q", got)
	}

	s.SetMode(StatusFPS)
	c.Loop(context.Background())
	s.Update()
	if got := s.Text(); got == "FPS: 0.0" || got[:5] != "FPS: " {
		t.Errorf("unexpected fps status %q", got)
	}
	objects := c.Registry().Objects()
	if len(objects) != 1 || objects[0].(interface{ Depth() uint32 }).Depth() != statusDepth {
		t.Errorf("status line not on top")
	}
	s.Hide()
}
