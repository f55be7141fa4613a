package display

import (
	"errors"
	"image"
	"io"
	"log/slog"

	"github.com/aykevl/tinygl/pixel"
)

type testColor = pixel.RGB888

var (
	red   = testColor{R: 255}
	green = testColor{G: 255}
	blue  = testColor{B: 255}
)

func quietConfig() Config {
	return Config{Logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
}

// rect is a filled rectangle that records the touch actions it receives.
type rect struct {
	Node
	name    string
	color   testColor
	actions []Action

	lastX, lastY int
}

func newRect(name string, color testColor, r image.Rectangle) *rect {
	obj := &rect{name: name, color: color}
	obj.SetBounds(r)
	obj.SetActive(true)
	return obj
}

func (r *rect) DrawRow(buf []testColor, y int) {
	b := r.Bounds()
	for x := max(b.Min.X, 0); x < min(b.Max.X, len(buf)); x++ {
		buf[x] = r.color
	}
}

func (r *rect) DrawColumn(buf []testColor, x int) {
	b := r.Bounds()
	for y := max(b.Min.Y, 0); y < min(b.Max.Y, len(buf)); y++ {
		buf[y] = r.color
	}
}

func (r *rect) Action(action Action, x, y int) {
	r.actions = append(r.actions, action)
	r.lastX, r.lastY = x, y
}

var errBusy = errors.New("line started during transfer")

// fakePanel behaves like a DMA-driven panel: a line is only copied out of
// the buffer once the transfer completes, which takes a few polls.
type fakePanel struct {
	width, height int16
	orientation   Orientation
	polls         int // polls before a transfer completes
	stall         bool

	configured bool
	windows    []image.Rectangle
	inflight   []testColor
	waited     int
	lines      [][]testColor
	buffers    []*testColor
	stops      int
	err        error
}

func (p *fakePanel) Configure() error {
	p.configured = true
	return nil
}

func (p *fakePanel) Size() (int16, int16) {
	return p.width, p.height
}

func (p *fakePanel) SetOrientation(o Orientation) error {
	if o != p.orientation {
		p.width, p.height = p.height, p.width
		p.orientation = o
	}
	return nil
}

func (p *fakePanel) SetWindow(x0, y0, x1, y1 int16) error {
	p.windows = append(p.windows, image.Rect(int(x0), int(y0), int(x1)+1, int(y1)+1))
	return nil
}

func (p *fakePanel) StartLine(buf []testColor) error {
	if p.inflight != nil {
		p.err = errBusy
		return errBusy
	}
	p.inflight = buf
	p.waited = 0
	p.buffers = append(p.buffers, &buf[0])
	return nil
}

func (p *fakePanel) TransferComplete() bool {
	if p.inflight == nil {
		return true
	}
	if p.stall {
		return false
	}
	p.waited++
	if p.waited < p.polls {
		return false
	}
	p.lines = append(p.lines, append([]testColor(nil), p.inflight...))
	p.inflight = nil
	return true
}

func (p *fakePanel) StopTransfer() error {
	p.stops++
	return nil
}

// fakeSensor returns whatever the test put in it.
type fakeSensor struct {
	touched bool
	x, y    int
}

func (s *fakeSensor) Configure() error { return nil }

func (s *fakeSensor) Touched() bool { return s.touched }

func (s *fakeSensor) ReadRaw() (int, int, bool) {
	return s.x, s.y, s.touched
}

// fakeBus records every speed change.
type fakeBus struct {
	speed   uint32
	changes []uint32
}

func (b *fakeBus) Speed() uint32 { return b.speed }

func (b *fakeBus) SetSpeed(hz uint32) error {
	b.speed = hz
	b.changes = append(b.changes, hz)
	return nil
}
