package display

import (
	"image"

	"github.com/aykevl/tinygl/pixel"
)

// Color is the pixel format of a line buffer. It is the same set of colors as
// pixel.Color, restricted to comparable values so that a transparent sentinel
// color can be checked with ==.
type Color interface {
	pixel.Color
	comparable
}

// Action is a touch event delivered to an active object.
type Action uint8

const (
	ActionNone    Action = iota
	ActionTouch          // The screen was pressed inside the object.
	ActionUntouch        // The screen was released inside the object.
	ActionMove           // The touch moved while staying inside the object.
	ActionMoveIn         // The touch moved from outside into the object.
	ActionMoveOut        // The touch moved from inside the object to outside.
)

func (a Action) String() string {
	switch a {
	case ActionTouch:
		return "touch"
	case ActionUntouch:
		return "untouch"
	case ActionMove:
		return "move"
	case ActionMoveIn:
		return "move-in"
	case ActionMoveOut:
		return "move-out"
	default:
		return "none"
	}
}

// Orientation selects how the screen is scanned: row by row (horizontal) or
// column by column (vertical).
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Object is something that can be drawn by the compositor, one scan line at a
// time. All objects embed a Node, which stores the bounding box and the state
// the registry needs.
type Object[T Color] interface {
	// DrawRow draws the part of the object that intersects screen row y into
	// buf, where buf[0] is the leftmost pixel of the row. Pixels that are
	// transparent for this object must be left untouched.
	DrawRow(buf []T, y int)

	// DrawColumn is the same as DrawRow, but for screen column x, where buf[0]
	// is the topmost pixel of the column. It is only used in vertical
	// orientation.
	DrawColumn(buf []T, x int)

	// Action is called for touch events when the object is active. It is
	// called from the render loop between frames, without the line lock
	// held, so it may change how the object looks and may call into the
	// compositor. A new frame is requested after it returns.
	Action(action Action, x, y int)

	node() *Node
}

// Node is the part of an object that is shared by all object types. It must
// be embedded in every Object implementation.
//
// The bounding box must only be changed while the line lock is held (or while
// the object is not shown).
type Node struct {
	bounds image.Rectangle
	depth  uint32
	active bool
	listed bool
}

func (n *Node) node() *Node {
	return n
}

// Bounds returns the screen area this object may draw to. Max is exclusive,
// so the last pixel of the object is at Max.X-1, Max.Y-1.
func (n *Node) Bounds() image.Rectangle {
	return n.bounds
}

// SetBounds changes the bounding box. When the object is shown, the line lock
// must be held while calling this.
func (n *Node) SetBounds(r image.Rectangle) {
	n.bounds = r
}

// Width returns the width of the bounding box in pixels.
func (n *Node) Width() int {
	return n.bounds.Dx()
}

// Height returns the height of the bounding box in pixels.
func (n *Node) Height() int {
	return n.bounds.Dy()
}

// Depth returns the depth (z-order) used the last time the object was shown.
func (n *Node) Depth() uint32 {
	return n.depth
}

// Active returns whether this object takes part in touch hit testing.
func (n *Node) Active() bool {
	return n.active
}

// SetActive sets whether this object receives touch events. An active object
// without its own Action method still blocks touches to objects below it.
func (n *Node) SetActive(active bool) {
	n.active = active
}

// Shown returns whether the object is currently in the registry.
//
// This is a plain read without taking the line lock, so the result may be
// stale by the time it is used.
func (n *Node) Shown() bool {
	return n.listed
}

// Action is the default touch handler, which does nothing.
func (n *Node) Action(action Action, x, y int) {
}

// contains reports whether (x, y) is inside the bounding box.
func (n *Node) contains(x, y int) bool {
	return image.Pt(x, y).In(n.bounds)
}
