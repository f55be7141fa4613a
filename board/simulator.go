//go:build !baremetal

package board

// The simulator for a generic board with a display and (optionally) a
// touchscreen. The mouse acts as the touchscreen and the keyboard as the
// buttons.
//
// The board API doesn't use a mainloop of any kind, which would not be
// necessary anyway on embedded systems. But it is necessary on OSes, so to work
// around this the simulator is actually run in a separate process by starting
// the current process again and communicating over pipes (stdin/stdout in the
// simulator process).

import (
	"bufio"
	"fmt"
	"image"
	"image/color"
	"io"
	"math/rand"
	"os"
	"strings"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"
	"golang.org/x/image/draw"
)

const runWindowCommand = "run-simulator-window"

func init() {
	if len(os.Args) >= 2 && os.Args[1] == runWindowCommand {
		// This is the simulator process.
		// Run the entire window in an init function, because that's the only
		// way to do this with the API that is exposed by the board package.
		windowMain()
		os.Exit(0)
	}
}

var (
	displayImageLock     sync.Mutex
	displayImage         *image.RGBA
	displayRect          image.Rectangle // where the display is drawn in the window
	displayMaxBrightness = 1
	displayBrightness    = 1
)

// The main function for the window process.
func windowMain() {
	// Create a raster image to use as a display buffer.
	displayImage = image.NewRGBA(image.Rect(0, 0, 240, 240))
	display := &displayWidget{}
	display.Generator = func(w, h int) image.Image {
		displayImageLock.Lock()
		defer displayImageLock.Unlock()
		img := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(img, image.Rect(0, 0, w, h), image.NewUniform(color.RGBA{
			R: 192,
			G: 192,
			B: 192,
			A: 255,
		}), image.Pt(0, 0), draw.Over)
		rect := displayImage.Bounds()
		scale := h / rect.Dy()
		if scale < 1 {
			scale = 1
		}
		width := rect.Dx() * scale
		height := rect.Dy() * scale
		x := (w - width) / 2
		y := (h - height) / 2
		displayRect = image.Rect(x, y, x+width, y+height)
		if displayBrightness <= 0 {
			// The backlight is off, so indicate this by making the screen gray.
			draw.Draw(img, displayRect, image.NewUniform(color.RGBA{
				R: 96,
				G: 96,
				B: 96,
				A: 255,
			}), image.Pt(0, 0), draw.Src)
		} else {
			draw.NearestNeighbor.Scale(img, displayRect, displayImage, rect, draw.Src, nil)
		}
		return img
	}

	// Create a window.
	a := app.New()
	w := a.NewWindow("Simulator")
	w.SetPadded(false)
	w.SetFixedSize(true)
	w.SetContent(display)

	// Listen for keyboard events, and translate them to board API keycodes.
	if deskCanvas, ok := w.Canvas().(desktop.Canvas); ok {
		deskCanvas.SetOnKeyDown(func(event *fyne.KeyEvent) {
			key := decodeFyneKey(event.Name)
			if key != NoKeyEvent {
				fmt.Printf("keypress %d\n", key)
			}
		})
		deskCanvas.SetOnKeyUp(func(event *fyne.KeyEvent) {
			key := decodeFyneKey(event.Name)
			if key != NoKeyEvent {
				fmt.Printf("keyrelease %d\n", key)
			}
		})
	}

	// Listen for events from the parent process (which includes display data).
	go windowReceiveEvents(w, display)

	// Show the window.
	w.ShowAndRun()
}

// Goroutine that listens for commands from the parent process.
func windowReceiveEvents(w fyne.Window, display *displayWidget) {
	r := bufio.NewReader(os.Stdin)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			// The parent process exited.
			os.Exit(0)
		}
		fields := strings.Fields(line)
		if len(fields) == 0 {
			continue
		}
		cmd := fields[0]
		switch cmd {
		case "display":
			var width, height int
			fmt.Sscanf(line, "%s %d %d\n", &cmd, &width, &height)
			newImage := image.NewRGBA(image.Rect(0, 0, width, height))
			// Fill with noise, like an uninitialized display.
			for y := 0; y < height; y++ {
				for x := 0; x < width; x++ {
					r := rand.Uint32()
					newImage.SetRGBA(x, y, color.RGBA{
						R: uint8(r >> 0),
						G: uint8(r >> 8),
						B: uint8(r >> 16),
						A: 255,
					})
				}
			}

			displayImageLock.Lock()
			displayImage = newImage
			display.SetMinSize(fyne.NewSize(float32(width), float32(height)))
			displayImageLock.Unlock()
		case "display-brightness":
			displayImageLock.Lock()
			fmt.Sscanf(line, "%s %d %d\n", &cmd, &displayBrightness, &displayMaxBrightness)
			displayImageLock.Unlock()
			display.Refresh()
		case "title":
			w.SetTitle(strings.TrimSpace(line[len("title"):]))
		case "draw":
			// Read the image data (which is a single line).
			var startX, startY, width int
			fmt.Sscanf(line, "%s %d %d %d\n", &cmd, &startX, &startY, &width)
			buf := make([]byte, width*3)
			io.ReadFull(r, buf)

			// Draw the image data to the image buffer.
			displayImageLock.Lock()
			for x := 0; x < width; x++ {
				displayImage.SetRGBA(startX+x, startY, color.RGBA{
					R: buf[x*3+0],
					G: buf[x*3+1],
					B: buf[x*3+2],
					A: 255,
				})
			}
			displayImageLock.Unlock()
			display.Refresh()
		default:
			fmt.Fprintln(os.Stderr, "unknown command:", cmd)
		}
	}
}

func decodeFyneKey(key fyne.KeyName) KeyEvent {
	var e KeyEvent
	switch key {
	case fyne.KeyLeft:
		e = KeyEvent(KeyLeft)
	case fyne.KeyRight:
		e = KeyEvent(KeyRight)
	case fyne.KeyUp:
		e = KeyEvent(KeyUp)
	case fyne.KeyDown:
		e = KeyEvent(KeyDown)
	case fyne.KeyEscape:
		e = KeyEvent(KeyEscape)
	case fyne.KeyReturn:
		e = KeyEvent(KeyEnter)
	case fyne.KeySpace:
		e = KeyEvent(KeySpace)
	case fyne.KeyA:
		e = KeyEvent(KeyA)
	case fyne.KeyB:
		e = KeyEvent(KeyB)
	default:
		return NoKeyEvent
	}
	return e
}

// Convert a position in the window to a display pixel.
func windowToDisplay(pos fyne.Position) (x, y int) {
	displayImageLock.Lock()
	defer displayImageLock.Unlock()
	rect := displayRect
	if rect.Empty() || displayImage == nil {
		return int(pos.X), int(pos.Y)
	}
	scale := rect.Dx() / displayImage.Bounds().Dx()
	if scale < 1 {
		scale = 1
	}
	return (int(pos.X) - rect.Min.X) / scale, (int(pos.Y) - rect.Min.Y) / scale
}

var _ desktop.Mouseable = (*displayWidget)(nil)
var _ fyne.Draggable = (*displayWidget)(nil)

// Wrapper for canvas.Render that sends mouse events to the parent process.
type displayWidget struct {
	canvas.Raster
}

func (r *displayWidget) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(&r.Raster)
}

func (r *displayWidget) MouseDown(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		x, y := windowToDisplay(event.Position)
		fmt.Printf("mousedown %d %d\n", x, y)
	}
}

func (r *displayWidget) MouseUp(event *desktop.MouseEvent) {
	if event.Button == desktop.MouseButtonPrimary {
		fmt.Printf("mouseup\n")
	}
}

func (r *displayWidget) Dragged(event *fyne.DragEvent) {
	x, y := windowToDisplay(event.PointEvent.Position)
	fmt.Printf("mousemove %d %d\n", x, y)
}

func (r *displayWidget) DragEnd() {
	// handled in MouseUp
}
