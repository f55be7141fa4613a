//go:build !baremetal

package board

// The generic board exists for testing locally without running on real
// hardware. This avoids potentially long edit-flash-test cycles.

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"strings"
	"sync"
	"time"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/tinygl/pixel"
)

const (
	// The board name, as passed to TinyGo in the "-target" flag.
	// This is the special name "simulator" for the simulator.
	Name = "simulator"
)

// List of all devices.
//
// Support varies by board, but all boards have the following peripherals
// defined.
var (
	Display = mainDisplay{}
	Buttons = buttonsConfig{}
)

type mainDisplay struct{}

type fyneScreen struct {
	width         int
	height        int
	keyevents     []KeyEvent
	keyeventsLock sync.Mutex
	touched       bool
	touchX        int
	touchY        int
	touchLock     sync.Mutex
}

var screen = &fyneScreen{}

// Configure returns a new display ready to draw on.
//
// Boards without a display will return nil.
func (d mainDisplay) Configure() display.Panel[pixel.RGB888] {
	startWindow()
	screen.width = Simulator.WindowWidth
	screen.height = Simulator.WindowHeight
	windowSendCommand(fmt.Sprintf("display %d %d", screen.width, screen.height), nil)
	return newStreamPanel[pixel.RGB888](screen)
}

// MaxBrightness returns the maximum brightness value. A maximum brightness
// value of 0 means that this display doesn't support changing the brightness.
func (d mainDisplay) MaxBrightness() int {
	return 1
}

// SetBrightness sets brightness level of the display. It should be:
//
//	0 ≤ level ≤ MaxBrightness
//
// A value of 0 turns the backlight off entirely (but may leave the display
// running with nothing visible).
func (d mainDisplay) SetBrightness(level int) {
	// Send the current and max brightness levels.
	windowSendCommand(fmt.Sprintf("display-brightness %d %d", level, 1), nil)
}

// Pixels per inch for this display.
func (d mainDisplay) PPI() int {
	return Simulator.WindowPPI
}

// ConfigureTouch returns the touch sensor of this display, or nil if there is
// none. The mouse acts as a touch sensor in the simulator.
func (d mainDisplay) ConfigureTouch() display.TouchSensor {
	startWindow()
	return mouseTouch{}
}

// TouchBus returns the bus that is shared between the display and the touch
// controller and the speed at which the touch controller must be accessed,
// or nil if the touch controller has its own bus.
func (d mainDisplay) TouchBus() (display.Bus, uint32) {
	return nil, 0
}

// TouchCalibration returns the default calibration of the touch sensor.
func (d mainDisplay) TouchCalibration() display.Calibration {
	// Mouse coordinates are already screen coordinates.
	return display.Calibration{}
}

func (s *fyneScreen) Display() error {
	// Nothing to do here.
	return nil
}

func (s *fyneScreen) DrawRGBBitmap8(x, y int16, buf []byte, width, height int16) error {
	displayWidth, displayHeight := s.Size()
	if x < 0 || y < 0 || width <= 0 || height <= 0 ||
		x+width > displayWidth || y+height > displayHeight {
		return errors.New("board: drawing out of bounds")
	}
	drawStart := time.Now()
	for bufy := 0; bufy < int(height); bufy++ {
		// Delay drawing a bit, to simulate a slow SPI bus.
		if Simulator.WindowDrawSpeed != 0 {
			expected := drawStart.Add(Simulator.WindowDrawSpeed * time.Duration(bufy*int(width)))
			if delay := time.Until(expected); delay > 0 {
				time.Sleep(delay)
			}
		}

		index := (bufy * int(width)) * 3
		lineBuf := buf[index : index+int(width)*3]
		windowSendCommand(fmt.Sprintf("draw %d %d %d", x, int(y)+bufy, width), lineBuf)
	}
	return nil
}

func (s *fyneScreen) Size() (width, height int16) {
	return int16(s.width), int16(s.height)
}

// The mouse, pretending to be a touch screen. Coordinates are screen pixels.
type mouseTouch struct{}

func (t mouseTouch) Configure() error {
	return nil
}

func (t mouseTouch) Touched() bool {
	screen.touchLock.Lock()
	defer screen.touchLock.Unlock()
	return screen.touched
}

func (t mouseTouch) ReadRaw() (x, y int, ok bool) {
	screen.touchLock.Lock()
	defer screen.touchLock.Unlock()
	if !screen.touched {
		return 0, 0, false
	}
	// The mouse can be dragged outside the window.
	x = clamp(screen.touchX, 0, screen.width-1, 0, screen.width-1)
	y = clamp(screen.touchY, 0, screen.height-1, 0, screen.height-1)
	return x, y, true
}

type buttonsConfig struct{}

func (b buttonsConfig) Configure() {
}

func (b buttonsConfig) ReadInput() {
}

func (b buttonsConfig) NextEvent() KeyEvent {
	screen.keyeventsLock.Lock()
	defer screen.keyeventsLock.Unlock()

	if len(screen.keyevents) != 0 {
		event := screen.keyevents[0]
		copy(screen.keyevents, screen.keyevents[1:])
		screen.keyevents = screen.keyevents[:len(screen.keyevents)-1]
		return event
	}
	return NoKeyEvent
}

var (
	fyneStart    sync.Once
	windowLock   sync.Mutex
	windowStdin  io.WriteCloser
	windowStdout io.ReadCloser
)

// Ensure the window is running in a separate process, starting it if necessary.
func startWindow() {
	// Create a main loop for Fyne.
	windowRunning := make(chan struct{})
	fyneStart.Do(func() {
		// Start the separate process that manages the window.
		go func() {
			cmd := exec.Command(os.Args[0], runWindowCommand)
			cmd.Stderr = os.Stderr
			windowStdin, _ = cmd.StdinPipe()
			windowStdout, _ = cmd.StdoutPipe()
			err := cmd.Start()
			if err != nil {
				fmt.Fprintln(os.Stdout, "could not start window process:", err)
				os.Exit(1)
			}
			close(windowRunning)
			err = cmd.Wait()
			if err != nil {
				if exitErr, ok := err.(*exec.ExitError); ok {
					os.Exit(exitErr.ExitCode())
				}
				os.Exit(1)
			}
			// The window was closed, so exit.
			os.Exit(0)
		}()
		<-windowRunning

		// Listen for events (keyboard/touch).
		go windowListenEvents(windowStdout)

		// Do some initialization.
		windowSendCommand("title "+Simulator.WindowTitle, nil)
	})
}

// Send a command to the separate process that manages the window.
// The command is a single line (without newline). The data part is optional
// binary data that can be sent with the command. The size of this binary data
// must be part of the textual command.
func windowSendCommand(command string, data []byte) {
	windowLock.Lock()
	defer windowLock.Unlock()

	windowStdin.Write([]byte(command + "\n"))
	windowStdin.Write(data)
}

// Goroutine that listens for window events like button and touch (keyboard and
// mouse).
func windowListenEvents(events io.Reader) {
	r := bufio.NewReader(events)
	for {
		line, err := r.ReadString('\n')
		if err != nil {
			if err != io.EOF {
				fmt.Fprintln(os.Stderr, "failed to read I/O events from child process:", err)
			}
			break
		}
		handleWindowEvent(line)
	}
}

// Update the keyboard or touch state from a single event line sent by the
// window process.
func handleWindowEvent(line string) {
	fields := strings.Fields(line)
	if len(fields) == 0 {
		return
	}
	cmd := fields[0]
	switch cmd {
	case "keypress", "keyrelease":
		// Read the key code.
		var key KeyEvent
		fmt.Sscanf(line, "%s %d", &cmd, &key)
		if cmd == "keyrelease" {
			key |= keyReleased
		}

		// Add the key code to the queue.
		screen.keyeventsLock.Lock()
		screen.keyevents = append(screen.keyevents, key)
		screen.keyeventsLock.Unlock()
	case "mousedown", "mousemove":
		// Read the event.
		var x, y int
		fmt.Sscanf(line, "%s %d %d", &cmd, &x, &y)

		// Update the touch state. Moving the mouse without a button pressed
		// isn't a touch.
		screen.touchLock.Lock()
		if cmd == "mousedown" || screen.touched {
			screen.touched = true
			screen.touchX = x
			screen.touchY = y
		}
		screen.touchLock.Unlock()
	case "mouseup":
		// End the current touch.
		screen.touchLock.Lock()
		screen.touched = false
		screen.touchLock.Unlock()
	default:
		fmt.Fprintln(os.Stderr, "unknown command:", cmd)
	}
}
