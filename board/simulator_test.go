//go:build !baremetal

package board

import "testing"

func TestSimulatorTouch(t *testing.T) {
	screen.width = 320
	screen.height = 240
	defer func() {
		screen.touched = false
	}()

	sensor := Display.ConfigureTouch()
	if sensor.Touched() {
		t.Fatal("expected no touch at the start")
	}

	// Moving the mouse without pressing a button isn't a touch.
	handleWindowEvent("mousemove 10 20\n")
	if sensor.Touched() {
		t.Error("mouse move without button should not touch")
	}

	for _, tc := range []struct {
		event   string
		touched bool
		x, y    int
	}{
		{"mousedown 10 20", true, 10, 20},
		{"mousemove 30 40", true, 30, 40},
		{"mousemove -5 400", true, 0, 239}, // dragged outside the window
		{"mouseup", false, 0, 0},
	} {
		handleWindowEvent(tc.event + "\n")
		x, y, ok := sensor.ReadRaw()
		if ok != tc.touched || sensor.Touched() != tc.touched {
			t.Errorf("%s: expected touched=%v, got %v", tc.event, tc.touched, ok)
			continue
		}
		if ok && (x != tc.x || y != tc.y) {
			t.Errorf("%s: expected (%d, %d), got (%d, %d)", tc.event, tc.x, tc.y, x, y)
		}
	}
}

func TestSimulatorKeys(t *testing.T) {
	handleWindowEvent("keypress 2\n")
	handleWindowEvent("keyrelease 2\n")

	e := Buttons.NextEvent()
	if e.Key() != KeyLeft || !e.Pressed() {
		t.Errorf("expected KeyLeft press, got key %d pressed=%v", e.Key(), e.Pressed())
	}
	e = Buttons.NextEvent()
	if e.Key() != KeyLeft || e.Pressed() {
		t.Errorf("expected KeyLeft release, got key %d pressed=%v", e.Key(), e.Pressed())
	}
	if e := Buttons.NextEvent(); e != NoKeyEvent {
		t.Errorf("expected no more events, got %d", e)
	}
}
