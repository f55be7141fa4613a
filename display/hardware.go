package display

// Panel is a display controller that receives pixels one scan line at a time.
// Implementations live in the board package.
type Panel[T Color] interface {
	// Configure initializes the display controller.
	Configure() error

	// Size returns the current logical size, which depends on the
	// orientation.
	Size() (width, height int16)

	// SetOrientation switches between row and column scanning. It is only
	// called between frames.
	SetOrientation(orientation Orientation) error

	// SetWindow sets the area that following lines are written to. The
	// coordinates are inclusive.
	SetWindow(x0, y0, x1, y1 int16) error

	// StartLine starts sending one line of pixels. The transfer may continue
	// in the background: buf must not be modified until TransferComplete
	// returns true.
	StartLine(buf []T) error

	// TransferComplete returns whether the last started line has been sent.
	TransferComplete() bool

	// StopTransfer ends the frame.
	StopTransfer() error
}

// TouchSensor is a touch controller that returns uncalibrated coordinates.
type TouchSensor interface {
	Configure() error

	// Touched returns whether the screen is currently pressed.
	Touched() bool

	// ReadRaw samples the raw (uncalibrated) position. The ok result is false
	// when the screen is not pressed or the sample was not usable.
	ReadRaw() (x, y int, ok bool)
}

// Bus is a communication bus shared between the panel and the touch
// controller. Touch controllers are usually rated for a much lower clock
// than display controllers, so the bus is slowed down while sampling.
type Bus interface {
	Speed() uint32
	SetSpeed(hz uint32) error
}

// CalibrationScale is the fixed point scale of the calibration factors.
const CalibrationScale = 100

// Calibration maps raw touch coordinates to screen coordinates, per axis:
//
//	x = raw*CalibrationScale/KX + BX
//
// A negative factor means the axis of the touch controller runs the other way
// than the screen axis. A zero factor passes the raw value through unchanged.
type Calibration struct {
	KX, KY int32
	BX, BY int32
}

// Apply converts a raw sample to screen coordinates.
func (c Calibration) Apply(rawX, rawY int) (x, y int) {
	x, y = rawX, rawY
	if c.KX != 0 {
		x = int(int32(rawX)*CalibrationScale/c.KX + c.BX)
	}
	if c.KY != 0 {
		y = int(int32(rawY)*CalibrationScale/c.KY + c.BY)
	}
	return x, y
}

// CalibrationFromPoints computes a calibration from two reference points.
// Point 1 was shown at screen position (sx1, sy1) and read as (rx1, ry1),
// same for point 2. It returns false if the points do not differ on both
// axes.
func CalibrationFromPoints(sx1, sy1, rx1, ry1, sx2, sy2, rx2, ry2 int) (Calibration, bool) {
	if sx1 == sx2 || sy1 == sy2 || rx1 == rx2 || ry1 == ry2 {
		return Calibration{}, false
	}
	kx := int32((rx2 - rx1) * CalibrationScale / (sx2 - sx1))
	ky := int32((ry2 - ry1) * CalibrationScale / (sy2 - sy1))
	if kx == 0 || ky == 0 {
		return Calibration{}, false
	}
	return Calibration{
		KX: kx,
		KY: ky,
		BX: int32(sx1) - int32(rx1)*CalibrationScale/kx,
		BY: int32(sy1) - int32(ry1)*CalibrationScale/ky,
	}, true
}
