package ui

import (
	"context"
	"errors"
	"time"

	"github.com/aykevl/lcdui/display"
	"github.com/aykevl/lcdui/shapes"
)

// ErrCalibration is returned when the two calibration points could not be
// told apart.
var ErrCalibration = errors.New("ui: touch calibration failed")

const (
	calibrationMargin = 10 // distance of the targets from the screen corners
	calibrationPoll   = 10 * time.Millisecond
)

// Calibrate asks the user to touch two targets, near the top left and bottom
// right corner of the screen, and installs the resulting calibration. While
// a target is touched, samples are averaged until the touch is released.
func Calibrate[T display.Color](ctx context.Context, c *display.Compositor[T], fg, bg T) (display.Calibration, error) {
	defer c.RequestRedraw()
	width, height := c.Size()
	background := shapes.NewBox(0, 0, width, height, bg, true)
	c.Show(background, calibrationDepth)
	defer c.Hide(background)

	message := shapes.NewText(0, 0, "Touch the target", fg, bg)
	message.SetTransparent(true)
	c.Move(message, (width-message.Width())/2, (height-message.Height())/2, false)
	c.Show(message, calibrationDepth+1)
	defer c.Hide(message)

	x1, y1 := calibrationMargin, calibrationMargin
	x2, y2 := width-1-calibrationMargin, height-1-calibrationMargin
	rx1, ry1, err := calibrationPoint(ctx, c, x1, y1, fg)
	if err != nil {
		return display.Calibration{}, err
	}
	rx2, ry2, err := calibrationPoint(ctx, c, x2, y2, fg)
	if err != nil {
		return display.Calibration{}, err
	}
	c.RequestRedraw()

	cal, ok := display.CalibrationFromPoints(x1, y1, rx1, ry1, x2, y2, rx2, ry2)
	if !ok {
		return display.Calibration{}, ErrCalibration
	}
	if err := c.SetCalibration(cal); err != nil {
		return display.Calibration{}, err
	}
	return cal, nil
}

// calibrationPoint shows a target at (x, y) and returns the averaged raw
// coordinates of the touch on it.
func calibrationPoint[T display.Color](ctx context.Context, c *display.Compositor[T], x, y int, color T) (rawX, rawY int, err error) {
	outline := shapes.NewBox(x-5, y-5, 11, 11, color, false)
	center := shapes.NewBox(x-1, y-1, 3, 3, color, true)
	c.Show(outline, calibrationDepth+1)
	c.Show(center, calibrationDepth+1)
	defer c.Hide(outline)
	defer c.Hide(center)
	c.RequestRedraw()

	ticker := time.NewTicker(calibrationPoll)
	defer ticker.Stop()
	sumX, sumY, n := 0, 0, 0
	for {
		x, y, touched, err := c.ReadRawTouch()
		if err != nil {
			return 0, 0, err
		}
		if touched {
			sumX += x
			sumY += y
			n++
		} else if n > 0 {
			return sumX / n, sumY / n, nil
		}
		select {
		case <-ctx.Done():
			return 0, 0, ctx.Err()
		case <-ticker.C:
		}
	}
}
