// Package gridmap maps sensor-space positions (meters) onto the integer
// cells of a square occupancy grid, and back.
package gridmap

import (
	"errors"
	"fmt"
	"image"
	"math"

	"github.com/wesen/dancelight/pkg/skeleton"
)

// ErrInvalidCalibration is wrapped by Validate failures.
var ErrInvalidCalibration = errors.New("invalid calibration")

// Calibration holds the fixed constants relating sensor space to the grid.
// OffsetX and OffsetY shift the sensor origin relative to the grid center.
type Calibration struct {
	Width      int
	UnitMeters float64
	OffsetX    int
	OffsetY    int
}

// Default returns the calibration of the 64x64 traffic light.
func Default() Calibration {
	return Calibration{
		Width:      64,
		UnitMeters: 0.038,
		OffsetX:    0,
		OffsetY:    -7,
	}
}

// Validate checks that the grid is non-empty and the unit size is a
// positive finite number.
func (c Calibration) Validate() error {
	if c.Width <= 0 {
		return fmt.Errorf("%w: width %d must be positive", ErrInvalidCalibration, c.Width)
	}
	if !(c.UnitMeters > 0) || math.IsInf(c.UnitMeters, 0) {
		return fmt.Errorf("%w: unit size %v must be positive and finite", ErrInvalidCalibration, c.UnitMeters)
	}
	return nil
}

// InBounds reports whether pt addresses a cell of the grid.
func (c Calibration) InBounds(pt image.Point) bool {
	return pt.X >= 0 && pt.X < c.Width && pt.Y >= 0 && pt.Y < c.Width
}

// ToGrid converts a sensor position to a grid cell. Only X and Y are used.
// The second result is false when the cell falls outside the grid or the
// input is not finite; there is no fallback cell.
func (c Calibration) ToGrid(p skeleton.Point) (image.Point, bool) {
	gx, okX := c.axis(p.X, c.OffsetX)
	gy, okY := c.axis(p.Y, c.OffsetY)
	if !okX || !okY {
		return image.Point{}, false
	}
	pt := image.Pt(gx, gy)
	if !c.InBounds(pt) {
		return image.Point{}, false
	}
	return pt, true
}

func (c Calibration) axis(v float64, offset int) (int, bool) {
	u := math.Round(v / c.UnitMeters)
	if math.IsNaN(u) || math.IsInf(u, 0) {
		return 0, false
	}
	// Anything this far out is off the grid; avoid int overflow.
	if math.Abs(u) > float64(4*c.Width+1<<20) {
		return 0, false
	}
	return int(u) + c.Width/2 + offset, true
}

// ToSensor returns the sensor-space center of the cell pt, with Z = 0.
// For every in-bounds pt, ToGrid(ToSensor(pt)) == pt.
func (c Calibration) ToSensor(pt image.Point) skeleton.Point {
	x := float64(pt.X - c.OffsetX - c.Width/2)
	y := float64(pt.Y - c.OffsetY - c.Width/2)
	return skeleton.Point{X: x * c.UnitMeters, Y: y * c.UnitMeters}
}
