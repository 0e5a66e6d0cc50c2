package robot

import (
	"fmt"
	"math"
)

// DistanceToRotations converts a straight-line distance into wheel rotations
// for a wheel of the given diameter behind an external gear ratio.
func DistanceToRotations(wheelDiameter, distanceMM, gearRatio float64) float64 {
	return distanceMM / (wheelDiameter * math.Pi * gearRatio)
}

// TurnToRotations converts an in-place rotation of the robot into rotations
// of each wheel. turnDiameter is the diameter of the circle the wheels
// travel on while the robot spins about its centre.
func TurnToRotations(wheelDiameter, turnDiameter, degrees, gearRatio float64) float64 {
	arc := math.Pi * turnDiameter * degrees / 360
	return DistanceToRotations(wheelDiameter, arc, gearRatio)
}

// Diameter returns the wheel diameter, derived from the circumference when
// only that is configured.
func (g Geometry) Diameter() float64 {
	switch {
	case g.WheelDiameter != 0:
		return g.WheelDiameter
	case g.WheelSize != 0:
		return g.WheelSize
	default:
		return g.WheelCircumference / math.Pi
	}
}

// Circumference returns the wheel circumference, as configured when given.
func (g Geometry) Circumference() float64 {
	if g.WheelCircumference != 0 {
		return g.WheelCircumference
	}
	return g.Diameter() * math.Pi
}

// Ratio returns the external gear ratio, 1 when not configured.
func (g Geometry) Ratio() float64 {
	if g.GearRatio == nil {
		return 1
	}
	return *g.GearRatio
}

// TurnDiameter returns the diameter of the circle the wheels follow during an
// in-place turn. With a wheelbase the contact points sit on the corners of
// the track/wheelbase rectangle.
func (g Geometry) TurnDiameter() float64 {
	if g.Wheelbase <= 0 {
		return g.TrackWidth
	}
	return math.Hypot(g.TrackWidth, g.Wheelbase)
}

// Validate checks the constants the converters divide by.
func (g Geometry) Validate(needTrack bool) error {
	if d := g.Diameter(); !(d > 0) {
		return &ConfigError{Field: "config.wheel_diameter", Reason: fmt.Sprintf("wheel diameter must be positive, got %g", d)}
	}
	if r := g.Ratio(); !(r > 0) {
		return &ConfigError{Field: "config.gear_ratio", Reason: fmt.Sprintf("gear ratio must be positive, got %g", r)}
	}
	if needTrack && !(g.TrackWidth > 0) {
		return &ConfigError{Field: "config.track_width", Reason: fmt.Sprintf("track width must be positive, got %g", g.TrackWidth)}
	}
	return nil
}
