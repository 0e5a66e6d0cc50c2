// Package robot provides the drivetrain abstractions for a competition robot:
// motor handles, wiring configuration and the kinematic layouts that turn a
// distance or an angle into per-motor rotations.
package robot

import (
	"context"
	"fmt"
)

// Port is a smart port number on the robot brain.
type Port int

// Valid port range.
const (
	MinPort Port = 1
	MaxPort Port = 12
)

// ParsePort validates a configured port number.
func ParsePort(n int) (Port, error) {
	p := Port(n)
	if p < MinPort || p > MaxPort {
		return 0, &ConfigError{Field: "port", Reason: fmt.Sprintf("invalid port number %d", n)}
	}
	return p, nil
}

// GearRatio identifies the gear cartridge fitted to a motor.
type GearRatio string

// Gear cartridges.
const (
	Ratio6To1  GearRatio = "6:1"
	Ratio18To1 GearRatio = "18:1"
	Ratio36To1 GearRatio = "36:1"
)

// AllGearRatios returns the supported cartridges, fastest first.
func AllGearRatios() []GearRatio {
	return []GearRatio{Ratio6To1, Ratio18To1, Ratio36To1}
}

// ParseGearRatio validates a gear ratio label such as "18:1".
func ParseGearRatio(label string) (GearRatio, error) {
	switch g := GearRatio(label); g {
	case Ratio6To1, Ratio18To1, Ratio36To1:
		return g, nil
	default:
		return "", &ConfigError{Field: "gear", Reason: fmt.Sprintf("invalid gear ratio %q", label)}
	}
}

// RPM returns the free speed of the cartridge.
func (g GearRatio) RPM() int {
	switch g {
	case Ratio6To1:
		return 600
	case Ratio36To1:
		return 100
	default:
		return 200
	}
}

// Cartridge returns the VEX SDK constant for the cartridge, e.g. "ratio18_1".
func (g GearRatio) Cartridge() string {
	switch g {
	case Ratio6To1:
		return "ratio6_1"
	case Ratio36To1:
		return "ratio36_1"
	default:
		return "ratio18_1"
	}
}

// MotorSpec is the validated wiring of one motor.
type MotorSpec struct {
	Port     Port
	Gear     GearRatio
	Reversed bool
}

// NewMotorSpec validates a motor entry from the configuration file.
func NewMotorSpec(mc MotorConfig) (MotorSpec, error) {
	port, err := ParsePort(mc.Port)
	if err != nil {
		return MotorSpec{}, err
	}
	gear, err := ParseGearRatio(mc.Gear)
	if err != nil {
		return MotorSpec{}, err
	}
	return MotorSpec{Port: port, Gear: gear, Reversed: mc.Reverse}, nil
}

func (s MotorSpec) String() string {
	r := ""
	if s.Reversed {
		r = " reversed"
	}
	return fmt.Sprintf("port %d (%s%s)", s.Port, s.Gear, r)
}

// Direction is the sense a motor spins in.
type Direction int

const (
	Forward Direction = iota
	Reverse
)

// Inverted returns the opposite direction.
func (d Direction) Inverted() Direction {
	if d == Forward {
		return Reverse
	}
	return Forward
}

func (d Direction) String() string {
	if d == Reverse {
		return "reverse"
	}
	return "forward"
}

// DirectionOf maps a forward flag to a Direction.
func DirectionOf(forward bool) Direction {
	if forward {
		return Forward
	}
	return Reverse
}

// Unit is the unit of a spin amount.
type Unit int

const (
	Degrees Unit = iota
	Turns
)

func (u Unit) String() string {
	if u == Turns {
		return "turns"
	}
	return "degrees"
}

// Motor is a handle to one physical motor.
//
// SpinFor issues a relative move and returns without waiting for the motion
// to finish. Polarity from the motor's spec is applied by the implementation.
type Motor interface {
	SpinFor(ctx context.Context, dir Direction, amount float64, unit Unit) error
}

// MotorFactory creates a motor handle for a validated spec.
type MotorFactory func(spec MotorSpec) (Motor, error)
