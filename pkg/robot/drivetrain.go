package robot

import (
	"context"
	"errors"
	"fmt"
	"io"
)

// Drivetrain moves the robot in straight lines and turns it in place.
//
// Turn combines the left flag with the sign of degrees: a negative value
// turns the opposite way to the one the flag names, by |degrees|.
type Drivetrain interface {
	Drive(ctx context.Context, forward bool, distanceMM int) error
	Turn(ctx context.Context, left bool, degrees int) error
	Type() string
}

// NewDrivetrain builds the drivetrain layout named by cfg.Type. All motor
// entries and geometry are validated before newMotor is called.
func NewDrivetrain(cfg DriveConfig, newMotor MotorFactory) (Drivetrain, error) {
	switch cfg.Type {
	case DriveTypeRegular:
		d, err := NewDifferential(cfg, newMotor)
		if err != nil {
			return nil, err
		}
		return d, nil
	case DriveTypeX:
		x, err := NewXDrive(cfg, newMotor)
		if err != nil {
			return nil, err
		}
		return x, nil
	default:
		return nil, &ConfigError{Field: "drive.type", Reason: fmt.Sprintf("invalid drive type %q", cfg.Type)}
	}
}

func motorSpec(mc *MotorConfig, field string) (MotorSpec, error) {
	if mc == nil {
		return MotorSpec{}, &ConfigError{Field: field, Reason: "motor not configured"}
	}
	spec, err := NewMotorSpec(*mc)
	if err != nil {
		return MotorSpec{}, withField(err, field)
	}
	return spec, nil
}

func createMotors(newMotor MotorFactory, specs []MotorSpec, fields []string) ([]Motor, error) {
	motors := make([]Motor, len(specs))
	for i, spec := range specs {
		m, err := newMotor(spec)
		if err != nil {
			releaseMotors(motors[:i])
			return nil, fmt.Errorf("create %s motor on %s: %w", fields[i], spec, err)
		}
		motors[i] = m
	}
	return motors, nil
}

// releaseMotors closes the motors that hold resources, such as servos with
// torque enabled.
func releaseMotors(motors []Motor) {
	for _, m := range motors {
		if c, ok := m.(io.Closer); ok {
			c.Close()
		}
	}
}

// turnSense resolves the effective turn direction and magnitude.
func turnSense(left bool, degrees int) (bool, float64) {
	if degrees < 0 {
		return !left, float64(-degrees)
	}
	return left, float64(degrees)
}

type command struct {
	motor Motor
	dir   Direction
}

// spin sends the same amount to every motor. A negative amount inverts each
// direction. Every motor gets its command even if an earlier one failed.
func spin(ctx context.Context, unit Unit, amount float64, cmds ...command) error {
	var errs []error
	for _, c := range cmds {
		dir := c.dir
		if amount < 0 {
			dir = dir.Inverted()
		}
		abs := amount
		if abs < 0 {
			abs = -abs
		}
		if err := c.motor.SpinFor(ctx, dir, abs, unit); err != nil {
			errs = append(errs, err)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("spin motors: %w", err)
	}
	return nil
}
