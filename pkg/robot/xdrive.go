package robot

import "context"

// XDrive is a four-motor drivetrain with the wheels mounted at the corners.
// Only straight driving and in-place turns are used; the motors are never
// mixed for strafing.
type XDrive struct {
	frontLeft  Motor
	frontRight Motor
	rearLeft   Motor
	rearRight  Motor
	geometry   Geometry
}

// NewXDrive creates an x-drive drivetrain from cfg.Front and cfg.Back.
func NewXDrive(cfg DriveConfig, newMotor MotorFactory) (*XDrive, error) {
	front, back := cfg.Front, cfg.Back
	if front == nil {
		front = &MotorPair{}
	}
	if back == nil {
		back = &MotorPair{}
	}

	fields := []string{"drive.front.left", "drive.front.right", "drive.back.left", "drive.back.right"}
	entries := []*MotorConfig{front.Left, front.Right, back.Left, back.Right}
	specs := make([]MotorSpec, len(entries))
	for i, mc := range entries {
		spec, err := motorSpec(mc, fields[i])
		if err != nil {
			return nil, err
		}
		specs[i] = spec
	}
	if err := cfg.Geometry.Validate(false); err != nil {
		return nil, withField(err, "drive")
	}

	motors, err := createMotors(newMotor, specs, fields)
	if err != nil {
		return nil, err
	}
	return &XDrive{
		frontLeft:  motors[0],
		frontRight: motors[1],
		rearLeft:   motors[2],
		rearRight:  motors[3],
		geometry:   cfg.Geometry,
	}, nil
}

func (x *XDrive) Type() string { return DriveTypeX }

// Drive spins all four wheels the same number of turns.
func (x *XDrive) Drive(ctx context.Context, forward bool, distanceMM int) error {
	turns := DistanceToRotations(x.geometry.Diameter(), float64(distanceMM), x.geometry.Ratio())
	dir := DirectionOf(forward)
	return spin(ctx, Turns, turns,
		command{x.frontLeft, dir},
		command{x.frontRight, dir},
		command{x.rearLeft, dir},
		command{x.rearRight, dir},
	)
}

// Turn spins the left and right pairs in opposite directions by |degrees|
// motor degrees.
func (x *XDrive) Turn(ctx context.Context, left bool, degrees int) error {
	left, magnitude := turnSense(left, degrees)

	leftDir, rightDir := Forward, Reverse
	if left {
		leftDir, rightDir = Reverse, Forward
	}
	return spin(ctx, Degrees, magnitude,
		command{x.frontLeft, leftDir},
		command{x.rearLeft, leftDir},
		command{x.frontRight, rightDir},
		command{x.rearRight, rightDir},
	)
}
