package robot

import "context"

// Differential is a two-sided drivetrain steered by driving the sides in
// opposite directions.
type Differential struct {
	left     Motor
	right    Motor
	geometry Geometry
}

// NewDifferential creates a regular-drive drivetrain from cfg.Left and cfg.Right.
func NewDifferential(cfg DriveConfig, newMotor MotorFactory) (*Differential, error) {
	left, err := motorSpec(cfg.Left, "drive.left")
	if err != nil {
		return nil, err
	}
	right, err := motorSpec(cfg.Right, "drive.right")
	if err != nil {
		return nil, err
	}
	if err := cfg.Geometry.Validate(true); err != nil {
		return nil, withField(err, "drive")
	}

	motors, err := createMotors(newMotor, []MotorSpec{left, right}, []string{"left", "right"})
	if err != nil {
		return nil, err
	}
	return &Differential{left: motors[0], right: motors[1], geometry: cfg.Geometry}, nil
}

func (d *Differential) Type() string { return DriveTypeRegular }

// Drive moves both sides the same number of wheel turns.
func (d *Differential) Drive(ctx context.Context, forward bool, distanceMM int) error {
	turns := DistanceToRotations(d.geometry.Diameter(), float64(distanceMM), d.geometry.Ratio())
	dir := DirectionOf(forward)
	return spin(ctx, Turns, turns, command{d.left, dir}, command{d.right, dir})
}

// Turn rotates the robot about its centre.
func (d *Differential) Turn(ctx context.Context, left bool, degrees int) error {
	left, magnitude := turnSense(left, degrees)
	turns := TurnToRotations(d.geometry.Diameter(), d.geometry.TurnDiameter(), magnitude, d.geometry.Ratio())

	// Turning left drives the left side backwards.
	leftDir, rightDir := Forward, Reverse
	if left {
		leftDir, rightDir = Reverse, Forward
	}
	return spin(ctx, Turns, turns, command{d.left, leftDir}, command{d.right, rightDir})
}
