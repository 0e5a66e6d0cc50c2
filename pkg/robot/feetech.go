package robot

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.uber.org/zap"
)

const (
	// StepsPerTurn is the encoder resolution of an STS servo.
	StepsPerTurn = 4096

	defaultBaudRate = 1_000_000
)

// ServoBus drives the wheel motors as Feetech STS servos on one serial bus.
// The servo id is the configured port number.
type ServoBus struct {
	bus    *feetech.Bus
	logger *zap.Logger
}

// OpenServoBus opens the serial bus described by cfg.
func OpenServoBus(cfg BusConfig, logger *zap.Logger) (*ServoBus, error) {
	if cfg.Port == "" {
		return nil, &ConfigError{Field: "bus.port", Reason: "no serial port configured"}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	baud := cfg.BaudRate
	if baud == 0 {
		baud = defaultBaudRate
	}

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     cfg.Port,
		BaudRate: baud,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, fmt.Errorf("open bus: %w", err)
	}
	return &ServoBus{bus: bus, logger: logger}, nil
}

// Close closes the bus connection.
func (b *ServoBus) Close() error {
	return b.bus.Close()
}

// Motor switches the servo for spec into step mode, enables torque and
// returns its handle. It satisfies MotorFactory.
func (b *ServoBus) Motor(spec MotorSpec) (Motor, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	id := int(spec.Port)
	group := feetech.NewServoGroupByIDs(b.bus, id)
	servo := group.ServoByID(id)

	// The mode register is only writable with torque off.
	if err := servo.Disable(ctx); err != nil {
		return nil, fmt.Errorf("disable servo %d: %w", id, err)
	}
	if err := servo.SetOperatingMode(ctx, feetech.ModeStep); err != nil {
		return nil, fmt.Errorf("set step mode on servo %d: %w", id, err)
	}
	if err := group.EnableAll(ctx); err != nil {
		return nil, fmt.Errorf("enable servo %d: %w", id, err)
	}
	b.logger.Info("servo ready", zap.Int("id", id), zap.String("gear", string(spec.Gear)), zap.Bool("reversed", spec.Reversed))
	return &ServoMotor{spec: spec, group: group, logger: b.logger}, nil
}

// ServoMotor is a wheel servo in step mode: every goal written is a move
// relative to wherever the servo is, so wheels can turn without limit.
type ServoMotor struct {
	spec   MotorSpec
	group  *feetech.ServoGroup
	logger *zap.Logger
}

// SpinFor moves the servo relative to its present position.
func (m *ServoMotor) SpinFor(ctx context.Context, dir Direction, amount float64, unit Unit) error {
	id := int(m.spec.Port)

	steps := servoSteps(dir, amount, unit, m.spec.Reversed)
	word, err := stepWord(steps)
	if err != nil {
		return fmt.Errorf("servo %d: %w", id, err)
	}
	if err := m.group.SetPositions(ctx, feetech.PositionMap{id: int(word)}); err != nil {
		return fmt.Errorf("write steps: %w", err)
	}
	m.logger.Debug("spin", zap.Int("id", id), zap.Stringer("dir", dir), zap.Float64("amount", amount),
		zap.Stringer("unit", unit), zap.Int("steps", steps))
	return nil
}

// Close turns torque off so the wheel can spin freely.
func (m *ServoMotor) Close() error {
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return m.group.DisableAll(ctx)
}

// MaxStepMove is the largest relative move one goal write can carry.
const MaxStepMove = 1<<15 - 1

// stepWord encodes a relative move as the goal register expects it in step
// mode: magnitude in the low 15 bits, bit 15 set for negative moves.
func stepWord(steps int) (uint16, error) {
	if steps > MaxStepMove || steps < -MaxStepMove {
		return 0, fmt.Errorf("move of %d steps exceeds the %d step limit", steps, MaxStepMove)
	}
	if steps < 0 {
		return uint16(-steps) | 1<<15, nil
	}
	return uint16(steps), nil
}

// servoSteps converts a relative move into signed encoder steps.
func servoSteps(dir Direction, amount float64, unit Unit, reversed bool) int {
	turns := amount
	if unit == Degrees {
		turns = amount / 360
	}
	steps := int(math.Round(turns * StepsPerTurn))
	if (dir == Reverse) != reversed {
		steps = -steps
	}
	return steps
}
