package robot

import (
	"context"

	"go.uber.org/zap"
)

// SimCommand is one spin recorded by a SimMotor. Dir is the logical
// direction before polarity is applied.
type SimCommand struct {
	Port     Port
	Reversed bool
	Dir      Direction
	Amount   float64
	Unit     Unit
}

// SimBus creates motors that only record and log their commands. It is used
// to rehearse routines without hardware.
type SimBus struct {
	logger   *zap.Logger
	created  []MotorSpec
	commands []SimCommand
}

// NewSimBus creates an empty simulated bus.
func NewSimBus(logger *zap.Logger) *SimBus {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SimBus{logger: logger}
}

// Motor satisfies MotorFactory.
func (b *SimBus) Motor(spec MotorSpec) (Motor, error) {
	b.created = append(b.created, spec)
	return &SimMotor{spec: spec, bus: b}, nil
}

// Created returns the specs of all motors created so far.
func (b *SimBus) Created() []MotorSpec {
	return append([]MotorSpec(nil), b.created...)
}

// Commands returns the recorded commands in issue order.
func (b *SimBus) Commands() []SimCommand {
	return append([]SimCommand(nil), b.commands...)
}

// Reset forgets recorded commands.
func (b *SimBus) Reset() {
	b.commands = nil
}

// SimMotor is a motor on a SimBus.
type SimMotor struct {
	spec MotorSpec
	bus  *SimBus
}

func (m *SimMotor) SpinFor(ctx context.Context, dir Direction, amount float64, unit Unit) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	m.bus.commands = append(m.bus.commands, SimCommand{
		Port:     m.spec.Port,
		Reversed: m.spec.Reversed,
		Dir:      dir,
		Amount:   amount,
		Unit:     unit,
	})
	m.bus.logger.Debug("sim spin", zap.Int("port", int(m.spec.Port)), zap.Stringer("dir", dir),
		zap.Float64("amount", amount), zap.Stringer("unit", unit))
	return nil
}
