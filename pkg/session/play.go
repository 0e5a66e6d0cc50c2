package session

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/gwillem/autocreator/pkg/robot"
	"github.com/gwillem/autocreator/pkg/routine"
)

// WaitUnit is the duration of one wait step.
const WaitUnit = 10 * time.Millisecond

// Player replays a recorded routine on a drivetrain.
type Player struct {
	Drive  robot.Drivetrain
	Logger *zap.Logger

	// Sleep defaults to time.Sleep.
	Sleep func(time.Duration)

	// Settle is waited after every motion, since motors are commanded
	// without waiting for them to finish.
	Settle time.Duration

	// OnAction, when set, is called before each action runs.
	OnAction func(i int, a routine.Action)
}

// Play runs actions in order, stopping at the first failure.
func (p *Player) Play(ctx context.Context, actions []routine.Action) error {
	sleep := p.Sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	for i, a := range actions {
		if err := ctx.Err(); err != nil {
			return err
		}
		if p.OnAction != nil {
			p.OnAction(i, a)
		}
		logger.Debug("play", zap.Int("step", i+1), zap.Stringer("action", a))

		moved, err := p.run(ctx, a, sleep)
		if err != nil {
			return fmt.Errorf("action %d (%s): %w", i+1, a, err)
		}
		if moved && p.Settle > 0 {
			sleep(p.Settle)
		}
	}
	return nil
}

func (p *Player) run(ctx context.Context, a routine.Action, sleep func(time.Duration)) (bool, error) {
	switch a.Kind {
	case routine.Move:
		distance := a.Value
		if distance < 0 {
			distance = -distance
		}
		return true, p.Drive.Drive(ctx, a.Value >= 0, distance)
	case routine.Turn:
		left := len(a.Args) > 0 && a.Args[0] == "left"
		return true, p.Drive.Turn(ctx, left, a.Value)
	case routine.Wait:
		if a.Value > 0 {
			sleep(time.Duration(a.Value) * WaitUnit)
		}
		return false, nil
	default:
		return false, fmt.Errorf("%s actions can only run from a generated program", a.Kind)
	}
}
