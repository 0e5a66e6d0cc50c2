// Package session runs the routine recording loop and plays routines back.
package session

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"go.uber.org/zap"

	"github.com/gwillem/autocreator/pkg/controller"
	"github.com/gwillem/autocreator/pkg/menu"
	"github.com/gwillem/autocreator/pkg/robot"
	"github.com/gwillem/autocreator/pkg/routine"
)

// Welcome is printed when recording starts.
const Welcome = "Welcome to the VEX EDR Autonomous Builder!\n" +
	"Press L1 to decrease/move down, and R1 to increase/move up\n" +
	"Press R2 to select value\n" +
	"Press L2 to save"

// Prompts shown on the robot screen.
const (
	ActionPrompt = "Select action: "
	ValuePrompt  = "Select value: "
)

const (
	settleAfterConfirm = 100 * time.Millisecond
	settleAfterAppend  = 50 * time.Millisecond
	settleAfterSave    = 250 * time.Millisecond

	defaultMoveStep = 10 // mm per tuner step
	defaultTurnStep = 1  // degrees per tuner step
)

// State is a snapshot of the recording session.
type State struct {
	Kind      routine.Kind
	Value     int
	Actions   []routine.Action
	Timestamp time.Time
}

// Config holds configuration for the recorder.
type Config struct {
	Drive  robot.Drivetrain
	UI     *menu.UI
	Logger *zap.Logger

	// OnSave runs when the save button is pressed while choosing an action.
	OnSave func(*routine.File) error

	MoveStep int // preview distance per step in mm, default 10
	TurnStep int // preview angle per step in degrees, default 1
}

// Recorder owns the session state: the drivetrain, the screen UI and the
// action log. It is not safe for concurrent use; observers read the States
// and Logs channels instead.
type Recorder struct {
	drive    robot.Drivetrain
	ui       *menu.UI
	logger   *zap.Logger
	onSave   func(*routine.File) error
	moveStep int
	turnStep int

	id      string
	actions *routine.Log
	stateCh chan State
	logCh   chan string
}

// NewRecorder creates a recorder with an empty action log.
func NewRecorder(cfg Config) (*Recorder, error) {
	if cfg.Drive == nil {
		return nil, fmt.Errorf("recorder needs a drivetrain")
	}
	if cfg.UI == nil {
		return nil, fmt.Errorf("recorder needs a UI")
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	if cfg.MoveStep <= 0 {
		cfg.MoveStep = defaultMoveStep
	}
	if cfg.TurnStep <= 0 {
		cfg.TurnStep = defaultTurnStep
	}

	id := uuid.NewString()
	return &Recorder{
		drive:    cfg.Drive,
		ui:       cfg.UI,
		logger:   cfg.Logger.With(zap.String("session", id)),
		onSave:   cfg.OnSave,
		moveStep: cfg.MoveStep,
		turnStep: cfg.TurnStep,
		id:       id,
		actions:  &routine.Log{},
		stateCh:  make(chan State, 1),
		logCh:    make(chan string, 32),
	}, nil
}

// ID identifies the session; saved routine files carry it.
func (r *Recorder) ID() string {
	return r.id
}

// Log returns the recorded actions. Only read it while Run is not executing.
func (r *Recorder) Log() *routine.Log {
	return r.actions
}

// States returns a channel that receives state updates.
func (r *Recorder) States() <-chan State {
	return r.stateCh
}

// Logs returns a channel that receives log messages.
func (r *Recorder) Logs() <-chan string {
	return r.logCh
}

func (r *Recorder) log(format string, args ...any) {
	text := fmt.Sprintf(format, args...)
	r.logger.Info(text)
	for _, line := range strings.Split(text, "\n") {
		msg := fmt.Sprintf("[%s] %s", time.Now().Format("15:04:05"), line)
		select {
		case r.logCh <- msg:
		default:
			// Drop if channel full
		}
	}
}

func (r *Recorder) sendState(kind routine.Kind, value int) {
	s := State{Kind: kind, Value: value, Actions: r.actions.Actions(), Timestamp: time.Now()}
	select {
	case r.stateCh <- s:
	default:
		// Drop old state if channel full, replace with new
		select {
		case <-r.stateCh:
		default:
		}
		r.stateCh <- s
	}
}

// Run records actions until ctx is done. There is no other way out of the
// loop: a recording session lasts until the program is stopped.
func (r *Recorder) Run(ctx context.Context) error {
	r.log("%s", Welcome)
	r.logger.Info("recording started", zap.String("drive", r.drive.Type()))

	for {
		if err := r.Step(ctx); err != nil {
			r.logger.Info("recording stopped", zap.Int("actions", r.actions.Len()), zap.Error(err))
			return err
		}
	}
}

// Step records one action: choose a kind, tune its value with live preview,
// then append it to the log.
func (r *Recorder) Step(ctx context.Context) error {
	kind, err := r.selectAction(ctx)
	if err != nil {
		return err
	}
	value, err := r.selectValue(ctx, kind)
	if err != nil {
		return err
	}

	r.ui.Sleep(settleAfterConfirm)

	if err := r.actions.Append(routine.New(kind, value)); err != nil {
		return fmt.Errorf("record %s: %w", kind, err)
	}
	r.log("Saved %s action", kind)
	r.sendState(kind, value)

	r.ui.Sleep(settleAfterAppend)
	return nil
}

func (r *Recorder) selectAction(ctx context.Context) (routine.Kind, error) {
	labels := lo.Map(routine.Recordable(), func(k routine.Kind, _ int) string { return k.Label() })

	label, err := r.ui.Select(ctx, ActionPrompt, labels, func(current string) {
		if r.ui.Pressing(controller.Save) {
			r.save()
		}
	})
	if err != nil {
		return "", err
	}
	return routine.ParseKind(label)
}

func (r *Recorder) selectValue(ctx context.Context, kind routine.Kind) (int, error) {
	p := menu.IntPrompt{
		Min:    routine.MinValue,
		Max:    routine.MaxValue,
		OnTick: func(v int) { r.sendState(kind, v) },
	}

	switch kind {
	case routine.Move:
		p.Increase = func(int) { r.preview(ctx, func() error { return r.drive.Drive(ctx, true, r.moveStep) }) }
		p.Decrease = func(int) { r.preview(ctx, func() error { return r.drive.Drive(ctx, false, r.moveStep) }) }
	case routine.Turn:
		p.Increase = func(int) { r.preview(ctx, func() error { return r.drive.Turn(ctx, false, r.turnStep) }) }
		p.Decrease = func(int) { r.preview(ctx, func() error { return r.drive.Turn(ctx, false, -r.turnStep) }) }
	}

	return r.ui.SelectInt(ctx, ValuePrompt, p)
}

// preview moves the robot by one tuner step. A failed move does not end the
// session.
func (r *Recorder) preview(ctx context.Context, move func() error) {
	if err := move(); err != nil && ctx.Err() == nil {
		r.logger.Warn("preview motion failed", zap.Error(err))
		r.log("Preview failed: %v", err)
	}
}

func (r *Recorder) save() {
	r.log("%s", r.actions.String())

	if r.onSave != nil {
		f := routine.NewFile(r.drive.Type(), r.actions)
		f.ID = r.id
		if err := r.onSave(f); err != nil {
			r.logger.Error("save failed", zap.Error(err))
			r.log("Save failed: %v", err)
		}
	}

	r.ui.Sleep(settleAfterSave)
}
