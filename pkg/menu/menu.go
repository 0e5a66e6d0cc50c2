// Package menu implements the controller-driven selection loops shown on the
// robot screen.
package menu

import (
	"context"
	"strconv"
	"time"

	"github.com/gwillem/autocreator/pkg/controller"
)

// DefaultInterval is the wait between input polls. It debounces the
// mechanical buttons and limits how often the screen is redrawn.
const DefaultInterval = 250 * time.Millisecond

// UI polls the controller and renders prompts on the screen.
type UI struct {
	input    controller.Input
	display  controller.Display
	interval time.Duration
	sleep    func(time.Duration)
}

// Option configures a UI.
type Option func(*UI)

// WithInterval overrides the poll interval.
func WithInterval(d time.Duration) Option {
	return func(u *UI) { u.interval = d }
}

// WithSleep replaces time.Sleep, e.g. to run loops without delay in tests.
func WithSleep(sleep func(time.Duration)) Option {
	return func(u *UI) { u.sleep = sleep }
}

// New creates a UI reading input and printing to display.
func New(input controller.Input, display controller.Display, opts ...Option) *UI {
	u := &UI{
		input:    input,
		display:  display,
		interval: DefaultInterval,
		sleep:    time.Sleep,
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// Display prints a message on the screen.
func (u *UI) Display(msg string) {
	u.display.Print(msg)
}

// Pressing polls a button directly, for per-tick callbacks.
func (u *UI) Pressing(b controller.Button) bool {
	return u.input.Pressing(b)
}

// Sleep blocks for d using the UI's clock.
func (u *UI) Sleep(d time.Duration) {
	u.sleep(d)
}

// Select shows prompt followed by the current option until Confirm is
// pressed, and returns the chosen option. Previous and Next move through the
// options, wrapping at both ends. onTick, when set, runs once per poll with
// the current option. The loop has no timeout; it only stops early when ctx
// is done.
func (u *UI) Select(ctx context.Context, prompt string, options []string, onTick func(string)) (string, error) {
	sel, err := NewSelector(options)
	if err != nil {
		return "", err
	}

	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}
		u.display.Print(prompt + sel.Current())

		if u.input.Pressing(controller.Previous) {
			sel.Prev()
		}
		if u.input.Pressing(controller.Next) {
			sel.Next()
		}
		if onTick != nil {
			onTick(sel.Current())
		}
		if u.input.Pressing(controller.Confirm) {
			return sel.Current(), nil
		}

		u.sleep(u.interval)
	}
}

// IntPrompt configures SelectInt. Increase and Decrease run after each step
// with the new value; OnTick runs once per poll.
type IntPrompt struct {
	Min, Max int
	Start    int
	OnTick   func(int)
	Increase func(int)
	Decrease func(int)
}

// SelectInt tunes an integer in [p.Min, p.Max] with Previous/Next, wrapping at
// both ends, and returns it when Confirm is pressed.
func (u *UI) SelectInt(ctx context.Context, prompt string, p IntPrompt) (int, error) {
	t, err := NewTuner(p.Min, p.Max, p.Start)
	if err != nil {
		return 0, err
	}

	for {
		if err := ctx.Err(); err != nil {
			return 0, err
		}
		u.display.Print(prompt + strconv.Itoa(t.Value()))

		if u.input.Pressing(controller.Previous) {
			v := t.Dec()
			if p.Decrease != nil {
				p.Decrease(v)
			}
		}
		if u.input.Pressing(controller.Next) {
			v := t.Inc()
			if p.Increase != nil {
				p.Increase(v)
			}
		}
		if p.OnTick != nil {
			p.OnTick(t.Value())
		}
		if u.input.Pressing(controller.Confirm) {
			return t.Value(), nil
		}

		u.sleep(u.interval)
	}
}
