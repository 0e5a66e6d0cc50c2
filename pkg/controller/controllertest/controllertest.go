// Package controllertest provides scripted controller devices for tests.
package controllertest

import (
	"time"

	"github.com/gwillem/autocreator/pkg/controller"
)

// Script is an Input that replays a fixed sequence of button presses. A
// press is reported to the first Pressing call for that button once every
// earlier press has been consumed.
type Script struct {
	presses []controller.Button

	// OnEmpty runs the first time the script is polled after its last press.
	OnEmpty func()
	emptied bool
}

// NewScript creates a script of presses.
func NewScript(presses ...controller.Button) *Script {
	return &Script{presses: presses}
}

// Repeat returns n presses of b.
func Repeat(b controller.Button, n int) []controller.Button {
	out := make([]controller.Button, n)
	for i := range out {
		out[i] = b
	}
	return out
}

// Then appends presses to the script.
func (s *Script) Then(presses ...controller.Button) *Script {
	s.presses = append(s.presses, presses...)
	return s
}

// Remaining returns how many presses are still queued.
func (s *Script) Remaining() int {
	return len(s.presses)
}

func (s *Script) Pressing(b controller.Button) bool {
	if len(s.presses) == 0 {
		if !s.emptied && s.OnEmpty != nil {
			s.emptied = true
			s.OnEmpty()
		}
		return false
	}
	if s.presses[0] != b {
		return false
	}
	s.presses = s.presses[1:]
	return true
}

// Display records every printed line.
type Display struct {
	Lines []string
}

func (d *Display) Print(text string) {
	d.Lines = append(d.Lines, text)
}

// Last returns the most recent line.
func (d *Display) Last() string {
	if len(d.Lines) == 0 {
		return ""
	}
	return d.Lines[len(d.Lines)-1]
}

// Clock is a sleep function that only records what it was asked to wait.
type Clock struct {
	Slept []time.Duration
}

func (c *Clock) Sleep(d time.Duration) {
	c.Slept = append(c.Slept, d)
}

// Total returns the sum of all recorded sleeps.
func (c *Clock) Total() time.Duration {
	var total time.Duration
	for _, d := range c.Slept {
		total += d
	}
	return total
}
