// Package controller models the handheld controller and the brain screen the
// builder talks to.
package controller

// Button is a logical controller button.
type Button int

const (
	Previous Button = iota // L1
	Next                   // R1
	Confirm                // R2
	Save                   // L2
	Aux
)

var buttonNames = map[Button]string{
	Previous: "L1",
	Next:     "R1",
	Confirm:  "R2",
	Save:     "L2",
	Aux:      "A",
}

func (b Button) String() string {
	if s, ok := buttonNames[b]; ok {
		return s
	}
	return "?"
}

// Input reports whether a button is currently pressed. It is polled.
type Input interface {
	Pressing(b Button) bool
}

// Display prints a line of text on the robot screen.
type Display interface {
	Print(text string)
}
