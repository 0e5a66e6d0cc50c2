// Package routine holds the recorded steps of an autonomous routine.
package routine

import (
	"fmt"
	"strings"
)

// Kind is the type of a recorded step.
type Kind string

const (
	Move     Kind = "move"
	Turn     Kind = "turn"
	Wait     Kind = "wait"
	RunMotor Kind = "run_motor"
)

// Bounds of an action value.
const (
	MinValue = -1000
	MaxValue = 1000
)

// TurnDirection is the argument recorded with every Turn; the sign of the
// value decides the actual sense.
const TurnDirection = "right"

// Recordable returns the kinds offered while recording, in menu order.
func Recordable() []Kind {
	return []Kind{Move, Turn, Wait}
}

// Label is the menu label of the kind, e.g. "Move".
func (k Kind) Label() string {
	if k == RunMotor {
		return "Run motor"
	}
	s := string(k)
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

// ParseKind accepts a kind or its menu label.
func ParseKind(s string) (Kind, error) {
	switch k := Kind(strings.ToLower(strings.TrimSpace(s))); k {
	case Move, Turn, Wait, RunMotor:
		return k, nil
	case "run motor":
		return RunMotor, nil
	default:
		return "", fmt.Errorf("invalid action %q", s)
	}
}

// Action is one recorded step.
type Action struct {
	Kind  Kind     `json:"action" yaml:"action"`
	Value int      `json:"value" yaml:"value"`
	Args  []string `json:"args,omitempty" yaml:"args,omitempty"`
}

// New creates an action, attaching the default arguments of its kind.
func New(kind Kind, value int) Action {
	a := Action{Kind: kind, Value: value}
	if kind == Turn {
		a.Args = []string{TurnDirection}
	}
	return a
}

// Validate checks the kind and the value range.
func (a Action) Validate() error {
	if _, err := ParseKind(string(a.Kind)); err != nil {
		return err
	}
	if a.Value < MinValue || a.Value > MaxValue {
		return fmt.Errorf("%s value %d outside [%d, %d]", a.Kind, a.Value, MinValue, MaxValue)
	}
	return nil
}

func (a Action) String() string {
	if len(a.Args) == 0 {
		return fmt.Sprintf("%s %d", a.Kind, a.Value)
	}
	return fmt.Sprintf("%s %d (%s)", a.Kind, a.Value, strings.Join(a.Args, ", "))
}
