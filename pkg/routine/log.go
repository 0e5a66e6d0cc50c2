package routine

import (
	"fmt"
	"strings"

	"github.com/samber/lo"
)

const rule = "----------------"

// Log is the ordered list of recorded actions. Actions are only ever
// appended; recording order is playback order.
type Log struct {
	actions []Action
}

// NewLog creates a log holding actions, validating each.
func NewLog(actions ...Action) (*Log, error) {
	l := &Log{}
	for i, a := range actions {
		if err := l.Append(a); err != nil {
			return nil, fmt.Errorf("action %d: %w", i, err)
		}
	}
	return l, nil
}

// Append adds a validated copy of a to the end of the log.
func (l *Log) Append(a Action) error {
	if err := a.Validate(); err != nil {
		return err
	}
	a.Args = append([]string(nil), a.Args...)
	l.actions = append(l.actions, a)
	return nil
}

// Len returns the number of recorded actions.
func (l *Log) Len() int {
	return len(l.actions)
}

// Actions returns a copy of the recorded actions.
func (l *Log) Actions() []Action {
	return lo.Map(l.actions, func(a Action, _ int) Action {
		a.Args = append([]string(nil), a.Args...)
		return a
	})
}

// String renders the log the way it is dumped on save.
func (l *Log) String() string {
	var sb strings.Builder
	sb.WriteString("Saved actions: \n" + rule + "\n")
	lines := lo.Map(l.actions, func(a Action, i int) string {
		return fmt.Sprintf("%3d  %s", i+1, a)
	})
	if len(lines) == 0 {
		lines = []string{"(none)"}
	}
	sb.WriteString(strings.Join(lines, "\n"))
	sb.WriteString("\n" + rule)
	return sb.String()
}
