package controller

import "sync"

// DefaultKeys maps keyboard keys to controller buttons.
var DefaultKeys = map[string]Button{
	"left":  Previous,
	"h":     Previous,
	"right": Next,
	"l":     Next,
	"enter": Confirm,
	" ":     Confirm,
	"s":     Save,
	"a":     Aux,
}

// Keypad turns discrete key presses into polled button state. A button is
// latched as pressed until one Pressing call observes it, so a key tapped
// between two polls is still seen, and any number of events inside one poll
// window (keyboard auto-repeat on a held key) register as a single press.
type Keypad struct {
	keys map[string]Button

	mu      sync.Mutex
	pending map[Button]bool
}

// NewKeypad creates a keypad using keys, or DefaultKeys when nil.
func NewKeypad(keys map[string]Button) *Keypad {
	if keys == nil {
		keys = DefaultKeys
	}
	return &Keypad{keys: keys, pending: make(map[Button]bool)}
}

// Key records a key press by name and reports whether it maps to a button.
func (k *Keypad) Key(name string) bool {
	b, ok := k.keys[name]
	if ok {
		k.Press(b)
	}
	return ok
}

// Press latches b as pressed.
func (k *Keypad) Press(b Button) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.pending[b] = true
}

// Pressing reports whether b was pressed since the last poll and clears it.
func (k *Keypad) Pressing(b Button) bool {
	k.mu.Lock()
	defer k.mu.Unlock()
	pressed := k.pending[b]
	k.pending[b] = false
	return pressed
}
