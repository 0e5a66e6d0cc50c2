package menu

import "fmt"

// Selector is the cursor over a fixed list of options.
type Selector struct {
	options []string
	index   int
}

// NewSelector starts at the first option.
func NewSelector(options []string) (*Selector, error) {
	if len(options) == 0 {
		return nil, fmt.Errorf("no options to select from")
	}
	return &Selector{options: append([]string(nil), options...)}, nil
}

func (s *Selector) Index() int      { return s.index }
func (s *Selector) Current() string { return s.options[s.index] }

// Next moves to the following option, wrapping to the first.
func (s *Selector) Next() string {
	s.index = mod(s.index+1, len(s.options))
	return s.Current()
}

// Prev moves to the preceding option, wrapping to the last.
func (s *Selector) Prev() string {
	s.index = mod(s.index-1, len(s.options))
	return s.Current()
}

// Tuner is a bounded integer that wraps around at both ends.
type Tuner struct {
	value    int
	min, max int
}

// NewTuner creates a tuner over [min, max] starting at start.
func NewTuner(min, max, start int) (*Tuner, error) {
	if max < min {
		return nil, fmt.Errorf("invalid range [%d, %d]", min, max)
	}
	t := &Tuner{min: min, max: max}
	t.value = t.wrap(start)
	return t, nil
}

func (t *Tuner) Value() int { return t.value }

// Inc steps up by one; max wraps to min.
func (t *Tuner) Inc() int {
	t.value = t.wrap(t.value + 1)
	return t.value
}

// Dec steps down by one; min wraps to max.
func (t *Tuner) Dec() int {
	t.value = t.wrap(t.value - 1)
	return t.value
}

func (t *Tuner) wrap(v int) int {
	return t.min + mod(v-t.min, t.max-t.min+1)
}

// mod is the non-negative remainder.
func mod(a, n int) int {
	r := a % n
	if r < 0 {
		r += n
	}
	return r
}
