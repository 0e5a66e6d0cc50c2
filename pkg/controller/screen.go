package controller

// Screen is a Display whose latest text is published on a channel. Readers
// that fall behind only see the most recent frame.
type Screen struct {
	ch chan string
}

func NewScreen() *Screen {
	return &Screen{ch: make(chan string, 1)}
}

// Lines returns the channel of printed text.
func (s *Screen) Lines() <-chan string {
	return s.ch
}

func (s *Screen) Print(text string) {
	select {
	case s.ch <- text:
	default:
		// Drop the stale frame, replace with new
		select {
		case <-s.ch:
		default:
		}
		s.ch <- text
	}
}
