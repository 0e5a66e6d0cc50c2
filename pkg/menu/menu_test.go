package menu

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/gwillem/autocreator/pkg/controller"
	"github.com/gwillem/autocreator/pkg/controller/controllertest"
)

func TestSelector_Wrap(t *testing.T) {
	s, err := NewSelector([]string{"Move", "Turn", "Wait"})
	if err != nil {
		t.Fatal(err)
	}

	if s.Index() != 0 {
		t.Fatalf("start index %d, want 0", s.Index())
	}
	if s.Next(); s.Index() != 1 {
		t.Errorf("next from 0 -> %d, want 1", s.Index())
	}
	s.Next()
	if s.Next(); s.Index() != 0 {
		t.Errorf("next from 2 -> %d, want 0", s.Index())
	}
	if got := s.Prev(); s.Index() != 2 || got != "Wait" {
		t.Errorf("prev from 0 -> %d (%s), want 2 (Wait)", s.Index(), got)
	}

	if _, err := NewSelector(nil); err == nil {
		t.Error("NewSelector(nil) should fail")
	}
}

func TestTuner_Wrap(t *testing.T) {
	tn, err := NewTuner(-1000, 1000, 0)
	if err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 1000; i++ {
		tn.Dec()
	}
	if tn.Value() != -1000 {
		t.Fatalf("after 1000 decrements value = %d, want -1000", tn.Value())
	}
	if v := tn.Dec(); v != 1000 {
		t.Errorf("decrement below min = %d, want 1000", v)
	}
	if v := tn.Inc(); v != -1000 {
		t.Errorf("increment above max = %d, want -1000", v)
	}
	if v := tn.Inc(); v != -999 {
		t.Errorf("increment = %d, want -999", v)
	}
}

func TestTuner_Range(t *testing.T) {
	tests := []struct {
		min, max, start int
		expected        int
	}{
		{0, 9, 3, 3},
		{0, 9, 12, 2},  // wrapped into range
		{-5, 5, -7, 4}, // wrapped from below
		{10, 10, 10, 10},
	}
	for _, tt := range tests {
		tn, err := NewTuner(tt.min, tt.max, tt.start)
		if err != nil {
			t.Fatal(err)
		}
		if tn.Value() != tt.expected {
			t.Errorf("NewTuner(%d, %d, %d).Value() = %d, want %d", tt.min, tt.max, tt.start, tn.Value(), tt.expected)
		}
	}

	if _, err := NewTuner(5, 4, 0); err == nil {
		t.Error("NewTuner with max < min should fail")
	}
}

func newUI(in controller.Input) (*UI, *controllertest.Display, *controllertest.Clock) {
	display := &controllertest.Display{}
	clock := &controllertest.Clock{}
	return New(in, display, WithSleep(clock.Sleep)), display, clock
}

func TestSelect(t *testing.T) {
	script := controllertest.NewScript(controller.Next, controller.Next, controller.Next, controller.Previous, controller.Confirm)
	ui, display, clock := newUI(script)

	var ticks []string
	got, err := ui.Select(context.Background(), "Select action: ", []string{"Move", "Turn", "Wait"}, func(s string) {
		ticks = append(ticks, s)
	})
	if err != nil {
		t.Fatal(err)
	}
	// Move -> Turn -> Wait -> Move -> Wait
	if got != "Wait" {
		t.Errorf("Select returned %q, want Wait", got)
	}
	if diff := cmp.Diff([]string{"Turn", "Wait", "Move", "Wait"}, ticks); diff != "" {
		t.Errorf("tick callbacks (-want +got):\n%s", diff)
	}
	// Each poll renders before reading the buttons.
	wantLines := []string{"Select action: Move", "Select action: Turn", "Select action: Wait", "Select action: Move"}
	if diff := cmp.Diff(wantLines, display.Lines); diff != "" {
		t.Errorf("display lines (-want +got):\n%s", diff)
	}
	for _, d := range clock.Slept {
		if d != DefaultInterval {
			t.Errorf("slept %s, want %s", d, DefaultInterval)
		}
	}
	// Previous and Confirm were consumed in the same poll.
	if len(clock.Slept) != 3 {
		t.Errorf("polled %d times before confirm, want 3 sleeps", len(clock.Slept))
	}
}

func TestSelect_StopsOnContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	script := controllertest.NewScript(controller.Next)
	script.OnEmpty = cancel
	ui, _, _ := newUI(script)

	_, err := ui.Select(ctx, "> ", []string{"a", "b"}, nil)
	if !errors.Is(err, context.Canceled) {
		t.Errorf("got %v, want context.Canceled", err)
	}
}

func TestSelectInt_Callbacks(t *testing.T) {
	presses := append(controllertest.Repeat(controller.Next, 5), controllertest.Repeat(controller.Previous, 2)...)
	script := controllertest.NewScript(presses...).Then(controller.Confirm)
	ui, display, _ := newUI(script)

	var inc, dec, ticks []int
	got, err := ui.SelectInt(context.Background(), "Select value: ", IntPrompt{
		Min:      -1000,
		Max:      1000,
		Increase: func(v int) { inc = append(inc, v) },
		Decrease: func(v int) { dec = append(dec, v) },
		OnTick:   func(v int) { ticks = append(ticks, v) },
	})
	if err != nil {
		t.Fatal(err)
	}
	if got != 3 {
		t.Errorf("SelectInt = %d, want 3", got)
	}
	if diff := cmp.Diff([]int{1, 2, 3, 4, 5}, inc); diff != "" {
		t.Errorf("increase values (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{4, 3}, dec); diff != "" {
		t.Errorf("decrease values (-want +got):\n%s", diff)
	}
	if len(ticks) != 7 {
		t.Errorf("%d ticks, want 7", len(ticks))
	}
	if display.Lines[0] != "Select value: 0" {
		t.Errorf("first line %q", display.Lines[0])
	}
}

func TestSelectInt_WrapsThroughUI(t *testing.T) {
	script := controllertest.NewScript(controllertest.Repeat(controller.Previous, 1001)...).Then(controller.Confirm)
	ui, _, _ := newUI(script)

	got, err := ui.SelectInt(context.Background(), "", IntPrompt{Min: -1000, Max: 1000})
	if err != nil {
		t.Fatal(err)
	}
	if got != 1000 {
		t.Errorf("1001 decrements from 0 = %d, want 1000", got)
	}
}

func TestNew_Options(t *testing.T) {
	ui := New(controllertest.NewScript(), &controllertest.Display{}, WithInterval(10*time.Millisecond))
	if ui.interval != 10*time.Millisecond {
		t.Errorf("interval = %s", ui.interval)
	}
}
