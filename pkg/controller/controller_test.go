package controller

import "testing"

func TestKeypad_PressConsumedOnce(t *testing.T) {
	k := NewKeypad(nil)

	if k.Pressing(Next) {
		t.Fatal("no press yet")
	}
	if !k.Key("right") {
		t.Fatal("right should map to a button")
	}
	for i := 0; i < 30; i++ {
		k.Key("l")
	}

	if !k.Pressing(Next) {
		t.Fatal("press lost")
	}
	if k.Pressing(Next) {
		t.Error("presses within one poll should register once")
	}

	k.Key("right")
	if !k.Pressing(Next) {
		t.Error("press after a poll should register again")
	}
	if k.Key("q") {
		t.Error("q should not map to a button")
	}
}

func TestKeypad_ButtonsIndependent(t *testing.T) {
	k := NewKeypad(map[string]Button{"x": Save})
	k.Key("x")

	if k.Pressing(Confirm) {
		t.Error("Confirm should not see a Save press")
	}
	if !k.Pressing(Save) {
		t.Error("Save press lost")
	}
	if k.Key("enter") {
		t.Error("custom key map should replace the defaults")
	}
}

func TestScreen_KeepsLatest(t *testing.T) {
	s := NewScreen()
	s.Print("Select action: Move")
	s.Print("Select action: Turn")

	if got := <-s.Lines(); got != "Select action: Turn" {
		t.Errorf("got %q, want latest frame", got)
	}
	select {
	case extra := <-s.Lines():
		t.Errorf("unexpected extra frame %q", extra)
	default:
	}
}

func TestButton_String(t *testing.T) {
	tests := map[Button]string{Previous: "L1", Next: "R1", Confirm: "R2", Save: "L2", Button(42): "?"}
	for b, want := range tests {
		if b.String() != want {
			t.Errorf("Button(%d).String() = %q, want %q", int(b), b.String(), want)
		}
	}
}
