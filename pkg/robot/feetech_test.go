package robot

import (
	"bytes"
	"context"
	"testing"

	"github.com/hipsterbrown/feetech-servo/feetech"
	"go.uber.org/zap"
)

func TestStepWord(t *testing.T) {
	tests := []struct {
		steps   int
		want    uint16
		wantErr bool
	}{
		{0, 0, false},
		{100, 100, false},
		{StepsPerTurn, 4096, false},
		{-StepsPerTurn, 0x9000, false},
		{-1, 0x8001, false},
		{MaxStepMove, 0x7fff, false},
		{-MaxStepMove, 0xffff, false},
		{MaxStepMove + 1, 0, true},
		{-MaxStepMove - 1, 0, true},
	}

	for _, tt := range tests {
		got, err := stepWord(tt.steps)
		if tt.wantErr {
			if err == nil {
				t.Errorf("stepWord(%d) expected error", tt.steps)
			}
			continue
		}
		if err != nil {
			t.Errorf("stepWord(%d) unexpected error: %v", tt.steps, err)
			continue
		}
		if got != tt.want {
			t.Errorf("stepWord(%d) = %#04x, want %#04x", tt.steps, got, tt.want)
		}
	}
}

func newMockServo(t *testing.T, spec MotorSpec) (*ServoMotor, *feetech.MockTransport, *feetech.Bus) {
	t.Helper()
	mock := &feetech.MockTransport{}
	bus, err := feetech.NewBus(feetech.BusConfig{Transport: mock, Protocol: feetech.ProtocolSTS})
	if err != nil {
		t.Fatalf("NewBus: %v", err)
	}
	group := feetech.NewServoGroupByIDs(bus, int(spec.Port))
	return &ServoMotor{spec: spec, group: group, logger: zap.NewNop()}, mock, bus
}

func TestServoMotor_SpinForWritesRelativeSteps(t *testing.T) {
	tests := []struct {
		name string
		dir  Direction
		want uint16
	}{
		// A full reverse turn has no absolute target to fall off the
		// encoder range: it goes out as a signed relative move.
		{"reverse", Reverse, 1<<15 | StepsPerTurn},
		{"forward", Forward, StepsPerTurn},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m, mock, bus := newMockServo(t, MotorSpec{Port: 3, Gear: Ratio18To1})
			if err := m.SpinFor(context.Background(), tt.dir, 1, Turns); err != nil {
				t.Fatalf("SpinFor: %v", err)
			}
			word := bus.Protocol().EncodeWord(tt.want)
			if !bytes.Contains(mock.WriteData, word) {
				t.Errorf("written packet % x does not carry goal % x", mock.WriteData, word)
			}
		})
	}
}

func TestServoMotor_SpinForRejectsOversizedMove(t *testing.T) {
	m, mock, _ := newMockServo(t, MotorSpec{Port: 1, Gear: Ratio18To1})

	if err := m.SpinFor(context.Background(), Forward, 9, Turns); err == nil {
		t.Fatal("expected error for a move beyond the step limit")
	}
	if len(mock.WriteData) != 0 {
		t.Errorf("nothing should be written, got % x", mock.WriteData)
	}
}
