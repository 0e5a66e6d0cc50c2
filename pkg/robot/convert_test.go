package robot

import (
	"math"
	"testing"
)

func TestDistanceToRotations(t *testing.T) {
	tests := []struct {
		diameter, distance, ratio float64
		expected                  float64
	}{
		{100, 0, 1, 0},
		{100, 100 * math.Pi, 1, 1},     // one circumference
		{100, 100 * math.Pi * 3, 1, 3}, // three circumferences
		{100, 100 * math.Pi, 2, 0.5},   // geared down
		{50, 100 * math.Pi, 1, 2},      // smaller wheel turns more
		{100, -100 * math.Pi, 1, -1},
	}

	for _, tt := range tests {
		got := DistanceToRotations(tt.diameter, tt.distance, tt.ratio)
		if math.Abs(got-tt.expected) > 1e-9 {
			t.Errorf("DistanceToRotations(%g, %g, %g) = %f, want %f", tt.diameter, tt.distance, tt.ratio, got, tt.expected)
		}
	}
}

func TestDistanceToRotations_Monotonic(t *testing.T) {
	for _, ratio := range []float64{0.5, 1, 18} {
		prev := DistanceToRotations(101.6, 0, ratio)
		for mm := 1.0; mm <= 1000; mm += 7 {
			got := DistanceToRotations(101.6, mm, ratio)
			if got <= prev {
				t.Fatalf("ratio %g: %g mm gave %f, not above %f", ratio, mm, got, prev)
			}
			prev = got
		}
	}

	// More reduction means fewer rotations for the same distance.
	prev := math.Inf(1)
	for _, ratio := range []float64{0.25, 1, 6, 18, 36} {
		got := DistanceToRotations(101.6, 500, ratio)
		if got >= prev {
			t.Errorf("ratio %g gave %f, not below %f", ratio, got, prev)
		}
		prev = got
	}
}

func TestTurnToRotations(t *testing.T) {
	// A full turn moves each wheel around the turning circle once.
	got := TurnToRotations(100, 300, 360, 1)
	if math.Abs(got-3) > 1e-9 {
		t.Errorf("TurnToRotations full turn = %f, want 3", got)
	}
	if got := TurnToRotations(100, 300, 0, 1); got != 0 {
		t.Errorf("TurnToRotations zero = %f, want 0", got)
	}
}

func TestGeometry(t *testing.T) {
	g := Geometry{WheelCircumference: 100 * math.Pi, TrackWidth: 30, Wheelbase: 40}
	if d := g.Diameter(); math.Abs(d-100) > 1e-9 {
		t.Errorf("Diameter() = %f, want 100", d)
	}
	if c := g.Circumference(); c != 100*math.Pi {
		t.Errorf("Circumference() = %f, want configured value", c)
	}
	if r := g.Ratio(); r != 1 {
		t.Errorf("Ratio() = %f, want default 1", r)
	}
	if td := g.TurnDiameter(); math.Abs(td-50) > 1e-9 {
		t.Errorf("TurnDiameter() = %f, want 50", td)
	}

	g.WheelDiameter = 80
	if d := g.Diameter(); d != 80 {
		t.Errorf("Diameter() = %f, want explicit 80", d)
	}
	if c := (Geometry{WheelDiameter: 80}).Circumference(); math.Abs(c-80*math.Pi) > 1e-9 {
		t.Errorf("Circumference() = %f, want derived from diameter", c)
	}
}

func TestGeometry_Validate(t *testing.T) {
	zero, negative := 0.0, -1.0

	tests := []struct {
		name      string
		geometry  Geometry
		needTrack bool
		field     string
	}{
		{"ok", Geometry{WheelDiameter: 100, TrackWidth: 300}, true, ""},
		{"no wheel", Geometry{TrackWidth: 300}, true, "config.wheel_diameter"},
		{"negative wheel", Geometry{WheelDiameter: -4, TrackWidth: 300}, true, "config.wheel_diameter"},
		{"zero ratio", Geometry{WheelDiameter: 100, GearRatio: &zero}, false, "config.gear_ratio"},
		{"negative ratio", Geometry{WheelDiameter: 100, GearRatio: &negative}, false, "config.gear_ratio"},
		{"no track", Geometry{WheelDiameter: 100}, true, "config.track_width"},
		{"no track needed", Geometry{WheelDiameter: 100}, false, ""},
	}

	for _, tt := range tests {
		err := tt.geometry.Validate(tt.needTrack)
		if tt.field == "" {
			if err != nil {
				t.Errorf("%s: unexpected error %v", tt.name, err)
			}
			continue
		}
		ce, ok := err.(*ConfigError)
		if !ok {
			t.Errorf("%s: got %v, want *ConfigError", tt.name, err)
			continue
		}
		if ce.Field != tt.field {
			t.Errorf("%s: field %q, want %q", tt.name, ce.Field, tt.field)
		}
	}
}
