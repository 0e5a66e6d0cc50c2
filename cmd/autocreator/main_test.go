package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/gwillem/autocreator/pkg/controller"
	"github.com/gwillem/autocreator/pkg/robot"
	"github.com/gwillem/autocreator/pkg/routine"
)

func TestValidators(t *testing.T) {
	tests := []struct {
		name  string
		fn    func(string) error
		input string
		ok    bool
	}{
		{"port", validatePort, "3", true},
		{"port padded", validatePort, " 12 ", true},
		{"port zero", validatePort, "0", false},
		{"port too high", validatePort, "13", false},
		{"port text", validatePort, "abc", false},
		{"positive", validatePositive, "101.6", true},
		{"positive zero", validatePositive, "0", false},
		{"positive empty", validatePositive, "", false},
		{"optional empty", validateOptional, "  ", true},
		{"optional negative", validateOptional, "-1", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.fn(tt.input)
			if tt.ok && err != nil {
				t.Errorf("%q: unexpected error %v", tt.input, err)
			}
			if !tt.ok && err == nil {
				t.Errorf("%q: expected error", tt.input)
			}
		})
	}
}

func TestMotorAnswers_Config(t *testing.T) {
	a := newMotorAnswers("Left", 4, true)
	a.gear = string(robot.Ratio36To1)

	mc := a.config()
	if mc.Port != 4 || mc.Gear != "36:1" || !mc.Reverse {
		t.Errorf("config() = %+v", *mc)
	}
}

func TestDriveMotors(t *testing.T) {
	x := robot.DriveConfig{
		Type:  robot.DriveTypeX,
		Front: &robot.MotorPair{Left: &robot.MotorConfig{Port: 1}, Right: &robot.MotorConfig{Port: 2}},
		Back:  &robot.MotorPair{Left: &robot.MotorConfig{Port: 3}, Right: &robot.MotorConfig{Port: 4}},
	}
	if got := len(driveMotors(x)); got != 4 {
		t.Errorf("x-drive motors = %d, want 4", got)
	}

	regular := robot.DriveConfig{
		Type:  robot.DriveTypeRegular,
		Left:  &robot.MotorConfig{Port: 1},
		Right: &robot.MotorConfig{Port: 2},
	}
	if got := len(driveMotors(regular)); got != 2 {
		t.Errorf("regular motors = %d, want 2", got)
	}
}

func TestRecordModel_KeysPressButtons(t *testing.T) {
	keypad := controller.NewKeypad(controller.DefaultKeys)
	m := initialRecordModel(nil, keypad, controller.NewScreen(), "routine.json")

	keys := []tea.KeyMsg{
		{Type: tea.KeyRight},
		{Type: tea.KeyEnter},
		{Type: tea.KeyRunes, Runes: []rune("s")},
	}
	var model tea.Model = m
	for _, k := range keys {
		model, _ = model.Update(k)
	}

	for _, b := range []controller.Button{controller.Next, controller.Confirm, controller.Save} {
		if !keypad.Pressing(b) {
			t.Errorf("%s should be pressed", b)
		}
	}
	if keypad.Pressing(controller.Previous) {
		t.Error("L1 should not be pressed")
	}

	_, cmd := model.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("q")})
	if cmd == nil {
		t.Fatal("q should quit")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q should return tea.Quit")
	}
}

func TestRenderActions_ShowsRecent(t *testing.T) {
	var actions []routine.Action
	for i := 1; i <= tableRows+2; i++ {
		actions = append(actions, routine.New(routine.Move, i*10))
	}

	out := renderActions(actions)
	if strings.Contains(out, "20") {
		t.Error("oldest actions should scroll out of the table")
	}
	if !strings.Contains(out, "100") {
		t.Errorf("latest action missing:\n%s", out)
	}
}

// useConfig points the global options at a fresh simulated robot config.
func useConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	cfg := &robot.Config{
		Drive: robot.DriveConfig{
			Type:     robot.DriveTypeRegular,
			Geometry: robot.Geometry{WheelDiameter: 101.6, TrackWidth: 295},
			Left:     &robot.MotorConfig{Port: 1, Gear: "18:1"},
			Right:    &robot.MotorConfig{Port: 2, Gear: "18:1", Reverse: true},
		},
		OutputDir: filepath.Join(dir, "build"),
	}
	path := filepath.Join(dir, "autocreator.json")
	if err := cfg.SaveTo(path); err != nil {
		t.Fatal(err)
	}

	saved := opts
	t.Cleanup(func() { opts = saved })
	opts.Config = path
	return dir
}

func writeRoutine(t *testing.T, dir string, actions ...routine.Action) string {
	t.Helper()
	path := filepath.Join(dir, "routine.json")
	f := &routine.File{Drive: robot.DriveTypeRegular, Code: actions}
	if err := routine.Save(path, f); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestPlayCommand_ReturnsErrors(t *testing.T) {
	dir := useConfig(t)

	missing := &PlayCommand{Sim: true}
	missing.Args.Routine = filepath.Join(dir, "nope.json")
	if err := missing.Execute(nil); err == nil || !strings.Contains(err.Error(), "load routine") {
		t.Errorf("missing routine: got %v", err)
	}

	failing := &PlayCommand{Sim: true}
	failing.Args.Routine = writeRoutine(t, dir,
		routine.New(routine.Move, 10),
		routine.Action{Kind: routine.RunMotor, Value: 1, Args: []string{"arm"}},
	)
	if err := failing.Execute(nil); err == nil || !strings.Contains(err.Error(), "playback stopped") {
		t.Errorf("failing playback: got %v", err)
	}
}

func TestBuildCommand(t *testing.T) {
	dir := useConfig(t)

	cmd := &BuildCommand{}
	cmd.Args.Routine = writeRoutine(t, dir, routine.New(routine.Move, 50))
	if err := cmd.Execute(nil); err != nil {
		t.Fatalf("Execute: %v", err)
	}
	data, err := os.ReadFile(filepath.Join(dir, "build", "autonomous-creator-output.cpp"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "Drivetrain.driveFor(forward, 50, mm);") {
		t.Errorf("program missing drive line:\n%s", data)
	}

	bad := &BuildCommand{}
	bad.Args.Routine = writeRoutine(t, dir, routine.Action{Kind: routine.RunMotor, Value: 1, Args: []string{"arm"}})
	if err := bad.Execute(nil); err == nil || !strings.Contains(err.Error(), "generate program") {
		t.Errorf("unknown motor: got %v", err)
	}
}
