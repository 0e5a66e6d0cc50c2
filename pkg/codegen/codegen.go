// Package codegen turns a recorded routine into a VEX C++ autonomous program.
package codegen

import (
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/template"

	"github.com/gwillem/autocreator/pkg/robot"
	"github.com/gwillem/autocreator/pkg/routine"
)

// OutputFile is the name of the generated program.
const OutputFile = "autonomous-creator-output.cpp"

const defaultPower = 100

var programTemplate = template.Must(template.New("program").Parse(`#pragma region VEX Autonomous Creator Generated Robot Configuration
#include <math.h>
#include <stdbool.h>
#include <stdio.h>
#include <stdlib.h>
#include <string.h>

#include "vex.h"

using namespace vex;

brain Brain;

#define waitUntil(condition) \
  do {                       \
    wait(5, msec);           \
  } while (!(condition))

#define repeat(iterations) \
  for (int iterator = 0; iterator < iterations; iterator++)

{{range .Declarations}}{{.}}
{{end}}#pragma endregion VEX Autonomous Creator Generated Robot Configuration

int main() {
{{range .Statements}}  {{.}}
{{end}}}
`))

type program struct {
	Declarations []string
	Statements   []string
}

// Generate writes the program for actions on the robot described by cfg.
func Generate(w io.Writer, cfg *robot.Config, actions []routine.Action) error {
	var p program

	if err := p.declareDrive(cfg.Drive); err != nil {
		return err
	}
	for _, mc := range cfg.AlwaysRunning {
		spec, err := robot.NewMotorSpec(mc)
		if err != nil {
			return fmt.Errorf("always_running: %w", err)
		}
		name := fmt.Sprintf("always_running_%d", spec.Port)
		p.Declarations = append(p.Declarations, declareMotor(name, spec))
		p.Statements = append(p.Statements, name+".setVelocity(100, percent);", name+".spin(forward);")
	}
	for _, nm := range cfg.Motors {
		spec, err := robot.NewMotorSpec(nm.MotorConfig)
		if err != nil {
			return fmt.Errorf("motor %s: %w", nm.Name, err)
		}
		p.Declarations = append(p.Declarations, declareMotor("motor_"+nm.Name, spec))
	}

	for i, a := range actions {
		stmt, err := statement(cfg, a)
		if err != nil {
			return fmt.Errorf("action %d: %w", i+1, err)
		}
		p.Statements = append(p.Statements, stmt)
	}

	return programTemplate.Execute(w, p)
}

func declareMotor(name string, spec robot.MotorSpec) string {
	return fmt.Sprintf("motor %s = motor(PORT%d, %s, %t);", name, spec.Port, spec.Gear.Cartridge(), spec.Reversed)
}

func num(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}

func (p *program) declareDrive(d robot.DriveConfig) error {
	// Building the model validates wiring and geometry the same way the
	// robot does.
	if _, err := robot.NewDrivetrain(d, robot.NewSimBus(nil).Motor); err != nil {
		return err
	}

	switch d.Type {
	case robot.DriveTypeRegular:
		left, _ := robot.NewMotorSpec(*d.Left)
		right, _ := robot.NewMotorSpec(*d.Right)
		g := d.Geometry
		p.Declarations = append(p.Declarations,
			declareMotor("left_drive", left),
			declareMotor("right_drive", right),
			fmt.Sprintf("drivetrain Drivetrain = drivetrain(left_drive, right_drive, %s, %s, %s, mm, %s);",
				num(g.Circumference()), num(g.TrackWidth), num(g.Wheelbase), num(g.Ratio())),
		)
	case robot.DriveTypeX:
		names := []string{"front_left_drive", "front_right_drive", "back_left_drive", "back_right_drive"}
		entries := []*robot.MotorConfig{d.Front.Left, d.Front.Right, d.Back.Left, d.Back.Right}
		for i, mc := range entries {
			spec, _ := robot.NewMotorSpec(*mc)
			p.Declarations = append(p.Declarations, declareMotor(names[i], spec))
		}
		mmPerTurn := d.Geometry.Circumference() * d.Geometry.Ratio()
		p.Declarations = append(p.Declarations, xDriveHelpers(mmPerTurn))
	}
	return nil
}

func xDriveHelpers(mmPerTurn float64) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "void move(int mm) {\n")
	fmt.Fprintf(&sb, "  double amount = mm / %s;\n", num(mmPerTurn))
	fmt.Fprintf(&sb, "  front_left_drive.spinFor(forward, amount, turns, false);\n")
	fmt.Fprintf(&sb, "  front_right_drive.spinFor(forward, amount, turns, false);\n")
	fmt.Fprintf(&sb, "  back_left_drive.spinFor(forward, amount, turns, false);\n")
	fmt.Fprintf(&sb, "  back_right_drive.spinFor(forward, amount, turns);\n")
	fmt.Fprintf(&sb, "}\n")
	// Positive degrees turn right: left side forward, right side reverse.
	fmt.Fprintf(&sb, "void turn(int deg) {\n")
	fmt.Fprintf(&sb, "  front_left_drive.spinFor(forward, deg, degrees, false);\n")
	fmt.Fprintf(&sb, "  back_left_drive.spinFor(forward, deg, degrees, false);\n")
	fmt.Fprintf(&sb, "  front_right_drive.spinFor(reverse, deg, degrees, false);\n")
	fmt.Fprintf(&sb, "  back_right_drive.spinFor(reverse, deg, degrees);\n")
	fmt.Fprintf(&sb, "}")
	return sb.String()
}

func statement(cfg *robot.Config, a routine.Action) (string, error) {
	regular := cfg.Drive.Type == robot.DriveTypeRegular

	switch a.Kind {
	case routine.Move:
		if regular {
			return fmt.Sprintf("Drivetrain.driveFor(forward, %d, mm);", a.Value), nil
		}
		return fmt.Sprintf("move(%d);", a.Value), nil
	case routine.Turn:
		if !regular {
			return fmt.Sprintf("turn(%d);", a.Value), nil
		}
		if len(a.Args) == 0 {
			return "", fmt.Errorf("turn action has no direction")
		}
		return fmt.Sprintf("Drivetrain.turnFor(%s, %d, degrees);", a.Args[0], a.Value), nil
	case routine.Wait:
		return fmt.Sprintf("wait(%d, msec);", a.Value*10), nil
	case routine.RunMotor:
		return runMotor(cfg, a)
	default:
		return "", fmt.Errorf("invalid action: %s", a.Kind)
	}
}

func runMotor(cfg *robot.Config, a routine.Action) (string, error) {
	if len(a.Args) == 0 {
		return "", fmt.Errorf("run_motor action has no motor")
	}
	name := a.Args[0]
	if _, ok := cfg.Named(name); !ok {
		return "", fmt.Errorf("motor with id %s not found", name)
	}

	power := defaultPower
	if len(a.Args) > 1 {
		p, err := strconv.Atoi(a.Args[1])
		if err != nil {
			return "", fmt.Errorf("run_motor power %q: %w", a.Args[1], err)
		}
		if p != 0 {
			power = p
		}
	}
	return fmt.Sprintf("motor_%s.setVelocity(%d, percent);\n  motor_%s.spinToPosition(%d, degrees);",
		name, power, name, a.Value*10), nil
}
