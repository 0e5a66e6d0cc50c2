package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
	"github.com/hipsterbrown/feetech-servo/feetech"
	"github.com/samber/lo"
	"go.bug.st/serial"

	"github.com/gwillem/autocreator/pkg/robot"
)

var (
	headerStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("12"))
	subHeaderStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("14"))
	warnStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
)

const noBus = "none"

type SetupCommand struct {
	NoScan bool `long:"no-scan" description:"Do not scan the selected bus for servos"`
}

// motorAnswers holds the form values for one motor.
type motorAnswers struct {
	label   string
	port    string
	gear    string
	reverse bool
}

func newMotorAnswers(label string, port int, reverse bool) *motorAnswers {
	return &motorAnswers{label: label, port: strconv.Itoa(port), gear: string(robot.Ratio18To1), reverse: reverse}
}

func (a *motorAnswers) group() *huh.Group {
	return huh.NewGroup(
		huh.NewInput().
			Title(a.label+" motor port").
			Description("Smart port 1-12").
			Value(&a.port).
			Validate(validatePort),
		huh.NewSelect[string]().
			Title(a.label+" gear cartridge").
			Options(gearOptions()...).
			Value(&a.gear),
		huh.NewConfirm().
			Title(a.label+" motor reversed?").
			Value(&a.reverse),
	)
}

func (a *motorAnswers) config() *robot.MotorConfig {
	port, _ := strconv.Atoi(strings.TrimSpace(a.port))
	return &robot.MotorConfig{Port: port, Gear: a.gear, Reverse: a.reverse}
}

func gearOptions() []huh.Option[string] {
	return lo.Map(robot.AllGearRatios(), func(g robot.GearRatio, _ int) huh.Option[string] {
		return huh.NewOption(fmt.Sprintf("%s (%d rpm)", g, g.RPM()), string(g))
	})
}

func validatePort(s string) error {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return errors.New("enter a port number")
	}
	_, err = robot.ParsePort(n)
	return err
}

func validatePositive(s string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || f <= 0 {
		return errors.New("enter a positive number")
	}
	return nil
}

func validateOptional(s string) error {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	return validatePositive(s)
}

func parseFloat(s string) float64 {
	f, _ := strconv.ParseFloat(strings.TrimSpace(s), 64)
	return f
}

// runForm runs a form and exits quietly when the user aborts it.
func runForm(groups ...*huh.Group) {
	if err := huh.NewForm(groups...).Run(); err != nil {
		fmt.Println()
		os.Exit(0)
	}
}

func (c *SetupCommand) Execute(args []string) error {
	fmt.Println(headerStyle.Render("Autonomous Creator Setup"))
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println()

	if robot.ConfigExists(opts.Config) {
		overwrite := false
		runForm(huh.NewGroup(
			huh.NewConfirm().
				Title(fmt.Sprintf("%s exists. Overwrite it?", opts.Config)).
				Value(&overwrite),
		))
		if !overwrite {
			return nil
		}
	}

	// Step 1: drivetrain layout and geometry
	driveType := robot.DriveTypeRegular
	runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Drivetrain").
			Options(
				huh.NewOption("Regular drive (left and right motors)", robot.DriveTypeRegular),
				huh.NewOption("X-drive (four corner motors)", robot.DriveTypeX),
			).
			Value(&driveType),
	))

	cfg := &robot.Config{OutputDir: "build"}
	cfg.Drive.Type = driveType
	cfg.Drive.Geometry = askGeometry(driveType)

	// Step 2: motor wiring
	fmt.Println(subHeaderStyle.Render("━━━ Motors ━━━"))
	switch driveType {
	case robot.DriveTypeRegular:
		left := newMotorAnswers("Left", 1, false)
		right := newMotorAnswers("Right", 2, true)
		runForm(left.group(), right.group())
		cfg.Drive.Left, cfg.Drive.Right = left.config(), right.config()
	case robot.DriveTypeX:
		fl := newMotorAnswers("Front left", 1, false)
		fr := newMotorAnswers("Front right", 2, true)
		bl := newMotorAnswers("Back left", 3, false)
		br := newMotorAnswers("Back right", 4, true)
		runForm(fl.group(), fr.group(), bl.group(), br.group())
		cfg.Drive.Front = &robot.MotorPair{Left: fl.config(), Right: fr.config()}
		cfg.Drive.Back = &robot.MotorPair{Left: bl.config(), Right: br.config()}
	}

	if _, err := robot.NewDrivetrain(cfg.Drive, robot.NewSimBus(nil).Motor); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid drivetrain: %v\n", err)
		os.Exit(1)
	}

	// Step 3: servo bus
	fmt.Println(subHeaderStyle.Render("━━━ Servo bus ━━━"))
	cfg.Bus.Port = askBusPort()
	if cfg.Bus.Port != "" && !c.NoScan {
		checkServos(cfg)
	}

	runForm(huh.NewGroup(
		huh.NewInput().
			Title("Program output directory").
			Value(&cfg.OutputDir),
	))

	if err := cfg.SaveTo(opts.Config); err != nil {
		fmt.Fprintf(os.Stderr, "Error saving config: %v\n", err)
		os.Exit(1)
	}

	fmt.Println()
	fmt.Println(dimStyle.Render("━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━━"))
	fmt.Println(successStyle.Render("Setup complete!"))
	fmt.Printf("Configuration saved to %s\n", opts.Config)
	fmt.Println()
	fmt.Println("Start recording with: " + headerStyle.Render("autocreator record"))

	return nil
}

func askGeometry(driveType string) robot.Geometry {
	diameter, ratio := "101.6", ""
	track, wheelbase := "", ""

	fields := []huh.Field{
		huh.NewInput().
			Title("Wheel diameter (mm)").
			Value(&diameter).
			Validate(validatePositive),
		huh.NewInput().
			Title("External gear ratio").
			Description("Leave empty for direct drive").
			Value(&ratio).
			Validate(validateOptional),
	}
	if driveType == robot.DriveTypeRegular {
		fields = append(fields,
			huh.NewInput().
				Title("Track width (mm)").
				Description("Distance between the left and right wheels").
				Value(&track).
				Validate(validatePositive),
			huh.NewInput().
				Title("Wheelbase (mm)").
				Description("Distance between front and rear axles").
				Value(&wheelbase).
				Validate(validateOptional),
		)
	}
	runForm(huh.NewGroup(fields...))

	g := robot.Geometry{
		WheelDiameter: parseFloat(diameter),
		TrackWidth:    parseFloat(track),
		Wheelbase:     parseFloat(wheelbase),
	}
	if strings.TrimSpace(ratio) != "" {
		r := parseFloat(ratio)
		g.GearRatio = &r
	}
	return g
}

func askBusPort() string {
	ports, err := serial.GetPortsList()
	if err != nil {
		fmt.Printf("Error listing ports: %v\n", err)
	}
	// Skip Bluetooth ports on macOS
	ports = lo.Reject(ports, func(p string, _ int) bool { return strings.Contains(p, "Bluetooth") })

	options := lo.Map(ports, func(p string, _ int) huh.Option[string] { return huh.NewOption(p, p) })
	options = append(options, huh.NewOption("None (simulation only)", noBus))

	port := noBus
	if len(ports) > 0 {
		port = ports[0]
	}
	runForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Serial port of the servo bus").
			Options(options...).
			Value(&port),
	))
	if port == noBus {
		return ""
	}
	return port
}

// checkServos scans the bus and reports drive motors that did not answer.
func checkServos(cfg *robot.Config) {
	fmt.Printf("Scanning %s for servos...\n", cfg.Bus.Port)

	found, err := scanServos(cfg.Bus.Port)
	if err != nil {
		fmt.Println(warnStyle.Render(fmt.Sprintf("Scan failed: %v", err)))
		return
	}
	ids := lo.Map(found, func(s feetech.FoundServo, _ int) int { return s.ID })
	fmt.Printf("  Found servo ids: %v\n", ids)

	for _, mc := range driveMotors(cfg.Drive) {
		if !lo.Contains(ids, mc.Port) {
			fmt.Println(warnStyle.Render(fmt.Sprintf("  No servo answers on port %d", mc.Port)))
		}
	}
}

func driveMotors(d robot.DriveConfig) []*robot.MotorConfig {
	if d.Type == robot.DriveTypeX {
		return []*robot.MotorConfig{d.Front.Left, d.Front.Right, d.Back.Left, d.Back.Right}
	}
	return []*robot.MotorConfig{d.Left, d.Right}
}

func scanServos(port string) ([]feetech.FoundServo, error) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	bus, err := feetech.NewBus(feetech.BusConfig{
		Port:     port,
		BaudRate: 1_000_000,
		Protocol: feetech.ProtocolSTS,
		Timeout:  100 * time.Millisecond,
	})
	if err != nil {
		return nil, err
	}
	defer bus.Close()

	return bus.Scan(ctx, int(robot.MinPort), int(robot.MaxPort))
}
