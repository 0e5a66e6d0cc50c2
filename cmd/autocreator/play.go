package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/charmbracelet/lipgloss"

	"github.com/gwillem/autocreator/pkg/log"
	"github.com/gwillem/autocreator/pkg/routine"
	"github.com/gwillem/autocreator/pkg/session"
)

type PlayCommand struct {
	Sim    bool          `long:"sim" description:"Use simulated motors instead of the servo bus"`
	Settle time.Duration `long:"settle" default:"500ms" description:"Pause after each motion"`
	Args   struct {
		Routine string `positional-arg-name:"routine" required:"yes" description:"Routine file"`
	} `positional-args:"yes"`
}

var (
	stepStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("14"))
	successStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))
	dimStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("241"))
)

func (c *PlayCommand) Execute(args []string) error {
	cfg := loadConfig()
	initConsoleLogging()
	defer log.Logger.Sync()

	f, err := routine.Load(c.Args.Routine)
	if err != nil {
		return fmt.Errorf("load routine: %w", err)
	}
	if f.Drive != "" && f.Drive != cfg.Drive.Type {
		return fmt.Errorf("routine was recorded on %s, robot is configured as %s", f.Drive, cfg.Drive.Type)
	}

	drive, closeBus, err := openDrivetrain(cfg, c.Sim)
	if err != nil {
		return fmt.Errorf("create drivetrain: %w", err)
	}
	defer closeBus()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Println(titleStyle.Render("Playing " + c.Args.Routine))
	fmt.Println(dimStyle.Render(fmt.Sprintf("%d action(s) on %s", len(f.Code), drive.Type())))

	p := &session.Player{
		Drive:  drive,
		Logger: log.Logger,
		Settle: c.Settle,
		OnAction: func(i int, a routine.Action) {
			fmt.Printf("%s %s\n", stepStyle.Render(fmt.Sprintf("%3d", i+1)), a)
		},
	}
	if err := p.Play(ctx, f.Code); err != nil {
		return fmt.Errorf("playback stopped: %w", err)
	}

	fmt.Println(successStyle.Render("Done."))
	return nil
}
