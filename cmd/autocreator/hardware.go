package main

import (
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/gwillem/autocreator/pkg/log"
	"github.com/gwillem/autocreator/pkg/robot"
)

// loadConfig reads the configuration or exits; nothing can run without it.
func loadConfig() *robot.Config {
	cfg, err := robot.LoadConfigFrom(opts.Config)
	if errors.Is(err, robot.ErrNoConfig) {
		fmt.Fprintln(os.Stderr, "Failed to inject configuration, exiting...")
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading %s: %v\n", opts.Config, err)
		os.Exit(1)
	}
	return cfg
}

// initConsoleLogging is used by commands that do not own the terminal.
func initConsoleLogging() {
	if opts.Verbose {
		log.InitDevelopmentLogger()
		return
	}
	log.InitProductionLogger()
}

// openDrivetrain builds the configured drivetrain on the servo bus, or on
// simulated motors. The returned close func releases the bus.
func openDrivetrain(cfg *robot.Config, sim bool) (robot.Drivetrain, func(), error) {
	if sim {
		bus := robot.NewSimBus(log.Logger)
		drive, err := robot.NewDrivetrain(cfg.Drive, bus.Motor)
		if err != nil {
			return nil, nil, err
		}
		log.Logger.Info("using simulated motors", zap.String("drive", drive.Type()))
		return drive, func() {}, nil
	}

	bus, err := robot.OpenServoBus(cfg.Bus, log.Logger)
	if err != nil {
		return nil, nil, err
	}
	drive, err := robot.NewDrivetrain(cfg.Drive, bus.Motor)
	if err != nil {
		bus.Close()
		return nil, nil, err
	}
	log.Logger.Info("drivetrain ready",
		zap.String("drive", drive.Type()),
		zap.String("port", cfg.Bus.Port))
	return drive, func() { bus.Close() }, nil
}
