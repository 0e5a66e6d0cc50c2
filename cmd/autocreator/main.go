package main

import (
	"os"

	"github.com/jessevdk/go-flags"
)

type Options struct {
	Config  string `short:"c" long:"config" default:"autocreator.json" description:"Robot configuration file (JSON or YAML)"`
	LogFile string `long:"log-file" default:"autocreator.log" description:"Log file for the recording session"`
	Verbose bool   `short:"v" long:"verbose" description:"Enable debug logging"`

	Setup  SetupCommand  `command:"setup" description:"Describe the robot wiring and write the configuration"`
	Record RecordCommand `command:"record" alias:"rec" description:"Record an autonomous routine with the controller buttons"`
	Play   PlayCommand   `command:"play" description:"Replay a recorded routine on the robot"`
	Build  BuildCommand  `command:"build" description:"Generate a VEX C++ program from a recorded routine"`
}

var opts Options
var parser = flags.NewParser(&opts, flags.Default)

func main() {
	parser.LongDescription = "autocreator - record autonomous routines on the robot and turn them into programs"

	_, err := parser.Parse()
	if err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				os.Exit(0)
			}
		}
		os.Exit(1)
	}
}
