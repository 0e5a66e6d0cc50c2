// Package autocreator records autonomous routines for a competition robot
// from its controller buttons and turns them into programs.
//
// The recorder walks the driver through a two-level menu on the robot
// screen: pick an action (move, turn, wait), then tune its value while the
// robot previews the motion. Every confirmed action is appended to a log that
// can be saved, replayed, or compiled into a VEX C++ program.
//
// # Installation
//
//	go install github.com/gwillem/autocreator/cmd/autocreator@latest
//
// # Usage
//
// Describe the robot wiring once:
//
//	autocreator setup
//
// Record a routine (add --sim to run without hardware):
//
//	autocreator record --out routine.json
//
// Replay it, or generate the program:
//
//	autocreator play routine.json
//	autocreator build routine.json
//
// # Packages
//
// The module is organized into the following packages:
//
//   - cmd/autocreator: CLI with setup, record, play and build commands
//   - pkg/robot: motors, configuration and drivetrain layouts
//   - pkg/routine: actions, the action log and routine files
//   - pkg/controller: button input and screen output devices
//   - pkg/menu: debounced selection and value tuning menus
//   - pkg/session: the recording loop and routine playback
//   - pkg/codegen: VEX C++ program generation
//   - pkg/log: process-wide zap logger
package autocreator
