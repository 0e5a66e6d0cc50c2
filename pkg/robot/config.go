package robot

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/viper"
)

const (
	DefaultConfigFile = "autocreator.json"
	EnvPrefix         = "AUTOCREATOR"
)

// Drivetrain layouts.
const (
	DriveTypeRegular = "regular-drive"
	DriveTypeX       = "x-drive"
)

// Config holds the robot wiring and geometry.
type Config struct {
	Drive         DriveConfig   `json:"drive" mapstructure:"drive"`
	AlwaysRunning []MotorConfig `json:"always_running,omitempty" mapstructure:"always_running"`
	Motors        []NamedMotor  `json:"motors,omitempty" mapstructure:"motors"`
	Bus           BusConfig     `json:"bus" mapstructure:"bus"`
	OutputDir     string        `json:"output_dir,omitempty" mapstructure:"output_dir"`
}

// DriveConfig describes the drivetrain. Left/Right are used by regular-drive,
// Front/Back by x-drive.
type DriveConfig struct {
	Type     string       `json:"type" mapstructure:"type"`
	Geometry Geometry     `json:"config" mapstructure:"config"`
	Left     *MotorConfig `json:"left,omitempty" mapstructure:"left"`
	Right    *MotorConfig `json:"right,omitempty" mapstructure:"right"`
	Front    *MotorPair   `json:"front,omitempty" mapstructure:"front"`
	Back     *MotorPair   `json:"back,omitempty" mapstructure:"back"`
}

// Geometry holds the wheel and chassis constants, in millimeters.
type Geometry struct {
	WheelCircumference float64  `json:"wheel_circumference,omitempty" mapstructure:"wheel_circumference"`
	WheelDiameter      float64  `json:"wheel_diameter,omitempty" mapstructure:"wheel_diameter"`
	WheelSize          float64  `json:"wheel_size,omitempty" mapstructure:"wheel_size"`
	TrackWidth         float64  `json:"track_width,omitempty" mapstructure:"track_width"`
	Wheelbase          float64  `json:"wheelbase,omitempty" mapstructure:"wheelbase"`
	GearRatio          *float64 `json:"gear_ratio,omitempty" mapstructure:"gear_ratio"`
}

// MotorPair is the left and right motor of one axle.
type MotorPair struct {
	Left  *MotorConfig `json:"left,omitempty" mapstructure:"left"`
	Right *MotorConfig `json:"right,omitempty" mapstructure:"right"`
}

// MotorConfig is a motor entry as written in the configuration file.
type MotorConfig struct {
	Port    int    `json:"port" mapstructure:"port"`
	Gear    string `json:"gear" mapstructure:"gear"`
	Reverse bool   `json:"reverse" mapstructure:"reverse"`
}

// NamedMotor is an auxiliary motor addressable by run_motor actions.
type NamedMotor struct {
	Name        string `json:"name" mapstructure:"name"`
	MotorConfig `mapstructure:",squash"`
}

// BusConfig selects the servo bus the drive motors are attached to.
type BusConfig struct {
	Port     string `json:"port,omitempty" mapstructure:"port"`
	BaudRate int    `json:"baud_rate,omitempty" mapstructure:"baud_rate"`
}

// LoadConfig loads configuration from the default config file
func LoadConfig() (*Config, error) {
	return LoadConfigFrom(DefaultConfigFile)
}

// LoadConfigFrom loads configuration from a JSON or YAML file. Values can be
// overridden from the environment, e.g. AUTOCREATOR_BUS_PORT.
func LoadConfigFrom(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("%w: %s", ErrNoConfig, path)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}
	return &cfg, nil
}

// Save saves configuration to the default config file
func (c *Config) Save() error {
	return c.SaveTo(DefaultConfigFile)
}

// SaveTo saves configuration to a specific file
func (c *Config) SaveTo(path string) error {
	data, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// ConfigExists returns true if the config file exists
func ConfigExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// Named returns the auxiliary motor with the given name.
func (c *Config) Named(name string) (NamedMotor, bool) {
	return lo.Find(c.Motors, func(m NamedMotor) bool { return m.Name == name })
}
