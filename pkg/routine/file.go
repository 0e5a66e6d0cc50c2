package routine

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	"gopkg.in/yaml.v3"
)

// File is a routine as stored on disk. Code keeps the layout of the
// generator's input file.
type File struct {
	ID      string    `json:"id,omitempty" yaml:"id,omitempty"`
	Created time.Time `json:"created" yaml:"created"`
	Drive   string    `json:"drive,omitempty" yaml:"drive,omitempty"`
	Code    []Action  `json:"code" yaml:"code"`
}

// NewFile snapshots a log for the given drivetrain type.
func NewFile(drive string, l *Log) *File {
	return &File{
		ID:      uuid.NewString(),
		Created: time.Now().UTC().Truncate(time.Second),
		Drive:   drive,
		Code:    l.Actions(),
	}
}

// Log validates the stored actions and returns them as a log.
func (f *File) Log() (*Log, error) {
	return NewLog(f.Code...)
}

func isYAML(path string) bool {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return true
	}
	return false
}

// Save writes f as YAML for .yaml/.yml paths and as indented JSON otherwise.
func Save(path string, f *File) error {
	var (
		data []byte
		err  error
	)
	if isYAML(path) {
		data, err = yaml.Marshal(f)
	} else {
		data, err = json.MarshalIndent(f, "", "  ")
	}
	if err != nil {
		return fmt.Errorf("encode routine: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("write routine: %w", err)
	}
	return nil
}

// Load reads a routine file written by Save, or a bare {"code": [...]} file.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read routine: %w", err)
	}

	var f File
	if isYAML(path) {
		err = yaml.Unmarshal(data, &f)
	} else {
		err = json.Unmarshal(data, &f)
	}
	if err != nil {
		return nil, fmt.Errorf("parse routine: %w", err)
	}
	if _, err := f.Log(); err != nil {
		return nil, fmt.Errorf("invalid routine %s: %w", path, err)
	}
	return &f, nil
}
