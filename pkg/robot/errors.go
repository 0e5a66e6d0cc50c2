package robot

import (
	"errors"
	"fmt"
)

// ErrNoConfig is returned when no configuration file can be found.
var ErrNoConfig = errors.New("no configuration")

// ConfigError reports an invalid or incomplete robot configuration. It is
// always detected while constructing the drivetrain, never while driving.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field == "" {
		return "configuration: " + e.Reason
	}
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// withField prefixes the field path of a ConfigError, leaving other errors as is.
func withField(err error, field string) error {
	var ce *ConfigError
	if errors.As(err, &ce) {
		f := field
		if ce.Field != "" {
			f = field + "." + ce.Field
		}
		return &ConfigError{Field: f, Reason: ce.Reason}
	}
	return err
}
