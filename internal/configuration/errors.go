package configuration

import "fmt"

// ConfigurationError is returned for a configuration that must not be run with,
// f.ex. an inverted hysteresis band.
type ConfigurationError struct {
	Section string
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Section, e.Message)
}

func newConfigurationError(section string, format string, a ...interface{}) error {
	return &ConfigurationError{
		Section: section,
		Message: fmt.Sprintf(format, a...),
	}
}
