package global

import (
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

var (
	CfgFile string
	NoColor bool
	NoStyle bool
	Verbose bool
)

// LoadValidatedConfig reads and validates the configuration file given with
// --config (or found in the search paths), it exits on validation errors.
func LoadValidatedConfig() *configuration.Configuration {
	configPath := configuration.DetectConfigFile()
	ui.Info("Using configuration file at: %s", configPath)
	configuration.LoadConfig()

	err := configuration.Validate(configPath)
	if err != nil {
		ui.FatalWithoutStacktrace("%v", err)
	}
	return &configuration.CurrentConfig
}
