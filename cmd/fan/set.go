package fan

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

var setCmd = &cobra.Command{
	Use:       "set on|off",
	Short:     "Switch the fan on or off, a running daemon will overrule this",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{"on", "off"},
	RunE: func(cmd *cobra.Command, args []string) error {
		level, err := parseLevel(args[0])
		if err != nil {
			return err
		}

		profile, err := getProfile()
		if err != nil {
			return err
		}

		gpio, err := hal.NewDigitalOutput(configuration.CurrentConfig.Hal.Gpio)
		if err != nil {
			return err
		}
		err = gpio.ConfigureOutput(profile.FanCtrlPin, level)
		if err != nil {
			return err
		}

		ui.Success("Fan on pin %d set %s", profile.FanCtrlPin, level)
		return nil
	},
}

func parseLevel(text string) (hal.Level, error) {
	switch strings.ToLower(text) {
	case "on", "1", "high":
		return hal.High, nil
	case "off", "0", "low":
		return hal.Low, nil
	default:
		return hal.Low, fmt.Errorf("invalid fan state '%s', use one of: on | off", text)
	}
}

func init() {
	Command.AddCommand(setCmd)
}
