package board

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/board"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

var showCmd = &cobra.Command{
	Use:   "show [name]",
	Short: "Print the resolved profile of a board, defaults to the configured board",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadValidatedConfig()
		err := board.LoadProfiles(config)
		if err != nil {
			return err
		}

		name := config.Board
		if len(args) > 0 {
			name = args[0]
		}
		profile, err := board.Get(name)
		if err != nil {
			return err
		}

		thermalManagement := "yes"
		if !profile.HasFan() {
			thermalManagement = "no (no fan pin)"
		} else if !profile.HasThermistor() {
			thermalManagement = "timed only (no thermistor pin)"
		}

		rows := [][]string{
			{"Name", profile.Name},
			{"Manufacturer", profile.Manufacturer},
			{"Inheritance", strings.Join(profile.Chain, " > ")},
			{"Fan", formatPin(profile.FanCtrlPin)},
			{"Thermistor", formatPin(profile.ThermistorPin)},
			{"TX LED", formatLed(profile)},
			{"Thermal management", thermalManagement},
		}
		tableString, err := global.RenderTable([]string{"Property", "Value"}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)

		if name == config.Board {
			ui.Printfln("Thresholds: on at %.1f°C, off at %.1f°C, %s after transmit",
				config.Thermal.High, config.Thermal.Low, config.Thermal.RunDuration)
		}
		return nil
	},
}

func init() {
	Command.AddCommand(showCmd)
}
