package sensor

import (
	"errors"
	"fmt"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/board"
	"github.com/tbeam-mesh/pacool/internal/hal"
	"github.com/tbeam-mesh/pacool/internal/thermal"
)

var raw bool

var Command = &cobra.Command{
	Use:   "sensor",
	Short: "Read the PA temperature once",
	Long:  ``,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		pterm.DisableOutput()

		config := global.LoadValidatedConfig()
		err := board.LoadProfiles(config)
		if err != nil {
			return err
		}
		profile, err := board.Get(config.Board)
		if err != nil {
			return err
		}
		if !profile.HasThermistor() {
			return errors.New("the configured board has no thermistor")
		}

		adc, err := hal.NewAnalogInput(config.Hal.Adc)
		if err != nil {
			return err
		}

		if raw {
			sample, err := adc.ReadADC(profile.ThermistorPin)
			if err != nil {
				return err
			}
			fmt.Printf("%d\n", sample)
			return nil
		}

		sensor := thermal.NewThermistorSensor(adc, profile.ThermistorPin, config.Thermal)
		value, err := sensor.ReadTemperature()
		if err != nil {
			return err
		}
		fmt.Printf("%.1f\n", value)
		return nil
	},
}

func init() {
	Command.Flags().BoolVarP(&raw, "raw", "r", false, "Print the raw ADC sample instead of the temperature")
}
