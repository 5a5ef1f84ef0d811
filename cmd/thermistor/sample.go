package thermistor

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/thermal"
)

var sampleCmd = &cobra.Command{
	Use:   "sample <°C>",
	Short: "Print the ADC sample expected for a temperature, f.ex. for a static adc",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		celsius, err := strconv.ParseFloat(args[0], 64)
		if err != nil {
			return err
		}

		config := global.LoadValidatedConfig()
		fmt.Printf("%d\n", thermal.SampleForTemperature(celsius, config.Thermal))
		return nil
	},
}

func init() {
	Command.AddCommand(sampleCmd)
}
