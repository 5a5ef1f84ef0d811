package thermistor

import (
	"fmt"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/thermal"
	"github.com/tbeam-mesh/pacool/internal/ui"
	"github.com/tbeam-mesh/pacool/internal/util"
)

var step int

var curveCmd = &cobra.Command{
	Use:   "curve",
	Short: "Plot the ADC sample to temperature conversion of the configured thermistor",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadValidatedConfig()
		thermalConfig := config.Thermal

		curve := thermal.Curve(thermalConfig, step)
		samples := util.SortedKeys(curve)

		var values []float64
		for _, sample := range samples {
			celsius := curve[sample]
			if thermalConfig.ValidRange.Contains(celsius) {
				values = append(values, celsius)
			}
		}
		if len(values) == 0 {
			return fmt.Errorf("no sample converts into the valid range [%.1f..%.1f]", thermalConfig.ValidRange.Min, thermalConfig.ValidRange.Max)
		}

		tableString, err := global.RenderTable([]string{"", "Sample", "Temperature"}, keyPoints(thermalConfig, len(curve)))
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)

		caption := fmt.Sprintf("°C / ADC sample (every %d)", step)
		graph := asciigraph.Plot(values, asciigraph.Height(15), asciigraph.Width(100), asciigraph.Caption(caption))
		ui.Printfln("%s", graph)
		return nil
	},
}

// keyPoints lists the samples at which the fan switches
func keyPoints(config configuration.ThermalConfig, evaluated int) [][]string {
	rows := [][]string{
		{"Fan off", fmt.Sprintf("%d", thermal.SampleForTemperature(config.Low, config)), fmt.Sprintf("%.1f°C", config.Low)},
		{"Fan on", fmt.Sprintf("%d", thermal.SampleForTemperature(config.High, config)), fmt.Sprintf("%.1f°C", config.High)},
	}
	if evaluated > 0 {
		rows = append(rows, []string{"Evaluated", fmt.Sprintf("%d", evaluated), ""})
	}
	return rows
}

func init() {
	curveCmd.Flags().IntVarP(&step, "step", "s", 16, "Distance between the plotted samples")
	Command.AddCommand(curveCmd)
}
