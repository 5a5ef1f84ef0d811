package thermistor

import "github.com/spf13/cobra"

var Command = &cobra.Command{
	Use:              "thermistor",
	Short:            "Thermistor conversion related commands",
	TraverseChildren: true,
}
