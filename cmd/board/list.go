package board

import (
	"strings"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/board"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all known board profiles",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		config := global.LoadValidatedConfig()
		err := board.LoadProfiles(config)
		if err != nil {
			return err
		}

		var rows [][]string
		for _, profile := range board.All() {
			name := profile.Name
			if name == config.Board {
				name = "* " + name
			}
			rows = append(rows, []string{
				name,
				profile.Manufacturer,
				strings.Join(profile.Chain[1:], " > "),
				formatPin(profile.FanCtrlPin),
				formatPin(profile.ThermistorPin),
				formatLed(profile),
			})
		}

		tableString, err := global.RenderTable([]string{"Name", "Manufacturer", "Extends", "Fan", "Thermistor", "TX LED"}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	Command.AddCommand(listCmd)
}
