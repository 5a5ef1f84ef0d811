package fan

import (
	"errors"
	"os"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/persistence"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

var reset bool

var usageCmd = &cobra.Command{
	Use:   "usage",
	Short: "Print the lifetime usage of the fan",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		profile, err := getProfile()
		if err != nil {
			return err
		}

		p := persistence.NewPersistence(configuration.CurrentConfig.DbPath)
		if reset {
			err = p.DeleteFanUsage(profile.Name)
			if err != nil {
				return err
			}
			ui.Success("Fan usage of %s has been reset", profile.Name)
			return nil
		}

		usage, err := p.LoadFanUsage(profile.Name)
		if errors.Is(err, os.ErrNotExist) {
			ui.Info("No fan usage recorded for %s yet", profile.Name)
			return nil
		}
		if err != nil {
			return err
		}

		rows := [][]string{
			{"On time", usage.OnTime().String()},
			{"Starts", strconv.FormatUint(usage.Starts, 10)},
			{"Activations", strconv.FormatUint(usage.Activations, 10)},
			{"Threshold trips", strconv.FormatUint(usage.ThresholdTrips, 10)},
			{"Sensor faults", strconv.FormatUint(usage.SensorFaults, 10)},
			{"Updated", usage.UpdatedAt.Format("2006-01-02 15:04:05")},
		}
		tableString, err := global.RenderTable([]string{profile.Name, ""}, rows)
		if err != nil {
			return err
		}
		ui.Printfln("%s", tableString)
		return nil
	},
}

func init() {
	usageCmd.Flags().BoolVarP(&reset, "reset", "", false, "Delete the recorded usage")
	Command.AddCommand(usageCmd)
}
