package fan

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/cmd/global"
	"github.com/tbeam-mesh/pacool/internal/board"
)

var Command = &cobra.Command{
	Use:              "fan",
	Short:            "Fan related commands",
	Long:             ``,
	TraverseChildren: true,
}

// getProfile returns the profile of the configured board, which must have a fan
func getProfile() (*board.Profile, error) {
	config := global.LoadValidatedConfig()
	err := board.LoadProfiles(config)
	if err != nil {
		return nil, err
	}
	profile, err := board.Get(config.Board)
	if err != nil {
		return nil, err
	}
	if !profile.HasFan() {
		return nil, fmt.Errorf("board '%s' has no fan", profile.Name)
	}
	return profile, nil
}
