package cmd

import (
	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

// Version is set at build time using -ldflags "-X github.com/tbeam-mesh/pacool/cmd.Version=..."
var Version = "dev"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of pacool",
	Run: func(cmd *cobra.Command, args []string) {
		ui.Printfln("%s", Version)
	},
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
