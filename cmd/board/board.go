package board

import (
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tbeam-mesh/pacool/internal/board"
)

var Command = &cobra.Command{
	Use:              "board",
	Short:            "Board profile related commands",
	TraverseChildren: true,
}

func formatPin(pin int) string {
	if pin < 0 {
		return "-"
	}
	return strconv.Itoa(pin)
}

func formatLed(profile *board.Profile) string {
	if !profile.HasTxLed() {
		return "-"
	}
	if profile.TxLedActiveLow {
		return formatPin(profile.TxLedPin) + " (active low)"
	}
	return formatPin(profile.TxLedPin)
}
