package ui

import (
	"os"

	"github.com/pterm/pterm"
)

func setupExample() {
	pterm.SetDefaultOutput(os.Stdout)
	pterm.DisableStyling()
}

func ExamplePrintfln() {
	setupExample()

	Printfln("%-12s %d", "fanCtrlPin", 41)
	// Output:
	// fanCtrlPin   41
}

func ExampleDebug() {
	setupExample()
	SetDebugEnabled(true)
	defer SetDebugEnabled(false)

	Debug("Activation queue is full, dropping activation")
	// Output:
	// DEBUG: Activation queue is full, dropping activation
}

func ExampleDebug_disabled() {
	setupExample()
	SetDebugEnabled(false)

	Debug("not printed")
	Info("printed")
	// Output:
	// INFO: printed
}

func ExampleInfo() {
	setupExample()

	Info("Fan %s at %.1f°C (%s)", "ON", 45.0, "threshold")
	// Output:
	// INFO: Fan ON at 45.0°C (threshold)
}

func ExampleWarning() {
	setupExample()

	Warning("Unable to read PA temperature: %v", os.ErrNotExist)
	// Output:
	// WARNING: Unable to read PA temperature: file does not exist
}

func ExampleError() {
	setupExample()

	Error("Unable to switch fan %s: %v", "OFF", os.ErrPermission)
	// Output:
	// ERROR: Unable to switch fan OFF: permission denied
}
