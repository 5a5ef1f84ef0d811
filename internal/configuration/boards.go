package configuration

const (
	BoardTBeam1W      = "tbeam-1w-sx1262"
	BoardTBeamSupreme = "tbeam-supreme-sx1262"
	BoardTBeamSX1262  = "tbeam-sx1262"
	BoardTBeamSX1276  = "tbeam-sx1276"
)

// BoardConfig describes the pins of a board variant which are relevant for
// thermal management. Unset pins are inherited from the profile given in
// Extends, a pin of PinNotConnected means the board does not have it.
type BoardConfig struct {
	Name         string `json:"name"`
	Extends      string `json:"extends,omitempty"`
	Manufacturer string `json:"manufacturer,omitempty"`

	FanCtrlPin     *Pin  `json:"fanCtrlPin,omitempty"`
	ThermistorPin  *Pin  `json:"thermistorPin,omitempty"`
	TxLedPin       *Pin  `json:"txLedPin,omitempty"`
	TxLedActiveLow *bool `json:"txLedActiveLow,omitempty"`
}

func pin(p Pin) *Pin {
	return &p
}

func boolean(b bool) *bool {
	return &b
}

// BuiltinBoards are the board variants known without any configuration.
var BuiltinBoards = []BoardConfig{
	{
		Name:           BoardTBeam1W,
		Manufacturer:   "LilyGo T-Beam",
		FanCtrlPin:     pin(41),
		ThermistorPin:  pin(14),
		TxLedPin:       pin(18),
		TxLedActiveLow: boolean(true),
	},
	{
		Name:           BoardTBeamSupreme,
		Manufacturer:   "LilyGo T-Beam",
		FanCtrlPin:     pin(PinNotConnected),
		ThermistorPin:  pin(PinNotConnected),
		TxLedPin:       pin(PinNotConnected),
		TxLedActiveLow: boolean(false),
	},
	{
		Name:           BoardTBeamSX1262,
		Manufacturer:   "LilyGo T-Beam",
		FanCtrlPin:     pin(PinNotConnected),
		ThermistorPin:  pin(PinNotConnected),
		TxLedPin:       pin(PinNotConnected),
		TxLedActiveLow: boolean(true),
	},
	{
		Name:    BoardTBeamSX1276,
		Extends: BoardTBeamSX1262,
	},
}

// AllBoards returns the builtin boards followed by the configured ones, a
// configured board replaces a builtin board with the same name.
func AllBoards(config *Configuration) []BoardConfig {
	var result []BoardConfig
	for _, builtin := range BuiltinBoards {
		overridden := false
		for _, custom := range config.Boards {
			if custom.Name == builtin.Name {
				overridden = true
				break
			}
		}
		if !overridden {
			result = append(result, builtin)
		}
	}
	return append(result, config.Boards...)
}
