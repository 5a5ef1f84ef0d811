// Package board resolves the board profiles which tell the daemon which pins
// drive the fan and the TX LED and where the thermistor is connected.
package board

import (
	"fmt"

	"github.com/orcaman/concurrent-map/v2"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/util"
)

var (
	ProfileMap = cmap.New[*Profile]()
)

// Profile is a fully resolved board, every pin is either set or -1
type Profile struct {
	Name         string `json:"name"`
	Manufacturer string `json:"manufacturer"`
	// Chain lists the profile itself followed by the profiles it inherits from
	Chain []string `json:"chain"`

	FanCtrlPin     int  `json:"fanCtrlPin"`
	ThermistorPin  int  `json:"thermistorPin"`
	TxLedPin       int  `json:"txLedPin"`
	TxLedActiveLow bool `json:"txLedActiveLow"`
}

// HasFan is false for boards without a fan, those run no thermal management
func (p *Profile) HasFan() bool {
	return p.FanCtrlPin >= 0
}

func (p *Profile) HasThermistor() bool {
	return p.ThermistorPin >= 0
}

func (p *Profile) HasTxLed() bool {
	return p.TxLedPin >= 0
}

// LoadProfiles resolves all builtin and configured boards into ProfileMap
func LoadProfiles(config *configuration.Configuration) error {
	boards := configuration.AllBoards(config)
	ProfileMap.Clear()
	for _, boardConfig := range boards {
		profile, err := Resolve(boardConfig.Name, boards)
		if err != nil {
			return err
		}
		ProfileMap.Set(profile.Name, profile)
	}
	return nil
}

// Get returns the resolved profile with the given name
func Get(name string) (*Profile, error) {
	profile, ok := ProfileMap.Get(name)
	if !ok {
		return nil, fmt.Errorf("no board profile with name '%s' found", name)
	}
	return profile, nil
}

// All returns every resolved profile, sorted by name
func All() []*Profile {
	items := ProfileMap.Items()
	var result []*Profile
	for _, name := range util.SortedKeys(items) {
		result = append(result, items[name])
	}
	return result
}

// Resolve walks the extends chain of the named board, the first board in the
// chain which sets a field wins.
func Resolve(name string, boards []configuration.BoardConfig) (*Profile, error) {
	byName := map[string]configuration.BoardConfig{}
	for _, b := range boards {
		byName[b.Name] = b
	}

	var (
		manufacturer   *string
		fanCtrlPin     *configuration.Pin
		thermistorPin  *configuration.Pin
		txLedPin       *configuration.Pin
		txLedActiveLow *bool
		chain          []string
	)

	visited := map[string]bool{}
	current := name
	for len(current) > 0 {
		if visited[current] {
			return nil, fmt.Errorf("board %s: inheritance cycle at '%s'", name, current)
		}
		visited[current] = true

		boardConfig, ok := byName[current]
		if !ok {
			return nil, fmt.Errorf("board %s: no board definition with name '%s' found", name, current)
		}
		chain = append(chain, current)

		if manufacturer == nil && len(boardConfig.Manufacturer) > 0 {
			manufacturer = &boardConfig.Manufacturer
		}
		if fanCtrlPin == nil {
			fanCtrlPin = boardConfig.FanCtrlPin
		}
		if thermistorPin == nil {
			thermistorPin = boardConfig.ThermistorPin
		}
		if txLedPin == nil {
			txLedPin = boardConfig.TxLedPin
		}
		if txLedActiveLow == nil {
			txLedActiveLow = boardConfig.TxLedActiveLow
		}

		current = boardConfig.Extends
	}

	profile := &Profile{
		Name:           name,
		Chain:          chain,
		FanCtrlPin:     pinOrNotConnected(fanCtrlPin),
		ThermistorPin:  pinOrNotConnected(thermistorPin),
		TxLedPin:       pinOrNotConnected(txLedPin),
		TxLedActiveLow: txLedActiveLow != nil && *txLedActiveLow,
	}
	if manufacturer != nil {
		profile.Manufacturer = *manufacturer
	}
	return profile, nil
}

func pinOrNotConnected(p *configuration.Pin) int {
	if p == nil {
		return int(configuration.PinNotConnected)
	}
	return int(*p)
}
