package board

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/tbeam-mesh/pacool/internal/configuration"
)

func pin(p int) *configuration.Pin {
	result := configuration.Pin(p)
	return &result
}

func TestResolve_Builtin1W(t *testing.T) {
	// WHEN
	profile, err := Resolve(configuration.BoardTBeam1W, configuration.BuiltinBoards)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, 41, profile.FanCtrlPin)
	assert.Equal(t, 14, profile.ThermistorPin)
	assert.Equal(t, 18, profile.TxLedPin)
	assert.True(t, profile.TxLedActiveLow)
	assert.True(t, profile.HasFan())
	assert.True(t, profile.HasTxLed())
	assert.Equal(t, "LilyGo T-Beam", profile.Manufacturer)
}

func TestResolve_BuiltinWithoutFan(t *testing.T) {
	for _, name := range []string{
		configuration.BoardTBeamSupreme,
		configuration.BoardTBeamSX1262,
		configuration.BoardTBeamSX1276,
	} {
		// WHEN
		profile, err := Resolve(name, configuration.BuiltinBoards)

		// THEN
		assert.NoError(t, err)
		assert.False(t, profile.HasFan(), name)
		assert.False(t, profile.HasThermistor(), name)
		assert.False(t, profile.HasTxLed(), name)
	}
}

func TestResolve_Extends(t *testing.T) {
	// GIVEN
	boards := append([]configuration.BoardConfig{}, configuration.BuiltinBoards...)
	boards = append(boards, configuration.BoardConfig{
		Name:          "my-1w",
		Extends:       configuration.BoardTBeam1W,
		ThermistorPin: pin(2),
	})

	// WHEN
	profile, err := Resolve("my-1w", boards)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, []string{"my-1w", configuration.BoardTBeam1W}, profile.Chain)
	assert.Equal(t, 41, profile.FanCtrlPin)
	assert.Equal(t, 2, profile.ThermistorPin)
	assert.Equal(t, 18, profile.TxLedPin)
	assert.True(t, profile.TxLedActiveLow)
	assert.Equal(t, "LilyGo T-Beam", profile.Manufacturer)
}

func TestResolve_UnsetPinsAreNotConnected(t *testing.T) {
	// GIVEN
	boards := []configuration.BoardConfig{{Name: "bare"}}

	// WHEN
	profile, err := Resolve("bare", boards)

	// THEN
	assert.NoError(t, err)
	assert.Equal(t, -1, profile.FanCtrlPin)
	assert.Equal(t, -1, profile.ThermistorPin)
	assert.Equal(t, -1, profile.TxLedPin)
	assert.False(t, profile.TxLedActiveLow)
}

func TestResolve_Cycle(t *testing.T) {
	// GIVEN
	boards := []configuration.BoardConfig{
		{Name: "a", Extends: "b"},
		{Name: "b", Extends: "a"},
	}

	// WHEN
	_, err := Resolve("a", boards)

	// THEN
	assert.EqualError(t, err, "board a: inheritance cycle at 'a'")
}

func TestResolve_MissingParent(t *testing.T) {
	// GIVEN
	boards := []configuration.BoardConfig{
		{Name: "a", Extends: "missing"},
	}

	// WHEN
	_, err := Resolve("a", boards)

	// THEN
	assert.EqualError(t, err, "board a: no board definition with name 'missing' found")
}

func TestLoadProfiles(t *testing.T) {
	// GIVEN
	config := &configuration.Configuration{
		Boards: []configuration.BoardConfig{
			{
				Name:       configuration.BoardTBeamSupreme,
				FanCtrlPin: pin(7),
			},
		},
	}

	// WHEN
	err := LoadProfiles(config)

	// THEN
	assert.NoError(t, err)
	assert.Len(t, All(), 4)

	supreme, err := Get(configuration.BoardTBeamSupreme)
	assert.NoError(t, err)
	assert.Equal(t, 7, supreme.FanCtrlPin)
	assert.Equal(t, -1, supreme.ThermistorPin)

	_, err = Get("unknown")
	assert.Error(t, err)
}

func TestAll_Sorted(t *testing.T) {
	// GIVEN
	err := LoadProfiles(&configuration.Configuration{})
	assert.NoError(t, err)

	// WHEN
	result := All()

	// THEN
	var names []string
	for _, p := range result {
		names = append(names, p.Name)
	}
	assert.Equal(t, []string{
		configuration.BoardTBeam1W,
		configuration.BoardTBeamSupreme,
		configuration.BoardTBeamSX1262,
		configuration.BoardTBeamSX1276,
	}, names)
}
