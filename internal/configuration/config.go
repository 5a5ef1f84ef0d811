package configuration

import (
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/mitchellh/mapstructure"
	"github.com/spf13/viper"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

type Configuration struct {
	DbPath          string        `json:"dbPath"`
	LedgerFlushRate time.Duration `json:"ledgerFlushRate"`

	// Board selects the board profile by name
	Board  string        `json:"board"`
	Boards []BoardConfig `json:"boards"`

	Thermal ThermalConfig `json:"thermal"`
	Fan     FanConfig     `json:"fan"`
	Hal     HalConfig     `json:"hal"`
	Radio   RadioConfig   `json:"radio"`

	Api        ApiConfig        `json:"api"`
	Statistics StatisticsConfig `json:"statistics"`
}

type ApiConfig struct {
	Enabled bool   `json:"enabled"`
	Host    string `json:"host"`
	Port    int    `json:"port"`
}

type StatisticsConfig struct {
	Enabled bool `json:"enabled"`
	Port    int  `json:"port"`
}

var CurrentConfig Configuration

// InitConfig reads in config file and ENV variables if set.
func InitConfig(cfgFile string) {
	viper.SetConfigName("pacool")

	if cfgFile != "" {
		// Use config file from the flag.
		viper.SetConfigFile(cfgFile)
	} else {
		// Find home directory.
		home, err := homedir.Dir()
		if err != nil {
			ui.Error("Couldn't detect home directory: %v", err)
			os.Exit(1)
		}

		viper.AddConfigPath(".")
		viper.AddConfigPath(home)
		viper.AddConfigPath("/etc/pacool/")
	}

	viper.SetEnvPrefix("PACOOL")
	viper.AutomaticEnv() // read in environment variables that match

	setDefaultValues()
}

func setDefaultValues() {
	viper.SetDefault("dbPath", "/var/lib/pacool/pacool.db")
	viper.SetDefault("ledgerFlushRate", 5*time.Minute)

	viper.SetDefault("board", BoardTBeam1W)
	viper.SetDefault("boards", []BoardConfig{})

	viper.SetDefault("thermal.seriesResistor", 10000.0)
	viper.SetDefault("thermal.nominalResistance", 10000.0)
	viper.SetDefault("thermal.nominalTemperature", 25.0)
	viper.SetDefault("thermal.bCoefficient", 3950.0)
	viper.SetDefault("thermal.adcMax", 4095)
	viper.SetDefault("thermal.referenceVoltage", 3.3)
	viper.SetDefault("thermal.high", 45.0)
	viper.SetDefault("thermal.low", 40.0)
	viper.SetDefault("thermal.runDuration", 30*time.Second)
	viper.SetDefault("thermal.validRange.min", -55.0)
	viper.SetDefault("thermal.validRange.max", 150.0)

	viper.SetDefault("fan.pollingRate", 2*time.Second)
	viper.SetDefault("fan.windowSize", 30)
	viper.SetDefault("fan.shutdownOn", true)
	viper.SetDefault("fan.resyncRate", 1*time.Minute)
	viper.SetDefault("fan.threshold.enabled", true)
	viper.SetDefault("fan.timed.enabled", true)
	viper.SetDefault("fan.timed.tickRate", 100*time.Millisecond)
	viper.SetDefault("fan.failSafe.faultLimit", 3)

	viper.SetDefault("api.enabled", false)
	viper.SetDefault("api.host", "localhost")
	viper.SetDefault("api.port", 9001)

	viper.SetDefault("statistics.enabled", false)
	viper.SetDefault("statistics.port", 9000)
}

// DetectConfigFile reads the config file found by viper and returns its path.
func DetectConfigFile() string {
	if err := viper.ReadInConfig(); err != nil {
		// config file is required, so we fail here
		ui.FatalWithoutStacktrace("Error reading config file, %s", err)
	}
	// this is only populated _after_ ReadInConfig()
	return viper.ConfigFileUsed()
}

func LoadConfig() {
	// load default configuration values
	err := viper.Unmarshal(&CurrentConfig, viper.DecodeHook(
		mapstructure.ComposeDecodeHookFunc(
			mapstructure.StringToTimeDurationHookFunc(),
			mapstructure.StringToSliceHookFunc(","),
			pinHookFunc(),
		),
	))
	if err != nil {
		ui.FatalWithoutStacktrace("unable to decode into struct, %v", err)
	}

	if nats := CurrentConfig.Radio.Nats; nats != nil && len(nats.Subject) <= 0 {
		nats.Subject = DefaultNatsSubject
	}
}
