package configuration

type HalConfig struct {
	Adc  AdcConfig  `json:"adc"`
	Gpio GpioConfig `json:"gpio"`
	// ClockOffset is added to the millisecond counter, a value close to
	// 4294967295 lets the counter wrap around shortly after start
	ClockOffset uint32 `json:"clockOffset"`
}

type AdcConfig struct {
	File   *FileAdcConfig   `json:"file,omitempty"`
	Cmd    *CmdAdcConfig    `json:"cmd,omitempty"`
	Static *StaticAdcConfig `json:"static,omitempty"`
}

type FileAdcConfig struct {
	// Path template of the raw ADC value, %d is replaced with the channel,
	// f.ex. /sys/bus/iio/devices/iio:device0/in_voltage%d_raw
	Path string `json:"path"`
}

type CmdAdcConfig struct {
	Exec string   `json:"exec"`
	Args []string `json:"args"`
}

type StaticAdcConfig struct {
	Value int `json:"value"`
}

type GpioConfig struct {
	File   *FileGpioConfig   `json:"file,omitempty"`
	Cmd    *CmdGpioConfig    `json:"cmd,omitempty"`
	Memory *MemoryGpioConfig `json:"memory,omitempty"`
}

type FileGpioConfig struct {
	// ValuePath template, f.ex. /sys/class/gpio/gpio%d/value
	ValuePath string `json:"valuePath"`
	// DirectionPath template, f.ex. /sys/class/gpio/gpio%d/direction
	DirectionPath string `json:"directionPath"`
	// Atomic writes the value through a temporary file and rename
	Atomic bool `json:"atomic"`
}

type CmdGpioConfig struct {
	Exec string `json:"exec"`
	// Args may contain %d (pin) and %l (level, 0 or 1)
	Args []string `json:"args"`
}

type MemoryGpioConfig struct {
}
