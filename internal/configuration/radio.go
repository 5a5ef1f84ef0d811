package configuration

const DefaultNatsSubject = "radio.tx"

type RadioConfig struct {
	Nats *NatsRadioConfig `json:"nats,omitempty"`
}

// NatsRadioConfig subscribes to "<Subject>.begin" and "<Subject>.end" to learn
// about transmissions of the radio driver.
type NatsRadioConfig struct {
	Url     string `json:"url"`
	Subject string `json:"subject"`
}
