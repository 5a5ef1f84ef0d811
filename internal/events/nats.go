// Package events receives transmit lifecycle events from the radio driver.
package events

import (
	"context"
	"time"

	"github.com/nats-io/go-nats"
	"github.com/tbeam-mesh/pacool/internal/bridge"
	"github.com/tbeam-mesh/pacool/internal/configuration"
	"github.com/tbeam-mesh/pacool/internal/ui"
)

const (
	beginSuffix = ".begin"
	endSuffix   = ".end"

	connectRetryWait = 5 * time.Second
	clientName       = "pacool"
)

// NatsSource forwards messages on <subject>.begin and <subject>.end to a
// TransmitListener. The payload is ignored.
type NatsSource struct {
	config   configuration.NatsRadioConfig
	listener bridge.TransmitListener

	retryWait time.Duration
	dial      func(ctx context.Context) (natsConn, error)
}

// natsConn is the part of *nats.Conn the source uses
type natsConn interface {
	Subscribe(subject string, handler nats.MsgHandler) (*nats.Subscription, error)
	Flush() error
	Close()
}

func NewNatsSource(config configuration.NatsRadioConfig, listener bridge.TransmitListener) *NatsSource {
	s := &NatsSource{
		config:    config,
		listener:  listener,
		retryWait: connectRetryWait,
	}
	s.dial = func(ctx context.Context) (natsConn, error) {
		conn, err := s.connect(ctx)
		if err != nil {
			return nil, err
		}
		return conn, nil
	}
	return s
}

func (s *NatsSource) BeginSubject() string {
	return s.config.Subject + beginSuffix
}

func (s *NatsSource) EndSubject() string {
	return s.config.Subject + endSuffix
}

// Run connects to the server and stays subscribed until ctx is done. Errors
// are logged and retried, Run only returns once ctx is done.
func (s *NatsSource) Run(ctx context.Context) error {
	for {
		conn, err := s.dial(ctx)
		if err != nil {
			// only fails once ctx is done
			return nil
		}

		err = s.subscribe(conn)
		if err == nil {
			ui.Info("Listening for transmit events on %s and %s", s.BeginSubject(), s.EndSubject())
			<-ctx.Done()
			conn.Close()
			return nil
		}
		conn.Close()

		ui.Warning("Unable to subscribe to transmit events, retrying in %s: %v", s.retryWait, err)
		select {
		case <-ctx.Done():
			return nil
		case <-time.After(s.retryWait):
		}
	}
}

func (s *NatsSource) subscribe(conn natsConn) error {
	for _, subject := range []string{s.BeginSubject(), s.EndSubject()} {
		_, err := conn.Subscribe(subject, s.handle)
		if err != nil {
			return err
		}
	}
	return conn.Flush()
}

func (s *NatsSource) connect(ctx context.Context) (*nats.Conn, error) {
	for {
		conn, err := nats.Connect(s.config.Url,
			nats.Name(clientName),
			nats.MaxReconnects(-1),
			nats.DisconnectHandler(func(_ *nats.Conn) {
				ui.Warning("Lost connection to nats server %s", s.config.Url)
			}),
			nats.ReconnectHandler(func(c *nats.Conn) {
				ui.Info("Reconnected to nats server %s", c.ConnectedUrl())
			}),
		)
		if err == nil {
			return conn, nil
		}

		ui.Warning("Unable to connect to nats server %s, retrying in %s: %v", s.config.Url, s.retryWait, err)
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(s.retryWait):
		}
	}
}

func (s *NatsSource) handle(msg *nats.Msg) {
	switch msg.Subject {
	case s.BeginSubject():
		s.listener.OnTransmitBegin()
	case s.EndSubject():
		s.listener.OnTransmitEnd()
	default:
		ui.Debug("Ignoring message on unexpected subject %s", msg.Subject)
	}
}
