package command

import (
	"github.com/pixil98/go-errors"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// NatsConfig controls the embedded NATS server. When enabled, secondary
// events travel over it instead of straight into the delivery queue.
type NatsConfig struct {
	Enabled      bool   `json:"enabled" env:"ENABLED"`
	Host         string `json:"host" env:"HOST"`
	Port         int    `json:"port" env:"PORT"`
	StartTimeout string `json:"start_timeout" env:"START_TIMEOUT"`
}

func (n *NatsConfig) validate() error {
	el := errors.NewErrorList()

	_, err := parseOptionalDuration("start_timeout", n.StartTimeout)
	el.Add(err)

	return el.Err()
}

func (n *NatsConfig) buildNatsServer() (*messaging.NatsServer, error) {
	var opts []messaging.NatsServerOpt
	d, err := parseOptionalDuration("start_timeout", n.StartTimeout)
	if err != nil {
		return nil, err
	}
	if d > 0 {
		opts = append(opts, messaging.WithStartTimeout(d))
	}
	if n.Host != "" {
		opts = append(opts, messaging.WithHost(n.Host))
	}
	if n.Port != 0 {
		opts = append(opts, messaging.WithPort(n.Port))
	}

	return messaging.NewNatsServer(opts...)
}
