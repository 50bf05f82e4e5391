package command

import (
	"github.com/pmengelbert/ennui/internal/console"
	"github.com/pmengelbert/ennui/internal/game"
)

// ConsoleConfig enables the operator console on the server's terminal.
type ConsoleConfig struct {
	Enabled bool   `json:"enabled" env:"ENABLED"`
	Refresh string `json:"refresh" env:"REFRESH"`
}

func (c *ConsoleConfig) validate() error {
	_, err := parseOptionalDuration("console refresh", c.Refresh)
	return err
}

func (c *ConsoleConfig) BuildConsole(world *game.WorldState) (*console.Console, error) {
	var opts []console.ConsoleOpt
	d, err := parseOptionalDuration("console refresh", c.Refresh)
	if err != nil {
		return nil, err
	}
	if d > 0 {
		opts = append(opts, console.WithRefresh(d))
	}
	return console.NewConsole(world, opts...), nil
}
