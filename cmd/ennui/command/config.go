package command

import (
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/pixil98/go-errors"
)

// EnvPrefix is prepended to every environment override.
const EnvPrefix = "ENNUI_"

type Config struct {
	TickInterval string           `json:"tick_interval" env:"TICK_INTERVAL"`
	Listeners    []ListenerConfig `json:"listeners"`
	Nats         NatsConfig       `json:"nats" envPrefix:"NATS_"`
	World        WorldConfig      `json:"world" envPrefix:"WORLD_"`
	Help         HelpConfig       `json:"help" envPrefix:"HELP_"`
	Combat       CombatConfig     `json:"combat" envPrefix:"COMBAT_"`
	Npc          NpcConfig        `json:"npc" envPrefix:"NPC_"`
	Display      DisplayConfig    `json:"display" envPrefix:"DISPLAY_"`
	Console      ConsoleConfig    `json:"console" envPrefix:"CONSOLE_"`
}

func (c *Config) Validate() error {
	el := errors.NewErrorList()

	d, err := time.ParseDuration(c.TickInterval)
	if err != nil {
		el.Add(fmt.Errorf("parsing tick_interval: %w", err))
	} else if d < time.Second {
		el.Add(fmt.Errorf("tick_interval must be at least 1 second"))
	}

	if len(c.Listeners) == 0 {
		el.Add(fmt.Errorf("at least one listener is required"))
	}
	for i, l := range c.Listeners {
		err := l.validate()
		if err != nil {
			el.Add(fmt.Errorf("listener %d: %w", i, err))
		}
	}

	el.Add(c.Nats.validate())
	el.Add(c.World.validate())
	el.Add(c.Help.validate())
	el.Add(c.Combat.validate())
	el.Add(c.Npc.validate())
	el.Add(c.Display.validate())
	el.Add(c.Console.validate())

	return el.Err()
}

// applyEnv overrides file settings with ENNUI_* environment variables.
func (c *Config) applyEnv() error {
	err := env.ParseWithOptions(c, env.Options{Prefix: EnvPrefix})
	if err != nil {
		return fmt.Errorf("parsing environment: %w", err)
	}
	return nil
}

// parseOptionalDuration parses s, returning zero for an empty string.
func parseOptionalDuration(name, s string) (time.Duration, error) {
	if s == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil {
		return 0, fmt.Errorf("parsing %s: %w", name, err)
	}
	if d < 0 {
		return 0, fmt.Errorf("%s must not be negative", name)
	}
	return d, nil
}
