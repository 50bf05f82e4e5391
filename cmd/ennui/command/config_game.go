package command

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pmengelbert/ennui/internal/combat"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
	"github.com/pmengelbert/ennui/internal/npc"
)

// CombatConfig tunes fight pacing.
type CombatConfig struct {
	Delay  string `json:"delay" env:"DELAY"`
	Damage int64  `json:"damage" env:"DAMAGE"`
}

func (c *CombatConfig) validate() error {
	el := errors.NewErrorList()

	_, err := parseOptionalDuration("combat delay", c.Delay)
	el.Add(err)
	if c.Damage < 0 {
		el.Add(fmt.Errorf("combat damage must not be negative"))
	}

	return el.Err()
}

func (c *CombatConfig) BuildManager(world *game.WorldState, sender messaging.Sender) (*combat.Manager, error) {
	var opts []combat.ManagerOpt
	d, err := parseOptionalDuration("combat delay", c.Delay)
	if err != nil {
		return nil, err
	}
	if d > 0 {
		opts = append(opts, combat.WithDelay(d))
	}
	if c.Damage > 0 {
		opts = append(opts, combat.WithDamage(c.Damage))
	}
	return combat.NewManager(world, sender, opts...), nil
}

// NpcConfig tunes how often NPCs act.
type NpcConfig struct {
	Interval string `json:"interval" env:"INTERVAL"`
	Jitter   string `json:"jitter" env:"JITTER"`
}

func (c *NpcConfig) validate() error {
	el := errors.NewErrorList()

	_, err := parseOptionalDuration("npc interval", c.Interval)
	el.Add(err)
	_, err = parseOptionalDuration("npc jitter", c.Jitter)
	el.Add(err)

	return el.Err()
}

func (c *NpcConfig) BuildManager(world *game.WorldState, exec npc.Executor, sender messaging.Sender, specs []*npc.Spec) (*npc.Manager, error) {
	opts := []npc.ManagerOpt{npc.WithSpecs(specs...)}

	interval, err := parseOptionalDuration("npc interval", c.Interval)
	if err != nil {
		return nil, err
	}
	if interval > 0 {
		opts = append(opts, npc.WithInterval(interval))
	}

	jitter, err := parseOptionalDuration("npc jitter", c.Jitter)
	if err != nil {
		return nil, err
	}
	if jitter > 0 {
		opts = append(opts, npc.WithJitter(jitter))
	}

	return npc.NewManager(world, exec, sender, opts...), nil
}

// DisplayConfig controls how text is laid out for players.
type DisplayConfig struct {
	Width  int    `json:"width" env:"WIDTH"`
	Prompt string `json:"prompt" env:"PROMPT"`
}

func (c *DisplayConfig) validate() error {
	el := errors.NewErrorList()

	if c.Width < 0 {
		el.Add(fmt.Errorf("display width must not be negative"))
	}
	if _, err := display.NewPrompt(c.Prompt); err != nil {
		el.Add(fmt.Errorf("display prompt: %w", err))
	}

	return el.Err()
}

func (c *DisplayConfig) broadcasterOpts() []messaging.BroadcasterOpt {
	if c.Width > 0 {
		return []messaging.BroadcasterOpt{messaging.WithWidth(c.Width)}
	}
	return nil
}
