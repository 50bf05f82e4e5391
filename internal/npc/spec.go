package npc

import (
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pmengelbert/ennui/internal/game"
)

// Behavior selects what an NPC does on its own.
type Behavior string

const (
	Static Behavior = "static"
	Talker Behavior = "talker"
	Walker Behavior = "walker"
)

func (b *Behavior) UnmarshalText(text []byte) error {
	switch v := Behavior(text); v {
	case Static, Talker, Walker:
		*b = v
		return nil
	case "":
		*b = Static
		return nil
	default:
		return fmt.Errorf("unknown npc behavior: %s", text)
	}
}

// Spec is an NPC definition loaded from an asset file.
type Spec struct {
	Name        string      `json:"name"`
	Handle      game.Handle `json:"handle,omitempty"`
	Description string      `json:"description,omitempty"`
	X           int64       `json:"x"`
	Y           int64       `json:"y"`
	AI          Behavior    `json:"ai,omitempty"`
	Phrases     []string    `json:"phrases,omitempty"`
}

// Validate satisfies storage.ValidatingSpec
func (s *Spec) Validate() error {
	el := errors.NewErrorList()
	if s.Name == "" {
		el.Add(fmt.Errorf("npc name is required"))
	}
	if s.AI == Talker && len(s.Phrases) == 0 {
		el.Add(fmt.Errorf("npc %q: talkers need at least one phrase", s.Name))
	}
	return el.Err()
}

// newPlayer builds the world player an NPC is embodied as. NPCs have no
// connection.
func (s *Spec) newPlayer() *game.Player {
	p := game.NewPlayer(s.Name, nil)
	if len(s.Handle) > 0 {
		p.Handle = s.Handle
	}
	p.Description = s.Description
	p.Location = game.Coord{X: s.X, Y: s.Y}
	return p
}
