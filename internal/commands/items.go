package commands

import (
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// locate finds a container the actor can reach, checking what the actor
// carries before the room floor.
func locate(cmdCtx *CommandContext, r *game.Room, g game.Grabber) (game.Holder, bool) {
	if cmdCtx.Actor.Inventory.Find(g) != nil {
		return game.Inside(game.InventoryOf(cmdCtx.Actor.Id), g), true
	}
	if r.Items.Find(g) != nil {
		return game.Inside(game.FloorOf(r.Coord()), g), true
	}
	return game.Holder{}, false
}

// containerError turns a failure to open up a container into something the
// actor can read.
func containerError(cmdCtx *CommandContext, it *game.Item, name string, err error) (messaging.Audience, messaging.Message, error) {
	label := display.Article(name)
	if it != nil {
		label = "the " + it.Name
	}
	switch {
	case errors.Is(err, game.ErrNotContainer):
		return cmdCtx.Self(fmt.Sprintf("%s can't hold anything", label))
	case errors.Is(err, game.ErrGuarded):
		return cmdCtx.Self(fmt.Sprintf("%s won't let you near anything it has", label))
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you don't see %s here", display.Article(name)))
	}
	return messaging.Audience{}, messaging.Message{}, err
}

// roomEvent addresses the actor and the rest of the room.
func roomEvent(cmdCtx *CommandContext, self, others string) (messaging.Audience, messaging.Message, error) {
	a, err := cmdCtx.RoomAudience()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}
	return a, messaging.Message{Self: self, Others: others}, nil
}

// stripWord drops every occurrence of a filler word such as "from" or "to".
func stripWord(args []string, word string) []string {
	out := make([]string, 0, len(args))
	for _, a := range args {
		if a != word {
			out = append(out, a)
		}
	}
	return out
}
