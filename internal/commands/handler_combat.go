package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/combat"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// doHit starts a fight with another player in the same room.
func (h *Handler) doHit(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	if h.fighter == nil {
		return cmdCtx.Self("there's no fighting here")
	}
	if len(cmdCtx.Args) != 1 {
		return cmdCtx.Self("who do you want to hit?")
	}
	name := cmdCtx.Args[0]

	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}
	target := cmdCtx.Tx.FindPlayerIn(r, name)
	if target == nil {
		return cmdCtx.Self(fmt.Sprintf("you don't see %s here", name))
	}
	if target.Id == cmdCtx.Actor.Id {
		return cmdCtx.Self("try 'ouch' instead")
	}

	err = h.fighter.Fight(cmdCtx.Tx, cmdCtx.Actor.Id, target.Id)
	switch {
	case errors.Is(err, combat.ErrAlreadyFighting):
		return cmdCtx.Self(fmt.Sprintf("you're already fighting %s!", target.Name))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		display.Colorize(fmt.Sprintf("you attack %s!", target.Name), display.Yellow),
		fmt.Sprintf("%s attacks %s!", cmdCtx.Actor.Name, target.Name))
}
