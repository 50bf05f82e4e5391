package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

func doRemove(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	switch len(cmdCtx.Args) {
	case 0:
		return cmdCtx.Self("what do you want to take off?")
	case 1:
	default:
		return cmdCtx.Self("be more specific. or less specific.")
	}
	name := cmdCtx.Args[0]
	id := cmdCtx.Actor.Id

	it, err := cmdCtx.Tx.Transfer(game.ClothingOf(id), game.InventoryOf(id), game.ParseGrabber(name))
	switch {
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you're not wearing %s", display.Article(name)))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you take off the %s", it.Name),
		fmt.Sprintf("%s takes off %s", cmdCtx.Actor.Name, display.Article(it.Name)))
}
