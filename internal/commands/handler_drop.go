package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

func doDrop(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	switch len(cmdCtx.Args) {
	case 0:
		return cmdCtx.Self("what do you want to drop?")
	case 1:
	default:
		return cmdCtx.Self("be more specific. or less specific.")
	}
	name := cmdCtx.Args[0]

	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}

	it, err := cmdCtx.Tx.Transfer(game.InventoryOf(cmdCtx.Actor.Id), game.FloorOf(r.Coord()), game.ParseGrabber(name))
	switch {
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you're not holding %s", display.Article(name)))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you drop the %s", it.Name),
		fmt.Sprintf("%s drops %s", cmdCtx.Actor.Name, display.Article(it.Name)))
}
