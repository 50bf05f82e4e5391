package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

func doWear(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	switch len(cmdCtx.Args) {
	case 0:
		return cmdCtx.Self("what do you want to wear?")
	case 1:
	default:
		return cmdCtx.Self("be more specific. or less specific.")
	}
	name := cmdCtx.Args[0]
	id := cmdCtx.Actor.Id

	it, err := cmdCtx.Tx.Transfer(game.InventoryOf(id), game.ClothingOf(id), game.ParseGrabber(name), game.RequireClothing)
	switch {
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you're not holding %s", display.Article(name)))
	case errors.Is(err, game.ErrNotClothing):
		return cmdCtx.Self(fmt.Sprintf("you can't wear %s", display.Article(name)))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you wear the %s", it.Name),
		fmt.Sprintf("%s wears %s", cmdCtx.Actor.Name, display.Article(it.Name)))
}
