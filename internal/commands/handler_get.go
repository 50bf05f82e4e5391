package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// doTake handles "take <item>", "take <item> <container>" and
// "take <item> from <container>".
func doTake(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	args := stripWord(cmdCtx.Args, "from")
	switch len(args) {
	case 0:
		return cmdCtx.Self("what do you want to take?")
	case 1:
		return takeFromFloor(cmdCtx, args[0])
	case 2:
		return takeFromContainer(cmdCtx, args[0], args[1])
	default:
		return cmdCtx.Self("be more specific. or less specific.")
	}
}

func takeFromFloor(cmdCtx *CommandContext, name string) (messaging.Audience, messaging.Message, error) {
	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}

	it, err := cmdCtx.Tx.Transfer(game.FloorOf(r.Coord()), game.InventoryOf(cmdCtx.Actor.Id), game.ParseGrabber(name), game.RejectScenery)
	switch {
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you don't see %s here", display.Article(name)))
	case errors.Is(err, game.ErrTooHeavy):
		return cmdCtx.Self(fmt.Sprintf("whoa there big guy. the %s isn't going anywhere", r.Items.Find(game.ParseGrabber(name)).Name))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you take the %s", it.Name),
		fmt.Sprintf("%s takes %s", cmdCtx.Actor.Name, display.Article(it.Name)))
}

func takeFromContainer(cmdCtx *CommandContext, name, container string) (messaging.Audience, messaging.Message, error) {
	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}

	cg := game.ParseGrabber(container)
	src, ok := locate(cmdCtx, r, cg)
	if !ok {
		return cmdCtx.Self(fmt.Sprintf("you don't see %s here", display.Article(container)))
	}
	list, holder, err := cmdCtx.Tx.Items(src)
	if err != nil {
		return containerError(cmdCtx, holder, container, err)
	}
	if list.Find(game.ParseGrabber(name)) == nil {
		return cmdCtx.Self(fmt.Sprintf("there's no %s in the %s", name, holder.Name))
	}

	it, err := cmdCtx.Tx.Transfer(src, game.InventoryOf(cmdCtx.Actor.Id), game.ParseGrabber(name), game.RejectScenery)
	switch {
	case errors.Is(err, game.ErrTooHeavy):
		return cmdCtx.Self(fmt.Sprintf("whoa there big guy. the %s isn't going anywhere", name))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you take the %s from the %s", it.Name, holder.Name),
		fmt.Sprintf("%s takes %s from %s", cmdCtx.Actor.Name, display.Article(it.Name), display.Article(holder.Name)))
}
