package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// doPut handles "put <item> [in] <container>".
func doPut(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	args := stripWord(stripWord(cmdCtx.Args, "in"), "into")
	if len(args) != 2 {
		return cmdCtx.Self("put what in what?")
	}
	name, container := args[0], args[1]

	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}

	g := game.ParseGrabber(name)
	if cmdCtx.Actor.Inventory.Find(g) == nil {
		return cmdCtx.Self(fmt.Sprintf("you're not holding %s", display.Article(name)))
	}
	dst, ok := locate(cmdCtx, r, game.ParseGrabber(container))
	if !ok {
		return cmdCtx.Self(fmt.Sprintf("you don't see %s here", display.Article(container)))
	}
	_, holder, err := cmdCtx.Tx.Items(dst)
	if err != nil {
		return containerError(cmdCtx, holder, container, err)
	}

	it, err := cmdCtx.Tx.Transfer(game.InventoryOf(cmdCtx.Actor.Id), dst, g)
	switch {
	case errors.Is(err, game.ErrContainsItself):
		return cmdCtx.Self(fmt.Sprintf("you can't put the %s inside itself", holder.Name))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you put the %s in the %s", it.Name, holder.Name),
		fmt.Sprintf("%s puts %s in %s", cmdCtx.Actor.Name, display.Article(it.Name), display.Article(holder.Name)))
}
