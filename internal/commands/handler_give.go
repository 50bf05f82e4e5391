package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// doGive handles "give <item> [to] <recipient>" and "give <recipient> <item>".
// The recipient is another player in the room or a guard.
func doGive(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	args := stripWord(cmdCtx.Args, "to")
	switch len(args) {
	case 0, 1:
		return cmdCtx.Self("give what to whom?")
	case 2:
	default:
		return cmdCtx.Self("E - NUN - CI - ATE")
	}

	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}

	item, recipient := args[0], args[1]
	if !isRecipient(cmdCtx, r, recipient) && isRecipient(cmdCtx, r, item) {
		item, recipient = recipient, item
	}

	if other := cmdCtx.Tx.FindPlayerIn(r, recipient); other != nil && other.Id != cmdCtx.Actor.Id {
		return giveToPlayer(cmdCtx, other, item)
	}
	if guard := r.Items.Find(game.ParseGrabber(recipient)); guard != nil && guard.Kind == game.ItemGuard {
		return giveToGuard(cmdCtx, recipient, item)
	}
	return cmdCtx.Self("that person or thing isn't here")
}

func isRecipient(cmdCtx *CommandContext, r *game.Room, name string) bool {
	if p := cmdCtx.Tx.FindPlayerIn(r, name); p != nil && p.Id != cmdCtx.Actor.Id {
		return true
	}
	it := r.Items.Find(game.ParseGrabber(name))
	return it != nil && it.Kind == game.ItemGuard
}

func giveToPlayer(cmdCtx *CommandContext, other *game.Player, name string) (messaging.Audience, messaging.Message, error) {
	it, err := cmdCtx.Tx.Give(cmdCtx.Actor.Id, other.Id, game.ParseGrabber(name))
	switch {
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you're not holding %s", display.Article(name)))
	case errors.Is(err, game.ErrPlayerNotFound):
		return cmdCtx.Self("that person or thing isn't here")
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return messaging.Audience{Self: cmdCtx.Actor.Id, Others: []uuid.UUID{other.Id}}, messaging.Message{
		Self:   fmt.Sprintf("you give %s %s", other.Name, display.Article(it.Name)),
		Others: fmt.Sprintf("%s gives you %s", cmdCtx.Actor.Name, display.Article(it.Name)),
	}, nil
}

func giveToGuard(cmdCtx *CommandContext, guardName, keyName string) (messaging.Audience, messaging.Message, error) {
	guard, key, err := cmdCtx.Tx.GiveToGuard(cmdCtx.Actor.Id, game.ParseGrabber(guardName), game.ParseGrabber(keyName))
	var doorErr *game.DoorError
	switch {
	case err == nil:
		return cmdCtx.Self(fmt.Sprintf("you see %s relax a little bit. maybe now they'll let you through", display.Article(guard.Name)))
	case errors.Is(err, game.ErrItemNotFound):
		return cmdCtx.Self(fmt.Sprintf("you're not holding %s", display.Article(keyName)))
	case errors.Is(err, game.ErrNotKey), errors.As(err, &doorErr):
		return cmdCtx.Self(fmt.Sprintf("I don't think %s can accept %s", display.Article(guard.Name), display.Article(key.Name)))
	}
	return messaging.Audience{}, messaging.Message{}, err
}
