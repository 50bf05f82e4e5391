package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// mover returns the handler for walking in direction d. The old room hears
// the exit with the command's result; the new room hears the arrival as a
// secondary event.
func mover(d game.Direction) CommandFunc {
	return func(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
		id := cmdCtx.Actor.Id

		from, to, err := cmdCtx.Tx.Move(id, d)
		if err != nil {
			if msg, ok := moveRefusal(err); ok {
				return cmdCtx.Self(msg)
			}
			return messaging.Audience{}, messaging.Message{}, err
		}

		cmdCtx.Emit(
			messaging.Audience{Others: to.PlayerIds(id)},
			messaging.Message{Others: fmt.Sprintf("%s enters the room", cmdCtx.Actor.Name)},
		)

		return messaging.Audience{Self: id, Others: from.PlayerIds(id)}, messaging.Message{
			Self:   fmt.Sprintf("you go %s\n\n%s", d, DescribeRoom(cmdCtx.Tx, to, id)),
			Others: fmt.Sprintf("%s exits %s", cmdCtx.Actor.Name, d),
		}, nil
	}
}

// moveRefusal explains why a move was stopped.
func moveRefusal(err error) (string, bool) {
	var blocked *game.BlockedError
	var doorErr *game.DoorError
	switch {
	case errors.As(err, &blocked):
		return fmt.Sprintf("%s blocks your way", display.Article(blocked.Guard.Name)), true
	case errors.As(err, &doorErr):
		switch doorErr.State {
		case game.DoorMagicallySealed:
			return "a door blocks your way. it's sealed with a mysterious force", true
		case game.DoorPermaLocked:
			return "a door blocks your way. it's not going to budge, and there's no keyhole", true
		default:
			return "a door blocks your way", true
		}
	case errors.Is(err, game.ErrNoExit):
		return "alas! you cannot go that way...", true
	}
	return "", false
}
