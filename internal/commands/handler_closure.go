package commands

import (
	"context"
	"errors"
	"fmt"

	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// closure describes one of open, close, lock and unlock.
type closure struct {
	verb   string
	past   string
	target game.DoorState
	// from restricts the action to doors in this state, when set.
	from *game.DoorState
}

var (
	lockedState = game.DoorLocked

	closures = map[game.DoorState]closure{
		game.DoorOpen:   {verb: "open", past: "opens", target: game.DoorOpen},
		game.DoorClosed: {verb: "close", past: "closes", target: game.DoorClosed},
		game.DoorLocked: {verb: "lock", past: "locks", target: game.DoorLocked},
	}
	unlocking = closure{verb: "unlock", past: "unlocks", target: game.DoorClosed, from: &lockedState}
)

// closer returns the handler moving a door to state to.
func closer(to game.DoorState) CommandFunc {
	c := closures[to]
	return c.run
}

func unlocker(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	return unlocking.run(ctx, cmdCtx)
}

func (c closure) run(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	if len(cmdCtx.Args) != 1 {
		return cmdCtx.Self(fmt.Sprintf("which way do you want to %s?", c.verb))
	}
	d, ok := game.ParseDirection(cmdCtx.Args[0])
	if !ok {
		return cmdCtx.Self(fmt.Sprintf("%q isn't a direction", cmdCtx.Args[0]))
	}

	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}
	door, ok := r.Door(d)
	if !ok {
		return cmdCtx.Self(fmt.Sprintf("there's no door %s", towards(d)))
	}
	if c.from != nil && door.State != *c.from && !door.State.Terminal() {
		return cmdCtx.Self(fmt.Sprintf("the %s isn't %s", door.Label(), *c.from))
	}

	_, err = cmdCtx.Tx.SetDoor(cmdCtx.Actor.Id, d, c.target)
	var doorErr *game.DoorError
	switch {
	case errors.As(err, &doorErr):
		return cmdCtx.Self(c.refusal(door, doorErr.State))
	case err != nil:
		return messaging.Audience{}, messaging.Message{}, err
	}

	return roomEvent(cmdCtx,
		fmt.Sprintf("you %s the %s %s", c.verb, door.Label(), towards(d)),
		fmt.Sprintf("%s %s the %s %s", cmdCtx.Actor.Name, c.past, door.Label(), towards(d)))
}

// refusal explains a rejected transition from state.
func (c closure) refusal(door *game.Door, state game.DoorState) string {
	switch {
	case state == game.DoorMagicallySealed:
		return fmt.Sprintf("the %s is sealed with a mysterious force", door.Label())
	case state == game.DoorPermaLocked:
		return fmt.Sprintf("the %s is not going to budge, and there's no keyhole", door.Label())
	case state == c.target:
		return fmt.Sprintf("it's already %s", state)
	case state == game.DoorOpen && c.target == game.DoorLocked:
		return fmt.Sprintf("you'll have to close the %s first", door.Label())
	case state == game.DoorLocked && c.target == game.DoorOpen:
		return fmt.Sprintf("the %s is locked", door.Label())
	default:
		return "you don't have the key"
	}
}

// towards phrases a direction for door messages.
func towards(d game.Direction) string {
	switch d {
	case game.Up, game.Down:
		return string(d)
	}
	return "to the " + string(d)
}
