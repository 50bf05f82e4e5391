package commands

import (
	"context"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// CommandContext is everything a handler sees while the world lock is held.
type CommandContext struct {
	Tx    *game.Tx
	Actor *game.Player
	Args  []string

	events []messaging.Envelope
}

// Emit records a secondary event, such as an arrival in another room. It is
// sent once the world lock is released.
func (c *CommandContext) Emit(a messaging.Audience, m messaging.Message) {
	c.events = append(c.events, messaging.Envelope{Audience: a, Message: m})
}

// Room returns the room the actor is standing in.
func (c *CommandContext) Room() (*game.Room, error) {
	return c.Tx.RoomOf(c.Actor.Id)
}

// RoomAudience addresses the actor and everyone else in the actor's room.
func (c *CommandContext) RoomAudience() (messaging.Audience, error) {
	r, err := c.Room()
	if err != nil {
		return messaging.Audience{}, err
	}
	return messaging.Audience{Self: c.Actor.Id, Others: r.PlayerIds(c.Actor.Id)}, nil
}

// Self is a shorthand for a message only the actor hears.
func (c *CommandContext) Self(msg string) (messaging.Audience, messaging.Message, error) {
	return messaging.ToSelf(c.Actor.Id), messaging.Message{Self: msg}, nil
}

// CommandFunc is the signature every verb handler implements. Handlers change
// the world through the Tx and describe what happened; they never write to a
// connection.
type CommandFunc func(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error)

// DetachedFunc is a handler that runs without the world lock, for commands
// that only read from outside the world. It answers the actor alone.
type DetachedFunc func(ctx context.Context, args []string) (string, error)

// Command is one entry in the verb table. Exactly one of Run and Detached is
// set.
type Command struct {
	Name     string
	Priority int
	Run      CommandFunc
	Detached DetachedFunc
}

// everyone returns every player id except the actor.
func everyone(c *CommandContext) []uuid.UUID {
	var ids []uuid.UUID
	for _, p := range c.Tx.Players() {
		if p.Id != c.Actor.Id {
			ids = append(ids, p.Id)
		}
	}
	return ids
}
