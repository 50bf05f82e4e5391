package commands

import (
	"context"
	"errors"
	"log/slog"
	"math/rand/v2"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/help"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// Fighter starts fights. It is called with the world lock held, through tx.
type Fighter interface {
	Fight(tx *game.Tx, aggressor, defender uuid.UUID) error
}

// HelpLookup finds help entries by keyword.
type HelpLookup interface {
	Lookup(ctx context.Context, keyword string) (help.Entry, error)
}

// apology is what the actor hears when a handler fails unexpectedly.
const apology = "something went wrong. please try that again."

// Handler owns the verb table and runs commands against the world.
type Handler struct {
	world    *game.WorldState
	commands []Command
	unknown  Command

	sender  messaging.Sender
	fighter Fighter
	help    HelpLookup
	pick    func(n int) int
}

type HandlerOpt func(*Handler)

// WithSender sets where secondary events, such as arrivals, are queued.
func WithSender(s messaging.Sender) HandlerOpt {
	return func(h *Handler) {
		h.sender = s
	}
}

// WithFighter enables the hit command.
func WithFighter(f Fighter) HandlerOpt {
	return func(h *Handler) {
		h.fighter = f
	}
}

// WithHelp enables the help command.
func WithHelp(l HelpLookup) HandlerOpt {
	return func(h *Handler) {
		h.help = l
	}
}

// withPick replaces the random source used by the catch-all.
func withPick(pick func(n int) int) HandlerOpt {
	return func(h *Handler) {
		h.pick = pick
	}
}

func NewHandler(world *game.WorldState, opts ...HandlerOpt) *Handler {
	h := &Handler{
		world: world,
		pick:  rand.IntN,
	}
	for _, opt := range opts {
		opt(h)
	}

	h.unknown = Command{Name: "", Run: h.doUnknown}
	h.register()
	return h
}

// register builds the verb table. Movement outranks everything so that a
// single letter always walks.
func (h *Handler) register() {
	for _, d := range game.CardinalDirections {
		h.commands = append(h.commands, Command{Name: string(d), Priority: 10, Run: mover(d)})
	}
	h.commands = append(h.commands,
		Command{Name: string(game.Up), Priority: 5, Run: mover(game.Up)},
		Command{Name: string(game.Down), Priority: 5, Run: mover(game.Down)},
		Command{Name: "look", Priority: 5, Run: doLook},
		Command{Name: "inventory", Priority: 5, Run: doInventory},
		Command{Name: "take", Run: doTake},
		Command{Name: "get", Run: doTake},
		Command{Name: "drop", Run: doDrop},
		Command{Name: "put", Run: doPut},
		Command{Name: "give", Run: doGive},
		Command{Name: "wear", Run: doWear},
		Command{Name: "remove", Run: doRemove},
		Command{Name: "evaluate", Run: doEvaluate},
		Command{Name: "say", Run: doSay},
		Command{Name: "chat", Run: doChat},
		Command{Name: "open", Run: closer(game.DoorOpen)},
		Command{Name: "close", Run: closer(game.DoorClosed)},
		Command{Name: "lock", Run: closer(game.DoorLocked)},
		Command{Name: "unlock", Run: unlocker},
		Command{Name: "hit", Run: h.doHit},
		Command{Name: "help", Priority: 1, Detached: h.doHelp},
		Command{Name: "ouch", Run: doOuch},
		Command{Name: "loc", Run: doLoc},
		Command{Name: "who", Run: doWho},
		Command{Name: "quit", Run: doQuit},
	)
}

// Commands returns the names in the verb table.
func (h *Handler) Commands() []string {
	names := make([]string, 0, len(h.commands))
	for _, c := range h.commands {
		names = append(names, c.Name)
	}
	return names
}

// resolve picks the command a verb refers to. An exact name wins, then a
// sole prefix match, then the highest priority prefix match if no other
// shares it. Anything else falls to the catch-all.
func (h *Handler) resolve(verb string) *Command {
	verb = game.Fold(verb)
	if verb == "" {
		return &h.unknown
	}

	var candidates []*Command
	for i := range h.commands {
		c := &h.commands[i]
		if c.Name == verb {
			return c
		}
		if strings.HasPrefix(c.Name, verb) {
			candidates = append(candidates, c)
		}
	}

	switch len(candidates) {
	case 0:
		return &h.unknown
	case 1:
		return candidates[0]
	}

	slices.SortStableFunc(candidates, func(a, b *Command) int {
		return b.Priority - a.Priority
	})
	if candidates[0].Priority > candidates[1].Priority {
		return candidates[0]
	}
	return &h.unknown
}

// Exec runs one line of input for the player with the given id. The whole
// command runs under the world lock, so the returned message describes one
// consistent snapshot. Detached commands run after the lock is released.
// User errors and unexpected failures come back as a message for the actor;
// only ErrQuit is returned as an error.
func (h *Handler) Exec(ctx context.Context, id uuid.UUID, line string) (messaging.Audience, messaging.Message, error) {
	fields := strings.Fields(line)
	var verb string
	var args []string
	if len(fields) > 0 {
		verb, args = fields[0], fields[1:]
	}
	cmd := h.resolve(verb)

	var audience messaging.Audience
	var msg messaging.Message
	var cmdCtx *CommandContext
	err := h.world.Do(func(tx *game.Tx) error {
		actor, ok := tx.Player(id)
		if !ok {
			return game.ErrPlayerNotFound
		}
		if cmd.Detached != nil {
			return nil
		}
		cmdCtx = &CommandContext{Tx: tx, Actor: actor, Args: args}
		var err error
		audience, msg, err = cmd.Run(ctx, cmdCtx)
		return err
	})
	if err == nil && cmd.Detached != nil {
		var text string
		text, err = cmd.Detached(ctx, args)
		audience, msg = messaging.ToSelf(id), messaging.Message{Self: text}
	} else if err == nil {
		for _, e := range cmdCtx.events {
			h.send(ctx, e)
		}
	}

	var userErr *UserError
	switch {
	case err == nil:
		return audience, msg, nil
	case errors.Is(err, ErrQuit):
		return messaging.ToSelf(id), messaging.Message{}, ErrQuit
	case errors.As(err, &userErr):
		return messaging.ToSelf(id), messaging.Message{Self: userErr.Message}, nil
	default:
		slog.ErrorContext(ctx, "executing command", "player", id, "input", line, "error", err)
		return messaging.ToSelf(id), messaging.Message{Self: apology}, nil
	}
}

// send queues a secondary event. Failures are logged since the command that
// caused the event has already happened.
func (h *Handler) send(ctx context.Context, e messaging.Envelope) {
	if h.sender == nil {
		return
	}
	if err := h.sender.Send(e); err != nil {
		slog.WarnContext(ctx, "queueing event", "error", err)
	}
}
