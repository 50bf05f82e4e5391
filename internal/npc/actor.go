package npc

import (
	"context"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// Executor runs a line of input on behalf of a player.
type Executor interface {
	Exec(ctx context.Context, id uuid.UUID, line string) (messaging.Audience, messaging.Message, error)
}

// actor drives one NPC. It wakes on a jittered interval, checks whether its
// player is still in the world, and issues one command.
type actor struct {
	id       uuid.UUID
	name     string
	behavior Behavior
	phrases  []string
	done     <-chan struct{}

	exec     Executor
	sender   messaging.Sender
	interval time.Duration
	jitter   time.Duration
}

func (a *actor) wait() time.Duration {
	if a.jitter <= 0 {
		return a.interval
	}
	return a.interval + rand.N(a.jitter)
}

// line picks the next command, or "" when there is nothing to do.
func (a *actor) line() string {
	switch a.behavior {
	case Talker:
		if len(a.phrases) == 0 {
			return ""
		}
		return "say " + a.phrases[rand.IntN(len(a.phrases))]
	case Walker:
		return string(game.CardinalDirections[rand.IntN(len(game.CardinalDirections))])
	}
	return ""
}

func (a *actor) run(ctx context.Context) {
	timer := time.NewTimer(a.wait())
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-timer.C:
		}

		select {
		case <-a.done:
			slog.DebugContext(ctx, "npc left the world", "npc", a.name)
			return
		default:
		}

		if line := a.line(); line != "" {
			audience, msg, err := a.exec.Exec(ctx, a.id, line)
			if err != nil {
				slog.WarnContext(ctx, "npc command failed", "npc", a.name, "input", line, "error", err)
			} else if err := a.sender.Send(messaging.Envelope{Audience: audience, Message: msg}); err != nil {
				slog.WarnContext(ctx, "sending npc event", "npc", a.name, "error", err)
			}
		}

		timer.Reset(a.wait())
	}
}
