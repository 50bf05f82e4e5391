package messaging

import (
	"context"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
)

// World is the part of the world state the broadcaster needs.
type World interface {
	Sinks(ids []uuid.UUID) map[uuid.UUID]io.Writer
	RemovePlayer(id uuid.UUID) (*game.Player, error)
}

// Result is the outcome of writing to one recipient.
type Result struct {
	Id  uuid.UUID
	Err error
}

// Failed returns the ids whose delivery failed.
func Failed(results []Result) []uuid.UUID {
	var ids []uuid.UUID
	for _, r := range results {
		if r.Err != nil {
			ids = append(ids, r.Id)
		}
	}
	return ids
}

// Broadcaster is the single point where game events reach connections.
type Broadcaster struct {
	world World
	width int
}

type BroadcasterOpt func(*Broadcaster)

// WithWidth sets the column width messages are wrapped to.
func WithWidth(width int) BroadcasterOpt {
	return func(b *Broadcaster) {
		b.width = width
	}
}

func NewBroadcaster(world World, opts ...BroadcasterOpt) *Broadcaster {
	b := &Broadcaster{
		world: world,
		width: display.DefaultWidth,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// Deliver writes m to everyone in a and reports a result per recipient that
// has a sink. Sinks are looked up under the world lock but written after it
// is released. A failed write does not stop delivery to the others.
func (b *Broadcaster) Deliver(a Audience, m Message) []Result {
	var ids []uuid.UUID
	if a.Self != uuid.Nil && m.Self != "" {
		ids = append(ids, a.Self)
	}
	if m.Others != "" {
		for _, id := range a.Others {
			if id != a.Self {
				ids = append(ids, id)
			}
		}
	}
	if len(ids) == 0 {
		return nil
	}

	sinks := b.world.Sinks(ids)
	results := make([]Result, 0, len(sinks))
	for _, id := range ids {
		sink, ok := sinks[id]
		if !ok {
			continue
		}
		text := m.Others
		if id == a.Self {
			text = m.Self
		}
		_, err := io.WriteString(sink, display.WrapWidth(text, b.width)+"\n")
		results = append(results, Result{Id: id, Err: err})
	}
	return results
}

// Broadcast delivers m and removes every recipient that could not be reached.
func (b *Broadcaster) Broadcast(ctx context.Context, a Audience, m Message) []Result {
	results := b.Deliver(a, m)
	b.Prune(ctx, results)
	return results
}

// Prune removes the players whose delivery failed.
func (b *Broadcaster) Prune(ctx context.Context, results []Result) {
	for _, r := range results {
		if r.Err == nil {
			continue
		}
		slog.WarnContext(ctx, "delivery failed, removing player", "player", r.Id, "error", r.Err)
		if _, err := b.world.RemovePlayer(r.Id); err != nil {
			slog.DebugContext(ctx, "removing unreachable player", "player", r.Id, "error", err)
		}
	}
}
