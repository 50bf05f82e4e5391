package combat

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// Status is where a fight is in its life. Once Ended it never changes.
type Status int32

const (
	Ongoing Status = iota
	Ended
)

func (s Status) String() string {
	if s == Ended {
		return "ended"
	}
	return "ongoing"
}

// Fight is a running exchange of blows between two players. Each side hits
// once per round and rounds are separated by a fixed delay.
type Fight struct {
	world  *game.WorldState
	sender messaging.Sender
	delay  time.Duration
	damage int64

	Aggressor uuid.UUID
	Defender  uuid.UUID

	status atomic.Int32
	stop   chan struct{}
	once   sync.Once
}

func newFight(world *game.WorldState, sender messaging.Sender, aggressor, defender uuid.UUID, delay time.Duration, damage int64) *Fight {
	return &Fight{
		world:     world,
		sender:    sender,
		delay:     delay,
		damage:    damage,
		Aggressor: aggressor,
		Defender:  defender,
		stop:      make(chan struct{}),
	}
}

func (f *Fight) Status() Status {
	return Status(f.status.Load())
}

// End stops the fight. It is safe to call more than once and from any
// goroutine.
func (f *Fight) End() {
	f.once.Do(func() {
		f.status.Store(int32(Ended))
		close(f.stop)
	})
}

// run plays rounds until the fight ends or ctx is canceled.
func (f *Fight) run(ctx context.Context) {
	defer f.End()

	timer := time.NewTimer(f.delay)
	defer timer.Stop()

	for {
		if !f.exchange(ctx, f.Aggressor, f.Defender) {
			return
		}
		if !f.exchange(ctx, f.Defender, f.Aggressor) {
			return
		}

		timer.Reset(f.delay)
		select {
		case <-ctx.Done():
			return
		case <-f.stop:
			return
		case <-timer.C:
		}
	}
}

// exchange checks that the fight can go on and, if so, lands one blow. It
// reports whether the fight continues.
func (f *Fight) exchange(ctx context.Context, attacker, victim uuid.UUID) bool {
	if f.Status() == Ended {
		return false
	}

	var envelopes []messaging.Envelope
	var cont bool
	_ = f.world.Do(func(tx *game.Tx) error {
		a, ok := tx.Player(attacker)
		if !ok {
			return nil
		}
		v, ok := tx.Player(victim)
		if !ok {
			return nil
		}
		if !a.Alive() || !v.Alive() || a.Location != v.Location {
			return nil
		}

		left := v.Hurt(f.damage)
		audience := messaging.Audience{Self: attacker, Others: []uuid.UUID{victim}}
		envelopes = append(envelopes, messaging.Envelope{
			Audience: audience,
			Message: messaging.Message{
				Self:   display.Colorize(fmt.Sprintf("you hit %s", v.Name), display.Yellow),
				Others: display.Colorize(fmt.Sprintf("%s hits you", a.Name), display.Red),
			},
		})

		if left <= 0 {
			envelopes = append(envelopes, messaging.Envelope{
				Audience: audience,
				Message: messaging.Message{
					Self:   display.Colorize(fmt.Sprintf("you have killed %s!", v.Name), display.Yellow),
					Others: display.Colorize(fmt.Sprintf("you have been slain by %s", a.Name), display.Red),
				},
				Remove: []uuid.UUID{victim},
			})
			return nil
		}
		cont = true
		return nil
	})

	for _, e := range envelopes {
		if err := f.sender.Send(e); err != nil {
			slog.WarnContext(ctx, "sending fight message", "attacker", attacker, "victim", victim, "error", err)
		}
	}
	if !cont {
		f.End()
	}
	return cont
}
