package combat

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

type recordingSender struct {
	mu        sync.Mutex
	envelopes []messaging.Envelope
}

func (s *recordingSender) Send(e messaging.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.envelopes = append(s.envelopes, e)
	return nil
}

func (s *recordingSender) all() []messaging.Envelope {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]messaging.Envelope(nil), s.envelopes...)
}

func newTestWorld(t *testing.T) (*game.WorldState, *game.Player, *game.Player) {
	t.Helper()
	world, err := game.NewWorldState([]*game.Room{
		{X: 0, Y: 0, Name: "square"},
		{X: 0, Y: 1, Name: "alley"},
	})
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	alice := game.NewPlayer("Alice", nil)
	bob := game.NewPlayer("Bob", nil)
	for _, p := range []*game.Player{alice, bob} {
		if err := world.AddPlayer(p); err != nil {
			t.Fatalf("adding %s: %v", p.Name, err)
		}
	}
	return world, alice, bob
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestFight_exchange(t *testing.T) {
	tests := map[string]struct {
		setup       func(tx *game.Tx, a, b *game.Player)
		expCont     bool
		expMessages int
		expRemoved  bool
		expBobHit   int64
	}{
		"same room lands a blow": {
			expCont:     true,
			expMessages: 1,
			expBobHit:   75,
		},
		"different rooms ends the fight": {
			setup: func(tx *game.Tx, a, b *game.Player) {
				_ = tx.Relocate(b.Id, game.Coord{X: 0, Y: 1})
			},
			expBobHit: 100,
		},
		"victim already gone ends the fight": {
			setup: func(tx *game.Tx, a, b *game.Player) {
				_, _ = tx.RemovePlayer(b.Id)
			},
			expBobHit: 100,
		},
		"killing blow asks for removal": {
			setup: func(tx *game.Tx, a, b *game.Player) {
				b.Hurt(80)
			},
			expMessages: 2,
			expRemoved:  true,
			expBobHit:   0,
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			world, alice, bob := newTestWorld(t)
			if tt.setup != nil {
				_ = world.Do(func(tx *game.Tx) error {
					tt.setup(tx, alice, bob)
					return nil
				})
			}

			sender := &recordingSender{}
			f := newFight(world, sender, alice.Id, bob.Id, time.Hour, DefaultDamage)

			cont := f.exchange(context.Background(), alice.Id, bob.Id)
			testutil.AssertEqual(t, "continues", cont, tt.expCont)
			testutil.AssertEqual(t, "messages", len(sender.all()), tt.expMessages)
			testutil.AssertEqual(t, "bob hit", bob.Meters[game.MeterHit].Current, tt.expBobHit)

			if !tt.expCont {
				testutil.AssertEqual(t, "status", f.Status(), Ended)
			}

			removed := false
			for _, e := range sender.all() {
				for _, id := range e.Remove {
					if id == bob.Id {
						removed = true
					}
				}
			}
			testutil.AssertEqual(t, "removal requested", removed, tt.expRemoved)
		})
	}
}

func TestFight_messages(t *testing.T) {
	world, alice, bob := newTestWorld(t)
	sender := &recordingSender{}
	f := newFight(world, sender, alice.Id, bob.Id, time.Hour, DefaultDamage)

	f.exchange(context.Background(), alice.Id, bob.Id)

	envs := sender.all()
	if len(envs) != 1 {
		t.Fatalf("expected 1 envelope, got %d", len(envs))
	}
	testutil.AssertEqual(t, "self", envs[0].Audience.Self, alice.Id)
	testutil.AssertEqual(t, "others", fmt.Sprint(envs[0].Audience.Others), fmt.Sprint([]uuid.UUID{bob.Id}))
	testutil.AssertEqual(t, "self message", envs[0].Message.Self, "\x1b[33myou hit Bob\x1b[0m")
	testutil.AssertEqual(t, "other message", envs[0].Message.Others, "\x1b[31mAlice hits you\x1b[0m")
}

func TestManager_Fight(t *testing.T) {
	world, alice, bob := newTestWorld(t)
	sender := &recordingSender{}
	m := NewManager(world, sender, WithDelay(time.Hour))

	err := world.Do(func(tx *game.Tx) error {
		return m.Fight(tx, alice.Id, bob.Id)
	})
	if err != nil {
		t.Fatalf("starting fight: %v", err)
	}

	err = world.Do(func(tx *game.Tx) error {
		return m.Fight(tx, bob.Id, alice.Id)
	})
	testutil.AssertErrorContains(t, err, "already fighting")
	testutil.AssertEqual(t, "active", m.Active(), 1)
	testutil.AssertEqual(t, "alice fighting", m.Fighting(alice.Id), true)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := m.Start(ctx); err != nil {
		t.Fatalf("stopping manager: %v", err)
	}

	testutil.AssertEqual(t, "active", m.Active(), 0)
	_ = world.Do(func(tx *game.Tx) error {
		testutil.AssertEqual(t, "alice in combat", alice.InCombat, false)
		testutil.AssertEqual(t, "bob in combat", bob.InCombat, false)
		return nil
	})
}

func TestManager_FightToTheDeath(t *testing.T) {
	world, alice, bob := newTestWorld(t)
	sender := &recordingSender{}
	m := NewManager(world, sender, WithDelay(time.Millisecond), WithDamage(50))

	err := world.Do(func(tx *game.Tx) error {
		return m.Fight(tx, alice.Id, bob.Id)
	})
	if err != nil {
		t.Fatalf("starting fight: %v", err)
	}

	waitFor(t, func() bool { return m.Active() == 0 })

	envs := sender.all()
	last := envs[len(envs)-1]
	testutil.AssertEqual(t, "exchanges", len(envs), 4)
	testutil.AssertEqual(t, "removed", fmt.Sprint(last.Remove), fmt.Sprint([]uuid.UUID{bob.Id}))
	testutil.AssertEqual(t, "alice hit", alice.Meters[game.MeterHit].Current, int64(50))
}
