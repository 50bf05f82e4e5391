package combat

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

const (
	DefaultDelay  = 2 * time.Second
	DefaultDamage = 25
)

// ErrAlreadyFighting is returned when two players already have a fight.
var ErrAlreadyFighting = errors.New("already fighting")

// pair identifies a fight regardless of who started it.
type pair [2]uuid.UUID

func pairOf(a, b uuid.UUID) pair {
	if a.String() > b.String() {
		a, b = b, a
	}
	return pair{a, b}
}

// Manager tracks active fights, allowing at most one per pair of players.
type Manager struct {
	world  *game.WorldState
	sender messaging.Sender
	delay  time.Duration
	damage int64

	mu     sync.Mutex
	fights map[pair]*Fight
	ctx    context.Context
	wg     sync.WaitGroup
}

type ManagerOpt func(*Manager)

// WithDelay sets the pause between rounds.
func WithDelay(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.delay = d
	}
}

// WithDamage sets how much each blow takes off the victim's hit meter.
func WithDamage(n int64) ManagerOpt {
	return func(m *Manager) {
		m.damage = n
	}
}

// NewManager creates a new combat Manager.
func NewManager(world *game.WorldState, sender messaging.Sender, opts ...ManagerOpt) *Manager {
	m := &Manager{
		world:  world,
		sender: sender,
		delay:  DefaultDelay,
		damage: DefaultDamage,
		fights: make(map[pair]*Fight),
		ctx:    context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Fight starts a fight between aggressor and defender. It must be called
// with the world lock held; tx marks both players as fighting.
func (m *Manager) Fight(tx *game.Tx, aggressor, defender uuid.UUID) error {
	a, ok := tx.Player(aggressor)
	if !ok {
		return game.ErrPlayerNotFound
	}
	d, ok := tx.Player(defender)
	if !ok {
		return game.ErrPlayerNotFound
	}

	key := pairOf(aggressor, defender)
	m.mu.Lock()
	if _, exists := m.fights[key]; exists {
		m.mu.Unlock()
		return ErrAlreadyFighting
	}
	f := newFight(m.world, m.sender, aggressor, defender, m.delay, m.damage)
	m.fights[key] = f
	ctx := m.ctx
	m.wg.Add(1)
	m.mu.Unlock()

	a.InCombat = true
	d.InCombat = true

	go func() {
		defer m.wg.Done()
		f.run(ctx)
		m.finish(key)
	}()
	return nil
}

// finish forgets an ended fight and clears the fighting flag on anyone who
// has no other fight left.
func (m *Manager) finish(key pair) {
	m.mu.Lock()
	delete(m.fights, key)
	busy := make(map[uuid.UUID]bool, 2)
	for _, id := range key {
		busy[id] = m.fightingLocked(id)
	}
	m.mu.Unlock()

	_ = m.world.Do(func(tx *game.Tx) error {
		for id, fighting := range busy {
			if p, ok := tx.Player(id); ok {
				p.InCombat = fighting
			}
		}
		return nil
	})
}

func (m *Manager) fightingLocked(id uuid.UUID) bool {
	for key := range m.fights {
		if key[0] == id || key[1] == id {
			return true
		}
	}
	return false
}

// Fighting reports whether id is in any active fight.
func (m *Manager) Fighting(id uuid.UUID) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.fightingLocked(id)
}

// Active returns the number of fights in progress.
func (m *Manager) Active() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.fights)
}

// StopAll ends every fight.
func (m *Manager) StopAll() {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, f := range m.fights {
		f.End()
	}
}

// Start runs until ctx is canceled, then ends every fight and waits for
// them to wind down.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	<-ctx.Done()

	m.StopAll()
	m.wg.Wait()
	slog.InfoContext(ctx, "combat stopped")
	return nil
}
