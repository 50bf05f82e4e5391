package npc

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

const (
	DefaultInterval = 30 * time.Second
	DefaultJitter   = 30 * time.Second
)

// Manager spawns NPCs into the world and runs their actors.
type Manager struct {
	world  *game.WorldState
	exec   Executor
	sender messaging.Sender
	specs  []*Spec

	interval time.Duration
	jitter   time.Duration

	mu      sync.Mutex
	ctx     context.Context
	wg      sync.WaitGroup
	running atomic.Int32
}

type ManagerOpt func(*Manager)

// WithInterval sets the base pause between an NPC's actions.
func WithInterval(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.interval = d
	}
}

// WithJitter sets the upper bound of the random time added to each pause.
func WithJitter(d time.Duration) ManagerOpt {
	return func(m *Manager) {
		m.jitter = d
	}
}

// WithSpecs sets the NPCs spawned when the manager starts.
func WithSpecs(specs ...*Spec) ManagerOpt {
	return func(m *Manager) {
		m.specs = append(m.specs, specs...)
	}
}

func NewManager(world *game.WorldState, exec Executor, sender messaging.Sender, opts ...ManagerOpt) *Manager {
	m := &Manager{
		world:    world,
		exec:     exec,
		sender:   sender,
		interval: DefaultInterval,
		jitter:   DefaultJitter,
		ctx:      context.Background(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Spawn places an NPC in the world and, unless it is static, starts its actor.
func (m *Manager) Spawn(spec *Spec) (*game.Player, error) {
	p := spec.newPlayer()
	if err := m.world.AddPlayer(p); err != nil {
		return nil, fmt.Errorf("spawning npc %q: %w", spec.Name, err)
	}
	if spec.AI == Static || spec.AI == "" {
		return p, nil
	}

	a := &actor{
		id:       p.Id,
		name:     p.Name,
		behavior: spec.AI,
		phrases:  spec.Phrases,
		done:     p.Done(),
		exec:     m.exec,
		sender:   m.sender,
		interval: m.interval,
		jitter:   m.jitter,
	}

	m.mu.Lock()
	ctx := m.ctx
	m.mu.Unlock()

	m.wg.Add(1)
	m.running.Add(1)
	go func() {
		defer m.wg.Done()
		defer m.running.Add(-1)
		a.run(ctx)
	}()
	return p, nil
}

// Despawn removes an NPC from the world. Its actor notices at its next wake.
func (m *Manager) Despawn(id uuid.UUID) error {
	_, err := m.world.RemovePlayer(id)
	return err
}

// Running returns the number of live actors.
func (m *Manager) Running() int {
	return int(m.running.Load())
}

// Start spawns the configured NPCs and runs until ctx is canceled.
func (m *Manager) Start(ctx context.Context) error {
	m.mu.Lock()
	m.ctx = ctx
	m.mu.Unlock()

	for _, spec := range m.specs {
		if _, err := m.Spawn(spec); err != nil {
			return err
		}
	}
	slog.InfoContext(ctx, "npcs spawned", "count", len(m.specs), "actors", m.Running())

	<-ctx.Done()
	m.wg.Wait()
	return nil
}
