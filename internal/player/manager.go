package player

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// Executor runs a line of input on behalf of a player.
type Executor interface {
	Exec(ctx context.Context, id uuid.UUID, line string) (messaging.Audience, messaging.Message, error)
}

// ErrNameTaken is returned when a name is claimed between the prompt and
// entering the world.
var ErrNameTaken = errors.New("name already in use")

// PlayerManager turns connections into players and runs their sessions.
type PlayerManager struct {
	world  *game.WorldState
	exec   Executor
	bc     *messaging.Broadcaster
	start  game.Coord
	prompt *display.Prompt
}

type PlayerManagerOpt func(*PlayerManager)

// WithStart sets the room new players appear in.
func WithStart(c game.Coord) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.start = c
	}
}

// WithPrompt sets the prompt shown after each command.
func WithPrompt(p *display.Prompt) PlayerManagerOpt {
	return func(m *PlayerManager) {
		m.prompt = p
	}
}

func NewPlayerManager(world *game.WorldState, exec Executor, bc *messaging.Broadcaster, opts ...PlayerManagerOpt) (*PlayerManager, error) {
	m := &PlayerManager{
		world: world,
		exec:  exec,
		bc:    bc,
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.prompt == nil {
		p, err := display.NewPrompt(display.DefaultPrompt)
		if err != nil {
			return nil, fmt.Errorf("building prompt: %w", err)
		}
		m.prompt = p
	}
	return m, nil
}

// Start runs until ctx is canceled, then removes every connected player so
// their sessions end.
func (m *PlayerManager) Start(ctx context.Context) error {
	<-ctx.Done()

	_ = m.world.Do(func(tx *game.Tx) error {
		for _, p := range tx.Players() {
			if p.Sink() != nil {
				_, _ = tx.RemovePlayer(p.Id)
			}
		}
		return nil
	})
	return nil
}

// RunSession logs a connection in and plays until it quits, dies or drops.
func (m *PlayerManager) RunSession(ctx context.Context, conn io.ReadWriter) error {
	r := bufio.NewReader(conn)

	login := &loginFlow{online: m.online}
	name, err := login.Run(r, conn)
	if err != nil {
		return fmt.Errorf("logging in: %w", err)
	}

	p := game.NewPlayer(name, conn)
	p.Location = m.start
	err = m.world.Do(func(tx *game.Tx) error {
		if tx.FindPlayer(name) != nil {
			return ErrNameTaken
		}
		return tx.AddPlayer(p)
	})
	if err != nil {
		return fmt.Errorf("entering world as %s: %w", name, err)
	}
	slog.InfoContext(ctx, "player entered the world", "name", name, "player", p.Id)

	s := &Session{
		player: p,
		input:  r,
		world:  m.world,
		exec:   m.exec,
		bc:     m.bc,
		prompt: m.prompt,
	}
	return s.Play(ctx)
}

func (m *PlayerManager) online(name string) bool {
	var found bool
	_ = m.world.Do(func(tx *game.Tx) error {
		found = tx.FindPlayer(name) != nil
		return nil
	})
	return found
}
