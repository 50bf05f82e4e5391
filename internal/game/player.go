package game

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/google/uuid"
)

// Sink is a player's output connection. Writes are serialized, and once
// closed every write fails with ErrSinkClosed.
type Sink struct {
	mu     sync.Mutex
	w      io.Writer
	closed atomic.Bool
	once   sync.Once
}

func NewSink(w io.Writer) *Sink {
	return &Sink{w: w}
}

func (s *Sink) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed.Load() {
		return 0, ErrSinkClosed
	}
	return s.w.Write(p)
}

// Close marks the sink dead and closes the underlying connection if it can
// be closed. It does not wait for a write in progress, so it is safe to call
// with the world lock held.
func (s *Sink) Close() error {
	var err error
	s.once.Do(func() {
		s.closed.Store(true)
		if c, ok := s.w.(io.Closer); ok {
			err = c.Close()
		}
	})
	return err
}

// Player is a participant in the world, human or not.
type Player struct {
	Id          uuid.UUID
	Name        string
	Description string
	Handle      Handle
	Location    Coord
	Inventory   *ItemList
	Clothing    *ItemList
	Meters      Meters
	InCombat    bool

	sink *Sink
	once sync.Once
	done chan struct{}
}

// NewPlayer creates a player with a fresh id and default meters. out may be
// nil for players with no connection.
func NewPlayer(name string, out io.Writer) *Player {
	p := &Player{
		Id:        uuid.New(),
		Name:      name,
		Handle:    Handle{strings.ToLower(name)},
		Inventory: NewItemList(),
		Clothing:  NewItemList(),
		Meters:    DefaultMeters(),
		done:      make(chan struct{}),
	}
	if out != nil {
		p.sink = NewSink(out)
	}
	return p
}

// Sink returns the player's output, or nil for NPCs.
func (p *Player) Sink() *Sink {
	return p.sink
}

// Done is closed once the player has been removed from the world.
func (p *Player) Done() <-chan struct{} {
	return p.done
}

// release signals Done and closes the player's connection.
func (p *Player) release() {
	p.once.Do(func() {
		close(p.done)
		if p.sink != nil {
			_ = p.sink.Close()
		}
	})
}

// Alive reports whether the player's hit meter is above zero.
func (p *Player) Alive() bool {
	return p.Meters[MeterHit].Current > 0
}

// Hurt lowers the player's hit meter by n and returns what is left.
func (p *Player) Hurt(n int64) int64 {
	return p.Meters.Adjust(MeterHit, -n).Current
}

func (p *Player) DisplayName() string {
	return p.Name
}

func (p *Player) Describe() string {
	desc := p.Description
	if desc == "" {
		desc = fmt.Sprintf("%s looks like an ordinary adventurer.", p.Name)
	}
	held := fmt.Sprintf("%s is holding:", p.Name)
	if names := p.Inventory.Names(); len(names) > 0 {
		held += "\n" + strings.Join(names, "\n")
	}
	return desc + "\n" + held
}

// Handles returns the player's aliases, always including the name.
func (p *Player) Handles() Handle {
	if p.Handle.Matches(p.Name) {
		return p.Handle
	}
	return append(Handle{p.Name}, p.Handle...)
}
