package game

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// WorldState is the single source of truth for all mutable game state.
// Every read or write of rooms and players happens under its lock, either
// through Do or one of the single-operation helpers.
type WorldState struct {
	mu      sync.Mutex
	rooms   map[Coord]*Room
	players map[uuid.UUID]*Player
}

// NewWorldState builds the world from loaded room definitions.
func NewWorldState(rooms []*Room) (*WorldState, error) {
	w := &WorldState{
		rooms:   make(map[Coord]*Room, len(rooms)),
		players: make(map[uuid.UUID]*Player),
	}

	for _, r := range rooms {
		c := r.Coord()
		if _, exists := w.rooms[c]; exists {
			return nil, fmt.Errorf("duplicate room at %s", c)
		}
		r.init()
		w.rooms[c] = r
	}

	return w, nil
}

// Do runs fn while holding the world lock. The Tx passed to fn must not be
// used after fn returns.
func (w *WorldState) Do(fn func(tx *Tx) error) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	return fn(&Tx{w: w})
}

// AddPlayer places p in the room at p.Location.
func (w *WorldState) AddPlayer(p *Player) error {
	return w.Do(func(tx *Tx) error {
		return tx.AddPlayer(p)
	})
}

// RemovePlayer removes a player from the world and releases its connection.
func (w *WorldState) RemovePlayer(id uuid.UUID) (*Player, error) {
	var p *Player
	err := w.Do(func(tx *Tx) error {
		var err error
		p, err = tx.RemovePlayer(id)
		return err
	})
	return p, err
}

// Sinks resolves ids to the sinks of players still in the world. Players
// without a sink, and ids no longer present, are left out.
func (w *WorldState) Sinks(ids []uuid.UUID) map[uuid.UUID]io.Writer {
	w.mu.Lock()
	defer w.mu.Unlock()

	sinks := make(map[uuid.UUID]io.Writer, len(ids))
	for _, id := range ids {
		if p, ok := w.players[id]; ok && p.sink != nil {
			sinks[id] = p.sink
		}
	}
	return sinks
}

// PlayerIds returns every player id currently in the world.
func (w *WorldState) PlayerIds() []uuid.UUID {
	w.mu.Lock()
	defer w.mu.Unlock()

	ids := make([]uuid.UUID, 0, len(w.players))
	for id := range w.players {
		ids = append(ids, id)
	}
	return ids
}

// Tick regenerates hit, mana and movement for players not in a fight,
// including players knocked down to nothing outside of one.
func (w *WorldState) Tick(ctx context.Context) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, p := range w.players {
		if p.InCombat {
			continue
		}
		p.Meters.Adjust(MeterHit, 1)
		p.Meters.Adjust(MeterMana, 1)
		p.Meters.Adjust(MeterMovement, 1)
	}
	return nil
}

// Tx is a view of the world valid while the world lock is held.
type Tx struct {
	w *WorldState
}

// Player looks up a player by id.
func (tx *Tx) Player(id uuid.UUID) (*Player, bool) {
	p, ok := tx.w.players[id]
	return p, ok
}

// Room looks up a room by coordinate.
func (tx *Tx) Room(c Coord) (*Room, bool) {
	r, ok := tx.w.rooms[c]
	return r, ok
}

// RoomOf returns the room the player is standing in.
func (tx *Tx) RoomOf(id uuid.UUID) (*Room, error) {
	p, ok := tx.w.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	r, ok := tx.w.rooms[p.Location]
	if !ok {
		return nil, fmt.Errorf("player %s at %s: %w", p.Name, p.Location, ErrRoomNotFound)
	}
	return r, nil
}

// Players returns every player ordered by name.
func (tx *Tx) Players() []*Player {
	ps := make([]*Player, 0, len(tx.w.players))
	for _, p := range tx.w.players {
		ps = append(ps, p)
	}
	slices.SortFunc(ps, func(a, b *Player) int {
		return strings.Compare(a.Name, b.Name)
	})
	return ps
}

// FindPlayer returns the first player anywhere answering to name.
func (tx *Tx) FindPlayer(name string) *Player {
	for _, p := range tx.Players() {
		if p.Handles().Matches(name) {
			return p
		}
	}
	return nil
}

// FindPlayerIn returns a player in room r answering to name.
func (tx *Tx) FindPlayerIn(r *Room, name string) *Player {
	for _, id := range r.PlayerIds() {
		if p, ok := tx.w.players[id]; ok && p.Handles().Matches(name) {
			return p
		}
	}
	return nil
}

// AddPlayer inserts p into the world at p.Location.
func (tx *Tx) AddPlayer(p *Player) error {
	if _, exists := tx.w.players[p.Id]; exists {
		return ErrPlayerExists
	}
	r, ok := tx.w.rooms[p.Location]
	if !ok {
		return fmt.Errorf("placing %s at %s: %w", p.Name, p.Location, ErrRoomNotFound)
	}
	tx.w.players[p.Id] = p
	r.players[p.Id] = struct{}{}
	return nil
}

// RemovePlayer takes the player out of its room and the world, then
// releases its connection.
func (tx *Tx) RemovePlayer(id uuid.UUID) (*Player, error) {
	p, ok := tx.w.players[id]
	if !ok {
		return nil, ErrPlayerNotFound
	}
	if r, ok := tx.w.rooms[p.Location]; ok {
		delete(r.players, id)
	}
	delete(tx.w.players, id)
	p.release()
	return p, nil
}

// Relocate moves a player to the room at to. The old room's set, the new
// room's set and the player's location change together or not at all.
func (tx *Tx) Relocate(id uuid.UUID, to Coord) error {
	p, ok := tx.w.players[id]
	if !ok {
		return ErrPlayerNotFound
	}
	dest, ok := tx.w.rooms[to]
	if !ok {
		return ErrRoomNotFound
	}
	if src, ok := tx.w.rooms[p.Location]; ok {
		delete(src.players, id)
	}
	dest.players[id] = struct{}{}
	p.Location = to
	return nil
}

// RoomExists reports whether c is a room.
func (tx *Tx) RoomExists(c Coord) bool {
	_, ok := tx.w.rooms[c]
	return ok
}
