package game

import (
	"fmt"
	"slices"
	"strings"

	"github.com/google/uuid"
	"github.com/pixil98/go-errors"
)

// Room is a location on the world grid.
type Room struct {
	X           int64               `json:"x"`
	Y           int64               `json:"y"`
	Name        string              `json:"name"`
	Description string              `json:"description"`
	Items       *ItemList           `json:"items,omitempty"`
	Doors       map[Direction]*Door `json:"doors,omitempty"`

	players map[uuid.UUID]struct{}
}

// Validate satisfies storage.ValidatingSpec.
func (r *Room) Validate() error {
	el := errors.NewErrorList()

	if r.Name == "" {
		el.Add(fmt.Errorf("room name is required"))
	}
	for _, it := range r.Items.All() {
		el.Add(it.Validate())
	}
	for dir, door := range r.Doors {
		if door == nil {
			el.Add(fmt.Errorf("door %s: definition is required", dir))
			continue
		}
		if err := door.Validate(); err != nil {
			el.Add(fmt.Errorf("door %s: %w", dir, err))
		}
		if (dir == Up || dir == Down) && door.Destination == nil {
			el.Add(fmt.Errorf("door %s: destination is required", dir))
		}
	}

	return el.Err()
}

func (r *Room) Coord() Coord {
	return Coord{X: r.X, Y: r.Y}
}

// init prepares runtime state for a room loaded from a snapshot.
func (r *Room) init() {
	if r.Items == nil {
		r.Items = NewItemList()
	}
	for dir, door := range r.Doors {
		door.Direction = dir
	}
	r.players = make(map[uuid.UUID]struct{})
}

// HasPlayer reports whether id is in the room's player set.
func (r *Room) HasPlayer(id uuid.UUID) bool {
	_, ok := r.players[id]
	return ok
}

// PlayerIds returns the ids present, minus any in except, in a stable order.
func (r *Room) PlayerIds(except ...uuid.UUID) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(r.players))
	for id := range r.players {
		if !slices.Contains(except, id) {
			ids = append(ids, id)
		}
	}
	slices.SortFunc(ids, func(a, b uuid.UUID) int {
		return strings.Compare(a.String(), b.String())
	})
	return ids
}

// Door returns the door facing d, if any.
func (r *Room) Door(d Direction) (*Door, bool) {
	door, ok := r.Doors[d]
	return door, ok && door != nil
}

// BlockingGuard returns a guard in the room that faces d and is not open.
func (r *Room) BlockingGuard(d Direction) *Item {
	for _, it := range r.Items.All() {
		if it.Kind == ItemGuard && it.Guard != nil && it.Guard.Direction == d && it.Guard.State != DoorOpen {
			return it
		}
	}
	return nil
}

// Exits lists directions with a grid neighbour or door, in a stable order.
func (r *Room) Exits(exists func(Coord) bool) []Direction {
	var dirs []Direction
	for _, d := range []Direction{North, South, East, West, Northeast, Northwest, Southeast, Southwest, Up, Down} {
		if _, ok := r.Door(d); ok {
			dirs = append(dirs, d)
			continue
		}
		if next, ok := r.Coord().Add(d); ok && exists(next) {
			dirs = append(dirs, d)
		}
	}
	return dirs
}
