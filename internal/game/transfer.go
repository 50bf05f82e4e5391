package game

import (
	"fmt"

	"github.com/google/uuid"
)

type holderKind int

const (
	holderFloor holderKind = iota
	holderInventory
	holderClothing
	holderInside
)

// Holder names an item container by its owner: a room floor, a player's
// inventory or clothing, or an item held in one of those.
type Holder struct {
	kind   holderKind
	player uuid.UUID
	room   Coord
	parent *Holder
	item   Grabber
}

func FloorOf(c Coord) Holder {
	return Holder{kind: holderFloor, room: c}
}

func InventoryOf(id uuid.UUID) Holder {
	return Holder{kind: holderInventory, player: id}
}

func ClothingOf(id uuid.UUID) Holder {
	return Holder{kind: holderClothing, player: id}
}

// Inside names the item list of the container or guard g selects within parent.
func Inside(parent Holder, g Grabber) Holder {
	return Holder{kind: holderInside, parent: &parent, item: g}
}

func (h Holder) String() string {
	switch h.kind {
	case holderFloor:
		return fmt.Sprintf("floor(%s)", h.room)
	case holderInventory:
		return fmt.Sprintf("inventory(%s)", h.player)
	case holderClothing:
		return fmt.Sprintf("clothing(%s)", h.player)
	default:
		return fmt.Sprintf("%s/%s", h.parent, h.item)
	}
}

// Items resolves a holder to its list. For Inside holders the containing
// item is returned as well.
func (tx *Tx) Items(h Holder) (*ItemList, *Item, error) {
	switch h.kind {
	case holderFloor:
		r, ok := tx.Room(h.room)
		if !ok {
			return nil, nil, ErrRoomNotFound
		}
		return r.Items, nil, nil

	case holderInventory, holderClothing:
		p, ok := tx.Player(h.player)
		if !ok {
			return nil, nil, ErrPlayerNotFound
		}
		if h.kind == holderClothing {
			return p.Clothing, nil, nil
		}
		return p.Inventory, nil, nil

	case holderInside:
		parent, _, err := tx.Items(*h.parent)
		if err != nil {
			return nil, nil, err
		}
		it := parent.Find(h.item)
		if it == nil {
			return nil, nil, ErrItemNotFound
		}
		if !it.IsHolder() {
			return nil, it, ErrNotContainer
		}
		if lock, ok := it.Lockable(); ok && lock.LockState() != DoorOpen {
			return nil, it, ErrGuarded
		}
		return it.Contents(), it, nil
	}
	return nil, nil, fmt.Errorf("unknown holder kind %d", h.kind)
}

// Rule disqualifies an item from a particular transfer.
type Rule func(*Item) error

// RejectScenery refuses fixtures that cannot be picked up.
func RejectScenery(it *Item) error {
	if it.Kind == ItemScenery || it.Kind == ItemGuard {
		return ErrTooHeavy
	}
	return nil
}

// RequireClothing refuses anything that cannot be worn.
func RequireClothing(it *Item) error {
	if it.Kind != ItemClothing {
		return ErrNotClothing
	}
	return nil
}

// Transfer moves the item g selects from src to dst. Both ends are resolved
// and every rule is checked before the item is touched, so a failed transfer
// leaves it where it was.
func (tx *Tx) Transfer(src, dst Holder, g Grabber, rules ...Rule) (*Item, error) {
	from, _, err := tx.Items(src)
	if err != nil {
		return nil, err
	}
	to, owner, err := tx.Items(dst)
	if err != nil {
		return nil, err
	}

	it := from.Find(g)
	if it == nil {
		return nil, ErrItemNotFound
	}
	for _, rule := range rules {
		if err := rule(it); err != nil {
			return nil, err
		}
	}
	if owner != nil && (owner == it || holds(it, owner)) {
		return nil, ErrContainsItself
	}

	if !from.take(it) {
		return nil, fmt.Errorf("item %q vanished from %s", it.Name, src)
	}
	to.Insert(it)
	return it, nil
}

// holds reports whether target is anywhere inside it.
func holds(it, target *Item) bool {
	for _, sub := range it.Items.All() {
		if sub == target || holds(sub, target) {
			return true
		}
	}
	return false
}

// Give moves an item from one player's inventory to another's. The
// recipient must be in the giver's room.
func (tx *Tx) Give(from, to uuid.UUID, g Grabber) (*Item, error) {
	giver, ok := tx.Player(from)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	taker, ok := tx.Player(to)
	if !ok || taker.Location != giver.Location || from == to {
		return nil, ErrPlayerNotFound
	}
	return tx.Transfer(InventoryOf(from), InventoryOf(to), g)
}

// GiveToGuard offers a key from the player's inventory to a guard in the
// same room. A key that opens the guard is absorbed by it; any other item
// stays with the player.
func (tx *Tx) GiveToGuard(id uuid.UUID, guard Grabber, key Grabber) (*Item, *Item, error) {
	p, ok := tx.Player(id)
	if !ok {
		return nil, nil, ErrPlayerNotFound
	}
	r, err := tx.RoomOf(id)
	if err != nil {
		return nil, nil, err
	}

	g := r.Items.Find(guard)
	if g == nil {
		return nil, nil, ErrPlayerNotFound
	}
	lock, ok := g.Lockable()
	if !ok {
		return g, nil, ErrNotContainer
	}
	k := p.Inventory.Find(key)
	if k == nil {
		return g, nil, ErrItemNotFound
	}
	if k.Kind != ItemKey {
		return g, k, ErrNotKey
	}
	if err := lock.Transition(DoorOpen, k); err != nil {
		return g, k, err
	}

	p.Inventory.take(k)
	g.Contents().Insert(k)
	return g, k, nil
}

// matchingKey returns the first key in list that fits keyhole, or nil.
func matchingKey(list *ItemList, keyhole *uint64) *Item {
	if keyhole == nil {
		return nil
	}
	for _, it := range list.All() {
		if it.Kind == ItemKey && it.Key == *keyhole {
			return it
		}
	}
	return nil
}

// SetDoor attempts to move the door the player faces in direction d to
// state to, using a fitting key from the player's inventory if one is
// carried.
func (tx *Tx) SetDoor(id uuid.UUID, d Direction, to DoorState) (*Door, error) {
	p, ok := tx.Player(id)
	if !ok {
		return nil, ErrPlayerNotFound
	}
	r, err := tx.RoomOf(id)
	if err != nil {
		return nil, err
	}
	door, ok := r.Door(d)
	if !ok {
		return nil, ErrNoDoor
	}
	return door, door.Transition(to, matchingKey(p.Inventory, door.Keyhole))
}

// Move walks a player through the exit facing d. Guards and doors that are
// not open stop the move with a *BlockedError or *DoorError.
func (tx *Tx) Move(id uuid.UUID, d Direction) (*Room, *Room, error) {
	from, err := tx.RoomOf(id)
	if err != nil {
		return nil, nil, err
	}

	if g := from.BlockingGuard(d); g != nil {
		return from, nil, &BlockedError{Guard: g}
	}

	var dest Coord
	if door, ok := from.Door(d); ok {
		if !door.Passable() {
			return from, nil, &DoorError{State: door.State}
		}
		if door.Destination != nil {
			dest = *door.Destination
		} else if dest, ok = from.Coord().Add(d); !ok {
			return from, nil, ErrNoExit
		}
	} else {
		if dest, ok = from.Coord().Add(d); !ok {
			return from, nil, ErrNoExit
		}
	}

	to, ok := tx.Room(dest)
	if !ok {
		return from, nil, ErrNoExit
	}
	if err := tx.Relocate(id, dest); err != nil {
		return from, nil, err
	}
	return from, to, nil
}
