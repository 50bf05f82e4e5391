package game

import (
	"encoding/json"
	"fmt"

	"github.com/pixil98/go-errors"
	"github.com/pmengelbert/ennui/internal/display"
)

// ItemKind tags the variant an Item holds.
type ItemKind int

const (
	ItemHoldable ItemKind = iota
	ItemClothing
	ItemWeapon
	ItemEdible
	ItemScenery
	ItemContainer
	ItemKey
	ItemGuard
)

var itemKindNames = map[ItemKind]string{
	ItemHoldable:  "holdable",
	ItemClothing:  "clothing",
	ItemWeapon:    "weapon",
	ItemEdible:    "edible",
	ItemScenery:   "scenery",
	ItemContainer: "container",
	ItemKey:       "key",
	ItemGuard:     "guard",
}

func (k ItemKind) String() string {
	if name, ok := itemKindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("ItemKind(%d)", int(k))
}

func (k *ItemKind) UnmarshalText(text []byte) error {
	for kind, name := range itemKindNames {
		if name == string(text) {
			*k = kind
			return nil
		}
	}
	return fmt.Errorf("unknown item kind: %s", text)
}

func (k ItemKind) MarshalText() ([]byte, error) {
	return []byte(k.String()), nil
}

// Describer is anything that can be looked at and named in commands.
type Describer interface {
	DisplayName() string
	Describe() string
	Handles() Handle
}

// Item is a single object in the world. Kind selects which of the optional
// fields are meaningful: Items for containers and guards, Key for keys,
// Guard for guards.
type Item struct {
	Kind        ItemKind `json:"kind"`
	Name        string   `json:"name"`
	Display     string   `json:"display,omitempty"`
	Description string   `json:"description,omitempty"`
	Handle      Handle   `json:"handle"`

	Items *ItemList `json:"items,omitempty"`
	Key   uint64    `json:"key,omitempty"`
	Guard *Guard    `json:"guard,omitempty"`
}

func (i *Item) DisplayName() string {
	return i.Name
}

func (i *Item) Describe() string {
	if i.Description == "" {
		return fmt.Sprintf("it's %s.", display.Article(i.Name))
	}
	return i.Description
}

func (i *Item) Handles() Handle {
	return i.Handle
}

// RoomLine is how the item reads when lying in a room.
func (i *Item) RoomLine() string {
	if i.Display != "" {
		return i.Display
	}
	return fmt.Sprintf("%s lies here.", display.Article(i.Name))
}

// IsHolder reports whether the item carries an item list of its own.
func (i *Item) IsHolder() bool {
	return i.Kind == ItemContainer || i.Kind == ItemGuard
}

// Lockable returns the item's lock, if it has one.
func (i *Item) Lockable() (Lockable, bool) {
	if i.Kind == ItemGuard && i.Guard != nil {
		return i.Guard, true
	}
	return nil, false
}

// Contents returns the item's list, creating it for holders that were
// loaded without one.
func (i *Item) Contents() *ItemList {
	if i.Items == nil && i.IsHolder() {
		i.Items = NewItemList()
	}
	return i.Items
}

func (i *Item) Validate() error {
	el := errors.NewErrorList()

	if i.Name == "" {
		el.Add(fmt.Errorf("item name is required"))
	}
	if len(i.Handle) == 0 {
		el.Add(fmt.Errorf("item %q: handle is required", i.Name))
	}
	if _, ok := itemKindNames[i.Kind]; !ok {
		el.Add(fmt.Errorf("item %q: invalid kind %d", i.Name, i.Kind))
	}
	if i.Kind == ItemGuard && i.Guard == nil {
		el.Add(fmt.Errorf("item %q: guard settings are required", i.Name))
	}
	if i.Items != nil {
		if !i.IsHolder() {
			el.Add(fmt.Errorf("item %q: only containers and guards hold items", i.Name))
		}
		for _, sub := range i.Items.items {
			el.Add(sub.Validate())
		}
	}

	return el.Err()
}

// Guard is a lock-gated keeper. While its state is anything but open it
// withholds its items and blocks the exit it faces. A guard loaded without
// a state starts closed.
type Guard struct {
	Direction Direction `json:"direction,omitempty"`
	State     DoorState `json:"state"`
	Keyhole   *uint64   `json:"keyhole,omitempty"`
}

func (g *Guard) UnmarshalJSON(data []byte) error {
	type guard Guard
	v := guard{State: DoorClosed}
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*g = Guard(v)
	return nil
}

func (g *Guard) LockState() DoorState {
	return g.State
}

// Transition moves the guard to state to. Unlike a door, a guard only opens
// for a key that fits it, whether it was closed or locked.
func (g *Guard) Transition(to DoorState, key *Item) error {
	if to != DoorOpen {
		return transition(&g.State, g.Keyhole, to, key)
	}
	if g.State == DoorOpen || g.State.Terminal() || !fits(g.Keyhole, key) {
		return &DoorError{State: g.State}
	}
	g.State = DoorOpen
	return nil
}

// ItemList is an ordered collection of items owned by one container.
type ItemList struct {
	items []*Item
}

func NewItemList(items ...*Item) *ItemList {
	return &ItemList{items: items}
}

// Len returns the number of top-level items.
func (l *ItemList) Len() int {
	if l == nil {
		return 0
	}
	return len(l.items)
}

// All returns a copy of the top-level items in order.
func (l *ItemList) All() []*Item {
	if l == nil {
		return nil
	}
	out := make([]*Item, len(l.items))
	copy(out, l.items)
	return out
}

// Count returns the number of items in the list including everything held
// inside containers and guards.
func (l *ItemList) Count() int {
	if l == nil {
		return 0
	}
	n := 0
	for _, it := range l.items {
		n++
		n += it.Items.Count()
	}
	return n
}

func (l *ItemList) index(g Grabber) int {
	if l == nil {
		return -1
	}
	seen := 0
	for i, it := range l.items {
		if !it.Handle.Matches(g.Handle) {
			continue
		}
		if seen == g.Index {
			return i
		}
		seen++
	}
	return -1
}

// Find returns the item the grabber selects, or nil.
func (l *ItemList) Find(g Grabber) *Item {
	i := l.index(g)
	if i < 0 {
		return nil
	}
	return l.items[i]
}

// FindKind returns the first item of the given kind, or nil.
func (l *ItemList) FindKind(kind ItemKind) *Item {
	if l == nil {
		return nil
	}
	for _, it := range l.items {
		if it.Kind == kind {
			return it
		}
	}
	return nil
}

// Remove takes the selected item out of the list.
func (l *ItemList) Remove(g Grabber) (*Item, error) {
	i := l.index(g)
	if i < 0 {
		return nil, ErrItemNotFound
	}
	it := l.items[i]
	l.items = append(l.items[:i], l.items[i+1:]...)
	return it, nil
}

// Insert appends it to the list.
func (l *ItemList) Insert(it *Item) {
	l.items = append(l.items, it)
}

// Names returns each item's name with an article, for listings.
func (l *ItemList) Names() []string {
	if l == nil {
		return nil
	}
	names := make([]string, 0, len(l.items))
	for _, it := range l.items {
		names = append(names, display.Article(it.Name))
	}
	return names
}

func (l *ItemList) MarshalJSON() ([]byte, error) {
	if l == nil || l.items == nil {
		return []byte("[]"), nil
	}
	return json.Marshal(l.items)
}

func (l *ItemList) UnmarshalJSON(b []byte) error {
	return json.Unmarshal(b, &l.items)
}

// take removes the exact item it from the list, reporting whether it was there.
func (l *ItemList) take(it *Item) bool {
	if l == nil {
		return false
	}
	for i, cur := range l.items {
		if cur == it {
			l.items = append(l.items[:i], l.items[i+1:]...)
			return true
		}
	}
	return false
}
