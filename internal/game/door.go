package game

import (
	"fmt"
)

// DoorState is the lock state of a door or guard.
type DoorState int

const (
	DoorOpen DoorState = iota
	DoorClosed
	DoorLocked
	DoorMagicallySealed
	DoorPermaLocked
)

var doorStateNames = map[DoorState]string{
	DoorOpen:            "open",
	DoorClosed:          "closed",
	DoorLocked:          "locked",
	DoorMagicallySealed: "magically_sealed",
	DoorPermaLocked:     "perma_locked",
}

func (s DoorState) String() string {
	if name, ok := doorStateNames[s]; ok {
		return name
	}
	return fmt.Sprintf("DoorState(%d)", int(s))
}

func (s *DoorState) UnmarshalText(text []byte) error {
	for state, name := range doorStateNames {
		if name == string(text) {
			*s = state
			return nil
		}
	}
	return fmt.Errorf("unknown door state: %s", text)
}

func (s DoorState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// Terminal reports whether no transition out of s is ever permitted.
func (s DoorState) Terminal() bool {
	return s == DoorMagicallySealed || s == DoorPermaLocked
}

// Lockable is anything gated by a DoorState: doors and guards.
type Lockable interface {
	LockState() DoorState
	Transition(to DoorState, key *Item) error
}

// transition applies the lock transition table shared by doors and guards.
// keyhole is nil when the lock accepts any key, or none.
func transition(state *DoorState, keyhole *uint64, to DoorState, key *Item) error {
	from := *state
	if from == to || from.Terminal() || to.Terminal() {
		return &DoorError{State: from}
	}

	switch {
	case from == DoorClosed && to == DoorOpen,
		from == DoorOpen && to == DoorClosed:
		*state = to
		return nil
	case from == DoorOpen && to == DoorLocked:
		return &DoorError{State: from}
	}

	// Every remaining transition goes into or out of Locked.
	if keyhole != nil && !fits(keyhole, key) {
		return &DoorError{State: from}
	}
	*state = to
	return nil
}

// fits reports whether key is a key cut for keyhole. A nil keyhole takes
// any key.
func fits(keyhole *uint64, key *Item) bool {
	if key == nil || key.Kind != ItemKey {
		return false
	}
	return keyhole == nil || key.Key == *keyhole
}

// Door is an obstacle on one of a room's exits.
type Door struct {
	Name        string    `json:"name,omitempty"`
	State       DoorState `json:"state"`
	Keyhole     *uint64   `json:"keyhole,omitempty"`
	Destination *Coord    `json:"destination,omitempty"`

	Direction Direction `json:"-"`
}

// Label is the name used in messages, defaulting to "door".
func (d *Door) Label() string {
	if d.Name == "" {
		return "door"
	}
	return d.Name
}

func (d *Door) LockState() DoorState {
	return d.State
}

// Transition moves the door to state to. On rejection the door is unchanged
// and the returned *DoorError carries its current state.
func (d *Door) Transition(to DoorState, key *Item) error {
	return transition(&d.State, d.Keyhole, to, key)
}

// Passable reports whether a player can walk through the door.
func (d *Door) Passable() bool {
	return d.State == DoorOpen
}

// Validate satisfies storage.ValidatingSpec for doors embedded in rooms.
func (d *Door) Validate() error {
	if _, ok := doorStateNames[d.State]; !ok {
		return fmt.Errorf("invalid door state %d", d.State)
	}
	return nil
}
