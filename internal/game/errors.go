package game

import (
	"errors"
	"fmt"
)

var (
	ErrPlayerNotFound = errors.New("player not found")
	ErrPlayerExists   = errors.New("player already exists")
	ErrRoomNotFound   = errors.New("room not found")
	ErrItemNotFound   = errors.New("item not found")
	ErrTooHeavy       = errors.New("item is too heavy")
	ErrNotClothing    = errors.New("item is not clothing")
	ErrNotContainer   = errors.New("item is not a container")
	ErrNotKey         = errors.New("item is not a key")
	ErrGuarded        = errors.New("item is guarded")
	ErrContainsItself = errors.New("item cannot hold itself")
	ErrNoExit         = errors.New("no exit in that direction")
	ErrNoDoor         = errors.New("no door in that direction")
	ErrSinkClosed     = errors.New("sink closed")
)

// DoorError rejects a lock transition, carrying the unchanged state of the
// door or guard.
type DoorError struct {
	State DoorState
}

func (e *DoorError) Error() string {
	return fmt.Sprintf("lock is %s", e.State)
}

// BlockedError rejects movement through an exit a guard is standing in.
type BlockedError struct {
	Guard *Item
}

func (e *BlockedError) Error() string {
	return fmt.Sprintf("%s blocks the way", e.Guard.Name)
}

func (e *BlockedError) Unwrap() error {
	return ErrGuarded
}
