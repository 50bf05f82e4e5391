package command

import (
	"context"
	"fmt"
	"os"

	"github.com/pixil98/go-errors"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/help"
	"github.com/pmengelbert/ennui/internal/npc"
	"github.com/pmengelbert/ennui/internal/storage"
)

// WorldConfig locates the static snapshot the world is built from.
type WorldConfig struct {
	Rooms AssetConfig[*game.Room]  `json:"rooms" envPrefix:"ROOMS_"`
	Npcs  AssetConfig[*npc.Spec]   `json:"npcs" envPrefix:"NPCS_"`
	Help  AssetConfig[*help.Entry] `json:"help" envPrefix:"HELP_"`
	Start game.Coord               `json:"start"`
}

func (c *WorldConfig) validate() error {
	el := errors.NewErrorList()
	el.Add(c.Rooms.Validate("rooms"))
	if c.Npcs.Path != "" {
		el.Add(c.Npcs.Validate("npcs"))
	}
	if c.Help.Path != "" {
		el.Add(c.Help.Validate("help"))
	}
	return el.Err()
}

// BuildWorld loads every room and checks the start room exists.
func (c *WorldConfig) BuildWorld() (*game.WorldState, error) {
	rooms, err := c.Rooms.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating room store: %w", err)
	}

	world, err := game.NewWorldState(rooms.All())
	if err != nil {
		return nil, fmt.Errorf("building world: %w", err)
	}

	var exists bool
	_ = world.Do(func(tx *game.Tx) error {
		exists = tx.RoomExists(c.Start)
		return nil
	})
	if !exists {
		return nil, fmt.Errorf("start room %s does not exist", c.Start)
	}

	return world, nil
}

// LoadNpcs returns the configured NPC definitions, if any.
func (c *WorldConfig) LoadNpcs() ([]*npc.Spec, error) {
	if c.Npcs.Path == "" {
		return nil, nil
	}
	s, err := c.Npcs.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating npc store: %w", err)
	}
	return s.All(), nil
}

// LoadHelp returns the configured help entries, if any.
func (c *WorldConfig) LoadHelp() ([]*help.Entry, error) {
	if c.Help.Path == "" {
		return nil, nil
	}
	s, err := c.Help.BuildFileStore()
	if err != nil {
		return nil, fmt.Errorf("creating help store: %w", err)
	}
	return s.All(), nil
}

// HelpConfig points at the SQLite database that serves help lookups.
type HelpConfig struct {
	Database string `json:"database" env:"DATABASE"`
}

func (c *HelpConfig) validate() error {
	return nil
}

// BuildStore opens the help database and seeds it with entries.
func (c *HelpConfig) BuildStore(ctx context.Context, entries []*help.Entry) (*help.Store, error) {
	path := c.Database
	if path == "" {
		path = ":memory:"
	}

	s, err := help.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening help database: %w", err)
	}
	if err := s.Seed(ctx, entries); err != nil {
		_ = s.Close()
		return nil, fmt.Errorf("seeding help database: %w", err)
	}
	return s, nil
}

type AssetConfig[T storage.ValidatingSpec] struct {
	Path string `json:"path" env:"PATH"`
}

func (c *AssetConfig[T]) Validate(name string) error {
	if c.Path == "" {
		return fmt.Errorf("%s: path is required", name)
	}
	_, err := os.Stat(c.Path)
	if err != nil {
		return fmt.Errorf("%s: invalid path %q: %w", name, c.Path, err)
	}

	return nil
}

func (c *AssetConfig[T]) BuildFileStore() (*storage.FileStore[T], error) {
	return storage.NewFileStore[T](c.Path)
}
