package game

import (
	"fmt"
	"strings"
)

// Direction is a compass or vertical heading an exit can face.
type Direction string

const (
	North     Direction = "north"
	South     Direction = "south"
	East      Direction = "east"
	West      Direction = "west"
	Northeast Direction = "northeast"
	Northwest Direction = "northwest"
	Southeast Direction = "southeast"
	Southwest Direction = "southwest"
	Up        Direction = "up"
	Down      Direction = "down"
)

var directionAliases = map[string]Direction{
	"n":  North,
	"s":  South,
	"e":  East,
	"w":  West,
	"ne": Northeast,
	"nw": Northwest,
	"se": Southeast,
	"sw": Southwest,
	"u":  Up,
	"d":  Down,
}

// CardinalDirections lists the four directions that map onto the coordinate grid.
var CardinalDirections = []Direction{North, South, East, West}

// ParseDirection accepts a full direction name or its short form.
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	if d, ok := directionAliases[s]; ok {
		return d, true
	}
	d := Direction(s)
	switch d {
	case North, South, East, West, Northeast, Northwest, Southeast, Southwest, Up, Down:
		return d, true
	}
	return "", false
}

// Short returns the abbreviated form used in exit lists ("n", "ne", "u").
func (d Direction) Short() string {
	for k, v := range directionAliases {
		if v == d {
			return k
		}
	}
	return string(d)
}

func (d *Direction) UnmarshalText(text []byte) error {
	parsed, ok := ParseDirection(string(text))
	if !ok {
		return fmt.Errorf("unknown direction: %s", text)
	}
	*d = parsed
	return nil
}

func (d Direction) MarshalText() ([]byte, error) {
	return []byte(d), nil
}

// Coord is a room's position on the world grid.
type Coord struct {
	X int64 `json:"x"`
	Y int64 `json:"y"`
}

func (c Coord) String() string {
	return fmt.Sprintf("%d,%d", c.X, c.Y)
}

// Add returns the neighbouring coordinate in direction d. Only the eight
// compass directions have grid neighbours; up and down need a door
// destination override.
func (c Coord) Add(d Direction) (Coord, bool) {
	switch d {
	case North:
		return Coord{c.X, c.Y + 1}, true
	case South:
		return Coord{c.X, c.Y - 1}, true
	case East:
		return Coord{c.X + 1, c.Y}, true
	case West:
		return Coord{c.X - 1, c.Y}, true
	case Northeast:
		return Coord{c.X + 1, c.Y + 1}, true
	case Northwest:
		return Coord{c.X - 1, c.Y + 1}, true
	case Southeast:
		return Coord{c.X + 1, c.Y - 1}, true
	case Southwest:
		return Coord{c.X - 1, c.Y - 1}, true
	}
	return c, false
}
