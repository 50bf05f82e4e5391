package game

import (
	"fmt"
	"strings"
)

// MeterKind names a depletable player attribute.
type MeterKind string

const (
	MeterHit       MeterKind = "hit"
	MeterMana      MeterKind = "mana"
	MeterMovement  MeterKind = "movement"
	MeterStrength  MeterKind = "strength"
	MeterDexterity MeterKind = "dexterity"
	MeterWeight    MeterKind = "weight"
	MeterHeight    MeterKind = "height"
)

// MeterKinds is the display order used by "evaluate".
var MeterKinds = []MeterKind{
	MeterHit, MeterMana, MeterMovement, MeterStrength, MeterDexterity, MeterWeight, MeterHeight,
}

// Meter is a current/max pair.
type Meter struct {
	Current int64 `json:"current"`
	Max     int64 `json:"max"`
}

func (m Meter) String() string {
	return fmt.Sprintf("[%d / %d]", m.Current, m.Max)
}

// Meters holds a player's attribute meters.
type Meters map[MeterKind]Meter

// DefaultMeters returns the meters a freshly created player starts with.
func DefaultMeters() Meters {
	return Meters{
		MeterHit:       {Current: 100, Max: 100},
		MeterMana:      {Current: 100, Max: 100},
		MeterMovement:  {Current: 100, Max: 100},
		MeterStrength:  {Current: 10, Max: 10},
		MeterDexterity: {Current: 10, Max: 10},
		MeterWeight:    {Current: 150, Max: 150},
		MeterHeight:    {Current: 6, Max: 6},
	}
}

// Adjust adds delta to the current value of kind, clamped to [0, max].
func (m Meters) Adjust(kind MeterKind, delta int64) Meter {
	mt := m[kind]
	mt.Current += delta
	if mt.Current < 0 {
		mt.Current = 0
	}
	if mt.Current > mt.Max {
		mt.Current = mt.Max
	}
	m[kind] = mt
	return mt
}

// Format renders every known meter, one per line, as "HIT: [90 / 100]".
func (m Meters) Format() string {
	var lines []string
	for _, kind := range MeterKinds {
		if mt, ok := m[kind]; ok {
			lines = append(lines, fmt.Sprintf("%s: %s", strings.ToUpper(string(kind)), mt))
		}
	}
	return strings.Join(lines, "\n")
}
