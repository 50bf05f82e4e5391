package game

import (
	"strconv"
	"strings"

	"golang.org/x/text/cases"
)

// Fold case-folds s for comparisons against handles and verbs.
// A cases.Caser must not be shared between goroutines.
func Fold(s string) string {
	return cases.Fold().String(s)
}

// Handle is the set of aliases an entity answers to in commands.
type Handle []string

// Matches reports whether name is one of the handle's aliases, ignoring case.
func (h Handle) Matches(name string) bool {
	name = Fold(name)
	for _, alias := range h {
		if Fold(alias) == name {
			return true
		}
	}
	return false
}

// Grabber is a parsed item reference: a handle plus a zero-based ordinal
// selecting among several matches. "2.sword" is the second sword.
type Grabber struct {
	Handle string
	Index  int
}

// ParseGrabber parses "N.handle" into a Grabber. Input without a valid
// positive ordinal is treated as a plain handle.
func ParseGrabber(s string) Grabber {
	s = strings.TrimSpace(s)
	prefix, rest, ok := strings.Cut(s, ".")
	if ok && rest != "" {
		if n, err := strconv.Atoi(prefix); err == nil && n > 0 {
			return Grabber{Handle: rest, Index: n - 1}
		}
	}
	return Grabber{Handle: s}
}

func (g Grabber) String() string {
	if g.Index == 0 {
		return g.Handle
	}
	return strconv.Itoa(g.Index+1) + "." + g.Handle
}
