package player

import (
	"bufio"
	"fmt"
	"io"
	"unicode"

	"github.com/pmengelbert/ennui/internal"
	"github.com/pmengelbert/ennui/internal/display"
)

const (
	maxNameTries  = 3
	minNameLength = 2
	maxNameLength = 16
)

// loginFlow asks a new connection who they are.
type loginFlow struct {
	online func(name string) bool
}

func (f *loginFlow) Run(r *bufio.Reader, w io.Writer) (string, error) {
	if _, err := io.WriteString(w, "welcome to ennui!\n"); err != nil {
		return "", err
	}

	for {
		name, err := internal.Prompt(r, w, "by what name do you wish to be known? ",
			internal.WithMaxTries(maxNameTries),
			internal.WithValidator(f.validName))
		if err != nil {
			return "", err
		}
		name = display.Capitalize(name)

		ok, err := internal.PromptYN(r, w, fmt.Sprintf("did I get that right, %s (y/n)? ", name))
		if err != nil {
			return "", err
		}
		if ok {
			return name, nil
		}
	}
}

func (f *loginFlow) validName(name string) (bool, string) {
	if len(name) < minNameLength || len(name) > maxNameLength {
		return false, fmt.Sprintf("names are %d to %d letters long.\n", minNameLength, maxNameLength)
	}
	for _, r := range name {
		if !unicode.IsLetter(r) {
			return false, "names may only contain letters.\n"
		}
	}
	if f.online != nil && f.online(name) {
		return false, "someone by that name is already here.\n"
	}
	return true, ""
}
