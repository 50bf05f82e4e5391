package help

import (
	"fmt"
	"strings"

	"github.com/pixil98/go-errors"
)

// Entry is one help topic. Hooks are the keywords that find it.
type Entry struct {
	Title string   `json:"title"`
	Body  string   `json:"body"`
	Hooks []string `json:"hooks"`
}

// Validate satisfies storage.ValidatingSpec
func (e *Entry) Validate() error {
	el := errors.NewErrorList()
	if e.Title == "" {
		el.Add(fmt.Errorf("help title is required"))
	}
	if len(e.Hooks) == 0 {
		el.Add(fmt.Errorf("help %q: at least one hook is required", e.Title))
	}
	for _, h := range e.Hooks {
		if strings.TrimSpace(h) == "" {
			el.Add(fmt.Errorf("help %q: hooks must not be blank", e.Title))
		}
	}
	return el.Err()
}

func (e Entry) String() string {
	return e.Title + "\n\n" + e.Body
}
