package commands

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/pmengelbert/ennui/internal/help"
)

// doHelp shows the help entry for a keyword, or the command list. It runs
// detached since lookups go to the help database.
func (h *Handler) doHelp(ctx context.Context, args []string) (string, error) {
	if len(args) == 0 {
		return "try 'help <command>'. commands:\n" + strings.Join(h.Commands(), " "), nil
	}
	if h.help == nil {
		return "there's no help to be had", nil
	}

	keyword := strings.Join(args, " ")
	entry, err := h.help.Lookup(ctx, keyword)
	switch {
	case errors.Is(err, help.ErrNotFound):
		return fmt.Sprintf("there's no help for '%s'", keyword), nil
	case err != nil:
		return "", fmt.Errorf("looking up help for %q: %w", keyword, err)
	}
	return entry.String(), nil
}
