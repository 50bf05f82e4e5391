package commands

import (
	"context"
	"strings"

	"github.com/pmengelbert/ennui/internal/messaging"
)

func doInventory(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	lines := []string{"you are holding:"}
	lines = append(lines, indent(cmdCtx.Actor.Inventory.Names())...)
	lines = append(lines, "you are wearing:")
	lines = append(lines, indent(cmdCtx.Actor.Clothing.Names())...)
	return cmdCtx.Self(strings.Join(lines, "\n"))
}

// indent returns names indented for a listing, or a single "nothing" line.
func indent(names []string) []string {
	if len(names) == 0 {
		return []string{"  nothing"}
	}
	out := make([]string, 0, len(names))
	for _, n := range names {
		out = append(out, "  "+n)
	}
	return out
}
