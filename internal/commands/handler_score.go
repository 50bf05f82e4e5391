package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// ouchDamage is how much "ouch" costs.
const ouchDamage = 5

// doEvaluate shows the actor's meters.
func doEvaluate(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	return cmdCtx.Self(cmdCtx.Actor.Meters.Format())
}

func doOuch(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	cmdCtx.Actor.Hurt(ouchDamage)
	return cmdCtx.Self(display.Colorize("that hurt a surprising amount", display.Red))
}

func doLoc(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	c := cmdCtx.Actor.Location
	return cmdCtx.Self(fmt.Sprintf("you are standing at coordinate %d,%d", c.X, c.Y))
}

// doWho lists connected players. Players without a connection are left out.
func doWho(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	var names []string
	for _, p := range cmdCtx.Tx.Players() {
		if p.Sink() != nil {
			names = append(names, p.Name)
		}
	}
	return cmdCtx.Self("players online:\n" + strings.Join(indent(names), "\n"))
}
