package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

func doLook(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	args := cmdCtx.Args
	switch {
	case len(args) == 0:
		r, err := cmdCtx.Room()
		if err != nil {
			return messaging.Audience{}, messaging.Message{}, err
		}
		return cmdCtx.Self(DescribeRoom(cmdCtx.Tx, r, cmdCtx.Actor.Id))
	case len(args) == 1:
		return lookAt(cmdCtx, args[0])
	case len(args) == 2 && args[0] == "at":
		return lookAt(cmdCtx, args[1])
	case len(args) == 2 && args[0] == "in":
		return lookIn(cmdCtx, args[1])
	case len(args) == 2:
		return cmdCtx.Self(fmt.Sprintf(`"look at" or "look in", but don't "look %s"`, args[0]))
	default:
		return cmdCtx.Self("tell me ONE thing to look at, not a whole bunch at once")
	}
}

// DescribeRoom renders a room as seen by the player with id viewer.
func DescribeRoom(tx *game.Tx, r *game.Room, viewer uuid.UUID) string {
	var sb strings.Builder
	sb.WriteString(display.Colorize(r.Name, display.Cyan))
	sb.WriteString("\n")
	if r.Description != "" {
		sb.WriteString(r.Description)
		sb.WriteString("\n")
	}

	exits := r.Exits(tx.RoomExists)
	short := make([]string, 0, len(exits))
	for _, d := range exits {
		short = append(short, d.Short())
	}
	sb.WriteString(display.Colorize(fmt.Sprintf("exits: [ %s ]", strings.Join(short, " ")), display.Green))

	for _, it := range r.Items.All() {
		sb.WriteString("\n")
		sb.WriteString(it.RoomLine())
	}
	for _, id := range r.PlayerIds(viewer) {
		if p, ok := tx.Player(id); ok {
			sb.WriteString("\n")
			sb.WriteString(display.Colorize(fmt.Sprintf("%s is here.", p.Name), display.Yellow))
		}
	}
	return sb.String()
}

// findVisible looks for something the actor can see by name: a player in the
// room, then room items, then what the actor carries and wears.
func findVisible(cmdCtx *CommandContext, r *game.Room, name string) game.Describer {
	if p := cmdCtx.Tx.FindPlayerIn(r, name); p != nil {
		return p
	}
	g := game.ParseGrabber(name)
	for _, list := range []*game.ItemList{r.Items, cmdCtx.Actor.Inventory, cmdCtx.Actor.Clothing} {
		if it := list.Find(g); it != nil {
			return it
		}
	}
	return nil
}

func lookAt(cmdCtx *CommandContext, name string) (messaging.Audience, messaging.Message, error) {
	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}
	thing := findVisible(cmdCtx, r, name)
	if thing == nil {
		return cmdCtx.Self(fmt.Sprintf("i don't see %s here...", display.Article(name)))
	}
	return cmdCtx.Self(thing.Describe())
}

func lookIn(cmdCtx *CommandContext, name string) (messaging.Audience, messaging.Message, error) {
	r, err := cmdCtx.Room()
	if err != nil {
		return messaging.Audience{}, messaging.Message{}, err
	}
	holder, ok := locate(cmdCtx, r, game.ParseGrabber(name))
	if !ok {
		return cmdCtx.Self(fmt.Sprintf("i don't see %s here...", display.Article(name)))
	}
	list, it, err := cmdCtx.Tx.Items(holder)
	if err != nil {
		return containerError(cmdCtx, it, name, err)
	}
	names := list.Names()
	if len(names) == 0 {
		return cmdCtx.Self(fmt.Sprintf("the %s is empty", it.Name))
	}
	return cmdCtx.Self(fmt.Sprintf("the %s contains:\n%s", it.Name, strings.Join(names, "\n")))
}
