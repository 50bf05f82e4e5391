package commands

import (
	"context"
	"fmt"
	"strings"

	"github.com/pmengelbert/ennui/internal/messaging"
)

func doSay(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	if len(cmdCtx.Args) == 0 {
		return cmdCtx.Self("say what?")
	}
	text := strings.Join(cmdCtx.Args, " ")
	return roomEvent(cmdCtx,
		fmt.Sprintf("you say '%s'", text),
		fmt.Sprintf("%s says '%s'", cmdCtx.Actor.Name, text))
}

// doChat speaks to every player in the world.
func doChat(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	if len(cmdCtx.Args) == 0 {
		return cmdCtx.Self("chat what?")
	}
	text := strings.Join(cmdCtx.Args, " ")
	return messaging.Audience{Self: cmdCtx.Actor.Id, Others: everyone(cmdCtx)}, messaging.Message{
		Self:   fmt.Sprintf("you chat '%s'", text),
		Others: fmt.Sprintf("%s chats '%s'", cmdCtx.Actor.Name, text),
	}, nil
}
