package commands

import (
	"context"

	"github.com/pmengelbert/ennui/internal/messaging"
)

func doQuit(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	return messaging.Audience{}, messaging.Message{}, ErrQuit
}
