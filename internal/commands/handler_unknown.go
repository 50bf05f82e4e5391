package commands

import (
	"context"

	"github.com/pmengelbert/ennui/internal/messaging"
)

// insults answer anything the verb table does not recognize.
var insults = []string{
	"dude wtf",
	"i think you should leave",
	"i'll have to ask my lawyer about that",
	"that's ... uncommon",
	"that's an interesting theory... but will it hold up in the laboratory?",
}

func (h *Handler) doUnknown(ctx context.Context, cmdCtx *CommandContext) (messaging.Audience, messaging.Message, error) {
	return cmdCtx.Self(insults[h.pick(len(insults))])
}
