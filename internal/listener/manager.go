package listener

import (
	"context"
	"io"
	"log/slog"

	"github.com/pmengelbert/ennui/internal/player"
)

// SessionRunner plays one connection to completion.
type SessionRunner interface {
	RunSession(ctx context.Context, conn io.ReadWriter) error
}

var _ SessionRunner = (*player.PlayerManager)(nil)

// ConnectionManager hands accepted connections to the player layer.
type ConnectionManager struct {
	pm SessionRunner
}

func NewConnectionManager(pm SessionRunner) *ConnectionManager {
	return &ConnectionManager{
		pm: pm,
	}
}

func (m *ConnectionManager) AcceptConnection(ctx context.Context, conn io.ReadWriter) {
	if err := m.pm.RunSession(ctx, conn); err != nil {
		slog.WarnContext(ctx, "player session", "error", err)
	}
}
