package commands

import "errors"

// ErrQuit is returned by Exec when the player asked to leave. The caller owns
// the connection and is responsible for removing the player.
var ErrQuit = errors.New("player quit")

// UserError represents an error that should be displayed to the user.
// These are not system failures - just invalid input or usage.
type UserError struct {
	Message string
}

func (e *UserError) Error() string {
	return e.Message
}

// NewUserError creates a user-facing error.
func NewUserError(msg string) *UserError {
	return &UserError{Message: msg}
}
