package player

import (
	"bufio"
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"

	"github.com/pmengelbert/ennui/internal/commands"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

// Session is one connected player's read and dispatch loop.
type Session struct {
	player *game.Player
	input  *bufio.Reader
	world  *game.WorldState
	exec   Executor
	bc     *messaging.Broadcaster
	prompt *display.Prompt
}

// Play runs until the player quits, is removed from the world, the
// connection drops or ctx is canceled. The player is always out of the world
// when Play returns.
func (s *Session) Play(ctx context.Context) error {
	id := s.player.Id
	defer func() {
		if _, err := s.world.RemovePlayer(id); err == nil {
			slog.InfoContext(ctx, "player left the world", "name", s.player.Name, "player", id)
		}
	}()

	// Read input lines into a channel
	stop := make(chan struct{})
	defer close(stop)
	inputChan := make(chan string)
	inputErrChan := make(chan error, 1)
	go func() {
		defer close(inputChan)
		for {
			line, err := s.input.ReadString('\n')
			if line != "" {
				select {
				case inputChan <- line:
				case <-stop:
					return
				}
			}
			if err != nil {
				inputErrChan <- err
				return
			}
		}
	}()

	// Show the player their current room on login
	if err := s.run(ctx, "look"); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return nil

		case <-s.player.Done():
			return nil

		case line, ok := <-inputChan:
			if !ok {
				if err := <-inputErrChan; !errors.Is(err, io.EOF) {
					return err
				}
				return nil
			}

			line = strings.TrimSpace(line)
			if line == "" {
				if err := s.showPrompt(); err != nil {
					return err
				}
				continue
			}

			err := s.run(ctx, line)
			if errors.Is(err, commands.ErrQuit) {
				return nil
			}
			if err != nil {
				return err
			}
		}
	}
}

// run executes one line, delivers the result and prompts again.
func (s *Session) run(ctx context.Context, line string) error {
	audience, msg, err := s.exec.Exec(ctx, s.player.Id, line)
	if errors.Is(err, commands.ErrQuit) {
		_, _ = io.WriteString(s.player.Sink(), "Goodbye!\n")
		return commands.ErrQuit
	}
	if err != nil {
		return err
	}

	s.bc.Broadcast(ctx, audience, msg)
	return s.showPrompt()
}

func (s *Session) showPrompt() error {
	var data display.PromptData
	_ = s.world.Do(func(tx *game.Tx) error {
		data = display.PromptData{
			Name:    s.player.Name,
			Hit:     s.player.Meters[game.MeterHit].Current,
			MaxHit:  s.player.Meters[game.MeterHit].Max,
			Mana:    s.player.Meters[game.MeterMana].Current,
			MaxMana: s.player.Meters[game.MeterMana].Max,
			Move:    s.player.Meters[game.MeterMovement].Current,
			MaxMove: s.player.Meters[game.MeterMovement].Max,
		}
		return nil
	})
	_, err := io.WriteString(s.player.Sink(), s.prompt.Render(data))
	return err
}
