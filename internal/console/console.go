package console

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/rivo/tview"
)

// DefaultRefresh is how often the player table is redrawn.
const DefaultRefresh = time.Second

// row is one player as shown on the console.
type row struct {
	Name     string
	Location game.Coord
	Hit      game.Meter
	Fighting bool
	Human    bool
}

// snapshot reads every player under the world lock.
func snapshot(world *game.WorldState) []row {
	var rows []row
	_ = world.Do(func(tx *game.Tx) error {
		for _, p := range tx.Players() {
			rows = append(rows, row{
				Name:     p.Name,
				Location: p.Location,
				Hit:      p.Meters[game.MeterHit],
				Fighting: p.InCombat,
				Human:    p.Sink() != nil,
			})
		}
		return nil
	})
	return rows
}

// Console is an operator view of the running world: who is where, who is
// fighting, and the server log.
type Console struct {
	world   *game.WorldState
	refresh time.Duration

	app   *tview.Application
	table *tview.Table
	logs  *tview.TextView
}

type ConsoleOpt func(*Console)

// WithRefresh sets how often the player table is redrawn.
func WithRefresh(d time.Duration) ConsoleOpt {
	return func(c *Console) {
		c.refresh = d
	}
}

func NewConsole(world *game.WorldState, opts ...ConsoleOpt) *Console {
	c := &Console{
		world:   world,
		refresh: DefaultRefresh,
		app:     tview.NewApplication(),
		table:   tview.NewTable().SetFixed(1, 0),
		logs:    tview.NewTextView().SetScrollable(true),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.table.SetBorder(true).SetTitle(" players ")
	c.logs.SetBorder(true).SetTitle(" log ")
	c.logs.SetChangedFunc(func() {
		c.app.Draw()
	})

	layout := tview.NewFlex().SetDirection(tview.FlexRow).
		AddItem(c.table, 0, 2, false).
		AddItem(c.logs, 0, 1, false)
	c.app.SetRoot(layout, true)
	return c
}

// LogWriter is where log output should go while the console owns the
// terminal.
func (c *Console) LogWriter() io.Writer {
	return c.logs
}

// Start runs the console until ctx is canceled.
func (c *Console) Start(ctx context.Context) error {
	go func() {
		t := time.NewTicker(c.refresh)
		defer t.Stop()
		for {
			c.app.QueueUpdateDraw(func() {
				fill(c.table, snapshot(c.world))
			})
			select {
			case <-ctx.Done():
				c.app.Stop()
				return
			case <-t.C:
			}
		}
	}()

	if err := c.app.Run(); err != nil {
		return fmt.Errorf("running console: %w", err)
	}
	return nil
}

var headers = []string{"name", "room", "hp", "state"}

// fill redraws the table from rows.
func fill(table *tview.Table, rows []row) {
	table.Clear()
	for col, h := range headers {
		table.SetCell(0, col, tview.NewTableCell(h).
			SetTextColor(tcell.ColorYellow).
			SetSelectable(false))
	}

	for i, r := range rows {
		state, color := "idle", tcell.ColorWhite
		switch {
		case r.Fighting:
			state, color = "fighting", tcell.ColorRed
		case !r.Human:
			state, color = "npc", tcell.ColorDarkCyan
		}

		cells := []string{r.Name, r.Location.String(), strconv.FormatInt(r.Hit.Current, 10) + "/" + strconv.FormatInt(r.Hit.Max, 10), state}
		for col, text := range cells {
			table.SetCell(i+1, col, tview.NewTableCell(text).SetTextColor(color))
		}
	}
}
