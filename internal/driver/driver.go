package driver

import (
	"context"
	"log/slog"
	"time"
)

const (
	DefaultTickLength = time.Second * 2
)

// Ticker is advanced once per driver tick.
type Ticker interface {
	Tick(context.Context) error
}

// TickFunc adapts a function to a Ticker.
type TickFunc func(context.Context) error

func (f TickFunc) Tick(ctx context.Context) error {
	return f(ctx)
}

// MudDriver advances the world clock, ticking every registered Ticker.
type MudDriver struct {
	tickLength time.Duration
	tickers    []Ticker
}

func NewMudDriver(tickers []Ticker, opts ...MudDriverOpt) *MudDriver {
	d := &MudDriver{
		tickLength: DefaultTickLength,
		tickers:    tickers,
	}

	for _, opt := range opts {
		opt(d)
	}

	return d
}

func (d *MudDriver) Start(ctx context.Context) error {
	ticker := time.NewTicker(d.tickLength)
	defer ticker.Stop()

	slog.InfoContext(ctx, "driver started", "tick", d.tickLength)
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			err := d.Tick(ctx)
			if err != nil {
				return err
			}
		}
	}
}

func (d *MudDriver) Tick(ctx context.Context) error {
	for _, t := range d.tickers {
		if err := t.Tick(ctx); err != nil {
			return err
		}
	}
	return nil
}
