package command

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/pixil98/go-service"
	"github.com/pmengelbert/ennui/internal/commands"
	"github.com/pmengelbert/ennui/internal/display"
	"github.com/pmengelbert/ennui/internal/driver"
	"github.com/pmengelbert/ennui/internal/help"
	"github.com/pmengelbert/ennui/internal/listener"
	"github.com/pmengelbert/ennui/internal/messaging"
	"github.com/pmengelbert/ennui/internal/player"
)

func BuildWorkers(config interface{}) (service.WorkerList, error) {
	cfg, ok := config.(*Config)
	if !ok {
		return nil, fmt.Errorf("unable to cast config")
	}

	if err := cfg.applyEnv(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("validating config: %w", err)
	}

	workers := service.WorkerList{}

	// World snapshot
	world, err := cfg.World.BuildWorld()
	if err != nil {
		return nil, err
	}

	// The console owns the terminal, so logs move into it.
	if cfg.Console.Enabled {
		con, err := cfg.Console.BuildConsole(world)
		if err != nil {
			return nil, fmt.Errorf("creating console: %w", err)
		}
		slog.SetDefault(slog.New(slog.NewTextHandler(con.LogWriter(), nil)))
		workers["console"] = con
	}
	specs, err := cfg.World.LoadNpcs()
	if err != nil {
		return nil, err
	}
	entries, err := cfg.World.LoadHelp()
	if err != nil {
		return nil, err
	}

	// Delivery
	bc := messaging.NewBroadcaster(world, cfg.Display.broadcasterOpts()...)
	var sender messaging.Sender
	if cfg.Nats.Enabled {
		ns, err := cfg.Nats.buildNatsServer()
		if err != nil {
			return nil, fmt.Errorf("creating nats server: %w", err)
		}
		workers["nats"] = ns
		workers["deliverer"] = messaging.NewDeliverer(bc, messaging.WithBridge(ns))
		sender = messaging.NewNatsSender(ns)
	} else {
		d := messaging.NewDeliverer(bc)
		workers["deliverer"] = d
		sender = d
	}

	// Help
	helpStore, err := cfg.Help.BuildStore(context.Background(), entries)
	if err != nil {
		return nil, err
	}
	workers["help"] = &storeCloser{store: helpStore}

	// Commands and the actors that drive them
	fights, err := cfg.Combat.BuildManager(world, sender)
	if err != nil {
		return nil, fmt.Errorf("creating combat manager: %w", err)
	}
	workers["combat"] = fights

	handler := commands.NewHandler(world,
		commands.WithSender(sender),
		commands.WithFighter(fights),
		commands.WithHelp(helpStore),
	)

	npcs, err := cfg.Npc.BuildManager(world, handler, sender, specs)
	if err != nil {
		return nil, fmt.Errorf("creating npc manager: %w", err)
	}
	workers["npcs"] = npcs

	// Players
	prompt, err := display.NewPrompt(cfg.Display.Prompt)
	if err != nil {
		return nil, fmt.Errorf("building prompt: %w", err)
	}
	pm, err := player.NewPlayerManager(world, handler, bc,
		player.WithStart(cfg.World.Start),
		player.WithPrompt(prompt),
	)
	if err != nil {
		return nil, fmt.Errorf("creating player manager: %w", err)
	}
	workers["players"] = pm

	// Listeners
	cm := listener.NewConnectionManager(pm)
	listeners := make(service.WorkerList, len(cfg.Listeners))
	for i, l := range cfg.Listeners {
		lw, err := l.buildListener(cm)
		if err != nil {
			return nil, fmt.Errorf("creating listener %d: %w", i, err)
		}
		listeners[fmt.Sprintf("listener-%d", i)] = lw
	}
	workers["listeners"] = &listeners

	// Setup the mud driver
	tick, err := time.ParseDuration(cfg.TickInterval)
	if err != nil {
		return nil, fmt.Errorf("parsing tick_interval: %w", err)
	}
	workers["driver"] = driver.NewMudDriver(
		[]driver.Ticker{driver.TickFunc(world.Tick)},
		driver.WithTickLength(tick),
	)

	return workers, nil
}

// storeCloser closes the help database on shutdown.
type storeCloser struct {
	store *help.Store
}

func (c *storeCloser) Start(ctx context.Context) error {
	<-ctx.Done()
	if err := c.store.Close(); err != nil {
		slog.WarnContext(ctx, "closing help database", "error", err)
	}
	return nil
}
