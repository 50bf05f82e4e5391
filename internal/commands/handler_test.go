package commands

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"
	"github.com/pmengelbert/ennui/internal/combat"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/help"
	"github.com/pmengelbert/ennui/internal/messaging"
)

type recordingSender struct {
	mu     sync.Mutex
	events []messaging.Envelope
}

func (s *recordingSender) Send(e messaging.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.events = append(s.events, e)
	return nil
}

type recordingFighter struct {
	fights [][2]uuid.UUID
	err    error
}

func (f *recordingFighter) Fight(tx *game.Tx, aggressor, defender uuid.UUID) error {
	if f.err != nil {
		return f.err
	}
	f.fights = append(f.fights, [2]uuid.UUID{aggressor, defender})
	return nil
}

type fakeHelp map[string]help.Entry

func (h fakeHelp) Lookup(ctx context.Context, keyword string) (help.Entry, error) {
	e, ok := h[keyword]
	if !ok {
		return help.Entry{}, help.ErrNotFound
	}
	return e, nil
}

func uint64p(n uint64) *uint64 {
	return &n
}

// testWorld is a small map:
//
//	(0,1) north road, behind a locked guard
//	(0,0) town square, with a closed door to the east shed
//	(0,-1) south road
type testWorld struct {
	world   *game.WorldState
	players map[string]*game.Player
}

func newTestWorld(t *testing.T) *testWorld {
	t.Helper()

	square := &game.Room{
		X: 0, Y: 0, Name: "Town Square",
		Items: game.NewItemList(
			&game.Item{Kind: game.ItemHoldable, Name: "sword", Handle: game.Handle{"sword"}},
			&game.Item{Kind: game.ItemScenery, Name: "fountain", Handle: game.Handle{"fountain"}},
			&game.Item{Kind: game.ItemContainer, Name: "bag", Handle: game.Handle{"bag"}, Items: game.NewItemList(
				&game.Item{Kind: game.ItemEdible, Name: "apple", Handle: game.Handle{"apple"}},
			)},
			&game.Item{Kind: game.ItemGuard, Name: "guard", Handle: game.Handle{"guard"},
				Guard: &game.Guard{Direction: game.North, State: game.DoorLocked, Keyhole: uint64p(9)},
				Items: game.NewItemList(&game.Item{Kind: game.ItemHoldable, Name: "coin", Handle: game.Handle{"coin"}}),
			},
		),
		Doors: map[game.Direction]*game.Door{
			game.East: {State: game.DoorClosed, Keyhole: uint64p(7)},
		},
	}
	rooms := []*game.Room{
		square,
		{X: 0, Y: 1, Name: "North Road"},
		{X: 0, Y: -1, Name: "South Road"},
		{X: 1, Y: 0, Name: "Shed"},
	}
	world, err := game.NewWorldState(rooms)
	if err != nil {
		t.Fatalf("building world: %v", err)
	}

	tw := &testWorld{world: world, players: map[string]*game.Player{}}
	for name, c := range map[string]game.Coord{"Alice": {X: 0, Y: 0}, "Bob": {X: 0, Y: 0}, "Carol": {X: 0, Y: -1}} {
		p := game.NewPlayer(name, nil)
		p.Location = c
		if err := world.AddPlayer(p); err != nil {
			t.Fatalf("adding %s: %v", name, err)
		}
		tw.players[name] = p
	}

	alice := tw.players["Alice"]
	alice.Inventory.Insert(&game.Item{Kind: game.ItemHoldable, Name: "rock", Handle: game.Handle{"rock"}})
	alice.Inventory.Insert(&game.Item{Kind: game.ItemClothing, Name: "cloak", Handle: game.Handle{"cloak"}})
	alice.Inventory.Insert(&game.Item{Kind: game.ItemKey, Name: "key", Handle: game.Handle{"key"}, Key: 9})
	alice.Clothing.Insert(&game.Item{Kind: game.ItemClothing, Name: "hat", Handle: game.Handle{"hat"}})

	return tw
}

func (tw *testWorld) id(name string) uuid.UUID {
	return tw.players[name].Id
}

func TestHandler_resolve(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world)

	tests := map[string]struct {
		verb string
		exp  string
	}{
		"exact":                  {verb: "north", exp: "north"},
		"single letter walks":    {verb: "n", exp: "north"},
		"two letters":            {verb: "no", exp: "north"},
		"three letters":          {verb: "nor", exp: "north"},
		"four letters":           {verb: "nort", exp: "north"},
		"case folded":            {verb: "N", exp: "north"},
		"east beats evaluate":    {verb: "e", exp: "east"},
		"west beats wear":        {verb: "w", exp: "west"},
		"up beats unlock":        {verb: "u", exp: "up"},
		"down beats drop":        {verb: "d", exp: "down"},
		"look beats loc":         {verb: "lo", exp: "look"},
		"exact loc":              {verb: "loc", exp: "loc"},
		"help beats hit":         {verb: "h", exp: "help"},
		"sole prefix":            {verb: "inv", exp: "inventory"},
		"get is its own command": {verb: "ge", exp: "get"},
		"tie goes to catch-all":  {verb: "g", exp: ""},
		"open and ouch tie":      {verb: "o", exp: ""},
		"unknown":                {verb: "xyzzy", exp: ""},
		"empty":                  {verb: "", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "command", h.resolve(tt.verb).Name, tt.exp)
		})
	}
}

func TestHandler_Exec(t *testing.T) {
	tests := map[string]struct {
		actor     string
		line      string
		expSelf   string
		expOthers string
		expCount  int
		check     func(t *testing.T, tw *testWorld)
	}{
		"take from floor": {
			actor: "Alice", line: "take sword",
			expSelf: "you take the sword", expOthers: "Alice takes a sword", expCount: 1,
			check: func(t *testing.T, tw *testWorld) {
				testutil.AssertEqual(t, "held", tw.players["Alice"].Inventory.Find(game.ParseGrabber("sword")) != nil, true)
			},
		},
		"get prefix takes": {
			actor: "Alice", line: "ge sword",
			expSelf: "you take the sword", expOthers: "Alice takes a sword", expCount: 1,
		},
		"take scenery": {
			actor: "Alice", line: "take fountain",
			expSelf: "whoa there big guy. the fountain isn't going anywhere",
		},
		"take missing": {
			actor: "Alice", line: "take spoon",
			expSelf: "you don't see a spoon here",
		},
		"take from container": {
			actor: "Alice", line: "take apple from bag",
			expSelf: "you take the apple from the bag", expOthers: "Alice takes an apple from a bag", expCount: 1,
		},
		"take from locked guard": {
			actor: "Alice", line: "take coin guard",
			expSelf: "the guard won't let you near anything it has",
		},
		"drop": {
			actor: "Alice", line: "drop rock",
			expSelf: "you drop the rock", expOthers: "Alice drops a rock", expCount: 1,
			check: func(t *testing.T, tw *testWorld) {
				testutil.AssertEqual(t, "held", tw.players["Alice"].Inventory.Find(game.ParseGrabber("rock")) != nil, false)
			},
		},
		"drop unheld": {
			actor: "Bob", line: "drop rock",
			expSelf: "you're not holding a rock",
		},
		"put in container": {
			actor: "Alice", line: "put rock in bag",
			expSelf: "you put the rock in the bag", expOthers: "Alice puts a rock in a bag", expCount: 1,
		},
		"wear": {
			actor: "Alice", line: "wear cloak",
			expSelf: "you wear the cloak", expOthers: "Alice wears a cloak", expCount: 1,
			check: func(t *testing.T, tw *testWorld) {
				testutil.AssertEqual(t, "worn", tw.players["Alice"].Clothing.Len(), 2)
			},
		},
		"wear non clothing": {
			actor: "Alice", line: "wear rock",
			expSelf: "you can't wear a rock",
		},
		"remove": {
			actor: "Alice", line: "remove hat",
			expSelf: "you take off the hat", expOthers: "Alice takes off a hat", expCount: 1,
		},
		"remove unworn": {
			actor: "Alice", line: "remove boots",
			expSelf: "you're not wearing a boots",
		},
		"give to player": {
			actor: "Alice", line: "give rock to bob",
			expSelf: "you give Bob a rock", expOthers: "Alice gives you a rock", expCount: 1,
			check: func(t *testing.T, tw *testWorld) {
				testutil.AssertEqual(t, "bob holds", tw.players["Bob"].Inventory.Len(), 1)
			},
		},
		"give player first": {
			actor: "Alice", line: "give bob rock",
			expSelf: "you give Bob a rock", expOthers: "Alice gives you a rock", expCount: 1,
		},
		"give player in another room": {
			actor: "Alice", line: "give rock carol",
			expSelf: "that person or thing isn't here",
		},
		"give too few": {
			actor: "Alice", line: "give rock",
			expSelf: "give what to whom?",
		},
		"give too many": {
			actor: "Alice", line: "give rock to bob now",
			expSelf: "E - NUN - CI - ATE",
		},
		"give key to guard": {
			actor: "Alice", line: "give key guard",
			expSelf: "you see a guard relax a little bit. maybe now they'll let you through",
			check: func(t *testing.T, tw *testWorld) {
				_ = tw.world.Do(func(tx *game.Tx) error {
					r, _ := tx.Room(game.Coord{})
					g := r.Items.Find(game.ParseGrabber("guard"))
					testutil.AssertEqual(t, "guard state", g.Guard.State, game.DoorOpen)
					testutil.AssertEqual(t, "guard holds", g.Items.Len(), 2)
					return nil
				})
			},
		},
		"give rock to guard": {
			actor: "Alice", line: "give rock to guard",
			expSelf: "I don't think a guard can accept a rock",
		},
		"blocked by guard": {
			actor: "Alice", line: "north",
			expSelf: "a guard blocks your way",
		},
		"blocked by door": {
			actor: "Alice", line: "e",
			expSelf: "a door blocks your way",
		},
		"no exit": {
			actor: "Alice", line: "w",
			expSelf: "alas! you cannot go that way...",
		},
		"walk": {
			actor: "Alice", line: "s",
			expSelf: "you go south", expOthers: "Alice exits south", expCount: 1,
			check: func(t *testing.T, tw *testWorld) {
				testutil.AssertEqual(t, "location", tw.players["Alice"].Location, game.Coord{X: 0, Y: -1})
			},
		},
		"open door": {
			actor: "Alice", line: "open east",
			expSelf: "you open the door to the east", expOthers: "Alice opens the door to the east", expCount: 1,
		},
		"unlock unlocked door": {
			actor: "Alice", line: "unlock east",
			expSelf: "the door isn't locked",
		},
		"lock without key": {
			actor: "Alice", line: "lock east",
			expSelf: "you don't have the key",
		},
		"say": {
			actor: "Alice", line: "say hello there",
			expSelf: "you say 'hello there'", expOthers: "Alice says 'hello there'", expCount: 1,
		},
		"chat": {
			actor: "Alice", line: "chat hi",
			expSelf: "you chat 'hi'", expOthers: "Alice chats 'hi'", expCount: 2,
		},
		"look": {
			actor: "Alice", line: "look",
			expSelf: "Bob is here.",
		},
		"look at item": {
			actor: "Alice", line: "look at sword",
			expSelf: "it's a sword.",
		},
		"look in container": {
			actor: "Alice", line: "look in bag",
			expSelf: "the bag contains:\nan apple",
		},
		"inventory": {
			actor: "Alice", line: "i",
			expSelf: "you are holding:\n  a rock\n  a cloak\n  a key\nyou are wearing:\n  a hat",
		},
		"ouch": {
			actor: "Alice", line: "ouch",
			expSelf: "that hurt a surprising amount",
			check: func(t *testing.T, tw *testWorld) {
				m := tw.players["Alice"].Meters[game.MeterHit]
				testutil.AssertEqual(t, "hit", m.Current, m.Max-ouchDamage)
			},
		},
		"loc": {
			actor: "Carol", line: "loc",
			expSelf: "you are standing at coordinate 0,-1",
		},
		"hit": {
			actor: "Alice", line: "hit bob",
			expSelf: "you attack Bob!", expOthers: "Alice attacks Bob!", expCount: 1,
		},
		"hit self": {
			actor: "Alice", line: "hit alice",
			expSelf: "try 'ouch' instead",
		},
		"hit someone elsewhere": {
			actor: "Alice", line: "hit carol",
			expSelf: "you don't see carol here",
		},
		"help entry": {
			actor: "Alice", line: "help take",
			expSelf: "Take\n\nPick something up.",
		},
		"help missing": {
			actor: "Alice", line: "help xyzzy",
			expSelf: "there's no help for 'xyzzy'",
		},
		"unknown verb": {
			actor: "Alice", line: "xyzzy",
			expSelf: "i think you should leave",
		},
		"blank line": {
			actor: "Alice", line: "   ",
			expSelf: "i think you should leave",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			tw := newTestWorld(t)
			h := NewHandler(tw.world,
				WithSender(&recordingSender{}),
				WithFighter(&recordingFighter{}),
				WithHelp(fakeHelp{"take": {Title: "Take", Body: "Pick something up."}}),
				withPick(func(int) int { return 1 }),
			)

			a, m, err := h.Exec(context.Background(), tw.id(tt.actor), tt.line)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			testutil.AssertEqual(t, "self", a.Self, tw.id(tt.actor))
			if !strings.Contains(m.Self, tt.expSelf) {
				t.Errorf("self message %q does not contain %q", m.Self, tt.expSelf)
			}
			testutil.AssertEqual(t, "others", m.Others, tt.expOthers)
			testutil.AssertEqual(t, "audience", len(a.Others), tt.expCount)
			if tt.check != nil {
				tt.check(t, tw)
			}
		})
	}
}

func TestHandler_Exec_arrival(t *testing.T) {
	tw := newTestWorld(t)
	sender := &recordingSender{}
	h := NewHandler(tw.world, WithSender(sender))

	_, m, err := h.Exec(context.Background(), tw.id("Alice"), "south")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(m.Self, "South Road") {
		t.Errorf("expected new room in %q", m.Self)
	}
	if !strings.Contains(m.Self, "Carol is here.") {
		t.Errorf("expected Carol in %q", m.Self)
	}

	testutil.AssertEqual(t, "events", len(sender.events), 1)
	e := sender.events[0]
	testutil.AssertEqual(t, "event text", e.Message.Others, "Alice enters the room")
	testutil.AssertEqual(t, "event audience", len(e.Audience.Others), 1)
	testutil.AssertEqual(t, "event recipient", e.Audience.Others[0], tw.id("Carol"))
}

func TestHandler_Exec_quit(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world)

	_, _, err := h.Exec(context.Background(), tw.id("Alice"), "quit")
	testutil.AssertEqual(t, "quit", errors.Is(err, ErrQuit), true)

	// quit only signals; the connection owner removes the player.
	var present bool
	_ = tw.world.Do(func(tx *game.Tx) error {
		_, present = tx.Player(tw.id("Alice"))
		return nil
	})
	testutil.AssertEqual(t, "present", present, true)
}

func TestHandler_Exec_hitElsewhere(t *testing.T) {
	tw := newTestWorld(t)
	fighter := &recordingFighter{}
	h := NewHandler(tw.world, WithFighter(fighter))

	a, m, err := h.Exec(context.Background(), tw.id("Alice"), "hit carol")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "self", m.Self, "you don't see carol here")
	testutil.AssertEqual(t, "audience", len(a.Others), 0)
	testutil.AssertEqual(t, "fights", len(fighter.fights), 0)
}

func TestHandler_Exec_alreadyFighting(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world, WithFighter(&recordingFighter{err: combat.ErrAlreadyFighting}))

	_, m, err := h.Exec(context.Background(), tw.id("Alice"), "hit bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "self", m.Self, "you're already fighting Bob!")
}

func TestHandler_Exec_failure(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world, WithFighter(&recordingFighter{err: errors.New("boom")}))

	a, m, err := h.Exec(context.Background(), tw.id("Alice"), "hit bob")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "self", m.Self, apology)
	testutil.AssertEqual(t, "audience", len(a.Others), 0)
}

// worldCheckingHelp fails lookups made while the world is locked.
type worldCheckingHelp struct {
	world *game.WorldState
}

func (h *worldCheckingHelp) Lookup(ctx context.Context, keyword string) (help.Entry, error) {
	free := make(chan struct{})
	go func() {
		_ = h.world.Do(func(tx *game.Tx) error { return nil })
		close(free)
	}()
	select {
	case <-free:
		return help.Entry{Title: keyword, Body: "found"}, nil
	case <-time.After(time.Second):
		return help.Entry{}, errors.New("world locked during lookup")
	}
}

func TestHandler_Exec_helpOutsideLock(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world, WithHelp(&worldCheckingHelp{world: tw.world}))

	a, m, err := h.Exec(context.Background(), tw.id("Alice"), "help take")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "found", strings.Contains(m.Self, "found"), true)
	testutil.AssertEqual(t, "self", a.Self, tw.id("Alice"))
	testutil.AssertEqual(t, "audience", len(a.Others), 0)

	_, m, err = h.Exec(context.Background(), uuid.New(), "help take")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "unknown player", m.Self, apology)
}

func TestHandler_Exec_unknownPlayer(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world)

	_, m, err := h.Exec(context.Background(), uuid.New(), "look")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "self", m.Self, apology)
}

func TestHandler_Exec_conservesItems(t *testing.T) {
	tw := newTestWorld(t)
	h := NewHandler(tw.world)

	count := func() int {
		var n int
		_ = tw.world.Do(func(tx *game.Tx) error {
			for _, p := range tx.Players() {
				n += p.Inventory.Count() + p.Clothing.Count()
			}
			r, _ := tx.Room(game.Coord{})
			n += r.Items.Count()
			return nil
		})
		return n
	}
	before := count()

	lines := []string{
		"take sword", "give sword bob", "wear cloak", "remove hat", "put hat in bag",
		"take apple bag", "drop rock", "give key guard", "take coin guard", "put bag in bag",
	}
	for _, line := range lines {
		if _, _, err := h.Exec(context.Background(), tw.id("Alice"), line); err != nil {
			t.Fatalf("%s: %v", line, err)
		}
	}

	testutil.AssertEqual(t, "items", count(), before)
}
