package npc

import (
	"context"
	"encoding/json"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/pixil98/go-testutil"
	"github.com/pmengelbert/ennui/internal/game"
	"github.com/pmengelbert/ennui/internal/messaging"
)

type recordingExec struct {
	mu    sync.Mutex
	lines []string
}

func (e *recordingExec) Exec(ctx context.Context, id uuid.UUID, line string) (messaging.Audience, messaging.Message, error) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.lines = append(e.lines, line)
	return messaging.ToSelf(id), messaging.Message{Self: line}, nil
}

func (e *recordingExec) count() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.lines)
}

func (e *recordingExec) first() string {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.lines[0]
}

type recordingSender struct {
	mu sync.Mutex
	n  int
}

func (s *recordingSender) Send(messaging.Envelope) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.n++
	return nil
}

func waitFor(t *testing.T, cond func() bool) {
	t.Helper()
	deadline := time.Now().Add(5 * time.Second)
	for !cond() {
		if time.Now().After(deadline) {
			t.Fatal("timed out waiting for condition")
		}
		time.Sleep(time.Millisecond)
	}
}

func TestSpec_Validate(t *testing.T) {
	tests := map[string]struct {
		spec   Spec
		expErr string
	}{
		"valid walker": {
			spec: Spec{Name: "rat", AI: Walker},
		},
		"missing name": {
			spec:   Spec{AI: Static},
			expErr: "npc name is required",
		},
		"talker without phrases": {
			spec:   Spec{Name: "parrot", AI: Talker},
			expErr: "talkers need at least one phrase",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.spec.Validate()
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
		})
	}
}

func TestSpec_UnmarshalJSON(t *testing.T) {
	var spec Spec
	err := json.Unmarshal([]byte(`{"name":"parrot","x":1,"y":2,"ai":"talker","phrases":["hello"]}`), &spec)
	if err != nil {
		t.Fatalf("unmarshalling: %v", err)
	}
	testutil.AssertEqual(t, "ai", spec.AI, Talker)
	testutil.AssertEqual(t, "location", spec.newPlayer().Location, game.Coord{X: 1, Y: 2})

	err = json.Unmarshal([]byte(`{"name":"parrot","ai":"dancer"}`), &spec)
	testutil.AssertErrorContains(t, err, "unknown npc behavior")
}

func TestActor_line(t *testing.T) {
	talker := &actor{behavior: Talker, phrases: []string{"polly wants a cracker"}}
	testutil.AssertEqual(t, "talker", talker.line(), "say polly wants a cracker")

	walker := &actor{behavior: Walker}
	_, ok := game.ParseDirection(walker.line())
	testutil.AssertEqual(t, "walker direction", ok, true)

	static := &actor{behavior: Static}
	testutil.AssertEqual(t, "static", static.line(), "")
}

func TestManager_SpawnDespawn(t *testing.T) {
	world, err := game.NewWorldState([]*game.Room{{Name: "square"}})
	if err != nil {
		t.Fatalf("creating world: %v", err)
	}
	exec := &recordingExec{}
	sender := &recordingSender{}
	m := NewManager(world, exec, sender, WithInterval(time.Millisecond), WithJitter(0))

	statue, err := m.Spawn(&Spec{Name: "statue", AI: Static})
	if err != nil {
		t.Fatalf("spawning statue: %v", err)
	}
	parrot, err := m.Spawn(&Spec{Name: "parrot", AI: Talker, Phrases: []string{"hello"}})
	if err != nil {
		t.Fatalf("spawning parrot: %v", err)
	}
	testutil.AssertEqual(t, "running", m.Running(), 1)

	waitFor(t, func() bool { return exec.count() > 0 })
	testutil.AssertEqual(t, "first line", strings.HasPrefix(exec.first(), "say "), true)

	if err := m.Despawn(parrot.Id); err != nil {
		t.Fatalf("despawning: %v", err)
	}
	waitFor(t, func() bool { return m.Running() == 0 })

	_ = world.Do(func(tx *game.Tx) error {
		_, ok := tx.Player(statue.Id)
		testutil.AssertEqual(t, "statue present", ok, true)
		_, ok = tx.Player(parrot.Id)
		testutil.AssertEqual(t, "parrot present", ok, false)
		return nil
	})
}
