package help

import (
	"context"
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/pixil98/go-testutil"
)

func seededStore(t *testing.T, path string) *Store {
	t.Helper()
	s, err := Open(path)
	if err != nil {
		t.Fatalf("opening store: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })

	err = s.Seed(context.Background(), []*Entry{
		{Title: "LOOK", Body: "look around you.", Hooks: []string{"look", "examine"}},
		{Title: "TAKE", Body: "pick something up.", Hooks: []string{"take", "get"}},
	})
	if err != nil {
		t.Fatalf("seeding store: %v", err)
	}
	return s
}

func TestStore_Lookup(t *testing.T) {
	tests := map[string]struct {
		keyword  string
		expTitle string
		expHooks string
		expErr   error
	}{
		"exact hook": {
			keyword:  "look",
			expTitle: "LOOK",
			expHooks: "examine,look",
		},
		"alternate hook": {
			keyword:  "examine",
			expTitle: "LOOK",
			expHooks: "examine,look",
		},
		"case insensitive": {
			keyword:  "GET",
			expTitle: "TAKE",
			expHooks: "get,take",
		},
		"unknown keyword": {
			keyword: "butts",
			expErr:  ErrNotFound,
		},
	}

	s := seededStore(t, ":memory:")
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			e, err := s.Lookup(context.Background(), tt.keyword)
			if tt.expErr != nil {
				testutil.AssertEqual(t, "error", errors.Is(err, tt.expErr), true)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "title", e.Title, tt.expTitle)
			testutil.AssertEqual(t, "hooks", strings.Join(e.Hooks, ","), tt.expHooks)
		})
	}
}

func TestStore_file(t *testing.T) {
	s := seededStore(t, filepath.Join(t.TempDir(), "help.db"))

	e, err := s.Lookup(context.Background(), "take")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	testutil.AssertEqual(t, "string", e.String(), "TAKE\n\npick something up.")
}

func TestEntry_Validate(t *testing.T) {
	tests := map[string]struct {
		entry  Entry
		expErr string
	}{
		"valid": {
			entry: Entry{Title: "LOOK", Hooks: []string{"look"}},
		},
		"missing title": {
			entry:  Entry{Hooks: []string{"look"}},
			expErr: "help title is required",
		},
		"missing hooks": {
			entry:  Entry{Title: "LOOK"},
			expErr: "at least one hook is required",
		},
		"blank hook": {
			entry:  Entry{Title: "LOOK", Hooks: []string{" "}},
			expErr: "hooks must not be blank",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			err := tt.entry.Validate()
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
