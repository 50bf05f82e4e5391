package display

import (
	"testing"

	"github.com/pixil98/go-testutil"
)

func TestArticle(t *testing.T) {
	tests := map[string]struct {
		name string
		exp  string
	}{
		"consonant": {name: "sword", exp: "a sword"},
		"vowel":     {name: "apple", exp: "an apple"},
		"capital":   {name: "Orb", exp: "an Orb"},
		"empty":     {name: "", exp: ""},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			testutil.AssertEqual(t, "article", Article(tt.name), tt.exp)
		})
	}
}

func TestColorize(t *testing.T) {
	testutil.AssertEqual(t, "red", Colorize("ouch", Red), "\x1b[31mouch\x1b[0m")
	testutil.AssertEqual(t, "empty", Colorize("", Red), "")
}

func TestPrompt_Render(t *testing.T) {
	tests := map[string]struct {
		tmpl   string
		exp    string
		expErr string
	}{
		"default": {
			exp: "[90/100hp 100/100mp] > ",
		},
		"sprig": {
			tmpl: `{{ .Name | upper }}> `,
			exp:  "ANN> ",
		},
		"bad template": {
			tmpl:   `{{ .Hit `,
			expErr: "parsing template",
		},
		"bad field": {
			tmpl: `{{ .Gold }}`,
			exp:  "> ",
		},
	}

	data := PromptData{Name: "Ann", Hit: 90, MaxHit: 100, Mana: 100, MaxMana: 100}
	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			p, err := NewPrompt(tt.tmpl)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "prompt", p.Render(data), tt.exp)
		})
	}
}

func TestWrapWidth(t *testing.T) {
	testutil.AssertEqual(t, "wrapped", WrapWidth("one two three", 7), "one two\nthree")
	testutil.AssertEqual(t, "capitalized", Capitalize("bob"), "Bob")
}
