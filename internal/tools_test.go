package internal

import (
	"bufio"
	"bytes"
	"strings"
	"testing"
	"unicode"

	"github.com/pixil98/go-testutil"
)

func lettersOnly(s string) (bool, string) {
	if s == "" {
		return false, "bad\n"
	}
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false, "bad\n"
		}
	}
	return true, ""
}

func TestPrompt(t *testing.T) {
	tests := map[string]struct {
		input     string
		opts      []promptOption
		exp       string
		expOutput string
		expErr    string
	}{
		"plain answer": {
			input:     "hello\r\n",
			exp:       "hello",
			expOutput: "? ",
		},
		"retries until valid": {
			input:     "b0b\nbob\n",
			opts:      []promptOption{WithValidator(lettersOnly)},
			exp:       "bob",
			expOutput: "? bad\n? ",
		},
		"gives up after max tries": {
			input:     "1\n2\n",
			opts:      []promptOption{WithValidator(lettersOnly), WithMaxTries(2)},
			expErr:    "too many tries",
			expOutput: "? bad\n? bad\ntoo many tries\n",
		},
		"final line without newline": {
			input:     "bob",
			exp:       "bob",
			expOutput: "? ",
		},
		"closed input": {
			input:     "",
			expErr:    "EOF",
			expOutput: "? ",
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := Prompt(bufio.NewReader(strings.NewReader(tt.input)), &out, "? ", tt.opts...)
			testutil.AssertEqual(t, "output", out.String(), tt.expOutput)
			if tt.expErr != "" {
				testutil.AssertErrorContains(t, err, tt.expErr)
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}

func TestPromptYN(t *testing.T) {
	tests := map[string]struct {
		input string
		exp   bool
	}{
		"yes":          {input: "yes\n", exp: true},
		"short no":     {input: "n\n", exp: false},
		"retry then y": {input: "maybe\nY\n", exp: true},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			var out bytes.Buffer
			got, err := PromptYN(bufio.NewReader(strings.NewReader(tt.input)), &out, "ok? ")
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			testutil.AssertEqual(t, "answer", got, tt.exp)
		})
	}
}
