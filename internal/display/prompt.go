package display

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/Masterminds/sprig/v3"
)

// DefaultPrompt shows hit and mana after every response.
const DefaultPrompt = `[{{ .Hit }}/{{ .MaxHit }}hp {{ .Mana }}/{{ .MaxMana }}mp] > `

// templateFuncs provides utility functions for prompt templates.
var templateFuncs = sprig.TxtFuncMap()

// PromptData is what a prompt template can reference.
type PromptData struct {
	Name    string
	Hit     int64
	MaxHit  int64
	Mana    int64
	MaxMana int64
	Move    int64
	MaxMove int64
}

// Prompt renders the line shown to a player while waiting for input.
type Prompt struct {
	tmpl *template.Template
}

// NewPrompt parses tmplStr. An empty string selects DefaultPrompt.
func NewPrompt(tmplStr string) (*Prompt, error) {
	if tmplStr == "" {
		tmplStr = DefaultPrompt
	}
	tmpl, err := template.New("prompt").Funcs(templateFuncs).Parse(tmplStr)
	if err != nil {
		return nil, fmt.Errorf("parsing template: %w", err)
	}
	return &Prompt{tmpl: tmpl}, nil
}

// Render expands the prompt for data, falling back to "> " on error.
func (p *Prompt) Render(data PromptData) string {
	var buf bytes.Buffer
	if err := p.tmpl.Execute(&buf, data); err != nil {
		return "> "
	}
	return buf.String()
}
