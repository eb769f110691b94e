// Package templates renders the display payloads handed to the result
// renderer. Templates are embedded at build time and executed with
// html/template, so item text is always escaped.
package templates

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"strings"
)

//go:embed files/*.tmpl
var files embed.FS

// Template names.
const (
	ListItems = "list.html.tmpl"
)

// ListData is the input for the ListItems template.
type ListData struct {
	Name  string
	Items []string
}

// Renderer renders a named template with data.
type Renderer interface {
	Render(name string, data any) (string, error)
}

// EmbedRenderer renders the embedded templates.
type EmbedRenderer struct {
	tmpl *template.Template
}

// NewRenderer parses every embedded template.
func NewRenderer() (*EmbedRenderer, error) {
	tmpl, err := template.ParseFS(files, "files/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("parsing templates: %w", err)
	}
	return &EmbedRenderer{tmpl: tmpl}, nil
}

// Render executes the template called name. Trailing newlines from the
// template file are trimmed.
func (r *EmbedRenderer) Render(name string, data any) (string, error) {
	t := r.tmpl.Lookup(name)
	if t == nil {
		return "", fmt.Errorf("template %q not found", name)
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}
