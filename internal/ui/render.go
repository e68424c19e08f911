package ui

import (
	"embed"
	"fmt"
	"html/template"
	"io"
)

//go:embed templates/*.html
var templateFS embed.FS

var pageTemplate = template.Must(template.ParseFS(templateFS, "templates/*.html"))

// Render writes the full HTML page for state.
func Render(w io.Writer, state State) error {
	if err := pageTemplate.ExecuteTemplate(w, "index.html", state); err != nil {
		return fmt.Errorf("ui: render: %w", err)
	}
	return nil
}
