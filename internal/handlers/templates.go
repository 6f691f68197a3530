package handlers

import (
	"embed"
	"html/template"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

// LoadTemplates parses the embedded page templates.
func LoadTemplates() (*template.Template, error) {
	return template.New("").ParseFS(templateFS, "templates/*.tmpl")
}
