package generate

import (
	"embed"
	"io/fs"
)

//go:embed templates/*.tmpl
var embeddedTemplates embed.FS

// TemplatesFS exposes the embedded template bundle so callers can reuse or
// extend the built-in output layout.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embeddedTemplates, "templates")
	if err != nil {
		// Should never happen, but fall back to the raw FS so the templates
		// remain reachable under their full path.
		return embeddedTemplates
	}
	return sub
}
