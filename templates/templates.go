package templates

import (
	"embed"
	"html/template"
)

//go:embed *.html
var files embed.FS

// Load parses every page. Each page is addressed by its file name, e.g. "index.html".
func Load() (*template.Template, error) {
	return template.ParseFS(files, "*.html")
}
