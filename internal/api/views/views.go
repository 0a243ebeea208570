package views

import (
	"embed"
	"html/template"
	"io/fs"
	"slices"
	"strings"
)

//go:embed templates/*.html
var embeddedTemplates embed.FS

// TemplatesFS exposes the page templates.
func TemplatesFS() fs.FS {
	return embeddedTemplates
}

var funcs = template.FuncMap{
	"has":  slices.Contains[[]string, string],
	"join": strings.Join,
}

// Templates parses every page. Pages are executed by file name, e.g. "basic_info.html".
func Templates() (*template.Template, error) {
	return template.New("pages").Funcs(funcs).ParseFS(embeddedTemplates, "templates/*.html")
}
