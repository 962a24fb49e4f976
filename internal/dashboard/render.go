package dashboard

import (
	"embed"
	"html/template"
)

// TemplateName is the name the page template is registered under.
const TemplateName = "dashboard.html"

//go:embed templates/*.html
var templatesFS embed.FS

// Templates parses the embedded page template for gin's HTML renderer.
func Templates() (*template.Template, error) {
	return template.ParseFS(templatesFS, "templates/*.html")
}
