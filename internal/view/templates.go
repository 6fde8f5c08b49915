package view

import (
	"embed"
	"fmt"
	"html/template"

	"github.com/gin-gonic/gin/render"
)

//go:embed templates/*.tmpl
var templateFS embed.FS

const layoutTemplate = "layout"

// Pages maps page names to their template files.
var Pages = map[string]string{
	PageHome:     "templates/index.tmpl",
	PageProducts: "templates/products.tmpl",
	PageCheckout: "templates/checkout.tmpl",
	PageLogin:    "templates/login.tmpl",
	PageProfile:  "templates/profile.tmpl",
}

// Renderer holds one parsed template set per page, each combining the
// shared layout with the page's content block. It implements gin's
// render.HTMLRender.
type Renderer struct {
	templates map[string]*template.Template
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	layout, err := template.New(layoutTemplate).ParseFS(templateFS, "templates/layout.tmpl", "templates/partials.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse layout: %w", err)
	}

	r := &Renderer{templates: make(map[string]*template.Template, len(Pages))}
	for name, file := range Pages {
		base, err := layout.Clone()
		if err != nil {
			return nil, err
		}
		t, err := base.ParseFS(templateFS, file)
		if err != nil {
			return nil, fmt.Errorf("failed to parse %s: %w", file, err)
		}
		r.templates[name] = t
	}
	return r, nil
}

// Instance implements render.HTMLRender.
func (r *Renderer) Instance(name string, data any) render.Render {
	return render.HTML{
		Template: r.templates[name],
		Name:     layoutTemplate,
		Data:     data,
	}
}
