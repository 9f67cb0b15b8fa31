// Package render turns live form trees into display snapshots: titles,
// current values, validation messages, and read-only/required flags, executed
// through a template engine. It renders state, not form controls; the output
// is meant for server-side review panes and debug surfaces.
package render

import (
	"embed"
	"fmt"
	"io/fs"

	"github.com/goliatone/go-formstate/pkg/formstate"
)

//go:embed templates/*.html
var defaultTemplates embed.FS

const defaultTemplateName = "snapshot"

// Option configures a Renderer.
type Option func(*Renderer)

// WithEngine swaps the template engine. The default engine loads the
// embedded snapshot template.
func WithEngine(engine TemplateRenderer) Option {
	return func(r *Renderer) {
		if engine != nil {
			r.engine = engine
		}
	}
}

// WithTemplate overrides the template name executed per form.
func WithTemplate(name string) Option {
	return func(r *Renderer) {
		if name != "" {
			r.template = name
		}
	}
}

// Renderer renders form trees through a TemplateRenderer.
type Renderer struct {
	engine   TemplateRenderer
	template string
}

// New constructs a Renderer. Without options it uses the embedded default
// template on a pongo2 engine.
func New(options ...Option) (*Renderer, error) {
	r := &Renderer{template: defaultTemplateName}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(r)
	}
	if r.engine == nil {
		templates, err := fs.Sub(defaultTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("render: embedded templates: %w", err)
		}
		engine, err := NewEngine(WithFS(templates))
		if err != nil {
			return nil, err
		}
		r.engine = engine
	}
	return r, nil
}

// Render walks the form tree depth-first and executes the template once per
// form, injecting each child's rendered markup into its parent's view.
func (r *Renderer) Render(form *formstate.Form) (string, error) {
	view, err := r.viewFor(form)
	if err != nil {
		return "", err
	}
	return r.engine.RenderTemplate(r.template, map[string]any{"form": view})
}

func (r *Renderer) viewFor(form *formstate.Form) (map[string]any, error) {
	fields := make([]map[string]any, 0, len(form.Keys()))
	for _, key := range form.Keys() {
		field, err := form.Get(key)
		if err != nil {
			return nil, err
		}
		title, err := form.FieldTitle(key)
		if err != nil {
			return nil, err
		}
		required, err := form.IsFieldRequired(key)
		if err != nil {
			return nil, err
		}
		fields = append(fields, map[string]any{
			"key":         key,
			"title":       title,
			"value":       field.Value,
			"message":     field.ValidationMessage,
			"readOnly":    field.ReadOnly,
			"required":    required,
			"placeholder": field.Schema.Placeholder,
			"hint":        field.Schema.Hint,
		})
	}

	var children []string
	for _, child := range form.Children() {
		childForm, ok := child.(*formstate.Form)
		if !ok {
			continue
		}
		childView, err := r.viewFor(childForm)
		if err != nil {
			return nil, err
		}
		markup, err := r.engine.RenderTemplate(r.template, map[string]any{"form": childView})
		if err != nil {
			return nil, err
		}
		children = append(children, markup)
	}

	return map[string]any{
		"id":        form.ID().String(),
		"validated": form.Validated(),
		"valid":     form.Valid(),
		"readOnly":  form.ReadOnly(),
		"fields":    fields,
		"children":  children,
	}, nil
}
