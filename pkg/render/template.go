package render

import (
	"io"

	gotemplatepkg "github.com/goliatone/go-template"
)

// TemplateRenderer mirrors the github.com/goliatone/go-template engine
// contract, providing the seam the snapshot renderer relies on so callers
// can swap template implementations.
type TemplateRenderer interface {
	Render(name string, data any, out ...io.Writer) (string, error)
	RenderTemplate(name string, data any, out ...io.Writer) (string, error)
	RenderString(templateContent string, data any, out ...io.Writer) (string, error)
}

// WithGoTemplateOptions exists for compatibility with go-template callers
// configuring the engine directly and is currently a no-op.
func WithGoTemplateOptions(_ ...gotemplatepkg.Option) EngineOption {
	return func(*engineConfig) {}
}
