package render

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
	json "github.com/goccy/go-json"
)

// EngineOption configures the pongo2-backed engine before construction.
type EngineOption func(*engineConfig)

type engineConfig struct {
	baseDir   string
	templates fs.FS
	extension string
}

// WithBaseDir loads templates from a directory on disk.
func WithBaseDir(dir string) EngineOption {
	return func(cfg *engineConfig) {
		cfg.baseDir = strings.TrimSpace(dir)
	}
}

// WithFS loads templates from an fs.FS.
func WithFS(files fs.FS) EngineOption {
	return func(cfg *engineConfig) {
		cfg.templates = files
	}
}

// WithExtension overrides the default ".html" template extension.
func WithExtension(ext string) EngineOption {
	return func(cfg *engineConfig) {
		trimmed := strings.TrimSpace(ext)
		if trimmed == "" {
			return
		}
		if !strings.HasPrefix(trimmed, ".") {
			trimmed = "." + trimmed
		}
		cfg.extension = trimmed
	}
}

// Engine satisfies TemplateRenderer using a pongo2 template set.
type Engine struct {
	mu sync.RWMutex

	templateSet *pongo2.TemplateSet
	templates   map[string]*pongo2.Template
	tplExt      string
}

var _ TemplateRenderer = (*Engine)(nil)

// NewEngine constructs an Engine from the provided options. One of
// WithBaseDir or WithFS is required.
func NewEngine(options ...EngineOption) (*Engine, error) {
	cfg := &engineConfig{extension: ".html"}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(cfg)
	}

	if cfg.baseDir == "" && cfg.templates == nil {
		return nil, errors.New("render: need to provide either base dir or fs.FS")
	}

	var loaders []pongo2.TemplateLoader
	if cfg.baseDir != "" {
		loader, err := pongo2.NewLocalFileSystemLoader(cfg.baseDir)
		if err != nil {
			return nil, fmt.Errorf("render: create local loader: %w", err)
		}
		loaders = append(loaders, loader)
	}
	if cfg.templates != nil {
		loaders = append(loaders, pongo2.NewFSLoader(cfg.templates))
	}

	return &Engine{
		templateSet: pongo2.NewSet("formstate", loaders...),
		templates:   make(map[string]*pongo2.Template),
		tplExt:      cfg.extension,
	}, nil
}

// Render treats names containing template markers as inline content,
// everything else as a template path.
func (e *Engine) Render(name string, data any, out ...io.Writer) (string, error) {
	if strings.Contains(name, "{{") || strings.Contains(name, "{%") {
		return e.RenderString(name, data, out...)
	}
	return e.RenderTemplate(name, data, out...)
}

// RenderTemplate loads and executes a named template.
func (e *Engine) RenderTemplate(name string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}
	templatePath := name
	if !strings.HasSuffix(templatePath, e.tplExt) {
		templatePath += e.tplExt
	}

	tmpl, err := e.getTemplate(templatePath)
	if err != nil {
		return "", err
	}
	return e.execute(tmpl, templatePath, data, out...)
}

// RenderString parses and executes inline template content.
func (e *Engine) RenderString(templateContent string, data any, out ...io.Writer) (string, error) {
	if e == nil || e.templateSet == nil {
		return "", errors.New("render: engine is nil")
	}
	tmpl, err := e.templateSet.FromString(templateContent)
	if err != nil {
		return "", fmt.Errorf("render: parse template string: %w", err)
	}
	return e.execute(tmpl, "inline", data, out...)
}

func (e *Engine) execute(tmpl *pongo2.Template, name string, data any, out ...io.Writer) (string, error) {
	viewContext, err := convertToContext(data)
	if err != nil {
		return "", fmt.Errorf("render: convert data: %w", err)
	}

	var buf bytes.Buffer
	e.mu.RLock()
	err = tmpl.ExecuteWriter(viewContext, &buf)
	e.mu.RUnlock()
	if err != nil {
		return "", fmt.Errorf("render: execute template %q: %w", name, err)
	}

	rendered := buf.String()
	for _, w := range out {
		if _, err := w.Write([]byte(rendered)); err != nil {
			return "", err
		}
	}
	return rendered, nil
}

func (e *Engine) getTemplate(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	tmpl, ok := e.templates[path]
	e.mu.RUnlock()
	if ok {
		return tmpl, nil
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.templateSet.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("render: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

// convertToContext turns arbitrary view data into a pongo2 context through a
// JSON round trip, so plain structs and maps both work.
func convertToContext(data any) (pongo2.Context, error) {
	switch v := data.(type) {
	case nil:
		return pongo2.Context{}, nil
	case pongo2.Context:
		return v, nil
	case map[string]any:
		return pongo2.Context(v), nil
	}

	raw, err := json.Marshal(data)
	if err != nil {
		return nil, err
	}
	var ctx map[string]any
	if err := json.Unmarshal(raw, &ctx); err != nil {
		return nil, err
	}
	return pongo2.Context(ctx), nil
}
