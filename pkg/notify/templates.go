package notify

import (
	"embed"
	"fmt"
	"html"
	"io/fs"
	"strings"
	"sync"

	"github.com/flosch/pongo2/v6"
)

//go:embed templates/*.tpl
var embeddedTemplates embed.FS

const templateExt = ".tpl"

// Engine renders notification bodies from pongo2 templates. Compiled templates
// are cached per name.
type Engine struct {
	mu        sync.RWMutex
	set       *pongo2.TemplateSet
	templates map[string]*pongo2.Template
}

// NewEngine builds an engine over files. A nil files uses the embedded
// defaults (validation, success, failure).
func NewEngine(files fs.FS) (*Engine, error) {
	if files == nil {
		sub, err := fs.Sub(embeddedTemplates, "templates")
		if err != nil {
			return nil, fmt.Errorf("notify: open embedded templates: %w", err)
		}
		files = sub
	}
	return &Engine{
		set:       pongo2.NewSet("notify", pongo2.NewFSLoader(files)),
		templates: make(map[string]*pongo2.Template),
	}, nil
}

// Render executes the named template (extension optional) and returns the
// sanitised HTML body.
func (e *Engine) Render(name string, data map[string]any) (string, error) {
	if e == nil || e.set == nil {
		return "", fmt.Errorf("notify: engine is nil")
	}
	path := strings.TrimSpace(name)
	if !strings.HasSuffix(path, templateExt) {
		path += templateExt
	}

	tmpl, err := e.template(path)
	if err != nil {
		return "", err
	}
	out, err := tmpl.Execute(pongo2.Context(data))
	if err != nil {
		return "", fmt.Errorf("notify: execute template %q: %w", path, err)
	}
	return SanitizeHTML(strings.TrimSpace(out)), nil
}

func (e *Engine) template(path string) (*pongo2.Template, error) {
	e.mu.RLock()
	if tmpl, ok := e.templates[path]; ok {
		e.mu.RUnlock()
		return tmpl, nil
	}
	e.mu.RUnlock()

	e.mu.Lock()
	defer e.mu.Unlock()

	if tmpl, ok := e.templates[path]; ok {
		return tmpl, nil
	}
	tmpl, err := e.set.FromFile(path)
	if err != nil {
		return nil, fmt.Errorf("notify: load template %q: %w", path, err)
	}
	e.templates[path] = tmpl
	return tmpl, nil
}

var (
	defaultEngineOnce sync.Once
	defaultEngine     *Engine
	defaultEngineErr  error
)

func render(name string, data map[string]any) string {
	defaultEngineOnce.Do(func() {
		defaultEngine, defaultEngineErr = NewEngine(nil)
	})
	if defaultEngineErr == nil {
		if out, err := defaultEngine.Render(name, data); err == nil {
			return out
		}
	}
	return fallbackBody(name, data)
}

// fallbackBody mirrors the embedded templates without the template engine.
func fallbackBody(name string, data map[string]any) string {
	switch name {
	case "validation":
		errs, _ := data["errors"].([]string)
		escaped := make([]string, 0, len(errs))
		for _, e := range errs {
			escaped = append(escaped, html.EscapeString(e))
		}
		return strings.Join(escaped, "<br>")
	case "success":
		return "Data sent successfully!<br><pre>" + html.EscapeString(fmt.Sprint(data["response"])) + "</pre>"
	case "failure":
		return "Sending data failed<br><pre>" + html.EscapeString(fmt.Sprint(data["message"])) + "</pre>"
	default:
		return ""
	}
}
