// Package render assembles the page-render envelope and bridges echo to
// html/template.
package render

import (
	"encoding/json"
	"html/template"
	"io"
	"log/slog"
	"path/filepath"

	"github.com/labstack/echo/v4"
)

// Envelope is the parameter map every rendered page receives. Serialized
// mirrors (JSONdata, JSONgridprop, JSONsettings) carry the same values as
// their source fields so client scripts can re-parse them.
type Envelope map[string]any

// Params builds the envelope. data and gridprop pass through as-is plus a
// JSON mirror; user and menuData come from the request context (nil on
// guest pages); settings is the immutable front-end parameter map.
func Params(c echo.Context, data, gridprop any, layout string, settings map[string]string) Envelope {
	env := Envelope{
		"data":         data,
		"JSONdata":     mirror(data),
		"gridprop":     gridprop,
		"JSONgridprop": mirror(gridprop),
		"user":         c.Get("session"),
		"menuData":     c.Get("menuData"),
		"layout":       layout,
		"settings":     settings,
		"JSONsettings": mirror(settings),
	}
	return env
}

func mirror(v any) string {
	if v == nil {
		return "null"
	}
	b, err := json.Marshal(v)
	if err != nil {
		return "null"
	}
	return string(b)
}

// Renderer implements echo.Renderer over html/template. Templates load
// once at startup; a render of an unknown name fails the request.
type Renderer struct {
	templates *template.Template
}

// NewRenderer parses every template with the configured extension under
// dir. An empty directory yields a renderer that fails all renders, which
// keeps API-only deployments working.
func NewRenderer(dir, ext string) *Renderer {
	pattern := filepath.Join(dir, "*"+ext)
	tpl, err := template.ParseGlob(pattern)
	if err != nil {
		// No templates on disk is not fatal; pages just cannot render.
		slog.Warn("render: no templates loaded", "pattern", pattern, "error", err)
		tpl = template.New("empty")
	}
	return &Renderer{templates: tpl}
}

func (r *Renderer) Render(w io.Writer, name string, data any, c echo.Context) error {
	return r.templates.ExecuteTemplate(w, name, data)
}
