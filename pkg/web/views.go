// Package web renders server-side HTML pages from pre-parsed Go templates and
// serves embedded static assets.
package web

import (
	"bytes"
	"fmt"
	"html/template"
	"io/fs"
	"net/http"
)

// ViewDef defines a page with its route, template file, and title.
type ViewDef struct {
	Route    string
	Template string
	Title    string
}

// ViewData contains the data passed to page templates during rendering.
// BasePath enables portable URL generation in templates via {{ .BasePath }}.
type ViewData struct {
	Title    string
	BasePath string
	Data     any
}

// TemplateSet holds pre-parsed templates and a base path for URL generation.
// Templates are parsed once at startup.
type TemplateSet struct {
	views    map[string]*template.Template
	basePath string
}

// NewTemplateSet parses the layout templates matching layoutGlob and clones
// them once per view, parsing each view from viewSubdir. Any parse failure
// is returned immediately.
func NewTemplateSet(fsys fs.FS, layoutGlob, viewSubdir, basePath string, views []ViewDef) (*TemplateSet, error) {
	layouts, err := template.ParseFS(fsys, layoutGlob)
	if err != nil {
		return nil, err
	}

	viewSub, err := fs.Sub(fsys, viewSubdir)
	if err != nil {
		return nil, err
	}

	viewTemplates := make(map[string]*template.Template, len(views))
	for _, v := range views {
		t, err := layouts.Clone()
		if err != nil {
			return nil, fmt.Errorf("clone layouts for %s: %w", v.Template, err)
		}
		if _, err := t.ParseFS(viewSub, v.Template); err != nil {
			return nil, fmt.Errorf("parse template: %s: %w", v.Template, err)
		}
		viewTemplates[v.Template] = t
	}

	return &TemplateSet{
		views:    viewTemplates,
		basePath: basePath,
	}, nil
}

// BasePath returns the URL prefix the templates render links under.
func (ts *TemplateSet) BasePath() string {
	return ts.basePath
}

// ErrorHandler returns an HTTP handler that renders view with the given status code.
func (ts *TemplateSet) ErrorHandler(layout string, view ViewDef, status int) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := ts.Render(w, status, layout, view, nil); err != nil {
			http.Error(w, http.StatusText(status), status)
		}
	}
}

// Render executes layout for view with data and writes it with status.
// Nothing is written when execution fails.
func (ts *TemplateSet) Render(w http.ResponseWriter, status int, layout string, view ViewDef, data any) error {
	t, ok := ts.views[view.Template]
	if !ok {
		return fmt.Errorf("template not found: %s", view.Template)
	}

	var buf bytes.Buffer
	err := t.ExecuteTemplate(&buf, layout, ViewData{
		Title:    view.Title,
		BasePath: ts.basePath,
		Data:     data,
	})
	if err != nil {
		return fmt.Errorf("render %s: %w", view.Template, err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, err = buf.WriteTo(w)
	return err
}
