package view

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"strings"
)

//go:embed templates/*.tmpl
var embedded embed.FS

// TemplatesFS returns the templates compiled into the binary.
func TemplatesFS() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		panic(err)
	}
	return sub
}

// Renderer executes named templates from an fs.FS. In dev mode templates are
// re-parsed on every execution so edits show up without a restart.
type Renderer struct {
	fsys  fs.FS
	dev   bool
	cache *template.Template
}

// NewRenderer parses the templates once up front so syntax errors fail at startup.
func NewRenderer(fsys fs.FS, dev bool) (*Renderer, error) {
	if fsys == nil {
		return nil, errors.New("view: templates fs is required")
	}
	t, err := parseTemplates(fsys)
	if err != nil {
		return nil, err
	}
	r := &Renderer{fsys: fsys, dev: dev}
	if !dev {
		r.cache = t
	}
	return r, nil
}

// Execute renders the named template to w.
func (r *Renderer) Execute(w io.Writer, name string, data any) error {
	t := r.cache
	if r.dev || t == nil {
		parsed, err := parseTemplates(r.fsys)
		if err != nil {
			return err
		}
		t = parsed
	}
	if err := t.ExecuteTemplate(w, name, data); err != nil {
		return fmt.Errorf("view: execute %s: %w", name, err)
	}
	return nil
}

func parseTemplates(fsys fs.FS) (*template.Template, error) {
	// ParseFS globs do not support **, so walk the tree.
	var files []string
	if err := fs.WalkDir(fsys, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(d.Name(), ".tmpl") {
			files = append(files, path)
		}
		return nil
	}); err != nil {
		return nil, fmt.Errorf("view: walk templates: %w", err)
	}
	if len(files) == 0 {
		return nil, errors.New("view: no templates found")
	}
	t, err := template.New("_root").ParseFS(fsys, files...)
	if err != nil {
		return nil, fmt.Errorf("view: parse templates: %w", err)
	}
	return t, nil
}
