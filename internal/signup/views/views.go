// Package views renders the signup HTML pages.
//
// Every page is parsed together with layout.html and executed through the
// "layout" template. Values go through html/template contextual escaping.
package views

import (
	"embed"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
)

// Page names accepted by Render.
const (
	PageSignup  = "signup"
	PageConfirm = "confirm"
)

const layoutFile = "layout.html"

// ErrUnknownView is returned when Render is asked for a page that does not exist.
var ErrUnknownView = errors.New("unknown view")

//go:embed templates/*.html
var embedded embed.FS

var pageNames = []string{PageSignup, PageConfirm}

// Embedded returns the templates compiled into the binary.
func Embedded() fs.FS {
	sub, err := fs.Sub(embedded, "templates")
	if err != nil {
		// templates/ is a fixed embed directive; Sub cannot fail for it.
		panic(err)
	}
	return sub
}

// Views is a parsed template set. In reload mode it re-parses from fsys on
// every render so template edits are picked up without a restart.
type Views struct {
	fsys   fs.FS
	reload bool
	pages  map[string]*template.Template
}

// New parses every page from fsys. Parsing happens up front in both modes so
// a broken template fails at startup.
func New(fsys fs.FS, reload bool) (*Views, error) {
	pages, err := parseAll(fsys)
	if err != nil {
		return nil, err
	}
	return &Views{fsys: fsys, reload: reload, pages: pages}, nil
}

// Render executes the named page with data into w.
func (v *Views) Render(w io.Writer, name string, data any) error {
	tmpl, err := v.lookup(name)
	if err != nil {
		return err
	}
	if err := tmpl.ExecuteTemplate(w, "layout", data); err != nil {
		return fmt.Errorf("execute view %q: %w", name, err)
	}
	return nil
}

func (v *Views) lookup(name string) (*template.Template, error) {
	if _, ok := v.pages[name]; !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownView, name)
	}
	if v.reload {
		return parsePage(v.fsys, name)
	}
	return v.pages[name], nil
}

func parseAll(fsys fs.FS) (map[string]*template.Template, error) {
	pages := make(map[string]*template.Template, len(pageNames))
	for _, name := range pageNames {
		tmpl, err := parsePage(fsys, name)
		if err != nil {
			return nil, err
		}
		pages[name] = tmpl
	}
	return pages, nil
}

func parsePage(fsys fs.FS, name string) (*template.Template, error) {
	tmpl, err := template.New(name).ParseFS(fsys, layoutFile, name+".html")
	if err != nil {
		return nil, fmt.Errorf("parse view %q: %w", name, err)
	}
	return tmpl, nil
}
