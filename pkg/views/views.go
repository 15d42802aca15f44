package views

import (
	"context"
	"errors"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"os"
	"sync"

	"github.com/a-h/templ"
)

// DefaultPattern selects the template files of a directory.
const DefaultPattern = "*.html"

var (
	ErrTemplateNotFound = errors.New("views: template not found")
	ErrNoTemplates      = errors.New("views: no templates found")
)

// Renderer resolves named templates from a directory and exposes them as
// templ components.
type Renderer struct {
	fsys    fs.FS
	pattern string
	funcs   template.FuncMap
	reload  bool

	mu  sync.RWMutex
	set *template.Template
}

// Option configures a Renderer.
type Option func(*Renderer)

// WithReload re-reads the templates on every render. Meant for development.
func WithReload(reload bool) Option {
	return func(r *Renderer) {
		r.reload = reload
	}
}

// WithFuncs adds template functions.
func WithFuncs(funcs template.FuncMap) Option {
	return func(r *Renderer) {
		for k, v := range funcs {
			r.funcs[k] = v
		}
	}
}

// WithPattern overrides DefaultPattern.
func WithPattern(pattern string) Option {
	return func(r *Renderer) {
		if pattern != "" {
			r.pattern = pattern
		}
	}
}

// New parses the templates in dir. Files are addressed by their base name,
// e.g. "login.html", and may reference each other with {{template}}.
func New(dir string, opts ...Option) (*Renderer, error) {
	return NewFS(os.DirFS(dir), opts...)
}

// NewFS is New over an arbitrary file system.
func NewFS(fsys fs.FS, opts ...Option) (*Renderer, error) {
	r := &Renderer{
		fsys:    fsys,
		pattern: DefaultPattern,
		funcs:   template.FuncMap{},
	}
	for _, opt := range opts {
		opt(r)
	}

	set, err := r.parse()
	if err != nil {
		return nil, err
	}
	r.set = set
	return r, nil
}

func (r *Renderer) parse() (*template.Template, error) {
	matches, err := fs.Glob(r.fsys, r.pattern)
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	if len(matches) == 0 {
		return nil, ErrNoTemplates
	}

	set, err := template.New("").Funcs(r.funcs).ParseFS(r.fsys, r.pattern)
	if err != nil {
		return nil, fmt.Errorf("views: %w", err)
	}
	return set, nil
}

func (r *Renderer) lookup(name string) (*template.Template, error) {
	if r.reload {
		set, err := r.parse()
		if err != nil {
			return nil, err
		}
		r.mu.Lock()
		r.set = set
		r.mu.Unlock()
	}

	r.mu.RLock()
	defer r.mu.RUnlock()

	t := r.set.Lookup(name)
	if t == nil {
		return nil, fmt.Errorf("%w: %s", ErrTemplateNotFound, name)
	}
	return t, nil
}

// Has reports whether a template with the given name exists.
func (r *Renderer) Has(name string) bool {
	_, err := r.lookup(name)
	return err == nil
}

// Render executes the named template into w.
func (r *Renderer) Render(w io.Writer, name string, data any) error {
	t, err := r.lookup(name)
	if err != nil {
		return err
	}
	return t.Execute(w, data)
}

// Component returns the named template as a templ component. A missing
// template surfaces as a render error.
func (r *Renderer) Component(name string, data any) templ.Component {
	return templ.ComponentFunc(func(_ context.Context, w io.Writer) error {
		return r.Render(w, name, data)
	})
}
