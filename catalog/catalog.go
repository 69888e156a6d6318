package catalog

import (
	"fmt"
	"log/slog"
	"maps"
	"os"
	"slices"
	"sync"

	"github.com/randalmurphal/bracefmt/format"
	"github.com/randalmurphal/bracefmt/transform"
)

// Catalog formats named message templates. It is safe for concurrent use;
// Reload swaps the messages and formatter atomically.
type Catalog struct {
	mu        sync.RWMutex
	file      *File
	formatter *format.Formatter

	path         string
	syntax       Syntax
	transformers format.Transformers
	logger       *slog.Logger
	onReload     func(error)
}

// Option configures a Catalog.
type Option func(*Catalog)

// WithTransformers adds transformers available to every message. They take
// precedence over built-ins and file aliases with the same name.
func WithTransformers(t format.Transformers) Option {
	return func(c *Catalog) {
		c.transformers = maps.Clone(t)
	}
}

// WithLogger sets the logger for reload events and formatter diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(c *Catalog) {
		c.logger = l
	}
}

// WithReloadHook registers fn to run after every reload attempt made by
// Watch, with the reload error or nil.
func WithReloadHook(fn func(error)) Option {
	return func(c *Catalog) {
		c.onReload = fn
	}
}

// New builds a catalog from a decoded file. Every message is checked for
// numbering conflicts and unknown transformers.
func New(file *File, opts ...Option) (*Catalog, error) {
	if file == nil {
		return nil, ErrNilFile
	}
	c := &Catalog{}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.install(file); err != nil {
		return nil, err
	}
	return c, nil
}

// Parse decodes data and builds a catalog from it.
func Parse(data []byte, syntax Syntax, opts ...Option) (*Catalog, error) {
	file, err := Decode(data, syntax)
	if err != nil {
		return nil, err
	}
	return New(file, opts...)
}

// Load reads a catalog file, choosing the syntax from its extension.
// The catalog remembers path for Reload and Watch.
func Load(path string, opts ...Option) (*Catalog, error) {
	syntax, err := SyntaxFor(path)
	if err != nil {
		return nil, err
	}

	c := &Catalog{path: path, syntax: syntax}
	for _, opt := range opts {
		opt(c)
	}
	if err := c.Reload(); err != nil {
		return nil, err
	}
	return c, nil
}

// Format renders the named message with args.
func (c *Catalog) Format(name string, args ...any) (string, error) {
	c.mu.RLock()
	tmpl, ok := c.file.Messages[name]
	f := c.formatter
	c.mu.RUnlock()

	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownMessage, name)
	}
	out, err := f.Format(tmpl, args...)
	if err != nil {
		return "", fmt.Errorf("message %q: %w", name, err)
	}
	return out, nil
}

// Names returns the message names in sorted order.
func (c *Catalog) Names() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return slices.Sorted(maps.Keys(c.file.Messages))
}

// Template returns the raw template of the named message.
func (c *Catalog) Template(name string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	tmpl, ok := c.file.Messages[name]
	return tmpl, ok
}

// Reload re-reads the catalog file. On error the previous messages stay in
// effect.
func (c *Catalog) Reload() error {
	if c.path == "" {
		return ErrNoSource
	}

	data, err := os.ReadFile(c.path)
	if err != nil {
		return fmt.Errorf("read catalog: %w", err)
	}
	file, err := Decode(data, c.syntax)
	if err != nil {
		return fmt.Errorf("%s: %w", c.path, err)
	}
	return c.install(file)
}

// install validates file and makes it current.
func (c *Catalog) install(file *File) error {
	f, err := c.build(file)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.file, c.formatter = file, f
	c.mu.Unlock()
	return nil
}

func (c *Catalog) build(file *File) (*format.Formatter, error) {
	transformers := transform.Builtins()
	for alias, spec := range file.Transformers {
		xf, err := transform.Lookup(spec)
		if err != nil {
			return nil, fmt.Errorf("%w: alias %q: %w", ErrUnknownTransformer, alias, err)
		}
		transformers[alias] = xf
	}
	maps.Copy(transformers, c.transformers)

	opts := []format.Option{format.WithMissing(file.Options.Missing)}
	if file.Options.BraceEscapes != nil && !*file.Options.BraceEscapes {
		opts = append(opts, format.WithoutBraceEscapes())
	}
	if file.Options.Locale != "" {
		opts = append(opts, format.WithLocale(file.Options.Locale))
	}
	if c.logger != nil {
		opts = append(opts, format.WithLogger(c.logger))
	}

	f := format.New(transformers, opts...)
	for _, name := range slices.Sorted(maps.Keys(file.Messages)) {
		if err := f.Check(file.Messages[name]); err != nil {
			return nil, fmt.Errorf("message %q: %w", name, err)
		}
	}
	return f, nil
}

func (c *Catalog) log() *slog.Logger {
	if c.logger != nil {
		return c.logger
	}
	return slog.Default()
}
