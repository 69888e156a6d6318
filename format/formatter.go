package format

import (
	"log/slog"
	"maps"
	"strings"
)

// Transformer post-processes a resolved value into output text.
type Transformer func(value any) string

// Transformers maps transformer names, as written after "!" in a field, to
// their functions.
type Transformers map[string]Transformer

// Formatter substitutes templates with a fixed set of transformers. It is
// immutable after New and safe for concurrent use.
type Formatter struct {
	transformers Transformers
	methods      methodTable
	missing      string
	escapes      bool
	locale       string
	logger       *slog.Logger
}

// Option configures a Formatter.
type Option func(*Formatter)

// WithMissing sets the text rendered for fields that cannot be resolved.
// The default is the empty string.
func WithMissing(v string) Option {
	return func(f *Formatter) {
		f.missing = v
	}
}

// WithoutBraceEscapes keeps "{{" and "}}" as written instead of collapsing
// them to single braces. Use it for templates that generate JSON-like text,
// where closing braces of nested objects double up.
func WithoutBraceEscapes() Option {
	return func(f *Formatter) {
		f.escapes = false
	}
}

// WithMethod registers a method for values of the given kind. It replaces a
// built-in method with the same name.
func WithMethod(kind Kind, name string, fn MethodFunc) Option {
	return func(f *Formatter) {
		f.methods.register(kind, name, fn)
	}
}

// WithLocale sets the default locale for calendar methods such as
// getMonthName. The default is "en".
func WithLocale(lang string) Option {
	return func(f *Formatter) {
		f.locale = lang
	}
}

// WithLogger sets the logger used for soft-miss diagnostics.
// By default slog.Default() is used.
func WithLogger(l *slog.Logger) Option {
	return func(f *Formatter) {
		f.logger = l
	}
}

// New creates a formatter bound to a copy of transformers.
func New(transformers Transformers, opts ...Option) *Formatter {
	f := &Formatter{
		transformers: maps.Clone(transformers),
		methods:      builtinMethods(),
		escapes:      true,
		locale:       "en",
	}
	if f.transformers == nil {
		f.transformers = Transformers{}
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Format substitutes every field of template with values from args.
// It fails, without partial output, when the template mixes implicit and
// explicit numbering or names an unknown transformer.
func (f *Formatter) Format(template string, args ...any) (string, error) {
	var (
		b   strings.Builder
		num numbering
		res = newResolution(f, args)
	)
	b.Grow(len(template))

	for _, tok := range tokenize(template, f.escapes) {
		if tok.kind == tokenText {
			b.WriteString(tok.text)
			continue
		}
		path, err := num.assign(tok.field)
		if err != nil {
			return "", err
		}
		text, err := f.apply(res.resolve(tok.text, path), tok.field)
		if err != nil {
			return "", err
		}
		b.WriteString(text)
	}

	return b.String(), nil
}

// Check reports the structural errors Format would return for template,
// without resolving any values.
func (f *Formatter) Check(template string) error {
	var num numbering
	for _, tok := range tokenize(template, f.escapes) {
		if tok.kind == tokenText {
			continue
		}
		if _, err := num.assign(tok.field); err != nil {
			return err
		}
		if tok.field.transform {
			if _, ok := f.transformers[tok.field.transformer]; !ok {
				return unknownTransformer(tok.field.transformer)
			}
		}
	}
	return nil
}

// Fields returns the raw placeholders of template in order, braces included.
func (f *Formatter) Fields(template string) []string {
	var fields []string
	for _, tok := range tokenize(template, f.escapes) {
		if tok.kind == tokenField {
			fields = append(fields, tok.text)
		}
	}
	return fields
}

// Bind returns a function formatting template with its arguments.
func (f *Formatter) Bind(template string) func(args ...any) (string, error) {
	return func(args ...any) (string, error) {
		return f.Format(template, args...)
	}
}

// apply renders the resolved value, through the field's transformer if any.
func (f *Formatter) apply(value any, fld field) (string, error) {
	if !fld.transform {
		return Text(value), nil
	}
	xf, ok := f.transformers[fld.transformer]
	if !ok {
		return "", unknownTransformer(fld.transformer)
	}
	return xf(value), nil
}

func unknownTransformer(name string) error {
	return newValueError(ErrUnknownTransformer, `no transformer named "`+name+`"`)
}

func (f *Formatter) log() *slog.Logger {
	if f.logger != nil {
		return f.logger
	}
	return slog.Default()
}

var std = New(nil)

// Format substitutes template using a formatter without transformers.
func Format(template string, args ...any) (string, error) {
	return std.Format(template, args...)
}

// MustFormat is like Format but panics on error.
func MustFormat(template string, args ...any) string {
	out, err := std.Format(template, args...)
	if err != nil {
		panic(err)
	}
	return out
}

// Extend returns a format function for a string type, letting it carry its
// own Format method with the receiver as the template:
//
//	type Greeting string
//
//	var formatGreeting = format.Extend[Greeting](nil)
//
//	func (g Greeting) Format(args ...any) (string, error) {
//	    return formatGreeting(g, args...)
//	}
func Extend[T ~string](transformers Transformers, opts ...Option) func(T, ...any) (string, error) {
	f := New(transformers, opts...)
	return func(template T, args ...any) (string, error) {
		return f.Format(string(template), args...)
	}
}

// Template is a template string that formats itself with the default formatter.
type Template string

// Format substitutes t with args.
func (t Template) Format(args ...any) (string, error) {
	return std.Format(string(t), args...)
}
