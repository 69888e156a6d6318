// Package bracefmt provides brace-delimited string formatting with dotted
// path resolution, method calls and pluggable transformers.
//
// Each subpackage can be used independently:
//
//   - format: Template substitution with "{0}", "{}" and "{user.name!upper}" fields
//   - transform: Ready-made transformers (plural, case, truncation, HTML stripping)
//   - catalog: Named message templates loaded from YAML, TOML or JSON, with hot reload
//
// # Quick Start
//
// Positional and named fields:
//
//	import "github.com/randalmurphal/bracefmt/format"
//	out, _ := format.Format("{0}, you have {1} messages", "Ada", 3)
//	out, _ = format.Format("{name} is {age.toFixed(1)}", map[string]any{"name": "Ada", "age": 36.25})
//
// Transformers:
//
//	import "github.com/randalmurphal/bracefmt/transform"
//	f := format.New(transform.Builtins())
//	out, _ := f.Format("{0} item{0!s}", 2) // "2 items"
//
// Message catalogs:
//
//	import "github.com/randalmurphal/bracefmt/catalog"
//	cat, _ := catalog.Load("messages.yaml")
//	out, _ := cat.Format("greeting", map[string]any{"name": "Ada"})
//
// # Design Philosophy
//
//   - A field that cannot be resolved renders as the missing value, never a panic
//   - Caller data is never mutated, even by methods such as pop
//   - Formatters are immutable and safe for concurrent use
//   - Each package usable independently
package bracefmt
