// Package transform provides ready-made transformers for format templates.
//
// A transformer receives the resolved value of a field written with a
// "!name" suffix and returns the text to render:
//
//	f := format.New(transform.Builtins())
//	out, _ := f.Format("{0} item{0!s}, {1!upper}", 2, "done")
//	// "2 items, DONE"
//
// # Parameterized Transformers
//
// Lookup builds transformers from a "name:argument" spec, which is how
// catalog files alias them:
//
//	transform.Lookup("truncate:20")   // Truncate(20)
//	transform.Lookup("default:n/a")   // Default("n/a")
//	transform.Lookup("plural:es")     // Plural("es")
//
// # UTF-8 Support
//
// Truncation counts runes rather than bytes, so multi-byte characters are
// never split.
package transform
