// Package format provides runtime string interpolation with brace placeholders.
//
// A template is plain text with placeholder fields. Each field names a value in
// the argument list, optionally walks into it with a dotted path, and optionally
// pipes the result through a named transformer.
//
// # Syntax
//
// Implicit positional fields are numbered left to right:
//
//	{}, you have {} unread message{}
//
// Explicit positional fields pick an argument by index. Negative indices count
// from the end of the argument list:
//
//	{0.first} {0.last} vs. {1.first} {-1.last}
//
// A path that does not start with an index reads from the first argument:
//
//	{first} {last}           // same as {0.first} {0.last}
//
// Keys containing whitespace are quoted:
//
//	{"one field name".toFixed()}
//
// Path segments can call methods with literal arguments. Numbers, quoted
// strings and raw tokens are accepted:
//
//	{0.toFixed(1)}
//	{0.substring(1, 3)}
//	{0.concat("9 new text").concat(" string")}
//
// A transformer is applied with a bang suffix:
//
//	view message{length!s}
//
// Doubled braces are literal braces:
//
//	{{0}} -> {0}
//
// A brace that does not open a well-formed field is copied as-is, so templates
// that generate structured text keep working:
//
//	{ {}: "{}" }             // -> { foo: "bar" }
//
// # Numbering
//
// A single template uses either implicit or explicit numbering. Mixing the two
// fails with an error wrapping ErrNumberingConflict.
//
// # Missing Values
//
// Missing data is not an error. A path segment that cannot be resolved renders
// the missing value (empty by default, see WithMissing). Only template structure
// problems fail: numbering conflicts and unknown transformers.
//
// # Methods
//
// Method segments dispatch to a fixed registry of operations keyed by value
// kind (text, number, sequence, record, time). Go funcs stored in the argument
// graph are called directly. Further operations are registered with WithMethod:
//
//	f := format.New(nil, format.WithMethod(format.KindText, "shout",
//	    func(c *format.Call) (any, error) {
//	        return strings.ToUpper(format.Text(c.Receiver)) + "!", nil
//	    }))
//
// # Example
//
//	s := format.Transformers{"s": func(v any) string {
//	    if n, ok := format.ToFloat(v); ok && n == 1 {
//	        return ""
//	    }
//	    return "s"
//	}}
//	f := format.New(s)
//	out, _ := f.Format("{0}, you have {1} unread message{1!s}", "Holly", 2)
//	// out: "Holly, you have 2 unread messages"
package format
