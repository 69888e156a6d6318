// Package catalog loads named message templates from YAML, TOML or JSON
// files and formats them with the format package.
//
// # File Format
//
//	options:
//	  missing: "?"
//	  locale: de
//	transformers:
//	  short: truncate:20
//	messages:
//	  greeting: "Hello {name!title}, you have {count} message{count!s}"
//	  due: "Due {0.getDate} {0.getMonthName}"
//
// Every message is checked when the catalog is built, so numbering
// conflicts and unknown transformers surface at load time rather than
// when a message is first used.
//
// # Basic Usage
//
//	cat, err := catalog.Load("messages.yaml")
//	if err != nil {
//	    return err
//	}
//	out, err := cat.Format("greeting", map[string]any{"name": "ada", "count": 2})
//
// # Hot Reload
//
// Watch blocks, reloading the catalog whenever its file changes:
//
//	go cat.Watch(ctx)
//
// A reload that fails to decode or validate is logged and the previous
// messages stay in effect.
//
// # Schema
//
// Schema returns a JSON Schema for the file format, usable by editors to
// validate YAML and JSON catalogs.
package catalog
