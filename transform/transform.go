package transform

import (
	"strconv"
	"strings"
	"sync"

	"github.com/microcosm-cc/bluemonday"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"

	"github.com/randalmurphal/bracefmt/format"
)

// Plural returns suffix unless the value is the number 1.
func Plural(suffix string) format.Transformer {
	return func(v any) string {
		if format.KindOf(v) == format.KindNumber {
			if n, ok := format.ToFloat(v); ok && n == 1 {
				return ""
			}
		}
		return suffix
	}
}

// Upper renders the value in upper case.
func Upper(v any) string {
	return strings.ToUpper(format.Text(v))
}

// Lower renders the value in lower case.
func Lower(v any) string {
	return strings.ToLower(format.Text(v))
}

// Title renders the value in English title case.
func Title(v any) string {
	// A Caser keeps state between calls and is not safe to share.
	return cases.Title(language.English).String(format.Text(v))
}

// Trim removes leading and trailing white space.
func Trim(v any) string {
	return strings.TrimSpace(format.Text(v))
}

// JSON renders the value as JSON, quoting text. Sequences and records already
// render as JSON without a transformer.
func JSON(v any) string {
	switch format.KindOf(v) {
	case format.KindText, format.KindTime:
		return strconv.Quote(format.Text(v))
	case format.KindMissing:
		return "null"
	}
	return format.Text(v)
}

// Quote renders the value as a double-quoted Go string literal.
func Quote(v any) string {
	return strconv.Quote(format.Text(v))
}

var (
	stripPolicy     *bluemonday.Policy
	stripPolicyOnce sync.Once
)

// StripTags removes HTML markup from the value, keeping its text.
func StripTags(v any) string {
	stripPolicyOnce.Do(func() {
		stripPolicy = bluemonday.StrictPolicy()
	})
	return stripPolicy.Sanitize(format.Text(v))
}

// Default renders fallback when the value is missing or renders empty.
func Default(fallback string) format.Transformer {
	return func(v any) string {
		if s := format.Text(v); s != "" {
			return s
		}
		return fallback
	}
}

// Builtins returns a fresh map of the parameterless transformers, keyed by
// the names templates use for them.
func Builtins() format.Transformers {
	return format.Transformers{
		"s":         Plural("s"),
		"upper":     Upper,
		"lower":     Lower,
		"title":     Title,
		"trim":      Trim,
		"json":      JSON,
		"quote":     Quote,
		"stripTags": StripTags,
	}
}
