package transform

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/randalmurphal/bracefmt/format"
)

// Lookup returns the transformer for spec: a Builtins name, or a
// parameterized form "truncate:N", "truncate-middle:N", "truncate-start:N",
// "default:TEXT" or "plural:SUFFIX".
func Lookup(spec string) (format.Transformer, error) {
	if xf, ok := Builtins()[spec]; ok {
		return xf, nil
	}

	name, arg, ok := strings.Cut(spec, ":")
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknown, spec)
	}

	switch name {
	case "default":
		return Default(arg), nil
	case "plural":
		return Plural(arg), nil
	case "truncate", "truncate-middle", "truncate-start":
		n, err := strconv.Atoi(strings.TrimSpace(arg))
		if err != nil || n < 0 {
			return nil, fmt.Errorf("%w: %q needs a non-negative length", ErrBadSpec, spec)
		}
		return TruncateWith(n, strategies[name]), nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknown, spec)
}

var strategies = map[string]Strategy{
	"truncate":        FromEnd,
	"truncate-middle": FromMiddle,
	"truncate-start":  FromStart,
}
