package transform

import (
	"unicode/utf8"

	"github.com/randalmurphal/bracefmt/format"
)

// Strategy defines which part of long text is cut.
type Strategy int

const (
	// FromEnd removes content from the end (default).
	FromEnd Strategy = iota

	// FromMiddle removes content from the middle, keeping start and end.
	FromMiddle

	// FromStart removes content from the start.
	FromStart
)

// Ellipsis marks where truncated content was removed.
const Ellipsis = "..."

// Truncate limits the rendered value to n characters, cutting from the end.
func Truncate(n int) format.Transformer {
	return TruncateWith(n, FromEnd)
}

// TruncateWith limits the rendered value to n characters using strategy.
func TruncateWith(n int, strategy Strategy) format.Transformer {
	return func(v any) string {
		return clip(format.Text(v), n, strategy)
	}
}

// clip shortens text to at most n runes, the ellipsis included. Limits too
// small to hold the ellipsis cut hard.
func clip(text string, n int, strategy Strategy) string {
	if n <= 0 {
		return ""
	}
	if utf8.RuneCountInString(text) <= n {
		return text
	}

	runes := []rune(text)
	keep := n - len(Ellipsis)
	if keep <= 0 {
		if strategy == FromStart {
			return string(runes[len(runes)-n:])
		}
		return string(runes[:n])
	}

	switch strategy {
	case FromStart:
		return Ellipsis + string(runes[len(runes)-keep:])
	case FromMiddle:
		head := (keep + 1) / 2
		tail := keep - head
		return string(runes[:head]) + Ellipsis + string(runes[len(runes)-tail:])
	default:
		return string(runes[:keep]) + Ellipsis
	}
}
