package format

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
)

var tokenOpts = []cmp.Option{
	cmp.AllowUnexported(token{}, field{}, segment{}),
	cmpopts.EquateEmpty(),
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		escapes  bool
		expected []token
	}{
		{
			name:     "empty",
			input:    "",
			escapes:  true,
			expected: nil,
		},
		{
			name:     "plain text",
			input:    "abc",
			escapes:  true,
			expected: []token{{kind: tokenText, text: "abc"}},
		},
		{
			name:    "implicit field between text",
			input:   "X{}Y",
			escapes: true,
			expected: []token{
				{kind: tokenText, text: "X"},
				{kind: tokenField, text: "{}", field: field{implicit: true}},
				{kind: tokenText, text: "Y"},
			},
		},
		{
			name:    "path with transformer",
			input:   "{0.first!s}",
			escapes: true,
			expected: []token{
				{kind: tokenField, text: "{0.first!s}", field: field{
					path: []segment{
						{key: "0", isIndex: true},
						{key: "first"},
					},
					transformer: "s",
					transform:   true,
				}},
			},
		},
		{
			name:    "escaped braces merge with text",
			input:   "a{{b}}c",
			escapes: true,
			expected: []token{
				{kind: tokenText, text: "a{b}c"},
			},
		},
		{
			name:    "escaped braces around field",
			input:   "{{{0}}}",
			escapes: true,
			expected: []token{
				{kind: tokenText, text: "{"},
				{kind: tokenField, text: "{0}", field: field{path: []segment{{key: "0", isIndex: true}}}},
				{kind: tokenText, text: "}"},
			},
		},
		{
			name:    "doubled braces kept without escapes",
			input:   "{k: {0}}}",
			escapes: false,
			expected: []token{
				{kind: tokenText, text: "{k: "},
				{kind: tokenField, text: "{0}", field: field{path: []segment{{key: "0", isIndex: true}}}},
				{kind: tokenText, text: "}}"},
			},
		},
		{
			name:    "brace before whitespace is literal",
			input:   "{ {}: 1 }",
			escapes: true,
			expected: []token{
				{kind: tokenText, text: "{ "},
				{kind: tokenField, text: "{}", field: field{implicit: true}},
				{kind: tokenText, text: ": 1 }"},
			},
		},
		{
			name:     "unterminated field is literal",
			input:    "{0",
			escapes:  true,
			expected: []token{{kind: tokenText, text: "{0"}},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := tokenize(tt.input, tt.escapes)
			if diff := cmp.Diff(tt.expected, got, tokenOpts...); diff != "" {
				t.Errorf("tokenize(%q) mismatch (-want +got):\n%s", tt.input, diff)
			}
		})
	}
}
