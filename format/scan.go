package format

import "strings"

type tokenKind int

const (
	tokenText tokenKind = iota
	tokenField
)

// token is one piece of a template: literal text or a field.
type token struct {
	kind tokenKind
	// text is the literal output for tokenText and the raw placeholder,
	// braces included, for tokenField.
	text  string
	field field
}

// scanner splits a template into tokens in a single forward pass.
type scanner struct {
	input   string
	pos     int
	escapes bool
	text    strings.Builder
	tokens  []token
}

// tokenize scans input into a flat token stream. Adjacent literal text is
// merged into one token. When escapes is set, "{{" and "}}" produce a single
// literal brace.
func tokenize(input string, escapes bool) []token {
	s := &scanner{input: input, escapes: escapes}
	for s.pos < len(s.input) {
		ch := s.input[s.pos]
		switch {
		case (ch == '{' || ch == '}') && s.escapes && s.peek() == ch:
			s.text.WriteByte(ch)
			s.pos += 2
		case ch == '{':
			f, end, ok := parseField(s.input, s.pos+1)
			if !ok {
				s.text.WriteByte(ch)
				s.pos++
				continue
			}
			s.flush()
			s.tokens = append(s.tokens, token{kind: tokenField, text: s.input[s.pos:end], field: f})
			s.pos = end
		default:
			s.text.WriteByte(ch)
			s.pos++
		}
	}
	s.flush()
	return s.tokens
}

func (s *scanner) peek() byte {
	if s.pos+1 >= len(s.input) {
		return 0
	}
	return s.input[s.pos+1]
}

func (s *scanner) flush() {
	if s.text.Len() == 0 {
		return
	}
	s.tokens = append(s.tokens, token{kind: tokenText, text: s.text.String()})
	s.text.Reset()
}
