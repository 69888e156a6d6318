package format

import (
	"strconv"
	"strings"
)

// field is a parsed placeholder.
type field struct {
	// implicit is set for fields with an empty key, e.g. "{}" or "{!s}".
	implicit    bool
	path        []segment
	transformer string
	transform   bool
}

// segment is one dotted path component.
type segment struct {
	key     string
	quoted  bool
	index   int
	isIndex bool
	call    bool
	args    []any
}

func indexSegment(i int) segment {
	return segment{key: strconv.Itoa(i), index: i, isIndex: true}
}

// pathParser is a recursive-descent parser over the inside of a placeholder.
//
//	field   = [ path ] [ "!" name ] "}"
//	path    = segment { "." segment }
//	segment = ( quoted | name ) [ "(" args ")" ]
type pathParser struct {
	input string
	pos   int
}

// parseField parses a placeholder whose opening brace sits just before start.
// It returns the field and the offset just past the closing brace. ok is false
// when the text is not a well-formed placeholder.
func parseField(input string, start int) (f field, end int, ok bool) {
	p := &pathParser{input: input, pos: start}

	switch p.peek() {
	case '}', '!':
		f.implicit = true
	default:
		path, ok := p.parsePath()
		if !ok {
			return field{}, 0, false
		}
		f.path = path
	}

	if p.peek() == '!' {
		p.pos++
		name := p.readName()
		if name == "" {
			return field{}, 0, false
		}
		f.transformer = name
		f.transform = true
	}

	if p.peek() != '}' {
		return field{}, 0, false
	}
	return f, p.pos + 1, true
}

func (p *pathParser) peek() byte {
	if p.pos >= len(p.input) {
		return 0
	}
	return p.input[p.pos]
}

func (p *pathParser) parsePath() ([]segment, bool) {
	var path []segment
	for {
		seg, ok := p.parseSegment()
		if !ok {
			return nil, false
		}
		path = append(path, seg)
		if p.peek() != '.' {
			return path, true
		}
		p.pos++
	}
}

func (p *pathParser) parseSegment() (segment, bool) {
	var seg segment
	switch p.peek() {
	case '"', '\'':
		key, ok := p.readQuoted()
		if !ok {
			return segment{}, false
		}
		seg.key = key
		seg.quoted = true
	default:
		seg.key = p.readName()
		if seg.key == "" {
			return segment{}, false
		}
		seg.index, seg.isIndex = parseIndex(seg.key)
	}

	if p.peek() == '(' {
		args, ok := p.parseArgs()
		if !ok {
			return segment{}, false
		}
		seg.call = true
		seg.args = args
	}
	return seg, true
}

// readName consumes a bare key or transformer name.
func (p *pathParser) readName() string {
	start := p.pos
	for p.pos < len(p.input) && isNameByte(p.input[p.pos]) {
		p.pos++
	}
	return p.input[start:p.pos]
}

// readQuoted consumes a quoted key and returns it without quotes.
func (p *pathParser) readQuoted() (string, bool) {
	quote := p.input[p.pos]
	end := strings.IndexByte(p.input[p.pos+1:], quote)
	if end < 0 {
		return "", false
	}
	key := p.input[p.pos+1 : p.pos+1+end]
	p.pos += end + 2
	return key, true
}

// parseArgs consumes a parenthesized argument list. Commas inside quotes do
// not split. Unquoted parentheses are rejected since arguments are literals.
func (p *pathParser) parseArgs() ([]any, bool) {
	p.pos++ // (
	start := p.pos
	var quote byte
	for ; p.pos < len(p.input); p.pos++ {
		ch := p.input[p.pos]
		switch {
		case quote != 0:
			if ch == quote {
				quote = 0
			}
		case ch == '"' || ch == '\'':
			quote = ch
		case ch == '(':
			return nil, false
		case ch == ')':
			raw := p.input[start:p.pos]
			p.pos++
			return splitArguments(raw), true
		}
	}
	return nil, false
}

// splitArguments splits call arguments on commas outside quotes and
// classifies each piece. Whitespace-only input yields no arguments.
func splitArguments(raw string) []any {
	if strings.TrimSpace(raw) == "" {
		return []any{}
	}

	var parts []string
	var current strings.Builder
	var quote rune

	for _, ch := range raw {
		switch {
		case quote == 0 && (ch == '"' || ch == '\''):
			quote = ch
			current.WriteRune(ch)
		case quote != 0 && ch == quote:
			quote = 0
			current.WriteRune(ch)
		case quote == 0 && ch == ',':
			parts = append(parts, current.String())
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	parts = append(parts, current.String())

	args := make([]any, len(parts))
	for i, part := range parts {
		args[i] = parseLiteral(part)
	}
	return args
}

// parseLiteral classifies one call argument: a float64 for numeric text, the
// unquoted content for quoted text, and the trimmed raw text otherwise.
func parseLiteral(raw string) any {
	s := strings.TrimSpace(raw)
	if isNumber(s) {
		if n, err := strconv.ParseFloat(s, 64); err == nil {
			return n
		}
	}
	if isQuotedString(s) {
		return s[1 : len(s)-1]
	}
	return s
}

// isNumber reports whether s is made of digits, dots and minus signs only.
// strconv.ParseFloat decides whether it is actually a number.
func isNumber(s string) bool {
	if s == "" {
		return false
	}
	for _, ch := range s {
		if ch != '-' && ch != '.' && (ch < '0' || ch > '9') {
			return false
		}
	}
	return true
}

// isQuotedString checks if a string is wrapped in matching quotes.
func isQuotedString(s string) bool {
	if len(s) < 2 {
		return false
	}
	return (strings.HasPrefix(s, `"`) && strings.HasSuffix(s, `"`)) ||
		(strings.HasPrefix(s, `'`) && strings.HasSuffix(s, `'`))
}

// parseIndex reports whether key is an optionally negative integer.
func parseIndex(key string) (int, bool) {
	digits := strings.TrimPrefix(key, "-")
	if digits == "" {
		return 0, false
	}
	for _, ch := range digits {
		if ch < '0' || ch > '9' {
			return 0, false
		}
	}
	n, err := strconv.Atoi(key)
	if err != nil {
		return 0, false
	}
	return n, true
}

func isNameByte(ch byte) bool {
	switch {
	case ch >= 'a' && ch <= 'z', ch >= 'A' && ch <= 'Z', ch >= '0' && ch <= '9':
		return true
	case ch == '_', ch == '$', ch == '-':
		return true
	}
	return ch >= 0x80
}
