package format

import (
	"fmt"
	"math"
	"reflect"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Call is one method invocation on a resolved value.
type Call struct {
	// Name is the method name as written in the template.
	Name string
	// Receiver is the value the method was invoked on.
	Receiver any
	// Args holds the literal arguments: float64 for numbers, string otherwise.
	Args []any
	// Locale is the formatter's default locale, used by calendar methods.
	Locale string

	rebind func(any)
}

// Rebind replaces the receiver for the rest of the current Format call.
// Values passed by the caller are never modified.
func (c *Call) Rebind(v any) {
	if c.rebind != nil {
		c.rebind(v)
	}
}

// maxSafeInteger bounds integer arguments to the range floats hold exactly.
const maxSafeInteger = 1<<53 - 1

// maxTextLength caps the size of text built by methods such as repeat and
// padStart.
const maxTextLength = 1 << 20

// IntArg returns argument i truncated to an int, or def when it is absent.
// Non-finite values and values beyond ±(2^53-1) are rejected.
func (c *Call) IntArg(i, def int) (int, error) {
	if i >= len(c.Args) {
		return def, nil
	}
	n, ok := ToFloat(c.Args[i])
	if !ok || math.IsNaN(n) || math.IsInf(n, 0) {
		return 0, fmt.Errorf("%w: %s argument %d is not a number", ErrBadArgument, c.Name, i)
	}
	if math.Abs(n) > maxSafeInteger {
		return 0, fmt.Errorf("%w: %s argument %d out of range", ErrBadArgument, c.Name, i)
	}
	return int(n), nil
}

// TextArg returns argument i as text, or def when it is absent.
func (c *Call) TextArg(i int, def string) string {
	if i >= len(c.Args) {
		return def
	}
	return Text(c.Args[i])
}

// MethodFunc implements a named operation on values of one Kind.
type MethodFunc func(c *Call) (any, error)

type methodTable map[Kind]map[string]MethodFunc

func (t methodTable) lookup(k Kind, name string) (MethodFunc, bool) {
	fn, ok := t[k][name]
	return fn, ok
}

func (t methodTable) register(k Kind, name string, fn MethodFunc) {
	if t[k] == nil {
		t[k] = make(map[string]MethodFunc)
	}
	t[k][name] = fn
}

// builtinMethods returns a fresh table of the built-in operations.
func builtinMethods() methodTable {
	t := methodTable{
		KindText: {
			"toLowerCase": textMethod(strings.ToLower),
			"toUpperCase": textMethod(strings.ToUpper),
			"trim":        textMethod(strings.TrimSpace),
			"toString":    textMethod(func(s string) string { return s }),
			"length":      textLength,
			"substring":   textSubstring,
			"slice":       textSlice,
			"concat":      textConcat,
			"charAt":      textCharAt,
			"indexOf":     textIndexOf,
			"replace":     textReplace,
			"split":       textSplit,
			"repeat":      textRepeat,
			"padStart":    textPad(true),
			"padEnd":      textPad(false),
			"toDate":      textToDate,
		},
		KindNumber: {
			"toFixed":  numberToFixed,
			"toString": numberToString,
			"abs":      numberMath(math.Abs),
			"round":    numberMath(roundHalfUp),
			"floor":    numberMath(math.Floor),
			"ceil":     numberMath(math.Ceil),
		},
		KindSequence: {
			"length":  sequenceLength,
			"pop":     sequencePop,
			"shift":   sequenceShift,
			"join":    sequenceJoin,
			"first":   sequenceAt(0),
			"last":    sequenceAt(-1),
			"reverse": sequenceReverse,
			"slice":   sequenceSlice,
		},
		KindRecord: {
			"keys":   recordKeys,
			"length": recordLength,
		},
	}
	for name, fn := range timeMethods() {
		t.register(KindTime, name, fn)
	}
	return t
}

func textMethod(fn func(string) string) MethodFunc {
	return func(c *Call) (any, error) {
		return fn(Text(c.Receiver)), nil
	}
}

func textLength(c *Call) (any, error) {
	return utf8.RuneCountInString(Text(c.Receiver)), nil
}

// textSubstring clamps both bounds to the text and swaps them when reversed.
func textSubstring(c *Call) (any, error) {
	runes := []rune(Text(c.Receiver))
	start, err := c.IntArg(0, 0)
	if err != nil {
		return nil, err
	}
	end, err := c.IntArg(1, len(runes))
	if err != nil {
		return nil, err
	}
	start, end = clamp(start, 0, len(runes)), clamp(end, 0, len(runes))
	if start > end {
		start, end = end, start
	}
	return string(runes[start:end]), nil
}

// textSlice accepts negative bounds counted from the end.
func textSlice(c *Call) (any, error) {
	runes := []rune(Text(c.Receiver))
	start, end, err := sliceBounds(c, len(runes))
	if err != nil {
		return nil, err
	}
	return string(runes[start:end]), nil
}

func textConcat(c *Call) (any, error) {
	var b strings.Builder
	b.WriteString(Text(c.Receiver))
	for _, arg := range c.Args {
		b.WriteString(Text(arg))
	}
	return b.String(), nil
}

func textCharAt(c *Call) (any, error) {
	runes := []rune(Text(c.Receiver))
	i, err := c.IntArg(0, 0)
	if err != nil {
		return nil, err
	}
	if i < 0 || i >= len(runes) {
		return "", nil
	}
	return string(runes[i]), nil
}

func textIndexOf(c *Call) (any, error) {
	s := Text(c.Receiver)
	i := strings.Index(s, c.TextArg(0, ""))
	if i < 0 {
		return -1, nil
	}
	return utf8.RuneCountInString(s[:i]), nil
}

func textReplace(c *Call) (any, error) {
	if len(c.Args) < 2 {
		return nil, fmt.Errorf("%w: replace needs two arguments", ErrBadArgument)
	}
	return strings.Replace(Text(c.Receiver), c.TextArg(0, ""), c.TextArg(1, ""), 1), nil
}

func textSplit(c *Call) (any, error) {
	s := Text(c.Receiver)
	if len(c.Args) == 0 {
		return []string{s}, nil
	}
	return strings.Split(s, c.TextArg(0, "")), nil
}

func textRepeat(c *Call) (any, error) {
	n, err := c.IntArg(0, 0)
	if err != nil {
		return nil, err
	}
	s := Text(c.Receiver)
	if n < 0 || (len(s) > 0 && n > maxTextLength/len(s)) {
		return nil, fmt.Errorf("%w: repeat count %d", ErrBadArgument, n)
	}
	return strings.Repeat(s, n), nil
}

func textPad(start bool) MethodFunc {
	return func(c *Call) (any, error) {
		s := Text(c.Receiver)
		width, err := c.IntArg(0, 0)
		if err != nil {
			return nil, err
		}
		if width > maxTextLength {
			return nil, fmt.Errorf("%w: %s width %d", ErrBadArgument, c.Name, width)
		}
		fill := []rune(c.TextArg(1, " "))
		missing := width - utf8.RuneCountInString(s)
		if missing <= 0 || len(fill) == 0 {
			return s, nil
		}
		pad := make([]rune, missing)
		for i := range pad {
			pad[i] = fill[i%len(fill)]
		}
		if start {
			return string(pad) + s, nil
		}
		return s + string(pad), nil
	}
}

func numberToFixed(c *Call) (any, error) {
	n, _ := ToFloat(c.Receiver)
	digits, err := c.IntArg(0, 0)
	if err != nil {
		return nil, err
	}
	if digits < 0 || digits > 100 {
		return nil, fmt.Errorf("%w: toFixed digits %d out of range", ErrBadArgument, digits)
	}
	return toFixed(n, digits), nil
}

// toFixed renders x with digits decimals. Exact halves round up in
// magnitude, and magnitudes from 1e21 render in exponent form.
func toFixed(x float64, digits int) string {
	if math.IsNaN(x) || math.IsInf(x, 0) || math.Abs(x) >= 1e21 {
		return Text(x)
	}

	abs := math.Abs(x)
	exact := strconv.FormatFloat(abs, 'f', 1074, 64)
	tail := exact[strings.IndexByte(exact, '.')+1+digits:]
	if tail[0] == '5' && strings.TrimRight(tail[1:], "0") == "" {
		abs = math.Nextafter(abs, math.Inf(1))
	}

	out := strconv.FormatFloat(abs, 'f', digits, 64)
	if x < 0 {
		return "-" + out
	}
	return out
}

// roundHalfUp rounds to the nearest integer, breaking ties toward +Inf.
func roundHalfUp(x float64) float64 {
	r := math.Floor(x)
	if x-r >= 0.5 {
		r++
	}
	return r
}

func numberToString(c *Call) (any, error) {
	return Text(c.Receiver), nil
}

func numberMath(fn func(float64) float64) MethodFunc {
	return func(c *Call) (any, error) {
		n, _ := ToFloat(c.Receiver)
		return fn(n), nil
	}
}

func sequenceLength(c *Call) (any, error) {
	n, _ := length(c.Receiver)
	return n, nil
}

// sequencePop returns the last element and rebinds the receiver without it.
func sequencePop(c *Call) (any, error) {
	items := elements(c.Receiver)
	if len(items) == 0 {
		return nil, nil
	}
	c.Rebind(items[:len(items)-1])
	return items[len(items)-1], nil
}

// sequenceShift returns the first element and rebinds the receiver without it.
func sequenceShift(c *Call) (any, error) {
	items := elements(c.Receiver)
	if len(items) == 0 {
		return nil, nil
	}
	c.Rebind(items[1:])
	return items[0], nil
}

func sequenceJoin(c *Call) (any, error) {
	items := elements(c.Receiver)
	parts := make([]string, len(items))
	for i, item := range items {
		parts[i] = Text(item)
	}
	return strings.Join(parts, c.TextArg(0, ",")), nil
}

func sequenceAt(pos int) MethodFunc {
	return func(c *Call) (any, error) {
		items := elements(c.Receiver)
		i := pos
		if i < 0 {
			i += len(items)
		}
		if i < 0 || i >= len(items) {
			return nil, nil
		}
		return items[i], nil
	}
}

func sequenceReverse(c *Call) (any, error) {
	items := elements(c.Receiver)
	out := make([]any, len(items))
	for i, item := range items {
		out[len(items)-1-i] = item
	}
	return out, nil
}

func sequenceSlice(c *Call) (any, error) {
	items := elements(c.Receiver)
	start, end, err := sliceBounds(c, len(items))
	if err != nil {
		return nil, err
	}
	return items[start:end], nil
}

func recordKeys(c *Call) (any, error) {
	rv, ok := indirect(c.Receiver)
	if !ok {
		return nil, nil
	}
	if rv.Kind() == reflect.Struct {
		return exportedFields(rv.Type()), nil
	}
	keys := make([]string, 0, rv.Len())
	for _, k := range rv.MapKeys() {
		keys = append(keys, Text(valueOf(k)))
	}
	sort.Strings(keys)
	return keys, nil
}

func recordLength(c *Call) (any, error) {
	n, _ := length(c.Receiver)
	return n, nil
}

// sliceBounds reads optional start and end arguments, counting negative
// values from the end and clamping both to [0, n].
func sliceBounds(c *Call, n int) (int, int, error) {
	start, err := c.IntArg(0, 0)
	if err != nil {
		return 0, 0, err
	}
	end, err := c.IntArg(1, n)
	if err != nil {
		return 0, 0, err
	}
	if start < 0 {
		start += n
	}
	if end < 0 {
		end += n
	}
	start, end = clamp(start, 0, n), clamp(end, 0, n)
	if start > end {
		start = end
	}
	return start, end, nil
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}

// callFunc invokes a Go func found in the argument graph. Literal arguments
// are converted to the parameter types; missing trailing parameters get zero
// values. A non-nil trailing error result is returned as the error.
func callFunc(fv reflect.Value, args []any) (any, error) {
	ft := fv.Type()
	fixed := ft.NumIn()
	if ft.IsVariadic() {
		fixed--
	}
	if !ft.IsVariadic() && len(args) > fixed {
		return nil, fmt.Errorf("%w: %d arguments for %d parameters", ErrBadArgument, len(args), fixed)
	}

	in := make([]reflect.Value, 0, max(len(args), fixed))
	for i, arg := range args {
		var pt reflect.Type
		if i < fixed {
			pt = ft.In(i)
		} else {
			pt = ft.In(fixed).Elem()
		}
		v, err := convertArg(arg, pt)
		if err != nil {
			return nil, err
		}
		in = append(in, v)
	}
	for i := len(in); i < fixed; i++ {
		in = append(in, reflect.Zero(ft.In(i)))
	}

	out := fv.Call(in)
	if len(out) == 0 {
		return nil, nil
	}
	if last := out[len(out)-1]; last.Type() == errorType {
		if !last.IsNil() {
			return nil, last.Interface().(error)
		}
		out = out[:len(out)-1]
	}
	if len(out) == 0 {
		return nil, nil
	}
	return valueOf(out[0]), nil
}

var errorType = reflect.TypeOf((*error)(nil)).Elem()

func convertArg(arg any, pt reflect.Type) (reflect.Value, error) {
	if arg == nil {
		return reflect.Zero(pt), nil
	}
	av := reflect.ValueOf(arg)
	switch {
	case av.Type().AssignableTo(pt):
		return av, nil
	case pt.Kind() == reflect.String:
		return reflect.ValueOf(Text(arg)).Convert(pt), nil
	case KindOf(arg) == KindNumber || KindOf(arg) == KindText:
		n, ok := ToFloat(arg)
		if ok && reflect.TypeOf(n).ConvertibleTo(pt) && pt.Kind() != reflect.String {
			return reflect.ValueOf(n).Convert(pt), nil
		}
	case av.Type().ConvertibleTo(pt):
		return av.Convert(pt), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: cannot use %T as %s", ErrBadArgument, arg, pt)
}
