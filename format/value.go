package format

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"reflect"
	"strconv"
	"strings"
	"time"
)

// Kind classifies a resolved value. Path resolution and method dispatch
// branch on the kind instead of probing the value.
type Kind int

const (
	KindMissing Kind = iota
	KindCallable
	KindSequence
	KindRecord
	KindText
	KindNumber
	KindBool
	KindTime
	KindOther
)

var kindNames = [...]string{
	KindMissing:  "missing",
	KindCallable: "callable",
	KindSequence: "sequence",
	KindRecord:   "record",
	KindText:     "text",
	KindNumber:   "number",
	KindBool:     "bool",
	KindTime:     "time",
	KindOther:    "other",
}

func (k Kind) String() string {
	if k < 0 || int(k) >= len(kindNames) {
		return "Kind(" + strconv.Itoa(int(k)) + ")"
	}
	return kindNames[k]
}

// isoLayout matches the millisecond ISO-8601 form used for timestamps.
const isoLayout = "2006-01-02T15:04:05.000Z07:00"

var timeType = reflect.TypeOf(time.Time{})

// KindOf classifies v. Nil values, nil pointers and nil containers are
// KindMissing. Pointers are classified by what they point to.
func KindOf(v any) Kind {
	rv, ok := indirect(v)
	if !ok {
		return KindMissing
	}
	if rv.Type() == timeType {
		return KindTime
	}
	switch rv.Kind() {
	case reflect.Func:
		return KindCallable
	case reflect.Slice:
		if rv.Type().Elem().Kind() == reflect.Uint8 {
			return KindText
		}
		return KindSequence
	case reflect.Array:
		return KindSequence
	case reflect.Map, reflect.Struct:
		return KindRecord
	case reflect.String:
		return KindText
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return KindNumber
	case reflect.Bool:
		return KindBool
	}
	return KindOther
}

// indirect unwraps pointers and interfaces. ok is false for nil values.
func indirect(v any) (reflect.Value, bool) {
	rv := reflect.ValueOf(v)
	for rv.IsValid() {
		switch rv.Kind() {
		case reflect.Pointer, reflect.Interface:
			if rv.IsNil() {
				return reflect.Value{}, false
			}
			rv = rv.Elem()
			continue
		case reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			if rv.IsNil() {
				return reflect.Value{}, false
			}
		}
		return rv, true
	}
	return reflect.Value{}, false
}

func isNil(v any) bool {
	_, ok := indirect(v)
	return !ok
}

// member looks up seg in v: an element for sequences and text, a map entry,
// or a struct field. ok is false when v has no such member.
func member(v any, seg segment) (any, bool) {
	rv, ok := indirect(v)
	if !ok {
		return nil, false
	}

	switch KindOf(v) {
	case KindSequence:
		if !seg.isIndex || seg.index < 0 || seg.index >= rv.Len() {
			return nil, false
		}
		return valueOf(rv.Index(seg.index)), true
	case KindText:
		if !seg.isIndex || seg.index < 0 {
			return nil, false
		}
		runes := []rune(Text(v))
		if seg.index >= len(runes) {
			return nil, false
		}
		return string(runes[seg.index]), true
	case KindRecord:
		if rv.Kind() == reflect.Map {
			return mapEntry(rv, seg)
		}
		return structField(rv, seg.key)
	}
	return nil, false
}

func mapEntry(rv reflect.Value, seg segment) (any, bool) {
	keyType := rv.Type().Key()
	var key reflect.Value
	switch {
	case keyType.Kind() == reflect.String:
		key = reflect.ValueOf(seg.key).Convert(keyType)
	case keyType.Kind() == reflect.Interface && reflect.TypeOf(seg.key).Implements(keyType):
		key = reflect.ValueOf(seg.key)
	case seg.isIndex && reflect.TypeOf(seg.index).ConvertibleTo(keyType) && isIntKind(keyType.Kind()):
		key = reflect.ValueOf(seg.index).Convert(keyType)
	default:
		return nil, false
	}
	entry := rv.MapIndex(key)
	if !entry.IsValid() {
		return nil, false
	}
	return valueOf(entry), true
}

// structField matches an exported field by name, then by json tag, then by
// name ignoring case.
func structField(rv reflect.Value, key string) (any, bool) {
	rt := rv.Type()
	if f, ok := rt.FieldByName(key); ok && f.IsExported() && len(f.Index) == 1 {
		return valueOf(rv.Field(f.Index[0])), true
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if !f.IsExported() {
			continue
		}
		if name, _, _ := strings.Cut(f.Tag.Get("json"), ","); name == key {
			return valueOf(rv.Field(i)), true
		}
	}
	for i := 0; i < rt.NumField(); i++ {
		f := rt.Field(i)
		if f.IsExported() && strings.EqualFold(f.Name, key) {
			return valueOf(rv.Field(i)), true
		}
	}
	return nil, false
}

func valueOf(rv reflect.Value) any {
	if !rv.IsValid() || !rv.CanInterface() {
		return nil
	}
	return rv.Interface()
}

// length returns the element count of sequences and records and the rune
// count of text.
func length(v any) (int, bool) {
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch KindOf(v) {
	case KindSequence:
		return rv.Len(), true
	case KindText:
		return len([]rune(Text(v))), true
	case KindRecord:
		if rv.Kind() == reflect.Map {
			return rv.Len(), true
		}
		return len(exportedFields(rv.Type())), true
	}
	return 0, false
}

// elements copies the elements of a sequence.
func elements(v any) []any {
	rv, ok := indirect(v)
	if !ok || KindOf(v) != KindSequence {
		return nil
	}
	out := make([]any, rv.Len())
	for i := range out {
		out[i] = valueOf(rv.Index(i))
	}
	return out
}

func exportedFields(rt reflect.Type) []string {
	var names []string
	for i := 0; i < rt.NumField(); i++ {
		if f := rt.Field(i); f.IsExported() {
			names = append(names, f.Name)
		}
	}
	return names
}

func asTime(v any) (time.Time, bool) {
	rv, ok := indirect(v)
	if !ok || rv.Type() != timeType {
		return time.Time{}, false
	}
	return rv.Interface().(time.Time), true
}

// quoteISO renders t as a double-quoted ISO-8601 UTC timestamp, the form
// timestamps take when they are the final value of a path.
func quoteISO(t time.Time) string {
	return `"` + t.UTC().Format(isoLayout) + `"`
}

// ToFloat converts numbers and numeric text to float64.
func ToFloat(v any) (float64, bool) {
	rv, ok := indirect(v)
	if !ok {
		return 0, false
	}
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return float64(rv.Int()), true
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return float64(rv.Uint()), true
	case reflect.Float32, reflect.Float64:
		return rv.Float(), true
	case reflect.String:
		n, err := strconv.ParseFloat(strings.TrimSpace(rv.String()), 64)
		if err != nil {
			return 0, false
		}
		return n, true
	}
	return 0, false
}

func isIntKind(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return true
	}
	return false
}

// Text renders a resolved value the way it appears in output. Records and
// sequences render as JSON; floats use the shortest representation.
func Text(v any) string {
	if isNil(v) {
		return ""
	}
	switch x := v.(type) {
	case string:
		return x
	case []byte:
		return string(x)
	case time.Time:
		return x.UTC().Format(isoLayout)
	case float64:
		return formatFloat(x, 64)
	case float32:
		return formatFloat(float64(x), 32)
	case bool:
		return strconv.FormatBool(x)
	case fmt.Stringer:
		return x.String()
	case error:
		return x.Error()
	}

	rv, _ := indirect(v)
	switch KindOf(v) {
	case KindText:
		if rv.Kind() == reflect.String {
			return rv.String()
		}
		return string(rv.Bytes())
	case KindNumber:
		if rv.Kind() == reflect.Float32 || rv.Kind() == reflect.Float64 {
			return formatFloat(rv.Float(), rv.Type().Bits())
		}
		return fmt.Sprint(rv.Interface())
	case KindTime:
		return rv.Interface().(time.Time).UTC().Format(isoLayout)
	case KindSequence, KindRecord:
		return toJSON(v)
	case KindCallable:
		return ""
	}
	return fmt.Sprintf("%v", v)
}

// toJSON renders v as compact JSON without HTML escaping. If marshaling
// fails, returns the value's default string representation.
func toJSON(v any) string {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Sprintf("%v", v)
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func formatFloat(f float64, bits int) string {
	if abs := math.Abs(f); abs >= 1e21 || (abs != 0 && abs < 1e-6) {
		return strconv.FormatFloat(f, 'g', -1, bits)
	}
	return strconv.FormatFloat(f, 'f', -1, bits)
}
