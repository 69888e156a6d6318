package format

import (
	"log/slog"
	"reflect"
	"strconv"
)

// resolution holds the per-call state of path resolution: the argument list
// and receivers rebound by mutating methods such as pop.
type resolution struct {
	f       *Formatter
	args    []any
	rebound map[string]any
}

func newResolution(f *Formatter, args []any) *resolution {
	return &resolution{f: f, args: args, rebound: make(map[string]any)}
}

// resolve walks path from the argument list. Each segment is tried as a
// callable member or registered method, then as a terminal timestamp, then as
// a negative index into a sequence or text, then as a plain member. The first
// segment that matches none of these ends the walk with the missing value.
func (r *resolution) resolve(raw string, path []segment) any {
	var cur any = r.args
	at := ""

	for i, seg := range path {
		last := i == len(path)-1
		here := joinPath(at, seg.key)
		val, found := r.member(cur, seg, here)

		if found {
			if fv, ok := callable(val); ok {
				out, err := callFunc(fv, seg.args)
				if err != nil {
					return r.miss(raw, seg, err)
				}
				cur, at = out, here+"()"
				continue
			}
		} else if fn, ok := r.f.methods.lookup(KindOf(cur), seg.key); ok {
			recvAt := at
			call := &Call{
				Name:     seg.key,
				Receiver: cur,
				Args:     seg.args,
				Locale:   r.f.locale,
				rebind:   func(v any) { r.rebound[recvAt] = v },
			}
			out, err := fn(call)
			if err != nil {
				return r.miss(raw, seg, err)
			}
			cur, at = out, here+"()"
			continue
		}

		if last && found {
			if t, ok := asTime(val); ok {
				return quoteISO(t)
			}
		}

		if seg.isIndex && seg.index < 0 && isOrdered(cur) {
			if n, ok := length(cur); ok && n+seg.index >= 0 {
				pos := n + seg.index
				key := joinPath(at, strconv.Itoa(pos))
				if v, ok := r.member(cur, indexSegment(pos), key); ok && !isNil(v) {
					cur, at = v, key
					continue
				}
			}
		}

		if found && !isNil(val) {
			cur, at = val, here
			continue
		}

		return r.miss(raw, seg, nil)
	}

	return cur
}

// member reads seg from v, preferring a value rebound earlier in the call.
func (r *resolution) member(v any, seg segment, here string) (any, bool) {
	if rv, ok := r.rebound[here]; ok {
		return rv, true
	}
	return member(v, seg)
}

func (r *resolution) miss(raw string, seg segment, err error) any {
	attrs := []any{
		slog.String("field", raw),
		slog.String("segment", seg.key),
	}
	if err != nil {
		attrs = append(attrs, slog.Any("error", err))
	}
	r.f.log().Debug("format field resolved to missing value", attrs...)
	return r.f.missing
}

// isOrdered reports whether v supports indexing from the end.
func isOrdered(v any) bool {
	k := KindOf(v)
	return k == KindSequence || k == KindText
}

func callable(v any) (reflect.Value, bool) {
	if KindOf(v) != KindCallable {
		return reflect.Value{}, false
	}
	rv, _ := indirect(v)
	return rv, true
}

func joinPath(at, key string) string {
	if at == "" {
		return key
	}
	return at + "." + key
}
