package format

import (
	"bytes"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func resolvePath(t *testing.T, f *Formatter, raw string, args ...any) any {
	t.Helper()
	fld, _, ok := parseField(raw, 1)
	require.True(t, ok, "bad field %q", raw)
	var num numbering
	path, err := num.assign(fld)
	require.NoError(t, err)
	return newResolution(f, args).resolve(raw, path)
}

func TestResolve_MemberShadowsMethod(t *testing.T) {
	f := New(nil)
	rec := map[string]any{"length": "long", "items": []int{1, 2}}

	assert.Equal(t, "long", resolvePath(t, f, "{length}", rec))
	assert.Equal(t, 2, resolvePath(t, f, "{items.length}", rec))
}

func TestResolve_TimestampQuotedOnlyWhenTerminal(t *testing.T) {
	f := New(nil)
	d := time.Date(2001, time.February, 3, 4, 5, 6, 0, time.UTC)
	rec := map[string]any{"at": d}

	assert.Equal(t, `"2001-02-03T04:05:06.000Z"`, resolvePath(t, f, "{at}", rec))
	assert.Equal(t, 2001, resolvePath(t, f, "{at.getFullYear}", rec))
	parsed, ok := resolvePath(t, f, "{at.toISOString.toDate}", rec).(time.Time)
	require.True(t, ok)
	assert.True(t, d.Equal(parsed))
}

func TestResolve_NegativeIndexIntoNestedSequence(t *testing.T) {
	f := New(nil)
	rec := map[string]any{"list": []string{"a", "b", "c"}}

	assert.Equal(t, "c", resolvePath(t, f, "{list.-1}", rec))
	assert.Equal(t, "a", resolvePath(t, f, "{list.-3}", rec))
	assert.Equal(t, "", resolvePath(t, f, "{list.-4}", rec))
	assert.Equal(t, "b", resolvePath(t, f, "{list.1}", rec))
	assert.Equal(t, "c", resolvePath(t, f, "{0.-1}", "abc"))
}

func TestResolve_NilElementIsMissing(t *testing.T) {
	f := New(nil, WithMissing("-"))
	assert.Equal(t, "-", resolvePath(t, f, "{-1}", "a", nil))
	assert.Equal(t, "-", resolvePath(t, f, "{p.x}", map[string]any{"p": (*struct{ X int })(nil)}))
}

func TestResolve_IntKeyedMaps(t *testing.T) {
	f := New(nil)
	m := map[int]string{1: "one", -1: "minus one"}

	assert.Equal(t, "one", resolvePath(t, f, "{0.1}", m))
	assert.Equal(t, "minus one", resolvePath(t, f, "{0.-1}", m))
}

func TestResolve_RebindIsScopedToOneCall(t *testing.T) {
	f := New(nil)
	items := []string{"x", "y"}

	out, err := f.Format("{pop}{pop}", items)
	require.NoError(t, err)
	assert.Equal(t, "yx", out)

	out, err = f.Format("{pop}", items)
	require.NoError(t, err)
	assert.Equal(t, "y", out)
}

func TestResolve_RebindSeenThroughNegativeIndex(t *testing.T) {
	f := New(nil)
	out, err := f.Format("{1.pop}{-1.pop}{1.length}", "a", []int{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, "321", out)
}

func TestResolve_LogsSoftMisses(t *testing.T) {
	var buf bytes.Buffer
	logger := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	f := New(nil, WithLogger(logger))

	out, err := f.Format("[{user.name}]", map[string]any{})
	require.NoError(t, err)
	assert.Equal(t, "[]", out)
	assert.Contains(t, buf.String(), "field={user.name}")
	assert.Contains(t, buf.String(), "segment=user")
}
