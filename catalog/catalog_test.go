package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/randalmurphal/bracefmt/format"
)

const yamlCatalog = `
options:
  missing: "?"
transformers:
  short: truncate:8
messages:
  greeting: "Hello {name!title}, you have {count} message{count!s}"
  summary: "{0!short}"
  absent: "[{nope}]"
`

const tomlCatalog = `
[options]
locale = "fr"

[messages]
month = "{0.getMonthName}"
`

const jsonCatalog = `{
  "options": {"brace_escapes": false},
  "messages": {"query": "{age: {$gt: {0}}}"}
}`

func TestParse_Syntaxes(t *testing.T) {
	t.Run("yaml", func(t *testing.T) {
		c, err := Parse([]byte(yamlCatalog), SyntaxYAML)
		require.NoError(t, err)

		out, err := c.Format("greeting", map[string]any{"name": "ada lovelace", "count": 2})
		require.NoError(t, err)
		assert.Equal(t, "Hello Ada Lovelace, you have 2 messages", out)

		out, err = c.Format("summary", "a long summary")
		require.NoError(t, err)
		assert.Equal(t, "a lon...", out)

		out, err = c.Format("absent", map[string]any{})
		require.NoError(t, err)
		assert.Equal(t, "[?]", out)
	})

	t.Run("toml", func(t *testing.T) {
		c, err := Parse([]byte(tomlCatalog), SyntaxTOML)
		require.NoError(t, err)

		out, err := c.Format("month", time.Date(2020, time.March, 1, 0, 0, 0, 0, time.UTC))
		require.NoError(t, err)
		assert.Equal(t, "mars", out)
	})

	t.Run("json", func(t *testing.T) {
		c, err := Parse([]byte(jsonCatalog), SyntaxJSON)
		require.NoError(t, err)

		out, err := c.Format("query", 5)
		require.NoError(t, err)
		assert.Equal(t, "{age: {$gt: 5}}", out)
	})
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name   string
		data   string
		syntax Syntax
		target error
	}{
		{"bad yaml", "messages: [", SyntaxYAML, ErrDecode},
		{"bad toml", "messages = ", SyntaxTOML, ErrDecode},
		{"bad json", "{", SyntaxJSON, ErrDecode},
		{"unknown syntax", "", Syntax("ini"), ErrUnknownSyntax},
		{"bad alias", "transformers: {x: shout}\nmessages: {}", SyntaxYAML, ErrUnknownTransformer},
		{"unknown transformer in message", "messages: {a: '{!nope}'}", SyntaxYAML, format.ErrUnknownTransformer},
		{"numbering conflict", "messages: {a: '{} {0}'}", SyntaxYAML, format.ErrNumberingConflict},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data), tt.syntax)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.target)
		})
	}
}

func TestParse_ErrorNamesMessage(t *testing.T) {
	_, err := Parse([]byte("messages: {broken: '{0} {}'}"), SyntaxYAML)
	require.Error(t, err)
	assert.Contains(t, err.Error(), `message "broken"`)
	assert.Contains(t, err.Error(), "cannot switch from explicit to implicit numbering")
}

func TestCatalog_Lookups(t *testing.T) {
	c, err := Parse([]byte(yamlCatalog), SyntaxYAML)
	require.NoError(t, err)

	assert.Equal(t, []string{"absent", "greeting", "summary"}, c.Names())

	tmpl, ok := c.Template("summary")
	assert.True(t, ok)
	assert.Equal(t, "{0!short}", tmpl)

	_, ok = c.Template("missing")
	assert.False(t, ok)

	_, err = c.Format("missing")
	assert.ErrorIs(t, err, ErrUnknownMessage)
}

func TestCatalog_WithTransformersOverride(t *testing.T) {
	shout := func(v any) string { return strings.ToUpper(format.Text(v)) + "!" }
	c, err := Parse([]byte(yamlCatalog), SyntaxYAML, WithTransformers(format.Transformers{"short": shout}))
	require.NoError(t, err)

	out, err := c.Format("summary", "hey")
	require.NoError(t, err)
	assert.Equal(t, "HEY!", out)
}

func TestNew_FromFile(t *testing.T) {
	c, err := New(&File{Messages: map[string]string{"hi": "hi {}"}})
	require.NoError(t, err)

	out, err := c.Format("hi", "there")
	require.NoError(t, err)
	assert.Equal(t, "hi there", out)

	assert.ErrorIs(t, c.Reload(), ErrNoSource)
	assert.ErrorIs(t, c.Watch(context.Background()), ErrNoSource)
}

func TestNew_NilFile(t *testing.T) {
	c, err := New(nil)
	assert.Nil(t, c)
	assert.ErrorIs(t, err, ErrNilFile)
}

func TestSyntaxFor(t *testing.T) {
	for path, want := range map[string]Syntax{
		"a.yaml":     SyntaxYAML,
		"a.YML":      SyntaxYAML,
		"dir/a.toml": SyntaxTOML,
		"a.json":     SyntaxJSON,
	} {
		got, err := SyntaxFor(path)
		require.NoError(t, err, path)
		assert.Equal(t, want, got, path)
	}

	_, err := SyntaxFor("a.ini")
	assert.ErrorIs(t, err, ErrUnknownSyntax)
}

func writeCatalog(t *testing.T, path, greeting string) {
	t.Helper()
	data := "messages:\n  greet: \"" + greeting + "\"\n"
	require.NoError(t, os.WriteFile(path, []byte(data), 0o600))
}

func TestLoad_AndReload(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yml")
	writeCatalog(t, path, "Hi {}")

	c, err := Load(path)
	require.NoError(t, err)

	out, err := c.Format("greet", "ada")
	require.NoError(t, err)
	assert.Equal(t, "Hi ada", out)

	writeCatalog(t, path, "Hello {}")
	require.NoError(t, c.Reload())
	out, err = c.Format("greet", "ada")
	require.NoError(t, err)
	assert.Equal(t, "Hello ada", out)

	require.NoError(t, os.WriteFile(path, []byte("messages: ["), 0o600))
	assert.ErrorIs(t, c.Reload(), ErrDecode)
	out, err = c.Format("greet", "ada")
	require.NoError(t, err)
	assert.Equal(t, "Hello ada", out, "failed reload keeps previous messages")
}

func TestLoad_Errors(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "messages.ini"))
	assert.ErrorIs(t, err, ErrUnknownSyntax)

	_, err = Load(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.True(t, errors.Is(err, os.ErrNotExist))
}

func TestWatch_ReloadsOnChange(t *testing.T) {
	path := filepath.Join(t.TempDir(), "messages.yaml")
	writeCatalog(t, path, "v1 {}")

	reloads := make(chan error, 1)
	c, err := Load(path, WithReloadHook(func(err error) {
		select {
		case reloads <- err:
		default:
		}
	}))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- c.Watch(ctx) }()

	require.Eventually(t, func() bool {
		_ = os.WriteFile(path, []byte("messages:\n  greet: \"v2 {}\"\n"), 0o600)
		out, err := c.Format("greet", "x")
		return err == nil && out == "v2 x"
	}, 5*time.Second, 50*time.Millisecond)
	require.Eventually(t, func() bool { return len(reloads) > 0 }, 5*time.Second, 10*time.Millisecond)

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Watch did not return after cancel")
	}
}
