package catalog

import (
	"encoding/json"
	"fmt"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Syntax identifies the encoding of a catalog file.
type Syntax string

const (
	SyntaxYAML Syntax = "yaml"
	SyntaxTOML Syntax = "toml"
	SyntaxJSON Syntax = "json"
)

// SyntaxFor returns the syntax implied by the extension of path.
func SyntaxFor(path string) (Syntax, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return SyntaxYAML, nil
	case ".toml":
		return SyntaxTOML, nil
	case ".json":
		return SyntaxJSON, nil
	}
	return "", fmt.Errorf("%w: %s", ErrUnknownSyntax, path)
}

// File is the decoded form of a catalog file.
type File struct {
	Options FileOptions `yaml:"options,omitempty" toml:"options,omitempty" json:"options,omitempty"`

	// Transformers maps alias names usable after "!" in messages to
	// transformer specs such as "upper" or "truncate:20".
	Transformers map[string]string `yaml:"transformers,omitempty" toml:"transformers,omitempty" json:"transformers,omitempty" jsonschema_description:"Alias names mapped to transformer specs such as upper or truncate:20"`

	// Messages maps message names to templates.
	Messages map[string]string `yaml:"messages" toml:"messages" json:"messages" jsonschema_description:"Message names mapped to templates"`
}

// FileOptions configures the formatter shared by a catalog's messages.
type FileOptions struct {
	Missing      string `yaml:"missing,omitempty" toml:"missing,omitempty" json:"missing,omitempty" jsonschema_description:"Text rendered for unresolvable fields"`
	BraceEscapes *bool  `yaml:"brace_escapes,omitempty" toml:"brace_escapes,omitempty" json:"brace_escapes,omitempty" jsonschema_description:"Collapse {{ and }} to single braces (default true)"`
	Locale       string `yaml:"locale,omitempty" toml:"locale,omitempty" json:"locale,omitempty" jsonschema_description:"Default locale for calendar names"`
}

// Decode parses data written in syntax.
func Decode(data []byte, syntax Syntax) (*File, error) {
	var (
		file File
		err  error
	)

	switch syntax {
	case SyntaxYAML:
		err = yaml.Unmarshal(data, &file)
	case SyntaxTOML:
		err = toml.Unmarshal(data, &file)
	case SyntaxJSON:
		err = json.Unmarshal(data, &file)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownSyntax, syntax)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrDecode, err)
	}

	return &file, nil
}
