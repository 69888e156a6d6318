package catalog

import (
	"encoding/json"

	"github.com/invopop/jsonschema"
)

// Schema returns the JSON Schema describing catalog files, for editor
// completion and CI validation of JSON and YAML catalogs.
func Schema() ([]byte, error) {
	r := &jsonschema.Reflector{ExpandedStruct: true}
	s := r.Reflect(&File{})
	s.Title = "Message catalog"
	return json.MarshalIndent(s, "", "  ")
}
