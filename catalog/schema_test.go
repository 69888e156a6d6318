package catalog

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSchema(t *testing.T) {
	data, err := Schema()
	require.NoError(t, err)

	var doc struct {
		Title      string                     `json:"title"`
		Type       string                     `json:"type"`
		Properties map[string]json.RawMessage `json:"properties"`
		Required   []string                   `json:"required"`
	}
	require.NoError(t, json.Unmarshal(data, &doc))

	assert.Equal(t, "Message catalog", doc.Title)
	assert.Equal(t, "object", doc.Type)
	assert.Contains(t, doc.Properties, "messages")
	assert.Contains(t, doc.Properties, "options")
	assert.Contains(t, doc.Properties, "transformers")
	assert.Equal(t, []string{"messages"}, doc.Required)
}
