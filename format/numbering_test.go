package format

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNumbering_ImplicitCounts(t *testing.T) {
	var n numbering
	for want := 0; want < 3; want++ {
		path, err := n.assign(field{implicit: true})
		require.NoError(t, err)
		require.Len(t, path, 1)
		assert.Equal(t, want, path[0].index)
		assert.True(t, path[0].isIndex)
	}
}

func TestNumbering_PrependsFirstArgument(t *testing.T) {
	var n numbering
	path, err := n.assign(field{path: []segment{{key: "name"}}})
	require.NoError(t, err)
	require.Len(t, path, 2)
	assert.Equal(t, indexSegment(0), path[0])
	assert.Equal(t, "name", path[1].key)

	path, err = n.assign(field{path: []segment{{key: "-1", index: -1, isIndex: true}}})
	require.NoError(t, err)
	require.Len(t, path, 1)
	assert.Equal(t, -1, path[0].index)
}

func TestNumbering_Conflicts(t *testing.T) {
	implicit := field{implicit: true}
	explicit := field{path: []segment{indexSegment(0)}}

	tests := []struct {
		name  string
		first field
		then  field
		msg   string
	}{
		{"implicit then explicit", implicit, explicit, "cannot switch from implicit to explicit numbering"},
		{"explicit then implicit", explicit, implicit, "cannot switch from explicit to implicit numbering"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var n numbering
			_, err := n.assign(tt.first)
			require.NoError(t, err)

			_, err = n.assign(tt.then)
			require.Error(t, err)
			assert.EqualError(t, err, tt.msg)
			assert.True(t, errors.Is(err, ErrNumberingConflict))
		})
	}
}
