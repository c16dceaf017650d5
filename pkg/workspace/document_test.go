package workspace

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleDocument = `version: "1.0"
blocks:
  - id: 6f1c2b1e-3d4a-4c5b-9e8f-0a1b2c3d4e5f
    kind: definition
    type: voice_slot_define
    slot_name: city
    slot_type: place
  - id: 7a2d3c4b-5e6f-4a1b-8c9d-1e2f3a4b5c6d
    kind: other
    type: voice_intent
  - id: 8b3e4d5c-6f7a-4b2c-9d0e-2f3a4b5c6d7e
    parent: 7a2d3c4b-5e6f-4a1b-8c9d-1e2f3a4b5c6d
    kind: getter
    type: voice_slot_get
    reference: city
`

func TestParse(t *testing.T) {
	ws, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	assert.Equal(t, 3, ws.Len())
	assert.Len(t, ws.TopBlocks(), 2)

	b, err := ws.Block("8b3e4d5c-6f7a-4b2c-9d0e-2f3a4b5c6d7e")
	require.NoError(t, err)
	ref, ok := b.(*GetterBlock).SlotReference()
	assert.True(t, ok)
	assert.Equal(t, "city", ref)
}

func TestParseErrors(t *testing.T) {
	testCases := []struct {
		name    string
		doc     string
		wantErr string
	}{
		{name: "bad yaml", doc: "version: [", wantErr: "failed to parse YAML"},
		{name: "wrong version", doc: "version: \"2.0\"\nblocks: []\n", wantErr: "unsupported workspace version"},
		{name: "bad block", doc: "version: \"1.0\"\nblocks:\n  - id: x\n    kind: other\n    type: t\n", wantErr: "invalid workspace"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse([]byte(tc.doc))
			assert.ErrorContains(t, err, tc.wantErr)
		})
	}
}

func TestSaveAndLoadFile(t *testing.T) {
	ws, err := Parse([]byte(sampleDocument))
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "workspace.yml")
	require.NoError(t, SaveFile(path, ws))

	loaded, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, ws.Records(), loaded.Records())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "slot_name: city")
	assert.NotContains(t, string(data), "preview", "false flags are omitted")

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yml"))
	assert.ErrorContains(t, err, "failed to read workspace")
}
