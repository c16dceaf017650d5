package workspace

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/zqp2013/blockly/pkg/slots"
)

// intentWorkspace builds an intent with two slots, a nested getter for each
// and one top-level getter outside the intent.
func intentWorkspace(t *testing.T) (*Workspace, *DefinitionBlock, *GetterBlock, *GetterBlock) {
	t.Helper()

	ws := New()
	color := NewDefinition(slots.DefaultDefinitionType, "Color", "colour")
	size := NewDefinition(slots.DefaultDefinitionType, "Size", "number")
	intent := NewOpaque("voice_intent")
	nested := NewGetter(slots.DefaultGetterType, "Color")
	loose := NewGetter(slots.DefaultGetterType, "color")

	require.NoError(t, ws.Add(color))
	require.NoError(t, ws.Add(size))
	require.NoError(t, ws.Add(intent))
	require.NoError(t, ws.Nest(intent.ID(), nested))
	require.NoError(t, ws.Nest(intent.ID(), NewGetter(slots.DefaultGetterType, "Size")))
	require.NoError(t, ws.Add(loose))

	return ws, color, nested, loose
}

func TestWorkspaceQueries(t *testing.T) {
	ws, color, nested, _ := intentWorkspace(t)

	assert.Equal(t, 6, ws.Len())
	assert.Len(t, ws.AllBlocks(), 6)
	assert.Len(t, ws.TopBlocks(), 4)

	got, err := ws.Block(nested.ID())
	require.NoError(t, err)
	assert.Equal(t, nested, got)

	_, err = ws.Block(NewID())
	assert.ErrorIs(t, err, ErrBlockNotFound)

	assert.Error(t, ws.Add(color), "duplicate IDs are rejected")
	assert.ErrorIs(t, ws.Nest(NewID(), NewOpaque("x")), ErrBlockNotFound)
}

func TestWorkspaceRemoveCascades(t *testing.T) {
	ws, _, nested, loose := intentWorkspace(t)

	require.NoError(t, ws.Remove(nested.Parent()))

	assert.Equal(t, 3, ws.Len())
	_, err := ws.Block(nested.ID())
	assert.ErrorIs(t, err, ErrBlockNotFound)
	_, err = ws.Block(loose.ID())
	assert.NoError(t, err)

	assert.ErrorIs(t, ws.Remove(NewID()), ErrBlockNotFound)
}

func TestFromRecords(t *testing.T) {
	ws, _, _, _ := intentWorkspace(t)

	rebuilt, err := FromRecords(ws.Records())
	require.NoError(t, err)
	assert.Equal(t, ws.Records(), rebuilt.Records())

	t.Run("missing parent", func(t *testing.T) {
		_, err := FromRecords([]Record{{ID: NewID(), ParentID: NewID(), Kind: KindOther, Type: "x"}})
		assert.ErrorContains(t, err, "not in workspace")
	})

	t.Run("duplicate ID", func(t *testing.T) {
		id := NewID()
		_, err := FromRecords([]Record{
			{ID: id, Kind: KindOther, Type: "x"},
			{ID: id, Kind: KindOther, Type: "y"},
		})
		assert.ErrorContains(t, err, "duplicate block ID")
	})
}

func TestWorkspaceWithRegistry(t *testing.T) {
	ws, color, nested, loose := intentWorkspace(t)
	reg := slots.New()

	t.Run("slot list", func(t *testing.T) {
		assert.Equal(t, []slots.Slot{{Name: "Color", Type: "colour"}, {Name: "Size", Type: "number"}}, slots.AllSlots(ws))
	})

	t.Run("definition lookup stays at top level", func(t *testing.T) {
		def, ok := slots.FindDefinition("color", ws)
		require.True(t, ok)
		assert.Equal(t, color.ID(), def.ID())
	})

	t.Run("rename reaches nested and top-level getters", func(t *testing.T) {
		accepted := reg.Rename(ws, color, "Hue")
		color.SetName(accepted)

		ref, _ := nested.SlotReference()
		assert.Equal(t, "Hue", ref)
		ref, _ = loose.SlotReference()
		assert.Equal(t, "Hue", ref)
		assert.Empty(t, slots.FindReferences("Color", ws))
		assert.Len(t, slots.FindReferences("hue", ws), 2)
	})

	t.Run("collision with another definition", func(t *testing.T) {
		accepted := reg.Rename(ws, color, "size")
		color.SetName(accepted)

		assert.Equal(t, "size2", accepted)
		assert.Empty(t, slots.Duplicates(ws))
	})

	t.Run("preview definitions are ignored for uniqueness", func(t *testing.T) {
		preview := NewDefinition(slots.DefaultDefinitionType, "Size", "number")
		preview.SetPreview(true)
		require.NoError(t, ws.Add(preview))

		assert.Equal(t, "Size", reg.Rename(ws, preview, "Size"))
		assert.Empty(t, slots.Duplicates(ws))
	})
}

func TestGetterBlock(t *testing.T) {
	g := NewGetter("g", "")
	_, ok := g.SlotReference()
	assert.False(t, ok)

	g.RenameSlot("", "City")
	_, ok = g.SlotReference()
	assert.False(t, ok, "unbound getters ignore renames")

	g.Bind("City")
	g.RenameSlot("Town", "Village")
	ref, _ := g.SlotReference()
	assert.Equal(t, "City", ref)
}
