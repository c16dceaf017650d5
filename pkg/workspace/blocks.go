package workspace

import (
	"fmt"

	"github.com/zqp2013/blockly/pkg/slots"
)

// Block is a workspace block. Beyond slots.Block it knows its parent and can
// be flattened back into a Record.
type Block interface {
	slots.Block
	Type() string
	Parent() string
	Record() Record
}

type base struct {
	id      string
	parent  string
	typ     string
	preview bool
}

func (b *base) ID() string     { return b.id }
func (b *base) Type() string   { return b.typ }
func (b *base) Parent() string { return b.parent }

// InPalettePreview reports whether the block lives in a flyout preview.
func (b *base) InPalettePreview() bool { return b.preview }

// SetPreview moves the block in or out of a flyout preview.
func (b *base) SetPreview(on bool) { b.preview = on }

func (b *base) setParent(id string) { b.parent = id }

func (b *base) record(kind Kind) Record {
	return Record{ID: b.id, ParentID: b.parent, Kind: kind, Type: b.typ, Preview: b.preview}
}

// DefinitionBlock originates a slot.
type DefinitionBlock struct {
	base
	name     string
	slotType string
}

// SlotDefinition reports the slot, or false while the block has no name.
func (b *DefinitionBlock) SlotDefinition() (slots.Slot, bool) {
	if b.name == "" {
		return slots.Slot{}, false
	}
	return slots.Slot{Name: b.name, Type: b.slotType}, true
}

// SetName commits the block's label. Hosts call it with the value returned
// by slots.Registry.Rename.
func (b *DefinitionBlock) SetName(name string) { b.name = name }

func (b *DefinitionBlock) Record() Record {
	r := b.record(KindDefinition)
	r.SlotName = b.name
	r.SlotType = b.slotType
	return r
}

// GetterBlock reads a slot by name and follows renames of it.
type GetterBlock struct {
	base
	reference string
}

// SlotReference reports the bound slot name, or false while unbound.
func (b *GetterBlock) SlotReference() (string, bool) {
	if b.reference == "" {
		return "", false
	}
	return b.reference, true
}

// RenameSlot rebinds the getter when it referenced oldName.
func (b *GetterBlock) RenameSlot(oldName, newName string) {
	if b.reference != "" && slots.NamesEqual(b.reference, oldName) {
		b.reference = newName
	}
}

// Bind points the getter at a slot name; an empty name unbinds it.
func (b *GetterBlock) Bind(name string) { b.reference = name }

func (b *GetterBlock) Record() Record {
	r := b.record(KindGetter)
	r.Reference = b.reference
	return r
}

// OpaqueBlock is any other editor block; it only contributes structure.
type OpaqueBlock struct {
	base
}

func (b *OpaqueBlock) Record() Record { return b.record(KindOther) }

// NewDefinition returns an unparented definition block with a fresh ID.
func NewDefinition(blockType, name, slotType string) *DefinitionBlock {
	return &DefinitionBlock{base: base{id: NewID(), typ: blockType}, name: name, slotType: slotType}
}

// NewGetter returns an unparented getter block bound to reference.
func NewGetter(blockType, reference string) *GetterBlock {
	return &GetterBlock{base: base{id: NewID(), typ: blockType}, reference: reference}
}

// NewOpaque returns an unparented block of any other type.
func NewOpaque(blockType string) *OpaqueBlock {
	return &OpaqueBlock{base: base{id: NewID(), typ: blockType}}
}

// NewBlock validates r and builds the matching block implementation.
func NewBlock(r Record) (Block, error) {
	if err := r.Validate(); err != nil {
		return nil, err
	}

	b := base{id: r.ID, parent: r.ParentID, typ: r.Type, preview: r.Preview}
	switch r.Kind {
	case KindDefinition:
		return &DefinitionBlock{base: b, name: r.SlotName, slotType: r.SlotType}, nil
	case KindGetter:
		return &GetterBlock{base: b, reference: r.Reference}, nil
	case KindOther:
		return &OpaqueBlock{base: b}, nil
	}
	return nil, fmt.Errorf("block %s: unsupported kind %q", r.ID, r.Kind)
}
