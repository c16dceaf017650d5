package slots

import "errors"

// ErrSlotNotFound is returned by callers that turn a FindDefinition miss into
// an error.
var ErrSlotNotFound = errors.New("slot not found")

// FindReferences returns the blocks in ws that read the slot called name.
// Unbound getters are skipped.
func FindReferences(name string, ws Workspace) []Block {
	var refs []Block
	for _, b := range ws.AllBlocks() {
		ref, ok := b.(SlotReferrer)
		if !ok {
			continue
		}
		if bound, ok := ref.SlotReference(); ok && NamesEqual(bound, name) {
			refs = append(refs, b)
		}
	}
	return refs
}

// FindDefinition returns the top-level block defining name.
// Definitions only live at the top level, so nested blocks are not searched.
func FindDefinition(name string, ws Workspace) (Block, bool) {
	for _, b := range ws.TopBlocks() {
		if slot, ok := definedSlot(b); ok && NamesEqual(slot.Name, name) {
			return b, true
		}
	}
	return nil, false
}
