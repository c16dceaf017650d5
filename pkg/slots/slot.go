package slots

import (
	"strings"
	"unicode"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// Slot is a named, typed intent parameter as reported by a definition block.
// Name is kept verbatim; comparisons go through NamesEqual.
type Slot struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Block is the minimum the package needs from a workspace block.
// IDs must be unique within a workspace.
type Block interface {
	ID() string
}

// SlotDefiner is implemented by blocks that originate a slot.
// ok is false while the block is not yet configured.
type SlotDefiner interface {
	SlotDefinition() (slot Slot, ok bool)
}

// SlotReferrer is implemented by blocks that read a slot by name.
// ok is false when the block is unbound.
type SlotReferrer interface {
	SlotReference() (name string, ok bool)
}

// RenameParticipant is implemented by blocks that must follow slot renames.
// Implementations decide whether oldName is theirs and must not fail.
type RenameParticipant interface {
	RenameSlot(oldName, newName string)
}

// PreviewBlock is implemented by blocks that may live in a flyout preview.
// Preview blocks take no part in name uniqueness.
type PreviewBlock interface {
	InPalettePreview() bool
}

// Workspace exposes the live block collection.
type Workspace interface {
	// AllBlocks returns every block, nested ones included.
	AllBlocks() []Block
	// TopBlocks returns only the blocks without a parent.
	TopBlocks() []Block
}

// Catalog answers whether a block template type is available.
type Catalog interface {
	HasBlockType(typ string) bool
}

// NamesEqual reports whether two slot names identify the same slot.
// Case and all whitespace are ignored.
func NamesEqual(a, b string) bool {
	return strings.EqualFold(stripSpace(a), stripSpace(b))
}

// CompareNames orders slot names case-insensitively using locale-aware
// collation. It returns -1, 0 or +1.
func CompareNames(a, b string) int {
	return newCollator().CompareString(a, b)
}

// newCollator returns a fresh collator; collate.Collator is not safe for
// concurrent use so one is built per sort.
func newCollator() *collate.Collator {
	return collate.New(language.Und, collate.IgnoreCase)
}

func stripSpace(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, s)
}

func isPreview(b Block) bool {
	p, ok := b.(PreviewBlock)
	return ok && p.InPalettePreview()
}

func definedSlot(b Block) (Slot, bool) {
	def, ok := b.(SlotDefiner)
	if !ok {
		return Slot{}, false
	}
	return def.SlotDefinition()
}

func sameBlock(a, b Block) bool {
	return a != nil && b != nil && a.ID() == b.ID()
}
