package workspace

import (
	"fmt"

	"github.com/google/uuid"
)

// Record is the flat, serialisable form of a block.
type Record struct {
	ID        string `json:"id" yaml:"id"`                                   // UUID - unique within the workspace
	ParentID  string `json:"parent_id,omitempty" yaml:"parent,omitempty"`    // UUID of the enclosing block, empty for top-level blocks
	Kind      Kind   `json:"kind" yaml:"kind"`                               // Which capabilities the block has
	Type      string `json:"type" yaml:"type"`                               // Editor block type (e.g. "voice_slot_define")
	SlotName  string `json:"slot_name,omitempty" yaml:"slot_name,omitempty"` // Definition blocks: the slot's name, empty while unconfigured
	SlotType  string `json:"slot_type,omitempty" yaml:"slot_type,omitempty"` // Definition blocks: the slot's value type
	Reference string `json:"reference,omitempty" yaml:"reference,omitempty"` // Getter blocks: name of the slot read, empty while unbound
	Preview   bool   `json:"preview,omitempty" yaml:"preview,omitempty"`     // Block lives in a flyout preview
}

// Kind selects the block implementation built from a Record.
type Kind string

const (
	// KindDefinition blocks originate a slot
	KindDefinition Kind = "definition"

	// KindGetter blocks read a slot by name and follow renames
	KindGetter Kind = "getter"

	// KindOther blocks take no part in slot handling
	KindOther Kind = "other"
)

// Validate checks that the kind is one of the known values.
func (k Kind) Validate() error {
	switch k {
	case KindDefinition, KindGetter, KindOther:
		return nil
	default:
		return fmt.Errorf("unknown block kind: %q", k)
	}
}

// Validate checks if the Record has valid field values.
func (r *Record) Validate() error {
	if !isValidUUID(r.ID) {
		return fmt.Errorf("invalid block ID %q: not a valid UUID", r.ID)
	}

	if r.ParentID != "" {
		if !isValidUUID(r.ParentID) {
			return fmt.Errorf("block %s: invalid parent ID %q: not a valid UUID", r.ID, r.ParentID)
		}
		if r.ParentID == r.ID {
			return fmt.Errorf("block %s: cannot be its own parent", r.ID)
		}
	}

	if err := r.Kind.Validate(); err != nil {
		return fmt.Errorf("block %s: %w", r.ID, err)
	}

	if r.Type == "" {
		return fmt.Errorf("block %s: type is required", r.ID)
	}

	if r.Kind != KindDefinition && (r.SlotName != "" || r.SlotType != "") {
		return fmt.Errorf("block %s: only definition blocks carry slot_name/slot_type", r.ID)
	}

	if r.Kind != KindGetter && r.Reference != "" {
		return fmt.Errorf("block %s: only getter blocks carry a reference", r.ID)
	}

	return nil
}

// NewID returns a fresh block ID.
func NewID() string {
	return uuid.New().String()
}

func isValidUUID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
