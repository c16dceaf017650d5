package workspace

import (
	"fmt"
	"time"

	"github.com/zqp2013/blockly/pkg/slots"
)

// RenameEvent records a committed slot rename.
type RenameEvent struct {
	BlockID      string `json:"block_id"`     // Definition block that was renamed
	OldName      string `json:"old_name"`     // Name before the rename (empty for a first name)
	NewName      string `json:"new_name"`     // Accepted name
	Participants int    `json:"participants"` // Rename participants notified
	AtMs         int64  `json:"at_ms"`        // Unix timestamp in milliseconds
}

// NewRenameEvent builds an event for a rename applied to blockID.
func NewRenameEvent(blockID string, res slots.RenameResult) *RenameEvent {
	return &RenameEvent{
		BlockID:      blockID,
		OldName:      res.OldName,
		NewName:      res.NewName,
		Participants: res.Notified,
		AtMs:         time.Now().UnixMilli(),
	}
}

// Validate checks if the RenameEvent has valid field values.
func (e *RenameEvent) Validate() error {
	if !isValidUUID(e.BlockID) {
		return fmt.Errorf("invalid block ID %q: not a valid UUID", e.BlockID)
	}
	if e.NewName == "" {
		return fmt.Errorf("new name is required")
	}
	if e.Participants < 0 {
		return fmt.Errorf("invalid participants: must be >= 0, got %d", e.Participants)
	}
	return nil
}
