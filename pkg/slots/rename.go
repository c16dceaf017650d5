package slots

import (
	"strings"

	"go.uber.org/zap"
)

// RenameResult describes the outcome of a rename.
type RenameResult struct {
	OldName  string // name the block reported before the rename
	NewName  string // accepted name the caller must commit as the label
	Notified int    // rename participants told about the change
}

// Changed reports whether the accepted name differs from the previous one,
// that is whether the caller has a new label to commit. A changed name is
// not necessarily propagated; see Notified.
func (r RenameResult) Changed() bool {
	return r.OldName != r.NewName
}

// Rename resolves proposed into a legal name for block and propagates the
// change to every rename participant in ws. It returns the accepted name;
// committing it as block's label is the caller's job.
func (r *Registry) Rename(ws Workspace, block Block, proposed string) string {
	return r.RenameDetailed(ws, block, proposed).NewName
}

// RenameDetailed is Rename reporting the previous name and how many
// participants were notified.
//
// An empty or all-whitespace proposal keeps the previous name. Nobody is
// notified when the proposal or the accepted name equals the current name,
// or when block is a palette preview. In the first case the accepted name
// may still differ: a duplicate definition re-entering its own name is
// disambiguated away from its twin but keeps the getters both share.
func (r *Registry) RenameDetailed(ws Workspace, block Block, proposed string) RenameResult {
	var oldName string
	if slot, ok := definedSlot(block); ok {
		oldName = slot.Name
	}
	result := RenameResult{OldName: oldName, NewName: oldName}

	// strings.TrimSpace covers U+00A0 as well.
	trimmed := strings.TrimSpace(proposed)
	if trimmed == "" {
		r.logger.Debug("Ignoring empty slot name", zap.String("block", block.ID()))
		return result
	}

	result.NewName = Disambiguate(trimmed, block, ws)

	if r.warnNaming {
		if err := CheckNamingRule(result.NewName); err != nil {
			r.logger.Warn("Slot name breaks platform naming rule",
				zap.String("block", block.ID()),
				zap.String("name", result.NewName),
				zap.Error(err))
		}
	}

	if trimmed == oldName || !result.Changed() {
		return result
	}
	if isPreview(block) {
		r.logger.Debug("Not propagating rename of palette preview", zap.String("block", block.ID()))
		return result
	}

	for _, b := range ws.AllBlocks() {
		p, ok := b.(RenameParticipant)
		if !ok {
			continue
		}
		p.RenameSlot(oldName, result.NewName)
		result.Notified++
	}

	r.logger.Debug("Propagated slot rename",
		zap.String("block", block.ID()),
		zap.String("old", oldName),
		zap.String("new", result.NewName),
		zap.Int("participants", result.Notified))

	return result
}
