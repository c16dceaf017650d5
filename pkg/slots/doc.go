// Package slots maintains the slot names of a block-based voice intent
// workspace.
//
// # Overview
//
// A slot is a named, typed parameter of an intent. Slots come into existence
// through slot-definition blocks and are read by slot-getter blocks. This
// package discovers the definitions in a workspace, keeps their names unique,
// propagates renames to every block that references a slot and builds the
// flyout (palette) entries used to insert getter blocks.
//
// # Capabilities
//
// The package never depends on a concrete block type. A block is anything
// with an ID; what it can do is discovered by type assertion against small
// capability interfaces:
//
//   - SlotDefiner: reports the Slot it defines
//   - SlotReferrer: reports the name of the slot it reads
//   - RenameParticipant: updates its own reference when a slot is renamed
//   - PreviewBlock: marks blocks living in a flyout preview
//
// # State
//
// Nothing is cached. Every operation takes the Workspace as an argument and
// rescans it, so results always reflect the live block set.
//
// # Usage Example
//
//	reg := slots.New(slots.WithCatalog(catalog), slots.WithLogger(logger))
//
//	// Commit a label edit on a definition block
//	accepted := reg.Rename(ws, block, "  Colour ")
//	block.SetName(accepted)
//
//	// Palette contents for the slot category
//	entries := reg.Flyout(ws)
package slots
