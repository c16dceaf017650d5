// Package workspace hosts slot blocks for tooling and tests.
//
// # Overview
//
// The editor owns the real block model. This package mirrors the part of it
// the slot registry needs: typed blocks built from flat Records, an ordered
// Workspace implementing slots.Workspace, a YAML document format and a Redis
// Store that lets several editors share one workspace.
//
// # Block kinds
//
// Records carry a Kind that selects the implementation:
//
//   - KindDefinition: DefinitionBlock, a slots.SlotDefiner
//   - KindGetter: GetterBlock, a slots.SlotReferrer and slots.RenameParticipant
//   - KindOther: OpaqueBlock, structure only
//
// # Redis Schema
//
// All keys are namespaced by instance name: slots:{instance}:{entity}
//
// Blocks: slots:{instance}:block:{block_id} (hash)
// Block order: slots:{instance}:blocks (ZSET, score = position)
// Rename history: slots:{instance}:renames (LIST, newest first, capped)
//
// Pub/Sub: slots:{instance}:rename_events
//
// # Usage Example
//
//	ws, err := workspace.LoadFile("workspace.yml")
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	store, err := workspace.NewStore(&redis.Options{Addr: "localhost:6379"}, "default")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer store.Close()
//
//	if err := store.SaveWorkspace(ctx, ws); err != nil {
//		log.Fatal(err)
//	}
package workspace
