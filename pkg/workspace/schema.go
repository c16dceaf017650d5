package workspace

import "fmt"

// Redis key pattern helpers
//
// Key pattern: slots:{instance_name}:{entity}
// Channel pattern: slots:{instance_name}:{event_type}_events

// BlockKey returns the Redis key for a block hash.
// Pattern: slots:{instance_name}:block:{block_id}
func BlockKey(instanceName, blockID string) string {
	return fmt.Sprintf("slots:%s:block:%s", instanceName, blockID)
}

// BlockOrderKey returns the Redis key for the ZSET ordering the workspace's
// blocks. Pattern: slots:{instance_name}:blocks
func BlockOrderKey(instanceName string) string {
	return fmt.Sprintf("slots:%s:blocks", instanceName)
}

// RenameLogKey returns the Redis key for the capped rename history list.
// Pattern: slots:{instance_name}:renames
func RenameLogKey(instanceName string) string {
	return fmt.Sprintf("slots:%s:renames", instanceName)
}

// RenameEventsChannel returns the Pub/Sub channel for rename events.
// Pattern: slots:{instance_name}:rename_events
func RenameEventsChannel(instanceName string) string {
	return fmt.Sprintf("slots:%s:rename_events", instanceName)
}
