package workspace

import (
	"fmt"
	"strconv"
)

// Serialization helpers for converting between records and Redis hashes
//
// Redis hashes are string-to-string maps. Every Record field maps to one hash
// field; booleans are stored as "true"/"false" so the hash reads the same in
// redis-cli as in YAML.

// RecordToHash converts a Record to a Redis hash.
func RecordToHash(r *Record) map[string]interface{} {
	return map[string]interface{}{
		"id":        r.ID,
		"parent_id": r.ParentID,
		"kind":      string(r.Kind),
		"type":      r.Type,
		"slot_name": r.SlotName,
		"slot_type": r.SlotType,
		"reference": r.Reference,
		"preview":   strconv.FormatBool(r.Preview),
	}
}

// HashToRecord converts a Redis hash back into a validated Record.
func HashToRecord(hash map[string]string) (*Record, error) {
	preview := false
	if v := hash["preview"]; v != "" {
		var err error
		preview, err = strconv.ParseBool(v)
		if err != nil {
			return nil, fmt.Errorf("invalid preview field: %w", err)
		}
	}

	r := &Record{
		ID:        hash["id"],
		ParentID:  hash["parent_id"],
		Kind:      Kind(hash["kind"]),
		Type:      hash["type"],
		SlotName:  hash["slot_name"],
		SlotType:  hash["slot_type"],
		Reference: hash["reference"],
		Preview:   preview,
	}

	if err := r.Validate(); err != nil {
		return nil, err
	}
	return r, nil
}
