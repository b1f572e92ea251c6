package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// Reserved field names managed by the data-access layer. They are set by
// the server and never taken from client payloads.
const (
	// FieldID is the opaque identifier assigned at creation
	FieldID = "id"
	// FieldCreatedOn is the creation timestamp, set once
	FieldCreatedOn = "createdOn"
	// FieldLastModifiedOn is refreshed on every write
	FieldLastModifiedOn = "lastModifiedOn"
)

// immutableFields are the reserved fields a merge patch may never overwrite
var immutableFields = map[string]bool{
	FieldID:        true,
	FieldCreatedOn: true,
}

// Record represents a stored entity as an open mapping from field name to
// value. Entities carry arbitrary caller-defined fields alongside the
// reserved ones.
type Record map[string]interface{}

// ID returns the record identifier, or "" when unset
func (r Record) ID() string {
	if v, ok := r[FieldID].(string); ok {
		return v
	}
	return ""
}

// Clone returns a shallow copy of the record. Field values are shared;
// the top-level mapping is independent.
func (r Record) Clone() Record {
	if r == nil {
		return nil
	}
	out := make(Record, len(r))
	for k, v := range r {
		out[k] = v
	}
	return out
}

// Merge applies patch onto existing using merge-patch semantics: the
// patch's key set is the field mask, so every patch field overwrites the
// existing value and fields absent from the patch survive untouched.
// The immutable reserved fields (id, createdOn) are never overwritten.
// Neither input is modified.
func Merge(existing, patch Record) Record {
	merged := existing.Clone()
	if merged == nil {
		merged = make(Record, len(patch))
	}
	for field, value := range patch {
		if immutableFields[field] {
			continue
		}
		merged[field] = value
	}
	return merged
}

// ParseRecord decodes a raw payload into an open record with no typed
// validation, the shape merge patches arrive in. An empty body is an
// empty patch.
func ParseRecord(body string) (Record, error) {
	if body == "" {
		return Record{}, nil
	}

	var rec Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, fmt.Errorf("invalid record payload: %w", err)
	}
	if rec == nil {
		rec = Record{}
	}
	return rec, nil
}

// Timestamp formats t the way record timestamps are stored
func Timestamp(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}
