package models

import (
	"testing"
	"time"
)

// TestMergePreservesUnpatchedFields tests that fields absent from the
// patch survive a merge untouched
func TestMergePreservesUnpatchedFields(t *testing.T) {
	existing := Record{
		"id":        "abc",
		"createdOn": "2024-01-01T00:00:00Z",
		"name":      "original",
		"color":     "blue",
	}
	patch := Record{
		"name": "updated",
	}

	merged := Merge(existing, patch)

	if merged["name"] != "updated" {
		t.Errorf("Expected patched name 'updated', got '%v'", merged["name"])
	}
	if merged["color"] != "blue" {
		t.Errorf("Expected unpatched field to survive, got '%v'", merged["color"])
	}
}

// TestMergeNeverOverwritesImmutableFields tests that id and createdOn
// cannot be changed through a patch
func TestMergeNeverOverwritesImmutableFields(t *testing.T) {
	existing := Record{
		"id":        "abc",
		"createdOn": "2024-01-01T00:00:00Z",
		"name":      "original",
	}
	patch := Record{
		"id":        "evil",
		"createdOn": "2030-01-01T00:00:00Z",
		"name":      "updated",
	}

	merged := Merge(existing, patch)

	if merged["id"] != "abc" {
		t.Errorf("Expected id to stay 'abc', got '%v'", merged["id"])
	}
	if merged["createdOn"] != "2024-01-01T00:00:00Z" {
		t.Errorf("Expected createdOn to be immutable, got '%v'", merged["createdOn"])
	}
	if merged["name"] != "updated" {
		t.Errorf("Expected name to be patched, got '%v'", merged["name"])
	}
}

// TestMergeAddsNewFields tests that patch-only fields are added
func TestMergeAddsNewFields(t *testing.T) {
	existing := Record{"id": "abc", "name": "original"}
	patch := Record{"quantity": 3}

	merged := Merge(existing, patch)

	if merged["quantity"] != 3 {
		t.Errorf("Expected new field to be added, got '%v'", merged["quantity"])
	}
	if merged["name"] != "original" {
		t.Errorf("Expected existing field to survive, got '%v'", merged["name"])
	}
}

// TestMergeDoesNotModifyInputs tests that both inputs stay untouched
func TestMergeDoesNotModifyInputs(t *testing.T) {
	existing := Record{"id": "abc", "name": "original"}
	patch := Record{"name": "updated"}

	_ = Merge(existing, patch)

	if existing["name"] != "original" {
		t.Errorf("Merge modified the existing record: %v", existing)
	}
	if len(patch) != 1 || patch["name"] != "updated" {
		t.Errorf("Merge modified the patch: %v", patch)
	}
}

// TestRecordClone tests that clones are independent at the top level
func TestRecordClone(t *testing.T) {
	original := Record{"id": "abc", "name": "one"}
	clone := original.Clone()

	clone["name"] = "two"
	if original["name"] != "one" {
		t.Errorf("Clone shares the top-level map with the original")
	}

	var nilRecord Record
	if nilRecord.Clone() != nil {
		t.Error("Expected nil clone of nil record")
	}
}

// TestRecordID tests the ID accessor
func TestRecordID(t *testing.T) {
	if (Record{"id": "abc"}).ID() != "abc" {
		t.Error("Expected ID 'abc'")
	}
	if (Record{}).ID() != "" {
		t.Error("Expected empty ID on record without id")
	}
	if (Record{"id": 42}).ID() != "" {
		t.Error("Expected empty ID on non-string id")
	}
}

// TestTimestampFormat tests that record timestamps are RFC3339 in UTC
func TestTimestampFormat(t *testing.T) {
	loc := time.FixedZone("AEST", 10*3600)
	ts := Timestamp(time.Date(2024, 6, 1, 10, 30, 0, 0, loc))

	if ts != "2024-06-01T00:30:00Z" {
		t.Errorf("Expected UTC RFC3339 timestamp, got '%s'", ts)
	}

	if _, err := time.Parse(time.RFC3339, ts); err != nil {
		t.Errorf("Timestamp is not parseable RFC3339: %v", err)
	}
}

// TestParseRecord tests decoding of merge-patch payloads
func TestParseRecord(t *testing.T) {
	rec, err := ParseRecord(`{"name": "widget"}`)
	if err != nil {
		t.Fatalf("ParseRecord failed: %v", err)
	}
	if rec["name"] != "widget" {
		t.Errorf("Expected name 'widget', got %v", rec)
	}

	empty, err := ParseRecord("")
	if err != nil {
		t.Fatalf("ParseRecord of empty body failed: %v", err)
	}
	if len(empty) != 0 {
		t.Errorf("Expected an empty patch for an empty body, got %v", empty)
	}

	null, err := ParseRecord("null")
	if err != nil {
		t.Fatalf("ParseRecord of null failed: %v", err)
	}
	if null == nil || len(null) != 0 {
		t.Errorf("Expected an empty patch for null, got %v", null)
	}

	if _, err := ParseRecord(`{not json`); err == nil {
		t.Error("Expected error for malformed payload")
	}
}

// TestParseItem tests decoding and validation of item payloads
func TestParseItem(t *testing.T) {
	input, rec, err := ParseItem(`{"name": "widget", "color": "blue"}`)
	if err != nil {
		t.Fatalf("ParseItem failed: %v", err)
	}
	if input.Name != "widget" {
		t.Errorf("Expected typed name 'widget', got '%s'", input.Name)
	}
	if rec["color"] != "blue" {
		t.Errorf("Expected extra field to be preserved on the record, got %v", rec)
	}

	if _, _, err := ParseItem(`{"color": "blue"}`); err == nil {
		t.Error("Expected validation error for missing name")
	}
	if _, _, err := ParseItem(`{not json`); err == nil {
		t.Error("Expected error for malformed payload")
	}
	if _, _, err := ParseItem(""); err == nil {
		t.Error("Expected error for empty body")
	}
}
