package models

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"
)

// EntityTypeItem is the stored type tag for item records
const EntityTypeItem = "ITEM"

// ItemInput is the typed view of an item payload. Records are open maps,
// so this only pins down the fields the API contract requires; everything
// else in the payload is kept as-is on the record.
type ItemInput struct {
	ID   string `json:"id,omitempty"`
	Name string `json:"name" validate:"required"`
}

var validate = validator.New()

// ParseItem decodes a raw item payload into both its typed view and the
// open record, validating the typed view. The returned record still
// carries every field of the payload.
func ParseItem(body string) (*ItemInput, Record, error) {
	if body == "" {
		return nil, nil, fmt.Errorf("request body is required")
	}

	var input ItemInput
	if err := json.Unmarshal([]byte(body), &input); err != nil {
		return nil, nil, fmt.Errorf("invalid item payload: %w", err)
	}

	if err := validate.Struct(&input); err != nil {
		return nil, nil, fmt.Errorf("item validation failed: %w", err)
	}

	var rec Record
	if err := json.Unmarshal([]byte(body), &rec); err != nil {
		return nil, nil, fmt.Errorf("invalid item payload: %w", err)
	}

	return &input, rec, nil
}
