package repository

import (
	"encoding/json"
	"fmt"
)

// MarshalBody encodes data as a JSON object for stores that keep JSON text.
// Top-level "id" and "_id" keys are dropped so a body never carries an
// identifier of its own.
func MarshalBody(data any) ([]byte, error) {
	raw, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("marshal document: %w", err)
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return nil, fmt.Errorf("document must be a JSON object: %w", err)
	}
	if fields == nil {
		return nil, fmt.Errorf("document must be a JSON object, got null")
	}

	_, hasID := fields["id"]
	_, hasMongoID := fields["_id"]
	if !hasID && !hasMongoID {
		return raw, nil
	}
	delete(fields, "id")
	delete(fields, "_id")
	return json.Marshal(fields)
}
