package formstate

import (
	"fmt"

	json "github.com/goccy/go-json"
)

// MarshalFields serializes the form's value-only snapshot as JSON.
func (f *Form) MarshalFields() ([]byte, error) {
	data, err := json.Marshal(f.Fields())
	if err != nil {
		return nil, fmt.Errorf("formstate: marshal fields: %w", err)
	}
	return data, nil
}

// ApplyFields decodes a JSON object and applies it through SetFields,
// preserving its partial-write semantics: absent and null keys leave the
// current value untouched.
func (f *Form) ApplyFields(data []byte) error {
	var values map[string]any
	if err := json.Unmarshal(data, &values); err != nil {
		return fmt.Errorf("formstate: unmarshal fields: %w", err)
	}
	return f.SetFields(values)
}

// MarshalFields serializes every member's value snapshot as a JSON array in
// member order.
func (c *FormCollection) MarshalFields() ([]byte, error) {
	sets := make([]map[string]any, 0, len(c.members))
	for _, member := range c.members {
		sets = append(sets, member.Fields())
	}
	data, err := json.Marshal(sets)
	if err != nil {
		return nil, fmt.Errorf("formstate: marshal collection fields: %w", err)
	}
	return data, nil
}

// ApplyFields decodes a JSON array of objects and bulk-replaces the
// membership through SetFields.
func (c *FormCollection) ApplyFields(data []byte) error {
	var sets []map[string]any
	if err := json.Unmarshal(data, &sets); err != nil {
		return fmt.Errorf("formstate: unmarshal collection fields: %w", err)
	}
	return c.SetFields(sets)
}
