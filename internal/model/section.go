package model

import "encoding/json"

// Section is a named, ordered group of items.
// Name doubles as a display label and a lookup key; it is not required to be unique.
type Section struct {
	Name        string `json:"name" yaml:"name"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
	Items       []Item `json:"items" yaml:"items"`
}

// UnmarshalJSON decodes a section, treating a missing or non-array "items" value as empty.
func (s *Section) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name        *string         `json:"name"`
		Description *string         `json:"description"`
		Items       json.RawMessage `json:"items"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*s = Section{Name: deref(raw.Name), Description: deref(raw.Description)}

	items, err := decodeList[Item](raw.Items)
	if err != nil {
		return err
	}
	s.Items = items
	return nil
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
