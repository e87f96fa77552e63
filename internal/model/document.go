package model

import "encoding/json"

// Document is the gallery source: an optional title and ordered sections.
type Document struct {
	Title    string    `json:"title,omitempty" yaml:"title,omitempty"`
	Sections []Section `json:"sections" yaml:"sections"`
}

// NewDocument creates an empty Document with the given title.
func NewDocument(title string) *Document {
	return &Document{
		Title:    title,
		Sections: []Section{},
	}
}

// ItemCount returns the total number of items across all sections.
func (d *Document) ItemCount() int {
	n := 0
	for _, s := range d.Sections {
		n += len(s.Items)
	}
	return n
}

// SectionByName finds the first section with the given name, returns nil if not found.
// Section names are not unique; later sections with the same name are unreachable here.
func (d *Document) SectionByName(name string) *Section {
	for i := range d.Sections {
		if d.Sections[i].Name == name {
			return &d.Sections[i]
		}
	}
	return nil
}

// UnmarshalJSON decodes a document, treating a missing or non-array
// "sections" value as empty.
func (d *Document) UnmarshalJSON(data []byte) error {
	var raw struct {
		Title    *string         `json:"title"`
		Sections json.RawMessage `json:"sections"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	d.Title = ""
	if raw.Title != nil {
		d.Title = *raw.Title
	}

	sections, err := decodeList[Section](raw.Sections)
	if err != nil {
		return err
	}
	d.Sections = sections
	return nil
}

// decodeList decodes raw as a JSON array of T.
// Returns an empty slice for null, missing, or non-array values.
func decodeList[T any](raw json.RawMessage) ([]T, error) {
	list := []T{}
	if !isJSONArray(raw) {
		return list, nil
	}
	if err := json.Unmarshal(raw, &list); err != nil {
		return nil, err
	}
	return list, nil
}

// isJSONArray reports whether raw, after leading whitespace, starts an array.
func isJSONArray(raw json.RawMessage) bool {
	for _, c := range raw {
		switch c {
		case ' ', '\t', '\n', '\r':
			continue
		case '[':
			return true
		default:
			return false
		}
	}
	return false
}
