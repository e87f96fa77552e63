package model

import "gopkg.in/yaml.v3"

// UnmarshalYAML decodes a document, treating a missing or non-sequence
// "sections" value as empty.
func (d *Document) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Title    *string   `yaml:"title"`
		Sections yaml.Node `yaml:"sections"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	sections, err := decodeYAMLList[Section](&raw.Sections)
	if err != nil {
		return err
	}
	*d = Document{Title: deref(raw.Title), Sections: sections}
	return nil
}

// UnmarshalYAML decodes a section, treating a missing or non-sequence
// "items" value as empty.
func (s *Section) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Name        *string   `yaml:"name"`
		Description *string   `yaml:"description"`
		Items       yaml.Node `yaml:"items"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	items, err := decodeYAMLList[Item](&raw.Items)
	if err != nil {
		return err
	}
	*s = Section{Name: deref(raw.Name), Description: deref(raw.Description), Items: items}
	return nil
}

// UnmarshalYAML decodes an item, treating a missing or non-sequence "tags"
// value as empty.
func (i *Item) UnmarshalYAML(value *yaml.Node) error {
	var raw struct {
		Type  *string   `yaml:"type"`
		Title *string   `yaml:"title"`
		Src   *string   `yaml:"src"`
		Note  *string   `yaml:"note"`
		Tags  yaml.Node `yaml:"tags"`
	}
	if err := value.Decode(&raw); err != nil {
		return err
	}

	tags, err := decodeYAMLList[string](&raw.Tags)
	if err != nil {
		return err
	}
	*i = Item{
		Type:  deref(raw.Type),
		Title: deref(raw.Title),
		Src:   deref(raw.Src),
		Note:  deref(raw.Note),
		Tags:  tags,
	}
	return nil
}

// decodeYAMLList decodes node as a sequence of T.
// Returns an empty slice for missing, null, or non-sequence nodes.
func decodeYAMLList[T any](node *yaml.Node) ([]T, error) {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}

	list := []T{}
	if node.Kind != yaml.SequenceNode {
		return list, nil
	}
	if err := node.Decode(&list); err != nil {
		return nil, err
	}
	return list, nil
}
