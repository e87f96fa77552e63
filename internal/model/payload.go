package model

import "strings"

// Payload is the copy of an item handed to the modal when a card is selected.
// It shares no memory with the Item it was taken from.
type Payload struct {
	Type  string
	Title string
	Src   string
	Note  string
	Tags  []string
}

// NewPayload copies the fields the modal needs out of item.
func NewPayload(item Item) Payload {
	tags := make([]string, 0, len(item.Tags))
	for _, t := range item.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return Payload{
		Type:  item.Type,
		Title: item.Title,
		Src:   item.Src,
		Note:  item.Note,
		Tags:  tags,
	}
}

// Kind returns the payload's variant.
func (p Payload) Kind() Kind {
	return ParseKind(p.Type)
}

// TagLine joins the tags into a single display string.
func (p Payload) TagLine() string {
	return strings.Join(p.Tags, ", ")
}
