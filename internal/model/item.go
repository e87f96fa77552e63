package model

import "encoding/json"

// Kind is the closed set of item variants the gallery knows how to render.
// Any declared type outside the known set maps to KindUnsupported.
type Kind int

const (
	KindUnsupported Kind = iota
	KindImage
	KindVideo
	KindYouTube
)

// Raw type values as they appear in documents.
const (
	TypeImage   = "image"
	TypeVideo   = "video"
	TypeYouTube = "youtube"
)

// ParseKind maps a declared item type to its Kind.
func ParseKind(t string) Kind {
	switch t {
	case TypeImage:
		return KindImage
	case TypeVideo:
		return KindVideo
	case TypeYouTube:
		return KindYouTube
	default:
		return KindUnsupported
	}
}

// String returns the canonical type value, or "unsupported".
func (k Kind) String() string {
	switch k {
	case KindImage:
		return TypeImage
	case KindVideo:
		return TypeVideo
	case KindYouTube:
		return TypeYouTube
	default:
		return "unsupported"
	}
}

// Item is a single media entry.
type Item struct {
	Type  string   `json:"type" yaml:"type"`
	Title string   `json:"title" yaml:"title"`
	Src   string   `json:"src" yaml:"src"`
	Note  string   `json:"note,omitempty" yaml:"note,omitempty"`
	Tags  []string `json:"tags" yaml:"tags"`
}

// Kind returns the item's variant.
func (i Item) Kind() Kind {
	return ParseKind(i.Type)
}

// UnmarshalJSON decodes an item, treating a missing or non-array "tags" value as empty.
func (i *Item) UnmarshalJSON(data []byte) error {
	var raw struct {
		Type  *string         `json:"type"`
		Title *string         `json:"title"`
		Src   *string         `json:"src"`
		Note  *string         `json:"note"`
		Tags  json.RawMessage `json:"tags"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}

	*i = Item{
		Type:  deref(raw.Type),
		Title: deref(raw.Title),
		Src:   deref(raw.Src),
		Note:  deref(raw.Note),
	}

	tags, err := decodeList[string](raw.Tags)
	if err != nil {
		return err
	}
	i.Tags = tags
	return nil
}
