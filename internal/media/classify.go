package media

import "github.com/nikbrunner/folio/internal/model"

// ThumbKind describes what a card renders in its thumbnail slot.
type ThumbKind int

const (
	ThumbBadgeOnly    ThumbKind = iota // unsupported type: badge, no media
	ThumbImage                         // the image at Src
	ThumbVideoPreview                  // muted, non-autoplaying preview of Src
	ThumbStill                         // provider still image at Src
	ThumbPlaceholder                   // unresolved link: empty slot
)

// Thumbnail is the markup-independent description of a card thumbnail.
type Thumbnail struct {
	Kind  ThumbKind
	Badge string
	Src   string
	Alt   string
	Play  bool // show a play affordance over the media
}

// MediaKind describes what the modal renders in its media slot.
type MediaKind int

const (
	MediaUnsupported MediaKind = iota
	MediaImage
	MediaPlayer
	MediaEmbed
	MediaInvalidLink
)

// Modal placeholder messages.
const (
	InvalidLinkMessage = "Invalid YouTube link."
	UnsupportedMessage = "Unsupported item type."
)

// Media is the markup-independent description of the modal's media slot.
type Media struct {
	Kind    MediaKind
	Src     string
	Title   string
	Message string // set for placeholder kinds
}

// BadgeLabel returns the badge text for an item kind.
func BadgeLabel(k model.Kind) string {
	switch k {
	case model.KindImage:
		return "Image"
	case model.KindVideo:
		return "Video"
	case model.KindYouTube:
		return "YouTube"
	case model.KindUnsupported:
		return "Item"
	default:
		return "Item"
	}
}

// DeriveThumbnail describes the card thumbnail for item.
func DeriveThumbnail(item model.Item) Thumbnail {
	kind := item.Kind()
	thumb := Thumbnail{
		Badge: BadgeLabel(kind),
		Alt:   item.Title,
	}

	switch kind {
	case model.KindImage:
		thumb.Kind = ThumbImage
		thumb.Src = item.Src
	case model.KindVideo:
		thumb.Kind = ThumbVideoPreview
		thumb.Src = item.Src
		thumb.Play = true
	case model.KindYouTube:
		thumb.Play = true
		if id, ok := ResolveVideoID(item.Src); ok {
			thumb.Kind = ThumbStill
			thumb.Src = ThumbnailURL(id)
		} else {
			thumb.Kind = ThumbPlaceholder
		}
	case model.KindUnsupported:
		thumb.Kind = ThumbBadgeOnly
	}

	return thumb
}

// DeriveModalMedia describes the full-fidelity media for a selected item.
func DeriveModalMedia(p model.Payload) Media {
	m := Media{Title: p.Title}

	switch p.Kind() {
	case model.KindImage:
		m.Kind = MediaImage
		m.Src = p.Src
	case model.KindVideo:
		m.Kind = MediaPlayer
		m.Src = p.Src
	case model.KindYouTube:
		if id, ok := ResolveVideoID(p.Src); ok {
			m.Kind = MediaEmbed
			m.Src = EmbedURL(id)
		} else {
			m.Kind = MediaInvalidLink
			m.Message = InvalidLinkMessage
		}
	case model.KindUnsupported:
		m.Kind = MediaUnsupported
		m.Message = UnsupportedMessage
	}

	return m
}
