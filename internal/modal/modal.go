// Package modal builds the detail view for a selected item and tracks
// whether the detail view is open.
package modal

import (
	"strings"

	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/model"
)

// TagSeparator joins tags on the modal's tag line.
const TagSeparator = " • "

// MetaKind identifies a metadata line.
type MetaKind int

const (
	MetaNote MetaKind = iota
	MetaTags
	MetaSource
)

// MetaLine is one line under the modal media.
// Href is set for MetaSource and links to the raw item source.
type MetaLine struct {
	Kind  MetaKind
	Label string
	Text  string
	Href  string
}

// String renders the line as plain text.
func (l MetaLine) String() string {
	if l.Label == "" {
		return l.Text
	}
	return l.Label + ": " + l.Text
}

// View is the fully resolved modal content.
type View struct {
	Title string
	Media media.Media
	Meta  []MetaLine
}

// Lines returns the metadata lines as plain text.
func (v View) Lines() []string {
	lines := make([]string, len(v.Meta))
	for i, l := range v.Meta {
		lines[i] = l.String()
	}
	return lines
}

// Present resolves a selection payload into modal content.
// Meta order: note, tags, source link (YouTube only). Empty lines are omitted.
func Present(p model.Payload) View {
	v := View{
		Title: p.Title,
		Media: media.DeriveModalMedia(p),
	}

	if note := strings.TrimSpace(p.Note); note != "" {
		v.Meta = append(v.Meta, MetaLine{Kind: MetaNote, Text: p.Note})
	}

	if len(p.Tags) > 0 {
		v.Meta = append(v.Meta, MetaLine{
			Kind:  MetaTags,
			Label: "Tags",
			Text:  strings.Join(p.Tags, TagSeparator),
		})
	}

	if p.Kind() == model.KindYouTube && p.Src != "" {
		v.Meta = append(v.Meta, MetaLine{
			Kind:  MetaSource,
			Label: "Source",
			Text:  p.Src,
			Href:  p.Src,
		})
	}

	return v
}
