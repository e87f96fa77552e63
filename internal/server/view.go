package server

import (
	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/media"
)

type viewResponse struct {
	Title         string            `json:"title"`
	Query         string            `json:"query"`
	Compact       bool              `json:"compact"`
	Status        string            `json:"status"`
	StatusMessage string            `json:"statusMessage"`
	TotalVisible  int               `json:"totalVisible"`
	Suggestions   []string          `json:"suggestions,omitempty"`
	Sections      []sectionResponse `json:"sections"`
}

type sectionResponse struct {
	Name        string         `json:"name"`
	Description string         `json:"description,omitempty"`
	CountLabel  string         `json:"countLabel"`
	Cards       []cardResponse `json:"cards"`
}

type cardResponse struct {
	Index     int               `json:"index"`
	Type      string            `json:"type"`
	Title     string            `json:"title"`
	Src       string            `json:"src"`
	Note      string            `json:"note,omitempty"`
	Tags      []string          `json:"tags"`
	Badge     string            `json:"badge"`
	Thumbnail thumbnailResponse `json:"thumbnail"`
}

type thumbnailResponse struct {
	Kind string `json:"kind"`
	Src  string `json:"src,omitempty"`
	Alt  string `json:"alt,omitempty"`
	Play bool   `json:"play"`
}

func newViewResponse(vm gallery.ViewModel) viewResponse {
	resp := viewResponse{
		Title:         vm.Title,
		Query:         vm.Query,
		Compact:       vm.Compact,
		Status:        statusName(vm.Status),
		StatusMessage: vm.StatusMessage,
		TotalVisible:  vm.TotalVisible,
		Suggestions:   vm.Suggestions,
		Sections:      make([]sectionResponse, 0, len(vm.Sections)),
	}

	for _, s := range vm.Sections {
		sr := sectionResponse{
			Name:        s.Section.Name,
			Description: s.Section.Description,
			CountLabel:  s.CountLabel(),
			Cards:       make([]cardResponse, 0, len(s.Cards)),
		}
		for _, c := range s.Cards {
			tags := c.Tags
			if tags == nil {
				tags = []string{}
			}
			sr.Cards = append(sr.Cards, cardResponse{
				Index: c.Index,
				Type:  c.Item.Type,
				Title: c.Item.Title,
				Src:   c.Item.Src,
				Note:  c.Item.Note,
				Tags:  tags,
				Badge: c.Badge,
				Thumbnail: thumbnailResponse{
					Kind: thumbKindName(c.Thumbnail.Kind),
					Src:  c.Thumbnail.Src,
					Alt:  c.Thumbnail.Alt,
					Play: c.Thumbnail.Play,
				},
			})
		}
		resp.Sections = append(resp.Sections, sr)
	}

	return resp
}

func statusName(s gallery.Status) string {
	switch s {
	case gallery.StatusLoading:
		return "loading"
	case gallery.StatusEmpty:
		return "empty"
	case gallery.StatusNoResults:
		return "no_results"
	case gallery.StatusResults:
		return "results"
	case gallery.StatusLoaded:
		return "loaded"
	default:
		return "unknown"
	}
}

func thumbKindName(k media.ThumbKind) string {
	switch k {
	case media.ThumbImage:
		return "image"
	case media.ThumbVideoPreview:
		return "video"
	case media.ThumbStill:
		return "still"
	case media.ThumbPlaceholder:
		return "placeholder"
	case media.ThumbBadgeOnly:
		return "badge"
	default:
		return "badge"
	}
}
