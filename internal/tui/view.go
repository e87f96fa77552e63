package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/modal"
	"github.com/nikbrunner/folio/internal/tui/layout"
)

// renderView creates the complete gallery view.
func (a App) renderView() string {
	if a.modal.IsOpen() {
		return a.renderModal()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	panes := layout.CalculatePaneWidth(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderGalleryPane(panes.ListWidth, paneHeight),
		a.renderDetailPane(panes.DetailWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			a.renderSearchLine(),
			columns,
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the page title and the status line.
func (a App) renderHeader() string {
	status := a.styles.Status.Render(a.vm.StatusMessage)
	if len(a.vm.Suggestions) > 0 {
		status += "  " + a.styles.Suggestion.Render("Did you mean: "+strings.Join(a.vm.Suggestions, ", "))
	}
	return a.styles.Title.Render(a.vm.Title) + "\n" + status
}

func (a App) renderSearchLine() string {
	if a.mode == ModeSearch {
		return a.search.Input.View()
	}
	if a.state.Query != "" {
		return a.styles.Status.Render("/" + a.state.Query)
	}
	return a.styles.Empty.Render("/ to search")
}

// renderGalleryPane renders sections and their cards, keeping the cursor in view.
func (a App) renderGalleryPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	if len(a.rows) == 0 {
		content.WriteString(a.styles.Empty.Render(a.vm.StatusMessage))
		return a.styles.PaneActive.Width(width).Height(height).Render(content.String())
	}

	var lines []string
	cursorLine := 0
	for _, row := range a.rows {
		if !row.IsCard() {
			if len(lines) > 0 {
				lines = append(lines, "")
			}
			lines = append(lines, a.renderSectionLine(*row.Section, itemWidth))
			if !a.state.Compact && row.Section.Section.Description != "" {
				desc, _ := layout.TruncateText(row.Section.Section.Description, itemWidth, a.layoutConfig.Text)
				lines = append(lines, a.styles.SectionMeta.Render(desc))
			}
			continue
		}

		isCursor := row.Pos == a.cursor
		if isCursor {
			cursorLine = len(lines)
		}
		lines = append(lines, a.renderCardLine(*row.Card, isCursor, itemWidth))

		if !a.state.Compact {
			if meta := a.cardMeta(*row.Card, itemWidth); meta != "" {
				lines = append(lines, meta)
			}
		}
	}

	visibleHeight := layout.CalculateVisibleHeight(height, 0)
	offset := layout.CalculateViewportOffset(cursorLine, len(lines), visibleHeight)
	end := offset + visibleHeight
	if end > len(lines) {
		end = len(lines)
	}
	content.WriteString(strings.Join(lines[offset:end], "\n"))

	return a.styles.PaneActive.
		Width(width).
		Height(height).
		Render(content.String())
}

func (a App) renderSectionLine(s gallery.SectionView, maxWidth int) string {
	meta := " · " + s.CountLabel()
	name, _ := layout.TruncateText(s.Section.Name, maxWidth-layout.VisibleWidth(meta), a.layoutConfig.Text)
	return a.styles.Section.Render(name) + a.styles.SectionMeta.Render(meta)
}

func (a App) renderCardLine(card gallery.Card, isCursor bool, maxWidth int) string {
	prefix := "  "
	if isCursor {
		prefix = "> "
	}
	suffix := " [" + card.Badge + "]"

	line, _ := layout.TruncateWithPrefixSuffix(card.Item.Title, maxWidth, prefix, suffix, a.layoutConfig.Text)
	if isCursor {
		return a.styles.ItemSelected.Render(layout.PadRight(line, maxWidth))
	}
	return a.styles.Item.Render(line)
}

// cardMeta is the dimmed second line under a card in the normal view.
func (a App) cardMeta(card gallery.Card, maxWidth int) string {
	var text string
	switch {
	case len(card.Tags) > 0:
		tags := make([]string, len(card.Tags))
		for i, tag := range card.Tags {
			tags[i] = "#" + tag
		}
		text = strings.Join(tags, " ")
	case card.Item.Note != "":
		text = strings.Join(strings.Fields(card.Item.Note), " ")
	default:
		return ""
	}

	line, _ := layout.TruncateWithPrefixSuffix(text, maxWidth, "    ", "", a.layoutConfig.Text)
	return a.styles.Tag.Render(line)
}

// renderDetailPane shows the card under the cursor.
func (a App) renderDetailPane(width, height int) string {
	var content strings.Builder
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)

	card, ok := a.SelectedCard()
	if !ok {
		return a.styles.Pane.Width(width).Height(height).Render("")
	}

	it := card.Item
	content.WriteString(a.styles.Title.Render(it.Title) + "\n")
	content.WriteString(a.styles.Badge.Render(card.Badge) + "\n\n")

	if thumb := a.describeThumbnail(card.Thumbnail, itemWidth); thumb != "" {
		content.WriteString(thumb + "\n\n")
	}

	if it.Note != "" {
		content.WriteString(a.styles.Note.Width(itemWidth).Render(it.Note) + "\n\n")
	}

	if len(card.Tags) > 0 {
		tags := make([]string, len(card.Tags))
		for i, tag := range card.Tags {
			tags[i] = "#" + tag
		}
		content.WriteString(a.styles.Tag.Width(itemWidth).Render(strings.Join(tags, " ")) + "\n")
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

func (a App) describeThumbnail(t media.Thumbnail, maxWidth int) string {
	var label string
	switch t.Kind {
	case media.ThumbImage:
		label = "image "
	case media.ThumbVideoPreview:
		label = "▶ preview "
	case media.ThumbStill:
		label = "▶ still "
	case media.ThumbPlaceholder:
		return a.styles.Notice.Render("(no preview)")
	case media.ThumbBadgeOnly:
		return ""
	}

	src, _ := layout.TruncateText(t.Src, maxWidth-layout.VisibleWidth(label), a.layoutConfig.Text)
	return a.styles.SectionMeta.Render(label) + a.styles.Source.Render(src)
}

// renderModal renders the open item centered on screen.
func (a App) renderModal() string {
	v := a.modal.View()
	modalWidth := layout.CalculateModalWidth(a.width, a.layoutConfig.Modal)
	innerWidth := modalWidth - 4

	var content strings.Builder
	content.WriteString(a.styles.Title.Render(v.Title) + "\n\n")
	content.WriteString(a.renderMedia(v.Media, innerWidth) + "\n")

	if len(v.Meta) > 0 {
		content.WriteString("\n")
		for _, line := range v.Meta {
			content.WriteString(a.renderMetaLine(line, innerWidth) + "\n")
		}
	}

	content.WriteString("\n" + a.renderHintsInline(a.modalHints()))

	box := a.styles.Modal.Width(modalWidth).Render(content.String())

	// Place modal in center, then add help bar at bottom
	placed := lipgloss.Place(
		a.width,
		a.height-3, // Leave room for help bar
		lipgloss.Center,
		lipgloss.Center,
		box,
	)

	return lipgloss.JoinVertical(lipgloss.Left, placed, a.renderHelpBar())
}

func (a App) renderMedia(m media.Media, maxWidth int) string {
	var label string
	switch m.Kind {
	case media.MediaImage:
		label = "Image  "
	case media.MediaPlayer:
		label = "Video  "
	case media.MediaEmbed:
		label = "YouTube  "
	case media.MediaInvalidLink, media.MediaUnsupported:
		return a.styles.Notice.Render(m.Message)
	default:
		return a.styles.Notice.Render(media.UnsupportedMessage)
	}

	src, _ := layout.TruncateText(m.Src, maxWidth-layout.VisibleWidth(label), a.layoutConfig.Text)
	return a.styles.Badge.Render(label) + a.styles.Source.Render(src)
}

func (a App) renderMetaLine(l modal.MetaLine, maxWidth int) string {
	switch l.Kind {
	case modal.MetaNote:
		return a.styles.Note.Width(maxWidth).Render(l.Text)
	case modal.MetaSource:
		return a.styles.SectionMeta.Render(l.Label+": ") + a.styles.Source.Render(l.Text)
	default:
		return a.styles.Tag.Width(maxWidth).Render(l.String())
	}
}

// renderHelpBar renders the transient message and the contextual hints.
func (a App) renderHelpBar() string {
	hints := a.renderHints(a.contextualHints())
	if a.message != "" {
		return a.styles.Help.Render(a.styles.Status.Render(a.message) + "\n" + hints)
	}
	return a.styles.Help.Render(hints)
}
