package exporter

import (
	"bytes"
	"fmt"
	"html"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/microcosm-cc/bluemonday"
	"github.com/yuin/goldmark"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/modal"
)

// Options control how a view is exported.
type Options struct {
	// MarkdownNotes renders notes as Markdown, sanitized with a UGC policy.
	// Otherwise notes are escaped plain text.
	MarkdownNotes bool

	// BasePath enables the server-backed controls (search form, view toggle
	// link, suggestion links). Empty for static exports.
	BasePath string
}

// DefaultExportPath returns the default export file path.
// Format: ./gallery-YYYY-MM-DD.html
func DefaultExportPath() string {
	return filepath.Join(".", fmt.Sprintf("gallery-%s.html", time.Now().Format("2006-01-02")))
}

// WriteFile exports vm to path.
func WriteFile(path string, vm gallery.ViewModel, opts Options) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(path, []byte(ExportHTML(vm, opts)), 0644)
}

// ExportHTML renders vm as a standalone HTML page. Every card gets a
// CSS-only modal addressed by its fragment id.
func ExportHTML(vm gallery.ViewModel, opts Options) string {
	var b strings.Builder
	r := renderer{opts: opts}

	bodyClass := ""
	if vm.Compact {
		bodyClass = ` class="compact"`
	}

	b.WriteString("<!DOCTYPE html>\n")
	b.WriteString("<html lang=\"en\">\n<head>\n")
	b.WriteString("<meta charset=\"utf-8\">\n")
	b.WriteString("<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">\n")
	fmt.Fprintf(&b, "<title>%s</title>\n", esc(vm.Title))
	fmt.Fprintf(&b, "<style>%s</style>\n", stylesheet)
	fmt.Fprintf(&b, "</head>\n<body%s>\n", bodyClass)

	r.writeHeader(&b, vm)

	fmt.Fprintf(&b, "<p id=\"status\" class=\"status\" role=\"status\">%s</p>\n", esc(vm.StatusMessage))
	r.writeSuggestions(&b, vm)

	b.WriteString("<main id=\"sections\">\n")
	for si, section := range vm.Sections {
		r.writeSection(&b, si, section)
	}
	b.WriteString("</main>\n")

	for si, section := range vm.Sections {
		for _, card := range section.Cards {
			r.writeModal(&b, modalID(si, card.Index), modal.Present(card.Payload()))
		}
	}

	fmt.Fprintf(&b, "<script>%s</script>\n", script)
	b.WriteString("</body>\n</html>\n")

	return b.String()
}

type renderer struct {
	opts Options
}

func (r renderer) writeHeader(b *strings.Builder, vm gallery.ViewModel) {
	b.WriteString("<header class=\"top\">\n")
	fmt.Fprintf(b, "  <h1 class=\"pageTitle\">%s</h1>\n", esc(vm.Title))

	if r.opts.BasePath != "" {
		fmt.Fprintf(b, "  <form class=\"search\" method=\"get\" action=\"%s\">\n", esc(r.opts.BasePath))
		fmt.Fprintf(b, "    <input id=\"search\" type=\"search\" name=\"q\" value=\"%s\" placeholder=\"Search…\" aria-label=\"Search\" autocomplete=\"off\">\n", esc(vm.Query))
		if vm.Compact {
			b.WriteString("    <input type=\"hidden\" name=\"view\" value=\"compact\">\n")
		}
		b.WriteString("  </form>\n")
	}

	label := "Compact view"
	if vm.Compact {
		label = "Normal view"
	}
	fmt.Fprintf(b, "  <a id=\"toggleView\" class=\"toggle\" href=\"%s\" role=\"button\" aria-pressed=\"%t\">%s</a>\n",
		esc(r.href(vm.Query, !vm.Compact)), vm.Compact, label)
	b.WriteString("</header>\n")
}

func (r renderer) writeSuggestions(b *strings.Builder, vm gallery.ViewModel) {
	if len(vm.Suggestions) == 0 {
		return
	}

	parts := make([]string, len(vm.Suggestions))
	for i, s := range vm.Suggestions {
		if r.opts.BasePath != "" {
			parts[i] = fmt.Sprintf("<a href=\"%s\">%s</a>", esc(r.href(s, vm.Compact)), esc(s))
		} else {
			parts[i] = esc(s)
		}
	}
	fmt.Fprintf(b, "<p class=\"suggest\">Did you mean: %s</p>\n", strings.Join(parts, ", "))
}

func (r renderer) writeSection(b *strings.Builder, si int, section gallery.SectionView) {
	s := section.Section
	fmt.Fprintf(b, "<section class=\"section\" data-section=\"%s\">\n", esc(s.Name))
	b.WriteString("  <div class=\"sectionHead\">\n    <div>\n")
	fmt.Fprintf(b, "      <div class=\"sectionName\">%s</div>\n", esc(s.Name))
	if s.Description != "" {
		fmt.Fprintf(b, "      <div class=\"sectionDesc\">%s</div>\n", esc(s.Description))
	}
	b.WriteString("    </div>\n")
	fmt.Fprintf(b, "    <div class=\"sectionMeta\">%s</div>\n", esc(section.CountLabel()))
	b.WriteString("  </div>\n  <div class=\"grid\">\n")

	for _, card := range section.Cards {
		r.writeCard(b, si, s.Name, card)
	}

	b.WriteString("  </div>\n</section>\n")
}

func (r renderer) writeCard(b *strings.Builder, si int, sectionName string, card gallery.Card) {
	it := card.Item
	fmt.Fprintf(b,
		"    <a class=\"card\" role=\"button\" tabindex=\"0\" href=\"#%s\" data-section=\"%s\" data-index=\"%d\" data-type=\"%s\">\n",
		modalID(si, card.Index), esc(sectionName), card.Index, esc(it.Type),
	)
	writeThumb(b, card.Thumbnail)

	b.WriteString("      <div class=\"body\">\n")
	fmt.Fprintf(b, "        <div class=\"cardTitle\">%s</div>\n", esc(it.Title))
	if it.Note != "" {
		fmt.Fprintf(b, "        <div class=\"cardNote\">%s</div>\n", r.note(it.Note, cardNotePolicy))
	}
	if len(card.Tags) > 0 {
		b.WriteString("        <div class=\"tags\">")
		for _, tag := range card.Tags {
			fmt.Fprintf(b, "<span class=\"tag\">%s</span>", esc(tag))
		}
		b.WriteString("</div>\n")
	}
	b.WriteString("      </div>\n    </a>\n")
}

func writeThumb(b *strings.Builder, t media.Thumbnail) {
	b.WriteString("      <div class=\"thumb\">\n")
	fmt.Fprintf(b, "        <span class=\"badge\">%s</span>\n", esc(t.Badge))
	if t.Play {
		b.WriteString("        <div class=\"play\">▶</div>\n")
	}

	switch t.Kind {
	case media.ThumbImage, media.ThumbStill:
		fmt.Fprintf(b, "        <img src=\"%s\" alt=\"%s\" loading=\"lazy\">\n", esc(t.Src), esc(t.Alt))
	case media.ThumbVideoPreview:
		fmt.Fprintf(b, "        <video preload=\"metadata\" muted playsinline><source src=\"%s\" type=\"video/mp4\"></video>\n", esc(t.Src))
	case media.ThumbPlaceholder:
		b.WriteString("        <div class=\"placeholder\"></div>\n")
	case media.ThumbBadgeOnly:
	}

	b.WriteString("      </div>\n")
}

func (r renderer) writeModal(b *strings.Builder, id string, v modal.View) {
	fmt.Fprintf(b, "<div class=\"modal\" id=\"%s\" role=\"dialog\" aria-modal=\"true\" aria-labelledby=\"%s-title\">\n", id, id)
	b.WriteString("  <div class=\"modalCard\">\n")
	b.WriteString("    <div class=\"modalHead\">\n")
	fmt.Fprintf(b, "      <div class=\"modalTitle\" id=\"%s-title\">%s</div>\n", id, esc(v.Title))
	b.WriteString("      <a class=\"modalX\" href=\"#\" aria-label=\"Close\">×</a>\n")
	b.WriteString("    </div>\n")
	fmt.Fprintf(b, "    <div class=\"modalBody\">%s</div>\n", mediaHTML(v.Media))

	if len(v.Meta) > 0 {
		lines := make([]string, len(v.Meta))
		for i, l := range v.Meta {
			lines[i] = r.metaLine(l)
		}
		fmt.Fprintf(b, "    <div class=\"modalMeta\">%s</div>\n", strings.Join(lines, "<br>"))
	}

	b.WriteString("    <a class=\"modalClose\" href=\"#\">Close</a>\n")
	b.WriteString("  </div>\n</div>\n")
}

func mediaHTML(m media.Media) string {
	switch m.Kind {
	case media.MediaImage:
		return fmt.Sprintf("<img src=\"%s\" alt=\"%s\">", esc(m.Src), esc(m.Title))
	case media.MediaPlayer:
		return fmt.Sprintf("<video controls playsinline preload=\"none\"><source src=\"%s\" type=\"video/mp4\"></video>", esc(m.Src))
	case media.MediaEmbed:
		return fmt.Sprintf("<iframe src=\"%s\" title=\"%s\" loading=\"lazy\" frameborder=\"0\" "+
			"allow=\"accelerometer; autoplay; clipboard-write; encrypted-media; gyroscope; picture-in-picture\" allowfullscreen></iframe>",
			esc(m.Src), esc(m.Title))
	case media.MediaInvalidLink, media.MediaUnsupported:
		return fmt.Sprintf("<div class=\"mediaNotice\">%s</div>", esc(m.Message))
	default:
		return fmt.Sprintf("<div class=\"mediaNotice\">%s</div>", esc(media.UnsupportedMessage))
	}
}

func (r renderer) metaLine(l modal.MetaLine) string {
	switch l.Kind {
	case modal.MetaNote:
		return r.note(l.Text, notePolicy)
	case modal.MetaSource:
		return fmt.Sprintf("%s: <a href=\"%s\" target=\"_blank\" rel=\"noopener noreferrer\">%s</a>",
			esc(l.Label), esc(safeHref(l.Href)), esc(l.Text))
	default:
		return esc(l.String())
	}
}

// note renders an item note as escaped text, or Markdown sanitized by policy.
func (r renderer) note(text string, policy *bluemonday.Policy) string {
	if !r.opts.MarkdownNotes {
		return esc(text)
	}

	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(text), &buf); err != nil {
		return esc(text)
	}
	return strings.TrimSpace(policy.Sanitize(buf.String()))
}

// href builds a link back to the server-rendered gallery.
func (r renderer) href(query string, compact bool) string {
	if r.opts.BasePath == "" {
		return "#"
	}

	v := url.Values{}
	if query != "" {
		v.Set("q", query)
	}
	if compact {
		v.Set("view", "compact")
	}
	if len(v) == 0 {
		return r.opts.BasePath
	}
	return r.opts.BasePath + "?" + v.Encode()
}

var notePolicy = bluemonday.UGCPolicy()

// cardNotePolicy keeps inline formatting only. Cards are anchors themselves,
// so links in a note are reduced to their text.
var cardNotePolicy = bluemonday.NewPolicy().
	AllowElements("p", "br", "strong", "em", "b", "i", "code", "del")

// modalID is the fragment id tying a card to its modal.
func modalID(section, index int) string {
	return "item-" + strconv.Itoa(section) + "-" + strconv.Itoa(index)
}

// safeHref drops link targets with a scheme other than http(s).
func safeHref(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return "#"
	}
	switch strings.ToLower(u.Scheme) {
	case "http", "https", "":
		return raw
	default:
		return "#"
	}
}

func esc(s string) string {
	return html.EscapeString(s)
}
