package importer

import (
	"io"
	"net/url"
	"path"
	"strings"

	"golang.org/x/net/html"

	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/model"
)

// TypeLink is the raw type given to bookmarks that are not media.
// It renders as an unsupported item.
const TypeLink = "link"

// RootSection names the section for bookmarks outside any folder.
const RootSection = "Bookmarks"

// FolderSeparator joins nested folder names into a section name.
const FolderSeparator = " / "

var (
	imageExts = map[string]bool{".jpg": true, ".jpeg": true, ".png": true, ".gif": true, ".webp": true, ".avif": true, ".svg": true}
	videoExts = map[string]bool{".mp4": true, ".webm": true, ".mov": true, ".m4v": true}
)

// ParseBookmarks parses Netscape bookmark HTML into a document.
// Each folder path becomes one section, in order of first appearance.
func ParseBookmarks(r io.Reader) (*model.Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	p := &parser{index: make(map[string]int)}
	p.walk(root)

	doc := model.NewDocument(p.title)
	if p.sections != nil {
		doc.Sections = p.sections
	}
	return doc, nil
}

type parser struct {
	title    string
	sections []model.Section
	index    map[string]int // section name -> position in sections

	stack   []string // folder names, outermost first
	pending string   // folder waiting for its DL
	last    *lastNode
}

// lastNode is what a following DD describes.
type lastNode struct {
	section string
	item    int // -1 for a folder
}

func (p *parser) walk(n *html.Node) {
	if n.Type == html.ElementNode {
		switch strings.ToLower(n.Data) {
		case "h1":
			if p.title == "" {
				p.title = textContent(n)
			}
			return

		case "h3":
			if name := textContent(n); name != "" {
				p.pending = name
				p.last = &lastNode{section: p.sectionName(name), item: -1}
			}
			return

		case "a":
			p.addItem(n)
			return

		case "dd":
			p.describe(ownText(n))

		case "dl":
			pushed := false
			if p.pending != "" {
				p.stack = append(p.stack, p.pending)
				p.pending = ""
				pushed = true
			}
			for c := n.FirstChild; c != nil; c = c.NextSibling {
				p.walk(c)
			}
			if pushed {
				p.stack = p.stack[:len(p.stack)-1]
			}
			return
		}
	}

	for c := n.FirstChild; c != nil; c = c.NextSibling {
		p.walk(c)
	}
}

func (p *parser) addItem(n *html.Node) {
	href := strings.TrimSpace(getAttr(n, "href"))
	if href == "" {
		return
	}

	title := textContent(n)
	if title == "" {
		title = href
	}

	name := p.sectionName("")
	s := p.section(name)
	s.Items = append(s.Items, model.Item{
		Type:  InferType(href),
		Title: title,
		Src:   href,
		Tags:  splitTags(getAttr(n, "tags")),
	})
	p.last = &lastNode{section: name, item: len(s.Items) - 1}
}

func (p *parser) describe(text string) {
	if p.last == nil || text == "" {
		return
	}

	s := p.section(p.last.section)
	if p.last.item < 0 {
		s.Description = text
	} else {
		s.Items[p.last.item].Note = text
	}
	p.last = nil
}

// sectionName returns the section for the current folder path, extended by
// child when it is not empty.
func (p *parser) sectionName(child string) string {
	parts := p.stack
	if child != "" {
		parts = append(append([]string(nil), p.stack...), child)
	}
	if len(parts) == 0 {
		return RootSection
	}
	return strings.Join(parts, FolderSeparator)
}

func (p *parser) section(name string) *model.Section {
	if i, ok := p.index[name]; ok {
		return &p.sections[i]
	}
	p.sections = append(p.sections, model.Section{Name: name, Items: []model.Item{}})
	p.index[name] = len(p.sections) - 1
	return &p.sections[len(p.sections)-1]
}

// InferType guesses an item type from a bookmark URL.
func InferType(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return TypeLink
	}

	host := strings.ToLower(u.Hostname())
	if strings.Contains(host, "youtube.") || strings.Contains(host, "youtu.be") {
		if _, ok := media.ResolveVideoID(raw); ok {
			return model.TypeYouTube
		}
	}

	ext := strings.ToLower(path.Ext(u.Path))
	switch {
	case imageExts[ext]:
		return model.TypeImage
	case videoExts[ext]:
		return model.TypeVideo
	default:
		return TypeLink
	}
}

func splitTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// textContent returns the trimmed text content of a node.
func textContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// ownText returns the text directly under n, ignoring nested elements.
func ownText(n *html.Node) string {
	var text strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			text.WriteString(c.Data)
		}
	}
	return strings.Join(strings.Fields(text.String()), " ")
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	for _, attr := range n.Attr {
		if strings.EqualFold(attr.Key, key) {
			return attr.Val
		}
	}
	return ""
}
