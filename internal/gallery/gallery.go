// Package gallery projects a document and a query into a render-ready view.
package gallery

import (
	"fmt"

	"github.com/nikbrunner/folio/internal/media"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/search"
)

// DefaultTitle is the page title when the document does not declare one.
const DefaultTitle = "Work"

// MaxCardTags caps the tags shown on a card; the modal shows all of them.
const MaxCardTags = 6

// Status messages.
const (
	LoadingMessage = "Loading…"
	EmptyMessage   = "No sections/items found. Edit data.json to add work."
)

// Status identifies which status message a view carries.
type Status int

const (
	StatusLoading   Status = iota // no document yet
	StatusEmpty                   // document has nothing to show
	StatusNoResults               // query filtered everything out
	StatusResults                 // query with at least one match
	StatusLoaded                  // no query, at least one item
)

// AppState is the complete input of a projection.
// A nil Document means the document has not been loaded yet.
type AppState struct {
	Document *model.Document
	Query    string
	Compact  bool
}

// Options tune a projection.
type Options struct {
	DefaultTitle string // used when the document has no title; DefaultTitle if empty
	Suggestions  int    // fuzzy suggestions to attach when nothing matches; 0 disables
}

// Card is a visible item with its derived display artifacts.
type Card struct {
	Index     int // position within the section's visible cards
	Item      model.Item
	Badge     string
	Thumbnail media.Thumbnail
	Tags      []string // at most MaxCardTags
}

// Payload returns the selection payload for the card.
func (c Card) Payload() model.Payload {
	return model.NewPayload(c.Item)
}

// SectionView is a section with at least one visible card.
type SectionView struct {
	Section model.Section
	Cards   []Card
}

// Count returns the number of visible cards in the section.
func (s SectionView) Count() int {
	return len(s.Cards)
}

// CountLabel returns "1 item" or "N items".
func (s SectionView) CountLabel() string {
	return plural(len(s.Cards), "item")
}

// ViewModel is the derived, render-ready projection of an AppState.
type ViewModel struct {
	Title         string
	Query         string
	Compact       bool
	Status        Status
	StatusMessage string
	Sections      []SectionView
	TotalVisible  int
	Suggestions   []string
}

// Loaded reports whether the view was projected from a loaded document.
func (vm ViewModel) Loaded() bool {
	return vm.Status != StatusLoading
}

// CardAt returns the card at a flat position across all sections.
func (vm ViewModel) CardAt(pos int) (Card, bool) {
	if pos < 0 {
		return Card{}, false
	}
	for _, s := range vm.Sections {
		if pos < len(s.Cards) {
			return s.Cards[pos], true
		}
		pos -= len(s.Cards)
	}
	return Card{}, false
}

// Project computes the view for state. It runs in time linear in the
// number of items and never fails.
func Project(state AppState, opts Options) ViewModel {
	vm := ViewModel{
		Query:   state.Query,
		Compact: state.Compact,
		Title:   opts.DefaultTitle,
	}
	if vm.Title == "" {
		vm.Title = DefaultTitle
	}

	doc := state.Document
	if doc == nil {
		vm.Status = StatusLoading
		vm.StatusMessage = LoadingMessage
		return vm
	}
	if doc.Title != "" {
		vm.Title = doc.Title
	}

	q := search.Normalize(state.Query)

	for si := range doc.Sections {
		section := &doc.Sections[si]

		var cards []Card
		for ii := range section.Items {
			item := &section.Items[ii]
			if !search.Matches(section, item, q) {
				continue
			}
			cards = append(cards, newCard(len(cards), *item))
		}

		if len(cards) == 0 {
			continue
		}

		vm.TotalVisible += len(cards)
		vm.Sections = append(vm.Sections, SectionView{
			Section: *section,
			Cards:   cards,
		})
	}

	switch {
	case len(vm.Sections) == 0 && q != "":
		vm.Status = StatusNoResults
		vm.StatusMessage = fmt.Sprintf("No results for “%s”.", state.Query)
		vm.Suggestions = search.Suggest(doc, q, opts.Suggestions)
	case len(vm.Sections) == 0:
		vm.Status = StatusEmpty
		vm.StatusMessage = EmptyMessage
	case q != "":
		vm.Status = StatusResults
		vm.StatusMessage = fmt.Sprintf("%s for “%s”.", plural(vm.TotalVisible, "result"), state.Query)
	default:
		vm.Status = StatusLoaded
		vm.StatusMessage = plural(vm.TotalVisible, "item") + " loaded."
	}

	return vm
}

func newCard(index int, item model.Item) Card {
	tags := item.Tags
	if len(tags) > MaxCardTags {
		tags = tags[:MaxCardTags]
	}

	return Card{
		Index:     index,
		Item:      item,
		Badge:     media.BadgeLabel(item.Kind()),
		Thumbnail: media.DeriveThumbnail(item),
		Tags:      tags,
	}
}

// plural formats n with noun, adding "s" unless n is 1.
func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("%d %s", n, noun)
	}
	return fmt.Sprintf("%d %ss", n, noun)
}
