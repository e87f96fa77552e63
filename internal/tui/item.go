package tui

import "github.com/nikbrunner/folio/internal/gallery"

// RowKind distinguishes section headers from cards in the gallery pane.
type RowKind int

const (
	RowSection RowKind = iota
	RowCard
)

// Row is one entry of the gallery pane.
type Row struct {
	Kind    RowKind
	Section *gallery.SectionView
	Card    *gallery.Card
	Pos     int // flat card position; -1 for section rows
}

// IsCard returns true if this row is a card.
func (r Row) IsCard() bool {
	return r.Kind == RowCard
}

// buildRows flattens vm into section headers followed by their cards.
func buildRows(vm *gallery.ViewModel) []Row {
	var rows []Row
	pos := 0
	for si := range vm.Sections {
		s := &vm.Sections[si]
		rows = append(rows, Row{Kind: RowSection, Section: s, Pos: -1})
		for ci := range s.Cards {
			rows = append(rows, Row{Kind: RowCard, Section: s, Card: &s.Cards[ci], Pos: pos})
			pos++
		}
	}
	return rows
}
