// Package picker is a small TUI for choosing one card out of a search.
package picker

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/tui/layout"
)

// chromeLines is the header and footer height around the list.
const chromeLines = 5

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	srcStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	badgeStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("108"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)

	footerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244"))
)

// Entry is a card together with the section it was found in.
type Entry struct {
	Section string
	Card    gallery.Card
}

// Entries flattens the visible cards of vm in display order.
func Entries(vm gallery.ViewModel) []Entry {
	var entries []Entry
	for _, s := range vm.Sections {
		for _, c := range s.Cards {
			entries = append(entries, Entry{Section: s.Section.Name, Card: c})
		}
	}
	return entries
}

// Picker selects one entry from a list of search hits.
type Picker struct {
	entries   []Entry
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker with the given entries.
func New(entries []Entry, query string) Picker {
	return Picker{
		entries: entries,
		query:   query,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyEsc, tea.KeyCtrlC:
			p.cancelled = true
			return p, tea.Quit

		case tea.KeyEnter:
			p.selected = true
			return p, tea.Quit

		case tea.KeyDown:
			p.move(1)
			return p, nil

		case tea.KeyUp:
			p.move(-1)
			return p, nil

		case tea.KeyRunes:
			switch string(msg.Runes) {
			case "j":
				p.move(1)
			case "k":
				p.move(-1)
			case "q":
				p.cancelled = true
				return p, tea.Quit
			}
			return p, nil
		}
	}

	return p, nil
}

func (p *Picker) move(delta int) {
	next := p.cursor + delta
	if next >= 0 && next < len(p.entries) {
		p.cursor = next
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.entries))))
	b.WriteString("\n\n")

	// Each entry takes two lines
	maxVisible := (p.height - chromeLines) / 2
	if maxVisible < 1 {
		maxVisible = 1
	}
	start, end := layout.CalculateVisibleListItems(maxVisible, p.cursor, len(p.entries))

	for i := start; i < end; i++ {
		e := p.entries[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		fmt.Fprintf(&b, "%s%s %s\n", cursor, style.Render(e.Card.Item.Title), badgeStyle.Render("["+e.Card.Badge+"]"))
		fmt.Fprintf(&b, "   %s\n", srcStyle.Render(e.Section+" · "+e.Card.Item.Src))
	}

	b.WriteString("\n")
	b.WriteString(footerStyle.Render("j/k: move  Enter: select  q/Esc: cancel"))

	return b.String()
}

// Selected returns the chosen entry. ok is false when the picker was
// cancelled or closed without a choice.
func (p Picker) Selected() (Entry, bool) {
	if p.cancelled || !p.selected || p.cursor >= len(p.entries) {
		return Entry{}, false
	}
	return p.entries[p.cursor], true
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
