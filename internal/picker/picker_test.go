package picker

import (
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/model"
)

func testEntries() []Entry {
	vm := gallery.Project(gallery.AppState{Document: &model.Document{Sections: []model.Section{
		{Name: "Stills", Items: []model.Item{
			{Type: "image", Title: "Harbor", Src: "harbor.jpg"},
			{Type: "image", Title: "Harbor at night", Src: "night.jpg"},
		}},
	}}, Query: "harbor"}, gallery.Options{})
	return Entries(vm)
}

func TestEntries(t *testing.T) {
	entries := testEntries()

	if len(entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(entries))
	}
	if entries[1].Section != "Stills" || entries[1].Card.Item.Title != "Harbor at night" {
		t.Errorf("unexpected entry %+v", entries[1])
	}
}

func TestPicker_NavigateDown(t *testing.T) {
	p := New(testEntries(), "harbor")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)

	if p.cursor != 1 {
		t.Errorf("expected cursor at 1, got %d", p.cursor)
	}
}

func TestPicker_NavigateUp(t *testing.T) {
	p := New(testEntries(), "harbor")
	p.cursor = 1

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)

	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}
}

func TestPicker_BoundsCheck(t *testing.T) {
	p := New(testEntries()[:1], "harbor")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'k'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'j'}})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 (only 1 entry), got %d", p.cursor)
	}
}

func TestPicker_ArrowKeys(t *testing.T) {
	p := New(testEntries(), "harbor")

	newModel, _ := p.Update(tea.KeyMsg{Type: tea.KeyDown})
	p = newModel.(Picker)
	if p.cursor != 1 {
		t.Errorf("expected cursor at 1 after down arrow, got %d", p.cursor)
	}

	newModel, _ = p.Update(tea.KeyMsg{Type: tea.KeyUp})
	p = newModel.(Picker)
	if p.cursor != 0 {
		t.Errorf("expected cursor at 0 after up arrow, got %d", p.cursor)
	}
}

func TestPicker_Select(t *testing.T) {
	p := New(testEntries(), "harbor")
	p.cursor = 1

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEnter})
	p = newModel.(Picker)

	if cmd == nil {
		t.Error("expected quit command after selection")
	}

	e, ok := p.Selected()
	if !ok {
		t.Fatal("expected a selection after Enter")
	}
	if e.Card.Item.Src != "night.jpg" {
		t.Errorf("expected night.jpg, got %q", e.Card.Item.Src)
	}
}

func TestPicker_Cancel(t *testing.T) {
	p := New(testEntries(), "harbor")

	newModel, cmd := p.Update(tea.KeyMsg{Type: tea.KeyEsc})
	p = newModel.(Picker)

	if !p.Cancelled() {
		t.Error("expected cancelled after Esc")
	}
	if cmd == nil {
		t.Error("expected quit command after cancel")
	}
	if _, ok := p.Selected(); ok {
		t.Error("expected no selection when cancelled")
	}
}

func TestPicker_View(t *testing.T) {
	view := New(testEntries(), "harbor").View()

	for _, want := range []string{"Search: harbor (2 results)", "Harbor at night", "[Image]", "Stills · harbor.jpg"} {
		if !strings.Contains(view, want) {
			t.Errorf("view missing %q", want)
		}
	}
}

func TestPicker_ViewScrollsToCursor(t *testing.T) {
	var entries []Entry
	for _, title := range []string{"one", "two", "three", "four", "five"} {
		entries = append(entries, Entry{Section: "S", Card: gallery.Card{Item: model.Item{Title: title}}})
	}

	p := New(entries, "")
	m, _ := p.Update(tea.WindowSizeMsg{Width: 80, Height: 9}) // room for 2 entries
	p = m.(Picker)
	p.cursor = 4

	view := p.View()
	if strings.Contains(view, "one") || !strings.Contains(view, "five") {
		t.Errorf("expected the window to follow the cursor:\n%s", view)
	}
}
