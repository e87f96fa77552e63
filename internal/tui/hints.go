package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "Enter")
	Desc string // Short description (e.g., "move", "open")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, gg/G)
	Action []Hint // Action hints (Enter, /, v, y)
	System []Hint // System hints (r, q, Esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for the bottom bar: "j/k:move Enter:open q:quit"
func (a App) renderHints(hints HintSet) string {
	all := hints.All()
	if len(all) == 0 {
		return ""
	}

	parts := make([]string, len(all))
	for i, h := range all {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// renderHintsInline renders hints in inline format for the modal: "Esc close  y yank"
func (a App) renderHintsInline(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.styles.HintKey.Render(h.Key) + " " + a.styles.HintDesc.Render(h.Desc)
	}
	return strings.Join(parts, "  ")
}

// contextualHints returns the hints for the current mode.
func (a App) contextualHints() HintSet {
	switch a.Mode() {
	case ModeSearch:
		return HintSet{
			Action: []Hint{{Key: "Enter", Desc: "done"}},
			System: []Hint{{Key: "Esc", Desc: "clear"}},
		}
	case ModeModal:
		return HintSet{
			Action: a.modalHints(),
		}
	default:
		hs := HintSet{
			Nav: []Hint{
				{Key: "j/k", Desc: "move"},
				{Key: "gg/G", Desc: "top/bottom"},
			},
			Action: []Hint{
				{Key: "Enter", Desc: "open"},
				{Key: "/", Desc: "search"},
				{Key: "v", Desc: a.toggleLabel()},
				{Key: "y", Desc: "yank"},
			},
			System: []Hint{
				{Key: "r", Desc: "reload"},
				{Key: "q", Desc: "quit"},
			},
		}
		if a.state.Query != "" {
			hs.System = append([]Hint{{Key: "Esc", Desc: "clear search"}}, hs.System...)
		}
		return hs
	}
}

func (a App) modalHints() []Hint {
	return []Hint{
		{Key: "Esc", Desc: "close"},
		{Key: "x", Desc: "close"},
		{Key: "y", Desc: "yank source"},
	}
}

func (a App) toggleLabel() string {
	if a.state.Compact {
		return "normal view"
	}
	return "compact view"
}
