package tui

import "github.com/charmbracelet/lipgloss"

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Status       lipgloss.Style
	Suggestion   lipgloss.Style
	Section      lipgloss.Style
	SectionMeta  lipgloss.Style
	Item         lipgloss.Style
	ItemSelected lipgloss.Style
	Badge        lipgloss.Style
	Note         lipgloss.Style
	Tag          lipgloss.Style
	Source       lipgloss.Style
	Notice       lipgloss.Style
	Empty        lipgloss.Style
	Modal        lipgloss.Style
	Help         lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "Enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "move")
}

// DefaultStyles returns the default style configuration.
// Industrial design: grayscale with single desaturated teal accent.
func DefaultStyles() Styles {
	primary := lipgloss.AdaptiveColor{Light: "#505050", Dark: "#A0A0A0"} // main text
	subtle := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#606060"}  // secondary text
	accent := lipgloss.AdaptiveColor{Light: "#4A7070", Dark: "#5F8787"}  // desaturated teal
	border := lipgloss.AdaptiveColor{Light: "#888888", Dark: "#505050"}  // inactive borders
	warn := lipgloss.AdaptiveColor{Light: "#8A5A2B", Dark: "#C08A5A"}    // placeholders

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Status: lipgloss.NewStyle().
			Foreground(subtle),

		Suggestion: lipgloss.NewStyle().
			Foreground(accent).
			Italic(true),

		Section: lipgloss.NewStyle().
			Bold(true).
			Foreground(primary),

		SectionMeta: lipgloss.NewStyle().
			Foreground(subtle),

		Item: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		ItemSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(lipgloss.Color("#1A1A1A")),

		Badge: lipgloss.NewStyle().
			Foreground(accent),

		Note: lipgloss.NewStyle().
			Foreground(primary),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Source: lipgloss.NewStyle().
			Foreground(subtle).
			Underline(true),

		Notice: lipgloss.NewStyle().
			Foreground(warn),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		Modal: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(1, 2),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),
	}
}
