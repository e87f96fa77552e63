package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (2) + search line (1) + pane borders (2) + help bar (3) = 9
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// WidthOffset is subtracted before splitting the width between the
	// gallery and detail panes. Accounts for borders and app padding.
	WidthOffset int

	// ListWidthPercent is the gallery pane's share of the available width.
	ListWidthPercent int

	// MinListWidth is the minimum gallery pane width.
	MinListWidth int

	// MinDetailWidth is the minimum detail pane width.
	MinDetailWidth int

	// ContentPadding is subtracted from pane width for line rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int
}

// ModalConfig holds modal dialog configuration.
type ModalConfig struct {
	// WidthPercent is the modal width as percentage of terminal width.
	WidthPercent int

	// MinWidth is the minimum modal width in characters.
	MinWidth int

	// MaxWidth is the maximum modal width in characters.
	MaxWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  9,
			MinHeight:        5,
			WidthOffset:      8,
			ListWidthPercent: 55,
			MinListWidth:     24,
			MinDetailWidth:   20,
			ContentPadding:   4,
		},
		Modal: ModalConfig{
			WidthPercent: 60,
			MinWidth:     40,
			MaxWidth:     90,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
