package layout

// PaneLayout holds calculated pane widths.
type PaneLayout struct {
	ListWidth   int
	DetailWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculatePaneWidth splits the terminal width between the gallery pane
// and the detail pane. Both widths respect their minimums.
func CalculatePaneWidth(terminalWidth int, cfg PaneConfig) PaneLayout {
	available := terminalWidth - cfg.WidthOffset

	list := available * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}

	detail := available - list
	if detail < cfg.MinDetailWidth {
		detail = cfg.MinDetailWidth
	}

	return PaneLayout{
		ListWidth:   list,
		DetailWidth: detail,
	}
}

// CalculateItemWidth computes the width available for line content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	return paneWidth - cfg.ContentPadding
}

// CalculateVisibleHeight computes the visible line count in a pane.
func CalculateVisibleHeight(paneHeight, headerLines int) int {
	height := paneHeight - headerLines
	if height < 1 {
		return 1
	}
	return height
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected line visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
