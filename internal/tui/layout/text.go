package layout

import (
	"strings"

	"github.com/charmbracelet/x/ansi"
)

// StripANSI removes ANSI escape codes from a string.
func StripANSI(s string) string {
	return ansi.Strip(s)
}

// VisibleWidth returns the number of terminal cells s occupies, ignoring
// ANSI codes. Wide runes count as two cells.
func VisibleWidth(s string) int {
	return ansi.StringWidth(s)
}

// TruncateText truncates text to maxWidth cells, ending in the configured
// ellipsis. Returns the truncated text and whether truncation occurred.
func TruncateText(text string, maxWidth int, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}
	if ansi.StringWidth(text) <= maxWidth {
		return text, false
	}

	// Not enough room for any text next to the ellipsis
	if ansi.StringWidth(cfg.Ellipsis) >= maxWidth {
		return ansi.Truncate(cfg.Ellipsis, maxWidth, ""), true
	}

	return ansi.Truncate(text, maxWidth, cfg.Ellipsis), true
}

// TruncateWithPrefixSuffix truncates text while preserving prefix and suffix.
// Example: TruncateWithPrefixSuffix("Harbor at dawn", 14, "> ", " [Image]", cfg) -> "> Har... [Image]"
// Returns the truncated text and whether truncation occurred.
func TruncateWithPrefixSuffix(text string, maxWidth int, prefix, suffix string, cfg TextConfig) (string, bool) {
	if maxWidth <= 0 {
		return "", true
	}

	combined := prefix + text + suffix
	if ansi.StringWidth(combined) <= maxWidth {
		return combined, false
	}

	overhead := ansi.StringWidth(prefix) + ansi.StringWidth(suffix) + ansi.StringWidth(cfg.Ellipsis)
	if overhead >= maxWidth {
		// Not even prefix + ellipsis + suffix fit, so cut the whole line
		return TruncateText(combined, maxWidth, cfg)
	}

	room := maxWidth - ansi.StringWidth(prefix) - ansi.StringWidth(suffix)
	return prefix + ansi.Truncate(text, room, cfg.Ellipsis) + suffix, true
}

// PadRight pads s with spaces to width cells. Longer strings are returned unchanged.
func PadRight(s string, width int) string {
	if w := ansi.StringWidth(s); w < width {
		return s + strings.Repeat(" ", width-w)
	}
	return s
}
