package layout

import "testing"

func TestCalculateModalWidth(t *testing.T) {
	cfg := DefaultConfig().Modal

	tests := []struct {
		name          string
		terminalWidth int
		want          int
	}{
		{"standard terminal", 100, 60},           // 100*60/100
		{"wide terminal clamps to max", 200, 90}, // 120 -> 90
		{"narrow terminal uses min", 50, 40},     // 30 -> 40
		{"tiny terminal fits screen", 30, 26},    // min 40 exceeds 30-4
		{"degenerate clamps to 1", 3, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CalculateModalWidth(tt.terminalWidth, cfg)
			if got != tt.want {
				t.Errorf("CalculateModalWidth(%d) = %d, want %d",
					tt.terminalWidth, got, tt.want)
			}
		})
	}
}

func TestCalculateVisibleListItems(t *testing.T) {
	tests := []struct {
		name                                string
		maxVisible, selectedIdx, totalItems int
		wantStart, wantEnd                  int
	}{
		{"all fit", 5, 2, 3, 0, 3},
		{"selection in first page", 5, 2, 10, 0, 5},
		{"selection past first page", 5, 7, 10, 3, 8},
		{"last item", 5, 9, 10, 5, 10},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			start, end := CalculateVisibleListItems(tt.maxVisible, tt.selectedIdx, tt.totalItems)
			if start != tt.wantStart || end != tt.wantEnd {
				t.Errorf("CalculateVisibleListItems(%d, %d, %d) = (%d, %d), want (%d, %d)",
					tt.maxVisible, tt.selectedIdx, tt.totalItems, start, end, tt.wantStart, tt.wantEnd)
			}
		})
	}
}
