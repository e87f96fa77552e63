package tui

import (
	"github.com/charmbracelet/bubbles/textinput"

	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/tui/layout"
)

// Mode represents the current interaction mode.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeModal
)

// String returns the mode name.
func (m Mode) String() string {
	switch m {
	case ModeSearch:
		return "search"
	case ModeModal:
		return "modal"
	default:
		return "normal"
	}
}

// DocumentLoadedMsg carries a freshly loaded document into the app.
type DocumentLoadedMsg struct {
	Document *model.Document
}

// ReloadMsg asks the app to load its source again, e.g. after the data
// file changed on disk.
type ReloadMsg struct{}

// ReloadFailedMsg reports a reload that failed; the current document stays.
type ReloadFailedMsg struct {
	Err error
}

// messageClearMsg clears the transient message line.
type messageClearMsg struct {
	seq int
}

// SearchState holds the search box.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search…"
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth
	return SearchState{Input: input}
}

// cursorLock freezes gallery navigation while the modal is open.
type cursorLock struct {
	held bool
}

func (l *cursorLock) Lock()   { l.held = true }
func (l *cursorLock) Unlock() { l.held = false }
