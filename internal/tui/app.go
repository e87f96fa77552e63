// Package tui is the terminal gallery: a searchable list of cards with a
// detail pane and a modal for the selected item.
package tui

import (
	"context"
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"go.uber.org/zap"

	"github.com/nikbrunner/folio/internal/gallery"
	"github.com/nikbrunner/folio/internal/modal"
	"github.com/nikbrunner/folio/internal/model"
	"github.com/nikbrunner/folio/internal/storage"
	"github.com/nikbrunner/folio/internal/tui/layout"
)

// messageTimeout is how long transient messages stay on screen.
const messageTimeout = 2 * time.Second

// App is the main bubbletea model for the gallery.
type App struct {
	source storage.Source
	log    *zap.Logger
	copy   func(string) error

	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	opts         gallery.Options

	// Projection
	state gallery.AppState
	vm    gallery.ViewModel
	rows  []Row

	cursor int // flat card position
	mode   Mode
	search SearchState

	modal    *modal.Controller
	lock     *cursorLock
	selected model.Payload // payload of the open modal

	message    string
	messageSeq int

	// For gg command
	lastKeyWasG bool

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Source   storage.Source  // loaded by Init unless Document is set
	Document *model.Document // optional, an already loaded document

	Title       string // shown while loading and when the document has none
	Query       string
	Compact     bool
	Suggestions int // fuzzy suggestions when nothing matches; 0 disables

	Logger       *zap.Logger             // optional, discards if nil
	Clipboard    func(text string) error // optional, uses the system clipboard if nil
	Keys         *KeyMap                 // optional, uses default if nil
	Styles       *Styles                 // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig    // optional, uses default if nil
}

// NewApp creates a new App with the given parameters.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	styles := DefaultStyles()
	if params.Styles != nil {
		styles = *params.Styles
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}

	copyFn := params.Clipboard
	if copyFn == nil {
		copyFn = clipboard.WriteAll
	}

	lock := &cursorLock{}
	app := App{
		source:       params.Source,
		log:          log,
		copy:         copyFn,
		keys:         keys,
		styles:       styles,
		layoutConfig: layoutCfg,
		opts: gallery.Options{
			DefaultTitle: params.Title,
			Suggestions:  params.Suggestions,
		},
		state: gallery.AppState{
			Document: params.Document,
			Query:    params.Query,
			Compact:  params.Compact,
		},
		search: NewSearchState(layoutCfg),
		modal:  modal.NewController(lock),
		lock:   lock,
		width:  80,
		height: 24,
	}

	app.project()
	return app
}

// project recomputes the view from the current state.
func (a *App) project() {
	a.vm = gallery.Project(a.state, a.opts)
	a.rows = buildRows(&a.vm)
	a.clampCursor()
}

func (a *App) clampCursor() {
	switch {
	case a.vm.TotalVisible == 0 || a.cursor < 0:
		a.cursor = 0
	case a.cursor >= a.vm.TotalVisible:
		a.cursor = a.vm.TotalVisible - 1
	}
}

// Cursor returns the current cursor position across all visible cards.
func (a App) Cursor() int {
	return a.cursor
}

// Mode returns the current interaction mode.
func (a App) Mode() Mode {
	if a.modal.IsOpen() {
		return ModeModal
	}
	return a.mode
}

// Query returns the current search query.
func (a App) Query() string {
	return a.state.Query
}

// Compact reports whether the compact view is active.
func (a App) Compact() bool {
	return a.state.Compact
}

// ViewModel returns the current projection.
func (a App) ViewModel() gallery.ViewModel {
	return a.vm
}

// ModalView returns the content of the open modal.
func (a App) ModalView() modal.View {
	return a.modal.View()
}

// Message returns the transient message line.
func (a App) Message() string {
	return a.message
}

// SelectedCard returns the card under the cursor.
func (a App) SelectedCard() (gallery.Card, bool) {
	return a.vm.CardAt(a.cursor)
}

// WithDimensions returns a copy of the app with fixed terminal dimensions.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model.
func (a App) Init() tea.Cmd {
	if a.state.Document == nil && a.source != nil {
		return a.loadCmd()
	}
	return nil
}

func (a App) loadCmd() tea.Cmd {
	src, title, log := a.source, a.opts.DefaultTitle, a.log
	return func() tea.Msg {
		return DocumentLoadedMsg{Document: storage.LoadOrEmpty(context.Background(), src, title, log)}
	}
}

// reloadCmd loads the source again. Unlike the first load, a failure keeps
// the current document.
func (a App) reloadCmd() tea.Cmd {
	if a.state.Document == nil {
		return a.loadCmd()
	}
	src := a.source
	return func() tea.Msg {
		doc, err := src.Load(context.Background())
		if err != nil {
			return ReloadFailedMsg{Err: err}
		}
		return DocumentLoadedMsg{Document: doc}
	}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case DocumentLoadedMsg:
		a.state.Document = msg.Document
		a.project()
		a.log.Debug("document loaded",
			zap.Int("sections", len(msg.Document.Sections)),
			zap.Int("items", msg.Document.ItemCount()),
		)
		return a, nil

	case ReloadMsg:
		if a.source == nil {
			return a, nil
		}
		return a, a.reloadCmd()

	case ReloadFailedMsg:
		a.log.Warn("reload failed, keeping current document", zap.Error(msg.Err))
		return a, a.setMessage("Reload failed: " + msg.Err.Error())

	case messageClearMsg:
		if msg.seq == a.messageSeq {
			a.message = ""
		}
		return a, nil

	case tea.KeyMsg:
		switch a.Mode() {
		case ModeModal:
			return a.handleModalKey(msg)
		case ModeSearch:
			return a.handleSearchKey(msg)
		default:
			return a.handleNormalKey(msg)
		}
	}

	return a, nil
}

func (a App) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.moveTo(0)
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.moveTo(a.cursor + 1)

	case key.Matches(msg, a.keys.Up):
		a.moveTo(a.cursor - 1)

	case key.Matches(msg, a.keys.Bottom):
		a.moveTo(a.vm.TotalVisible - 1)

	case key.Matches(msg, a.keys.Open):
		if card, ok := a.SelectedCard(); ok {
			a.selected = card.Payload()
			a.modal.Open(a.selected)
			a.log.Debug("modal opened", zap.String("title", a.selected.Title))
		}

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		a.search.Input.SetValue(a.state.Query)
		a.search.Input.CursorEnd()
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Clear):
		if a.state.Query != "" {
			a.setQuery("")
		}

	case key.Matches(msg, a.keys.ToggleView):
		a.state.Compact = !a.state.Compact
		a.project()

	case key.Matches(msg, a.keys.YankSrc):
		if card, ok := a.SelectedCard(); ok {
			return a, a.yank(card.Item.Src)
		}

	case key.Matches(msg, a.keys.Reload):
		if a.source != nil {
			return a, tea.Batch(a.reloadCmd(), a.setMessage("Reloading…"))
		}
	}

	return a, nil
}

func (a App) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Accept):
		a.mode = ModeNormal
		a.search.Input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.Clear):
		a.mode = ModeNormal
		a.search.Input.Blur()
		a.search.Input.Reset()
		a.setQuery("")
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	if v := a.search.Input.Value(); v != a.state.Query {
		a.setQuery(v)
	}
	return a, cmd
}

func (a App) handleModalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Close):
		a.modal.Close()
		a.selected = model.Payload{}

	case key.Matches(msg, a.keys.YankSrc):
		return a, a.yank(a.selected.Src)
	}

	return a, nil
}

// setQuery re-projects for q and puts the cursor on the first hit.
func (a *App) setQuery(q string) {
	a.state.Query = q
	a.cursor = 0
	a.project()
}

// moveTo moves the cursor unless the modal holds the lock.
func (a *App) moveTo(pos int) {
	if a.lock.held || a.vm.TotalVisible == 0 {
		return
	}
	if pos < 0 {
		pos = 0
	}
	if pos >= a.vm.TotalVisible {
		pos = a.vm.TotalVisible - 1
	}
	a.cursor = pos
}

func (a *App) yank(src string) tea.Cmd {
	if src == "" {
		return a.setMessage("Nothing to copy")
	}
	if err := a.copy(src); err != nil {
		a.log.Warn("clipboard write failed", zap.Error(err))
		return a.setMessage("Copy failed: " + err.Error())
	}
	return a.setMessage("Copied " + src)
}

func (a *App) setMessage(text string) tea.Cmd {
	a.messageSeq++
	a.message = text
	seq := a.messageSeq
	return tea.Tick(messageTimeout, func(time.Time) tea.Msg {
		return messageClearMsg{seq: seq}
	})
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}
