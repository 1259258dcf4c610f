// Package app wires the corpus, navigation and search layers into the
// bubbletea UI.
package app

import (
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyscripture/internal/app/services"
	"github.com/chmouel/lazyscripture/internal/config"
	"github.com/chmouel/lazyscripture/internal/corpus"
	"github.com/chmouel/lazyscripture/internal/log"
	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/chmouel/lazyscripture/internal/nav"
	"github.com/chmouel/lazyscripture/internal/search"
	"github.com/chmouel/lazyscripture/internal/theme"
)

// promptKind identifies which input prompt is active.
type promptKind int

const (
	promptNone promptKind = iota
	promptSearch
	promptGrep
	promptReference
)

// Model is the main application model.
type Model struct {
	config *config.AppConfig
	theme  *theme.Theme

	store  *corpus.Store
	nav    *nav.Controller
	engine *search.Engine
	watch  *services.CorpusWatchService

	promptInput textinput.Model
	passage     viewport.Model

	prompt    promptKind
	lastQuery string
	grepScope models.ScopeKind

	resultsOpen   bool
	resultsCursor int

	sidebarsVisible bool
	windowWidth     int
	windowHeight    int
	ready           bool

	statusMsg string
	bell      bool
	quitting  bool
}

// NewModel loads the corpus, restores the previous session and builds
// the UI model. An unloadable corpus is fatal.
func NewModel(cfg *config.AppConfig) (*Model, error) {
	store, err := corpus.Load(cfg.CorpusDir)
	if err != nil {
		return nil, err
	}

	ctrl := nav.NewController(store, cfg.DefaultTranslation, 10)
	if pos := services.LoadPosition(cfg.StateFile); pos != (models.Position{}) {
		ctrl.Apply(pos)
	}

	input := textinput.New()
	input.Width = 50

	m := &Model{
		config:          cfg,
		theme:           theme.GetTheme(cfg.Theme),
		store:           store,
		nav:             ctrl,
		engine:          search.NewEngine(store, cfg.SnippetLength),
		watch:           services.NewCorpusWatchService(log.Printf),
		promptInput:     input,
		passage:         viewport.New(40, 5),
		grepScope:       models.ScopeTranslation,
		sidebarsVisible: true,
	}
	m.refreshPassage()
	return m, nil
}

// Init starts the corpus watcher when enabled.
func (m *Model) Init() tea.Cmd {
	if !m.config.WatchCorpus {
		return nil
	}
	started, err := m.watch.Start(m.store.Dir())
	if err != nil {
		log.Printf("corpus watcher failed to start: %v", err)
		return nil
	}
	if !started {
		return nil
	}
	return m.waitForCorpusEvent()
}

func (m *Model) waitForCorpusEvent() tea.Cmd {
	events := m.watch.NextEvent()
	if events == nil {
		return nil
	}
	return func() tea.Msg {
		_, ok := <-events
		if !ok {
			return nil
		}
		return corpusChangedMsg{}
	}
}

// Update handles messages.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.setWindowSize(msg.Width, msg.Height)
		return m, nil

	case corpusChangedMsg:
		m.watch.ResetWaiting()
		if m.watch.ShouldRefresh(time.Now()) {
			if err := m.store.Reload(); err != nil {
				log.Printf("corpus reload failed: %v", err)
				m.statusMsg = "corpus reload failed"
			} else {
				m.nav.Refresh()
				m.refreshPassage()
				m.statusMsg = "corpus reloaded"
			}
		}
		return m, m.waitForCorpusEvent()

	case tea.KeyMsg:
		if m.prompt != promptNone {
			return m.handlePromptKey(msg)
		}
		if m.resultsOpen {
			return m.handleResultsKey(msg)
		}
		return m.handleNormalKey(msg)
	}

	var cmd tea.Cmd
	m.passage, cmd = m.passage.Update(msg)
	return m, cmd
}

func (m *Model) setWindowSize(width, height int) {
	m.windowWidth = width
	m.windowHeight = height
	m.ready = true

	m.nav.SetMaxVisible(max(1, height-3))
	m.passage.Width = max(10, width-m.sidebarWidth()-2)
	m.passage.Height = max(1, height-3)
	m.refreshPassage()
}

// Position returns the current reading position for persistence.
func (m *Model) Position() models.Position {
	return m.nav.Position()
}

// Quitting reports whether the model exited via the quit key.
func (m *Model) Quitting() bool {
	return m.quitting
}

// Close persists the session and stops background services.
func (m *Model) Close() {
	m.watch.Stop()
	if err := services.SavePosition(m.config.StateFile, m.nav.Position()); err != nil {
		log.Printf("failed to save position: %v", err)
	}
}

// refreshPassage re-renders the text pane from the current selection.
func (m *Model) refreshPassage() {
	m.passage.SetContent(m.renderPassage())
	m.passage.GotoTop()
}
