package app

import (
	"fmt"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/chmouel/lazyscripture/internal/models"
	"github.com/chmouel/lazyscripture/internal/search"
)

func (m *Model) handleNormalKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "j", "down":
		m.nav.Focused().Move(1)
		m.nav.Cascade()
		m.refreshPassage()

	case "k", "up":
		m.nav.Focused().Move(-1)
		m.nav.Cascade()
		m.refreshPassage()

	case "h", "left":
		m.nav.FocusDelta(-1)

	case "l", "right":
		m.nav.FocusDelta(1)

	case "g":
		m.nav.Focused().SelectFirst()
		m.nav.Cascade()
		m.refreshPassage()

	case "G":
		m.nav.Focused().SelectLast()
		m.nav.Cascade()
		m.refreshPassage()

	case "f":
		m.sidebarsVisible = !m.sidebarsVisible
		if !m.sidebarsVisible {
			m.nav.FocusVerses()
		}
		m.setWindowSize(m.windowWidth, m.windowHeight)

	case "/":
		m.openPrompt(promptSearch, "search: ")
		return m, textinput.Blink

	case "n":
		if m.lastQuery != "" && !m.nav.Focused().SearchNext(m.lastQuery) {
			m.bell = true
		}
		m.nav.Cascade()
		m.refreshPassage()

	case "N":
		if m.lastQuery != "" && !m.nav.Focused().SearchPrev(m.lastQuery) {
			m.bell = true
		}
		m.nav.Cascade()
		m.refreshPassage()

	case "s":
		m.openPrompt(promptGrep, m.grepPromptLabel())
		return m, textinput.Blink

	case "r":
		m.openPrompt(promptReference, "goto: ")
		return m, textinput.Blink

	case "[":
		m.replayHistory(-1)

	case "]":
		m.replayHistory(1)

	case "esc":
		m.nav.Focused().ClearSearch()
		m.engine.Reset()
		m.lastQuery = ""
		m.statusMsg = ""

	default:
		var cmd tea.Cmd
		m.passage, cmd = m.passage.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m *Model) handlePromptKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit

	case "esc":
		if m.prompt == promptSearch {
			m.nav.Focused().ClearSearch()
		}
		m.closePrompt()
		return m, nil

	case "enter":
		return m.commitPrompt()

	case "tab":
		if m.prompt == promptGrep {
			m.cycleGrepScope()
			m.promptInput.Prompt = m.grepPromptLabel()
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.promptInput, cmd = m.promptInput.Update(msg)

	// Incremental list search: every keystroke rescans from the cursor.
	if m.prompt == promptSearch {
		query := m.promptInput.Value()
		if query != "" && !m.nav.Focused().SearchSelect(query, true) {
			m.bell = true
		}
		m.nav.Cascade()
		m.refreshPassage()
	}
	return m, cmd
}

func (m *Model) commitPrompt() (tea.Model, tea.Cmd) {
	value := m.promptInput.Value()
	kind := m.prompt
	m.closePrompt()

	switch kind {
	case promptSearch:
		m.lastQuery = value

	case promptGrep:
		if value == "" {
			return m, nil
		}
		m.runGrep(value, m.currentScope(), true)

	case promptReference:
		if value == "" {
			return m, nil
		}
		if err := m.nav.JumpToReference(value); err != nil {
			m.statusMsg = err.Error()
			m.bell = true
			return m, nil
		}
		m.refreshPassage()
	}
	return m, nil
}

func (m *Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "j", "down":
		if m.resultsCursor < len(m.engine.Matches())-1 {
			m.resultsCursor++
		}

	case "k", "up":
		if m.resultsCursor > 0 {
			m.resultsCursor--
		}

	case "enter":
		if m.engine.JumpToMatch(m.resultsCursor, m.nav) {
			m.resultsOpen = false
			m.refreshPassage()
		}

	case "[":
		m.replayHistory(-1)

	case "]":
		m.replayHistory(1)

	case "esc", "q":
		m.resultsOpen = false

	case "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) openPrompt(kind promptKind, label string) {
	m.prompt = kind
	m.promptInput.Prompt = label
	m.promptInput.SetValue("")
	m.promptInput.Focus()
	m.statusMsg = ""
}

func (m *Model) closePrompt() {
	m.prompt = promptNone
	m.promptInput.Blur()
}

// currentScope binds the pending scope kind to the current selections.
func (m *Model) currentScope() models.Scope {
	pos := m.nav.Position()
	scope := models.Scope{Kind: m.grepScope}
	if m.grepScope >= models.ScopeTranslation {
		scope.Translation = pos.Translation
	}
	if m.grepScope >= models.ScopeBook {
		scope.Book = pos.Book
	}
	if m.grepScope >= models.ScopeChapter {
		scope.Chapter = pos.Chapter
	}
	return scope
}

func (m *Model) cycleGrepScope() {
	switch m.grepScope {
	case models.ScopeCorpus:
		m.grepScope = models.ScopeTranslation
	case models.ScopeTranslation:
		m.grepScope = models.ScopeBook
	case models.ScopeBook:
		m.grepScope = models.ScopeChapter
	case models.ScopeChapter:
		m.grepScope = models.ScopeCorpus
	}
}

func (m *Model) grepPromptLabel() string {
	return fmt.Sprintf("grep [%s]: ", m.currentScope())
}

func (m *Model) runGrep(pattern string, scope models.Scope, record bool) {
	count, err := m.engine.Search(pattern, scope, record)
	if err != nil {
		m.statusMsg = err.Error()
		m.bell = true
		return
	}
	if count == 0 {
		m.statusMsg = fmt.Sprintf("no matches for %q in %s", pattern, scope)
		m.bell = true
		return
	}
	m.statusMsg = fmt.Sprintf("%d matches for %q in %s", count, pattern, scope)
	m.resultsOpen = true
	m.resultsCursor = 0
}

// replayHistory re-runs an earlier query with its original scope,
// without re-recording it.
func (m *Model) replayHistory(dir int) {
	var entry search.HistoryEntry
	var ok bool
	if dir < 0 {
		entry, ok = m.engine.HistoryPrev()
	} else {
		entry, ok = m.engine.HistoryNext()
	}
	if !ok {
		m.bell = true
		return
	}
	m.grepScope = entry.Scope.Kind
	m.runGrep(entry.Pattern, entry.Scope, false)
}
