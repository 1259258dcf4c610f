package app

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/chmouel/lazyscripture/internal/nav"
	"github.com/muesli/reflow/wordwrap"
)

// Sidebar column widths. The passage pane takes the rest.
const (
	colWidthTranslations = 7
	colWidthBooks        = 16
	colWidthChapters     = 5
	colWidthVerses       = 5
)

var verseMarkerRe = regexp.MustCompile(`\(\d+\)`)

func (m *Model) sidebarWidth() int {
	if !m.sidebarsVisible {
		return 0
	}
	return colWidthTranslations + colWidthBooks + colWidthChapters + colWidthVerses + 4
}

// View renders the full screen.
func (m *Model) View() string {
	if !m.ready {
		return "loading..."
	}
	if m.quitting {
		return ""
	}

	var prefix string
	if m.bell {
		prefix = "\a"
		m.bell = false
	}

	main := m.renderMain()
	status := m.renderStatus()
	return prefix + lipgloss.JoinVertical(lipgloss.Left, main, status)
}

func (m *Model) renderMain() string {
	right := m.passage.View()
	if m.resultsOpen {
		right = m.renderResults()
	}
	rightPane := lipgloss.JoinVertical(lipgloss.Left, m.renderPassageTitle(), right)

	if !m.sidebarsVisible {
		return rightPane
	}

	cols := m.nav.Columns()
	widths := []int{colWidthTranslations, colWidthBooks, colWidthChapters, colWidthVerses}
	rendered := make([]string, 0, len(cols)+1)
	for i, col := range cols {
		rendered = append(rendered, m.renderColumn(col, widths[i]))
	}
	rendered = append(rendered, rightPane)
	return lipgloss.JoinHorizontal(lipgloss.Top, rendered...)
}

// renderColumn draws one navigation column: its title, then the
// viewport slice with the cursor row highlighted.
func (m *Model) renderColumn(l *nav.List, width int) string {
	titleStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg).Bold(true)
	if l.Active() {
		titleStyle = titleStyle.Foreground(m.theme.Accent)
	}
	itemStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg).Width(width).MaxWidth(width)
	cursorStyle := lipgloss.NewStyle().Foreground(m.theme.AccentFg).Background(m.theme.Accent).Width(width).MaxWidth(width)
	if !l.Active() {
		cursorStyle = lipgloss.NewStyle().Foreground(m.theme.TextFg).Background(m.theme.AccentDim).Width(width).MaxWidth(width)
	}

	var b strings.Builder
	b.WriteString(titleStyle.MaxWidth(width).Render(l.Title()))
	b.WriteString("\n")

	lower, upper := l.Bounds()
	items := l.Items()
	selected := l.Selection()
	for i := lower; i < upper; i++ {
		it := items[i]
		if it.Index == selected.Index && l.Len() > 0 {
			b.WriteString(cursorStyle.Render(">" + it.Value))
		} else {
			b.WriteString(itemStyle.Render(" " + it.Value))
		}
		b.WriteString("\n")
	}
	return lipgloss.NewStyle().Width(width + 1).Render(b.String())
}

func (m *Model) renderStatus() string {
	statusStyle := lipgloss.NewStyle().Foreground(m.theme.MutedFg)
	if m.prompt != promptNone {
		return m.promptInput.View()
	}
	if m.statusMsg != "" {
		return statusStyle.Foreground(m.theme.WarnFg).Render(m.statusMsg)
	}
	return statusStyle.Render(m.nav.PassageTitle())
}

func (m *Model) renderPassageTitle() string {
	return lipgloss.NewStyle().
		Foreground(m.theme.AccentFg).
		Background(m.theme.Accent).
		Bold(true).
		Width(m.passage.Width).
		Render(m.nav.PassageTitle())
}

// renderPassage lays out the chapter text one verse per paragraph,
// wrapped to the pane width.
func (m *Model) renderPassage() string {
	text := m.nav.PassageText()
	if text == "" {
		return lipgloss.NewStyle().Foreground(m.theme.MutedFg).Render("no text")
	}
	width := max(10, m.passage.Width)
	verses := splitVerses(text)
	wrapped := make([]string, 0, len(verses))
	for _, v := range verses {
		wrapped = append(wrapped, wordwrap.String(v, width))
	}
	return strings.Join(wrapped, "\n\n")
}

// splitVerses cuts the joined chapter text back into verses at each
// "(n)" marker.
func splitVerses(text string) []string {
	starts := verseMarkerRe.FindAllStringIndex(text, -1)
	if len(starts) == 0 {
		return []string{text}
	}
	verses := make([]string, 0, len(starts))
	for i, loc := range starts {
		end := len(text)
		if i+1 < len(starts) {
			end = starts[i+1][0]
		}
		verses = append(verses, strings.TrimSpace(text[loc[0]:end]))
	}
	return verses
}

// renderResults draws the search result list in place of the passage.
func (m *Model) renderResults() string {
	matches := m.engine.Matches()
	height := m.passage.Height
	width := m.passage.Width

	headerStyle := lipgloss.NewStyle().Foreground(m.theme.Cyan).Bold(true)
	selStyle := lipgloss.NewStyle().Foreground(m.theme.AccentFg).Background(m.theme.Accent)
	refStyle := lipgloss.NewStyle().Foreground(m.theme.Yellow)
	textStyle := lipgloss.NewStyle().Foreground(m.theme.TextFg)

	count := len(matches)
	if count == 0 {
		count = len(m.engine.Diagnostics())
	}

	var b strings.Builder
	b.WriteString(headerStyle.Render(fmt.Sprintf("%d matches for %q in %s",
		count, m.engine.Pattern(), m.engine.Scope())))
	b.WriteString("\n")

	rows := max(1, height-1)
	offset := 0
	if m.resultsCursor >= rows {
		offset = m.resultsCursor - rows + 1
	}
	for i := offset; i < len(matches) && i < offset+rows; i++ {
		match := matches[i]
		line := refStyle.Render(match.Ref()) + " " + textStyle.Render(match.Snippet)
		if i == m.resultsCursor {
			line = selStyle.Render("> " + match.Ref() + " " + match.Snippet)
		} else {
			line = "  " + line
		}
		if lipgloss.Width(line) > width {
			line = lipgloss.NewStyle().MaxWidth(width).Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}

	if len(matches) == 0 {
		for _, diag := range m.engine.Diagnostics() {
			b.WriteString(textStyle.Render("  " + diag))
			b.WriteString("\n")
		}
	}
	return b.String()
}
