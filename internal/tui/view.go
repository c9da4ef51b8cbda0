package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/JackRKennedy/terminal-typing/internal/session"
)

// View implements tea.Model.
func (m *Model) View() string {
	var content string
	switch m.state {
	case stateLoading:
		content = m.spin.View() + " fetching passage..."
	case stateFailed:
		content = m.viewFailed()
	case stateTyping:
		content = m.viewTyping()
	case stateDone:
		content = m.viewResult()
	}

	if m.width == 0 || m.height == 0 {
		return content
	}

	footer := m.renderFooter()
	if footer == "" || m.height < 3 {
		return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, content)
	}
	body := lipgloss.Place(m.width, m.height-1, lipgloss.Center, lipgloss.Center, content)
	footerLine := lipgloss.Place(m.width, 1, lipgloss.Center, lipgloss.Center, footer)
	return body + "\n" + footerLine
}

func (m *Model) viewFailed() string {
	lines := []string{
		errorStyle.Render("Content unavailable."),
		"",
		footerStyle.Render("tab/enter: retry · any other key: exit"),
	}
	return strings.Join(lines, "\n")
}

func (m *Model) viewTyping() string {
	var b strings.Builder
	if m.passage.Title != "" {
		b.WriteString(titleStyle.Render(m.passage.Title))
		if m.fromCache {
			b.WriteString(footerStyle.Render("  (cached)"))
		}
		b.WriteString("\n\n")
	}
	b.WriteString(renderLines(m.rec))
	return b.String()
}

// renderLines styles every passage character by its reconciliation
// mark, underlining the character under the cursor.
func renderLines(rec *session.Reconciler) string {
	lines := rec.Lines()
	curLine, curCol := rec.Cursor()

	var b strings.Builder
	for i, line := range lines {
		if i > 0 {
			b.WriteByte('\n')
		}
		for j, c := range []rune(line) {
			var style lipgloss.Style
			switch rec.MarkAt(i, j) {
			case session.MarkCorrect:
				style = correctStyle
			case session.MarkIncorrect:
				// The expected character stays on screen, highlighted
				// as an error; it is already underlined.
				style = incorrectStyle
			default:
				style = pendingStyle
				if i == curLine && j == curCol {
					style = cursorStyle
				}
			}
			b.WriteString(style.Render(string(c)))
		}
	}
	return b.String()
}

func (m *Model) renderFooter() string {
	switch m.state {
	case stateTyping:
		matched, total := m.rec.Progress()
		progress := 0
		if total > 0 {
			progress = matched * 100 / total
		}
		segments := []string{fmt.Sprintf("Progress %d%%", progress)}
		if m.rec.Started() {
			segments = append(segments, fmt.Sprintf("%.0fs", m.rec.Running().Seconds()))
		}
		segments = append(segments, "tab: new passage · esc: quit")
		return footerStyle.Render(strings.Join(segments, "  "))
	case stateDone:
		return footerStyle.Render("enter: new passage · esc: quit")
	default:
		return ""
	}
}

func (m *Model) viewResult() string {
	wpm := "n/a"
	if m.result.HasWPM {
		wpm = fmt.Sprintf("%.2f", m.result.WPM)
	}
	body := fmt.Sprintf(
		"%s\n\n%s %s\n%s %s\n%s %s\n%s %s",
		titleStyle.Render("Session complete"),
		resultLabelStyle.Render("Words:"),
		resultValueStyle.Render(fmt.Sprintf("%d", m.result.WordCount)),
		resultLabelStyle.Render("Time:"),
		resultValueStyle.Render(fmt.Sprintf("%.1fs", m.result.Elapsed.Seconds())),
		resultLabelStyle.Render("WPM:"),
		resultValueStyle.Render(wpm),
		resultLabelStyle.Render("Accuracy:"),
		resultValueStyle.Render(fmt.Sprintf("%.1f%%", m.result.Accuracy*100)),
	)
	return resultBoxStyle.Render(body)
}
