package tui

import (
	"errors"
	"strings"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/JackRKennedy/terminal-typing/internal/content"
	"github.com/JackRKennedy/terminal-typing/internal/model"
)

func newTestModel(passage string) *Model {
	return NewModel(model.Config{Passage: passage}, nil, nil)
}

func sendRunes(m *Model, s string) {
	for _, r := range s {
		if r == ' ' {
			m.Update(tea.KeyMsg{Type: tea.KeySpace})
			continue
		}
		m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{r}})
	}
}

func startTestSession(t *testing.T, m *Model, p model.Passage) {
	t.Helper()
	m.Update(passageMsg{passage: p})
	if m.state != stateTyping {
		t.Fatalf("expected typing state, got %d", m.state)
	}
}

func TestStartSessionWrapsPassage(t *testing.T) {
	m := newTestModel("")
	m.Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	startTestSession(t, m, model.Passage{Title: "Foxes", Body: "the quick brown fox"})

	lines := m.rec.Lines()
	if len(lines) != 2 {
		t.Fatalf("expected 2 wrapped lines at width 24, got %v", lines)
	}
	if lines[0] != "the quick" || lines[1] != "brown fox" {
		t.Fatalf("unexpected wrapping: %v", lines)
	}
}

func TestStartSessionNormalizesPassage(t *testing.T) {
	m := newTestModel("")
	startTestSession(t, m, model.Passage{Title: "Café", Body: "café naïve"})
	if m.body != "cafe naive" {
		t.Fatalf("body = %q, want normalized", m.body)
	}
}

func TestTypographicPassageIsCompletable(t *testing.T) {
	m := newTestModel("")
	startTestSession(t, m, model.Passage{Title: "Dates", Body: "1984–1991"})
	if m.body != "1984-1991" {
		t.Fatalf("body = %q, want dash transliterated", m.body)
	}
	sendRunes(m, "1984-1991")
	if m.state != stateDone {
		t.Fatalf("expected done state typing the ASCII form, got %d", m.state)
	}
}

func TestUntypeablePassageFailsBeforeReconciler(t *testing.T) {
	m := newTestModel("")
	m.Update(passageMsg{passage: model.Passage{Title: "Kanji", Body: "白鵬"}})
	if m.state != stateFailed {
		t.Fatalf("expected failed state for fully untypeable passage, got %d", m.state)
	}
}

func TestEmptyPassageFailsBeforeReconciler(t *testing.T) {
	m := newTestModel("")
	m.Update(passageMsg{passage: model.Passage{Title: "Blank", Body: "   "}})
	if m.state != stateFailed {
		t.Fatalf("expected failed state, got %d", m.state)
	}
	if !errors.Is(m.Err(), content.ErrUnavailable) {
		t.Fatalf("expected ErrUnavailable, got %v", m.Err())
	}
}

func TestTypingToCompletion(t *testing.T) {
	m := newTestModel("")
	startTestSession(t, m, model.Passage{Title: "Short", Body: "ab cd"})

	sendRunes(m, "ab cd")
	if m.state != stateDone {
		t.Fatalf("expected done state, got %d", m.state)
	}
	res, ok := m.Result()
	if !ok {
		t.Fatalf("expected a result")
	}
	if res.WordCount != 2 {
		t.Fatalf("WordCount = %d, want 2", res.WordCount)
	}
	if res.Correct != 5 || res.Incorrect != 0 {
		t.Fatalf("counters = (%d,%d), want (5,0)", res.Correct, res.Incorrect)
	}
}

func TestMistypeDoesNotComplete(t *testing.T) {
	m := newTestModel("")
	startTestSession(t, m, model.Passage{Title: "Short", Body: "ab"})

	sendRunes(m, "ax")
	if m.state != stateTyping {
		t.Fatalf("expected typing state after mismatch, got %d", m.state)
	}
	sendRunes(m, "b")
	if m.state != stateDone {
		t.Fatalf("expected done state, got %d", m.state)
	}
}

func TestReloadResetsSessionState(t *testing.T) {
	m := newTestModel("ab cd")
	startTestSession(t, m, model.Passage{Title: "Short", Body: "ab cd"})
	sendRunes(m, "ab")

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.state != stateLoading {
		t.Fatalf("expected loading state after reload, got %d", m.state)
	}
	if m.rec != nil {
		t.Fatalf("expected reconciler discarded on reload")
	}
	if cmd == nil {
		t.Fatalf("expected reload to issue a fetch command")
	}
}

func TestFailedStateRetryAndExit(t *testing.T) {
	m := newTestModel("")
	m.Update(fetchFailedMsg{err: content.ErrUnavailable})
	if m.state != stateFailed {
		t.Fatalf("expected failed state")
	}

	_, cmd := m.Update(tea.KeyMsg{Type: tea.KeyTab})
	if m.state != stateLoading {
		t.Fatalf("expected retry to re-enter loading state")
	}
	if cmd == nil {
		t.Fatalf("expected retry to issue a fetch command")
	}

	m.Update(fetchFailedMsg{err: content.ErrUnavailable})
	_, cmd = m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune{'q'}})
	if cmd == nil {
		t.Fatalf("expected any other key to quit the error display")
	}
}

func TestResizeRewrapsAndKeepsProgress(t *testing.T) {
	m := newTestModel("")
	m.Update(tea.WindowSizeMsg{Width: 24, Height: 10})
	startTestSession(t, m, model.Passage{Title: "Foxes", Body: "the quick brown fox"})
	sendRunes(m, "the quick")

	m.Update(tea.WindowSizeMsg{Width: 120, Height: 10})
	lines := m.rec.Lines()
	if len(lines) != 1 {
		t.Fatalf("expected a single line at width 120, got %v", lines)
	}
	matched, _ := m.rec.Progress()
	if matched != 9 {
		t.Fatalf("matched = %d after rewrap, want 9", matched)
	}
}

func TestLiteralPassageFetch(t *testing.T) {
	m := newTestModel("the quick brown fox")
	msg := m.fetchCmd()()
	p, ok := msg.(passageMsg)
	if !ok {
		t.Fatalf("expected passageMsg, got %T", msg)
	}
	if p.passage.Body != "the quick brown fox" {
		t.Fatalf("body = %q", p.passage.Body)
	}
}

func TestRenderFooterFormats(t *testing.T) {
	m := newTestModel("")
	startTestSession(t, m, model.Passage{Title: "Short", Body: "abcd"})
	sendRunes(m, "ab")

	out := m.renderFooter()
	if out == "" {
		t.Fatalf("expected footer output")
	}
	if !strings.Contains(out, "Progress 50%") {
		t.Fatalf("footer missing progress segment: %s", out)
	}
}
