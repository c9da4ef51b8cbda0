// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"context"
	"fmt"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/JackRKennedy/terminal-typing/internal/content"
	"github.com/JackRKennedy/terminal-typing/internal/model"
	"github.com/JackRKennedy/terminal-typing/internal/session"
	"github.com/JackRKennedy/terminal-typing/internal/store"
	"github.com/JackRKennedy/terminal-typing/internal/textnorm"
	"github.com/JackRKennedy/terminal-typing/internal/wrap"
)

type sessionState int

const (
	stateLoading sessionState = iota
	stateTyping
	stateDone
	stateFailed
)

const fallbackWidth = 80

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#F0F0F0"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	cursorStyle    = pendingStyle.Copy().Underline(true)
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#C89A3A"))
	footerStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F"))
	resultBoxStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#C89A3A")).
			Padding(1, 3)
	resultLabelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C"))
	resultValueStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
)

// Model implements the Bubble Tea session controller: it fetches a
// passage, runs the reconciler until completion or reload, and shows
// the result. Restart is a transition back to the loading state, never
// a nested run.
type Model struct {
	config  model.Config
	fetcher *content.Fetcher
	cache   *store.Store

	state sessionState
	spin  spinner.Model

	width  int
	height int

	passage   model.Passage
	body      string
	fromCache bool
	rec       *session.Reconciler

	result model.Result
	err    error
}

type passageMsg struct {
	passage   model.Passage
	fromCache bool
}

type fetchFailedMsg struct {
	err error
}

type tickMsg time.Time

// NewModel constructs the session controller. The cache may be nil.
func NewModel(cfg model.Config, fetcher *content.Fetcher, cache *store.Store) *Model {
	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle
	return &Model{
		config:  cfg,
		fetcher: fetcher,
		cache:   cache,
		state:   stateLoading,
		spin:    sp,
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *Model) fetchCmd() tea.Cmd {
	cfg := m.config
	fetcher := m.fetcher
	cache := m.cache
	return func() tea.Msg {
		if cfg.Passage != "" {
			return passageMsg{passage: model.Passage{Title: "Practice", Body: cfg.Passage}}
		}

		ctx := context.Background()
		var fetchErr error
		if !cfg.Offline {
			p, err := fetcher.FetchPassage(ctx)
			if err == nil {
				if cache != nil {
					if _, serr := cache.SavePassage(ctx, p, "wikipedia"); serr != nil {
						// Cache writes are best-effort.
						_ = serr
					}
				}
				return passageMsg{passage: p}
			}
			fetchErr = err
		}

		if cache != nil {
			p, err := cache.RandomPassage(ctx)
			if err == nil {
				return passageMsg{passage: p, fromCache: true}
			}
			if fetchErr == nil {
				fetchErr = err
			}
		}
		if fetchErr == nil {
			fetchErr = fmt.Errorf("%w: offline and no cached passages", content.ErrUnavailable)
		}
		return fetchFailedMsg{err: fetchErr}
	}
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.rewrap()
		return m, nil
	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd
	case tickMsg:
		if m.state != stateTyping {
			return m, nil
		}
		return m, tickCmd()
	case passageMsg:
		return m, m.startSession(msg)
	case fetchFailedMsg:
		m.state = stateFailed
		m.err = msg.err
		return m, nil
	case tea.KeyMsg:
		return m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) startSession(msg passageMsg) tea.Cmd {
	body := textnorm.Typeable(msg.passage.Body)
	lines := m.wrapLines(body)
	rec, err := session.NewReconciler(lines)
	if err != nil {
		m.state = stateFailed
		m.err = fmt.Errorf("%w: passage is empty", content.ErrUnavailable)
		return nil
	}
	m.passage = msg.passage
	m.body = body
	m.fromCache = msg.fromCache
	m.rec = rec
	m.state = stateTyping
	return tickCmd()
}

// reload discards the session and re-enters the loading state.
func (m *Model) reload() tea.Cmd {
	m.state = stateLoading
	m.rec = nil
	m.err = nil
	m.result = model.Result{}
	return tea.Batch(m.spin.Tick, m.fetchCmd())
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if msg.Type == tea.KeyCtrlC {
		return m, tea.Quit
	}

	switch m.state {
	case stateLoading:
		if msg.Type == tea.KeyEsc {
			return m, tea.Quit
		}
		return m, nil
	case stateFailed:
		switch msg.Type {
		case tea.KeyTab, tea.KeyEnter:
			return m, m.reload()
		default:
			// Any other key leaves the error display.
			return m, tea.Quit
		}
	case stateDone:
		switch msg.Type {
		case tea.KeyTab, tea.KeyEnter:
			return m, m.reload()
		case tea.KeyEsc:
			return m, tea.Quit
		default:
			return m, nil
		}
	case stateTyping:
		return m.handleTypingKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleTypingKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.Type {
	case tea.KeyEsc:
		return m, tea.Quit
	case tea.KeyTab:
		return m, m.reload()
	case tea.KeyBackspace, tea.KeyDelete:
		m.rec.Backspace()
		return m, nil
	case tea.KeySpace:
		m.keyPress(' ')
		return m, nil
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			if m.keyPress(r) {
				break
			}
		}
		return m, nil
	default:
		return m, nil
	}
}

// keyPress feeds one rune to the reconciler; it reports completion.
func (m *Model) keyPress(r rune) bool {
	if m.rec.KeyPress(r) != session.OutcomeComplete {
		return false
	}
	elapsed, err := m.rec.Elapsed()
	if err != nil {
		// Unreachable after completion; fail the session rather than panic.
		m.state = stateFailed
		m.err = err
		return true
	}
	correct, incorrect := m.rec.Counters()
	m.result = session.BuildResult(m.body, elapsed, correct, incorrect)
	m.state = stateDone
	return true
}

// rewrap rebinds the reconciler to the new terminal width, carrying the
// matched progress forward.
func (m *Model) rewrap() {
	if m.state != stateTyping || m.rec == nil {
		return
	}
	lines := m.wrapLines(m.body)
	if len(lines) == 0 {
		return
	}
	if err := m.rec.Rewrap(lines); err != nil {
		// An empty line set is rejected above; nothing else can fail.
		_ = err
	}
}

func (m *Model) wrapLines(body string) []string {
	width := m.width
	if width <= 0 {
		width = fallbackWidth
	}
	margin := m.config.Margin
	if margin <= 0 {
		margin = wrap.Margin
	}
	return wrap.WrapWidth(body, wrap.EffectiveWidth(width, margin))
}

// Result returns the result of a completed session.
func (m *Model) Result() (model.Result, bool) {
	return m.result, m.state == stateDone
}

// Err exposes the failure shown in the error state, if any.
func (m *Model) Err() error {
	return m.err
}
