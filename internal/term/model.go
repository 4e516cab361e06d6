package term

import (
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"wodtimer/internal/core/model"
	"wodtimer/internal/core/timekeeper"
	"wodtimer/internal/core/workout"
)

type roundCounter interface {
	IncrementRound() bool
	DecrementRound() bool
}

type completer interface {
	MarkComplete() bool
}

// Session is one controller plus its mode-specific actions.
type Session struct {
	Controller *workout.Controller
	rounds     roundCounter
	complete   completer
}

// NewSession creates the controller for mode.
func NewSession(mode model.Mode, deps workout.Dependencies) (*Session, bool) {
	switch mode {
	case model.ModeAMRAP:
		amrap := workout.NewAMRAP(deps)
		return &Session{Controller: amrap.Controller, rounds: amrap}, true
	case model.ModeEMOM:
		return &Session{Controller: workout.NewEMOM(deps).Controller}, true
	case model.ModeForTime:
		forTime := workout.NewForTime(deps)
		return &Session{Controller: forTime.Controller, complete: forTime}, true
	}
	return nil, false
}

// eventMsg carries a controller event into the update loop.
type eventMsg workout.Event

// closedMsg reports that the controller closed its event channel.
type closedMsg struct{}

func waitForEvent(events <-chan workout.Event) tea.Cmd {
	return func() tea.Msg {
		event, ok := <-events
		if !ok {
			return closedMsg{}
		}
		return eventMsg(event)
	}
}

// Model is the bubbletea model running a single workout.
type Model struct {
	session   *Session
	events    <-chan workout.Event
	styles    Styles
	snapshot  workout.Snapshot
	// refreshed is when a key press last read the snapshot directly.
	refreshed time.Time
	lastCue   model.Cue
	width     int
	quitting  bool
}

// NewModel subscribes to the session controller.
func NewModel(session *Session, styles Styles) *Model {
	return &Model{
		session:  session,
		events:   session.Controller.Subscribe(64),
		styles:   styles,
		snapshot: session.Controller.Snapshot(),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return waitForEvent(m.events)
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case eventMsg:
		if !msg.At.Before(m.refreshed) {
			m.snapshot = msg.Snapshot
		}
		if msg.Type == workout.EventCue {
			m.lastCue = msg.Cue
		}
		return m, waitForEvent(m.events)

	case closedMsg:
		m.quitting = true
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	controller := m.session.Controller
	switch msg.String() {
	case "q", "esc", "ctrl+c":
		m.quitting = true
		return m, tea.Quit
	case " ", "s":
		switch m.snapshot.Phase {
		case workout.PhaseConfiguring, workout.PhaseFinished:
			controller.Start()
		case workout.PhaseActive:
			controller.TogglePause()
		}
	case "r":
		controller.Reset()
	case "+", "=":
		if m.session.rounds != nil {
			m.session.rounds.IncrementRound()
		}
	case "-":
		if m.session.rounds != nil {
			m.session.rounds.DecrementRound()
		}
	case "c":
		if m.session.complete != nil {
			m.session.complete.MarkComplete()
		}
	default:
		return m, nil
	}
	m.refreshed = time.Now()
	m.snapshot = controller.Snapshot()
	return m, nil
}

// View implements tea.Model.
func (m *Model) View() string {
	if m.quitting {
		return ""
	}
	snapshot := m.snapshot

	clock := m.styles.Clock
	switch {
	case snapshot.InCountdown:
		clock = m.styles.Countdown
	case snapshot.Phase == workout.PhaseFinished:
		clock = m.styles.Done
	case snapshot.Status == timekeeper.StatusPaused:
		clock = m.styles.Paused
	}

	lines := []string{
		m.styles.Title.Render(snapshot.Mode.Title()),
		m.styles.Subtitle.Render(snapshot.Mode.Description()),
		"",
	}
	if headline := snapshot.Headline(); headline != "" {
		lines = append(lines, m.styles.Headline.Render(headline))
	}
	lines = append(lines, clock.Render(snapshot.Display))
	if m.lastCue != "" {
		lines = append(lines, m.styles.Cue.Render("♪ "+cueLabel(m.lastCue)))
	}

	body := m.styles.Panel.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
	return lipgloss.JoinVertical(lipgloss.Left, body, m.help())
}

func (m *Model) help() string {
	bindings := [][2]string{{"space", m.primaryAction()}, {"r", "reset"}}
	if m.session.rounds != nil {
		bindings = append(bindings, [2]string{"+/-", "rounds"})
	}
	if m.session.complete != nil {
		bindings = append(bindings, [2]string{"c", "complete"})
	}
	bindings = append(bindings, [2]string{"q", "quit"})

	parts := make([]string, 0, len(bindings))
	for _, binding := range bindings {
		parts = append(parts, m.styles.KeyBinding.Render(binding[0])+" "+m.styles.KeyHint.Render(binding[1]))
	}
	return m.styles.Footer.Render(strings.Join(parts, "  "))
}

func (m *Model) primaryAction() string {
	switch {
	case m.snapshot.Phase == workout.PhaseConfiguring:
		return "start"
	case m.snapshot.Status == timekeeper.StatusPaused:
		return "resume"
	case m.snapshot.InCountdown:
		return "-"
	}
	return "pause"
}

func cueLabel(cue model.Cue) string {
	switch cue {
	case model.CueStart:
		return "go"
	case model.CueHalfway:
		return "halfway"
	case model.CueTenSecondsLeft:
		return "10 seconds left"
	case model.CueComplete:
		return "time"
	}
	return string(cue)
}
