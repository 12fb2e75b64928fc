package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"pomosync/internal/model"
	"pomosync/internal/service"
)

const pollInterval = time.Second

type stateMsg struct {
	state *service.StateView
}

type errMsg struct {
	err error
}

type tickMsg time.Time

type styles struct {
	title   lipgloss.Style
	focus   lipgloss.Style
	rest    lipgloss.Style
	clock   lipgloss.Style
	muted   lipgloss.Style
	err     lipgloss.Style
	checked lipgloss.Style
}

func newStyles() styles {
	return styles{
		title:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205")),
		focus:   lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("203")),
		rest:    lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("78")),
		clock:   lipgloss.NewStyle().Bold(true).Padding(0, 2).Border(lipgloss.RoundedBorder()),
		muted:   lipgloss.NewStyle().Foreground(lipgloss.Color("241")),
		err:     lipgloss.NewStyle().Foreground(lipgloss.Color("196")),
		checked: lipgloss.NewStyle().Strikethrough(true).Foreground(lipgloss.Color("241")),
	}
}

// Model renders the server's timer and forwards key presses as commands.
type Model struct {
	api    API
	state  *service.StateView
	err    error
	styles styles
	width  int
}

func NewModel(api API) Model {
	return Model{api: api, styles: newStyles()}
}

func (m Model) Init() tea.Cmd {
	return tea.Batch(m.fetchCmd(), tickEvery(pollInterval))
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case stateMsg:
		m.state = msg.state
		m.err = nil
		return m, nil

	case errMsg:
		m.err = msg.err
		return m, nil

	case tickMsg:
		return m, tea.Batch(m.fetchCmd(), tickEvery(pollInterval))
	}
	return m, nil
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m, tea.Quit
	case " ", "space":
		return m, m.commandCmd("/api/timer/toggle", nil)
	case "r":
		return m, m.commandCmd("/api/timer/reset", nil)
	case "s":
		return m, m.commandCmd("/api/timer/skip", nil)
	case "m":
		next, ok := m.nextMode()
		if !ok {
			return m, nil
		}
		return m, m.commandCmd("/api/timer/mode", map[string]string{"mode": next})
	}
	return m, nil
}

// nextMode cycles through the server's modes in order.
func (m Model) nextMode() (string, bool) {
	if m.state == nil || len(m.state.Modes) == 0 {
		return "", false
	}
	modes := m.state.Modes
	for i, mode := range modes {
		if mode.Key == m.state.Timer.Mode {
			return modes[(i+1)%len(modes)].Key, true
		}
	}
	return modes[0].Key, true
}

func (m Model) View() string {
	var b strings.Builder
	b.WriteString(m.styles.title.Render("pomosync"))
	b.WriteString("\n\n")

	if m.state == nil {
		if m.err != nil {
			b.WriteString(m.styles.err.Render(m.err.Error()))
		} else {
			b.WriteString(m.styles.muted.Render("connecting..."))
		}
		b.WriteString("\n")
		return b.String()
	}

	timer := m.state.Timer
	phase := m.styles.focus.Render("FOCUS")
	if timer.Phase == model.PhaseBreak {
		phase = m.styles.rest.Render("BREAK")
	}
	fmt.Fprintf(&b, "%s  %s  %s\n", phase, timer.Status, m.styles.muted.Render(timer.Mode))
	b.WriteString(m.styles.clock.Render(timer.Display))
	b.WriteString("\n")
	b.WriteString(progressBar(timer.Progress, 30))
	fmt.Fprintf(&b, "  cycles %d\n\n", timer.Cycles)

	stats := m.state.Stats
	fmt.Fprintf(&b, "tasks %d  pomodoros %d  focus %dm  break %dm\n\n",
		stats.CompletedTasks, stats.CompletedPomodoros, stats.FocusMinutes, stats.BreakMinutes)

	for _, goal := range m.state.Goals {
		line := fmt.Sprintf("%s (%d/%d)", goal.Title, goal.DonePomodoros, goal.PlannedPomodoros)
		if goal.Checked {
			b.WriteString("[x] " + m.styles.checked.Render(line))
		} else {
			b.WriteString("[ ] " + line)
		}
		b.WriteString("\n")
	}
	if len(m.state.Goals) > 0 {
		b.WriteString("\n")
	}

	if m.err != nil {
		b.WriteString(m.styles.err.Render(m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(m.styles.muted.Render("space start/pause  r reset  s skip  m mode  q quit"))
	b.WriteString("\n")
	return b.String()
}

func progressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	}
	if progress > 1 {
		progress = 1
	}
	filled := int(progress * float64(width))
	return "[" + strings.Repeat("#", filled) + strings.Repeat("-", width-filled) + "]"
}

func (m Model) fetchCmd() tea.Cmd {
	api := m.api
	return func() tea.Msg {
		state, err := api.State(context.Background())
		if err != nil {
			return errMsg{err: err}
		}
		return stateMsg{state: state}
	}
}

func (m Model) commandCmd(path string, body interface{}) tea.Cmd {
	api := m.api
	return func() tea.Msg {
		state, err := api.Command(context.Background(), path, body)
		if err != nil {
			return errMsg{err: err}
		}
		return stateMsg{state: state}
	}
}

func tickEvery(d time.Duration) tea.Cmd {
	return tea.Tick(d, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Run starts the terminal client against baseURL.
func Run(baseURL string) error {
	program := tea.NewProgram(NewModel(NewClient(baseURL)), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
