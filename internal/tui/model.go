// Package tui provides the Bubble Tea typing interface.
package tui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/verte-zerg/typer/internal/log"
	"github.com/verte-zerg/typer/internal/session"
)

const (
	frameInterval = 100 * time.Millisecond
	maxPanelWidth = 62
)

const banner = `▀█▀ █▄█ █▀█ █▀▀ █▀█
 █   █  █▀▀ ██▄ █▀▄`

type tickMsg time.Time

// Model implements the Bubble Tea typing UI.
type Model struct {
	engine   *session.Engine
	logger   log.Logger
	keys     keyMap
	help     help.Model
	timerBar progress.Model

	width  int
	height int

	errMsg string
}

var (
	correctStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D"))
	incorrectStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Underline(true)
	pendingStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#8C8C8C")).Faint(true)
	cursorStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#000000")).Background(lipgloss.Color("#F0F0F0"))
	titleStyle     = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#F0F0F0"))
	panelStyle     = lipgloss.NewStyle().Border(lipgloss.ThickBorder()).Padding(0, 1)
	timerStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FADB14")).Bold(true)
	wpmStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#36CFC9")).Bold(true)
	accStyle       = lipgloss.NewStyle().Foreground(lipgloss.Color("#73D13D")).Bold(true)
	lineStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("#4096FF")).Bold(true)
	errorStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF4D4F")).Bold(true)
	mutedStyle     = lipgloss.NewStyle().Foreground(lipgloss.Color("#6E6E6E"))
)

// NewModel constructs a typing TUI model around an engine.
func NewModel(engine *session.Engine, logger log.Logger) *Model {
	if logger == nil {
		logger = log.Noop
	}
	return &Model{
		engine:   engine,
		logger:   logger.WithValues(log.Kv{"svc": "tui.Model"}),
		keys:     defaultKeyMap(),
		help:     help.New(),
		timerBar: progress.New(progress.WithDefaultGradient(), progress.WithoutPercentage()),
	}
}

// Init implements tea.Model.
func (m *Model) Init() tea.Cmd {
	return tick()
}

func tick() tea.Cmd {
	return tea.Tick(frameInterval, func(t time.Time) tea.Msg {
		return tickMsg(t)
	})
}

// Update implements tea.Model.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tickMsg:
		m.engine.Tick(m.engine.ElapsedAt(time.Time(msg)))
		return m, tick()
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil
	case tea.KeyMsg:
		return m, m.handleKey(msg)
	default:
		return m, nil
	}
}

func (m *Model) handleKey(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Quit):
		m.logger.Debugf("quit requested")
		return tea.Quit
	case key.Matches(msg, m.keys.Restart):
		m.restart()
		return nil
	case key.Matches(msg, m.keys.Backspace):
		m.engine.SubmitBackspace()
		return nil
	}

	if msg.Alt || msg.Paste {
		return nil
	}
	switch msg.Type {
	case tea.KeySpace:
		m.engine.SubmitChar(' ')
	case tea.KeyRunes:
		for _, r := range msg.Runes {
			m.engine.SubmitChar(r)
		}
	}
	return nil
}

func (m *Model) restart() {
	if err := m.engine.Restart(); err != nil {
		m.errMsg = fmt.Sprintf("restart failed: %v", err)
		m.logger.Errorf("could not restart: %v", err)
		return
	}
	m.errMsg = ""
	m.logger.Debugf("restarted as attempt %s", m.engine.AttemptID())
}

// View implements tea.Model.
func (m *Model) View() string {
	panelWidth := maxPanelWidth
	if m.width > 0 && m.width < panelWidth {
		panelWidth = m.width
	}
	contentWidth := max(panelWidth-4, 1)
	m.timerBar.Width = contentWidth
	m.help.Width = contentWidth

	sections := []string{
		titleStyle.Render(lipgloss.PlaceHorizontal(contentWidth, lipgloss.Center, banner)),
		"",
		m.renderText(contentWidth),
		"",
		mutedStyle.Render(strings.Repeat("─", contentWidth)),
		m.renderStats(),
		m.timerBar.ViewAs(m.timerPercent()),
	}
	if m.engine.State() == session.Ended {
		sections = append(sections, "", m.renderResults())
	}
	if m.errMsg != "" {
		sections = append(sections, "", errorStyle.Render(m.errMsg))
	}

	body := lipgloss.JoinVertical(lipgloss.Left, sections...)
	panel := panelStyle.Width(panelWidth - 2).Render(body)
	helpLine := lipgloss.PlaceHorizontal(panelWidth, lipgloss.Center, m.help.View(m.keys))
	view := lipgloss.JoinVertical(lipgloss.Left, panel, helpLine)
	if m.width == 0 || m.height == 0 {
		return view
	}
	return lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Top, view)
}

func (m *Model) renderText(width int) string {
	window := []rune(m.engine.VisibleWindow())
	if len(window) == 0 {
		return mutedStyle.Render("No text left. Press ctrl+r for a new one.")
	}
	return wrapStyledRunes(buildStyledRunes(window, m.engine.Classes()), width)
}

func (m *Model) renderStats() string {
	metrics := m.engine.Metrics()
	line, shown := m.engine.Progress()
	segments := []string{
		"⏱ " + timerStyle.Render(fmt.Sprintf("%02d/%d", m.engine.Timer(), m.engine.TimeLimit())),
		"⚡ " + wpmStyle.Render(fmt.Sprintf("%d", int(metrics.WPM))) + " WPM",
		"✓ " + accStyle.Render(fmt.Sprintf("%d%%", int(metrics.Accuracy))),
		lineStyle.Render(fmt.Sprintf("Line %d/%d", line, shown)),
	}
	return strings.Join(segments, "   ")
}

func (m *Model) renderResults() string {
	return fmt.Sprintf("Final Results - Errors: %s  Words: %s",
		errorStyle.Render(fmt.Sprintf("%d", m.engine.Errors())),
		accStyle.Render(fmt.Sprintf("%d", m.engine.WordsTyped())),
	)
}

func (m *Model) timerPercent() float64 {
	limit := m.engine.TimeLimit()
	if limit <= 0 {
		return 0
	}
	return float64(m.engine.Timer()) / float64(limit)
}
