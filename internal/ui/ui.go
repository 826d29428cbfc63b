// Package ui provides the terminal user interface using Bubble Tea.
package ui

import (
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-hora/internal/state"
	"github.com/litescript/ls-hora/internal/version"
)

// ViewMode represents the current UI view.
type ViewMode int

const (
	ViewSignals ViewMode = iota
	ViewSchedule
	ViewPlanner
	ViewNews
)

const viewCount = 4

// Msg types for Bubble Tea
type (
	// TickMsg triggers periodic UI updates.
	TickMsg time.Time

	// AnimTickMsg triggers fast animation updates.
	AnimTickMsg time.Time

	// DataUpdateMsg signals a new evaluation or news result is available.
	DataUpdateMsg struct {
		Snapshot state.Snapshot
	}

	// ErrorMsg signals an evaluation error.
	ErrorMsg struct {
		Error error
	}
)

// Option configures the root model.
type Option func(*Model)

// WithRefresh sets the callback run when the user presses r. It must not
// block; the fetch loop reports the result through DataUpdateMsg.
func WithRefresh(fn func()) Option {
	return func(m *Model) {
		m.refresh = fn
	}
}

// Model is the root Bubble Tea model.
type Model struct {
	state   *state.Manager
	refresh func()

	viewMode  ViewMode
	width     int
	height    int
	ready     bool
	statusMsg string
	animTick  int

	signals  SignalsModel
	schedule ScheduleModel
	planner  PlannerModel
	news     NewsModel

	snapshot state.Snapshot
}

// New creates a new root UI model.
func New(stateMgr *state.Manager, opts ...Option) Model {
	m := Model{
		state:    stateMgr,
		viewMode: ViewSignals,
		signals:  NewSignalsModel(),
		schedule: NewScheduleModel(),
		planner:  NewPlannerModel(),
		news:     NewNewsModel(),
	}
	for _, opt := range opts {
		opt(&m)
	}
	if stateMgr != nil && stateMgr.HasData() {
		m = m.applySnapshot(stateMgr.Snapshot())
	}
	return m
}

// Init implements tea.Model.
func (m Model) Init() tea.Cmd {
	return tea.Batch(tickCmd(), animTickCmd())
}

// Update implements tea.Model.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c":
			return m, tea.Quit

		case "1":
			m.viewMode = ViewSignals
		case "2":
			m.viewMode = ViewSchedule
		case "3":
			m.viewMode = ViewPlanner
		case "4":
			m.viewMode = ViewNews

		case "tab":
			m.viewMode = (m.viewMode + 1) % viewCount
		case "shift+tab":
			m.viewMode = (m.viewMode + viewCount - 1) % viewCount

		case "r":
			if m.refresh != nil {
				m.statusMsg = "Refreshing..."
				fn := m.refresh
				cmds = append(cmds, func() tea.Msg {
					fn()
					return nil
				})
			}

		default:
			cmds = append(cmds, m.updateActiveView(msg))
		}

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true

		// Logo, tabs and footer take about ten lines
		contentHeight := msg.Height - 10
		m.signals = m.signals.SetSize(msg.Width, contentHeight)
		m.schedule = m.schedule.SetSize(msg.Width, contentHeight)
		m.planner = m.planner.SetSize(msg.Width, contentHeight)
		m.news = m.news.SetSize(msg.Width, contentHeight)

	case TickMsg:
		cmds = append(cmds, tickCmd())

	case AnimTickMsg:
		cmds = append(cmds, animTickCmd())
		m.animTick++

	case DataUpdateMsg:
		m.statusMsg = ""
		m = m.applySnapshot(msg.Snapshot)

	case ErrorMsg:
		m.statusMsg = ""
		m.signals = m.signals.SetError(msg.Error)

	default:
		cmds = append(cmds, m.updateActiveView(msg))
	}

	return m, tea.Batch(cmds...)
}

func (m Model) applySnapshot(snap state.Snapshot) Model {
	m.snapshot = snap
	m.signals = m.signals.UpdateData(snap).SetError(snap.LastError)
	m.schedule = m.schedule.UpdateData(snap)
	m.planner = m.planner.UpdateData(snap)
	m.news = m.news.UpdateData(snap)
	return m
}

func (m *Model) updateActiveView(msg tea.Msg) tea.Cmd {
	var cmd tea.Cmd
	switch m.viewMode {
	case ViewSignals:
		m.signals, cmd = m.signals.Update(msg)
	case ViewSchedule:
		m.schedule, cmd = m.schedule.Update(msg)
	case ViewPlanner:
		m.planner, cmd = m.planner.Update(msg)
	case ViewNews:
		m.news, cmd = m.news.Update(msg)
	}
	return cmd
}

// ViewMode returns the active tab.
func (m Model) ViewMode() ViewMode {
	return m.viewMode
}

// View implements tea.Model.
func (m Model) View() string {
	if !m.ready {
		return "Initializing..."
	}

	var content string
	switch m.viewMode {
	case ViewSignals:
		content = m.signals.View()
	case ViewSchedule:
		content = m.schedule.View()
	case ViewPlanner:
		content = m.planner.View()
	case ViewNews:
		content = m.news.View()
	}

	return m.renderFrame(content)
}

func (m Model) renderFrame(content string) string {
	return m.renderLogo() + m.renderTabs() + "\n\n" + content + "\n" + m.renderFooter()
}

func (m Model) renderLogo() string {
	logo := []string{
		`  ╦  ╔═╗   ╦ ╦╔═╗╦═╗╔═╗`,
		`  ║  ╚═╗───╠═╣║ ║╠╦╝╠═╣`,
		`  ╩═╝╚═╝   ╩ ╩╚═╝╩╚═╩ ╩`,
	}

	var b strings.Builder
	b.WriteString("\n")
	for row, line := range logo {
		runes := []rune(line)
		for col, r := range runes {
			color := gradientColor(col, row, len(runes), len(logo))
			b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(r)))
		}
		b.WriteString("\n")
	}

	b.WriteString(dimStyle.Render(fmt.Sprintf("  Planetary Hours · Index Scalping Signals | v%s", version.Version)))
	b.WriteString("\n\n")
	return b.String()
}

// gradientColor returns a hex colour for a position in the logo: saffron
// through gold to green, darker toward the bottom row.
func gradientColor(col, row, width, height int) string {
	xRatio := float64(col) / float64(width)
	yRatio := float64(row) / float64(height)

	var r, g, b float64
	if xRatio < 0.5 {
		t := xRatio / 0.5
		r = 255
		g = 153 + t*(215-153)
		b = 51 + t*(0-51)
	} else {
		t := (xRatio - 0.5) / 0.5
		r = 255 + t*(0-255)
		g = 215 + t*(255-215)
		b = t * 163
	}

	f := 1.0 - yRatio*0.4
	return fmt.Sprintf("#%02X%02X%02X", clampByte(r*f), clampByte(g*f), clampByte(b*f))
}

func clampByte(v float64) int {
	switch {
	case v < 0:
		return 0
	case v > 255:
		return 255
	default:
		return int(v)
	}
}

func (m Model) renderTabs() string {
	tabs := []string{"[1] Signals", "[2] Schedule", "[3] Planner", "[4] News"}
	activeStyle := lipgloss.NewStyle().Foreground(colorAccent).Bold(true)

	parts := make([]string, 0, len(tabs))
	for i, tab := range tabs {
		if ViewMode(i) == m.viewMode {
			parts = append(parts, activeStyle.Render("▶ "+tab))
		} else {
			parts = append(parts, dimStyle.Render("  "+tab))
		}
	}
	return "  " + strings.Join(parts, "  ")
}

func (m Model) renderFooter() string {
	spinnerFrames := []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}
	spinner := spinnerFrames[m.animTick%len(spinnerFrames)]
	accent := lipgloss.NewStyle().Foreground(colorAccent)

	var status string
	switch {
	case m.snapshot.LastError != nil:
		status = errorStyle.Render("ERROR: " + m.snapshot.LastError.Error())
	case !m.snapshot.LastUpdate.IsZero():
		status = accent.Render(spinner) + dimStyle.Render(fmt.Sprintf(" refresh in %ds", m.secondsToRefresh(time.Now())))
		if m.snapshot.EvalDuration > 0 {
			status += dimStyle.Render(" (" + m.snapshot.EvalDuration.Round(time.Millisecond).String() + ")")
		}
	default:
		status = accent.Render(spinner) + " " + m.renderShimmerText("Computing horas...")
	}

	var help string
	switch m.viewMode {
	case ViewSchedule:
		help = "↑↓: select slot | r: refresh"
	case ViewPlanner:
		help = "←/→: index | r: refresh"
	case ViewNews:
		help = "↑↓: scroll | r: refresh"
	default:
		help = "a: astro details | tab: switch view | r: refresh"
	}

	footer := "  " + status + "  " + dimStyle.Render("|") + "  " + dimStyle.Render(help)
	if m.statusMsg != "" {
		footer += "\n  " + dimStyle.Render(m.statusMsg)
	}
	return footer
}

// secondsToRefresh is the countdown to the next scheduled evaluation.
func (m Model) secondsToRefresh(now time.Time) int {
	interval := state.DefaultConfig().RefreshInterval
	if m.state != nil {
		interval = m.state.RefreshInterval()
	}
	left := m.snapshot.LastUpdate.Add(interval).Sub(now).Round(time.Second)
	if left < 0 {
		return 0
	}
	return int(left.Seconds())
}

func tickCmd() tea.Cmd {
	return tea.Tick(500*time.Millisecond, func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}

func animTickCmd() tea.Cmd {
	return tea.Tick(80*time.Millisecond, func(t time.Time) tea.Msg {
		return AnimTickMsg(t)
	})
}

// SendDataUpdate creates a command that sends a data update message.
func SendDataUpdate(snapshot state.Snapshot) tea.Cmd {
	return func() tea.Msg {
		return DataUpdateMsg{Snapshot: snapshot}
	}
}

// SendError creates a command that sends an error message.
func SendError(err error) tea.Cmd {
	return func() tea.Msg {
		return ErrorMsg{Error: err}
	}
}

// renderShimmerText renders text with a light sweeping across it.
func (m Model) renderShimmerText(text string) string {
	runes := []rune(text)
	if len(runes) == 0 {
		return ""
	}

	pos := m.animTick % (len(runes) + 8)

	var out strings.Builder
	for i, r := range runes {
		dist := i - pos + 4
		if dist < 0 {
			dist = -dist
		}

		var hex string
		switch {
		case dist <= 1:
			hex = "#FFD9A0"
		case dist <= 3:
			hex = "#E0A860"
		case dist <= 5:
			hex = "#B07A40"
		default:
			hex = "#7A5A38"
		}
		out.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color(hex)).Render(string(r)))
	}
	return out.String()
}
