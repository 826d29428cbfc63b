package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/market"
	"github.com/litescript/ls-hora/internal/state"
)

// Column widths for the schedule table.
const (
	colTime    = 21
	colPlanet  = 9
	colLuck    = 9
	colRahu    = 7
	colStatus  = 28
	colExplain = 28
)

// ScheduleModel is the full hora table for the trading day.
type ScheduleModel struct {
	width    int
	height   int
	cursor   int
	snapshot state.Snapshot
}

// NewScheduleModel creates a new schedule view.
func NewScheduleModel() ScheduleModel {
	return ScheduleModel{}
}

// SetSize updates the viewport size.
func (m ScheduleModel) SetSize(width, height int) ScheduleModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data. The cursor jumps to the live
// slot when there is one.
func (m ScheduleModel) UpdateData(snapshot state.Snapshot) ScheduleModel {
	m.snapshot = snapshot
	rows := m.rows()
	for i, r := range rows {
		if r.Active {
			m.cursor = i
			return m
		}
	}
	if m.cursor >= len(rows) {
		m.cursor = max(len(rows)-1, 0)
	}
	return m
}

// Cursor returns the selected row index.
func (m ScheduleModel) Cursor() int {
	return m.cursor
}

func (m ScheduleModel) rows() []engine.Row {
	if m.snapshot.Evaluation == nil {
		return nil
	}
	return m.snapshot.Evaluation.Rows
}

// Update handles messages.
func (m ScheduleModel) Update(msg tea.Msg) (ScheduleModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.rows())
	switch key.String() {
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < n-1 {
			m.cursor++
		}
	case "home":
		m.cursor = 0
	case "end":
		if n > 0 {
			m.cursor = n - 1
		}
	}
	return m, nil
}

// View renders the schedule table.
func (m ScheduleModel) View() string {
	ev := m.snapshot.Evaluation
	if ev == nil {
		return "Computing schedule...\n"
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("Hora Schedule: " + viewTitle(ev)))
	b.WriteString("\n")
	b.WriteString(mutedStyle.Render(fmt.Sprintf("Sunrise %s | Sunset %s | Rahu Kaal %s - %s | Day Lord %s",
		ev.Schedule.Sunrise.Format("03:04 PM"), ev.Schedule.Sunset.Format("03:04 PM"),
		ev.Schedule.Rahu.Start.Format("03:04 PM"), ev.Schedule.Rahu.End.Format("03:04 PM"),
		ev.Schedule.DayLord)))
	b.WriteString("\n\n")

	header := cell("Time", colTime) + " " + cell("Planet", colPlanet) + " " + cell("Luck", colLuck) + " " +
		cell("Rahu", colRahu) + " " + cell("Status", colStatus) + " " + cell("Explanation", colExplain)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	if len(ev.Rows) == 0 {
		b.WriteString(mutedStyle.Render("  No horas fall inside market hours"))
		b.WriteString("\n")
		return b.String()
	}

	for i, r := range ev.Rows {
		b.WriteString(m.renderRow(i, r))
		b.WriteString("\n")
	}
	return b.String()
}

func (m ScheduleModel) renderRow(i int, r engine.Row) string {
	switch {
	case i == m.cursor:
		return selectedRowStyle.Render(plainRow(r))
	case r.Past:
		return pastRowStyle.Render(plainRow(r))
	}

	status := lipgloss.NewStyle().Foreground(statusColor(r.Status.Kind))
	if r.Active {
		status = status.Bold(true)
	}
	return rowStyle.Render(cell(market.FormatSpan(r.Slot), colTime)) + " " +
		rowStyle.Render(cell(string(r.Slot.Planet), colPlanet)) + " " +
		luckStyle(r.Luck).Render(cell(r.Luck.Display(), colLuck)) + " " +
		rowStyle.Render(cell(r.RahuMark(), colRahu)) + " " +
		status.Render(cell(r.Label(), colStatus)) + " " +
		mutedStyle.Render(cell(r.Status.Explanation, colExplain))
}

func plainRow(r engine.Row) string {
	return cell(market.FormatSpan(r.Slot), colTime) + " " +
		cell(string(r.Slot.Planet), colPlanet) + " " +
		cell(r.Luck.Display(), colLuck) + " " +
		cell(r.RahuMark(), colRahu) + " " +
		cell(r.Label(), colStatus) + " " +
		cell(r.Status.Explanation, colExplain)
}
