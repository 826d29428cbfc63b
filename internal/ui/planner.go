package ui

import (
	"fmt"
	"strings"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/litescript/ls-hora/internal/engine"
	"github.com/litescript/ls-hora/internal/market"
	"github.com/litescript/ls-hora/internal/state"
)

// PlannerModel shows the actionable slots for one index at a time.
type PlannerModel struct {
	width    int
	height   int
	selected int
	snapshot state.Snapshot
}

// NewPlannerModel creates a new planner view.
func NewPlannerModel() PlannerModel {
	return PlannerModel{}
}

// SetSize updates the viewport size.
func (m PlannerModel) SetSize(width, height int) PlannerModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m PlannerModel) UpdateData(snapshot state.Snapshot) PlannerModel {
	m.snapshot = snapshot
	if n := len(m.plans()); m.selected >= n {
		m.selected = 0
	}
	return m
}

// Selected returns the name of the index on screen, or "" with no data.
func (m PlannerModel) Selected() string {
	plans := m.plans()
	if len(plans) == 0 {
		return ""
	}
	return plans[m.selected].Index.Name
}

func (m PlannerModel) plans() []engine.IndexPlan {
	if m.snapshot.Evaluation == nil {
		return nil
	}
	return m.snapshot.Evaluation.Plans
}

// Update handles messages.
func (m PlannerModel) Update(msg tea.Msg) (PlannerModel, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	n := len(m.plans())
	if n == 0 {
		return m, nil
	}
	switch key.String() {
	case "left", "h":
		m.selected = (m.selected + n - 1) % n
	case "right", "l":
		m.selected = (m.selected + 1) % n
	}
	return m, nil
}

// View renders the planner for the selected index.
func (m PlannerModel) View() string {
	plans := m.plans()
	if len(plans) == 0 {
		return "Computing schedule...\n"
	}

	var b strings.Builder
	b.WriteString(m.renderSelector(plans))
	b.WriteString("\n\n")

	plan := plans[m.selected]
	b.WriteString(titleStyle.Render(fmt.Sprintf("%s Planner: %s", plan.Index.Name, viewTitle(m.snapshot.Evaluation))))
	b.WriteString("\n")

	if len(plan.Entries) == 0 {
		b.WriteString(mutedStyle.Render("  No clear signals for this index today."))
		b.WriteString("\n")
		return b.String()
	}

	header := cell("Time", 21) + " " + cell("Hora", 9) + " " + cell("Signal", 20) + " " + cell("Action", 14) + " " + cell("Logic", 30)
	b.WriteString(headerStyle.Render(header))
	b.WriteString("\n")

	for _, e := range plan.Entries {
		b.WriteString(rowStyle.Render(cell(market.FormatSpan(e.Slot), 21)) + " ")
		b.WriteString(rowStyle.Render(cell(string(e.Slot.Planet), 9)) + " ")
		b.WriteString(signalStyle(e.Signal).Render(cell(e.Signal.String(), 20)) + " ")
		b.WriteString(tagStyle.Render(e.Action) + " ")
		b.WriteString(mutedStyle.Render(cell(e.Logic, 30)))
		b.WriteString("\n")
	}
	return b.String()
}

func (m PlannerModel) renderSelector(plans []engine.IndexPlan) string {
	parts := make([]string, 0, len(plans))
	for i, p := range plans {
		if i == m.selected {
			parts = append(parts, selectedRowStyle.Render(" "+p.Index.Name+" "))
		} else {
			parts = append(parts, dimStyle.Render(" "+p.Index.Name+" "))
		}
	}
	return "  ← " + strings.Join(parts, " ") + " →"
}
