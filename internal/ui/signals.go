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

// SignalsModel shows the per-index cards, the user's luck and recent events.
type SignalsModel struct {
	width    int
	height   int
	snapshot state.Snapshot
	lastErr  error
	details  bool
}

// NewSignalsModel creates a new signals view.
func NewSignalsModel() SignalsModel {
	return SignalsModel{}
}

// SetSize updates the viewport size.
func (m SignalsModel) SetSize(width, height int) SignalsModel {
	m.width = width
	m.height = height
	return m
}

// UpdateData updates the model with new data.
func (m SignalsModel) UpdateData(snapshot state.Snapshot) SignalsModel {
	m.snapshot = snapshot
	return m
}

// SetError sets the last error for display.
func (m SignalsModel) SetError(err error) SignalsModel {
	m.lastErr = err
	return m
}

// Update handles messages.
func (m SignalsModel) Update(msg tea.Msg) (SignalsModel, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "a" {
		m.details = !m.details
	}
	return m, nil
}

// View renders the signals view.
func (m SignalsModel) View() string {
	var b strings.Builder

	if m.lastErr != nil {
		b.WriteString(errorStyle.Render("Error: " + m.lastErr.Error()))
		b.WriteString("\n\n")
	}

	ev := m.snapshot.Evaluation
	if ev == nil {
		if m.lastErr == nil {
			b.WriteString("Computing schedule...\n")
		}
		return b.String()
	}

	b.WriteString(titleStyle.Render("Astro-Scalping Signals: " + viewTitle(ev)))
	b.WriteString("\n")
	if ev.Live {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Current Time: %s | Tithi: %s",
			ev.Now.In(market.IST).Format("03:04 PM"), ev.Tithi)))
	} else {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("Forecast for: %s | Tithi: %s",
			ev.Schedule.Date.Format("2006-01-02"), ev.Tithi)))
	}
	if ev.Holiday != "" {
		b.WriteString("\n")
		b.WriteString(errorStyle.Render("NSE Holiday: " + ev.Holiday + " (market may be closed)"))
	}
	b.WriteString("\n\n")

	b.WriteString(m.renderCards(ev))
	b.WriteString("\n\n")
	b.WriteString(m.renderLuck(ev))
	b.WriteString("\n")

	if m.details {
		b.WriteString("\n")
		b.WriteString(m.renderDetails(ev))
	}

	if events := m.snapshot.Events; len(events) > 0 {
		b.WriteString("\n")
		b.WriteString(titleStyle.Render("Events"))
		b.WriteString("\n")
		start := 0
		if len(events) > 5 {
			start = len(events) - 5
		}
		for _, e := range events[start:] {
			b.WriteString("  " + renderEvent(e) + "\n")
		}
	}

	return b.String()
}

func viewTitle(ev *engine.Evaluation) string {
	prefix := "FUTURE"
	if ev.Live {
		prefix = "TODAY"
	}
	return fmt.Sprintf("%s (%s)", prefix, ev.Schedule.Date.Format("02 Jan 2006"))
}

func (m SignalsModel) renderCards(ev *engine.Evaluation) string {
	cards := make([]string, 0, len(ev.Predictions))
	for _, p := range ev.Predictions {
		body := strings.Join([]string{
			titleStyle.Render(p.Index),
			"Next Best: " + goodStyle.Render(p.BestLabel()),
			"Avoid:     " + badStyle.Render(p.WorstLabel()),
			"Logic:     " + truncate(p.Strategy.Rationale, 14),
			tagStyle.Render(p.Strategy.Tag),
		}, "\n")
		cards = append(cards, cardStyle.Render(body))
	}

	// Two rows of two on narrow terminals
	if len(cards) == 4 && m.width > 0 && m.width < 4*lipgloss.Width(cards[0])+4 {
		top := lipgloss.JoinHorizontal(lipgloss.Top, cards[0], " ", cards[1])
		bottom := lipgloss.JoinHorizontal(lipgloss.Top, cards[2], " ", cards[3])
		return lipgloss.JoinVertical(lipgloss.Left, top, bottom)
	}

	parts := make([]string, 0, 2*len(cards))
	for i, c := range cards {
		if i > 0 {
			parts = append(parts, " ")
		}
		parts = append(parts, c)
	}
	return lipgloss.JoinHorizontal(lipgloss.Top, parts...)
}

func (m SignalsModel) renderLuck(ev *engine.Evaluation) string {
	line := fmt.Sprintf("Day Lord: %s | Your Birth Star: %s (Padam %d) | Your Lord: %s",
		ev.Schedule.DayLord, ev.BirthStar.Name, ev.BirthStar.Padam, ev.BirthStar.Lord)

	value, note := ev.LuckSummary()
	style := neutralStyle
	if ev.LuckNow != nil {
		style = luckStyle(*ev.LuckNow)
	}
	luck := "My Luck Now: " + style.Render(value+" "+note)

	current := "Current Hora: -"
	if ev.Current != nil {
		current = fmt.Sprintf("Current Hora: %s (%s)", ev.Current.Planet, market.FormatSpan(*ev.Current))
	}

	return line + "\n" + luck + "   " + mutedStyle.Render(current)
}

func (m SignalsModel) renderDetails(ev *engine.Evaluation) string {
	lines := []string{
		fmt.Sprintf("Moon Longitude (Sidereal): %.2f°", ev.BirthStar.Longitude),
		fmt.Sprintf("Ephemeris: %s with ayanamsa correction", ev.Provider),
		fmt.Sprintf("Market Timing Source: %s (%.2fN, %.2fE)", market.NSE.Name, market.NSE.LatDeg, market.NSE.LonDeg),
		fmt.Sprintf("Sunrise %s | Sunset %s | Rahu Kaal %s - %s",
			ev.Schedule.Sunrise.Format("03:04 PM"), ev.Schedule.Sunset.Format("03:04 PM"),
			ev.Schedule.Rahu.Start.Format("03:04 PM"), ev.Schedule.Rahu.End.Format("03:04 PM")),
	}
	return mutedStyle.Render(strings.Join(lines, "\n"))
}

func renderEvent(e state.Event) string {
	ts := e.Timestamp.In(market.IST).Format("15:04")
	switch e.Type {
	case state.EventHoraChange:
		from, to := string(e.OldPlanet), string(e.NewPlanet)
		if from == "" {
			from = "-"
		}
		if to == "" {
			to = "-"
		}
		return fmt.Sprintf("%s  %s  %s → %s", ts, e.Type, from, to)
	case state.EventRahuStart:
		return badStyle.Render(fmt.Sprintf("%s  %s  Rahu Kaal begins", ts, e.Type))
	case state.EventRahuEnd:
		return goodStyle.Render(fmt.Sprintf("%s  %s  Rahu Kaal over", ts, e.Type))
	default:
		return fmt.Sprintf("%s  %s  %s", ts, e.Type, e.Date)
	}
}
